// Command shell is an interactive POSIX-flavored command-line shell.
//
// It supports built-in commands (echo, exit, quit, type, pwd, cd,
// history), external command execution via PATH, pipelines, and stdout/
// stderr redirection. Set SHELL_DEBUG to enable debug logging of failed
// commands to stderr.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coreshell/posh/internal/shellrepl"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "shell",
		Short:   "An interactive POSIX-flavored command-line shell",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := shellrepl.New(os.Stdin, os.Stdout, os.Stderr)
			return sh.Run(context.Background())
		},
	}

	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
