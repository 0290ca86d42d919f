// Package shellrepl assembles the lexer, planner, builtin registry, and
// pipeline dispatcher into the read-eval-print loop, generalizing the
// read-line-eval loop in pkg/shell/shell.go's Shell.Run to pipeline-aware
// dispatch and an interactive line editor when stdin is a terminal.
package shellrepl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/coreshell/posh/internal/builtins"
	"github.com/coreshell/posh/internal/lexer"
	"github.com/coreshell/posh/internal/lineedit"
	"github.com/coreshell/posh/internal/pipeline"
	"github.com/coreshell/posh/internal/planner"
	"github.com/coreshell/posh/internal/resolver"
	"github.com/coreshell/posh/internal/runner"
	"github.com/coreshell/posh/internal/shellog"
	"github.com/coreshell/posh/internal/shellspec"
	"github.com/coreshell/posh/internal/shellstate"
)

// lineSource yields one line of input at a time, given a prompt to
// display when reading interactively.
type lineSource interface {
	ReadLine(prompt string) (string, error)
}

// bufferedSource adapts a plain io.Reader (piped input, test fixtures) to
// lineSource; it never echoes the prompt to the reader, only writes it to
// out so scripted "$ echo foo" transcripts still look right when captured.
type bufferedSource struct {
	r   *bufio.Reader
	out io.Writer
}

func (b *bufferedSource) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.out, prompt)
	line, err := b.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Shell owns every long-lived component of one interactive session.
type Shell struct {
	Stdout io.Writer
	Stderr io.Writer

	state      *shellstate.State
	lex        *lexer.Lexer
	dispatcher *pipeline.Dispatcher
	resolver   *resolver.Resolver
	registry   *builtins.Registry
	source     lineSource
}

// New builds a Shell reading from in and writing to out/errOut. When in is
// *os.Stdin and it is attached to a terminal, input is read through a raw
// mode line editor with history navigation and Tab completion; otherwise
// lines are read as plain buffered text, so the same Shell drives both an
// interactive session and a scripted/piped one.
func New(in io.Reader, out, errOut io.Writer) *Shell {
	st := shellstate.New()
	res := resolver.New()
	reg := builtins.NewRegistry(res)
	rn := runner.New(res)

	sh := &Shell{
		Stdout:     out,
		Stderr:     errOut,
		state:      st,
		lex:        lexer.New(),
		dispatcher: pipeline.NewDispatcher(reg, rn),
		resolver:   res,
		registry:   reg,
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		sh.source = lineedit.New(f, out, st.History, sh.complete)
	} else {
		sh.source = &bufferedSource{r: bufio.NewReader(in), out: out}
	}

	return sh
}

func (sh *Shell) complete(prefix string) []string {
	var out []string
	for _, b := range shellspec.CompletionBuiltins {
		if strings.HasPrefix(b, prefix) {
			out = append(out, b)
		}
	}
	out = append(out, sh.resolver.Candidates(prefix)...)
	return out
}

// Run executes the read-eval-print loop until EOF, an exit/quit builtin,
// or a line-source error. It always returns nil on a clean EOF.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		line, err := sh.source.ReadLine(shellspec.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sh.state.History.Add(line)
		sh.eval(ctx, line)

		if sh.state.ExitFlag {
			return nil
		}
	}
}

func (sh *Shell) eval(ctx context.Context, line string) {
	tokens := sh.lex.Lex(line)

	pl, err := planner.Plan(tokens)
	if err != nil {
		if errors.Is(err, planner.ErrEmptyCommand) {
			return
		}
		fmt.Fprintln(sh.Stderr, err)
		return
	}

	_, err = sh.dispatcher.Run(ctx, pl, os.Stdin, sh.Stdout, sh.Stderr, sh.state)
	if err == nil || errors.Is(err, builtins.ErrExit) {
		return
	}

	if errors.Is(err, runner.ErrNotFound) {
		fmt.Fprintf(sh.Stderr, "%s\n", err)
		return
	}

	fmt.Fprintln(sh.Stderr, err)
	shellog.Debug("command failed", map[string]any{"line": line, "error": err.Error()})
}
