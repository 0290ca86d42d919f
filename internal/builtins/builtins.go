// Package builtins implements the shell's fixed builtin command set —
// echo, exit, quit, type, pwd, cd, history. It generalizes the
// registerBuiltins/Builtin dispatch table in pkg/shell/shell.go to an
// explicit-sink handler signature, so no builtin ever touches a mutable
// global stream.
package builtins

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coreshell/posh/internal/resolver"
	"github.com/coreshell/posh/internal/shellspec"
	"github.com/coreshell/posh/internal/shellstate"
)

// ErrExit is returned by the exit/quit handlers to signal that the REPL
// should terminate. It is never printed.
var ErrExit = errors.New("exit")

// Handler is the signature every builtin implements. It never reads argv[0]
// (the name used to find the handler); argv holds only the arguments.
type Handler func(argv []string, stdin io.Reader, stdout, stderr io.Writer, st *shellstate.State) error

// Registry maps a lowercased builtin name to its Handler.
type Registry struct {
	handlers map[string]Handler
	resolver *resolver.Resolver
}

// NewRegistry builds the fixed builtin set, using res to resolve external
// commands for `type`.
func NewRegistry(res *resolver.Resolver) *Registry {
	r := &Registry{handlers: make(map[string]Handler), resolver: res}
	r.register()
	return r
}

// Lookup returns the handler for name (case-insensitive) and whether one
// exists.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

func (r *Registry) register() {
	r.handlers["echo"] = builtinEcho
	r.handlers["exit"] = builtinExit
	r.handlers["quit"] = builtinExit
	r.handlers["pwd"] = builtinPwd
	r.handlers["cd"] = builtinCd
	r.handlers["type"] = r.builtinType
	r.handlers["history"] = builtinHistory
}

func builtinEcho(argv []string, _ io.Reader, stdout, _ io.Writer, _ *shellstate.State) error {
	fmt.Fprintln(stdout, strings.Join(argv, " "))
	return nil
}

func builtinExit(_ []string, _ io.Reader, _, _ io.Writer, st *shellstate.State) error {
	st.ExitFlag = true
	return ErrExit
}

func builtinPwd(_ []string, _ io.Reader, stdout, _ io.Writer, _ *shellstate.State) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, dir)
	return nil
}

// builtinCd changes the process working directory. With zero or multiple
// arguments the arguments are joined with single spaces to form the target
// path.
func builtinCd(argv []string, _ io.Reader, _, stderr io.Writer, _ *shellstate.State) error {
	target := strings.Join(argv, " ")

	if target == "~" {
		if home := os.Getenv("HOME"); home != "" {
			target = home
		}
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(stderr, "cd: %s: No such file or directory\n", target)
	}
	return nil
}

// builtinType reports whether name is a builtin or resolves it on PATH,
// matching the builtin set case-sensitively.
func (r *Registry) builtinType(argv []string, _ io.Reader, stdout, _ io.Writer, _ *shellstate.State) error {
	if len(argv) == 0 {
		return nil
	}

	name := argv[0]

	if isBuiltinExact(name) {
		fmt.Fprintf(stdout, "%s is a shell builtin\n", name)
		return nil
	}

	if path, ok := r.resolver.Resolve(name); ok {
		fmt.Fprintf(stdout, "%s is %s\n", name, path)
		return nil
	}

	fmt.Fprintf(stdout, "%s: not found\n", name)
	return nil
}

// isBuiltinExact matches the builtin set case-sensitively, unlike dispatch
// which matches case-insensitively.
func isBuiltinExact(name string) bool {
	for _, b := range shellspec.BuiltinNames {
		if b == name {
			return true
		}
	}
	return false
}

// builtinHistory implements four forms: no args list everything, a
// positive integer N lists only the last N entries, -r appends a file's
// lines, -w truncates a file with the full history.
func builtinHistory(argv []string, _ io.Reader, stdout, stderr io.Writer, st *shellstate.State) error {
	switch {
	case len(argv) == 0:
		printHistory(stdout, st.History.Entries(), 1)

	case argv[0] == "-r" && len(argv) == 2:
		if err := st.History.LoadFile(argv[1]); err != nil {
			reportHistoryErr(stderr, argv[1], err)
		}

	case argv[0] == "-w" && len(argv) == 2:
		if err := st.History.WriteFile(argv[1]); err != nil {
			reportHistoryErr(stderr, argv[1], err)
		}

	default:
		if n, err := strconv.Atoi(argv[0]); err == nil && n > 0 {
			entries, start := st.History.Last(n)
			printHistory(stdout, entries, start)
		}
	}

	return nil
}

func printHistory(w io.Writer, entries []string, startIndex int) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for i, e := range entries {
		fmt.Fprintf(bw, "%5d  %s\n", startIndex+i, e)
	}
}

func reportHistoryErr(w io.Writer, file string, err error) {
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "history: %s: No such file or directory\n", file)
		return
	}
	fmt.Fprintf(w, "history: %s: %s\n", file, err)
}
