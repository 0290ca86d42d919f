// Package redirect models per-stage stdout/stderr file redirection and
// applies it to a set of I/O bindings. It generalizes the
// RedirectionManager in pkg/shell/redirections.go to the Spec/FD shape
// used throughout this module.
package redirect

import (
	"fmt"
	"io"
	"os"
)

// FD names a target file descriptor a redirection can bind.
type FD int

const (
	Stdout FD = iota
	Stderr
)

// Mode selects how the target file is opened.
type Mode int

const (
	Truncate Mode = iota
	Append
)

// Spec is one parsed redirection: bind FD to Path for the duration of one
// stage; the open mode travels beside it in TaggedSpec. At most one Spec
// per FD is meaningful for a given
// stage; if more than one is present the last one in the slice wins.
type Spec struct {
	FD   FD
	Path string
}

// Op returns the canonical shell operator for s opened in mode (">" for
// both ">" and "1>", ">>" for both ">>" and "1>>"), as written into a
// composed /bin/sh command line.
func (s Spec) Op(mode Mode) string {
	switch {
	case s.FD == Stdout && mode == Truncate:
		return ">"
	case s.FD == Stdout && mode == Append:
		return ">>"
	case s.FD == Stderr && mode == Truncate:
		return "2>"
	default:
		return "2>>"
	}
}

// ModeOf maps a recognized redirection operator to its FD and Mode. It
// returns ok=false for anything that isn't a redirection operator.
func ModeOf(op string) (fd FD, mode Mode, ok bool) {
	switch op {
	case ">", "1>":
		return Stdout, Truncate, true
	case ">>", "1>>":
		return Stdout, Append, true
	case "2>":
		return Stderr, Truncate, true
	case "2>>":
		return Stderr, Append, true
	default:
		return 0, 0, false
	}
}

// TaggedSpec carries the resolved open mode alongside a Spec, since Spec
// itself only names the target FD and path (the mode is folded in at parse
// time by the planner).
type TaggedSpec struct {
	Spec
	Mode Mode
}

// IOBindings is the trio of standard streams a stage runs with.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// FileOpener abstracts filesystem access so redirection can be tested
// without touching disk.
type FileOpener interface {
	OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
}

// DefaultFileOpener opens real files via os.OpenFile.
type DefaultFileOpener struct{}

func (DefaultFileOpener) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm)
}

// Apply opens every spec's target file and layers the resulting writers
// onto base, later specs for the same FD overwriting earlier ones (last
// occurrence wins). It returns the new bindings and a cleanup function
// that closes every file opened; cleanup is always safe to call, even
// after a partial failure, and must be called on every exit path.
func Apply(specs []TaggedSpec, base IOBindings, opener FileOpener) (IOBindings, func(), error) {
	bindings := base
	var closers []func()

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	for _, spec := range specs {
		if spec.Path == "" {
			continue
		}

		flag := os.O_CREATE | os.O_WRONLY
		if spec.Mode == Truncate {
			flag |= os.O_TRUNC
		} else {
			flag |= os.O_APPEND
		}

		file, err := opener.OpenWrite(spec.Path, flag, 0644)
		if err != nil {
			cleanup()
			return base, func() {}, fmt.Errorf("failed to open %s: %w", spec.Path, err)
		}
		closers = append(closers, func() { file.Close() })

		switch spec.FD {
		case Stdout:
			bindings.Stdout = file
		case Stderr:
			bindings.Stderr = file
		}
	}

	return bindings, cleanup, nil
}

// QuoteUnix wraps s in single quotes for embedding in a /bin/sh -c string,
// escaping any embedded single quote as '"'"'.
func QuoteUnix(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '"', '\'', '"', '\'')
		} else {
			out = append(out, s[i])
		}
	}
	out = append(out, '\'')
	return string(out)
}
