// Package runner spawns external commands with an explicit argv, optional
// argv[0] override, and file redirections. It generalizes the
// DefaultExecutor in pkg/shell/executor.go to per-host spawning rules.
package runner

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/coreshell/posh/internal/redirect"
	"github.com/coreshell/posh/internal/resolver"
	"github.com/coreshell/posh/internal/shellog"
)

// ErrNotFound is returned when name cannot be resolved on PATH.
var ErrNotFound = errors.New("command not found")

// Runner executes external commands located through a Resolver.
type Runner struct {
	Resolver *resolver.Resolver
}

// New returns a Runner backed by res.
func New(res *resolver.Resolver) *Runner {
	return &Runner{Resolver: res}
}

// Run spawns argv[0] (resolved via PATH, but launched with its
// typed-as-written name as argv[0] for process-title purposes), waits for
// it to exit, and returns its exit code. redirs are applied to stdout/
// stderr; stdin/stdout/stderr are used when no redirection overrides the
// corresponding stream (e.g. for pipeline wiring).
//
// Run returns ErrNotFound, unwrapped, when argv[0] cannot be resolved.
func (r *Runner) Run(ctx context.Context, argv []string, redirs []redirect.TaggedSpec, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, ErrNotFound
	}

	name := argv[0]
	path, ok := r.Resolver.Resolve(name)
	if !ok {
		return -1, ErrNotFound
	}

	code, err := run(ctx, name, path, argv[1:], redirs, stdin, stdout, stderr)
	if err != nil {
		shellog.Error("spawn failed", logrus.Fields{"name": name, "path": path, "error": err.Error()})
	}
	return code, err
}
