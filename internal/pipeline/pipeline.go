// Package pipeline wires one or more planner.Stages together, streaming
// each stage's stdout into the next stage's stdin, and dispatches every
// stage to either a builtin or the external runner. It generalizes the
// os.Pipe-based concurrent fan-out in
// aledsdavies-opal/runtime/executor/executor.go's executePipeline to a
// builtin-or-external dispatch instead of a single command-tree walk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/coreshell/posh/internal/builtins"
	"github.com/coreshell/posh/internal/planner"
	"github.com/coreshell/posh/internal/redirect"
	"github.com/coreshell/posh/internal/runner"
	"github.com/coreshell/posh/internal/shellog"
	"github.com/coreshell/posh/internal/shellstate"
)

// Dispatcher routes a single stage to a builtin or to the external runner.
type Dispatcher struct {
	Builtins *builtins.Registry
	Runner   *runner.Runner
	Opener   redirect.FileOpener
}

// NewDispatcher returns a Dispatcher backed by b and r, using the default
// OS file opener for builtin redirections.
func NewDispatcher(b *builtins.Registry, r *runner.Runner) *Dispatcher {
	return &Dispatcher{Builtins: b, Runner: r, Opener: redirect.DefaultFileOpener{}}
}

// DispatchStage runs one stage against base stdio, applying the stage's
// own file redirections, and returns its exit code. Builtins write
// directly into the (possibly redirected) streams; external commands
// receive their redirections unapplied, since the runner opens target
// files itself (composed into the spawned shell command on Unix, captured
// in-process on Windows).
func (d *Dispatcher) DispatchStage(ctx context.Context, stage planner.Stage, stdin io.Reader, stdout, stderr io.Writer, st *shellstate.State) (int, error) {
	if len(stage.Argv) == 0 {
		return -1, planner.ErrEmptyCommand
	}

	name := stage.Argv[0]

	if h, ok := d.Builtins.Lookup(name); ok {
		base := redirect.IOBindings{Stdin: stdin, Stdout: stdout, Stderr: stderr}
		bindings, cleanup, err := redirect.Apply(stage.Redir, base, d.Opener)
		defer cleanup()
		if err != nil {
			shellog.Error("redirection failed", logrus.Fields{"stage": name, "error": err.Error()})
			return 1, err
		}

		if err := h(stage.Argv[1:], bindings.Stdin, bindings.Stdout, bindings.Stderr, st); err != nil {
			if errors.Is(err, builtins.ErrExit) {
				return 0, err
			}
			return 1, nil
		}
		return 0, nil
	}

	code, err := d.Runner.Run(ctx, stage.Argv, stage.Redir, stdin, stdout, stderr)
	if err != nil && errors.Is(err, runner.ErrNotFound) {
		return 127, fmt.Errorf("%s: %w", name, err)
	}
	return code, err
}

// Run executes every stage in pl, streaming stage i's stdout into stage
// i+1's stdin through an os.Pipe, and returns the exit code of the last
// stage (shell PIPESTATUS-last semantics). Every stage runs concurrently
// so a blocking reader doesn't stall an upstream writer. If ctx is
// cancelled, every pipe is closed to unblock any stage stuck on I/O.
func (d *Dispatcher) Run(ctx context.Context, pl planner.Pipeline, stdin io.Reader, stdout, stderr io.Writer, st *shellstate.State) (int, error) {
	n := len(pl.Stages)
	if n == 0 {
		return -1, planner.ErrEmptyCommand
	}

	if n == 1 {
		return d.DispatchStage(ctx, pl.Stages[0], stdin, stdout, stderr, st)
	}

	readers := make([]*os.File, n-1)
	writers := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			for j := 0; j < i; j++ {
				readers[j].Close()
				writers[j].Close()
			}
			return -1, err
		}
		readers[i] = pr
		writers[i] = pw
	}

	readerOnce := make([]sync.Once, n-1)
	writerOnce := make([]sync.Once, n-1)
	closeReader := func(i int) { readerOnce[i].Do(func() { readers[i].Close() }) }
	closeWriter := func(i int) { writerOnce[i].Do(func() { writers[i].Close() }) }

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		for i := 0; i < n-1; i++ {
			closeReader(i)
			closeWriter(i)
		}
	}()

	exitCodes := make([]int, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()

			var in io.Reader = stdin
			if i > 0 {
				in = readers[i-1]
				defer closeReader(i - 1)
			}

			out := stdout
			if i < n-1 {
				out = writers[i]
				defer closeWriter(i)
			}

			exitCodes[i], errs[i] = d.DispatchStage(ctx, pl.Stages[i], in, out, stderr, st)
		}()
	}

	wg.Wait()

	return exitCodes[n-1], errs[n-1]
}
