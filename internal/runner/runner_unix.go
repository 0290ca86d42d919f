//go:build !windows

package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/coreshell/posh/internal/redirect"
)

// run composes `exec -a <name> <path> <args...>` under /bin/sh -c so the
// spawned process's argv[0] can differ from the executable's on-disk path.
// File redirections are appended to the composed command as real shell
// redirection syntax; when a given stream has no file redirection, the
// pipe/ambient writer passed in is wired directly onto the child so
// pipeline byte streaming needs no extra copying.
func run(ctx context.Context, name, path string, args []string, redirs []redirect.TaggedSpec, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	var b strings.Builder
	b.WriteString("exec -a ")
	b.WriteString(redirect.QuoteUnix(name))
	b.WriteByte(' ')
	b.WriteString(redirect.QuoteUnix(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(redirect.QuoteUnix(a))
	}

	for _, r := range redirs {
		b.WriteByte(' ')
		b.WriteString(r.Op(r.Mode))
		b.WriteByte(' ')
		b.WriteString(redirect.QuoteUnix(r.Path))
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", b.String())
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if ok := asExitError(err, &exitErr); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("Error executing %s: %w", name, err)
	}

	return 0, nil
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}
