// Package resolver maps a command name to an absolute executable path by
// searching the host's PATH. It generalizes the Shell.Lookup method in
// pkg/shell/shell.go with host-specific lookup rules and a
// prefix-enumeration method for tab completion.
package resolver

import (
	"os"
	"strings"
)

// Resolver searches PATH for executables. It carries no state between
// calls: PATH is re-read from the environment every time, so a shell that
// changes its own environment sees the change immediately.
type Resolver struct{}

// New returns a ready-to-use Resolver.
func New() *Resolver { return &Resolver{} }

// dirs returns the PATH directories for the current process, in order.
// Empty entries are skipped.
func (r *Resolver) dirs() []string {
	path := os.Getenv("PATH")
	if path == "" {
		return nil
	}

	var out []string
	for _, d := range strings.Split(path, string(os.PathListSeparator)) {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Resolve returns the absolute path of the first matching executable named
// name on PATH, applying host-specific rules.
func (r *Resolver) Resolve(name string) (string, bool) {
	return resolve(name, r.dirs())
}

// Candidates returns every executable name on PATH whose name starts with
// prefix, used by tab completion. Names are deduplicated but not sorted
// beyond their PATH-directory discovery order.
func (r *Resolver) Candidates(prefix string) []string {
	return candidates(prefix, r.dirs())
}
