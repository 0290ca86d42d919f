//go:build !windows

package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// resolve implements the Unix rule: candidate = dir/name, accepted if it
// exists, is not a directory, and has any execute bit set.
func resolve(name string, dirs []string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)

		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if info.Mode()&0111 == 0 {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			abs = candidate
		}
		return abs, true
	}

	return "", false
}

func candidates(prefix string, dirs []string) []string {
	seen := map[string]bool{}
	var out []string

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if seen[name] {
				continue
			}

			info, err := entry.Info()
			if err != nil || info.IsDir() || info.Mode()&0111 == 0 {
				continue
			}

			seen[name] = true
			out = append(out, name)
		}
	}

	return out
}
