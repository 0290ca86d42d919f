//go:build windows

package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/coreshell/posh/internal/shellspec"
)

// pathext returns the configured extension list, falling back to the
// shell's documented default when PATHEXT is unset.
func pathext() []string {
	val := os.Getenv("PATHEXT")
	if val == "" {
		val = shellspec.DefaultPathext
	}
	return strings.Split(val, ";")
}

// resolve implements the Windows rule: if name already carries an
// extension, only dir\name is tried; otherwise every PATHEXT extension is
// tried in order. Permission is assumed granted; only existence and
// directory-ness are checked.
func resolve(name string, dirs []string) (string, bool) {
	hasExt := filepath.Ext(name) != ""

	for _, dir := range dirs {
		if hasExt {
			if ok, abs := tryCandidate(filepath.Join(dir, name)); ok {
				return abs, true
			}
			continue
		}

		for _, ext := range pathext() {
			if ok, abs := tryCandidate(filepath.Join(dir, name+ext)); ok {
				return abs, true
			}
		}
	}

	return "", false
}

func tryCandidate(candidate string) (bool, string) {
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return false, ""
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		abs = candidate
	}
	return true, abs
}

// candidates enumerates PATH executables by basename without extension,
// for Windows tab completion.
func candidates(prefix string, dirs []string) []string {
	seen := map[string]bool{}
	var out []string
	exts := pathext()

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			name := entry.Name()
			ext := filepath.Ext(name)
			if !hasAnyExt(ext, exts) {
				continue
			}

			base := strings.TrimSuffix(name, ext)
			if !strings.HasPrefix(base, prefix) || seen[base] {
				continue
			}

			seen[base] = true
			out = append(out, base)
		}
	}

	return out
}

func hasAnyExt(ext string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
