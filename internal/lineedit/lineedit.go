// Package lineedit implements interactive raw-mode line editing: character
// echo, backspace, history navigation with Up/Down, and Tab completion
// with readline-style double-tab listing. It generalizes the
// raw-mode-plus-ReadByte loop in the jassuwu-byo-sh reference shell's
// readInput function to golang.org/x/term's MakeRaw/Restore pair and a
// rune-level reader so multi-byte UTF-8 input and escape sequences both
// decode correctly.
package lineedit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/coreshell/posh/internal/shellstate"
)

const bell = "\a"

// Completer returns every known completion for prefix, in any order;
// Editor sorts and deduplicates the result.
type Completer func(prefix string) []string

// Editor reads one line at a time from in in raw terminal mode, echoing
// to out.
type Editor struct {
	in       *os.File
	out      io.Writer
	history  *shellstate.History
	complete Completer
}

// New returns an Editor that reads from in, echoes to out, navigates
// history, and completes Tab presses using complete.
func New(in *os.File, out io.Writer, history *shellstate.History, complete Completer) *Editor {
	return &Editor{in: in, out: out, history: history, complete: complete}
}

// ReadLine puts the terminal in raw mode, prints prompt, and reads a
// single line of edited input, returning the accumulated buffer only
// when Enter is pressed. A read error (e.g. the terminal going away)
// propagates to the caller unchanged; there is no separate Ctrl-D
// handling.
func (e *Editor) ReadLine(prompt string) (string, error) {
	fd := int(e.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(e.in)

	var buf []rune
	histIdx := e.history.Len()
	var liveBuf []rune
	tabArmed := false

	redraw := func() {
		fmt.Fprint(e.out, "\r\x1b[K"+prompt+string(buf))
	}

	fmt.Fprint(e.out, prompt)

	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return "", err
		}

		if r != '\t' {
			tabArmed = false
		}

		switch r {
		case '\r', '\n':
			fmt.Fprint(e.out, "\r\n")
			return string(buf), nil

		case 127, 8: // Backspace / Ctrl-H
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
			redraw()

		case '\t':
			buf = e.handleTab(buf, &tabArmed, prompt, redraw)

		case 0x1b: // escape sequence, e.g. arrow keys
			if !e.isCSI(reader) {
				continue
			}
			dir, _, err := reader.ReadRune()
			if err != nil {
				return "", err
			}
			switch dir {
			case 'A': // Up
				if histIdx > 0 {
					if histIdx == e.history.Len() {
						liveBuf = append([]rune(nil), buf...)
					}
					histIdx--
					buf = []rune(e.history.At(histIdx))
					redraw()
				}
			case 'B': // Down
				if histIdx < e.history.Len() {
					histIdx++
					if histIdx == e.history.Len() {
						buf = liveBuf
					} else {
						buf = []rune(e.history.At(histIdx))
					}
					redraw()
				}
			}

		default:
			if r >= 0x20 {
				buf = append(buf, r)
				fmt.Fprintf(e.out, "%c", r)
			}
		}
	}
}

// isCSI consumes the '[' of a CSI escape sequence and reports whether one
// was present; a lone ESC (e.g. from a user pressing Escape) is swallowed.
func (e *Editor) isCSI(reader *bufio.Reader) bool {
	r, _, err := reader.ReadRune()
	if err != nil || r != '[' {
		return false
	}
	return true
}

// handleTab completes buf's first token against e.complete. Completion
// only runs while the first token is still being typed; once the buffer
// holds a space, Tab is a no-op.
func (e *Editor) handleTab(buf []rune, tabArmed *bool, prompt string, redraw func()) []rune {
	if strings.ContainsRune(string(buf), ' ') {
		*tabArmed = false
		return buf
	}

	prefix := string(buf)
	matches := uniqueSorted(e.complete(prefix))

	switch len(matches) {
	case 0:
		fmt.Fprint(e.out, bell)
		*tabArmed = false
		return buf

	case 1:
		buf = []rune(matches[0] + " ")
		redraw()
		*tabArmed = false
		return buf

	default:
		lcp := longestCommonPrefix(matches)
		if len(lcp) > len(buf) {
			buf = []rune(lcp)
			redraw()
			*tabArmed = false
			return buf
		}

		if *tabArmed {
			fmt.Fprint(e.out, "\r\n"+strings.Join(matches, "  ")+"\r\n")
			redraw()
			*tabArmed = false
			return buf
		}

		fmt.Fprint(e.out, bell)
		*tabArmed = true
		return buf
	}
}

func uniqueSorted(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func longestCommonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
