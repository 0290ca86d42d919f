package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple command", "echo hello", []string{"echo", "hello"}},
		{"multiple arguments", "ls -la /home/user", []string{"ls", "-la", "/home/user"}},
		{"single quoted string", "echo 'hello world'", []string{"echo", "hello world"}},
		{"double quoted string", `echo "hello world"`, []string{"echo", "hello world"}},
		{"mixed quotes", `echo "hello" 'world'`, []string{"echo", "hello", "world"}},
		{"escaped space outside quotes", `echo hello\ world`, []string{"echo", "hello world"}},
		{"escaped quote in double quotes", `echo "hello \"world\""`, []string{"echo", `hello "world"`}},
		{"escaped backslash in double quotes", `echo "hello\\world"`, []string{"echo", `hello\world`}},
		{"single quotes are fully literal", `echo 'hello\nworld'`, []string{"echo", `hello\nworld`}},
		{"empty input", "", []string{}},
		{"only whitespace", "   \t  \n  ", []string{}},
		{"collapsing whitespace runs", "echo    hello     world", []string{"echo", "hello", "world"}},
		{"empty quotes produce no token", `echo "" ''`, []string{"echo"}},
		{"adjacent quoted strings concatenate", `echo "hello"'world'`, []string{"echo", "helloworld"}},
		{"quoted operator is not an operator", `echo ">"`, []string{"echo", ">"}},
		{
			"trailing backslash is retained literally",
			`echo hello\`,
			[]string{"echo", `hello\`},
		},
		{
			"unterminated single quote yields accumulated token",
			"echo 'hello",
			[]string{"echo", "hello"},
		},
		{
			"unterminated double quote yields accumulated token",
			`echo "hello`,
			[]string{"echo", "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Lex(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLexNoEmptyTokens(t *testing.T) {
	got := New().Lex(`a  '' "" b`)
	for _, tok := range got {
		assert.NotEmpty(t, tok)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLexQuoteSymmetry(t *testing.T) {
	const s = "hello"
	plain := New().Lex(s)
	single := New().Lex("'" + s + "'")
	double := New().Lex(`"` + s + `"`)

	assert.Equal(t, []string{s}, plain)
	assert.Equal(t, []string{s}, single)
	assert.Equal(t, []string{s}, double)
}
