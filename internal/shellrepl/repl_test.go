package shellrepl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEchoesAndExits(t *testing.T) {
	in := strings.NewReader("echo hello world\nexit\n")
	var out, errBuf bytes.Buffer

	sh := New(in, &out, &errBuf)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "hello world\n")
	assert.Empty(t, errBuf.String())
}

func TestRunReportsCommandNotFound(t *testing.T) {
	in := strings.NewReader("definitely-not-a-real-command-xyz\n")
	var out, errBuf bytes.Buffer

	sh := New(in, &out, &errBuf)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, errBuf.String(), "command not found")
}

func TestRunStopsCleanlyOnEOFWithoutExit(t *testing.T) {
	in := strings.NewReader("echo one\necho two\n")
	var out, errBuf bytes.Buffer

	sh := New(in, &out, &errBuf)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "one\n")
	assert.Contains(t, out.String(), "two\n")
}

func TestRunBuildsHistoryAcrossLines(t *testing.T) {
	in := strings.NewReader("echo a\necho b\nhistory\nexit\n")
	var out, errBuf bytes.Buffer

	sh := New(in, &out, &errBuf)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "1  echo a")
	assert.Contains(t, out.String(), "2  echo b")
}
