package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFindsExecutableOnPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the Unix permission-bit rule")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))

	t.Setenv("PATH", dir)

	r := New()
	path, ok := r.Resolve("mytool")
	require.True(t, ok)

	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(exe)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestResolveSkipsNonExecutableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the Unix permission-bit rule")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.txt"), []byte("x"), 0644))

	t.Setenv("PATH", dir)

	_, ok := New().Resolve("data.txt")
	assert.False(t, ok)
}

func TestResolveMissingReturnsFalse(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, ok := New().Resolve("definitely-not-a-real-command")
	assert.False(t, ok)
}

func TestResolveEmptyPath(t *testing.T) {
	t.Setenv("PATH", "")
	_, ok := New().Resolve("ls")
	assert.False(t, ok)
}

func TestCandidatesPrefixMatch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the Unix candidate enumeration")
	}

	dir := t.TempDir()
	for _, name := range []string{"echo-tool", "elephant", "ecosystem"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0755))
	}
	t.Setenv("PATH", dir)

	got := New().Candidates("ec")
	assert.ElementsMatch(t, []string{"echo-tool", "ecosystem"}, got)
}
