package redirect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeOf(t *testing.T) {
	cases := []struct {
		op       string
		wantFD   FD
		wantMode Mode
		wantOK   bool
	}{
		{">", Stdout, Truncate, true},
		{"1>", Stdout, Truncate, true},
		{">>", Stdout, Append, true},
		{"1>>", Stdout, Append, true},
		{"2>", Stderr, Truncate, true},
		{"2>>", Stderr, Append, true},
		{"echo", 0, 0, false},
	}

	for _, c := range cases {
		fd, mode, ok := ModeOf(c.op)
		assert.Equal(t, c.wantOK, ok, c.op)
		if ok {
			assert.Equal(t, c.wantFD, fd, c.op)
			assert.Equal(t, c.wantMode, mode, c.op)
		}
	}
}

func TestQuoteUnixEscapesEmbeddedQuote(t *testing.T) {
	assert.Equal(t, `'it'"'"'s'`, QuoteUnix("it's"))
	assert.Equal(t, `'plain'`, QuoteUnix("plain"))
}

func TestApplyLastOccurrenceWinsPerFD(t *testing.T) {
	opener := newRecordingOpener()

	specs := []TaggedSpec{
		{Spec: Spec{FD: Stdout, Path: "first.txt"}, Mode: Truncate},
		{Spec: Spec{FD: Stdout, Path: "second.txt"}, Mode: Truncate},
	}

	bindings, cleanup, err := Apply(specs, IOBindings{}, opener)
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, opener.opened["second.txt"], bindings.Stdout)
}

func TestApplyCleansUpOnPartialFailure(t *testing.T) {
	opener := newRecordingOpener()
	opener.failOn = "bad.txt"

	specs := []TaggedSpec{
		{Spec: Spec{FD: Stdout, Path: "ok.txt"}, Mode: Truncate},
		{Spec: Spec{FD: Stderr, Path: "bad.txt"}, Mode: Truncate},
	}

	_, cleanup, err := Apply(specs, IOBindings{}, opener)
	require.Error(t, err)
	cleanup()

	assert.True(t, opener.closed["ok.txt"])
}

func TestApplyIgnoresEmptyPath(t *testing.T) {
	opener := newRecordingOpener()
	specs := []TaggedSpec{{Spec: Spec{FD: Stdout, Path: ""}, Mode: Truncate}}

	base := IOBindings{Stdout: io.Discard}
	bindings, cleanup, err := Apply(specs, base, opener)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, io.Discard, bindings.Stdout)
}

type recordingOpener struct {
	opened map[string]io.WriteCloser
	closed map[string]bool
	failOn string
}

func newRecordingOpener() *recordingOpener {
	return &recordingOpener{opened: map[string]io.WriteCloser{}, closed: map[string]bool{}}
}

func (o *recordingOpener) OpenWrite(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	if name == o.failOn {
		return nil, errors.New("boom")
	}
	f := &recordingFile{name: name, owner: o}
	o.opened[name] = f
	return f, nil
}

type recordingFile struct {
	bytes.Buffer
	name  string
	owner *recordingOpener
}

func (f *recordingFile) Close() error {
	f.owner.closed[f.name] = true
	return nil
}
