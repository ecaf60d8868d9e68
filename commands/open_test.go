package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func TestOpen(t *testing.T) {
	e := newFakeEngine()
	require.NoError(t, afero.WriteFile(e.fs, "lines.txt", []byte("one\ntwo\nthree\n"), 0644))

	out, err := runBuiltin(t, e, "open lines.txt", pipeline.Empty())
	require.NoError(t, err)

	meta := out.Metadata()
	require.NotNil(t, meta)
	assert.Equal(t, "lines.txt", meta.Source)
	assert.Equal(t, "text/plain", meta.ContentType)

	var got []string
	for _, v := range drain(t, out) {
		got = append(got, value.Text(v))
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestOpenStripsCRLF(t *testing.T) {
	e := newFakeEngine()
	require.NoError(t, afero.WriteFile(e.fs, "dos.txt", []byte("a\r\nb"), 0644))

	out, err := runBuiltin(t, e, "open dos.txt", pipeline.Empty())
	require.NoError(t, err)

	var got []string
	for _, v := range drain(t, out) {
		got = append(got, value.Text(v))
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestOpenEmptyFile(t *testing.T) {
	e := newFakeEngine()
	require.NoError(t, afero.WriteFile(e.fs, "empty.txt", nil, 0644))

	out, err := runBuiltin(t, e, "open empty.txt", pipeline.Empty())
	require.NoError(t, err)
	assert.Empty(t, drain(t, out))
}

func TestOpenMissingFile(t *testing.T) {
	e := newFakeEngine()

	_, err := runBuiltin(t, e, "open nope.txt", pipeline.Empty())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

// closeTrackingFs counts Close calls on every file it opens.
type closeTrackingFs struct {
	afero.Fs
	closes *int
}

func (f closeTrackingFs) Open(name string) (afero.File, error) {
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return closeTrackingFile{File: file, closes: f.closes}, nil
}

type closeTrackingFile struct {
	afero.File
	closes *int
}

func (f closeTrackingFile) Close() error {
	*f.closes++
	return f.File.Close()
}

func TestOpenClosesFileOnExhaustion(t *testing.T) {
	e := newFakeEngine()
	closes := 0
	require.NoError(t, afero.WriteFile(e.fs, "lines.txt", []byte("one\ntwo\n"), 0644))
	e.fs = closeTrackingFs{Fs: e.fs, closes: &closes}

	out, err := runBuiltin(t, e, "open lines.txt", pipeline.Empty())
	require.NoError(t, err)

	assert.Len(t, drain(t, out), 2)
	assert.Equal(t, 1, closes)
}

func TestOpenClosesFileOnEarlyStop(t *testing.T) {
	e := newFakeEngine()
	closes := 0
	require.NoError(t, afero.WriteFile(e.fs, "lines.txt", []byte("one\ntwo\nthree\n"), 0644))
	e.fs = closeTrackingFs{Fs: e.fs, closes: &closes}

	out, err := runBuiltin(t, e, "open lines.txt", pipeline.Empty())
	require.NoError(t, err)

	strm, ok := out.Stream()
	require.True(t, ok)
	_, ok = strm.Next()
	require.True(t, ok)
	assert.Zero(t, closes)

	strm.Close()
	assert.Equal(t, 1, closes)
	strm.Close()
	assert.Equal(t, 1, closes)
}

func TestOpenClosesFileOnInterrupt(t *testing.T) {
	e := newFakeEngine()
	closes := 0
	require.NoError(t, afero.WriteFile(e.fs, "lines.txt", []byte("one\ntwo\n"), 0644))
	e.fs = closeTrackingFs{Fs: e.fs, closes: &closes}

	out, err := runBuiltin(t, e, "open lines.txt", pipeline.Empty())
	require.NoError(t, err)

	strm, ok := out.Stream()
	require.True(t, ok)
	e.interrupt.Set()
	_, ok = strm.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, closes)
}

func TestOpenArgCount(t *testing.T) {
	e := newFakeEngine()

	for _, line := range []string{"open", "open a.txt b.txt"} {
		_, err := runBuiltin(t, e, line, pipeline.Empty())
		assert.Error(t, err, "%q should be rejected", line)
	}
}
