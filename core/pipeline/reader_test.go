package pipeline

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dead10ck/rowsh/core/value"
)

func TestReaderFromValue(t *testing.T) {
	span := value.NewSpan(3, 9)
	d := FromValue(value.NewString("a,b\n1,2", span), &Metadata{Source: "inline"})

	r, gotSpan, meta := d.Reader(value.UnknownSpan(), '\n')
	contents, err := ioutil.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, "a,b\n1,2", string(contents))
	// The value's own span wins over the fallback.
	assert.Equal(t, span, gotSpan)
	assert.Equal(t, "inline", meta.Source)
}

func TestReaderFromStream(t *testing.T) {
	strm := NewListStream(SliceIterator(stringValues("a,b", "1,2", "3,4")), nil)
	d := FromStream(strm, nil)

	r, _, _ := d.Reader(value.UnknownSpan(), '\n')
	contents, err := ioutil.ReadAll(r)
	require.NoError(t, err)

	// Each element is one record, terminated by the record separator.
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(contents))
}

func TestReaderFromStreamCustomSeparator(t *testing.T) {
	strm := NewListStream(SliceIterator(stringValues("a", "b")), nil)
	r, _, _ := FromStream(strm, nil).Reader(value.UnknownSpan(), ';')

	contents, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a;b;", string(contents))
}

func TestReaderFromEmpty(t *testing.T) {
	r, _, _ := Empty().Reader(value.UnknownSpan(), '\n')
	contents, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestReaderRejectsRecordElements(t *testing.T) {
	rec := value.NewRecord([]string{"a"}, []value.Value{value.NewInt(1, value.UnknownSpan())}, value.UnknownSpan())
	strm := NewListStream(SliceIterator([]value.Value{rec}), nil)

	r, _, _ := FromStream(strm, nil).Reader(value.UnknownSpan(), '\n')
	_, err := ioutil.ReadAll(r)
	assert.Error(t, err)
}

func TestReaderIsLazy(t *testing.T) {
	pulls := 0
	iter := IteratorFunc(func() (value.Value, bool) {
		pulls++
		return value.NewString("row", value.UnknownSpan()), true
	})

	r, _, _ := FromStream(NewListStream(iter, nil), nil).Reader(value.UnknownSpan(), '\n')
	assert.Zero(t, pulls)

	buf := make([]byte, 4)
	_, err := r.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 1, pulls)
}
