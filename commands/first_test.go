package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func intStream(n int, pulls *int) pipeline.Data {
	i := 0
	iter := pipeline.IteratorFunc(func() (value.Value, bool) {
		if pulls != nil {
			*pulls++
		}
		if i >= n {
			return nil, false
		}
		i++
		return value.NewInt(int64(i), value.UnknownSpan()), true
	})
	return pipeline.FromStream(pipeline.NewListStream(iter, nil), nil)
}

func TestFirst(t *testing.T) {
	e := newFakeEngine()

	out, err := runBuiltin(t, e, "first 2", intStream(5, nil))
	require.NoError(t, err)

	rows := drain(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", value.Text(rows[0]))
	assert.Equal(t, "2", value.Text(rows[1]))
}

func TestFirstDefaultsToOne(t *testing.T) {
	e := newFakeEngine()

	out, err := runBuiltin(t, e, "first", intStream(5, nil))
	require.NoError(t, err)
	assert.Len(t, drain(t, out), 1)
}

func TestFirstShortStream(t *testing.T) {
	e := newFakeEngine()

	out, err := runBuiltin(t, e, "first 10", intStream(3, nil))
	require.NoError(t, err)
	assert.Len(t, drain(t, out), 3)
}

func TestFirstIsLazy(t *testing.T) {
	e := newFakeEngine()

	pulls := 0
	out, err := runBuiltin(t, e, "first 2", intStream(100, &pulls))
	require.NoError(t, err)

	require.Len(t, drain(t, out), 2)
	assert.Equal(t, 2, pulls, "upstream is not pulled past N")
}

func TestFirstClosesUpstream(t *testing.T) {
	e := newFakeEngine()

	closed := 0
	i := 0
	upstream := pipeline.NewListStream(pipeline.IteratorFunc(func() (value.Value, bool) {
		i++
		return value.NewInt(int64(i), value.UnknownSpan()), true
	}), nil)
	upstream.OnClose(func() { closed++ })

	out, err := runBuiltin(t, e, "first 2", pipeline.FromStream(upstream, nil))
	require.NoError(t, err)

	require.Len(t, drain(t, out), 2)
	assert.Equal(t, 1, closed, "satisfied take closes its source")
}

func TestFirstPropagatesClose(t *testing.T) {
	e := newFakeEngine()

	closed := 0
	upstream := pipeline.NewListStream(pipeline.SliceIterator(nil), nil)
	upstream.OnClose(func() { closed++ })

	out, err := runBuiltin(t, e, "first 5", pipeline.FromStream(upstream, nil))
	require.NoError(t, err)

	strm, ok := out.Stream()
	require.True(t, ok)
	strm.Close()
	assert.Equal(t, 1, closed, "closing the take closes its source")
}

func TestFirstValue(t *testing.T) {
	e := newFakeEngine()
	in := pipeline.FromValue(value.NewString("solo", value.UnknownSpan()), nil)

	out, err := runBuiltin(t, e, "first 3", in)
	require.NoError(t, err)

	v, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, "solo", value.Text(v))
}

func TestFirstZero(t *testing.T) {
	e := newFakeEngine()
	in := pipeline.FromValue(value.NewString("solo", value.UnknownSpan()), nil)

	out, err := runBuiltin(t, e, "first 0", in)
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}

func TestFirstBadCount(t *testing.T) {
	e := newFakeEngine()

	_, err := runBuiltin(t, e, "first lots", intStream(5, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative integer")
}
