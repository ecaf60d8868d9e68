package core

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func record(pairs ...string) value.Record {
	var cols []string
	var vals []value.Value
	for i := 0; i+1 < len(pairs); i += 2 {
		cols = append(cols, pairs[i])
		vals = append(vals, value.NewString(pairs[i+1], value.UnknownSpan()))
	}
	return value.NewRecord(cols, vals, value.UnknownSpan())
}

func stream(vals ...value.Value) pipeline.Data {
	return pipeline.FromStream(pipeline.NewListStream(pipeline.SliceIterator(vals), nil), nil)
}

func TestDisplay(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	cases := map[string]pipeline.Data{
		"empty": pipeline.Empty(),
		"scalar": pipeline.FromValue(
			value.NewInt(42, value.UnknownSpan()), nil),
		"single_record": pipeline.FromValue(
			record("a", "1", "b", "x"), nil),
		"record_stream": stream(
			record("name", "alice", "age", "30", "score", "91.5"),
			record("name", "bob", "age", "24", "score", "88"),
		),
		"missing_columns": stream(
			record("name", "ann", "city", "oslo"),
			record("name", "bo"),
		),
		"scalar_stream": stream(
			value.NewString("one", value.UnknownSpan()),
			value.NewString("two", value.UnknownSpan()),
			value.NewString("three", value.UnknownSpan()),
		),
	}

	for tn, data := range cases {
		data := data
		t.Run(tn, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Display(&buf, data))
			g.Assert(t, tn, buf.Bytes())
		})
	}
}
