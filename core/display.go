package core

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

// Display renders pipeline output for a human: streams of records as a
// table, everything else as plain text. Rendering a stream consumes it.
func Display(w io.Writer, data pipeline.Data) error {
	if data.IsEmpty() {
		return nil
	}

	if v, ok := data.Value(); ok {
		if rec, isRec := v.(value.Record); isRec {
			return renderTable(w, singleRecord(rec))
		}
		_, err := fmt.Fprintln(w, value.Text(v))
		return err
	}

	strm, _ := data.Stream()
	return renderStream(w, strm)
}

func singleRecord(rec value.Record) *pipeline.ListStream {
	return pipeline.NewListStream(pipeline.SliceIterator([]value.Value{rec}), nil)
}

func renderStream(w io.Writer, strm *pipeline.ListStream) error {
	first, ok := strm.Next()
	if !ok {
		return nil
	}
	if first.Kind() == value.KindRecord {
		return renderTableFrom(w, first.(value.Record), strm)
	}

	// Non-record streams print one element per line.
	if _, err := fmt.Fprintln(w, value.Text(first)); err != nil {
		return err
	}
	for {
		v, ok := strm.Next()
		if !ok {
			return nil
		}
		if _, err := fmt.Fprintln(w, value.Text(v)); err != nil {
			return err
		}
	}
}

func renderTable(w io.Writer, strm *pipeline.ListStream) error {
	first, ok := strm.Next()
	if !ok {
		return nil
	}
	rec, isRec := first.(value.Record)
	if !isRec {
		return fmt.Errorf("expected a record, got %s", first.Kind())
	}
	return renderTableFrom(w, rec, strm)
}

// renderTableFrom writes a table whose columns come from the first
// record; later records fill cells by column name.
func renderTableFrom(w io.Writer, first value.Record, strm *pipeline.ListStream) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := first.Cols

	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}

	writeRow(cols)
	writeRow(rowCells(cols, first))
	for {
		v, ok := strm.Next()
		if !ok {
			break
		}
		if rec, isRec := v.(value.Record); isRec {
			writeRow(rowCells(cols, rec))
		} else {
			writeRow([]string{value.Text(v)})
		}
	}
	return tw.Flush()
}

func rowCells(cols []string, rec value.Record) []string {
	cells := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := rec.Get(col); ok {
			cells[i] = value.Text(v)
		}
	}
	return cells
}
