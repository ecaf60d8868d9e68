package dialect

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dead10ck/rowsh/core/logger"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

// DecodeError wraps a failure to decode a stream at all, such as not
// being able to establish the header row. It aborts the whole decode
// operation and carries the operation's provenance span.
type DecodeError struct {
	Span value.Span
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode delimited data: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decoder lazily turns a dialect-configured byte stream into a sequence
// of records. It implements pipeline.Iterator; the sequence is fused
// and checks the interrupt before producing each record.
//
// Malformed records mid-stream are reported to the diagnostic sink and
// skipped: one bad line never aborts an otherwise good stream.
type Decoder struct {
	cfg       Config
	r         *reader
	headers   []string
	span      value.Span
	interrupt *pipeline.Interrupt
	diag      logger.Sink

	// pending holds the first data row when it doubled as the source of
	// the synthesized header width.
	pending []string
	done    bool
}

var _ pipeline.Iterator = (*Decoder)(nil)

// NewDecoder validates the dialect, eagerly resolves the column names
// from the stream's first record, and returns a lazy decoder for the
// remaining records. Header resolution is eager because every produced
// record needs the finalized column names.
//
// An empty stream decodes to an empty sequence; a stream whose first
// record cannot be read at all is a fatal DecodeError.
func NewDecoder(cfg Config, r io.Reader, span value.Span, interrupt *pipeline.Interrupt, diag logger.Sink) (*Decoder, error) {
	recSep, err := cfg.RecordSeparatorByte()
	if err != nil {
		return nil, err
	}
	if diag == nil {
		diag = logger.Discard{}
	}

	d := &Decoder{
		cfg:       cfg,
		r:         newReader(r, cfg, recSep),
		span:      span,
		interrupt: interrupt,
		diag:      diag,
	}

	if cfg.NoHeaders {
		// The first record is data; only its width feeds the
		// synthesized column names.
		first, err := d.r.readRecord(cfg.trimFields())
		switch {
		case err == io.EOF:
			d.done = true
		case err != nil:
			return nil, &DecodeError{Span: span, Err: err}
		default:
			d.headers = make([]string, len(first))
			for i := range first {
				d.headers[i] = fmt.Sprintf("column%d", i+1)
			}
			d.pending = first
		}
		return d, nil
	}

	headers, err := d.r.readRecord(cfg.trimHeaders())
	switch {
	case err == io.EOF:
		d.done = true
	case err != nil:
		return nil, &DecodeError{Span: span, Err: err}
	default:
		d.headers = headers
	}
	return d, nil
}

// Headers returns the resolved column names shared by every record.
func (d *Decoder) Headers() []string {
	return d.headers
}

// Next produces the next record. Once it reports false it never yields
// again.
func (d *Decoder) Next() (value.Value, bool) {
	if d.done {
		return nil, false
	}
	if d.interrupt.Triggered() {
		d.done = true
		return nil, false
	}

	for {
		var fields []string
		if d.pending != nil {
			fields, d.pending = d.pending, nil
		} else {
			var err error
			fields, err = d.r.readRecord(d.cfg.trimFields())
			if err == io.EOF {
				d.done = true
				return nil, false
			}
			var mal *malformedError
			if errors.As(err, &mal) {
				d.diag.SkippedRecord(d.span, mal.line, mal)
				continue
			}
			if err != nil {
				// The underlying stream failed mid-flight; report and
				// stop rather than retrying the read.
				d.diag.SkippedRecord(d.span, d.r.lastLine(), err)
				d.done = true
				return nil, false
			}
		}

		if !d.cfg.Flexible && len(fields) != len(d.headers) {
			err := &malformedError{
				line: d.r.lastLine(),
				msg:  fmt.Sprintf("found record with %d fields, but the previous record has %d fields", len(fields), len(d.headers)),
			}
			d.diag.SkippedRecord(d.span, err.line, err)
			continue
		}

		return d.buildRecord(fields), true
	}
}

func (d *Decoder) buildRecord(fields []string) value.Value {
	n := len(fields)
	if len(d.headers) < n {
		n = len(d.headers)
	}
	cols := append([]string(nil), d.headers[:n]...)
	vals := make([]value.Value, n)
	for i := 0; i < n; i++ {
		vals[i] = d.convert(fields[i])
	}
	return value.NewRecord(cols, vals, d.span)
}

// convert applies type inference to one field. The order is fixed:
// int64, then float64, then string; integers are a stricter subset of
// floats and must win the tie.
func (d *Decoder) convert(field string) value.Value {
	if d.cfg.NoInfer {
		return value.NewString(field, d.span)
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return value.NewInt(i, d.span)
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return value.NewFloat(f, d.span)
	}
	return value.NewString(field, d.span)
}
