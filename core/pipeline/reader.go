package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/dead10ck/rowsh/core/value"
)

// Reader adapts the data into a byte stream for decoders. Value-form
// data reads as its text rendering; stream-form data reads each element
// in order, terminated by recordSep. The returned span and metadata
// mirror the input so decoders can propagate provenance unchanged.
//
// The stream is pulled lazily: no element is rendered before the reader
// needs its bytes.
func (d Data) Reader(span value.Span, recordSep byte) (io.Reader, value.Span, *Metadata) {
	switch {
	case d.strm != nil:
		return &streamReader{strm: d.strm, sep: recordSep}, span, d.meta
	case d.val != nil:
		if vspan := d.val.Span(); vspan != (value.Span{}) {
			span = vspan
		}
		return strings.NewReader(value.Text(d.val)), span, d.meta
	default:
		return strings.NewReader(""), span, d.meta
	}
}

// streamReader renders stream elements to text one at a time. Elements
// that have no text form (records) fail the read; callers surface that
// as a decode failure.
type streamReader struct {
	strm *ListStream
	sep  byte
	buf  []byte
	err  error
}

func (r *streamReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		v, ok := r.strm.Next()
		if !ok {
			r.err = io.EOF
			return 0, io.EOF
		}
		if v.Kind() == value.KindRecord {
			r.err = fmt.Errorf("cannot read a %s as raw text", v.Kind())
			return 0, r.err
		}
		r.buf = append(r.buf, value.Text(v)...)
		r.buf = append(r.buf, r.sep)
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
