package dialect

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// malformedError marks a single unparseable record. The decoder skips
// the record and keeps going; it never aborts the stream.
type malformedError struct {
	line int
	msg  string
}

func (e *malformedError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

// reader splits a byte stream into raw records of field text according
// to a dialect. It understands quoting, escapes, comment lines, and
// trim policies; it knows nothing about headers or types.
//
// The reader holds at most one record in memory at a time.
type reader struct {
	br         *bufio.Reader
	sep        byte
	recSep     byte
	quote      byte
	comment    byte
	hasComment bool
	escape     byte
	hasEscape  bool

	// cur is the 1-based line the reader is about to read; line is the
	// line the last returned record started on.
	cur  int
	line int
}

func newReader(r io.Reader, cfg Config, recSep byte) *reader {
	rd := &reader{
		br:     bufio.NewReader(r),
		sep:    byte(cfg.Separator),
		recSep: recSep,
		quote:  byte(cfg.Quote),
		cur:    1,
	}
	if cfg.Comment != 0 {
		rd.hasComment = true
		rd.comment = byte(cfg.Comment)
	}
	if cfg.Escape != 0 {
		rd.hasEscape = true
		rd.escape = byte(cfg.Escape)
	}
	return rd
}

// readRecord returns the field text of the next record, trimming each
// unquoted field when trim is set. It skips blank and comment lines.
// io.EOF marks exhaustion; a *malformedError marks a skippable record,
// with the reader already positioned at the next one.
func (r *reader) readRecord(trim bool) ([]string, error) {
	for {
		fields, quoted, err := r.parseRecord()
		if err != nil {
			return nil, err
		}

		// A record with a single empty unquoted field is a blank line.
		if len(fields) == 1 && fields[0] == "" && !quoted[0] {
			continue
		}

		if trim {
			for i := range fields {
				if !quoted[i] {
					fields[i] = strings.TrimSpace(fields[i])
				}
			}
		}
		return fields, nil
	}
}

// lastLine returns the 1-based line the last record started on.
func (r *reader) lastLine() int {
	return r.line
}

func (r *reader) parseRecord() (fields []string, quoted []bool, err error) {
	// Skip comment lines before any field splitting.
	for r.hasComment {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, nil, normalizeEOF(err)
		}
		if b != r.comment {
			r.br.UnreadByte()
			break
		}
		if err := r.discardRecord(); err != nil && err != io.EOF {
			return nil, nil, err
		}
	}

	if _, err := r.br.Peek(1); err != nil {
		return nil, nil, normalizeEOF(err)
	}

	r.line = r.cur
	for {
		field, wasQuoted, last, err := r.parseField()
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, field)
		quoted = append(quoted, wasQuoted)
		if last {
			return fields, quoted, nil
		}
	}
}

// parseField reads one field; last reports whether it ended the record.
func (r *reader) parseField() (field string, wasQuoted, last bool, err error) {
	b, berr := r.br.ReadByte()
	if berr != nil {
		// Record ended at EOF without a trailing record separator.
		return "", false, true, nil
	}

	if b == r.quote {
		return r.parseQuotedField()
	}
	r.br.UnreadByte()

	var buf []byte
	for {
		b, berr := r.br.ReadByte()
		if berr != nil {
			return r.stripCR(buf), false, true, nil
		}
		switch b {
		case r.sep:
			return string(buf), false, false, nil
		case r.recSep:
			r.cur++
			return r.stripCR(buf), false, true, nil
		default:
			buf = append(buf, b)
		}
	}
}

func (r *reader) parseQuotedField() (field string, wasQuoted, last bool, err error) {
	var buf []byte
	for {
		b, berr := r.br.ReadByte()
		if berr != nil {
			return "", true, true, &malformedError{line: r.line, msg: "unterminated quoted field"}
		}
		if b == r.recSep {
			r.cur++
		}

		switch {
		case r.hasEscape && b == r.escape:
			esc, berr := r.br.ReadByte()
			if berr != nil {
				return "", true, true, &malformedError{line: r.line, msg: "unterminated quoted field"}
			}
			buf = append(buf, esc)

		case b == r.quote:
			next, berr := r.br.ReadByte()
			switch {
			case berr != nil:
				return string(buf), true, true, nil
			case next == r.sep:
				return string(buf), true, false, nil
			case next == r.recSep:
				r.cur++
				return string(buf), true, true, nil
			case next == r.quote && !r.hasEscape:
				// Doubled quote is a literal quote.
				buf = append(buf, r.quote)
			case next == '\r' && r.recSep == '\n':
				if after, aerr := r.br.ReadByte(); aerr == nil && after == r.recSep {
					r.cur++
					return string(buf), true, true, nil
				}
				fallthrough
			default:
				line := r.line
				if derr := r.discardRecord(); derr != nil && derr != io.EOF {
					return "", true, true, derr
				}
				return "", true, true, &malformedError{line: line, msg: "unexpected character after closing quote"}
			}

		default:
			buf = append(buf, b)
		}
	}
}

// discardRecord consumes input through the next record separator so a
// malformed record does not poison the one after it.
func (r *reader) discardRecord() error {
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return err
		}
		if b == r.recSep {
			r.cur++
			return nil
		}
	}
}

// stripCR drops a trailing carriage return on newline-terminated
// records so CRLF input round-trips cleanly.
func (r *reader) stripCR(buf []byte) string {
	if r.recSep == '\n' && len(buf) > 0 && buf[len(buf)-1] == '\r' {
		buf = buf[:len(buf)-1]
	}
	return string(buf)
}

func normalizeEOF(err error) error {
	if err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}
