// Package value defines the typed values that flow between pipeline stages.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Span marks the region of source input a value originated from. Spans
// are provenance metadata only and never affect evaluation.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// UnknownSpan is used where no source position is available.
func UnknownSpan() Span {
	return Span{}
}

// Kind identifies the concrete type of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single typed datum. A value's kind never changes once it
// has been constructed.
type Value interface {
	Kind() Kind
	Span() Span
}

// Int is a 64-bit signed integer value.
type Int struct {
	Val  int64
	span Span
}

func NewInt(v int64, span Span) Int {
	return Int{Val: v, span: span}
}

func (v Int) Kind() Kind { return KindInt }
func (v Int) Span() Span { return v.span }

// Float is a 64-bit floating point value.
type Float struct {
	Val  float64
	span Span
}

func NewFloat(v float64, span Span) Float {
	return Float{Val: v, span: span}
}

func (v Float) Kind() Kind { return KindFloat }
func (v Float) Span() Span { return v.span }

// String is a UTF-8 text value.
type String struct {
	Val  string
	span Span
}

func NewString(v string, span Span) String {
	return String{Val: v, span: span}
}

func (v String) Kind() Kind { return KindString }
func (v String) Span() Span { return v.span }

// Record is an ordered set of named columns paired positionally with
// values. Column names are unique within a record and column order is
// significant; len(Cols) == len(Vals) always holds.
type Record struct {
	Cols []string
	Vals []Value
	span Span
}

// NewRecord builds a record from parallel column and value slices.
// Mismatched lengths are a programming error.
func NewRecord(cols []string, vals []Value, span Span) Record {
	if len(cols) != len(vals) {
		panic(fmt.Sprintf("record has %d columns but %d values", len(cols), len(vals)))
	}
	return Record{Cols: cols, Vals: vals, span: span}
}

func (v Record) Kind() Kind { return KindRecord }
func (v Record) Span() Span { return v.span }

// Get returns the value of the named column.
func (v Record) Get(col string) (Value, bool) {
	for i, c := range v.Cols {
		if c == col {
			return v.Vals[i], true
		}
	}
	return nil, false
}

// Text renders a value as plain text, the way it would appear in a
// delimited file.
func Text(v Value) string {
	switch v := v.(type) {
	case Int:
		return strconv.FormatInt(v.Val, 10)
	case Float:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case String:
		return v.Val
	case Record:
		var parts []string
		for i, c := range v.Cols {
			parts = append(parts, c+": "+Text(v.Vals[i]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
