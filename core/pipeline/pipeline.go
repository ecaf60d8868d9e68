// Package pipeline defines the data carrier handed between successive
// pipeline stages: a single value, a lazy stream of values, or nothing,
// together with source metadata and a shared cancellation flag.
package pipeline

import (
	"sync/atomic"

	"github.com/dead10ck/rowsh/core/value"
)

// Interrupt is a shared cooperative cancellation flag. Producers check
// it at least once per element; once set, no further elements are
// produced. A nil *Interrupt never triggers.
type Interrupt struct {
	flag int32
}

func NewInterrupt() *Interrupt {
	return &Interrupt{}
}

// Set requests cancellation. Safe to call from any goroutine.
func (i *Interrupt) Set() {
	atomic.StoreInt32(&i.flag, 1)
}

// Reset clears a previous cancellation request so the flag can be
// shared across evaluations. Streams that already went done stay done.
func (i *Interrupt) Reset() {
	atomic.StoreInt32(&i.flag, 0)
}

// Triggered reports whether cancellation has been requested.
func (i *Interrupt) Triggered() bool {
	if i == nil {
		return false
	}
	return atomic.LoadInt32(&i.flag) != 0
}

// Metadata carries provenance hints about where data came from.
type Metadata struct {
	// Source names the origin of the data, typically a file path.
	Source string
	// ContentType hints at the format of the raw data.
	ContentType string
}

// Iterator produces values on demand. Next reports false when the
// sequence is exhausted.
type Iterator interface {
	Next() (value.Value, bool)
}

// IteratorFunc adapts a function to the Iterator interface.
type IteratorFunc func() (value.Value, bool)

func (f IteratorFunc) Next() (value.Value, bool) { return f() }

// SliceIterator iterates over an in-memory slice of values.
func SliceIterator(vals []value.Value) Iterator {
	i := 0
	return IteratorFunc(func() (value.Value, bool) {
		if i >= len(vals) {
			return nil, false
		}
		v := vals[i]
		i++
		return v, true
	})
}

// ListStream is a lazily produced sequence of values. It may be
// iterated once; after it reports exhaustion, or after the interrupt
// fires, it never yields again.
type ListStream struct {
	iter      Iterator
	interrupt *Interrupt
	done      bool
	closer    func()
}

func NewListStream(iter Iterator, interrupt *Interrupt) *ListStream {
	return &ListStream{iter: iter, interrupt: interrupt}
}

// OnClose registers a release hook run exactly once when the stream
// finishes, whether by exhaustion, interrupt, or an explicit Close.
func (s *ListStream) OnClose(fn func()) {
	s.closer = fn
}

// Close marks the stream exhausted and releases its source. Consumers
// that stop pulling early must call it so held resources are freed.
// Safe to call more than once.
func (s *ListStream) Close() {
	s.finish()
}

func (s *ListStream) finish() {
	s.done = true
	if s.closer != nil {
		s.closer()
		s.closer = nil
	}
}

// Next pulls the next value from the stream.
func (s *ListStream) Next() (value.Value, bool) {
	if s.done {
		return nil, false
	}
	if s.interrupt.Triggered() {
		s.finish()
		return nil, false
	}
	v, ok := s.iter.Next()
	if !ok {
		s.finish()
		return nil, false
	}
	return v, true
}

// Interrupt returns the stream's cancellation flag, which may be nil.
func (s *ListStream) Interrupt() *Interrupt {
	return s.interrupt
}

// Drain pulls the remaining values into a slice, consuming the stream.
func (s *ListStream) Drain() []value.Value {
	var out []value.Value
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Data is the transport value between pipeline stages. It wraps either
// nothing, a single value, or a lazy stream, plus optional metadata.
// A Data holding a stream is consumed by whoever iterates it.
type Data struct {
	val  value.Value
	strm *ListStream
	meta *Metadata
}

// Empty is the zero pipeline input: no value at all.
func Empty() Data {
	return Data{}
}

// FromValue wraps a single materialized value.
func FromValue(v value.Value, meta *Metadata) Data {
	return Data{val: v, meta: meta}
}

// FromStream wraps a lazy stream without draining it.
func FromStream(s *ListStream, meta *Metadata) Data {
	return Data{strm: s, meta: meta}
}

func (d Data) IsEmpty() bool {
	return d.val == nil && d.strm == nil
}

// Value returns the single wrapped value, if this is value-form data.
func (d Data) Value() (value.Value, bool) {
	if d.val == nil {
		return nil, false
	}
	return d.val, true
}

// Stream returns the wrapped stream, if this is stream-form data.
func (d Data) Stream() (*ListStream, bool) {
	if d.strm == nil {
		return nil, false
	}
	return d.strm, true
}

func (d Data) Metadata() *Metadata {
	return d.meta
}
