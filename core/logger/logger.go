// Package logger emits structured diagnostics for events that must not
// interrupt a running pipeline, such as malformed records a decoder
// skipped over.
package logger

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dead10ck/rowsh/core/value"
)

// Sink receives recoverable decode diagnostics.
type Sink interface {
	// SkippedRecord reports a malformed record that was dropped from
	// decoded output. line is 1-based within the source stream.
	SkippedRecord(span value.Span, line int, err error)
}

// Logger writes diagnostics as JSON lines.
type Logger struct {
	log zerolog.Logger
}

var _ Sink = (*Logger)(nil)

// New creates a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (l *Logger) SkippedRecord(span value.Span, line int, err error) {
	l.log.Warn().
		Int("span_start", span.Start).
		Int("span_end", span.End).
		Int("line", line).
		Err(err).
		Msg("skipped malformed record")
}

// Discard drops all diagnostics.
type Discard struct{}

func (Discard) SkippedRecord(value.Span, int, error) {}

// Capture retains diagnostics in memory for test assertions.
type Capture struct {
	mu      sync.Mutex
	skipped []SkipEvent
}

// SkipEvent is one recorded SkippedRecord call.
type SkipEvent struct {
	Span value.Span
	Line int
	Err  error
}

func (c *Capture) SkippedRecord(span value.Span, line int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped = append(c.skipped, SkipEvent{Span: span, Line: line, Err: err})
}

// Skipped returns the recorded events.
func (c *Capture) Skipped() []SkipEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SkipEvent(nil), c.skipped...)
}
