package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dead10ck/rowsh/core/value"
)

func TestLoggerSkippedRecord(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.SkippedRecord(value.NewSpan(3, 9), 17, fmt.Errorf("ragged row"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(3), entry["span_start"])
	assert.Equal(t, float64(9), entry["span_end"])
	assert.Equal(t, float64(17), entry["line"])
	assert.Equal(t, "ragged row", entry["error"])
	assert.Equal(t, "skipped malformed record", entry["message"])
}

func TestCapture(t *testing.T) {
	c := &Capture{}

	c.SkippedRecord(value.NewSpan(0, 1), 2, fmt.Errorf("bad"))
	c.SkippedRecord(value.NewSpan(0, 1), 5, fmt.Errorf("worse"))

	events := c.Skipped()
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Line)
	assert.Equal(t, 5, events[1].Line)
}
