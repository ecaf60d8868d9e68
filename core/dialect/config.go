// Package dialect decodes delimited text (the CSV/TSV family) into
// records according to a configurable dialect: separator, quoting,
// escaping, comment lines, header handling, and whitespace trimming.
package dialect

import (
	"fmt"
)

// TrimPolicy controls which whitespace the reader strips before field
// text reaches the decoder.
type TrimPolicy int

const (
	TrimNone TrimPolicy = iota
	TrimHeaders
	TrimFields
	TrimAll
)

func (t TrimPolicy) String() string {
	switch t {
	case TrimNone:
		return "none"
	case TrimHeaders:
		return "headers"
	case TrimFields:
		return "fields"
	case TrimAll:
		return "all"
	default:
		return fmt.Sprintf("trim(%d)", int(t))
	}
}

// ParseTrimPolicy converts a policy name to a TrimPolicy. Unrecognized
// names are a configuration error.
func ParseTrimPolicy(s string) (TrimPolicy, error) {
	switch s {
	case "none", "":
		return TrimNone, nil
	case "headers":
		return TrimHeaders, nil
	case "fields":
		return TrimFields, nil
	case "all":
		return TrimAll, nil
	default:
		return TrimNone, &ConfigError{
			Msg: "the only possible values for trim are 'all', 'headers', 'fields' and 'none'",
		}
	}
}

// ConfigError reports invalid dialect configuration. It is raised
// before any decoding begins and fails the whole command invocation.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// Config describes one delimited-text dialect. A Config is consumed
// once per decode operation and never mutated by the decoder.
type Config struct {
	// Separator is the field delimiter.
	Separator rune
	// RecordSeparator terminates records; it must fit in a single byte.
	RecordSeparator rune
	// Comment, when nonzero, marks lines to skip entirely.
	Comment rune
	// Quote wraps fields containing the separator or record separator.
	Quote rune
	// Escape, when nonzero, escapes characters inside quoted fields.
	// When zero, a doubled quote denotes a literal quote.
	Escape rune
	// NoHeaders synthesizes column1..columnN names instead of reading a
	// header row.
	NoHeaders bool
	// Flexible permits rows with differing field counts.
	Flexible bool
	// NoInfer suppresses type inference, keeping every field a string.
	NoInfer bool
	Trim    TrimPolicy
}

// DefaultConfig is the plain CSV dialect.
func DefaultConfig() Config {
	return Config{
		Separator:       ',',
		RecordSeparator: '\n',
		Quote:           '"',
	}
}

// RecordSeparatorByte converts the record separator for byte-stream
// readers. A separator wider than one byte is a configuration error,
// not a decode error.
func (c Config) RecordSeparatorByte() (byte, error) {
	if c.RecordSeparator > 0xff {
		return 0, &ConfigError{
			Msg: fmt.Sprintf("invalid record separator %q: must fit in a single byte", c.RecordSeparator),
		}
	}
	return byte(c.RecordSeparator), nil
}

// trimHeaders reports whether the header row should be trimmed.
func (c Config) trimHeaders() bool {
	return c.Trim == TrimHeaders || c.Trim == TrimAll
}

// trimFields reports whether data rows should be trimmed.
func (c Config) trimFields() bool {
	return c.Trim == TrimFields || c.Trim == TrimAll
}
