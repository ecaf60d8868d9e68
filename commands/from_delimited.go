package commands

import (
	"fmt"
	"unicode/utf8"

	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/dialect"
	"github.com/dead10ck/rowsh/core/pipeline"
)

func init() {
	register(&builtin{
		name:  "from-csv",
		use:   "from-csv [--separator CHAR] [--record-separator CHAR] [--comment CHAR] [--quote CHAR] [--escape CHAR] [--noheaders] [--flexible] [--no-infer] [--trim POLICY]",
		short: "Parse comma-separated text into a table of records.",
		extra: "Fields parse as int, then float, then fall back to string.",
		run: func(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
			return runDelimited(0, e, call, input)
		},
	})
	register(&builtin{
		name:  "from-tsv",
		use:   "from-tsv [--separator CHAR] [--record-separator CHAR] [--comment CHAR] [--quote CHAR] [--escape CHAR] [--noheaders] [--flexible] [--no-infer] [--trim POLICY]",
		short: "Parse tab-separated text into a table of records.",
		run: func(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
			return runDelimited('\t', e, call, input)
		},
	})
}

// runDelimited decodes delimited input into a lazy stream of records.
// forceSep overrides the separator for fixed-separator variants like
// from-tsv; zero keeps the engine's default dialect separator.
func runDelimited(forceSep rune, e command.Engine, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	base := e.DefaultDialect()
	if forceSep != 0 {
		base.Separator = forceSep
	}

	cmd := &SimpleCommand{
		Use:   call.Name() + " [flags]",
		Short: "Parse delimited text into a table of records.",
	}
	if registered, ok := AllCommands[call.Name()]; ok {
		cmd.Use = registered.Signature().Use
		cmd.Short = registered.Usage()
	}
	opts := cmd.Flags()
	sep := opts.StringLong("separator", 's', string(base.Separator), "field separator character")
	recordSep := opts.StringLong("record-separator", 'r', string(base.RecordSeparator), "record terminator character")
	comment := opts.StringLong("comment", 'c', optString(base.Comment), "skip lines beginning with this character")
	quote := opts.StringLong("quote", 'q', string(base.Quote), "quote character")
	escape := opts.StringLong("escape", 'e', optString(base.Escape), "escape character inside quoted fields")
	noHeaders := opts.BoolLong("noheaders", 'n', "treat the first row as data and name columns column1..columnN")
	flexible := opts.BoolLong("flexible", 0, "allow rows with differing field counts")
	noInfer := opts.BoolLong("no-infer", 0, "keep every field as a string")
	trim := opts.EnumLong("trim", 't', []string{"none", "headers", "fields", "all"}, base.Trim.String(),
		"trim whitespace (none|headers|fields|all)")

	_, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}

	cfg := base
	if cfg.Separator, err = oneRune("separator", *sep, false); err != nil {
		return pipeline.Empty(), err
	}
	if cfg.RecordSeparator, err = oneRune("record-separator", *recordSep, false); err != nil {
		return pipeline.Empty(), err
	}
	if cfg.Quote, err = oneRune("quote", *quote, false); err != nil {
		return pipeline.Empty(), err
	}
	if cfg.Comment, err = oneRune("comment", *comment, true); err != nil {
		return pipeline.Empty(), err
	}
	if cfg.Escape, err = oneRune("escape", *escape, true); err != nil {
		return pipeline.Empty(), err
	}
	cfg.NoHeaders = *noHeaders
	cfg.Flexible = *flexible
	cfg.NoInfer = *noInfer
	if cfg.Trim, err = dialect.ParseTrimPolicy(*trim); err != nil {
		return pipeline.Empty(), err
	}

	recSep, err := cfg.RecordSeparatorByte()
	if err != nil {
		return pipeline.Empty(), err
	}

	reader, span, meta := input.Reader(call.Head, recSep)
	dec, err := dialect.NewDecoder(cfg, reader, span, e.Interrupt(), e.Diagnostics())
	if err != nil {
		return pipeline.Empty(), err
	}

	out := pipeline.NewListStream(dec, e.Interrupt())
	if src, ok := input.Stream(); ok {
		out.OnClose(src.Close)
	}
	return pipeline.FromStream(out, meta), nil
}

// oneRune converts a flag value to a single character. optional permits
// the empty string, meaning the feature is disabled.
func oneRune(flag, s string, optional bool) (rune, error) {
	if s == "" {
		if optional {
			return 0, nil
		}
		return 0, &dialect.ConfigError{Msg: fmt.Sprintf("%s must be a single character", flag)}
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, &dialect.ConfigError{Msg: fmt.Sprintf("%s must be a single character, got %q", flag, s)}
	}
	return r, nil
}

func optString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}
