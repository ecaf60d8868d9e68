package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func init() {
	register(&builtin{
		name:  "open",
		use:   "open FILE",
		short: "Stream a file's lines into the pipeline.",
		run:   runOpen,
	})
}

func runOpen(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	cmd := &SimpleCommand{Use: "open FILE", Short: "Stream a file's lines into the pipeline."}

	args, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}
	if len(args) != 1 {
		return pipeline.Empty(), fmt.Errorf("open: expected exactly one file argument")
	}
	path := args[0]

	f, err := e.Fs().Open(path)
	if err != nil {
		return pipeline.Empty(), fmt.Errorf("open: %w", err)
	}

	// Lines are produced on demand; the stream's close hook releases
	// the file on exhaustion, interrupt, or an early Close.
	br := bufio.NewReader(f)
	iter := pipeline.IteratorFunc(func() (value.Value, bool) {
		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			return nil, false
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return value.NewString(line, call.Head), true
	})

	strm := pipeline.NewListStream(iter, e.Interrupt())
	strm.OnClose(func() { f.Close() })

	meta := &pipeline.Metadata{Source: path, ContentType: "text/plain"}
	return pipeline.FromStream(strm, meta), nil
}
