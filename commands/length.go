package commands

import (
	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func init() {
	register(&builtin{
		name:  "length",
		use:   "length",
		short: "Count the elements of the input.",
		run:   runLength,
	})
}

func runLength(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	cmd := &SimpleCommand{Use: "length", Short: "Count the elements of the input."}

	_, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}

	var n int64
	switch {
	case input.IsEmpty():
		n = 0
	default:
		if strm, ok := input.Stream(); ok {
			for {
				if _, ok := strm.Next(); !ok {
					break
				}
				n++
			}
		} else {
			n = 1
		}
	}

	return pipeline.FromValue(value.NewInt(n, call.Head), input.Metadata()), nil
}
