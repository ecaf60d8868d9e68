package commands

import (
	"fmt"
	"strconv"

	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func init() {
	register(&builtin{
		name:  "first",
		use:   "first [N]",
		short: "Keep only the first N elements of the input (default 1).",
		run:   runFirst,
	})
}

func runFirst(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	cmd := &SimpleCommand{Use: "first [N]", Short: "Keep only the first N elements of the input (default 1)."}

	args, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}

	n := 1
	if len(args) > 0 {
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return pipeline.Empty(), fmt.Errorf("first: N must be a non-negative integer, got %q", args[0])
		}
	}

	if strm, ok := input.Stream(); ok {
		taken := 0
		iter := pipeline.IteratorFunc(func() (value.Value, bool) {
			// Stop pulling upstream once satisfied; laziness is the
			// whole point of this command. The upstream is closed so
			// it can release whatever it holds open.
			if taken >= n {
				strm.Close()
				return nil, false
			}
			v, ok := strm.Next()
			if !ok {
				return nil, false
			}
			taken++
			return v, true
		})
		out := pipeline.NewListStream(iter, e.Interrupt())
		out.OnClose(strm.Close)
		return pipeline.FromStream(out, input.Metadata()), nil
	}

	if v, ok := input.Value(); ok && n > 0 {
		return pipeline.FromValue(v, input.Metadata()), nil
	}
	return pipeline.Empty(), nil
}
