package commands

import (
	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func init() {
	register(&builtin{
		name:  "help",
		use:   "help",
		short: "List the available commands as a table.",
		run:   runHelp,
	})
}

func runHelp(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	cmd := &SimpleCommand{Use: "help", Short: "List the available commands as a table."}

	_, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}

	var vals []value.Value
	for _, c := range ListCommands() {
		vals = append(vals, value.NewRecord(
			[]string{"name", "type", "usage"},
			[]value.Value{
				value.NewString(c.Name(), call.Head),
				value.NewString(c.Type().String(), call.Head),
				value.NewString(c.Usage(), call.Head),
			},
			call.Head,
		))
	}
	for _, a := range e.Aliases() {
		vals = append(vals, value.NewRecord(
			[]string{"name", "type", "usage"},
			[]value.Value{
				value.NewString(a.Name(), call.Head),
				value.NewString(a.Type().String(), call.Head),
				value.NewString(a.Usage(), call.Head),
			},
			call.Head,
		))
	}

	return pipeline.FromStream(pipeline.NewListStream(pipeline.SliceIterator(vals), e.Interrupt()), nil), nil
}
