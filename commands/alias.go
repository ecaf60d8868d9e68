package commands

import (
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"

	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

func init() {
	register(&builtin{
		name:  "alias",
		use:   "alias [NAME = COMMAND [ARGS...]]",
		short: "Declare a session alias, or list the current aliases.",
		extra: "An alias naming an unknown command is treated as an alias for an external program.",
		run:   runAlias,
	})
}

func runAlias(e command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	cmd := &SimpleCommand{Use: "alias [NAME = COMMAND [ARGS...]]", Short: "Declare a session alias, or list the current aliases."}

	args, help, err := cmd.Parse(call)
	if err != nil {
		return pipeline.Empty(), err
	}
	if help != "" {
		return helpData(help, call), nil
	}

	// Bare `alias` lists declared aliases as a table.
	if len(args) == 0 {
		aliases := e.Aliases()
		vals := make([]value.Value, 0, len(aliases))
		for _, a := range aliases {
			vals = append(vals, value.NewRecord(
				[]string{"name", "expansion", "type"},
				[]value.Value{
					value.NewString(a.Name(), call.Head),
					value.NewString(a.WrappedCall().String(), call.Head),
					value.NewString(aliasKind(a), call.Head),
				},
				call.Head,
			))
		}
		return pipeline.FromStream(pipeline.NewListStream(pipeline.SliceIterator(vals), e.Interrupt()), nil), nil
	}

	if len(args) < 3 || args[1] != "=" {
		return pipeline.Empty(), fmt.Errorf("alias: expected `alias NAME = COMMAND [ARGS...]`")
	}
	name := args[0]
	expansion := strings.Join(args[2:], " ")

	words, err := shlex.Split(expansion, true)
	if err != nil || len(words) == 0 {
		return pipeline.Empty(), fmt.Errorf("alias: bad expansion %q", expansion)
	}

	// Resolved exactly once, at declaration: either the target command
	// is known now, or the alias points at an external program.
	var target command.Command
	if cmd, ok := e.FindCommand(words[0]); ok {
		target = cmd
	}

	a := command.NewAlias(
		name,
		target,
		command.RawExpression{Text: expansion, At: call.Head},
		fmt.Sprintf("Alias for %q.", expansion),
		"",
	)
	if err := e.RegisterAlias(a); err != nil {
		return pipeline.Empty(), err
	}
	return pipeline.Empty(), nil
}

func aliasKind(a *command.Alias) string {
	if a.Target() == nil {
		return "external"
	}
	return a.Target().Type().String()
}
