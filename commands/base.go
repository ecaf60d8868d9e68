// Package commands implements the builtin commands of the shell.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	getopt "github.com/pborman/getopt/v2"

	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

// AllCommands holds every registered builtin, keyed by name.
var AllCommands = make(map[string]command.Command)

func register(cmd command.Command) {
	AllCommands[cmd.Name()] = cmd
}

// ListCommands returns the registered builtins sorted by name.
func ListCommands() []command.Command {
	var out []command.Command
	for _, cmd := range AllCommands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// runFunc is the body of a builtin.
type runFunc func(engine command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error)

// builtin adapts a run function to the Command interface.
type builtin struct {
	name  string
	use   string
	short string
	extra string
	run   runFunc
}

var _ command.Command = (*builtin)(nil)

func (b *builtin) Name() string { return b.name }

func (b *builtin) Signature() command.Signature {
	return command.NewSignature(b.name).WithUse(b.use)
}

func (b *builtin) Usage() string      { return b.short }
func (b *builtin) ExtraUsage() string { return b.extra }

func (b *builtin) Run(engine command.Engine, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	return b.run(engine, stack, call, input)
}

func (b *builtin) Type() command.Type      { return command.TypeBuiltin }
func (b *builtin) AsAlias() *command.Alias { return nil }

// SimpleCommand pairs a usage line with a getopt flag set. Builtins
// create one per invocation; getopt sets are not reusable.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string

	flags    *getopt.Set
	showHelp *bool
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}
	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Parse binds the call's arguments to the flag set. It returns the
// remaining positional arguments, or help text when --help was given.
func (s *SimpleCommand) Parse(call *command.Call) (args []string, help string, err error) {
	opts := s.Flags()
	if s.showHelp == nil {
		s.showHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(call.Args, nil); err != nil {
		return nil, "", fmt.Errorf("%s: %v", call.Name(), err)
	}

	if *s.showHelp {
		var buf bytes.Buffer
		s.PrintHelp(&buf)
		return nil, buf.String(), nil
	}

	return opts.Args(), "", nil
}

// helpData wraps rendered help text as pipeline output.
func helpData(help string, call *command.Call) pipeline.Data {
	return pipeline.FromValue(value.NewString(help, call.Head), nil)
}
