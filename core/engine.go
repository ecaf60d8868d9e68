// Package core wires the execution pieces together: engine state,
// command resolution, alias unwrapping, and pipeline evaluation.
package core

import (
	"fmt"

	"github.com/anmitsu/go-shlex"
	"github.com/spf13/afero"

	"github.com/dead10ck/rowsh/commands"
	"github.com/dead10ck/rowsh/core/command"
	"github.com/dead10ck/rowsh/core/config"
	"github.com/dead10ck/rowsh/core/dialect"
	"github.com/dead10ck/rowsh/core/logger"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

// aliasScope is one layer of session alias declarations. Leaving the
// scope drops every alias declared inside it.
type aliasScope struct {
	byName map[string]*command.Alias
	order  []string
}

func newAliasScope() *aliasScope {
	return &aliasScope{byName: make(map[string]*command.Alias)}
}

// EngineState is the dispatcher's view of the world: the builtin
// registry, session alias scopes, file access, diagnostics, and the
// shared interrupt.
type EngineState struct {
	fs             afero.Fs
	diag           logger.Sink
	interrupt      *pipeline.Interrupt
	defaultDialect dialect.Config
	builtins       map[string]command.Command
	scopes         []*aliasScope

	// ExternalRunner handles calls to programs outside the registry,
	// including external-program aliases. Nil means externals are
	// unsupported and resolve to an unknown-command error.
	ExternalRunner func(call *command.Call, input pipeline.Data) (pipeline.Data, error)
}

var _ command.Engine = (*EngineState)(nil)

// NewEngineState builds engine state from a configuration, installing
// the configured aliases into the root session scope.
func NewEngineState(fs afero.Fs, diag logger.Sink, cfg *config.Configuration) (*EngineState, error) {
	defaultDialect, err := cfg.Dialect.ToDialect()
	if err != nil {
		return nil, err
	}
	if diag == nil {
		diag = logger.Discard{}
	}

	e := &EngineState{
		fs:             fs,
		diag:           diag,
		interrupt:      pipeline.NewInterrupt(),
		defaultDialect: defaultDialect,
		builtins:       make(map[string]command.Command, len(commands.AllCommands)),
		scopes:         []*aliasScope{newAliasScope()},
	}
	for name, cmd := range commands.AllCommands {
		e.builtins[name] = cmd
	}

	for _, a := range cfg.Aliases {
		words, err := shlex.Split(a.Expansion, true)
		if err != nil || len(words) == 0 {
			return nil, fmt.Errorf("alias %q: bad expansion %q", a.Name, a.Expansion)
		}
		var target command.Command
		if cmd, ok := e.FindCommand(words[0]); ok {
			target = cmd
		}
		usage := a.Usage
		if usage == "" {
			usage = fmt.Sprintf("Alias for %q.", a.Expansion)
		}
		alias := command.NewAlias(a.Name, target,
			command.RawExpression{Text: a.Expansion}, usage, "")
		if err := e.RegisterAlias(alias); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *EngineState) Fs() afero.Fs                   { return e.fs }
func (e *EngineState) Diagnostics() logger.Sink       { return e.diag }
func (e *EngineState) Interrupt() *pipeline.Interrupt { return e.interrupt }
func (e *EngineState) DefaultDialect() dialect.Config { return e.defaultDialect }

// EnterScope opens a new session alias scope.
func (e *EngineState) EnterScope() {
	e.scopes = append(e.scopes, newAliasScope())
}

// ExitScope drops the innermost scope and every alias declared in it.
// The root scope is never dropped.
func (e *EngineState) ExitScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// RegisterAlias installs an alias in the innermost scope. Redeclaring a
// name within one scope is an error; shadowing an outer scope is not.
func (e *EngineState) RegisterAlias(a *command.Alias) error {
	scope := e.scopes[len(e.scopes)-1]
	if _, exists := scope.byName[a.Name()]; exists {
		return fmt.Errorf("alias %q already declared in this scope", a.Name())
	}
	scope.byName[a.Name()] = a
	scope.order = append(scope.order, a.Name())
	return nil
}

// Aliases lists visible aliases, innermost scope first, shadowed names
// omitted.
func (e *EngineState) Aliases() []*command.Alias {
	var out []*command.Alias
	seen := make(map[string]bool)
	for i := len(e.scopes) - 1; i >= 0; i-- {
		scope := e.scopes[i]
		for _, name := range scope.order {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, scope.byName[name])
		}
	}
	return out
}

// FindCommand resolves a name; session aliases shadow builtins.
func (e *EngineState) FindCommand(name string) (command.Command, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if a, ok := e.scopes[i].byName[name]; ok {
			return a, true
		}
	}
	cmd, ok := e.builtins[name]
	return cmd, ok
}

// RunCommand executes a resolved command, substituting alias
// indirection first. Directly running an alias is a contract violation
// the Alias itself rejects; this is the sanctioned path around it.
// Aliases may target other aliases, so substitution repeats until a
// runnable command is reached. Targets are resolved at declaration
// against commands that already existed, so the chain cannot cycle.
func (e *EngineState) RunCommand(cmd command.Command, stack command.Stack, call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	for {
		alias := cmd.AsAlias()
		if alias == nil {
			return cmd.Run(e, stack, call, input)
		}

		words, err := shlex.Split(alias.WrappedCall().String(), true)
		if err != nil || len(words) == 0 {
			return pipeline.Empty(), &command.InternalError{
				Msg:  fmt.Sprintf("alias %q wraps an unusable expression", alias.Name()),
				Span: call.Head,
			}
		}
		call = &command.Call{
			Head: call.Head,
			Args: append(words, call.Args[1:]...),
		}

		target := alias.Target()
		if target == nil {
			return e.runExternal(call, input)
		}
		cmd = target
	}
}

func (e *EngineState) runExternal(call *command.Call, input pipeline.Data) (pipeline.Data, error) {
	if e.ExternalRunner == nil {
		return pipeline.Empty(), fmt.Errorf("unknown command: %q", call.Name())
	}
	return e.ExternalRunner(call, input)
}

// Eval runs one pipeline line: stages separated by `|`, each stage a
// command name followed by its arguments. The output of each stage
// feeds the next without being drained in between.
func (e *EngineState) Eval(stack command.Stack, line string) (pipeline.Data, error) {
	// A cancellation request spans one evaluation; a Ctrl-C that killed
	// the previous line must not starve every later one.
	e.interrupt.Reset()

	words, err := shlex.Split(line, true)
	if err != nil {
		return pipeline.Empty(), fmt.Errorf("parse error: %v", err)
	}

	span := value.NewSpan(0, len(line))
	data := pipeline.Empty()
	for _, stage := range splitStages(words) {
		if len(stage) == 0 {
			return pipeline.Empty(), fmt.Errorf("parse error: empty pipeline stage")
		}
		call := &command.Call{Head: span, Args: stage}

		cmd, ok := e.FindCommand(stage[0])
		if !ok {
			data, err = e.runExternal(call, data)
		} else {
			data, err = e.RunCommand(cmd, stack, call, data)
		}
		if err != nil {
			return pipeline.Empty(), err
		}
	}
	return data, nil
}

func splitStages(words []string) [][]string {
	var stages [][]string
	cur := []string{}
	for _, w := range words {
		if w == "|" {
			stages = append(stages, cur)
			cur = []string{}
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 || len(stages) > 0 {
		stages = append(stages, cur)
	}
	return stages
}

// Stack is the mutable per-session environment.
type Stack struct {
	env map[string]string
}

var _ command.Stack = (*Stack)(nil)

func NewStack() *Stack {
	return &Stack{env: make(map[string]string)}
}

func (s *Stack) Getenv(name string) string {
	return s.env[name]
}

func (s *Stack) Setenv(name, value string) {
	s.env[name] = value
}
