// Package command defines the polymorphic unit of execution the
// dispatcher runs, including the alias indirection that must be
// unwrapped before execution.
package command

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/dead10ck/rowsh/core/dialect"
	"github.com/dead10ck/rowsh/core/logger"
	"github.com/dead10ck/rowsh/core/pipeline"
	"github.com/dead10ck/rowsh/core/value"
)

// Type classifies a command for dispatch and introspection.
type Type int

const (
	TypeBuiltin Type = iota
	TypeCustom
	TypeAlias
	TypePlugin
	TypeKeyword
)

func (t Type) String() string {
	switch t {
	case TypeBuiltin:
		return "built-in"
	case TypeCustom:
		return "custom"
	case TypeAlias:
		return "alias"
	case TypePlugin:
		return "plugin"
	case TypeKeyword:
		return "keyword"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Expression is the call expression an alias captured when it was
// declared. The full syntax tree lives with the parser; the core only
// needs the written text and its span.
type Expression interface {
	Span() value.Span
	String() string
}

// RawExpression is an unparsed call expression snapshot.
type RawExpression struct {
	Text string
	At   value.Span
}

func (e RawExpression) Span() value.Span { return e.At }
func (e RawExpression) String() string   { return e.Text }

// Call is a single invocation of a command: the argument words plus
// the span of the command name as written.
type Call struct {
	// Head is the span of the command name.
	Head value.Span
	// Args is the argument vector; Args[0] is the command name.
	Args []string
}

// Name returns the invoked command name.
func (c *Call) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Signature declares a command's interface. Flag binding happens inside
// each command; the core carries only what dispatch and help need.
type Signature struct {
	Name string
	// Use is a one-line usage string.
	Use string
	// AllowsUnknownArgs accepts arguments the signature does not
	// declare, as for external programs the shell cannot introspect.
	AllowsUnknownArgs bool
}

func NewSignature(name string) Signature {
	return Signature{Name: name}
}

func (s Signature) WithUse(use string) Signature {
	s.Use = use
	return s
}

func (s Signature) AllowUnknownArgs() Signature {
	s.AllowsUnknownArgs = true
	return s
}

// Engine is the narrow slice of engine state commands may touch.
type Engine interface {
	// Fs is the filesystem commands read from.
	Fs() afero.Fs
	// Diagnostics receives recoverable decode reports.
	Diagnostics() logger.Sink
	// Interrupt is the shared cancellation flag threaded through every
	// stream the engine produces.
	Interrupt() *pipeline.Interrupt
	// DefaultDialect is the base dialect decode commands start from
	// before applying their own flags.
	DefaultDialect() dialect.Config
	// FindCommand resolves a name against session aliases and builtins.
	FindCommand(name string) (Command, bool)
	// RegisterAlias installs an alias in the current session scope.
	RegisterAlias(a *Alias) error
	// Aliases lists the visible session aliases, innermost scope first.
	Aliases() []*Alias
}

// Stack holds the mutable per-invocation environment.
type Stack interface {
	Getenv(name string) string
	Setenv(name, value string)
}

// Command is a unit of execution. Concrete variants are directly
// runnable; the Alias variant is a lookup-table entry that the
// dispatcher must substitute before running.
type Command interface {
	Name() string
	Signature() Signature
	// Usage is a one-line description; ExtraUsage holds anything more.
	Usage() string
	ExtraUsage() string
	Run(engine Engine, stack Stack, call *Call, input pipeline.Data) (pipeline.Data, error)
	Type() Type
	// AsAlias reports the command as an alias, or nil for directly
	// runnable commands. This is the only way the dispatcher
	// distinguishes an alias from a concrete command.
	AsAlias() *Alias
}

// InternalError reports a broken dispatcher invariant. It signals a bug
// in the caller, never bad user input, and is not recoverable.
type InternalError struct {
	Msg  string
	Span value.Span
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}
