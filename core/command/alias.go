package command

import (
	"github.com/dead10ck/rowsh/core/pipeline"
)

// Alias is a named indirection to another command. Aliases are lookup
// table entries, not executable units: the dispatcher must substitute
// the wrapped target (or synthesize an external call from the wrapped
// expression) before invoking Run. An alias is immutable once
// constructed and is dropped when its defining scope ends.
type Alias struct {
	name string
	// cmd is the aliased-to command; nil when the alias targets an
	// external program the shell cannot introspect.
	cmd Command
	// wrappedCall is an owned snapshot of the expression the alias
	// expands to, taken at declaration time.
	wrappedCall Expression
	usage       string
	extraUsage  string
}

var _ Command = (*Alias)(nil)

// NewAlias constructs an alias. cmd may be nil for aliases that expand
// to external programs; wrappedCall is the expression written at the
// declaration site.
func NewAlias(name string, cmd Command, wrappedCall Expression, usage, extraUsage string) *Alias {
	return &Alias{
		name:        name,
		cmd:         cmd,
		wrappedCall: wrappedCall,
		usage:       usage,
		extraUsage:  extraUsage,
	}
}

func (a *Alias) Name() string { return a.name }

// Target returns the wrapped command, or nil for external aliases.
func (a *Alias) Target() Command { return a.cmd }

// WrappedCall returns the expression snapshot the alias expands to.
func (a *Alias) WrappedCall() Expression { return a.wrappedCall }

// Signature delegates to the wrapped command verbatim; the alias does
// not get to redeclare the interface. External aliases report a generic
// signature accepting any arguments.
func (a *Alias) Signature() Signature {
	if a.cmd != nil {
		return a.cmd.Signature()
	}
	return NewSignature(a.name).AllowUnknownArgs()
}

func (a *Alias) Usage() string      { return a.usage }
func (a *Alias) ExtraUsage() string { return a.extraUsage }

// Run always fails: running an alias without unwrapping it first is a
// dispatcher bug, and the returned error exists to make that bug loud.
func (a *Alias) Run(engine Engine, stack Stack, call *Call, input pipeline.Data) (pipeline.Data, error) {
	return pipeline.Empty(), &InternalError{
		Msg:  "can't run alias directly, unwrap it first",
		Span: call.Head,
	}
}

func (a *Alias) Type() Type { return TypeAlias }

func (a *Alias) AsAlias() *Alias { return a }
