package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"

	"github.com/dead10ck/rowsh/core/config"
)

var errColor = color.New(color.FgRed, color.Bold)

// Shell is the interactive read-eval-display loop.
type Shell struct {
	Engine   *EngineState
	Stack    *Stack
	Readline *readline.Instance

	out    io.Writer
	errOut io.Writer
}

// NewShell builds an interactive shell reading from stdin and writing
// to out.
func NewShell(engine *EngineState, stack *Stack, cfg *config.Configuration, stdin io.ReadCloser, out, errOut io.Writer) (*Shell, error) {
	switch cfg.Color {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}

	prompt := cfg.Prompt
	if !color.NoColor {
		prompt = color.New(color.FgGreen, color.Bold).Sprint(prompt)
	}

	rlCfg := &readline.Config{
		Prompt: prompt,
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: out,
		Stderr: errOut,
	}
	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Engine:   engine,
		Stack:    stack,
		Readline: rl,
		out:      out,
		errOut:   errOut,
	}, nil
}

// Run reads lines until EOF or an exit command. Each session gets its
// own alias scope, dropped when the session ends.
func (s *Shell) Run() error {
	defer s.Readline.Close()

	s.Engine.EnterScope()
	defer s.Engine.ExitScope()

	for {
		line, err := s.Readline.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		default:
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		data, err := s.Engine.Eval(s.Stack, line)
		if err != nil {
			errColor.Fprintf(s.errOut, "error: %v\n", err)
			continue
		}
		if err := Display(s.out, data); err != nil {
			errColor.Fprintf(s.errOut, "error: %v\n", err)
		}
	}
}

// RunScript evaluates a script line by line inside a fresh alias scope
// and displays each line's output. Blank lines and #-comments are
// skipped.
func RunScript(engine *EngineState, stack *Stack, script string, out io.Writer) error {
	engine.EnterScope()
	defer engine.ExitScope()

	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data, err := engine.Eval(stack, line)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		if err := Display(out, data); err != nil {
			return err
		}
	}
	return nil
}
