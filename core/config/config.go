// Package config loads and validates the shell configuration.
package config

import (
	_ "embed"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/dead10ck/rowsh/core/dialect"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name looked up inside a config directory.
const ConfigurationName = "config.yaml"

type Configuration struct {
	// Prompt is the REPL prompt text.
	Prompt string `json:"prompt" validate:"required"`

	// Color controls prompt and error coloring.
	Color string `json:"color" validate:"oneof=always auto never"`

	Dialect Dialect `json:"dialect"`

	// Aliases are installed into the root session scope at startup.
	Aliases []Alias `json:"aliases" validate:"unique=Name,dive"`
}

// Dialect overrides the base dialect decode commands start from. Empty
// fields keep the built-in CSV defaults.
type Dialect struct {
	Separator       string `json:"separator" validate:"omitempty,max=1"`
	RecordSeparator string `json:"record_separator" validate:"omitempty,max=1"`
	Quote           string `json:"quote" validate:"omitempty,max=1"`
	Comment         string `json:"comment" validate:"omitempty,max=1"`
	Escape          string `json:"escape" validate:"omitempty,max=1"`
	Trim            string `json:"trim" validate:"omitempty,oneof=none headers fields all"`
}

type Alias struct {
	Name string `json:"name" validate:"required"`
	// Expansion is the command line the alias expands to.
	Expansion string `json:"expansion" validate:"required"`
	Usage     string `json:"usage"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// ToDialect converts the configured overrides to a dialect config.
func (d Dialect) ToDialect() (dialect.Config, error) {
	cfg := dialect.DefaultConfig()

	set := func(field, s string, dst *rune) error {
		if s == "" {
			return nil
		}
		r, size := utf8.DecodeRuneInString(s)
		if size != len(s) {
			return &dialect.ConfigError{
				Msg: fmt.Sprintf("%s must be a single character, got %q", field, s),
			}
		}
		*dst = r
		return nil
	}

	if err := set("separator", d.Separator, &cfg.Separator); err != nil {
		return cfg, err
	}
	if err := set("record_separator", d.RecordSeparator, &cfg.RecordSeparator); err != nil {
		return cfg, err
	}
	if err := set("quote", d.Quote, &cfg.Quote); err != nil {
		return cfg, err
	}
	if err := set("comment", d.Comment, &cfg.Comment); err != nil {
		return cfg, err
	}
	if err := set("escape", d.Escape, &cfg.Escape); err != nil {
		return cfg, err
	}

	trim, err := dialect.ParseTrimPolicy(d.Trim)
	if err != nil {
		return cfg, err
	}
	cfg.Trim = trim
	return cfg, nil
}
