package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/dead10ck/rowsh/core/dialect"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Prompt)
	assert.NotEmpty(t, cfg.Aliases)
}

func TestValidateRejectsBadColor(t *testing.T) {
	cfg := Default()
	cfg.Color = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsDuplicateAliases(t *testing.T) {
	cfg := Default()
	cfg.Aliases = []Alias{
		{Name: "x", Expansion: "from-csv"},
		{Name: "x", Expansion: "from-tsv"},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsWideSeparator(t *testing.T) {
	cfg := Default()
	cfg.Dialect.Separator = "||"
	assert.Error(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	contents := `
prompt: "test> "
color: never
dialect:
  separator: ";"
aliases: []
`
	require.NoError(t, afero.WriteFile(fs, "/etc/rowsh/config.yaml", []byte(contents), 0644))

	// Loading by directory or by file path are equivalent.
	for _, path := range []string{"/etc/rowsh", "/etc/rowsh/config.yaml"} {
		cfg, err := Load(fs, path)
		require.NoError(t, err)
		assert.Equal(t, "test> ", cfg.Prompt)
		assert.Equal(t, ";", cfg.Dialect.Separator)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("prompt: x\ncolor: auto\nbogus: true\n"), 0644))

	_, err := Load(fs, "/cfg")
	assert.Error(t, err)
}

func TestToDialect(t *testing.T) {
	d := Dialect{Separator: ";", Comment: "#", Trim: "all"}

	cfg, err := d.ToDialect()
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.Separator)
	assert.Equal(t, '#', cfg.Comment)
	assert.Equal(t, dialect.TrimAll, cfg.Trim)
	// Unset fields keep the CSV defaults.
	assert.Equal(t, '"', cfg.Quote)
	assert.Equal(t, '\n', cfg.RecordSeparator)
	assert.Equal(t, rune(0), cfg.Escape)
}

func TestToDialectRejectsBadTrim(t *testing.T) {
	_, err := Dialect{Trim: "bogus"}.ToDialect()
	var cfgErr *dialect.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
