package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"insertable-generator/internal/classify"
	"insertable-generator/internal/common"
	"insertable-generator/internal/parse"
	"insertable-generator/internal/record"
	"insertable-generator/internal/synth"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = ".insertable.yaml"

// Config is the generator configuration.
type Config struct {
	Version          string   `yaml:"version"`
	Prefix           string   `yaml:"prefix"`
	KeyField         string   `yaml:"key_field"`
	Directive        string   `yaml:"directive"`
	KeyDirective     string   `yaml:"key_directive"`
	DeriveDirective  string   `yaml:"derive_directive"`
	TableDirective   string   `yaml:"table_directive"`
	InsertableMarker string   `yaml:"insertable_marker"`
	IdentityMarkers  []string `yaml:"identity_markers"`
	OutputSuffix     string   `yaml:"output_suffix"`
}

// Default returns the default configuration.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOptional loads path, falling back to the defaults when path is the
// default file name and does not exist.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	c, err := LoadFile(path)
	if err != nil && path == DefaultFile && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return c, err
}

// Parse parses YAML data into a Config, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}

	p, s := parse.DefaultOptions(), synth.DefaultOptions()

	def(&c.Version, "1")
	def(&c.Prefix, s.Prefix)
	def(&c.KeyField, s.KeyField)
	def(&c.Directive, p.Directive)
	def(&c.KeyDirective, p.KeyDirective)
	def(&c.DeriveDirective, s.Names.Derive)
	def(&c.TableDirective, s.Names.Table)
	def(&c.InsertableMarker, s.InsertableMarker)
	def(&c.OutputSuffix, "_insertable.go")

	if c.IdentityMarkers == nil {
		c.IdentityMarkers = s.IdentityMarkers
	}
}

// Validate checks the configuration for values that would produce invalid
// Go source or ambiguous directives.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if !token.IsIdentifier(c.Prefix) {
		errs = append(errs, fmt.Errorf("prefix %q is not a Go identifier", c.Prefix))
	}

	if !token.IsIdentifier(c.KeyField) {
		errs = append(errs, fmt.Errorf("key_field %q is not a Go identifier", c.KeyField))
	}

	directives := []struct{ key, name string }{
		{"directive", c.Directive},
		{"key_directive", c.KeyDirective},
		{"derive_directive", c.DeriveDirective},
		{"table_directive", c.TableDirective},
	}

	seen := map[string]string{}

	for _, d := range directives {
		if !record.IsDirective("//"+d.name) || strings.ContainsAny(d.name, " \t") {
			errs = append(errs, fmt.Errorf("%s %q is not a directive name (want ns:name)", d.key, d.name))
		}

		if other, ok := seen[d.name]; ok {
			errs = append(errs, fmt.Errorf("%s and %s are both %q", other, d.key, d.name))
		}

		seen[d.name] = d.key
	}

	for _, m := range append([]string{c.InsertableMarker}, c.IdentityMarkers...) {
		if !common.IsQualifiedIdent(m) {
			errs = append(errs, fmt.Errorf("marker %q is not a Go identifier", m))
		}
	}

	if slices.Contains(c.IdentityMarkers, c.InsertableMarker) {
		errs = append(errs, fmt.Errorf("insertable_marker %q is also an identity marker", c.InsertableMarker))
	}

	if !strings.HasSuffix(c.OutputSuffix, ".go") || strings.HasSuffix(c.OutputSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("output_suffix %q must end in .go and not _test.go", c.OutputSuffix))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Parse returns the parser options.
func (c *Config) Parse() parse.Options {
	return parse.Options{
		Directive:    c.Directive,
		KeyDirective: c.KeyDirective,
	}
}

// Synth returns the synthesizer options.
func (c *Config) Synth() synth.Options {
	return synth.Options{
		Prefix:       c.Prefix,
		KeyField:     c.KeyField,
		KeyDirective: c.KeyDirective,
		Names: classify.Names{
			Derive: c.DeriveDirective,
			Table:  c.TableDirective,
		},
		InsertableMarker: c.InsertableMarker,
		IdentityMarkers:  slices.Clone(c.IdentityMarkers),
	}
}
