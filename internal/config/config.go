package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nanopore-tools/h5audit/internal/hier"
	"github.com/nanopore-tools/h5audit/internal/report"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "h5audit.yml"

// Environment variables that override the config file.
const (
	EnvShowValues   = "H5AUDIT_SHOW_VALUES"
	EnvIndent       = "H5AUDIT_INDENT"
	EnvRepeatPrefix = "H5AUDIT_REPEAT_PREFIX"
	EnvTemplate     = "H5AUDIT_TEMPLATE"
)

// Config represents the analyzer configuration.
type Config struct {
	ShowValues   bool   `yaml:"show_values"`   // Print the value of constant leaves
	Indent       string `yaml:"indent"`        // Per-level indentation of the report
	RepeatPrefix string `yaml:"repeat_prefix"` // Group prefix that stops structure recording on its second match
	Template     string `yaml:"template"`      // Optional report template path
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Indent:       report.DefaultIndent,
		RepeatPrefix: hier.DefaultRepeatPrefix,
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is an error only when required.
// The result is not validated; callers validate once every override is merged.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// A .env file is optional.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvShowValues); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowValues, err)
		}
		c.ShowValues = b
	}
	if v, ok := os.LookupEnv(EnvIndent); ok {
		c.Indent = v
	}
	if v, ok := os.LookupEnv(EnvRepeatPrefix); ok {
		c.RepeatPrefix = v
	}
	if v, ok := os.LookupEnv(EnvTemplate); ok {
		c.Template = v
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Indent) != "" {
		return fmt.Errorf("indent must contain only whitespace, got %q", c.Indent)
	}
	if strings.ContainsAny(c.RepeatPrefix, " \t\n") {
		return fmt.Errorf("repeat_prefix must not contain whitespace, got %q", c.RepeatPrefix)
	}
	if c.Template != "" {
		info, err := os.Stat(c.Template)
		if err != nil {
			return fmt.Errorf("template: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("template is a directory: %s", c.Template)
		}
	}
	return nil
}

// ReportOptions returns the rendering options for this configuration.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		ShowValues:   c.ShowValues,
		Indent:       c.Indent,
		TemplatePath: c.Template,
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
