// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/plutus/lib/codec"
)

// EnvironmentVariable names the environment variable [Load] reads the
// configuration path from.
const EnvironmentVariable = "PLUTUS_CONFIG"

// ColorMode controls styled terminal output.
type ColorMode string

const (
	// ColorAuto styles output only when writing to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever disables styling.
	ColorNever ColorMode = "never"
)

// Config is the configuration for the plutus command.
type Config struct {
	// Format is the binary layout used when encoding: "canonical" or
	// "node". Command-line flags take precedence.
	Format string `yaml:"format"`

	// Schemas lists schema definition files loaded for every command
	// that accepts --type. Relative paths are resolved against the
	// directory containing the configuration file.
	Schemas []string `yaml:"schemas"`

	// Color controls syntax highlighting and tree styling.
	Color ColorMode `yaml:"color"`

	// Input configures how input is read.
	Input InputConfig `yaml:"input"`
}

// InputConfig bounds the input the command will read.
type InputConfig struct {
	// MaxBytes is the largest input accepted from a file or stdin,
	// after hex decoding. Default: 16 MiB.
	MaxBytes int64 `yaml:"max_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Format: codec.Canonical.String(),
		Color:  ColorAuto,
		Input: InputConfig{
			MaxBytes: 16 << 20,
		},
	}
}

// Load loads configuration from the PLUTUS_CONFIG environment variable.
//
// There is no search path: if PLUTUS_CONFIG is not set, Load fails and
// the caller decides whether to fall back to [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your plutus.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default]. ${VAR} and ${VAR:-default} references in schema paths are
// expanded after loading.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands variables in schema paths and anchors
// relative paths at base.
func (c *Config) expandVariables(base string) {
	vars := map[string]string{
		"HOME":       os.Getenv("HOME"),
		"CONFIG_DIR": base,
	}
	for index, path := range c.Schemas {
		expanded := expandVars(path, vars)
		if expanded != "" && !filepath.IsAbs(expanded) {
			expanded = filepath.Join(base, expanded)
		}
		c.Schemas[index] = expanded
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := codec.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color must be one of: auto, always, never (got %q)", c.Color))
	}

	if c.Input.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("input.max_bytes must be positive"))
	}

	for index, path := range c.Schemas {
		if path == "" {
			errs = append(errs, fmt.Errorf("schemas[%d] is empty", index))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EncodingFormat returns the configured binary layout.
func (c *Config) EncodingFormat() codec.Format {
	format, err := codec.ParseFormat(c.Format)
	if err != nil {
		return codec.Canonical
	}
	return format
}
