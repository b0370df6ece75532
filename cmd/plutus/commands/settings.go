// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/config"
	"github.com/bureau-foundation/plutus/lib/schema"
	"github.com/bureau-foundation/plutus/lib/schemadef"
)

// ConfigFlags selects the configuration file. Every command that reads
// input embeds it, since the config bounds input size.
type ConfigFlags struct {
	ConfigPath string `flag:"config" desc:"configuration file (default: $PLUTUS_CONFIG)"`
}

// load returns the configuration from --config, then PLUTUS_CONFIG,
// then built-in defaults.
func (f *ConfigFlags) load(logger *slog.Logger) (*config.Config, error) {
	switch {
	case f.ConfigPath != "":
		cfg, err := config.LoadFile(f.ConfigPath)
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		logger.Debug("loaded config", "path", f.ConfigPath)
		return cfg, nil

	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err := config.Load()
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		logger.Debug("loaded config", "path", os.Getenv(config.EnvironmentVariable))
		return cfg, nil

	default:
		return config.Default(), nil
	}
}

// SchemaFlags selects a schema type from definition files.
type SchemaFlags struct {
	Schemas []string `flag:"schema" desc:"schema definition file (YAML or JSONC); repeatable"`
	Type    string   `flag:"type" desc:"schema type name for schema-shaped JSON"`
}

// loadRegistry loads the config's schema files followed by --schema
// files into one resolved registry.
func (f *SchemaFlags) loadRegistry(cfg *config.Config, logger *slog.Logger) (*schemadef.Registry, error) {
	paths := append(append([]string(nil), cfg.Schemas...), f.Schemas...)
	if len(paths) == 0 {
		return schemadef.NewRegistry(), nil
	}
	registry, err := schemadef.Load(paths...)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	logger.Debug("loaded schema definitions", "files", len(paths), "types", len(registry.Names()))
	return registry, nil
}

// resolve returns the schema named by --type, or nil when --type is
// not set.
func (f *SchemaFlags) resolve(cfg *config.Config, logger *slog.Logger) (schema.Schema, error) {
	if f.Type == "" {
		return nil, nil
	}
	registry, err := f.loadRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}
	if len(registry.Names()) == 0 {
		return nil, cli.Validation("--type %s given but no schema definitions are loaded", f.Type).
			WithHint("Pass --schema FILE or list definition files under 'schemas' in the config.")
	}
	resolved, err := registry.Lookup(f.Type)
	if err != nil {
		return nil, cli.NotFound("%w", err).
			WithHint("Run 'plutus schema' with the same --schema flags to list defined types.")
	}
	return resolved, nil
}

// ColorFlags controls styled output.
type ColorFlags struct {
	Color string `flag:"color" desc:"style output: auto, always or never (default from config)"`
}

func (f *ColorFlags) styler(command *cli.Command, cfg *config.Config) (*cli.Styler, error) {
	mode := f.Color
	if mode == "" {
		mode = string(cfg.Color)
	}
	return cli.NewStyler(command.Stdout(), mode)
}
