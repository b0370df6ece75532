// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/schema"
	"github.com/bureau-foundation/plutus/lib/schemadef"
)

type schemaParams struct {
	ConfigFlags
	Schemas []string `flag:"schema" desc:"schema definition file (YAML or JSONC); repeatable"`
}

func schemaCommand() *cli.Command {
	var params schemaParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "schema",
		Summary: "List or describe schema types",
		Description: `Load schema definition files and list the types they define, or
describe one type.

Definition files come from the config's "schemas" list followed by any
--schema flags. Types may refer to types in other loaded files.

The description of a type is its resolved schema and its fingerprint:
a BLAKE3 hash of the schema's structure. Two types with the same
fingerprint encode and decode identically.`,
		Usage: "plutus schema [flags] [NAME]",
		Examples: []cli.Example{
			{
				Description: "List the types in a definition file",
				Command:     "plutus schema --schema token.yaml",
			},
			{
				Description: "Describe one type",
				Command:     "plutus schema --schema token.yaml Token",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("schema takes at most one type name, got %d arguments", len(args))
			}
			cfg, err := params.load(logger)
			if err != nil {
				return err
			}
			flags := SchemaFlags{Schemas: params.Schemas}
			registry, err := flags.loadRegistry(cfg, logger)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listTypes(registry, command.Stdout())
			}
			return describeType(registry, args[0], command.Stdout())
		},
	}
	return command
}

func listTypes(registry *schemadef.Registry, w io.Writer) error {
	names := registry.Names()
	if len(names) == 0 {
		return cli.Validation("no schema definitions are loaded").
			WithHint("Pass --schema FILE or list definition files under 'schemas' in the config.")
	}
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSOURCE")
	for _, name := range names {
		source, _ := registry.Source(name)
		fmt.Fprintf(writer, "%s\t%s\n", name, source)
	}
	return writer.Flush()
}

func describeType(registry *schemadef.Registry, name string, w io.Writer) error {
	resolved, err := registry.Lookup(name)
	if err != nil {
		return cli.NotFound("%w", err)
	}
	source, _ := registry.Source(name)
	writer := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(writer, "name:\t%s\n", name)
	fmt.Fprintf(writer, "source:\t%s\n", source)
	fmt.Fprintf(writer, "schema:\t%s\n", resolved)
	fmt.Fprintf(writer, "fingerprint:\t%s\n", schema.FingerprintOf(resolved))
	return writer.Flush()
}
