// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/schema"
)

type decodeParams struct {
	InputFlags
	ConfigFlags
	SchemaFlags
	ColorFlags
	Tree    bool `flag:"tree,t"    desc:"draw the datum as a tree instead of JSON"`
	Compact bool `flag:"compact,c" desc:"compact output (no indentation)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "decode",
		Summary: "Convert Plutus Data CBOR to JSON",
		Description: `Read Plutus Data CBOR from a file or stdin and write it to stdout.

Without --type the output is the detailed-schema JSON form: every node
is an object tagged by its kind ({"int": 42}, {"bytes": "cafe"},
{"list": [...]}, {"map": [{"k": ..., "v": ...}]},
{"constructor": 0, "fields": [...]}). Integers of any size are written
as exact JSON numbers.

With --type NAME the datum is decoded through a schema type from the
loaded definition files, and the output is the schema-shaped value:
structs become objects keyed by field name, unions and literals become
their variant values, byte arrays become hex strings.

With --tree the datum is drawn as an indented tree.

Input in both the canonical and the node layout is accepted.`,
		Usage: "plutus decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a datum file to JSON",
				Command:     "plutus decode datum.cbor",
			},
			{
				Description: "Decode hex from a pipeline",
				Command:     "echo d8799f44deadbeef42cafe1903e8ff | plutus decode --hex",
			},
			{
				Description: "Decode through a schema type",
				Command:     "plutus decode --schema token.yaml --type Token datum.cbor",
			},
			{
				Description: "Draw the datum structure",
				Command:     "plutus decode --tree datum.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if params.Tree && params.Type != "" {
				return cli.Validation("--tree and --type cannot be combined")
			}
			cfg, err := params.load(logger)
			if err != nil {
				return err
			}
			data, remainingArgs, err := readInput(args, params.HexInput, cfg.Input.MaxBytes)
			if err != nil {
				return err
			}
			if err := noExtraArgs("decode", remainingArgs); err != nil {
				return err
			}
			datumSchema, err := params.resolve(cfg, logger)
			if err != nil {
				return err
			}
			styler, err := params.styler(command, cfg)
			if err != nil {
				return err
			}
			return decodeDatum(data, command.Stdout(), decodeOptions{
				schema:  datumSchema,
				tree:    params.Tree,
				compact: params.Compact,
				styler:  styler,
			})
		},
	}
	return command
}

type decodeOptions struct {
	schema  schema.Schema
	tree    bool
	compact bool
	styler  *cli.Styler
}

// decodeDatum decodes one datum from encoded and writes it to w in the
// form selected by options.
func decodeDatum(encoded []byte, w io.Writer, options decodeOptions) error {
	data, err := codec.FromBytes(encoded)
	if err != nil {
		return cli.Validation("%w", err)
	}

	if options.tree {
		_, err := fmt.Fprintln(w, options.styler.RenderData(data))
		return err
	}

	var value any = data
	if options.schema != nil {
		value, err = schema.Decode(data, options.schema)
		if err != nil {
			return cli.Validation("%w", err)
		}
	}

	return writeJSON(w, value, options.compact, options.styler)
}

// writeJSON marshals value as JSON and writes it to w followed by a
// newline, highlighted when the styler has color.
func writeJSON(w io.Writer, value any, compact bool, styler *cli.Styler) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return cli.Internal("marshal JSON: %w", err)
	}

	text := string(output)
	if styler != nil {
		text = styler.HighlightJSON(text)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
