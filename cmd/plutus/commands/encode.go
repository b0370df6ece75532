// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/datumfile"
	"github.com/bureau-foundation/plutus/lib/plutus"
	"github.com/bureau-foundation/plutus/lib/schema"
)

type encodeParams struct {
	ConfigFlags
	SchemaFlags
	HexOutput   bool   `flag:"hex-output,X" desc:"write lowercase hex instead of binary"`
	NodeFormat  bool   `flag:"node-format"  desc:"use the node layout (indefinite-length lists and constructor fields)"`
	Compression string `flag:"compress"     desc:"frame binary output: none, lz4 or zstd"`
}

func encodeCommand() *cli.Command {
	var params encodeParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to Plutus Data CBOR",
		Description: `Read JSON from a file or stdin and write the equivalent Plutus Data
CBOR to stdout. Comments and trailing commas are accepted (JSONC).

Without --type the input must be the detailed-schema JSON form written
by "plutus decode". With --type NAME the input is a schema-shaped value
and is encoded through that schema type, so struct fields, union
variants and map entries are checked on the way in.

Output uses the canonical layout (definite lengths, sorted map keys)
unless --node-format is given or the config selects format: node.

The output is binary. Pipe to "plutus diag" or use --hex-output to
inspect it.`,
		Usage: "plutus encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode detailed JSON to CBOR",
				Command:     `echo '{"constructor": 0, "fields": [{"int": 42}]}' | plutus encode > datum.cbor`,
			},
			{
				Description: "Encode a schema-shaped value as hex",
				Command:     `echo '{"policyId": "deadbeef", "assetName": "cafe", "amount": 1000}' | plutus encode --schema token.yaml --type Token -X`,
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     `echo '{"int": 42}' | plutus encode | plutus decode`,
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			compression, err := datumfile.ParseCompression(params.Compression)
			if err != nil {
				return cli.Validation("%w", err)
			}
			if params.HexOutput && compression != datumfile.CompressionNone {
				return cli.Validation("--compress applies to binary output and cannot be combined with --hex-output")
			}
			cfg, err := params.load(logger)
			if err != nil {
				return err
			}
			input, remainingArgs, err := readInput(args, false, cfg.Input.MaxBytes)
			if err != nil {
				return err
			}
			if err := noExtraArgs("encode", remainingArgs); err != nil {
				return err
			}
			datumSchema, err := params.resolve(cfg, logger)
			if err != nil {
				return err
			}

			format := cfg.EncodingFormat()
			if params.NodeFormat {
				format = codec.NodeFormat
			}
			logger.Debug("encoding datum", "format", format.String(), "schema", params.Type)

			encoded, err := encodeDatum(input, datumSchema, format)
			if err != nil {
				return err
			}
			return writeEncoded(command.Stdout(), encoded, params.HexOutput, compression)
		},
	}
	return command
}

// encodeDatum parses JSONC input, through datumSchema when it is
// non-nil, and encodes the result in format.
func encodeDatum(input []byte, datumSchema schema.Schema, format codec.Format) ([]byte, error) {
	text := jsonc.ToJSON(input)

	var data plutus.Data
	var err error
	if datumSchema == nil {
		data, err = plutus.ParseJSON(text)
	} else {
		var value any
		value, err = schema.FromJSON(text, datumSchema)
		if err == nil {
			data, err = schema.Encode(value, datumSchema)
		}
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	encoded, err := codec.Encode(data, format)
	if err != nil {
		return nil, cli.Internal("encode CBOR: %w", err)
	}
	return encoded, nil
}

func writeEncoded(w io.Writer, encoded []byte, hexOutput bool, compression datumfile.Compression) error {
	if hexOutput {
		_, err := fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}
	framed, err := datumfile.Compress(encoded, compression)
	if err != nil {
		return cli.Internal("%w", err)
	}
	_, err = w.Write(framed)
	return err
}
