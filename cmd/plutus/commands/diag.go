// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/codec"
)

type diagParams struct {
	InputFlags
	ConfigFlags
	Canonical bool `flag:"canonical" desc:"show the canonical re-encoding instead of the input bytes"`
}

func diagCommand() *cli.Command {
	var params diagParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR to diagnostic notation",
		Description: `Read CBOR from a file or stdin and write RFC 8949 Extended Diagnostic
Notation (EDN) to stdout, one line per item of a CBOR sequence.

Unlike JSON output, diagnostic notation shows the exact wire layout:
constructor tags, indefinite-length lists and chunked byte strings.

  121([h'deadbeef', 1000])     constructor 0 with two fields
  [_ 1, 2]                     indefinite-length list (node layout)
  (_ h'00...', h'00...')       byte string longer than 64 bytes

With --canonical the input is decoded as a single datum and the
canonical re-encoding is shown instead.`,
		Usage: "plutus diag [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for a datum file",
				Command:     "plutus diag datum.cbor",
			},
			{
				Description: "Compare with the canonical layout",
				Command:     "plutus diag --canonical datum.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.load(logger)
			if err != nil {
				return err
			}
			data, remainingArgs, err := readInput(args, params.HexInput, cfg.Input.MaxBytes)
			if err != nil {
				return err
			}
			if err := noExtraArgs("diag", remainingArgs); err != nil {
				return err
			}
			if params.Canonical {
				return diagCanonical(data, command.Stdout())
			}
			return diagSequence(data, command.Stdout())
		},
	}
	return command
}

// diagSequence writes diagnostic notation for each item of data.
func diagSequence(data []byte, w io.Writer) error {
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return cli.Validation("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}

func diagCanonical(data []byte, w io.Writer) error {
	value, err := codec.FromBytes(data)
	if err != nil {
		return cli.Validation("%w", err)
	}
	notation, err := codec.DiagnoseData(value)
	if err != nil {
		return cli.Internal("%w", err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}
