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

type validateParams struct {
	InputFlags
	ConfigFlags
}

func validateCommand() *cli.Command {
	var params validateParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "validate",
		Summary: "Check whether CBOR is canonical Plutus Data",
		Description: `Read CBOR and verify that it is a single Plutus Data item in the
canonical layout. Exits 0 with "valid" if it is, exits 1 and reports
the first differing byte if it is well-formed Plutus Data in another
layout, and exits 2 if it is not Plutus Data at all.

Validation decodes the input and re-encodes it canonically, then
compares the bytes. This catches indefinite-length lists, unsorted
map keys, non-minimal integer heads and unchunked long byte strings.`,
		Usage: "plutus validate [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a datum file",
				Command:     "plutus validate datum.cbor",
			},
			{
				Description: "Validate hex from a pipeline",
				Command:     "echo d8798344deadbeef42cafe1903e8 | plutus validate --hex",
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
			if err := noExtraArgs("validate", remainingArgs); err != nil {
				return err
			}
			return validateDatum(data, command.Stdout())
		},
	}
	return command
}

// validateDatum writes "valid" for canonical input. For other
// well-formed datums it writes where the input first differs from the
// canonical encoding and returns an exit error.
func validateDatum(data []byte, w io.Writer) error {
	canonical, err := codec.IsCanonical(data)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if canonical {
		_, err := fmt.Fprintln(w, "valid")
		return err
	}

	value, err := codec.FromBytes(data)
	if err != nil {
		return cli.Validation("%w", err)
	}
	reencoded, err := codec.ToBytes(value)
	if err != nil {
		return cli.Internal("re-encode CBOR: %w", err)
	}
	if _, err := fmt.Fprintln(w, describeMismatch(data, reencoded)); err != nil {
		return err
	}
	return &cli.ExitError{Code: 1}
}

func describeMismatch(original, reencoded []byte) string {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}
	return fmt.Sprintf("not canonical: first difference at byte %d (original %d bytes, canonical %d bytes)",
		offset, len(original), len(reencoded))
}
