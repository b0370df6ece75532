// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/datumhash"
)

type hashParams struct {
	InputFlags
	ConfigFlags
	Canonical bool `flag:"canonical" desc:"hash the canonical re-encoding instead of the input bytes"`
}

func hashCommand() *cli.Command {
	var params hashParams
	var command *cli.Command

	command = &cli.Command{
		Name:    "hash",
		Summary: "Compute the datum hash of CBOR input",
		Description: `Compute the BLAKE2b-256 datum hash of the input and write it as
lowercase hex.

The hash covers the exact input bytes, so the same datum in the node
and canonical layouts hashes differently. The input must still decode
as Plutus Data. With --canonical the datum is re-encoded canonically
before hashing.`,
		Usage: "plutus hash [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Hash a datum file",
				Command:     "plutus hash datum.cbor",
			},
			{
				Description: "Hash the unit datum",
				Command:     "echo d87980 | plutus hash --hex",
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
			if err := noExtraArgs("hash", remainingArgs); err != nil {
				return err
			}
			digest, err := hashDatum(data, params.Canonical)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(command.Stdout(), digest)
			return err
		},
	}
	return command
}

func hashDatum(data []byte, canonical bool) (datumhash.Digest, error) {
	value, err := codec.FromBytes(data)
	if err != nil {
		return datumhash.Digest{}, cli.Validation("%w", err)
	}
	if !canonical {
		return datumhash.HashBytes(data), nil
	}
	digest, err := datumhash.HashData(value)
	if err != nil {
		return datumhash.Digest{}, cli.Internal("%w", err)
	}
	return digest, nil
}
