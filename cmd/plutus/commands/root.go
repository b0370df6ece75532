// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/version"
)

// Root builds and returns the complete plutus command tree.
func Root() *cli.Command {
	root := &cli.Command{
		Name: "plutus",
		Description: `plutus: inspect and produce Plutus Data.

Convert between Plutus Data CBOR and JSON, check canonical encoding,
compute datum hashes, and encode or decode through schema types loaded
from YAML or JSONC definition files.

All commands that read a datum take an optional trailing file path and
read stdin otherwise. zstd and LZ4 framed files are decompressed
transparently. With --hex, input is hex text; whitespace is ignored.

Configuration is read from --config or $PLUTUS_CONFIG. Set
$PLUTUS_LOG_LEVEL=debug for diagnostic logging on stderr.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
			validateCommand(),
			hashCommand(),
			schemaCommand(),
		},
	}

	root.Subcommands = append(root.Subcommands, &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments")
			}
			_, err := fmt.Fprintf(root.Stdout(), "plutus %s\n", version.Full())
			return err
		},
	})

	return root
}
