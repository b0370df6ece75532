// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bureau-foundation/plutus/cmd/plutus/cli"
	"github.com/bureau-foundation/plutus/lib/datumfile"
)

// InputFlags selects how datum input is interpreted.
type InputFlags struct {
	HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// readInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin. zstd and LZ4
// framed input is decompressed. limit bounds the input size.
//
// When hexMode is true, the bytes are treated as hex-encoded CBOR:
// whitespace is stripped and the hex is decoded to binary.
//
// Returns the input bytes and the args with any consumed file path
// removed.
func readInput(args []string, hexMode bool, limit int64) ([]byte, []string, error) {
	var data []byte
	remainingArgs := args

	// An empty file (or an empty compressed frame) is still the input;
	// only the absence of a file falls back to stdin.
	fromFile := false
	if length := len(args); length > 0 {
		candidate := args[length-1]
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			data, err = datumfile.ReadFile(candidate, limit)
			if err != nil {
				return nil, nil, inputError(err)
			}
			fromFile = true
			remainingArgs = args[:length-1]
		}
	}

	if !fromFile {
		var err error
		data, err = datumfile.Read(stdin, limit)
		if err != nil {
			return nil, nil, inputError(fmt.Errorf("reading stdin: %w", err))
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, nil, cli.Validation("%w", err)
		}
		data = decoded
	}

	if len(data) == 0 {
		return nil, nil, cli.Validation("empty input")
	}
	return data, remainingArgs, nil
}

func inputError(err error) error {
	if errors.Is(err, datumfile.ErrTooLarge) {
		return cli.Validation("%w", err).
			WithHint("Raise input.max_bytes in the config file to accept larger input.")
	}
	return cli.Internal("%w", err)
}

// noExtraArgs rejects positional arguments left after input resolution.
func noExtraArgs(command string, remainingArgs []string) error {
	if len(remainingArgs) > 0 {
		return cli.Validation("%s takes no positional arguments besides an optional file path, got %q",
			command, remainingArgs[0])
	}
	return nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "d8 79 80" or "d87980").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
