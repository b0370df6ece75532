// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datumhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/plutus"
)

// Size is the length of a datum hash in bytes.
const Size = blake2b.Size256

// Digest is a BLAKE2b-256 datum hash.
type Digest [Size]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string { return FormatDigest(d) }

// HashBytes hashes datum bytes exactly as given. The ledger hashes the
// bytes that appear in the transaction, so a non-canonical encoding of
// the same Data hashes differently.
func HashBytes(encoded []byte) Digest {
	return blake2b.Sum256(encoded)
}

// HashData hashes the canonical encoding of data.
func HashData(data plutus.Data) (Digest, error) {
	encoded, err := codec.ToBytes(data)
	if err != nil {
		return Digest{}, err
	}
	return HashBytes(encoded), nil
}

// HashFile streams the file at path through BLAKE2b-256. The file must
// contain raw datum bytes, not hex.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return Digest{}, fmt.Errorf("initializing BLAKE2b-256: %w", err)
	}
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex encoding of a digest, the form datum
// hashes take in transaction JSON and explorer URLs.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a 64-character hex datum hash.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing datum hash: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("datum hash is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}
