// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies a schema by its structure: a BLAKE3 keyed hash
// of the schema's canonical description.
type Fingerprint [32]byte

// String returns the fingerprint as lowercase hex.
func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// fingerprintDomainKey is the ASCII domain name "plutus.schema",
// zero-padded to the 32 bytes BLAKE3 keyed mode requires. Changing it
// changes every fingerprint.
var fingerprintDomainKey = [32]byte{
	'p', 'l', 'u', 't', 'u', 's', '.', 's', 'c', 'h', 'e', 'm', 'a', 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// FingerprintOf returns the fingerprint of schema. Two schemas have
// the same fingerprint exactly when their String descriptions match,
// so Filter predicates are identified by their message alone.
func FingerprintOf(schema Schema) Fingerprint {
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("schema: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(schema.String()))
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}
