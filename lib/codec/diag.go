// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// diagMode renders byte strings as hex, matching how ByteArray values
// are written everywhere else.
var diagMode cbor.DiagMode

func init() {
	var err error
	diagMode, err = cbor.DiagOptions{
		ByteStringEncoding: cbor.ByteStringBase16Encoding,
		MaxNestedLevels:    maxNestedLevels,
	}.DiagMode()
	if err != nil {
		panic("codec: CBOR diagnostic mode initialization failed: " + err.Error())
	}
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. It accepts any well-formed CBOR, not only
// Plutus Data, which makes it useful for inspecting inputs that
// [FromBytes] rejects.
func Diagnose(data []byte) (string, error) {
	text, err := diagMode.Diagnose(data)
	if err != nil {
		return "", plutus.Decode("diagnosing CBOR: %w", err)
	}
	return text, nil
}

// DiagnoseFirst returns the diagnostic notation for the first data item
// in data along with the remaining bytes, for walking CBOR sequences.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	text, rest, err := diagMode.DiagnoseFirst(data)
	if err != nil {
		return "", rest, plutus.Decode("diagnosing CBOR: %w", err)
	}
	return text, rest, nil
}

// DiagnoseData returns the diagnostic notation of the canonical
// encoding of value.
func DiagnoseData(value plutus.Data) (string, error) {
	encoded, err := ToBytes(value)
	if err != nil {
		return "", err
	}
	return Diagnose(encoded)
}
