// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"math/big"
	"math/rand/v2"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// ArbitraryData returns a random Data tree no deeper than depth. Leaves
// cover the encoding boundaries: 64-bit limits, bignums, byte strings
// around the 64-byte chunk size, and constructor indices in each tag
// range. Maps have unique keys but are not in canonical order.
func ArbitraryData(r *rand.Rand, depth int) plutus.Data {
	if depth <= 0 {
		return arbitraryLeaf(r)
	}
	switch r.IntN(5) {
	case 0, 1:
		return arbitraryLeaf(r)
	case 2:
		items := make([]plutus.Data, r.IntN(5))
		for index := range items {
			items[index] = ArbitraryData(r, depth-1)
		}
		return plutus.NewList(items...)
	case 3:
		return arbitraryMap(r, depth)
	default:
		fields := make([]plutus.Data, r.IntN(4))
		for index := range fields {
			fields[index] = ArbitraryData(r, depth-1)
		}
		return plutus.NewConstr(ArbitraryConstrIndex(r), fields...)
	}
}

func arbitraryLeaf(r *rand.Rand) plutus.Data {
	if r.IntN(2) == 0 {
		return plutus.IntegerFromBig(ArbitraryInteger(r))
	}
	return plutus.ByteArrayFromBytes(ArbitraryBytes(r))
}

func arbitraryMap(r *rand.Rand, depth int) plutus.Data {
	count := r.IntN(4)
	entries := make([]plutus.Entry, 0, count)
	for len(entries) < count {
		candidate := plutus.Entry{Key: ArbitraryData(r, depth-1), Value: ArbitraryData(r, depth-1)}
		if _, err := plutus.MakeMap(append(entries, candidate)); err != nil {
			continue
		}
		entries = append(entries, candidate)
	}
	return plutus.NewMap(entries...)
}

// ArbitraryInteger returns a random integer biased toward encoding
// boundaries.
func ArbitraryInteger(r *rand.Rand) *big.Int {
	switch r.IntN(6) {
	case 0:
		return big.NewInt(int64(r.IntN(48)) - 24)
	case 1:
		return big.NewInt(r.Int64() - r.Int64())
	case 2:
		// Around ±2^64, where major type 0/1 gives way to bignums.
		boundary := new(big.Int).Lsh(big.NewInt(1), 64)
		boundary.Add(boundary, big.NewInt(int64(r.IntN(5))-2))
		if r.IntN(2) == 0 {
			boundary.Neg(boundary)
		}
		return boundary
	case 3:
		// Bignums whose magnitude exceeds one 64-byte chunk.
		value := new(big.Int).Lsh(big.NewInt(1), uint(520+r.IntN(64)))
		value.Add(value, new(big.Int).SetUint64(r.Uint64()))
		if r.IntN(2) == 0 {
			value.Neg(value)
		}
		return value
	default:
		value := new(big.Int).Lsh(big.NewInt(int64(r.IntN(1000)+1)), uint(r.IntN(200)))
		if r.IntN(2) == 0 {
			value.Neg(value)
		}
		return value
	}
}

// ArbitraryBytes returns random bytes whose length clusters around the
// 64-byte chunk boundary.
func ArbitraryBytes(r *rand.Rand) []byte {
	var length int
	switch r.IntN(4) {
	case 0:
		length = 0
	case 1:
		length = 62 + r.IntN(5)
	case 2:
		length = 100 + r.IntN(100)
	default:
		length = r.IntN(33)
	}
	data := make([]byte, length)
	for index := range data {
		data[index] = byte(r.UintN(256))
	}
	return data
}

// ArbitraryHex returns [ArbitraryBytes] as lowercase hex.
func ArbitraryHex(r *rand.Rand) string {
	return hex.EncodeToString(ArbitraryBytes(r))
}

// ArbitraryConstrIndex returns a constructor index from one of the
// three tag ranges.
func ArbitraryConstrIndex(r *rand.Rand) uint64 {
	switch r.IntN(4) {
	case 0, 1:
		return uint64(r.IntN(7))
	case 2:
		return uint64(7 + r.IntN(121))
	default:
		if r.IntN(2) == 0 {
			return 128 + uint64(r.IntN(1000))
		}
		return r.Uint64()
	}
}
