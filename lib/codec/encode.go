// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// Format selects the CBOR layout produced by [Encode]. Both formats
// decode to the same Data; they differ only in container framing and
// map entry order.
type Format uint8

const (
	// Canonical uses definite-length arrays and maps, with map entries
	// sorted by the byte-lexicographic order of their encoded keys.
	// Equal Data always produces identical bytes.
	Canonical Format = iota

	// NodeFormat matches cardano-node's serialization: non-empty lists
	// and constructor field lists are indefinite-length arrays, and map
	// entries keep their given order.
	NodeFormat
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case Canonical:
		return "canonical"
	case NodeFormat:
		return "node"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name as produced by [Format.String].
func ParseFormat(name string) (Format, error) {
	switch name {
	case "canonical", "":
		return Canonical, nil
	case "node":
		return NodeFormat, nil
	default:
		return 0, fmt.Errorf("unknown encoding format %q (expected canonical or node)", name)
	}
}

// ToBytes encodes data in the canonical format.
func ToBytes(data plutus.Data) ([]byte, error) {
	return Encode(data, Canonical)
}

// ToHex encodes data in the canonical format as lowercase hex.
func ToHex(data plutus.Data) (string, error) {
	encoded, err := ToBytes(data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(encoded), nil
}

// Encode encodes data in the given format.
func Encode(data plutus.Data, format Format) ([]byte, error) {
	if data == nil {
		return nil, plutus.Validation("cannot encode nil Data")
	}
	if format != Canonical && format != NodeFormat {
		return nil, plutus.Validation("unknown encoding format %s", format)
	}
	return appendData(nil, data, format)
}

func appendData(buffer []byte, data plutus.Data, format Format) ([]byte, error) {
	switch value := data.(type) {
	case plutus.Integer:
		return appendInteger(buffer, value.Value())
	case plutus.ByteArray:
		return appendByteString(buffer, value.Bytes())
	case plutus.List:
		return appendArray(buffer, value.Items(), format)
	case plutus.Map:
		return appendMap(buffer, value.Entries(), format)
	case plutus.Constr:
		return appendConstr(buffer, value, format)
	default:
		return nil, plutus.Validation("unsupported Data implementation %T", data)
	}
}

// appendInteger emits integers that fit in 64 bits as major type 0/1
// and everything else as a bignum (tag 2/3). Bignum payloads longer
// than chunkSize follow the same chunking rule as byte strings.
func appendInteger(buffer []byte, value *big.Int) ([]byte, error) {
	magnitude := value
	tag := tagPositiveBignum
	if value.Sign() < 0 {
		// Negative bignums carry -1 - n.
		magnitude = new(big.Int).Neg(value)
		magnitude.Sub(magnitude, big.NewInt(1))
		tag = tagNegativeBignum
	}
	if payload := magnitude.Bytes(); len(payload) > chunkSize {
		buffer = appendHead(buffer, majorTag, tag)
		return appendByteString(buffer, payload)
	}
	encoded, err := encMode.Marshal(value)
	if err != nil {
		return nil, plutus.Validation("encoding integer %s: %v", value, err)
	}
	return append(buffer, encoded...), nil
}

func appendByteString(buffer []byte, payload []byte) ([]byte, error) {
	if len(payload) <= chunkSize {
		encoded, err := encMode.Marshal(payload)
		if err != nil {
			return nil, plutus.Validation("encoding byte string: %v", err)
		}
		return append(buffer, encoded...), nil
	}
	buffer = appendIndefinite(buffer, majorByteString)
	for chunk := range slices.Chunk(payload, chunkSize) {
		buffer = appendHead(buffer, majorByteString, uint64(len(chunk)))
		buffer = append(buffer, chunk...)
	}
	return append(buffer, breakByte), nil
}

// appendArray emits items as an array. In node format non-empty arrays
// are indefinite-length.
func appendArray(buffer []byte, items []plutus.Data, format Format) ([]byte, error) {
	indefinite := format == NodeFormat && len(items) > 0
	if indefinite {
		buffer = appendIndefinite(buffer, majorArray)
	} else {
		buffer = appendHead(buffer, majorArray, uint64(len(items)))
	}
	var err error
	for index, item := range items {
		buffer, err = appendData(buffer, item, format)
		if err != nil {
			return nil, plutus.AtIndex(err, index)
		}
	}
	if indefinite {
		buffer = append(buffer, breakByte)
	}
	return buffer, nil
}

// encodedEntry is a map entry with both sides already encoded.
type encodedEntry struct {
	key   []byte
	value []byte
}

func appendMap(buffer []byte, entries []plutus.Entry, format Format) ([]byte, error) {
	encoded := make([]encodedEntry, len(entries))
	for index, entry := range entries {
		key, err := appendData(nil, entry.Key, format)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "key"), index)
		}
		value, err := appendData(nil, entry.Value, format)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "value"), index)
		}
		encoded[index] = encodedEntry{key: key, value: value}
	}
	if format == Canonical {
		slices.SortStableFunc(encoded, func(a, b encodedEntry) int {
			return bytes.Compare(a.key, b.key)
		})
	}

	buffer = appendHead(buffer, majorMap, uint64(len(encoded)))
	for _, entry := range encoded {
		buffer = append(buffer, entry.key...)
		buffer = append(buffer, entry.value...)
	}
	return buffer, nil
}

// appendConstr emits a constructor under its compact tag when the index
// has one, and as tag 102 over [index, fields] otherwise.
func appendConstr(buffer []byte, value plutus.Constr, format Format) ([]byte, error) {
	index := value.Index()
	switch {
	case index <= 6:
		buffer = appendHead(buffer, majorTag, tagConstrSmall+index)
	case index <= 127:
		buffer = appendHead(buffer, majorTag, tagConstrMedium+index-7)
	default:
		buffer = appendHead(buffer, majorTag, tagConstrGeneral)
		buffer = appendHead(buffer, majorArray, 2)
		buffer = appendHead(buffer, majorUnsigned, index)
	}
	return appendArray(buffer, value.Fields(), format)
}

// Canonicalize returns data with every map, at any depth, reordered by
// the encoded bytes of its keys. Encoding the result in either format
// yields the canonical entry order, and FromBytes(ToBytes(d)) is equal
// to Canonicalize(d).
func Canonicalize(data plutus.Data) (plutus.Data, error) {
	switch value := data.(type) {
	case plutus.List:
		items := value.Items()
		for index, item := range items {
			canonical, err := Canonicalize(item)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			items[index] = canonical
		}
		return plutus.NewList(items...), nil

	case plutus.Constr:
		fields := value.Fields()
		for index, field := range fields {
			canonical, err := Canonicalize(field)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			fields[index] = canonical
		}
		return plutus.NewConstr(value.Index(), fields...), nil

	case plutus.Map:
		type keyed struct {
			encoded []byte
			entry   plutus.Entry
		}
		entries := value.Entries()
		sorted := make([]keyed, len(entries))
		for index, entry := range entries {
			key, err := Canonicalize(entry.Key)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			mapped, err := Canonicalize(entry.Value)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			encoded, err := ToBytes(key)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			sorted[index] = keyed{encoded: encoded, entry: plutus.Entry{Key: key, Value: mapped}}
		}
		slices.SortStableFunc(sorted, func(a, b keyed) int {
			return bytes.Compare(a.encoded, b.encoded)
		})
		for index := range sorted {
			entries[index] = sorted[index].entry
		}
		return plutus.MakeMap(entries)

	case nil:
		return nil, plutus.Validation("cannot canonicalize nil Data")

	default:
		return data, nil
	}
}
