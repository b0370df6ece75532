// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// FromBytes decodes exactly one Plutus Data item from data. Definite
// and indefinite lengths are both accepted, as are maps in any key
// order. Truncated input, trailing bytes, item types outside the Plutus
// Data subset, unknown tags, malformed bignums and duplicate map keys
// fail with a decode error.
func FromBytes(data []byte) (plutus.Data, error) {
	if len(data) == 0 {
		return nil, plutus.Decode("empty input")
	}
	if err := decMode.Wellformed(data); err != nil {
		var extraneous *cbor.ExtraneousDataError
		if errors.As(err, &extraneous) {
			return nil, plutus.Decode("trailing bytes after data item: %w", err)
		}
		return nil, plutus.Decode("malformed CBOR: %w", err)
	}

	reader := decoder{data: data}
	value, err := reader.item(0)
	if err != nil {
		return nil, err
	}
	if reader.offset != len(data) {
		return nil, plutus.Decode("%d trailing bytes after data item", len(data)-reader.offset)
	}
	return value, nil
}

// FromHex decodes a hex string and then its CBOR content.
func FromHex(text string) (plutus.Data, error) {
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, plutus.Decode("invalid hex input: %w", err)
	}
	return FromBytes(data)
}

// IsCanonical reports whether data is the canonical encoding of the
// Plutus Data it contains.
func IsCanonical(data []byte) (bool, error) {
	value, err := FromBytes(data)
	if err != nil {
		return false, err
	}
	encoded, err := ToBytes(value)
	if err != nil {
		return false, err
	}
	return bytes.Equal(encoded, data), nil
}

// decoder walks a buffer that has already passed the well-formedness
// check. Leaves are delegated to fxamacker; containers and tags are
// walked here so that map order and indefinite framing stay visible.
type decoder struct {
	data   []byte
	offset int
}

func (d *decoder) item(depth int) (plutus.Data, error) {
	if depth > maxNestedLevels {
		return nil, plutus.Decode("nesting exceeds %d levels", maxNestedLevels)
	}
	itemHead, next, err := readHead(d.data, d.offset)
	if err != nil {
		return nil, plutus.Decode("%w", err)
	}

	switch itemHead.major {
	case majorUnsigned, majorNegative:
		return d.integer()

	case majorByteString:
		var payload []byte
		if err := d.leaf(&payload); err != nil {
			return nil, plutus.Decode("byte string: %w", err)
		}
		return plutus.ByteArrayFromBytes(payload), nil

	case majorArray:
		d.offset = next
		items, err := d.sequence(itemHead, depth)
		if err != nil {
			return nil, err
		}
		return plutus.NewList(items...), nil

	case majorMap:
		d.offset = next
		return d.mapItem(itemHead, depth)

	case majorTag:
		return d.tagged(itemHead, next, depth)

	default:
		return nil, plutus.Decode("unexpected %s at byte %d", majorName(itemHead.major), d.offset)
	}
}

// leaf decodes the item at the current offset into target and advances
// past it.
func (d *decoder) leaf(target any) error {
	rest, err := decMode.UnmarshalFirst(d.data[d.offset:], target)
	if err != nil {
		return err
	}
	d.offset = len(d.data) - len(rest)
	return nil
}

// integer decodes a major type 0/1 integer or a tag 2/3 bignum.
func (d *decoder) integer() (plutus.Data, error) {
	var value big.Int
	if err := d.leaf(&value); err != nil {
		return nil, plutus.Decode("integer: %w", err)
	}
	return plutus.IntegerFromBig(&value), nil
}

// sequence reads the elements of an array whose head has already been
// consumed.
func (d *decoder) sequence(arrayHead head, depth int) ([]plutus.Data, error) {
	var items []plutus.Data
	for index := 0; ; index++ {
		if arrayHead.indefinite {
			if d.offset >= len(d.data) {
				return nil, plutus.Decode("unterminated indefinite-length array")
			}
			if d.data[d.offset] == breakByte {
				d.offset++
				return items, nil
			}
		} else if uint64(index) == arrayHead.argument {
			return items, nil
		}
		item, err := d.item(depth + 1)
		if err != nil {
			return nil, plutus.AtIndex(err, index)
		}
		items = append(items, item)
	}
}

func (d *decoder) mapItem(mapHead head, depth int) (plutus.Data, error) {
	var entries []plutus.Entry
	for index := 0; ; index++ {
		if mapHead.indefinite {
			if d.offset >= len(d.data) {
				return nil, plutus.Decode("unterminated indefinite-length map")
			}
			if d.data[d.offset] == breakByte {
				d.offset++
				break
			}
		} else if uint64(index) == mapHead.argument {
			break
		}
		key, err := d.item(depth + 1)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "key"), index)
		}
		value, err := d.item(depth + 1)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "value"), index)
		}
		entries = append(entries, plutus.Entry{Key: key, Value: value})
	}

	result, err := plutus.MakeMap(entries)
	if err != nil {
		var codecError *plutus.Error
		if errors.As(err, &codecError) {
			return nil, &plutus.Error{Kind: plutus.ErrDecode, Path: codecError.Path, Err: codecError.Err}
		}
		return nil, plutus.Decode("%w", err)
	}
	return result, nil
}

// tagged decodes bignums and constructors. tagHead has been read but
// d.offset still points at the tag's first byte.
func (d *decoder) tagged(tagHead head, next int, depth int) (plutus.Data, error) {
	tag := tagHead.argument
	switch {
	case tag == tagPositiveBignum || tag == tagNegativeBignum:
		return d.integer()

	case tag >= tagConstrSmall && tag <= tagConstrSmall+6:
		d.offset = next
		return d.constrFields(tag-tagConstrSmall, depth)

	case tag >= tagConstrMedium && tag <= tagConstrMedium+120:
		d.offset = next
		return d.constrFields(tag-tagConstrMedium+7, depth)

	case tag == tagConstrGeneral:
		d.offset = next
		return d.generalConstr(depth)

	default:
		return nil, plutus.Decode("unsupported tag %d at byte %d", tag, d.offset)
	}
}

func (d *decoder) constrFields(index uint64, depth int) (plutus.Data, error) {
	fieldsHead, next, err := readHead(d.data, d.offset)
	if err != nil {
		return nil, plutus.Decode("constructor fields: %w", err)
	}
	if fieldsHead.major != majorArray {
		return nil, plutus.Decode("constructor %d fields: expected array, got %s", index, majorName(fieldsHead.major))
	}
	// The tag and its field array count as one level, as in the
	// well-formedness check.
	d.offset = next
	fields, err := d.sequence(fieldsHead, depth)
	if err != nil {
		return nil, err
	}
	return plutus.NewConstr(index, fields...), nil
}

// generalConstr decodes the [index, fields] payload of tag 102.
func (d *decoder) generalConstr(depth int) (plutus.Data, error) {
	pairHead, next, err := readHead(d.data, d.offset)
	if err != nil {
		return nil, plutus.Decode("constructor: %w", err)
	}
	if pairHead.major != majorArray || (!pairHead.indefinite && pairHead.argument != 2) {
		return nil, plutus.Decode("tag %d content must be a two-element array", tagConstrGeneral)
	}
	d.offset = next

	indexHead, next, err := readHead(d.data, d.offset)
	if err != nil {
		return nil, plutus.Decode("constructor index: %w", err)
	}
	if indexHead.major != majorUnsigned || indexHead.indefinite {
		return nil, plutus.Decode("constructor index: expected unsigned integer, got %s", majorName(indexHead.major))
	}
	d.offset = next

	value, err := d.constrFields(indexHead.argument, depth)
	if err != nil {
		return nil, err
	}

	if pairHead.indefinite {
		if d.offset >= len(d.data) || d.data[d.offset] != breakByte {
			return nil, plutus.Decode("tag %d content must be a two-element array", tagConstrGeneral)
		}
		d.offset++
	}
	return value, nil
}

func majorName(major byte) string {
	switch major {
	case majorUnsigned:
		return "unsigned integer"
	case majorNegative:
		return "negative integer"
	case majorByteString:
		return "byte string"
	case majorTextString:
		return "text string"
	case majorArray:
		return "array"
	case majorMap:
		return "map"
	case majorTag:
		return "tag"
	default:
		return "simple value or float"
	}
}
