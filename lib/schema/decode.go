// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"slices"

	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/plutus"
)

// Decode converts Plutus Data back to a host value as described by
// schema. It is the structural inverse of [Encode]: constructor indices
// and field counts are checked against the schema, refinements are
// re-applied, and map entries come back in canonical order.
func Decode(data plutus.Data, schema Schema) (any, error) {
	if data == nil {
		return nil, plutus.SchemaMismatch("cannot decode nil Data")
	}

	switch node := schema.(type) {
	case byteArraySchema:
		value, ok := data.(plutus.ByteArray)
		if !ok {
			return nil, kindMismatch(plutus.KindByteArray, data)
		}
		return value.Hex(), nil

	case integerSchema:
		value, ok := data.(plutus.Integer)
		if !ok {
			return nil, kindMismatch(plutus.KindInteger, data)
		}
		return value.Value(), nil

	case booleanSchema:
		constr, err := expectConstr(data, 2, node)
		if err != nil {
			return nil, err
		}
		if err := expectFieldCount(constr, 0); err != nil {
			return nil, err
		}
		return constr.Index() == 1, nil

	case literalSchema:
		constr, err := expectConstr(data, len(node.values), node)
		if err != nil {
			return nil, err
		}
		if err := expectFieldCount(constr, 0); err != nil {
			return nil, err
		}
		return node.values[constr.Index()], nil

	case structSchema:
		return decodeStruct(data, node)

	case arraySchema:
		list, ok := data.(plutus.List)
		if !ok {
			return nil, kindMismatch(plutus.KindList, data)
		}
		elements := make([]any, list.Len())
		for index := range elements {
			element, err := Decode(list.At(index), node.element)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			elements[index] = element
		}
		return elements, nil

	case tupleSchema:
		list, ok := data.(plutus.List)
		if !ok {
			return nil, kindMismatch(plutus.KindList, data)
		}
		if list.Len() != len(node.elements) {
			return nil, plutus.SchemaMismatch("expected a tuple of %d elements, got a list of %d", len(node.elements), list.Len())
		}
		elements := make([]any, list.Len())
		for index := range elements {
			element, err := Decode(list.At(index), node.elements[index])
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			elements[index] = element
		}
		return elements, nil

	case mapSchema:
		return decodeMap(data, node)

	case unionSchema:
		constr, ok := data.(plutus.Constr)
		if !ok {
			return nil, kindMismatch(plutus.KindConstr, data)
		}
		if constr.Index() >= uint64(len(node.variants)) {
			return nil, plutus.UnionMismatch("constructor index %d is out of range for %s (%d variants)", constr.Index(), node, len(node.variants))
		}
		if err := expectFieldCount(constr, 1); err != nil {
			return nil, err
		}
		return Decode(constr.Field(0), node.variants[constr.Index()])

	case nullOrSchema:
		return decodeOptional(data, node.inner, nil, node)

	case undefinedOrSchema:
		return decodeOptional(data, node.inner, Undefined, node)

	case filterSchema:
		value, err := Decode(data, node.inner)
		if err != nil {
			return nil, err
		}
		if !node.predicate(value) {
			return nil, plutus.Refinement(node.message)
		}
		return value, nil

	case dataSchema:
		return data, nil

	case nil:
		return nil, plutus.SchemaMismatch("schema is nil")

	default:
		return nil, plutus.SchemaMismatch("unsupported schema %T", schema)
	}
}

// DecodeBytes decodes CBOR bytes and then the resulting Data through
// schema.
func DecodeBytes(encoded []byte, schema Schema) (any, error) {
	data, err := codec.FromBytes(encoded)
	if err != nil {
		return nil, err
	}
	return Decode(data, schema)
}

// DecodeHex is [DecodeBytes] for hex input.
func DecodeHex(text string, schema Schema) (any, error) {
	data, err := codec.FromHex(text)
	if err != nil {
		return nil, err
	}
	return Decode(data, schema)
}

func decodeStruct(data plutus.Data, node structSchema) (any, error) {
	constr, err := expectConstr(data, 1, node)
	if err != nil {
		return nil, err
	}
	if err := expectFieldCount(constr, len(node.fields)); err != nil {
		return nil, err
	}

	record := make(map[string]any, len(node.fields))
	for index, field := range node.fields {
		value, err := Decode(constr.Field(index), field.Schema)
		if err != nil {
			return nil, plutus.AtField(err, field.Name)
		}
		// Absent optional fields are omitted, so that encoding the
		// decoded record reproduces the input.
		if optional(field.Schema) && IsUndefined(value) {
			continue
		}
		record[field.Name] = value
	}
	return record, nil
}

func decodeMap(data plutus.Data, node mapSchema) (any, error) {
	value, ok := data.(plutus.Map)
	if !ok {
		return nil, kindMismatch(plutus.KindMap, data)
	}

	type decodedPair struct {
		keyBytes []byte
		entry    Entry
	}
	pairs := make([]decodedPair, value.Len())
	for index, entry := range value.Entries() {
		key, err := Decode(entry.Key, node.key)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "key"), index)
		}
		mapped, err := Decode(entry.Value, node.value)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "value"), index)
		}
		keyBytes, err := codec.ToBytes(entry.Key)
		if err != nil {
			return nil, plutus.AtIndex(plutus.AtField(err, "key"), index)
		}
		pairs[index] = decodedPair{keyBytes: keyBytes, entry: Entry{Key: key, Value: mapped}}
	}
	slices.SortStableFunc(pairs, func(a, b decodedPair) int {
		return bytes.Compare(a.keyBytes, b.keyBytes)
	})

	entries := make([]Entry, len(pairs))
	for index, pair := range pairs {
		entries[index] = pair.entry
	}
	return entries, nil
}

// decodeOptional decodes the Constr(0, [v]) / Constr(1, []) encoding
// shared by NullOr and UndefinedOr.
func decodeOptional(data plutus.Data, inner Schema, absent any, node Schema) (any, error) {
	constr, err := expectConstr(data, 2, node)
	if err != nil {
		return nil, err
	}
	if constr.Index() == 1 {
		if err := expectFieldCount(constr, 0); err != nil {
			return nil, err
		}
		return absent, nil
	}
	if err := expectFieldCount(constr, 1); err != nil {
		return nil, err
	}
	return Decode(constr.Field(0), inner)
}

// expectConstr checks that data is a constructor with an index below
// limit.
func expectConstr(data plutus.Data, limit int, node Schema) (plutus.Constr, error) {
	constr, ok := data.(plutus.Constr)
	if !ok {
		return plutus.Constr{}, kindMismatch(plutus.KindConstr, data)
	}
	if constr.Index() >= uint64(limit) {
		return plutus.Constr{}, plutus.SchemaMismatch("constructor index %d is out of range for %s", constr.Index(), node)
	}
	return constr, nil
}

func expectFieldCount(constr plutus.Constr, count int) error {
	if constr.Len() != count {
		return plutus.SchemaMismatch("constructor %d has %d fields, expected %d", constr.Index(), constr.Len(), count)
	}
	return nil
}

func kindMismatch(expected plutus.Kind, data plutus.Data) error {
	return plutus.SchemaMismatch("expected %s, got %s", expected, data.Kind())
}
