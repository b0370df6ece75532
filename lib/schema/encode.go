// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"github.com/bureau-foundation/plutus/lib/codec"
	"github.com/bureau-foundation/plutus/lib/plutus"
)

// Encode converts a host value to Plutus Data as described by schema.
// Errors carry the path of the offending value, e.g.
// "outputs[1].amount".
func Encode(value any, schema Schema) (plutus.Data, error) {
	switch node := schema.(type) {
	case byteArraySchema:
		text, ok := value.(string)
		if !ok {
			return nil, mismatch("hex string", value)
		}
		encoded, err := plutus.MakeByteArray(text)
		if err != nil {
			return nil, err
		}
		return encoded, nil

	case integerSchema:
		return encodeInteger(value)

	case booleanSchema:
		flag, ok := value.(bool)
		if !ok {
			return nil, mismatch("bool", value)
		}
		if flag {
			return plutus.NewConstr(1), nil
		}
		return plutus.NewConstr(0), nil

	case literalSchema:
		for index, literal := range node.values {
			if literal == value {
				return plutus.NewConstr(uint64(index)), nil
			}
		}
		return nil, plutus.SchemaMismatch("%s is not one of %s", describeValue(value), node)

	case structSchema:
		return encodeStruct(value, node)

	case arraySchema:
		elements, err := sequenceOf(value)
		if err != nil {
			return nil, err
		}
		items := make([]plutus.Data, len(elements))
		for index, element := range elements {
			item, err := Encode(element, node.element)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			items[index] = item
		}
		return plutus.NewList(items...), nil

	case tupleSchema:
		elements, err := sequenceOf(value)
		if err != nil {
			return nil, err
		}
		if len(elements) != len(node.elements) {
			return nil, plutus.SchemaMismatch("expected a tuple of %d elements, got %d", len(node.elements), len(elements))
		}
		items := make([]plutus.Data, len(elements))
		for index, element := range elements {
			item, err := Encode(element, node.elements[index])
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			items[index] = item
		}
		return plutus.NewList(items...), nil

	case mapSchema:
		return encodeMap(value, node)

	case unionSchema:
		var failures []string
		for index, variant := range node.variants {
			encoded, err := Encode(value, variant)
			if err == nil {
				return plutus.NewConstr(uint64(index), encoded), nil
			}
			failures = append(failures, fmt.Sprintf("variant %d (%s): %v", index, variant, err))
		}
		return nil, plutus.UnionMismatch("no variant of %s accepts %s: %s", node, describeValue(value), strings.Join(failures, "; "))

	case nullOrSchema:
		if value == nil {
			return plutus.NewConstr(1), nil
		}
		inner, err := Encode(value, node.inner)
		if err != nil {
			return nil, err
		}
		return plutus.NewConstr(0, inner), nil

	case undefinedOrSchema:
		if IsUndefined(value) {
			return plutus.NewConstr(1), nil
		}
		inner, err := Encode(value, node.inner)
		if err != nil {
			return nil, err
		}
		return plutus.NewConstr(0, inner), nil

	case filterSchema:
		if !node.predicate(value) {
			return nil, plutus.Refinement(node.message)
		}
		return Encode(value, node.inner)

	case dataSchema:
		data, ok := value.(plutus.Data)
		if !ok || data == nil {
			return nil, mismatch("plutus.Data", value)
		}
		return data, nil

	case nil:
		return nil, plutus.SchemaMismatch("schema is nil")

	default:
		return nil, plutus.SchemaMismatch("unsupported schema %T", schema)
	}
}

// EncodeBytes encodes value through schema and then to canonical CBOR.
func EncodeBytes(value any, schema Schema) ([]byte, error) {
	data, err := Encode(value, schema)
	if err != nil {
		return nil, err
	}
	return codec.ToBytes(data)
}

// EncodeHex is [EncodeBytes] with the result as lowercase hex.
func EncodeHex(value any, schema Schema) (string, error) {
	encoded, err := EncodeBytes(value, schema)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(encoded), nil
}

func encodeInteger(value any) (plutus.Data, error) {
	switch number := value.(type) {
	case json.Number:
		parsed, err := plutus.ParseJSONNumber(number)
		if err != nil {
			return nil, err
		}
		return plutus.IntegerFromBig(parsed), nil
	case *big.Int, big.Int,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		// Floats reach MakeInteger so they fail as malformed integers
		// rather than as the wrong type.
		encoded, err := plutus.MakeInteger(number)
		if err != nil {
			return nil, err
		}
		return encoded, nil
	default:
		return nil, mismatch("integer", value)
	}
}

func encodeStruct(value any, node structSchema) (plutus.Data, error) {
	record, ok := value.(map[string]any)
	if !ok {
		return nil, mismatch("map[string]any", value)
	}

	var unexpected []string
	for name := range record {
		if _, declared := node.names[name]; !declared {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		slices.Sort(unexpected)
		return nil, plutus.SchemaMismatch("unexpected field %q (declared fields: %s)", unexpected[0], fieldNames(node))
	}

	fields := make([]plutus.Data, len(node.fields))
	for index, field := range node.fields {
		fieldValue, present := record[field.Name]
		if !present {
			if !optional(field.Schema) {
				return nil, plutus.AtField(plutus.SchemaMismatch("missing required field"), field.Name)
			}
			fieldValue = Undefined
		}
		encoded, err := Encode(fieldValue, field.Schema)
		if err != nil {
			return nil, plutus.AtField(err, field.Name)
		}
		fields[index] = encoded
	}
	return plutus.NewConstr(0, fields...), nil
}

// encodedPair is a map entry after encoding, with the canonical bytes
// of its key kept for ordering.
type encodedPair struct {
	keyBytes []byte
	entry    plutus.Entry
	// label locates the entry in error messages.
	label string
}

func encodeMap(value any, node mapSchema) (plutus.Data, error) {
	var pairs []encodedPair

	encodePair := func(key, mapped any, wrap func(error) error, label string) error {
		encodedKey, err := Encode(key, node.key)
		if err != nil {
			return wrap(plutus.AtField(err, "key"))
		}
		encodedValue, err := Encode(mapped, node.value)
		if err != nil {
			return wrap(plutus.AtField(err, "value"))
		}
		keyBytes, err := codec.ToBytes(encodedKey)
		if err != nil {
			return wrap(plutus.AtField(err, "key"))
		}
		pairs = append(pairs, encodedPair{
			keyBytes: keyBytes,
			entry:    plutus.Entry{Key: encodedKey, Value: encodedValue},
			label:    label,
		})
		return nil
	}

	switch entries := value.(type) {
	case []Entry:
		for index, entry := range entries {
			wrap := func(err error) error { return plutus.AtIndex(err, index) }
			if err := encodePair(entry.Key, entry.Value, wrap, fmt.Sprintf("entry %d", index)); err != nil {
				return nil, err
			}
		}
	default:
		reflected := reflect.ValueOf(value)
		if reflected.Kind() != reflect.Map {
			return nil, mismatch("[]schema.Entry or a Go map", value)
		}
		iterator := reflected.MapRange()
		for iterator.Next() {
			key := iterator.Key().Interface()
			label := fmt.Sprint(key)
			wrap := func(err error) error { return plutus.AtField(err, label) }
			if err := encodePair(key, iterator.Value().Interface(), wrap, "key "+label); err != nil {
				return nil, err
			}
		}
	}

	slices.SortStableFunc(pairs, func(a, b encodedPair) int {
		return bytes.Compare(a.keyBytes, b.keyBytes)
	})
	entries := make([]plutus.Entry, len(pairs))
	for index, pair := range pairs {
		if index > 0 && bytes.Equal(pair.keyBytes, pairs[index-1].keyBytes) {
			return nil, plutus.Validation("duplicate map key %s (%s and %s)", pair.entry.Key, pairs[index-1].label, pair.label)
		}
		entries[index] = pair.entry
	}
	return plutus.NewMap(entries...), nil
}

// sequenceOf returns the elements of any slice or array. Strings and
// byte slices are not sequences here: a []byte host value almost
// always means a byte string, not a list of integers.
func sequenceOf(value any) ([]any, error) {
	if elements, ok := value.([]any); ok {
		return elements, nil
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Slice, reflect.Array:
		if reflected.Type().Elem().Kind() == reflect.Uint8 {
			return nil, mismatch("slice", value)
		}
		elements := make([]any, reflected.Len())
		for index := range elements {
			elements[index] = reflected.Index(index).Interface()
		}
		return elements, nil
	default:
		return nil, mismatch("slice", value)
	}
}

func fieldNames(node structSchema) string {
	names := make([]string, len(node.fields))
	for index, field := range node.fields {
		names[index] = field.Name
	}
	return strings.Join(names, ", ")
}

func mismatch(expected string, value any) error {
	return plutus.SchemaMismatch("expected %s, got %s", expected, describeValue(value))
}

func describeValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "nil"
	case string:
		if len(typed) > 32 {
			return fmt.Sprintf("string %q...", typed[:32])
		}
		return fmt.Sprintf("string %q", typed)
	case UndefinedValue:
		return "Undefined"
	default:
		return fmt.Sprintf("%T", value)
	}
}
