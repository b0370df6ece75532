// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

// FromJSON converts a JSON document into the host value that schema
// expects, ready for [Encode]. Numbers become *big.Int without passing
// through float64. Map schemas accept an array of {"k": ..., "v": ...}
// objects, or an object whose string keys are converted with the key
// schema. null is nil for NullOr and Undefined for UndefinedOr. Data
// schemas accept the detailed-schema JSON form.
//
// FromJSON checks shapes only as far as it needs to pick a conversion;
// [Encode] performs full validation.
func FromJSON(data []byte, schema Schema) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, plutus.Validation("parsing JSON: %v", err)
	}
	if decoder.More() {
		return nil, plutus.Validation("trailing data after JSON value")
	}
	return fromJSONValue(raw, schema)
}

func fromJSONValue(raw any, schema Schema) (any, error) {
	switch node := schema.(type) {
	case byteArraySchema:
		if _, ok := raw.(string); !ok {
			return nil, mismatch("hex string", raw)
		}
		return raw, nil

	case integerSchema:
		number, ok := raw.(json.Number)
		if !ok {
			return nil, mismatch("integer", raw)
		}
		value, err := plutus.ParseJSONNumber(number)
		if err != nil {
			return nil, err
		}
		return value, nil

	case booleanSchema:
		if _, ok := raw.(bool); !ok {
			return nil, mismatch("bool", raw)
		}
		return raw, nil

	case literalSchema:
		for _, literal := range node.values {
			if jsonMatchesLiteral(raw, literal) {
				return literal, nil
			}
		}
		return nil, plutus.SchemaMismatch("%s is not one of %s", describeJSON(raw), node)

	case structSchema:
		object, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch("object", raw)
		}
		record := make(map[string]any, len(object))
		for name, value := range object {
			// Unknown keys pass through so Encode reports them.
			record[name] = value
		}
		for _, field := range node.fields {
			value, present := object[field.Name]
			if !present {
				continue
			}
			converted, err := fromJSONValue(value, field.Schema)
			if err != nil {
				return nil, plutus.AtField(err, field.Name)
			}
			record[field.Name] = converted
		}
		return record, nil

	case arraySchema:
		array, ok := raw.([]any)
		if !ok {
			return nil, mismatch("array", raw)
		}
		elements := make([]any, len(array))
		for index, element := range array {
			converted, err := fromJSONValue(element, node.element)
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			elements[index] = converted
		}
		return elements, nil

	case tupleSchema:
		array, ok := raw.([]any)
		if !ok {
			return nil, mismatch("array", raw)
		}
		if len(array) != len(node.elements) {
			return nil, plutus.SchemaMismatch("expected a tuple of %d elements, got %d", len(node.elements), len(array))
		}
		elements := make([]any, len(array))
		for index, element := range array {
			converted, err := fromJSONValue(element, node.elements[index])
			if err != nil {
				return nil, plutus.AtIndex(err, index)
			}
			elements[index] = converted
		}
		return elements, nil

	case mapSchema:
		return mapFromJSON(raw, node)

	case unionSchema:
		var failures []string
		for index, variant := range node.variants {
			converted, err := fromJSONValue(raw, variant)
			if err == nil {
				if _, err = Encode(converted, variant); err == nil {
					return converted, nil
				}
			}
			failures = append(failures, fmt.Sprintf("variant %d (%s): %v", index, variant, err))
		}
		return nil, plutus.UnionMismatch("no variant of %s accepts %s: %v", node, describeJSON(raw), failures)

	case nullOrSchema:
		if raw == nil {
			return nil, nil
		}
		return fromJSONValue(raw, node.inner)

	case undefinedOrSchema:
		if raw == nil {
			return Undefined, nil
		}
		return fromJSONValue(raw, node.inner)

	case filterSchema:
		return fromJSONValue(raw, node.inner)

	case dataSchema:
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, plutus.Validation("re-encoding JSON: %v", err)
		}
		return plutus.ParseJSON(encoded)

	default:
		return nil, plutus.SchemaMismatch("unsupported schema %T", schema)
	}
}

func mapFromJSON(raw any, node mapSchema) (any, error) {
	switch value := raw.(type) {
	case []any:
		entries := make([]Entry, len(value))
		for index, element := range value {
			object, ok := element.(map[string]any)
			if !ok || len(object) != 2 || !hasKey(object, "k") || !hasKey(object, "v") {
				return nil, plutus.AtIndex(plutus.SchemaMismatch(`map entry must be an object with keys "k" and "v"`), index)
			}
			key, err := fromJSONValue(object["k"], node.key)
			if err != nil {
				return nil, plutus.AtIndex(plutus.AtField(err, "k"), index)
			}
			mapped, err := fromJSONValue(object["v"], node.value)
			if err != nil {
				return nil, plutus.AtIndex(plutus.AtField(err, "v"), index)
			}
			entries[index] = Entry{Key: key, Value: mapped}
		}
		return entries, nil

	case map[string]any:
		entries := make([]Entry, 0, len(value))
		for name, element := range value {
			key, err := fromJSONValue(objectKey(name, node.key), node.key)
			if err != nil {
				return nil, plutus.AtField(plutus.AtField(err, "key"), name)
			}
			mapped, err := fromJSONValue(element, node.value)
			if err != nil {
				return nil, plutus.AtField(err, name)
			}
			entries = append(entries, Entry{Key: key, Value: mapped})
		}
		// Encode sorts by encoded key, so iteration order does not leak.
		return entries, nil

	default:
		return nil, mismatch("array of entries or object", raw)
	}
}

// objectKey reinterprets a JSON object key for key schemas that expect
// a number.
func objectKey(name string, key Schema) any {
	if unfiltered(key).Kind() == KindInteger {
		return json.Number(name)
	}
	return name
}

func hasKey(object map[string]any, key string) bool {
	_, ok := object[key]
	return ok
}

// jsonMatchesLiteral compares a decoded JSON value with a literal of any
// Go scalar type.
func jsonMatchesLiteral(raw, literal any) bool {
	switch value := raw.(type) {
	case json.Number:
		number, ok := new(big.Int).SetString(string(value), 10)
		if !ok {
			return false
		}
		expected, err := plutus.MakeInteger(literal)
		if err != nil {
			return false
		}
		return number.Cmp(expected.Value()) == 0
	default:
		return raw == literal
	}
}

func describeJSON(raw any) string {
	switch value := raw.(type) {
	case json.Number:
		return "number " + string(value)
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return describeValue(raw)
	}
}
