// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strconv"
)

// The MarshalJSON methods emit the cardano-node "detailed schema" JSON
// form of Data:
//
//	{"int": 42}
//	{"bytes": "deadbeef"}
//	{"list": [...]}
//	{"map": [{"k": ..., "v": ...}]}
//	{"constructor": 0, "fields": [...]}
//
// Integers are written as exact JSON numbers regardless of magnitude.

func (i Integer) MarshalJSON() ([]byte, error)   { return appendJSON(nil, i), nil }
func (b ByteArray) MarshalJSON() ([]byte, error) { return appendJSON(nil, b), nil }
func (l List) MarshalJSON() ([]byte, error)      { return appendJSON(nil, l), nil }
func (m Map) MarshalJSON() ([]byte, error)       { return appendJSON(nil, m), nil }
func (c Constr) MarshalJSON() ([]byte, error)    { return appendJSON(nil, c), nil }

func appendJSON(buffer []byte, data Data) []byte {
	switch value := data.(type) {
	case Integer:
		buffer = append(buffer, `{"int":`...)
		buffer = value.Value().Append(buffer, 10)
		buffer = append(buffer, '}')
	case ByteArray:
		buffer = append(buffer, `{"bytes":"`...)
		buffer = append(buffer, value.Hex()...)
		buffer = append(buffer, `"}`...)
	case List:
		buffer = append(buffer, `{"list":`...)
		buffer = appendJSONArray(buffer, value.items)
		buffer = append(buffer, '}')
	case Map:
		buffer = append(buffer, `{"map":[`...)
		for index, entry := range value.entries {
			if index > 0 {
				buffer = append(buffer, ',')
			}
			buffer = append(buffer, `{"k":`...)
			buffer = appendJSON(buffer, entry.Key)
			buffer = append(buffer, `,"v":`...)
			buffer = appendJSON(buffer, entry.Value)
			buffer = append(buffer, '}')
		}
		buffer = append(buffer, "]}"...)
	case Constr:
		buffer = append(buffer, `{"constructor":`...)
		buffer = strconv.AppendUint(buffer, value.index, 10)
		buffer = append(buffer, `,"fields":`...)
		buffer = appendJSONArray(buffer, value.fields)
		buffer = append(buffer, '}')
	}
	return buffer
}

func appendJSONArray(buffer []byte, items []Data) []byte {
	buffer = append(buffer, '[')
	for index, item := range items {
		if index > 0 {
			buffer = append(buffer, ',')
		}
		buffer = appendJSON(buffer, item)
	}
	return append(buffer, ']')
}

// ParseJSON parses the detailed-schema JSON form of Data. Numbers must
// be integral decimal literals; fractions and exponents are rejected
// with a validation error. Every object must be exactly one of the five
// detailed-schema shapes.
func ParseJSON(data []byte) (Data, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, Validation("parsing detailed-schema JSON: %v", err)
	}
	if decoder.More() {
		return nil, Validation("trailing data after detailed-schema JSON value")
	}
	return fromJSONValue(raw)
}

func fromJSONValue(raw any) (Data, error) {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, Validation("expected a detailed-schema object, got %s", jsonTypeName(raw))
	}

	switch {
	case hasOnly(object, "int"):
		number, err := parseJSONInteger(object["int"])
		if err != nil {
			return nil, AtField(err, "int")
		}
		return Integer{value: number}, nil

	case hasOnly(object, "bytes"):
		text, ok := object["bytes"].(string)
		if !ok {
			return nil, AtField(Validation("expected a hex string, got %s", jsonTypeName(object["bytes"])), "bytes")
		}
		value, err := MakeByteArray(text)
		if err != nil {
			return nil, AtField(err, "bytes")
		}
		return value, nil

	case hasOnly(object, "list"):
		items, err := parseJSONArray(object["list"])
		if err != nil {
			return nil, AtField(err, "list")
		}
		return List{items: items}, nil

	case hasOnly(object, "map"):
		array, ok := object["map"].([]any)
		if !ok {
			return nil, AtField(Validation("expected an array of entries, got %s", jsonTypeName(object["map"])), "map")
		}
		entries := make([]Entry, 0, len(array))
		for index, element := range array {
			entry, err := parseJSONEntry(element)
			if err != nil {
				return nil, AtField(AtIndex(err, index), "map")
			}
			entries = append(entries, entry)
		}
		value, err := MakeMap(entries)
		if err != nil {
			return nil, AtField(err, "map")
		}
		return value, nil

	case hasOnly(object, "constructor", "fields"):
		index, err := parseJSONInteger(object["constructor"])
		if err != nil {
			return nil, AtField(err, "constructor")
		}
		fields, err := parseJSONArray(object["fields"])
		if err != nil {
			return nil, AtField(err, "fields")
		}
		value, err := MakeConstr(index, fields)
		if err != nil {
			return nil, AtField(err, "constructor")
		}
		return value, nil

	default:
		keys := make([]string, 0, len(object))
		for key := range object {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		return nil, Validation("object with keys %v is not a detailed-schema value", keys)
	}
}

func parseJSONEntry(raw any) (Entry, error) {
	object, ok := raw.(map[string]any)
	if !ok || !hasOnly(object, "k", "v") {
		return Entry{}, Validation(`map entry must be an object with keys "k" and "v"`)
	}
	key, err := fromJSONValue(object["k"])
	if err != nil {
		return Entry{}, AtField(err, "k")
	}
	value, err := fromJSONValue(object["v"])
	if err != nil {
		return Entry{}, AtField(err, "v")
	}
	return Entry{Key: key, Value: value}, nil
}

func parseJSONArray(raw any) ([]Data, error) {
	array, ok := raw.([]any)
	if !ok {
		return nil, Validation("expected an array, got %s", jsonTypeName(raw))
	}
	items := make([]Data, 0, len(array))
	for index, element := range array {
		item, err := fromJSONValue(element)
		if err != nil {
			return nil, AtIndex(err, index)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseJSONNumber converts a json.Number holding an integral decimal
// literal to a *big.Int. Fractions and exponents are rejected even when
// the value they denote is integral.
func ParseJSONNumber(number json.Number) (*big.Int, error) {
	value, ok := new(big.Int).SetString(string(number), 10)
	if !ok {
		return nil, Validation("number %s is not an integer", number)
	}
	return value, nil
}

func parseJSONInteger(raw any) (*big.Int, error) {
	number, ok := raw.(json.Number)
	if !ok {
		return nil, Validation("expected a number, got %s", jsonTypeName(raw))
	}
	return ParseJSONNumber(number)
}

func hasOnly(object map[string]any, keys ...string) bool {
	if len(object) != len(keys) {
		return false
	}
	for _, key := range keys {
		if _, ok := object[key]; !ok {
			return false
		}
	}
	return true
}

func jsonTypeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
