// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies a schema node type.
type Kind uint8

const (
	KindByteArray Kind = iota + 1
	KindInteger
	KindBoolean
	KindLiteral
	KindArray
	KindTuple
	KindMap
	KindStruct
	KindUnion
	KindNullOr
	KindUndefinedOr
	KindFilter
	KindData
)

var kindNames = map[Kind]string{
	KindByteArray:   "ByteArray",
	KindInteger:     "Integer",
	KindBoolean:     "Boolean",
	KindLiteral:     "Literal",
	KindArray:       "Array",
	KindTuple:       "Tuple",
	KindMap:         "Map",
	KindStruct:      "Struct",
	KindUnion:       "Union",
	KindNullOr:      "NullOr",
	KindUndefinedOr: "UndefinedOr",
	KindFilter:      "Filter",
	KindData:        "Data",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Schema describes how one host value maps to Plutus Data. Schemas are
// immutable and safe for concurrent use. The interface is sealed; build
// schemas with the constructor functions in this package.
type Schema interface {
	// Kind returns the node type.
	Kind() Kind

	// String returns a canonical description of the schema, such as
	// "Struct{policyId: ByteArray, amount: Integer}". Structurally
	// identical schemas have identical descriptions.
	String() string

	isSchema()
}

type (
	byteArraySchema struct{}
	integerSchema   struct{}
	booleanSchema   struct{}
	dataSchema      struct{}

	literalSchema struct {
		values []any
	}

	arraySchema struct {
		element Schema
	}

	tupleSchema struct {
		elements []Schema
	}

	mapSchema struct {
		key   Schema
		value Schema
	}

	structSchema struct {
		fields []StructField
		names  map[string]struct{}
	}

	unionSchema struct {
		variants []Schema
	}

	nullOrSchema struct {
		inner Schema
	}

	undefinedOrSchema struct {
		inner Schema
	}

	filterSchema struct {
		inner     Schema
		predicate func(any) bool
		message   string
	}
)

// StructField is one named, ordered field of a [Struct] schema.
type StructField struct {
	Name   string
	Schema Schema
}

// Field pairs a field name with its schema, for use with [Struct].
func Field(name string, schema Schema) StructField {
	return StructField{Name: name, Schema: schema}
}

// ByteArray maps a hex string to a Plutus ByteArray.
func ByteArray() Schema { return byteArraySchema{} }

// Integer maps an integer (*big.Int, any Go integer type, or an
// integral json.Number) to a Plutus Integer. Decoding yields *big.Int.
func Integer() Schema { return integerSchema{} }

// Boolean maps false to Constr(0, []) and true to Constr(1, []).
func Boolean() Schema { return booleanSchema{} }

// Data passes plutus.Data values through unchanged.
func Data() Schema { return dataSchema{} }

// Literal maps each of a fixed set of values to a nullary constructor
// whose index is the value's position in the list. Host values are
// matched with ==, so the literal's dynamic type matters: the literal
// int(1) does not match int64(1). Panics on an empty list, duplicates,
// or values that are not comparable.
func Literal(values ...any) Schema {
	if len(values) == 0 {
		panic("schema.Literal: at least one value is required")
	}
	for index, value := range values {
		if value == nil || !reflect.TypeOf(value).Comparable() {
			panic(fmt.Sprintf("schema.Literal: value %d (%T) is not comparable", index, value))
		}
		for _, previous := range values[:index] {
			if previous == value {
				panic(fmt.Sprintf("schema.Literal: duplicate value %#v", value))
			}
		}
	}
	return literalSchema{values: append([]any(nil), values...)}
}

// Array maps a slice of any length to a Plutus List.
func Array(element Schema) Schema {
	requireSchema("Array", element)
	return arraySchema{element: element}
}

// Tuple maps a fixed-length slice, element i described by elements[i],
// to a Plutus List.
func Tuple(elements ...Schema) Schema {
	for _, element := range elements {
		requireSchema("Tuple", element)
	}
	return tupleSchema{elements: append([]Schema(nil), elements...)}
}

// Map maps key/value pairs to a Plutus Map whose entries are in
// canonical order (sorted by encoded key bytes).
func Map(key, value Schema) Schema {
	requireSchema("Map", key)
	requireSchema("Map", value)
	return mapSchema{key: key, value: value}
}

// Struct maps a map[string]any with exactly the declared keys to
// Constr(0, fields) with the fields in declaration order. Fields whose
// schema is [UndefinedOr] may be absent. Panics on empty or duplicate
// field names.
func Struct(fields ...StructField) Schema {
	names := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			panic("schema.Struct: field name is empty")
		}
		if _, duplicate := names[field.Name]; duplicate {
			panic(fmt.Sprintf("schema.Struct: duplicate field %q", field.Name))
		}
		requireSchema("Struct field "+field.Name, field.Schema)
		names[field.Name] = struct{}{}
	}
	return structSchema{fields: append([]StructField(nil), fields...), names: names}
}

// Union maps a value accepted by one of the variants to
// Constr(i, [encoded]) where i is the position of the first variant,
// in declaration order, that encodes the value successfully.
func Union(variants ...Schema) Schema {
	if len(variants) == 0 {
		panic("schema.Union: at least one variant is required")
	}
	for _, variant := range variants {
		requireSchema("Union", variant)
	}
	return unionSchema{variants: append([]Schema(nil), variants...)}
}

// NullOr maps nil to Constr(1, []) and any other value v to
// Constr(0, [inner(v)]).
func NullOr(inner Schema) Schema {
	requireSchema("NullOr", inner)
	return nullOrSchema{inner: inner}
}

// UndefinedOr maps [Undefined] to Constr(1, []) and any other value v
// to Constr(0, [inner(v)]).
func UndefinedOr(inner Schema) Schema {
	requireSchema("UndefinedOr", inner)
	return undefinedOrSchema{inner: inner}
}

// Filter refines inner with a predicate. Encoding checks the predicate
// before encoding the value; decoding checks it on the decoded value.
// A rejected value fails with a refinement error carrying message.
//
// The predicate receives the raw host value, which inside a [Union] may
// be of any type: predicates must return false, not panic, for values
// they do not understand.
func Filter(inner Schema, predicate func(any) bool, message string) Schema {
	requireSchema("Filter", inner)
	if predicate == nil {
		panic("schema.Filter: predicate is nil")
	}
	return filterSchema{inner: inner, predicate: predicate, message: message}
}

// unfiltered strips any Filter refinements around s.
func unfiltered(s Schema) Schema {
	for filter, ok := s.(filterSchema); ok; filter, ok = s.(filterSchema) {
		s = filter.inner
	}
	return s
}

// optional reports whether a struct field of schema s may be omitted,
// which holds for an UndefinedOr under any number of filters.
func optional(s Schema) bool {
	return unfiltered(s).Kind() == KindUndefinedOr
}

func requireSchema(context string, schema Schema) {
	if schema == nil {
		panic("schema." + context + ": schema is nil")
	}
}

// UndefinedValue is the type of [Undefined].
type UndefinedValue struct{}

// Undefined is the absent value of an [UndefinedOr] schema. It is
// distinct from nil, which is the absent value of [NullOr].
var Undefined = UndefinedValue{}

// MarshalJSON writes Undefined as null.
func (UndefinedValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// IsUndefined reports whether value is [Undefined].
func IsUndefined(value any) bool {
	_, ok := value.(UndefinedValue)
	return ok
}

// Entry is one key/value pair of a [Map] host value.
type Entry struct {
	Key   any `json:"k"`
	Value any `json:"v"`
}

func (byteArraySchema) Kind() Kind   { return KindByteArray }
func (integerSchema) Kind() Kind     { return KindInteger }
func (booleanSchema) Kind() Kind     { return KindBoolean }
func (dataSchema) Kind() Kind        { return KindData }
func (literalSchema) Kind() Kind     { return KindLiteral }
func (arraySchema) Kind() Kind       { return KindArray }
func (tupleSchema) Kind() Kind       { return KindTuple }
func (mapSchema) Kind() Kind         { return KindMap }
func (structSchema) Kind() Kind      { return KindStruct }
func (unionSchema) Kind() Kind       { return KindUnion }
func (nullOrSchema) Kind() Kind      { return KindNullOr }
func (undefinedOrSchema) Kind() Kind { return KindUndefinedOr }
func (filterSchema) Kind() Kind      { return KindFilter }

func (byteArraySchema) isSchema()   {}
func (integerSchema) isSchema()     {}
func (booleanSchema) isSchema()     {}
func (dataSchema) isSchema()        {}
func (literalSchema) isSchema()     {}
func (arraySchema) isSchema()       {}
func (tupleSchema) isSchema()       {}
func (mapSchema) isSchema()         {}
func (structSchema) isSchema()      {}
func (unionSchema) isSchema()       {}
func (nullOrSchema) isSchema()      {}
func (undefinedOrSchema) isSchema() {}
func (filterSchema) isSchema()      {}

func (byteArraySchema) String() string { return "ByteArray" }
func (integerSchema) String() string   { return "Integer" }
func (booleanSchema) String() string   { return "Boolean" }
func (dataSchema) String() string      { return "Data" }

func (s literalSchema) String() string {
	parts := make([]string, len(s.values))
	for index, value := range s.values {
		parts[index] = fmt.Sprintf("%#v", value)
	}
	return "Literal(" + strings.Join(parts, ", ") + ")"
}

func (s arraySchema) String() string { return "Array<" + s.element.String() + ">" }

func (s tupleSchema) String() string { return "Tuple<" + joinSchemas(s.elements, ", ") + ">" }

func (s mapSchema) String() string {
	return "Map<" + s.key.String() + ", " + s.value.String() + ">"
}

func (s structSchema) String() string {
	parts := make([]string, len(s.fields))
	for index, field := range s.fields {
		parts[index] = field.Name + ": " + field.Schema.String()
	}
	return "Struct{" + strings.Join(parts, ", ") + "}"
}

func (s unionSchema) String() string { return "Union<" + joinSchemas(s.variants, " | ") + ">" }

func (s nullOrSchema) String() string { return "NullOr<" + s.inner.String() + ">" }

func (s undefinedOrSchema) String() string { return "UndefinedOr<" + s.inner.String() + ">" }

func (s filterSchema) String() string {
	return "Filter<" + s.inner.String() + ", " + strconv.Quote(s.message) + ">"
}

func joinSchemas(schemas []Schema, separator string) string {
	parts := make([]string, len(schemas))
	for index, schema := range schemas {
		parts[index] = schema.String()
	}
	return strings.Join(parts, separator)
}
