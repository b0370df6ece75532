// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"encoding/hex"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies a [Data] variant.
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindByteArray
	KindList
	KindMap
	KindConstr
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindByteArray:
		return "ByteArray"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindConstr:
		return "Constr"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Data is a Plutus Data value. The interface is sealed: the only
// implementations are [Integer], [ByteArray], [List], [Map] and
// [Constr]. Switch on the concrete type to inspect a value.
type Data interface {
	// Kind returns the variant tag.
	Kind() Kind

	// String renders the value in a compact constructor notation, for
	// diagnostics.
	String() string

	isData()
}

// Integer is an arbitrary-precision signed integer. The zero value is
// the integer 0.
type Integer struct {
	value *big.Int
}

// ByteArray is a byte string. The zero value is the empty byte string.
type ByteArray struct {
	// raw holds the bytes. A string keeps the value immutable without
	// copying on every read.
	raw string
}

// List is an ordered sequence of Data. The zero value is the empty
// list.
type List struct {
	items []Data
}

// Entry is one key/value pair of a [Map].
type Entry struct {
	Key   Data
	Value Data
}

// Map is an ordered sequence of key/value pairs with pairwise distinct
// keys. Order is preserved as constructed; canonical binary encoding
// sorts entries by their encoded key bytes (see lib/codec).
type Map struct {
	entries []Entry
}

// Constr is a constructor application: an alternative index and its
// ordered fields. The zero value is constructor 0 with no fields.
type Constr struct {
	index  uint64
	fields []Data
}

func (Integer) Kind() Kind   { return KindInteger }
func (ByteArray) Kind() Kind { return KindByteArray }
func (List) Kind() Kind      { return KindList }
func (Map) Kind() Kind       { return KindMap }
func (Constr) Kind() Kind    { return KindConstr }

func (Integer) isData()   {}
func (ByteArray) isData() {}
func (List) isData()      {}
func (Map) isData()       {}
func (Constr) isData()    {}

// --- Constructors ---

// MakeByteArray builds a ByteArray from a hex string. The string must
// have even length and contain only [0-9a-fA-F]; the empty string is
// the empty byte string.
func MakeByteArray(hexString string) (ByteArray, error) {
	if len(hexString)%2 != 0 {
		return ByteArray{}, Validation("byte array hex %q has odd length %d", abbreviate(hexString), len(hexString))
	}
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return ByteArray{}, Validation("byte array %q is not valid hex: %v", abbreviate(hexString), err)
	}
	return ByteArray{raw: string(decoded)}, nil
}

// MustByteArray is like [MakeByteArray] but panics on invalid input.
func MustByteArray(hexString string) ByteArray {
	value, err := MakeByteArray(hexString)
	if err != nil {
		panic("plutus.MustByteArray: " + err.Error())
	}
	return value
}

// ByteArrayFromBytes builds a ByteArray holding a copy of data.
func ByteArrayFromBytes(data []byte) ByteArray {
	return ByteArray{raw: string(data)}
}

// MakeInteger builds an Integer from *big.Int, big.Int or any Go
// integer type. Floating-point numbers are rejected even when
// integral: a host float is never silently treated as an integer.
func MakeInteger(value any) (Integer, error) {
	converted, err := toBigInt(value)
	if err != nil {
		return Integer{}, err
	}
	return Integer{value: converted}, nil
}

// IntegerFromInt64 builds an Integer from an int64.
func IntegerFromInt64(value int64) Integer {
	return Integer{value: big.NewInt(value)}
}

// IntegerFromBig builds an Integer holding a copy of value. A nil
// value panics.
func IntegerFromBig(value *big.Int) Integer {
	if value == nil {
		panic("plutus.IntegerFromBig: nil *big.Int")
	}
	return Integer{value: new(big.Int).Set(value)}
}

// MakeList builds a List from items. Nil items are rejected.
func MakeList(items []Data) (List, error) {
	for index, item := range items {
		if item == nil {
			return List{}, AtIndex(Validation("list item is nil"), index)
		}
	}
	return List{items: slices.Clone(items)}, nil
}

// NewList is like [MakeList] but variadic, and panics on nil items.
func NewList(items ...Data) List {
	list, err := MakeList(items)
	if err != nil {
		panic("plutus.NewList: " + err.Error())
	}
	return list
}

// MakeMap builds a Map from entries, preserving their order. Nil keys
// or values and duplicate keys are rejected.
func MakeMap(entries []Entry) (Map, error) {
	seen := make(map[string]int, len(entries))
	for index, entry := range entries {
		if entry.Key == nil {
			return Map{}, AtIndex(Validation("map key is nil"), index)
		}
		if entry.Value == nil {
			return Map{}, AtIndex(Validation("map value is nil"), index)
		}
		identity := identityOf(entry.Key)
		if previous, duplicate := seen[identity]; duplicate {
			return Map{}, AtIndex(Validation("duplicate map key %s (first at entry %d)", entry.Key, previous), index)
		}
		seen[identity] = index
	}
	return Map{entries: slices.Clone(entries)}, nil
}

// NewMap is like [MakeMap] but variadic, and panics on invalid input.
func NewMap(entries ...Entry) Map {
	value, err := MakeMap(entries)
	if err != nil {
		panic("plutus.NewMap: " + err.Error())
	}
	return value
}

// MakeConstr builds a Constr. The index may be any Go integer type,
// *big.Int or big.Int, and must lie in [0, 2^64-1]. Nil fields are
// rejected.
func MakeConstr(index any, fields []Data) (Constr, error) {
	converted, err := toBigInt(index)
	if err != nil {
		return Constr{}, Validation("constructor index: %v", err.(*Error).Err)
	}
	if converted.Sign() < 0 {
		return Constr{}, Validation("constructor index %s is negative", converted)
	}
	if !converted.IsUint64() {
		return Constr{}, Validation("constructor index %s exceeds 2^64-1", converted)
	}
	for position, field := range fields {
		if field == nil {
			return Constr{}, AtIndex(Validation("constructor field is nil"), position)
		}
	}
	return Constr{index: converted.Uint64(), fields: slices.Clone(fields)}, nil
}

// NewConstr builds a Constr from a uint64 index. Panics on nil fields.
func NewConstr(index uint64, fields ...Data) Constr {
	for position, field := range fields {
		if field == nil {
			panic("plutus.NewConstr: field " + strconv.Itoa(position) + " is nil")
		}
	}
	return Constr{index: index, fields: slices.Clone(fields)}
}

// toBigInt converts every exact integer representation to a fresh
// *big.Int.
func toBigInt(value any) (*big.Int, error) {
	switch number := value.(type) {
	case *big.Int:
		if number == nil {
			return nil, Validation("integer is a nil *big.Int")
		}
		return new(big.Int).Set(number), nil
	case big.Int:
		return new(big.Int).Set(&number), nil
	case int:
		return big.NewInt(int64(number)), nil
	case int8:
		return big.NewInt(int64(number)), nil
	case int16:
		return big.NewInt(int64(number)), nil
	case int32:
		return big.NewInt(int64(number)), nil
	case int64:
		return big.NewInt(number), nil
	case uint:
		return new(big.Int).SetUint64(uint64(number)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(number)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(number)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(number)), nil
	case uint64:
		return new(big.Int).SetUint64(number), nil
	case float32:
		return nil, Validation("floating-point value %v is not an arbitrary-precision integer", number)
	case float64:
		if math.Trunc(number) != number {
			return nil, Validation("non-integral value %v is not an integer", number)
		}
		return nil, Validation("floating-point value %v is not an arbitrary-precision integer", number)
	case nil:
		return nil, Validation("integer is nil")
	default:
		return nil, Validation("%T is not an integer type", value)
	}
}

// --- Predicates ---

// IsInteger reports whether value is an [Integer].
func IsInteger(value any) bool { _, ok := value.(Integer); return ok }

// IsByteArray reports whether value is a [ByteArray].
func IsByteArray(value any) bool { _, ok := value.(ByteArray); return ok }

// IsList reports whether value is a [List].
func IsList(value any) bool { _, ok := value.(List); return ok }

// IsMap reports whether value is a [Map].
func IsMap(value any) bool { _, ok := value.(Map); return ok }

// IsConstr reports whether value is a [Constr].
func IsConstr(value any) bool { _, ok := value.(Constr); return ok }

// --- Accessors ---

// Value returns a copy of the integer.
func (i Integer) Value() *big.Int {
	if i.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.value)
}

// Sign returns -1, 0 or +1.
func (i Integer) Sign() int {
	if i.value == nil {
		return 0
	}
	return i.value.Sign()
}

// Bytes returns a copy of the byte string.
func (b ByteArray) Bytes() []byte { return []byte(b.raw) }

// Hex returns the byte string as lowercase hex.
func (b ByteArray) Hex() string { return hex.EncodeToString([]byte(b.raw)) }

// Len returns the number of bytes.
func (b ByteArray) Len() int { return len(b.raw) }

// Items returns a copy of the list items.
func (l List) Items() []Data { return slices.Clone(l.items) }

// Len returns the number of items.
func (l List) Len() int { return len(l.items) }

// At returns the item at position index.
func (l List) At(index int) Data { return l.items[index] }

// Entries returns a copy of the map entries in their stored order.
func (m Map) Entries() []Entry { return slices.Clone(m.entries) }

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m Map) Get(key Data) (Data, bool) {
	for _, entry := range m.entries {
		if Equal(entry.Key, key) {
			return entry.Value, true
		}
	}
	return nil, false
}

// Index returns the constructor index.
func (c Constr) Index() uint64 { return c.index }

// Fields returns a copy of the constructor fields.
func (c Constr) Fields() []Data { return slices.Clone(c.fields) }

// Len returns the number of fields.
func (c Constr) Len() int { return len(c.fields) }

// Field returns the field at position index.
func (c Constr) Field(index int) Data { return c.fields[index] }

// --- Diagnostic rendering ---

func (i Integer) String() string   { return writeString(i) }
func (b ByteArray) String() string { return writeString(b) }
func (l List) String() string      { return writeString(l) }
func (m Map) String() string       { return writeString(m) }
func (c Constr) String() string    { return writeString(c) }

func writeString(data Data) string {
	var builder strings.Builder
	appendString(&builder, data)
	return builder.String()
}

func appendString(builder *strings.Builder, data Data) {
	switch value := data.(type) {
	case Integer:
		builder.WriteString("Integer(")
		builder.WriteString(value.Value().String())
		builder.WriteByte(')')
	case ByteArray:
		builder.WriteString("ByteArray(")
		builder.WriteString(value.Hex())
		builder.WriteByte(')')
	case List:
		builder.WriteString("List[")
		appendItems(builder, value.items)
		builder.WriteByte(']')
	case Map:
		builder.WriteString("Map{")
		for index, entry := range value.entries {
			if index > 0 {
				builder.WriteString(", ")
			}
			appendString(builder, entry.Key)
			builder.WriteString(": ")
			appendString(builder, entry.Value)
		}
		builder.WriteByte('}')
	case Constr:
		builder.WriteString("Constr(")
		builder.WriteString(strconv.FormatUint(value.index, 10))
		builder.WriteString(", [")
		appendItems(builder, value.fields)
		builder.WriteString("])")
	}
}

func appendItems(builder *strings.Builder, items []Data) {
	for index, item := range items {
		if index > 0 {
			builder.WriteString(", ")
		}
		appendString(builder, item)
	}
}

// identityOf returns a string that is equal for two Data values
// exactly when [Equal] reports them equal. Used for duplicate key
// detection in O(n).
func identityOf(data Data) string {
	var builder strings.Builder
	appendIdentity(&builder, data)
	return builder.String()
}

func appendIdentity(builder *strings.Builder, data Data) {
	switch value := data.(type) {
	case Integer:
		builder.WriteByte('i')
		text := value.Value().String()
		builder.WriteString(strconv.Itoa(len(text)))
		builder.WriteByte(':')
		builder.WriteString(text)
	case ByteArray:
		builder.WriteByte('b')
		builder.WriteString(strconv.Itoa(len(value.raw)))
		builder.WriteByte(':')
		builder.WriteString(value.raw)
	case List:
		builder.WriteByte('l')
		builder.WriteString(strconv.Itoa(len(value.items)))
		builder.WriteByte(':')
		for _, item := range value.items {
			appendIdentity(builder, item)
		}
	case Map:
		builder.WriteByte('m')
		builder.WriteString(strconv.Itoa(len(value.entries)))
		builder.WriteByte(':')
		for _, entry := range value.entries {
			appendIdentity(builder, entry.Key)
			appendIdentity(builder, entry.Value)
		}
	case Constr:
		builder.WriteByte('c')
		builder.WriteString(strconv.FormatUint(value.index, 10))
		builder.WriteByte('/')
		builder.WriteString(strconv.Itoa(len(value.fields)))
		builder.WriteByte(':')
		for _, field := range value.fields {
			appendIdentity(builder, field)
		}
	}
}

// abbreviate shortens long inputs quoted in error messages.
func abbreviate(text string) string {
	const limit = 64
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
