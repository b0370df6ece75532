// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"cmp"
	"strings"
)

// Equal reports whether a and b are structurally equal. Map equality
// is order-sensitive: two maps with the same entries in a different
// order are not equal. Use codec.Canonicalize on both sides to compare
// maps as sets.
func Equal(a, b Data) bool {
	switch left := a.(type) {
	case Integer:
		right, ok := b.(Integer)
		return ok && left.Value().Cmp(right.Value()) == 0
	case ByteArray:
		right, ok := b.(ByteArray)
		return ok && left.raw == right.raw
	case List:
		right, ok := b.(List)
		return ok && equalSlices(left.items, right.items)
	case Map:
		right, ok := b.(Map)
		if !ok || len(left.entries) != len(right.entries) {
			return false
		}
		for index, entry := range left.entries {
			other := right.entries[index]
			if !Equal(entry.Key, other.Key) || !Equal(entry.Value, other.Value) {
				return false
			}
		}
		return true
	case Constr:
		right, ok := b.(Constr)
		return ok && left.index == right.index && equalSlices(left.fields, right.fields)
	default:
		return a == nil && b == nil
	}
}

func equalSlices(left, right []Data) bool {
	if len(left) != len(right) {
		return false
	}
	for index := range left {
		if !Equal(left[index], right[index]) {
			return false
		}
	}
	return true
}

// kindRank orders variants for [Compare].
func kindRank(data Data) int {
	switch data.(type) {
	case Constr:
		return 0
	case Map:
		return 1
	case List:
		return 2
	case Integer:
		return 3
	case ByteArray:
		return 4
	default:
		return 5
	}
}

// Compare returns a total order over Data: -1, 0 or +1. Variants are
// ordered Constr < Map < List < Integer < ByteArray. Within a variant,
// constructors compare by index, then field count, then fields;
// sequences compare by length, then element-wise; integers numerically;
// byte arrays by length, then bytes.
func Compare(a, b Data) int {
	if rank := cmp.Compare(kindRank(a), kindRank(b)); rank != 0 {
		return rank
	}
	switch left := a.(type) {
	case Integer:
		return left.Value().Cmp(b.(Integer).Value())
	case ByteArray:
		right := b.(ByteArray)
		if order := cmp.Compare(len(left.raw), len(right.raw)); order != 0 {
			return order
		}
		return strings.Compare(left.raw, right.raw)
	case List:
		return compareSlices(left.items, b.(List).items)
	case Map:
		right := b.(Map)
		if order := cmp.Compare(len(left.entries), len(right.entries)); order != 0 {
			return order
		}
		for index, entry := range left.entries {
			other := right.entries[index]
			if order := Compare(entry.Key, other.Key); order != 0 {
				return order
			}
			if order := Compare(entry.Value, other.Value); order != 0 {
				return order
			}
		}
		return 0
	case Constr:
		right := b.(Constr)
		if order := cmp.Compare(left.index, right.index); order != 0 {
			return order
		}
		return compareSlices(left.fields, right.fields)
	default:
		return 0
	}
}

func compareSlices(left, right []Data) int {
	if order := cmp.Compare(len(left), len(right)); order != 0 {
		return order
	}
	for index := range left {
		if order := Compare(left[index], right[index]); order != 0 {
			return order
		}
	}
	return 0
}
