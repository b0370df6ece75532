// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"slices"
	"testing"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	entryA := Entry{Key: MustByteArray("aa"), Value: IntegerFromInt64(1)}
	entryB := Entry{Key: MustByteArray("bb"), Value: IntegerFromInt64(2)}

	tests := []struct {
		name  string
		a, b  Data
		equal bool
	}{
		{"same integer", IntegerFromInt64(5), IntegerFromInt64(5), true},
		{"different integer", IntegerFromInt64(5), IntegerFromInt64(6), false},
		{"hex case irrelevant", MustByteArray("AB"), MustByteArray("ab"), true},
		{"integer vs bytes", IntegerFromInt64(1), MustByteArray("01"), false},
		{"nested list", NewList(NewList(IntegerFromInt64(1))), NewList(NewList(IntegerFromInt64(1))), true},
		{"list length", NewList(IntegerFromInt64(1)), NewList(), false},
		{"constr index", NewConstr(0), NewConstr(1), false},
		{"constr fields", NewConstr(0, IntegerFromInt64(1)), NewConstr(0, IntegerFromInt64(1)), true},
		{"map same order", NewMap(entryA, entryB), NewMap(entryA, entryB), true},
		{"map order sensitive", NewMap(entryA, entryB), NewMap(entryB, entryA), false},
		{"empty list vs empty map", NewList(), NewMap(), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.equal {
				t.Errorf("Equal(%s, %s) = %v, want %v", test.a, test.b, got, test.equal)
			}
			if got := Equal(test.b, test.a); got != test.equal {
				t.Errorf("Equal is not symmetric for %s, %s", test.a, test.b)
			}
		})
	}
}

func TestCompareOrdersKinds(t *testing.T) {
	t.Parallel()

	values := []Data{
		MustByteArray("00"),
		IntegerFromInt64(0),
		NewList(),
		NewMap(),
		NewConstr(0),
	}
	slices.SortFunc(values, Compare)

	want := []Kind{KindConstr, KindMap, KindList, KindInteger, KindByteArray}
	for index, value := range values {
		if value.Kind() != want[index] {
			t.Errorf("sorted[%d] = %s, want kind %s", index, value, want[index])
		}
	}
}

func TestCompareWithinKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Data
		want int
	}{
		{"integers", IntegerFromInt64(-3), IntegerFromInt64(2), -1},
		{"bytes shorter first", MustByteArray("ff"), MustByteArray("0000"), -1},
		{"bytes lexicographic", MustByteArray("01"), MustByteArray("02"), -1},
		{"constr index", NewConstr(2), NewConstr(1), 1},
		{"list length first", NewList(IntegerFromInt64(9)), NewList(IntegerFromInt64(1), IntegerFromInt64(1)), -1},
		{"equal", NewConstr(0, MustByteArray("aa")), NewConstr(0, MustByteArray("aa")), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Compare(test.a, test.b); got != test.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := Compare(test.b, test.a); got != -test.want {
				t.Errorf("Compare is not antisymmetric: reversed = %d", got)
			}
		})
	}
}
