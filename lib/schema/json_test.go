// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/plutus/lib/plutus"
)

func TestFromJSONStruct(t *testing.T) {
	t.Parallel()

	datum := Struct(
		Field("owner", ByteArray()),
		Field("amounts", Map(ByteArray(), Integer())),
		Field("deadline", NullOr(Integer())),
		Field("memo", UndefinedOr(ByteArray())),
		Field("action", Literal("spend", "mint")),
		Field("pair", Tuple(Boolean(), Integer())),
	)
	input := `{
		"owner": "aa",
		"amounts": [{"k": "cafe", "v": 340282366920938463463374607431768211456}],
		"deadline": null,
		"action": "mint",
		"pair": [true, -3]
	}`

	value, err := FromJSON([]byte(input), datum)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	want := map[string]any{
		"owner":    "aa",
		"amounts":  []Entry{{"cafe", huge}},
		"deadline": nil,
		"action":   "mint",
		"pair":     []any{true, big.NewInt(-3)},
	}
	if diff := cmp.Diff(want, value, bigIntComparer); diff != "" {
		t.Errorf("FromJSON mismatch (-want +got):\n%s", diff)
	}

	if _, err := Encode(value, datum); err != nil {
		t.Errorf("Encode(FromJSON result): %v", err)
	}
}

func TestFromJSONMapObjectForm(t *testing.T) {
	t.Parallel()

	value, err := FromJSON([]byte(`{"2": true, "10": false}`), Map(Integer(), Boolean()))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	data, err := Encode(value, Map(Integer(), Boolean()))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := plutus.NewMap(
		plutus.Entry{Key: plutus.IntegerFromInt64(2), Value: plutus.NewConstr(1)},
		plutus.Entry{Key: plutus.IntegerFromInt64(10), Value: plutus.NewConstr(0)},
	)
	if !plutus.Equal(data, want) {
		t.Errorf("Encode = %s, want %s", data, want)
	}
}

func TestFromJSONUnionPicksFirstEncodableVariant(t *testing.T) {
	t.Parallel()

	union := Union(Integer(), Literal("none"), ByteArray())
	tests := []struct {
		input string
		want  any
	}{
		{`12`, big.NewInt(12)},
		{`"none"`, "none"},
		{`"beef"`, "beef"},
	}
	for _, test := range tests {
		value, err := FromJSON([]byte(test.input), union)
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", test.input, err)
		}
		if diff := cmp.Diff(test.want, value, bigIntComparer); diff != "" {
			t.Errorf("FromJSON(%s) mismatch (-want +got):\n%s", test.input, diff)
		}
	}

	if _, err := FromJSON([]byte(`"xyz"`), union); !errors.Is(err, plutus.ErrUnionMismatch) {
		t.Errorf("FromJSON(xyz) error = %v, want union mismatch", err)
	}
}

func TestFromJSONDataSchema(t *testing.T) {
	t.Parallel()

	value, err := FromJSON([]byte(`{"constructor": 3, "fields": [{"int": 1}]}`), Data())
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !plutus.Equal(value.(plutus.Data), plutus.NewConstr(3, plutus.IntegerFromInt64(1))) {
		t.Errorf("FromJSON = %v", value)
	}
}

func TestFromJSONRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		schema   Schema
		kind     plutus.ErrorKind
		wantPath string
	}{
		{"fractional integer", `1.5`, Integer(), plutus.ErrValidation, "$"},
		{"string integer", `"1"`, Integer(), plutus.ErrSchemaMismatch, "$"},
		{"nested", `{"a": [1, "x"]}`, Struct(Field("a", Array(Integer()))), plutus.ErrSchemaMismatch, "a[1]"},
		{"bad entry", `[{"k": "aa"}]`, Map(ByteArray(), Integer()), plutus.ErrSchemaMismatch, "[0]"},
		{"syntax", `{`, Integer(), plutus.ErrValidation, "$"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := FromJSON([]byte(test.input), test.schema)
			if !errors.Is(err, test.kind) {
				t.Fatalf("FromJSON error = %v, want %s", err, test.kind)
			}
			var codecError *plutus.Error
			if errors.As(err, &codecError) && codecError.Path.String() != test.wantPath {
				t.Errorf("path = %s, want %s", codecError.Path, test.wantPath)
			}
		})
	}
}

func TestDecodedValuesMarshalToJSON(t *testing.T) {
	t.Parallel()

	datum := Struct(
		Field("amounts", Map(ByteArray(), Integer())),
		Field("memo", NullOr(ByteArray())),
	)
	data, err := Encode(map[string]any{
		"amounts": []Entry{{"cafe", 5}},
		"memo":    nil,
	}, datum)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data, datum)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if want := `{"amounts":[{"k":"cafe","v":5}],"memo":null}`; string(encoded) != want {
		t.Errorf("json.Marshal = %s, want %s", encoded, want)
	}

	// And back again.
	value, err := FromJSON(encoded, datum)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	again, err := Encode(value, datum)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !plutus.Equal(again, data) {
		t.Errorf("JSON round trip = %s, want %s", again, data)
	}
}
