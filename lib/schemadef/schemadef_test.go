// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/plutus/lib/plutus"
	"github.com/bureau-foundation/plutus/lib/schema"
)

const escrowDefinitions = `
# Escrow contract datum and redeemer.
types:
  Asset:
    struct:
      - {name: policyId, type: {bytes: {size: 28}}}
      - {name: assetName, type: {bytes: {max_size: 32}}}
  Action:   {literal: [spend, mint]}
  Redeemer: {union: [Asset, Action]}
  Amounts:  {map: {key: bytes, value: {int: {min: 0}}}}
  Outputs:  {list: Asset}
  Deadline: {nullable: int}
  Memo:     {optional: bytes}
  Pair:     {tuple: [bytes, int]}
  Datum:
    struct:
      owner: bytes
      deadline: Deadline
      memo: Memo
`

func mustParse(t *testing.T, text string) *Registry {
	t.Helper()
	registry, err := Parse([]byte(text), "test.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return registry
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	registry := mustParse(t, escrowDefinitions)
	if err := registry.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"Asset", `Struct{policyId: Filter<ByteArray, "expected exactly 28 bytes">, assetName: Filter<ByteArray, "expected at most 32 bytes">}`},
		{"Action", `Literal("spend", "mint")`},
		{"Amounts", `Map<ByteArray, Filter<Integer, "expected an integer >= 0">>`},
		{"Deadline", `NullOr<Integer>`},
		{"Memo", `UndefinedOr<ByteArray>`},
		{"Pair", `Tuple<ByteArray, Integer>`},
		{"Datum", `Struct{owner: ByteArray, deadline: NullOr<Integer>, memo: UndefinedOr<ByteArray>}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resolved, err := registry.Lookup(test.name)
			if err != nil {
				t.Fatalf("Lookup(%s): %v", test.name, err)
			}
			if got := resolved.String(); got != test.want {
				t.Errorf("Lookup(%s) = %s, want %s", test.name, got, test.want)
			}
		})
	}

	wantNames := "Action Amounts Asset Datum Deadline Memo Outputs Pair Redeemer"
	if got := strings.Join(registry.Names(), " "); got != wantNames {
		t.Errorf("Names() = %s, want %s", got, wantNames)
	}
}

func TestParseJSONC(t *testing.T) {
	t.Parallel()

	text := `// Token definitions.
{
	"types": {
		/* a fungible token amount */
		"Token": {"struct": [
			{"name": "policy", "type": "bytes"},
			{"name": "amount", "type": {"int": {"min": 1, "max": 1000}}},
		]},
		"Flag": {"literal": [true, 7, "x"]},
	},
}`
	registry := mustParse(t, text)

	token, err := registry.Lookup("Token")
	if err != nil {
		t.Fatalf("Lookup(Token): %v", err)
	}
	if want := `Struct{policy: ByteArray, amount: Filter<Integer, "expected an integer in [1, 1000]">}`; token.String() != want {
		t.Errorf("Token = %s, want %s", token, want)
	}

	flag, err := registry.Lookup("Flag")
	if err != nil {
		t.Fatalf("Lookup(Flag): %v", err)
	}
	if want := `Literal(true, 7, "x")`; flag.String() != want {
		t.Errorf("Flag = %s, want %s", flag, want)
	}
}

func TestRefinementsApply(t *testing.T) {
	t.Parallel()

	registry := mustParse(t, escrowDefinitions)
	asset, err := registry.Lookup("Asset")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	policy := strings.Repeat("ab", 28)
	if _, err := schema.Encode(map[string]any{"policyId": policy, "assetName": "cafe"}, asset); err != nil {
		t.Errorf("Encode(valid asset): %v", err)
	}

	_, err = schema.Encode(map[string]any{"policyId": "abcd", "assetName": "cafe"}, asset)
	if !errors.Is(err, plutus.ErrRefinement) {
		t.Fatalf("short policy id error = %v, want refinement error", err)
	}
	var codecError *plutus.Error
	if errors.As(err, &codecError) && codecError.Path.String() != "policyId" {
		t.Errorf("path = %s, want policyId", codecError.Path)
	}

	amounts, err := registry.Lookup("Amounts")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := schema.Encode([]schema.Entry{{Key: "aa", Value: big.NewInt(-1)}}, amounts); !errors.Is(err, plutus.ErrRefinement) {
		t.Errorf("negative amount error = %v, want refinement error", err)
	}
	if _, err := schema.Encode([]schema.Entry{{Key: "aa", Value: 5}}, amounts); err != nil {
		t.Errorf("Encode(valid amounts): %v", err)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		lookup     string
		wantSubstr string
	}{
		{
			name:       "unknown name",
			text:       "types:\n  A: {list: Missing}\n",
			lookup:     "A",
			wantSubstr: `unknown type "Missing"`,
		},
		{
			name:       "direct cycle",
			text:       "types:\n  A: {list: A}\n",
			lookup:     "A",
			wantSubstr: "A -> A",
		},
		{
			name:       "indirect cycle",
			text:       "types:\n  A: {nullable: B}\n  B: {list: A}\n",
			lookup:     "A",
			wantSubstr: "A -> B -> A",
		},
		{
			name:       "unknown form",
			text:       "types:\n  A: {set: int}\n",
			lookup:     "A",
			wantSubstr: `unknown type form "set"`,
		},
		{
			name:       "two keys",
			text:       "types:\n  A: {list: int, map: int}\n",
			lookup:     "A",
			wantSubstr: "exactly one key",
		},
		{
			name:       "duplicate field",
			text:       "types:\n  A:\n    struct:\n      - {name: x, type: int}\n      - {name: x, type: bytes}\n",
			lookup:     "A",
			wantSubstr: `struct field "x" is already declared`,
		},
		{
			name:       "duplicate literal",
			text:       "types:\n  A: {literal: [a, b, a]}\n",
			lookup:     "A",
			wantSubstr: "duplicate literal a",
		},
		{
			name:       "empty union",
			text:       "types:\n  A: {union: []}\n",
			lookup:     "A",
			wantSubstr: "at least one variant",
		},
		{
			name:       "inverted bounds",
			text:       "types:\n  A: {int: {min: 5, max: 1}}\n",
			lookup:     "A",
			wantSubstr: "greater than max",
		},
		{
			name:       "size and max_size",
			text:       "types:\n  A: {bytes: {size: 1, max_size: 2}}\n",
			lookup:     "A",
			wantSubstr: "not both",
		},
		{
			name:       "map missing value",
			text:       "types:\n  A: {map: {key: int}}\n",
			lookup:     "A",
			wantSubstr: `missing required key "value"`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := mustParse(t, test.text)
			_, err := registry.Lookup(test.lookup)
			if err == nil {
				t.Fatalf("Lookup(%s) should fail", test.lookup)
			}
			if !strings.Contains(err.Error(), test.wantSubstr) {
				t.Errorf("error %q does not contain %q", err, test.wantSubstr)
			}
			if resolveErr := registry.Resolve(); resolveErr == nil {
				t.Error("Resolve should fail as well")
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantSubstr string
	}{
		{"empty document", "", `missing top-level "types"`},
		{"types not a mapping", "types: [a, b]\n", "must be a mapping"},
		{"shadows builtin", "types:\n  int: bytes\n", "shadows a built-in"},
		{"invalid name", "types:\n  9lives: int\n", "invalid character"},
		{"malformed yaml", "types: {a: [\n", "parsing schema definitions"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.text), "bad.yaml")
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if !strings.Contains(err.Error(), test.wantSubstr) {
				t.Errorf("error %q does not contain %q", err, test.wantSubstr)
			}
		})
	}
}

func TestDefinitionErrorPosition(t *testing.T) {
	t.Parallel()

	registry := mustParse(t, "types:\n  A:\n    tuple: [int, {bogus: 1}]\n")
	_, err := registry.Lookup("A")
	var definitionError *DefinitionError
	if !errors.As(err, &definitionError) {
		t.Fatalf("error %v is not a *DefinitionError", err)
	}
	if definitionError.Line != 3 {
		t.Errorf("Line = %d, want 3", definitionError.Line)
	}
	if !strings.HasPrefix(err.Error(), "test.yaml: type A: tuple element 1:") {
		t.Errorf("error = %q, want source and type prefix", err)
	}
}

func TestMergeAcrossFiles(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	common := filepath.Join(directory, "common.yaml")
	escrow := filepath.Join(directory, "escrow.jsonc")
	if err := os.WriteFile(common, []byte("types:\n  Hash: {bytes: {size: 32}}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(escrow, []byte(`{"types": {"Escrow": {"struct": {"hash": "Hash", "amount": "int"}}}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	registry, err := Load(common, escrow)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	resolved, err := registry.Lookup("Escrow")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if want := `Struct{hash: Filter<ByteArray, "expected exactly 32 bytes">, amount: Integer}`; resolved.String() != want {
		t.Errorf("Escrow = %s, want %s", resolved, want)
	}
	if source, _ := registry.Source("Hash"); source != common {
		t.Errorf("Source(Hash) = %s, want %s", source, common)
	}

	// The escrow file alone cannot resolve Hash.
	if _, err := Load(escrow); err == nil || !strings.Contains(err.Error(), `unknown type "Hash"`) {
		t.Errorf("Load(escrow) error = %v, want unknown type", err)
	}

	duplicate := NewRegistry()
	if err := duplicate.Merge(registry); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if err := duplicate.Merge(registry); err == nil {
		t.Error("merging the same definitions twice should fail")
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ReadFile should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("types: [\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := ReadFile(path)
	if err == nil || !strings.HasPrefix(err.Error(), path+":") {
		t.Errorf("ReadFile error = %v, want path prefix", err)
	}
}

func TestNameFromPath(t *testing.T) {
	t.Parallel()

	if got := NameFromPath("contracts/escrow.schema.yaml"); got != "escrow.schema" {
		t.Errorf("NameFromPath = %q, want escrow.schema", got)
	}
}
