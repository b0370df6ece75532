// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type InputFlags struct {
	Hex  bool   `flag:"hex,x" desc:"treat input as hex"`
	File string `flag:"file" desc:"input file"`
}

type schemaFlags struct {
	Files []string
}

func (s *schemaFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringSliceVar(&s.Files, "schema", nil, "schema definition file")
}

type composedParams struct {
	InputFlags
	Schemas schemaFlags
	Compact bool     `flag:"compact,c" desc:"compact output"`
	Color   string   `flag:"color" default:"auto" desc:"color mode"`
	Depth   int      `flag:"depth" default:"3" desc:"tree depth"`
	Tags    []string `flag:"tag" default:"a,b" desc:"tags"`
}

func TestBindFlags_Defaults(t *testing.T) {
	var params composedParams
	flagSet := FlagsFromParams("test", &params)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if params.Color != "auto" {
		t.Errorf("Color = %q, want auto", params.Color)
	}
	if params.Depth != 3 {
		t.Errorf("Depth = %d, want 3", params.Depth)
	}
	if strings.Join(params.Tags, ",") != "a,b" {
		t.Errorf("Tags = %v, want [a b]", params.Tags)
	}
	if params.Hex || params.Compact {
		t.Error("bool flags should default to false")
	}
}

func TestBindFlags_EmbeddedAndBinder(t *testing.T) {
	var params composedParams
	flagSet := FlagsFromParams("test", &params)
	args := []string{"-x", "--file", "datum.cbor", "--schema", "a.yaml", "--schema", "b.yaml", "-c", "--depth=5", "rest"}
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !params.Hex || params.File != "datum.cbor" {
		t.Errorf("embedded flags not bound: %+v", params.InputFlags)
	}
	if strings.Join(params.Schemas.Files, ",") != "a.yaml,b.yaml" {
		t.Errorf("Schemas.Files = %v, want [a.yaml b.yaml]", params.Schemas.Files)
	}
	if !params.Compact || params.Depth != 5 {
		t.Errorf("Compact = %v, Depth = %d", params.Compact, params.Depth)
	}
	if got := flagSet.Args(); len(got) != 1 || got[0] != "rest" {
		t.Errorf("Args() = %v, want [rest]", got)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", composedParams{}, "pointer to a struct"},
		{"pointer to non-struct", new(string), "pointer to a struct"},
		{"unsupported type", &struct {
			Ratio float32 `flag:"ratio"`
		}{}, "unsupported type"},
		{"bad default", &struct {
			Count int `flag:"count" default:"many"`
		}{}, "default for --count"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags error = %v, want %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams should panic on invalid params")
		}
	}()
	FlagsFromParams("test", 42)
}
