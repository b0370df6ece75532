// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "plutus",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "decode"
					return nil
				},
			},
			{
				Name: "encode",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "encode"
					return nil
				},
			},
		},
		ErrorOutput: &bytes.Buffer{},
	}

	if err := root.Execute(context.Background(), []string{"encode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "encode" {
		t.Errorf("dispatched to %q, want %q", called, "encode")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	type decodeParams struct {
		Hex     bool   `flag:"hex,x" desc:"hex input"`
		Type    string `flag:"type" desc:"schema type"`
		Limit   int64  `flag:"limit" default:"64" desc:"limit"`
		Ignored string
	}
	var params decodeParams
	var receivedArgs []string

	root := &Command{
		Name: "plutus",
		Subcommands: []*Command{
			{
				Name:   "decode",
				Params: func() any { return &params },
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					receivedArgs = args
					return nil
				},
			},
		},
		ErrorOutput: &bytes.Buffer{},
	}

	err := root.Execute(context.Background(), []string{"decode", "-x", "--type", "Datum", "input.cbor"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !params.Hex || params.Type != "Datum" || params.Limit != 64 {
		t.Errorf("params = %+v, want hex, type Datum, limit 64", params)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "input.cbor" {
		t.Errorf("args = %v, want [input.cbor]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "plutus",
		Subcommands: []*Command{{Name: "decode"}, {Name: "encode"}},
		ErrorOutput: &bytes.Buffer{},
	}

	err := root.Execute(context.Background(), []string{"decdoe"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "decode"`) {
		t.Errorf("error = %q, want suggestion for decode", err)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error category = %v, want validation", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		Compact bool `flag:"compact,c" desc:"compact output"`
	}
	var p params
	root := &Command{
		Name: "plutus",
		Subcommands: []*Command{{
			Name:   "decode",
			Params: func() any { return &p },
			Run:    func(context.Context, []string, *slog.Logger) error { return nil },
		}},
		ErrorOutput: &bytes.Buffer{},
	}

	err := root.Execute(context.Background(), []string{"decode", "--compcat"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --compact?") {
		t.Errorf("error = %q, want suggestion for --compact", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var stderr bytes.Buffer
	ran := false
	root := &Command{
		Name: "plutus",
		Subcommands: []*Command{{
			Name:        "hash",
			Summary:     "Compute a datum hash",
			Description: "Compute the BLAKE2b-256 datum hash.",
			Examples:    []Example{{Description: "Hash a file", Command: "plutus hash datum.cbor"}},
			Run: func(context.Context, []string, *slog.Logger) error {
				ran = true
				return nil
			},
		}},
		ErrorOutput: &stderr,
	}

	if err := root.Execute(context.Background(), []string{"hash", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("--help should not run the command")
	}
	output := stderr.String()
	for _, want := range []string{"Compute the BLAKE2b-256 datum hash.", "plutus hash", "# Hash a file"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var stderr bytes.Buffer
	root := &Command{
		Name:        "plutus",
		Subcommands: []*Command{{Name: "decode", Summary: "Decode CBOR"}},
		ErrorOutput: &stderr,
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want subcommand required", err)
	}
	if !strings.Contains(stderr.String(), "decode") {
		t.Errorf("help should list subcommands:\n%s", stderr.String())
	}
}

func TestCommand_OutputInherited(t *testing.T) {
	var stdout bytes.Buffer
	var leaf *Command
	leaf = &Command{
		Name: "diag",
		Run: func(context.Context, []string, *slog.Logger) error {
			_, err := leaf.Stdout().Write([]byte("ok"))
			return err
		},
	}
	root := &Command{Name: "plutus", Subcommands: []*Command{leaf}, Output: &stdout, ErrorOutput: &bytes.Buffer{}}

	if err := root.Execute(context.Background(), []string{"diag"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stdout.String() != "ok" {
		t.Errorf("stdout = %q, want ok", stdout.String())
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"decode", "decode", 0},
		{"decdoe", "decode", 2},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
