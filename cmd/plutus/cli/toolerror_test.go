// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("missing --type")
	if err.Error() != "missing --type" {
		t.Errorf("Error() = %q, want %q", err.Error(), "missing --type")
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := NotFound("unknown type %q", "Datum").
		WithHint("Run 'plutus schema' to list defined types.")

	want := "unknown type \"Datum\"\n\nRun 'plutus schema' to list defined types."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", err.Category, CategoryNotFound)
	}
}

func TestToolError_UnwrapsToCause(t *testing.T) {
	err := Internal("write output: %w", io.ErrShortWrite)
	wrapped := fmt.Errorf("decode: %w", err)

	if !errors.Is(wrapped, io.ErrShortWrite) {
		t.Error("errors.Is should reach the cause through ToolError")
	}
	var toolError *ToolError
	if !errors.As(wrapped, &toolError) || toolError.Category != CategoryInternal {
		t.Errorf("errors.As = %v, want internal ToolError", toolError)
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReport bool
	}{
		{"nil", nil, 0, false},
		{"exit error", &ExitError{Code: 3}, 3, false},
		{"wrapped exit error", fmt.Errorf("validate: %w", &ExitError{Code: 1}), 1, false},
		{"validation", Validation("bad hex"), 2, true},
		{"not found", NotFound("no such file"), 2, true},
		{"internal", Internal("write failed"), 1, true},
		{"plain", errors.New("boom"), 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, report := ExitStatus(test.err)
			if code != test.wantCode || report != test.wantReport {
				t.Errorf("ExitStatus = (%d, %v), want (%d, %v)", code, report, test.wantCode, test.wantReport)
			}
		})
	}
}
