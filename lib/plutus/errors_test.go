// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorKindIs(t *testing.T) {
	t.Parallel()

	err := Decode("unexpected tag %d", 30)
	if !errors.Is(err, ErrDecode) {
		t.Error("errors.Is(decode error, ErrDecode) = false")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("errors.Is(decode error, ErrValidation) = true")
	}

	wrapped := fmt.Errorf("reading datum: %w", err)
	if !errors.Is(wrapped, ErrDecode) {
		t.Error("kind lost through fmt.Errorf wrapping")
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	t.Parallel()

	err := Decode("reading head: %w", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("underlying cause not reachable through errors.Is")
	}
}

func TestErrorPaths(t *testing.T) {
	t.Parallel()

	var err error = SchemaMismatch("expected bool, got string")
	err = AtField(err, "amount")
	err = AtIndex(err, 1)
	err = AtField(err, "outputs")

	want := "schema mismatch at outputs[1].amount: expected bool, got string"
	if err.Error() != want {
		t.Errorf("Error() = %q\nwant      %q", err.Error(), want)
	}

	var codecError *Error
	if !errors.As(err, &codecError) {
		t.Fatal("errors.As failed")
	}
	if len(codecError.Path) != 3 || codecError.Path[1].Index != 1 {
		t.Errorf("Path = %#v", codecError.Path)
	}
}

func TestErrorPathPrefixDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := AtField(Validation("bad"), "inner")
	first := AtField(base, "left")
	second := AtField(base, "right")
	if first.Error() == second.Error() {
		t.Errorf("sibling paths share storage: %q", first)
	}
	if base.Error() != "validation at inner: bad" {
		t.Errorf("base mutated: %q", base)
	}
}

func TestRootErrorOmitsPath(t *testing.T) {
	t.Parallel()

	if got := Refinement("must be positive").Error(); got != "refinement: must be positive" {
		t.Errorf("Error() = %q", got)
	}
	// Refinement messages are verbatim, not format strings.
	if got := Refinement("100% sure").Error(); got != "refinement: 100% sure" {
		t.Errorf("Error() = %q", got)
	}
	if Path(nil).String() != "$" {
		t.Errorf("empty path = %q, want $", Path(nil).String())
	}
}

func TestAtFieldIgnoresForeignErrors(t *testing.T) {
	t.Parallel()

	if got := AtField(io.EOF, "field"); got != io.EOF {
		t.Errorf("AtField(io.EOF) = %v, want io.EOF unchanged", got)
	}
}
