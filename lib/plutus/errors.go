// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plutus

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies codec failures so callers can branch on the
// kind of failure without parsing message text. ErrorKind implements
// error, so the constants work as errors.Is targets:
//
//	if errors.Is(err, plutus.ErrDecode) { ... }
type ErrorKind string

const (
	// ErrValidation indicates a malformed primitive: bad hex, a
	// non-integral or non-integer "integer", a negative or oversized
	// constructor index, a duplicate map key.
	ErrValidation ErrorKind = "validation"

	// ErrSchemaMismatch indicates a value (or Data tree) whose shape
	// does not satisfy the expected schema node.
	ErrSchemaMismatch ErrorKind = "schema mismatch"

	// ErrUnionMismatch indicates that no union variant accepted a value
	// on encode, or that a decoded constructor index is outside the
	// union's variant range.
	ErrUnionMismatch ErrorKind = "union mismatch"

	// ErrDecode indicates malformed binary input: truncated buffers,
	// wrong major types, unsupported tags, trailing bytes.
	ErrDecode ErrorKind = "decode"

	// ErrRefinement indicates that a refinement predicate rejected a
	// value. The message is the one supplied with the refinement.
	ErrRefinement ErrorKind = "refinement"
)

// Error returns the kind name. It exists so that an ErrorKind can be
// used directly as an errors.Is target.
func (k ErrorKind) Error() string { return string(k) }

// Segment is one step of a [Path]: either a named struct field or a
// zero-based position in a list, tuple, constructor or map.
type Segment struct {
	// Field is the struct field name. Empty for positional segments.
	Field string

	// Index is the position for positional segments.
	Index int
}

// String renders the segment as it appears inside a path.
func (s Segment) String() string {
	if s.Field != "" {
		return s.Field
	}
	return "[" + strconv.Itoa(s.Index) + "]"
}

// Path locates a failure inside a nested value, outermost segment
// first.
type Path []Segment

// String renders the path as "outputs[1].amount". The empty path
// renders as "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var builder strings.Builder
	for index, segment := range p {
		if segment.Field != "" && index > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(segment.String())
	}
	return builder.String()
}

// Error is the single error type returned by the plutus, codec and
// schema packages. Use the kind constructors ([Validation],
// [SchemaMismatch], [UnionMismatch], [Decode], [Refinement]) rather
// than building Error directly.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path locates the failure within the value being processed.
	// Empty when the failure is at the root.
	Path Path

	// Err carries the human-readable message and, for decode failures,
	// the underlying CBOR library error.
	Err error
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error's [ErrorKind].
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Validation creates a validation error: a malformed primitive.
func Validation(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

// SchemaMismatch creates a schema mismatch error: the value does not
// have the shape the schema expects.
func SchemaMismatch(format string, args ...any) *Error {
	return newError(ErrSchemaMismatch, format, args...)
}

// UnionMismatch creates a union mismatch error.
func UnionMismatch(format string, args ...any) *Error {
	return newError(ErrUnionMismatch, format, args...)
}

// Decode creates a decode error: malformed binary input. Use %w to
// keep the CBOR library's error in the chain.
func Decode(format string, args ...any) *Error {
	return newError(ErrDecode, format, args...)
}

// Refinement creates a refinement error carrying the refinement's own
// message.
func Refinement(message string) *Error {
	return &Error{Kind: ErrRefinement, Err: refinementMessage(message)}
}

// refinementMessage keeps the caller-supplied text verbatim (no format
// verb interpretation).
type refinementMessage string

func (m refinementMessage) Error() string { return string(m) }

// AtField prefixes the path of err with a struct field name. Errors
// that are not *Error are returned unchanged.
func AtField(err error, name string) error {
	return prefix(err, Segment{Field: name})
}

// AtIndex prefixes the path of err with a position.
func AtIndex(err error, index int) error {
	return prefix(err, Segment{Index: index})
}

func prefix(err error, segment Segment) error {
	codecError, ok := err.(*Error)
	if !ok {
		return err
	}
	path := make(Path, 0, len(codecError.Path)+1)
	path = append(path, segment)
	path = append(path, codecError.Path...)
	return &Error{Kind: codecError.Kind, Path: path, Err: codecError.Err}
}
