// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, the CLI
// exits with the specified code without printing the error string: the
// command is expected to have already written its own output.
//
// "plutus validate" uses this for non-canonical input, which is a
// valid outcome rather than an unexpected error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitStatus maps an error returned by [Command.Execute] to a process
// exit code and reports whether the error message should be printed.
// Validation and not-found errors exit 2, so scripts can distinguish
// bad input from a failing tool; everything else exits 1.
func ExitStatus(err error) (code int, report bool) {
	if err == nil {
		return 0, false
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code, false
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		switch toolError.Category {
		case CategoryValidation, CategoryNotFound:
			return 2, true
		}
	}
	return 1, true
}
