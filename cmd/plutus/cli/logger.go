// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogLevelVariable names the environment variable that sets the
// command logger's level ("debug", "info", "warn", "error").
const LogLevelVariable = "PLUTUS_LOG_LEVEL"

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal, uses slog.TextHandler for human-readable output. When it
// is piped or redirected (CI, scripts, tests), uses slog.JSONHandler
// for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr).With(
//	    "command", "plutus decode",
//	    "schema", typeName,
//	)
func NewCommandLogger(w io.Writer) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: logLevel()}
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func logLevel() slog.Level {
	level := slog.LevelWarn
	if name := os.Getenv(LogLevelVariable); name != "" {
		// An unrecognized name keeps the default.
		_ = level.UnmarshalText([]byte(name))
	}
	return level
}

// IsTerminal reports whether w is a file descriptor attached to a
// terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
