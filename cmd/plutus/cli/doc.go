// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the plutus tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a params struct whose tagged
// fields become pflag flags ([FlagsFromParams]), and a Run function that
// receives a context and a scoped [log/slog.Logger]. Commands are
// assembled into a tree and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned by commands are categorized with [ToolError]
// ([Validation], [NotFound], [Internal]); [ExitStatus] maps them to
// process exit codes. [ExitError] carries an exit code for commands
// that have already printed their own result.
//
// [Styler] renders output for a destination writer: chroma syntax
// highlighting for JSON and lipgloss trees for Plutus Data, both
// following the termenv color profile of the destination.
package cli
