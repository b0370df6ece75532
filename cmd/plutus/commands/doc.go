// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the plutus command tree: decode, encode,
// diag, validate, hash, schema and version.
//
// Commands share three flag groups embedded in their params structs:
// [InputFlags] (hex input), [ConfigFlags] (configuration file) and
// [SchemaFlags] (definition files and the --type to decode or encode
// through). Input handling follows one rule everywhere: a trailing
// argument that names a regular file is read, otherwise stdin is.
package commands
