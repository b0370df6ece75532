// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Plutus is the command-line tool for Plutus Data. Run "plutus --help"
// for the command list.
package main
