// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the plutus
// packages.
//
// [Rand] returns a seeded random source for property tests. The seed is
// logged on every run; export PLUTUS_TEST_SEED with that value to
// replay a failure exactly. [Iterations] scales the number of property
// cases down under -short.
//
// [ArbitraryData] generates random Data trees. The generators bias
// toward encoding boundaries (the 64-bit integer limit, the 64-byte
// chunk size, the constructor tag ranges) because that is where codec
// bugs live. [ArbitraryInteger], [ArbitraryBytes], [ArbitraryHex] and
// [ArbitraryConstrIndex] expose the leaf generators for schema-shaped
// value generation.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package depends only on lib/plutus, so any package's internal
// tests can import it.
package testutil
