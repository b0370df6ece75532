// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"math/rand/v2"
	"os"
	"strconv"
	"testing"
	"time"
)

// SeedVariable names the environment variable that pins the seed used
// by [Rand]. Set it to the value logged by a failing run to replay it.
const SeedVariable = "PLUTUS_TEST_SEED"

// Rand returns a deterministic random source for property tests. The
// seed comes from PLUTUS_TEST_SEED when set and from the clock
// otherwise, and is always logged so that a failure can be reproduced.
func Rand(t testing.TB) *rand.Rand {
	t.Helper()

	seed := uint64(time.Now().UnixNano()) //nolint:realclock seed only, logged for replay
	if text := os.Getenv(SeedVariable); text != "" {
		parsed, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			t.Fatalf("%s=%q is not an unsigned integer: %v", SeedVariable, text, err)
		}
		seed = parsed
	}
	t.Logf("random seed: %s=%d", SeedVariable, seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Iterations is the number of cases property tests run. Short mode
// trims it.
func Iterations() int {
	if testing.Short() {
		return 50
	}
	return 500
}
