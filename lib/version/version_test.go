// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoUsesLinkerStamp(t *testing.T) {
	savedCommit, savedDirty := GitCommit, GitDirty
	t.Cleanup(func() { GitCommit, GitDirty = savedCommit, savedDirty })

	GitCommit, GitDirty = "abc1234", "true"
	if got, want := Info(), Version+" (abc1234-dirty)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestFullIncludesGoVersion(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: go") || !strings.HasPrefix(full, Version) {
		t.Errorf("Full() = %q", full)
	}
}
