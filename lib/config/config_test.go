// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/plutus/lib/codec"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.EncodingFormat() != codec.Canonical {
		t.Errorf("expected format=canonical, got %s", cfg.Format)
	}

	if cfg.Color != ColorAuto {
		t.Errorf("expected color=auto, got %s", cfg.Color)
	}

	if cfg.Input.MaxBytes != 16<<20 {
		t.Errorf("expected max_bytes=16MiB, got %d", cfg.Input.MaxBytes)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_RequiresPlutusConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PLUTUS_CONFIG not set, got nil")
	}

	expectedMsg := "PLUTUS_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithPlutusConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "plutus.yaml")

	configContent := `
format: node
color: never
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.EncodingFormat() != codec.NodeFormat {
		t.Errorf("expected format=node, got %s", cfg.Format)
	}

	if cfg.Color != ColorNever {
		t.Errorf("expected color=never, got %s", cfg.Color)
	}

	// Unset keys keep their defaults.
	if cfg.Input.MaxBytes != Default().Input.MaxBytes {
		t.Errorf("expected default max_bytes, got %d", cfg.Input.MaxBytes)
	}
}

func TestLoadFileSchemaPaths(t *testing.T) {
	t.Setenv("PLUTUS_TEST_SCHEMAS", "/shared/schemas")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "plutus.yaml")

	configContent := `
schemas:
  - escrow.yaml
  - ${CONFIG_DIR}/nested/token.jsonc
  - ${PLUTUS_TEST_SCHEMAS}/common.yaml
  - ${PLUTUS_TEST_UNSET:-/fallback}/extra.yaml
input:
  max_bytes: 4096
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	expected := []string{
		filepath.Join(tmpDir, "escrow.yaml"),
		filepath.Join(tmpDir, "nested", "token.jsonc"),
		"/shared/schemas/common.yaml",
		"/fallback/extra.yaml",
	}
	if len(cfg.Schemas) != len(expected) {
		t.Fatalf("expected %d schemas, got %v", len(expected), cfg.Schemas)
	}
	for index, want := range expected {
		if cfg.Schemas[index] != want {
			t.Errorf("schemas[%d] = %s, want %s", index, cfg.Schemas[index], want)
		}
	}

	if cfg.Input.MaxBytes != 4096 {
		t.Errorf("expected max_bytes=4096, got %d", cfg.Input.MaxBytes)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	malformed := filepath.Join(tmpDir, "malformed.yaml")
	if err := os.WriteFile(malformed, []byte("format: [\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFile(malformed); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("format: compact\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := LoadFile(invalid)
	if err == nil || !strings.Contains(err.Error(), "compact") {
		t.Errorf("expected validation error naming the format, got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/schemas",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/schemas",
		},
		{
			input:    "${PLUTUS_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "empty format means canonical",
			modify: func(c *Config) {
				c.Format = ""
			},
			wantErr: false,
		},
		{
			name: "unknown format",
			modify: func(c *Config) {
				c.Format = "definite"
			},
			wantErr: true,
		},
		{
			name: "invalid color",
			modify: func(c *Config) {
				c.Color = "sometimes"
			},
			wantErr: true,
		},
		{
			name: "zero max bytes",
			modify: func(c *Config) {
				c.Input.MaxBytes = 0
			},
			wantErr: true,
		},
		{
			name: "empty schema path",
			modify: func(c *Config) {
				c.Schemas = []string{"a.yaml", ""}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
