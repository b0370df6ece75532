// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// document is the top-level shape of a definition file. Types stays a
// raw node so that line numbers survive into error messages and type
// expressions can be interpreted lazily.
type document struct {
	Types yaml.Node `yaml:"types"`
}

// Parse parses a definition document. Input whose first significant
// character is '{' or '/' is treated as JSONC and stripped of comments
// and trailing commas first; anything else is parsed as YAML. The
// returned registry's definitions carry source as their origin.
func Parse(data []byte, source string) (*Registry, error) {
	if looksLikeJSONC(data) {
		// JSON is a subset of YAML, so the stripped text goes through
		// the same parser and keeps its line numbers.
		data = jsonc.ToJSON(data)
	}

	var parsed document
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing schema definitions: %w", err)
	}

	registry := NewRegistry()
	types := &parsed.Types
	switch types.Kind {
	case 0:
		return nil, fmt.Errorf("parsing schema definitions: missing top-level \"types\" mapping")
	case yaml.MappingNode:
	default:
		return nil, errorAt(types, "\"types\" must be a mapping of type names to type expressions")
	}

	for index := 0; index+1 < len(types.Content); index += 2 {
		key, value := types.Content[index], types.Content[index+1]
		name := key.Value
		if err := validateName(name); err != nil {
			return nil, errorAt(key, "%v", err)
		}
		if _, builtin := builtins[name]; builtin {
			return nil, errorAt(key, "type name %q shadows a built-in type", name)
		}
		if existing, duplicate := registry.definitions[name]; duplicate {
			return nil, errorAt(key, "type %q is already defined on line %d", name, existing.node.Line)
		}
		registry.definitions[name] = definition{node: value, source: source}
	}

	return registry, nil
}

// ReadFile reads a definition file from disk and parses it. Returns a
// descriptive error if the file cannot be read or is malformed.
func ReadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	registry, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return registry, nil
}

// Load reads every file in paths, merges them into one registry, and
// resolves all definitions so that reference errors surface at load
// time rather than on first use.
func Load(paths ...string) (*Registry, error) {
	merged := NewRegistry()
	for _, path := range paths {
		registry, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(registry); err != nil {
			return nil, err
		}
	}
	if err := merged.Resolve(); err != nil {
		return nil, err
	}
	return merged, nil
}

// NameFromPath extracts a registry name from a file path by stripping
// the directory prefix and the file extension. For example,
// "contracts/escrow.schema.yaml" returns "escrow.schema".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func looksLikeJSONC(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '/')
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("type name is empty")
	}
	for index, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case (r >= '0' && r <= '9' || r == '.' || r == '-') && index > 0:
		default:
			return fmt.Errorf("type name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// DefinitionError reports a malformed type expression at its position
// in the source document.
type DefinitionError struct {
	Line    int
	Column  int
	Message string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func errorAt(node *yaml.Node, format string, args ...any) error {
	return &DefinitionError{Line: node.Line, Column: node.Column, Message: fmt.Sprintf(format, args...)}
}
