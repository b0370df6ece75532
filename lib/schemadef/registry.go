// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemadef

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/plutus/lib/schema"
)

// Registry is a set of named type definitions. A Registry is not
// modified by Lookup or Resolve and may be read concurrently; Merge
// must not run concurrently with anything else.
type Registry struct {
	definitions map[string]definition
}

type definition struct {
	node   *yaml.Node
	source string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]definition)}
}

// Names returns the defined type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source returns the origin recorded for name when it was parsed,
// usually a file path.
func (r *Registry) Source(name string) (string, bool) {
	entry, ok := r.definitions[name]
	return entry.source, ok
}

// Merge adds every definition of other to r. Defining the same name
// twice is an error, and r is left unchanged when Merge fails.
func (r *Registry) Merge(other *Registry) error {
	for name, entry := range other.definitions {
		if existing, duplicate := r.definitions[name]; duplicate {
			return fmt.Errorf("type %q defined in both %s and %s", name, existing.source, entry.source)
		}
	}
	for name, entry := range other.definitions {
		r.definitions[name] = entry
	}
	return nil
}

// Lookup resolves the named type into a schema.
func (r *Registry) Lookup(name string) (schema.Schema, error) {
	if _, ok := r.definitions[name]; !ok {
		return nil, fmt.Errorf("unknown type %q (defined: %s)", name, strings.Join(r.Names(), ", "))
	}
	return newResolver(r).named(name)
}

// Resolve resolves every definition, returning the first error in
// name order.
func (r *Registry) Resolve() error {
	resolver := newResolver(r)
	for _, name := range r.Names() {
		if _, err := resolver.named(name); err != nil {
			return err
		}
	}
	return nil
}

// resolver turns definitions into schemas, memoizing each name and
// tracking the chain of names being resolved to detect cycles.
type resolver struct {
	registry *Registry
	resolved map[string]schema.Schema
	visiting []string
}

func newResolver(registry *Registry) *resolver {
	return &resolver{registry: registry, resolved: make(map[string]schema.Schema)}
}

func (r *resolver) named(name string) (schema.Schema, error) {
	if resolved, ok := r.resolved[name]; ok {
		return resolved, nil
	}
	if start := slices.Index(r.visiting, name); start >= 0 {
		cycle := append(slices.Clone(r.visiting[start:]), name)
		return nil, fmt.Errorf("type %q is recursive: %s", name, strings.Join(cycle, " -> "))
	}
	entry, ok := r.registry.definitions[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}

	r.visiting = append(r.visiting, name)
	resolved, err := r.expression(entry.node)
	r.visiting = r.visiting[:len(r.visiting)-1]
	if err != nil {
		// Only the innermost definition annotates the error; outer
		// names in the chain would repeat the same location.
		var annotated *resolveError
		if errors.As(err, &annotated) {
			return nil, err
		}
		return nil, &resolveError{name: name, source: entry.source, err: err}
	}

	r.resolved[name] = resolved
	return resolved, nil
}

type resolveError struct {
	name   string
	source string
	err    error
}

func (e *resolveError) Error() string {
	if e.source == "" {
		return fmt.Sprintf("type %s: %v", e.name, e.err)
	}
	return fmt.Sprintf("%s: type %s: %v", e.source, e.name, e.err)
}

func (e *resolveError) Unwrap() error { return e.err }
