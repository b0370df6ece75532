// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemadef loads named Plutus Data schemas from definition
// files. Definitions are authored as YAML or as JSONC (JSON extended
// with comments and trailing commas) and share one grammar:
//
//	types:
//	  Asset:
//	    struct:
//	      - {name: policyId, type: {bytes: {size: 28}}}
//	      - {name: assetName, type: bytes}
//	  Action:   {literal: [spend, mint]}
//	  Redeemer: {union: [Asset, Action]}
//	  Amounts:  {map: {key: bytes, value: int}}
//
// A type expression is either a scalar (bytes, int, bool, data, or the
// name of another type) or a mapping with exactly one key: struct,
// list, tuple, map, union, literal, nullable, optional, bytes or int.
// The bytes and int forms take size bounds and value bounds
// respectively, which become [schema.Filter] refinements.
//
// The typical flow:
//
//  1. ReadFile or Parse: definition bytes → *Registry of raw definitions
//  2. Merge: combine registries from several files
//  3. Resolve or Lookup: turn definitions into [schema.Schema] values
//
// Names are resolved across every definition in a registry, so a type
// in one file may refer to a type in another once the two are merged.
// Unknown names and reference cycles are reported at resolution time.
package schemadef
