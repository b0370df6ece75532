// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema maps Go host values to and from Plutus Data through
// composable schema descriptions.
//
// A schema is built from combinators and is immutable once built:
//
//	token := schema.Struct(
//		schema.Field("policyId", schema.ByteArray()),
//		schema.Field("assetName", schema.ByteArray()),
//		schema.Field("amount", schema.Integer()),
//	)
//
//	data, err := schema.Encode(map[string]any{
//		"policyId":  "deadbeef",
//		"assetName": "cafe",
//		"amount":    1000,
//	}, token)
//	// data is Constr(0, [ByteArray(deadbeef), ByteArray(cafe), Integer(1000)])
//
// [Encode] and [Decode] dispatch on the schema node type and recurse
// into children. The mapping to Data is:
//
//   - Struct: Constr(0, fields in declaration order).
//   - Union: Constr(i, [value]) for the first variant i that accepts
//     the value.
//   - Boolean: Constr(0, []) for false, Constr(1, []) for true.
//   - Literal: Constr(i, []) for the i-th declared value.
//   - NullOr and UndefinedOr: Constr(0, [value]) when present,
//     Constr(1, []) when absent (nil and [Undefined] respectively).
//   - Array and Tuple: List.
//   - Map: Map with entries sorted by their encoded key bytes, so equal
//     maps encode identically regardless of input order.
//
// Host values are plain Go values: hex strings for byte arrays,
// *big.Int for integers, map[string]any for structs, []any for lists,
// []Entry for maps. Decoding returns exactly these types, so encoding a
// decoded value reproduces the original Data (for maps, in canonical
// order).
//
// Definition errors (an empty union, duplicate struct fields, a nil
// child schema) are programming errors and panic when the schema is
// built. Value errors are returned as *plutus.Error with the path of
// the offending value.
package schema
