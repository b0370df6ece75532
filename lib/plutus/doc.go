// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package plutus defines the Plutus Data model: the closed, recursive
// algebraic type that Cardano uses to build and hash datums and
// redeemers.
//
// A [Data] value is exactly one of five variants:
//
//   - [Integer]: an arbitrary-precision signed integer.
//   - [ByteArray]: a byte string, written and read as hex.
//   - [List]: an ordered sequence of Data.
//   - [Map]: an ordered sequence of key/value pairs with unique keys.
//   - [Constr]: a constructor index plus ordered fields. Structs, sum
//     types, booleans and optionals all reduce to Constr.
//
// Every variant is an immutable value type. The Make* constructors
// validate their invariants and return an error instead of a partially
// built value; the New* and Must* helpers panic instead and are meant
// for literals in code and tests.
//
// The package also defines the error taxonomy shared by the codec and
// schema packages ([Error], [ErrorKind]) and the cardano-node "detailed
// schema" JSON form of Data ([ParseJSON] and the MarshalJSON methods).
//
// Binary (CBOR) encoding lives in lib/codec. Mapping Go values to and
// from Data through schemas lives in lib/schema.
package plutus
