// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts Plutus Data to and from its binary CBOR form.
//
// Only the Plutus Data subset of CBOR is produced or accepted:
//
//   - Integer: major type 0/1 when the value fits in 64 bits, otherwise
//     a bignum (tag 2 or 3 over the big-endian magnitude).
//   - ByteArray: a byte string. Payloads longer than 64 bytes are
//     written as an indefinite-length byte string of 64-byte chunks, as
//     the ledger requires.
//   - List: an array.
//   - Map: a map.
//   - Constr: constructors 0..6 under tags 121..127, 7..127 under tags
//     1280..1400, and any other index as tag 102 over [index, fields].
//
// [ToBytes] produces the canonical encoding: definite lengths, shortest
// integer heads, and map entries sorted by the byte-lexicographic order
// of their encoded keys. Equal Data always yields identical bytes,
// which is what datum hashing depends on. [Encode] with [NodeFormat]
// produces cardano-node's layout instead.
//
// [FromBytes] is liberal in what it accepts: definite or indefinite
// framing, maps in any order. It is strict about everything else and
// reports failures as plutus decode errors:
//
//	value, err := codec.FromBytes(data)
//	if errors.Is(err, plutus.ErrDecode) { ... }
//
// Leaf items go through fxamacker/cbor with Core Deterministic Encoding
// options. Containers and tags are framed here, because map entry order
// and indefinite-length framing must stay under this package's control.
package codec
