// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datumhash computes Cardano datum hashes: BLAKE2b-256 over
// the CBOR bytes of a datum.
//
// A transaction output that carries a datum by hash commits to these 32
// bytes, so the hash must be computed over exactly the bytes the
// spending transaction will reveal. Hash canonical bytes with
// [HashData]; hash bytes received from elsewhere (cardano-node, a
// wallet) with [HashBytes], because re-encoding them may change their
// layout and therefore their hash.
//
// The API surface:
//
//   - [HashBytes] -- hash encoded datum bytes as given
//   - [HashData] -- hash the canonical encoding of a Data value
//   - [HashFile] -- stream a file of raw datum bytes through the hash
//   - [FormatDigest] and [ParseDigest] -- convert between a [Digest]
//     and its 64-character hex form
package datumhash
