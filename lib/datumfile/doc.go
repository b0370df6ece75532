// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datumfile reads and writes datum files: raw CBOR or hex text,
// optionally wrapped in a zstd or LZ4 frame. Compression is detected
// from the frame magic, so callers never need to know how a file was
// stored. Reads are bounded by a byte limit that applies to the
// decompressed contents as well as the file itself.
package datumfile
