// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datumfile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTooLarge is returned when input or its decompressed contents
// exceed the caller's limit.
var ErrTooLarge = errors.New("input too large")

// Read reads all of r, then decompresses it if it carries a zstd or
// LZ4 frame. limit bounds both the raw and the decompressed size;
// zero means no bound.
func Read(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return Decompress(data, limit)
}

// ReadFile is [Read] on the named file.
func ReadFile(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := Read(file, limit)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
