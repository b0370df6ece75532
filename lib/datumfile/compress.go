// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datumfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the framing a datum file is stored in.
type Compression uint8

const (
	// CompressionNone is raw CBOR (or hex text).
	CompressionNone Compression = 0

	// CompressionLZ4 is an LZ4 frame. Fast to decode; suits archives
	// that are read often.
	CompressionLZ4 Compression = 1

	// CompressionZstd is a zstd frame at the default level. Better
	// ratios for large dumps of similar datums.
	CompressionZstd Compression = 2
)

// Frame magic numbers, as they appear on disk.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the name accepted by [ParseCompression].
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name. The empty string is
// CompressionNone.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (expected none, lz4 or zstd)", name)
	}
}

// Detect reports the compression of data from its leading frame magic.
// A single Plutus datum never begins with either magic: both start
// with a one-byte CBOR integer, so any following bytes would be
// trailing data.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("datumfile: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("datumfile: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress frames data with the given compression. CompressionNone
// returns data unchanged.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// Decompress detects the framing of data and returns its contents.
// Uncompressed data is returned unchanged. limit bounds the
// decompressed size; zero means no bound.
func Decompress(data []byte, limit int64) ([]byte, error) {
	compression := Detect(data)

	var reader io.Reader
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		if limit == 0 {
			result, err := zstdDecoder.DecodeAll(data, nil)
			if err != nil {
				return nil, fmt.Errorf("zstd decompress: %w", err)
			}
			return result, nil
		}
		decoder, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer decoder.Close()
		reader = decoder
	case CompressionLZ4:
		reader = lz4.NewReader(bytes.NewReader(data))
	}

	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}
	result, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", compression, err)
	}
	if limit > 0 && int64(len(result)) > limit {
		return nil, fmt.Errorf("%s decompress: %w: more than %d bytes", compression, ErrTooLarge, limit)
	}
	return result, nil
}
