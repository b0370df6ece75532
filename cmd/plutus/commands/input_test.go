// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/plutus/lib/datumfile"
)

func TestDecodeHexInput(t *testing.T) {
	unit := []byte{0xd8, 0x79, 0x80}
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "lowercase hex", input: "d87980", want: unit},
		{name: "uppercase hex", input: "D87980", want: unit},
		{name: "hex with spaces", input: "d8 79 80", want: unit},
		{name: "hex with newlines", input: "d8\n7980\n", want: unit},
		{name: "invalid hex", input: "not hex data", wantErr: true},
		{name: "odd length", input: "d8798", wantErr: true},
		{name: "empty after whitespace", input: "   \n\t  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeHexInput([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("decodeHexInput(%q) = %x, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeHexInput(%q): %v", tt.input, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("decodeHexInput(%q) = %x, want %x", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadInputFromFile(t *testing.T) {
	path := writeFile(t, "datum.hex", []byte("d87980\n"))

	data, remaining, err := readInput([]string{"extra", path}, true, 0)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0xd8, 0x79, 0x80}) {
		t.Errorf("data = %x, want d87980", data)
	}
	if len(remaining) != 1 || remaining[0] != "extra" {
		t.Errorf("remaining = %v, want [extra]", remaining)
	}
}

func TestReadInputCompressedHex(t *testing.T) {
	compressed, err := datumfile.Compress([]byte("d87980"), datumfile.CompressionLZ4)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	path := writeFile(t, "datum.hex.lz4", compressed)

	data, _, err := readInput([]string{path}, true, 1024)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0xd8, 0x79, 0x80}) {
		t.Errorf("data = %x, want d87980", data)
	}
}

func TestReadInputFromStdin(t *testing.T) {
	saved := stdin
	t.Cleanup(func() { stdin = saved })

	stdin = strings.NewReader("")
	if _, _, err := readInput(nil, false, 0); err == nil {
		t.Error("readInput of empty stdin should fail")
	}

	stdin = bytes.NewReader([]byte{0x01})
	data, remaining, err := readInput([]string{"not-a-file"}, false, 0)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0x01}) || len(remaining) != 1 {
		t.Errorf("readInput = %x, %v", data, remaining)
	}
}

func TestReadInputEmptyFileDoesNotFallBackToStdin(t *testing.T) {
	saved := stdin
	t.Cleanup(func() { stdin = saved })

	// A zstd frame with a zero content size and one empty raw block.
	emptyFrame := []byte{0x28, 0xb5, 0x2f, 0xfd, 0x20, 0x00, 0x01, 0x00, 0x00}
	if datumfile.Detect(emptyFrame) != datumfile.CompressionZstd {
		t.Fatal("empty frame not detected as zstd")
	}
	tests := []struct {
		name     string
		contents []byte
	}{
		{"empty file", nil},
		{"empty zstd frame", emptyFrame},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "datum.cbor", test.contents)
			for _, limit := range []int64{0, 1024} {
				stdin = bytes.NewReader([]byte{0xd8, 0x79, 0x80})
				data, _, err := readInput([]string{path}, false, limit)
				if err == nil {
					t.Fatalf("limit %d: readInput = %x, want empty input error", limit, data)
				}
				if !strings.Contains(err.Error(), "empty input") {
					t.Errorf("limit %d: readInput error = %v, want empty input", limit, err)
				}
			}
		})
	}
}
