// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder for leaf items (integers, bignums, short
// byte strings), configured with Core Deterministic Encoding (RFC 8949
// §4.2): smallest integer encoding, and big.Int values that fit in 64
// bits emitted as plain integers rather than bignums.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Indefinite-length items are accepted
// (cardano-node emits them); nesting is capped so hostile input cannot
// exhaust the stack.
var decMode cbor.DecMode

// maxNestedLevels bounds the depth of arrays, maps and tags accepted
// by [FromBytes].
const maxNestedLevels = 256

// maxCollectionLength is the largest element or pair count the decoder
// accepts, raised to the library maximum so that anything [ToBytes]
// produces within memory also decodes.
const maxCollectionLength = 2147483647

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.BigIntConvert = cbor.BigIntConvertShortest
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  maxNestedLevels,
		MaxArrayElements: maxCollectionLength,
		MaxMapPairs:      maxCollectionLength,
		IndefLength:      cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR major types.
const (
	majorUnsigned   byte = 0
	majorNegative   byte = 1
	majorByteString byte = 2
	majorTextString byte = 3
	majorArray      byte = 4
	majorMap        byte = 5
	majorTag        byte = 6
	majorSimple     byte = 7
)

const (
	// indefiniteInfo is the additional-information value marking an
	// indefinite-length item.
	indefiniteInfo byte = 31

	// breakByte terminates an indefinite-length item.
	breakByte byte = 0xff
)

// Constructor tags.
const (
	// tagConstrSmall is the tag of constructor 0; constructors 0..6 use
	// consecutive tags 121..127.
	tagConstrSmall uint64 = 121

	// tagConstrMedium is the tag of constructor 7; constructors 7..127
	// use consecutive tags 1280..1400.
	tagConstrMedium uint64 = 1280

	// tagConstrGeneral wraps [index, fields] for every other index.
	tagConstrGeneral uint64 = 102

	tagPositiveBignum uint64 = 2
	tagNegativeBignum uint64 = 3
)

// chunkSize is the maximum byte string length emitted as a single
// definite-length string. Longer payloads are split into an
// indefinite-length string of chunkSize chunks.
const chunkSize = 64

// appendHead appends a CBOR item head with the shortest argument
// encoding.
func appendHead(buffer []byte, major byte, argument uint64) []byte {
	initial := major << 5
	switch {
	case argument < 24:
		return append(buffer, initial|byte(argument))
	case argument <= 0xff:
		return append(buffer, initial|24, byte(argument))
	case argument <= 0xffff:
		return binary.BigEndian.AppendUint16(append(buffer, initial|25), uint16(argument))
	case argument <= 0xffffffff:
		return binary.BigEndian.AppendUint32(append(buffer, initial|26), uint32(argument))
	default:
		return binary.BigEndian.AppendUint64(append(buffer, initial|27), argument)
	}
}

// appendIndefinite appends the head of an indefinite-length item.
func appendIndefinite(buffer []byte, major byte) []byte {
	return append(buffer, major<<5|indefiniteInfo)
}

// head is a decoded CBOR item head.
type head struct {
	major      byte
	argument   uint64
	indefinite bool
}

// readHead decodes the item head at data[offset:] and returns it with
// the offset of the first byte after it.
func readHead(data []byte, offset int) (head, int, error) {
	if offset >= len(data) {
		return head{}, offset, fmt.Errorf("unexpected end of input at byte %d", offset)
	}
	initial := data[offset]
	result := head{major: initial >> 5}
	info := initial & 0x1f
	offset++

	var width int
	switch {
	case info < 24:
		result.argument = uint64(info)
		return result, offset, nil
	case info == 24:
		width = 1
	case info == 25:
		width = 2
	case info == 26:
		width = 4
	case info == 27:
		width = 8
	case info == indefiniteInfo:
		result.indefinite = true
		return result, offset, nil
	default:
		return head{}, offset, fmt.Errorf("reserved additional information %d at byte %d", info, offset-1)
	}
	if offset+width > len(data) {
		return head{}, offset, fmt.Errorf("truncated item head at byte %d", offset-1)
	}
	for _, b := range data[offset : offset+width] {
		result.argument = result.argument<<8 | uint64(b)
	}
	return result, offset + width, nil
}
