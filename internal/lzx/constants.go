// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package lzx implements the LZX decompression engine used by the XNB
// content pipeline: a bit-level reader, canonical-Huffman decode tables, a
// sliding-window match copier with an R0/R1/R2 repeated-offset cache, and
// the outer XNB frame/block container format.
//
// The algorithm is a byte-for-byte port of the Microsoft CAB variant of
// LZX as consumed by XNA's content pipeline; it is derived from libmspack's
// lzxd.c by way of MonoGame's C# port and decodes only (no encoder).
package lzx

// MinMatch and MaxMatch bound the length of an LZ77 match.
const (
	MinMatch = 2
	MaxMatch = 257
)

// NumChars is the number of literal symbols in the main tree, values
// 0..255.
const NumChars = 256

// Primary/secondary length split: a match length encodes its values
// 0..NumPrimaryLengths-1 directly in the main tree symbol; a value of
// NumPrimaryLengths signals that the length tree supplies the remainder.
const (
	NumPrimaryLengths   = 7
	NumSecondaryLengths = 249
)

// Tree sizes.
const (
	PretreeNumElements  = 20
	AlignedNumElements  = 8
	MaintreeMaxSymbols  = NumChars + 50*8 // 656
	LengthMaxSymbols    = NumSecondaryLengths + 1
	AlignedMaxSymbols   = AlignedNumElements
	PretreeMaxSymbols   = PretreeNumElements
)

// Direct-lookup widths for each of the four canonical-Huffman tables.
const (
	PretreeTableBits  = 6
	MaintreeTableBits = 12
	LengthTableBits   = 12
	AlignedTableBits  = 7
)

// BlockType identifies how a block's literal/match stream is encoded.
type BlockType uint8

const (
	BlockInvalid BlockType = iota
	BlockVerbatim
	BlockAligned
	BlockUncompressed
)

func (b BlockType) String() string {
	switch b {
	case BlockVerbatim:
		return "verbatim"
	case BlockAligned:
		return "aligned"
	case BlockUncompressed:
		return "uncompressed"
	default:
		return "invalid"
	}
}

// windowFillByte is the value the sliding window is initialized to; a
// decoder that references an offset into never-yet-written window bytes
// (which well-formed streams never do) reads this rather than garbage.
const windowFillByte = 0xDC

// MinWindowBits and MaxWindowBits bound the supported LZX window sizes.
const (
	MinWindowBits = 15
	MaxWindowBits = 21
)
