// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lzx

// state holds everything that persists across Decompress calls for one LZX
// stream: the sliding window, the repeated-offset LRU, and the code-length
// arrays and decode tables for the four trees. The maintree and length
// arrays are zero-initialized once and never reset between blocks, because
// read_lengths applies its deltas against whatever was there before.
type state struct {
	window     []byte
	windowSize uint32
	windowPosn uint32

	r0, r1, r2 uint32

	mainElements uint32

	headerRead     bool
	blockType      BlockType
	blockRemaining uint32

	pretreeLen  [PretreeMaxSymbols]uint8
	maintreeLen [MaintreeMaxSymbols]uint8
	lengthLen   [LengthMaxSymbols]uint8
	alignedLen  [AlignedNumElements]uint8

	pretreeTable  huffmanTable
	maintreeTable huffmanTable
	lengthTable   huffmanTable
	alignedTable  huffmanTable
}

func newState(windowBits uint) *state {
	windowSize := uint32(1) << windowBits
	s := &state{
		window:     make([]byte, windowSize),
		windowSize: windowSize,
		r0:         1,
		r1:         1,
		r2:         1,
		blockType:  BlockInvalid,
	}
	for i := range s.window {
		s.window[i] = windowFillByte
	}
	s.mainElements = NumChars + positionSlots(windowBits)*8

	s.pretreeTable = newHuffmanTable(PretreeMaxSymbols, PretreeTableBits)
	s.maintreeTable = newHuffmanTable(MaintreeMaxSymbols, MaintreeTableBits)
	s.lengthTable = newHuffmanTable(LengthMaxSymbols, LengthTableBits)
	s.alignedTable = newHuffmanTable(AlignedMaxSymbols, AlignedTableBits)
	return s
}
