// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lzx

import "testing"

// The exact values below come from running LzxDecoder.cpp's init loop
// (original_source/src/LzxDecoder.cpp): the "increment only when i != 0"
// guard delays the ramp-up by one pair relative to a naive reading of the
// "indices 0,1 -> 0; 2,3 -> 1; ..." description, so extraBits[2:4] is still
// 0 (not 1) and the ramp reaches 17 one pair later than a naive count
// would suggest. This port preserves that exact, bit-for-bit behavior
// rather than the simpler pattern, since LZX decoding must match the
// reference table byte-for-byte to decode real streams correctly.
func TestStaticTablesDeterminism(t *testing.T) {
	if got, want := extraBits[0:2], ([]uint8{0, 0}); !eqU8(got, want) {
		t.Errorf("extraBits[0:2] = %v, want %v", got, want)
	}
	if got, want := extraBits[2:4], ([]uint8{0, 0}); !eqU8(got, want) {
		t.Errorf("extraBits[2:4] = %v, want %v", got, want)
	}
	if got, want := extraBits[34:36], ([]uint8{16, 16}); !eqU8(got, want) {
		t.Errorf("extraBits[34:36] = %v, want %v", got, want)
	}
	if got, want := positionBase[0:4], ([]uint32{0, 1, 2, 3}); !eqU32(got, want) {
		t.Errorf("positionBase[0:4] = %v, want %v", got, want)
	}
	if got, want := positionBase[50], uint32(1)<<21; got != want {
		t.Errorf("positionBase[50] = %d, want %d", got, want)
	}
}

func eqU8(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func eqU32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestHuffmanTableCompleteCode builds a table for a trivial 2-symbol
// complete code (lengths [1,1]) and checks both symbols decode correctly.
func TestHuffmanTableCompleteCode(t *testing.T) {
	lengths := make([]uint8, AlignedMaxSymbols)
	lengths[0] = 1
	lengths[1] = 1
	tbl := newHuffmanTable(AlignedMaxSymbols, AlignedTableBits)
	if err := tbl.build(lengths); err != nil {
		t.Fatalf("build: %v", err)
	}

	br := newBitReader([]byte{0x00, 0x00}) // both codes are a single 0 or 1 bit
	sym, err := tbl.readHuffSym(&br, lengths)
	if err != nil {
		t.Fatalf("readHuffSym: %v", err)
	}
	if sym != 0 {
		t.Errorf("first symbol = %d, want 0", sym)
	}

	// MSB-first bit 1 is the top bit of the 16-bit LE word, i.e. the high
	// byte of the pair: {lo=0x00, hi=0x80}.
	br2 := newBitReader([]byte{0x00, 0x80})
	sym2, err := tbl.readHuffSym(&br2, lengths)
	if err != nil {
		t.Fatalf("readHuffSym: %v", err)
	}
	if sym2 != 1 {
		t.Errorf("second symbol = %d, want 1", sym2)
	}
}

// TestHuffmanTableOverfullFails constructs a length set that is strictly
// over-full (three symbols of length 1, where only two 1-bit codes exist) and expects
// TableOverrun.
func TestHuffmanTableOverfullFails(t *testing.T) {
	lengths := make([]uint8, AlignedMaxSymbols)
	lengths[0] = 1
	lengths[1] = 1
	lengths[2] = 1
	tbl := newHuffmanTable(AlignedMaxSymbols, AlignedTableBits)
	err := tbl.build(lengths)
	if err == nil {
		t.Fatal("build: want TableOverrun, got nil")
	}
	lerr, ok := err.(*Error)
	if !ok || lerr.Kind != TableOverrun {
		t.Errorf("build err = %v, want TableOverrun", err)
	}
}

// TestHuffmanTableAllZeroIncomplete builds a table from an all-zero length
// array (no symbols assigned any code). build must not report any error
// other than TableOverrun for it.
func TestHuffmanTableAllZeroIncomplete(t *testing.T) {
	lengths := make([]uint8, MaintreeMaxSymbols)
	tbl := newHuffmanTable(MaintreeMaxSymbols, MaintreeTableBits)
	err := tbl.build(lengths)
	// build's final check accepts an incomplete table whose lengths are all
	// zero (the empty code), so it returns nil here. Every table slot is
	// then 0, and readHuffSym against it yields symbol 0 without consuming
	// any bits.
	if err != nil {
		if lerr, ok := err.(*Error); !ok || lerr.Kind != TableOverrun {
			t.Errorf("build err = %v, want nil or TableOverrun", err)
		}
	}
}

func TestHuffmanTableOverflowDescent(t *testing.T) {
	// A length set spanning beyond nbits forces the overflow-tree path:
	// six symbols with unbalanced lengths (1,2,3,4,5,5) over a 4-bit table.
	// nsyms (6) stays within 1<<(nbits-1) (8), the range in which overflow
	// node indices are distinguishable from symbols.
	lengths := []uint8{1, 2, 3, 4, 5, 5}
	tbl := newHuffmanTable(6, 4)
	if err := tbl.build(lengths); err != nil {
		t.Fatalf("build: %v", err)
	}
	// Canonical codes for lengths [1,2,3,4,5,5]: sym0=0, sym1=10,
	// sym2=110, sym3=1110, sym4=11110, sym5=11111. Bits are MSB-first out
	// of a little-endian 16-bit word, so the pattern lives in the high byte
	// of the {lo,hi} pair.
	cases := []struct {
		hi   byte
		want uint32
	}{
		{0b00000000, 0}, // code 0
		{0b10000000, 1}, // code 10
		{0b11000000, 2}, // code 110
		{0b11100000, 3}, // code 1110
		{0b11110000, 4}, // code 11110
		{0b11111000, 5}, // code 11111
	}
	for _, c := range cases {
		br := newBitReader([]byte{0x00, c.hi})
		sym, err := tbl.readHuffSym(&br, lengths)
		if err != nil {
			t.Fatalf("readHuffSym(hi=%08b): %v", c.hi, err)
		}
		if sym != c.want {
			t.Errorf("readHuffSym(hi=%08b) = %d, want %d", c.hi, sym, c.want)
		}
	}
}
