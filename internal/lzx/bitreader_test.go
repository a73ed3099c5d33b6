// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lzx

import "testing"

func TestBitReaderMSBFirstLEWords(t *testing.T) {
	// 0x1234, 0x5678 as on-disk little-endian bytes.
	buf := []byte{0x34, 0x12, 0x78, 0x56}
	br := newBitReader(buf)
	if got, want := br.readBits(16), uint32(0x1234); got != want {
		t.Errorf("got 0x%04x, want 0x%04x", got, want)
	}
	if got, want := br.readBits(16), uint32(0x5678); got != want {
		t.Errorf("got 0x%04x, want 0x%04x", got, want)
	}
}

func TestBitReaderSplitAcrossWords(t *testing.T) {
	buf := []byte{0x34, 0x12, 0x78, 0x56}
	br := newBitReader(buf)
	if got, want := br.readBits(4), uint32(0x1); got != want {
		t.Errorf("got 0x%x, want 0x%x", got, want)
	}
	if got, want := br.readBits(12), uint32(0x234); got != want {
		t.Errorf("got 0x%x, want 0x%x", got, want)
	}
	if got, want := br.readBits(16), uint32(0x5678); got != want {
		t.Errorf("got 0x%04x, want 0x%04x", got, want)
	}
}

func TestBitReaderTailZeroFill(t *testing.T) {
	buf := []byte{0xFF}
	br := newBitReader(buf)
	// Reads past the single real byte must zero-fill rather than panic.
	got := br.readBits(16)
	if want := uint32(0x00FF); got != want {
		t.Errorf("got 0x%04x, want 0x%04x", got, want)
	}
}

func TestBitReaderAlignToWordBoundary(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00}
	br := newBitReader(buf)
	br.readBits(3)
	br.alignToWordBoundary()
	if got, want := br.readUint32LE(), uint32(0x00020001); got != want {
		t.Errorf("got 0x%08x, want 0x%08x", got, want)
	}
	if got, want := br.readUint32LE(), uint32(0x00040003); got != want {
		t.Errorf("got 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitReaderAlignFromZeroBitsValidStillConsumesWord(t *testing.T) {
	// With bitsValid == 0, alignToWordBoundary still burns one 16-bit word
	// before the next read, matching the reference's "ensure-if-zero"
	// behavior rather than treating zero-buffered as already aligned.
	buf := []byte{0x11, 0x11, 0xAA, 0xBB, 0xCC, 0xDD}
	br := newBitReader(buf)
	br.alignToWordBoundary()
	if br.cursor != 2 {
		t.Errorf("cursor after alignToWordBoundary = %d, want 2", br.cursor)
	}
	if got, want := br.readUint32LE(), uint32(0xDDCCBBAA); got != want {
		t.Errorf("got 0x%08x, want 0x%08x", got, want)
	}
}
