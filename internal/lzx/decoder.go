// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lzx

// Decoder is a single LZX decompression stream. It is not safe for
// concurrent use: Decompress calls carry state (window contents, R0/R1/R2,
// in-progress block) from one call to the next and must be issued in
// order. Independent Decoders (e.g. one per file in a batch) may run on
// separate goroutines freely, since they share no mutable state beyond the
// read-only extraBits/positionBase tables.
type Decoder struct {
	st         *state
	windowBits uint
}

// New returns a decoder for a window of 1<<windowBits bytes. windowBits
// must be in [MinWindowBits, MaxWindowBits].
func New(windowBits uint) (*Decoder, error) {
	if windowBits < MinWindowBits || windowBits > MaxWindowBits {
		return nil, newErr(UnsupportedWindowSize, "")
	}
	return &Decoder{st: newState(windowBits), windowBits: windowBits}, nil
}

// WindowSize returns the size, in bytes, of the decoder's sliding window.
func (d *Decoder) WindowSize() uint32 { return d.st.windowSize }

// Decompress reads a single LZX-framed compressed block from in and writes
// exactly len(out) decompressed bytes to out, advancing the decoder's
// persistent state. On error, out's contents are undefined and the
// decoder must be discarded: it has left its window/R0-R1-R2/table state
// partially updated.
func (d *Decoder) Decompress(in []byte, out []byte) error {
	if len(out) < 1 {
		return newErr(InvalidData, "output buffer must be non-empty")
	}
	st := d.st
	br := newBitReader(in)

	windowPosn := st.windowPosn
	windowSize := st.windowSize
	r0, r1, r2 := st.r0, st.r1, st.r2

	if !st.headerRead {
		if br.readBit() != 0 {
			return newErr(IntelE8Unsupported, "")
		}
		st.headerRead = true
	}

	togo := uint32(len(out))
	for togo > 0 {
		if st.blockRemaining == 0 {
			if err := d.readBlockHeader(&br, &r0, &r1, &r2); err != nil {
				return err
			}
		}

		// Tail-of-buffer tolerance: a top-up may read past in's end as
		// long as it stays within the 16-bit grace window established by
		// spec.md's BitReader contract.
		if br.cursor > len(in) {
			if br.cursor > len(in)+2 || br.bitsValid < 16 {
				return newErr(InvalidData, "compressed data exhausted")
			}
		}

		for st.blockRemaining > 0 && togo > 0 {
			thisRun := st.blockRemaining
			if thisRun > togo {
				thisRun = togo
			}
			togo -= thisRun
			st.blockRemaining -= thisRun

			windowPosn &= windowSize - 1
			if windowPosn+thisRun > windowSize {
				return newErr(WindowWrap, "")
			}

			var err error
			switch st.blockType {
			case BlockVerbatim:
				windowPosn, r0, r1, r2, err = d.runVerbatimOrAligned(&br, windowPosn, windowSize, thisRun, r0, r1, r2, false)
			case BlockAligned:
				windowPosn, r0, r1, r2, err = d.runVerbatimOrAligned(&br, windowPosn, windowSize, thisRun, r0, r1, r2, true)
			case BlockUncompressed:
				windowPosn, err = d.runUncompressed(&br, in, windowPosn, thisRun)
			default:
				err = newErr(InvalidBlockType, "")
			}
			if err != nil {
				return err
			}
		}
	}

	start := windowPosn
	if start == 0 {
		start = windowSize
	}
	outLen := uint32(len(out))
	if start < outLen {
		return newErr(InvalidData, "start_window_pos underflow")
	}
	start -= outLen
	copy(out, st.window[start:start+outLen])

	st.windowPosn = windowPosn
	st.r0, st.r1, st.r2 = r0, r1, r2
	return nil
}

// readBlockHeader parses the 3-bit type plus 24-bit length and, per
// block type, the data that follows. r0/r1/r2 point at Decompress's live
// repeated-offset locals: an UNCOMPRESSED block's header replaces them
// outright (LzxDecoder.cpp:210-212), so this writes through the pointers
// rather than through st, which is only persisted back at the end of a
// successful Decompress call.
func (d *Decoder) readBlockHeader(br *bitReader, r0, r1, r2 *uint32) error {
	st := d.st

	bt := BlockType(br.readBits(3))
	hi := br.readBits(16)
	lo := br.readBits(8)
	blockLength := (hi << 8) | lo
	st.blockType = bt
	st.blockRemaining = blockLength

	switch bt {
	case BlockAligned:
		for i := 0; i < AlignedNumElements; i++ {
			st.alignedLen[i] = uint8(br.readBits(3))
		}
		if err := st.alignedTable.build(st.alignedLen[:]); err != nil {
			return err
		}
		fallthrough
	case BlockVerbatim:
		if err := d.readLengths(br, st.maintreeLen[:], 0, 256); err != nil {
			return err
		}
		if err := d.readLengths(br, st.maintreeLen[:], 256, st.mainElements); err != nil {
			return err
		}
		if err := st.maintreeTable.build(st.maintreeLen[:]); err != nil {
			return err
		}
		if err := d.readLengths(br, st.lengthLen[:], 0, NumSecondaryLengths); err != nil {
			return err
		}
		if err := st.lengthTable.build(st.lengthLen[:]); err != nil {
			return err
		}
	case BlockUncompressed:
		br.alignToWordBoundary()
		*r0 = br.readUint32LE()
		*r1 = br.readUint32LE()
		*r2 = br.readUint32LE()
	default:
		return newErr(InvalidBlockType, "")
	}
	return nil
}

// readLengths updates lens[first:last] from the bitstream: 20 4-bit
// pretree lengths are read fresh every call, then each pretree symbol
// either zero-fills a run, or applies a mod-17 delta to one or more
// existing entries. See spec.md §4.3.
func (d *Decoder) readLengths(br *bitReader, lens []uint8, first, last uint32) error {
	st := d.st
	for i := 0; i < PretreeNumElements; i++ {
		st.pretreeLen[i] = uint8(br.readBits(4))
	}
	if err := st.pretreeTable.build(st.pretreeLen[:]); err != nil {
		return err
	}

	x := first
	for x < last {
		z, err := st.pretreeTable.readHuffSym(br, st.pretreeLen[:])
		if err != nil {
			return err
		}
		switch {
		case z == 17:
			y := br.readBits(4) + 4
			zeroFill(lens, x, y)
			x += y
		case z == 18:
			y := br.readBits(5) + 20
			zeroFill(lens, x, y)
			x += y
		case z == 19:
			y := br.readBits(1) + 4
			z2, err := st.pretreeTable.readHuffSym(br, st.pretreeLen[:])
			if err != nil {
				return err
			}
			nv := (int32(lens[x]) - int32(z2)) % 17
			if nv < 0 {
				nv += 17
			}
			for i := uint32(0); i < y && x+i < uint32(len(lens)); i++ {
				lens[x+i] = uint8(nv)
			}
			x += y
		default:
			nv := (int32(lens[x]) - int32(z)) % 17
			if nv < 0 {
				nv += 17
			}
			lens[x] = uint8(nv)
			x++
		}
	}
	return nil
}

func zeroFill(lens []uint8, first, count uint32) {
	for i := uint32(0); i < count && first+i < uint32(len(lens)); i++ {
		lens[first+i] = 0
	}
}

// runVerbatimOrAligned decodes thisRun bytes' worth of literals/matches for
// a VERBATIM or ALIGNED block; the two differ only in how a slot>2 match
// offset's extra bits are sourced (pure verbatim bits vs. a mix of
// verbatim and aligned-tree bits), isolated in decodeOffsetVerbatim and
// decodeOffsetAligned.
func (d *Decoder) runVerbatimOrAligned(br *bitReader, windowPosn, windowSize, thisRun, r0, r1, r2 uint32, aligned bool) (uint32, uint32, uint32, uint32, error) {
	st := d.st
	for thisRun > 0 {
		sym, err := st.maintreeTable.readHuffSym(br, st.maintreeLen[:])
		if err != nil {
			return windowPosn, r0, r1, r2, err
		}
		if sym < NumChars {
			st.window[windowPosn] = byte(sym)
			windowPosn++
			thisRun--
			continue
		}

		sym -= NumChars
		matchLength := sym & NumPrimaryLengths
		if matchLength == NumPrimaryLengths {
			footer, err := st.lengthTable.readHuffSym(br, st.lengthLen[:])
			if err != nil {
				return windowPosn, r0, r1, r2, err
			}
			matchLength += footer
		}
		matchLength += MinMatch

		slot := sym >> 3
		var matchOffset uint32
		switch {
		case slot > 2:
			if aligned {
				matchOffset, err = d.decodeOffsetAligned(br, slot)
			} else {
				matchOffset, err = d.decodeOffsetVerbatim(br, slot)
			}
			if err != nil {
				return windowPosn, r0, r1, r2, err
			}
			r2, r1, r0 = r1, r0, matchOffset
		case slot == 0:
			matchOffset = r0
		case slot == 1:
			matchOffset = r1
			r1, r0 = r0, r1
		default: // slot == 2
			matchOffset = r2
			r2, r0 = r0, r2
		}

		if matchLength > thisRun {
			return windowPosn, r0, r1, r2, newErr(InvalidData, "match_length exceeds this_run")
		}
		thisRun -= matchLength
		windowPosn = copyMatch(st.window, windowSize, windowPosn, matchOffset, matchLength)
	}
	return windowPosn, r0, r1, r2, nil
}

func (d *Decoder) decodeOffsetVerbatim(br *bitReader, slot uint32) (uint32, error) {
	if slot == 3 {
		return 1, nil
	}
	extra := extraBits[slot]
	v := br.readBits(uint(extra))
	return positionBase[slot] - 2 + v, nil
}

func (d *Decoder) decodeOffsetAligned(br *bitReader, slot uint32) (uint32, error) {
	st := d.st
	extra := extraBits[slot]
	offset := positionBase[slot] - 2
	switch {
	case extra > 3:
		v := br.readBits(uint(extra) - 3)
		offset += v << 3
		a, err := st.alignedTable.readHuffSym(br, st.alignedLen[:])
		if err != nil {
			return 0, err
		}
		offset += a
	case extra == 3:
		a, err := st.alignedTable.readHuffSym(br, st.alignedLen[:])
		if err != nil {
			return 0, err
		}
		offset += a
	case extra == 1, extra == 2:
		offset += br.readBits(uint(extra))
	default: // extra == 0
		offset = 1
	}
	return offset, nil
}

func (d *Decoder) runUncompressed(br *bitReader, in []byte, windowPosn, thisRun uint32) (uint32, error) {
	if uint32(br.cursor)+thisRun > uint32(len(in)) {
		return windowPosn, newErr(InvalidData, "uncompressed block reads past input end")
	}
	copy(d.st.window[windowPosn:windowPosn+thisRun], in[br.cursor:uint32(br.cursor)+thisRun])
	br.cursor += int(thisRun)
	windowPosn += thisRun
	return windowPosn, nil
}

// copyMatch copies matchLength bytes starting at windowPosn from matchOffset
// bytes earlier in the ring window, returning the advanced window
// position. When matchOffset < matchLength the copy must proceed
// byte-by-byte in the forward direction so the overlap reproduces the
// intended RLE-style self-extension; Go's copy() is not safe to use for
// the overlapping case since it only guarantees correct behavior when
// src/dst do not overlap with dst ahead of src.
func copyMatch(window []byte, windowSize, windowPosn, matchOffset, matchLength uint32) uint32 {
	dest := windowPosn
	var src uint32
	if windowPosn >= matchOffset {
		src = windowPosn - matchOffset
	} else {
		src = windowPosn + windowSize - matchOffset
		copyLength := matchOffset - windowPosn
		if copyLength < matchLength {
			copyForward(window, src, dest, copyLength)
			dest += copyLength
			matchLength -= copyLength
			src = 0
		}
	}
	copyForward(window, src, dest, matchLength)
	return dest + matchLength
}

// copyForward performs the overlap-safe replication described in
// spec.md §9: when dest is ahead of src and the two ranges overlap, each
// byte written becomes visible as a future source byte, so a plain bulk
// copy would read bytes that have not been produced yet. Copying one
// "distance" (dest-src) chunk at a time, advancing both windows, produces
// exactly the same bytes as the byte-by-byte interpretation while still
// amortizing the copy when distance is large relative to length.
func copyForward(window []byte, src, dest, length uint32) {
	if src == dest || length == 0 {
		return
	}
	if dest > src && src+length >= dest {
		distance := dest - src
		copies := length / distance
		leftover := length % distance
		for i := uint32(0); i < copies; i++ {
			copy(window[dest:dest+distance], window[src:src+distance])
			dest += distance
			src += distance
		}
		copy(window[dest:dest+leftover], window[src:src+leftover])
		return
	}
	copy(window[dest:dest+length], window[src:src+length])
}
