// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package lzx

// XnbFramer drives a single Decoder across the XNB container's outer
// frame/block structure: a sequence of (compressed block, decompressed
// frame size) pairs that, concatenated, reproduce the asset payload. The
// window is fixed at 64 KiB (windowBits=16), matching every known XNB
// producer.
type XnbFramer struct {
	dec *Decoder
}

// NewXnbFramer returns a framer with a fresh 64 KiB-window decoder.
func NewXnbFramer() (*XnbFramer, error) {
	dec, err := New(16)
	if err != nil {
		return nil, err
	}
	return &XnbFramer{dec: dec}, nil
}

// Unframe decodes compressed, an XNB body's compressed framing region (the
// bytes following the 4-byte decompressed-length field), into exactly
// expectedSize decompressed bytes.
func (f *XnbFramer) Unframe(compressed []byte, expectedSize int) ([]byte, error) {
	out := make([]byte, expectedSize)
	cursor := 0
	outPos := 0

	for cursor < len(compressed) {
		hi, lo, ok := readByte2(compressed, cursor)
		if !ok {
			return nil, newErr(InvalidFraming, "truncated frame header")
		}

		var frameSize, blockSize uint32
		if hi == 0xFF {
			a, b, c, ok := readByte3(compressed, cursor+2)
			if !ok {
				return nil, newErr(InvalidFraming, "truncated extended frame header")
			}
			frameSize = (uint32(lo) << 8) | uint32(a)
			blockSize = (uint32(b) << 8) | uint32(c)
			cursor += 5
		} else {
			frameSize = 0x8000
			blockSize = (uint32(hi) << 8) | uint32(lo)
			cursor += 2
		}

		if frameSize == 0 || blockSize == 0 {
			break
		}

		remaining := uint32(expectedSize - outPos)
		if frameSize > remaining {
			return nil, newErr(InvalidFraming, "frame_size exceeds remaining output")
		}
		if cursor+int(blockSize) > len(compressed) {
			return nil, newErr(InvalidFraming, "block_size exceeds remaining input")
		}

		block := compressed[cursor : cursor+int(blockSize)]
		dst := out[outPos : outPos+int(frameSize)]
		if err := f.dec.Decompress(block, dst); err != nil {
			return nil, err
		}

		cursor += int(blockSize)
		outPos += int(frameSize)
	}

	if outPos != expectedSize {
		return nil, newErr(InvalidFraming, "decompressed size mismatch")
	}
	return out, nil
}

func readByte2(b []byte, i int) (byte, byte, bool) {
	if i+1 >= len(b) {
		return 0, 0, false
	}
	return b[i], b[i+1], true
}

func readByte3(b []byte, i int) (byte, byte, byte, bool) {
	if i+2 >= len(b) {
		return 0, 0, 0, false
	}
	return b[i], b[i+1], b[i+2], true
}
