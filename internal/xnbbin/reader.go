// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package xnbbin implements the low-level binary primitives shared by the
// XNB header parser, the type-reader table, and the individual asset
// decoders: little-endian fixed-width integers, .NET's 7-bit-encoded
// variable-length integer, and its length-prefixed UTF-8 string encoding.
package xnbbin

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader wraps an io.Reader with the primitive reads every XNB-body
// decoder needs. It keeps a running byte offset so callers can attach
// position information to decode errors.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.offset }

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	if err != nil {
		return fmt.Errorf("xnbbin: read at offset %d: %w", r.offset-int64(n), err)
	}
	return nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	var b [1]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Int8 reads a single signed byte.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	var b [2]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	var b [4]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Float32 reads a little-endian IEEE-754 single.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// FixedString reads n raw bytes and returns them as a string, as used by
// the "XNB" magic check (a fixed 3-byte field, not length-prefixed).
func (r *Reader) FixedString(n int) (string, error) {
	buf, err := r.Bytes(uint32(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Read7BitEncodedInt reads .NET's BinaryReader.Read7BitEncodedInt format:
// up to 5 bytes, little-endian base-128, each byte's high bit signaling
// "more bytes follow".
func (r *Reader) Read7BitEncodedInt() (uint32, error) {
	var result uint32
	var shift uint
	for {
		if shift >= 35 {
			return 0, fmt.Errorf("xnbbin: 7-bit encoded int too long (offset %d)", r.offset)
		}
		b, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// String reads a .NET-style length-prefixed UTF-8 string: a
// Read7BitEncodedInt byte count followed by that many raw bytes.
func (r *Reader) String() (string, error) {
	n, err := r.Read7BitEncodedInt()
	if err != nil {
		return "", err
	}
	buf, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
