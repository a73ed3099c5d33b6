// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package xnbfile parses the XNB container format: the fixed preamble
// (magic, platform, version, flags, declared length) and, for compressed
// bodies, the LZX-framed payload underneath it.
package xnbfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

// Platform identifies the target the XNB content was built for.
type Platform byte

const (
	PlatformWindows      Platform = 'w'
	PlatformWindowsPhone Platform = 'm'
	PlatformXbox360      Platform = 'x'
)

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	case PlatformWindowsPhone:
		return "windows-phone"
	case PlatformXbox360:
		return "xbox360"
	default:
		return fmt.Sprintf("unknown(%c)", byte(p))
	}
}

const (
	flagHiDef      = 0x01
	flagCompressed = 0x80
)

// Header is the fixed 10- or 14-byte XNB preamble.
type Header struct {
	Platform               Platform
	Version                uint8
	HiDef                  bool
	Compressed             bool
	FileLength             uint32
	DecompressedBodyLength uint32 // only meaningful when Compressed
}

// Errors reported by this package are a separate, smaller taxonomy from
// internal/lzx's LzxError: these are container-level failures, not core
// decoder failures.
var (
	ErrBadMagic            = errors.New("xnbfile: bad magic, not an XNB file")
	ErrUnsupportedPlatform = errors.New("xnbfile: unsupported platform byte")
	ErrUnsupportedVersion  = errors.New("xnbfile: unsupported XNA version")
	ErrLengthMismatch      = errors.New("xnbfile: declared file length does not match actual size")
)

// ParseHeader reads and validates the XNB preamble from r. fileSize, if
// non-negative, is the actual size of the underlying stream and is
// checked against the header's declared length; pass -1 when the size is
// not known (e.g. reading from a non-seekable stream), in which case the
// check is skipped and the framer's own output-size postcondition is
// relied on instead.
func ParseHeader(r io.Reader, fileSize int64) (Header, error) {
	br := xnbbin.NewReader(r)

	magic, err := br.FixedString(3)
	if err != nil {
		return Header{}, err
	}
	if magic != "XNB" {
		return Header{}, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	platformByte, err := br.Uint8()
	if err != nil {
		return Header{}, err
	}
	platform := Platform(platformByte)
	switch platform {
	case PlatformWindows, PlatformWindowsPhone, PlatformXbox360:
	default:
		return Header{}, fmt.Errorf("%w: 0x%02x", ErrUnsupportedPlatform, platformByte)
	}

	version, err := br.Uint8()
	if err != nil {
		return Header{}, err
	}
	if version != 5 {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	flags, err := br.Uint8()
	if err != nil {
		return Header{}, err
	}

	fileLength, err := br.Uint32()
	if err != nil {
		return Header{}, err
	}
	if fileSize >= 0 && uint32(fileSize) != fileLength {
		return Header{}, fmt.Errorf("%w: declared %d, actual %d", ErrLengthMismatch, fileLength, fileSize)
	}

	h := Header{
		Platform:   platform,
		Version:    version,
		HiDef:      flags&flagHiDef != 0,
		Compressed: flags&flagCompressed != 0,
		FileLength: fileLength,
	}

	if h.Compressed {
		decompLen, err := br.Uint32()
		if err != nil {
			return Header{}, err
		}
		h.DecompressedBodyLength = decompLen
	}

	return h, nil
}

// HeaderSize returns the number of preamble bytes (10, or 14 when
// Compressed) consumed by ParseHeader, useful for callers that need to
// know where the body begins within an already-buffered file.
func (h Header) HeaderSize() int {
	if h.Compressed {
		return 14
	}
	return 10
}
