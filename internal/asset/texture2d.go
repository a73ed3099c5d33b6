// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package asset implements the individual XNB content-type deserializers:
// Texture2D, SoundEffect, and SpriteFont. Each registers itself with
// internal/typereader under its XNA type-reader name.
package asset

import (
	"fmt"

	"github.com/cosnicolaou/xnbtool/internal/typereader"
	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

// SurfaceFormat enumerates the DXGI-style pixel layouts a Texture2D's mip
// data may be stored in. Values match the XNA Texture2DReader's
// SurfaceFormat enum exactly.
type SurfaceFormat int32

const (
	FormatColor SurfaceFormat = iota
	FormatBgr565
	FormatBgra5551
	FormatBgra4444
	FormatDxt1
	FormatDxt3
	FormatDxt5
	FormatNormalizedByte2
	FormatNormalizedByte4
	FormatRgba1010102
	FormatRg32
	FormatRgba64
	FormatAlpha8
	FormatSingle
	FormatVector2
	FormatVector4
	FormatHalfSingle
	FormatHalfVector2
	FormatHalfVector4
	FormatHdrBlendable
)

func (f SurfaceFormat) String() string {
	names := [...]string{
		"Color", "Bgr565", "Bgra5551", "Bgra4444", "Dxt1", "Dxt3", "Dxt5",
		"NormalizedByte2", "NormalizedByte4", "Rgba1010102", "Rg32",
		"Rgba64", "Alpha8", "Single", "Vector2", "Vector4", "HalfSingle",
		"HalfVector2", "HalfVector4", "HdrBlendable",
	}
	if int(f) < 0 || int(f) >= len(names) {
		return fmt.Sprintf("SurfaceFormat(%d)", int32(f))
	}
	return names[f]
}

// Texture2D is a decoded Texture2DReader payload: a surface format, pixel
// dimensions, and one raw data blob per mip level (mip 0 is full size;
// each subsequent level halves width and height).
type Texture2D struct {
	Format SurfaceFormat
	Width  uint32
	Height uint32
	Mips   [][]byte
}

// MipSize returns the pixel dimensions of mip level i.
func (t Texture2D) MipSize(i int) (width, height uint32) {
	return t.Width >> uint(i), t.Height >> uint(i)
}

const texture2DReaderName = "Microsoft.Xna.Framework.Content.Texture2DReader"

func init() {
	typereader.Register(texture2DReaderName, func(r *xnbbin.Reader) (interface{}, error) {
		return DecodeTexture2D(r)
	})
}

// DecodeTexture2D reads a Texture2D payload: surface format (int32),
// width, height (uint32), mip count (uint32), then per mip a uint32 byte
// length followed by that many raw bytes.
func DecodeTexture2D(r *xnbbin.Reader) (Texture2D, error) {
	formatVal, err := r.Int32()
	if err != nil {
		return Texture2D{}, fmt.Errorf("asset: texture2d surface format: %w", err)
	}
	format := SurfaceFormat(formatVal)

	width, err := r.Uint32()
	if err != nil {
		return Texture2D{}, fmt.Errorf("asset: texture2d width: %w", err)
	}
	height, err := r.Uint32()
	if err != nil {
		return Texture2D{}, fmt.Errorf("asset: texture2d height: %w", err)
	}
	mipCount, err := r.Uint32()
	if err != nil {
		return Texture2D{}, fmt.Errorf("asset: texture2d mip count: %w", err)
	}
	if mipCount == 0 {
		return Texture2D{}, fmt.Errorf("asset: texture2d declares zero mip levels")
	}

	t := Texture2D{Format: format, Width: width, Height: height}
	for i := uint32(0); i < mipCount; i++ {
		mipSize, err := r.Uint32()
		if err != nil {
			return Texture2D{}, fmt.Errorf("asset: texture2d mip %d size: %w", i, err)
		}
		data, err := r.Bytes(mipSize)
		if err != nil {
			return Texture2D{}, fmt.Errorf("asset: texture2d mip %d data: %w", i, err)
		}
		t.Mips = append(t.Mips, data)
	}
	return t, nil
}
