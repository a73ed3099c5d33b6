// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package export renders decoded assets (internal/asset) into standard
// file formats: PNG for Texture2D, WAV for SoundEffect.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/cosnicolaou/xnbtool/internal/asset"
)

// WritePNG renders mip level 0 of t as a PNG image. Block-compressed
// formats (Dxt1/3/5) are expanded to RGBA first; the 16-bit packed
// formats (Bgra4444, Bgra5551) are converted via golang.org/x/image/draw
// since their channel order and bit depth don't match image.NRGBA
// directly.
func WritePNG(w io.Writer, t asset.Texture2D) error {
	if len(t.Mips) == 0 {
		return fmt.Errorf("export: texture has no mip data")
	}
	img, err := decodeMipToImage(t, 0)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func decodeMipToImage(t asset.Texture2D, mip int) (image.Image, error) {
	width, height := t.MipSize(mip)
	data := t.Mips[mip]

	switch t.Format {
	case asset.FormatColor:
		return &image.NRGBA{
			Pix:    data,
			Stride: int(width) * 4,
			Rect:   image.Rect(0, 0, int(width), int(height)),
		}, nil

	case asset.FormatDxt1:
		rgba := decodeDXT(dxtFormat1, data, int(width), int(height))
		return &image.NRGBA{Pix: rgba, Stride: int(width) * 4, Rect: image.Rect(0, 0, int(width), int(height))}, nil
	case asset.FormatDxt3:
		rgba := decodeDXT(dxtFormat3, data, int(width), int(height))
		return &image.NRGBA{Pix: rgba, Stride: int(width) * 4, Rect: image.Rect(0, 0, int(width), int(height))}, nil
	case asset.FormatDxt5:
		rgba := decodeDXT(dxtFormat5, data, int(width), int(height))
		return &image.NRGBA{Pix: rgba, Stride: int(width) * 4, Rect: image.Rect(0, 0, int(width), int(height))}, nil

	case asset.FormatBgra5551:
		return convertPacked16(data, int(width), int(height), unpackBgra5551)
	case asset.FormatBgra4444:
		return convertPacked16(data, int(width), int(height), unpackBgra4444)
	case asset.FormatBgr565:
		return convertPacked16(data, int(width), int(height), unpackBgr565)

	default:
		return nil, fmt.Errorf("export: unsupported surface format for PNG export: %s", t.Format)
	}
}

// convertPacked16 expands a 16-bit-per-pixel packed format into an
// image.NRGBA via an intermediate image.RGBA and golang.org/x/image/draw,
// which performs the channel-order/alpha-premultiplication conversion so
// this package doesn't hand-roll a second blending path alongside the DXT
// one.
func convertPacked16(data []byte, width, height int, unpack func(uint16) (r, g, b, a uint8)) (image.Image, error) {
	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 2
			if i+2 > len(data) {
				continue
			}
			v := uint16(data[i]) | uint16(data[i+1])<<8
			r, g, b, a := unpack(v)
			src.Set(x, y, colorRGBA{r, g, b, a})
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), src, image.Point{}, xdraw.Src)
	return dst, nil
}

type colorRGBA struct{ r, g, b, a uint8 }

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = uint32(c.a) * 0x101
	return
}

func unpackBgr565(v uint16) (r, g, b, a uint8) {
	r = uint8((v>>11)&0x1F) << 3
	g = uint8((v>>5)&0x3F) << 2
	b = uint8(v&0x1F) << 3
	return r, g, b, 255
}

func unpackBgra5551(v uint16) (r, g, b, a uint8) {
	r = uint8((v>>10)&0x1F) << 3
	g = uint8((v>>5)&0x1F) << 3
	b = uint8(v&0x1F) << 3
	if v&0x8000 != 0 {
		a = 255
	}
	return
}

func unpackBgra4444(v uint16) (r, g, b, a uint8) {
	a = uint8((v>>12)&0xF) << 4
	r = uint8((v>>8)&0xF) << 4
	g = uint8((v>>4)&0xF) << 4
	b = uint8(v&0xF) << 4
	return
}
