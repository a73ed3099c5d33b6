// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package asset

import (
	"fmt"

	"github.com/cosnicolaou/xnbtool/internal/typereader"
	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

// Rectangle is an XNA Rectangle: integer bounds in pixel space.
type Rectangle struct {
	X, Y, Width, Height int32
}

// Vector3 is an XNA Vector3, used here for per-glyph kerning (left
// bearing, width, right bearing).
type Vector3 struct {
	X, Y, Z float32
}

// SpriteFont is a decoded SpriteFontReader payload: a glyph-sheet texture
// plus the per-character metrics needed to lay text out against it.
type SpriteFont struct {
	Texture          Texture2D
	Glyphs           []Rectangle
	Cropping         []Rectangle
	CharacterMap     []int32
	Kerning          []Vector3
	LineSpacing      int32
	Spacing          float32
	DefaultCharacter *int32
}

const spriteFontReaderName = "Microsoft.Xna.Framework.Content.SpriteFontReader"

func init() {
	typereader.Register(spriteFontReaderName, func(r *xnbbin.Reader) (interface{}, error) {
		return DecodeSpriteFont(r)
	})
}

// DecodeSpriteFont reads a SpriteFont payload: a nested Texture2D, then
// length-prefixed arrays of glyph and cropping rectangles, a character
// map (one int32 code point per glyph), a per-glyph kerning triple list,
// line spacing, spacing, and a nullable default character.
//
// The nested Texture2D is not preceded by its own type-reader index (XNB
// embeds shared-type members inline once the outer reader already
// establishes the type), so this calls DecodeTexture2D directly rather
// than going through typereader.Dispatch.
func DecodeSpriteFont(r *xnbbin.Reader) (SpriteFont, error) {
	texture, err := DecodeTexture2D(r)
	if err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont texture: %w", err)
	}
	f := SpriteFont{Texture: texture}

	if f.Glyphs, err = readRectangles(r, "glyphs"); err != nil {
		return SpriteFont{}, err
	}
	if f.Cropping, err = readRectangles(r, "cropping"); err != nil {
		return SpriteFont{}, err
	}

	charCount, err := r.Uint32()
	if err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont character map count: %w", err)
	}
	f.CharacterMap = make([]int32, charCount)
	for i := range f.CharacterMap {
		if f.CharacterMap[i], err = r.Int32(); err != nil {
			return SpriteFont{}, fmt.Errorf("asset: spritefont character %d: %w", i, err)
		}
	}

	kerningCount, err := r.Uint32()
	if err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont kerning count: %w", err)
	}
	f.Kerning = make([]Vector3, kerningCount)
	for i := range f.Kerning {
		v, err := readVector3(r)
		if err != nil {
			return SpriteFont{}, fmt.Errorf("asset: spritefont kerning %d: %w", i, err)
		}
		f.Kerning[i] = v
	}

	if f.LineSpacing, err = r.Int32(); err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont line spacing: %w", err)
	}
	if f.Spacing, err = r.Float32(); err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont spacing: %w", err)
	}

	hasDefault, err := r.Uint8()
	if err != nil {
		return SpriteFont{}, fmt.Errorf("asset: spritefont default character presence: %w", err)
	}
	if hasDefault != 0 {
		v, err := r.Int32()
		if err != nil {
			return SpriteFont{}, fmt.Errorf("asset: spritefont default character: %w", err)
		}
		f.DefaultCharacter = &v
	}

	return f, nil
}

func readRectangles(r *xnbbin.Reader, field string) ([]Rectangle, error) {
	count, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("asset: spritefont %s count: %w", field, err)
	}
	rects := make([]Rectangle, count)
	for i := range rects {
		rect, err := readRectangle(r)
		if err != nil {
			return nil, fmt.Errorf("asset: spritefont %s[%d]: %w", field, i, err)
		}
		rects[i] = rect
	}
	return rects, nil
}

func readRectangle(r *xnbbin.Reader) (Rectangle, error) {
	var rect Rectangle
	var err error
	if rect.X, err = r.Int32(); err != nil {
		return rect, err
	}
	if rect.Y, err = r.Int32(); err != nil {
		return rect, err
	}
	if rect.Width, err = r.Int32(); err != nil {
		return rect, err
	}
	if rect.Height, err = r.Int32(); err != nil {
		return rect, err
	}
	return rect, nil
}

func readVector3(r *xnbbin.Reader) (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = r.Float32(); err != nil {
		return v, err
	}
	if v.Y, err = r.Float32(); err != nil {
		return v, err
	}
	if v.Z, err = r.Float32(); err != nil {
		return v, err
	}
	return v, nil
}
