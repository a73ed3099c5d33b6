// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package asset

import (
	"bytes"
	"testing"

	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

func writeLE32(buf *bytes.Buffer, v uint32) {
	buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func TestDecodeSpriteFontMinimal(t *testing.T) {
	var buf bytes.Buffer

	// Nested 1x1 Color texture.
	writeLE32(&buf, uint32(FormatColor))
	writeLE32(&buf, 1)
	writeLE32(&buf, 1)
	writeLE32(&buf, 1) // mip count
	pixel := []byte{1, 2, 3, 4}
	writeLE32(&buf, uint32(len(pixel)))
	buf.Write(pixel)

	writeLE32(&buf, 1) // 1 glyph rect
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0})
	writeLE32(&buf, 1) // 1 cropping rect
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0})
	writeLE32(&buf, 1) // 1 character
	writeLE32(&buf, 'A')
	writeLE32(&buf, 0) // 0 kerning triples
	writeLE32(&buf, 24) // line spacing
	buf.Write([]byte{0, 0, 0, 0}) // spacing = 0.0
	buf.Write([]byte{0})          // no default character

	r := xnbbin.NewReader(&buf)
	sf, err := DecodeSpriteFont(r)
	if err != nil {
		t.Fatalf("DecodeSpriteFont: %v", err)
	}
	if sf.Texture.Width != 1 || sf.Texture.Height != 1 {
		t.Errorf("nested texture dims = %dx%d, want 1x1", sf.Texture.Width, sf.Texture.Height)
	}
	if len(sf.Glyphs) != 1 || len(sf.Cropping) != 1 {
		t.Fatalf("got %d glyphs, %d cropping rects, want 1,1", len(sf.Glyphs), len(sf.Cropping))
	}
	if len(sf.CharacterMap) != 1 || sf.CharacterMap[0] != 'A' {
		t.Errorf("CharacterMap = %v, want ['A']", sf.CharacterMap)
	}
	if sf.LineSpacing != 24 {
		t.Errorf("LineSpacing = %d, want 24", sf.LineSpacing)
	}
	if sf.DefaultCharacter != nil {
		t.Errorf("DefaultCharacter = %v, want nil", sf.DefaultCharacter)
	}
}
