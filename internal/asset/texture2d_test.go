// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package asset

import (
	"bytes"
	"testing"

	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

func TestDecodeTexture2DSingleMip(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0}) // format = Color (0)
	buf.Write([]byte{2, 0, 0, 0}) // width = 2
	buf.Write([]byte{2, 0, 0, 0}) // height = 2
	buf.Write([]byte{1, 0, 0, 0}) // mip count = 1
	pixels := []byte{
		0xFF, 0x00, 0x00, 0xFF,
		0x00, 0xFF, 0x00, 0xFF,
		0x00, 0x00, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	buf.Write([]byte{byte(len(pixels)), 0, 0, 0})
	buf.Write(pixels)

	r := xnbbin.NewReader(&buf)
	tex, err := DecodeTexture2D(r)
	if err != nil {
		t.Fatalf("DecodeTexture2D: %v", err)
	}
	if tex.Format != FormatColor {
		t.Errorf("Format = %v, want Color", tex.Format)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("dims = %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if len(tex.Mips) != 1 || !bytes.Equal(tex.Mips[0], pixels) {
		t.Errorf("Mips[0] mismatch")
	}
}

func TestTexture2DMipSize(t *testing.T) {
	tex := Texture2D{Width: 8, Height: 4}
	w, h := tex.MipSize(1)
	if w != 4 || h != 2 {
		t.Errorf("MipSize(1) = %d,%d want 4,2", w, h)
	}
}

func TestSurfaceFormatString(t *testing.T) {
	if got, want := FormatDxt5.String(), "Dxt5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
