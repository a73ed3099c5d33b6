// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package typereader

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

func TestStripAssemblyQualification(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework", "Microsoft.Xna.Framework.Content.Texture2DReader"},
		{"NoComma", "NoComma"},
	} {
		if got := stripAssemblyQualification(tc.in); got != tc.want {
			t.Errorf("stripAssemblyQualification(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadTypeReaderTable(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x02) // 2 entries

	name1 := "Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework"
	buf.WriteByte(byte(len(name1)))
	buf.WriteString(name1)
	buf.Write([]byte{0, 0, 0, 0}) // version 0

	name2 := "Microsoft.Xna.Framework.Content.SoundEffectReader, Microsoft.Xna.Framework"
	buf.WriteByte(byte(len(name2)))
	buf.WriteString(name2)
	buf.Write([]byte{1, 0, 0, 0}) // version 1

	r := xnbbin.NewReader(&buf)
	entries, err := ReadTypeReaderTable(r)
	if err != nil {
		t.Fatalf("ReadTypeReaderTable: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "Microsoft.Xna.Framework.Content.Texture2DReader" {
		t.Errorf("entries[0].Name = %q", entries[0].Name)
	}
	if entries[1].Version != 1 {
		t.Errorf("entries[1].Version = %d, want 1", entries[1].Version)
	}
}

func TestDispatchUnknownReader(t *testing.T) {
	_, ok := Dispatch("Some.Unregistered.Reader")
	if ok {
		t.Fatal("Dispatch: want ok=false for unregistered reader")
	}
}

func TestReadPrimaryObjectNilSentinel(t *testing.T) {
	buf := bytes.NewReader([]byte{0x00})
	r := xnbbin.NewReader(buf)
	obj, err := ReadPrimaryObject(r, nil)
	if err != nil {
		t.Fatalf("ReadPrimaryObject: %v", err)
	}
	if obj != nil {
		t.Errorf("ReadPrimaryObject = %v, want nil", obj)
	}
}

func TestReadPrimaryObjectUnsupportedReader(t *testing.T) {
	entries := []Entry{{Name: "Not.Registered.Reader"}}
	buf := bytes.NewReader([]byte{0x01}) // type id 1 -> entries[0]
	r := xnbbin.NewReader(buf)
	_, err := ReadPrimaryObject(r, entries)
	if !errors.Is(err, ErrUnsupportedTypeReader) {
		t.Errorf("err = %v, want ErrUnsupportedTypeReader", err)
	}
}
