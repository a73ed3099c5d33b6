// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package xnbtool decodes XNB content files (the compiled asset container
// produced by the XNA/MonoGame content pipeline) and dispatches their
// primary object to a typed decoder in internal/asset. A single file is
// decompressed synchronously via internal/lzx; DecodeBatch fans a worker
// pool out across many independent files.
package xnbtool

import (
	"bytes"
	"context"
	"fmt"
	"log"

	_ "github.com/cosnicolaou/xnbtool/internal/asset" // registers type readers
	"github.com/cosnicolaou/xnbtool/internal/typereader"
	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
	"github.com/cosnicolaou/xnbtool/internal/xnbfile"
)

// trace logs format/args via the standard logger when verbose is set,
// mirroring the teacher's Decompressor.trace.
func trace(verbose bool, format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}

// Asset is a fully decoded XNB file: its container header, the
// type-reader table it declared, and the
// decoded primary object (one of internal/asset's Texture2D, SoundEffect,
// or SpriteFont, as an interface{} since the type-reader table is only
// known at runtime).
type Asset struct {
	Header      xnbfile.Header
	TypeReaders []typereader.Entry
	Content     interface{}
}

// Decode opens name (a local path, or anything github.com/grailbio/base/file
// accepts — s3://, http(s)://, ...), parses its XNB container, decompresses
// its body if the compressed flag is set, and decodes its primary object.
func Decode(ctx context.Context, name string, opt ...Option) (*Asset, error) {
	o := &opts{}
	for _, fn := range opt {
		fn(o)
	}

	raw, err := xnbfile.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("xnbtool: decode %s: %w", name, err)
	}
	trace(o.verbose, "decoded: %s, platform %s, compressed %v, body %d bytes", name, raw.Header.Platform, raw.Header.Compressed, len(raw.Body))

	r := xnbbin.NewReader(bytes.NewReader(raw.Body))
	readers, err := typereader.ReadTypeReaderTable(r)
	if err != nil {
		return nil, fmt.Errorf("xnbtool: decode %s: type reader table: %w", name, err)
	}
	trace(o.verbose, "type readers: %s, %d entries", name, len(readers))

	content, err := typereader.ReadPrimaryObject(r, readers)
	if err != nil {
		return nil, fmt.Errorf("xnbtool: decode %s: primary object: %w", name, err)
	}
	trace(o.verbose, "primary object: %s, %T", name, content)

	return &Asset{
		Header:      raw.Header,
		TypeReaders: readers,
		Content:     content,
	}, nil
}
