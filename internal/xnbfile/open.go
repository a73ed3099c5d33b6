// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xnbfile

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/file"

	"github.com/cosnicolaou/xnbtool/internal/lzx"
)

// Asset is a parsed XNB container: the validated header plus the fully
// decompressed body (type-reader table + primary object bytes), ready for
// internal/typereader to dispatch.
type Asset struct {
	Header Header
	Body   []byte
}

// Open reads name (a local path, or any scheme github.com/grailbio/base/file
// has a registered implementation for, e.g. s3://bucket/key.xnb) and
// returns its parsed header and decompressed body.
func Open(ctx context.Context, name string) (*Asset, error) {
	size := int64(-1)
	if info, err := file.Stat(ctx, name); err == nil {
		size = info.Size()
	}

	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("xnbfile: open %s: %w", name, err)
	}
	defer f.Close(ctx) //nolint:errcheck

	raw, err := io.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, fmt.Errorf("xnbfile: read %s: %w", name, err)
	}

	return Decode(bytes.NewReader(raw), size)
}

// Decode parses an already-buffered XNB stream: the header, followed by
// either a pass-through body (uncompressed) or an LZX-framed one.
func Decode(r io.Reader, size int64) (*Asset, error) {
	buf, ok := r.(*bytes.Reader)
	if !ok {
		all, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(all)
	}

	header, err := ParseHeader(buf, size)
	if err != nil {
		return nil, err
	}

	rest, err := io.ReadAll(buf)
	if err != nil {
		return nil, fmt.Errorf("xnbfile: read body: %w", err)
	}

	if !header.Compressed {
		return &Asset{Header: header, Body: rest}, nil
	}

	framer, err := lzx.NewXnbFramer()
	if err != nil {
		return nil, fmt.Errorf("xnbfile: %w", err)
	}
	body, err := framer.Unframe(rest, int(header.DecompressedBodyLength))
	if err != nil {
		return nil, fmt.Errorf("xnbfile: decompress: %w", err)
	}
	return &Asset{Header: header, Body: body}, nil
}
