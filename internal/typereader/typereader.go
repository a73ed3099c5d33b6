// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package typereader decodes an XNB body's type-reader table and
// dispatches the primary object to the asset decoder registered for its
// type-reader name.
package typereader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosnicolaou/xnbtool/internal/xnbbin"
)

// Entry is one row of the type-reader table: the assembly-qualified
// reader name (version suffix stripped) and the reader's declared
// version.
type Entry struct {
	Name    string
	Version int32
}

// ErrUnsupportedTypeReader is returned by Dispatch for a reader name this
// module has no decoder registered for. It is a typereader-level error,
// not an internal/lzx.Error: only core decoder failures use that
// taxonomy.
var ErrUnsupportedTypeReader = errors.New("typereader: unsupported type reader")

// ReadTypeReaderTable reads the 7-bit-encoded-length-prefixed count of
// type readers, then that many (name, version) pairs. Each name is itself
// a .NET-style length-prefixed string; everything from the first comma
// onward (the assembly-qualification suffix) is stripped, matching XNB
// convention.
func ReadTypeReaderTable(r *xnbbin.Reader) ([]Entry, error) {
	count, err := r.Read7BitEncodedInt()
	if err != nil {
		return nil, fmt.Errorf("typereader: reading table count: %w", err)
	}
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		qualified, err := r.String()
		if err != nil {
			return nil, fmt.Errorf("typereader: reading entry %d name: %w", i, err)
		}
		version, err := r.Int32()
		if err != nil {
			return nil, fmt.Errorf("typereader: reading entry %d version: %w", i, err)
		}
		entries = append(entries, Entry{Name: stripAssemblyQualification(qualified), Version: version})
	}
	return entries, nil
}

func stripAssemblyQualification(qualified string) string {
	if i := strings.IndexByte(qualified, ','); i >= 0 {
		return qualified[:i]
	}
	return qualified
}

// DecodeFunc decodes one primary object's payload given the rest of the
// body reader.
type DecodeFunc func(r *xnbbin.Reader) (interface{}, error)

var registry = map[string]DecodeFunc{}

// Register associates a type-reader name with a decode function. Called
// from internal/asset's package init so internal/typereader need not
// import internal/asset directly (avoiding an import cycle, since
// internal/asset's tests want to exercise decoding without pulling in
// dispatch).
func Register(name string, fn DecodeFunc) {
	registry[name] = fn
}

// Dispatch looks up the decode function registered for name.
func Dispatch(name string) (DecodeFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// ReadPrimaryObject reads the primary (or a shared) object from body: a
// 7-bit-encoded type-reader index (1-based; 0 means nil) followed by the
// type-specific payload, dispatched via the entries read from
// ReadTypeReaderTable.
func ReadPrimaryObject(r *xnbbin.Reader, entries []Entry) (interface{}, error) {
	typeID, err := r.Read7BitEncodedInt()
	if err != nil {
		return nil, fmt.Errorf("typereader: reading object type id: %w", err)
	}
	if typeID == 0 {
		return nil, nil
	}
	idx := typeID - 1
	if idx >= uint32(len(entries)) {
		return nil, fmt.Errorf("typereader: type id %d exceeds table of %d entries", typeID, len(entries))
	}
	name := entries[idx].Name
	fn, ok := Dispatch(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTypeReader, name)
	}
	return fn(r)
}
