// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"

	"github.com/cosnicolaou/xnbtool/internal/xnbfile"
)

func inspectFile(ctx context.Context, name string) error {
	a, err := xnbfile.Open(ctx, name)
	if err != nil {
		return err
	}
	h := a.Header
	fmt.Printf("=== %v ===\n", name)
	fmt.Printf("Platform            : %v\n", h.Platform)
	fmt.Printf("Version             : %v\n", h.Version)
	fmt.Printf("HiDef               : %v\n", h.HiDef)
	fmt.Printf("Compressed          : %v\n", h.Compressed)
	fmt.Printf("File length         : %v\n", h.FileLength)
	if h.Compressed {
		fmt.Printf("Decompressed length : %v\n", h.DecompressedBodyLength)
	}
	return nil
}

func inspect(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)
	errs := errors.M{}
	for _, arg := range args {
		errs.Append(inspectFile(ctx, arg))
	}
	return errs.Err()
}
