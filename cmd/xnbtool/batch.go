// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cloudeng.io/cmdutil"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/cosnicolaou/xnbtool"
)

func collectXnbFiles(args []string) ([]string, error) {
	var names []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Not a local path (e.g. an s3:// URI); pass it through as-is.
			names = append(names, arg)
			continue
		}
		if !info.IsDir() {
			names = append(names, arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && strings.EqualFold(filepath.Ext(path), ".xnb") {
				names = append(names, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

func batchProgressBar(ctx context.Context, wr io.Writer, ch chan xnbtool.Progress, total int) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(wr),
		progressbar.OptionSetPredictTime(true))
	bar.RenderBlank()
	for {
		select {
		case p, ok := <-ch:
			if !ok {
				fmt.Fprintln(wr)
				return
			}
			bar.Add(1)
			if p.Err != nil {
				fmt.Fprintf(wr, "\n%v: %v\n", p.Name, p.Err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func batch(ctx context.Context, values interface{}, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmdutil.HandleSignals(cancel, os.Interrupt)
	cl := values.(*batchFlags)

	names, err := collectXnbFiles(args)
	if err != nil {
		return err
	}

	batchOpts := []xnbtool.BatchOption{xnbtool.Concurrency(cl.Concurrency)}

	var progressWg sync.WaitGroup
	isTTY := terminal.IsTerminal(int(os.Stdout.Fd()))
	if cl.Progress && isTTY {
		ch := make(chan xnbtool.Progress, cl.Concurrency)
		batchOpts = append(batchOpts, xnbtool.ProgressChannel(ch))
		progressWg.Add(1)
		go func() {
			batchProgressBar(ctx, os.Stderr, ch, len(names))
			progressWg.Done()
		}()
	}

	result := xnbtool.DecodeBatch(ctx, names, batchOpts...)
	progressWg.Wait()

	fmt.Printf("decoded %d of %d files\n", countNonNil(result.Assets), len(names))
	return result.Err
}

func countNonNil(assets []*xnbtool.Asset) int {
	n := 0
	for _, a := range assets {
		if a != nil {
			n++
		}
	}
	return n
}
