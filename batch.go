// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xnbtool

import (
	"context"
	"runtime"
	"sync"
	"time"

	"cloudeng.io/errors"
)

// BatchResult holds the outcome of a DecodeBatch call: one Asset per
// successfully decoded input (in the same order as the names given to
// DecodeBatch; failed entries are nil) plus the aggregated errors.
type BatchResult struct {
	Assets []*Asset
	Err    error
}

// DecodeBatch decodes each of names concurrently, one internal/lzx.Decoder
// per file (decoders are never shared across goroutines, matching
// spec's single-threaded-decoder contract), and aggregates per-file
// failures with cloudeng.io/errors.M rather than aborting on the first
// one — directly grounded on the teacher's parallel.go worker-pool shape,
// simplified because batch members are wholly independent files rather
// than ordered blocks of one stream that must be reassembled in sequence.
func DecodeBatch(ctx context.Context, names []string, opt ...BatchOption) *BatchResult {
	o := &opts{concurrency: runtime.GOMAXPROCS(-1)}
	for _, fn := range opt {
		fn(o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	type job struct {
		index int
		name  string
	}
	jobs := make(chan job, len(names))
	for i, n := range names {
		jobs <- job{index: i, name: n}
	}
	close(jobs)

	assets := make([]*Asset, len(names))
	errs := &errors.M{}
	var errsMu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(o.concurrency)
	for w := 0; w < o.concurrency; w++ {
		go func() {
			defer wg.Done()
			singleOpts := []Option{Verbose(o.verbose)}
			for j := range jobs {
				start := time.Now()
				asset, err := Decode(ctx, j.name, singleOpts...)
				dur := time.Since(start)

				if err != nil {
					errsMu.Lock()
					errs.Append(err)
					errsMu.Unlock()
				} else {
					assets[j.index] = asset
				}

				if o.progressCh != nil {
					size := 0
					if asset != nil {
						size = len(asset.TypeReaders)
					}
					select {
					case o.progressCh <- Progress{Name: j.name, Duration: dur, Size: size, Err: err}:
					case <-ctx.Done():
						return
					}
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}
	wg.Wait()
	if o.progressCh != nil {
		close(o.progressCh)
	}

	return &BatchResult{Assets: assets, Err: errs.Err()}
}
