// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xnbtool

// opts is the private options struct that Option and BatchOption
// functions mutate, mirroring the teacher's decompressorOpts pattern.
type opts struct {
	verbose     bool
	concurrency int
	progressCh  chan<- Progress
}

// Option configures a single-file Decode call.
type Option func(*opts)

// BatchOption configures a DecodeBatch call. It is a distinct type from
// Option (rather than an alias) so that batch-only knobs like
// Concurrency can't be passed to the single-file Decode by mistake.
type BatchOption func(*opts)

// Verbose enables progress logging during decode.
func Verbose(v bool) Option {
	return func(o *opts) {
		o.verbose = v
	}
}

// BatchVerbose enables progress logging during batch decode.
func BatchVerbose(v bool) BatchOption {
	return func(o *opts) {
		o.verbose = v
	}
}

// Concurrency sets the number of worker goroutines DecodeBatch uses.
// The default is runtime.GOMAXPROCS(-1).
func Concurrency(n int) BatchOption {
	return func(o *opts) {
		o.concurrency = n
	}
}

// ProgressChannel sets the channel DecodeBatch sends per-file Progress
// reports to as each file completes. DecodeBatch closes the channel once
// every file has been processed, so callers can range over it. An
// unbuffered, unread channel will stall the worker pool.
func ProgressChannel(ch chan<- Progress) BatchOption {
	return func(o *opts) {
		o.progressCh = ch
	}
}
