// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package xnbtool

import "time"

// Progress reports the outcome of decoding a single file within a
// DecodeBatch call, analogous to the teacher's per-block Progress report
// but scoped to a whole file rather than a bzip2 block.
type Progress struct {
	Name     string
	Duration time.Duration
	Size     int
	Err      error
}
