// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the single fork-join primitive (parallelFor) used by every threaded kernel.
//   - Keep partitioning static and contiguous so output ranges never overlap.
//
// Determinism & Performance:
//   - Chunk boundaries depend only on (n, workers); no work stealing.
//   - Each output element is produced by the same instruction sequence whatever
//     the partition, so threaded and inline runs are bit-identical.
//   - Below the threshold the body runs inline on the caller's goroutine.

package matrix

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// parallelFor runs body over [0,n) split into contiguous chunks and joins.
// Implementation:
//   - Stage 1: decide inline vs fork (threading flag, workers, work vs threshold).
//   - Stage 2: chunk = ceil(n/k); spawn one goroutine per chunk.
//   - Stage 3: wait on the WaitGroup barrier.
//
// Inputs:
//   - n   : number of independent units (indices, rows, columns).
//   - work: estimated total cost used against the parallel threshold.
//   - body: processes units [lo,hi); must only write outputs owned by that range.
//
// Returns:
//   - int: number of chunks actually executed (1 when inline, 0 when n<=0).
//
// Complexity:
//   - O(k) goroutines for k = min(workers, n); no allocation when inline.
func parallelFor(o *Options, n, work int, body func(lo, hi int)) int {
	if n <= 0 {
		return 0
	}
	k := o.workers
	if !o.threaded || k <= 1 || n == 1 || work < o.threshold {
		body(0, n)

		return 1
	}
	if k > n {
		k = n
	}
	size := (n + k - 1) / k

	var wg sync.WaitGroup
	chunks := 0
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		chunks++
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait() // barrier: all disjoint ranges written

	return chunks
}

// traceKernel opens a Debug event carrying the common dispatch fields.
// With the default zerolog.Nop() logger the event is nil and every chained
// call is a no-op.
func traceKernel(o *Options, op string, start time.Time) *zerolog.Event {
	return o.logger.Debug().
		Str("op", op).
		Bool("threaded", o.threaded).
		Int("workers", o.workers).
		Dur("elapsed", time.Since(start))
}
