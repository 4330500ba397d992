// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Reductions and fills over flat buffers: Min, Max, Fill, FillRandom.
//   - *Dense methods forward to the flat kernels.
//
// Exposed API:
//   - Min(buf)  -> (v, err)   // smallest element, ErrEmpty on len 0
//   - Max(buf)  -> (v, err)   // largest element, ErrEmpty on len 0
//   - Fill(dst, v)            // every element := v
//   - FillRandom(dst, lo, hi, rng) // lo + u*(hi-lo), u uniform in [0,1)
//
// Determinism & Performance:
//   - Reductions seed the running value from element 0; no sentinel like +Inf is used.
//   - FillRandom is always serial so a seed fixes the whole buffer.
//   - NaN elements never win a comparison: a NaN in the buffer is skipped
//     unless it is element 0.
//
// AI-Hints:
//   - Use NewRNG(seed) to reproduce a fill; pass nil for the default stream.

package matrix

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// reduce scans buf once keeping the element preferred by better.
func reduce(tag string, buf []float64, better func(v, cur float64) bool) (float64, error) {
	if len(buf) == 0 {
		return 0, matrixErrorf(tag, ErrEmpty)
	}
	cur := buf[0]
	for _, v := range buf[1:] {
		if better(v, cur) {
			cur = v
		}
	}

	return cur, nil
}

// Min returns the smallest element of buf.
// Errors: ErrEmpty when len(buf) == 0.
// Complexity: O(n).
func Min(buf []float64) (float64, error) {
	return reduce(opMin, buf, func(v, cur float64) bool { return v < cur })
}

// Max returns the largest element of buf.
// Errors: ErrEmpty when len(buf) == 0.
// Complexity: O(n).
func Max(buf []float64) (float64, error) {
	return reduce(opMax, buf, func(v, cur float64) bool { return v > cur })
}

// Fill sets every element of dst to v.
// Implementation:
//   - Stage 1: split [0,len) across workers when large enough.
//   - Stage 2: each chunk writes its own range.
//
// Complexity:
//   - Time O(n), Space O(1).
func Fill(dst []float64, v float64, opts ...Option) {
	o := gatherOptions(opts...)
	start := time.Now()
	n := len(dst)
	chunks := parallelFor(&o, n, n, func(lo, hi int) {
		d := dst[lo:hi]
		for i := range d {
			d[i] = v
		}
	})
	traceKernel(&o, opFill, start).Int("size", n).Int("chunks", chunks).Msg("matrix kernel")
}

// FillRandom writes lo + u*(hi-lo) into every element, u drawn from rng.Float64().
// Implementation:
//   - Stage 1: require finite bounds with lo <= hi.
//   - Stage 2: nil rng ⇒ NewRNG(0).
//   - Stage 3: serial pass in index order.
//
// Behavior highlights:
//   - lo == hi fills a constant.
//   - Values lie in [lo, hi) for lo < hi, up to the rounding of lo + u*(hi-lo).
//
// Errors:
//   - ErrBadRange (NaN/Inf bound or lo > hi); dst is not written.
//
// Complexity:
//   - Time O(n), Space O(1).
func FillRandom(dst []float64, lo, hi float64, rng *rand.Rand) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo > hi {
		return matrixErrorf(opRandom, ErrBadRange)
	}
	if rng == nil {
		rng = NewRNG(0)
	}
	span := hi - lo
	for i := range dst {
		dst[i] = lo + rng.Float64()*span
	}

	return nil
}

// Min returns the smallest element. ErrNilMatrix on nil, ErrEmpty on 0-size.
func (m *Dense) Min() (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMin, err)
	}

	return Min(m.data)
}

// Max returns the largest element. ErrNilMatrix on nil, ErrEmpty on 0-size.
func (m *Dense) Max() (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMax, err)
	}

	return Max(m.data)
}

// Fill sets every element to v. ErrNilMatrix on nil.
func (m *Dense) Fill(v float64, opts ...Option) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opFill, err)
	}
	Fill(m.data, v, opts...)

	return nil
}

// FillRandom fills the matrix from rng; see the package-level FillRandom.
// ErrNilMatrix on nil.
func (m *Dense) FillRandom(lo, hi float64, rng *rand.Rand) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opRandom, err)
	}

	return FillRandom(m.data, lo, hi, rng)
}
