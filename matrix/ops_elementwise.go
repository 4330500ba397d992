// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Flat-buffer element-wise kernels: AddInto, SubInto, HadamardInto, ScaleInto.
//   - These are the raw surface a binding layer calls with its own buffers.
//
// Design:
//   - Validation happens before the first write: a mismatch leaves dst untouched.
//   - One private micro-kernel (ewBinary) with an op switch hoisted out of the loop.
//   - Fork-join over disjoint index ranges above the parallel threshold.
//
// Determinism & Performance:
//   - Flat 0..n-1 loops; bandwidth-bound. Plain IEEE-754, NaN/Inf propagate.
//
// AI-Hints:
//   - dst may be one of the operands for these kernels: every index is read before it is written.

package matrix

import "time"

// ewOp selects the binary element-wise operator.
type ewOp int

const (
	ewAdd ewOp = iota
	ewSub
	ewMul
)

// ewBinary computes dst[i] = a[i] op b[i] on [lo,hi).
func ewBinary(op ewOp, dst, a, b []float64, lo, hi int) {
	// Reslice so the compiler can drop bounds checks inside the loops.
	d, x, y := dst[lo:hi], a[lo:hi], b[lo:hi]
	switch op {
	case ewAdd:
		for i := range d {
			d[i] = x[i] + y[i]
		}
	case ewSub:
		for i := range d {
			d[i] = x[i] - y[i]
		}
	case ewMul:
		for i := range d {
			d[i] = x[i] * y[i]
		}
	}
}

// binaryInto validates lengths and dispatches ewBinary over the index range.
func binaryInto(tag string, op ewOp, dst, a, b []float64, opts []Option) error {
	if err := validateBufLens(len(a), a, b, dst); err != nil {
		return matrixErrorf(tag, err)
	}
	o := gatherOptions(opts...)
	start := time.Now()
	n := len(dst)
	chunks := parallelFor(&o, n, n, func(lo, hi int) {
		ewBinary(op, dst, a, b, lo, hi)
	})
	traceKernel(&o, tag, start).Int("size", n).Int("chunks", chunks).Msg("matrix kernel")

	return nil
}

// AddInto computes dst[i] = a[i] + b[i].
// Implementation:
//   - Stage 1: require len(a) == len(b) == len(dst).
//   - Stage 2: flat loop, split across goroutines when threaded and large enough.
//
// Errors:
//   - ErrDimensionMismatch (lengths differ); dst is not written.
//
// Complexity:
//   - Time O(n), Space O(1).
func AddInto(dst, a, b []float64, opts ...Option) error {
	return binaryInto(opAdd, ewAdd, dst, a, b, opts)
}

// SubInto computes dst[i] = a[i] - b[i]. Same contract as AddInto.
func SubInto(dst, a, b []float64, opts ...Option) error {
	return binaryInto(opSub, ewSub, dst, a, b, opts)
}

// HadamardInto computes dst[i] = a[i] * b[i]. Same contract as AddInto.
func HadamardInto(dst, a, b []float64, opts ...Option) error {
	return binaryInto(opHadamard, ewMul, dst, a, b, opts)
}

// ScaleInto computes dst[i] = a[i] * s.
// Errors:
//   - ErrDimensionMismatch when len(dst) != len(a).
func ScaleInto(dst, a []float64, s float64, opts ...Option) error {
	if err := validateBufLens(len(a), a, dst); err != nil {
		return matrixErrorf(opScale, err)
	}
	o := gatherOptions(opts...)
	start := time.Now()
	n := len(dst)
	chunks := parallelFor(&o, n, n, func(lo, hi int) {
		d, x := dst[lo:hi], a[lo:hi]
		for i := range d {
			d[i] = x[i] * s
		}
	})
	traceKernel(&o, opScale, start).Int("size", n).Int("chunks", chunks).Msg("matrix kernel")

	return nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - NaN never compares close.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if rtol < 0 {
		rtol = -rtol
	}
	if atol < 0 {
		atol = -atol
	}

	var diff, absb float64
	for idx := range a.data {
		diff = a.data[idx] - b.data[idx]
		if diff < 0 {
			diff = -diff
		}
		absb = b.data[idx]
		if absb < 0 {
			absb = -absb
		}
		// Negated form so NaN differences fail the check.
		if !(diff <= atol+rtol*absb) {
			return false, nil // early-exit on first violation
		}
	}

	return true, nil
}
