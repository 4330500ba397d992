// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - BackendBLAS: delegate C = A×B to the registered Float64 BLAS (blas64.Gemm).
//   - The default implementation is gonum's pure-Go BLAS; UseBLAS swaps in another
//     (e.g. a cgo netlib/OpenBLAS build) process-wide.
//
// Notes:
//   - Row-major buffers map onto blas64.General with Stride == Cols, no copies.
//   - When threaded, row blocks of A and C are handed to independent Gemm calls.
//     Gonum's Dgemm may fan out internally on large blocks; results are then
//     tolerance-equal rather than bit-identical to the serial call.

package matrix

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/gonum"
)

// UseBLAS registers impl as the process-wide Float64 BLAS used by BackendBLAS.
// A nil impl restores gonum's pure-Go implementation.
// Not goroutine-safe: call during program initialization.
func UseBLAS(impl blas.Float64) {
	if impl == nil {
		impl = gonum.Implementation{}
	}
	blas64.Use(impl)
}

// mulBLAS runs dst = A×B through blas64.Gemm, optionally over row blocks.
// Degenerate shapes are resolved here because Dgemm rejects a zero leading
// dimension.
func mulBLAS(o *Options, dst, a, b []float64, m, n, p int) int {
	if m == 0 || p == 0 {
		return 0
	}
	if n == 0 {
		clear(dst) // empty inner sum
		return 1
	}

	return parallelFor(o, m, m*n*p, func(lo, hi int) {
		rows := hi - lo
		av := blas64.General{Rows: rows, Cols: n, Stride: n, Data: a[lo*n : hi*n]}
		bv := blas64.General{Rows: n, Cols: p, Stride: p, Data: b}
		cv := blas64.General{Rows: rows, Cols: p, Stride: p, Data: dst[lo*p : hi*p]}
		clear(cv.Data)
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, av, bv, 0, cv)
	})
}
