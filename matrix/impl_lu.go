// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Det: Gaussian elimination with partial pivoting on a scratch copy.
//   - InverseInto: LU with partial pivoting and a permutation vector, then
//     n independent forward/back solves, one per basis column.
//
// Numeric policy:
//   - A pivot whose magnitude is below the singular tolerance (default 1e-12)
//     makes Det return exactly 0 and InverseInto return ErrSingular.
//   - NaN pivots are not treated as singular; they propagate.
//
// Determinism:
//   - Pivot choice: largest |value| in the column, first row wins ties.
//   - Row updates and column solves are independent; the parallel split never
//     changes the operation order within one row or one column.

package matrix

import (
	"math"
	"time"
)

// swapRows exchanges rows i and j of an n-column row-major buffer.
func swapRows(buf []float64, n, i, j int) {
	ri := buf[i*n : (i+1)*n]
	rj := buf[j*n : (j+1)*n]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// pivotRow returns the row index >= k with the largest |buf[row,k]|.
func pivotRow(buf []float64, n, k int) int {
	pivot := k
	best := math.Abs(buf[k*n+k])
	for i := k + 1; i < n; i++ {
		if v := math.Abs(buf[i*n+k]); v > best {
			best = v
			pivot = i
		}
	}

	return pivot
}

// isSingularPivot applies the numeric policy to one pivot.
func isSingularPivot(pv, tol float64) bool {
	return pv == 0 || math.Abs(pv) < tol
}

// validateSquareBuf checks n and len(a) for square kernels.
func validateSquareBuf(n int, bufs ...[]float64) error {
	if err := validateShape(n, n); err != nil {
		return err
	}

	return validateBufLens(n*n, bufs...)
}

// Det returns the determinant of the row-major n×n matrix a.
// Implementation:
//   - Stage 1: validate; n==0 → 0, n==1 → a[0].
//   - Stage 2: copy a into scratch (the caller's buffer is never mutated).
//   - Stage 3: for each column i: partial pivot (swap flips the sign), singular
//     check, det *= pivot, eliminate rows below i (parallel per row).
//
// Behavior highlights:
//   - A singular matrix is a numeric outcome: returns (0, nil).
//
// Errors:
//   - ErrInvalidDimensions, ErrAllocation, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(n^3), Space O(n^2) for the scratch copy.
func Det(a []float64, n int, opts ...Option) (float64, error) {
	if err := validateSquareBuf(n, a); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	switch n {
	case 0:
		return 0, nil
	case 1:
		return a[0], nil
	}

	o := gatherOptions(opts...)
	start := time.Now()
	t := make([]float64, n*n)
	copy(t, a)

	det := 1.0
	for i := 0; i < n; i++ {
		if p := pivotRow(t, n, i); p != i {
			swapRows(t, n, i, p)
			det = -det
		}
		pv := t[i*n+i]
		if isSingularPivot(pv, o.singularTol) {
			traceKernel(&o, opDet, start).Int("n", n).Int("singular_at", i).Msg("matrix kernel")
			return 0, nil
		}
		det *= pv

		rem := n - i - 1
		pi := t[i*n : (i+1)*n]
		parallelFor(&o, rem, rem*rem, func(lo, hi int) {
			for j := i + 1 + lo; j < i+1+hi; j++ {
				rj := t[j*n : (j+1)*n]
				f := rj[i] / pv
				for k := i + 1; k < n; k++ {
					rj[k] -= f * pi[k]
				}
			}
		})
	}
	traceKernel(&o, opDet, start).Int("n", n).Msg("matrix kernel")

	return det, nil
}

// InverseInto writes the inverse of the row-major n×n matrix a into dst.
// Implementation:
//   - Stage 1: validate lengths and that dst does not overlap a.
//   - Stage 2: LU with partial pivoting on a scratch copy; swaps update the
//     permutation vector; rows below the pivot are normalized and updated in parallel.
//   - Stage 3: for each basis column e_col: x = P·e_col, forward-substitute
//     with unit L, back-substitute with U, write x into column col of dst.
//     Columns are solved in parallel with one scratch vector per worker.
//
// Behavior highlights:
//   - dst is written only after the factorization succeeded: on ErrSingular it is untouched.
//   - n == 0 is a successful no-op.
//
// Errors:
//   - ErrInvalidDimensions, ErrAllocation, ErrDimensionMismatch, ErrAliasedOutput.
//   - ErrSingular (pivot below the singular tolerance).
//
// Complexity:
//   - Time O(n^3), Space O(n^2) scratch + O(n) per worker.
func InverseInto(dst, a []float64, n int, opts ...Option) error {
	if err := validateSquareBuf(n, a, dst); err != nil {
		return matrixErrorf(opInverse, err)
	}
	if overlaps(dst, a) {
		return matrixErrorf(opInverse, ErrAliasedOutput)
	}
	if n == 0 {
		return nil
	}

	o := gatherOptions(opts...)
	start := time.Now()
	lu := make([]float64, n*n)
	copy(lu, a)
	piv := make([]int, n)
	for i := range piv {
		piv[i] = i
	}

	// Decomposition phase.
	for k := 0; k < n; k++ {
		if p := pivotRow(lu, n, k); p != k {
			swapRows(lu, n, k, p)
			piv[k], piv[p] = piv[p], piv[k]
		}
		diag := lu[k*n+k]
		if isSingularPivot(diag, o.singularTol) {
			traceKernel(&o, opInverse, start).Int("n", n).Int("singular_at", k).Msg("matrix kernel")
			return matrixErrorf(opInverse, ErrSingular)
		}

		rem := n - k - 1
		rk := lu[k*n : (k+1)*n]
		parallelFor(&o, rem, rem*rem, func(lo, hi int) {
			for i := k + 1 + lo; i < k+1+hi; i++ {
				ri := lu[i*n : (i+1)*n]
				ri[k] /= diag
				mult := ri[k]
				for j := k + 1; j < n; j++ {
					ri[j] -= mult * rk[j]
				}
			}
		})
	}

	// Solve phase: one column of the inverse per basis vector.
	chunks := parallelFor(&o, n, n*n*n, func(lo, hi int) {
		x := make([]float64, n)
		for col := lo; col < hi; col++ {
			for i := range x {
				x[i] = 0
				if piv[i] == col {
					x[i] = 1
				}
			}
			// Forward: L has an implicit unit diagonal.
			for i := 1; i < n; i++ {
				ri := lu[i*n : i*n+i]
				s := x[i]
				for j, l := range ri {
					s -= l * x[j]
				}
				x[i] = s
			}
			// Backward with U.
			for i := n - 1; i >= 0; i-- {
				ri := lu[i*n : (i+1)*n]
				s := x[i]
				for j := i + 1; j < n; j++ {
					s -= ri[j] * x[j]
				}
				x[i] = s / ri[i]
			}
			for i, v := range x {
				dst[i*n+col] = v
			}
		}
	})
	traceKernel(&o, opInverse, start).Int("n", n).Int("chunks", chunks).Msg("matrix kernel")

	return nil
}

// Determinant returns det(m) for a square *Dense. See Det.
// Errors: ErrNilMatrix, ErrNonSquare.
func Determinant(m *Dense, opts ...Option) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	return Det(m.data, m.r, opts...)
}

// Inverse computes A^{-1} into a fresh *Dense. See InverseInto.
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular.
func Inverse(m *Dense, opts ...Option) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	res, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err = InverseInto(res.data, m.data, m.r, opts...); err != nil {
		return nil, err
	}

	return res, nil
}

// InverseTo writes A^{-1} into the caller-supplied dst (same shape as m).
// dst is untouched on any error.
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrAliasedOutput, ErrSingular.
func InverseTo(dst, m *Dense, opts ...Option) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return matrixErrorf(opInverse, err)
	}
	if err := ValidateBinarySameShape(dst, m); err != nil {
		return matrixErrorf(opInverse, err)
	}

	return InverseInto(dst.data, m.data, m.r, opts...)
}
