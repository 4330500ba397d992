// SPDX-License-Identifier: MIT
// Package matrix provides the dense arithmetic facades over *Dense and the
// flat multiply kernel: element-wise Add/Sub/Hadamard/Scale, in-place AddTo,
// matrix multiplication and transpose. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Map every *Dense facade 1:1 onto its flat-buffer kernel.
//   - Define operation tags and shared constants for error reporting and tracing.
//
// Notes:
//   - Determinant and inversion live in impl_lu.go; the BLAS path in impl_mul_blas.go.
//   - Facades validate shapes before allocating, so a mismatch never produces a result.

package matrix

import (
	"fmt"
	"time"
)

// Operation name constants for unified error wrapping and trace events.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opHadamard  = "Hadamard"
	opScale     = "Scale"
	opAddTo     = "AddTo"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opDet       = "Det"
	opInverse   = "Inverse"
	opIdentity  = "Identity"
	opAllClose  = "AllClose"
	opMin       = "Min"
	opMax       = "Max"
	opFill      = "Fill"
	opRandom    = "FillRandom"
)

// matrixErrorf wraps err with an operation tag, preserving the cause via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseBinary validates, allocates and runs one element-wise kernel.
func denseBinary(tag string, op ewOp, a, b *Dense, opts []Option) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	res, err := NewDense(a.r, a.c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	if err = binaryInto(tag, op, res.data, a.data, b.data, opts); err != nil {
		return nil, err
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: Allocate C and run AddInto over the flat buffers.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch). No result is allocated.
//
// Complexity:
//   - Time O(r*c), Space O(r*c). Bandwidth-bound.
func Add(a, b *Dense, opts ...Option) (*Dense, error) {
	return denseBinary(opAdd, ewAdd, a, b, opts)
}

// Sub computes the element-wise difference C = A - B. Same contract as Add.
func Sub(a, b *Dense, opts ...Option) (*Dense, error) {
	return denseBinary(opSub, ewSub, a, b, opts)
}

// Hadamard computes the element-wise product (a ⊙ b). Same contract as Add.
func Hadamard(a, b *Dense, opts ...Option) (*Dense, error) {
	return denseBinary(opHadamard, ewMul, a, b, opts)
}

// AddTo writes A + B into the existing matrix dst (in-place add).
// dst may be a or b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch; dst is untouched on error.
func AddTo(dst, a, b *Dense, opts ...Option) error {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return matrixErrorf(opAddTo, err)
	}
	if err := ValidateBinarySameShape(dst, a); err != nil {
		return matrixErrorf(opAddTo, err)
	}

	return binaryInto(opAddTo, ewAdd, dst.data, a.data, b.data, opts)
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Scale(m *Dense, alpha float64, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if err = ScaleInto(res.data, m.data, alpha, opts...); err != nil {
		return nil, err
	}

	return res, nil
}

// MulInto computes dst = A × B for row-major A (m×n), B (n×p), dst (m×p).
// Implementation:
//   - Stage 1: validate dims, buffer lengths and that dst does not overlap A or B.
//   - Stage 2: dispatch on the backend; naive is i→k→j accumulating into row i of dst.
//   - Stage 3: each row block clears its rows of dst before accumulating.
//
// Behavior highlights:
//   - Parallel only across row blocks, never inside the multiply-add loop.
//   - No zero-skipping: 0·Inf yields NaN exactly as IEEE-754 prescribes.
//
// Errors:
//   - ErrInvalidDimensions, ErrAllocation (bad m,n,p).
//   - ErrDimensionMismatch (buffer lengths disagree with m,n,p).
//   - ErrAliasedOutput (dst shares storage with A or B).
//
// Complexity:
//   - Time O(m*n*p), Space O(1) extra.
func MulInto(dst, a, b []float64, m, n, p int, opts ...Option) error {
	for _, s := range [][2]int{{m, n}, {n, p}, {m, p}} {
		if err := validateShape(s[0], s[1]); err != nil {
			return matrixErrorf(opMul, err)
		}
	}
	if len(a) != m*n || len(b) != n*p || len(dst) != m*p {
		return matrixErrorf(opMul, ErrDimensionMismatch)
	}
	if overlaps(dst, a) || overlaps(dst, b) {
		return matrixErrorf(opMul, ErrAliasedOutput)
	}

	o := gatherOptions(opts...)
	start := time.Now()
	var chunks int
	switch o.backend {
	case BackendBLAS:
		chunks = mulBLAS(&o, dst, a, b, m, n, p)
	default:
		chunks = mulNaive(&o, dst, a, b, m, n, p)
	}
	traceKernel(&o, opMul, start).
		Str("backend", o.backend.String()).
		Int("m", m).Int("n", n).Int("p", p).
		Int("chunks", chunks).
		Msg("matrix kernel")

	return nil
}

// mulNaive is the i-k-j kernel parallelized over rows of dst.
func mulNaive(o *Options, dst, a, b []float64, m, n, p int) int {
	return parallelFor(o, m, m*n*p, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ci := dst[i*p : (i+1)*p]
			clear(ci) // result rows start at zero before accumulation
			ai := a[i*n : (i+1)*n]
			for k, av := range ai {
				bk := b[k*p : (k+1)*p]
				for j, bv := range bk {
					ci[j] += av * bv
				}
			}
		}
	})
}

// Mul performs standard matrix multiplication C = A × B.
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Allocate C (r × c) and run MulInto.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense, opts ...Option) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = MulInto(res.data, a.data, b.data, a.r, a.c, b.c, opts...); err != nil {
		return nil, err
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Rows of the input are distributed across workers; each worker writes a
// disjoint set of columns of the result.
// Complexity: O(r*c).
func Transpose(m *Dense, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	o := gatherOptions(opts...)
	start := time.Now()
	r, c := m.r, m.c
	chunks := parallelFor(&o, r, r*c, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < c; j++ {
				res.data[j*r+i] = m.data[i*c+j]
			}
		}
	})
	traceKernel(&o, opTranspose, start).Int("rows", r).Int("cols", c).Int("chunks", chunks).Msg("matrix kernel")

	return res, nil
}
