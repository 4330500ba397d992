// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in option constructors.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with matrixErrorf("Op", ErrX) at the
// facade; callers still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/allocation -> dimension mismatch -> aliasing -> numeric outcome (singular).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	// Zero rows or zero columns are legal (empty matrices).
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrAllocation indicates the requested shape cannot be backed by a single buffer
	// (rows*cols overflows the addressable element count). Nothing is allocated.
	ErrAllocation = errors.New("matrix: cannot allocate buffer for shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, Mul where a.Cols != b.Rows, or a flat
	// buffer whose length disagrees with the declared shape.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrAliasedOutput is returned when an output buffer shares storage with an
	// input of a kernel that reads operands after writing (Mul, Inverse).
	ErrAliasedOutput = errors.New("matrix: output aliases an input")

	// ErrSingular is returned by inversion when a pivot below the singular
	// tolerance is met during LU factorization. Determinant never returns it.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrEmpty is returned by reductions (Min/Max) over a zero-length buffer.
	ErrEmpty = errors.New("matrix: empty buffer")

	// ErrBadRange is returned by FillRandom when bounds are non-finite or lo > hi.
	ErrBadRange = errors.New("matrix: invalid random range")
)
