// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.
//   - Options passed to a facade reach the kernel unchanged.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions/ErrAllocation.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: Use as the reference for Mul(A, Inverse(A)).
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Handy to preallocate the dst of AddTo/InverseTo.
func ZerosLike(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.r, m.c)
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike(m *Dense) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.r)
}

// ---------- Linear Algebra aliases (facades map 1:1 to kernels) ----------

// Sum is an alias for Add: element-wise a + b.
func Sum(a, b *Dense, opts ...Option) (*Dense, error) { return Add(a, b, opts...) }

// Diff is an alias for Sub: element-wise a − b.
func Diff(a, b *Dense, opts ...Option) (*Dense, error) { return Sub(a, b, opts...) }

// Product is an alias for Mul: matrix product a × b.
// Complexity: O(r*n*c).
func Product(a, b *Dense, opts ...Option) (*Dense, error) { return Mul(a, b, opts...) }

// T is an alias for Transpose: returns mᵀ.
func T(m *Dense, opts ...Option) (*Dense, error) { return Transpose(m, opts...) }

// InverseOf is an alias for Inverse: returns A^{-1} (partial pivoting).
// Complexity: O(n^3).
func InverseOf(m *Dense, opts ...Option) (*Dense, error) { return Inverse(m, opts...) }
