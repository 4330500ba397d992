// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/densekit/matrix"
)

// Tolerance used for results that may differ in rounding only.
const tol = 1e-9

// forceParallel makes every threaded call fan out to four workers, whatever the size.
var forceParallel = []matrix.Option{
	matrix.WithThreads(true),
	matrix.WithWorkers(4),
	matrix.WithParallelThreshold(1),
}

// serial runs the kernel inline on the test goroutine.
var serial = []matrix.Option{matrix.WithThreads(false)}

// MustDense ALLOCATES an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFrom builds an r×c *Dense holding a copy of data.
func MustFrom(t testing.TB, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// RandomDense returns an r×c matrix with entries in [-1,1) from a seeded stream.
func RandomDense(t testing.TB, r, c int, seed uint64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	require.NoError(t, m.FillRandom(-1, 1, matrix.NewRNG(seed)))

	return m
}

// RandomBuf returns n values in [-1,1) from a seeded stream.
func RandomBuf(t testing.TB, n int, seed uint64) []float64 {
	t.Helper()
	buf := make([]float64, n)
	require.NoError(t, matrix.FillRandom(buf, -1, 1, matrix.NewRNG(seed)))

	return buf
}

// DiagDominant returns a random n×n matrix with |a_ii| > Σ|a_ij|, hence invertible.
func DiagDominant(t testing.TB, n int, seed uint64) *matrix.Dense {
	t.Helper()
	m := RandomDense(t, n, n, seed)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, float64(n)+1))
	}

	return m
}

// RequireClose fails unless got and want agree element-wise within tol.
func RequireClose(t testing.TB, want, got *matrix.Dense) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.True(t, ok, "want:\n%vgot:\n%v", want, got)
}

// toGonum copies m into a gonum *mat.Dense for oracle checks.
func toGonum(m *matrix.Dense) *mat.Dense {
	r, c := m.Shape()

	return mat.NewDense(r, c, m.RawData())
}
