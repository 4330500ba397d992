// Package matrix_test contains unit tests for multiplication, transpose and their backends.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas/gonum"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/densekit/matrix"
)

func TestMul_Known2x2(t *testing.T) {
	t.Parallel()
	dst := make([]float64, 4)
	require.NoError(t, matrix.MulInto(dst, []float64{1, 2, 3, 4}, []float64{5, 6, 7, 8}, 2, 2, 2))
	require.Equal(t, []float64{19, 22, 43, 50}, dst)
}

func TestMul_ClearsStaleOutput(t *testing.T) {
	t.Parallel()
	for _, b := range []matrix.Backend{matrix.BackendNaive, matrix.BackendBLAS} {
		dst := []float64{7, 7, 7, 7}
		require.NoError(t, matrix.MulInto(dst, []float64{1, 0, 0, 1}, []float64{1, 2, 3, 4}, 2, 2, 2, matrix.WithBackend(b)))
		require.Equal(t, []float64{1, 2, 3, 4}, dst, b.String())
	}
}

func TestMul_Rectangular(t *testing.T) {
	t.Parallel()
	a := MustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustFrom(t, 3, 1, 1, 0, -1)
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2}, {-2}}, c.ToRows())
}

func TestMul_DegenerateShapes(t *testing.T) {
	t.Parallel()
	for _, b := range []matrix.Backend{matrix.BackendNaive, matrix.BackendBLAS} {
		// inner dimension 0: result is a zero 2×3 matrix
		c, err := matrix.Mul(MustDense(t, 2, 0), MustDense(t, 0, 3), matrix.WithBackend(b))
		require.NoError(t, err)
		require.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, c.ToRows())

		c, err = matrix.Mul(MustDense(t, 0, 4), MustDense(t, 4, 2), matrix.WithBackend(b))
		require.NoError(t, err)
		require.Equal(t, 0, c.Rows())
		require.Equal(t, 2, c.Cols())
	}
}

func TestMul_Errors(t *testing.T) {
	t.Parallel()
	_, err := matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	a := []float64{1, 2, 3, 4}
	require.ErrorIs(t, matrix.MulInto(a, a, []float64{1, 0, 0, 1}, 2, 2, 2), matrix.ErrAliasedOutput)
	require.ErrorIs(t, matrix.MulInto(make([]float64, 3), a, a, 2, 2, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.MulInto(nil, nil, nil, -1, 2, 2), matrix.ErrInvalidDimensions)
}

func TestMulInto_RejectsCapLimitedAlias(t *testing.T) {
	t.Parallel()
	back := []float64{1, 2, 3, 4}
	for _, b := range []matrix.Backend{matrix.BackendNaive, matrix.BackendBLAS} {
		err := matrix.MulInto(back[0:4:4], back[0:4], []float64{5, 6, 7, 8}, 2, 2, 2, matrix.WithBackend(b))
		require.ErrorIs(t, err, matrix.ErrAliasedOutput, b.String())
		require.Equal(t, []float64{1, 2, 3, 4}, back, "operand must be untouched")
	}

	rhs := []float64{5, 6, 7, 8, 0, 0}
	require.ErrorIs(t, matrix.MulInto(rhs[2:6:6], []float64{1, 0, 0, 1}, rhs[0:4], 2, 2, 2), matrix.ErrAliasedOutput)

	inv := []float64{4, 7, 2, 6}
	require.ErrorIs(t, matrix.InverseInto(inv[0:4:4], inv, 2), matrix.ErrAliasedOutput)
}

func TestMul_NoZeroSkip(t *testing.T) {
	t.Parallel()
	dst := make([]float64, 1)
	require.NoError(t, matrix.MulInto(dst, []float64{0}, []float64{math.Inf(1)}, 1, 1, 1))
	require.True(t, math.IsNaN(dst[0]), "0·Inf must stay NaN")
}

func TestMul_ThreadedBitIdentical(t *testing.T) {
	t.Parallel()
	for _, sh := range [][3]int{{1, 5, 3}, {17, 9, 13}, {64, 64, 64}} {
		m, n, p := sh[0], sh[1], sh[2]
		t.Run(fmt.Sprintf("%dx%dx%d", m, n, p), func(t *testing.T) {
			a := RandomBuf(t, m*n, 20)
			b := RandomBuf(t, n*p, 21)
			s := make([]float64, m*p)
			q := make([]float64, m*p)
			require.NoError(t, matrix.MulInto(s, a, b, m, n, p, serial...))
			require.NoError(t, matrix.MulInto(q, a, b, m, n, p, forceParallel...))
			require.Equal(t, s, q)
		})
	}
}

func TestMul_BLASAgreesWithNaiveAndGonum(t *testing.T) {
	matrix.UseBLAS(gonum.Implementation{})
	a := RandomDense(t, 31, 17, 30)
	b := RandomDense(t, 17, 23, 31)

	naive, err := matrix.Mul(a, b)
	require.NoError(t, err)
	viaBLAS, err := matrix.Mul(a, b, append(forceParallel, matrix.WithBackend(matrix.BackendBLAS))...)
	require.NoError(t, err)
	RequireClose(t, naive, viaBLAS)

	var want mat.Dense
	want.Mul(toGonum(a), toGonum(b))
	require.True(t, mat.EqualApprox(&want, toGonum(naive), tol))

	matrix.UseBLAS(nil) // restores the same default
	again, err := matrix.Mul(a, b, matrix.WithBackend(matrix.BackendBLAS))
	require.NoError(t, err)
	RequireClose(t, naive, again)
}

func TestTranspose(t *testing.T) {
	t.Parallel()
	m := MustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	tr, err := matrix.Transpose(m, forceParallel...)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr.ToRows())

	big := RandomDense(t, 40, 25, 40)
	tt, err := matrix.T(big, forceParallel...)
	require.NoError(t, err)
	back, err := matrix.Transpose(tt, serial...)
	require.NoError(t, err)
	require.Equal(t, big.RawData(), back.RawData())

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAliases(t *testing.T) {
	t.Parallel()
	a := MustFrom(t, 2, 2, 1, 2, 3, 4)
	b := MustFrom(t, 2, 2, 5, 6, 7, 8)
	s, err := matrix.Sum(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 8, 10, 12}, s.RawData())
	d, err := matrix.Diff(b, a)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 4, 4, 4}, d.RawData())
	p, err := matrix.Product(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{19, 22, 43, 50}, p.RawData())
}
