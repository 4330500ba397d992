// Package matrix_test covers the element-wise kernels and their Dense facades.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densekit/matrix"
)

func TestAddSubRoundTrip(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 7, 64} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := RandomDense(t, n, n+1, 1)
			b := RandomDense(t, n, n+1, 2)
			s, err := matrix.Add(a, b)
			require.NoError(t, err)
			back, err := matrix.Sub(s, b)
			require.NoError(t, err)
			RequireClose(t, a, back)
		})
	}
}

func TestHadamard_ElementWise(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 33} {
		a := RandomBuf(t, n, 3)
		b := RandomBuf(t, n, 4)
		dst := make([]float64, n)
		require.NoError(t, matrix.HadamardInto(dst, a, b))
		for i := range dst {
			require.Equal(t, a[i]*b[i], dst[i])
		}
	}
}

func TestScale_ZeroKeepsShape(t *testing.T) {
	t.Parallel()
	a := RandomDense(t, 3, 2, 5)
	z, err := matrix.Scale(a, 0)
	require.NoError(t, err)
	r, c := z.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	for _, v := range z.RawData() {
		require.Zero(t, v)
	}
}

func TestElementwise_Mismatch(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 2, 3)
	b := MustDense(t, 3, 2)
	res, err := matrix.Add(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Nil(t, res)
	_, err = matrix.Hadamard(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	dst := []float64{9, 9}
	require.ErrorIs(t, matrix.SubInto(dst, []float64{1, 2}, []float64{1}), matrix.ErrDimensionMismatch)
	require.Equal(t, []float64{9, 9}, dst, "dst must be untouched")
	require.ErrorIs(t, matrix.ScaleInto(dst, []float64{1}, 2), matrix.ErrDimensionMismatch)
}

func TestAddTo_InPlace(t *testing.T) {
	t.Parallel()
	a := MustFrom(t, 1, 3, 1, 2, 3)
	b := MustFrom(t, 1, 3, 10, 20, 30)
	require.NoError(t, matrix.AddTo(a, a, b))
	require.Equal(t, []float64{11, 22, 33}, a.RawData())

	require.ErrorIs(t, matrix.AddTo(MustDense(t, 1, 2), a, b), matrix.ErrDimensionMismatch)
}

func TestElementwise_IEEEPropagation(t *testing.T) {
	t.Parallel()
	a := []float64{math.Inf(1), math.NaN(), 1}
	b := []float64{math.Inf(-1), 0, 0}
	dst := make([]float64, 3)
	require.NoError(t, matrix.AddInto(dst, a, b))
	require.True(t, math.IsNaN(dst[0]))
	require.True(t, math.IsNaN(dst[1]))
	require.Equal(t, 1.0, dst[2])
}

func TestElementwise_ThreadedMatchesSerial(t *testing.T) {
	t.Parallel()
	const n = 1000
	a := RandomBuf(t, n, 10)
	b := RandomBuf(t, n, 11)
	for name, kernel := range map[string]func(dst, a, b []float64, opts ...matrix.Option) error{
		"add": matrix.AddInto, "sub": matrix.SubInto, "hadamard": matrix.HadamardInto,
	} {
		s := make([]float64, n)
		p := make([]float64, n)
		require.NoError(t, kernel(s, a, b, serial...), name)
		require.NoError(t, kernel(p, a, b, forceParallel...), name)
		require.Equal(t, s, p, name)
	}
	s := make([]float64, n)
	p := make([]float64, n)
	require.NoError(t, matrix.ScaleInto(s, a, 3.25, serial...))
	require.NoError(t, matrix.ScaleInto(p, a, 3.25, forceParallel...))
	require.Equal(t, s, p)
}

func TestAllClose(t *testing.T) {
	t.Parallel()
	a := MustFrom(t, 1, 2, 1, 2)
	b := MustFrom(t, 1, 2, 1+1e-12, 2)
	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(MustFrom(t, 1, 1, math.NaN()), MustFrom(t, 1, 1, math.NaN()), 1, 1)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
