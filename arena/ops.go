// SPDX-License-Identifier: MIT
// Package: arena
//
// Purpose:
//   - Handle-level surface over the matrix kernels: accessors, reductions,
//     fills and arithmetic that produce new handles.
//
// Policy:
//   - Operand lookups happen first; a bad handle fails before any kernel runs.
//   - Producing ops insert their result only after the kernel succeeded, so a
//     failed call never leaks a slot.
//   - Kernel options: arena defaults, then per-call options (last writer wins).

package arena

import (
	"slices"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/densekit/matrix"
)

const (
	opRows        = "Rows"
	opCols        = "Cols"
	opGet         = "Get"
	opSet         = "Set"
	opFill        = "Fill"
	opFillRandom  = "FillRandom"
	opMin         = "Min"
	opMax         = "Max"
	opToRows      = "ToRows"
	opAdd         = "Add"
	opAddInPlace  = "AddInPlace"
	opSub         = "Sub"
	opHadamard    = "Hadamard"
	opScale       = "Scale"
	opMul         = "Mul"
	opDeterminant = "Determinant"
	opInverse     = "Inverse"
	opInverseInto = "InverseInto"
	opTranspose   = "Transpose"
)

// kernelOpts merges arena defaults with per-call options without touching a.kernel.
func (a *Arena) kernelOpts(call []matrix.Option) []matrix.Option {
	if len(call) == 0 {
		return a.kernel
	}

	return append(slices.Clip(a.kernel), call...)
}

// lookup2 resolves two operand handles.
func (a *Arena) lookup2(x, y Handle) (*matrix.Dense, *matrix.Dense, error) {
	mx, err := a.lookup(x)
	if err != nil {
		return nil, nil, err
	}
	my, err := a.lookup(y)
	if err != nil {
		return nil, nil, err
	}

	return mx, my, nil
}

// produce inserts res or forwards err under tag.
func (a *Arena) produce(tag string, res *matrix.Dense, err error) (Handle, error) {
	if err != nil {
		return Handle{}, arenaErrorf(tag, err)
	}

	return a.insert(res), nil
}

// Rows returns the row count of h.
func (a *Arena) Rows(h Handle) (int, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opRows, err)
	}

	return m.Rows(), nil
}

// Cols returns the column count of h.
func (a *Arena) Cols(h Handle) (int, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opCols, err)
	}

	return m.Cols(), nil
}

// Get reads element (i, j). Errors: handle errors, matrix.ErrOutOfRange.
func (a *Arena) Get(h Handle, i, j int) (float64, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opGet, err)
	}
	v, err := m.At(i, j)
	if err != nil {
		return 0, arenaErrorf(opGet, err)
	}

	return v, nil
}

// Set writes element (i, j). Errors: handle errors, matrix.ErrOutOfRange.
func (a *Arena) Set(h Handle, i, j int, v float64) error {
	m, err := a.lookup(h)
	if err != nil {
		return arenaErrorf(opSet, err)
	}
	if err = m.Set(i, j, v); err != nil {
		return arenaErrorf(opSet, err)
	}

	return nil
}

// Fill sets every element of h to v.
func (a *Arena) Fill(h Handle, v float64, opts ...matrix.Option) error {
	m, err := a.lookup(h)
	if err != nil {
		return arenaErrorf(opFill, err)
	}
	if err = m.Fill(v, a.kernelOpts(opts)...); err != nil {
		return arenaErrorf(opFill, err)
	}

	return nil
}

// FillRandom fills h with uniform values in [lo, hi) drawn from rng
// (nil means the default stream). Errors: handle errors, matrix.ErrBadRange.
func (a *Arena) FillRandom(h Handle, lo, hi float64, rng *rand.Rand) error {
	m, err := a.lookup(h)
	if err != nil {
		return arenaErrorf(opFillRandom, err)
	}
	if err = m.FillRandom(lo, hi, rng); err != nil {
		return arenaErrorf(opFillRandom, err)
	}

	return nil
}

// Min returns the smallest element of h. Errors: handle errors, matrix.ErrEmpty.
func (a *Arena) Min(h Handle) (float64, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opMin, err)
	}
	v, err := m.Min()
	if err != nil {
		return 0, arenaErrorf(opMin, err)
	}

	return v, nil
}

// Max returns the largest element of h. Errors: handle errors, matrix.ErrEmpty.
func (a *Arena) Max(h Handle) (float64, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opMax, err)
	}
	v, err := m.Max()
	if err != nil {
		return 0, arenaErrorf(opMax, err)
	}

	return v, nil
}

// ToRows exports h as nested row slices (a copy).
func (a *Arena) ToRows(h Handle) ([][]float64, error) {
	m, err := a.lookup(h)
	if err != nil {
		return nil, arenaErrorf(opToRows, err)
	}

	return m.ToRows(), nil
}

// Add returns a new handle holding x + y.
func (a *Arena) Add(x, y Handle, opts ...matrix.Option) (Handle, error) {
	mx, my, err := a.lookup2(x, y)
	if err != nil {
		return Handle{}, arenaErrorf(opAdd, err)
	}
	res, err := matrix.Add(mx, my, a.kernelOpts(opts)...)

	return a.produce(opAdd, res, err)
}

// AddInPlace computes dst += src. dst and src may be the same handle.
func (a *Arena) AddInPlace(dst, src Handle, opts ...matrix.Option) error {
	md, ms, err := a.lookup2(dst, src)
	if err != nil {
		return arenaErrorf(opAddInPlace, err)
	}
	if err = matrix.AddTo(md, md, ms, a.kernelOpts(opts)...); err != nil {
		return arenaErrorf(opAddInPlace, err)
	}

	return nil
}

// Sub returns a new handle holding x - y.
func (a *Arena) Sub(x, y Handle, opts ...matrix.Option) (Handle, error) {
	mx, my, err := a.lookup2(x, y)
	if err != nil {
		return Handle{}, arenaErrorf(opSub, err)
	}
	res, err := matrix.Sub(mx, my, a.kernelOpts(opts)...)

	return a.produce(opSub, res, err)
}

// Hadamard returns a new handle holding the element-wise product x ⊙ y.
func (a *Arena) Hadamard(x, y Handle, opts ...matrix.Option) (Handle, error) {
	mx, my, err := a.lookup2(x, y)
	if err != nil {
		return Handle{}, arenaErrorf(opHadamard, err)
	}
	res, err := matrix.Hadamard(mx, my, a.kernelOpts(opts)...)

	return a.produce(opHadamard, res, err)
}

// Scale returns a new handle holding s * h.
func (a *Arena) Scale(h Handle, s float64, opts ...matrix.Option) (Handle, error) {
	m, err := a.lookup(h)
	if err != nil {
		return Handle{}, arenaErrorf(opScale, err)
	}
	res, err := matrix.Scale(m, s, a.kernelOpts(opts)...)

	return a.produce(opScale, res, err)
}

// Mul returns a new handle holding x × y.
func (a *Arena) Mul(x, y Handle, opts ...matrix.Option) (Handle, error) {
	mx, my, err := a.lookup2(x, y)
	if err != nil {
		return Handle{}, arenaErrorf(opMul, err)
	}
	res, err := matrix.Mul(mx, my, a.kernelOpts(opts)...)

	return a.produce(opMul, res, err)
}

// Determinant returns det(h); a singular matrix yields 0.
func (a *Arena) Determinant(h Handle, opts ...matrix.Option) (float64, error) {
	m, err := a.lookup(h)
	if err != nil {
		return 0, arenaErrorf(opDeterminant, err)
	}
	d, err := matrix.Determinant(m, a.kernelOpts(opts)...)
	if err != nil {
		return 0, arenaErrorf(opDeterminant, err)
	}

	return d, nil
}

// Inverse returns a new handle holding h⁻¹. Errors include matrix.ErrSingular.
func (a *Arena) Inverse(h Handle, opts ...matrix.Option) (Handle, error) {
	m, err := a.lookup(h)
	if err != nil {
		return Handle{}, arenaErrorf(opInverse, err)
	}
	res, err := matrix.Inverse(m, a.kernelOpts(opts)...)

	return a.produce(opInverse, res, err)
}

// InverseInto writes src⁻¹ into the existing dst handle (same shape).
// dst is untouched on error; dst == src fails with matrix.ErrAliasedOutput.
func (a *Arena) InverseInto(dst, src Handle, opts ...matrix.Option) error {
	md, ms, err := a.lookup2(dst, src)
	if err != nil {
		return arenaErrorf(opInverseInto, err)
	}
	if err = matrix.InverseTo(md, ms, a.kernelOpts(opts)...); err != nil {
		return arenaErrorf(opInverseInto, err)
	}

	return nil
}

// Transpose returns a new handle holding hᵀ.
func (a *Arena) Transpose(h Handle, opts ...matrix.Option) (Handle, error) {
	m, err := a.lookup(h)
	if err != nil {
		return Handle{}, arenaErrorf(opTranspose, err)
	}
	res, err := matrix.Transpose(m, a.kernelOpts(opts)...)

	return a.produce(opTranspose, res, err)
}
