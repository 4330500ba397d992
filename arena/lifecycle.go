// SPDX-License-Identifier: MIT
// Package: arena
//
// Purpose:
//   - Slot bookkeeping: insert, lookup, Release, Live.
//   - Constructors that place a new matrix in the arena: Create,
//     CreateFromBuffer, CreateFromBytes.
//
// Generations:
//   - A fresh slot starts at generation 1. Release bumps the generation
//     (skipping 0 on wrap), so a handle minted before Release never matches again.

package arena

import "github.com/katalvlaran/densekit/matrix"

const (
	opCreate     = "Create"
	opFromBuffer = "CreateFromBuffer"
	opFromBytes  = "CreateFromBytes"
	opRelease    = "Release"
)

// insert stores m in a free slot (or a new one) and mints its handle.
func (a *Arena) insert(m *matrix.Dense) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{gen: 1})
	}
	s := &a.slots[idx]
	s.m = m
	s.live = true
	a.live++

	h := Handle{index: idx, gen: s.gen}
	a.log.Debug().Stringer("handle", h).Int("rows", m.Rows()).Int("cols", m.Cols()).Int("live", a.live).Msg("arena create")

	return h
}

// resolve checks h against the slot table. Callers hold a.mu.
func (a *Arena) resolve(h Handle) (*slot, error) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil, ErrInvalidHandle
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, ErrStaleHandle
	}

	return s, nil
}

// lookup returns the matrix behind h under the read lock.
func (a *Arena) lookup(h Handle) (*matrix.Dense, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, err := a.resolve(h)
	if err != nil {
		return nil, err
	}

	return s.m, nil
}

// Create places a zero-filled rows×cols matrix in the arena.
// Errors: matrix.ErrInvalidDimensions, matrix.ErrAllocation.
func (a *Arena) Create(rows, cols int) (Handle, error) {
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return Handle{}, arenaErrorf(opCreate, err)
	}

	return a.insert(m), nil
}

// CreateFromBuffer copies a row-major buffer into a new arena matrix.
// The arena never retains data.
// Errors: matrix.ErrInvalidDimensions, matrix.ErrDimensionMismatch.
func (a *Arena) CreateFromBuffer(rows, cols int, data []float64) (Handle, error) {
	m, err := matrix.NewDenseFrom(rows, cols, data)
	if err != nil {
		return Handle{}, arenaErrorf(opFromBuffer, err)
	}

	return a.insert(m), nil
}

// CreateFromBytes decodes little-endian float64s into a new arena matrix.
// Errors: matrix.ErrInvalidDimensions, matrix.ErrDimensionMismatch.
func (a *Arena) CreateFromBytes(b []byte, rows, cols int) (Handle, error) {
	m, err := matrix.NewDenseFromBytes(b, rows, cols)
	if err != nil {
		return Handle{}, arenaErrorf(opFromBytes, err)
	}

	return a.insert(m), nil
}

// Release frees the matrix behind h. Every later use of h, including a
// second Release, fails with ErrStaleHandle.
func (a *Arena) Release(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.resolve(h)
	if err != nil {
		return arenaErrorf(opRelease, err)
	}
	s.m = nil
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, h.index)
	a.live--
	a.log.Debug().Stringer("handle", h).Int("live", a.live).Msg("arena release")

	return nil
}

// Live returns the number of matrices currently held.
func (a *Arena) Live() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.live
}
