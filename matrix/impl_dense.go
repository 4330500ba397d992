// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide the owned matrix handle: a row-major buffer with the index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Copy-in constructors for foreign buffers ([]float64 and little-endian bytes).
//
// AI-Hints:
//   - Hot kernels never go through At/Set; they operate on the flat data slice.
//   - Use NewDenseFrom to take a snapshot of a caller buffer; the Dense never aliases it.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); ToRows/Bytes: O(r*c).

package matrix

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"               // method tag used in error wrappers
	ctxSet       = "Set"              // method tag used in error wrappers
	ctxNew       = "NewDense"         // ctor tag
	ctxNewFrom   = "NewDenseFrom"     // ctor tag
	ctxFromBytes = "NewDenseFromBytes" // ctor tag
)

// float64Size is the width of one element in bytes (buffers and addresses).
const float64Size = 8

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols), both >= 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0 and that rows*cols is addressable.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - 0×N and N×0 are legal and carry a zero-length buffer.
//   - No panics on user errors; returns sentinel errors.
//
// Errors:
//   - ErrInvalidDimensions (negative dimension).
//   - ErrAllocation (rows*cols overflow).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, matrixErrorf(ctxNew, err)
	}

	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
// Implementation:
//   - Stage 1: validate shape; require len(data) == rows*cols.
//   - Stage 2: allocate and copy; the caller keeps ownership of data.
//
// Errors:
//   - ErrInvalidDimensions, ErrAllocation, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, matrixErrorf(ctxNewFrom, err)
	}
	if len(data) != rows*cols {
		return nil, matrixErrorf(ctxNewFrom, ErrDimensionMismatch)
	}
	buf := make([]float64, rows*cols)
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewDenseFromBytes decodes rows*cols little-endian IEEE-754 doubles.
// Implementation:
//   - Stage 1: validate shape; require len(b) == 8*rows*cols.
//   - Stage 2: decode element by element into a fresh buffer.
//
// Notes:
//   - This is the copy-in path for binding layers that hold raw byte buffers.
//
// Errors:
//   - ErrInvalidDimensions, ErrAllocation, ErrDimensionMismatch.
func NewDenseFromBytes(b []byte, rows, cols int) (*Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, matrixErrorf(ctxFromBytes, err)
	}
	n := rows * cols
	if len(b) != n*float64Size {
		return nil, matrixErrorf(ctxFromBytes, ErrDimensionMismatch)
	}
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*float64Size:]))
	}

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len returns rows*cols.
func (m *Dense) Len() int { return len(m.data) }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// NaN and ±Inf are stored as given; the kernels propagate them.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same shape).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// RawData returns a copy of the row-major buffer.
func (m *Dense) RawData() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// ToRows exports the matrix as one freshly allocated slice per row.
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]float64, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Bytes encodes the buffer as little-endian IEEE-754 doubles (inverse of NewDenseFromBytes).
// Complexity: O(r*c).
func (m *Dense) Bytes() []byte {
	out := make([]byte, len(m.data)*float64Size)
	for i, v := range m.data {
		binary.LittleEndian.PutUint64(out[i*float64Size:], math.Float64bits(v))
	}

	return out
}

// String is a human-readable dump of rows for diagnostics.
// Not for hot paths; intended for logs and debugging.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
