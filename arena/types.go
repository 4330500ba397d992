// SPDX-License-Identifier: MIT
// Package arena defines an owned-resource table of *matrix.Dense values
// referenced by generation-checked handles, with explicit Create and Release.
//
// All arena APIs take a single sync.RWMutex internally: lookups hold the read
// lock, create/release hold the write lock. Kernels run after the lookup,
// outside the lock, so long multiplications never block other handles.
//
// This file declares Handle, Arena, Option, sentinel errors, and the New
// constructor.
//
// Errors:
//
//	ErrInvalidHandle - zero handle or an index the arena never issued.
//	ErrStaleHandle   - handle was released (its slot generation moved on).
package arena

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/densekit/matrix"
)

// Sentinel errors for arena operations.
var (
	// ErrInvalidHandle indicates a zero Handle or one that does not name any slot.
	ErrInvalidHandle = errors.New("arena: invalid handle")

	// ErrStaleHandle indicates the handle's matrix was released.
	ErrStaleHandle = errors.New("arena: stale handle")
)

// Handle names one live matrix inside an Arena.
//
// The zero Handle is never valid. A handle stays valid until Release; after
// that every use returns ErrStaleHandle even when the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// String renders the handle as index@generation for logs.
func (h Handle) String() string { return fmt.Sprintf("%d@%d", h.index, h.gen) }

// slot holds one matrix and the generation of the handle that owns it.
type slot struct {
	m    *matrix.Dense
	gen  uint32
	live bool
}

// Arena owns matrices created through it. Safe for concurrent use; mutating
// the same handle from two goroutines at once is the caller's race to avoid.
type Arena struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32 // released slot indices, reused LIFO
	live  int

	kernel []matrix.Option // defaults for every kernel call
	log    zerolog.Logger
}

// Option configures an Arena before use.
type Option func(a *Arena)

// WithKernelOptions sets matrix options applied to every kernel call made
// through the arena. Per-call options are appended after them, so they win.
func WithKernelOptions(opts ...matrix.Option) Option {
	return func(a *Arena) { a.kernel = append(a.kernel, opts...) }
}

// WithLogger installs a logger for handle lifecycle events (Debug level).
// Kernel trace events still require matrix.WithLogger in the kernel options.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Arena) { a.log = l }
}

// New creates an empty Arena.
func New(opts ...Option) *Arena {
	a := &Arena{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// arenaErrorf wraps err with an operation tag, preserving it via %w.
func arenaErrorf(tag string, err error) error {
	return fmt.Errorf("arena.%s: %w", tag, err)
}
