// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for kernel dispatch and numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Per-call: every kernel accepts ...Option, so threading is selectable per call.
//
// Notes:
//   - Threading never changes numeric results of the naive kernels; it only changes
//     how disjoint output ranges are scheduled.
//   - The logger is a hook, not a side effect: the default is zerolog.Nop().
package matrix

import (
	"math"
	"runtime"

	"github.com/rs/zerolog"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultThreaded enables fork-join dispatch for kernels whose work crosses
	// the parallel threshold.
	DefaultThreaded = true

	// DefaultWorkers of 0 means "resolve to runtime.GOMAXPROCS(0) at call time".
	DefaultWorkers = 0

	// DefaultParallelThreshold is the minimum estimated work (elements touched or
	// multiply-adds) before any goroutine is spawned. Below it, kernels run inline.
	DefaultParallelThreshold = 1 << 14

	// DefaultBackend selects the i-k-j pure-Go multiply.
	DefaultBackend = BackendNaive

	// DefaultSingularTolerance is the absolute pivot magnitude below which a
	// matrix is treated as singular by Det (returns 0) and Inverse (ErrSingular).
	DefaultSingularTolerance = 1e-12
)

// Backend selects the matrix-multiply strategy.
type Backend int

const (
	// BackendNaive is the cache-friendly i-k-j loop, parallel over row blocks.
	BackendNaive Backend = iota
	// BackendBLAS delegates to blas64.Gemm (gonum by default, see UseBLAS).
	BackendBLAS
)

// String returns a stable lowercase name used in trace events.
func (b Backend) String() string {
	switch b {
	case BackendNaive:
		return "naive"
	case BackendBLAS:
		return "blas"
	default:
		return "unknown"
	}
}

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid   = "matrix: WithWorkers: workers must be >= 0"
	panicThresholdInvalid = "matrix: WithParallelThreshold: threshold must be >= 1"
	panicBackendInvalid   = "matrix: WithBackend: unknown backend"
	panicTolInvalid       = "matrix: WithSingularTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and internally resolve them via gatherOptions.
type Options struct {
	// dispatch policy
	threaded  bool // DefaultThreaded
	workers   int  // DefaultWorkers; resolved to GOMAXPROCS in finalizeOptions
	threshold int  // DefaultParallelThreshold
	backend   Backend

	// numeric policy
	singularTol float64 // DefaultSingularTolerance

	// trace hook
	logger zerolog.Logger // zerolog.Nop() unless WithLogger
}

// ---------- Constructors (WithX) ----------

// WithThreads is the per-call threading flag.
// Implementation:
//   - Stage 1: store the flag; true enables fork-join above the threshold.
//
// Behavior highlights:
//   - false forces inline execution (deterministic scheduling, useful in tests).
//   - Results of the naive kernels are bit-identical in both modes.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithThreads(enabled bool) Option {
	return func(o *Options) { o.threaded = enabled }
}

// WithWorkers caps the number of goroutines used by a parallel region.
// Zero restores the default (GOMAXPROCS). Negative values panic.
//
// AI-Hints:
//   - Use WithWorkers(1) to keep the parallel code path but run it on one goroutine.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithParallelThreshold sets the minimum estimated work before dispatching goroutines.
// Implementation:
//   - Stage 1: validate threshold >= 1.
//   - Stage 2: return a setter.
//
// Notes:
//   - Work is counted in elements for elementwise kernels and in multiply-adds
//     for Mul, elimination and triangular solves.
//   - WithParallelThreshold(1) forces every threaded call to fan out (tests use it).
func WithParallelThreshold(n int) Option {
	if n < 1 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = n }
}

// WithBackend selects the multiply strategy (BackendNaive or BackendBLAS).
func WithBackend(b Backend) Option {
	if b != BackendNaive && b != BackendBLAS {
		panic(panicBackendInvalid)
	}

	return func(o *Options) { o.backend = b }
}

// WithSingularTolerance sets the absolute pivot threshold used by Det and Inverse.
// Implementation:
//   - Stage 1: validate tol is finite and >= 0.
//   - Stage 2: return a setter.
//
// Notes:
//   - tol == 0 only rejects exact zero pivots.
func WithSingularTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.singularTol = tol }
}

// WithLogger installs a structured trace hook. Each kernel call emits one
// Debug event (op, shape, threading, workers, backend, elapsed).
//
// AI-Hints:
//   - Pass a logger at Info level or above to keep the hook installed but silent.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against documented defaults.
// Exposed so callers (e.g. the arena) can validate a configuration once.
// Complexity: O(k) for k=len(opts).
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Threaded reports the resolved threading flag.
func (o Options) Threaded() bool { return o.threaded }

// Workers reports the resolved worker cap (always >= 1 after resolution).
func (o Options) Workers() int { return o.workers }

// Backend reports the resolved multiply backend.
func (o Options) Backend() Backend { return o.backend }

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		threaded:    DefaultThreaded,
		workers:     DefaultWorkers,
		threshold:   DefaultParallelThreshold,
		backend:     DefaultBackend,
		singularTol: DefaultSingularTolerance,
		logger:      zerolog.Nop(),
	}
}

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants. This is the canonical internal entry.
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: finalizeOptions resolves the worker count.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	finalizeOptions(&o)

	return o
}

// finalizeOptions enforces derived invariants in exactly one place.
//   - workers == 0 resolves to GOMAXPROCS.
//   - threaded == false collapses workers to 1 so dispatch never forks.
func finalizeOptions(o *Options) {
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if !o.threaded {
		o.workers = 1
	}
}
