// Package matrix offers dense row-major float64 kernels and the Dense matrix type.
//
// The matrix package provides:
//
//   - Flat-buffer kernels (AddInto, SubInto, HadamardInto, ScaleInto, MulInto,
//     Det, InverseInto, Min, Max, Fill, FillRandom) that a binding layer can
//     call with its own []float64 buffers plus dimensions.
//   - Dense, an owned r×c matrix with safe accessors and facades (Add, Sub,
//     Hadamard, Scale, AddTo, Mul, Determinant, Inverse, InverseTo, Transpose).
//   - Two multiply backends: the i-k-j loop (default) and blas64.Gemm
//     (gonum's pure-Go BLAS unless UseBLAS registers another).
//
// Every kernel takes per-call functional options. WithThreads(false) runs the
// call on the caller's goroutine; otherwise work above the parallel threshold
// is split into disjoint contiguous ranges, one goroutine each. Splitting never
// changes the arithmetic of the naive kernels, so serial and threaded results
// are bit-identical.
//
// Determinant and inverse use partial pivoting with an absolute singular
// tolerance of 1e-12: Det returns 0 for a singular input, InverseInto returns
// ErrSingular and leaves its output untouched.
//
// See the examples in this package and the densekit examples/ program for usage patterns.
package matrix
