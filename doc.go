// Package densekit is a small dense-matrix arithmetic backend: element-wise
// arithmetic, matrix multiplication, determinant and inversion over row-major
// float64 buffers, with optional multi-threaded execution.
//
// What is inside?
//
//	matrix/  flat-buffer kernels, the owned Dense type, options, BLAS backend
//	arena/   handle arena of Dense matrices with explicit create/release
//
// Highlights:
//
//   - LU with partial pivoting for Det and Inverse (singular tolerance 1e-12)
//   - Per-call threading flag; threaded and serial results are bit-identical
//   - Optional gonum BLAS backend for multiplication
//   - Structured trace hook (zerolog), silent by default
//
// Quick example:
//
//	a, _ := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
//	b, _ := matrix.NewDenseFrom(2, 2, []float64{5, 6, 7, 8})
//	c, _ := matrix.Mul(a, b) // [19, 22] [43, 50]
//
//	go get github.com/katalvlaran/densekit
package densekit
