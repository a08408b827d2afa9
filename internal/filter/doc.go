// Package filter implements the numeric core behind the public hybrid API:
// 2D Gaussian kernel generation and direct, zero-padded 2D cross-correlation.
//
// Samples are float64, row-major, with channels interleaved. Kernels are
// row-major float64 slices with explicit height and width. Nothing here
// validates its inputs; the root package checks every precondition before
// calling in.
//
// Correlation is the literal sliding-window dot product. There is no FFT path.
package filter
