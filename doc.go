// Package hybrid provides spatial-domain 2D correlation and convolution,
// Gaussian frequency filters, and hybrid image composition for Go.
//
// # Overview
//
// A hybrid image combines the low-frequency content of one image with the
// high-frequency content of another. Seen from close up the detail of the
// second image dominates; from far away only the blurred structure of the
// first remains.
//
// # Quick Start
//
//	import "github.com/gogpu/hybrid"
//
//	cfg := hybrid.Config{
//	    First:       hybrid.FilterSpec{Kind: hybrid.FilterLow, Sigma: 7, Size: 29},
//	    Second:      hybrid.FilterSpec{Kind: hybrid.FilterHigh, Sigma: 4, Size: 21},
//	    MixinRatio:  0.5,
//	    ScaleFactor: 2,
//	}
//	out, err := hybrid.MakeHybrid(left, right, cfg)
//
// # Images
//
// [Image] is a sealed interface over two representations: [*ByteImage] with
// 8-bit samples and [*FloatImage] with float64 samples. Both store
// height x width x channels samples, row-major with channels interleaved.
// A single channel is a grayscale image. [Normalize] and [Quantize] convert
// explicitly between the two.
//
// # Boundaries
//
// Correlation is computed directly from its definition with zero padding:
// samples outside the image count as zero, so borders darken under a blur.
// There is no FFT path.
//
// # Errors
//
// Every operation validates its inputs first and returns a sentinel error
// such as [ErrEvenKernel] or [ErrShapeMismatch], wrapped with context.
// Use [errors.Is] to test for them.
//
// # Performance
//
// Filtering is sequential by default. [WithWorkers] splits the output rows
// across goroutines without changing the result.
package hybrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
