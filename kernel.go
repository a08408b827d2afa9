package hybrid

import (
	"fmt"
	"math"

	"github.com/gogpu/hybrid/internal/filter"
)

// Kernel is an immutable 2D grid of floating-point weights, row-major.
//
// Kernels of any positive size can be constructed, but correlation and
// convolution require odd height and width so the center cell is unambiguous.
type Kernel struct {
	height int
	width  int
	data   []float64
}

// NewKernel creates a height x width kernel from row-major weights.
// The data is copied.
func NewKernel(height, width int, data []float64) (*Kernel, error) {
	if height <= 0 || width <= 0 || len(data) != height*width {
		return nil, fmt.Errorf("%w: kernel %dx%d with %d weights", ErrInvalidDimensions, height, width, len(data))
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return &Kernel{height: height, width: width, data: cp}, nil
}

// GaussianKernel returns a normalized height x width isotropic Gaussian
// kernel with spread sigma.
//
// Weight (y, x) is exp(-0.5 * (dx² + dy²) / sigma²) with dx, dy the signed
// offsets from the geometric center ((width-1)/2, (height-1)/2), scaled so
// all weights sum to 1. Even dimensions are allowed and give a fractional
// center; such kernels cannot be passed to [Correlate].
func GaussianKernel(sigma float64, height, width int) (*Kernel, error) {
	if err := checkSigma(sigma); err != nil {
		return nil, err
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: kernel %dx%d", ErrInvalidDimensions, height, width)
	}
	return &Kernel{height: height, width: width, data: filter.Gaussian2D(sigma, height, width)}, nil
}

// FlipKernel returns k flipped along both axes:
// out[i][j] = k[height-1-i][width-1-j].
func FlipKernel(k *Kernel) *Kernel {
	return &Kernel{height: k.height, width: k.width, data: filter.Flip(k.data)}
}

// Height returns the number of kernel rows.
func (k *Kernel) Height() int { return k.height }

// Width returns the number of kernel columns.
func (k *Kernel) Width() int { return k.width }

// At returns the weight at row i, column j.
func (k *Kernel) At(i, j int) float64 { return k.data[i*k.width+j] }

// Data returns a copy of the row-major weights.
func (k *Kernel) Data() []float64 {
	cp := make([]float64, len(k.data))
	copy(cp, k.data)
	return cp
}

// Sum returns the sum of all weights.
func (k *Kernel) Sum() float64 {
	var s float64
	for _, v := range k.data {
		s += v
	}
	return s
}

// IsOdd reports whether both dimensions are odd.
func (k *Kernel) IsOdd() bool {
	return k.height%2 == 1 && k.width%2 == 1
}

// checkKernel validates a kernel for correlation.
func checkKernel(k *Kernel) error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrUnsupportedImage)
	}
	if !k.IsOdd() {
		return fmt.Errorf("%w: got %dx%d", ErrEvenKernel, k.height, k.width)
	}
	return nil
}

func checkSigma(sigma float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidSigma, sigma)
	}
	return nil
}
