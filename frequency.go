package hybrid

import (
	"fmt"
	"strings"

	"github.com/gogpu/hybrid/internal/filter"
	"golang.org/x/text/cases"
)

// FilterKind selects the frequency band kept by a filter.
type FilterKind uint8

const (
	// FilterUnknown is the zero value and is rejected by every operation.
	FilterUnknown FilterKind = iota

	// FilterLow keeps coarse structure (Gaussian blur).
	FilterLow

	// FilterHigh keeps fine detail (image minus its blur).
	FilterHigh
)

// ParseFilterKind parses "low" or "high", ignoring case and surrounding
// white space.
func ParseFilterKind(s string) (FilterKind, error) {
	// A Caser carries state, so one is created per call.
	switch cases.Fold().String(strings.TrimSpace(s)) {
	case "low":
		return FilterLow, nil
	case "high":
		return FilterHigh, nil
	}
	return FilterUnknown, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// String returns "low", "high" or "unknown".
func (k FilterKind) String() string {
	switch k {
	case FilterLow:
		return "low"
	case FilterHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k FilterKind) MarshalText() ([]byte, error) {
	if k != FilterLow && k != FilterHigh {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFilter, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParseFilterKind].
func (k *FilterKind) UnmarshalText(text []byte) error {
	parsed, err := ParseFilterKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Apply runs the filter selected by k on img.
func (k FilterKind) Apply(img Image, sigma float64, size int, opts ...Option) (Image, error) {
	switch k {
	case FilterLow:
		return LowPass(img, sigma, size, opts...)
	case FilterHigh:
		return HighPass(img, sigma, size, opts...)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFilter, uint8(k))
}

// LowPass blurs img by convolving it with a size x size Gaussian kernel of
// spread sigma. The result has the same shape and representation as img.
//
// size must be odd.
func LowPass(img Image, sigma float64, size int, opts ...Option) (Image, error) {
	kernel, err := filterKernel(sigma, size)
	if err != nil {
		return nil, err
	}
	Logger().Debug("hybrid: low pass", "sigma", sigma, "size", size)
	return Convolve(img, kernel, opts...)
}

// HighPass returns the detail that [LowPass] removes: img minus its low-pass
// result, elementwise. The residual is signed, so the result is always a
// *FloatImage. A *ByteImage input is filtered on its raw 0-255 values, and
// the residual is taken against the quantized bytes LowPass returns, so
// AsFloat(LowPass(img)) + HighPass(img) reproduces img exactly.
//
// size must be odd.
func HighPass(img Image, sigma float64, size int, opts ...Option) (Image, error) {
	kernel, err := filterKernel(sigma, size)
	if err != nil {
		return nil, err
	}
	src, err := AsFloat(img)
	if err != nil {
		return nil, err
	}
	Logger().Debug("hybrid: high pass", "sigma", sigma, "size", size)

	low, err := Convolve(img, kernel, opts...)
	if err != nil {
		return nil, err
	}
	var blurred *FloatImage
	switch m := low.(type) {
	case *FloatImage:
		blurred = m
	case *ByteImage:
		if blurred, err = AsFloat(m); err != nil {
			return nil, err
		}
	}
	high, err := src.Sub(blurred)
	if err != nil {
		return nil, err
	}
	return high, nil
}

// filterKernel validates the filter parameters and returns the cached
// square Gaussian kernel for them.
func filterKernel(sigma float64, size int) (*Kernel, error) {
	if err := checkSigma(sigma); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: kernel size %d", ErrInvalidDimensions, size)
	}
	if size%2 == 0 {
		return nil, fmt.Errorf("%w: kernel size %d", ErrEvenKernel, size)
	}
	return &Kernel{height: size, width: size, data: filter.CachedGaussian2D(sigma, size, size)}, nil
}
