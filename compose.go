package hybrid

import (
	"fmt"
	"math"
)

// FilterSpec configures the filter applied to one input of a hybrid image.
type FilterSpec struct {
	// Kind selects low-pass or high-pass filtering.
	Kind FilterKind

	// Sigma is the Gaussian spread. Must be positive.
	Sigma float64

	// Size is the side of the square kernel. Must be odd.
	Size int
}

// Validate checks s without touching any image.
func (s FilterSpec) Validate() error {
	if s.Kind != FilterLow && s.Kind != FilterHigh {
		return fmt.Errorf("%w: %d", ErrUnknownFilter, uint8(s.Kind))
	}
	_, err := filterKernel(s.Sigma, s.Size)
	return err
}

// Config describes how two images are combined into a hybrid image.
type Config struct {
	// First is the filter applied to the first image.
	First FilterSpec

	// Second is the filter applied to the second image.
	Second FilterSpec

	// MixinRatio in [0, 1] weights the second image; the first is weighted
	// by 1 - MixinRatio.
	MixinRatio float64

	// ScaleFactor multiplies the sum before quantization. Must be positive.
	ScaleFactor float64
}

// Validate checks every parameter of the configuration.
func (c Config) Validate() error {
	if err := c.First.Validate(); err != nil {
		return fmt.Errorf("first image: %w", err)
	}
	if err := c.Second.Validate(); err != nil {
		return fmt.Errorf("second image: %w", err)
	}
	if !(c.MixinRatio >= 0 && c.MixinRatio <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidMixinRatio, c.MixinRatio)
	}
	if !(c.ScaleFactor > 0) || math.IsInf(c.ScaleFactor, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, c.ScaleFactor)
	}
	return nil
}

// MakeHybrid blends the filtered content of two images of the same shape.
//
// Both inputs are normalized with [Normalize] (byte samples become [0, 1]),
// each is filtered according to its FilterSpec, and the results are mixed:
//
//	hybrid = ((1-r)*filtered1 + r*filtered2) * ScaleFactor * 255
//
// The sum is clipped to [0, 255] and truncated to bytes only at this last
// step; negative high-pass residuals survive until then.
func MakeHybrid(img1, img2 Image, cfg Config, opts ...Option) (*ByteImage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := Normalize(img1)
	if err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}
	b, err := Normalize(img2)
	if err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}
	if a.shape != b.shape {
		return nil, fmt.Errorf("%w: %v and %v", ErrShapeMismatch, a.shape, b.shape)
	}

	log := Logger()
	log.Debug("hybrid: compose",
		"shape", a.shape.String(),
		"first", cfg.First.Kind.String(),
		"second", cfg.Second.Kind.String(),
		"mixin", cfg.MixinRatio,
		"scale", cfg.ScaleFactor)

	fa, err := applySpec(a, cfg.First, opts)
	if err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}
	fb, err := applySpec(b, cfg.Second, opts)
	if err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}

	sum, err := fa.Scale(1 - cfg.MixinRatio).Add(fb.Scale(cfg.MixinRatio))
	if err != nil {
		return nil, err
	}
	out := Quantize(sum.Scale(cfg.ScaleFactor * 255))
	log.Debug("hybrid: composed", "shape", out.shape.String())
	return out, nil
}

// ApplySpec filters img as MakeHybrid does for one input and returns the
// signed, unquantized result. It is useful for inspecting each half of a
// hybrid image.
func ApplySpec(img Image, spec FilterSpec, opts ...Option) (*FloatImage, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	f, err := Normalize(img)
	if err != nil {
		return nil, err
	}
	return applySpec(f, spec, opts)
}

func applySpec(img *FloatImage, spec FilterSpec, opts []Option) (*FloatImage, error) {
	out, err := spec.Kind.Apply(img, spec.Sigma, spec.Size, opts...)
	if err != nil {
		return nil, err
	}
	return out.(*FloatImage), nil
}
