package hybrid

import "errors"

// Precondition errors. Every operation validates its inputs before doing any
// numeric work and returns one of these (possibly wrapped) instead of a result.
var (
	// ErrInvalidDimensions is returned when an image or kernel dimension is
	// non-positive, or when sample data does not match the declared shape.
	ErrInvalidDimensions = errors.New("hybrid: invalid dimensions")

	// ErrEvenKernel is returned when a kernel used for correlation has an
	// even height or width, so no single center cell exists.
	ErrEvenKernel = errors.New("hybrid: kernel dimensions must be odd")

	// ErrInvalidSigma is returned when a Gaussian spread is not a positive finite number.
	ErrInvalidSigma = errors.New("hybrid: sigma must be positive")

	// ErrUnknownFilter is returned for filter kinds other than low or high.
	ErrUnknownFilter = errors.New("hybrid: unknown filter kind")

	// ErrShapeMismatch is returned when two images that must agree in shape do not.
	ErrShapeMismatch = errors.New("hybrid: image shapes differ")

	// ErrInvalidMixinRatio is returned when the mixin ratio lies outside [0, 1].
	ErrInvalidMixinRatio = errors.New("hybrid: mixin ratio must be in [0, 1]")

	// ErrInvalidScale is returned when the scale factor is not positive.
	ErrInvalidScale = errors.New("hybrid: scale factor must be positive")

	// ErrUnsupportedImage is returned for a nil image or a nil kernel.
	ErrUnsupportedImage = errors.New("hybrid: unsupported image")
)
