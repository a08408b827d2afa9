package hybrid

import "fmt"

// Shape describes the dimensions of an image.
//
// Channels == 1 is a grayscale (height x width) image; Channels > 1 is a
// color (height x width x channels) image.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// Len returns the number of samples in an image of this shape.
func (s Shape) Len() int {
	return s.Height * s.Width * s.Channels
}

// IsGray reports whether the shape describes a single-channel image.
func (s Shape) IsGray() bool {
	return s.Channels == 1
}

// String returns the shape as HxW for grayscale and HxWxC for color.
func (s Shape) String() string {
	if s.IsGray() {
		return fmt.Sprintf("%dx%d", s.Height, s.Width)
	}
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

func (s Shape) valid() bool {
	return s.Height > 0 && s.Width > 0 && s.Channels > 0
}

// offset returns the index of sample (y, x, c) in row-major interleaved order.
func (s Shape) offset(y, x, c int) int {
	return (y*s.Width+x)*s.Channels + c
}

// Image is an immutable grid of samples. It is implemented only by
// [*ByteImage] and [*FloatImage]; use a type switch to tell them apart.
type Image interface {
	// Shape returns the image dimensions.
	Shape() Shape

	sealed()
}

// ByteImage holds 8-bit unsigned samples in the range 0-255.
//
// Samples are stored row-major with channels interleaved:
// index = (y*Width + x)*Channels + c.
type ByteImage struct {
	shape Shape
	pix   []uint8
}

// NewByteImage creates a zero-filled byte image of the given shape.
func NewByteImage(shape Shape) (*ByteImage, error) {
	if !shape.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, shape)
	}
	return &ByteImage{shape: shape, pix: make([]uint8, shape.Len())}, nil
}

// NewByteImageFromData creates a byte image that takes ownership of pix.
// len(pix) must equal shape.Len().
func NewByteImageFromData(shape Shape, pix []uint8) (*ByteImage, error) {
	if !shape.valid() || len(pix) != shape.Len() {
		return nil, fmt.Errorf("%w: %v with %d samples", ErrInvalidDimensions, shape, len(pix))
	}
	return &ByteImage{shape: shape, pix: pix}, nil
}

// Shape returns the image dimensions.
func (m *ByteImage) Shape() Shape { return m.shape }

// Pix returns the underlying sample slice. Callers must not modify it once
// the image has been handed to a filtering operation.
func (m *ByteImage) Pix() []uint8 { return m.pix }

// At returns the sample at row y, column x, channel c.
func (m *ByteImage) At(y, x, c int) uint8 {
	return m.pix[m.shape.offset(y, x, c)]
}

// Set stores v at row y, column x, channel c.
func (m *ByteImage) Set(y, x, c int, v uint8) {
	m.pix[m.shape.offset(y, x, c)] = v
}

func (*ByteImage) sealed() {}

// FloatImage holds float64 samples. Filtering conventionally works on
// samples normalized to [0, 1], but any value, including negative high-pass
// residuals, is representable.
type FloatImage struct {
	shape Shape
	pix   []float64
}

// NewFloatImage creates a zero-filled float image of the given shape.
func NewFloatImage(shape Shape) (*FloatImage, error) {
	if !shape.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, shape)
	}
	return &FloatImage{shape: shape, pix: make([]float64, shape.Len())}, nil
}

// NewFloatImageFromData creates a float image that takes ownership of pix.
// len(pix) must equal shape.Len().
func NewFloatImageFromData(shape Shape, pix []float64) (*FloatImage, error) {
	if !shape.valid() || len(pix) != shape.Len() {
		return nil, fmt.Errorf("%w: %v with %d samples", ErrInvalidDimensions, shape, len(pix))
	}
	return &FloatImage{shape: shape, pix: pix}, nil
}

// Shape returns the image dimensions.
func (m *FloatImage) Shape() Shape { return m.shape }

// Pix returns the underlying sample slice. Callers must not modify it once
// the image has been handed to a filtering operation.
func (m *FloatImage) Pix() []float64 { return m.pix }

// At returns the sample at row y, column x, channel c.
func (m *FloatImage) At(y, x, c int) float64 {
	return m.pix[m.shape.offset(y, x, c)]
}

// Set stores v at row y, column x, channel c.
func (m *FloatImage) Set(y, x, c int, v float64) {
	m.pix[m.shape.offset(y, x, c)] = v
}

func (*FloatImage) sealed() {}

// Clone returns a deep copy of m.
func (m *FloatImage) Clone() *FloatImage {
	pix := make([]float64, len(m.pix))
	copy(pix, m.pix)
	return &FloatImage{shape: m.shape, pix: pix}
}

// Add returns m + other, elementwise.
func (m *FloatImage) Add(other *FloatImage) (*FloatImage, error) {
	if m.shape != other.shape {
		return nil, fmt.Errorf("%w: %v + %v", ErrShapeMismatch, m.shape, other.shape)
	}
	out := make([]float64, len(m.pix))
	for i, v := range m.pix {
		out[i] = v + other.pix[i]
	}
	return &FloatImage{shape: m.shape, pix: out}, nil
}

// Sub returns m - other, elementwise.
func (m *FloatImage) Sub(other *FloatImage) (*FloatImage, error) {
	if m.shape != other.shape {
		return nil, fmt.Errorf("%w: %v - %v", ErrShapeMismatch, m.shape, other.shape)
	}
	out := make([]float64, len(m.pix))
	for i, v := range m.pix {
		out[i] = v - other.pix[i]
	}
	return &FloatImage{shape: m.shape, pix: out}, nil
}

// Scale returns m * s, elementwise.
func (m *FloatImage) Scale(s float64) *FloatImage {
	out := make([]float64, len(m.pix))
	for i, v := range m.pix {
		out[i] = v * s
	}
	return &FloatImage{shape: m.shape, pix: out}
}

// AsFloat converts img to a FloatImage without rescaling: a byte sample of
// 200 becomes 200.0. A FloatImage is returned as a copy.
func AsFloat(img Image) (*FloatImage, error) {
	switch m := img.(type) {
	case *FloatImage:
		if m == nil {
			break
		}
		return m.Clone(), nil
	case *ByteImage:
		if m == nil {
			break
		}
		out := make([]float64, len(m.pix))
		for i, v := range m.pix {
			out[i] = float64(v)
		}
		return &FloatImage{shape: m.shape, pix: out}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
}

// Normalize converts img to floating point in [0, 1]. Byte samples are
// divided by 255; a FloatImage is assumed to be normalized already and is
// returned as a copy.
func Normalize(img Image) (*FloatImage, error) {
	if m, ok := img.(*ByteImage); ok && m != nil {
		out := make([]float64, len(m.pix))
		for i, v := range m.pix {
			out[i] = float64(v) / 255
		}
		return &FloatImage{shape: m.shape, pix: out}, nil
	}
	return AsFloat(img)
}

// Quantize converts m to 8-bit samples. Each sample is clipped to [0, 255]
// and truncated toward zero; NaN maps to 0.
func Quantize(m *FloatImage) *ByteImage {
	out := make([]uint8, len(m.pix))
	for i, v := range m.pix {
		out[i] = quantize(v)
	}
	return &ByteImage{shape: m.shape, pix: out}
}

func quantize(v float64) uint8 {
	switch {
	case !(v > 0): // NaN included
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
