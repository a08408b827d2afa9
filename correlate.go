package hybrid

import (
	"fmt"

	"github.com/gogpu/hybrid/internal/filter"
	"github.com/gogpu/hybrid/internal/parallel"
)

// Correlate computes the 2D cross-correlation of img with kernel and
// returns an image of the same shape and representation.
//
// For every output sample:
//
//	out[y,x,c] = Σi Σj kernel[i,j] * img[y+i-kh/2, x+j-kw/2, c]
//
// where samples outside the image are zero. Color images are filtered one
// channel at a time with the same kernel. The kernel is not flipped; see
// [Convolve] for true convolution.
//
// A *ByteImage input is accumulated in float64 and each result is clipped to
// [0, 255] and truncated, yielding a *ByteImage. A *FloatImage input yields
// a *FloatImage with unclipped values.
//
// Correlate returns [ErrEvenKernel] if either kernel dimension is even.
func Correlate(img Image, kernel *Kernel, opts ...Option) (Image, error) {
	if err := checkKernel(kernel); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	switch m := img.(type) {
	case *FloatImage:
		if m == nil {
			break
		}
		out := correlatePlane(m.shape, m.pix, kernel, o)
		return &FloatImage{shape: m.shape, pix: out}, nil

	case *ByteImage:
		if m == nil {
			break
		}
		src := make([]float64, len(m.pix))
		for i, v := range m.pix {
			src[i] = float64(v)
		}
		sums := correlatePlane(m.shape, src, kernel, o)
		out := make([]uint8, len(sums))
		for i, v := range sums {
			out[i] = quantize(v)
		}
		return &ByteImage{shape: m.shape, pix: out}, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
}

// Convolve computes the 2D convolution of img with kernel: the correlation
// of img with the kernel flipped along both axes. Everything else, including
// the error conditions, is as for [Correlate].
func Convolve(img Image, kernel *Kernel, opts ...Option) (Image, error) {
	if err := checkKernel(kernel); err != nil {
		return nil, err
	}
	return Correlate(img, FlipKernel(kernel), opts...)
}

// correlatePlane runs the engine, on a worker pool when more than one
// worker is requested.
func correlatePlane(shape Shape, pix []float64, kernel *Kernel, o options) []float64 {
	Logger().Debug("hybrid: correlate",
		"shape", shape.String(),
		"kernel", fmt.Sprintf("%dx%d", kernel.height, kernel.width),
		"workers", o.workers)

	var pool *parallel.WorkerPool
	if o.workers > 1 && shape.Height > 1 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	src := filter.Plane{
		Height:   shape.Height,
		Width:    shape.Width,
		Channels: shape.Channels,
		Pix:      pix,
	}
	return filter.Correlate(src, kernel.data, kernel.height, kernel.width, pool).Pix
}
