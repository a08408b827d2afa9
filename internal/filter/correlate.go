package filter

import "github.com/gogpu/hybrid/internal/parallel"

// Plane is a block of float64 samples, row-major with channels interleaved:
// index = (y*Width + x)*Channels + c.
type Plane struct {
	Height   int
	Width    int
	Channels int
	Pix      []float64
}

// Pad returns a copy of p surrounded by padY rows and padX columns of zeros
// on every side. The result is (Height+2*padY) x (Width+2*padX) x Channels.
func Pad(p Plane, padY, padX int) Plane {
	out := Plane{
		Height:   p.Height + 2*padY,
		Width:    p.Width + 2*padX,
		Channels: p.Channels,
	}
	out.Pix = make([]float64, out.Height*out.Width*out.Channels)

	srcStride := p.Width * p.Channels
	dstStride := out.Width * out.Channels
	for y := 0; y < p.Height; y++ {
		dst := (y+padY)*dstStride + padX*p.Channels
		copy(out.Pix[dst:dst+srcStride], p.Pix[y*srcStride:(y+1)*srcStride])
	}
	return out
}

// Correlate computes the zero-padded 2D cross-correlation of src with a
// kh x kw row-major kernel. The output has the same dimensions as src:
//
//	out[y,x,c] = Σi Σj kernel[i,j] * src[y+i-kh/2, x+j-kw/2, c]
//
// with samples outside src treated as zero. Every channel is filtered
// independently with the same kernel. kh and kw are expected to be odd.
//
// A non-nil pool splits the output rows into bands processed concurrently.
// Each sample is summed in the same order either way, so the result does
// not depend on the pool.
func Correlate(src Plane, kernel []float64, kh, kw int, pool *parallel.WorkerPool) Plane {
	padded := Pad(src, kh/2, kw/2)
	dst := Plane{
		Height:   src.Height,
		Width:    src.Width,
		Channels: src.Channels,
		Pix:      make([]float64, len(src.Pix)),
	}

	if pool == nil || pool.Workers() < 2 || src.Height < 2 {
		correlateRows(dst, padded, kernel, kh, kw, 0, dst.Height)
		return dst
	}

	pool.ForEachBand(dst.Height, func(b parallel.Band) {
		correlateRows(dst, padded, kernel, kh, kw, b.Y0, b.Y1)
	})
	return dst
}

// correlateRows fills output rows [y0, y1) of dst from the padded input.
// Writes are confined to those rows, so disjoint bands may run concurrently.
func correlateRows(dst, padded Plane, kernel []float64, kh, kw, y0, y1 int) {
	ch := dst.Channels
	stride := padded.Width * ch

	for y := y0; y < y1; y++ {
		for x := 0; x < dst.Width; x++ {
			out := (y*dst.Width + x) * ch
			for c := 0; c < ch; c++ {
				var sum float64
				for i := 0; i < kh; i++ {
					base := (y+i)*stride + x*ch + c
					for j, w := range kernel[i*kw : (i+1)*kw] {
						sum += w * padded.Pix[base+j*ch]
					}
				}
				dst.Pix[out+c] = sum
			}
		}
	}
}
