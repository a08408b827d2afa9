package filter

// Test helper functions shared across filter tests.

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// sumf returns the sum of all values.
func sumf(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// formatInt formats an integer without using fmt.
func formatInt(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}

// naiveCorrelate is the textbook definition with explicit bounds checks,
// used as an oracle for Correlate.
func naiveCorrelate(src Plane, kernel []float64, kh, kw int) []float64 {
	out := make([]float64, len(src.Pix))
	padY, padX := kh/2, kw/2
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < src.Channels; c++ {
				var sum float64
				for i := 0; i < kh; i++ {
					for j := 0; j < kw; j++ {
						sy, sx := y+i-padY, x+j-padX
						if sy < 0 || sy >= src.Height || sx < 0 || sx >= src.Width {
							continue
						}
						sum += kernel[i*kw+j] * src.Pix[(sy*src.Width+sx)*src.Channels+c]
					}
				}
				out[(y*src.Width+x)*src.Channels+c] = sum
			}
		}
	}
	return out
}

// rampPlane returns a plane whose samples are a deterministic, non-periodic ramp.
func rampPlane(h, w, c int) Plane {
	p := Plane{Height: h, Width: w, Channels: c, Pix: make([]float64, h*w*c)}
	for i := range p.Pix {
		p.Pix[i] = float64((i*37)%101) / 100
	}
	return p
}
