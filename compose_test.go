package hybrid

import (
	"errors"
	"math"
	"testing"
)

func defaultTestConfig() Config {
	return Config{
		First:       FilterSpec{Kind: FilterLow, Sigma: 2, Size: 7},
		Second:      FilterSpec{Kind: FilterHigh, Sigma: 1, Size: 5},
		MixinRatio:  0.5,
		ScaleFactor: 2,
	}
}

func TestMakeHybridShapeAndType(t *testing.T) {
	for _, s := range testShapes {
		out, err := MakeHybrid(rampByte(t, s), rampByte(t, s), defaultTestConfig())
		if err != nil {
			t.Fatalf("MakeHybrid(%v) error = %v", s, err)
		}
		if out.Shape() != s {
			t.Errorf("MakeHybrid(%v).Shape() = %v", s, out.Shape())
		}
		if len(out.Pix()) != s.Len() {
			t.Errorf("MakeHybrid(%v) has %d samples, want %d", s, len(out.Pix()), s.Len())
		}
	}
}

func TestMakeHybridConstantImages(t *testing.T) {
	// A 1x1 Gaussian is the identity, so low keeps the image and high is zero.
	s := Shape{Height: 2, Width: 2, Channels: 1}
	half := mustFloat(t, s, []float64{0.5, 0.5, 0.5, 0.5})
	cfg := Config{
		First:       FilterSpec{Kind: FilterLow, Sigma: 1, Size: 1},
		Second:      FilterSpec{Kind: FilterHigh, Sigma: 1, Size: 1},
		MixinRatio:  0.5,
		ScaleFactor: 2,
	}
	out, err := MakeHybrid(half, half, cfg)
	if err != nil {
		t.Fatal(err)
	}
	// (0.5*0.5 + 0.5*0) * 2 * 255 = 127.5, truncated
	for i, v := range out.Pix() {
		if v != 127 {
			t.Errorf("Pix()[%d] = %d, want 127", i, v)
		}
	}
}

func TestMakeHybridClipsToByteRange(t *testing.T) {
	s := Shape{Height: 3, Width: 3, Channels: 1}
	white := mustByte(t, s, []uint8{255, 255, 255, 255, 255, 255, 255, 255, 255})
	cfg := defaultTestConfig()
	cfg.First = FilterSpec{Kind: FilterLow, Sigma: 1, Size: 1}
	cfg.ScaleFactor = 10

	out, err := MakeHybrid(white, white, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out.Pix() {
		if v != 255 {
			t.Errorf("Pix()[%d] = %d, want 255 (clipped)", i, v)
		}
	}
}

func TestMakeHybridMixinRatioZero(t *testing.T) {
	s := Shape{Height: 6, Width: 5, Channels: 3}
	img1 := rampByte(t, s)
	cfg := defaultTestConfig()
	cfg.MixinRatio = 0

	a, err := MakeHybrid(img1, rampByte(t, s), cfg)
	if err != nil {
		t.Fatal(err)
	}
	other, _ := NewByteImage(s)
	b, err := MakeHybrid(img1, other, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != b.Pix()[i] {
			t.Fatalf("Pix()[%d] depends on img2 with ratio 0: %d vs %d", i, a.Pix()[i], b.Pix()[i])
		}
	}

	f1, err := ApplySpec(img1, cfg.First)
	if err != nil {
		t.Fatal(err)
	}
	want := Quantize(f1.Scale(cfg.ScaleFactor * 255))
	for i := range want.Pix() {
		if a.Pix()[i] != want.Pix()[i] {
			t.Fatalf("Pix()[%d] = %d, want %d", i, a.Pix()[i], want.Pix()[i])
		}
	}
}

func TestMakeHybridMixinRatioOne(t *testing.T) {
	s := Shape{Height: 5, Width: 6, Channels: 1}
	img2 := rampByte(t, s)
	cfg := defaultTestConfig()
	cfg.MixinRatio = 1

	zero, _ := NewByteImage(s)
	a, err := MakeHybrid(zero, img2, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MakeHybrid(rampByte(t, s), img2, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != b.Pix()[i] {
			t.Fatalf("Pix()[%d] depends on img1 with ratio 1: %d vs %d", i, a.Pix()[i], b.Pix()[i])
		}
	}
}

func TestMakeHybridByteAndNormalizedFloatAgree(t *testing.T) {
	s := Shape{Height: 7, Width: 7, Channels: 3}
	b1, b2 := rampByte(t, s), mustByte(t, s, make([]uint8, s.Len()))
	for i := range b2.Pix() {
		b2.Pix()[i] = uint8(255 - (i*13)%256)
	}
	f1, _ := Normalize(b1)
	f2, _ := Normalize(b2)

	cfg := defaultTestConfig()
	fromBytes, err := MakeHybrid(b1, b2, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fromFloats, err := MakeHybrid(f1, f2, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range fromBytes.Pix() {
		if fromBytes.Pix()[i] != fromFloats.Pix()[i] {
			t.Fatalf("Pix()[%d] = %d from bytes, %d from floats", i, fromBytes.Pix()[i], fromFloats.Pix()[i])
		}
	}
}

func TestMakeHybridDefersClipping(t *testing.T) {
	s := Shape{Height: 5, Width: 5, Channels: 1}
	flat := make([]float64, s.Len())
	spike := make([]float64, s.Len())
	for i := range flat {
		flat[i] = 0.6
	}
	spike[12] = 1

	cfg := Config{
		First:       FilterSpec{Kind: FilterLow, Sigma: 1, Size: 1},
		Second:      FilterSpec{Kind: FilterHigh, Sigma: 1, Size: 3},
		MixinRatio:  0.5,
		ScaleFactor: 1,
	}
	out, err := MakeHybrid(mustFloat(t, s, flat), mustFloat(t, s, spike), cfg)
	if err != nil {
		t.Fatal(err)
	}

	high, err := ApplySpec(mustFloat(t, s, spike), cfg.Second)
	if err != nil {
		t.Fatal(err)
	}
	neighbor := high.At(2, 1, 0)
	if neighbor >= 0 {
		t.Fatalf("high-pass residual next to spike = %v, want negative", neighbor)
	}

	// 0.5*0.6 + 0.5*neighbor, scaled by 255, must be below the 0.3*255 an
	// early clamp to zero would give.
	want := quantize((0.5*0.6 + 0.5*neighbor) * 255)
	if got := out.At(2, 1, 0); got != want {
		t.Errorf("out[2,1] = %d, want %d", got, want)
	}
	if got := out.At(2, 1, 0); got >= quantize(0.3*255) {
		t.Errorf("out[2,1] = %d, negative residual was clamped early", got)
	}
}

func TestMakeHybridErrors(t *testing.T) {
	s := Shape{Height: 4, Width: 4, Channels: 1}
	img := rampByte(t, s)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown first kind", func(c *Config) { c.First.Kind = FilterUnknown }, ErrUnknownFilter},
		{"unknown second kind", func(c *Config) { c.Second.Kind = 9 }, ErrUnknownFilter},
		{"even size", func(c *Config) { c.First.Size = 6 }, ErrEvenKernel},
		{"zero sigma", func(c *Config) { c.Second.Sigma = 0 }, ErrInvalidSigma},
		{"ratio below zero", func(c *Config) { c.MixinRatio = -0.1 }, ErrInvalidMixinRatio},
		{"ratio above one", func(c *Config) { c.MixinRatio = 1.01 }, ErrInvalidMixinRatio},
		{"ratio NaN", func(c *Config) { c.MixinRatio = math.NaN() }, ErrInvalidMixinRatio},
		{"zero scale", func(c *Config) { c.ScaleFactor = 0 }, ErrInvalidScale},
		{"negative scale", func(c *Config) { c.ScaleFactor = -1 }, ErrInvalidScale},
	}
	for _, tt := range tests {
		cfg := defaultTestConfig()
		tt.mutate(&cfg)
		out, err := MakeHybrid(img, img, cfg)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: MakeHybrid() error = %v, want %v", tt.name, err, tt.want)
		}
		if out != nil {
			t.Errorf("%s: MakeHybrid() returned an image alongside an error", tt.name)
		}
	}
}

func TestMakeHybridShapeMismatch(t *testing.T) {
	a := rampByte(t, Shape{Height: 4, Width: 4, Channels: 3})
	b := rampByte(t, Shape{Height: 4, Width: 5, Channels: 3})
	if _, err := MakeHybrid(a, b, defaultTestConfig()); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("MakeHybrid() error = %v, want ErrShapeMismatch", err)
	}
}

func TestMakeHybridWithWorkers(t *testing.T) {
	s := Shape{Height: 19, Width: 11, Channels: 3}
	seq, err := MakeHybrid(rampByte(t, s), rampByte(t, s), defaultTestConfig())
	if err != nil {
		t.Fatal(err)
	}
	par, err := MakeHybrid(rampByte(t, s), rampByte(t, s), defaultTestConfig(), WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}
	for i := range seq.Pix() {
		if seq.Pix()[i] != par.Pix()[i] {
			t.Fatalf("Pix()[%d] = %d with workers, want %d", i, par.Pix()[i], seq.Pix()[i])
		}
	}
}
