package hybrid

import (
	"math"
	"testing"
)

// Test helper functions shared across package tests.

func mustFloat(t *testing.T, shape Shape, pix []float64) *FloatImage {
	t.Helper()
	img, err := NewFloatImageFromData(shape, pix)
	if err != nil {
		t.Fatalf("NewFloatImageFromData(%v) error = %v", shape, err)
	}
	return img
}

func mustByte(t *testing.T, shape Shape, pix []uint8) *ByteImage {
	t.Helper()
	img, err := NewByteImageFromData(shape, pix)
	if err != nil {
		t.Fatalf("NewByteImageFromData(%v) error = %v", shape, err)
	}
	return img
}

func mustKernel(t *testing.T, h, w int, data []float64) *Kernel {
	t.Helper()
	k, err := NewKernel(h, w, data)
	if err != nil {
		t.Fatalf("NewKernel(%d, %d) error = %v", h, w, err)
	}
	return k
}

// rampFloat returns an image with deterministic samples in [0, 1].
func rampFloat(t *testing.T, shape Shape) *FloatImage {
	t.Helper()
	pix := make([]float64, shape.Len())
	for i := range pix {
		pix[i] = float64((i*53)%97) / 96
	}
	return mustFloat(t, shape, pix)
}

// rampByte returns an image with deterministic samples in [0, 255].
func rampByte(t *testing.T, shape Shape) *ByteImage {
	t.Helper()
	pix := make([]uint8, shape.Len())
	for i := range pix {
		pix[i] = uint8((i * 71) % 256)
	}
	return mustByte(t, shape, pix)
}

// assertFloatsClose fails if any pair of samples differs by more than tol.
func assertFloatsClose(t *testing.T, name string, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("%s[%d] = %v, want %v (tol %v)", name, i, got[i], want[i], tol)
		}
	}
}
