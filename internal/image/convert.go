package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/hybrid"
)

// FromStdImage converts a standard library image to a ByteImage.
//
// *image.Gray and *image.Gray16 become single-channel images (16-bit samples
// keep their high byte). Everything else becomes three-channel RGB; alpha is
// dropped after compositing over black.
func FromStdImage(img image.Image) (*hybrid.ByteImage, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		out, err := hybrid.NewByteImage(hybrid.Shape{Height: height, Width: width, Channels: 1})
		if err != nil {
			return nil, err
		}
		pix := out.Pix()
		for y := range height {
			start := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*width:(y+1)*width], src.Pix[start:start+width])
		}
		return out, nil

	case *image.Gray16:
		out, err := hybrid.NewByteImage(hybrid.Shape{Height: height, Width: width, Channels: 1})
		if err != nil {
			return nil, err
		}
		pix := out.Pix()
		for y := range height {
			for x := range width {
				pix[y*width+x] = uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return out, nil
	}

	return fromRGBA(clone.AsRGBA(img), 3)
}

// fromRGBA extracts the first channels (1 or 3) of each RGBA pixel.
func fromRGBA(rgba *image.RGBA, channels int) (*hybrid.ByteImage, error) {
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out, err := hybrid.NewByteImage(hybrid.Shape{Height: height, Width: width, Channels: channels})
	if err != nil {
		return nil, err
	}
	pix := out.Pix()
	for y := range height {
		src := rgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		dst := y * width * channels
		for x := range width {
			copy(pix[dst+x*channels:dst+(x+1)*channels], rgba.Pix[src+x*4:src+x*4+channels])
		}
	}
	return out, nil
}

// ToStdImage converts a ByteImage to a standard library image.
// One channel gives *image.Gray, three give an opaque *image.NRGBA and four
// give an *image.NRGBA with the fourth channel as alpha.
func ToStdImage(img *hybrid.ByteImage) (image.Image, error) {
	s := img.Shape()
	rect := image.Rect(0, 0, s.Width, s.Height)
	pix := img.Pix()

	switch s.Channels {
	case 1:
		gray := image.NewGray(rect)
		for y := range s.Height {
			copy(gray.Pix[y*gray.Stride:], pix[y*s.Width:(y+1)*s.Width])
		}
		return gray, nil

	case 3:
		nrgba := image.NewNRGBA(rect)
		for y := range s.Height {
			for x := range s.Width {
				i := (y*s.Width + x) * 3
				nrgba.SetNRGBA(x, y, color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: 0xff})
			}
		}
		return nrgba, nil

	case 4:
		nrgba := image.NewNRGBA(rect)
		for y := range s.Height {
			copy(nrgba.Pix[y*nrgba.Stride:], pix[y*s.Width*4:(y+1)*s.Width*4])
		}
		return nrgba, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, s.Channels)
}

// Resize scales img to width x height with bilinear resampling. Only
// grayscale and RGB images can be resized.
func Resize(img *hybrid.ByteImage, width, height int) (*hybrid.ByteImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", hybrid.ErrInvalidDimensions, width, height)
	}
	s := img.Shape()
	if s.Channels != 1 && s.Channels != 3 {
		return nil, fmt.Errorf("%w: resize %d channels", ErrUnsupportedChannels, s.Channels)
	}
	if s.Width == width && s.Height == height {
		return img, nil
	}

	std, err := ToStdImage(img)
	if err != nil {
		return nil, err
	}
	resized := transform.Resize(std, width, height, transform.Linear)
	hybrid.Logger().Debug("image: resized", "from", s.String(), "width", width, "height", height)
	return fromRGBA(resized, s.Channels)
}
