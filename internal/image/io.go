// Package image loads and saves the images a hybrid run works on.
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Files are sniffed
// before decoding so that non-image input fails with ErrUnsupportedFormat
// rather than a decoder-specific message. Encoding writes PNG, JPEG, BMP or
// TIFF, chosen from the file extension.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Register decoders with image.Decode.
	_ "image/gif"

	"github.com/gogpu/hybrid"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")

	// ErrUnsupportedChannels is returned when an image has a channel count
	// that has no file representation.
	ErrUnsupportedChannels = errors.New("image: unsupported channel count")
)

// Format is an output file format.
type Format string

// Output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultJPEGQuality is used when Save is given a quality outside 1-100.
const DefaultJPEGQuality = 90

// FormatFromPath returns the output format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads an image file. Grayscale files load with one channel, all
// others with three (RGB).
func Load(path string) (*hybrid.ByteImage, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: read file: %w", err)
	}

	img, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	hybrid.Logger().Debug("image: loaded", "path", path, "shape", img.Shape().String())
	return img, nil
}

// LoadFromBytes decodes an in-memory image, auto-detecting the format.
func LoadFromBytes(data []byte) (*hybrid.ByteImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if !filetype.IsImage(data) {
		return nil, ErrUnsupportedFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		// Recognized as an image, but no decoder is registered for it.
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.Extension)
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*hybrid.ByteImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("image: read: %w", err)
	}
	return LoadFromBytes(data)
}

// Save writes img to path in the format implied by the extension.
// quality applies to JPEG only; values outside 1-100 select DefaultJPEGQuality.
func Save(path string, img *hybrid.ByteImage, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("image: close file: %w", err)
	}
	hybrid.Logger().Debug("image: saved", "path", path, "format", string(format))
	return nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *hybrid.ByteImage, format Format, quality int) error {
	std, err := ToStdImage(img)
	if err != nil {
		return err
	}

	switch format {
	case FormatPNG:
		err = png.Encode(w, std)
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, std, &jpeg.Options{Quality: quality})
	case FormatBMP:
		err = bmp.Encode(w, std)
	case FormatTIFF:
		err = tiff.Encode(w, std, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}
