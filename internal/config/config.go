// Package config holds the settings of one hybrid image run.
//
// Settings come from [Default], optionally overlaid by a TOML file read with
// [Load]. Keys the file does not set keep their default value; unknown keys
// are an error. A minimal file:
//
//	output = "hybrid.png"
//	mixin_ratio = 0.5
//	scale_factor = 2.0
//
//	[left]
//	path = "dog.jpg"
//	kind = "low"
//	sigma = 7.0
//	size = 29
//
//	[right]
//	path = "cat.jpg"
//	kind = "high"
//	sigma = 4.0
//	size = 21
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/hybrid"
	"github.com/pelletier/go-toml/v2"
)

// ErrMissingInput is returned by Validate when an input path is empty.
var ErrMissingInput = errors.New("config: missing input path")

// Side configures one input image.
type Side struct {
	// Path is the image file to load.
	Path string `toml:"path"`

	// Kind is "low" or "high", case-insensitive.
	Kind hybrid.FilterKind `toml:"kind"`

	// Sigma is the Gaussian spread. Must be positive.
	Sigma float64 `toml:"sigma"`

	// Size is the side of the square kernel. Must be odd.
	Size int `toml:"size"`
}

// Spec returns the filter settings of s.
func (s Side) Spec() hybrid.FilterSpec {
	return hybrid.FilterSpec{Kind: s.Kind, Sigma: s.Sigma, Size: s.Size}
}

// Config is a complete hybrid run.
type Config struct {
	// Output is the file the hybrid image is written to. The extension
	// selects the format.
	Output string `toml:"output"`

	// MixinRatio in [0, 1] weights the right image; the left image gets
	// 1 - MixinRatio.
	MixinRatio float64 `toml:"mixin_ratio"`

	// ScaleFactor multiplies the mix before quantization. Must be positive.
	ScaleFactor float64 `toml:"scale_factor"`

	Left  Side `toml:"left"`
	Right Side `toml:"right"`
}

// Default returns the settings used when neither a file nor a flag sets a
// value. The left image is low-passed and the right image high-passed.
func Default() Config {
	return Config{
		Output:      "hybrid.png",
		MixinRatio:  0.5,
		ScaleFactor: 2.0,
		Left:        Side{Kind: hybrid.FilterLow, Sigma: 7, Size: 29},
		Right:       Side{Kind: hybrid.FilterHigh, Sigma: 4, Size: 21},
	}
}

// Load reads a TOML file on top of [Default].
func Load(path string) (Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of [Default].
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Encode writes c to w as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks that both inputs are named and that the filter and mixing
// parameters are acceptable to [hybrid.MakeHybrid].
func (c Config) Validate() error {
	if c.Left.Path == "" {
		return fmt.Errorf("%w: left", ErrMissingInput)
	}
	if c.Right.Path == "" {
		return fmt.Errorf("%w: right", ErrMissingInput)
	}
	if c.Output == "" {
		return errors.New("config: missing output path")
	}
	return c.Hybrid().Validate()
}

// Hybrid returns the library configuration for c.
func (c Config) Hybrid() hybrid.Config {
	return hybrid.Config{
		First:       c.Left.Spec(),
		Second:      c.Right.Spec(),
		MixinRatio:  c.MixinRatio,
		ScaleFactor: c.ScaleFactor,
	}
}
