// Command hybrid combines the coarse structure of one image with the fine
// detail of another.
//
// Usage:
//
//	hybrid -left dog.jpg -right cat.jpg -out hybrid.png
//	hybrid -config run.toml -mixin 0.4 -v
//
// Flags given on the command line override values from the -config file,
// which in turn override the built-in defaults.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gogpu/hybrid"
	"github.com/gogpu/hybrid/internal/config"
	"github.com/gogpu/hybrid/internal/image"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("hybrid: %v", err)
	}
}

type flags struct {
	config       string
	verbose      bool
	fit          bool
	saveFiltered bool
	workers      int
	quality      int

	output string
	mixin  float64
	scale  float64
	left   side
	right  side
}

type side struct {
	path  string
	kind  hybrid.FilterKind
	sigma float64
	size  int
}

func parseFlags(args []string, stderr io.Writer) (*flag.FlagSet, *flags, error) {
	def := config.Default()
	f := &flags{
		left:  side{kind: def.Left.Kind},
		right: side{kind: def.Right.Kind},
	}

	fs := flag.NewFlagSet("hybrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "TOML configuration file")
	fs.BoolVar(&f.verbose, "v", false, "log debug output to stderr")
	fs.BoolVar(&f.fit, "fit", false, "resize the right image to the size of the left image")
	fs.BoolVar(&f.saveFiltered, "save-filtered", false, "also write each filtered input next to the output")
	fs.IntVar(&f.workers, "workers", runtime.GOMAXPROCS(0), "correlation workers (1 runs sequentially)")
	fs.IntVar(&f.quality, "quality", image.DefaultJPEGQuality, "JPEG quality (1-100)")

	fs.StringVar(&f.output, "out", def.Output, "output file (.png, .jpg, .bmp, .tif)")
	fs.Float64Var(&f.mixin, "mixin", def.MixinRatio, "weight of the right image in [0, 1]")
	fs.Float64Var(&f.scale, "scale", def.ScaleFactor, "scale factor applied before quantization")

	fs.StringVar(&f.left.path, "left", "", "left input image")
	fs.TextVar(&f.left.kind, "kind1", def.Left.Kind, "left filter: low or high")
	fs.Float64Var(&f.left.sigma, "sigma1", def.Left.Sigma, "left Gaussian sigma")
	fs.IntVar(&f.left.size, "size1", def.Left.Size, "left kernel size (odd)")

	fs.StringVar(&f.right.path, "right", "", "right input image")
	fs.TextVar(&f.right.kind, "kind2", def.Right.Kind, "right filter: low or high")
	fs.Float64Var(&f.right.sigma, "sigma2", def.Right.Sigma, "right Gaussian sigma")
	fs.IntVar(&f.right.size, "size2", def.Right.Size, "right kernel size (odd)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return fs, f, nil
}

// resolve builds the run configuration: defaults, then the file, then the
// flags that were set explicitly.
func resolve(fs *flag.FlagSet, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return config.Config{}, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "out":
			cfg.Output = f.output
		case "mixin":
			cfg.MixinRatio = f.mixin
		case "scale":
			cfg.ScaleFactor = f.scale
		case "left":
			cfg.Left.Path = f.left.path
		case "kind1":
			cfg.Left.Kind = f.left.kind
		case "sigma1":
			cfg.Left.Sigma = f.left.sigma
		case "size1":
			cfg.Left.Size = f.left.size
		case "right":
			cfg.Right.Path = f.right.path
		case "kind2":
			cfg.Right.Kind = f.right.kind
		case "sigma2":
			cfg.Right.Sigma = f.right.sigma
		case "size2":
			cfg.Right.Size = f.right.size
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) error {
	fs, f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if f.verbose {
		hybrid.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer hybrid.SetLogger(nil)
	}

	cfg, err := resolve(fs, f)
	if err != nil {
		return err
	}

	left, err := image.Load(cfg.Left.Path)
	if err != nil {
		return err
	}
	right, err := image.Load(cfg.Right.Path)
	if err != nil {
		return err
	}

	if f.fit {
		s := left.Shape()
		if right, err = image.Resize(right, s.Width, s.Height); err != nil {
			return fmt.Errorf("fit right image: %w", err)
		}
	}

	opts := []hybrid.Option{hybrid.WithWorkers(f.workers)}

	start := time.Now()
	out, err := hybrid.MakeHybrid(left, right, cfg.Hybrid(), opts...)
	if err != nil {
		return err
	}
	hybrid.Logger().Info("hybrid image ready",
		"shape", out.Shape().String(),
		"elapsed", time.Since(start).String())

	if err := image.Save(cfg.Output, out, f.quality); err != nil {
		return err
	}

	if f.saveFiltered {
		if err := saveFiltered(cfg.Output, "left", left, cfg.Left.Spec(), f.quality, opts); err != nil {
			return err
		}
		if err := saveFiltered(cfg.Output, "right", right, cfg.Right.Spec(), f.quality, opts); err != nil {
			return err
		}
	}
	return nil
}

// saveFiltered writes one filtered input as <output>_<name><ext>. High-pass
// residuals are centered on mid gray so that negative detail stays visible.
func saveFiltered(output, name string, img hybrid.Image, spec hybrid.FilterSpec, quality int, opts []hybrid.Option) error {
	filtered, err := hybrid.ApplySpec(img, spec, opts...)
	if err != nil {
		return fmt.Errorf("%s image: %w", name, err)
	}

	if spec.Kind == hybrid.FilterHigh {
		bias, err := hybrid.NewFloatImage(filtered.Shape())
		if err != nil {
			return err
		}
		for i := range bias.Pix() {
			bias.Pix()[i] = 0.5
		}
		if filtered, err = filtered.Add(bias); err != nil {
			return err
		}
	}

	return image.Save(filteredPath(output, name), hybrid.Quantize(filtered.Scale(255)), quality)
}

func filteredPath(output, name string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + name + ext
}
