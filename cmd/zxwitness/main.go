package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	zxwitness "github.com/ericlevine/zxwitness"
	"github.com/ericlevine/zxwitness/binarizer"
	"github.com/ericlevine/zxwitness/internal/config"
	"github.com/ericlevine/zxwitness/internal/log"
	"github.com/ericlevine/zxwitness/witness"
)

type options struct {
	threshold uint
	rotate    bool
	width     int
	out       string
	png       string
	print     bool
	verify    bool
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var opts options
	flag.UintVar(&opts.threshold, "threshold", uint(cfg.Threshold), "luminance below this value is black (0-255)")
	flag.BoolVar(&opts.rotate, "rotate", false, "rotate the image 90 degrees counterclockwise before binarizing")
	flag.IntVar(&opts.width, "width", 0, "resize the image to this width before binarizing (0 keeps the original)")
	flag.StringVar(&opts.out, "out", "", "write the witness capture as JSON to this file")
	flag.StringVar(&opts.png, "png", "", "write the binarized image to this file (format from extension)")
	flag.BoolVar(&opts.print, "print", false, "print the binarized image to stdout")
	flag.BoolVar(&opts.verify, "verify", false, "re-check the capture against the threshold before writing it")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", cfg.LogFormat, "log format: text or json")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zxwitness [flags] <image-file>\n\n")
		fmt.Fprintf(os.Stderr, "Binarize an image (PNG, JPEG, GIF, BMP, TIFF, WebP) with a fixed threshold\n")
		fmt.Fprintf(os.Stderr, "and capture the greyscale and binary forms as a witness file and/or image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.Init(*logLevel, *logFormat)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if opts.threshold > 255 {
		fmt.Fprintf(os.Stderr, "error: threshold %d out of range [0, 255]\n", opts.threshold)
		os.Exit(1)
	}

	path := flag.Arg(0)
	if err := run(path, opts); err != nil {
		log.Error("binarization failed", "path", path, "err", err)
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
		os.Exit(1)
	}
}

func run(path string, opts options) error {
	logger := log.With("path", path)
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if opts.width > 0 && opts.width != img.Bounds().Dx() {
		img = imaging.Resize(img, opts.width, 0, imaging.Lanczos)
	}

	capture, err := binarize(img, uint8(opts.threshold), opts.rotate)
	if err != nil {
		return err
	}
	logger.Info("image binarized",
		"width", capture.Width(),
		"height", capture.Height(),
		"threshold", opts.threshold,
		"rotated", opts.rotate)
	if black := capture.Binary().Cardinality(); black == 0 || black == capture.Width()*capture.Height() {
		logger.Warn("binarized image is uniform", "black", black, "threshold", opts.threshold)
	}

	if opts.verify {
		if err := capture.Verify(uint8(opts.threshold)); err != nil {
			return err
		}
	}
	if opts.print {
		fmt.Print(capture.Binary().StringWithChars("#", "."))
	}
	if opts.out != "" {
		if err := capture.Save(opts.out); err != nil {
			return err
		}
		logger.Info("witness written", "out", opts.out)
	}
	if opts.png != "" {
		if err := imaging.Save(zxwitness.BitMatrixToImage(capture.Binary()), opts.png); err != nil {
			return fmt.Errorf("write binarized image: %w", err)
		}
		logger.Info("binarized image written", "out", opts.png)
	}
	return nil
}

// binarize runs a full fixed-threshold pass over img, optionally on a
// counterclockwise rotation of it, and captures the result.
func binarize(img image.Image, threshold uint8, rotate bool) (*witness.Capture, error) {
	source := zxwitness.NewImageLuminanceSource(img)
	var b zxwitness.Binarizer = binarizer.NewFixedThresholdWithThreshold(source, threshold)
	if rotate {
		b = b.CreateBinarizer(source.RotateCounterClockwise())
	}
	capture, err := witness.FromBinarizer(b)
	if errors.Is(err, zxwitness.ErrInvalidDimensions) {
		return nil, fmt.Errorf("image has no pixels: %w", err)
	}
	return capture, err
}
