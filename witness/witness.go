// Package witness captures a greyscale image together with its binarized form
// so downstream audit or proof tooling can consume both without re-deriving
// either one.
package witness

import (
	"fmt"

	zxwitness "github.com/ericlevine/zxwitness"
	"github.com/ericlevine/zxwitness/bitutil"
)

// Capture is an immutable snapshot of a luminance buffer and the binary matrix
// produced from it. It holds no reference to the binarizer that produced it
// and is safe to share between goroutines.
type Capture struct {
	width  int
	height int
	image  []byte
	binary *bitutil.BitMatrix
}

// New creates a Capture from a row-major luminance buffer and a binary matrix
// of the same dimensions. Both are copied.
//
// It panics if len(image) != width*height or if the matrix dimensions differ
// from width × height. These are integration errors, not runtime conditions.
func New(width, height int, image []byte, binary *bitutil.BitMatrix) *Capture {
	if len(image) != width*height {
		panic(fmt.Sprintf("witness: image size mismatch: expected %d bytes, got %d", width*height, len(image)))
	}
	if binary == nil || binary.Width() != width || binary.Height() != height {
		panic(fmt.Sprintf("witness: binary matrix does not match %dx%d image", width, height))
	}
	img := make([]byte, len(image))
	copy(img, image)
	return &Capture{
		width:  width,
		height: height,
		image:  img,
		binary: binary.Clone(),
	}
}

// FromBinarizer captures the full binarization pass of b together with a copy
// of its source luminance.
func FromBinarizer(b zxwitness.Binarizer) (*Capture, error) {
	matrix, err := b.BlackMatrix()
	if err != nil {
		return nil, fmt.Errorf("witness: binarize: %w", err)
	}
	source := b.LuminanceSource()
	return New(source.Width(), source.Height(), source.Matrix(), matrix), nil
}

// Width returns the width of the image in pixels.
func (c *Capture) Width() int { return c.width }

// Height returns the height of the image in pixels.
func (c *Capture) Height() int { return c.height }

// Image returns a copy of the row-major luminance buffer.
func (c *Capture) Image() []byte {
	img := make([]byte, len(c.image))
	copy(img, c.image)
	return img
}

// Binary returns the binary matrix. It is shared and must not be modified.
func (c *Capture) Binary() *bitutil.BitMatrix { return c.binary }

// Pixel returns the luminance at (x, y). It panics if (x, y) is outside the
// image.
func (c *Capture) Pixel(x, y int) uint8 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic(fmt.Sprintf("witness: pixel (%d, %d) out of bounds for %dx%d image", x, y, c.width, c.height))
	}
	return c.image[y*c.width+x]
}

// BinarizedPixel reports whether (x, y) is black in the binary matrix.
// Bounds are left to the bit matrix: a row outside the image panics, while an
// x past Width that still falls in the row's last packed word reads as white.
func (c *Capture) BinarizedPixel(x, y int) bool {
	return c.binary.Get(x, y)
}

// MismatchError reports a pixel whose stored bit disagrees with the threshold
// rule.
type MismatchError struct {
	X, Y      int
	Luminance uint8
	Threshold uint8
	Black     bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("witness: pixel (%d, %d) luminance %d is stored as black=%t under threshold %d",
		e.X, e.Y, e.Luminance, e.Black, e.Threshold)
}

// Verify checks that every stored bit equals luminance < threshold and returns
// a *MismatchError for the first pixel in row-major order that does not.
func (c *Capture) Verify(threshold uint8) error {
	for y := 0; y < c.height; y++ {
		offset := y * c.width
		for x := 0; x < c.width; x++ {
			lum := c.image[offset+x]
			black := c.binary.Get(x, y)
			if black != (lum < threshold) {
				return &MismatchError{X: x, Y: y, Luminance: lum, Threshold: threshold, Black: black}
			}
		}
	}
	return nil
}
