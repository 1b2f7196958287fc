package zxwitness

import (
	"fmt"
	"image"
	"image/color"
)

// ImageLuminanceSource is a LuminanceSource backed by an in-memory row-major
// luminance buffer.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewLuminanceSource wraps a raw row-major luminance buffer. The buffer is
// copied. It fails with ErrInvalidDimensions if len(luminances) != width*height.
func NewLuminanceSource(luminances []byte, width, height int) (*ImageLuminanceSource, error) {
	if width < 0 || height < 0 || len(luminances) != width*height {
		return nil, fmt.Errorf("%w: %dx%d image with %d luminance bytes",
			ErrInvalidDimensions, width, height, len(luminances))
	}
	lum := make([]byte, len(luminances))
	copy(lum, luminances)
	return &ImageLuminanceSource{luminances: lum, width: width, height: height}, nil
}

// NewImageLuminanceSource creates a LuminanceSource from a Go image.Image.
// Each pixel is converted using (306*R + 601*G + 117*B + 0x200) >> 10 on its
// 8-bit components. Fully transparent pixels are white.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if gray, ok := img.(*image.Gray); ok {
		return NewGrayImageLuminanceSource(gray)
	}
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	luminances := make([]byte, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				luminances[y*w+x] = 0xFF
				continue
			}
			r8, g8, b8 := r>>8, g>>8, b>>8
			luminances[y*w+x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}

	return &ImageLuminanceSource{luminances: luminances, width: w, height: h}
}

// NewGrayImageLuminanceSource creates a LuminanceSource from a *image.Gray,
// using the pixel data directly without conversion.
func NewGrayImageLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	luminances := make([]byte, w*h)

	if img.Stride == w && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		copy(luminances, img.Pix[:w*h])
	} else {
		for y := 0; y < h; y++ {
			srcOff := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(luminances[y*w:], img.Pix[srcOff:srcOff+w])
		}
	}
	return &ImageLuminanceSource{luminances: luminances, width: w, height: h}
}

// Row returns a row of luminance data.
func (s *ImageLuminanceSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	offset := y * s.width
	copy(row, s.luminances[offset:offset+s.width])
	return row[:s.width]
}

// Column returns a column of luminance data.
func (s *ImageLuminanceSource) Column(x int, column []byte) []byte {
	if x < 0 || x >= s.width {
		return nil
	}
	if len(column) < s.height {
		column = make([]byte, s.height)
	}
	for y, offset := 0, x; y < s.height; y, offset = y+1, offset+s.width {
		column[y] = s.luminances[offset]
	}
	return column[:s.height]
}

// Matrix returns a copy of the entire luminance matrix.
func (s *ImageLuminanceSource) Matrix() []byte {
	result := make([]byte, len(s.luminances))
	copy(result, s.luminances)
	return result
}

// Width returns the width of the image.
func (s *ImageLuminanceSource) Width() int {
	return s.width
}

// Height returns the height of the image.
func (s *ImageLuminanceSource) Height() int {
	return s.height
}

// RotateCounterClockwise returns a new ImageLuminanceSource rotated 90 degrees
// counterclockwise, for binarizing scans taken sideways.
func (s *ImageLuminanceSource) RotateCounterClockwise() *ImageLuminanceSource {
	newWidth := s.height
	newHeight := s.width
	newLum := make([]byte, newWidth*newHeight)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			// (x, y) in old image -> (y, width - 1 - x) in new image
			newLum[(s.width-1-x)*newWidth+y] = s.luminances[y*s.width+x]
		}
	}
	return &ImageLuminanceSource{luminances: newLum, width: newWidth, height: newHeight}
}

// BitMatrixToImage converts a bit matrix to a grayscale image where black
// modules are 0 and white modules are 255.
func BitMatrixToImage(matrix interface {
	Width() int
	Height() int
	Get(x, y int) bool
}) *image.Gray {
	w := matrix.Width()
	h := matrix.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
