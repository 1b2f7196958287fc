// Package zxwitness converts greyscale luminance images to black/white bit
// matrices under a fixed threshold and captures both forms for later audit.
package zxwitness

import "github.com/ericlevine/zxwitness/bitutil"

// LuminanceSource provides access to greyscale luminance values for an image.
// Implementations are expected to be immutable once handed to a Binarizer.
type LuminanceSource interface {
	// Row returns a row of luminance data, or nil if y is outside [0, Height).
	// If row is non-nil and large enough, it should be reused.
	Row(y int, row []byte) []byte

	// Column returns a column of luminance data, or nil if x is outside
	// [0, Width). If column is non-nil and large enough, it should be reused.
	Column(x int, column []byte) []byte

	// Matrix returns the entire luminance matrix in row-major order.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// LineOrientation selects whether a line is a row or a column of the image.
type LineOrientation int

const (
	LineRow LineOrientation = iota
	LineColumn
)

// String returns the name of the orientation.
func (o LineOrientation) String() string {
	switch o {
	case LineRow:
		return "row"
	case LineColumn:
		return "column"
	default:
		return "unknown"
	}
}

// Binarizer converts luminance data to 1-bit black/white data.
type Binarizer interface {
	// BlackRow returns row y of black/white values.
	BlackRow(y int) (*bitutil.BitArray, error)

	// BlackLine returns row or column l depending on the orientation.
	BlackLine(l int, orientation LineOrientation) (*bitutil.BitArray, error)

	// BlackMatrix returns the 2D matrix of black/white values.
	BlackMatrix() (*bitutil.BitMatrix, error)

	// BlackRowFromMatrix returns row y taken from the matrix if it has already
	// been computed, and from BlackRow otherwise.
	BlackRowFromMatrix(y int) (*bitutil.BitArray, error)

	// CreateBinarizer returns a binarizer of the same kind over another source.
	CreateBinarizer(source LuminanceSource) Binarizer

	// LuminanceSource returns the underlying LuminanceSource.
	LuminanceSource() LuminanceSource

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}
