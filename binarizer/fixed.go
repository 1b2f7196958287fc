// Package binarizer provides a fixed-threshold implementation of
// zxwitness.Binarizer.
package binarizer

import (
	"fmt"

	zxwitness "github.com/ericlevine/zxwitness"
	"github.com/ericlevine/zxwitness/bitutil"
	"github.com/ericlevine/zxwitness/internal/log"
)

// DefaultThreshold is the midpoint of the 0-255 luminance range.
const DefaultThreshold uint8 = 128

// FixedThreshold binarizes with a constant threshold: a pixel is black when its
// luminance is strictly below the threshold, so the threshold value itself is
// white.
//
// Rows, columns and the full matrix are each computed at most once and cached
// independently. FixedThreshold is safe for concurrent use provided the
// source supports concurrent reads. Returned rows, columns and matrices are
// shared with the cache and must not be modified.
type FixedThreshold struct {
	source    zxwitness.LuminanceSource
	threshold uint8
	width     int
	height    int
	rows      []cell[*bitutil.BitArray]
	columns   []cell[*bitutil.BitArray]
	matrix    cell[*bitutil.BitMatrix]
}

var _ zxwitness.Binarizer = (*FixedThreshold)(nil)

// NewFixedThreshold creates a FixedThreshold binarizer using DefaultThreshold.
func NewFixedThreshold(source zxwitness.LuminanceSource) *FixedThreshold {
	return NewFixedThresholdWithThreshold(source, DefaultThreshold)
}

// NewFixedThresholdWithThreshold creates a FixedThreshold binarizer. Pixels
// with luminance < threshold become black.
func NewFixedThresholdWithThreshold(source zxwitness.LuminanceSource, threshold uint8) *FixedThreshold {
	width := source.Width()
	height := source.Height()
	return &FixedThreshold{
		source:    source,
		threshold: threshold,
		width:     width,
		height:    height,
		rows:      make([]cell[*bitutil.BitArray], height),
		columns:   make([]cell[*bitutil.BitArray], width),
	}
}

// Threshold returns the threshold used by this binarizer.
func (f *FixedThreshold) Threshold() uint8 { return f.threshold }

// LuminanceSource returns the underlying source.
func (f *FixedThreshold) LuminanceSource() zxwitness.LuminanceSource { return f.source }

// Width returns the image width recorded at construction.
func (f *FixedThreshold) Width() int { return f.width }

// Height returns the image height recorded at construction.
func (f *FixedThreshold) Height() int { return f.height }

// BlackRow returns row y, computing it on first use.
func (f *FixedThreshold) BlackRow(y int) (*bitutil.BitArray, error) {
	if y < 0 || y >= f.height {
		return nil, fmt.Errorf("%w: row %d not in [0, %d)", zxwitness.ErrIndexOutOfBounds, y, f.height)
	}
	return f.rows[y].get(func() *bitutil.BitArray {
		log.Debug("binarizing row", "y", y, "threshold", f.threshold)
		return f.binarizeLine(f.source.Row(y, nil), f.width)
	}), nil
}

// BlackLine returns row l or column l. Rows come from BlackRow; columns have
// their own cache and are never derived from rows or the matrix.
func (f *FixedThreshold) BlackLine(l int, orientation zxwitness.LineOrientation) (*bitutil.BitArray, error) {
	if orientation == zxwitness.LineRow {
		return f.BlackRow(l)
	}
	if l < 0 || l >= f.width {
		return nil, fmt.Errorf("%w: column %d not in [0, %d)", zxwitness.ErrIndexOutOfBounds, l, f.width)
	}
	return f.columns[l].get(func() *bitutil.BitArray {
		log.Debug("binarizing column", "x", l, "threshold", f.threshold)
		return f.binarizeLine(f.source.Column(l, nil), f.height)
	}), nil
}

// BlackMatrix returns the full binarized matrix, reading the source's whole
// luminance buffer on first use.
func (f *FixedThreshold) BlackMatrix() (*bitutil.BitMatrix, error) {
	if f.width < 1 || f.height < 1 {
		return nil, fmt.Errorf("%w: %dx%d image", zxwitness.ErrInvalidDimensions, f.width, f.height)
	}
	return f.matrix.get(func() *bitutil.BitMatrix {
		log.Debug("binarizing matrix", "width", f.width, "height", f.height, "threshold", f.threshold)
		matrix := bitutil.NewBitMatrix(f.width, f.height)
		luminances := f.source.Matrix()
		for y := 0; y < f.height; y++ {
			offset := y * f.width
			for x := 0; x < f.width; x++ {
				if luminances[offset+x] < f.threshold {
					matrix.Set(x, y)
				}
			}
		}
		return matrix
	}), nil
}

// BlackRowFromMatrix returns a copy of row y of the cached matrix when the
// matrix has been computed. Otherwise it falls back to BlackRow. It never
// computes the matrix.
func (f *FixedThreshold) BlackRowFromMatrix(y int) (*bitutil.BitArray, error) {
	if y < 0 || y >= f.height {
		return nil, fmt.Errorf("%w: row %d not in [0, %d)", zxwitness.ErrIndexOutOfBounds, y, f.height)
	}
	if matrix, ok := f.matrix.peek(); ok {
		return matrix.Row(y, nil), nil
	}
	return f.BlackRow(y)
}

// CreateBinarizer returns a FixedThreshold with the same threshold over source.
// No cached state is shared with f.
func (f *FixedThreshold) CreateBinarizer(source zxwitness.LuminanceSource) zxwitness.Binarizer {
	return NewFixedThresholdWithThreshold(source, f.threshold)
}

func (f *FixedThreshold) binarizeLine(luminances []byte, size int) *bitutil.BitArray {
	line := bitutil.NewBitArray(size)
	for i := 0; i < size && i < len(luminances); i++ {
		if luminances[i] < f.threshold {
			line.Set(i)
		}
	}
	return line
}
