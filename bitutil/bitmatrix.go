package bitutil

import (
	"math/bits"
	"strings"
)

// BitMatrix represents a 2D matrix of bits.
// x is the column position, y is the row position. The origin is at the top-left.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new BitMatrix with the given width and height.
// It panics if either dimension is less than 1.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseBools creates a BitMatrix from a flat row-major slice of booleans.
// It panics if len(values) != width*height.
func ParseBools(values []bool, width, height int) *BitMatrix {
	if len(values) != width*height {
		panic("bitmatrix: value count does not match dimensions")
	}
	bm := NewBitMatrix(width, height)
	for i, v := range values {
		if v {
			bm.Set(i%width, i/width)
		}
	}
	return bm
}

// ParseStringMatrix creates a BitMatrix from a string representation with
// one row per line.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var values []bool
	rowLength := -1
	nRows := 0
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", "\n"), "\n") {
		n := 0
		for len(line) > 0 {
			switch {
			case strings.HasPrefix(line, setStr):
				values = append(values, true)
				line = line[len(setStr):]
			case strings.HasPrefix(line, unsetStr):
				values = append(values, false)
				line = line[len(unsetStr):]
			default:
				panic("bitmatrix: illegal character encountered")
			}
			n++
		}
		if n == 0 {
			continue
		}
		if rowLength == -1 {
			rowLength = n
		} else if n != rowLength {
			panic("bitmatrix: row lengths do not match")
		}
		nRows++
	}
	return ParseBools(values, rowLength, nRows)
}

// Get returns true if the bit at (x, y) is set. Coordinates are not checked;
// x in [width, 32*rowSize) reads the unused padding bits, which are always 0.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Row returns row y as an independent BitArray. If row is nil or too small, a
// new one is allocated.
func (bm *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < bm.width {
		row = NewBitArray(bm.width)
	} else {
		row.Clear()
	}
	offset := y * bm.rowSize
	for x := 0; x < bm.rowSize; x++ {
		row.setBulk(x*32, bm.data[offset+x])
	}
	return row
}

// Bools flattens the matrix into one boolean per pixel in row-major order.
func (bm *BitMatrix) Bools() []bool {
	out := make([]bool, 0, bm.width*bm.height)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			out = append(out, bm.Get(x, y))
		}
	}
	return out
}

// Cardinality returns the number of set bits.
func (bm *BitMatrix) Cardinality() int {
	n := 0
	for _, w := range bm.data {
		n += bits.OnesCount32(w)
	}
	return n
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
