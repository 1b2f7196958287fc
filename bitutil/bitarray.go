// Package bitutil provides the packed bit containers that hold binarized
// image data.
package bitutil

import (
	"math/bits"
	"strings"
)

// BitArray is a fixed-size array of bits packed into uint32 words.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new BitArray with the given size.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: makeArray(size),
		size: size,
	}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// setBulk replaces the 32 bits starting at bit i.
func (ba *BitArray) setBulk(i int, newBits uint32) {
	ba.bits[i/32] = newBits
}

// Clear clears all bits.
func (ba *BitArray) Clear() {
	for i := range ba.bits {
		ba.bits[i] = 0
	}
}

// Cardinality returns the number of set bits.
func (ba *BitArray) Cardinality() int {
	n := 0
	for _, w := range ba.bits {
		n += bits.OnesCount32(w)
	}
	return n
}

// Bools returns the bits as a slice of booleans, one per index.
func (ba *BitArray) Bools() []bool {
	out := make([]bool, ba.size)
	for i := range out {
		out[i] = ba.Get(i)
	}
	return out
}

// Clone returns a copy of this BitArray.
func (ba *BitArray) Clone() *BitArray {
	b := make([]uint32, len(ba.bits))
	copy(b, ba.bits)
	return &BitArray{bits: b, size: ba.size}
}

// Equals returns true if both arrays have the same size and bits.
func (ba *BitArray) Equals(other *BitArray) bool {
	if other == nil || ba.size != other.size {
		return false
	}
	for i := range ba.bits {
		if ba.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// String returns a string representation using 'X' for set and '.' for unset.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8 + 1)
	for i := 0; i < ba.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
