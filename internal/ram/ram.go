// Package ram provides a basic RAM implementation.
package ram

import "fmt"

// RAM represents a block of RAM. The block is addressed with absolute
// bus addresses, which are masked down to the size of the block, so a
// block mapped to a region larger than itself mirrors its contents.
type RAM struct {
	data []uint8
	mask uint16
}

// NewRAM returns a new RAM of the given size, which must be a
// power of two no larger than 64kB.
func NewRAM(size uint32) *RAM {
	if size == 0 || size > 0x10000 || size&(size-1) != 0 {
		panic(fmt.Sprintf("ram: invalid size %d", size))
	}
	return &RAM{
		data: make([]uint8, size),
		mask: uint16(size - 1),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[address&r.mask]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[address&r.mask] = value
}

// Size returns the size of the block in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// CopyTo copies the contents of the block into dst, returning the
// number of bytes copied.
func (r *RAM) CopyTo(dst []uint8) int {
	return copy(dst, r.data)
}

// Clear zeroes the block.
func (r *RAM) Clear() {
	for i := range r.data {
		r.data[i] = 0
	}
}
