// Package bits provides helpers for testing and changing single bits of
// unsigned values.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Put sets or resets the bit at the given index depending on v.
func Put[T constraints.Unsigned](b T, i uint8, v bool) T {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// HalfCarryAdd reports whether adding a, b and carry carries out of the
// low nibble.
func HalfCarryAdd(a, b, carry uint8) bool {
	return (a&0xF)+(b&0xF)+carry > 0xF
}

// HalfCarrySub reports whether subtracting b and carry from a borrows
// from bit 4.
func HalfCarrySub(a, b, carry uint8) bool {
	return int(a&0xF)-int(b&0xF)-int(carry) < 0
}
