package types

import "fmt"

// Register represents a DMG Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair is a 16-bit view over two Registers. It holds no storage of
// its own: reading the pair reads both bytes, and writing the pair writes
// both bytes, so byte and pair access can never disagree.
type RegisterPair struct {
	High *Register
	Low  *Register

	// unused are the bits of the low byte that always read as zero,
	// used by AF to keep the low nibble of F clear.
	unused uint8
}

// NewRegisterPair returns a RegisterPair viewing high and low.
func NewRegisterPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low}
}

// NewMaskedRegisterPair returns a RegisterPair whose low byte has the
// unused bits cleared on every write.
func NewMaskedRegisterPair(high, low *Register, unused uint8) *RegisterPair {
	return &RegisterPair{High: high, Low: low, unused: unused}
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) &^ r.unused
}

// Inc increments the pair by one, wrapping at 0xFFFF.
func (r *RegisterPair) Inc() {
	r.SetUint16(r.Uint16() + 1)
}

// Dec decrements the pair by one, wrapping at 0x0000.
func (r *RegisterPair) Dec() {
	r.SetUint16(r.Uint16() - 1)
}

func (r *RegisterPair) String() string {
	return fmt.Sprintf("%04X", r.Uint16())
}
