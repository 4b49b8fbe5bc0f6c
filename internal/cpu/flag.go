package cpu

import "github.com/thelolagemann/dmgcore/pkg/bits"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = bits.Reset(c.F, flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = bits.Set(c.F, flag)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return bits.Test(c.F, flag)
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return bits.Val(c.F, FlagCarry)
}

// setFlags sets all four flags at once. The low nibble of F is
// always cleared.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	f = bits.Put(f, FlagZero, zero)
	f = bits.Put(f, FlagSubtract, subtract)
	f = bits.Put(f, FlagHalfCarry, halfCarry)
	f = bits.Put(f, FlagCarry, carry)
	c.F = f
}
