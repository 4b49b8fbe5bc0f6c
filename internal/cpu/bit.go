package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, position uint8) {
	c.setFlags(!bits.Test(value, position), false, true, c.isFlagSet(FlagCarry))
}

func init() {
	// 0xCB 0x40 - 0xFF - BIT, RES and SET
	for b := uint8(0); b < 8; b++ {
		for r := uint8(0); r < 8; r++ {
			b, r := b, r
			opcode := b<<3 + r

			bitCycles, cycles := uint8(8), uint8(8)
			if r == hlIndex {
				bitCycles, cycles = 12, 16
			}
			DefineInstructionCB(0x40+opcode, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), func(c *CPU) {
				c.testBit(c.readIndex(r), b)
			}, Cycles(bitCycles))
			DefineInstructionCB(0x80+opcode, fmt.Sprintf("RES %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeIndex(r, bits.Reset(c.readIndex(r), b))
			}, Cycles(cycles))
			DefineInstructionCB(0xC0+opcode, fmt.Sprintf("SET %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeIndex(r, bits.Set(c.readIndex(r), b))
			}, Cycles(cycles))
		}
	}
}
