package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// Register is an 8-bit register of the CPU.
type Register = types.Register

// RegisterPair is a 16-bit view over two Registers.
type RegisterPair = types.RegisterPair

// Registers represents the registers of the CPU.
//
// The CPU has 8 registers: A, B, C, D, E, H, L and F. Each can be
// paired to form a 16-bit register, AF, BC, DE and HL. The pairs are
// views over the 8-bit registers, and the low nibble of F always
// reads as zero.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register
	F Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// registerNames is the operand order used by the opcode encoding.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// hlIndex is the operand index of (HL).
const hlIndex = 6

// registerIndex returns a Register pointer for the given index, which
// must not be hlIndex.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	}
	return &c.A
}

// readIndex returns the operand at index, reading memory at HL for
// hlIndex.
func (c *CPU) readIndex(index uint8) uint8 {
	if index == hlIndex {
		return c.mmu.Read(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeIndex writes the operand at index, writing memory at HL for
// hlIndex.
func (c *CPU) writeIndex(index uint8, value uint8) {
	if index == hlIndex {
		c.mmu.Write(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}
