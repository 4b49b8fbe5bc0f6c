package cpu

import (
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// add adds n, and optionally the carry flag, to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry {
		carry = c.carry()
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	c.setFlags(uint8(sum) == 0, false, bits.HalfCarryAdd(c.A, n, carry), sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts n, and optionally the carry flag, from the A Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	c.A = c.subtract(n, shouldCarry)
}

// compare compares n to the A Register, discarding the result
// of the subtraction.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero. (A == n)
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow. (A < n)
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

func (c *CPU) subtract(n uint8, shouldCarry bool) uint8 {
	var carry uint8
	if shouldCarry {
		carry = c.carry()
	}
	diff := int(c.A) - int(n) - int(carry)
	c.setFlags(uint8(diff) == 0, true, bits.HalfCarrySub(c.A, n, carry), diff < 0)
	return uint8(diff)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.setFlags(incremented == 0, false, n&0x0F == 0x0F, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.setFlags(decremented == 0, true, n&0x0F == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds n to the HL Register pair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0x0FFF)+(n&0x0FFF) > 0x0FFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed 8-bit operand. The half carry
// and carry flags are computed on the unsigned low byte.
//
//	ADD SP, e8
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	result := c.SP + uint16(int8(value))
	low := uint8(c.SP)
	c.setFlags(false, false, bits.HalfCarryAdd(low, value, 0), uint16(low)+uint16(value) > 0xFF)
	return result
}

func init() {
	// 0x80 - 0xBF - ALU A, r
	type alu struct {
		name string
		fn   func(c *CPU, n uint8)
	}
	operations := [8]alu{
		{"ADD A, ", func(c *CPU, n uint8) { c.add(n, false) }},
		{"ADC A, ", func(c *CPU, n uint8) { c.add(n, true) }},
		{"SUB ", func(c *CPU, n uint8) { c.sub(n, false) }},
		{"SBC A, ", func(c *CPU, n uint8) { c.sub(n, true) }},
		{"AND ", (*CPU).and},
		{"XOR ", (*CPU).xor},
		{"OR ", (*CPU).or},
		{"CP ", (*CPU).compare},
	}
	for o, operation := range operations {
		operation := operation
		for r := uint8(0); r < 8; r++ {
			r := r
			cycles := uint8(4)
			if r == hlIndex {
				cycles = 8
			}
			DefineInstruction(0x80+uint8(o)<<3+r, operation.name+registerNames[r], func(c *CPU) {
				operation.fn(c, c.readIndex(r))
			}, Cycles(cycles))
		}
		// 0xC6, 0xCE, ..., 0xFE - ALU A, d8
		DefineInstruction(0xC6+uint8(o)<<3, operation.name+"d8", func(c *CPU) {
			operation.fn(c, c.readOperand())
		}, Cycles(8))
	}

	// INC r, DEC r
	for r := uint8(0); r < 8; r++ {
		r := r
		cycles := uint8(4)
		if r == hlIndex {
			cycles = 12
		}
		DefineInstruction(0x04+r<<3, "INC "+registerNames[r], func(c *CPU) {
			c.writeIndex(r, c.increment(c.readIndex(r)))
		}, Cycles(cycles))
		DefineInstruction(0x05+r<<3, "DEC "+registerNames[r], func(c *CPU) {
			c.writeIndex(r, c.decrement(c.readIndex(r)))
		}, Cycles(cycles))
	}

	// 16-bit arithmetic
	pairs := [3]struct {
		name string
		pair func(c *CPU) *RegisterPair
	}{
		{"BC", func(c *CPU) *RegisterPair { return c.BC }},
		{"DE", func(c *CPU) *RegisterPair { return c.DE }},
		{"HL", func(c *CPU) *RegisterPair { return c.HL }},
	}
	for i, p := range pairs {
		p := p
		opcode := uint8(i) << 4
		DefineInstruction(0x03+opcode, "INC "+p.name, func(c *CPU) { p.pair(c).Inc() }, Cycles(8))
		DefineInstruction(0x0B+opcode, "DEC "+p.name, func(c *CPU) { p.pair(c).Dec() }, Cycles(8))
		DefineInstruction(0x09+opcode, "ADD HL, "+p.name, func(c *CPU) { c.addHL(p.pair(c).Uint16()) }, Cycles(8))
	}
	DefineInstruction(0x33, "INC SP", func(c *CPU) { c.SP++ }, Cycles(8))
	DefineInstruction(0x3B, "DEC SP", func(c *CPU) { c.SP-- }, Cycles(8))
	DefineInstruction(0x39, "ADD HL, SP", func(c *CPU) { c.addHL(c.SP) }, Cycles(8))
	DefineInstruction(0xE8, "ADD SP, e8", func(c *CPU) { c.SP = c.addSPSigned() }, Cycles(16))
}
