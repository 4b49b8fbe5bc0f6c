package cpu

import "fmt"

// condition is one of the four branch conditions.
type condition struct {
	name string
	fn   func(c *CPU) bool
}

// conditions are in the order of the opcode encoding.
var conditions = [4]condition{
	{"NZ", func(c *CPU) bool { return !c.isFlagSet(FlagZero) }},
	{"Z", func(c *CPU) bool { return c.isFlagSet(FlagZero) }},
	{"NC", func(c *CPU) bool { return !c.isFlagSet(FlagCarry) }},
	{"C", func(c *CPU) bool { return c.isFlagSet(FlagCarry) }},
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// callConditional pushes the address of the next instruction onto the stack and
// jumps to the given address if the given condition is true. The operand is
// always read.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) callConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.taken = true
		c.call(address)
	}
}

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC += uint16(int8(offset))
}

// jumpRelativeConditional jumps to the address relative to the current PC if
// the given condition is true.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelativeConditional(condition bool) {
	offset := c.readOperand()
	if condition {
		c.taken = true
		c.jumpRelative(offset)
	}
}

// jumpAbsoluteConditional jumps to the given address if the given condition is
// true.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsoluteConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.taken = true
		c.PC = address
	}
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.popStack()
}

// retConditional pops the top two bytes off the stack and jumps to that
// address if the given condition is true.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(condition bool) {
	if condition {
		c.taken = true
		c.ret()
	}
}

// retInterrupt pops the top two bytes off the stack and jumps to that address.
// Unlike EI, it enables interrupts immediately.
//
//	RETI
func (c *CPU) retInterrupt() {
	c.ret()
	c.ime = true
	c.eiPending = false
}

func init() {
	DefineInstruction(0x18, "JR e8", func(c *CPU) { c.jumpRelative(c.readOperand()) }, Cycles(12))
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.PC = c.readOperand16() }, Cycles(16))
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(c.readOperand16()) }, Cycles(24))
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret() }, Cycles(16))
	DefineInstruction(0xD9, "RETI", func(c *CPU) { c.retInterrupt() }, Cycles(16))

	for i, cc := range conditions {
		cc := cc
		opcode := uint8(i) << 3
		DefineInstruction(0x20+opcode, "JR "+cc.name+", e8", func(c *CPU) {
			c.jumpRelativeConditional(cc.fn(c))
		}, Cycles(8), Taken(12))
		DefineInstruction(0xC2+opcode, "JP "+cc.name+", a16", func(c *CPU) {
			c.jumpAbsoluteConditional(cc.fn(c))
		}, Cycles(12), Taken(16))
		DefineInstruction(0xC4+opcode, "CALL "+cc.name+", a16", func(c *CPU) {
			c.callConditional(cc.fn(c))
		}, Cycles(12), Taken(24))
		DefineInstruction(0xC0+opcode, "RET "+cc.name, func(c *CPU) {
			c.retConditional(cc.fn(c))
		}, Cycles(8), Taken(20))
	}

	// RST n
	for i := uint8(0); i < 8; i++ {
		address := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02XH", address), func(c *CPU) {
			c.call(address)
		}, Cycles(16))
	}
}
