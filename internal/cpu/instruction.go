package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Instruction is a single entry of an instruction table.
type Instruction struct {
	name   string
	fn     func(*CPU)
	cycles uint8
	taken  uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the number of T-cycles the instruction takes, or for a
// conditional instruction, the number it takes when not taken.
func (i Instruction) Cycles() uint8 {
	return i.cycles
}

// Taken returns the number of T-cycles a conditional instruction takes
// when the condition holds. It equals Cycles for other instructions.
func (i Instruction) Taken() uint8 {
	return i.taken
}

// Opt configures an Instruction.
type Opt func(*Instruction)

// Cycles sets the number of T-cycles an instruction takes.
func Cycles(cycles uint8) Opt {
	return func(i *Instruction) {
		i.cycles = cycles
	}
}

// Taken sets the number of T-cycles a conditional instruction takes
// when the condition holds.
func Taken(cycles uint8) Opt {
	return func(i *Instruction) {
		i.taken = cycles
	}
}

func newInstruction(name string, fn func(*CPU), opts ...Opt) Instruction {
	instruction := Instruction{
		name:   name,
		fn:     fn,
		cycles: 4,
	}
	for _, opt := range opts {
		opt(&instruction)
	}
	if instruction.taken == 0 {
		instruction.taken = instruction.cycles
	}
	return instruction
}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU), opts ...Opt) {
	InstructionSet[opcode] = newInstruction(name, fn, opts...)
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode. The cycles include the fetch of the prefix.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU), opts ...Opt) {
	InstructionSetCB[opcode] = newInstruction(name, fn, opts...)
}

var (
	// InstructionSet holds the unprefixed instructions. The entries
	// for the illegal opcodes, and for the 0xCB prefix, are empty.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed with 0xCB.
	InstructionSetCB [256]Instruction
)

// illegalOpcodes have no instruction, and stop the CPU when fetched.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// STOP is followed by a byte that is skipped
		c.PC++
		c.mmu.Write(types.DIV, 0)
		c.state = StateStopped
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) { c.halt() })
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.ime = false
		c.eiPending = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.eiPending = true })
}

// halt enters the halted state. With the IME clear and an interrupt
// already pending, the CPU does not halt, and instead fails to
// increment the PC on the next opcode fetch.
//
//	HALT
func (c *CPU) halt() {
	if c.ime || c.eiPending || !c.irq.HasInterrupts() {
		c.state = StateHalted
		return
	}
	c.haltBug = true
}

// decimalAdjust adjusts the A Register so that it holds the binary
// coded decimal result of the previous addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}
