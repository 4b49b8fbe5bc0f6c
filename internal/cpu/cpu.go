// Package cpu provides the execution engine of the DMG, the Sharp SM83.
// The engine fetches, decodes and executes instructions against an
// mmu.MMU, services interrupts between instructions, and ticks the
// attached timing components by the cycles each step consumed.
package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles in a single frame.
	CyclesPerFrame = 70224

	// interruptCycles is the cost of dispatching an interrupt.
	interruptCycles = 20
	// idleCycles is the cost of a step spent halted or stopped.
	idleCycles = 4
)

// State is the execution state of the CPU.
type State uint8

const (
	// StateRunning is the normal state, executing instructions.
	StateRunning State = iota
	// StateHalted is entered by HALT, and left when an interrupt
	// becomes pending.
	StateHalted
	// StateStopped is entered by STOP, and left when the joypad
	// interrupt is requested.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

var (
	// ErrIllegalOpcode is returned when the CPU fetches one of the
	// opcodes that has no instruction.
	ErrIllegalOpcode = errors.New("illegal opcode")
	// ErrBreakpoint is returned by Run when the PC reaches a
	// breakpoint.
	ErrBreakpoint = errors.New("breakpoint")
)

// OpcodeError records an illegal opcode and the address it was
// fetched from.
type OpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%v 0x%02X at 0x%04X", ErrIllegalOpcode, e.Opcode, e.PC)
}

// Unwrap returns ErrIllegalOpcode.
func (e *OpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// Ticker is a component that is advanced by the cycles consumed
// by each step of the CPU.
type Ticker interface {
	Tick(cycles uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// Cycles is the number of T-cycles executed since the last reset.
	Cycles uint64

	// Debug logs every instruction executed at debug level.
	Debug bool
	// Breakpoints stop Run when the PC reaches one of the addresses.
	Breakpoints map[uint16]struct{}

	mmu *mmu.MMU
	irq *interrupts.Service
	log log.Logger

	// components that need to be ticked
	components []Ticker

	state     State
	ime       bool
	eiPending bool
	haltBug   bool
	taken     bool
}

// NewCPU creates a new CPU instance with the given MMU.
// The MMU is used to read and write to the memory, and
// the components are ticked after every step.
func NewCPU(bus *mmu.MMU, components ...Ticker) *CPU {
	c := &CPU{
		mmu:         bus,
		irq:         bus.Interrupts(),
		log:         bus.Log,
		components:  components,
		Breakpoints: make(map[uint16]struct{}),
	}
	// create register pairs
	c.BC = types.NewRegisterPair(&c.B, &c.C)
	c.DE = types.NewRegisterPair(&c.D, &c.E)
	c.HL = types.NewRegisterPair(&c.H, &c.L)
	c.AF = types.NewMaskedRegisterPair(&c.A, &c.F, 0x0F)

	c.Reset()
	return c
}

// Reset loads the register values left behind by the DMG boot ROM.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100

	c.Cycles = 0
	c.state = StateRunning
	c.ime = false
	c.eiPending = false
	c.haltBug = false
}

// State returns the current execution state.
func (c *CPU) State() State {
	return c.state
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// Step executes a single instruction, or services a pending interrupt,
// and returns the number of T-cycles consumed. The attached components
// are ticked by the same number of cycles.
func (c *CPU) Step() (uint8, error) {
	cycles, err := c.step()
	if err != nil {
		c.log.Errorf("%v", err)
		return 0, err
	}

	c.Cycles += uint64(cycles)
	for _, component := range c.components {
		component.Tick(cycles)
	}

	return cycles, nil
}

func (c *CPU) step() (uint8, error) {
	switch c.state {
	case StateHalted:
		if c.irq.HasInterrupts() {
			c.state = StateRunning
		}
	case StateStopped:
		if c.irq.Flag()&interrupts.JoypadFlag != 0 {
			c.state = StateRunning
		}
	}

	if c.ime && c.irq.HasInterrupts() {
		return c.executeInterrupt(), nil
	}
	if c.state != StateRunning {
		return idleCycles, nil
	}

	// EI takes effect after the instruction that follows it
	enable := c.eiPending
	cycles, err := c.runInstruction()
	if enable && c.eiPending {
		c.ime = true
		c.eiPending = false
	}

	return cycles, err
}

// Run steps the CPU until the cycles consumed by this call reach the
// budget, returning the first error encountered. When a breakpoint is
// reached Run stops before executing it and returns ErrBreakpoint. The
// PC it was called at is never treated as a breakpoint, so calling Run
// again resumes.
func (c *CPU) Run(budget uint64) error {
	var spent uint64
	for first := true; spent < budget; first = false {
		if _, ok := c.Breakpoints[c.PC]; ok && !first && c.state == StateRunning {
			return fmt.Errorf("%w at 0x%04X", ErrBreakpoint, c.PC)
		}

		cycles, err := c.Step()
		if err != nil {
			return err
		}
		spent += uint64(cycles)
	}

	return nil
}

// readInstruction reads the next opcode from memory. After the HALT
// bug the PC fails to increment, so the byte is read twice.
func (c *CPU) readInstruction() uint8 {
	value := c.mmu.Read(c.PC)
	if c.haltBug {
		c.haltBug = false
		return value
	}
	c.PC++
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.mmu.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next two operands as a little endian value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) runInstruction() (uint8, error) {
	currentPC := c.PC
	opcode := c.readInstruction()

	instruction := &InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = &InstructionSetCB[c.readOperand()]
	} else if instruction.fn == nil {
		c.PC = currentPC
		return 0, &OpcodeError{Opcode: opcode, PC: currentPC}
	}

	if c.Debug {
		c.log.Debugf("PC=%04X OP=%02X %-14s AF=%s BC=%s DE=%s HL=%s SP=%04X", currentPC, opcode, instruction.name, c.AF, c.BC, c.DE, c.HL, c.SP)
	}

	// execute the instruction
	c.taken = false
	instruction.fn(c)
	if c.taken {
		return instruction.taken, nil
	}

	return instruction.cycles, nil
}

// executeInterrupt dispatches the highest priority pending interrupt.
func (c *CPU) executeInterrupt() uint8 {
	vector, _ := c.irq.Vector()

	c.ime = false
	c.state = StateRunning
	c.pushStack(c.PC)
	c.PC = vector

	return interruptCycles
}

func (c *CPU) String() string {
	return fmt.Sprintf("AF=%s BC=%s DE=%s HL=%s SP=%04X PC=%04X IME=%t %s", c.AF, c.BC, c.DE, c.HL, c.SP, c.PC, c.ime, c.state)
}
