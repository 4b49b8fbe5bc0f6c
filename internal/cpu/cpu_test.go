package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// newTestCPU returns a CPU with the program loaded at 0x0100.
func newTestCPU(program ...uint8) *CPU {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	return NewCPU(mmu.NewMMU(cartridge.New(rom, nil), nil))
}

func step(t *testing.T, c *CPU) uint8 {
	t.Helper()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return cycles
}

type counter struct{ cycles uint64 }

func (c *counter) Tick(cycles uint8) { c.cycles += uint64(cycles) }

func TestCPU_Reset(t *testing.T) {
	c := newTestCPU()
	expected := map[string]uint16{
		"AF": c.AF.Uint16(), "BC": c.BC.Uint16(), "DE": c.DE.Uint16(), "HL": c.HL.Uint16(),
		"SP": c.SP, "PC": c.PC,
	}
	want := map[string]uint16{
		"AF": 0x01B0, "BC": 0x0013, "DE": 0x00D8, "HL": 0x014D, "SP": 0xFFFE, "PC": 0x0100,
	}
	for name, v := range want {
		if expected[name] != v {
			t.Errorf("%s: expected 0x%04X, got 0x%04X", name, v, expected[name])
		}
	}
	if c.State() != StateRunning || c.IME() {
		t.Errorf("expected running with IME clear, got %s %t", c.State(), c.IME())
	}
}

func TestCPU_Run(t *testing.T) {
	t.Run("single NOP", func(t *testing.T) {
		rom := make([]byte, 0x8000)
		rom[0x0147] = 0x00 // ROM only
		c := NewCPU(mmu.NewMMU(cartridge.New(rom, nil), nil))
		before := c.Registers
		if err := c.Run(1); err != nil {
			t.Fatal(err)
		}
		if c.PC != 0x0101 || c.Cycles != 4 {
			t.Errorf("expected PC 0x0101 after 4 cycles, got 0x%04X after %d", c.PC, c.Cycles)
		}
		if c.F != 0xB0 || c.F != before.F {
			t.Errorf("expected F unchanged at 0xB0, got 0x%02X", c.F)
		}
		if c.A != before.A || c.B != before.B || c.C != before.C || c.D != before.D ||
			c.E != before.E || c.H != before.H || c.L != before.L || c.SP != 0xFFFE {
			t.Errorf("expected registers unchanged, got %s", c)
		}
	})
	t.Run("budget", func(t *testing.T) {
		c := newTestCPU()
		if err := c.Run(CyclesPerFrame); err != nil {
			t.Fatal(err)
		}
		if c.Cycles != CyclesPerFrame {
			t.Errorf("expected %d cycles, got %d", CyclesPerFrame, c.Cycles)
		}
		if err := c.Run(8); err != nil {
			t.Fatal(err)
		}
		if c.Cycles != CyclesPerFrame+8 {
			t.Errorf("expected budget to be relative to the call, got %d", c.Cycles)
		}
	})
	t.Run("tickers", func(t *testing.T) {
		rom := make([]byte, 0x8000)
		rom[0x100] = 0xC3 // JP 0x0100
		rom[0x101] = 0x00
		rom[0x102] = 0x01
		ticker := &counter{}
		c := NewCPU(mmu.NewMMU(cartridge.New(rom, nil), nil), ticker)
		if err := c.Run(160); err != nil {
			t.Fatal(err)
		}
		if ticker.cycles != 160 || c.PC != 0x0100 {
			t.Errorf("expected 160 ticked cycles at 0x0100, got %d at 0x%04X", ticker.cycles, c.PC)
		}
	})
	t.Run("breakpoint", func(t *testing.T) {
		c := newTestCPU(0x00, 0x00, 0x00, 0x00)
		c.Breakpoints[0x0102] = struct{}{}
		err := c.Run(100)
		if !errors.Is(err, ErrBreakpoint) {
			t.Fatalf("expected breakpoint, got %v", err)
		}
		if c.PC != 0x0102 {
			t.Errorf("expected to stop at 0x0102, got 0x%04X", c.PC)
		}
		if err := c.Run(4); err != nil {
			t.Errorf("expected resume past breakpoint, got %v", err)
		}
		if c.PC != 0x0103 {
			t.Errorf("expected PC 0x0103, got 0x%04X", c.PC)
		}
	})
}

func TestCPU_IllegalOpcode(t *testing.T) {
	for _, opcode := range illegalOpcodes {
		c := newTestCPU(0x00, opcode)
		step(t, c)
		_, err := c.Step()

		var opErr *OpcodeError
		if !errors.As(err, &opErr) || !errors.Is(err, ErrIllegalOpcode) {
			t.Fatalf("0x%02X: expected opcode error, got %v", opcode, err)
		}
		if opErr.Opcode != opcode || opErr.PC != 0x0101 {
			t.Errorf("expected 0x%02X at 0x0101, got 0x%02X at 0x%04X", opcode, opErr.Opcode, opErr.PC)
		}
		if c.PC != 0x0101 || c.Cycles != 4 {
			t.Errorf("expected CPU to be left in place")
		}
		if err := c.Run(100); !errors.Is(err, ErrIllegalOpcode) {
			t.Errorf("expected Run to return the error, got %v", err)
		}
	}
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("priority", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.ime = true
		c.mmu.Write(types.IE, interrupts.VBlankFlag|interrupts.TimerFlag)
		c.irq.Request(interrupts.TimerFlag)
		c.irq.Request(interrupts.VBlankFlag)

		if cycles := step(t, c); cycles != 20 {
			t.Errorf("expected 20 cycles, got %d", cycles)
		}
		if c.PC != 0x0040 {
			t.Errorf("expected vblank vector, got 0x%04X", c.PC)
		}
		if c.irq.Flag() != interrupts.TimerFlag {
			t.Errorf("expected timer to remain requested, got %05b", c.irq.Flag())
		}
		if c.IME() {
			t.Errorf("expected IME to be cleared")
		}
		if c.SP != 0xFFFC || c.mmu.Read(0xFFFD) != 0x01 || c.mmu.Read(0xFFFC) != 0x00 {
			t.Errorf("expected return address 0x0100 on the stack")
		}
	})
	t.Run("disabled", func(t *testing.T) {
		c := newTestCPU(0x00)
		c.mmu.Write(types.IE, 0x1F)
		c.irq.Request(interrupts.SerialFlag)
		step(t, c)
		if c.PC != 0x0101 {
			t.Errorf("expected no dispatch with IME clear, got 0x%04X", c.PC)
		}
	})
	t.Run("EI delay", func(t *testing.T) {
		c := newTestCPU(0xFB, 0x00, 0x00)
		c.mmu.Write(types.IE, interrupts.JoypadFlag)
		c.irq.Request(interrupts.JoypadFlag)

		step(t, c) // EI
		if c.IME() {
			t.Fatalf("expected IME to be delayed")
		}
		step(t, c) // NOP
		if !c.IME() || c.PC != 0x0102 {
			t.Fatalf("expected IME after the following instruction")
		}
		step(t, c)
		if c.PC != 0x0060 {
			t.Errorf("expected joypad vector, got 0x%04X", c.PC)
		}
	})
	t.Run("DI cancels EI", func(t *testing.T) {
		c := newTestCPU(0xFB, 0xF3, 0x00)
		step(t, c)
		step(t, c)
		step(t, c)
		if c.IME() {
			t.Errorf("expected DI to cancel pending EI")
		}
	})
	t.Run("RETI", func(t *testing.T) {
		c := newTestCPU(0xD9)
		c.pushStack(0x1234)
		if cycles := step(t, c); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if c.PC != 0x1234 || !c.IME() {
			t.Errorf("expected return to 0x1234 with IME set, got 0x%04X %t", c.PC, c.IME())
		}
	})
}

func TestCPU_Halt(t *testing.T) {
	t.Run("IME set", func(t *testing.T) {
		c := newTestCPU(0x76, 0x00)
		c.ime = true
		c.mmu.Write(types.IE, interrupts.TimerFlag)
		step(t, c)
		if c.State() != StateHalted {
			t.Fatalf("expected halted, got %s", c.State())
		}
		if cycles := step(t, c); cycles != 4 || c.PC != 0x0101 {
			t.Errorf("expected idle step, got %d cycles at 0x%04X", cycles, c.PC)
		}
		c.irq.Request(interrupts.TimerFlag)
		step(t, c)
		if c.State() != StateRunning || c.PC != 0x0050 {
			t.Errorf("expected timer dispatch, got %s at 0x%04X", c.State(), c.PC)
		}
	})
	t.Run("IME clear", func(t *testing.T) {
		c := newTestCPU(0x76, 0x3C)
		c.mmu.Write(types.IE, interrupts.TimerFlag)
		step(t, c)
		step(t, c)
		if c.State() != StateHalted {
			t.Fatalf("expected halted, got %s", c.State())
		}
		c.irq.Request(interrupts.TimerFlag)
		step(t, c)
		if c.State() != StateRunning || c.PC != 0x0102 || c.A != 0x02 {
			t.Errorf("expected to resume without dispatch, got %s at 0x%04X", c.State(), c.PC)
		}
		if c.irq.Flag() != interrupts.TimerFlag {
			t.Errorf("expected request to stay pending")
		}
	})
	t.Run("bug", func(t *testing.T) {
		c := newTestCPU(0x76, 0x3C, 0x00)
		c.mmu.Write(types.IE, interrupts.TimerFlag)
		c.irq.Request(interrupts.TimerFlag)
		step(t, c)
		if c.State() != StateRunning {
			t.Fatalf("expected HALT to not halt")
		}
		step(t, c)
		step(t, c)
		if c.A != 0x03 || c.PC != 0x0102 {
			t.Errorf("expected INC A to execute twice, got A=0x%02X PC=0x%04X", c.A, c.PC)
		}
	})
	t.Run("EI HALT", func(t *testing.T) {
		c := newTestCPU(0xFB, 0x76, 0x00)
		c.mmu.Write(types.IE, interrupts.VBlankFlag)
		step(t, c)
		step(t, c)
		if c.State() != StateHalted || !c.IME() {
			t.Fatalf("expected halted with IME set")
		}
		c.irq.Request(interrupts.VBlankFlag)
		step(t, c)
		if c.PC != 0x0040 || c.mmu.Read(c.SP) != 0x02 {
			t.Errorf("expected dispatch returning after HALT")
		}
	})
}

func TestCPU_Stop(t *testing.T) {
	c := newTestCPU(0x10, 0x00, 0x3C)
	step(t, c)
	if c.State() != StateStopped || c.PC != 0x0102 {
		t.Fatalf("expected stopped at 0x0102, got %s at 0x%04X", c.State(), c.PC)
	}
	c.irq.Request(interrupts.TimerFlag)
	if step(t, c); c.State() != StateStopped {
		t.Fatalf("expected timer to not wake STOP")
	}
	c.mmu.Press(joypad.ButtonStart)
	step(t, c)
	if c.State() != StateRunning || c.A != 0x02 {
		t.Errorf("expected joypad to wake STOP, got %s A=0x%02X", c.State(), c.A)
	}
}

func TestCPU_PushPop(t *testing.T) {
	pairs := []struct {
		name      string
		push, pop uint8
		pair      func(c *CPU) *types.RegisterPair
		mask      uint16
	}{
		{"BC", 0xC5, 0xC1, func(c *CPU) *types.RegisterPair { return c.BC }, 0xFFFF},
		{"DE", 0xD5, 0xD1, func(c *CPU) *types.RegisterPair { return c.DE }, 0xFFFF},
		{"HL", 0xE5, 0xE1, func(c *CPU) *types.RegisterPair { return c.HL }, 0xFFFF},
		{"AF", 0xF5, 0xF1, func(c *CPU) *types.RegisterPair { return c.AF }, 0xFFF0},
	}
	for _, p := range pairs {
		for _, value := range []uint16{0x0000, 0xFFFF, 0x1234, 0x8001, 0xABCD} {
			c := newTestCPU(p.push, p.pop)
			p.pair(c).SetUint16(value)
			step(t, c)
			if c.SP != 0xFFFC {
				t.Errorf("%s %04X: expected SP 0xFFFC after PUSH, got 0x%04X", p.name, value, c.SP)
			}
			p.pair(c).SetUint16(0x5A5A)
			step(t, c)

			want := value & p.mask
			if got := p.pair(c).Uint16(); got != want {
				t.Errorf("%s %04X: expected 0x%04X after POP, got 0x%04X", p.name, value, want, got)
			}
			if c.F&0x0F != 0 {
				t.Errorf("%s %04X: expected F low nibble 0, got 0x%02X", p.name, value, c.F)
			}
			if c.SP != 0xFFFE {
				t.Errorf("%s %04X: expected SP restored, got 0x%04X", p.name, value, c.SP)
			}
		}
	}
}

func TestCPU_Stack(t *testing.T) {
	// LD BC, 0x1234; PUSH BC; POP DE; PUSH DE; POP AF
	c := newTestCPU(0x01, 0x34, 0x12, 0xC5, 0xD1, 0xD5, 0xF1)
	for i := 0; i < 5; i++ {
		step(t, c)
	}
	if c.DE.Uint16() != 0x1234 {
		t.Errorf("expected DE 0x1234, got 0x%04X", c.DE.Uint16())
	}
	if c.AF.Uint16() != 0x1230 {
		t.Errorf("expected AF 0x1230 with low nibble masked, got 0x%04X", c.AF.Uint16())
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP restored, got 0x%04X", c.SP)
	}
	if c.mmu.Read(0xFFFD) != 0x12 || c.mmu.Read(0xFFFC) != 0x34 {
		t.Errorf("expected high byte at SP-1")
	}
}

func TestCPU_DMA(t *testing.T) {
	// LD A, 0xC0; LDH (0x46), A
	c := newTestCPU(0x3E, 0xC0, 0xE0, 0x46)
	c.mmu.Write(0xC000, 0x99)
	step(t, c)
	step(t, c)
	if c.mmu.Read(0xFE00) != 0x99 {
		t.Errorf("expected DMA from LDH")
	}
}
