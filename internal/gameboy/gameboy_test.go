package gameboy

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// testROM returns an image that jumps to 0x0150 and loops there forever.
func testROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0xC3, 0x50, 0x01}) // JP 0x0150
	copy(rom[0x134:], "LOOP")
	copy(rom[0x150:], []byte{0x18, 0xFE}) // JR -2
	return rom
}

func TestGameBoy_Frame(t *testing.T) {
	g := NewGameBoy(testROM(), WithLogger(log.NewNullLogger()))
	if err := g.Frame(); err != nil {
		t.Fatal(err)
	}

	if g.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", g.Frames())
	}
	if g.CPU.PC != 0x0150 {
		t.Errorf("expected to be looping at 0x0150, got 0x%04X", g.CPU.PC)
	}
	// the last instruction may run past the end of the frame
	if g.CPU.Cycles < CyclesPerFrame || g.CPU.Cycles >= CyclesPerFrame+12 {
		t.Errorf("expected a frame of cycles, got %d", g.CPU.Cycles)
	}
	if g.MMU.Interrupts().Flag()&interrupts.VBlankFlag == 0 {
		t.Errorf("expected vblank to be requested")
	}
	if got := g.MMU.Read(types.DIV); got != uint8(g.CPU.Cycles>>8) {
		t.Errorf("expected DIV 0x%02X, got 0x%02X", uint8(g.CPU.Cycles>>8), got)
	}
	if g.Video().LY() >= 154 {
		t.Errorf("expected LY in range, got %d", g.Video().LY())
	}
}

func TestGameBoy_Input(t *testing.T) {
	g := NewGameBoy(testROM(), WithLogger(log.NewNullLogger()))
	g.Press(joypad.ButtonSelect)
	if g.MMU.Interrupts().Flag()&interrupts.JoypadFlag == 0 {
		t.Errorf("expected joypad interrupt")
	}
	g.MMU.Write(types.P1, joypad.SelectButtons)
	if got := g.MMU.Read(types.P1) & 0x0F; got != 0x0B {
		t.Errorf("expected select pressed, got 0x%X", got)
	}
	g.Release(joypad.ButtonSelect)
	if got := g.MMU.Read(types.P1) & 0x0F; got != 0x0F {
		t.Errorf("expected released, got 0x%X", got)
	}
}

func TestGameBoy_Options(t *testing.T) {
	t.Run("breakpoint", func(t *testing.T) {
		g := NewGameBoy(testROM(), WithLogger(log.NewNullLogger()), WithBreakpoint(0x0150))
		err := g.Frame()
		if !errors.Is(err, cpu.ErrBreakpoint) {
			t.Fatalf("expected breakpoint, got %v", err)
		}
		if g.CPU.PC != 0x0150 || g.Frames() != 0 {
			t.Errorf("expected to stop at 0x0150")
		}
	})
	t.Run("debug", func(t *testing.T) {
		var buf bytes.Buffer
		g := NewGameBoy(testROM(), WithLogger(log.NewDebug(&buf)), Debug())
		if err := g.Run(16); err != nil {
			t.Fatal(err)
		}

		out := buf.String()
		for _, expected := range []string{
			"level=info msg=cartridge: LOOP",
			"level=debug msg=PC=0100 OP=C3 JP a16",
		} {
			if !strings.Contains(out, expected) {
				t.Errorf("expected %q in log, got %q", expected, out)
			}
		}
	})
	t.Run("illegal opcode", func(t *testing.T) {
		rom := testROM()
		rom[0x150] = 0xDD
		var buf bytes.Buffer
		g := NewGameBoy(rom, WithLogger(log.NewDebug(&buf)))
		if err := g.Frame(); !errors.Is(err, cpu.ErrIllegalOpcode) {
			t.Fatalf("expected illegal opcode, got %v", err)
		}
		if !strings.Contains(buf.String(), "level=error msg=illegal opcode 0xDD at 0x0150") {
			t.Errorf("expected error to be logged, got %q", buf.String())
		}
	})
}

func TestGameBoy_Snapshot(t *testing.T) {
	g := NewGameBoy(testROM(), WithLogger(log.NewNullLogger()))
	before := g.Snapshot()
	g.MMU.Write(0x9800, 0x01)
	after := g.Snapshot()
	if before.Hash() == after.Hash() {
		t.Errorf("expected tile map write to change hash")
	}
}

func TestGameBoy_Serial(t *testing.T) {
	rom := testROM()
	// LD A, 'O'; LDH (SB), A; LD A, 0x81; LDH (SC), A; JR -2
	copy(rom[0x150:], []byte{0x3E, 'O', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02, 0x18, 0xFE})

	var out bytes.Buffer
	g := NewGameBoy(rom, WithLogger(log.NewNullLogger()), WithSerialOutput(&out))
	if err := g.Frame(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "O" {
		t.Errorf("expected serial output %q, got %q", "O", out.String())
	}
	if g.MMU.Interrupts().Flag()&interrupts.SerialFlag == 0 {
		t.Errorf("expected serial interrupt")
	}
}

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestGameBoy_SerialError(t *testing.T) {
	rom := testROM()
	copy(rom[0x150:], []byte{0x3E, 'O', 0xE0, 0x01, 0x3E, 0x81, 0xE0, 0x02, 0x18, 0xFE})

	g := NewGameBoy(rom, WithLogger(log.NewNullLogger()), WithSerialOutput(closedWriter{}))
	err := g.Frame()
	if err == nil || !strings.Contains(err.Error(), "serial output: closed") {
		t.Errorf("expected serial output error, got %v", err)
	}
	if g.Frames() != 0 {
		t.Errorf("expected frame not to be counted, got %d", g.Frames())
	}
}
