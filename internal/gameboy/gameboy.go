// Package gameboy provides an emulation of the DMG core: the CPU and the
// address space it runs against, together with the timer and LCD timing
// that raise its interrupts.
package gameboy

import (
	"fmt"
	"io"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/lcd"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = cpu.CyclesPerFrame // 154 lines * 456 cycles
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU    *cpu.CPU
	MMU    *mmu.MMU
	Timer  *timer.Controller
	LCD    *lcd.Controller
	Serial *serial.Controller

	log.Logger

	debug        bool
	breakpoints  []uint16
	serialOutput io.Writer
	serialWriter *serial.Writer
	frames       uint64
}

// NewGameBoy returns a new GameBoy running rom, with the registers in the
// state the boot ROM leaves them in.
func NewGameBoy(rom []byte, opts ...Opt) *GameBoy {
	g := &GameBoy{}
	for _, opt := range opts {
		opt(g)
	}
	if g.Logger == nil {
		g.Logger = log.New()
	}

	cart := cartridge.New(rom, g.Logger)
	memBus := mmu.NewMMU(cart, g.Logger)
	g.MMU = memBus
	g.Timer = timer.NewController(memBus, memBus.Interrupts())
	g.LCD = lcd.NewController(memBus, memBus.Interrupts())
	g.Serial = serial.NewController(memBus, memBus.Interrupts())
	if g.serialOutput != nil {
		g.serialWriter = serial.NewWriter(g.serialOutput)
		g.Serial.Attach(g.serialWriter)
	}
	g.CPU = cpu.NewCPU(memBus, g.Timer, g.LCD, g.Serial)

	g.CPU.Debug = g.debug
	for _, pc := range g.breakpoints {
		g.CPU.Breakpoints[pc] = struct{}{}
	}

	return g
}

// Run runs the emulation for budget T-cycles, or until the CPU stops
// with an error. A failed write to the serial output is also returned.
func (g *GameBoy) Run(budget uint64) error {
	if err := g.CPU.Run(budget); err != nil {
		return err
	}
	if g.serialWriter != nil {
		if err := g.serialWriter.Err(); err != nil {
			return fmt.Errorf("serial output: %w", err)
		}
	}
	return nil
}

// Frame runs the emulation for a single frame.
func (g *GameBoy) Frame() error {
	if err := g.Run(CyclesPerFrame); err != nil {
		return err
	}
	g.frames++
	return nil
}

// Frames returns the number of frames completed.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// Press presses a button.
func (g *GameBoy) Press(button joypad.Button) {
	g.MMU.Press(button)
}

// Release releases a button.
func (g *GameBoy) Release(button joypad.Button) {
	g.MMU.Release(button)
}

// Video returns a view of the address space for a renderer.
func (g *GameBoy) Video() mmu.VideoMemory {
	return g.MMU
}

// Snapshot returns a copy of the video state.
func (g *GameBoy) Snapshot() *mmu.VideoSnapshot {
	return g.MMU.Snapshot()
}
