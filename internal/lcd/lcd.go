// Package lcd provides the scanline timing of the LCD controller. It
// advances LY, keeps the mode and coincidence bits of types.STAT up to
// date, and requests the V-Blank and STAT interrupts. Pixels are not
// produced here; a renderer reads the video memory between frames.
package lcd

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Mode represents a mode of the LCD.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

const (
	// DotsPerLine is the number of T-cycles spent on each line.
	DotsPerLine = 456
	// Lines is the number of lines in a frame, including V-Blank.
	Lines = 154
	// ScreenHeight is the number of visible lines.
	ScreenHeight = 144

	oamEnd  = 80
	vramEnd = 252
)

// Bus gives raw access to the LCD registers, and reports writes to LY
// and LYC through OnWrite.
type Bus interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
	OnWrite(address uint16, fn func())
}

// Controller drives the LCD timing. The STAT register is laid out as
// follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see below) (Read Only)
//		0: During H-Blank
//		1: During V-Blank
//		2: During Searching OAM-RAM
//		3: During Transferring Data to LCD Driver
type Controller struct {
	dots uint16
	ly   uint8
	mode Mode

	bus Bus
	irq *interrupts.Service
}

// NewController returns a new LCD controller.
func NewController(bus Bus, irq *interrupts.Service) *Controller {
	c := &Controller{bus: bus, irq: irq}
	bus.OnWrite(types.LY, c.resetLine)
	bus.OnWrite(types.LYC, c.compareEnabled)
	return c
}

// resetLine restarts the current frame at line 0, as a write to LY does.
func (c *Controller) resetLine() {
	c.dots, c.ly = 0, 0
	c.bus.Set(types.LY, 0)
	c.compareEnabled()
}

// compareEnabled updates the coincidence flag while the LCD is on.
func (c *Controller) compareEnabled() {
	if c.bus.Get(types.LCDC)&types.Bit7 != 0 {
		c.compare()
	}
}

// Tick advances the LCD by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	if c.bus.Get(types.LCDC)&types.Bit7 == 0 {
		c.dots, c.ly, c.mode = 0, 0, HBlank
		c.bus.Set(types.LY, 0)
		c.bus.Set(types.STAT, c.bus.Get(types.STAT)&0xF8)
		return
	}

	remaining := uint16(cycles)
	for remaining > 0 {
		step := remaining
		if left := DotsPerLine - c.dots; step > left {
			step = left
		}
		remaining -= step
		c.dots += step

		if c.dots == DotsPerLine {
			c.dots = 0
			c.ly++
			if c.ly == Lines {
				c.ly = 0
			}
			if c.ly == ScreenHeight {
				c.irq.Request(interrupts.VBlankFlag)
			}
			c.bus.Set(types.LY, c.ly)
			c.compare()
		}
		c.setMode(c.modeAt())
	}
}

// modeAt returns the mode for the current line and dot.
func (c *Controller) modeAt() Mode {
	switch {
	case c.ly >= ScreenHeight:
		return VBlank
	case c.dots < oamEnd:
		return OAM
	case c.dots < vramEnd:
		return VRAM
	default:
		return HBlank
	}
}

// setMode updates the STAT mode bits, requesting the STAT interrupt when
// entering a mode with its interrupt enabled.
func (c *Controller) setMode(mode Mode) {
	if mode == c.mode {
		return
	}
	c.mode = mode

	stat := c.bus.Get(types.STAT)
	c.bus.Set(types.STAT, stat&0xFC|mode)

	var enable uint8
	switch mode {
	case HBlank:
		enable = types.Bit3
	case VBlank:
		enable = types.Bit4
	case OAM:
		enable = types.Bit5
	}
	if stat&enable != 0 {
		c.irq.Request(interrupts.LCDFlag)
	}
}

// compare updates the coincidence flag, requesting the STAT interrupt
// when LY matches LYC and the coincidence interrupt is enabled.
func (c *Controller) compare() {
	stat := c.bus.Get(types.STAT)
	if c.ly == c.bus.Get(types.LYC) {
		c.bus.Set(types.STAT, stat|types.Bit2)
		if stat&types.Bit6 != 0 {
			c.irq.Request(interrupts.LCDFlag)
		}
		return
	}
	c.bus.Set(types.STAT, stat&^types.Bit2)
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}
