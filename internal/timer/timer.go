// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Bus gives raw access to the timer registers. TIMA, TMA and TAC live in
// the address space and are read on every tick, while writes to DIV are
// reported through OnWrite.
type Bus interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
	OnWrite(address uint16, fn func())
}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// DIV is the upper byte of a 16-bit counter that increments
// every T-cycle, and TIMA increments on the falling edge of
// the counter bit selected by TAC:
//
//	TAC  Bit   Period   Frequency
//	00   9     1024     4096 Hz
//	01   3     16       262144 Hz
//	10   5     64       65536 Hz
//	11   7     256      16384 Hz
type Controller struct {
	internalDiv uint16
	lastBit     bool

	bus Bus
	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(bus Bus, irq *interrupts.Service) *Controller {
	c := &Controller{bus: bus, irq: irq}
	bus.OnWrite(types.DIV, c.ResetDiv)
	return c
}

// ResetDiv resets the internal divider, as any write to DIV does. When
// the bit selected by TAC was set, the reset is a falling edge and
// increments TIMA.
func (c *Controller) ResetDiv() {
	if c.lastBit {
		c.increment()
	}
	c.internalDiv = 0
	c.lastBit = false
	c.bus.Set(types.DIV, 0)
}

// Tick advances the timer by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	tac := c.bus.Get(types.TAC)
	enabled := tac&types.Bit2 != 0
	selectedBit := bits[tac&0b11]

	for i := uint8(0); i < cycles; i++ {
		c.internalDiv++

		// detect a falling edge, which also covers
		// the timer being disabled while the bit is set
		newBit := enabled && c.internalDiv&selectedBit != 0
		if c.lastBit && !newBit {
			c.increment()
		}
		c.lastBit = newBit
	}

	c.bus.Set(types.DIV, uint8(c.internalDiv>>8))
}

// increment increments TIMA, reloading it with TMA and requesting the
// timer interrupt when it overflows.
func (c *Controller) increment() {
	tima := c.bus.Get(types.TIMA) + 1
	if tima == 0 {
		tima = c.bus.Get(types.TMA)
		c.irq.Request(interrupts.TimerFlag)
	}
	c.bus.Set(types.TIMA, tima)
}

// Div returns the full 16-bit internal divider.
func (c *Controller) Div() uint16 {
	return c.internalDiv
}

var bits = [4]uint16{512, 8, 32, 128}
