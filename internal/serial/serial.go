// Package serial provides the serial port of the DMG. Only transfers
// clocked by the DMG itself are driven; a transfer clocked externally
// waits forever, as if no cable were attached.
package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ticksPerBit is the number of T-cycles per bit (8192 Hz).
	ticksPerBit = 512
)

// Bus gives raw access to the serial registers.
type Bus interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
}

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, SB holds the next byte to be sent.
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each bit, the leftmost bit of SB is sent to the attached device, and
// shifted out of SB, and the incoming bit is shifted into SB.
//
// example:
//
//	Before : SB = o7 o6 o5 o4 o3 o2 o1 o0
//	Bit 1  : SB = o6 o5 o4 o3 o2 o1 o0 i0
//	Bit 2  : SB = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Bit 8  : SB = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	count  uint8  // the number of bits that have been transferred.
	cycles uint16 // the cycles spent on the current bit.

	bus Bus
	irq *interrupts.Service

	AttachedDevice Device // the device that is attached to this controller.
}

// NewController creates a new Controller. A Controller is responsible for
// sending and receiving data to and from devices. It is also responsible for
// triggering serial interrupts.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. If you want to attach a device, use the
// Controller.Attach method.
func NewController(bus Bus, irq *interrupts.Service) *Controller {
	return &Controller{
		bus:            bus,
		irq:            irq,
		AttachedDevice: nullDevice{},
	}
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Tick advances the serial port by the given number of T-cycles.
func (c *Controller) Tick(cycles uint8) {
	const start = types.Bit7 | types.Bit0
	if c.bus.Get(types.SC)&start != start {
		c.count, c.cycles = 0, 0
		return
	}

	c.cycles += uint16(cycles)
	for c.cycles >= ticksPerBit {
		c.cycles -= ticksPerBit
		if c.transferBit() {
			return
		}
	}
}

// transferBit exchanges a single bit with the attached device, returning
// true once the eighth bit completes the transfer.
func (c *Controller) transferBit() bool {
	sb := c.bus.Get(types.SB)
	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(sb&types.Bit7 == types.Bit7)

	sb <<= 1
	if bit {
		sb |= 1
	}
	c.bus.Set(types.SB, sb)

	if c.count++; c.count < 8 {
		return false
	}

	// clear transfer request
	c.count, c.cycles = 0, 0
	c.bus.Set(types.SC, c.bus.Get(types.SC)&^types.Bit7)
	c.irq.Request(interrupts.SerialFlag)
	return true
}
