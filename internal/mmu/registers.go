package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// special identifies a hardware register with side effects.
type special uint8

const (
	plain special = iota
	joypadSelect
	divider
	scanline
	oamDMA
	interruptFlag
	lcdStatus
	serialControl
)

// specials maps the low byte of an I/O address to its register kind.
var specials = [256]special{
	types.P1 & 0xFF:   joypadSelect,
	types.DIV & 0xFF:  divider,
	types.LY & 0xFF:   scanline,
	types.DMA & 0xFF:  oamDMA,
	types.IF & 0xFF:   interruptFlag,
	types.STAT & 0xFF: lcdStatus,
	types.SC & 0xFF:   serialControl,
}

// defaults holds the register values left behind by the DMG boot ROM.
// Every other I/O address starts at zero.
var defaults = map[uint16]uint8{
	types.LCDC: 0x83,
	types.BGP:  0xFC,
	types.OBP0: 0xFF,
	types.OBP1: 0xFF,
}

func (m *MMU) readRegister(address uint16) uint8 {
	value := m.zRAM.Read(address)
	switch specials[address&0xFF] {
	case joypadSelect:
		return m.input.Read(value)
	case interruptFlag:
		return 0xE0 | value
	case serialControl:
		return 0x7E | value // bits 1-6 are unused
	}
	return value
}

func (m *MMU) writeRegister(address uint16, value uint8) {
	kind := specials[address&0xFF]
	switch kind {
	case joypadSelect:
		value &= types.Bit4 | types.Bit5
	case divider, scanline:
		value = 0
	case interruptFlag:
		value &= interrupts.Mask
	case lcdStatus:
		value = value&0xF8 | m.zRAM.Read(address)&0x07
	}
	m.zRAM.Write(address, value)

	if kind == oamDMA {
		m.dma(value)
	}
	if hook := m.hooks[address&0xFF]; hook != nil {
		hook()
	}
}
