// Package mmu provides a memory management unit for the Game Boy. The
// MMU decodes the full 64kB address space through an ordered table of
// regions, and applies the side effects of the special hardware
// registers in the I/O page.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// kind identifies the backing store of a region.
type kind uint8

const (
	kindROM kind = iota
	kindVRAM
	kindERAM
	kindWRAM
	kindOAM
	kindIO
)

// region is a half-open span of the address space [start, end).
type region struct {
	name       string
	start, end uint32
	kind       kind
}

// regions is the memory map of the DMG, in address order.
var regions = []region{
	{"rom", 0x0000, 0x8000, kindROM},
	{"vram", 0x8000, 0xA000, kindVRAM},
	{"eram", 0xA000, 0xC000, kindERAM},
	{"wram", 0xC000, 0xFE00, kindWRAM}, // 0xE000 - 0xFDFF echoes 0xC000 - 0xDDFF
	{"oam", 0xFE00, 0xFF00, kindOAM},
	{"io", 0xFF00, 0x10000, kindIO},
}

// validate checks that the table covers the address space exactly once,
// and that every boundary falls on a 256 byte page.
func validate(table []region) error {
	var next uint32
	for _, r := range table {
		if r.start != next {
			return fmt.Errorf("region %s starts at %04X, expected %04X", r.name, r.start, next)
		}
		if r.end <= r.start {
			return fmt.Errorf("region %s is empty", r.name)
		}
		if r.start&0xFF != 0 || r.end&0xFF != 0 {
			return fmt.Errorf("region %s is not page aligned", r.name)
		}
		next = r.end
	}
	if next != 0x10000 {
		return fmt.Errorf("regions end at %04X, expected 10000", next)
	}
	return nil
}

// pages builds the page table for table, which must be valid.
func pages(table []region) (p [256]kind) {
	for _, r := range table {
		for page := r.start >> 8; page < r.end>>8; page++ {
			p[page] = r.kind
		}
	}
	return p
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	pages [256]kind

	// 0x0000 - 0x7FFF - ROM (32kB)
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM
	// 0xA000 - 0xBFFF - External RAM (8kB)
	eRAM *ram.RAM
	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM
	// 0xFE00 - 0xFEFF - Sprite Attribute Table (256B)
	oam *ram.RAM
	// 0xFF00 - 0xFFFF - I/O registers, zero page and IE (256B)
	zRAM *ram.RAM

	input *joypad.State
	irq   *interrupts.Service

	// hooks run after a write to the I/O register with the matching low byte
	hooks [256]func()

	Log log.Logger
}

// NewMMU returns a new MMU with the cartridge mapped at 0x0000, and the
// hardware registers in their post boot state. A nil cartridge maps an
// empty image, and a nil logger discards output.
func NewMMU(cart *cartridge.Cartridge, l log.Logger) *MMU {
	if err := validate(regions); err != nil {
		panic(fmt.Sprintf("mmu: invalid memory map: %v", err))
	}
	if cart == nil {
		cart = cartridge.NewEmptyCartridge()
	}
	if l == nil {
		l = log.NewNullLogger()
	}

	m := &MMU{
		pages: pages(regions),
		Cart:  cart,
		vRAM:  ram.NewRAM(0x2000),
		eRAM:  ram.NewRAM(0x2000),
		wRAM:  ram.NewRAM(0x2000),
		oam:   ram.NewRAM(0x100),
		zRAM:  ram.NewRAM(0x100),
		input: joypad.New(),
		Log:   l,
	}
	m.irq = interrupts.NewService(m)
	m.Reset()

	return m
}

// Reset zeroes every writable region and restores the post boot
// register defaults.
func (m *MMU) Reset() {
	for _, r := range []*ram.RAM{m.vRAM, m.eRAM, m.wRAM, m.oam, m.zRAM} {
		r.Clear()
	}
	for address, value := range defaults {
		m.Set(address, value)
	}
	m.input.SetButtons(joypad.Released)
	m.input.SetDirections(joypad.Released)
}

// OnWrite registers fn to be called after every Write to the hardware
// register at address, replacing any previous hook. Components use it to
// learn about writes that reset their internal state, such as DIV and LY.
func (m *MMU) OnWrite(address uint16, fn func()) {
	m.hooks[address&0xFF] = fn
}

// Interrupts returns the interrupt service backed by the IF and IE
// registers.
func (m *MMU) Interrupts() *interrupts.Service {
	return m.irq
}

// Read returns the value at the given address, applying the read side of
// any special register.
func (m *MMU) Read(address uint16) uint8 {
	if address >= types.IOStart {
		return m.readRegister(address)
	}
	return m.Get(address)
}

// Write writes the value to the given address, applying the write side
// of any special register. Writes to the cartridge ROM are discarded.
func (m *MMU) Write(address uint16, value uint8) {
	if address >= types.IOStart {
		m.writeRegister(address, value)
		return
	}
	m.Set(address, value)
}

// Get returns the stored value at the given address, without any side
// effects. It is used by the hardware components that own a register.
func (m *MMU) Get(address uint16) uint8 {
	switch m.pages[address>>8] {
	case kindROM:
		return m.Cart.Read(address)
	case kindVRAM:
		return m.vRAM.Read(address)
	case kindERAM:
		return m.eRAM.Read(address)
	case kindWRAM:
		return m.wRAM.Read(address)
	case kindOAM:
		return m.oam.Read(address)
	default:
		return m.zRAM.Read(address)
	}
}

// Set stores the value at the given address, without any side effects.
func (m *MMU) Set(address uint16, value uint8) {
	switch m.pages[address>>8] {
	case kindROM:
		m.Cart.Write(address, value)
	case kindVRAM:
		m.vRAM.Write(address, value)
	case kindERAM:
		m.eRAM.Write(address, value)
	case kindWRAM:
		m.wRAM.Write(address, value)
	case kindOAM:
		m.oam.Write(address, value)
	default:
		m.zRAM.Write(address, value)
	}
}

// Read16 returns the little endian 16-bit value at the given address.
func (m *MMU) Read16(address uint16) uint16 {
	low := m.Read(address)
	return utils.BytesToUint16(m.Read(address+1), low)
}

// Write16 writes a 16-bit value at the given address, low byte first.
func (m *MMU) Write16(address uint16, value uint16) {
	high, low := utils.Uint16ToBytes(value)
	m.Write(address, low)
	m.Write(address+1, high)
}
