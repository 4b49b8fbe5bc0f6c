// Package cartridge provides the game cartridge of the DMG. Only the flat
// 32kB model is emulated: the first 32kB of the image (or the whole image,
// if it is smaller) is mapped read-only at 0x0000-0x7FFF.
package cartridge

import (
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Cartridge represents a ROM-only game cartridge.
type Cartridge struct {
	rom    []byte
	header Header
	hash   uint64
}

// New returns a cartridge holding rom. Problems with the header are
// logged, and never prevent the cartridge from loading.
func New(rom []byte, l log.Logger) *Cartridge {
	if l == nil {
		l = log.NewNullLogger()
	}

	mapped := rom
	if len(mapped) > types.ROMSize {
		mapped = mapped[:types.ROMSize]
	}

	c := &Cartridge{
		rom:    append([]byte(nil), mapped...),
		header: parseHeader(rom),
		hash:   xxhash.Sum64(rom),
	}

	l.Infof("cartridge: %s", c.header.String())
	l.Infof("cartridge: %d bytes, fingerprint %016x", len(rom), c.hash)
	for _, p := range c.header.Problems {
		l.Warnf("cartridge: %s", p)
	}
	if c.header.CartridgeType.Banked() {
		l.Warnf("cartridge: %s requires bank switching, only the first 32kB is mapped", c.header.CartridgeType)
	}

	return c
}

// NewEmptyCartridge returns a cartridge with no image, every read
// returning 0.
func NewEmptyCartridge() *Cartridge {
	return &Cartridge{header: parseHeader(nil)}
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Fingerprint returns the xxhash of the full image, useful for telling
// images apart.
func (c *Cartridge) Fingerprint() uint64 {
	return c.hash
}

// Len returns the number of mapped bytes.
func (c *Cartridge) Len() int {
	return len(c.rom)
}

// Read returns the byte at address, or 0 if the address lies beyond the
// end of the image.
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) < len(c.rom) {
		return c.rom[address]
	}
	return 0
}

// Write is discarded, the cartridge is read only.
func (c *Cartridge) Write(address uint16, value uint8) {}
