package mmu

import "github.com/thelolagemann/dmgcore/internal/types"

// dma copies 160 bytes from page source into the sprite attribute table.
// The transfer completes before the write that started it returns, and
// reads the source through the regular read path.
func (m *MMU) dma(source uint8) {
	from := uint16(source) << 8
	for i := uint16(0); i < types.OAMDMASize; i++ {
		m.oam.Write(types.OAMStart+i, m.Read(from+i))
	}
}
