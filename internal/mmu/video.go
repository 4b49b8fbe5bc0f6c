package mmu

import (
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// VideoMemory is the read only view of the address space used by a
// renderer between cycle budgets.
type VideoMemory interface {
	Read(address uint16) uint8
	LCDC() uint8
	STAT() uint8
	SCY() uint8
	SCX() uint8
	LY() uint8
	LYC() uint8
	WY() uint8
	WX() uint8
	BGP() uint8
	OBP0() uint8
	OBP1() uint8
	OAM() [types.OAMDMASize]uint8
}

var _ VideoMemory = (*MMU)(nil)

func (m *MMU) LCDC() uint8 { return m.Get(types.LCDC) }
func (m *MMU) STAT() uint8 { return m.Get(types.STAT) }
func (m *MMU) SCY() uint8  { return m.Get(types.SCY) }
func (m *MMU) SCX() uint8  { return m.Get(types.SCX) }
func (m *MMU) LY() uint8   { return m.Get(types.LY) }
func (m *MMU) LYC() uint8  { return m.Get(types.LYC) }
func (m *MMU) WY() uint8   { return m.Get(types.WY) }
func (m *MMU) WX() uint8   { return m.Get(types.WX) }
func (m *MMU) BGP() uint8  { return m.Get(types.BGP) }
func (m *MMU) OBP0() uint8 { return m.Get(types.OBP0) }
func (m *MMU) OBP1() uint8 { return m.Get(types.OBP1) }

// OAM returns a copy of the 40 sprite attribute entries.
func (m *MMU) OAM() (oam [types.OAMDMASize]uint8) {
	m.oam.CopyTo(oam[:])
	return oam
}

// VideoSnapshot is a copy of everything a renderer needs to draw a frame.
type VideoSnapshot struct {
	VRAM [0x2000]uint8
	OAM  [types.OAMDMASize]uint8

	LCDC, STAT, SCY, SCX, LY, LYC, WY, WX, BGP, OBP0, OBP1 uint8
}

// Snapshot copies the video state out of the address space.
func (m *MMU) Snapshot() *VideoSnapshot {
	s := &VideoSnapshot{
		OAM:  m.OAM(),
		LCDC: m.LCDC(),
		STAT: m.STAT(),
		SCY:  m.SCY(),
		SCX:  m.SCX(),
		LY:   m.LY(),
		LYC:  m.LYC(),
		WY:   m.WY(),
		WX:   m.WX(),
		BGP:  m.BGP(),
		OBP0: m.OBP0(),
		OBP1: m.OBP1(),
	}
	m.vRAM.CopyTo(s.VRAM[:])
	return s
}

// Hash returns the xxhash of the snapshot, which a renderer can compare
// against the previous frame to skip redrawing. LY is excluded, as it
// differs between snapshots taken at different points of a frame.
func (s *VideoSnapshot) Hash() uint64 {
	h := xxhash.New()
	h.Write(s.VRAM[:])
	h.Write(s.OAM[:])
	h.Write([]uint8{s.LCDC, s.STAT & 0xF8, s.SCY, s.SCX, s.LYC, s.WY, s.WX, s.BGP, s.OBP0, s.OBP1})
	return h.Sum64()
}

// Tile returns the 16 bytes of the tile at index in the 0x8000 tile data
// block.
func (s *VideoSnapshot) Tile(index uint8) [16]uint8 {
	var tile [16]uint8
	offset := uint16(index) * 16
	copy(tile[:], s.VRAM[offset:offset+16])
	return tile
}
