package cartridge

import (
	"fmt"
	"strings"
)

// Flag is the colour support flag of the cartridge, stored at 0x0143.
type Flag uint8

const (
	// FlagOnlyDMG marks a cartridge made for the DMG.
	FlagOnlyDMG Flag = iota
	// FlagSupportsCGB marks a DMG cartridge with Colour Game Boy enhancements.
	FlagSupportsCGB
	// FlagOnlyCGB marks a cartridge that requires a Colour Game Boy.
	FlagOnlyCGB
)

// RAMSize describes the external RAM declared by the header.
type RAMSize struct {
	KiB   uint
	Banks uint
}

// ramSizes maps the RAM size code at 0x0149 to the size of external RAM.
// Each code maps to exactly one size.
var ramSizes = map[uint8]RAMSize{
	0x00: {0, 0},
	0x01: {2, 1},
	0x02: {8, 1},
	0x03: {32, 4},
	0x04: {128, 16},
	0x05: {64, 8},
}

// Type is the cartridge type stored at 0x0147, naming the memory bank
// controller and any extra hardware on the cartridge.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM ONLY",
	MBC1:              "ROM+MBC1",
	MBC1RAM:           "ROM+MBC1+RAM",
	MBC1RAMBATT:       "ROM+MBC1+RAM+BATT",
	MBC2:              "ROM+MBC2",
	MBC2BATT:          "ROM+MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "ROM+MMM01",
	MMM01RAM:          "ROM+MMM01+SRAM",
	MMM01RAMBATT:      "ROM+MMM01+SRAM+BATT",
	MBC3TIMERBATT:     "ROM+MBC3+TIMER+BATT",
	MBC3TIMERRAMBATT:  "ROM+MBC3+TIMER+RAM+BATT",
	MBC3:              "ROM+MBC3",
	MBC3RAM:           "ROM+MBC3+RAM",
	MBC3RAMBATT:       "ROM+MBC3+RAM+BATT",
	MBC5:              "ROM+MBC5",
	MBC5RAM:           "ROM+MBC5+RAM",
	MBC5RAMBATT:       "ROM+MBC5+RAM+BATT",
	MBC5RUMBLE:        "ROM+MBC5+RUMBLE",
	MBC5RUMBLERAM:     "ROM+MBC5+RUMBLE+SRAM",
	MBC5RUMBLERAMBATT: "ROM+MBC5+RUMBLE+SRAM+BATT",
	POCKETCAMERA:      "Pocket Camera",
	BANDAITAMA5:       "Bandai TAMA5",
	HUDSONHUC3:        "Hudson HuC-3",
	HUDSONHUC1:        "Hudson HuC-1",
}

// String returns the name of the cartridge type.
// String returns the documented name of the cartridge type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (0x%02X)", uint8(t))
}

// Known reports whether t is a documented cartridge type.
func (t Type) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// Banked reports whether the cartridge type needs a memory bank
// controller to address more than the first 32kB.
func (t Type) Banked() bool {
	return t != ROM && t != ROMRAM && t != ROMRAMBATT
}

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
	titleStart  = 0x34
	titleLength = 16
)

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, terminated by a NUL byte or by
	// running out of space.
	Title string

	// 0x0143 - CartridgeGBMode. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSizeCode     uint8
	ROMSize         uint // in kB
	ROMBanks        uint
	RAMSizeCode     uint8
	RAM             RAMSize
	Japanese        bool
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	// Problems lists the non-fatal problems found while parsing the
	// header.
	Problems []string
}

// parseHeader parses the header of the given ROM image. A short image is
// read as if it were extended with zero bytes.
func parseHeader(rom []byte) Header {
	var raw [headerEnd - headerStart]byte
	if len(rom) > headerStart {
		copy(raw[:], rom[headerStart:])
	}

	h := Header{}
	if len(rom) < headerEnd {
		h.problem("image is %d bytes, shorter than the cartridge header", len(rom))
	}

	// parse the mode of the cartridge
	switch raw[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// parse the title, which shares its last byte with the CGB flag
	titleBytes := raw[titleStart : titleStart+titleLength]
	if h.CartridgeGBMode != FlagOnlyDMG {
		titleBytes = titleBytes[:titleLength-1]
	}
	if i := strings.IndexByte(string(titleBytes), 0); i >= 0 {
		h.Title = string(titleBytes[:i])
	} else {
		h.Title = string(titleBytes)
		if h.CartridgeGBMode == FlagOnlyDMG {
			h.problem("title is not terminated")
		}
	}

	h.NewLicenseeCode = string(raw[0x44:0x46])
	h.SGBFlag = raw[0x46] == 0x03

	h.CartridgeType = Type(raw[0x47])
	if !h.CartridgeType.Known() {
		h.problem("unrecognised cartridge type 0x%02X", raw[0x47])
	}

	// ROM size is 32kB << n, spread over 2 << n banks of 16kB
	h.ROMSizeCode = raw[0x48]
	if h.ROMSizeCode <= 8 {
		h.ROMSize = 32 << h.ROMSizeCode
		h.ROMBanks = 2 << h.ROMSizeCode
	} else {
		h.problem("unrecognised ROM size code 0x%02X", h.ROMSizeCode)
	}

	h.RAMSizeCode = raw[0x49]
	if size, ok := ramSizes[h.RAMSizeCode]; ok {
		h.RAM = size
	} else {
		h.problem("unrecognised RAM size code 0x%02X", h.RAMSizeCode)
	}

	h.Japanese = raw[0x4A] == 0x00
	h.OldLicenseeCode = raw[0x4B]
	h.MaskROMVersion = raw[0x4C]
	h.HeaderChecksum = raw[0x4D]
	h.GlobalChecksum = uint16(raw[0x4E])<<8 | uint16(raw[0x4F])

	if sum := headerChecksum(raw[:]); sum != h.HeaderChecksum {
		h.problem("header checksum is 0x%02X, expected 0x%02X", h.HeaderChecksum, sum)
	}

	return h
}

// headerChecksum computes the checksum over 0x0134-0x014C, as the boot
// ROM does before handing control to the cartridge.
func headerChecksum(raw []byte) uint8 {
	var sum uint8
	for _, b := range raw[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

func (h *Header) problem(format string, args ...interface{}) {
	h.Problems = append(h.Problems, fmt.Sprintf(format, args...))
}

// GameboyColor reports whether the cartridge supports the Colour Game Boy.
func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

// Hardware returns the model the cartridge is made for, DMG or CGB.
func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

// String returns a one line summary of the header.
func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB (%d banks) | RAM Size: %dkB (%d banks)",
		h.Title, h.Hardware(), h.CartridgeType, h.ROMSize, h.ROMBanks, h.RAM.KiB, h.RAM.Banks)
}
