package types

// HardwareAddress represents the address of a hardware register of the
// DMG. The hardware registers live in the zero page, 0xFF00 - 0xFFFF, and
// each one controls or reports the state of a piece of hardware rather
// than holding general purpose data.
type HardwareAddress = uint16

const (
	// P1 is the joypad register. Bits 4 and 5 select which group of
	// buttons is reported in the low nibble, which is active low.
	//
	//	Bit 5 - Select action buttons   (0=Select)
	//	Bit 4 - Select direction keys   (0=Select)
	//	Bit 3 - Down  or Start          (0=Pressed) (Read Only)
	//	Bit 2 - Up    or Select         (0=Pressed) (Read Only)
	//	Bit 1 - Left  or B              (0=Pressed) (Read Only)
	//	Bit 0 - Right or A              (0=Pressed) (Read Only)
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to be sent over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is the divider register. It is incremented at 16384Hz, and any
	// write to it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter. It is incremented at the frequency
	// selected by TAC, and when it overflows it is reloaded from TMA and
	// a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the timer modulo, loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC is the timer control register.
	//
	//	Bit 2   - Timer enable
	//	Bit 1-0 - Input clock select
	//	          00: 4096Hz, 01: 262144Hz, 10: 65536Hz, 11: 16384Hz
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt flag register. Writing a 1 to a bit requests
	// the corresponding interrupt, and writing a 0 clears the request.
	//
	//	Bit 0: V-Blank  Interrupt Request (INT 40h)  (1=Request)
	//	Bit 1: LCD STAT Interrupt Request (INT 48h)  (1=Request)
	//	Bit 2: Timer    Interrupt Request (INT 50h)  (1=Request)
	//	Bit 3: Serial   Interrupt Request (INT 58h)  (1=Request)
	//	Bit 4: Joypad   Interrupt Request (INT 60h)  (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	//
	//	Bit 7: LCD Enable                     (0=Off, 1=On)
	//	Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 5: Window Display Enable          (0=Off, 1=On)
	//	Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//	Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//	Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//	Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register.
	//
	//	Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//	Bit 5: Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//	Bit 4: Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//	Bit 3: Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//	Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//	Bit 1-0: Mode Flag                             (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn, in the range 0-153.
	// The CPU cannot set it, writing any value resets it to 0.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY, setting the coincidence flag in STAT
	// when they match.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer when written. The value written is
	// the high byte of the source address, and 160 bytes are copied from
	// there into the sprite attribute table.
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	//
	//	Bit 7-6 - Shade for Color Number 3
	//	Bit 5-4 - Shade for Color Number 2
	//	Bit 3-2 - Shade for Color Number 1
	//	Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is sprite palette 0. Bits 1-0 are ignored as color 0 is
	// always transparent for sprites.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is sprite palette 1, laid out as OBP0.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window plus 7.
	WX HardwareAddress = 0xFF4B
	// IE is the interrupt enable register, laid out as IF.
	IE HardwareAddress = 0xFFFF
)

// The boundaries of the memory regions of the DMG address space, each
// one the first address of the region.
const (
	ROMStart   uint16 = 0x0000
	VRAMStart  uint16 = 0x8000
	ERAMStart  uint16 = 0xA000
	WRAMStart  uint16 = 0xC000
	OAMStart   uint16 = 0xFE00
	IOStart    uint16 = 0xFF00
	ROMSize           = 0x8000
	OAMDMASize        = 0xA0
)
