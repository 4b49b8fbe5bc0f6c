// Package interrupts provides the interrupt request and enable logic of
// the DMG. The request (IF) and enable (IE) bits live in the zero page, so
// the Service works on them through a Registers accessor rather than
// holding its own copy. The master enable flag is owned by the CPU.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the LCD enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag = types.Bit4

	// Mask covers the five interrupt sources.
	Mask = 0x1F
)

// Vectors holds the service routine address of each interrupt, in
// priority order.
var Vectors = [5]uint16{0x0040, 0x0048, 0x0050, 0x0058, 0x0060}

// Registers gives raw access to the zero page registers.
type Registers interface {
	Get(address uint16) uint8
	Set(address uint16, value uint8)
}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in IF is set. When an interrupt is enabled, the
// corresponding bit in IE is set. When an interrupt is
// requested and enabled, and the IME is set, the CPU
// will jump to the interrupt vector, and the
// corresponding bit in IF will be cleared.
type Service struct {
	r Registers
}

// NewService returns a new Service over r.
func NewService(r Registers) *Service {
	return &Service{r: r}
}

// Flag returns the request bits.
func (s *Service) Flag() uint8 {
	return s.r.Get(types.IF) & Mask
}

// Enable returns the enable bits.
func (s *Service) Enable() uint8 {
	return s.r.Get(types.IE) & Mask
}

// Request requests the specified interrupt, by setting
// the corresponding bit in IF.
func (s *Service) Request(flag uint8) {
	s.r.Set(types.IF, (s.Flag()|flag)&Mask)
}

// Clear clears the request for the specified interrupt.
func (s *Service) Clear(flag uint8) {
	s.r.Set(types.IF, s.Flag()&^flag)
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Flag()&s.Enable() != 0
}

// Vector returns the vector of the highest priority interrupt that is
// both requested and enabled, and clears its request bit. Lower priority
// requests are left pending. ok is false when nothing is pending.
//
// Interrupts are serviced in the order of priority:
//
//   - VBlank
//   - LCD
//   - Timer
//   - Serial
//   - Joypad
func (s *Service) Vector() (vector uint16, ok bool) {
	pending := s.Flag() & s.Enable()
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if pending&flag != 0 {
			s.Clear(flag)
			return Vectors[i], true
		}
	}

	return 0, false
}
