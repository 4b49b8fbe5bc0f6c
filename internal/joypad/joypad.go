// Package joypad provides an implementation of the DMG joypad. The host
// input layer sets two 4-bit latches, one for the action buttons and one
// for the direction keys, and the P1 register reports whichever group is
// selected.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Button represents a physical button on the DMG.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

const (
	// SelectButtons is the P1 select pattern that reports the action
	// buttons (bit 5 low).
	SelectButtons uint8 = types.Bit4
	// SelectDirections is the P1 select pattern that reports the
	// direction keys (bit 4 low).
	SelectDirections uint8 = types.Bit5
	// Released is the value of a latch with nothing pressed.
	Released uint8 = 0x0F
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// Buttons is the action button latch, active low.
	Buttons uint8
	// Directions is the direction key latch, active low.
	Directions uint8
}

// New returns a joypad with every button released.
func New() *State {
	return &State{Buttons: Released, Directions: Released}
}

// Press presses a button, returning true if the button was previously
// released, which is the high to low edge that requests a joypad
// interrupt.
func (s *State) Press(button Button) bool {
	latch, bit := s.latch(button)
	edge := bits.Test(*latch, bit)
	*latch = bits.Reset(*latch, bit)
	return edge
}

// Release releases a button.
func (s *State) Release(button Button) {
	latch, bit := s.latch(button)
	*latch = bits.Set(*latch, bit)
}

// SetButtons replaces the action button latch, returning true if any
// button went from released to pressed.
func (s *State) SetButtons(mask uint8) bool {
	return setLatch(&s.Buttons, mask)
}

// SetDirections replaces the direction key latch, returning true if any
// key went from released to pressed.
func (s *State) SetDirections(mask uint8) bool {
	return setLatch(&s.Directions, mask)
}

// Read returns the value of the P1 register for the given select bits.
// Patterns that select neither or both groups read as idle.
func (s *State) Read(sel uint8) uint8 {
	sel &= types.Bit4 | types.Bit5
	nibble := Released
	switch sel {
	case SelectButtons:
		nibble = s.Buttons
	case SelectDirections:
		nibble = s.Directions
	}
	return 0xC0 | sel | nibble&0x0F
}

func (s *State) latch(button Button) (*uint8, uint8) {
	if button >= ButtonRight {
		return &s.Directions, button - ButtonRight
	}
	return &s.Buttons, button
}

func setLatch(latch *uint8, mask uint8) bool {
	mask &= 0x0F
	pressed := *latch &^ mask // bits that were 1 and are now 0
	*latch = mask
	return pressed != 0
}
