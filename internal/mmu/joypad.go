package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
)

// Press presses a button, requesting the joypad interrupt if the
// button was released.
func (m *MMU) Press(button joypad.Button) {
	if m.input.Press(button) {
		m.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (m *MMU) Release(button joypad.Button) {
	m.input.Release(button)
}

// SetButtons replaces the action button latch (active low).
func (m *MMU) SetButtons(mask uint8) {
	if m.input.SetButtons(mask) {
		m.irq.Request(interrupts.JoypadFlag)
	}
}

// SetDirections replaces the direction key latch (active low).
func (m *MMU) SetDirections(mask uint8) {
	if m.input.SetDirections(mask) {
		m.irq.Request(interrupts.JoypadFlag)
	}
}
