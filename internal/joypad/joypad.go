// Package joypad tracks the eight-button state matrix and renders it
// through the P1 (0xFF00) select bits, the only field of machine state
// the host is allowed to mutate (spec.md §5).
package joypad

import "dmgemu/internal/bit"

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Matrix holds the pressed/released state of all eight buttons and the
// current P1 select bits (bit 4 = select d-pad, bit 5 = select buttons).
// A bit is 0 when pressed, matching real hardware polarity.
type Matrix struct {
	dpad    uint8
	buttons uint8
	selectBits uint8
}

// New returns a matrix with every button released.
func New() *Matrix {
	return &Matrix{dpad: 0x0F, buttons: 0x0F, selectBits: 0x30}
}

// Press marks a button down. It returns true when this is a 0->1
// transition on the host's original state (i.e. the button just became
// pressed), the edge the bus uses to raise the joypad interrupt.
func (m *Matrix) Press(b Button) bool {
	before := m.snapshot(b)
	switch {
	case isDpad(b):
		m.dpad = bit.Reset(dpadBit(b), m.dpad)
	default:
		m.buttons = bit.Reset(buttonBit(b), m.buttons)
	}
	return before && !m.snapshot(b)
}

// Release marks a button up.
func (m *Matrix) Release(b Button) {
	if isDpad(b) {
		m.dpad = bit.Set(dpadBit(b), m.dpad)
	} else {
		m.buttons = bit.Set(buttonBit(b), m.buttons)
	}
}

func (m *Matrix) snapshot(b Button) bool {
	if isDpad(b) {
		return bit.IsSet(dpadBit(b), m.dpad)
	}
	return bit.IsSet(buttonBit(b), m.buttons)
}

// SetSelect stores the P1 selection bits (4 and 5) written by software.
func (m *Matrix) SetSelect(p1 uint8) {
	m.selectBits = p1 & 0x30
}

// Read computes the value software sees at P1: bits 6-7 always read 1,
// bits 4-5 echo the selection, bits 0-3 are the selected button group.
func (m *Matrix) Read() uint8 {
	result := uint8(0xC0) | m.selectBits

	selectDpad := !bit.IsSet(4, m.selectBits)
	selectButtons := !bit.IsSet(5, m.selectBits)

	switch {
	case selectButtons && !selectDpad:
		result |= m.buttons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.dpad & 0x0F
	case selectDpad && selectButtons:
		result |= m.buttons & m.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

func isDpad(b Button) bool { return b <= Down }

func dpadBit(b Button) uint8 { return uint8(b) }

func buttonBit(b Button) uint8 { return uint8(b - A) }
