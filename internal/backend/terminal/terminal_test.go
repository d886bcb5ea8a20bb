package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dmgemu/internal/joypad"
	"dmgemu/internal/machine"
)

func newTestBackend() *Backend {
	return &Backend{
		lastPressed: make(map[joypad.Button]time.Time),
		held:        make(map[joypad.Button]bool),
	}
}

func TestResolveKeyStatePressesOnFirstSighting(t *testing.T) {
	b := newTestBackend()
	m := machine.New(machine.Options{})
	now := time.Now()

	b.lastPressed[joypad.A] = now
	b.resolveKeyState(m, now)

	m.Joypad.SetSelect(0x10) // select the button group (bit 5 low)
	assert.Equal(t, uint8(0), m.Joypad.Read()&0x01, "A should read pressed (bit low) once the button group is selected")
}

func TestResolveKeyStateReleasesAfterTimeout(t *testing.T) {
	b := newTestBackend()
	m := machine.New(machine.Options{})
	now := time.Now()

	b.lastPressed[joypad.A] = now
	b.resolveKeyState(m, now)
	assert.True(t, b.held[joypad.A])

	b.resolveKeyState(m, now.Add(keyTimeout))

	assert.False(t, b.held[joypad.A], "a button whose key-down events stopped arriving must be released")
	assert.NotContains(t, b.lastPressed, joypad.A)
}

func TestResolveKeyStateKeepsHeldWhileRepeatedKeyDownsArrive(t *testing.T) {
	b := newTestBackend()
	m := machine.New(machine.Options{})
	now := time.Now()

	b.lastPressed[joypad.Up] = now
	b.resolveKeyState(m, now)
	assert.True(t, b.held[joypad.Up])

	b.lastPressed[joypad.Up] = now.Add(keyTimeout / 2)
	b.resolveKeyState(m, now.Add(keyTimeout/2))

	assert.True(t, b.held[joypad.Up], "a button still receiving key-down events within keyTimeout stays held")
}
