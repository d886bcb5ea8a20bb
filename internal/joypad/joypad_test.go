package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllReleasedReadsOnes(t *testing.T) {
	m := New()
	m.SetSelect(0x00) // select both groups
	assert.Equal(t, uint8(0xCF), m.Read())
}

func TestPressSelectedButtonReadsZero(t *testing.T) {
	m := New()
	m.SetSelect(0x10) // selects the button group (bit 4 set leaves the d-pad unselected); replaced below
	m.SetSelect(0x20) // select d-pad: bit4=0, bit5=1
	edge := m.Press(Up)
	assert.True(t, edge, "press should report the 0->1 transition")

	assert.False(t, bitIsSet(2, m.Read()), "Up should read as pressed (bit clear)")
}

func TestPressEdgeOnlyOnce(t *testing.T) {
	m := New()
	m.SetSelect(0x20)
	assert.True(t, m.Press(Up))
	assert.False(t, m.Press(Up), "pressing an already-pressed button is not an edge")
}

func TestReleaseSetsBitBack(t *testing.T) {
	m := New()
	m.SetSelect(0x20)
	m.Press(Down)
	m.Release(Down)
	assert.True(t, bitIsSet(3, m.Read()))
}

func bitIsSet(index uint8, v uint8) bool {
	return (v>>index)&1 == 1
}
