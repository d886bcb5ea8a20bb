package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmgemu/internal/addr"
)

func TestHaltWithIMESetEntersHaltedState(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = true
	halt(c, bus)
	assert.True(t, c.Halted())
	assert.False(t, c.haltBug)
}

func TestHaltWithIMEClearAndPendingInterruptSetsHaltBugNotHalted(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[addr.IE] = uint8(addr.VBlank)
	bus.mem[addr.IF] = uint8(addr.VBlank)
	c := New()
	c.IME = false

	halt(c, bus)
	assert.False(t, c.Halted())
	assert.True(t, c.haltBug)
}

func TestHaltWithIMEClearAndNoPendingInterruptHalts(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = false

	halt(c, bus)
	assert.True(t, c.Halted())
	assert.False(t, c.haltBug)
}

func TestHaltBugReExecutesByteAtPCWithoutAdvancing(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.SetPC(0x100)
	load(bus, 0x100, 0x3C) // INC A
	c.haltBug = true

	op := c.fetchOpcode(bus)
	assert.Equal(t, uint8(0x3C), op)
	assert.Equal(t, uint16(0x100), c.GetPC(), "PC must not advance past the re-executed byte")
	assert.False(t, c.haltBug, "the bug only fires once")
}

func TestServiceInterruptsVectorsToHighestPriorityPending(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = true
	c.SetSP(0xFFFE)
	c.SetPC(0x1234)
	bus.mem[addr.IE] = uint8(addr.VBlank) | uint8(addr.Timer)
	bus.mem[addr.IF] = uint8(addr.VBlank) | uint8(addr.Timer)

	cycles := c.ServiceInterrupts(bus)
	assert.Equal(t, 20, cycles)
	assert.Equal(t, addr.Vector(addr.VBlank), c.GetPC())
	assert.False(t, c.IMESet())
	assert.Equal(t, uint16(0x1234), c.pop(bus))
	assert.Equal(t, uint8(addr.Timer), bus.mem[addr.IF], "only the serviced bit is cleared")
}

func TestServiceInterruptsWakesHaltedCPUWithoutServicingWhenIMEClear(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = false
	c.halted = true
	bus.mem[addr.IE] = uint8(addr.Joypad)
	bus.mem[addr.IF] = uint8(addr.Joypad)

	cycles := c.ServiceInterrupts(bus)
	assert.Equal(t, 0, cycles)
	assert.False(t, c.Halted(), "a pending interrupt wakes the CPU even without servicing it")
	assert.Equal(t, uint8(addr.Joypad), bus.mem[addr.IF], "IF is untouched when not serviced")
}

func TestServiceInterruptsNoopWhenNothingPending(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = true
	cycles := c.ServiceInterrupts(bus)
	assert.Equal(t, 0, cycles)
}

func TestTimerInterruptVectorsTo0x0050(t *testing.T) {
	bus := &fakeBus{}
	c := New()
	c.IME = true
	c.SetSP(0xFFFE)
	bus.mem[addr.IE] = uint8(addr.Timer)
	bus.mem[addr.IF] = uint8(addr.Timer)

	c.ServiceInterrupts(bus)
	require.Equal(t, uint16(0x0050), c.GetPC())
}
