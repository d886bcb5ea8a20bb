package cpu

import "dmgemu/internal/bit"

// fetchOpcode reads the next opcode byte at PC, implementing the
// halt-bug quirk: if set, the byte at PC is re-read without
// incrementing PC, and the bug is cleared (spec.md §4.1, §4.5 HALT).
func (c *CPU) fetchOpcode(bus BusPort) uint8 {
	if c.haltBug {
		c.haltBug = false
		return bus.Read(c.PC.Get())
	}
	return c.fetchByte(bus)
}

// fetchByte reads the byte at PC and post-increments PC.
func (c *CPU) fetchByte(bus BusPort) uint8 {
	b := bus.Read(c.PC.Get())
	c.PC.Incr()
	return b
}

// fetchWord reads a little-endian word at PC, post-incrementing PC by 2.
func (c *CPU) fetchWord(bus BusPort) uint16 {
	lo := c.fetchByte(bus)
	hi := c.fetchByte(bus)
	return bit.Combine(hi, lo)
}

// push pre-decrements SP by 2 then stores high@SP+1, low@SP (spec.md §4.5).
func (c *CPU) push(bus BusPort, v uint16) {
	c.SP.Decr()
	bus.Write(c.SP.Get(), bit.High(v))
	c.SP.Decr()
	bus.Write(c.SP.Get(), bit.Low(v))
}

// pop loads low from SP then high from SP+1, then post-increments SP by 2.
func (c *CPU) pop(bus BusPort) uint16 {
	lo := bus.Read(c.SP.Get())
	c.SP.Incr()
	hi := bus.Read(c.SP.Get())
	c.SP.Incr()
	return bit.Combine(hi, lo)
}
