package cpu

// cbTable is the secondary 256-entry dispatch table reached through the
// 0xCB prefix. Each entry returns its own inner cost; the 0xCB handler
// in opcodes.go adds the 4 T-cycles spent fetching the prefix itself,
// matching spec.md §4.5 ("CB-prefix handler returns 4 + inner cost").
var cbTable [256]Opcode

func init() {
	rotateOps := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc,
		(*CPU).rrc,
		(*CPU).rl,
		(*CPU).rr,
		(*CPU).sla,
		(*CPU).sra,
		(*CPU).swap,
		(*CPU).srl,
	}

	for op := 0; op <= 0x3F; op++ {
		fn := rotateOps[(op>>3)&0x7]
		r := uint8(op) & 0x7
		cbTable[op] = func(c *CPU, bus BusPort) int {
			c.setR8(bus, r, fn(c, c.r8(bus, r)))
			if r == 6 {
				return 12
			}
			return 4
		}
	}

	for op := 0x40; op <= 0x7F; op++ {
		n := uint8(op>>3) & 0x7
		r := uint8(op) & 0x7
		cbTable[op] = func(c *CPU, bus BusPort) int {
			c.bitTest(n, c.r8(bus, r))
			if r == 6 {
				return 8
			}
			return 4
		}
	}

	for op := 0x80; op <= 0xBF; op++ {
		n := uint8(op>>3) & 0x7
		r := uint8(op) & 0x7
		cbTable[op] = func(c *CPU, bus BusPort) int {
			c.setR8(bus, r, c.r8(bus, r)&^(1<<n))
			if r == 6 {
				return 12
			}
			return 4
		}
	}

	for op := 0xC0; op <= 0xFF; op++ {
		n := uint8(op>>3) & 0x7
		r := uint8(op) & 0x7
		cbTable[op] = func(c *CPU, bus BusPort) int {
			c.setR8(bus, r, c.r8(bus, r)|(1<<n))
			if r == 6 {
				return 12
			}
			return 4
		}
	}
}
