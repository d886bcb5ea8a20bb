package cpu

import (
	"fmt"
	"log/slog"

	"dmgemu/internal/bit"
)

// Opcode executes one instruction and returns the T-cycles it consumed.
type Opcode func(*CPU, BusPort) int

// opcodeTable is the primary 256-entry dispatch table. It is built by
// init() from the LR35902 opcode's regular bit-field structure (the
// 01ddd-sss LD r,r' block, the 10ooo-rrr ALU block, and the per-group
// 16-bit ops), then patched with the irregular single opcodes, exactly
// the compaction spec.md §9's design notes describe.
var opcodeTable [256]Opcode

// illegalOpcodes lock up real hardware; this spec treats them as a NOP
// for determinism (spec.md §7, §9).
var illegalOpcodes = [...]uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func nop(c *CPU, bus BusPort) int { return 4 }

// unknownOpcode is the fallback every dispatch slot starts at before
// the build*Group functions and the illegal-opcode patch run over it.
// The LR35902's opcode space is closed -- every one of the 256 slots
// ends up either a real instruction or one of the eleven documented
// illegal opcodes -- so this should never execute. It exists so that a
// future construction bug (a slot the build functions fail to cover)
// fails loudly instead of silently behaving like a NOP, implementing
// spec.md §7's "unknown opcode" handling: log PC and opcode, then stop.
func unknownOpcode(op uint8) Opcode {
	return func(c *CPU, bus BusPort) int {
		pc := c.PC.Get() - 1
		slog.Error("unknown opcode", "pc", fmt.Sprintf("0x%04X", pc), "opcode", fmt.Sprintf("0x%02X", op))
		c.Running = false
		return 4
	}
}

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = unknownOpcode(uint8(i))
	}

	buildLoadGroup()
	buildAluGroup()
	buildIncDecLoadImmediateGroup()
	buildWordGroup()
	buildMiscGroup()
	buildBranchGroup()
	buildStackGroup()

	for _, op := range illegalOpcodes {
		opcodeTable[op] = nop
	}
}

// buildLoadGroup fills the 0x40-0x7F LD r,r' block (01ddd-sss), with
// 0x76 overridden to HALT below.
func buildLoadGroup() {
	for op := 0x40; op <= 0x7F; op++ {
		dst := uint8(op>>3) & 0x7
		src := uint8(op) & 0x7
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			v := c.r8(bus, src)
			c.setR8(bus, dst, v)
			cycles := 4
			if dst == 6 || src == 6 {
				cycles = 8
			}
			return cycles
		}
	}
	opcodeTable[0x76] = func(c *CPU, bus BusPort) int { return halt(c, bus) }
}

// buildAluGroup fills 0x80-0xBF: ADD,ADC,SUB,SBC,AND,XOR,OR,CP against
// A and every r8 operand (10ooo-rrr), plus the 0xC6-0xFE immediate
// forms of the same eight operations.
func buildAluGroup() {
	ops := [8]func(*CPU, uint8){
		func(c *CPU, v uint8) { c.add(v, 0) },
		func(c *CPU, v uint8) {
			var carry uint8
			if c.C() {
				carry = 1
			}
			c.add(v, carry)
		},
		func(c *CPU, v uint8) { c.subToA(v, 0) },
		func(c *CPU, v uint8) {
			var carry uint8
			if c.C() {
				carry = 1
			}
			c.subToA(v, carry)
		},
		func(c *CPU, v uint8) { c.and(v) },
		func(c *CPU, v uint8) { c.xor(v) },
		func(c *CPU, v uint8) { c.or(v) },
		func(c *CPU, v uint8) { c.cp(v) },
	}

	for op := 0x80; op <= 0xBF; op++ {
		fn := ops[(op>>3)&0x7]
		src := uint8(op) & 0x7
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			fn(c, c.r8(bus, src))
			if src == 6 {
				return 8
			}
			return 4
		}
	}

	immOpcodes := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range immOpcodes {
		fn := ops[i]
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			fn(c, c.fetchByte(bus))
			return 8
		}
	}
}

// buildIncDecLoadImmediateGroup fills the regular 00rrr100/101/110
// INC r8 / DEC r8 / LD r8,d8 entries across the whole register set,
// including (HL).
func buildIncDecLoadImmediateGroup() {
	for idx := uint8(0); idx <= 7; idx++ {
		r := idx
		incOp := 0x04 + int(r)*8
		decOp := 0x05 + int(r)*8
		ldOp := 0x06 + int(r)*8

		opcodeTable[incOp] = func(c *CPU, bus BusPort) int {
			c.setR8(bus, r, c.inc8(c.r8(bus, r)))
			if r == 6 {
				return 12
			}
			return 4
		}
		opcodeTable[decOp] = func(c *CPU, bus BusPort) int {
			c.setR8(bus, r, c.dec8(c.r8(bus, r)))
			if r == 6 {
				return 12
			}
			return 4
		}
		opcodeTable[ldOp] = func(c *CPU, bus BusPort) int {
			v := c.fetchByte(bus)
			c.setR8(bus, r, v)
			if r == 6 {
				return 12
			}
			return 8
		}
	}
}

// buildWordGroup fills INC rr/DEC rr/ADD HL,rr/LD rr,d16 for the
// BC,DE,HL,SP group (00rr-0011/1011/1001/0001).
func buildWordGroup() {
	for idx := uint8(0); idx <= 3; idx++ {
		rr := idx
		base := 0x00 + int(rr)*0x10

		opcodeTable[base+0x01] = func(c *CPU, bus BusPort) int {
			c.setR16(rr, c.fetchWord(bus))
			return 12
		}
		opcodeTable[base+0x03] = func(c *CPU, bus BusPort) int {
			c.setR16(rr, c.getR16(rr)+1)
			return 8
		}
		opcodeTable[base+0x09] = func(c *CPU, bus BusPort) int {
			c.addHL(c.getR16(rr))
			return 8
		}
		opcodeTable[base+0x0B] = func(c *CPU, bus BusPort) int {
			c.setR16(rr, c.getR16(rr)-1)
			return 8
		}
	}
}

// buildStackGroup fills PUSH/POP for the BC,DE,HL,AF group
// (11rr0101/0001).
func buildStackGroup() {
	for idx := uint8(0); idx <= 3; idx++ {
		rr := idx
		base := 0xC0 + int(rr)*0x10

		opcodeTable[base+0x01] = func(c *CPU, bus BusPort) int {
			c.setStackR16(rr, c.pop(bus))
			return 12
		}
		opcodeTable[base+0x05] = func(c *CPU, bus BusPort) int {
			c.push(bus, c.getStackR16(rr))
			return 16
		}
	}

	for n := uint8(0); n <= 7; n++ {
		op := 0xC7 + int(n)*8
		vector := uint16(n) * 8
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			c.push(bus, c.PC.Get())
			c.PC.Set(vector)
			return 16
		}
	}
}

// buildBranchGroup fills JR/JP/CALL/RET, both unconditional and the
// four-condition forms, whose taken/not-taken cycle counts differ
// (spec.md §4.5).
func buildBranchGroup() {
	opcodeTable[0x18] = func(c *CPU, bus BusPort) int {
		offset := int8(c.fetchByte(bus))
		c.PC.Set(uint16(int32(c.PC.Get()) + int32(offset)))
		return 12
	}
	for idx := uint8(0); idx <= 3; idx++ {
		cc := idx
		op := 0x20 + int(cc)*8
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			offset := int8(c.fetchByte(bus))
			if !c.cond(cc) {
				return 8
			}
			c.PC.Set(uint16(int32(c.PC.Get()) + int32(offset)))
			return 12
		}
	}

	opcodeTable[0xC3] = func(c *CPU, bus BusPort) int {
		c.PC.Set(c.fetchWord(bus))
		return 16
	}
	opcodeTable[0xE9] = func(c *CPU, bus BusPort) int {
		c.PC.Set(c.HL.Get())
		return 4
	}
	for idx := uint8(0); idx <= 3; idx++ {
		cc := idx
		op := 0xC2 + int(cc)*8
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			target := c.fetchWord(bus)
			if !c.cond(cc) {
				return 12
			}
			c.PC.Set(target)
			return 16
		}
	}

	opcodeTable[0xCD] = func(c *CPU, bus BusPort) int {
		target := c.fetchWord(bus)
		c.push(bus, c.PC.Get())
		c.PC.Set(target)
		return 24
	}
	for idx := uint8(0); idx <= 3; idx++ {
		cc := idx
		op := 0xC4 + int(cc)*8
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			target := c.fetchWord(bus)
			if !c.cond(cc) {
				return 12
			}
			c.push(bus, c.PC.Get())
			c.PC.Set(target)
			return 24
		}
	}

	opcodeTable[0xC9] = func(c *CPU, bus BusPort) int {
		c.PC.Set(c.pop(bus))
		return 16
	}
	opcodeTable[0xD9] = func(c *CPU, bus BusPort) int {
		c.PC.Set(c.pop(bus))
		c.IME = true
		return 16
	}
	for idx := uint8(0); idx <= 3; idx++ {
		cc := idx
		op := 0xC0 + int(cc)*8
		opcodeTable[op] = func(c *CPU, bus BusPort) int {
			if !c.cond(cc) {
				return 8
			}
			c.PC.Set(c.pop(bus))
			return 20
		}
	}
}

// buildMiscGroup fills every remaining irregular single opcode: the
// accumulator rotates, DAA/CPL/SCF/CCF, immediate/indirect loads that
// don't fit the regular blocks, STOP, DI/EI, LDH, and the SP/HL forms.
func buildMiscGroup() {
	opcodeTable[0x00] = nop

	opcodeTable[0x07] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(c.rlc(c.AF.Hi()))
		c.setZ(false)
		return 4
	}
	opcodeTable[0x0F] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(c.rrc(c.AF.Hi()))
		c.setZ(false)
		return 4
	}
	opcodeTable[0x17] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(c.rl(c.AF.Hi()))
		c.setZ(false)
		return 4
	}
	opcodeTable[0x1F] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(c.rr(c.AF.Hi()))
		c.setZ(false)
		return 4
	}
	opcodeTable[0x27] = func(c *CPU, bus BusPort) int { c.daa(); return 4 }
	opcodeTable[0x2F] = func(c *CPU, bus BusPort) int { c.cpl(); return 4 }
	opcodeTable[0x37] = func(c *CPU, bus BusPort) int { c.scf(); return 4 }
	opcodeTable[0x3F] = func(c *CPU, bus BusPort) int { c.ccf(); return 4 }

	opcodeTable[0x08] = func(c *CPU, bus BusPort) int {
		addr := c.fetchWord(bus)
		sp := c.SP.Get()
		bus.Write(addr, bit.Low(sp))
		bus.Write(addr+1, bit.High(sp))
		return 20
	}

	opcodeTable[0x10] = func(c *CPU, bus BusPort) int {
		c.fetchByte(bus) // STOP's second byte is conventionally 0x00
		return stop(c, bus)
	}

	opcodeTable[0x02] = func(c *CPU, bus BusPort) int { bus.Write(c.BC.Get(), c.AF.Hi()); return 8 }
	opcodeTable[0x12] = func(c *CPU, bus BusPort) int { bus.Write(c.DE.Get(), c.AF.Hi()); return 8 }
	opcodeTable[0x22] = func(c *CPU, bus BusPort) int {
		bus.Write(c.HL.Get(), c.AF.Hi())
		c.HL.Incr()
		return 8
	}
	opcodeTable[0x32] = func(c *CPU, bus BusPort) int {
		bus.Write(c.HL.Get(), c.AF.Hi())
		c.HL.Decr()
		return 8
	}
	opcodeTable[0x0A] = func(c *CPU, bus BusPort) int { c.AF.SetHi(bus.Read(c.BC.Get())); return 8 }
	opcodeTable[0x1A] = func(c *CPU, bus BusPort) int { c.AF.SetHi(bus.Read(c.DE.Get())); return 8 }
	opcodeTable[0x2A] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(bus.Read(c.HL.Get()))
		c.HL.Incr()
		return 8
	}
	opcodeTable[0x3A] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(bus.Read(c.HL.Get()))
		c.HL.Decr()
		return 8
	}

	opcodeTable[0xE0] = func(c *CPU, bus BusPort) int {
		offset := c.fetchByte(bus)
		bus.Write(0xFF00+uint16(offset), c.AF.Hi())
		return 12
	}
	opcodeTable[0xF0] = func(c *CPU, bus BusPort) int {
		offset := c.fetchByte(bus)
		c.AF.SetHi(bus.Read(0xFF00 + uint16(offset)))
		return 12
	}
	opcodeTable[0xE2] = func(c *CPU, bus BusPort) int {
		bus.Write(0xFF00+uint16(c.BC.Lo()), c.AF.Hi())
		return 8
	}
	opcodeTable[0xF2] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(bus.Read(0xFF00 + uint16(c.BC.Lo())))
		return 8
	}
	opcodeTable[0xEA] = func(c *CPU, bus BusPort) int {
		bus.Write(c.fetchWord(bus), c.AF.Hi())
		return 16
	}
	opcodeTable[0xFA] = func(c *CPU, bus BusPort) int {
		c.AF.SetHi(bus.Read(c.fetchWord(bus)))
		return 16
	}

	opcodeTable[0xE8] = func(c *CPU, bus BusPort) int {
		offset := int8(c.fetchByte(bus))
		c.SP.Set(c.addSPSigned(offset))
		return 16
	}
	opcodeTable[0xF8] = func(c *CPU, bus BusPort) int {
		offset := int8(c.fetchByte(bus))
		c.HL.Set(c.addSPSigned(offset))
		return 12
	}
	opcodeTable[0xF9] = func(c *CPU, bus BusPort) int {
		c.SP.Set(c.HL.Get())
		return 8
	}

	opcodeTable[0xF3] = func(c *CPU, bus BusPort) int { c.IME = false; return 4 }
	opcodeTable[0xFB] = func(c *CPU, bus BusPort) int { c.IME = true; return 4 }

	opcodeTable[0xCB] = func(c *CPU, bus BusPort) int {
		sub := c.fetchByte(bus)
		return 4 + cbTable[sub](c, bus)
	}
}
