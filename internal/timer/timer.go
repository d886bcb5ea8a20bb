// Package timer implements the DIV/TIMA tree: a 16384 Hz divider and a
// software-selectable TIMA counter that reloads from TMA and requests
// the timer interrupt on overflow (spec.md §4.2).
package timer

import "dmgemu/internal/addr"

// divPeriod is the number of T-cycles between DIV increments:
// 4194304 Hz / 16384 Hz = 256.
const divPeriod = 256

// thresholds maps TAC bits 1..0 to the T-cycle period between TIMA
// increments, per spec.md §4.2.
var thresholds = [4]int{1024, 16, 64, 256}

// Timer holds the two independent T-cycle accumulators spec.md §3
// describes; DIV and TIMA/TMA/TAC register storage itself lives in the
// bus, Timer only owns the sub-counters driving them.
type Timer struct {
	divAcc  int
	timaAcc int
}

// New returns a zeroed timer.
func New() *Timer {
	return &Timer{}
}

// Registers is the capability surface Timer needs from the bus: direct
// register storage, so a DIV write can force both to 0 without Timer
// knowing about gating or side effects elsewhere on the bus.
type Registers interface {
	Div() uint8
	SetDiv(uint8)
	Tima() uint8
	SetTima(uint8)
	Tma() uint8
	Tac() uint8
	RequestInterrupt(i addr.Interrupt)
}

// Step advances DIV and, if enabled, TIMA by c T-cycles, requesting the
// timer interrupt (IF bit 2) on every TIMA overflow.
func (t *Timer) Step(c int, regs Registers) {
	t.divAcc += c
	for t.divAcc >= divPeriod {
		t.divAcc -= divPeriod
		regs.SetDiv(regs.Div() + 1)
	}

	tac := regs.Tac()
	if tac&0x04 == 0 {
		return
	}

	threshold := thresholds[tac&0x03]
	t.timaAcc += c
	for t.timaAcc >= threshold {
		t.timaAcc -= threshold
		tima := regs.Tima()
		if tima == 0xFF {
			regs.SetTima(regs.Tma())
			regs.RequestInterrupt(addr.Timer)
		} else {
			regs.SetTima(tima + 1)
		}
	}
}

// ResetOnDivWrite discards in-flight surplus cycles, the tie-break
// spec.md §4.2 calls for when software writes DIV mid-step.
func (t *Timer) ResetOnDivWrite() {
	t.divAcc = 0
	t.timaAcc = 0
}
