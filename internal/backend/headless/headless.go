// Package headless runs a Machine for a fixed number of frames without
// any windowing, the shape the teacher's "--headless --frames N" CLI
// mode takes. Used by scripted acceptance runs that only care about the
// serial-tap byte stream or a final frame.
package headless

import "dmgemu/internal/machine"

// Run executes up to frames full frames of emulation, stopping early if
// the CPU stops running. It returns nothing; the last frame drawn is
// left in m.Frame().
func Run(m *machine.Machine, frames int) {
	for i := 0; i < frames && m.CPU.Running; i++ {
		m.RunFrame(m.Frame())
	}
}
