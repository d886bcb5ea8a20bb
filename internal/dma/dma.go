// Package dma implements the OAM DMA transfer engine: writing the
// source page to 0xFF46 copies 160 bytes into OAM immediately and opens
// a 640 T-cycle lockout window during which the bus restricts non-HRAM
// reads (spec.md §4.3).
package dma

// LockoutCycles is the duration, in T-cycles, of the post-transfer
// lockout window.
const LockoutCycles = 640

// DMA tracks whether a transfer's lockout window is still open.
type DMA struct {
	running bool
	elapsed int
}

// New returns an idle DMA engine.
func New() *DMA {
	return &DMA{}
}

// Running reports whether the bus should currently gate non-HRAM reads.
func (d *DMA) Running() bool {
	return d.running
}

// Start begins the lockout window. The 160-byte OAM copy itself is
// performed by the bus (it alone can see both source and destination
// regions); DMA only tracks the timing side of the transfer.
func (d *DMA) Start() {
	d.running = true
	d.elapsed = 0
}

// Step advances the lockout counter by c T-cycles, clearing Running
// once 640 cycles have elapsed.
func (d *DMA) Step(c int) {
	if !d.running {
		return
	}
	d.elapsed += c
	if d.elapsed >= LockoutCycles {
		d.running = false
		d.elapsed = 0
	}
}
