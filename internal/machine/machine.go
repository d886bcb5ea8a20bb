// Package machine owns the single aggregate machine state spec.md §3
// describes and runs the tick loop of spec.md §4.6: service interrupts,
// fetch-decode-execute one instruction, then advance PPU/timer/DMA by
// the cycles it consumed.
package machine

import (
	"log/slog"

	"dmgemu/internal/bus"
	"dmgemu/internal/cartridge"
	"dmgemu/internal/cpu"
	"dmgemu/internal/joypad"
	"dmgemu/internal/serial"
	"dmgemu/internal/video"
)

// CyclesPerFrame is 4194304 Hz / 59.7 Hz, spec.md §4.6's frame budget.
const CyclesPerFrame = 70224

// Machine is the single owner of CPU, bus, and PPU state; nothing else
// in the program holds a mutable reference into their internals.
type Machine struct {
	CPU    *cpu.CPU
	Bus    *bus.Bus
	PPU    *video.PPU
	Joypad *joypad.Matrix

	frame *video.FrameBuffer
}

// Options configures a new Machine.
type Options struct {
	ROM         []byte
	BootROM     []byte
	SerialOut   func(b byte) // optional hook invoked with each serial-tap byte
	TestLogMode bool
}

// New builds a Machine ready to run: CPU at power-on state, PPU idle,
// bus holding the cartridge (and boot ROM, if given) flat in the low
// address space (spec.md §6).
func New(opts Options) *Machine {
	jp := joypad.New()
	tap := serial.New(nil, opts.SerialOut)

	b := bus.New(opts.ROM, opts.BootROM, jp, tap)
	b.TestLogMode = opts.TestLogMode

	return &Machine{
		CPU:    cpu.New(),
		Bus:    b,
		PPU:    video.New(),
		Joypad: jp,
		frame:  video.NewFrameBuffer(),
	}
}

// NewFromFile loads a cartridge ROM (and optional boot ROM) from disk.
func NewFromFile(romPath, bootPath string, opts Options) (*Machine, error) {
	rom, err := cartridge.Load(romPath)
	if err != nil {
		return nil, err
	}

	opts.ROM = rom
	slog.Debug("cartridge loaded", "path", romPath, "size", len(rom))

	if bootPath != "" {
		boot, err := cartridge.LoadBootROM(bootPath)
		if err != nil {
			return nil, err
		}
		opts.BootROM = boot
		slog.Debug("boot ROM loaded", "path", bootPath)
	}

	return New(opts), nil
}

// Frame returns the most recently completed frame buffer.
func (m *Machine) Frame() *video.FrameBuffer { return m.frame }

// RunFrame executes CPU instructions and advances the PPU/timer/DMA
// trio after each one until a full frame's worth of T-cycles has been
// produced, implementing the tick loop body of spec.md §4.6. sink
// receives every pixel the PPU emits during the frame; pass m.Frame()
// to also retain the completed picture.
func (m *Machine) RunFrame(sink video.PixelSink) {
	total := 0
	for total < CyclesPerFrame && m.CPU.Running {
		c := m.CPU.Step(m.Bus)

		m.PPU.Step(c, m.Bus, sink)
		m.Bus.Timer().Step(c, m.Bus)
		m.Bus.DMA().Step(c)

		total += c
	}
}

// Run executes frames until the CPU's Running flag is cleared, calling
// onFrame after every completed frame with the drained picture. Pixels
// are written only into m.Frame(); no other sink is fed.
func (m *Machine) Run(onFrame func(*video.FrameBuffer)) {
	for m.CPU.Running {
		m.RunFrame(m.frame)
		if onFrame != nil {
			onFrame(m.frame)
		}
	}
}

// HandleKeyPress/HandleKeyRelease forward host input to the bus, the
// only field of machine state the host may mutate (spec.md §5).
func (m *Machine) HandleKeyPress(b joypad.Button)   { m.Bus.HandleKeyPress(b) }
func (m *Machine) HandleKeyRelease(b joypad.Button) { m.Bus.HandleKeyRelease(b) }

// Stop halts the tick loop at the next frame boundary.
func (m *Machine) Stop() { m.CPU.Running = false }
