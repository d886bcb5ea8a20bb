// Package terminal is the host windowing/input collaborator spec.md §1
// places out of scope for the core: it renders the 160x144 four-shade
// framebuffer to a tcell screen using half-block characters, and maps
// terminal key events onto the button matrix. Grounded on the
// teacher's gdamore/tcell-based TUI renderer.
package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"dmgemu/internal/joypad"
	"dmgemu/internal/machine"
	"dmgemu/internal/video"
)

// frameInterval approximates the DMG's ~59.7 Hz refresh rate.
var frameInterval = time.Duration(float64(time.Second) / 59.7)

// shadeColors maps a 2-bit shade to a terminal color approximating the
// classic four-tone DMG palette, lightest to darkest.
var shadeColors = [4]tcell.Color{
	tcell.NewRGBColor(0xE0, 0xF8, 0xD0),
	tcell.NewRGBColor(0x88, 0xC0, 0x70),
	tcell.NewRGBColor(0x34, 0x68, 0x56),
	tcell.NewRGBColor(0x08, 0x18, 0x20),
}

var keyMap = map[tcell.Key]joypad.Button{
	tcell.KeyUp:    joypad.Up,
	tcell.KeyDown:  joypad.Down,
	tcell.KeyLeft:  joypad.Left,
	tcell.KeyRight: joypad.Right,
	tcell.KeyEnter: joypad.Start,
	tcell.KeyTab:   joypad.Select,
}

var runeKeyMap = map[rune]joypad.Button{
	'z': joypad.A,
	'x': joypad.B,
}

// keyTimeout is how long a button is considered held after its last
// key-down event. tcell's EventKey carries no key-up on most terminals,
// so a held button only ever shows up as a stream of repeated key-down
// events; once that stream stops for keyTimeout, the button is released.
const keyTimeout = 100 * time.Millisecond

// Backend drives a Machine and renders its frames to a terminal.
type Backend struct {
	screen tcell.Screen

	lastPressed map[joypad.Button]time.Time // last key-down seen for each button
	held        map[joypad.Button]bool      // buttons considered down as of the last poll
}

// New allocates and initializes a tcell screen.
func New() (*Backend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal: initializing screen: %w", err)
	}
	return &Backend{
		screen:      s,
		lastPressed: make(map[joypad.Button]time.Time),
		held:        make(map[joypad.Button]bool),
	}, nil
}

// Close releases the terminal.
func (b *Backend) Close() { b.screen.Fini() }

// Run drives m until the user quits (Esc/q) or the machine stops
// itself, pacing presentation to the frame interval and polling
// keyboard events between frames -- the "drain host input events" /
// "present frame" / "sleep" steps spec.md §4.6 places outside the core.
func (b *Backend) Run(m *machine.Machine) {
	events := make(chan tcell.Event, 16)
	go b.screen.ChannelEvents(events, nil)

	quit := false
	for m.CPU.Running && !quit {
		frameStart := time.Now()

		m.RunFrame(m.Frame())
		b.draw(m.Frame())

	drain:
		for {
			select {
			case ev := <-events:
				if b.handleEvent(ev) {
					quit = true
				}
			default:
				break drain
			}
		}

		b.resolveKeyState(m, time.Now())

		if elapsed := time.Since(frameStart); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}
}

// handleEvent records a key-down against its mapped button and reports
// whether the user asked to quit. It does not call into the machine
// directly: press/release transitions are decided once per frame by
// resolveKeyState, after every pending event has been drained.
func (b *Backend) handleEvent(ev tcell.Event) (quit bool) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	if keyEv.Key() == tcell.KeyEscape || keyEv.Rune() == 'q' {
		return true
	}

	if btn, ok := keyMap[keyEv.Key()]; ok {
		b.lastPressed[btn] = time.Now()
		return false
	}
	if btn, ok := runeKeyMap[keyEv.Rune()]; ok {
		b.lastPressed[btn] = time.Now()
	}
	return false
}

// resolveKeyState diffs the buttons seen within the last keyTimeout
// against those held as of the previous frame, forwarding exactly the
// transitions that changed so a button pressed once doesn't stay stuck
// down once its key-down events stop arriving.
func (b *Backend) resolveKeyState(m *machine.Machine, now time.Time) {
	active := make(map[joypad.Button]bool, len(b.lastPressed))

	for btn, seen := range b.lastPressed {
		if now.Sub(seen) >= keyTimeout {
			delete(b.lastPressed, btn)
			continue
		}
		active[btn] = true
		if !b.held[btn] {
			m.HandleKeyPress(btn)
		}
	}

	for btn := range b.held {
		if !active[btn] {
			m.HandleKeyRelease(btn)
		}
	}

	b.held = active
}

// draw renders two framebuffer rows per terminal row using the upper
// half-block glyph, foreground set to the top pixel and background to
// the bottom one, doubling vertical resolution in a character cell.
func (b *Backend) draw(fb *video.FrameBuffer) {
	b.screen.Clear()

	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := fb.At(x, y)
			bottom := uint8(0)
			if y+1 < video.Height {
				bottom = fb.At(x, y+1)
			}

			style := tcell.StyleDefault.
				Foreground(shadeColors[top]).
				Background(shadeColors[bottom])
			b.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	b.screen.Show()
}
