// Package terminal presents the frame in a text terminal using tcell.
//
// Terminals only report key presses, so a hex key is released automatically
// once it has gone Hold without being pressed again.
package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/beanboi7/chyp8/emu/screen"
)

// DefaultHold is how long a key counts as held after the terminal reports it.
const DefaultHold = 100 * time.Millisecond

const pixelRunes = "██"

type Terminal struct {
	scr    tcell.Screen
	keymap screen.Keymap
	hold   time.Duration
	now    func() time.Time

	on  tcell.Style
	off tcell.Style

	mu      sync.Mutex
	pending []screen.Event
	held    map[uint8]time.Time

	done chan struct{}
}

// New takes over scr, which must not yet be initialised, and starts reading
// its events.
func New(scr tcell.Screen, keymap screen.Keymap, hold time.Duration) (*Terminal, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if hold <= 0 {
		hold = DefaultHold
	}

	t := &Terminal{
		scr:    scr,
		keymap: keymap,
		hold:   hold,
		now:    time.Now,
		on:     tcell.StyleDefault.Foreground(tcell.ColorWhite),
		off:    tcell.StyleDefault,
		held:   make(map[uint8]time.Time),
		done:   make(chan struct{}),
	}
	scr.HideCursor()
	scr.Clear()

	go t.readEvents()
	return t, nil
}

// Open starts a Terminal on the controlling terminal.
func Open(keymap screen.Keymap) (*Terminal, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return New(scr, keymap, DefaultHold)
}

func (t *Terminal) readEvents() {
	defer close(t.done)
	for {
		ev := t.scr.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			t.handleKey(key)
		}
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.pending = append(t.pending, screen.Event{Kind: screen.Quit})
		return
	case tcell.KeyF5:
		t.pending = append(t.pending, screen.Event{Kind: screen.Reset})
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case ' ':
		t.pending = append(t.pending, screen.Event{Kind: screen.TogglePause})
		return
	case '.':
		t.pending = append(t.pending, screen.Event{Kind: screen.StepCycle})
		return
	}

	k, ok := t.keymap.Lookup(ev.Rune())
	if !ok {
		return
	}
	if _, down := t.held[k]; !down {
		t.pending = append(t.pending, screen.Event{Kind: screen.KeyDown, Key: k})
	}
	t.held[k] = t.now()
}

// Poll returns the events read since the last call, plus a KeyUp for every
// key whose hold has lapsed.
func (t *Terminal) Poll() []screen.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for k := uint8(0); k < 16; k++ {
		at, down := t.held[k]
		if down && now.Sub(at) >= t.hold {
			delete(t.held, k)
			t.pending = append(t.pending, screen.Event{Kind: screen.KeyUp, Key: k})
		}
	}

	events := t.pending
	t.pending = nil
	return events
}

// Present draws each pixel as two cells so the picture keeps its shape.
func (t *Terminal) Present(frame *screen.Frame) error {
	for y := 0; y < screen.Height; y++ {
		for x := 0; x < screen.Width; x++ {
			style := t.off
			if frame.Pixel(x, y) {
				style = t.on
			}
			for i, r := range []rune(pixelRunes) {
				if style == t.off {
					r = ' '
				}
				t.scr.SetContent(2*x+i, y, r, nil, style)
			}
		}
	}
	t.scr.Show()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.scr.Fini()
	<-t.done
}
