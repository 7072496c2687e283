// Package window presents the frame in a pixelgl window. Everything here must
// run inside pixelgl.Run.
package window

import (
	"fmt"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/beanboi7/chyp8/emu/screen"
)

// Config for a new Window.
type Config struct {
	Title  string
	Scale  int
	Keymap screen.Keymap
	On     color.Color
	Off    color.Color
}

type Window struct {
	*pixelgl.Window
	KeyMap map[uint8]pixelgl.Button

	scale float64
	on    color.Color
	off   color.Color
	imd   *imdraw.IMDraw
}

// New opens a window scaled to hold the 64x32 frame.
func New(cfg Config) (*Window, error) {
	if cfg.Scale <= 0 {
		return nil, fmt.Errorf("window: scale must be positive, got %d", cfg.Scale)
	}
	if cfg.Title == "" {
		cfg.Title = "Chyp8"
	}
	if cfg.On == nil {
		cfg.On = colornames.White
	}
	if cfg.Off == nil {
		cfg.Off = colornames.Black
	}

	keys, err := buttons(cfg.Keymap)
	if err != nil {
		return nil, err
	}

	w := float64(screen.Width * cfg.Scale)
	h := float64(screen.Height * cfg.Scale)
	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, w, h),
		VSync:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	return &Window{
		Window: win,
		KeyMap: keys,
		scale:  float64(cfg.Scale),
		on:     cfg.On,
		off:    cfg.Off,
		imd:    imdraw.New(nil),
	}, nil
}

// buttons resolves the keymap characters to pixelgl buttons. Only digits and
// letters are supported.
func buttons(km screen.Keymap) (map[uint8]pixelgl.Button, error) {
	keys := make(map[uint8]pixelgl.Button, 16)
	for k := uint8(0); k < 16; k++ {
		b, ok := button(km.Char(k))
		if !ok {
			return nil, fmt.Errorf("window: no button for keymap character %q", km.Char(k))
		}
		keys[k] = b
	}
	return keys, nil
}

func button(r rune) (pixelgl.Button, bool) {
	switch {
	case r >= '0' && r <= '9':
		return pixelgl.Key0 + pixelgl.Button(r-'0'), true
	case r >= 'a' && r <= 'z':
		return pixelgl.KeyA + pixelgl.Button(r-'a'), true
	}
	return 0, false
}

// Present draws the frame and swaps buffers. Input is gathered separately
// by Poll so that it keeps flowing while the frame is unchanged.
func (w *Window) Present(frame *screen.Frame) error {
	w.imd.Clear()
	w.imd.Color = w.on

	// pixel's origin is bottom left
	for y := 0; y < screen.Height; y++ {
		for x := 0; x < screen.Width; x++ {
			if !frame.Pixel(x, y) {
				continue
			}
			x0 := float64(x) * w.scale
			y0 := float64(screen.Height-1-y) * w.scale
			w.imd.Push(pixel.V(x0, y0), pixel.V(x0+w.scale, y0+w.scale))
			w.imd.Rectangle(0)
		}
	}

	w.Clear(w.off)
	w.imd.Draw(w)
	w.SwapBuffers()
	return nil
}

// Poll gathers window input and reports key transitions since the previous
// call.
func (w *Window) Poll() []screen.Event {
	var events []screen.Event

	w.UpdateInput()

	if w.Closed() || w.JustPressed(pixelgl.KeyEscape) {
		return append(events, screen.Event{Kind: screen.Quit})
	}
	if w.JustPressed(pixelgl.KeySpace) {
		events = append(events, screen.Event{Kind: screen.TogglePause})
	}
	if w.JustPressed(pixelgl.KeyPeriod) {
		events = append(events, screen.Event{Kind: screen.StepCycle})
	}
	if w.JustPressed(pixelgl.KeyF5) {
		events = append(events, screen.Event{Kind: screen.Reset})
	}

	for k := uint8(0); k < 16; k++ {
		b := w.KeyMap[k]
		if w.JustPressed(b) {
			events = append(events, screen.Event{Kind: screen.KeyDown, Key: k})
		}
		if w.JustReleased(b) {
			events = append(events, screen.Event{Kind: screen.KeyUp, Key: k})
		}
	}
	return events
}

func (w *Window) Close() {
	w.Destroy()
}
