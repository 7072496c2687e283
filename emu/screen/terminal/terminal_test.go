package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/beanboi7/chyp8/emu/screen"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	km, err := screen.ParseKeymap(screen.DefaultKeymap)
	if err != nil {
		t.Fatal(err)
	}
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := New(sim, km, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	sim.SetSize(2*screen.Width, screen.Height)
	t.Cleanup(term.Close)
	return term, sim
}

// waitEvents polls until n events have arrived or a second has passed.
func waitEvents(term *Terminal, n int) []screen.Event {
	var events []screen.Event
	deadline := time.Now().Add(time.Second)
	for len(events) < n && time.Now().Before(deadline) {
		events = append(events, term.Poll()...)
		time.Sleep(time.Millisecond)
	}
	return events
}

func TestKeyPress(t *testing.T) {
	term, sim := newTestTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	events := waitEvents(term, 1)
	if len(events) != 1 || events[0] != (screen.Event{Kind: screen.KeyDown, Key: 0x5}) {
		t.Fatalf("events = %v, want KeyDown 5", events)
	}

	// auto repeat while held does not press again
	sim.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	events = waitEvents(term, 1)
	if len(events) != 1 || events[0].Kind != screen.TogglePause {
		t.Fatalf("events = %v, want only TogglePause", events)
	}
}

func TestKeyReleaseAfterHold(t *testing.T) {
	term, sim := newTestTerminal(t)

	clock := time.Unix(0, 0)
	term.mu.Lock()
	term.now = func() time.Time { return clock }
	term.hold = 100 * time.Millisecond
	term.mu.Unlock()

	sim.InjectKey(tcell.KeyRune, 'V', tcell.ModNone)
	if events := waitEvents(term, 1); len(events) != 1 || events[0].Key != 0xF {
		t.Fatalf("events = %v, want KeyDown F", events)
	}

	term.mu.Lock()
	clock = clock.Add(150 * time.Millisecond)
	term.mu.Unlock()

	events := term.Poll()
	if len(events) != 1 || events[0] != (screen.Event{Kind: screen.KeyUp, Key: 0xF}) {
		t.Errorf("events = %v, want KeyUp F", events)
	}
}

func TestControlKeys(t *testing.T) {
	term, sim := newTestTerminal(t)

	sim.InjectKey(tcell.KeyRune, '.', tcell.ModNone)
	sim.InjectKey(tcell.KeyF5, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	events := waitEvents(term, 3)
	want := []screen.Kind{screen.StepCycle, screen.Reset, screen.Quit}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want kinds %v", events, want)
	}
	for i := range want {
		if events[i].Kind != want[i] {
			t.Errorf("event %d = %v, want kind %v", i, events[i], want[i])
		}
	}
}

func TestPresent(t *testing.T) {
	term, sim := newTestTerminal(t)

	frame := screen.NewFrame()
	frame.DrawSprite(3, 2, []byte{0x80})
	if err := term.Present(frame); err != nil {
		t.Fatal(err)
	}

	cells, w, _ := sim.GetContents()
	at := func(x, y int) rune {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			return ' '
		}
		return runes[0]
	}
	if at(6, 2) != '█' || at(7, 2) != '█' {
		t.Errorf("lit pixel not drawn: %q%q", at(6, 2), at(7, 2))
	}
	if at(8, 2) != ' ' || at(0, 0) != ' ' {
		t.Errorf("unlit pixels drawn: %q %q", at(8, 2), at(0, 0))
	}
}
