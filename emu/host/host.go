// Package host drives an EMU in real time: it paces instructions at the
// configured clock rate, ticks the timers at 60Hz, presents the frame and
// forwards input from a Frontend.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/screen"
)

const (
	DefaultClockRate = 500

	// MaxClockRate bounds the clock so that a cycle period stays at 10µs or
	// more.
	MaxClockRate = 100_000

	// pacePeriod is the coarsest interval between bursts of cycles. Slower
	// clocks tick once per instruction instead.
	pacePeriod = time.Millisecond

	// maxCatchUp caps how much missed time a single burst replays, so a
	// stalled host does not run a long backlog all at once.
	maxCatchUp = 100 * time.Millisecond
)

// Options for a Host.
type Options struct {
	// ClockRate is the number of instructions per second.
	ClockRate int

	// Paused starts the machine paused. It can still be single stepped.
	Paused bool

	Logger *slog.Logger
}

type Host struct {
	emu      *cpu.EMU
	frontend screen.Frontend
	image    []byte

	clockRate int
	paused    bool
	log       *slog.Logger
}

// New returns a Host for emu. image is the ROM already loaded into emu and is
// reloaded whenever the frontend asks for a reset.
func New(emu *cpu.EMU, frontend screen.Frontend, image []byte, opts Options) (*Host, error) {
	if opts.ClockRate <= 0 || opts.ClockRate > MaxClockRate {
		return nil, fmt.Errorf("host: clock rate must be between 1 and %d, got %d", MaxClockRate, opts.ClockRate)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Host{
		emu:       emu,
		frontend:  frontend,
		image:     image,
		clockRate: opts.ClockRate,
		paused:    opts.Paused,
		log:       opts.Logger,
	}, nil
}

func (h *Host) Paused() bool {
	return h.paused
}

// pacer turns elapsed wall time into a whole number of due cycles, carrying
// the remainder to the next call.
type pacer struct {
	period time.Duration
	acc    time.Duration
}

func newPacer(clockRate int) pacer {
	return pacer{period: time.Second / time.Duration(clockRate)}
}

// tick returns how many cycles fall due after elapsed.
func (p *pacer) tick(elapsed time.Duration) int {
	if elapsed > maxCatchUp {
		elapsed = maxCatchUp
	}
	p.acc += elapsed
	n := p.acc / p.period
	p.acc -= n * p.period
	return int(n)
}

// interval is how often the host wakes to run a burst.
func (p *pacer) interval() time.Duration {
	if p.period > pacePeriod {
		return p.period
	}
	return pacePeriod
}

// Run executes until the frontend asks to quit, which returns nil, or ctx is
// done, which returns ctx.Err().
func (h *Host) Run(ctx context.Context) error {
	pace := newPacer(h.clockRate)
	cycle := time.NewTicker(pace.interval())
	defer cycle.Stop()
	frame := time.NewTicker(cpu.TimerPeriod)
	defer frame.Stop()

	last := time.Now()
	lastCycle := last

	h.log.Info("running", "clock_rate", h.clockRate, "paused", h.paused)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case now := <-cycle.C:
			due := pace.tick(now.Sub(lastCycle))
			lastCycle = now
			if h.paused {
				continue
			}
			for i := 0; i < due; i++ {
				h.cycle()
			}

		case now := <-frame.C:
			if quit := h.input(); quit {
				h.log.Info("quit")
				return nil
			}

			// timers stand still while paused
			if !h.paused {
				h.emu.UpdateTimers(now.Sub(last))
			}
			last = now

			if f := h.emu.Frame(); f.Dirty() {
				if err := h.frontend.Present(f); err != nil {
					return fmt.Errorf("host: %w", err)
				}
				f.ClearDirty()
			}
		}
	}
}

// cycle runs one instruction and logs any report against the address and
// opcode that produced it.
func (h *Host) cycle() {
	pc := h.emu.PC()
	fetched := h.emu.Memory(pc, cpu.InstructionSize)

	err := h.emu.EmulateCycle()
	if err == nil {
		return
	}
	if errors.Is(err, cpu.ErrAddressOutOfRange) {
		h.log.Error("machine halted", "err", err, "pc", fmt.Sprintf("0x%03x", pc))
		return
	}
	var opcode uint16
	if len(fetched) == cpu.InstructionSize {
		opcode = uint16(fetched[0])<<8 | uint16(fetched[1])
	}
	h.log.Warn("cycle", "err", err,
		"pc", fmt.Sprintf("0x%03x", pc),
		"opcode", fmt.Sprintf("0x%04x", opcode),
	)
}

// input applies pending frontend events between cycles. It reports whether
// the frontend asked to quit.
func (h *Host) input() bool {
	for _, ev := range h.frontend.Poll() {
		switch ev.Kind {
		case screen.KeyDown:
			h.emu.KeyDown(ev.Key)
		case screen.KeyUp:
			h.emu.KeyUp(ev.Key)
		case screen.Quit:
			return true
		case screen.TogglePause:
			h.paused = !h.paused
			h.log.Info("pause", "paused", h.paused, "state", h.emu.Snapshot().String())
		case screen.StepCycle:
			if h.paused {
				h.cycle()
				h.log.Info("step", "state", h.emu.Snapshot().String())
			}
		case screen.Reset:
			h.reset()
		}
	}
	return false
}

func (h *Host) reset() {
	h.emu.Reset()
	if len(h.image) == 0 {
		return
	}
	if _, err := h.emu.LoadImage(h.image); err != nil {
		h.log.Error("reloading rom", "err", err)
		return
	}
	h.log.Info("reset")
}
