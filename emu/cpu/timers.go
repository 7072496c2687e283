package cpu

import "time"

const TimerRate = 60

// TimerPeriod is the wall-clock length of one timer tick.
const TimerPeriod = time.Second / TimerRate

// AudioSink is told whenever the sound timer crosses zero.
type AudioSink interface {
	SetToneEnabled(enabled bool)
}

type silence struct{}

func (silence) SetToneEnabled(bool) {}

// UpdateTimers advances the delay and sound timers by elapsed wall-clock
// time. Every whole TimerPeriod accumulated decrements both timers once, so a
// long gap between calls fires several ticks. The remainder carries over to
// the next call. It returns the number of ticks fired.
func (emu *EMU) UpdateTimers(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	emu.timerAcc += elapsed

	ticks := 0
	for emu.timerAcc >= TimerPeriod {
		emu.timerAcc -= TimerPeriod
		if emu.delayTimer > 0 {
			emu.delayTimer--
		}
		if emu.soundTimer > 0 {
			emu.soundTimer--
		}
		ticks++
	}

	emu.syncTone()
	return ticks
}

// syncTone forwards sound timer zero crossings to the audio sink.
func (emu *EMU) syncTone() {
	on := emu.soundTimer > 0
	if on == emu.toneOn {
		return
	}
	emu.toneOn = on
	emu.audio.SetToneEnabled(on)
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}
