package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Settings for the beep.
type Settings struct {
	SampleRate int
	Frequency  float64
	Volume     float64

	// Sample, when set, is an mp3 or wav file played instead of the square
	// wave.
	Sample string
}

// Tone is the audio sink for the sound timer. The stream plays for as long as
// the tone is enabled and is paused otherwise.
type Tone struct {
	ctrl *beep.Ctrl
}

// NewTone wraps streamer in a paused Tone.
func NewTone(streamer beep.Streamer) *Tone {
	return &Tone{ctrl: &beep.Ctrl{Streamer: streamer, Paused: true}}
}

// Open initialises the speaker and starts a paused Tone playing on it.
func Open(s Settings, logger *slog.Logger) (*Tone, error) {
	sr := beep.SampleRate(s.SampleRate)

	var streamer beep.Streamer = NewSquare(sr, s.Frequency, s.Volume)
	if s.Sample != "" {
		sample, err := LoadSample(s.Sample, sr)
		if err != nil {
			return nil, err
		}
		streamer = sample
		logger.Info("using audio sample", "path", s.Sample)
	}

	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	tone := NewTone(streamer)
	speaker.Play(tone.ctrl)
	return tone, nil
}

// Streamer is the stream to hand to the speaker.
func (t *Tone) Streamer() beep.Streamer {
	return t.ctrl
}

func (t *Tone) SetToneEnabled(on bool) {
	speaker.Lock()
	t.ctrl.Paused = !on
	speaker.Unlock()
}

func (t *Tone) Enabled() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return !t.ctrl.Paused
}

// Close silences the tone for good. The speaker drops a Ctrl once it has
// no stream left.
func (t *Tone) Close() {
	speaker.Lock()
	t.ctrl.Paused = true
	t.ctrl.Streamer = nil
	speaker.Unlock()
}
