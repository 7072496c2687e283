package audio

import "github.com/faiface/beep"

// Square is an endless square wave.
type Square struct {
	period int
	pos    int
	amp    float64
}

// NewSquare returns a square wave of freq Hz at the given sample rate with
// amplitude volume (0 to 1).
func NewSquare(sr beep.SampleRate, freq, volume float64) *Square {
	period := int(float64(sr) / freq)
	if period < 2 {
		period = 2
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Square{period: period, amp: volume}
}

func (s *Square) Stream(samples [][2]float64) (int, bool) {
	half := s.period / 2
	for i := range samples {
		v := s.amp
		if s.pos >= half {
			v = -s.amp
		}
		samples[i][0] = v
		samples[i][1] = v
		s.pos = (s.pos + 1) % s.period
	}
	return len(samples), true
}

func (s *Square) Err() error {
	return nil
}
