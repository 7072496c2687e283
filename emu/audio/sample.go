package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/go-audio/wav"
)

// LoadSample decodes an mp3 or wav file and returns it as an endlessly
// looping stream at sample rate sr.
func LoadSample(path string, sr beep.SampleRate) (beep.Streamer, error) {
	var buf *beep.Buffer
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		buf, err = loadMP3(path)
	case ".wav":
		buf, err = loadWAV(path)
	default:
		return nil, fmt.Errorf("audio sample %s: unsupported format", path)
	}
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio sample %s: no audio data", path)
	}

	loop := beep.Loop(-1, buf.Streamer(0, buf.Len()))
	if buf.Format().SampleRate == sr {
		return loop, nil
	}
	return beep.Resample(4, buf.Format().SampleRate, sr, loop), nil
}

func loadMP3(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mp3: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

func loadWAV(path string) (*beep.Buffer, error) {
	pcm, rate, err := decodeWAV(path)
	if err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 1, Precision: 2})
	buf.Append(&mono{data: pcm})
	return buf, nil
}

// decodeWAV returns the first channel of a wav file as samples in the range
// -1 to 1, along with its sample rate.
func decodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wav: %s is not a valid wav file", path)
	}

	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: %w", err)
	}

	if dec.BitDepth == 0 {
		return nil, 0, fmt.Errorf("wav: %s has no bit depth", path)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}
	scale := float64(int(1) << (dec.BitDepth - 1))

	data := make([]float64, 0, len(ib.Data)/chans)
	for i := 0; i < len(ib.Data); i += chans {
		data = append(data, float64(ib.Data[i])/scale)
	}
	return data, int(dec.SampleRate), nil
}

// mono streams a slice of single channel samples to both speakers.
type mono struct {
	data []float64
	pos  int
}

func (m *mono) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.data) {
		return 0, false
	}
	n := copy2(samples, m.data[m.pos:])
	m.pos += n
	return n, true
}

func (m *mono) Err() error {
	return nil
}

func copy2(dst [][2]float64, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
