package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestSquareWave(t *testing.T) {
	sq := NewSquare(44100, 256, 0.5)
	if sq.period != 172 {
		t.Fatalf("period = %d, want 172", sq.period)
	}

	samples := make([][2]float64, 2*sq.period)
	n, ok := sq.Stream(samples)
	if n != len(samples) || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}

	for i, s := range samples {
		want := 0.5
		if i%sq.period >= sq.period/2 {
			want = -0.5
		}
		if s[0] != want || s[1] != want {
			t.Fatalf("sample %d = %v, want %v", i, s, want)
		}
	}
}

func TestSquareVolumeClamped(t *testing.T) {
	sq := NewSquare(8000, 100, 3)
	samples := make([][2]float64, 1)
	sq.Stream(samples)
	if samples[0][0] != 1 {
		t.Errorf("amplitude = %v, want clamp to 1", samples[0][0])
	}
}

func writeWAV(t *testing.T, rate int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beep.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeWAV(t *testing.T) {
	path := writeWAV(t, 8000, []int{0, 16384, -16384, 32767})

	data, rate, err := decodeWAV(path)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 8000 {
		t.Errorf("rate = %d, want 8000", rate)
	}
	want := []float64{0, 0.5, -0.5, 32767.0 / 32768.0}
	if len(data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(data), len(want))
	}
	for i := range want {
		if math.Abs(data[i]-want[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, data[i], want[i])
		}
	}
}

func TestLoadSampleLoops(t *testing.T) {
	path := writeWAV(t, 8000, []int{16384, -16384})

	s, err := LoadSample(path, 8000)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([][2]float64, 6)
	n, ok := s.Stream(samples)
	if n != 6 || !ok {
		t.Fatalf("Stream = %d, %v; want a full looping buffer", n, ok)
	}
	for i, smp := range samples {
		want := 0.5
		if i%2 == 1 {
			want = -0.5
		}
		if math.Abs(smp[0]-want) > 1e-3 {
			t.Errorf("sample %d = %v, want %v", i, smp[0], want)
		}
	}
}

func TestLoadSampleUnsupported(t *testing.T) {
	if _, err := LoadSample("beep.ogg", 44100); err == nil {
		t.Errorf("expected an error for an unsupported extension")
	}
}

func TestToneEnable(t *testing.T) {
	tone := NewTone(NewSquare(8000, 100, 1))
	if tone.Enabled() {
		t.Fatalf("new tone is enabled")
	}

	samples := make([][2]float64, 4)
	tone.Streamer().Stream(samples)
	if samples[0][0] != 0 {
		t.Errorf("paused tone produced %v", samples[0])
	}

	tone.SetToneEnabled(true)
	if !tone.Enabled() {
		t.Fatalf("tone not enabled")
	}
	tone.Streamer().Stream(samples)
	if samples[0][0] != 1 {
		t.Errorf("enabled tone produced %v, want 1", samples[0])
	}
}
