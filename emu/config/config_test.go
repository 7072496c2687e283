package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestDefaults(t *testing.T) {
	c, err := Load(newViper())
	if err != nil {
		t.Fatal(err)
	}
	if c.ClockRate != 500 || c.Frontend != FrontendWindow || c.Scale != 10 {
		t.Errorf("defaults = %+v", c)
	}
	if c.LogLevel != slog.LevelInfo {
		t.Errorf("log level = %v, want info", c.LogLevel)
	}
	if c.Audio.Frequency != 256 || c.Audio.SampleRate != 44100 || !c.AudioEnabled {
		t.Errorf("audio defaults = %+v", c.Audio)
	}
	if k, ok := c.Keymap.Lookup('x'); !ok || k != 0 {
		t.Errorf("default keymap not loaded")
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".chyp8.yaml")
	yaml := strings.Join([]string{
		"clock_rate: 700",
		"frontend: Terminal",
		"log_level: debug",
		"keymap: 0123456789abcdef",
		"audio:",
		"  volume: 0.5",
		"  sample: beep.wav",
	}, "\n")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	c, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if c.ClockRate != 700 || c.Frontend != FrontendTerminal || c.LogLevel != slog.LevelDebug {
		t.Errorf("config = %+v", c)
	}
	if c.Audio.Volume != 0.5 || c.Audio.Sample != "beep.wav" || c.Audio.Frequency != 256 {
		t.Errorf("audio = %+v", c.Audio)
	}
	if k, _ := c.Keymap.Lookup('f'); k != 0xF {
		t.Errorf("keymap f = %X, want F", k)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("CHYP8_CLOCK_RATE", "900")
	t.Setenv("CHYP8_AUDIO_VOLUME", "0.25")

	v := newViper()
	BindEnv(v)
	c, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if c.ClockRate != 900 || c.Audio.Volume != 0.25 {
		t.Errorf("config = %+v", c)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		key string
		val interface{}
	}{
		{KeyClockRate, 0},
		{KeyClockRate, 5_000_000_000},
		{KeyClockRate, 100_001},
		{KeyScale, -1},
		{KeyFrontend, "sdl"},
		{KeyKeymap, "abc"},
		{KeyLogLevel, "loud"},
		{KeyAudioVolume, 1.5},
		{KeyAudioFrequency, 30000.0},
	}
	for _, tt := range tests {
		v := newViper()
		v.Set(tt.key, tt.val)
		if _, err := Load(v); err == nil {
			t.Errorf("%s = %v accepted", tt.key, tt.val)
		}
	}
}

func TestClockRateUpperBound(t *testing.T) {
	v := newViper()
	v.Set(KeyClockRate, 100_000)
	c, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	if c.ClockRate != 100_000 {
		t.Errorf("clock rate = %d, want 100000", c.ClockRate)
	}
}
