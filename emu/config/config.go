// Package config holds the emulator settings read through viper from the
// config file, environment and command line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/beanboi7/chyp8/emu/screen"
)

// Keys as they appear in the config file. Environment variables use the
// same names upper cased with a CHYP8_ prefix and dots replaced by
// underscores, e.g. CHYP8_AUDIO_VOLUME.
const (
	KeyClockRate       = "clock_rate"
	KeyFrontend        = "frontend"
	KeyScale           = "scale"
	KeyKeymap          = "keymap"
	KeyTrace           = "trace"
	KeyPaused          = "paused"
	KeyLogLevel        = "log_level"
	KeyStatsview       = "statsview"
	KeyAudioEnabled    = "audio.enabled"
	KeyAudioFrequency  = "audio.frequency"
	KeyAudioVolume     = "audio.volume"
	KeyAudioSampleRate = "audio.sample_rate"
	KeyAudioSample     = "audio.sample"
)

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

type Config struct {
	ClockRate int
	Frontend  string
	Scale     int
	Keymap    screen.Keymap
	Trace     bool
	Paused    bool
	LogLevel  slog.Level
	Statsview bool

	AudioEnabled bool
	Audio        audio.Settings
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyClockRate, host.DefaultClockRate)
	v.SetDefault(KeyFrontend, FrontendWindow)
	v.SetDefault(KeyScale, 10)
	v.SetDefault(KeyKeymap, screen.DefaultKeymap)
	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyPaused, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStatsview, false)
	v.SetDefault(KeyAudioEnabled, true)
	v.SetDefault(KeyAudioFrequency, 256.0)
	v.SetDefault(KeyAudioVolume, 0.1)
	v.SetDefault(KeyAudioSampleRate, 44100)
	v.SetDefault(KeyAudioSample, "")
}

// BindEnv makes every key readable from CHYP8_ prefixed environment
// variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("chyp8")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		ClockRate:    v.GetInt(KeyClockRate),
		Frontend:     strings.ToLower(v.GetString(KeyFrontend)),
		Scale:        v.GetInt(KeyScale),
		Trace:        v.GetBool(KeyTrace),
		Paused:       v.GetBool(KeyPaused),
		Statsview:    v.GetBool(KeyStatsview),
		AudioEnabled: v.GetBool(KeyAudioEnabled),
		Audio: audio.Settings{
			SampleRate: v.GetInt(KeyAudioSampleRate),
			Frequency:  v.GetFloat64(KeyAudioFrequency),
			Volume:     v.GetFloat64(KeyAudioVolume),
			Sample:     v.GetString(KeyAudioSample),
		},
	}

	if c.ClockRate <= 0 || c.ClockRate > host.MaxClockRate {
		return Config{}, fmt.Errorf("config: %s must be between 1 and %d, got %d", KeyClockRate, host.MaxClockRate, c.ClockRate)
	}
	if c.Scale <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %d", KeyScale, c.Scale)
	}
	switch c.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return Config{}, fmt.Errorf("config: unknown %s %q", KeyFrontend, c.Frontend)
	}

	km, err := screen.ParseKeymap(v.GetString(KeyKeymap))
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.Keymap = km

	if err := c.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}

	if c.Audio.SampleRate <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %d", KeyAudioSampleRate, c.Audio.SampleRate)
	}
	if c.Audio.Frequency <= 0 || c.Audio.Frequency*2 > float64(c.Audio.SampleRate) {
		return Config{}, fmt.Errorf("config: %s %g out of range", KeyAudioFrequency, c.Audio.Frequency)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return Config{}, fmt.Errorf("config: %s must be between 0 and 1, got %g", KeyAudioVolume, c.Audio.Volume)
	}

	return c, nil
}
