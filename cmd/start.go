package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/config"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/screen/terminal"
	"github.com/beanboi7/chyp8/emu/screen/window"
	"github.com/beanboi7/chyp8/emu/stats"
)

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load and start the Emulator",
	Long: `Load a ROM and run it.

Keys: the 4x4 block 1234/qwer/asdf/zxcv is the hex keypad (see the keymap
setting). Space pauses, '.' runs a single instruction while paused, F5 resets
and Esc quits.`,
	Args: cobra.ExactArgs(1),
	RunE: Start,
}

// chyp8 start 'path/to/ROM' -r 700
func Start(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Statsview {
		stats.Launch(logger)
	}

	var sink cpu.AudioSink
	if cfg.AudioEnabled {
		tone, err := audio.Open(cfg.Audio, logger)
		if err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer tone.Close()
			sink = tone
		}
	}

	emu := cpu.NewEMU(screen.NewFrame(), sink, logger)
	emu.SetTrace(cfg.Trace)

	n, err := emu.LoadROM(args[0])
	if err != nil {
		return err
	}
	logger.Info("rom loaded", "path", args[0], "bytes", n)
	image := emu.Memory(cpu.ProgramStart, n)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := host.Options{ClockRate: cfg.ClockRate, Paused: cfg.Paused, Logger: logger}

	switch cfg.Frontend {
	case config.FrontendTerminal:
		term, err := terminal.Open(cfg.Keymap)
		if err != nil {
			return err
		}
		defer term.Close()
		return run(ctx, emu, term, image, opts)

	default:
		// pixelgl needs the main thread for the whole life of the window
		var runErr error
		pixelgl.Run(func() {
			win, err := window.New(window.Config{Scale: cfg.Scale, Keymap: cfg.Keymap})
			if err != nil {
				runErr = err
				return
			}
			defer win.Close()
			runErr = run(ctx, emu, win, image, opts)
		})
		return runErr
	}
}

func run(ctx context.Context, emu *cpu.EMU, fe screen.Frontend, image []byte, opts host.Options) error {
	h, err := host.New(emu, fe, image, opts)
	if err != nil {
		return err
	}
	err = h.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP("clock-rate", "r", host.DefaultClockRate, "instructions executed per second")
	flags.StringP("frontend", "f", config.FrontendWindow, "where to display: window or terminal")
	flags.IntP("scale", "s", 10, "window pixels per Chip-8 pixel")
	flags.String("keymap", screen.DefaultKeymap, "16 keys standing in for hex keys 0 to F")
	flags.Bool("trace", false, "log every instruction at debug level")
	flags.Bool("paused", false, "start paused")
	flags.Bool("audio", true, "play the sound timer beep")
	flags.String("sample", "", "mp3 or wav file to play as the beep")
	flags.Bool("statsview", false, "serve runtime statistics on "+stats.Address)

	for key, flag := range map[string]string{
		config.KeyClockRate:    "clock-rate",
		config.KeyFrontend:     "frontend",
		config.KeyScale:        "scale",
		config.KeyKeymap:       "keymap",
		config.KeyTrace:        "trace",
		config.KeyPaused:       "paused",
		config.KeyAudioEnabled: "audio",
		config.KeyAudioSample:  "sample",
		config.KeyStatsview:    "statsview",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}
