package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/heartbloom/internal/config"
	"github.com/iburimskiy/heartbloom/internal/game"
	"github.com/iburimskiy/heartbloom/internal/scene"
	"github.com/iburimskiy/heartbloom/internal/term"
)

type options struct {
	configPath string
	seed       uint64
	terminal   bool
	soundtrack string
	verbose    bool
	logFile    string
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "heartbloom",
		Short:         "A blooming particle heart with rotating text rings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, *opts)
			if err != nil {
				return err
			}
			opts.terminal = settings.Backend == config.BackendTerminal
			closeLog, err := setupLogging(settings, opts.logFile)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), settings)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "settings file (YAML)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().BoolVarP(&opts.terminal, "terminal", "t", false, "render in the terminal instead of a window")
	cmd.Flags().StringVarP(&opts.soundtrack, "soundtrack", "s", "", "audio file to loop (wav, mp3, flac)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	return cmd
}

// loadSettings reads the settings file and applies flags given explicitly.
func loadSettings(cmd *cobra.Command, opts options) (config.Settings, error) {
	settings, err := config.Load(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return settings, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		settings.Seed = opts.seed
	}
	if flags.Changed("terminal") && opts.terminal {
		settings.Backend = config.BackendTerminal
	}
	if flags.Changed("soundtrack") {
		settings.Soundtrack = opts.soundtrack
	}
	if flags.Changed("verbose") {
		settings.Verbose = opts.verbose
	}
	if settings.Seed == 0 {
		settings.Seed = uint64(time.Now().UnixNano())
	}
	return settings, nil
}

// setupLogging routes the standard logger. The terminal backend owns
// stdout/stderr, so it only logs to a file.
func setupLogging(settings config.Settings, path string) (func(), error) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return func() { _ = f.Close() }, nil
	}
	if !settings.Verbose || settings.Backend == config.BackendTerminal {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	return func() {}, nil
}

func run(ctx context.Context, settings config.Settings) error {
	s := scene.New(scene.NewRand(settings.Seed), scene.RingTexts{
		Inner:  settings.Rings.Inner.Text,
		Outer:  settings.Rings.Outer.Text,
		Accent: settings.AccentColor(),
		Base:   settings.BaseColor(),
	})
	loop := scene.NewLoop(s)
	log.Printf("[Config] backend=%s size=%dx%d seed=%d", settings.Backend, settings.Width, settings.Height, settings.Seed)

	if settings.Backend == config.BackendTerminal {
		return term.Run(ctx, loop, float64(settings.Width), float64(settings.Height))
	}
	return game.Run(settings, loop)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts options
	if err := newRootCmd(&opts).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "heartbloom:", err)
		if !opts.terminal {
			_ = zenity.Error(err.Error(), zenity.Title("Heart Bloom"), zenity.ErrorIcon)
		}
		stop()
		os.Exit(1)
	}
}
