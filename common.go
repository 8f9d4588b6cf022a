// ABOUTME: Shared initialization code: debug logging, config loading and backend wiring
// ABOUTME: Builds the prompter and session from command-line options and runs it

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/term"

	"symphoxy/config"
	"symphoxy/interactive"
	"symphoxy/piece"
	"symphoxy/playback"
	"symphoxy/session"
	"symphoxy/tui"
)

// RunOptions contains command-line options for interactive mode
type RunOptions struct {
	Paths      []string
	ConfigPath string
	NoColor    bool
	Logger     *zap.Logger
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// RunInteractive loads pieces and config, then runs a session until the user exits
func RunInteractive(opts RunOptions) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	pieces, err := piece.LoadAll(opts.Paths)
	if err != nil {
		return errors.Wrap(err, "failed to load pieces")
	}

	log.Debug("loaded pieces", zap.Int("count", len(pieces)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared := loadSharedConfig(ctx, opts, log)
	cfg := shared.Get()
	tty := isTerminal(opts.Stdout)

	prompter := interactive.New(opts.Stdin, opts.Stdout,
		interactive.WithLogger(log),
		interactive.WithColor(cfg.Display.Color && !opts.NoColor && tty),
	)

	live := &livePlayer{
		clock:  playback.NewBeatClock(),
		shared: shared,
		out:    opts.Stdout,
		view:   tty && isTerminal(opts.Stdin),
		log:    log,
	}

	s := session.New(prompter, shared,
		session.WithLivePlayer(live),
		session.WithFileRenderer(playback.NewClickTrack()),
		session.WithLogger(log),
	)

	return s.Start(ctx, pieces)
}

// WriteConfig writes the config at path, or the default path when empty, back out in full.
// Missing keys are filled in with defaults. A file that fails to load is left alone.
func WriteConfig(path string) (string, error) {
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return path, err
	}

	if err := config.SaveConfig(path, cfg); err != nil {
		return path, err
	}

	return path, nil
}

// loadSharedConfig loads the config file and keeps it up to date while ctx lives.
// A broken file is reported and replaced by defaults.
func loadSharedConfig(ctx context.Context, opts RunOptions, log *zap.Logger) *config.SharedConfig {
	path := opts.ConfigPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "Warning: using default config: %v\n", err)
	}

	shared := config.NewSharedConfig(cfg)

	err = config.Watch(ctx, path, shared, func(_ config.Config, err error) {
		if err != nil {
			log.Debug("config reload failed", zap.String("path", path), zap.Error(err))

			return
		}

		log.Debug("config reloaded", zap.String("path", path))
	})
	if err != nil {
		log.Debug("config watch disabled", zap.String("path", path), zap.Error(err))
	}

	return shared
}

// SetupDebugLog creates a development logger writing to filename
func SetupDebugLog(filename string, stdout io.Writer) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize debug log")
	}

	if isTerminal(stdout) {
		_, _ = fmt.Fprintf(stdout, "Debug logging enabled: %s\n", filename)
	}

	return logger, nil
}

// isTerminal reports whether v is a file attached to a terminal
func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// livePlayer plays through the beat clock, with the now-playing view on a terminal
type livePlayer struct {
	clock  *playback.BeatClock
	shared *config.SharedConfig
	out    io.Writer
	view   bool
	log    *zap.Logger
}

// viewOptions builds the now-playing view options from the current display config
func (lp *livePlayer) viewOptions(p piece.Piece, settings playback.Settings) tui.Options {
	opts := tui.Options{Piece: p, Tempo: settings.Tempo}
	if lp.shared != nil {
		opts.AltScreen = lp.shared.Get().Display.AltScreen
	}

	return opts
}

// PlayLive implements session.LivePlayer
func (lp *livePlayer) PlayLive(ctx context.Context, p piece.Piece, settings playback.Settings) error {
	lp.log.Debug("playing live", zap.String("piece", p.Title), zap.Uint32("tempo", settings.Tempo))

	if lp.view {
		return tui.Run(ctx, lp.viewOptions(p, settings), func(ctx context.Context, onProgress func(playback.Progress)) error {
			return lp.clock.Play(ctx, p, settings, onProgress)
		})
	}

	// Without the view, Ctrl+C stops playback instead of the program
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_, _ = fmt.Fprintf(lp.out, "Playing %s at %d BPM, %s total (Ctrl+C to stop)\n", p, settings.Tempo, p.Duration(settings.Tempo))

	barLength := max(settings.BeatsPerBar, 1)

	err := lp.clock.Play(sigCtx, p, settings, func(pr playback.Progress) {
		if pr.Beat%barLength == 0 || pr.Beat == pr.Total {
			_, _ = fmt.Fprintf(lp.out, "Beat %d/%d\n", pr.Beat, pr.Total)
		}
	})
	if err != nil {
		return err
	}

	if sigCtx.Err() != nil && ctx.Err() == nil {
		return playback.ErrStopped
	}

	return nil
}
