// ABOUTME: Interactive session loop: choose a piece, choose a mode, play it, ask what next
// ABOUTME: Backends are injected so the loop runs the same against real output or test fakes

// Package session drives the interactive mode of symphoxy on top of the prompts in package
// interactive. Input failures end the session; backend failures are reported and the user is
// asked what to do next.
package session

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"symphoxy/config"
	"symphoxy/interactive"
	"symphoxy/piece"
	"symphoxy/playback"
)

// LivePlayer plays a piece in real time
type LivePlayer interface {
	PlayLive(ctx context.Context, p piece.Piece, settings playback.Settings) error
}

// FileRenderer renders a piece to a file
type FileRenderer interface {
	RenderFile(ctx context.Context, p piece.Piece, settings playback.Settings, path string) error
}

// Session holds the prompter, the live config and the wired backends
type Session struct {
	prompter *interactive.Prompter
	cfg      *config.SharedConfig
	live     LivePlayer
	file     FileRenderer
	log      *zap.Logger
}

// Option configures a Session
type Option func(*Session)

// WithLivePlayer enables the live mode
func WithLivePlayer(lp LivePlayer) Option {
	return func(s *Session) {
		s.live = lp
	}
}

// WithFileRenderer enables the file mode
func WithFileRenderer(fr FileRenderer) Option {
	return func(s *Session) {
		s.file = fr
	}
}

// WithLogger sets the debug logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New creates a session reading answers through p and bounds from cfg
func New(p *interactive.Prompter, cfg *config.SharedConfig, opts ...Option) *Session {
	s := &Session{
		prompter: p,
		cfg:      cfg,
		log:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Backends reports which modes this session can offer
func (s *Session) Backends() Backends {
	return Backends{Live: s.live != nil, File: s.file != nil}
}

// Start runs the interactive loop over pieces until the user exits.
// It returns an error only for input failures, cancellation or a session with nothing to offer.
func (s *Session) Start(ctx context.Context, pieces []piece.Piece) error {
	if len(pieces) == 0 {
		return errors.New("no pieces to play")
	}

	backends := s.Backends()
	if !backends.Live && !backends.File {
		return errors.New("no playback backends configured")
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "session cancelled")
		}

		p, err := s.choosePiece(pieces)
		if err != nil {
			return err
		}

		mode, err := interactive.Select[Mode](s.prompter, backends)
		if err != nil {
			return err
		}

		s.log.Debug("mode chosen", zap.Int("mode", int(mode)), zap.String("piece", p.Title))

		switch mode {
		case ModeLive:
			err = s.runLive(ctx, p)
		case ModeFile:
			err = s.runFile(ctx, p)
		}

		if err != nil {
			return err
		}

		next, err := interactive.Select[PlayResult](s.prompter, struct{}{})
		if err != nil {
			return err
		}

		if next == Exit {
			s.prompter.Println("Exiting interactive mode.")

			return nil
		}
	}
}

// choosePiece asks only when there is something to choose between
func (s *Session) choosePiece(pieces []piece.Piece) (piece.Piece, error) {
	if len(pieces) == 1 {
		return pieces[0], nil
	}

	idx, err := interactive.Select[pieceChoice](s.prompter, pieces)
	if err != nil {
		return piece.Piece{}, err
	}

	return pieces[idx], nil
}

// settings builds playback settings from the current config
func (s *Session) settings(tempo uint32, volume float64) playback.Settings {
	cfg := s.cfg.Get()

	return playback.Settings{
		Tempo:       tempo,
		Volume:      volume,
		SampleRate:  cfg.Render.SampleRate,
		BeatsPerBar: cfg.Render.BeatsPerBar,
	}
}

// backendFailed reports a failed playback and decides whether the session can go on
func (s *Session) backendFailed(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrap(ctxErr, "session cancelled")
	}

	s.log.Debug("backend failed", zap.Error(err))
	s.prompter.Println("Playback failed: " + err.Error())

	return nil
}
