// ABOUTME: Mode handlers that collect validated settings and call the backends
// ABOUTME: Live asks for a tempo; file also asks for volume and an output path

package session

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"symphoxy/interactive"
	"symphoxy/piece"
	"symphoxy/playback"
)

// askTempo asks for a tempo within the configured bounds
func (s *Session) askTempo(p piece.Piece) (uint32, error) {
	cfg := s.cfg.Get()

	ask := "Enter the tempo in BPM"
	if p.Tempo > 0 {
		ask = fmt.Sprintf("Enter the tempo in BPM, suggested %.0f", p.Tempo)
	}

	return interactive.AskRange(s.prompter, ask, cfg.Tempo.Min, cfg.Tempo.Max)
}

func (s *Session) runLive(ctx context.Context, p piece.Piece) error {
	tempo, err := s.askTempo(p)
	if err != nil {
		return err
	}

	err = s.live.PlayLive(ctx, p, s.settings(tempo, 1))
	if errors.Is(err, playback.ErrStopped) {
		s.prompter.Println("Stopped " + p.String())

		return nil
	}

	if err != nil {
		return s.backendFailed(ctx, err)
	}

	s.prompter.Println("Finished " + p.String())

	return nil
}

func (s *Session) runFile(ctx context.Context, p piece.Piece) error {
	tempo, err := s.askTempo(p)
	if err != nil {
		return err
	}

	volume, err := interactive.AskPositiveFloat(s.prompter, "Enter the volume")
	if err != nil {
		return err
	}

	path, err := s.askOutputPath()
	if err != nil {
		return err
	}

	s.log.Debug("rendering", zap.String("path", path), zap.Uint32("tempo", tempo), zap.Float64("volume", volume))

	if err := s.file.RenderFile(ctx, p, s.settings(tempo, volume), path); err != nil {
		return s.backendFailed(ctx, err)
	}

	s.prompter.Println("Wrote " + path)

	return nil
}

// askOutputPath asks until the user gives a path that is new or may be overwritten
func (s *Session) askOutputPath() (string, error) {
	for {
		path, err := interactive.AskPath(s.prompter, "Enter the output file path")
		if err != nil {
			return "", err
		}

		if _, err := os.Stat(path); err != nil {
			return path, nil
		}

		overwrite, err := interactive.Select[overwriteChoice](s.prompter, path)
		if err != nil {
			return "", err
		}

		if overwrite {
			return path, nil
		}
	}
}
