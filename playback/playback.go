// ABOUTME: Shared playback settings and progress types for the built-in backends
// ABOUTME: BeatClock drives live playback timing, beat by beat

// Package playback provides the built-in live and file backends: a beat clock that paces
// live playback and a click-track renderer that writes a piece's beat grid to a WAV file.
package playback

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"symphoxy/piece"
)

// ErrStopped is returned by live players when the listener stopped playback early
var ErrStopped = errors.New("playback stopped")

// Settings are the validated answers collected before playback or rendering
type Settings struct {
	Tempo       uint32  // Beats per minute
	Volume      float64 // Linear gain, 1.0 is full scale
	SampleRate  int     // WAV sample rate in Hz
	BeatsPerBar int     // Accent every Nth beat
}

// BeatInterval returns the time between beats at the configured tempo
func (s Settings) BeatInterval() time.Duration {
	if s.Tempo == 0 {
		return 0
	}

	return time.Minute / time.Duration(s.Tempo)
}

// Progress reports how far playback has got
type Progress struct {
	Beat  int // Beats completed
	Total int
}

// Fraction returns completed beats as a value in [0, 1]
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}

	return float64(p.Beat) / float64(p.Total)
}

// BeatClock paces a piece in real time, one tick per beat
type BeatClock struct {
	// newTicker is swapped in tests to avoid real sleeps
	newTicker func(time.Duration) (<-chan time.Time, func())
}

// NewBeatClock returns a clock driven by time.Ticker
func NewBeatClock() *BeatClock {
	return &BeatClock{
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)

			return t.C, t.Stop
		},
	}
}

// Play ticks through every beat of p, calling onBeat after each one.
// It returns nil when the piece ends or ctx is cancelled.
func (c *BeatClock) Play(ctx context.Context, p piece.Piece, settings Settings, onBeat func(Progress)) error {
	interval := settings.BeatInterval()
	if interval <= 0 || p.Beats <= 0 {
		return nil
	}

	ticks, stop := c.newTicker(interval)
	defer stop()

	for beat := 1; beat <= p.Beats; beat++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
		}

		if onBeat != nil {
			onBeat(Progress{Beat: beat, Total: p.Beats})
		}
	}

	return nil
}
