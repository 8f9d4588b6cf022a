// ABOUTME: Now-playing view configuration
// ABOUTME: Defines what the view shows and which streams Bubble Tea talks to

package tui

import (
	"context"
	"io"

	"symphoxy/piece"
	"symphoxy/playback"
)

// Options contains configuration for running the now-playing view
type Options struct {
	Piece     piece.Piece
	Tempo     uint32
	Input     io.Reader // Defaults to stdin
	Output    io.Writer // Defaults to stdout
	AltScreen bool
}

// PlayFunc plays a piece, reporting progress after each beat until done or ctx is cancelled
type PlayFunc func(ctx context.Context, onProgress func(playback.Progress)) error
