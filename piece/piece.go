// ABOUTME: Defines the Piece type handed to playback and rendering backends
// ABOUTME: Dispatches loading by file type: TOML scores, M3U8 playlists or tagged audio files

// Package piece loads the music pieces the interactive player offers.
// A piece is described by a TOML score file or by the tags of an audio file,
// and playlists (M3U/M3U8) expand into several pieces.
package piece

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultBeats is used when a source does not say how long the piece is
const DefaultBeats = 64

// Piece is a playable music piece
type Piece struct {
	Title  string  // Display title (file name when untagged)
	Artist string  // Artist or composer, may be empty
	Tempo  float64 // Suggested BPM (0 if unknown)
	Beats  int     // Length in beats
	Path   string  // Source file
}

// Duration returns how long the piece lasts at bpm
func (p Piece) Duration(bpm uint32) time.Duration {
	if bpm == 0 {
		return 0
	}

	return time.Duration(p.Beats) * time.Minute / time.Duration(bpm)
}

// String returns "Title by Artist" or just the title
func (p Piece) String() string {
	if p.Artist == "" {
		return p.Title
	}

	return fmt.Sprintf("%s by %s", p.Title, p.Artist)
}

// IsPlaylist reports whether path names an M3U/M3U8 playlist
func IsPlaylist(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		return true
	default:
		return false
	}
}

// Load reads a single piece from a score or tagged audio file
func Load(path string) (Piece, error) {
	switch {
	case IsPlaylist(path):
		return Piece{}, errors.Newf("%s is a playlist, not a piece", path)
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		return LoadScore(path)
	default:
		return LoadTagged(path)
	}
}

// LoadAll loads every path, expanding playlists into their pieces
func LoadAll(paths []string) ([]Piece, error) {
	var pieces []Piece

	for _, path := range paths {
		if IsPlaylist(path) {
			loaded, err := LoadPlaylist(path)
			if err != nil {
				return nil, err
			}

			pieces = append(pieces, loaded...)

			continue
		}

		p, err := Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", path)
		}

		pieces = append(pieces, p)
	}

	if len(pieces) == 0 {
		return nil, errors.New("no pieces to play")
	}

	return pieces, nil
}
