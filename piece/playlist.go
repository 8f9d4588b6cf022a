// ABOUTME: Handles reading M3U8 playlist files of pieces
// ABOUTME: Resolves entries against the playlist directory and skips unreadable files

package piece

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"symphoxy/pool"
)

// ReadPlaylist reads an M3U8 playlist and returns its entries as paths.
// Relative entries are resolved against the playlist's directory.
func ReadPlaylist(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open playlist")
	}

	defer func() {
		_ = file.Close()
	}()

	baseDir := filepath.Dir(path)

	var entries []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments (#EXTM3U, #EXTINF, ...)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}

		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading playlist")
	}

	return entries, nil
}

// LoadPlaylist loads every piece in a playlist, reading entries in parallel.
// Entries that cannot be loaded are skipped; an empty result is an error.
func LoadPlaylist(path string) ([]Piece, error) {
	entries, err := ReadPlaylist(path)
	if err != nil {
		return nil, err
	}

	workers := pool.NewWorkerPool(0, len(entries))
	defer workers.Close()

	type loaded struct {
		piece Piece
		ok    bool
	}

	results := pool.Map(workers, entries, func(entry string) loaded {
		if IsPlaylist(entry) {
			return loaded{}
		}

		p, err := Load(entry)

		return loaded{piece: p, ok: err == nil}
	})

	pieces := make([]Piece, 0, len(results))

	for _, r := range results {
		if r.ok {
			pieces = append(pieces, r.piece)
		}
	}

	if len(pieces) == 0 {
		return nil, errors.Newf("playlist %s has no playable pieces", path)
	}

	return pieces, nil
}
