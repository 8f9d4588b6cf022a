// ABOUTME: Builds pieces from audio files by reading their metadata tags
// ABOUTME: Extracts title, artist, BPM and length from ID3, MP4, Vorbis and FLAC tags

package piece

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// Raw tag names that carry tempo or length, across formats
var (
	bpmTagNames    = []string{"BPM", "TBPM", "bpm", "tempo", "tmpo"}
	lengthTagNames = []string{"TLEN", "length", "LENGTH"}
)

// LoadTagged reads an audio file's tags and describes it as a piece
func LoadTagged(path string) (Piece, error) {
	file, err := os.Open(path)
	if err != nil {
		return Piece{}, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return Piece{}, errors.Wrap(err, "failed to read metadata")
	}

	p := Piece{
		Title:  metadata.Title(),
		Artist: metadata.Artist(),
		Path:   path,
	}

	if p.Title == "" {
		p.Title = filepath.Base(path)
	}

	raw := metadata.Raw()
	p.Tempo = rawNumber(raw, bpmTagNames)

	lengthMs := rawNumber(raw, lengthTagNames)
	if p.Tempo > 0 && lengthMs > 0 {
		p.Beats = int(math.Round(lengthMs / 60000 * p.Tempo))
	}

	if p.Beats <= 0 {
		p.Beats = DefaultBeats
	}

	return p, nil
}

// rawNumber returns the first positive number stored under any of names
func rawNumber(raw map[string]interface{}, names []string) float64 {
	for _, name := range names {
		val, exists := raw[name]
		if !exists {
			continue
		}

		var n float64

		switch v := val.(type) {
		case string:
			n, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
		case int:
			n = float64(v)
		case float64:
			n = v
		}

		if n > 0 {
			return n
		}
	}

	return 0
}
