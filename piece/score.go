// ABOUTME: Reads piece descriptions written as TOML score files
// ABOUTME: A score names the piece and gives its suggested tempo and length in beats

package piece

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// score is the on-disk TOML layout
type score struct {
	Title    string  `toml:"title"`
	Composer string  `toml:"composer"`
	Tempo    float64 `toml:"tempo"`
	Beats    int     `toml:"beats"`
}

// LoadScore reads a TOML score file
func LoadScore(path string) (Piece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Piece{}, errors.Wrap(err, "failed to read score")
	}

	var s score
	if err := toml.Unmarshal(data, &s); err != nil {
		return Piece{}, errors.Wrapf(err, "failed to parse score %s", path)
	}

	if s.Beats < 0 || s.Tempo < 0 {
		return Piece{}, errors.Newf("score %s: tempo and beats must not be negative", path)
	}

	p := Piece{
		Title:  s.Title,
		Artist: s.Composer,
		Tempo:  s.Tempo,
		Beats:  s.Beats,
		Path:   path,
	}

	if p.Title == "" {
		p.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if p.Beats == 0 {
		p.Beats = DefaultBeats
	}

	return p, nil
}
