// ABOUTME: The menus asked by an interactive session
// ABOUTME: Playback mode, next step, piece and overwrite choices as selectable types

package session

import (
	"symphoxy/interactive"
	"symphoxy/piece"
)

// Mode is how a chosen piece is played
type Mode int

// Playback modes
const (
	ModeLive Mode = iota
	ModeFile
)

// Backends lists which modes have a backend wired in
type Backends struct {
	Live bool
	File bool
}

// Selections offers only the modes with a backend
func (Mode) Selections(b Backends) interactive.Selections[Mode] {
	s := interactive.Selections[Mode]{Description: "Choose how to play"}

	if b.Live {
		s.Options = append(s.Options, interactive.Choice[Mode]{
			Info:  interactive.SelectionInfo{Name: "Play", Description: "Play music live"},
			Value: ModeLive,
		})
	}

	if b.File {
		s.Options = append(s.Options, interactive.Choice[Mode]{
			Info:  interactive.SelectionInfo{Name: "Write", Description: "Render music to a WAV file"},
			Value: ModeFile,
		})
	}

	return s
}

// PlayResult is the answer to the question asked after each playback
type PlayResult int

// Next steps
const (
	Continue PlayResult = iota
	Exit
)

// Selections implements interactive.Selectable
func (PlayResult) Selections(struct{}) interactive.Selections[PlayResult] {
	return interactive.Selections[PlayResult]{
		Description: "What would you like to do next",
		Options: []interactive.Choice[PlayResult]{
			{Info: interactive.SelectionInfo{Name: "Again", Description: "Choose another mode"}, Value: Continue},
			{Info: interactive.SelectionInfo{Name: "Exit", Description: "Leave interactive mode"}, Value: Exit},
		},
		Default: interactive.DefaultAt(0),
	}
}

// pieceChoice is an index into the loaded pieces
type pieceChoice int

func (pieceChoice) Selections(pieces []piece.Piece) interactive.Selections[pieceChoice] {
	s := interactive.Selections[pieceChoice]{
		Description: "Choose a piece",
		Options:     make([]interactive.Choice[pieceChoice], len(pieces)),
		Default:     interactive.DefaultAt(0),
	}

	for i, p := range pieces {
		desc := p.Artist
		if desc == "" {
			desc = "Unknown artist"
		}

		s.Options[i] = interactive.Choice[pieceChoice]{
			Info:  interactive.SelectionInfo{Name: p.Title, Description: desc},
			Value: pieceChoice(i),
		}
	}

	return s
}

// overwriteChoice is true when an existing output file may be replaced
type overwriteChoice bool

func (overwriteChoice) Selections(path string) interactive.Selections[overwriteChoice] {
	return interactive.Selections[overwriteChoice]{
		Description: path + " already exists",
		Options: []interactive.Choice[overwriteChoice]{
			{Info: interactive.SelectionInfo{Name: "Overwrite", Description: "Replace the existing file"}, Value: true},
			{Info: interactive.SelectionInfo{Name: "Choose another path", Description: "Keep the existing file"}, Value: false},
		},
		Default: interactive.DefaultAt(1),
	}
}
