// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function for the now-playing screen

package tui

import (
	"fmt"
	"strings"
)

// View renders the TUI
func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Now playing: " + m.opts.Piece.Title))

	if m.opts.Piece.Artist != "" {
		b.WriteString(" " + artistStyle.Render("by "+m.opts.Piece.Artist))
	}

	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.current.Fraction()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.renderStatus()))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(keys)))
	b.WriteString("\n")

	return b.String()
}

// renderStatus renders the beat counter and tempo line
func (m model) renderStatus() string {
	status := fmt.Sprintf("Beat %d/%d at %d BPM, %s total", m.current.Beat, m.current.Total, m.opts.Tempo, m.opts.Piece.Duration(m.opts.Tempo))

	switch {
	case m.done:
		status += " (finished)"
	case m.stopping:
		status += " (stopping...)"
	}

	return status
}
