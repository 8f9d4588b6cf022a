// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function for progress, resize and quit

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"symphoxy/playback"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-horizontalPadding*2, 10), maxBarWidth)
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.stopping = true
			m.cancel()
		}

		return m, nil

	case progressMsg:
		m.current = playback.Progress(msg)

		return m, waitForUpdate(m.updates)

	case doneMsg:
		m.done = true
		m.err = msg.err

		return m, tea.Quit
	}

	return m, nil
}
