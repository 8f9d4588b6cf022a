// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model that runs playback in the background and tracks its progress

// Package tui provides the now-playing view shown while a piece plays live.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"symphoxy/playback"
)

// Layout constants for UI dimensions
const (
	horizontalPadding = 2
	maxBarWidth       = 60
	updateBuffer      = 16
)

// progressMsg carries one beat of playback progress
type progressMsg playback.Progress

// doneMsg signals that the play function returned
type doneMsg struct {
	err error
}

// model holds the TUI state
type model struct {
	play PlayFunc
	opts Options

	// Framework exception: Bubble Tea's Init/Update/View pattern doesn't allow passing
	// context through function parameters, so the model owns the playback context.
	ctx     context.Context    //nolint:containedctx // See framework exception above
	cancel  context.CancelFunc // Cancels playback
	updates chan playback.Progress

	current  playback.Progress
	bar      progress.Model
	help     help.Model
	stopping bool // Quit requested, waiting for playback to return
	done     bool
	err      error
}

// Key bindings
type keyMap struct {
	Quit key.Binding
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "stop"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run shows the now-playing view while play runs, returning play's error.
// Stopping the view cancels the context handed to play.
func Run(ctx context.Context, opts Options, play PlayFunc) error {
	m := initModel(ctx, opts, play)

	programOpts := []tea.ProgramOption{}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}

	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	finalModel, err := tea.NewProgram(m, programOpts...).Run()

	m.cancel()

	if err != nil {
		return errors.Wrap(err, "TUI error")
	}

	if fm, ok := finalModel.(model); ok {
		return fm.result()
	}

	return nil
}

// result is what Run reports once the program has exited
func (m model) result() error {
	if m.err == nil && m.stopping {
		return playback.ErrStopped
	}

	return m.err
}

// initModel creates the initial model with the injected play function
func initModel(ctx context.Context, opts Options, play PlayFunc) model {
	playCtx, cancel := context.WithCancel(ctx)

	return model{
		play:    play,
		opts:    opts,
		ctx:     playCtx,
		cancel:  cancel,
		updates: make(chan playback.Progress, updateBuffer),
		current: playback.Progress{Total: opts.Piece.Beats},
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:    help.New(),
	}
}

// Init starts playback and begins listening for progress
func (m model) Init() tea.Cmd {
	return tea.Batch(
		startPlayback(m.ctx, m.play, m.updates),
		waitForUpdate(m.updates),
	)
}

// startPlayback runs play in a Bubble Tea command and closes updates when it returns
func startPlayback(ctx context.Context, play PlayFunc, updates chan<- playback.Progress) tea.Cmd {
	return func() tea.Msg {
		defer close(updates)

		err := play(ctx, func(p playback.Progress) {
			// Drop beats rather than stall the clock when the view falls behind
			select {
			case updates <- p:
			default:
			}
		})

		return doneMsg{err: err}
	}
}

// waitForUpdate waits for progress updates and returns them as messages
func waitForUpdate(updates <-chan playback.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}

		return progressMsg(p)
	}
}
