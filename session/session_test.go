// ABOUTME: Tests for the interactive session loop with scripted input
// ABOUTME: Fake backends record what they were asked to play or render

package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symphoxy/config"
	"symphoxy/interactive"
	"symphoxy/piece"
	"symphoxy/playback"
)

type liveCall struct {
	piece    piece.Piece
	settings playback.Settings
}

type fakeLive struct {
	calls []liveCall
	errs  []error // Returned in order, nil once exhausted
	hook  func()
}

func (f *fakeLive) PlayLive(_ context.Context, p piece.Piece, settings playback.Settings) error {
	f.calls = append(f.calls, liveCall{p, settings})

	if f.hook != nil {
		f.hook()
	}

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]

		return err
	}

	return nil
}

type renderCall struct {
	piece    piece.Piece
	settings playback.Settings
	path     string
}

type fakeRenderer struct {
	calls []renderCall
}

func (f *fakeRenderer) RenderFile(_ context.Context, p piece.Piece, settings playback.Settings, path string) error {
	f.calls = append(f.calls, renderCall{p, settings, path})

	return nil
}

var (
	canon = piece.Piece{Title: "Canon", Artist: "Pachelbel", Tempo: 60, Beats: 228}
	etude = piece.Piece{Title: "Etude", Beats: 64}
)

func newTestSession(input string, cfg config.Config, opts ...Option) (*Session, *bytes.Buffer) {
	var out bytes.Buffer

	p := interactive.New(strings.NewReader(input), &out)

	return New(p, config.NewSharedConfig(cfg), opts...), &out
}

func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func TestStartPlaysLiveAndExits(t *testing.T) {
	live := &fakeLive{}
	s, out := newTestSession("1\n120\nexit\n", config.DefaultConfig(), WithLivePlayer(live), WithFileRenderer(&fakeRenderer{}))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon}))

	require.Len(t, live.calls, 1)
	assert.Equal(t, canon, live.calls[0].piece)
	assert.Equal(t, playback.Settings{Tempo: 120, Volume: 1, SampleRate: 44100, BeatsPerBar: 4}, live.calls[0].settings)

	text := out.String()
	assert.NotContains(t, text, "Choose a piece", "single piece is chosen without asking")
	assert.Contains(t, text, "    1. Play (Play music live)\n    2. Write (Render music to a WAV file)\n")
	assert.Contains(t, text, "Enter the tempo in BPM, suggested 60 (Between 20 and 400):\n")
	assert.Contains(t, text, "Finished Canon by Pachelbel\n")
	assert.True(t, strings.HasSuffix(text, "Exiting interactive mode.\n"))
}

func TestStartRendersChosenPiece(t *testing.T) {
	dir := tempDir(t)
	target := filepath.Join(dir, "etude.wav")

	renderer := &fakeRenderer{}
	input := strings.Join([]string{"etude", "w", "90", "0.5", target, "e"}, "\n") + "\n"
	s, out := newTestSession(input, config.DefaultConfig(), WithLivePlayer(&fakeLive{}), WithFileRenderer(renderer))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon, etude}))

	require.Len(t, renderer.calls, 1)
	assert.Equal(t, etude, renderer.calls[0].piece)
	assert.Equal(t, target, renderer.calls[0].path)
	assert.Equal(t, uint32(90), renderer.calls[0].settings.Tempo)
	assert.InDelta(t, 0.5, renderer.calls[0].settings.Volume, 1e-9)

	text := out.String()
	assert.Contains(t, text, "Choose a piece:\n    1. Canon (Pachelbel)\n    2. Etude (Unknown artist)\nDefault: Canon\n")
	assert.Contains(t, text, "Enter the tempo in BPM (Between 20 and 400):\n")
	assert.Contains(t, text, "Wrote "+target+"\n")
}

func TestStartLoopsUntilExit(t *testing.T) {
	live := &fakeLive{}
	s, out := newTestSession("\nplay\n100\n\n\nplay\n110\nexit\n", config.DefaultConfig(), WithLivePlayer(live))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon, etude}))

	require.Len(t, live.calls, 2)
	assert.Equal(t, canon, live.calls[0].piece)
	assert.Equal(t, canon, live.calls[1].piece, "empty piece answer takes the default")
	assert.Equal(t, uint32(110), live.calls[1].settings.Tempo)
	assert.Equal(t, 1, strings.Count(out.String(), "Exiting interactive mode."))
}

func TestStartReportsBackendFailureAndContinues(t *testing.T) {
	live := &fakeLive{errs: []error{errors.New("audio device busy")}}
	s, out := newTestSession("1\n100\n\n1\n100\nexit\n", config.DefaultConfig(), WithLivePlayer(live))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon}))

	assert.Len(t, live.calls, 2)
	assert.Contains(t, out.String(), "Playback failed: audio device busy\n")
}

func TestStartReportsStoppedPlayback(t *testing.T) {
	live := &fakeLive{errs: []error{errors.Wrap(playback.ErrStopped, "interrupted")}}
	s, out := newTestSession("1\n100\nexit\n", config.DefaultConfig(), WithLivePlayer(live))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon}))

	assert.Contains(t, out.String(), "Stopped Canon by Pachelbel\n")
	assert.NotContains(t, out.String(), "Finished")
	assert.NotContains(t, out.String(), "Playback failed")
}

func TestStartOffersOnlyWiredModes(t *testing.T) {
	dir := tempDir(t)
	renderer := &fakeRenderer{}

	input := "1\n120\n1\n" + filepath.Join(dir, "out.wav") + "\nexit\n"
	s, out := newTestSession(input, config.DefaultConfig(), WithFileRenderer(renderer))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{canon}))

	require.Len(t, renderer.calls, 1)
	assert.NotContains(t, out.String(), "Play music live")
	assert.Contains(t, out.String(), "    1. Write (Render music to a WAV file)\n")
}

func TestStartUsesConfiguredTempoBounds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tempo = config.TempoConfig{Min: 60, Max: 80}

	live := &fakeLive{}
	s, out := newTestSession("1\n100\n70\nexit\n", cfg, WithLivePlayer(live))

	require.NoError(t, s.Start(context.Background(), []piece.Piece{etude}))

	require.Len(t, live.calls, 1)
	assert.Equal(t, uint32(70), live.calls[0].settings.Tempo)
	assert.Contains(t, out.String(), "Please enter a value between 60 and 80.\n")
}

func TestStartAsksBeforeOverwriting(t *testing.T) {
	dir := tempDir(t)
	existing := filepath.Join(dir, "take1.wav")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o600))

	fresh := filepath.Join(dir, "take2.wav")

	tests := []struct {
		name     string
		answers  []string
		wantPath string
	}{
		{"default keeps existing file", []string{existing, "", fresh}, fresh},
		{"explicit overwrite", []string{existing, "overwrite"}, existing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &fakeRenderer{}

			input := "w\n120\n1\n" + strings.Join(tt.answers, "\n") + "\nexit\n"
			s, out := newTestSession(input, config.DefaultConfig(), WithLivePlayer(&fakeLive{}), WithFileRenderer(renderer))

			require.NoError(t, s.Start(context.Background(), []piece.Piece{canon}))

			require.Len(t, renderer.calls, 1)
			assert.Equal(t, tt.wantPath, renderer.calls[0].path)
			assert.Contains(t, out.String(), existing+" already exists:\n")
		})
	}
}

func TestStartInputFailureEndsSession(t *testing.T) {
	inputs := []string{
		"",            // before mode
		"1\n",         // during tempo
		"1\n120\n",    // at next step
		"2\n120\n1\n", // during path
	}

	for _, input := range inputs {
		live := &fakeLive{}
		s, out := newTestSession(input, config.DefaultConfig(), WithLivePlayer(live), WithFileRenderer(&fakeRenderer{}))

		err := s.Start(context.Background(), []piece.Piece{canon})
		require.Error(t, err, "input %q", input)
		require.True(t, errors.Is(err, interactive.ErrInput), "input %q: %v", input, err)
		assert.NotContains(t, out.String(), "Exiting interactive mode.")
	}
}

func TestStartCancelledDuringPlayback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := &fakeLive{hook: cancel, errs: []error{context.Canceled}}
	s, out := newTestSession("1\n120\nexit\n", config.DefaultConfig(), WithLivePlayer(live))

	err := s.Start(ctx, []piece.Piece{canon})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Playback failed")
}

func TestStartRejectsEmptySessions(t *testing.T) {
	s, _ := newTestSession("", config.DefaultConfig(), WithLivePlayer(&fakeLive{}))
	require.Error(t, s.Start(context.Background(), nil))

	s, out := newTestSession("1\n", config.DefaultConfig())
	require.Error(t, s.Start(context.Background(), []piece.Piece{canon}))
	assert.Empty(t, out.String())
}

func TestModeSelections(t *testing.T) {
	both := Mode(0).Selections(Backends{Live: true, File: true})
	require.Len(t, both.Options, 2)
	assert.Nil(t, both.Default)
	assert.Equal(t, ModeFile, both.Options[1].Value)

	none := Mode(0).Selections(Backends{})
	require.Error(t, none.Validate())
}
