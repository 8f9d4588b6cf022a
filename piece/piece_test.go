// ABOUTME: Tests for loading pieces from scores, tagged audio files and playlists
// ABOUTME: Builds a minimal ID3v2.3 file in-memory to exercise tag reading

package piece

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// id3Frame encodes one ISO-8859-1 text frame (sizes stay below 128 so syncsafe and plain agree)
func id3Frame(id, text string) []byte {
	body := append([]byte{0x00}, text...)

	frame := []byte(id)
	frame = append(frame, 0, 0, 0, byte(len(body)))
	frame = append(frame, 0, 0)

	return append(frame, body...)
}

func writeTaggedFile(t *testing.T, dir, name string, frames ...[]byte) string {
	t.Helper()

	payload := bytes.Join(frames, nil)
	require.Less(t, len(payload), 128)

	data := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, byte(len(payload))}
	data = append(data, payload...)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestPieceDuration(t *testing.T) {
	p := Piece{Beats: 120}

	assert.Equal(t, time.Minute, p.Duration(120))
	assert.Equal(t, 30*time.Second, p.Duration(240))
	assert.Equal(t, time.Duration(0), p.Duration(0))
}

func TestPieceString(t *testing.T) {
	assert.Equal(t, "Canon by Pachelbel", Piece{Title: "Canon", Artist: "Pachelbel"}.String())
	assert.Equal(t, "Canon", Piece{Title: "Canon"}.String())
}

func TestLoadScore(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "canon.toml", "title = \"Canon in D\"\ncomposer = \"Pachelbel\"\ntempo = 60\nbeats = 228\n")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Piece{Title: "Canon in D", Artist: "Pachelbel", Tempo: 60, Beats: 228, Path: path}, p)
}

func TestLoadScoreDefaults(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "sketch.toml", "")

	p, err := LoadScore(path)
	require.NoError(t, err)
	assert.Equal(t, "sketch", p.Title)
	assert.Equal(t, DefaultBeats, p.Beats)
	assert.Zero(t, p.Tempo)
}

func TestLoadScoreErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScore(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	_, err = LoadScore(writeFile(t, dir, "bad.toml", "title = "))
	require.Error(t, err)

	_, err = LoadScore(writeFile(t, dir, "negative.toml", "beats = -4\n"))
	require.Error(t, err)
}

func TestLoadTagged(t *testing.T) {
	dir := t.TempDir()

	path := writeTaggedFile(t, dir, "drive.mp3",
		id3Frame("TIT2", "Night Drive"),
		id3Frame("TPE1", "Aperio"),
		id3Frame("TBPM", "124"),
		id3Frame("TLEN", "60000"),
	)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", p.Title)
	assert.Equal(t, "Aperio", p.Artist)
	assert.InDelta(t, 124.0, p.Tempo, 1e-9)
	assert.Equal(t, 124, p.Beats)
	assert.Equal(t, path, p.Path)
}

func TestLoadTaggedWithoutTitleOrTempo(t *testing.T) {
	dir := t.TempDir()

	path := writeTaggedFile(t, dir, "untitled.mp3", id3Frame("TPE1", "Someone"))

	p, err := LoadTagged(path)
	require.NoError(t, err)
	assert.Equal(t, "untitled.mp3", p.Title)
	assert.Zero(t, p.Tempo)
	assert.Equal(t, DefaultBeats, p.Beats)
}

func TestLoadTaggedRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTagged(writeFile(t, dir, "notes.txt", "just some text, not audio"))
	require.Error(t, err)
}

func TestLoadRejectsPlaylist(t *testing.T) {
	_, err := Load("set.m3u8")
	require.Error(t, err)
}

func TestReadPlaylist(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "set.m3u8", "#EXTM3U\n\n#EXTINF:123,Canon\ncanon.toml\n/abs/other.mp3\n")

	entries, err := ReadPlaylist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "canon.toml"), "/abs/other.mp3"}, entries)
}

func TestLoadPlaylistSkipsUnreadableEntries(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "canon.toml", "title = \"Canon\"\n")
	writeFile(t, dir, "broken.toml", "title = ")
	writeTaggedFile(t, dir, "drive.mp3", id3Frame("TIT2", "Night Drive"))
	path := writeFile(t, dir, "set.m3u8", "canon.toml\nbroken.toml\nmissing.mp3\ndrive.mp3\nnested.m3u\n")

	pieces, err := LoadPlaylist(path)
	require.NoError(t, err)
	require.Len(t, pieces, 2)
	assert.Equal(t, "Canon", pieces[0].Title)
	assert.Equal(t, "Night Drive", pieces[1].Title)
}

func TestLoadPlaylistWithNothingPlayable(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPlaylist(writeFile(t, dir, "empty.m3u", "#EXTM3U\n"))
	require.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()

	score := writeFile(t, dir, "canon.toml", "title = \"Canon\"\n")
	writeFile(t, dir, "etude.toml", "title = \"Etude\"\n")
	list := writeFile(t, dir, "set.m3u8", "etude.toml\n")

	pieces, err := LoadAll([]string{score, list})
	require.NoError(t, err)
	require.Len(t, pieces, 2)
	assert.Equal(t, "Canon", pieces[0].Title)
	assert.Equal(t, "Etude", pieces[1].Title)

	_, err = LoadAll(nil)
	require.Error(t, err)

	_, err = LoadAll([]string{filepath.Join(dir, "missing.toml")})
	require.Error(t, err)
}
