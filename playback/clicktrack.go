// ABOUTME: Renders a piece's beat grid to a 16-bit mono WAV click track
// ABOUTME: Each beat starts with a short decaying sine click, accented on the first beat of a bar

package playback

import (
	"context"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"symphoxy/piece"
)

const (
	clickDuration  = 0.03   // seconds
	clickFrequency = 1000.0 // Hz
	accentFreq     = 1500.0 // Hz, first beat of each bar
	clickLevel     = 0.8    // fraction of full scale at volume 1.0
	bitDepth       = 16
	pcmFormat      = 1
)

// ClickTrack writes WAV files
type ClickTrack struct{}

// NewClickTrack returns a click-track renderer
func NewClickTrack() *ClickTrack {
	return &ClickTrack{}
}

// SamplesPerBeat returns how many samples one beat spans at the given settings
func SamplesPerBeat(settings Settings) int {
	if settings.Tempo == 0 {
		return 0
	}

	return settings.SampleRate * 60 / int(settings.Tempo)
}

// RenderFile writes p as a click track to path, replacing any existing file.
// A partially written file is removed when rendering fails or ctx is cancelled.
func (c *ClickTrack) RenderFile(ctx context.Context, p piece.Piece, settings Settings, path string) (err error) {
	perBeat := SamplesPerBeat(settings)
	if perBeat <= 0 {
		return errors.Newf("cannot render at tempo %d and sample rate %d", settings.Tempo, settings.SampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	enc := wav.NewEncoder(f, settings.SampleRate, bitDepth, 1, pcmFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: settings.SampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, perBeat),
	}

	beatsPerBar := max(settings.BeatsPerBar, 1)

	for beat := 0; beat < p.Beats; beat++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "rendering cancelled")
		}

		freq := clickFrequency
		if beat%beatsPerBar == 0 {
			freq = accentFreq
		}

		fillClick(buf.Data, settings.SampleRate, freq, settings.Volume)

		if err := enc.Write(buf); err != nil {
			return errors.Wrap(err, "failed to write samples")
		}
	}

	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize wav")
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close output file")
	}

	return nil
}

// fillClick writes one beat: a linearly decaying sine burst followed by silence
func fillClick(data []int, sampleRate int, freq, volume float64) {
	clickLen := min(len(data), int(clickDuration*float64(sampleRate)))
	amplitude := math.Min(volume*clickLevel*math.MaxInt16, math.MaxInt16)

	for i := range data {
		if i >= clickLen {
			data[i] = 0

			continue
		}

		envelope := 1 - float64(i)/float64(clickLen)
		sample := amplitude * envelope * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		data[i] = int(math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(sample))))
	}
}
