// Package audio synthesizes background music and sound effects for a game
// and mixes them into a single beep stream.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// DefaultSampleRate is used by both clients.
const DefaultSampleRate = beep.SampleRate(44100)

// envelope fades a stream in over attack samples and linearly out to
// silence at total samples, then ends it.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack time.Duration, sr beep.SampleRate) beep.Streamer {
	total := sr.N(duration)
	return &envelope{
		streamer: s,
		attack:   min(sr.N(attack), total),
		total:    total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	samples = samples[:min(len(samples), e.total-e.position)]

	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		} else if release := e.total - e.attack; release > 0 {
			vol = float64(e.total-e.position) / float64(release)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a single enveloped sine tone.
func note(sr beep.SampleRate, freq float64, duration time.Duration, gain float64) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		// frequency above Nyquist; play nothing for the same duration
		return beep.Silence(sr.N(duration))
	}
	return newVolume(newEnvelope(sine, duration, 5*time.Millisecond, sr), gain)
}

// chord plays several notes together.
func chord(sr beep.SampleRate, freqs []float64, duration time.Duration, gain float64) beep.Streamer {
	voices := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		voices[i] = note(sr, f, duration, gain/float64(len(freqs)))
	}
	return beep.Take(sr.N(duration), beep.Mix(voices...))
}
