package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound identifies a one-shot effect.
type Sound uint8

const (
	SoundLock Sound = iota + 1
	SoundHardDrop
	SoundHold
	SoundClear
	SoundLevelUp
	SoundGameOver
)

var soundNames = map[Sound]string{
	SoundLock:     "lock",
	SoundHardDrop: "hard_drop",
	SoundHold:     "hold",
	SoundClear:    "clear",
	SoundLevelUp:  "level_up",
	SoundGameOver: "game_over",
}

func (s Sound) String() string {
	if name, ok := soundNames[s]; ok {
		return name
	}
	return "unknown"
}

// Effect builds the streamer for a sound. rows is only used by SoundClear,
// where each cleared row adds a rising note.
func Effect(sr beep.SampleRate, s Sound, rows int) beep.Streamer {
	switch s {
	case SoundLock:
		return note(sr, 110, 60*time.Millisecond, 0.35)
	case SoundHardDrop:
		return beep.Seq(
			note(sr, 196, 30*time.Millisecond, 0.3),
			note(sr, 98, 70*time.Millisecond, 0.4),
		)
	case SoundHold:
		return note(sr, 659.25, 50*time.Millisecond, 0.2)
	case SoundClear:
		steps := []float64{523.25, 659.25, 783.99, 1046.50}
		rows = min(max(rows, 1), len(steps))
		notes := make([]beep.Streamer, 0, rows+1)
		for _, f := range steps[:rows] {
			notes = append(notes, note(sr, f, 70*time.Millisecond, 0.3))
		}
		notes = append(notes, chord(sr, steps[:rows], 150*time.Millisecond, 0.3))
		return beep.Seq(notes...)
	case SoundLevelUp:
		return beep.Seq(
			chord(sr, []float64{440, 554.37, 659.25}, 120*time.Millisecond, 0.35),
			chord(sr, []float64{587.33, 739.99, 880}, 240*time.Millisecond, 0.35),
		)
	case SoundGameOver:
		return beep.Seq(
			note(sr, 392, 200*time.Millisecond, 0.35),
			note(sr, 311.13, 200*time.Millisecond, 0.35),
			note(sr, 261.63, 200*time.Millisecond, 0.35),
			note(sr, 196, 500*time.Millisecond, 0.35),
		)
	}
	return nil
}
