package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// progression is a looping i-VI-III-VII in A minor, as triads in Hz.
var progression = [][3]float64{
	{220.00, 261.63, 329.63},
	{174.61, 220.00, 261.63},
	{261.63, 329.63, 392.00},
	{196.00, 246.94, 293.66},
}

const (
	baseTempo  = 96
	tempoStep  = 8
	maxTempo   = 180
	musicGain  = 0.08
	musicDecay = 3.0
)

// Tempo returns the music tempo in beats per minute for a game level.
func Tempo(level int) int {
	return min(baseTempo+tempoStep*max(level, 0), maxTempo)
}

// ChordLength is how long each chord of the progression sounds: two beats.
func ChordLength(level int) time.Duration {
	return 2 * time.Minute / time.Duration(Tempo(level))
}

// Music is an endless chord progression whose tempo follows the game
// level. SetLevel may be called from any goroutine; the new tempo applies
// from the next chord.
type Music struct {
	sr     beep.SampleRate
	level  atomic.Int32
	chord  int
	pos    int
	length int
	attack int
	phases [3]float64
}

func NewMusic(sr beep.SampleRate) *Music {
	return &Music{
		sr:     sr,
		length: sr.N(ChordLength(0)),
		attack: sr.N(5 * time.Millisecond),
	}
}

// SetLevel changes the tempo used for the following chords.
func (m *Music) SetLevel(level int) {
	m.level.Store(int32(level))
}

// Level returns the level the tempo is derived from.
func (m *Music) Level() int {
	return int(m.level.Load())
}

// Chord returns the index of the chord currently sounding.
func (m *Music) Chord() int {
	return m.chord
}

// Restart rewinds to the first chord.
func (m *Music) Restart() {
	m.chord = 0
	m.pos = 0
	m.length = m.sr.N(ChordLength(m.Level()))
	m.phases = [3]float64{}
}

func (m *Music) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if m.pos >= m.length {
			m.pos = 0
			m.chord = (m.chord + 1) % len(progression)
			m.length = m.sr.N(ChordLength(m.Level()))
		}

		t := float64(m.pos) / float64(m.sr)
		env := math.Exp(-musicDecay * t)
		if m.pos < m.attack {
			env *= float64(m.pos) / float64(m.attack)
		}

		var v float64
		for j, freq := range progression[m.chord] {
			v += math.Sin(2 * math.Pi * m.phases[j])
			m.phases[j] += freq / float64(m.sr)
			m.phases[j] -= math.Floor(m.phases[j])
		}
		v *= musicGain * env

		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *Music) Err() error { return nil }
