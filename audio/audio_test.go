package audio

import (
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// drain streams s to the end and returns the number of samples and the
// largest absolute sample value.
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()

	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, abs(buf[i][0]), abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total, peak
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEnvelopeLength(t *testing.T) {
	s := newEnvelope(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	}), 100*time.Millisecond, 10*time.Millisecond, testRate)

	total, peak := drain(t, s, 10000)
	assert.Equal(t, testRate.N(100*time.Millisecond), total)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestEffectsEnd(t *testing.T) {
	sounds := []Sound{SoundLock, SoundHardDrop, SoundHold, SoundClear, SoundLevelUp, SoundGameOver}
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			total, peak := drain(t, Effect(testRate, s, 2), testRate.N(5*time.Second))
			assert.Positive(t, total)
			assert.Positive(t, peak)
			assert.LessOrEqual(t, peak, 1.0)
		})
	}

	assert.Nil(t, Effect(testRate, Sound(0), 0))
}

func TestClearEffectGrowsWithRows(t *testing.T) {
	single, _ := drain(t, Effect(testRate, SoundClear, 1), testRate.N(5*time.Second))
	tetrisClear, _ := drain(t, Effect(testRate, SoundClear, 4), testRate.N(5*time.Second))
	clamped, _ := drain(t, Effect(testRate, SoundClear, 9), testRate.N(5*time.Second))

	assert.Greater(t, tetrisClear, single)
	assert.Equal(t, tetrisClear, clamped)
}

func TestTempo(t *testing.T) {
	assert.Equal(t, 96, Tempo(0))
	assert.Equal(t, 104, Tempo(1))
	assert.Equal(t, 180, Tempo(50))
	assert.Equal(t, 96, Tempo(-3))
	assert.Equal(t, 1250*time.Millisecond, ChordLength(0))
}

func TestMusicAdvancesChords(t *testing.T) {
	m := NewMusic(testRate)
	chord := testRate.N(ChordLength(0))

	buf := make([][2]float64, chord)
	n, ok := m.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, chord, n)
	assert.Equal(t, 0, m.Chord())

	m.SetLevel(10)
	m.Stream(buf[:1])
	assert.Equal(t, 1, m.Chord())

	faster := testRate.N(ChordLength(10))
	m.Stream(make([][2]float64, faster-1))
	assert.Equal(t, 1, m.Chord())
	m.Stream(buf[:1])
	assert.Equal(t, 2, m.Chord(), "new tempo applies from the next chord")

	for _, s := range buf {
		assert.LessOrEqual(t, abs(s[0]), 3*musicGain)
	}

	m.Restart()
	assert.Equal(t, 0, m.Chord())
}

func TestManagerFollowsGame(t *testing.T) {
	m := NewManager(testRate, 1, nil)
	g, err := tetris.NewGame(tetris.DefaultConfig(), tetris.WithSeed(1), tetris.WithObserver(m))
	require.NoError(t, err)

	assert.True(t, m.MusicPaused())

	g.Start()
	assert.False(t, m.MusicPaused())

	g.Pause()
	assert.True(t, m.MusicPaused())
	g.Resume()
	assert.False(t, m.MusicPaused())

	g.HandleInput(tetris.HardDrop)
	assert.Equal(t, 1, m.Played(SoundHardDrop))
	assert.Equal(t, 1, m.Played(SoundLock))

	g.HandleInput(tetris.Hold)
	assert.Equal(t, 1, m.Played(SoundHold))

	g.Reset()
	assert.True(t, m.MusicPaused())
	assert.Equal(t, 0, m.Music().Level())
}

func TestManagerLevelUpAndGameOver(t *testing.T) {
	m := NewManager(testRate, 1, nil)

	m.Observe(tetris.Event{Kind: tetris.EventStarted})
	m.Observe(tetris.Event{Kind: tetris.EventLinesDetected, Rows: []int{18, 19}})
	m.Observe(tetris.Event{Kind: tetris.EventLevelUp, Level: 3})

	assert.Equal(t, 1, m.Played(SoundClear))
	assert.Equal(t, 1, m.Played(SoundLevelUp))
	assert.Equal(t, 3, m.Music().Level())

	m.Observe(tetris.Event{Kind: tetris.EventGameOver})
	assert.True(t, m.MusicPaused())
	assert.Equal(t, 1, m.Played(SoundGameOver))
}

func TestManagerStreamFillsBuffer(t *testing.T) {
	m := NewManager(testRate, 1, nil)

	buf := make([][2]float64, 256)
	for i := range buf {
		buf[i] = [2]float64{9, 9}
	}

	n, ok := m.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n)
	for _, s := range buf {
		assert.Zero(t, s[0], "paused music is silent")
	}

	m.Play(SoundLock, 0)
	m.Stream(buf)
	var peak float64
	for _, s := range buf {
		peak = max(peak, abs(s[0]))
	}
	assert.Positive(t, peak)

	m.SetVolume(0)
	m.Play(SoundLock, 0)
	m.Stream(buf)
	for _, s := range buf {
		assert.Zero(t, s[0], "muted")
	}
}

func TestPCMReader(t *testing.T) {
	values := [][2]float64{{0, 1}, {-1, 0.5}, {2, -2}}
	pos := 0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := copy(samples, values[pos:])
		pos += n
		return n, n > 0
	})
	r := NewPCMReader(src)

	p := make([]byte, 16)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	sample := func(i int) int16 { return int16(binary.LittleEndian.Uint16(p[i*2:])) }
	assert.Equal(t, int16(0), sample(0))
	assert.Equal(t, int16(32767), sample(1))
	assert.Equal(t, int16(-32767), sample(2))
	assert.Equal(t, int16(16383), sample(3))
	assert.Equal(t, int16(32767), sample(4), "clipped")
	assert.Equal(t, int16(-32767), sample(5))

	n, err = r.Read(p)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = r.Read(p[:3])
	assert.Zero(t, n)
	assert.NoError(t, err, "short buffers read nothing")
}
