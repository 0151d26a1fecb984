package audio

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/tetris"
)

// Manager turns game events into music and effects. It is a tetris.Observer
// and a beep.Streamer: Observe runs on the game goroutine while Stream runs
// on the audio device's goroutine, so both take the same lock.
type Manager struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	music  *Music
	ctrl   *beep.Ctrl
	volume *effects.Volume
	played map[Sound]int
	logger *log.Logger

	speaker bool
}

// NewManager creates a manager with music paused until a game starts.
// volume is linear, 1 being unchanged.
func NewManager(sr beep.SampleRate, volume float64, logger *log.Logger) *Manager {
	m := &Manager{
		sr:     sr,
		mixer:  &beep.Mixer{},
		music:  NewMusic(sr),
		played: make(map[Sound]int),
		logger: logger,
	}
	m.ctrl = &beep.Ctrl{Streamer: m.music, Paused: true}
	m.mixer.Add(m.ctrl)
	m.volume = newVolume(m.mixer, volume)
	return m
}

// PlayOnSpeaker opens the default audio device and starts streaming.
func (m *Manager) PlayOnSpeaker() error {
	if err := speaker.Init(m.sr, m.sr.N(bufferDuration)); err != nil {
		return err
	}
	speaker.Play(m)

	m.mu.Lock()
	m.speaker = true
	m.mu.Unlock()
	return nil
}

// Close stops speaker playback if PlayOnSpeaker succeeded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ctrl.Paused = true
	m.mixer.Clear()
	if m.speaker {
		speaker.Clear()
		m.speaker = false
	}
}

// SetVolume changes the master volume.
func (m *Manager) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if volume <= 0 {
		m.volume.Silent = true
		return
	}
	m.volume.Silent = false
	m.volume.Volume = math.Log2(volume)
}

// Play starts a one-shot effect.
func (m *Manager) Play(s Sound, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.play(s, rows)
}

func (m *Manager) play(s Sound, rows int) {
	streamer := Effect(m.sr, s, rows)
	if streamer == nil {
		return
	}
	m.mixer.Add(streamer)
	m.played[s]++
}

func (m *Manager) Observe(e tetris.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e.Kind {
	case tetris.EventStarted:
		m.music.SetLevel(0)
		m.music.Restart()
		m.ctrl.Paused = false
	case tetris.EventResumed:
		m.ctrl.Paused = false
	case tetris.EventPaused:
		m.ctrl.Paused = true
	case tetris.EventReset:
		m.ctrl.Paused = true
		m.music.SetLevel(0)
		m.mixer.Clear()
		m.mixer.Add(m.ctrl)
	case tetris.EventLocked:
		m.play(SoundLock, 0)
	case tetris.EventHardDropped:
		m.play(SoundHardDrop, 0)
	case tetris.EventHeld:
		m.play(SoundHold, 0)
	case tetris.EventLinesDetected:
		m.play(SoundClear, len(e.Rows))
	case tetris.EventLevelUp:
		m.music.SetLevel(e.Level)
		m.play(SoundLevelUp, 0)
		if m.logger != nil {
			m.logger.Debug("music tempo", "bpm", Tempo(e.Level))
		}
	case tetris.EventGameOver:
		m.ctrl.Paused = true
		m.play(SoundGameOver, 0)
	}
}

// MusicPaused reports whether the background music is silent.
func (m *Manager) MusicPaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl.Paused
}

// Played returns how many times a sound has been started.
func (m *Manager) Played(s Sound) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[s]
}

// Music returns the background music stream.
func (m *Manager) Music() *Music {
	return m.music
}

// Stream mixes everything into samples. It always fills the whole buffer,
// with silence when nothing is playing.
func (m *Manager) Stream(samples [][2]float64) (n int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, _ = m.volume.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (m *Manager) Err() error { return nil }
