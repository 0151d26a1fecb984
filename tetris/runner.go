package tetris

import (
	"context"
	"time"
)

// Input is anything a Runner can apply to its game between ticks.
type Input interface {
	Apply(g *Game)
}

// Apply forwards the action to HandleInput.
func (a Action) Apply(g *Game) { g.HandleInput(a) }

// Control is a lifecycle request.
type Control uint8

const (
	ControlStart Control = iota + 1
	ControlTogglePause
	ControlReset
)

// Apply performs the lifecycle transition on g.
func (c Control) Apply(g *Game) {
	switch c {
	case ControlStart:
		g.Start()
	case ControlTogglePause:
		g.TogglePause()
	case ControlReset:
		g.Reset()
	}
}

// Runner drives a game from wall-clock time. It is cooperative: ticks and
// inputs are applied one at a time on the goroutine calling Run or Step.
type Runner struct {
	game *Game

	// OnFrame, when set, is called after every step whatever the game
	// status, so renderers always see the latest state.
	OnFrame func(g *Game)

	last     time.Time
	timeline uint64
	armed    bool
	frames   int64
}

// NewRunner creates a runner for g.
func NewRunner(g *Game) *Runner {
	return &Runner{game: g}
}

// Game returns the driven game.
func (r *Runner) Game() *Game { return r.game }

// Frames returns the number of steps taken.
func (r *Runner) Frames() int64 { return r.frames }

// Step advances the game to now. While the game is not ticking the time
// reference is dropped. The first step after the game's timeline changes
// (Start, Resume or Reset, even between two steps) only re-baselines, so
// time spent paused is never credited.
func (r *Runner) Step(now time.Time) {
	r.frames++
	defer r.frame()

	status := r.game.Status()
	if status != StatusRunning && status != StatusClearing {
		r.armed = false
		return
	}

	if !r.armed || r.timeline != r.game.Timeline() {
		r.armed = true
		r.timeline = r.game.Timeline()
		r.last = now
		return
	}

	dt := now.Sub(r.last)
	r.last = now
	if dt <= 0 {
		return
	}
	r.game.Tick(dt)
}

func (r *Runner) frame() {
	if r.OnFrame != nil {
		r.OnFrame(r.game)
	}
}

// Run steps the game every interval and applies inputs as they arrive,
// until ctx is cancelled. A nil inputs channel is allowed.
func (r *Runner) Run(ctx context.Context, interval time.Duration, inputs <-chan Input) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputs:
			if !ok {
				inputs = nil
				continue
			}
			in.Apply(r.game)
		case now := <-ticker.C:
			r.Step(now)
		}
	}
}
