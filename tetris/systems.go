package tetris

// ClearSystem advances the line-clear countdowns and compacts the grid once
// the animation expires.
type ClearSystem struct{}

func (s *ClearSystem) Execute(frame *UpdateFrame) {
	if frame.Status != StatusClearing {
		return
	}

	g := frame.Game
	if !g.clear.Advance(frame.DeltaTime) {
		return
	}

	rows := g.finishClear()
	frame.Commands.Emit(Event{Kind: EventLinesCleared, Rows: rows, Lines: g.scoring.Lines()})
	g.spawnNext()
}

// GravitySystem accumulates elapsed time and moves the active piece down one
// row each time the gravity interval is exceeded, locking it when it cannot
// move.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	if frame.Status != StatusRunning {
		return
	}

	g := frame.Game
	g.dropCounter += frame.DeltaTime
	if g.dropCounter <= g.scoring.Interval() {
		return
	}

	if g.hasActive && !Collides(g.active, g.grid, 1, 0) {
		g.active.Row++
	} else if g.hasActive {
		g.lock()
	}
	g.dropCounter = 0
}
