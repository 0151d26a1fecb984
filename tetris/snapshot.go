package tetris

import "time"

// Snapshot is a deep, read-only copy of everything a renderer or other
// collaborator may show. It never aliases live game state.
type Snapshot struct {
	Status    Status
	Epoch     uint64
	Grid      *Grid
	Active    Piece
	HasActive bool
	GhostRow  int
	Preview   []PieceType
	Held      PieceType
	HoldUsed  bool
	Score     int
	Lines     int
	Level     int
	Interval  time.Duration
	Clearing  ClearAnimation
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Status:   g.status,
		Epoch:    g.epoch,
		Grid:     g.grid.Clone(),
		Preview:  g.Preview(),
		Held:     g.held,
		HoldUsed: g.holdUsed,
		Score:    g.scoring.Score(),
		Lines:    g.scoring.Lines(),
		Level:    g.scoring.Level(),
		Interval: g.scoring.Interval(),
		Clearing: g.clear.clone(),
	}
	if p, ok := g.Active(); ok {
		snap.Active = p
		snap.HasActive = true
		snap.GhostRow = LandingRow(p, g.grid)
	}
	return snap
}
