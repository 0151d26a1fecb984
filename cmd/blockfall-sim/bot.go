package main

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// Weights score a board after a placement. Positive weights reward a
// feature, negative ones penalize it.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

// DefaultWeights is a well known hand-tuned set for a 10-wide board.
var DefaultWeights = Weights{
	Height:    -0.510066,
	Lines:     0.760666,
	Holes:     -0.35663,
	Bumpiness: -0.184483,
}

// Placement is where the bot wants the active piece to go.
type Placement struct {
	Rotations int
	Col       int
	Score     float64
}

// Bot plays by trying every rotation and column for the active piece and
// hard-dropping it at the best scoring spot. It does not use hold or look
// at the preview.
type Bot struct {
	Weights Weights
}

func NewBot() *Bot {
	return &Bot{Weights: DefaultWeights}
}

// Best returns the highest scoring placement of p on g. ok is false when
// the piece has no legal placement from its current row.
func (b *Bot) Best(p tetris.Piece, g *tetris.Grid) (best Placement, ok bool) {
	best.Score = math.Inf(-1)

	shape := p.Shape
	size := shape.Size()
	for r := range 4 {
		for col := -size; col < g.Cols()+size; col++ {
			cand := tetris.Piece{Shape: shape, Row: p.Row, Col: col, Type: p.Type}
			if tetris.Collides(cand, g, 0, 0) {
				continue
			}
			cand.Row = tetris.LandingRow(cand, g)

			board := g.Clone()
			board.Merge(cand)
			score := b.evaluate(board)
			if score > best.Score {
				best = Placement{Rotations: r, Col: col, Score: score}
				ok = true
			}
		}
		shape = tetris.Rotate(shape, 1)
	}

	return best, ok
}

func (b *Bot) evaluate(board *tetris.Grid) float64 {
	full := board.FullRows()
	board.RemoveRows(full)

	rows, cols := board.Rows(), board.Cols()
	var aggregate, holes, bumpiness int
	prev := -1
	for col := range cols {
		height := 0
		for row := range rows {
			if board.At(row, col) == tetris.Empty {
				if height > 0 {
					holes++
				}
				continue
			}
			if height == 0 {
				height = rows - row
			}
		}
		aggregate += height
		if prev >= 0 {
			bumpiness += abs(height - prev)
		}
		prev = height
	}

	w := b.Weights
	return w.Height*float64(aggregate) +
		w.Lines*float64(len(full)) +
		w.Holes*float64(holes) +
		w.Bumpiness*float64(bumpiness)
}

// Act places the active piece of g. It returns false when there was
// nothing to do.
func (b *Bot) Act(g *tetris.Game) bool {
	p, ok := g.Active()
	if !ok {
		return false
	}

	target, ok := b.Best(p, g.Grid())
	if !ok {
		g.HandleInput(tetris.HardDrop)
		return true
	}

	for range target.Rotations {
		g.HandleInput(tetris.RotateCW)
	}

	for {
		p, ok = g.Active()
		if !ok || p.Col == target.Col {
			break
		}
		step := tetris.MoveRight
		if p.Col > target.Col {
			step = tetris.MoveLeft
		}
		g.HandleInput(step)
		if moved, _ := g.Active(); moved.Col == p.Col {
			break
		}
	}

	g.HandleInput(tetris.HardDrop)
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
