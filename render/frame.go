// Package render turns a game snapshot into a flat frame description that
// terminal and graphical renderers draw without knowing the game rules.
package render

import (
	"strconv"

	"github.com/plus3/blockfall/tetris"
)

// CellKind says what occupies a board cell in a frame.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellLocked
	CellGhost
	CellActive
	// CellFlash is a row being cleared while the flash is on.
	CellFlash
)

// Cell is one board position in a frame.
type Cell struct {
	Kind  CellKind
	Piece tetris.PieceType
}

// Mini is a piece trimmed to the bounding box of its filled cells, for the
// next and hold boxes.
type Mini struct {
	Piece tetris.PieceType
	Cells [][]bool
}

// Width returns the column count of the trimmed matrix.
func (m Mini) Width() int {
	if len(m.Cells) == 0 {
		return 0
	}
	return len(m.Cells[0])
}

// Height returns the row count of the trimmed matrix.
func (m Mini) Height() int { return len(m.Cells) }

// Frame is everything needed to draw one screen.
type Frame struct {
	Rows, Cols int
	Board      [][]Cell

	Next     []Mini
	Hold     Mini
	HoldUsed bool

	Score int
	Lines int
	// Level is the human-facing level, one more than the game's.
	Level int

	Status tetris.Status
	Banner string
	Hint   string
}

// Trim crops a shape to its filled cells.
func Trim(t tetris.PieceType, shape tetris.Shape) Mini {
	minRow, minCol, maxRow, maxCol, ok := shape.Bounds()
	if !ok {
		return Mini{Piece: t}
	}

	cells := make([][]bool, maxRow-minRow+1)
	for r := range cells {
		cells[r] = make([]bool, maxCol-minCol+1)
		copy(cells[r], shape[minRow+r][minCol:maxCol+1])
	}
	return Mini{Piece: t, Cells: cells}
}

// Build lays out snap. Ghost cells are drawn only on empty positions and the
// active piece is drawn over everything. Rows being cleared alternate
// between CellFlash and empty as the flash toggles.
func Build(snap tetris.Snapshot, shapes map[tetris.PieceType]tetris.Shape) *Frame {
	rows, cols := snap.Grid.Rows(), snap.Grid.Cols()
	f := &Frame{
		Rows:     rows,
		Cols:     cols,
		Board:    make([][]Cell, rows),
		HoldUsed: snap.HoldUsed,
		Score:    snap.Score,
		Lines:    snap.Lines,
		Level:    snap.Level + 1,
		Status:   snap.Status,
	}

	for r := range rows {
		f.Board[r] = make([]Cell, cols)
		for c := range cols {
			if t := snap.Grid.At(r, c); t != tetris.Empty {
				f.Board[r][c] = Cell{Kind: CellLocked, Piece: t}
			}
		}
	}

	if snap.Clearing.Active() {
		for _, r := range snap.Clearing.Rows {
			if r < 0 || r >= rows {
				continue
			}
			for c := range cols {
				if snap.Clearing.Visible {
					f.Board[r][c] = Cell{Kind: CellFlash, Piece: f.Board[r][c].Piece}
				} else {
					f.Board[r][c] = Cell{}
				}
			}
		}
	}

	if snap.HasActive {
		ghost := snap.Active.Moved(snap.GhostRow-snap.Active.Row, 0)
		for r, c := range ghost.Cells() {
			if snap.Grid.InBounds(r, c) && f.Board[r][c].Kind == CellEmpty {
				f.Board[r][c] = Cell{Kind: CellGhost, Piece: snap.Active.Type}
			}
		}
		for r, c := range snap.Active.Cells() {
			if snap.Grid.InBounds(r, c) {
				f.Board[r][c] = Cell{Kind: CellActive, Piece: snap.Active.Type}
			}
		}
	}

	for _, t := range snap.Preview {
		f.Next = append(f.Next, Trim(t, shapes[t]))
	}
	if snap.Held != tetris.Empty {
		f.Hold = Trim(snap.Held, shapes[snap.Held])
	}

	f.Banner, f.Hint = banner(snap.Status)
	return f
}

func banner(status tetris.Status) (string, string) {
	switch status {
	case tetris.StatusNotStarted:
		return "READY", "Press Enter to start"
	case tetris.StatusPaused:
		return "PAUSED", "Press P to resume"
	case tetris.StatusGameOver:
		return "GAME OVER", "Press R to reset"
	}
	return "", ""
}

// HUD returns the label/value pairs shown beside the board, in display order.
func (f *Frame) HUD() [][2]string {
	return [][2]string{
		{"SCORE", formatScore(f.Score)},
		{"LINES", strconv.Itoa(f.Lines)},
		{"LEVEL", strconv.Itoa(f.Level)},
	}
}

// formatScore groups digits in threes with commas.
func formatScore(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		out = append(out, '-')
	}
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
