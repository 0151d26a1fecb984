package tetris

import (
	"fmt"
	"slices"
	"strings"
)

// Grid is a fixed Rows x Cols matrix of cells. Each cell holds the type of
// the piece that filled it, or Empty. Dimensions never change after creation.
type Grid struct {
	rows  int
	cols  int
	cells [][]PieceType
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]PieceType, rows)
	for i := range cells {
		cells[i] = make([]PieceType, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// ParseGrid builds a grid from text, one line per row. '.' is empty and a
// piece letter (I, J, L, O, S, T, Z) is a filled cell; '#' is accepted as a
// generic filled cell and stored as I. Blank lines are ignored.
func ParseGrid(text string) (*Grid, error) {
	var lines []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}

	cols := len(lines[0])
	g := NewGrid(len(lines), cols)
	for row, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d", row, len(line), cols)
		}
		for col, r := range line {
			switch {
			case r == '.':
			case r == '#':
				g.cells[row][col] = I
			default:
				t := ParsePieceType(r)
				if t == Empty {
					return nil, fmt.Errorf("parse grid: unknown cell %q at %d,%d", r, row, col)
				}
				g.cells[row][col] = t
			}
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell content. Out-of-bounds coordinates read as Empty.
func (g *Grid) At(row, col int) PieceType {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row][col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, t PieceType) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col] = t
}

// RowFull reports whether every cell of the row is occupied.
func (g *Grid) RowFull(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	return !slices.Contains(g.cells[row], Empty)
}

// FullRows scans every row once, top to bottom, and returns the indices of
// the full ones in ascending order.
func (g *Grid) FullRows() []int {
	var full []int
	for row := range g.rows {
		if g.RowFull(row) {
			full = append(full, row)
		}
	}
	return full
}

// Merge writes every occupied cell of p into the grid, tagged with p.Type.
// Cells falling outside the grid are dropped.
func (g *Grid) Merge(p Piece) {
	for row, col := range p.Cells() {
		g.Set(row, col, p.Type)
	}
}

// RemoveRows deletes the given rows and inserts the same number of empty
// rows at the top. Rows are removed from the highest index down so earlier
// removals never shift the indices still pending.
func (g *Grid) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}

	pending := slices.Clone(rows)
	slices.Sort(pending)
	pending = slices.Compact(pending)

	removed := make([][]PieceType, 0, len(pending))
	for i := len(pending) - 1; i >= 0; i-- {
		row := pending[i]
		if row < 0 || row >= g.rows {
			continue
		}
		removed = append(removed, g.cells[row])
		g.cells = slices.Delete(g.cells, row, row+1)
	}

	// recycle the removed row slices as the new empty rows
	for _, r := range removed {
		clear(r)
	}
	g.cells = slices.Insert(g.cells, 0, removed...)
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for _, row := range g.cells {
		clear(row)
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.rows, g.cols)
	for i := range g.cells {
		copy(clone.cells[i], g.cells[i])
	}
	return clone
}

// Row returns a copy of one row.
func (g *Grid) Row(row int) []PieceType {
	if row < 0 || row >= g.rows {
		return nil
	}
	return slices.Clone(g.cells[row])
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if !slices.Equal(g.cells[i], other.cells[i]) {
			return false
		}
	}
	return true
}

// String renders the grid in the same format ParseGrid accepts.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for _, row := range g.cells {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
