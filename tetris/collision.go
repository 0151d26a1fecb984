package tetris

// Collides reports whether p, shifted by (dRow, dCol), would leave the grid
// or overlap a filled cell. It has no side effects and costs O(piece area).
func Collides(p Piece, g *Grid, dRow, dCol int) bool {
	for row, col := range p.Cells() {
		row += dRow
		col += dCol
		if !g.InBounds(row, col) {
			return true
		}
		if g.cells[row][col] != Empty {
			return true
		}
	}
	return false
}

// LandingRow returns the anchor row p would rest on if hard-dropped from its
// current position. This is the ghost projection.
func LandingRow(p Piece, g *Grid) int {
	k := 1
	for !Collides(p, g, k, 0) {
		k++
	}
	return p.Row + k - 1
}
