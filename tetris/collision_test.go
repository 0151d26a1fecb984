package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// projectedCollision is a set-based reference: the piece collides when some
// of its cells fall off the board or any on-board cell is already taken.
func projectedCollision(p Piece, g *Grid, dRow, dCol int) bool {
	total, inside := 0, 0
	overlap := false
	for y, row := range p.Shape {
		for x, filled := range row {
			if !filled {
				continue
			}
			total++
			r, c := p.Row+y+dRow, p.Col+x+dCol
			if r < 0 || r >= g.Rows() || c < 0 || c >= g.Cols() {
				continue
			}
			inside++
			if g.At(r, c) != Empty {
				overlap = true
			}
		}
	}
	return inside < total || overlap
}

func boardFromMask(rows, cols int, mask uint) *Grid {
	g := NewGrid(rows, cols)
	for i := range rows * cols {
		if mask&(1<<i) != 0 {
			g.Set(i/cols, i%cols, Z)
		}
	}
	return g
}

func TestCollidesExhaustiveSmallBoard(t *testing.T) {
	const rows, cols = 3, 3

	var rotations []Piece
	for typ, shape := range DefaultShapes() {
		s := shape
		for range 4 {
			rotations = append(rotations, Piece{Shape: s, Type: typ})
			s = Rotate(s, 1)
		}
	}

	mismatches := 0
	for mask := uint(0); mask < 1<<(rows*cols); mask++ {
		g := boardFromMask(rows, cols, mask)
		for _, base := range rotations {
			for anchorRow := -3; anchorRow < rows; anchorRow++ {
				for anchorCol := -3; anchorCol < cols; anchorCol++ {
					p := base
					p.Row, p.Col = anchorRow, anchorCol
					for dRow := -1; dRow <= 1; dRow++ {
						for dCol := -1; dCol <= 1; dCol++ {
							got := Collides(p, g, dRow, dCol)
							want := projectedCollision(p, g, dRow, dCol)
							if got != want {
								mismatches++
								if mismatches <= 5 {
									t.Errorf("mask=%09b %s at (%d,%d) offset (%d,%d): got %v, want %v",
										mask, p.Type, anchorRow, anchorCol, dRow, dCol, got, want)
								}
							}
						}
					}
				}
			}
		}
	}

	if mismatches > 0 {
		t.Fatalf("%d mismatches", mismatches)
	}
}

func TestCollidesWalls(t *testing.T) {
	g := NewGrid(20, 10)
	p := Piece{Shape: DefaultShapes()[O], Row: 0, Col: 0, Type: O}

	assert.False(t, Collides(p, g, 0, 0))
	assert.True(t, Collides(p, g, 0, -1), "left wall")
	assert.True(t, Collides(p, g, -1, 0), "above the top")
	assert.False(t, Collides(p, g, 18, 8))
	assert.True(t, Collides(p, g, 19, 0), "floor")
	assert.True(t, Collides(p, g, 0, 9), "right wall")
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	g := NewGrid(20, 10)
	// The I shape's top row is empty, so a piece anchored at row -1 is legal.
	p := Piece{Shape: DefaultShapes()[I], Row: -1, Col: 0, Type: I}

	assert.False(t, Collides(p, g, 0, 0))
}

func TestLandingRow(t *testing.T) {
	g := NewGrid(20, 10)
	p := Piece{Shape: DefaultShapes()[T], Row: 0, Col: 3, Type: T}

	assert.Equal(t, 18, LandingRow(p, g), "T rests with its flat side on the floor")

	g.Set(10, 4, Z)
	assert.Equal(t, 8, LandingRow(p, g))

	resting := p
	resting.Row = 8
	assert.Equal(t, 8, LandingRow(resting, g), "already resting")
}
