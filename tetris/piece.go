package tetris

import "iter"

// PieceType identifies one of the seven tetrominoes. The zero value, Empty,
// marks an unoccupied grid cell.
type PieceType uint8

const (
	Empty PieceType = iota
	I
	J
	L
	O
	S
	T
	Z
)

// PieceTypes lists every playable piece type in canonical order. A bag is
// always one permutation of this list.
var PieceTypes = [...]PieceType{I, J, L, O, S, T, Z}

func (t PieceType) String() string {
	switch t {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	}
	return "."
}

// ParsePieceType is the inverse of PieceType.String. Any unknown rune maps to Empty.
func ParsePieceType(r rune) PieceType {
	for _, t := range PieceTypes {
		if rune(t.String()[0]) == r {
			return t
		}
	}
	return Empty
}

// Shape is a square occupancy matrix in one rotation state, indexed [row][col].
type Shape [][]bool

// NewShape builds a Shape from rows of text where '#' marks an occupied cell
// and any other rune an empty one.
func NewShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for i, row := range rows {
		shape[i] = make([]bool, 0, len(row))
		for _, r := range row {
			shape[i] = append(shape[i], r == '#')
		}
	}
	return shape
}

// Size returns the side length of the matrix.
func (s Shape) Size() int {
	return len(s)
}

// Clone returns a deep copy so rotations never alias the canonical definitions.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	for i := range s {
		clone[i] = make([]bool, len(s[i]))
		copy(clone[i], s[i])
	}
	return clone
}

// Cells yields the (row, col) offsets of every occupied cell, top to bottom.
func (s Shape) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row := range s {
			for col, filled := range s[row] {
				if !filled {
					continue
				}
				if !yield(row, col) {
					return
				}
			}
		}
	}
}

// Bounds returns the tight bounding box of the occupied cells. ok is false for
// a shape without any occupied cell.
func (s Shape) Bounds() (minRow, minCol, maxRow, maxCol int, ok bool) {
	minRow, minCol = len(s), len(s)
	maxRow, maxCol = -1, -1
	for row, col := range s.Cells() {
		minRow = min(minRow, row)
		minCol = min(minCol, col)
		maxRow = max(maxRow, row)
		maxCol = max(maxCol, col)
	}
	return minRow, minCol, maxRow, maxCol, maxRow >= 0
}

// Rotate returns s turned a quarter turn. A positive dir rotates clockwise,
// anything else counter-clockwise. The input is not modified.
func Rotate(s Shape, dir int) Shape {
	size := len(s)
	rotated := make(Shape, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for y := range size {
		for x := range size {
			if dir > 0 {
				rotated[x][size-1-y] = s[y][x]
			} else {
				rotated[size-1-x][y] = s[y][x]
			}
		}
	}

	return rotated
}

// Piece is a shape anchored on the grid. Row and Col locate the top-left
// corner of the shape matrix.
type Piece struct {
	Shape Shape
	Row   int
	Col   int
	Type  PieceType
}

// Cells yields the absolute grid coordinates of every occupied cell.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for row, col := range p.Shape.Cells() {
			if !yield(p.Row+row, p.Col+col) {
				return
			}
		}
	}
}

// Moved returns a copy of p shifted by the given offsets. The shape is shared.
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// DefaultShapes returns the canonical spawn orientation of each piece type.
func DefaultShapes() map[PieceType]Shape {
	return map[PieceType]Shape{
		I: NewShape(
			"....",
			"####",
			"....",
			"....",
		),
		J: NewShape(
			"#..",
			"###",
			"...",
		),
		L: NewShape(
			"..#",
			"###",
			"...",
		),
		O: NewShape(
			"##",
			"##",
		),
		S: NewShape(
			".##",
			"##.",
			"...",
		),
		T: NewShape(
			".#.",
			"###",
			"...",
		),
		Z: NewShape(
			"##.",
			".##",
			"...",
		),
	}
}
