package tetris

// KickOffsets are the column corrections tried after a rotation, in order.
// There are no row kicks and no per-shape tables.
var KickOffsets = [...]int{0, -1, 1, -2, 2}

// RotateWithKicks turns p a quarter turn in dir (positive is clockwise) and
// places it at the first kick offset that does not collide. When no offset
// fits, the original piece is returned with ok set to false.
func RotateWithKicks(p Piece, g *Grid, dir int) (Piece, bool) {
	rotated := p
	rotated.Shape = Rotate(p.Shape, dir)

	for _, offset := range KickOffsets {
		if !Collides(rotated, g, 0, offset) {
			return rotated.Moved(0, offset), true
		}
	}

	return p, false
}
