package render

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

// RGB is an opaque colour shared by every renderer.
type RGB struct {
	R, G, B uint8
}

// RGBA converts c to an image/color value with the given alpha.
func (c RGB) RGBA(alpha uint8) color.RGBA {
	// premultiplied, as image/color expects
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(alpha) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: alpha}
}

// Blend mixes c toward dst by t in [0, 1].
func (c RGB) Blend(dst RGB, t float64) RGB {
	t = min(max(t, 0), 1)
	lerp := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5) }
	return RGB{R: lerp(c.R, dst.R), G: lerp(c.G, dst.G), B: lerp(c.B, dst.B)}
}

var (
	Background = RGB{15, 23, 42}
	GridLine   = RGB{30, 41, 59}
	Text       = RGB{241, 245, 249}
	Muted      = RGB{148, 163, 184}
	Flash      = RGB{241, 245, 249}
	Ghost      = RGB{226, 232, 240}

	// GhostAlpha is the opacity of the landing projection.
	GhostAlpha uint8 = 64
)

var pieceColors = [...]RGB{
	tetris.Empty: Background,
	tetris.I:     {0x0e, 0xa5, 0xe9},
	tetris.J:     {0x63, 0x66, 0xf1},
	tetris.L:     {0xf5, 0x9e, 0x0b},
	tetris.O:     {0xfa, 0xcc, 0x15},
	tetris.S:     {0x22, 0xc5, 0x5e},
	tetris.T:     {0xa8, 0x55, 0xf7},
	tetris.Z:     {0xef, 0x44, 0x44},
}

// PieceColor returns the fill colour of a piece type. Unknown types use the
// background.
func PieceColor(t tetris.PieceType) RGB {
	if int(t) >= len(pieceColors) {
		return Background
	}
	return pieceColors[t]
}

// CellColor resolves the colour a renderer should paint for cell.
func CellColor(cell Cell) RGB {
	switch cell.Kind {
	case CellLocked, CellActive:
		return PieceColor(cell.Piece)
	case CellGhost:
		return Background.Blend(Ghost, float64(GhostAlpha)/255)
	case CellFlash:
		return Flash
	}
	return Background
}
