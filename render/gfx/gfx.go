// Package gfx draws frames with ebiten and translates ebiten key state into
// game inputs.
package gfx

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/render"
)

const (
	margin    = 24
	panelGap  = 24
	panelCols = 5
	// ebitenutil's debug font is 6x16.
	glyphWidth  = 6
	glyphHeight = 16
)

// Renderer draws frames onto an ebiten image.
type Renderer struct {
	cell int
}

// NewRenderer creates a renderer with square cells of the given side length
// in pixels.
func NewRenderer(cellSize int) *Renderer {
	return &Renderer{cell: max(cellSize, 4)}
}

// Size returns the screen size needed for a board.
func (r *Renderer) Size(rows, cols int) (width, height int) {
	width = margin + cols*r.cell + panelGap + panelCols*r.cell + margin
	height = margin + rows*r.cell + margin
	return width, height
}

// CellRect returns the pixel rectangle of the board cell at row, col.
func (r *Renderer) CellRect(row, col int) image.Rectangle {
	x := margin + col*r.cell
	y := margin + row*r.cell
	return image.Rect(x, y, x+r.cell, y+r.cell)
}

func (r *Renderer) panelX(cols int) int {
	return margin + cols*r.cell + panelGap
}

// Draw renders f onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, f *render.Frame) {
	screen.Fill(render.Background.RGBA(255))

	r.drawGridLines(screen, f.Rows, f.Cols)
	for row, cells := range f.Board {
		for col, cell := range cells {
			if cell.Kind == render.CellEmpty {
				continue
			}
			r.drawCell(screen, r.CellRect(row, col), cell)
		}
	}

	x := r.panelX(f.Cols)
	y := margin
	ebitenutil.DebugPrintAt(screen, "NEXT", x, y)
	y += glyphHeight + 4

	mini := r.cell * 2 / 3
	for _, m := range f.Next {
		r.drawMini(screen, m, x, y, mini, 255)
		y += 3 * mini
	}

	y += mini
	ebitenutil.DebugPrintAt(screen, "HOLD", x, y)
	y += glyphHeight + 4
	alpha := uint8(255)
	if f.HoldUsed {
		alpha = 96
	}
	r.drawMini(screen, f.Hold, x, y, mini, alpha)
	y += 3 * mini

	for _, item := range f.HUD() {
		ebitenutil.DebugPrintAt(screen, item[0], x, y)
		ebitenutil.DebugPrintAt(screen, item[1], x, y+glyphHeight)
		y += 2*glyphHeight + 8
	}

	if f.Banner != "" {
		r.drawBanner(screen, f)
	}
}

func (r *Renderer) drawGridLines(screen *ebiten.Image, rows, cols int) {
	line := render.GridLine.RGBA(255)
	w := float32(cols * r.cell)
	h := float32(rows * r.cell)
	for c := 1; c < cols; c++ {
		x := float32(margin + c*r.cell)
		vector.StrokeLine(screen, x, margin, x, margin+h, 1, line, false)
	}
	for row := 1; row < rows; row++ {
		y := float32(margin + row*r.cell)
		vector.StrokeLine(screen, margin, y, margin+w, y, 1, line, false)
	}
	vector.StrokeRect(screen, margin-1, margin-1, w+2, h+2, 2, render.Muted.RGBA(255), false)
}

func (r *Renderer) drawCell(screen *ebiten.Image, rect image.Rectangle, cell render.Cell) {
	x, y := float32(rect.Min.X), float32(rect.Min.Y)
	size := float32(rect.Dx())

	if cell.Kind == render.CellGhost {
		vector.DrawFilledRect(screen, x, y, size, size, render.Ghost.RGBA(render.GhostAlpha), false)
		return
	}

	vector.DrawFilledRect(screen, x, y, size, size, render.CellColor(cell).RGBA(255), false)
	vector.StrokeRect(screen, x+1, y+1, size-2, size-2, 2, render.Background.RGBA(166), false)
}

func (r *Renderer) drawMini(screen *ebiten.Image, m render.Mini, x, y, size int, alpha uint8) {
	fill := render.PieceColor(m.Piece).RGBA(alpha)
	for row, cells := range m.Cells {
		for col, filled := range cells {
			if !filled {
				continue
			}
			px := float32(x + col*size)
			py := float32(y + row*size)
			vector.DrawFilledRect(screen, px, py, float32(size), float32(size), fill, false)
			vector.StrokeRect(screen, px+1, py+1, float32(size-2), float32(size-2), 1, render.Background.RGBA(178), false)
		}
	}
}

func (r *Renderer) drawBanner(screen *ebiten.Image, f *render.Frame) {
	w := f.Cols * r.cell
	h := f.Rows * r.cell
	boxY := margin + h/2 - 3*glyphHeight/2
	vector.DrawFilledRect(screen, margin, float32(boxY), float32(w), 3*glyphHeight, render.RGB{2, 6, 23}.RGBA(217), false)

	center := func(s string, y int) {
		ebitenutil.DebugPrintAt(screen, s, margin+(w-len(s)*glyphWidth)/2, y)
	}
	center(f.Banner, boxY+glyphHeight/2)
	if f.Hint != "" {
		center(f.Hint, boxY+3*glyphHeight/2)
	}
}
