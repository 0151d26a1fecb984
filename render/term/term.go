// Package term draws frames on a character terminal with tcell.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/render"
)

// Each board cell is two columns wide so blocks look roughly square.
const cellWidth = 2

// Layout positions, in terminal cells.
const (
	boardX    = 2
	boardY    = 1
	sideGap   = 3
	boxHeight = 4
)

// Renderer paints frames on a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for an initialized screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func style(fg, bg render.RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

// hudLines is the height of one HUD entry: label and value.
const hudLines = 2

// Size returns the terminal area a frame needs for the given board size and
// preview count. The side panel can be taller than a short board.
func Size(rows, cols, preview int) (width, height int) {
	width = boardX + cols*cellWidth + 2 + sideGap + 4*cellWidth + 2 + 12
	height = max(boardY+rows+2, panelHeight(preview))
	return width, height
}

func panelHeight(preview int) int {
	hud := len((&render.Frame{}).HUD())
	return boardY + 1 + preview*(boxHeight-1) + 2 + boxHeight + hud*hudLines
}

// Draw renders f and shows it.
func (r *Renderer) Draw(f *render.Frame) {
	r.screen.Clear()

	r.drawBoard(f)

	sideX := boardX + f.Cols*cellWidth + 2 + sideGap
	y := boardY
	r.text(sideX, y, "NEXT", render.Muted)
	y++
	for _, mini := range f.Next {
		r.drawMini(sideX, y, mini, false)
		y += boxHeight - 1
	}

	y++
	r.text(sideX, y, "HOLD", render.Muted)
	y++
	r.drawMini(sideX, y, f.Hold, f.HoldUsed)
	y += boxHeight

	for _, item := range f.HUD() {
		r.text(sideX, y, item[0], render.Muted)
		r.text(sideX, y+1, item[1], render.Text)
		y += hudLines
	}

	if f.Banner != "" {
		r.drawBanner(f)
	}

	r.screen.Show()
}

func (r *Renderer) drawBoard(f *render.Frame) {
	border := style(render.Muted, render.Background)
	width := f.Cols*cellWidth + 2

	for x := range width {
		r.screen.SetContent(boardX+x, boardY, '─', nil, border)
		r.screen.SetContent(boardX+x, boardY+f.Rows+1, '─', nil, border)
	}
	for y := range f.Rows + 2 {
		left, right := '│', '│'
		switch y {
		case 0:
			left, right = '┌', '┐'
		case f.Rows + 1:
			left, right = '└', '┘'
		}
		r.screen.SetContent(boardX, boardY+y, left, nil, border)
		r.screen.SetContent(boardX+width-1, boardY+y, right, nil, border)
	}

	for row, cells := range f.Board {
		for col, cell := range cells {
			r.drawCell(boardX+1+col*cellWidth, boardY+1+row, cell)
		}
	}
}

func (r *Renderer) drawCell(x, y int, cell render.Cell) {
	color := render.CellColor(cell)
	var glyph [cellWidth]rune

	switch cell.Kind {
	case render.CellEmpty:
		glyph = [cellWidth]rune{' ', '.'}
		st := style(render.GridLine, render.Background)
		for i, ch := range glyph {
			r.screen.SetContent(x+i, y, ch, nil, st)
		}
		return
	case render.CellGhost:
		glyph = [cellWidth]rune{'░', '░'}
	default:
		glyph = [cellWidth]rune{'█', '█'}
	}

	st := style(color, render.Background)
	for i, ch := range glyph {
		r.screen.SetContent(x+i, y, ch, nil, st)
	}
}

func (r *Renderer) drawMini(x, y int, mini render.Mini, dim bool) {
	color := render.PieceColor(mini.Piece)
	if dim {
		color = color.Blend(render.Background, 0.6)
	}
	st := style(color, render.Background)

	for row, cells := range mini.Cells {
		for col, filled := range cells {
			if !filled {
				continue
			}
			for i := range cellWidth {
				r.screen.SetContent(x+col*cellWidth+i, y+row, '█', nil, st)
			}
		}
	}
}

func (r *Renderer) drawBanner(f *render.Frame) {
	width := f.Cols*cellWidth + 2
	mid := boardY + f.Rows/2

	r.centered(width, mid, f.Banner, render.Text)
	if f.Hint != "" {
		r.centered(width, mid+1, f.Hint, render.Muted)
	}
}

func (r *Renderer) centered(width, y int, s string, fg render.RGB) {
	x := boardX + max(0, (width-len([]rune(s)))/2)
	r.text(x, y, s, fg)
}

func (r *Renderer) text(x, y int, s string, fg render.RGB) {
	st := style(fg, render.Background)
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, st)
	}
}
