package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	w, h := Size(20, 10, 3)
	screen.SetSize(w, h)
	return screen
}

func screenRow(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := range width {
		mainc, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(mainc)
	}
	return sb.String()
}

func TestDrawRunningGame(t *testing.T) {
	screen := newScreen(t)
	g, err := tetris.NewGame(tetris.DefaultConfig(), tetris.WithSeed(9))
	require.NoError(t, err)
	g.Start()
	p, _ := g.Active()

	NewRenderer(screen).Draw(render.Build(g.Snapshot(), g.Config().Shapes))

	// top-left corner of the board border
	mainc, _, _, _ := screen.GetContent(boardX, boardY)
	assert.Equal(t, '┌', mainc)

	for row, col := range p.Cells() {
		x := boardX + 1 + col*cellWidth
		y := boardY + 1 + row
		mainc, _, style, _ := screen.GetContent(x, y)
		assert.Equal(t, '█', mainc, "active cell at %d,%d", row, col)

		fg, _, _ := style.Decompose()
		want := render.PieceColor(p.Type)
		assert.Equal(t, tcell.NewRGBColor(int32(want.R), int32(want.G), int32(want.B)), fg)
	}

	w, h := Size(20, 10, 3)
	var all strings.Builder
	for y := range h {
		all.WriteString(screenRow(screen, y, w))
	}
	assert.Contains(t, all.String(), "NEXT")
	assert.Contains(t, all.String(), "HOLD")
	assert.Contains(t, all.String(), "SCORE")
	assert.Contains(t, all.String(), "LEVEL")
}

func TestDrawBanner(t *testing.T) {
	screen := newScreen(t)
	g, err := tetris.NewGame(tetris.DefaultConfig())
	require.NoError(t, err)

	NewRenderer(screen).Draw(render.Build(g.Snapshot(), g.Config().Shapes))

	w, _ := Size(20, 10, 3)
	assert.Contains(t, screenRow(screen, boardY+10, w), "READY")
	assert.Contains(t, screenRow(screen, boardY+11, w), "Press Enter to start")
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want tetris.Input
		quit bool
	}{
		{"left", tcell.KeyLeft, 0, tetris.MoveLeft, false},
		{"right", tcell.KeyRight, 0, tetris.MoveRight, false},
		{"down", tcell.KeyDown, 0, tetris.SoftDrop, false},
		{"up", tcell.KeyUp, 0, tetris.RotateCW, false},
		{"x", tcell.KeyRune, 'x', tetris.RotateCW, false},
		{"Z", tcell.KeyRune, 'Z', tetris.RotateCCW, false},
		{"space", tcell.KeyRune, ' ', tetris.HardDrop, false},
		{"c", tcell.KeyRune, 'c', tetris.Hold, false},
		{"p", tcell.KeyRune, 'p', tetris.ControlTogglePause, false},
		{"r", tcell.KeyRune, 'R', tetris.ControlReset, false},
		{"enter", tcell.KeyEnter, 0, tetris.ControlStart, false},
		{"escape", tcell.KeyEscape, 0, nil, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, nil, true},
		{"q", tcell.KeyRune, 'q', nil, true},
		{"unbound rune", tcell.KeyRune, 'k', nil, false},
		{"unbound key", tcell.KeyF5, 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, quit := translate(tt.key, tt.ch)
			assert.Equal(t, tt.want, in)
			assert.Equal(t, tt.quit, quit)
		})
	}
}

func TestSizeFitsSidePanel(t *testing.T) {
	_, h := Size(20, 10, 3)
	assert.Equal(t, boardY+20+2, h, "default panel fits beside the board")

	cfg := tetris.DefaultConfig()
	cfg.Rows = 12
	cfg.Preview = 5
	g, err := tetris.NewGame(cfg, tetris.WithSeed(3))
	require.NoError(t, err)
	g.Start()

	w, h := Size(cfg.Rows, cfg.Cols, cfg.Preview)
	assert.Greater(t, h, boardY+cfg.Rows+2)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	NewRenderer(screen).Draw(render.Build(g.Snapshot(), g.Config().Shapes))

	assert.Contains(t, screenRow(screen, h-2, w), "LEVEL")
	assert.Contains(t, screenRow(screen, h-1, w), "1")
}
