package render

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *tetris.Game {
	t.Helper()
	g, err := tetris.NewGame(tetris.DefaultConfig(), tetris.WithSeed(3))
	require.NoError(t, err)
	return g
}

func countKind(f *Frame, kind CellKind) int {
	n := 0
	for _, row := range f.Board {
		for _, c := range row {
			if c.Kind == kind {
				n++
			}
		}
	}
	return n
}

func TestTrim(t *testing.T) {
	shapes := tetris.DefaultShapes()

	i := Trim(tetris.I, shapes[tetris.I])
	assert.Equal(t, 4, i.Width())
	assert.Equal(t, 1, i.Height())

	o := Trim(tetris.O, shapes[tetris.O])
	assert.Equal(t, [][]bool{{true, true}, {true, true}}, o.Cells)

	tee := Trim(tetris.T, shapes[tetris.T])
	assert.Equal(t, [][]bool{{false, true, false}, {true, true, true}}, tee.Cells)

	empty := Trim(tetris.Z, tetris.NewShape("..", ".."))
	assert.Zero(t, empty.Width())
	assert.Zero(t, empty.Height())
}

func TestBuildIdle(t *testing.T) {
	g := newGame(t)

	f := Build(g.Snapshot(), g.Config().Shapes)

	assert.Equal(t, 20, f.Rows)
	assert.Equal(t, 10, f.Cols)
	assert.Equal(t, 200, countKind(f, CellEmpty))
	assert.Equal(t, "READY", f.Banner)
	assert.Equal(t, 1, f.Level, "levels are shown starting at one")
	assert.Empty(t, f.Next)
}

func TestBuildRunning(t *testing.T) {
	g := newGame(t)
	g.Start()

	f := Build(g.Snapshot(), g.Config().Shapes)

	assert.Equal(t, 4, countKind(f, CellActive))
	assert.Equal(t, 4, countKind(f, CellGhost))
	assert.Len(t, f.Next, 3)
	assert.Empty(t, f.Banner)

	p, _ := g.Active()
	for r, c := range p.Cells() {
		assert.Equal(t, Cell{Kind: CellActive, Piece: p.Type}, f.Board[r][c])
	}
}

func TestBuildGhostHiddenUnderPiece(t *testing.T) {
	g := newGame(t)
	g.Start()
	snap := g.Snapshot()
	snap.Active.Row = snap.GhostRow

	f := Build(snap, g.Config().Shapes)

	assert.Zero(t, countKind(f, CellGhost), "ghost overlapping the piece is not drawn")
	assert.Equal(t, 4, countKind(f, CellActive))
}

func TestBuildHold(t *testing.T) {
	g := newGame(t)
	g.Start()
	p, _ := g.Active()

	g.HandleInput(tetris.Hold)
	f := Build(g.Snapshot(), g.Config().Shapes)

	assert.Equal(t, p.Type, f.Hold.Piece)
	assert.Positive(t, f.Hold.Width())
	assert.True(t, f.HoldUsed)
}

func TestBuildClearingFlash(t *testing.T) {
	grid := tetris.NewGrid(4, 4)
	for c := range 4 {
		grid.Set(3, c, tetris.L)
	}
	grid.Set(2, 0, tetris.T)
	snap := tetris.Snapshot{
		Status:   tetris.StatusClearing,
		Grid:     grid,
		Clearing: tetris.ClearAnimation{Rows: []int{3}, Visible: true},
	}

	visible := Build(snap, tetris.DefaultShapes())
	assert.Equal(t, 4, countKind(visible, CellFlash))
	assert.Equal(t, 1, countKind(visible, CellLocked))

	snap.Clearing.Visible = false
	hidden := Build(snap, tetris.DefaultShapes())
	assert.Zero(t, countKind(hidden, CellFlash))
	for _, c := range hidden.Board[3] {
		assert.Equal(t, CellEmpty, c.Kind)
	}
	assert.Equal(t, 1, countKind(hidden, CellLocked))
}

func TestBuildBanners(t *testing.T) {
	g := newGame(t)
	g.Start()
	g.Pause()

	f := Build(g.Snapshot(), g.Config().Shapes)
	assert.Equal(t, "PAUSED", f.Banner)

	g.Resume()
	g.Tick(time.Millisecond)
	f = Build(g.Snapshot(), g.Config().Shapes)
	assert.Empty(t, f.Banner)
}

func TestHUD(t *testing.T) {
	f := &Frame{Score: 1234567, Lines: 12, Level: 2}

	assert.Equal(t, [][2]string{
		{"SCORE", "1,234,567"},
		{"LINES", "12"},
		{"LEVEL", "2"},
	}, f.HUD())
}

func TestFormatScore(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		100000:  "100,000",
		-12345:  "-12,345",
		1000000: "1,000,000",
	}
	for n, want := range tests {
		assert.Equal(t, want, formatScore(n))
	}
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, RGB{0x0e, 0xa5, 0xe9}, CellColor(Cell{Kind: CellLocked, Piece: tetris.I}))
	assert.Equal(t, Flash, CellColor(Cell{Kind: CellFlash, Piece: tetris.I}))
	assert.Equal(t, Background, CellColor(Cell{}))

	ghost := CellColor(Cell{Kind: CellGhost, Piece: tetris.Z})
	assert.NotEqual(t, Background, ghost)
	assert.NotEqual(t, Ghost, ghost)
	assert.Equal(t, Background, PieceColor(tetris.PieceType(99)))
}
