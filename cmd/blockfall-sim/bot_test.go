package main

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// place applies a placement the same way the game would, without kicks.
func place(t *testing.T, g *tetris.Grid, p tetris.Piece, pl Placement) {
	t.Helper()
	for range pl.Rotations {
		p.Shape = tetris.Rotate(p.Shape, 1)
	}
	p.Col = pl.Col
	require.False(t, tetris.Collides(p, g, 0, 0))
	p.Row = tetris.LandingRow(p, g)
	g.Merge(p)
}

func TestBotLaysIFlat(t *testing.T) {
	bot := NewBot()
	g := tetris.NewGrid(20, 10)
	p := tetris.Piece{Shape: tetris.DefaultShapes()[tetris.I], Col: 3, Type: tetris.I}

	best, ok := bot.Best(p, g)
	require.True(t, ok)
	assert.Zero(t, best.Rotations%2, "horizontal")

	place(t, g, p, best)
	var filled int
	for col := range g.Cols() {
		if g.At(19, col) != tetris.Empty {
			filled++
		}
	}
	assert.Equal(t, 4, filled)
}

func TestBotTakesTetris(t *testing.T) {
	g, err := tetris.ParseGrid(`
..........
..........
IIIIIIIII.
OOOOOOOOO.
TTTTTTTTT.
ZZZZZZZZZ.
`)
	require.NoError(t, err)

	bot := NewBot()
	p := tetris.Piece{Shape: tetris.DefaultShapes()[tetris.I], Col: 3, Type: tetris.I}

	best, ok := bot.Best(p, g)
	require.True(t, ok)
	assert.Equal(t, 1, best.Rotations%2, "vertical")

	place(t, g, p, best)
	assert.Equal(t, []int{2, 3, 4, 5}, g.FullRows())
}

func TestBotNoPlacement(t *testing.T) {
	g, err := tetris.ParseGrid(`
####
####
`)
	require.NoError(t, err)

	p := tetris.Piece{Shape: tetris.DefaultShapes()[tetris.O], Type: tetris.O}
	_, ok := NewBot().Best(p, g)
	assert.False(t, ok)
}

func TestBotAct(t *testing.T) {
	game, err := tetris.NewGame(tetris.DefaultConfig(), tetris.WithSeed(3))
	require.NoError(t, err)

	bot := NewBot()
	assert.False(t, bot.Act(game), "not started")

	game.Start()
	require.True(t, bot.Act(game))
	assert.Equal(t, 1, game.Stats().Locks)
	assert.Equal(t, 1, game.Stats().HardDrops)
}
