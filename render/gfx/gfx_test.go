package gfx

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestRendererLayout(t *testing.T) {
	r := NewRenderer(30)

	w, h := r.Size(20, 10)
	assert.Equal(t, margin+300+panelGap+150+margin, w)
	assert.Equal(t, margin+600+margin, h)

	assert.Equal(t, image.Rect(margin, margin, margin+30, margin+30), r.CellRect(0, 0))
	assert.Equal(t, image.Rect(margin+270, margin+570, margin+300, margin+600), r.CellRect(19, 9))

	assert.Equal(t, 4, NewRenderer(0).cell)
}

func held(durations map[ebiten.Key]int) KeyState {
	return func(k ebiten.Key) int { return durations[k] }
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name string
		keys map[ebiten.Key]int
		want []tetris.Input
	}{
		{"nothing", nil, nil},
		{"fresh press", map[ebiten.Key]int{ebiten.KeyArrowLeft: 1}, []tetris.Input{tetris.MoveLeft}},
		{"held before repeat", map[ebiten.Key]int{ebiten.KeyArrowLeft: RepeatDelay}, nil},
		{"first repeat", map[ebiten.Key]int{ebiten.KeyArrowDown: RepeatDelay + RepeatInterval}, []tetris.Input{tetris.SoftDrop}},
		{"rotate does not repeat", map[ebiten.Key]int{ebiten.KeyX: RepeatDelay + RepeatInterval}, nil},
		{"either shift holds", map[ebiten.Key]int{ebiten.KeyShiftRight: 1}, []tetris.Input{tetris.Hold}},
		{"one input per binding", map[ebiten.Key]int{ebiten.KeyArrowUp: 1, ebiten.KeyX: 1}, []tetris.Input{tetris.RotateCW}},
		{
			"binding order",
			map[ebiten.Key]int{ebiten.KeySpace: 1, ebiten.KeyArrowRight: 1, ebiten.KeyP: 1},
			[]tetris.Input{tetris.MoveRight, tetris.HardDrop, tetris.ControlTogglePause},
		},
		{"start and reset", map[ebiten.Key]int{ebiten.KeyEnter: 1, ebiten.KeyR: 1}, []tetris.Input{tetris.ControlStart, tetris.ControlReset}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collect(held(tt.keys), nil))
		})
	}
}

func TestRepeatCadence(t *testing.T) {
	var ticks []int
	for d := 1; d <= RepeatDelay+3*RepeatInterval; d++ {
		if fires(d, true) {
			ticks = append(ticks, d)
		}
	}

	assert.Equal(t, []int{1, RepeatDelay + RepeatInterval, RepeatDelay + 2*RepeatInterval, RepeatDelay + 3*RepeatInterval}, ticks)
}
