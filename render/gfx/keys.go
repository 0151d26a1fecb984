package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
)

// Auto-repeat timing for held movement keys, in ticks.
const (
	RepeatDelay    = 10
	RepeatInterval = 3
)

// KeyState reports how many ticks a key has been held; 1 means it was
// pressed this tick and 0 that it is up.
type KeyState func(ebiten.Key) int

// Pressed reads the live keyboard through inpututil.
func Pressed(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

type binding struct {
	keys   []ebiten.Key
	input  tetris.Input
	repeat bool
}

var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft}, input: tetris.MoveLeft, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowRight}, input: tetris.MoveRight, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowDown}, input: tetris.SoftDrop, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyX}, input: tetris.RotateCW},
	{keys: []ebiten.Key{ebiten.KeyZ}, input: tetris.RotateCCW},
	{keys: []ebiten.Key{ebiten.KeySpace}, input: tetris.HardDrop},
	{keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyC}, input: tetris.Hold},
	{keys: []ebiten.Key{ebiten.KeyP}, input: tetris.ControlTogglePause},
	{keys: []ebiten.Key{ebiten.KeyEnter}, input: tetris.ControlStart},
	{keys: []ebiten.Key{ebiten.KeyR}, input: tetris.ControlReset},
}

// fires reports whether a key held for d ticks triggers this tick.
func fires(d int, repeat bool) bool {
	if d == 1 {
		return true
	}
	return repeat && d > RepeatDelay && (d-RepeatDelay)%RepeatInterval == 0
}

// Collect appends the inputs triggered this tick to dst. Each binding fires
// at most once per tick however many of its keys are down.
func Collect(state KeyState, dst []tetris.Input) []tetris.Input {
	for _, b := range bindings {
		for _, key := range b.keys {
			if fires(state(key), b.repeat) {
				dst = append(dst, b.input)
				break
			}
		}
	}
	return dst
}
