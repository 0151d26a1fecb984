package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

// Translate maps a key event to a game input. quit is set for Escape,
// Ctrl+C and q. Keys with no binding return a nil input.
//
// Terminals do not report a bare Shift press, so hold is only on C here.
func Translate(ev *tcell.EventKey) (in tetris.Input, quit bool) {
	return translate(ev.Key(), ev.Rune())
}

func translate(key tcell.Key, ch rune) (tetris.Input, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyLeft:
		return tetris.MoveLeft, false
	case tcell.KeyRight:
		return tetris.MoveRight, false
	case tcell.KeyDown:
		return tetris.SoftDrop, false
	case tcell.KeyUp:
		return tetris.RotateCW, false
	case tcell.KeyEnter:
		return tetris.ControlStart, false
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch unicode.ToLower(ch) {
	case 'q':
		return nil, true
	case ' ':
		return tetris.HardDrop, false
	case 'x':
		return tetris.RotateCW, false
	case 'z':
		return tetris.RotateCCW, false
	case 'c':
		return tetris.Hold, false
	case 'p':
		return tetris.ControlTogglePause, false
	case 'r':
		return tetris.ControlReset, false
	}
	return nil, false
}
