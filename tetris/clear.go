package tetris

import (
	"slices"
	"time"
)

// ClearAnimation is the countdown state of a line clear in progress. Only
// the total countdown changes the grid; the flash countdown toggles Visible
// for renderers.
type ClearAnimation struct {
	Rows           []int
	Remaining      time.Duration
	FlashRemaining time.Duration
	Visible        bool

	flashInterval time.Duration
}

func newClearAnimation(rows []int, total, flash time.Duration) ClearAnimation {
	return ClearAnimation{
		Rows:           slices.Clone(rows),
		Remaining:      total,
		FlashRemaining: flash,
		Visible:        true,
		flashInterval:  flash,
	}
}

// Active reports whether rows are currently marked for clearing.
func (c ClearAnimation) Active() bool {
	return len(c.Rows) > 0
}

// Marked reports whether row is one of the rows being cleared.
func (c ClearAnimation) Marked(row int) bool {
	return slices.Contains(c.Rows, row)
}

// Advance counts both timers down by dt and reports whether the total clear
// duration has expired.
func (c *ClearAnimation) Advance(dt time.Duration) bool {
	if !c.Active() {
		return false
	}

	c.Remaining -= dt
	c.FlashRemaining -= dt
	for c.flashInterval > 0 && c.FlashRemaining <= 0 {
		c.Visible = !c.Visible
		c.FlashRemaining += c.flashInterval
	}

	return c.Remaining <= 0
}

func (c ClearAnimation) clone() ClearAnimation {
	c.Rows = slices.Clone(c.Rows)
	return c
}
