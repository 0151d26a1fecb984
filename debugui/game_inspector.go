package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

// GameInspector shows the live game state and offers lifecycle buttons.
// Button presses are queued rather than applied so the client can feed them
// through the same path as keyboard input.
type GameInspector struct {
	pending []tetris.Input
}

func NewGameInspector() *GameInspector {
	return &GameInspector{}
}

// Request queues an input as if its button had been pressed.
func (gi *GameInspector) Request(in tetris.Input) {
	gi.pending = append(gi.pending, in)
}

// Drain returns and clears the queued inputs.
func (gi *GameInspector) Drain() []tetris.Input {
	out := gi.pending
	gi.pending = nil
	return out
}

// Summary returns the label/value lines shown at the top of the panel.
func Summary(snap tetris.Snapshot) [][2]string {
	active := "-"
	if snap.HasActive {
		active = fmt.Sprintf("%s @ %d,%d (ghost %d)", snap.Active.Type, snap.Active.Row, snap.Active.Col, snap.GhostRow)
	}

	preview := make([]string, len(snap.Preview))
	for i, t := range snap.Preview {
		preview[i] = t.String()
	}

	held := "-"
	if snap.Held != tetris.Empty {
		held = snap.Held.String()
		if snap.HoldUsed {
			held += " (used)"
		}
	}

	return [][2]string{
		{"Status", snap.Status.String()},
		{"Epoch", fmt.Sprintf("%d", snap.Epoch)},
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Lines", fmt.Sprintf("%d", snap.Lines)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Gravity", snap.Interval.String()},
		{"Active", active},
		{"Next", strings.Join(preview, " ")},
		{"Hold", held},
	}
}

func (gi *GameInspector) Render(g *tetris.Game) {
	if !imgui.BeginV("Game Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Start") {
		gi.Request(tetris.ControlStart)
	}
	imgui.SameLine()
	if imgui.Button("Pause/Resume") {
		gi.Request(tetris.ControlTogglePause)
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		gi.Request(tetris.ControlReset)
	}
	imgui.Separator()

	snap := g.Snapshot()
	for _, line := range Summary(snap) {
		imgui.Text(fmt.Sprintf("%s: %s", line[0], line[1]))
	}

	if snap.Clearing.Active() {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Clearing rows %v", snap.Clearing.Rows))
		imgui.Text(fmt.Sprintf("Remaining: %s  Flash: %v", snap.Clearing.Remaining, snap.Clearing.Visible))
	}

	if imgui.TreeNodeStr("Grid") {
		for _, line := range strings.Split(strings.TrimSuffix(snap.Grid.String(), "\n"), "\n") {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	imgui.End()
}
