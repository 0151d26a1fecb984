package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/render/gfx"
	"github.com/plus3/blockfall/tetris"
)

// App implements ebiten.Game. Inputs collected in Update are applied
// before the runner steps.
type App struct {
	game      *tetris.Game
	runner    *tetris.Runner
	renderer  *gfx.Renderer
	imgui     *debugui_ebiten.ImguiBackend
	overlay   *debugui.Overlay
	perf      *debugui.PerformanceStats
	inspector *debugui.GameInspector
	timer     *debugui.FrameTimer

	inputs []tetris.Input
	width  int
	height int
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.overlay.Toggle()
	}

	a.perf.Record(a.timer.GetDeltaTime())
	a.imgui.Update()

	a.inputs = a.inputs[:0]
	if !a.imgui.WantsKeyboard() {
		a.inputs = gfx.Collect(gfx.Pressed, a.inputs)
	}
	a.inputs = append(a.inputs, a.inspector.Drain()...)
	for _, in := range a.inputs {
		in.Apply(a.game)
	}

	a.runner.Step(time.Now())
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	frame := render.Build(a.game.Snapshot(), a.game.Config().Shapes)
	a.renderer.Draw(screen, frame)
	a.imgui.DrawOver(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.imgui.Layout(a.width, a.height)
	return a.width, a.height
}
