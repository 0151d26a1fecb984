// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and draws an overlay on top of the game each frame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	overlay *debugui.Overlay
}

// NewImguiBackend creates the window through the backend and disables the
// imgui.ini file.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend, overlay: overlay}
}

// Update runs one ImGui frame of the overlay. Call it from ebiten's Update.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.overlay.Render()
	b.EndFrame()
}

// WantsKeyboard reports whether the overlay is consuming keyboard input.
func (b *ImguiBackend) WantsKeyboard() bool {
	return b.overlay.InputState().WantCaptureKeyboard
}

// DrawOver draws the overlay onto screen.
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	b.Draw(screen)
}
