// Package debugui provides Dear ImGui developer panels for a running game.
// Panels are plain render functions collected in an Overlay that the client
// calls once per frame between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Name   string
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders a list of items every frame and can be hidden as a whole.
type Overlay struct {
	items   []ImguiItem
	input   ImguiInputState
	Visible bool
}

// NewOverlay creates a visible overlay with the given items.
func NewOverlay(items ...ImguiItem) *Overlay {
	return &Overlay{items: items, Visible: true}
}

// Add appends an item.
func (o *Overlay) Add(item ImguiItem) {
	o.items = append(o.items, item)
}

// Items returns the registered item names in render order.
func (o *Overlay) Items() []string {
	names := make([]string, len(o.items))
	for i, item := range o.items {
		names[i] = item.Name
	}
	return names
}

// Toggle flips visibility.
func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// InputState returns the capture state sampled by the last Render.
func (o *Overlay) InputState() ImguiInputState {
	return o.input
}

// Render updates the input state and runs every item. It must be called
// inside an ImGui frame.
func (o *Overlay) Render() {
	if !o.Visible {
		o.input = ImguiInputState{}
		return
	}

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}
