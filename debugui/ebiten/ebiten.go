// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	eb "github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// It satisfies the overlay interface of the game host.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// BeginFrame starts an ImGui frame.
func (b *ImguiBackend) BeginFrame() {
	b.EbitenBackend.BeginFrame()
}

// EndFrame finishes the ImGui frame.
func (b *ImguiBackend) EndFrame() {
	b.EbitenBackend.EndFrame()
}

// Render draws the finished ImGui frame onto screen.
func (b *ImguiBackend) Render(screen *eb.Image) {
	b.EbitenBackend.Draw(screen)
}

// Resize tells ImGui the window size.
func (b *ImguiBackend) Resize(width, height int) {
	b.EbitenBackend.Layout(width, height)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func (b *ImguiBackend) WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
