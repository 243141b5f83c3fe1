// Package debugui draws Dear ImGui debug windows over the running game.
// Windows are entities holding an ImguiItem; the ImguiSystem queues their
// render functions so they run after every other system of the frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/adventurer/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui is consuming mouse or keyboard input.
// The host reads it to hold key events back from the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates the input state and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute refreshes the input state and queues every window render.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}
