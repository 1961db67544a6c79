// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bulletfall/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Hidden items stay in the store but are not drawn.
type ImguiItem struct {
	Name   string
	Render func()
	Hidden bool
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every visible ImguiItem and refreshes
// ImguiInputState. Render functions run after the system, once commands are flushed.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.MustGet()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Hidden || item.Render == nil {
			continue
		}
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the component types an overlay store holds.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
