// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components, resources and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	ecs.IsComponent
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a resource.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	ecs.IsResource
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem renders every ImguiItem and refreshes ImguiInputState.
// The host must call it between the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Res[ImguiInputState]
}

// Dependencies implements ecs.Dependent.
func (i *ImguiSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&i.Items, &i.InputState}
}

// Execute updates input state and runs all ImGui render functions.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) error {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			item.ImguiItem.Render()
		}
	}
	return nil
}
