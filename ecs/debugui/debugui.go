// Package debugui provides a Dear ImGui overlay for inspecting a running scene: entities,
// their components, component tables, ad hoc queries and per-system timings.
// Overlay state lives in the scene itself as components and singletons.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Launchers check it before forwarding mouse or keyboard input to the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay toggles every debug window at once.
type Overlay struct {
	Visible bool
}

// Selection is the entity and component table the tools currently focus on.
type Selection struct {
	Entity    ecs.EntityId
	Component string
}

// ImguiSystem records ImGui's input capture state and, while the overlay is visible,
// runs every ImguiItem. It must run inside an ImGui frame.
type ImguiSystem struct {
	Overlay    ecs.Singleton[Overlay]
	InputState ecs.Singleton[ImguiInputState]
	Items      ecs.Query[struct{ *ImguiItem }]
}

func (i *ImguiSystem) Render(frame *ecs.RenderFrame) {
	io := imgui.CurrentIO()
	i.InputState.Set(ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	})

	if overlay := i.Overlay.Get(); overlay == nil || !overlay.Visible {
		return
	}
	for item := range i.Items.Iter() {
		if item.Render != nil {
			item.Render()
		}
	}
}

// OverlayToggleSystem shows or hides the overlay on F1.
type OverlayToggleSystem struct {
	Overlay ecs.Singleton[Overlay]
}

func (s *OverlayToggleSystem) HandleEvent(frame *ecs.EventFrame) {
	if ev, ok := frame.Event.(input.Event); !ok || ev != input.Pressed(input.KeyF1) {
		return
	}
	overlay := s.Overlay.Get()
	overlay.Visible = !overlay.Visible
}
