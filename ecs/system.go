package ecs

// The four system capabilities. A system implements exactly the capability it is
// registered under; the Scene keeps one ordered list per capability.
//
// User-defined systems can include Query and Singleton fields, which the Scene
// initializes on registration, as well as custom state fields that persist between frames.

// SetupSystem runs once, before the first frame, in registration order.
type SetupSystem interface {
	Setup(frame *SetupFrame) error
}

// EventSystem runs once per pending input event, before the update pipeline of that frame.
type EventSystem interface {
	HandleEvent(frame *EventFrame)
}

// UpdateSystem runs once per frame in registration order. Later systems observe state
// already mutated by earlier ones in the same frame.
type UpdateSystem interface {
	Execute(frame *UpdateFrame)
}

// RenderSystem runs once per frame after all updates. It must treat component state as
// read-only and may only draw.
type RenderSystem interface {
	Render(frame *RenderFrame)
}
