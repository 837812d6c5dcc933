package ecs

// Status is the simulation state reported by a scene update.
type Status uint8

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
	StatusQuit
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the simulation.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

type SetupFrame struct {
	Commands *Commands
	Storage  *Storage
}

// EventFrame is handed to event systems, once per event. The scene does not interpret
// Event; systems assert the concrete event type they handle.
type EventFrame struct {
	Event    any
	Commands *Commands
	Storage  *Storage
}

type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage

	status Status
	reason string
}

// Terminate reports a terminal condition. Only the first report of a frame is kept; the
// rest of the pipeline still runs and the scene latches the status afterwards.
func (f *UpdateFrame) Terminate(status Status, reason string) {
	if f.status.Terminal() || !status.Terminal() {
		return
	}
	f.status = status
	f.reason = reason
}

// Status returns the status reported so far this frame.
func (f *UpdateFrame) Status() Status {
	return f.status
}

// RenderFrame is handed to render systems. Commands queued here are applied once the
// render pipeline has finished, never while it draws. Canvas is whatever draw target the
// caller passed to Scene.Render.
type RenderFrame struct {
	Canvas   any
	Commands *Commands
	Storage  *Storage
}
