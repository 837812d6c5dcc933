package game

import (
	"github.com/plus3/arcade/ecs"
)

// Cue is a presentation event worth a sound.
type Cue uint8

const (
	CueBounce Cue = iota + 1
	CueHostileDown
	CueWin
	CueLoss
)

func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueHostileDown:
		return "hostile-down"
	case CueWin:
		return "win"
	case CueLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Cues receives cues. Implementations must not block the frame.
type Cues interface {
	Play(cue Cue)
}

// CueSystem turns state changes into cues: a bounce when a collider becomes triggered, a
// hostile-down for every newly destroyed hostile and one final cue for the outcome.
// It only reads component state.
type CueSystem struct {
	Sink      Cues
	Outcome   ecs.Singleton[Outcome]
	Colliders ecs.Query[struct {
		ecs.EntityId
		*Collider
	}]
	Hostiles ecs.Query[struct {
		ecs.EntityId
		*HostileCollider
	}]

	triggered map[ecs.EntityId]bool
	downed    map[ecs.EntityId]bool
	finished  bool
}

func (s *CueSystem) Render(frame *ecs.RenderFrame) {
	if s.Sink == nil {
		return
	}
	if s.triggered == nil {
		s.triggered = make(map[ecs.EntityId]bool)
		s.downed = make(map[ecs.EntityId]bool)
	}

	for c := range s.Colliders.Iter() {
		if c.IsTriggered && !s.triggered[c.EntityId] {
			s.Sink.Play(CueBounce)
		}
		s.triggered[c.EntityId] = c.IsTriggered
	}

	for h := range s.Hostiles.Iter() {
		if h.IsDestroyed && !s.downed[h.EntityId] {
			s.downed[h.EntityId] = true
			s.Sink.Play(CueHostileDown)
		}
	}

	if outcome := s.Outcome.Get(); !s.finished && outcome != nil {
		switch outcome.Status {
		case ecs.StatusWon:
			s.finished = true
			s.Sink.Play(CueWin)
		case ecs.StatusLost:
			s.finished = true
			s.Sink.Play(CueLoss)
		}
	}
}
