package game

import (
	"fmt"

	"github.com/plus3/arcade/ecs"
)

// LossCheckSystem ends the simulation as lost when a collider is about to cross the
// bottom of the world.
type LossCheckSystem struct {
	Bounds  ecs.Singleton[Bounds]
	Outcome ecs.Singleton[Outcome]
	Bodies  ecs.Query[struct {
		*Position
		*Velocity
		*Sprite
		*Collider
		Name *Name `ecs:"optional"`
	}]
}

func (s *LossCheckSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	for body := range s.Bodies.Iter() {
		next := predict(*body.Position, *body.Velocity, frame.DeltaTime)
		if next.Y+body.Sprite.Height <= bounds.Height {
			continue
		}

		label := "collider"
		if body.Name != nil {
			label = body.Name.Value
		}
		reason := fmt.Sprintf("%s fell out of the world at x=%d", label, body.Position.X)
		s.Outcome.Set(Outcome{Status: ecs.StatusLost, Reason: reason})
		frame.Terminate(ecs.StatusLost, reason)
		return
	}
}

// WinCheckSystem ends the simulation as won once every hostile is destroyed. A scene
// without hostiles never wins.
type WinCheckSystem struct {
	Outcome  ecs.Singleton[Outcome]
	Hostiles ecs.Query[struct{ *HostileCollider }]

	reported bool
}

func (s *WinCheckSystem) Execute(frame *ecs.UpdateFrame) {
	if s.reported || s.Hostiles.Len() == 0 {
		return
	}

	for h := range s.Hostiles.Iter() {
		if !h.IsDestroyed {
			return
		}
	}

	s.reported = true
	reason := fmt.Sprintf("all %d hostiles destroyed", s.Hostiles.Len())
	if frame.Status().Terminal() {
		return
	}
	s.Outcome.Set(Outcome{Status: ecs.StatusWon, Reason: reason})
	frame.Terminate(ecs.StatusWon, reason)
}
