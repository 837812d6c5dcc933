package game

import (
	"github.com/plus3/arcade/ecs"
)

// MovementSystem integrates entities that move without a collider. Colliders are moved by
// the collision systems that resolve them.
type MovementSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
		Collider *Collider `ecs:"exclude"`
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Iter() {
		integrate(m.Position, m.Velocity, frame.DeltaTime)
	}
}

// WallBounceSystem reverses the velocity axis on which a body would leave the world
// during this frame.
type WallBounceSystem struct {
	Bounds ecs.Singleton[Bounds]
	Bodies ecs.Query[struct {
		*Position
		*Velocity
		*Sprite
	}]
}

func (s *WallBounceSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	for body := range s.Bodies.Iter() {
		next := predict(*body.Position, *body.Velocity, frame.DeltaTime)
		if next.X < 0 || next.X+body.Sprite.Width > bounds.Width {
			body.Velocity.X = -body.Velocity.X
		}
		if next.Y < 0 || next.Y+body.Sprite.Height > bounds.Height {
			body.Velocity.Y = -body.Velocity.Y
		}
	}
}

// PlayerWallClampSystem stops a player on the axis along which it would leave the world.
type PlayerWallClampSystem struct {
	Bounds  ecs.Singleton[Bounds]
	Players ecs.Query[struct {
		*Position
		*Velocity
		*Actor
		*Sprite
	}]
}

func (s *PlayerWallClampSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	for p := range s.Players.Iter() {
		if !p.IsPlayer {
			continue
		}
		next := predict(*p.Position, *p.Velocity, frame.DeltaTime)
		if next.X < 0 || next.X+p.Sprite.Width > bounds.Width {
			p.Velocity.X = 0
		}
		if next.Y < 0 || next.Y+p.Sprite.Height > bounds.Height {
			p.Velocity.Y = 0
		}
	}
}
