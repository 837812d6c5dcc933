package game

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
)

// PlayerInputSystem steers player actors. A pressed direction key sets the velocity on
// its axis to the actor's speed; releasing any key stops the actor on both axes.
type PlayerInputSystem struct {
	Players ecs.Query[struct {
		*Position
		*Velocity
		*Actor
	}]
}

func (s *PlayerInputSystem) HandleEvent(frame *ecs.EventFrame) {
	ev, ok := frame.Event.(input.Event)
	if !ok {
		return
	}
	if ev.Kind == input.KeyDown && !isSteeringKey(ev.Key) {
		return
	}

	for p := range s.Players.Iter() {
		if !p.IsPlayer {
			continue
		}

		switch ev.Kind {
		case input.KeyDown:
			steer(ev.Key, p.Velocity, p.Actor)
		case input.KeyUp:
			*p.Velocity = Velocity{}
		}
	}
}

func isSteeringKey(k input.Key) bool {
	switch k {
	case input.KeyA, input.KeyD, input.KeyW, input.KeyS,
		input.KeyArrowLeft, input.KeyArrowRight, input.KeyArrowUp, input.KeyArrowDown:
		return true
	}
	return false
}

func steer(k input.Key, vel *Velocity, actor *Actor) {
	switch k {
	case input.KeyA, input.KeyArrowLeft:
		vel.X = -actor.SpeedX
	case input.KeyD, input.KeyArrowRight:
		vel.X = actor.SpeedX
	case input.KeyW, input.KeyArrowUp:
		vel.Y = -actor.SpeedY
	case input.KeyS, input.KeyArrowDown:
		vel.Y = actor.SpeedY
	}
}

// LabelToggleSystem flips name label visibility on Space.
type LabelToggleSystem struct {
	Settings ecs.Singleton[LabelSettings]
}

func (s *LabelToggleSystem) HandleEvent(frame *ecs.EventFrame) {
	if ev, ok := frame.Event.(input.Event); !ok || ev != input.Pressed(input.KeySpace) {
		return
	}
	settings := s.Settings.Get()
	settings.Visible = !settings.Visible
}
