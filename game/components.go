// Package game holds the demo simulation: its components, the collision subsystem, the
// movement and rule systems, player input, render systems and scene assembly.
package game

import (
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/render"
)

type Position struct {
	X, Y int
}

type Velocity struct {
	X, Y int
}

// Collider takes part in pairwise, barrier and hostile collision.
// IsTriggered is cleared at the start of every update and set by collision evaluation only.
type Collider struct {
	Width, Height int
	IsTriggered   bool
	IsSolid       bool
}

// BarrierCollider is a one-sided reflecting obstacle: colliders hitting it have their
// vertical velocity reversed.
type BarrierCollider struct {
	Width, Height int
}

// HostileCollider marks an entity that colliders destroy on contact. IsDestroyed never
// goes back to false; a destroyed hostile stays in storage as a tombstone with a zero
// sprite extent.
type HostileCollider struct {
	Width, Height int
	IsDestroyed   bool
}

type Sprite struct {
	Width, Height int
	// Texture may be nil, in which case Color fills the rectangle.
	Texture render.Texture
	Color   render.Color
}

type Actor struct {
	IsPlayer bool
	SpeedX   int
	SpeedY   int
}

type Name struct {
	Value string
}

// Bounds is the world extent.
type Bounds struct {
	Width, Height int
}

// LabelSettings toggles name labels.
type LabelSettings struct {
	Visible bool
}

// Outcome records how the simulation ended, for presentation.
type Outcome struct {
	Status ecs.Status
	Reason string
}

// RegisterComponents registers every demo component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[BarrierCollider](registry)
	ecs.RegisterComponent[HostileCollider](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Actor](registry)
	ecs.RegisterComponent[Name](registry)
}

// integrate advances pos by vel over dt seconds, truncating toward zero.
func integrate(pos *Position, vel *Velocity, dt float64) {
	*pos = predict(*pos, *vel, dt)
}

func predict(pos Position, vel Velocity, dt float64) Position {
	return Position{
		X: int(float64(pos.X) + float64(vel.X)*dt),
		Y: int(float64(pos.Y) + float64(vel.Y)*dt),
	}
}
