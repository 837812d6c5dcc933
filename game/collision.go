package game

import (
	"github.com/plus3/arcade/ecs"
)

// Box is an axis-aligned bounding box.
type Box struct {
	X, Y, Width, Height int
}

func boxAt(pos Position, width, height int) Box {
	return Box{X: pos.X, Y: pos.Y, Width: width, Height: height}
}

// Overlaps reports whether a and b intersect. The test is strict: boxes sharing only an
// edge or a corner do not overlap.
func Overlaps(a, b Box) bool {
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

type mover struct {
	*Position
	*Velocity
	*Collider
}

func (m mover) box() Box {
	return boxAt(*m.Position, m.Collider.Width, m.Collider.Height)
}

// ColliderResetSystem clears every trigger flag. It must run before any collision system.
type ColliderResetSystem struct {
	Colliders ecs.Query[struct{ *Collider }]
}

func (s *ColliderResetSystem) Execute(frame *ecs.UpdateFrame) {
	for c := range s.Colliders.Iter() {
		c.IsTriggered = false
	}
}

// PairwiseCollisionSystem resolves collider/collider overlaps over every unordered pair,
// then integrates each collider with its resolved velocity.
//
// Entity i is integrated as soon as all pairs (i, j>i) were evaluated, so a later pair
// sees positions and velocities already changed by earlier ones. Resolution is therefore
// order dependent; the order is the snapshot order of the query.
type PairwiseCollisionSystem struct {
	Movers ecs.Query[mover]
}

func (s *PairwiseCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	n := s.Movers.Len()
	for i := 0; i < n; i++ {
		_, a := s.Movers.At(i)
		for j := i + 1; j < n; j++ {
			_, b := s.Movers.At(j)
			if !Overlaps(a.box(), b.box()) {
				continue
			}
			resolvePair(a, b)
			a.Collider.IsTriggered = true
			b.Collider.IsTriggered = true
		}
		integrate(a.Position, a.Velocity, frame.DeltaTime)
	}
}

// resolvePair applies the velocity rule for an overlapping pair:
// two solids exchange velocities, a solid against a non-solid reverses, two non-solids
// are left alone.
func resolvePair(a, b mover) {
	switch {
	case a.IsSolid && b.IsSolid:
		*a.Velocity, *b.Velocity = *b.Velocity, *a.Velocity
	case a.IsSolid:
		reverse(a.Velocity)
	case b.IsSolid:
		reverse(b.Velocity)
	}
}

func reverse(v *Velocity) {
	v.X, v.Y = -v.X, -v.Y
}

// BarrierCollisionSystem bounces colliders off barriers vertically, then integrates them.
// A collider hits a barrier when either its current box or the box it would occupy after
// this frame overlaps the barrier.
type BarrierCollisionSystem struct {
	Movers   ecs.Query[mover]
	Barriers ecs.Query[struct {
		*Position
		*BarrierCollider
	}]
}

func (s *BarrierCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	for m := range s.Movers.Iter() {
		current := m.box()
		next := boxAt(predict(*m.Position, *m.Velocity, dt), m.Collider.Width, m.Collider.Height)

		for barrier := range s.Barriers.Iter() {
			b := boxAt(*barrier.Position, barrier.BarrierCollider.Width, barrier.BarrierCollider.Height)
			if Overlaps(current, b) || Overlaps(next, b) {
				m.Velocity.Y = -m.Velocity.Y
				m.Collider.IsTriggered = true
			}
		}
		integrate(m.Position, m.Velocity, dt)
	}
}

type hostile struct {
	ecs.EntityId
	*Position
	*HostileCollider
	Sprite *Sprite `ecs:"optional"`
}

// HostileCollisionSystem destroys live hostiles touched by a collider. Hits are collected
// during the scan and tombstoned afterwards, so the scan never observes its own writes.
// Collider velocities are left untouched.
type HostileCollisionSystem struct {
	Movers   ecs.Query[mover]
	Hostiles ecs.Query[hostile]

	hits []hostile
}

func (s *HostileCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	s.hits = s.hits[:0]

	for m := range s.Movers.Iter() {
		box := m.box()
		for h := range s.Hostiles.Iter() {
			if h.IsDestroyed {
				continue
			}
			if Overlaps(box, boxAt(*h.Position, h.HostileCollider.Width, h.HostileCollider.Height)) {
				m.Collider.IsTriggered = true
				s.hits = append(s.hits, h)
			}
		}
	}

	for _, h := range s.hits {
		h.IsDestroyed = true
		if h.Sprite != nil {
			h.Sprite.Width = 0
			h.Sprite.Height = 0
		}
	}
}
