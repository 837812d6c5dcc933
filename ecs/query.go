package ecs

import (
	"iter"
)

// Query wraps a View with a per-pass snapshot.
// Execute materialises the matching entities and their component pointers into fixed
// slices; iteration reads only that snapshot, so structural changes made afterwards
// (spawns, destroys, attach/detach) are not observed until the next Execute.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scene during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cacheValid = false
}

// Execute rebuilds the snapshot.
// Called automatically by the Scene immediately before the owning system runs.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.All() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// All returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) All() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("All")

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Iter returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.mustBeExecuted("Iter")

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities in the snapshot.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedEntities)
}

// At returns the i-th snapshot entry.
func (q *Query[T]) At(i int) (EntityId, T) {
	q.mustBeExecuted("At")
	return q.cachedEntities[i], q.cachedComponents[i]
}

// Entities returns the snapshot's entity list. The slice is reused by the next Execute.
func (q *Query[T]) Entities() []EntityId {
	q.mustBeExecuted("Entities")
	return q.cachedEntities
}
