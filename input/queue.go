package input

import (
	"iter"
	"slices"
	"sync"
)

// Queue is a Source fed by Push, typically from a backend's event goroutine.
// Poll takes the pending events when iteration starts, so events pushed during a
// frame are delivered on the next one.
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends events for the next Poll.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.pending = append(q.pending, events...)
	q.mu.Unlock()
}

// Len returns the number of undelivered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) Poll() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for i, ev := range batch {
			if !yield(ev) {
				// Undelivered events go back in front of anything pushed meanwhile.
				q.mu.Lock()
				q.pending = slices.Concat(batch[i+1:], q.pending)
				q.mu.Unlock()
				return
			}
		}
	}
}
