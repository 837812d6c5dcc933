package main

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/arcade/frame"
	"github.com/plus3/arcade/input"
)

// translateKey maps a terminal key event to a game key.
func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyArrowLeft, true
	case tcell.KeyRight:
		return input.KeyArrowRight, true
	case tcell.KeyUp:
		return input.KeyArrowUp, true
	case tcell.KeyDown:
		return input.KeyArrowDown, true
	case tcell.KeyF1:
		return input.KeyF1, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return input.KeyA, true
		case 'd', 'D':
			return input.KeyD, true
		case 'w', 'W':
			return input.KeyW, true
		case 's', 'S':
			return input.KeyS, true
		case ' ':
			return input.KeySpace, true
		}
	}
	return input.KeyUnknown, false
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// keyState turns the terminal's press-and-repeat key stream into down/up pairs. Terminals
// never report releases, so a key counts as held until no repeat arrived for the hold
// duration. It is the driver's input source.
type keyState struct {
	mu     sync.Mutex
	events *input.Queue
	clock  frame.Clock
	hold   time.Duration
	held   map[input.Key]time.Time
	quit   chan struct{}
}

func newKeyState(events *input.Queue, clock frame.Clock, hold time.Duration) *keyState {
	return &keyState{
		events: events,
		clock:  clock,
		hold:   hold,
		held:   make(map[input.Key]time.Time),
		quit:   make(chan struct{}, 1),
	}
}

// Handle records one terminal key event. Safe to call from the polling goroutine.
func (k *keyState) Handle(ev *tcell.EventKey) {
	if isQuitKey(ev) {
		k.events.Push(input.Event{Kind: input.Quit})
		select {
		case k.quit <- struct{}{}:
		default:
		}
		return
	}

	key, ok := translateKey(ev)
	if !ok {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, down := k.held[key]; !down {
		k.events.Push(input.Pressed(key))
	}
	k.held[key] = k.clock.Now()
}

// Quit is signalled when a quit key is pressed.
func (k *keyState) Quit() <-chan struct{} {
	return k.quit
}

// Poll releases keys whose hold expired, then drains the queue.
func (k *keyState) Poll() iter.Seq[input.Event] {
	k.releaseExpired()
	return k.events.Poll()
}

func (k *keyState) releaseExpired() {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.clock.Now()
	var expired []input.Key
	for key, last := range k.held {
		if now.Sub(last) >= k.hold {
			expired = append(expired, key)
		}
	}
	slices.Sort(expired)
	for _, key := range expired {
		delete(k.held, key)
		k.events.Push(input.Released(key))
	}
}
