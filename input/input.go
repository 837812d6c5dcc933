// Package input defines the discrete input events fed into a scene and the
// Source collaborator that produces them once per frame.
package input

import (
	"fmt"
	"iter"
)

// Kind classifies an input event.
type Kind uint8

const (
	KeyDown Kind = iota + 1
	KeyUp
	Quit
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Key identifies a keyboard key independently of any windowing backend.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyW
	KeyS
	KeyQ
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeySpace
	KeyEscape
	KeyF1
)

var keyNames = [...]string{
	KeyUnknown:    "Unknown",
	KeyA:          "A",
	KeyD:          "D",
	KeyW:          "W",
	KeyS:          "S",
	KeyQ:          "Q",
	KeyArrowLeft:  "Left",
	KeyArrowRight: "Right",
	KeyArrowUp:    "Up",
	KeyArrowDown:  "Down",
	KeySpace:      "Space",
	KeyEscape:     "Escape",
	KeyF1:         "F1",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// Event is a single discrete input occurrence.
type Event struct {
	Kind Kind
	Key  Key
}

func (e Event) String() string {
	if e.Kind == Quit {
		return "Quit"
	}
	return e.Kind.String() + "(" + e.Key.String() + ")"
}

// Pressed builds a KeyDown event.
func Pressed(k Key) Event { return Event{Kind: KeyDown, Key: k} }

// Released builds a KeyUp event.
func Released(k Key) Event { return Event{Kind: KeyUp, Key: k} }

// Source produces the events pending for the current frame. The returned sequence is
// finite and consumes what it yields: ranging over it a second time yields only events
// that arrived in between.
type Source interface {
	Poll() iter.Seq[Event]
}
