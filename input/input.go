// Package input carries keyboard events from the window host to the systems.
package input

import (
	"fmt"
	"slices"
)

// Key is a physical key the game cares about.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEscape
	KeyOther
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeySpace:
		return "Space"
	case KeyEscape:
		return "Escape"
	case KeyOther:
		return "Other"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// KeyState is whether a key went down or up.
type KeyState int

const (
	Pressed KeyState = iota
	Released
)

// String returns "Pressed" or "Released".
func (s KeyState) String() string {
	if s == Released {
		return "Released"
	}
	return "Pressed"
}

// KeyEvent is one key transition. Key is nil when the host could not
// identify the key.
type KeyEvent struct {
	Key   *Key
	State KeyState
}

// Press builds a Pressed event for k.
func Press(k Key) KeyEvent {
	return KeyEvent{Key: &k, State: Pressed}
}

// Release builds a Released event for k.
func Release(k Key) KeyEvent {
	return KeyEvent{Key: &k, State: Released}
}

// Is reports whether the event concerns key k.
func (e KeyEvent) Is(k Key) bool {
	return e.Key != nil && *e.Key == k
}

// String renders the event as "<key> <state>".
func (e KeyEvent) String() string {
	if e.Key == nil {
		return fmt.Sprintf("<unknown> %s", e.State)
	}
	return fmt.Sprintf("%s %s", *e.Key, e.State)
}

// Queue buffers key events between the host and the input system. It is
// stored as a singleton.
type Queue struct {
	events []KeyEvent
}

// Push appends events in arrival order.
func (q *Queue) Push(events ...KeyEvent) {
	q.events = append(q.events, events...)
}

// Drain returns the buffered events and empties the queue.
func (q *Queue) Drain() []KeyEvent {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Transitions builds the events of one host tick from the keys that went up,
// the keys that went down and every key still down at the end of the tick.
// A release interrupts whatever the key was doing, so when a tick carries a
// release each key that is still held is pressed again after it. Holding
// Right, pressing Left and letting go of Right therefore leaves Left in
// effect.
func Transitions(released, pressed, held []Key) []KeyEvent {
	events := make([]KeyEvent, 0, len(released)+len(pressed))
	for _, k := range released {
		events = append(events, Release(k))
	}
	if len(released) > 0 {
		for i, k := range held {
			if slices.Contains(pressed, k) || slices.Contains(held[:i], k) {
				continue
			}
			events = append(events, Press(k))
		}
	}
	for _, k := range pressed {
		events = append(events, Press(k))
	}
	return events
}
