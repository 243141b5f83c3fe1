// Package anim is a small state machine for frame-based animations. States
// and inputs are opaque integers; each entity kind supplies the functions
// that give them meaning.
package anim

import (
	"fmt"

	"github.com/plus3/adventurer/physics"
)

// StateKey identifies an animation state.
type StateKey uint32

// InputKey identifies an input delivered to the machine.
type InputKey uint32

// DeltaFunc is the transition function. It must be total over the states and
// inputs of its entity kind and panic on anything else.
type DeltaFunc func(state StateKey, input InputKey) StateKey

// TickFunc runs once per animation tick. It advances the frame counter and
// may push commands to the entity's body.
type TickFunc func(a *Animation, h physics.BodyHandle, w *physics.World)

// FramesFunc returns the number of frames of state.
type FramesFunc func(state StateKey) int

// Animation is the per-entity machine.
type Animation struct {
	State StateKey
	Ticks int

	delta   DeltaFunc
	perTick TickFunc
	frames  FramesFunc
}

// New returns a machine sitting in initial with zero ticks.
func New(initial StateKey, delta DeltaFunc, perTick TickFunc, frames FramesFunc) Animation {
	if delta == nil || perTick == nil || frames == nil {
		panic("anim: New requires delta, perTick and frames")
	}
	return Animation{State: initial, delta: delta, perTick: perTick, frames: frames}
}

// Input applies the transition for i and restarts the frame sequence.
func (a *Animation) Input(i InputKey) {
	a.State = a.delta(a.State, i)
	a.Ticks = 0
}

// Tick runs the per-tick function against the entity's body.
func (a *Animation) Tick(h physics.BodyHandle, w *physics.World) {
	a.perTick(a, h, w)
}

// Advance moves to the next frame, wrapping at n.
func (a *Animation) Advance(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("anim: state %d has %d frames", a.State, n))
	}
	a.Ticks = (a.Ticks + 1) % n
}

// Frames returns the frame count of the current state.
func (a *Animation) Frames() int {
	return a.frames(a.State)
}

// FramesOf returns the frame count of any state known to this machine.
func (a *Animation) FramesOf(s StateKey) int {
	return a.frames(s)
}
