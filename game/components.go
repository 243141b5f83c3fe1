// Package game holds the adventurer level: its components, the character
// animation, the systems run each frame and the level builder.
package game

import (
	"image/color"
	"time"

	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/input"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
	"github.com/plus3/adventurer/sprite"
)

// PrimitiveDrawFunc paints a body-attached shape at its current pose.
type PrimitiveDrawFunc func(c render.Canvas, iso physics.Isometry)

// Primitive is drawn with canvas primitives (circles, lines).
type Primitive struct {
	Draw PrimitiveDrawFunc
}

// SpriteDrawFunc paints the current animation frame of an entity.
type SpriteDrawFunc func(c render.Canvas, iso physics.Isometry, sheet *sprite.Sheet, a *anim.Animation, bounds bool)

// Sprite is drawn from a sprite sheet indexed by animation state.
type Sprite struct {
	Draw   SpriteDrawFunc
	Source *sprite.Sheet
}

// ProcessFunc turns a key event into animation inputs.
type ProcessFunc func(ev input.KeyEvent, a *anim.Animation)

// KeyInputHandler marks the entity under keyboard control.
type KeyInputHandler struct {
	Process ProcessFunc
}

// FrameClock records when animations last ticked.
type FrameClock struct {
	LastAnimationTick time.Time
	Ticks             uint64
}

const proximityHistory = 64

// ProximityEvents exposes the proximity events of the physics world.
type ProximityEvents struct {
	// Frame holds the events drained during the current frame.
	Frame []physics.ProximityEvent
	// Recent keeps the latest events across frames, oldest first.
	Recent []physics.ProximityEvent
	Total  uint64
}

// Record replaces the current frame's events and appends them to the history.
func (p *ProximityEvents) Record(events []physics.ProximityEvent) {
	p.Frame = events
	p.Total += uint64(len(events))
	p.Recent = append(p.Recent, events...)
	if over := len(p.Recent) - proximityHistory; over > 0 {
		p.Recent = append(p.Recent[:0], p.Recent[over:]...)
	}
}

// RenderOptions tweak how the render system paints a frame.
type RenderOptions struct {
	Background color.Color
	// Bounds outlines sprite rectangles.
	Bounds bool
}
