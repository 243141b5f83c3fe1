package game

import (
	"fmt"

	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/input"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
	"github.com/plus3/adventurer/sprite"
)

// Character animation states. The values are the keys of the sprite-sheet
// clip map.
const (
	IdleLeft anim.StateKey = iota
	IdleRight
	RunningLeft
	RunningRight
)

// Character animation inputs.
const (
	InputLeft anim.InputKey = iota
	InputRight
	InputInterrupt
)

const (
	DefaultCharacterSpeed = 2.0
	idleFrames            = 4
	runningFrames         = 6
)

// CharacterStates lists every state of the character machine.
var CharacterStates = []anim.StateKey{IdleLeft, IdleRight, RunningLeft, RunningRight}

// CharacterInputs lists every input of the character machine.
var CharacterInputs = []anim.InputKey{InputLeft, InputRight, InputInterrupt}

// StateName returns the name of a character state, or State(n) for
// unknown keys.
func StateName(s anim.StateKey) string {
	switch s {
	case IdleLeft:
		return "IdleLeft"
	case IdleRight:
		return "IdleRight"
	case RunningLeft:
		return "RunningLeft"
	case RunningRight:
		return "RunningRight"
	}
	return fmt.Sprintf("State(%d)", s)
}

func mustCharacterState(s anim.StateKey) {
	if s > RunningRight {
		panic(fmt.Sprintf("game: unknown character state %d", s))
	}
}

// CharacterDelta is the character transition function: a direction always
// starts running that way, an interrupt stops in the current facing.
func CharacterDelta(s anim.StateKey, i anim.InputKey) anim.StateKey {
	mustCharacterState(s)
	switch i {
	case InputLeft:
		return RunningLeft
	case InputRight:
		return RunningRight
	case InputInterrupt:
		switch s {
		case RunningLeft:
			return IdleLeft
		case RunningRight:
			return IdleRight
		}
		return s
	}
	panic(fmt.Sprintf("game: unknown character input %d", i))
}

// CharacterFrames returns the frame count of a character state.
func CharacterFrames(s anim.StateKey) int {
	mustCharacterState(s)
	if s == RunningLeft || s == RunningRight {
		return runningFrames
	}
	return idleFrames
}

// CharacterVelocity is the body velocity commanded while in state s.
func CharacterVelocity(s anim.StateKey, speed float64) physics.Vec2 {
	mustCharacterState(s)
	switch s {
	case RunningLeft:
		return physics.Vec2{X: -speed}
	case RunningRight:
		return physics.Vec2{X: speed}
	}
	return physics.Vec2{}
}

// CharacterTick returns the per-tick function for a character running at
// speed: it commands the body velocity, then advances the frame.
func CharacterTick(speed float64) anim.TickFunc {
	return func(a *anim.Animation, h physics.BodyHandle, w *physics.World) {
		w.RigidBody(h).SetVelocity(CharacterVelocity(a.State, speed))
		a.Advance(CharacterFrames(a.State))
	}
}

// NewCharacterAnimation returns a character machine starting in initial.
func NewCharacterAnimation(initial anim.StateKey, speed float64) anim.Animation {
	mustCharacterState(initial)
	return anim.New(initial, CharacterDelta, CharacterTick(speed), CharacterFrames)
}

// ProcessCharacterInput routes one key event. Any release interrupts; a
// press of Left or Right starts running.
func ProcessCharacterInput(ev input.KeyEvent, a *anim.Animation) {
	switch {
	case ev.State == input.Released:
		a.Input(InputInterrupt)
	case ev.Is(input.KeyLeft):
		a.Input(InputLeft)
	case ev.Is(input.KeyRight):
		a.Input(InputRight)
	}
}

// CharacterRect is the world rectangle a clip of the given ratio occupies
// around pos: ratio wide, one unit tall, centered.
func CharacterRect(pos physics.Vec2, ratio float64) render.Rect {
	return render.RectXYWH(pos.X-ratio/2, pos.Y-0.5, ratio, 1)
}

// DrawCharacter paints the current frame of a.
func DrawCharacter(c render.Canvas, iso physics.Isometry, sheet *sprite.Sheet, a *anim.Animation, bounds bool) {
	clip := sheet.Clip(a.State, a.Ticks)
	dest := CharacterRect(iso.Translation, clip.WidthOverHeight)
	paint := render.Fill(render.Red)
	if bounds {
		render.Outline(c, dest, paint)
	}
	c.ImageRect(clip.Image, dest, paint)
}
