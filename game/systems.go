package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/input"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
)

// DefaultRefreshRate is how many animation ticks run per second.
const DefaultRefreshRate = 7.5

// InputSystem drains the key queue into every keyboard-controlled
// animation.
type InputSystem struct {
	Queue      ecs.Singleton[input.Queue]
	Controlled ecs.Query[struct {
		Handler *KeyInputHandler
		Anim    *anim.Animation
	}]
}

// Execute routes every queued event to every controlled entity, in order.
func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	if queue == nil || queue.Len() == 0 {
		return
	}
	for _, ev := range queue.Drain() {
		for item := range s.Controlled.Iter() {
			item.Handler.Process(ev, item.Anim)
		}
	}
}

// AnimationSystem ticks every animation at RefreshRate, independently of
// the frame rate.
type AnimationSystem struct {
	RefreshRate float64

	Clock    ecs.Singleton[FrameClock]
	World    ecs.Singleton[physics.World]
	Animated ecs.Query[struct {
		Handle *physics.BodyHandle
		Anim   *anim.Animation
	}]
}

func (s *AnimationSystem) period() time.Duration {
	rate := s.RefreshRate
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// Execute ticks all animations when a refresh period has passed since the last tick.
func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.MustGet()
	if frame.Now.Sub(clock.LastAnimationTick) < s.period() {
		return
	}

	world := s.World.MustGet()
	for item := range s.Animated.Iter() {
		item.Anim.Tick(*item.Handle, world)
	}
	clock.LastAnimationTick = frame.Now
	clock.Ticks++
}

// PhysicsSystem integrates the world and publishes its proximity events.
type PhysicsSystem struct {
	Logger *log.Logger

	World  ecs.Singleton[physics.World]
	Events ecs.Singleton[ProximityEvents]
}

// Execute runs the configured number of sub-steps and records the proximity events.
func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	world := s.World.MustGet()
	for range world.NSteps() {
		world.Step()
	}

	events := world.DrainProximityEvents()
	s.Events.MustGet().Record(events)
	if s.Logger == nil {
		return
	}
	for _, ev := range events {
		s.Logger.Debug("proximity",
			"collider1", ev.Collider1,
			"collider2", ev.Collider2,
			"status", ev.NewStatus,
		)
	}
}

// RenderSystem clears the target canvas and draws every primitive, then
// every sprite, at its body's pose.
type RenderSystem struct {
	Target     ecs.Singleton[render.Target]
	World      ecs.Singleton[physics.World]
	Options    ecs.Singleton[RenderOptions]
	Primitives ecs.Query[struct {
		Handle    *physics.BodyHandle
		Primitive *Primitive
	}]
	Sprites ecs.Query[struct {
		Handle *physics.BodyHandle
		Sprite *Sprite
		Anim   *anim.Animation
	}]
}

// Execute draws the frame. It does nothing when no canvas is attached.
func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Target.Get()
	if target == nil || target.Canvas == nil {
		return
	}
	canvas := target.Canvas
	world := s.World.MustGet()

	var opts RenderOptions
	if o := s.Options.Get(); o != nil {
		opts = *o
	}
	background := opts.Background
	if background == nil {
		background = render.Black
	}
	canvas.Clear(background)

	for item := range s.Primitives.Iter() {
		item.Primitive.Draw(canvas, world.Isometry(*item.Handle))
	}
	for item := range s.Sprites.Iter() {
		item.Sprite.Draw(canvas, world.Isometry(*item.Handle), item.Sprite.Source, item.Anim, opts.Bounds)
	}
}
