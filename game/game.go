package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/input"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
	"github.com/plus3/adventurer/sprite"
)

// Options configures New.
type Options struct {
	Physics     physics.Config
	RefreshRate float64
	Speed       float64
	Sheet       *sprite.Sheet
	Bounds      bool
	Background  color.Color
	Logger      *log.Logger
	// Clock drives frame timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Game bundles the storage, its singletons and the frame scheduler.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	World     *physics.World
	Level     *Level
	Input     *input.Queue
	Target    *render.Target
	Clock     *FrameClock
	Proximity *ProximityEvents

	logger *log.Logger
}

// NewRegistry registers every component the game spawns.
func NewRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[physics.BodyHandle](r)
	ecs.RegisterComponent[Primitive](r)
	ecs.RegisterComponent[Sprite](r)
	ecs.RegisterComponent[KeyInputHandler](r)
	ecs.RegisterComponent[anim.Animation](r)
	return r
}

// New builds the world, loads the level and registers the systems in frame
// order: input, animation, physics, render.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	storage := ecs.NewStorage(NewRegistry())
	g := &Game{
		Storage:   storage,
		World:     physics.NewWorld(opts.Physics),
		Input:     &input.Queue{},
		Target:    &render.Target{},
		Clock:     &FrameClock{LastAnimationTick: clock()},
		Proximity: &ProximityEvents{},
		logger:    logger,
	}
	storage.AddSingleton(g.World)
	storage.AddSingleton(g.Input)
	storage.AddSingleton(g.Target)
	storage.AddSingleton(g.Clock)
	storage.AddSingleton(g.Proximity)
	storage.AddSingleton(&RenderOptions{Background: opts.Background, Bounds: opts.Bounds})

	level, err := LoadLevel(storage, g.World, LevelOptions{
		Sheet:  opts.Sheet,
		Speed:  opts.Speed,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g.Level = level

	g.Scheduler = ecs.NewScheduler(storage)
	g.Scheduler.SetClock(clock)
	g.Scheduler.Register(&InputSystem{})
	g.Scheduler.Register(&AnimationSystem{RefreshRate: opts.RefreshRate})
	g.Scheduler.Register(&PhysicsSystem{Logger: logger})
	g.Scheduler.Register(&RenderSystem{})

	return g, nil
}

// PushKeys queues key events for the next frame.
func (g *Game) PushKeys(events ...input.KeyEvent) {
	g.Input.Push(events...)
}

// Frame runs one scheduler frame drawing into canvas. A nil canvas skips
// rendering.
func (g *Game) Frame(canvas render.Canvas, dt float64) {
	g.Target.Canvas = canvas
	g.Scheduler.Once(dt)
	g.Target.Canvas = nil
}

// Player returns the animation of the keyboard-controlled entity, or nil
// once the level is closed.
func (g *Game) Player() *anim.Animation {
	if g.Level == nil {
		return nil
	}
	return ecs.ReadComponent[anim.Animation](g.Storage, g.Level.Player)
}

// Close tears the level down.
func (g *Game) Close() {
	if g.Level == nil {
		return
	}
	g.Level.Teardown(g.Storage, g.World)
	g.logger.Info("level closed", "name", g.Level.Name)
	g.Level = nil
}
