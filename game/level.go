package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/sprite"
)

// LevelOptions configures LoadLevel.
type LevelOptions struct {
	Name   string
	Sheet  *sprite.Sheet
	Speed  float64
	Logger *log.Logger
}

// Level is a populated test level: a ground plane, a row of ball sensors
// and the player character.
type Level struct {
	Name string

	Ground    physics.BodyHandle
	Balls     []physics.BodyHandle
	Character physics.BodyHandle
	// Player is the keyboard-controlled entity.
	Player ecs.EntityId

	entities []ecs.EntityId
}

// LoadLevel inserts the level's bodies into world and spawns their entities
// into storage. The sheet must cover every character state.
func LoadLevel(storage *ecs.Storage, world *physics.World, opts LevelOptions) (*Level, error) {
	if opts.Sheet == nil {
		return nil, fmt.Errorf("load level: no character sprite sheet")
	}
	if err := opts.Sheet.Validate(CharacterStates, CharacterFrames); err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	if opts.Name == "" {
		opts.Name = "test"
	}
	if opts.Speed <= 0 {
		opts.Speed = DefaultCharacterSpeed
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("loading level", "name", opts.Name)

	l := &Level{Name: opts.Name}

	l.Ground = world.InsertGround()
	world.InsertCollider(
		physics.Cuboid{HalfExtents: physics.Vec2{X: GroundHalfExtentWidth, Y: GroundThickness}},
		l.Ground,
		physics.ColliderDesc{Translation: physics.Vec2{Y: -GroundThickness}},
	)
	l.spawn(storage, l.Ground, Primitive{Draw: DrawGround})

	for _, pos := range BallPositions(BallCount, BallRadius) {
		h := world.InsertBody(physics.BodyDesc{Translation: pos, Status: physics.Static})
		world.InsertCollider(physics.Ball{Radius: BallRadius}, h, physics.ColliderDesc{Density: 1, Sensor: true})
		l.Balls = append(l.Balls, h)
		l.spawn(storage, h, Primitive{Draw: DrawBall})
	}

	ratio := opts.Sheet.Clip(IdleLeft, 0).WidthOverHeight
	l.Character = world.InsertBody(physics.BodyDesc{
		Translation:   physics.Vec2{Y: 1},
		Status:        physics.Dynamic,
		FixedRotation: true,
	})
	world.InsertCollider(
		physics.Cuboid{HalfExtents: physics.Vec2{X: ratio / 2, Y: 0.5}},
		l.Character,
		physics.ColliderDesc{Density: 1},
	)
	l.Player = l.spawn(storage,
		l.Character,
		KeyInputHandler{Process: ProcessCharacterInput},
		NewCharacterAnimation(IdleLeft, opts.Speed),
		Sprite{Draw: DrawCharacter, Source: opts.Sheet},
	)

	logger.Debug("level ready",
		"bodies", world.BodyCount(),
		"colliders", world.ColliderCount(),
		"entities", len(l.entities),
	)
	return l, nil
}

func (l *Level) spawn(storage *ecs.Storage, components ...any) ecs.EntityId {
	id := storage.Spawn(components...)
	l.entities = append(l.entities, id)
	return id
}

// Entities returns the entities spawned by the level, in spawn order.
func (l *Level) Entities() []ecs.EntityId {
	return append([]ecs.EntityId(nil), l.entities...)
}

// Bodies returns every body the level inserted.
func (l *Level) Bodies() []physics.BodyHandle {
	out := []physics.BodyHandle{l.Ground}
	out = append(out, l.Balls...)
	return append(out, l.Character)
}

// Teardown deletes the level's entities and destroys its bodies.
func (l *Level) Teardown(storage *ecs.Storage, world *physics.World) {
	for _, id := range l.entities {
		storage.Delete(id)
	}
	l.entities = nil
	for _, h := range l.Bodies() {
		world.RemoveBody(h)
	}
}
