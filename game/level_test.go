package game_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plus3/adventurer/anim"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestLevel(t *testing.T, sheet *sprite.Sheet) (*ecs.Storage, *physics.World, *game.Level) {
	t.Helper()
	storage := ecs.NewStorage(game.NewRegistry())
	world := physics.NewWorld(physics.DefaultConfig())
	level, err := game.LoadLevel(storage, world, game.LevelOptions{Sheet: sheet, Logger: quietLogger()})
	require.NoError(t, err)
	return storage, world, level
}

func TestLoadLevelLayout(t *testing.T) {
	storage, world, level := loadTestLevel(t, testSheet(t))

	assert.Equal(t, "test", level.Name)
	assert.True(t, world.IsGround(level.Ground))
	require.Len(t, level.Balls, game.BallCount)
	assert.Equal(t, 1+game.BallCount+1, world.BodyCount())
	assert.Equal(t, 1+game.BallCount+1, world.ColliderCount())
	assert.Len(t, level.Entities(), 1+game.BallCount+1)

	for i, pos := range game.BallPositions(game.BallCount, game.BallRadius) {
		h := level.Balls[i]
		assert.Equal(t, physics.Static, world.Status(h))
		assert.InDelta(t, pos.X, world.Isometry(h).Translation.X, 1e-9)
	}

	assert.Equal(t, physics.Dynamic, world.Status(level.Character))
	assert.Equal(t, physics.Vec2{Y: 1}, world.Isometry(level.Character).Translation)

	player := level.Player
	assert.True(t, storage.HasComponent(player, reflect.TypeFor[game.KeyInputHandler]()))
	assert.True(t, storage.HasComponent(player, reflect.TypeFor[game.Sprite]()))
	a := ecs.ReadComponent[anim.Animation](storage, player)
	require.NotNil(t, a)
	assert.Equal(t, game.IdleLeft, a.State)
	assert.Equal(t, level.Character, *ecs.ReadComponent[physics.BodyHandle](storage, player))
}

func TestLoadLevelRejectsIncompleteSheet(t *testing.T) {
	storage := ecs.NewStorage(game.NewRegistry())
	world := physics.NewWorld(physics.DefaultConfig())

	full := testSheet(t)
	clips := map[anim.StateKey][]*sprite.Clip{}
	for _, s := range []anim.StateKey{game.IdleLeft, game.IdleRight, game.RunningLeft} {
		for i := range full.Frames(s) {
			clips[s] = append(clips[s], full.Clip(s, i))
		}
	}

	_, err := game.LoadLevel(storage, world, game.LevelOptions{Sheet: sprite.NewSheet(clips), Logger: quietLogger()})
	assert.ErrorIs(t, err, sprite.ErrInvalidSheet)
	assert.Equal(t, 0, world.BodyCount())

	_, err = game.LoadLevel(storage, world, game.LevelOptions{})
	assert.Error(t, err)
}

func TestTeardownRemovesBodiesAndEntities(t *testing.T) {
	storage, world, level := loadTestLevel(t, testSheet(t))
	entities := level.Entities()

	level.Teardown(storage, world)

	assert.Equal(t, 0, world.BodyCount())
	assert.Equal(t, 0, world.ColliderCount())
	for _, id := range entities {
		assert.False(t, storage.Alive(id))
	}
	assert.Empty(t, level.Entities())
}

func TestBundledSheetCoversReachableStates(t *testing.T) {
	sheet, err := sprite.FromConfig(filepath.Join("..", "res", "assets", "adventurer_sprite.yaml"))
	require.NoError(t, err)

	// walk every state reachable from the initial one
	reachable := map[anim.StateKey]bool{game.IdleLeft: true}
	frontier := []anim.StateKey{game.IdleLeft}
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]
		for _, i := range game.CharacterInputs {
			next := game.CharacterDelta(s, i)
			if !reachable[next] {
				reachable[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	assert.Len(t, reachable, len(game.CharacterStates))

	for s := range reachable {
		for i := range game.CharacterFrames(s) {
			assert.NotPanics(t, func() { sheet.Clip(s, i) }, "%s frame %d", game.StateName(s), i)
		}
	}

	_, world, level := loadTestLevel(t, sheet)
	assert.True(t, world.Contains(level.Character))
}
