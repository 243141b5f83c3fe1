package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/adventurer/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("hero"))
	assert.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := storage.GetComponent(id, reflect.TypeFor[Name]())
	require.NotNil(t, name)
	assert.Equal(t, Name("hero"), *name.(*Name))

	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Velocity]()))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestQueryRowsSurviveColumnGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	query.Execute()

	// grow both columns over several blocks while the cache is held
	for i := 0; i < 300; i++ {
		storage.Spawn(Position{}, Velocity{})
	}
	for item := range query.Iter() {
		item.Position.X = 7
		item.Velocity.DX = 8
	}

	query.Execute()
	first := 0
	for item := range query.Iter() {
		if item.Position.X == 7 && item.Velocity.DX == 8 {
			first++
		}
	}
	assert.Equal(t, 1, first)
}

func TestArchetypeSpawnMissingComponentKeepsColumnsAligned(t *testing.T) {
	registry := newTestRegistry()
	archetype := ecs.NewArchetype(1, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, registry)

	assert.Panics(t, func() {
		archetype.Spawn([]any{Position{X: 1}})
	})
	assert.Equal(t, 0, archetype.Len())

	slot := archetype.Spawn([]any{Velocity{DX: 2}, Position{X: 3}})
	assert.Equal(t, uint32(0), slot)
	assert.Equal(t, 1, archetype.Len())
	pos := archetype.GetComponent(slot, reflect.TypeFor[Position]()).(*Position)
	vel := archetype.GetComponent(slot, reflect.TypeFor[Velocity]()).(*Velocity)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(2), vel.DX)
}

func TestSameArchetypeRegardlessOfOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Health{Current: 10, Max: 10})
	storage.Delete(id)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.ArchetypeOf(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Position]()))

	again := storage.Spawn(Position{X: 2}, Health{Current: 5, Max: 10})
	assert.Equal(t, id, again)
	require.NotNil(t, storage.ArchetypeOf(again))
	assert.Equal(t, again.ArchetypeId(), storage.ArchetypeOf(again).ID())
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, again).X)
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7, Y: 8})
	moved := storage.AddComponent(id, Velocity{DX: 1})

	assert.NotEqual(t, id.ArchetypeId(), moved.ArchetypeId())
	assert.False(t, storage.Alive(id))
	assert.True(t, storage.HasComponent(moved, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, moved).X)

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	assert.False(t, storage.HasComponent(back, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(8), ecs.ReadComponent[Position](storage, back).Y)

	assert.Equal(t, ecs.EntityId(0), storage.RemoveComponent(back, reflect.TypeFor[Position]()))
	assert.False(t, storage.Alive(back))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var score *Score
	assert.False(t, storage.ReadSingleton(&score))

	storage.AddSingleton(Score(10))
	require.True(t, storage.ReadSingleton(&score))
	assert.Equal(t, Score(10), *score)

	shared := &Health{Current: 3, Max: 5}
	storage.AddSingleton(shared)
	h := ecs.NewSingleton[Health](storage)
	assert.Same(t, shared, h.Get())

	h.Get().Current = 4
	assert.Equal(t, 4, shared.Current)

	assert.Panics(t, func() { storage.ReadSingleton(score) })
}

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Position{}, Name("a"))
	storage.Spawn(Position{}, Name("b"))
	doomed := storage.Spawn(Health{})
	storage.Spawn(Health{})
	storage.Delete(doomed)
	ecs.NewSingleton[Score](storage, 1)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Score"}, stats.SingletonTypes)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}
