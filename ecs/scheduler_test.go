package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/adventurer/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace struct {
	calls []string
}

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	Trace ecs.Singleton[trace]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.Trace.Get().calls = append(s.Trace.Get().calls, "movement")
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities    ecs.Query[struct{ *Health }]
	Trace       ecs.Singleton[trace]
	TotalHealth int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.Trace.Get().calls = append(s.Trace.Get().calls, "health")
	s.TotalHealth = 0
	for item := range s.Entities.Iter() {
		s.TotalHealth += item.Health.Current
	}
}

type clockSystem struct {
	seen []time.Time
}

func (s *clockSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, frame.Now)
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[trace](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&HealthSystem{})
		scheduler.Register(&MovementSystem{})

		scheduler.Once(1)
		scheduler.Once(1)

		var tr *trace
		require.True(t, storage.ReadSingleton(&tr))
		assert.Equal(t, []string{"health", "movement", "health", "movement"}, tr.calls)
	})

	t.Run("queries are refreshed every frame", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[trace](storage)
		storage.Spawn(Health{Current: 50})

		health := &HealthSystem{}
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(health)

		scheduler.Once(1)
		assert.Equal(t, 50, health.TotalHealth)

		storage.Spawn(Health{Current: 25})
		scheduler.Once(1)
		assert.Equal(t, 75, health.TotalHealth)
	})

	t.Run("delta time", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[trace](storage)
		id := storage.Spawn(Position{}, Velocity{DX: 10, DY: 20})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})
		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
	})

	t.Run("injected clock", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		now := base

		clock := &clockSystem{}
		scheduler := ecs.NewScheduler(storage)
		scheduler.SetClock(func() time.Time { return now })
		scheduler.Register(clock)

		scheduler.Once(0)
		now = now.Add(time.Second)
		scheduler.Once(0)

		assert.Equal(t, []time.Time{base, base.Add(time.Second)}, clock.seen)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[trace](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})
		scheduler.Register(&HealthSystem{})
		for i := 0; i < 3; i++ {
			scheduler.Once(0)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, "HealthSystem", stats.Systems[1].Name)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("run stops on cancellation", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[trace](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&HealthSystem{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
		assert.Positive(t, scheduler.GetStats().Frames)
	})
}
