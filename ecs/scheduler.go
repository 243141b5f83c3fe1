package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarises scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats holds timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// storageBound is implemented by Query and Singleton fields.
type storageBound interface {
	Init(storage *Storage)
}

// frameCached is implemented by Query fields.
type frameCached interface {
	Execute()
}

// Scheduler runs registered systems in registration order. Before each
// frame it refreshes every Query declared on those systems; after the last
// system it flushes the frame's Commands.
type Scheduler struct {
	storage     *Storage
	systems     []System
	queries     []frameCached
	systemStats []*systemStatsInternal
	clock       func() time.Time
	frames      int64
}

// NewScheduler creates a scheduler over storage using the wall clock.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		clock:   time.Now,
	}
}

// SetClock replaces the source of UpdateFrame.Now.
func (s *Scheduler) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Storage returns the storage systems run against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system to the frame and binds its Query and Singleton
// fields to the scheduler's storage.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Pointer {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Pointer || systemValue.Elem().Kind() != reflect.Struct {
		return
	}
	systemValue = systemValue.Elem()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		bound, ok := field.Addr().Interface().(storageBound)
		if !ok {
			continue
		}
		bound.Init(s.storage)

		if cached, ok := bound.(frameCached); ok {
			s.queries = append(s.queries, cached)
		}
	}
}

// Once runs a single frame.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.clock(), s.storage)

	for _, q := range s.queries {
		q.Execute()
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
	s.frames++
}

// Run calls Once every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		var avg time.Duration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
