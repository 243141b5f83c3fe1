package debugui

import (
	"github.com/plus3/adventurer/ecs"
)

// RegisterComponents registers the components Spawn needs.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn adds the debug windows and the ImguiSystem to the scheduler. It
// must be called after the game systems are registered so that the windows
// show the finished frame.
func Spawn(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	RegisterComponents(storage.Registry())
	ecs.NewSingleton[ImguiInputState](storage)

	stats := NewPerformanceStats(scheduler, 120)
	browser := NewEntityBrowser(storage, 100)
	proximity := NewProximityLog(storage)

	storage.Spawn(ImguiItem{Render: stats.Render})
	storage.Spawn(ImguiItem{Render: browser.Render})
	storage.Spawn(ImguiItem{Render: proximity.Render})

	scheduler.Register(&ImguiSystem{})
}
