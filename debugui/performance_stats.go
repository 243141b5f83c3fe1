package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/physics"
)

// PerformanceStats shows frame times, per-system timings and storage
// counters.
type PerformanceStats struct {
	scheduler *ecs.Scheduler
	timer     *FrameTimer

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceStats creates the window with a frame-time history of historyFrames.
func NewPerformanceStats(scheduler *ecs.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler:     scheduler,
		timer:         NewFrameTimer(),
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// record stores one frame time and returns the average over the history,
// in milliseconds.
func (ps *PerformanceStats) record(deltaTime float32) float32 {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(ps.historyFrames)
}

// Render draws frame timings, system timings and world counters.
func (ps *PerformanceStats) Render() {
	avgFrameTime := ps.record(ps.timer.GetDeltaTime())

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	storage := ps.scheduler.Storage()
	stats := storage.CollectStats()
	sched := ps.scheduler.GetStats()

	imgui.Text(fmt.Sprintf("Frames: %d", sched.Frames))
	imgui.Text(fmt.Sprintf("Entities: %d in %d archetypes", stats.TotalEntityCount, stats.ArchetypeCount))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	var world *physics.World
	if storage.ReadSingleton(&world) {
		imgui.Text(fmt.Sprintf("Physics: %d bodies, %d colliders, %d sub-steps", world.BodyCount(), world.ColliderCount(), world.StepCount()))
	}
	var clock *game.FrameClock
	if storage.ReadSingleton(&clock) {
		imgui.Text(fmt.Sprintf("Animation ticks: %d", clock.Ticks))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures the time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

// NewFrameTimer starts the timer now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
