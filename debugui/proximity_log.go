package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/physics"
)

// ProximityLog lists the latest proximity events with the bodies involved.
type ProximityLog struct {
	Events ecs.Singleton[game.ProximityEvents]
	World  ecs.Singleton[physics.World]
}

// NewProximityLog binds the log to the storage's singletons.
func NewProximityLog(storage *ecs.Storage) *ProximityLog {
	p := &ProximityLog{}
	p.Events.Init(storage)
	p.World.Init(storage)
	return p
}

// ProximityLine formats one event, naming the owning bodies when known.
func ProximityLine(world *physics.World, ev physics.ProximityEvent) string {
	describe := func(c physics.ColliderHandle) string {
		if world == nil {
			return fmt.Sprintf("collider %d", c)
		}
		if b, ok := world.ColliderBody(c); ok {
			return fmt.Sprintf("collider %d (body %d)", c, b)
		}
		return fmt.Sprintf("collider %d (removed)", c)
	}
	return fmt.Sprintf("%s / %s: %s", describe(ev.Collider1), describe(ev.Collider2), ev.NewStatus)
}

// Render draws the recent proximity events, newest first.
func (p *ProximityLog) Render() {
	if !imgui.BeginV("Proximity Events", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	events := p.Events.Get()
	if events == nil {
		imgui.Text("No proximity singleton")
		imgui.End()
		return
	}
	world := p.World.Get()

	imgui.Text(fmt.Sprintf("Total: %d, this frame: %d", events.Total, len(events.Frame)))
	imgui.Separator()
	for i := len(events.Recent) - 1; i >= 0; i-- {
		imgui.BulletText(ProximityLine(world, events.Recent[i]))
	}
	imgui.End()
}
