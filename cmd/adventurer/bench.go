package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/input"
	"github.com/plus3/adventurer/render"
	"github.com/spf13/cobra"
)

var (
	flagDuration       time.Duration
	flagFrames         int
	flagFPS            int
	flagSwitchEvery    int
	flagGCPauseMetrics bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the game headless and print a report",
	Long: `Runs frames as fast as possible against a recording canvas. Game time
advances by 1/fps per frame, so runs are reproducible; the character is
steered by a fixed script that alternates Right and Left.`,
	RunE: runBenchCmd,
}

func init() {
	benchCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Second, "Wall-clock budget for the run")
	benchCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after this many frames (0 = until --duration)")
	benchCmd.Flags().IntVar(&flagFPS, "fps", 60, "Simulated frames per second")
	benchCmd.Flags().IntVar(&flagSwitchEvery, "switch-every", 90, "Frames between direction changes")
	benchCmd.Flags().BoolVar(&flagGCPauseMetrics, "gc-pause-metrics", false, "Include GC pause metrics in the report")
}

func runBenchCmd(cmd *cobra.Command, args []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	clock := newSimClock(time.Unix(0, 0))
	g, err := e.newGame(game.Options{Clock: clock.Now})
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagDuration)
	defer cancel()

	e.logger.Info("bench started", "duration", flagDuration, "frames", flagFrames, "fps", flagFPS)
	report := bench(ctx, g, clock, benchConfig{
		Frames:         flagFrames,
		FPS:            flagFPS,
		SwitchEvery:    flagSwitchEvery,
		GCPauseMetrics: flagGCPauseMetrics,
	})
	report.Duration = flagDuration
	e.logger.Info("bench finished", "frames", report.Frames, "took", report.TotalTime)

	return report.Generate(cmd.OutOrStdout())
}

type benchConfig struct {
	Frames         int
	FPS            int
	SwitchEvery    int
	GCPauseMetrics bool
}

// simClock is a game clock that only moves when told to.
type simClock struct {
	now time.Time
}

func newSimClock(start time.Time) *simClock {
	return &simClock{now: start}
}

func (c *simClock) Now() time.Time { return c.now }

func (c *simClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// steer returns the key events the script sends before frame n.
func steer(n, every int) []input.KeyEvent {
	if every <= 0 || n%every != 0 {
		return nil
	}
	dir := input.KeyRight
	if (n/every)%2 == 1 {
		dir = input.KeyLeft
	}
	if n == 0 {
		return []input.KeyEvent{input.Press(dir)}
	}
	prev := input.KeyLeft
	if dir == input.KeyLeft {
		prev = input.KeyRight
	}
	// releasing interrupts, so the new press has to come after it
	return []input.KeyEvent{input.Release(prev), input.Press(dir)}
}

func bench(ctx context.Context, g *game.Game, clock *simClock, cfg benchConfig) *Report {
	step := time.Second / time.Duration(cfg.FPS)
	dt := step.Seconds()
	canvas := &render.Recorder{}

	report := &Report{
		FPS:            cfg.FPS,
		GCPauseMetrics: cfg.GCPauseMetrics,
		DrawCalls:      make(map[string]int),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
Loop:
	for n := 0; cfg.Frames <= 0 || n < cfg.Frames; n++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		events := steer(n, cfg.SwitchEvery)
		report.KeyEvents += len(events)
		g.PushKeys(events...)

		clock.Advance(step)
		frameStart := time.Now()
		g.Frame(canvas, dt)
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))

		for _, call := range canvas.Calls {
			report.DrawCalls[call.Op.String()]++
		}
		canvas.Reset()
		report.Frames++
	}

	report.TotalTime = time.Since(startTime)
	report.SimTime = time.Duration(report.Frames) * step
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	stats := g.Scheduler.GetStats()
	report.Systems = stats.Systems
	report.Proximity = g.Proximity.Total
	report.AnimationTicks = g.Clock.Ticks
	report.PhysicsSteps = g.World.StepCount()

	player := g.Player()
	report.FinalState = game.StateName(player.State)
	report.FinalPosition = g.World.Isometry(g.Level.Character).Translation
	return report
}
