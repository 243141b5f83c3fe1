package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/template"
	"time"

	"github.com/plus3/adventurer/ecs"
	"github.com/plus3/adventurer/physics"
)

// Report is the result of a bench run.
type Report struct {
	// Configuration
	Duration time.Duration
	FPS      int

	// Results
	Frames         int
	KeyEvents      int
	TotalTime      time.Duration
	SimTime        time.Duration
	FrameTime      Stats
	Systems        []ecs.SystemStats
	DrawCalls      map[string]int
	Proximity      uint64
	AnimationTicks uint64
	PhysicsSteps   uint64
	FinalState     string
	FinalPosition  physics.Vec2

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize computes Min, Max and Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Adventurer Bench Report

## Run
- **Wall Budget:** {{.Duration}}
- **Simulated FPS:** {{.FPS}}
- **Frames:** {{.Frames}} ({{.SimTime}} of game time)
- **Key Events Sent:** {{.KeyEvents}}

## Frame Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Systems
| System | Runs | Avg | Max |
|--------|------|-----|-----|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Simulation
- **Physics Steps:** {{.PhysicsSteps}}
- **Animation Ticks:** {{.AnimationTicks}}
- **Proximity Events:** {{.Proximity}}
- **Final State:** {{.FinalState}} at {{.FinalPosition}}

## Draw Calls
{{- range $op := ops .DrawCalls}}
- {{$op}}: {{index $.DrawCalls $op}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"ops": func(m map[string]int) []string {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
