package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/gencol/ecs"
)

type Report struct {
	Config Config

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	UpdateTime    Stats
	Worlds        []WorldResult
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

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

// NewReport aggregates the results of all worlds. Frame times of every world
// are pooled, and system statistics are merged by system name.
func NewReport(config Config, worlds []WorldResult) *Report {
	r := &Report{Config: config, Worlds: worlds}

	for _, w := range worlds {
		r.TotalUpdates += int64(w.Frames)
		r.UpdateTime.Samples = append(r.UpdateTime.Samples, w.UpdateTime.Samples...)
		r.Systems = mergeSystemStats(r.Systems, w.Systems)
	}
	r.UpdateTime.Finalize()

	return r
}

func mergeSystemStats(into, from []ecs.SystemStats) []ecs.SystemStats {
	for _, s := range from {
		i := 0
		for i < len(into) && into[i].Name != s.Name {
			i++
		}
		if i == len(into) {
			into = append(into, s)
			continue
		}

		m := &into[i]
		m.ExecutionCount += s.ExecutionCount
		m.TotalDuration += s.TotalDuration
		m.MinDuration = min(m.MinDuration, s.MinDuration)
		m.MaxDuration = max(m.MaxDuration, s.MaxDuration)
		m.LastDuration = s.LastDuration
		if m.ExecutionCount > 0 {
			m.AvgDuration = m.TotalDuration / time.Duration(m.ExecutionCount)
		}
	}
	return into
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Config.Duration}}
- **Frame Limit:** {{if .Config.Frames}}{{.Config.Frames}}{{else}}none{{end}}
- **Worlds:** {{.Config.Worlds}}
- **Initial Particles:** {{.Config.Particles}}
- **Spawned Per Frame:** {{.Config.SpawnPerFrame}}
- **Time Step:** {{printf "%.4f" .Config.TimeStep}}s

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
| System | Executions | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Worlds
| World | Frames | Live | Slots | Spawned | Culled | Released | Energy |
|---|---|---|---|---|---|---|---|
{{- range .Worlds}}
| {{.ID}} | {{.Frames}} | {{.Live}} | {{.Slots}} | {{.Spawned}} | {{.Culled}} | {{.Released}} | {{printf "%.1f" .Energy}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .Config.GCPauseMetrics}}
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
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
