package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/game"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Config   game.Config

	// Results
	Rounds         int
	Outcomes       map[string]int
	TotalFrames    int64
	TotalTime      time.Duration
	StepTime       Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Record adds a finished (or interrupted) round. System timings are summed across rounds.
func (r *Report) Record(status ecs.Status, frames int64, stats *ecs.SceneStats) {
	if r.Outcomes == nil {
		r.Outcomes = make(map[string]int)
	}
	r.Rounds++
	r.Outcomes[status.String()]++
	r.TotalFrames += frames

	for _, s := range stats.Systems {
		i := slices.IndexFunc(r.Systems, func(existing ecs.SystemStats) bool {
			return existing.Name == s.Name && existing.Kind == s.Kind
		})
		if i < 0 {
			r.Systems = append(r.Systems, s)
			continue
		}
		merged := &r.Systems[i]
		merged.ExecutionCount += s.ExecutionCount
		merged.TotalDuration += s.TotalDuration
		merged.MinDuration = min(merged.MinDuration, s.MinDuration)
		merged.MaxDuration = max(merged.MaxDuration, s.MaxDuration)
		merged.LastDuration = s.LastDuration
		if merged.ExecutionCount > 0 {
			merged.AvgDuration = merged.TotalDuration / time.Duration(merged.ExecutionCount)
		}
	}
}

// SlowestSystems returns the systems ordered by total time spent, slowest first.
func (r *Report) SlowestSystems() []ecs.SystemStats {
	sorted := slices.Clone(r.Systems)
	slices.SortStableFunc(sorted, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.TotalDuration, a.TotalDuration)
	})
	return sorted
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
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

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Arcade Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **World:** {{.Config.Width}}x{{.Config.Height}}
- **Hostiles:** {{.Config.HostileColumns}}x{{.Config.HostileRows}}
- **Balls:** {{.Config.Balls}}

## Performance Results
- **Rounds:** {{.Rounds}}{{range $outcome, $n := .Outcomes}} ({{$outcome}}: {{$n}}){{end}}
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Step Time (Frame):**
  - **Avg:** {{.StepTime.Avg}}
  - **P99:** {{.StepTime.P99}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Systems (slowest first)
{{range .SlowestSystems}}- {{printf "%-22s" .Name}} {{printf "%-7s" .Kind}} runs: {{.ExecutionCount}} avg: {{.AvgDuration}} max: {{.MaxDuration}} total: {{.TotalDuration}}
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} B
- Sys Memory:     {{mb .MemStatsStart.Sys}} MiB (start) -> {{mb .MemStatsEnd.Sys}} MiB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} B
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
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
		return err
	}

	return tmpl.Execute(w, r)
}
