package main

import (
	"cmp"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/stagehand/stage"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Actors   int
	Objects  int

	// Results
	TotalTime      time.Duration
	FrameTime      Stats
	ManagerStats   stage.Stats
	Segments       int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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

// SlowestActors returns up to n actors ordered by average update time.
func (r *Report) SlowestActors(n int) []stage.ActorStats {
	actors := slices.Clone(r.ManagerStats.Actors)
	slices.SortStableFunc(actors, func(a, b stage.ActorStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	if len(actors) > n {
		actors = actors[:n]
	}
	return actors
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Stage Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Actors:** {{.Actors}}
- **Scene Objects:** {{.Objects}}

## Performance Results
- **Total Frames:** {{.ManagerStats.Frames}}
- **Skipped Renders:** {{.ManagerStats.SkippedRenders}}
- **Total Test Time:** {{.TotalTime}}
- **Segments Per Frame:** {{.Segments}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Slowest Actors
{{range .SlowestActors 5}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.UpdateCount}} updates
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
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
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
