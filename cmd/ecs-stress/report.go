package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/stagecraft/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Links      int
	Churn      int
	Components int
	Systems    int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	FailedCommands int
	World          *ecs.WorldStats
	Scheduler      *ecs.SchedulerStats
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

const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}} ({{.Links}} parented)
- **Churn Per Frame:** {{.Churn}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Failed Commands:** {{.FailedCommands}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .World}}
## Storage
- **Alive Entities:** {{.EntityCount}}
- **Components:** {{.ComponentCount}} in {{len .Tables}} tables
{{range .Tables}}  - {{.Type}}: {{.Count}}
{{end}}{{end}}{{with .Scheduler}}
## Systems
| System | Stage | Runs | Skips | Avg | Max |
|--------|-------|------|-------|-----|-----|
{{range .Systems}}| {{.Name}} | {{.Stage}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} bytes
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}} bytes
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
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

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
