package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"time"
)

// Stage names an ordered phase of the frame.
type Stage string

// Default stages registered by NewWorld.
const (
	StageFirst      Stage = "first"
	StagePreUpdate  Stage = "pre-update"
	StageUpdate     Stage = "update"
	StagePostUpdate Stage = "post-update"
	StageLast       Stage = "last"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	Frames          uint64
	StageCount      int
	SystemCount     int
	StartupPending  int
	TotalExecutions int64
	TotalSkips      int64
	Stages          []StageInfo
	Systems         []SystemStats
}

// StageInfo describes one registered stage.
type StageInfo struct {
	Name     Stage
	Priority int
	Systems  int
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
	Dependencies   []DependencyInfo
}

type systemStatsInternal struct {
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type systemEntry struct {
	system  System
	name    string
	stage   Stage
	deps    []Dependency
	removed bool
	stats   systemStatsInternal
}

type stageEntry struct {
	name     Stage
	priority int
	seq      int
	systems  []*systemEntry
}

// Scheduler owns the stages, the systems registered in them and the startup
// systems still waiting to run.
type Scheduler struct {
	stages  []*stageEntry
	byName  map[Stage]*stageEntry
	startup []*systemEntry
	frames  uint64
}

func newScheduler() *Scheduler {
	return &Scheduler{
		byName: make(map[Stage]*stageEntry),
	}
}

// RegisterStage adds a stage. Stages run by ascending priority; stages of
// equal priority run in registration order. Registering a name twice panics.
func (s *Scheduler) RegisterStage(stage Stage, priority int) {
	if _, ok := s.byName[stage]; ok {
		panic("ecs: stage " + string(stage) + " already registered")
	}
	entry := &stageEntry{name: stage, priority: priority, seq: len(s.stages)}
	s.byName[stage] = entry
	s.stages = append(s.stages, entry)
	slices.SortStableFunc(s.stages, func(a, b *stageEntry) int {
		if a.priority != b.priority {
			return a.priority - b.priority
		}
		return a.seq - b.seq
	})
}

// Stages lists the registered stages in execution order.
func (s *Scheduler) Stages() []StageInfo {
	infos := make([]StageInfo, len(s.stages))
	for i, st := range s.stages {
		infos[i] = StageInfo{Name: st.name, Priority: st.priority, Systems: len(st.systems)}
	}
	return infos
}

func newSystemEntry(w *World, system System, stage Stage) *systemEntry {
	entry := &systemEntry{
		system: system,
		name:   systemName(system),
		stage:  stage,
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	if dependent, ok := system.(Dependent); ok {
		entry.deps = dependent.Dependencies()
		for _, dep := range entry.deps {
			dep.bind(w)
		}
	}
	return entry
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}

func (s *Scheduler) registerSystem(w *World, system System, stage Stage) {
	st, ok := s.byName[stage]
	if !ok {
		panic("ecs: system " + systemName(system) + " registered in unknown stage " + string(stage))
	}
	st.systems = append(st.systems, newSystemEntry(w, system, stage))
}

func (s *Scheduler) registerStartup(w *World, system System) {
	s.startup = append(s.startup, newSystemEntry(w, system, ""))
}

// deregister removes system from its stage and from the pending startup
// systems. It reports whether anything was removed. Non-comparable systems
// never match.
func (s *Scheduler) deregister(system System) bool {
	if system == nil || !reflect.TypeOf(system).Comparable() {
		return false
	}
	matches := func(entry *systemEntry) bool {
		if entry.system == system {
			entry.removed = true
			return true
		}
		return false
	}

	found := false
	for _, st := range s.stages {
		kept := slices.DeleteFunc(slices.Clone(st.systems), matches)
		if len(kept) != len(st.systems) {
			found = true
			st.systems = kept
		}
	}
	kept := slices.DeleteFunc(slices.Clone(s.startup), matches)
	if len(kept) != len(s.startup) {
		found = true
		s.startup = kept
	}
	return found
}

func (e *systemEntry) resolve(w *World) bool {
	for _, dep := range e.deps {
		if !dep.resolve(w) {
			return false
		}
	}
	return true
}

// run resolves e's dependencies and executes it. ran is false when a
// required dependency was missing.
func (e *systemEntry) run(w *World, frame *UpdateFrame) (ran bool, err error) {
	if !e.resolve(w) {
		e.stats.skipCount++
		return false, nil
	}

	start := time.Now()
	err = e.system.Execute(frame)
	duration := time.Since(start)

	stats := &e.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}

	if err != nil {
		return true, &SystemError{System: e.name, Stage: e.stage, Err: err}
	}
	return true, nil
}

// runStartup runs pending startup systems in passes, applying commands after
// every pass that made progress so later systems see earlier registrations.
// Systems that still cannot resolve stay pending for a later frame.
func (s *Scheduler) runStartup(w *World, frame *UpdateFrame, report *FlushReport) error {
	for len(s.startup) > 0 {
		current := s.startup
		s.startup = nil

		var pending []*systemEntry
		for i, entry := range current {
			if entry.removed {
				continue
			}
			ran, err := entry.run(w, frame)
			if err != nil {
				// Systems registered during this pass stay queued behind the rest.
				s.startup = append(append(pending, current[i+1:]...), s.startup...)
				return err
			}
			if !ran {
				pending = append(pending, entry)
			}
		}

		progressed := len(pending) < len(current) || len(s.startup) > 0
		s.startup = append(pending, s.startup...)
		if !progressed {
			return nil
		}
		w.applyCommands(report)
	}
	return nil
}

func (s *Scheduler) runStages(w *World, frame *UpdateFrame) error {
	s.frames++
	for _, st := range s.stages {
		for _, entry := range st.systems {
			if entry.removed {
				continue
			}
			if _, err := entry.run(w, frame); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats returns statistics about system execution. Startup systems that have
// already run are not included.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		Frames:         s.frames,
		StageCount:     len(s.stages),
		StartupPending: len(s.startup),
		Stages:         s.Stages(),
	}

	for _, st := range s.stages {
		for _, entry := range st.systems {
			internal := entry.stats
			avgDuration := time.Duration(0)
			minDuration := internal.minDuration
			if internal.executionCount > 0 {
				avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			} else {
				minDuration = 0
			}

			deps := make([]DependencyInfo, len(entry.deps))
			for i, dep := range entry.deps {
				deps[i] = dep.Describe()
			}

			stats.Systems = append(stats.Systems, SystemStats{
				Name:           entry.name,
				Stage:          entry.stage,
				ExecutionCount: internal.executionCount,
				SkipCount:      internal.skipCount,
				MinDuration:    minDuration,
				MaxDuration:    internal.maxDuration,
				AvgDuration:    avgDuration,
				LastDuration:   internal.lastDuration,
				TotalDuration:  internal.totalDuration,
				Dependencies:   deps,
			})
			stats.TotalExecutions += internal.executionCount
			stats.TotalSkips += internal.skipCount
		}
	}
	stats.SystemCount = len(stats.Systems)
	return stats
}

func (st StageInfo) String() string {
	return fmt.Sprintf("%s(%d)", st.Name, st.Priority)
}
