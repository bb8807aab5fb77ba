package ecs

import (
	"context"
	"time"
)

// World ties together storage, resources, the command buffer and the
// scheduler. Hosts register stages, systems and resources, then call Step
// once per tick or hand control to Run.
//
// A World is not safe for concurrent use.
type World struct {
	registry  *ComponentRegistry
	storage   *Storage
	resources *Resources
	commands  *Commands
	scheduler *Scheduler
	entities  entityAllocator
	frame     uint64
	lastFlush FlushReport
}

// NewWorld creates a world over registry with the default stages. The
// hierarchy and transform components are registered automatically.
func NewWorld(registry *ComponentRegistry) *World {
	RegisterComponent[Parent](registry)
	RegisterComponent[Children](registry)
	RegisterComponent[Transform](registry)
	RegisterComponent[GlobalTransform](registry)

	w := &World{
		registry:  registry,
		storage:   NewStorage(registry),
		resources: newResources(),
		scheduler: newScheduler(),
	}
	w.commands = newCommands(&w.entities)

	w.scheduler.RegisterStage(StageFirst, 0)
	w.scheduler.RegisterStage(StagePreUpdate, 100)
	w.scheduler.RegisterStage(StageUpdate, 200)
	w.scheduler.RegisterStage(StagePostUpdate, 300)
	w.scheduler.RegisterStage(StageLast, 400)
	return w
}

// Registry returns the component registry.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Storage returns the component storage. Mutate it only through Commands.
func (w *World) Storage() *Storage {
	return w.storage
}

// Resources returns the resource container.
func (w *World) Resources() *Resources {
	return w.resources
}

// Commands returns the world's command buffer. Systems receive the same
// buffer through UpdateFrame.
func (w *World) Commands() *Commands {
	return w.commands
}

// Scheduler returns the world's scheduler.
func (w *World) Scheduler() *Scheduler {
	return w.scheduler
}

// Frame returns the number of frames stepped so far.
func (w *World) Frame() uint64 {
	return w.frame
}

// RegisterStage adds a stage with the given priority.
func (w *World) RegisterStage(stage Stage, priority int) {
	w.scheduler.RegisterStage(stage, priority)
}

// RegisterSystem adds system to stage, after the systems already there.
// It panics if the stage does not exist.
func (w *World) RegisterSystem(system System, stage Stage) {
	w.scheduler.registerSystem(w, system, stage)
}

// RegisterStartupSystem adds a system that runs once before the first frame,
// or on the first frame its required resources are present.
func (w *World) RegisterStartupSystem(system System) {
	w.scheduler.registerStartup(w, system)
}

// RegisterResource registers a resource immediately. Use it while building
// the world; systems should enqueue Commands.RegisterResource instead.
func (w *World) RegisterResource(resource Resource) error {
	return w.resources.insert(resource)
}

// AddPlugin lets p register its components, resources and systems.
func (w *World) AddPlugin(p Plugin) error {
	return p.Build(w)
}

// Deregister removes a system. It is no longer invoked, starting with the
// next system slot of the current frame. Systems are matched with ==, so a
// system whose type is not comparable, such as a SystemFunc, cannot be
// removed and Deregister reports false for it. Register a pointer to a struct
// when the system must be removable.
func (w *World) Deregister(system System) bool {
	return w.scheduler.deregister(system)
}

// Flush applies every queued command now and returns the outcome.
func (w *World) Flush() FlushReport {
	var report FlushReport
	w.applyCommands(&report)
	w.lastFlush = report
	return report
}

func (w *World) applyCommands(report *FlushReport) {
	r := w.commands.apply(w.storage, w.resources)
	report.Applied += r.Applied
	report.Failed = append(report.Failed, r.Failed...)
}

// LastFlush returns the combined outcome of the command applications made
// by the most recent Step or Flush.
func (w *World) LastFlush() FlushReport {
	return w.lastFlush
}

// Startup applies queued commands and runs the startup systems whose
// dependencies are satisfied. Step calls it implicitly.
func (w *World) Startup() error {
	var report FlushReport
	w.applyCommands(&report)
	err := w.scheduler.runStartup(w, newUpdateFrame(0, w), &report)
	w.lastFlush = report
	return err
}

// Step advances the world by one frame: queued commands are applied,
// pending startup systems get another chance, global transforms are
// synchronized and every stage runs in priority order. The first system
// error aborts the frame and is returned as a *SystemError.
func (w *World) Step(dt float64) error {
	w.frame++
	frame := newUpdateFrame(dt, w)

	var report FlushReport
	w.applyCommands(&report)
	err := w.scheduler.runStartup(w, frame, &report)
	w.lastFlush = report
	if err != nil {
		return err
	}

	syncTransforms(w.storage)
	return w.scheduler.runStages(w, frame)
}

// Run steps the world at the given interval until ctx is cancelled or a
// step fails.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := w.Step(dt); err != nil {
				return err
			}
		}
	}
}

// Stats returns per-system execution statistics.
func (w *World) Stats() *SchedulerStats {
	return w.scheduler.Stats()
}
