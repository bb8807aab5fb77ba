package ecs

// UpdateFrame is handed to every system invocation.
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Commands  *Commands
	Storage   *Storage
	Resources *Resources
	Scheduler *Scheduler
}

func newUpdateFrame(dt float64, w *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     w.frame,
		Commands:  w.commands,
		Storage:   w.storage,
		Resources: w.resources,
		Scheduler: w.scheduler,
	}
}
