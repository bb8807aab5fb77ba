package ecs

// System represents a behavior that runs once per frame in its stage.
// Systems may keep custom state in their fields; it persists between frames.
// An error returned from Execute aborts the frame and is returned from Step.
type System interface {
	Execute(frame *UpdateFrame) error
}

// Dependent is implemented by systems that need queries or resources.
// Dependencies is called once at registration; the returned descriptors,
// usually pointers to the system's own Query, Res and OptionalRes fields,
// are bound then and resolved again before every invocation. A system whose
// required resources are missing is skipped for that frame.
type Dependent interface {
	Dependencies() []Dependency
}

// Plugin bundles component, resource and system registration.
type Plugin interface {
	Build(w *World) error
}

// SystemFunc adapts a plain function to a System without dependencies.
type SystemFunc func(frame *UpdateFrame) error

// Execute implements System.
func (f SystemFunc) Execute(frame *UpdateFrame) error {
	return f(frame)
}
