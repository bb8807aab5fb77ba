package ecs_test

import (
	"testing"

	"github.com/plus3/stagecraft/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	ecs.IsComponent
	X, Y float32
}

type Velocity struct {
	ecs.IsComponent
	DX, DY float32
}

type Name struct {
	ecs.IsComponent
	Value string
}

type Health struct {
	ecs.IsComponent
	Current int
	Max     int
}

type PlayerController struct {
	ecs.IsComponent
}

type AI struct {
	ecs.IsComponent
	State int
}

type Inventory struct {
	ecs.IsComponent
	Items []string
}

type Unregistered struct {
	ecs.IsComponent
}

// Common test resource types
type Gravity struct {
	ecs.IsResource
	Y float32
}

type Clock struct {
	ecs.IsResource
	Elapsed float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}

// spawn creates an entity with components and applies it immediately.
func spawn(t testing.TB, w *ecs.World, components ...ecs.Component) ecs.Entity {
	t.Helper()
	e := w.Commands().Spawn(components...)
	report := w.Flush()
	require.NoError(t, report.Err())
	return e
}
