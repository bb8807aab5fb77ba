package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
)

// Spin rotates an entity's local transform about Z.
type Spin struct {
	ecs.IsComponent
	RadiansPerSecond float64
}

type SpinSystem struct {
	Spinners ecs.Query[struct {
		*Spin
		*ecs.Transform
	}]
}

func (s *SpinSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&s.Spinners}
}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) error {
	for row := range s.Spinners.Values() {
		step := mgl64.QuatRotate(row.Spin.RadiansPerSecond*frame.DeltaTime, mgl64.Vec3{0, 0, 1})
		row.Transform.Rotation = step.Mul(row.Transform.Rotation).Normalize()
	}
	return nil
}

// SpinSceneSystem gives every parented node a Spin so loaded scenes animate.
type SpinSceneSystem struct {
	Nodes ecs.Query[struct {
		*ecs.Parent
		*ecs.Transform
		Spin *Spin `ecs:"optional"`
	}]
	Speed float64
}

func (s *SpinSceneSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&s.Nodes}
}

func (s *SpinSceneSystem) Execute(frame *ecs.UpdateFrame) error {
	for e, row := range s.Nodes.Iter() {
		if row.Spin == nil {
			frame.Commands.AddComponent(e, Spin{RadiansPerSecond: s.Speed})
		}
	}
	return nil
}

// spawnDemo queues a small orbit used when no scene is configured.
func spawnDemo(c *ecs.Commands) {
	sun := c.Spawn(ecs.NewTransform(mgl64.Vec3{}), Spin{RadiansPerSecond: 0.5})
	earth := c.Spawn(ecs.NewTransform(mgl64.Vec3{3, 0, 0}), Spin{RadiansPerSecond: 2})
	moon := c.Spawn(ecs.NewTransform(mgl64.Vec3{1, 0, 0}))
	c.AddChild(sun, earth)
	c.AddChild(earth, moon)
}

// screenPoint maps world XY to pixels, centred, with +Y up.
func screenPoint(p mgl64.Vec3, width, height int, pixelsPerUnit float64) (float32, float32) {
	x := float64(width)/2 + p.X()*pixelsPerUnit
	y := float64(height)/2 - p.Y()*pixelsPerUnit
	return float32(x), float32(y)
}
