package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an entity's transform relative to its parent, or to the world
// origin for unparented entities. Build one with NewTransform: the zero value
// has zero scale.
type Transform struct {
	IsComponent
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// GlobalTransform is derived every frame from the chain of local transforms.
// Systems read it; writes are overwritten by the next sync.
type GlobalTransform struct {
	IsComponent
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// NewTransform returns a transform at position with identity rotation and unit scale.
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns the affine matrix T*R*S of the local transform.
func (t Transform) Matrix() mgl64.Mat4 {
	return trsMatrix(t.Position, t.Rotation, t.Scale)
}

// Matrix returns the affine matrix T*R*S of the global transform.
func (g GlobalTransform) Matrix() mgl64.Mat4 {
	return trsMatrix(g.Position, g.Rotation, g.Scale)
}

func trsMatrix(p mgl64.Vec3, r mgl64.Quat, s mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(r.Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
}

func identityGlobal() GlobalTransform {
	return GlobalTransform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Mul composes g with a child's local transform:
//
//	pos   = g.Position + g.Rotation * (g.Scale ⊙ local.Position)
//	rot   = g.Rotation * local.Rotation
//	scale = g.Scale ⊙ local.Scale
func (g GlobalTransform) Mul(local Transform) GlobalTransform {
	scaled := mgl64.Vec3{
		local.Position.X() * g.Scale.X(),
		local.Position.Y() * g.Scale.Y(),
		local.Position.Z() * g.Scale.Z(),
	}
	return GlobalTransform{
		Position: g.Position.Add(g.Rotation.Rotate(scaled)),
		Rotation: g.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl64.Vec3{
			g.Scale.X() * local.Scale.X(),
			g.Scale.Y() * local.Scale.Y(),
			g.Scale.Z() * local.Scale.Z(),
		},
	}
}

// Relative returns the local transform that, composed under g, yields child.
// ok is false when g cannot be inverted, which for a rotation-scale-translation
// transform means a zero scale component.
func (g GlobalTransform) Relative(child GlobalTransform) (local Transform, ok bool) {
	for i := 0; i < 3; i++ {
		if g.Scale[i] == 0 {
			return Transform{}, false
		}
	}

	inv := g.Rotation.Inverse()
	delta := inv.Rotate(child.Position.Sub(g.Position))
	return Transform{
		Position: mgl64.Vec3{delta.X() / g.Scale.X(), delta.Y() / g.Scale.Y(), delta.Z() / g.Scale.Z()},
		Rotation: inv.Mul(child.Rotation).Normalize(),
		Scale: mgl64.Vec3{
			child.Scale.X() / g.Scale.X(),
			child.Scale.Y() / g.Scale.Y(),
			child.Scale.Z() / g.Scale.Z(),
		},
	}, true
}

// AsLocal converts a global transform into an unparented local transform.
func (g GlobalTransform) AsLocal() Transform {
	return Transform{Position: g.Position, Rotation: g.Rotation, Scale: g.Scale}
}

// localOf returns e's local transform, or the identity when it has none.
func localOf(s *Storage, e Entity) Transform {
	if t, ok := Get[Transform](s, e); ok {
		return *t
	}
	return identityGlobal().AsLocal()
}

// computeGlobal walks e's ancestor chain and composes a fresh global
// transform without relying on the last sync.
func computeGlobal(s *Storage, e Entity) GlobalTransform {
	chain := []Entity{e}
	for ancestor := range Ancestors(s, e) {
		chain = append(chain, ancestor)
	}

	global := identityGlobal()
	for i := len(chain) - 1; i >= 0; i-- {
		global = global.Mul(localOf(s, chain[i]))
	}
	return global
}

// syncTransforms recomputes every GlobalTransform in parent-before-child
// order. It runs at the frame's synchronization point, right after commands
// are applied, so it may insert and remove GlobalTransform components.
func syncTransforms(s *Storage) {
	transforms := s.table(transformType)
	globals := s.table(globalTransformType).(*genericComponentStorage[GlobalTransform])
	children := s.table(childrenType)

	type frame struct {
		entity Entity
		parent GlobalTransform
	}
	var stack []frame

	pushRoot := func(e Entity) {
		if !Has[Parent](s, e) {
			stack = append(stack, frame{entity: e, parent: identityGlobal()})
		}
	}
	for e := range transforms.Iter() {
		pushRoot(e)
	}
	for e := range children.Iter() {
		if !transforms.Has(e) {
			pushRoot(e)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		global := top.parent
		if local, ok := Get[Transform](s, top.entity); ok {
			global = top.parent.Mul(*local)
			globals.put(top.entity, global)
		}

		if kids, ok := Get[Children](s, top.entity); ok {
			// Reverse push keeps siblings in declaration order.
			for i := len(kids.Entities) - 1; i >= 0; i-- {
				stack = append(stack, frame{entity: kids.Entities[i], parent: global})
			}
		}
	}

	var stale []Entity
	for e := range globals.Iter() {
		if !transforms.Has(e) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		globals.Delete(e)
	}
}
