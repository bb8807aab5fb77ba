package ecs_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	assert.True(t, expected.ApproxEqualThreshold(actual, 1e-9), "expected %v, got %v", expected, actual)
}

func TestTransformPropagation(t *testing.T) {
	w := newTestWorld()
	parent := spawn(t, w, ecs.NewTransform(mgl64.Vec3{10, 0, 0}))
	child := spawn(t, w, ecs.NewTransform(mgl64.Vec3{1, 0, 0}))
	w.Commands().AddChild(parent, child)

	require.NoError(t, w.Step(0.016))

	global, ok := ecs.Get[ecs.GlobalTransform](w.Storage(), child)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{11, 0, 0}, global.Position)
	assertVec(t, mgl64.Vec3{1, 1, 1}, global.Scale)
}

func TestTransformPropagationDeepChain(t *testing.T) {
	w := newTestWorld()
	c := w.Commands()

	var prev ecs.Entity
	var entities []ecs.Entity
	for i := 0; i < 6; i++ {
		e := c.Spawn(ecs.NewTransform(mgl64.Vec3{1, 0, 0}))
		if i > 0 {
			c.AddChild(prev, e)
		}
		entities = append(entities, e)
		prev = e
	}
	require.NoError(t, w.Step(0))

	for i, e := range entities {
		global, ok := ecs.Get[ecs.GlobalTransform](w.Storage(), e)
		require.True(t, ok)
		assertVec(t, mgl64.Vec3{float64(i + 1), 0, 0}, global.Position)
	}
}

func TestTransformPropagationRotationAndScale(t *testing.T) {
	w := newTestWorld()
	parentTransform := ecs.NewTransform(mgl64.Vec3{0, 0, 0})
	parentTransform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})
	parentTransform.Scale = mgl64.Vec3{2, 2, 2}

	parent := spawn(t, w, parentTransform)
	child := spawn(t, w, ecs.NewTransform(mgl64.Vec3{1, 0, 0}))
	w.Commands().AddChild(parent, child)
	require.NoError(t, w.Step(0))

	global, _ := ecs.Get[ecs.GlobalTransform](w.Storage(), child)
	assertVec(t, mgl64.Vec3{0, 2, 0}, global.Position)
	assertVec(t, mgl64.Vec3{2, 2, 2}, global.Scale)
}

func TestTransformPassThroughParentWithoutTransform(t *testing.T) {
	w := newTestWorld()
	root := spawn(t, w, ecs.NewTransform(mgl64.Vec3{3, 0, 0}))
	group := spawn(t, w)
	leaf := spawn(t, w, ecs.NewTransform(mgl64.Vec3{0, 1, 0}))
	w.Commands().AddChild(root, group)
	w.Commands().AddChild(group, leaf)
	require.NoError(t, w.Step(0))

	assert.False(t, ecs.Has[ecs.GlobalTransform](w.Storage(), group))
	global, ok := ecs.Get[ecs.GlobalTransform](w.Storage(), leaf)
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{3, 1, 0}, global.Position)
}

func TestTransformStaleGlobalRemoved(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w, ecs.NewTransform(mgl64.Vec3{1, 2, 3}))
	require.NoError(t, w.Step(0))
	require.True(t, ecs.Has[ecs.GlobalTransform](w.Storage(), e))

	ecs.RemoveComponentOf[ecs.Transform](w.Commands(), e)
	require.NoError(t, w.Step(0))
	assert.False(t, ecs.Has[ecs.GlobalTransform](w.Storage(), e))
}

func TestGlobalTransformRelative(t *testing.T) {
	parent := ecs.GlobalTransform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{0, 1, 0}),
		Scale:    mgl64.Vec3{2, 3, 4},
	}
	child := ecs.GlobalTransform{
		Position: mgl64.Vec3{-4, 5, 6},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}

	local, ok := parent.Relative(child)
	require.True(t, ok)
	assertVec(t, child.Position, parent.Mul(local).Position)

	parent.Scale = mgl64.Vec3{1, 0, 1}
	_, ok = parent.Relative(child)
	assert.False(t, ok)
}

func TestTransformMatrix(t *testing.T) {
	tr := ecs.NewTransform(mgl64.Vec3{1, 2, 3})
	m := tr.Matrix()
	assertVec(t, mgl64.Vec3{1, 2, 3}, m.Col(3).Vec3())
}
