package ecs_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/plus3/stagecraft/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsAddAndRemoveComponent(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w)

	receipt := w.Commands().AddComponent(e, Health{Current: 7, Max: 9})
	assert.False(t, receipt.Done(), "nothing applies before a flush")
	_, ok := ecs.Get[Health](w.Storage(), e)
	assert.False(t, ok)

	w.Flush()
	assert.True(t, receipt.Applied())
	health, ok := ecs.Get[Health](w.Storage(), e)
	require.True(t, ok)
	assert.Equal(t, Health{Current: 7, Max: 9}, *health)

	receipt = ecs.RemoveComponentOf[Health](w.Commands(), e)
	w.Flush()
	assert.True(t, receipt.Applied())
	_, ok = ecs.Get[Health](w.Storage(), e)
	assert.False(t, ok)
}

func TestCommandsAddReplacesExisting(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w, Name{Value: "old"})

	w.Commands().AddComponent(e, Name{Value: "new"})
	require.NoError(t, w.Flush().Err())

	name, _ := ecs.Get[Name](w.Storage(), e)
	assert.Equal(t, "new", name.Value)
}

func TestCommandsRemoveMissingComponentIsNoop(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w, Position{})

	receipt := w.Commands().RemoveComponent(e, reflect.TypeFor[Velocity]())
	w.Flush()
	assert.True(t, receipt.Applied())
	assert.True(t, ecs.Has[Position](w.Storage(), e))
}

func TestCommandsInvalidEntity(t *testing.T) {
	w := newTestWorld()
	ghost := ecs.Entity(404)

	add := w.Commands().AddComponent(ghost, Position{})
	remove := ecs.RemoveComponentOf[Position](w.Commands(), ghost)
	despawn := w.Commands().RemoveEntity(ghost)
	report := w.Flush()

	for _, receipt := range []*ecs.Receipt{add, remove, despawn} {
		assert.True(t, receipt.Done())
		assert.False(t, receipt.Applied())
		assert.ErrorIs(t, receipt.Err(), ecs.ErrInvalidEntity)
	}
	assert.Len(t, report.Failed, 3)
	assert.Equal(t, 0, report.Applied)

	var entityErr *ecs.EntityError
	require.ErrorAs(t, add.Err(), &entityErr)
	assert.Equal(t, ghost, entityErr.Entity)
}

func TestCommandsUnknownComponent(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w)

	receipt := w.Commands().AddComponent(e, Unregistered{})
	w.Flush()
	assert.ErrorIs(t, receipt.Err(), ecs.ErrUnknownComponent)
}

func TestCommandsNilComponentKeepsBatch(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w)

	c := w.Commands()
	ok := c.AddComponent(e, Position{X: 1})
	bad := c.AddComponent(e, (*Velocity)(nil))
	later := c.RemoveEntity(e)
	report := w.Flush()

	assert.True(t, ok.Applied())
	assert.True(t, bad.Done())
	assert.ErrorIs(t, bad.Err(), ecs.ErrNilComponent)
	var entityErr *ecs.EntityError
	require.ErrorAs(t, bad.Err(), &entityErr)
	assert.Equal(t, reflect.TypeFor[Velocity](), entityErr.Type)

	assert.True(t, later.Applied())
	assert.False(t, w.Storage().Alive(e))
	assert.Len(t, report.Failed, 1)
	assert.Equal(t, 0, w.Commands().Len())
}

func TestCommandsReservedComponents(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w)

	add := w.Commands().AddComponent(e, ecs.Parent{Entity: e})
	remove := ecs.RemoveComponentOf[ecs.Children](w.Commands(), e)
	w.Flush()

	assert.ErrorIs(t, add.Err(), ecs.ErrReservedComponent)
	assert.ErrorIs(t, remove.Err(), ecs.ErrReservedComponent)
	assert.False(t, ecs.Has[ecs.Parent](w.Storage(), e))
}

func TestCommandsEmptyFlushIsNoop(t *testing.T) {
	w := newTestWorld()
	e := spawn(t, w, Position{X: 1})
	before := w.CollectStats()

	report := w.Flush()
	assert.Equal(t, 0, report.Applied)
	assert.Empty(t, report.Failed)
	assert.NoError(t, report.Err())

	report = w.Flush()
	assert.Equal(t, 0, report.Applied)
	assert.Equal(t, before, w.CollectStats())

	pos, _ := ecs.Get[Position](w.Storage(), e)
	assert.Equal(t, float32(1), pos.X)
}

func TestCommandsReservedIdsAreUsableInSameBatch(t *testing.T) {
	w := newTestWorld()
	c := w.Commands()

	parent := c.CreateEntity()
	child := c.Spawn(Position{X: 1})
	c.AddComponent(parent, Position{X: 2})
	link := c.AddChild(parent, child)

	require.NoError(t, w.Flush().Err())
	assert.True(t, link.Applied())
	assert.True(t, w.Storage().Alive(parent))

	p, ok := ecs.Get[ecs.Parent](w.Storage(), child)
	require.True(t, ok)
	assert.Equal(t, parent, p.Entity)
}

func TestCommandsApplyOrder(t *testing.T) {
	t.Run("component removal follows addition", func(t *testing.T) {
		w := newTestWorld()
		e := spawn(t, w)

		// Enqueued in reverse; removal still applies after addition.
		ecs.RemoveComponentOf[Health](w.Commands(), e)
		w.Commands().AddComponent(e, Health{Current: 1})
		require.NoError(t, w.Flush().Err())

		assert.False(t, ecs.Has[Health](w.Storage(), e))
	})

	t.Run("entity removal follows component changes", func(t *testing.T) {
		w := newTestWorld()
		e := spawn(t, w)

		despawn := w.Commands().RemoveEntity(e)
		add := w.Commands().AddComponent(e, Health{})
		w.Flush()

		assert.True(t, add.Applied(), "addition applies before removal")
		assert.True(t, despawn.Applied())
		assert.False(t, w.Storage().Alive(e))
		assert.Equal(t, 0, w.Storage().Count(reflect.TypeFor[Health]()))
	})

	t.Run("hierarchy changes follow entity removal", func(t *testing.T) {
		w := newTestWorld()
		parent := spawn(t, w)
		child := spawn(t, w)

		link := w.Commands().AddChild(parent, child)
		w.Commands().RemoveEntity(child)
		w.Flush()

		assert.ErrorIs(t, link.Err(), ecs.ErrInvalidEntity)
		assert.False(t, ecs.Has[ecs.Children](w.Storage(), parent))
	})

	t.Run("resources apply last", func(t *testing.T) {
		w := newTestWorld()
		c := w.Commands()

		register := c.RegisterResource(&Gravity{Y: -9.8})
		e := c.Spawn(Position{})
		require.NoError(t, w.Flush().Err())

		assert.True(t, register.Applied())
		assert.True(t, w.Storage().Alive(e))
		g, ok := ecs.GetResource[Gravity](w.Resources())
		require.True(t, ok)
		assert.InDelta(t, -9.8, g.Y, 1e-6)
	})

	t.Run("fifo within a category", func(t *testing.T) {
		w := newTestWorld()
		e := spawn(t, w)

		w.Commands().AddComponent(e, Name{Value: "first"})
		w.Commands().AddComponent(e, Name{Value: "second"})
		require.NoError(t, w.Flush().Err())

		name, _ := ecs.Get[Name](w.Storage(), e)
		assert.Equal(t, "second", name.Value)
	})
}

func TestCommandsRemoveEntityCascade(t *testing.T) {
	w := newTestWorld()
	grandparent := spawn(t, w)
	parent := spawn(t, w, Position{})
	childA := spawn(t, w)
	childB := spawn(t, w)

	c := w.Commands()
	c.AddChild(grandparent, parent)
	c.AddChild(parent, childA)
	c.AddChild(parent, childB)
	require.NoError(t, w.Flush().Err())

	w.Commands().RemoveEntity(parent)
	require.NoError(t, w.Flush().Err())

	s := w.Storage()
	assert.False(t, s.Alive(parent))
	assert.False(t, ecs.Has[ecs.Children](s, grandparent), "empty Children is dropped")
	assert.False(t, ecs.Has[ecs.Parent](s, childA))
	assert.False(t, ecs.Has[ecs.Parent](s, childB))
	assert.True(t, s.Alive(childA))
	assert.True(t, s.Alive(childB))
}

func TestFlushReportErr(t *testing.T) {
	w := newTestWorld()
	w.Commands().AddComponent(ecs.Entity(1000), Position{})
	w.Commands().RegisterResource(Gravity{})
	w.Commands().RegisterResource(Gravity{})
	report := w.Flush()

	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.Failed, 2)
	err := report.Err()
	assert.True(t, errors.Is(err, ecs.ErrInvalidEntity))
	assert.True(t, errors.Is(err, ecs.ErrDuplicateResource))
	assert.Equal(t, report, w.LastFlush())
}

func TestCommandsLen(t *testing.T) {
	w := newTestWorld()
	c := w.Commands()
	e := c.Spawn(Position{}, Velocity{})
	c.RemoveEntity(e)
	assert.Equal(t, 4, c.Len())

	w.Flush()
	assert.Equal(t, 0, c.Len())
}
