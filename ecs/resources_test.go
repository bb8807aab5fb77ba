package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/stagecraft/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterResource(t *testing.T) {
	t.Run("pointer registration shares the instance", func(t *testing.T) {
		w := newTestWorld()
		gravity := &Gravity{Y: -1}
		require.NoError(t, w.RegisterResource(gravity))

		got, ok := ecs.GetResource[Gravity](w.Resources())
		require.True(t, ok)
		assert.Same(t, gravity, got)
	})

	t.Run("value registration stores a copy", func(t *testing.T) {
		w := newTestWorld()
		gravity := Gravity{Y: -1}
		require.NoError(t, w.RegisterResource(gravity))

		gravity.Y = 5
		got, _ := ecs.GetResource[Gravity](w.Resources())
		assert.Equal(t, float32(-1), got.Y)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		w := newTestWorld()
		original := &Gravity{Y: -1}
		require.NoError(t, w.RegisterResource(original))

		err := w.RegisterResource(&Gravity{Y: 99})
		assert.ErrorIs(t, err, ecs.ErrDuplicateResource)

		var resErr *ecs.ResourceError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, reflect.TypeFor[Gravity](), resErr.Type)

		got, _ := ecs.GetResource[Gravity](w.Resources())
		assert.Same(t, original, got, "original instance is untouched")
		assert.Equal(t, float32(-1), got.Y)
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		w := newTestWorld()
		var gravity *Gravity
		assert.ErrorIs(t, w.RegisterResource(gravity), ecs.ErrNilResource)
		assert.Equal(t, 0, w.Resources().Len())
	})
}

func TestRemoveResource(t *testing.T) {
	w := newTestWorld()
	require.NoError(t, w.RegisterResource(&Gravity{}))
	require.NoError(t, w.RegisterResource(&Clock{}))

	receipt := ecs.RemoveResourceOf[Gravity](w.Commands())
	require.NoError(t, w.Flush().Err())
	assert.True(t, receipt.Applied())
	assert.False(t, w.Resources().Has(reflect.TypeFor[Gravity]()))
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Clock]()}, w.Resources().Types())

	t.Run("removing an unregistered resource panics", func(t *testing.T) {
		ecs.RemoveResourceOf[Gravity](w.Commands())
		assert.Panics(t, func() { w.Flush() })
	})
}

func TestRegisterAfterRemove(t *testing.T) {
	w := newTestWorld()
	require.NoError(t, w.RegisterResource(&Gravity{Y: 1}))

	ecs.RemoveResourceOf[Gravity](w.Commands())
	receipt := w.Commands().RegisterResource(&Gravity{Y: 2})
	require.NoError(t, w.Flush().Err())

	assert.True(t, receipt.Applied())
	got, _ := ecs.GetResource[Gravity](w.Resources())
	assert.Equal(t, float32(2), got.Y)
}
