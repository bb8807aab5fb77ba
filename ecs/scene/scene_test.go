package scene_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
	"github.com/plus3/stagecraft/ecs/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const solar = `
name: solar
nodes:
  - name: sun
    position: [1, 0, 0]
    scale: [2, 2, 2]
    children:
      - name: earth
        position: [5, 0, 0]
        children:
          - name: moon
            position: [0, 1, 0]
  - name: comet
    position: [0, 0, -3]
    rotation: [0, 0, 90]
`

func TestParse(t *testing.T) {
	doc, err := scene.Parse([]byte(solar))
	require.NoError(t, err)

	assert.Equal(t, "solar", doc.Name)
	assert.Equal(t, 4, doc.Count())
	require.Len(t, doc.Nodes, 2)

	sun := doc.Nodes[0].Transform()
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, sun.Scale)

	comet := doc.Nodes[1].Transform()
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, comet.Scale, "missing scale is unit scale")
	rotated := comet.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	assert.True(t, rotated.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-9), "got %v", rotated)
}

func TestParseErrors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := scene.Parse([]byte("nodes: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("zero scale", func(t *testing.T) {
		_, err := scene.Parse([]byte("nodes:\n  - name: flat\n    scale: [1, 0, 1]\n"))
		assert.ErrorContains(t, err, "node /flat: zero scale component")
	})
}

func newWorld(t *testing.T, loader *scene.Loader) *ecs.World {
	t.Helper()
	w := ecs.NewWorld(ecs.NewComponentRegistry())
	require.NoError(t, w.AddPlugin(scene.Plugin{Loader: loader}))
	return w
}

func globalsByName(w *ecs.World) map[string]mgl64.Vec3 {
	view := ecs.NewView[struct {
		*scene.Name
		*ecs.GlobalTransform
	}](w.Storage())

	positions := make(map[string]mgl64.Vec3)
	for row := range view.Values() {
		positions[row.Name.Value] = row.GlobalTransform.Position
	}
	return positions
}

func TestLoaderSpawnsScene(t *testing.T) {
	loader := scene.NewLoader(zaptest.NewLogger(t))
	w := newWorld(t, loader)

	loader.LoadBytes("solar.yaml", []byte(solar))
	loader.Wait()
	assert.Equal(t, 0, loader.Pending())
	assert.Equal(t, 1, loader.Loaded())

	// The poll system queues the scene; the next step applies it.
	require.NoError(t, w.Step(1.0/60.0))
	assert.Zero(t, w.Storage().Count(reflect.TypeFor[scene.Name]()))
	require.NoError(t, w.Step(1.0/60.0))
	require.NoError(t, w.LastFlush().Err())

	positions := globalsByName(w)
	assert.Len(t, positions, 5)
	assert.True(t, positions["earth"].ApproxEqualThreshold(mgl64.Vec3{11, 0, 0}, 1e-9), "earth at %v", positions["earth"])
	assert.True(t, positions["moon"].ApproxEqualThreshold(mgl64.Vec3{11, 2, 0}, 1e-9), "moon at %v", positions["moon"])
	assert.True(t, positions["comet"].ApproxEqualThreshold(mgl64.Vec3{0, 0, -3}, 1e-9))

	roots := ecs.NewView[struct{ *scene.SceneRoot }](w.Storage())
	require.Equal(t, 1, roots.Count())
	for root, row := range roots.Iter() {
		assert.Equal(t, "solar.yaml", row.SceneRoot.Source)
		assert.Equal(t, 4, row.SceneRoot.Nodes)
		children, ok := ecs.Get[ecs.Children](w.Storage(), root)
		require.True(t, ok)
		assert.Len(t, children.Entities, 2)
	}
}

func TestLoaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(solar), 0o644))

	loader := scene.NewLoader(nil)
	w := ecs.NewWorld(ecs.NewComponentRegistry())
	require.NoError(t, w.AddPlugin(scene.Plugin{Loader: loader, Paths: []string{path}}))
	loader.Wait()

	require.NoError(t, w.Step(0))
	require.NoError(t, w.Step(0))
	assert.Len(t, globalsByName(w), 5)
	assert.NoError(t, loader.Err())
}

func TestLoaderFailures(t *testing.T) {
	loader := scene.NewLoader(zaptest.NewLogger(t))
	w := newWorld(t, loader)

	loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	loader.LoadBytes("broken", []byte("nodes: [unterminated"))
	loader.Wait()

	assert.Equal(t, 0, loader.Pending())
	assert.Equal(t, 0, loader.Loaded())
	err := loader.Err()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "parse scene broken")

	require.NoError(t, w.Step(0))
	require.NoError(t, w.Step(0))
	assert.Zero(t, w.Storage().Len())
}

func TestFlushCommandsDrains(t *testing.T) {
	loader := scene.NewLoader(nil)
	loader.LoadBytes("a", []byte("name: a\n"))
	loader.LoadBytes("b", []byte("name: b\n"))
	loader.Wait()

	n := 0
	for range loader.FlushCommands() {
		n++
	}
	assert.Equal(t, 2, n)

	for range loader.FlushCommands() {
		t.Fatal("second flush must be empty")
	}
}

func TestPluginRejectsSecondLoader(t *testing.T) {
	w := newWorld(t, nil)
	err := w.AddPlugin(scene.Plugin{})
	assert.ErrorIs(t, err, ecs.ErrDuplicateResource)
}
