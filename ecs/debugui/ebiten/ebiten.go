// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/plus3/stagecraft/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Register it as a resource so systems and hosts can reach the backend.
type ImguiBackend struct {
	ecs.IsResource
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	return &ImguiBackend{EbitenBackend: backend}
}

// Frame runs step inside an ImGui frame, so ImGui systems can draw.
func (b *ImguiBackend) Frame(step func() error) error {
	b.BeginFrame()
	defer b.EndFrame()
	return step()
}
