package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stagecraft/ecs"
	"github.com/plus3/stagecraft/ecs/debugui"
	debugui_ebiten "github.com/plus3/stagecraft/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	world   *ecs.World
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems (including ImguiSystem) run inside the ImGui frame
	return g.backend.Frame(func() error {
		return g.world.Step(1.0 / 60.0)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	world := ecs.NewWorld(ecs.NewComponentRegistry())
	if err := world.RegisterResource(backend); err != nil {
		panic(err)
	}

	// Panels, Selection and ImguiInputState resources, ImguiSystem and PanelSystem
	if err := world.AddPlugin(debugui.Plugin{EntitiesPerPage: 100, HistoryFrames: 120}); err != nil {
		panic(err)
	}

	// Spawn entities with ImGui render functions
	world.Commands().Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	// Run the game
	if err := ebiten.RunGame(&Game{world: world, backend: backend}); err != nil {
		panic(err)
	}
}
