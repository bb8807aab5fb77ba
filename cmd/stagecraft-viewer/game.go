package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/stagecraft/ecs"
	debugui_ebiten "github.com/plus3/stagecraft/ecs/debugui/ebiten"
	"github.com/plus3/stagecraft/internal/config"
	"go.uber.org/zap"
)

const pixelsPerUnit = 40

type drawable struct {
	*ecs.GlobalTransform
	Parent *ecs.Parent `ecs:"optional"`
}

// Game drives the world from ebiten's update loop and draws every entity
// with a global transform as a square, linked to its parent by a line.
type Game struct {
	world   *ecs.World
	globals *ecs.View[drawable]
	backend *debugui_ebiten.ImguiBackend
	cfg     *config.Config
	log     *zap.Logger
	width   int
	height  int
}

func NewGame(world *ecs.World, cfg *config.Config, backend *debugui_ebiten.ImguiBackend, log *zap.Logger) *Game {
	return &Game{
		world:   world,
		globals: ecs.NewView[drawable](world.Storage()),
		backend: backend,
		cfg:     cfg,
		log:     log,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if limit := g.cfg.Loop.MaxFrames; limit > 0 && g.world.Frame() >= limit {
		g.log.Info("frame limit reached", zap.Uint64("frames", g.world.Frame()))
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	step := func() error { return g.world.Step(dt) }

	var err error
	if g.backend != nil {
		err = g.backend.Frame(step)
	} else {
		err = step()
	}
	if err != nil {
		g.log.Error("frame failed", zap.Uint64("frame", g.world.Frame()), zap.Error(err))
		return err
	}

	for _, failure := range g.world.LastFlush().Failed {
		g.log.Warn("command failed", zap.Uint64("frame", g.world.Frame()), zap.Error(failure))
	}
	return nil
}

var (
	entityColor = color.RGBA{R: 0x4c, G: 0xaf, B: 0xe0, A: 0xff}
	linkColor   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

func (g *Game) Draw(screen *ebiten.Image) {
	storage := g.world.Storage()
	for row := range g.globals.Values() {
		x, y := screenPoint(row.GlobalTransform.Position, g.width, g.height, pixelsPerUnit)
		if row.Parent != nil {
			if parent, ok := ecs.Get[ecs.GlobalTransform](storage, row.Parent.Entity); ok {
				px, py := screenPoint(parent.Position, g.width, g.height, pixelsPerUnit)
				vector.StrokeLine(screen, px, py, x, y, 1, linkColor, true)
			}
		}

		size := float32(6 * row.GlobalTransform.Scale.X())
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, entityColor, true)
	}

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
