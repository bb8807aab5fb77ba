// Command stagecraft-viewer opens a window onto an ECS world, loading YAML
// scenes and optionally showing the debug panels.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stagecraft/ecs"
	"github.com/plus3/stagecraft/ecs/debugui"
	debugui_ebiten "github.com/plus3/stagecraft/ecs/debugui/ebiten"
	"github.com/plus3/stagecraft/ecs/scene"
	"github.com/plus3/stagecraft/internal/config"
	"github.com/plus3/stagecraft/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stagecraft-viewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := config.Path("config/viewer.toml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log.Info("config loaded", zap.String("path", cfgPath))

	// 3. Build the world
	world, err := buildWorld(cfg, log)
	if err != nil {
		return err
	}

	// 4. Window and optional debug UI
	var backend *debugui_ebiten.ImguiBackend
	if cfg.Debug.Enabled {
		backend = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		imgui.CurrentIO().SetIniFilename("")
		if err := world.RegisterResource(backend); err != nil {
			return err
		}
		if err := world.AddPlugin(debugui.Plugin{
			EntitiesPerPage: cfg.Debug.EntitiesPerPage,
			HistoryFrames:   cfg.Debug.HistoryFrames,
		}); err != nil {
			return fmt.Errorf("debug ui: %w", err)
		}
	} else {
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / cfg.Loop.TickRate))

	if err := world.Startup(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	start := time.Now()
	err = ebiten.RunGame(NewGame(world, cfg, backend, log))
	log.Info("viewer stopped",
		zap.Uint64("frames", world.Frame()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

func buildWorld(cfg *config.Config, log *zap.Logger) (*ecs.World, error) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spin](registry)
	world := ecs.NewWorld(registry)

	loader := scene.NewLoader(log)
	if err := world.AddPlugin(scene.Plugin{Loader: loader, Paths: cfg.Scene.Paths}); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	world.RegisterSystem(&SpinSystem{}, ecs.StageUpdate)
	if len(cfg.Scene.Paths) == 0 {
		spawnDemo(world.Commands())
	} else {
		world.RegisterSystem(&SpinSceneSystem{Speed: 1}, ecs.StagePreUpdate)
	}
	return world, nil
}
