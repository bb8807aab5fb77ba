package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
	"go.uber.org/zap"
)

//go:generate go run ../ecs-stressgen -components 16 -systems 8 -out generated.go

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	hierarchy := flag.Float64("hierarchy", 0.25, "Fraction of entities parented to an earlier entity.")
	churn := flag.Int("churn", 50, "Entities despawned and respawned every frame.")
	seed := flag.Int64("seed", 1, "Random seed for population and churn.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, options{
		duration:       *duration,
		entities:       *entityCount,
		hierarchy:      *hierarchy,
		churn:          *churn,
		seed:           *seed,
		gcPauseMetrics: *gcPauseMetrics,
	}); err != nil {
		logger.Fatal("stress test failed", zap.Error(err))
	}
}

type options struct {
	duration       time.Duration
	entities       int
	hierarchy      float64
	churn          int
	seed           int64
	gcPauseMetrics bool
}

func run(log *zap.Logger, opts options) error {
	log.Info("starting ECS stress test")
	rng := rand.New(rand.NewSource(opts.seed))

	// 1. Setup registry, world and the generated systems
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.NewWorld(registry)
	RegisterAllGeneratedSystems(world)

	population := &Population{}
	if err := world.RegisterResource(population); err != nil {
		return err
	}
	world.RegisterSystem(&ChurnSystem{Rng: rng, PerFrame: opts.churn}, ecs.StageLast)

	// 2. Populate storage with initial entities
	log.Info("populating storage", zap.Int("entities", opts.entities), zap.Float64("hierarchy", opts.hierarchy))
	c := world.Commands()
	for i := 0; i < opts.entities; i++ {
		// Spawn an entity with 1 to 5 random components
		e := SpawnRandomEntity(c, rng, rng.Intn(5)+1)
		if len(population.Entities) > 0 && rng.Float64() < opts.hierarchy {
			parent := population.Entities[rng.Intn(len(population.Entities))]
			c.AddChild(parent, e)
			population.Links++
		}
		population.Entities = append(population.Entities, e)
	}
	if err := world.Flush().Err(); err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	log.Info("population complete", zap.Int("alive", world.Storage().Len()))

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entities,
		Links:          population.Links,
		Churn:          opts.churn,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", opts.duration))
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := world.Step(deltaTime.Seconds()); err != nil {
				return fmt.Errorf("frame %d: %w", world.Frame(), err)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.FailedCommands += len(world.LastFlush().Failed)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(world.Frame())
	report.UpdateTime.Finalize()
	report.World = world.CollectStats()
	report.Scheduler = world.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished",
		zap.Uint64("frames", world.Frame()),
		zap.Int("alive", world.Storage().Len()),
		zap.Int("failed_commands", report.FailedCommands),
	)

	// 4. Generate report to console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	log.Info("stress test complete")
	return nil
}

// SpawnRandomEntity queues an entity holding n distinct random components
// and a transform.
func SpawnRandomEntity(c *ecs.Commands, rng *rand.Rand, n int) ecs.Entity {
	n = min(n, componentCount)
	components := make([]ecs.Component, 0, n+1)
	for _, idx := range rng.Perm(componentCount)[:n] {
		components = append(components, componentFactories[idx](rng))
	}
	components = append(components, ecs.NewTransform(mgl64.Vec3{rng.Float64(), rng.Float64(), 0}))
	return c.Spawn(components...)
}
