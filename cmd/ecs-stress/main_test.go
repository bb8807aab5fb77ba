package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/stagecraft/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestSpawnRandomEntity(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.NewWorld(registry)
	rng := rand.New(rand.NewSource(3))

	e := SpawnRandomEntity(world.Commands(), rng, 4)
	require.NoError(t, world.Flush().Err())

	// Four generated components plus the transform.
	assert.Len(t, world.Storage().ComponentTypes(e), 5)
	assert.True(t, ecs.Has[ecs.Transform](world.Storage(), e))
}

func TestChurnKeepsPopulation(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.NewWorld(registry)
	rng := rand.New(rand.NewSource(5))

	pop := &Population{}
	for i := 0; i < 20; i++ {
		pop.Entities = append(pop.Entities, SpawnRandomEntity(world.Commands(), rng, 2))
	}
	require.NoError(t, world.RegisterResource(pop))
	world.RegisterSystem(&ChurnSystem{Rng: rng, PerFrame: 5}, ecs.StageLast)
	require.NoError(t, world.Flush().Err())

	for i := 0; i < 10; i++ {
		require.NoError(t, world.Step(0.01))
		require.NoError(t, world.LastFlush().Err())
	}
	require.NoError(t, world.Flush().Err())

	assert.Equal(t, 20, world.Storage().Len())
	for _, e := range pop.Entities {
		assert.True(t, world.Storage().Alive(e))
	}
}

func TestRunShort(t *testing.T) {
	err := run(zaptest.NewLogger(t), options{
		duration:  20 * time.Millisecond,
		entities:  200,
		hierarchy: 0.5,
		churn:     10,
		seed:      7,
	})
	require.NoError(t, err)
}

func TestReportGenerate(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.NewWorld(registry)
	RegisterAllGeneratedSystems(world)
	SpawnRandomEntity(world.Commands(), rand.New(rand.NewSource(1)), 3)
	require.NoError(t, world.Step(0.01))

	report := &Report{
		Entities:     1,
		Components:   componentCount,
		Systems:      systemCount,
		TotalUpdates: 1,
		World:        world.CollectStats(),
		Scheduler:    world.Stats(),
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# ECS Stress Test Report")
	assert.Contains(t, out, "| System0 | first |")
	assert.Contains(t, out, "main.Component")
}
