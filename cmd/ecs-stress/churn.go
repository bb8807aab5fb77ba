package main

import (
	"math/rand"

	"github.com/plus3/stagecraft/ecs"
)

// Population tracks the entities the harness spawned so churn can pick
// victims without scanning storage.
type Population struct {
	ecs.IsResource
	Entities []ecs.Entity
	Links    int
}

// ChurnSystem despawns random entities and queues replacements each frame,
// keeping the command buffers and the hierarchy cascade under load.
type ChurnSystem struct {
	Rng        *rand.Rand
	PerFrame   int
	Population ecs.Res[Population]
}

func (s *ChurnSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&s.Population}
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) error {
	pop := s.Population.Get()
	if len(pop.Entities) == 0 {
		return nil
	}
	for i := 0; i < s.PerFrame; i++ {
		idx := s.Rng.Intn(len(pop.Entities))
		frame.Commands.RemoveEntity(pop.Entities[idx])
		pop.Entities[idx] = SpawnRandomEntity(frame.Commands, s.Rng, s.Rng.Intn(5)+1)
	}
	return nil
}
