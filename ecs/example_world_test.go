package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stagecraft/ecs"
)

// ExampleWorld demonstrates the frame loop: commands queued before a Step are
// applied at its start, global transforms are synchronized, then every stage
// runs.
func ExampleWorld() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Name](registry)
	world := ecs.NewWorld(registry)

	cmd := world.Commands()
	ship := cmd.Spawn(Name{Value: "ship"}, ecs.NewTransform(mgl64.Vec3{10, 0, 0}))
	turret := cmd.Spawn(Name{Value: "turret"}, ecs.NewTransform(mgl64.Vec3{0, 2, 0}))
	cmd.AddChild(ship, turret)

	view := ecs.NewView[struct {
		*Name
		*ecs.GlobalTransform
	}](world.Storage())

	world.RegisterSystem(ecs.SystemFunc(func(frame *ecs.UpdateFrame) error {
		if item := view.Get(turret); item != nil {
			p := item.GlobalTransform.Position
			fmt.Printf("frame %d: %s at (%.0f, %.0f, %.0f)\n", frame.Frame, item.Name.Value, p.X(), p.Y(), p.Z())
		}
		return nil
	}), ecs.StageLast)

	if err := world.Step(1.0 / 60); err != nil {
		fmt.Println(err)
	}

	// Output:
	// frame 1: turret at (10, 2, 0)
}

// ExampleView_optional shows optional slots: an absent component leaves its
// field nil, while a present zero value is still reported.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	world := ecs.NewWorld(registry)

	cmd := world.Commands()
	cmd.Spawn(Position{X: 10, Y: 10}, Health{Current: 50, Max: 100})
	cmd.Spawn(Position{X: 30, Y: 30})
	world.Flush()

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](world.Storage())

	type line struct {
		x    float32
		text string
	}
	var lines []line
	for item := range view.Values() {
		if item.Health != nil {
			lines = append(lines, line{item.Position.X, fmt.Sprintf("health %d/%d", item.Health.Current, item.Health.Max)})
		} else {
			lines = append(lines, line{item.Position.X, "invulnerable"})
		}
	}
	// Iteration order is unspecified, so sort before printing.
	if len(lines) == 2 && lines[0].x > lines[1].x {
		lines[0], lines[1] = lines[1], lines[0]
	}
	for _, l := range lines {
		fmt.Printf("(%.0f) %s\n", l.x, l.text)
	}

	// Output:
	// (10) health 50/100
	// (30) invulnerable
}

// ExampleCommands shows receipts: a command's outcome is known once the
// buffer has been applied.
func ExampleCommands() {
	world := ecs.NewWorld(ecs.NewComponentRegistry())
	cmd := world.Commands()

	a := cmd.CreateEntity()
	b := cmd.CreateEntity()
	ok := cmd.AddChild(a, b)
	cycle := cmd.AddChild(b, a)

	fmt.Println("before flush:", ok.Done())
	report := world.Flush()
	fmt.Println("applied:", report.Applied, "failed:", len(report.Failed))
	fmt.Println("first link:", ok.Applied())
	fmt.Println("second link:", cycle.Err())

	// Output:
	// before flush: false
	// applied: 3 failed: 1
	// first link: true
	// second link: add child parent=entity#2 child=entity#1: ecs: circular hierarchy reference
}

type scoreBoard struct {
	ecs.IsResource
	Points int
}

type scoreSystem struct {
	Board ecs.Res[scoreBoard]
}

func (s *scoreSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&s.Board}
}

func (s *scoreSystem) Execute(*ecs.UpdateFrame) error {
	s.Board.Get().Points += 10
	return nil
}

// ExampleRes shows a system that is skipped until its resource exists.
func ExampleRes() {
	world := ecs.NewWorld(ecs.NewComponentRegistry())
	world.RegisterSystem(&scoreSystem{}, ecs.StageUpdate)

	world.Step(0)
	world.Commands().RegisterResource(&scoreBoard{})
	world.Step(0)
	world.Step(0)

	board, _ := ecs.GetResource[scoreBoard](world.Resources())
	fmt.Println("points:", board.Points)
	fmt.Println("skips:", world.Stats().Systems[0].SkipCount)
	fmt.Println(world.Resources().Types()[0] == reflect.TypeFor[scoreBoard]())

	// Output:
	// points: 20
	// skips: 1
	// true
}
