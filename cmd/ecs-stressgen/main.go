// Command ecs-stressgen writes the component and system definitions used by
// ecs-stress. Regenerate with:
//
//	go run ./cmd/ecs-stressgen -components 16 -systems 8 -out cmd/ecs-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"os"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"
)

var stages = []string{"StageFirst", "StagePreUpdate", "StageUpdate", "StagePostUpdate", "StageLast"}

type component struct {
	Index int
}

type system struct {
	Index    int
	Stage    string
	Target   int
	Source   int
	Optional int // -1 when the system has no optional slot
}

type model struct {
	Components []component
	Systems    []system
}

// buildModel assigns each system a target and source component pair and, for
// every other system, an optional third slot. The layout is deterministic so
// regenerating with the same flags is a no-op.
func buildModel(componentCount, systemCount int) model {
	m := model{}
	for i := 0; i < componentCount; i++ {
		m.Components = append(m.Components, component{Index: i})
	}
	for i := 0; i < systemCount; i++ {
		s := system{
			Index:    i,
			Stage:    stages[i%len(stages)],
			Target:   (2 * i) % componentCount,
			Source:   (2*i + 1) % componentCount,
			Optional: -1,
		}
		if i%2 == 1 {
			s.Optional = (2*i + 5) % componentCount
			if s.Optional == s.Target || s.Optional == s.Source {
				s.Optional = -1
			}
		}
		m.Systems = append(m.Systems, s)
	}
	return m
}

const source = `// Code generated by ecs-stressgen; DO NOT EDIT.

package main

import (
	"math/rand"

	"github.com/plus3/stagecraft/ecs"
)

const (
	componentCount = {{len .Components}}
	systemCount    = {{len .Systems}}
)
{{range .Components}}
type Component{{.Index}} struct {
	ecs.IsComponent
	Value float64
}
{{end}}
func RegisterAllGeneratedComponents(registry *ecs.ComponentRegistry) {
{{- range .Components}}
	ecs.RegisterComponent[Component{{.Index}}](registry)
{{- end}}
}

var componentFactories = [componentCount]func(rng *rand.Rand) ecs.Component{
{{- range .Components}}
	func(rng *rand.Rand) ecs.Component { return Component{{.Index}}{Value: rng.Float64()} },
{{- end}}
}
{{range .Systems}}
type System{{.Index}} struct {
	Query ecs.Query[struct {
		Target *Component{{.Target}}
		Source *Component{{.Source}}
{{- if ge .Optional 0}}
		Extra  *Component{{.Optional}} ` + "`" + `ecs:"optional"` + "`" + `
{{- end}}
	}]
}

func (s *System{{.Index}}) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{&s.Query}
}

func (s *System{{.Index}}) Execute(frame *ecs.UpdateFrame) error {
	for row := range s.Query.Values() {
		row.Target.Value += row.Source.Value * frame.DeltaTime
{{- if ge .Optional 0}}
		if row.Extra != nil {
			row.Extra.Value *= 0.99
		}
{{- end}}
	}
	return nil
}
{{end}}
func RegisterAllGeneratedSystems(w *ecs.World) {
{{- range .Systems}}
	w.RegisterSystem(&System{{.Index}}{}, ecs.{{.Stage}})
{{- end}}
}
`

func main() {
	components := flag.Int("components", 16, "Number of component types to generate.")
	systems := flag.Int("systems", 8, "Number of systems to generate.")
	out := flag.String("out", "generated.go", "Output file.")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	if *components < 2 {
		log.Fatal("at least two components are required")
	}

	tmpl := template.Must(template.New("generated").Parse(source))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildModel(*components, *systems)); err != nil {
		log.Fatalf("execute template: %v", err)
	}

	// imports.Process formats the output and prunes unused imports.
	formatted, err := imports.Process(*out, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		log.Fatalf("format generated source: %v", err)
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Infof("wrote %s: %d components, %d systems", *out, *components, *systems)
}
