package scene

import "github.com/plus3/stagecraft/ecs"

// Plugin registers the scene components, the loader resource and the poll
// system that drains it at the start of every frame. Paths are loaded as
// soon as the plugin is built.
type Plugin struct {
	Loader *Loader
	Paths  []string
}

// Build implements ecs.Plugin.
func (p Plugin) Build(w *ecs.World) error {
	ecs.RegisterComponent[Name](w.Registry())
	ecs.RegisterComponent[SceneRoot](w.Registry())

	loader := p.Loader
	if loader == nil {
		loader = NewLoader(nil)
	}
	if err := w.RegisterResource(loader); err != nil {
		return err
	}
	w.RegisterSystem(ecs.NewAssetPollSystem[Loader](), ecs.StageFirst)

	for _, path := range p.Paths {
		loader.Load(path)
	}
	return nil
}
