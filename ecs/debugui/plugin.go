package debugui

import (
	"github.com/plus3/stagecraft/ecs"
)

// PanelSystem renders every debug panel entity. Like ImguiSystem it must run
// inside an ImGui frame.
type PanelSystem struct {
	Selection   ecs.Res[Selection]
	Browsers    ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors  ecs.Query[struct{ *ComponentInspectorComponent }]
	Tables      ecs.Query[struct{ *TableViewerComponent }]
	Hierarchies ecs.Query[struct{ *HierarchyViewerComponent }]
	Resources   ecs.Query[struct{ *ResourceViewerComponent }]
	Performance ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries     ecs.Query[struct{ *QueryDebuggerComponent }]
}

// Dependencies implements ecs.Dependent.
func (p *PanelSystem) Dependencies() []ecs.Dependency {
	return []ecs.Dependency{
		&p.Selection,
		&p.Browsers,
		&p.Inspectors,
		&p.Tables,
		&p.Hierarchies,
		&p.Resources,
		&p.Performance,
		&p.Queries,
	}
}

// Execute implements ecs.System.
func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) error {
	selection := p.Selection.Get()
	storage := frame.Storage

	for item := range p.Tables.Values() {
		if clicked := item.TableViewerComponent.Render(storage); clicked != "" {
			for browser := range p.Browsers.Values() {
				browser.EntityBrowserComponent.FilterByComponent(item.TableViewerComponent.Selected())
			}
		}
	}
	for item := range p.Browsers.Values() {
		item.EntityBrowserComponent.Render(storage, selection)
	}
	for item := range p.Hierarchies.Values() {
		item.HierarchyViewerComponent.Render(storage, selection)
	}
	for item := range p.Inspectors.Values() {
		item.ComponentInspectorComponent.Render(storage, selection)
	}
	for item := range p.Resources.Values() {
		item.ResourceViewerComponent.Render(frame.Resources, selection)
	}
	for item := range p.Performance.Values() {
		item.PerformanceStatsComponent.Render(frame)
	}
	for item := range p.Queries.Values() {
		item.QueryDebuggerComponent.Render(storage)
	}
	return nil
}

// Plugin installs the debug panels, their resources and systems into a world.
type Plugin struct {
	EntitiesPerPage int
	HistoryFrames   int
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[TableViewerComponent](registry)
	ecs.RegisterComponent[HierarchyViewerComponent](registry)
	ecs.RegisterComponent[ResourceViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}

// SpawnDebugUI queues one entity per panel.
func SpawnDebugUI(c *ecs.Commands, entitiesPerPage, historyFrames int) {
	c.Spawn(NewEntityBrowserComponent(entitiesPerPage))
	c.Spawn(NewComponentInspectorComponent())
	c.Spawn(NewTableViewerComponent())
	c.Spawn(NewHierarchyViewerComponent())
	c.Spawn(NewResourceViewerComponent())
	c.Spawn(NewPerformanceStatsComponent(historyFrames))
	c.Spawn(NewQueryDebuggerComponent())
}

// Build implements ecs.Plugin.
func (p Plugin) Build(w *ecs.World) error {
	RegisterDebugUIComponents(w.Registry())

	if err := w.RegisterResource(&Selection{}); err != nil {
		return err
	}
	if err := w.RegisterResource(&ImguiInputState{}); err != nil {
		return err
	}

	SpawnDebugUI(w.Commands(), p.EntitiesPerPage, p.HistoryFrames)

	w.RegisterSystem(&PanelSystem{}, ecs.StageLast)
	w.RegisterSystem(&ImguiSystem{}, ecs.StageLast)
	return nil
}
