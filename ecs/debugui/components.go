package debugui

import (
	"github.com/plus3/stagecraft/ecs"
)

type EntityBrowserComponent struct {
	ecs.IsComponent
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterComponent    string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	ecs.IsComponent
	selectedEntity ecs.Entity
}

type TableViewerComponent struct {
	ecs.IsComponent
	tables        []ecs.TableStats
	selectedType  string
	sortColumn    int
	sortAscending bool
}

type HierarchyViewerComponent struct {
	ecs.IsComponent
	showGlobal bool
}

type ResourceViewerComponent struct {
	ecs.IsComponent
}

type PerformanceStatsComponent struct {
	ecs.IsComponent
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	ecs.IsComponent
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}

// Selection is shared by the panels: picking an entity in one panel shows it
// in the inspector.
type Selection struct {
	ecs.IsResource
	Entity ecs.Entity
}
