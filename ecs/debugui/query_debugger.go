package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []string
	typeMap        map[string]reflect.Type
	lastTableCount int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastTableCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(storage)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			qd.Toggle(compType, selected)
		}
	}

	imgui.Separator()

	selectedTypes := qd.SelectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}
	if len(selectedTypes) > ecs.MaxViewArity {
		imgui.Text(fmt.Sprintf("Queries join at most %d component types", ecs.MaxViewArity))
	}

	matching := MatchingEntities(storage, selectedTypes)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Table Sizes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryTableSizes", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, t := range selectedTypes {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(t.String())
				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", storage.Count(t)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Toggle selects or deselects a component type by name.
func (qd *QueryDebuggerComponent) Toggle(typeName string, selected bool) {
	if selected {
		qd.selectedComponentTypes[typeName] = true
	} else {
		delete(qd.selectedComponentTypes, typeName)
	}
}

// SelectedTypes resolves the selected names against the known tables.
func (qd *QueryDebuggerComponent) SelectedTypes() []reflect.Type {
	selectedTypes := make([]reflect.Type, 0, len(qd.selectedComponentTypes))
	for typeName := range qd.selectedComponentTypes {
		if t, ok := qd.cache.typeMap[typeName]; ok {
			selectedTypes = append(selectedTypes, t)
		}
	}
	sort.Slice(selectedTypes, func(i, j int) bool {
		return selectedTypes[i].String() < selectedTypes[j].String()
	})
	return selectedTypes
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	tables := storage.Tables()
	if qd.cache.lastTableCount != len(tables) {
		qd.cache.componentTypes = nil
		qd.cache.lastTableCount = len(tables)
	}

	if qd.cache.componentTypes == nil {
		qd.rebuildCache(tables)
	}
}

func (qd *QueryDebuggerComponent) rebuildCache(tables []ecs.TableStats) {
	qd.cache.typeMap = make(map[string]reflect.Type, len(tables))
	qd.cache.componentTypes = make([]string, 0, len(tables))
	for _, table := range tables {
		name := table.Type.String()
		qd.cache.typeMap[name] = table.Type
		qd.cache.componentTypes = append(qd.cache.componentTypes, name)
	}

	sort.Strings(qd.cache.componentTypes)
}

// MatchingEntities returns, sorted by id, the entities that hold every one
// of the given component types. It mirrors what a View over those types
// would yield without needing a static struct shape.
func MatchingEntities(storage *ecs.Storage, requiredTypes []reflect.Type) []ecs.Entity {
	if len(requiredTypes) == 0 {
		return nil
	}

	var matching []ecs.Entity
	for e := range storage.Entities() {
		if hasAllTypes(storage, e, requiredTypes) {
			matching = append(matching, e)
		}
	}

	sort.Slice(matching, func(i, j int) bool { return matching[i] < matching[j] })
	return matching
}

func hasAllTypes(storage *ecs.Storage, e ecs.Entity, requiredTypes []reflect.Type) bool {
	for _, required := range requiredTypes {
		if !storage.HasComponent(e, required) {
			return false
		}
	}
	return true
}
