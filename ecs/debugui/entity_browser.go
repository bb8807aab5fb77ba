package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	Parent         ecs.Entity
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	version       uint64
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	if maxEntitiesPerPage <= 0 {
		maxEntitiesPerPage = 100
	}
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterComponent = ""
	}
	if eb.filterComponent != "" {
		imgui.Text("Table: " + eb.filterComponent)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Parent")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.getFilteredEntities()
		startIdx, endIdx := eb.pageBounds(len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := selection.Entity == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntity = entity.ID
				selection.Entity = entity.ID
			}

			imgui.TableNextColumn()
			if entity.Parent != 0 {
				imgui.Text(fmt.Sprintf("%d", entity.Parent))
			} else {
				imgui.Text("-")
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.getFilteredEntities()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) pageBounds(total int) (int, int) {
	totalPages := (total + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
	if eb.currentPage >= totalPages {
		eb.currentPage = max(totalPages-1, 0)
	}
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	endIdx := min(startIdx+eb.maxEntitiesPerPage, total)
	return startIdx, endIdx
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	if eb.cache.version != storage.Version() {
		eb.cache.entities = nil
		eb.cache.version = storage.Version()
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(storage)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	eb.cache.entities = make([]EntityInfo, 0, storage.Len())

	for e := range storage.Entities() {
		types := storage.ComponentTypes(e)
		componentTypes := make([]string, len(types))
		for i, t := range types {
			componentTypes[i] = t.String()
		}

		info := EntityInfo{
			ID:             e,
			ComponentTypes: componentTypes,
			ComponentCount: len(componentTypes),
		}
		if parent, ok := ecs.Get[ecs.Parent](storage, e); ok {
			info.Parent = parent.Entity
		}
		eb.cache.entities = append(eb.cache.entities, info)
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.Slice(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Parent < b.Parent
		case 2:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterComponent == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterComponent != "" && !slices.Contains(entity.ComponentTypes, eb.filterComponent) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterByComponent restricts the browser to entities holding the named
// component type; an empty name clears the restriction.
func (eb *EntityBrowserComponent) FilterByComponent(typeName string) {
	eb.filterComponent = typeName
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.Entity {
	return eb.selectedEntity
}
