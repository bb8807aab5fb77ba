package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

func NewTableViewerComponent() TableViewerComponent {
	return TableViewerComponent{
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render lists every component table with its occupancy. It returns the
// type name of the row clicked this frame, or "".
func (tv *TableViewerComponent) Render(storage *ecs.Storage) string {
	if !imgui.BeginV("Component Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}

	tv.refresh(storage)

	maxCount := 0
	for _, table := range tv.tables {
		maxCount = max(maxCount, table.Count)
	}

	var clicked string

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTableList", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortTables()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.tables {
			name := table.Type.String()
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(name, tv.selectedType == name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if tv.selectedType == name {
					tv.selectedType = ""
				} else {
					tv.selectedType = name
				}
				clicked = name
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Count))

			if maxCount > 0 {
				barWidth := float32(table.Count) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// Selected returns the type name currently highlighted, or "".
func (tv *TableViewerComponent) Selected() string {
	return tv.selectedType
}

func (tv *TableViewerComponent) refresh(storage *ecs.Storage) {
	tv.tables = storage.Tables()
	tv.sortTables()
}

func (tv *TableViewerComponent) sortTables() {
	sort.SliceStable(tv.tables, func(i, j int) bool {
		a, b := tv.tables[i], tv.tables[j]
		var less bool

		switch tv.sortColumn {
		case 0:
			less = a.Type.String() < b.Type.String()
		default:
			less = a.Count < b.Count
		}

		if !tv.sortAscending {
			return !less
		}
		return less
	})
}
