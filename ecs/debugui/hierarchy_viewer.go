package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

func NewHierarchyViewerComponent() HierarchyViewerComponent {
	return HierarchyViewerComponent{showGlobal: true}
}

// HierarchyRoots returns the entities that have children but no parent,
// sorted by id.
func HierarchyRoots(storage *ecs.Storage) []ecs.Entity {
	view := ecs.NewView[struct{ *ecs.Children }](storage)
	var roots []ecs.Entity
	for e := range view.Entities() {
		if !ecs.Has[ecs.Parent](storage, e) {
			roots = append(roots, e)
		}
	}
	slices.Sort(roots)
	return roots
}

func (hv *HierarchyViewerComponent) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Hierarchy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Show global positions", &hv.showGlobal)
	imgui.Separator()

	roots := HierarchyRoots(storage)
	if len(roots) == 0 {
		imgui.Text("No parent/child links")
	}
	for _, root := range roots {
		hv.renderNode(storage, selection, root)
	}

	imgui.End()
}

func (hv *HierarchyViewerComponent) renderNode(storage *ecs.Storage, selection *Selection, e ecs.Entity) {
	label := hv.label(storage, e)
	kids, hasKids := ecs.Get[ecs.Children](storage, e)

	if !hasKids {
		if imgui.SelectableBoolV(label, selection.Entity == e, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			selection.Entity = e
		}
		return
	}

	if imgui.TreeNodeStr(label) {
		if imgui.Button(fmt.Sprintf("Select##%d", e)) {
			selection.Entity = e
		}
		for _, child := range kids.Entities {
			hv.renderNode(storage, selection, child)
		}
		imgui.TreePop()
	}
}

func (hv *HierarchyViewerComponent) label(storage *ecs.Storage, e ecs.Entity) string {
	if hv.showGlobal {
		if g, ok := ecs.Get[ecs.GlobalTransform](storage, e); ok {
			return fmt.Sprintf("%d (%.2f, %.2f, %.2f)", e, g.Position.X(), g.Position.Y(), g.Position.Z())
		}
	}
	return fmt.Sprintf("%d", e)
}
