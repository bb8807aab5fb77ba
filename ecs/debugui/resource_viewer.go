package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

func NewResourceViewerComponent() ResourceViewerComponent {
	return ResourceViewerComponent{}
}

// Render lists every registered resource with editable fields.
func (rv *ResourceViewerComponent) Render(resources *ecs.Resources, selection *Selection) {
	if !imgui.BeginV("Resources", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, t := range resources.Types() {
		res, ok := resources.Get(t)
		if !ok {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			renderValue(reflect.ValueOf(res).Elem(), selection)
			imgui.TreePop()
		}
	}

	imgui.End()
}
