package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stagecraft/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = selection.Entity

	if ci.selectedEntity == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !storage.Alive(ci.selectedEntity) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntity))
	if parent, ok := ecs.Get[ecs.Parent](storage, ci.selectedEntity); ok {
		renderEntityLink("Parent", parent.Entity, selection)
	}
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(ci.selectedEntity) {
		component := storage.GetComponent(ci.selectedEntity, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			renderValue(reflect.ValueOf(component).Elem(), selection)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws editable widgets for the exported fields of an
// addressable struct value. Edits write straight into storage.
func renderValue(val reflect.Value, selection *Selection) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}

		renderField(field.Name, fieldVal, field, selection)
	}
}

// renderEntityLink draws an entity reference that selects its target.
func renderEntityLink(name string, e ecs.Entity, selection *Selection) {
	imgui.Text(name + ":")
	imgui.SameLine()
	if e == 0 {
		imgui.Text("-")
		return
	}
	if imgui.SmallButton(fmt.Sprintf("%s##%s", e, name)) {
		selection.Entity = e
	}
}

func renderField(name string, val reflect.Value, field FieldInfo, selection *Selection) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch field.Kind {
	case FieldEntity:
		renderEntityLink(name, ecs.Entity(val.Uint()), selection)
		return

	case FieldEntities:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				renderEntityLink(fmt.Sprintf("%d", i), ecs.Entity(val.Index(i).Uint()), selection)
			}
			imgui.TreePop()
		}
		return

	case FieldVec3:
		v := [3]float32{float32(val.Index(0).Float()), float32(val.Index(1).Float()), float32(val.Index(2).Float())}
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(240)
		if imgui.InputFloat3(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			for i := range v {
				val.Index(i).SetFloat(float64(v[i]))
			}
		}
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val, selection)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}
