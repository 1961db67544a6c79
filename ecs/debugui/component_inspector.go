package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bulletfall/ecs"
)

// ComponentInspector shows and edits the components of one entity.
// Edits write straight into component storage.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, entity ecs.EntityId) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if entity == 0 {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(entity) {
		imgui.Text(fmt.Sprintf("Entity %s is gone", entity))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %s", entity))
	imgui.Separator()

	for _, compType := range storage.ArchetypeOf(entity).Types() {
		component := storage.GetComponent(entity, compType)
		if component == nil {
			continue
		}

		fields := globalReflectionCache.GetFields(compType)
		if len(fields) == 0 {
			imgui.BulletText(compType.String())
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			for _, field := range fields {
				ci.renderField(component, field)
			}
			imgui.TreePop()
		}
	}
}

func (ci *ComponentInspector) renderField(component any, info FieldInfo) {
	val := fieldValue(component, info)
	label := "##" + info.Name

	switch info.Kind {
	case FieldFloat:
		v := float32(val.Float())
		imgui.Text(info.Name)
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			setNumber(val, float64(v))
		}

	case FieldInt, FieldUint:
		var v int32
		if info.Kind == FieldInt {
			v = int32(val.Int())
		} else {
			v = int32(val.Uint())
		}
		imgui.Text(info.Name)
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			setNumber(val, float64(v))
		}

	case FieldBool:
		v := val.Bool()
		if imgui.Checkbox(info.Name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", info.Name, val.Interface()))
	}
}
