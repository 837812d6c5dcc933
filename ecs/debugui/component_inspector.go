package debugui

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

var errFieldNotSettable = errors.New("debugui: field not settable")

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{}
}

// Render shows the components of the selected entity. Edits are queued on commands
// and applied after the render pipeline.
func (ci *ComponentInspector) Render(storage *ecs.Storage, selection *Selection, commands *ecs.Commands) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id := selection.Entity
	if id.IsZero() {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %s was destroyed", entityLabel(id)))
		return
	}

	imgui.Text("Entity: " + entityLabel(id))
	if ci.lastEdit != "" {
		imgui.Text(ci.lastEdit)
	}
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(id) {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component)
			if val.Kind() == reflect.Ptr {
				val = val.Elem()
			}
			edit := func(path []int, value any) {
				commands.Defer(func() {
					if err := setField(storage, id, compType, path, value); err != nil {
						ci.lastEdit = err.Error()
						return
					}
					ci.lastEdit = ""
				})
			}
			ci.renderStruct(val, nil, edit)
			imgui.TreePop()
		}
	}
}

type editFunc func(path []int, value any)

func (ci *ComponentInspector) renderStruct(val reflect.Value, path []int, edit editFunc) {
	for _, field := range fieldCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		fieldPath := append(path[:len(path):len(path)], field.Index)

		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(field.Name + ": nil")
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, fieldPath, edit)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, path []int, edit editFunc) {
	label := fmt.Sprintf("##%s%v", name, path)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			edit(path, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 {
			edit(path, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			edit(path, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) {
			edit(path, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			edit(path, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val, path, edit)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Interface:
		if val.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Elem().Interface()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setField writes value into the field at path of the entity's component, converting it
// to the field's type.
func setField(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type, path []int, value any) error {
	component := storage.GetComponent(id, compType)
	if component == nil {
		return fmt.Errorf("%w: %s has no %s", ecs.ErrMissingComponent, entityLabel(id), compType)
	}

	field := reflect.ValueOf(component)
	for _, index := range path {
		for field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return fmt.Errorf("%w: nil pointer on path %v", errFieldNotSettable, path)
			}
			field = field.Elem()
		}
		field = field.Field(index)
	}
	for field.Kind() == reflect.Ptr && !field.IsNil() {
		field = field.Elem()
	}

	v := reflect.ValueOf(value)
	if !field.CanSet() || !v.CanConvert(field.Type()) {
		return fmt.Errorf("%w: %s%v", errFieldNotSettable, compType, path)
	}
	field.Set(v.Convert(field.Type()))
	return nil
}
