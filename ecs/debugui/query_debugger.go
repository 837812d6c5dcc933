package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

func NewQueryDebugger(maxRows int) QueryDebugger {
	return QueryDebugger{
		selected: make(map[string]bool),
		maxRows:  maxRows,
	}
}

// Render lets the user tick component types and lists the entities carrying all of them.
func (qd *QueryDebugger) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = make(map[string]bool)
	}

	for _, t := range sortedTypes(storage) {
		name := t.String()
		checked := qd.selected[name]
		if imgui.Checkbox(name, &checked) {
			if checked {
				qd.selected[name] = true
			} else {
				delete(qd.selected, name)
			}
		}
	}

	imgui.Separator()

	types, matches := qd.match(storage)
	if len(types) == 0 {
		imgui.Text("No component types selected")
		return
	}

	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryMatches", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, id := range matches[:min(len(matches), qd.maxRows)] {
			imgui.TableNextRow()

			imgui.TableSetColumnIndex(0)
			if imgui.SelectableBoolV(entityLabel(id), selection.Entity == id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Entity = id
			}

			imgui.TableSetColumnIndex(1)
			imgui.Text(fmt.Sprintf("%d", len(storage.ComponentTypes(id))))
		}

		imgui.EndTable()
	}
	if len(matches) > qd.maxRows {
		imgui.Text(fmt.Sprintf("... %d more", len(matches)-qd.maxRows))
	}
}

// match resolves the selected type names against the storage's tables and returns the
// entities carrying every one of them.
func (qd *QueryDebugger) match(storage *ecs.Storage) ([]reflect.Type, []ecs.EntityId) {
	var types []reflect.Type
	for _, t := range storage.TableTypes() {
		if qd.selected[t.String()] {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, nil
	}
	return types, storage.Match(types...)
}

func sortedTypes(storage *ecs.Storage) []reflect.Type {
	types := storage.TableTypes()
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}
