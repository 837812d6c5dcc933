package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

// TableInfo summarizes one component table.
type TableInfo struct {
	Component string
	Rows      int
	Capacity  int
}

type tableViewerCache struct {
	tables        []TableInfo
	sortColumn    int
	sortAscending bool
}

func NewTableViewer() TableViewer {
	return TableViewer{
		cache: &tableViewerCache{sortColumn: 1},
	}
}

// Render lists component tables. Clicking a row focuses the entity browser on the entities
// of that table.
func (tv *TableViewer) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Component Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	tv.cache.tables = collectTables(storage)
	sortTables(tv.cache.tables, tv.cache.sortColumn, tv.cache.sortAscending)

	maxRows := 0
	for _, table := range tv.cache.tables {
		maxRows = max(maxRows, table.Rows)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTables", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Rows")
		imgui.TableSetupColumn("Capacity")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.cache.sortColumn = int(spec.ColumnIndex())
			tv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortTables(tv.cache.tables, tv.cache.sortColumn, tv.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.cache.tables {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(table.Component, selection.Component == table.Component, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Component = table.Component
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Rows))
			if maxRows > 0 {
				barWidth := float32(table.Rows) / float32(maxRows) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Capacity))
		}

		imgui.EndTable()
	}

	imgui.End()
}

func collectTables(storage *ecs.Storage) []TableInfo {
	stats := storage.CollectStats()
	tables := make([]TableInfo, len(stats.TableBreakdown))
	for i, t := range stats.TableBreakdown {
		tables[i] = TableInfo{Component: t.ComponentType, Rows: t.Rows, Capacity: t.Capacity}
	}
	return tables
}

func sortTables(tables []TableInfo, column int, ascending bool) {
	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i], tables[j]
		var less bool

		switch column {
		case 0:
			less = a.Component < b.Component
		case 2:
			less = a.Capacity < b.Capacity
		default:
			less = a.Rows < b.Rows
		}

		if !ascending {
			return !less
		}
		return less
	})
}
