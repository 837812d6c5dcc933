package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/arcade/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
}

type entityBrowserCache struct {
	entities      []EntityInfo
	signature     storageSignature
	sortColumn    int
	sortAscending bool
}

// storageSignature changes whenever an entity or a component is added or removed.
type storageSignature struct {
	entities int
	rows     int
	tables   int
}

func signatureOf(storage *ecs.Storage) storageSignature {
	stats := storage.CollectStats()
	sig := storageSignature{entities: stats.TotalEntityCount, tables: stats.TableCount}
	for _, table := range stats.TableBreakdown {
		sig.rows += table.Rows
	}
	return sig
}

func entityLabel(id ecs.EntityId) string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

func NewEntityBrowser(maxEntitiesPerPage int) EntityBrowser {
	return EntityBrowser{
		cache:              &entityBrowserCache{sortAscending: true},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Render(storage *ecs.Storage, selection *Selection) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		selection.Component = ""
	}
	if selection.Component != "" {
		imgui.Text("Table: " + selection.Component)
	}

	filtered := filterEntities(eb.cache.entities, eb.filterText, selection.Component)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := pageBounds(len(filtered), eb.currentPage, eb.maxEntitiesPerPage)
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entityLabel(entity.ID), selection.Entity == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Entity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	sig := signatureOf(storage)
	if eb.cache.entities != nil && sig == eb.cache.signature {
		return
	}
	eb.cache.signature = sig
	eb.cache.entities = collectEntities(storage)
	sortEntities(eb.cache.entities, eb.cache.sortColumn, eb.cache.sortAscending)
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, storage.Len())
	for id := range storage.Entities() {
		types := storage.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		entities = append(entities, EntityInfo{ID: id, ComponentTypes: names})
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		var less bool

		switch column {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.ID.Index() < b.ID.Index()
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// filterEntities keeps entities carrying component (when set) whose label or component
// names contain text, case-insensitively.
func filterEntities(entities []EntityInfo, text, component string) []EntityInfo {
	if text == "" && component == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	needle := strings.ToLower(text)

	for _, entity := range entities {
		if component != "" && !slices.Contains(entity.ComponentTypes, component) {
			continue
		}

		if needle != "" {
			components := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
			if !strings.Contains(entityLabel(entity.ID), needle) && !strings.Contains(components, needle) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}
	return filtered
}

func pageBounds(total, page, perPage int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}
