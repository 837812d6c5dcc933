package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
)

type position struct {
	X, Y int
}

type label struct {
	Text   string
	Hidden bool
	Scale  *float64
	offset int
}

type body struct {
	Mass float32
	At   position
}

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[position](registry)
	ecs.RegisterComponent[label](registry)
	ecs.RegisterComponent[body](registry)
	return ecs.NewStorage(registry)
}

func TestCollectAndFilterEntities(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(position{X: 1})
	b := storage.Spawn(position{X: 2}, label{Text: "ball"})
	c := storage.Spawn(body{Mass: 3})

	entities := collectEntities(storage)
	require.Len(t, entities, 3)
	assert.Equal(t, a, entities[0].ID)
	assert.Equal(t, []string{"debugui.position", "debugui.label"}, entities[1].ComponentTypes)

	byTable := filterEntities(entities, "", "debugui.position")
	assert.Equal(t, []ecs.EntityId{a, b}, ids(byTable))

	byText := filterEntities(entities, "LABEL", "")
	assert.Equal(t, []ecs.EntityId{b}, ids(byText))

	byLabel := filterEntities(entities, entityLabel(c), "")
	assert.Equal(t, []ecs.EntityId{c}, ids(byLabel))

	assert.Len(t, filterEntities(entities, "", ""), 3)
}

func TestSortEntities(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(position{}, label{}, body{})
	storage.Spawn(position{})
	storage.Spawn(position{}, label{})

	entities := collectEntities(storage)

	sortEntities(entities, 2, true)
	counts := make([]int, len(entities))
	for i, e := range entities {
		counts[i] = len(e.ComponentTypes)
	}
	assert.Equal(t, []int{1, 2, 3}, counts)

	sortEntities(entities, 0, false)
	assert.Equal(t, uint32(2), entities[0].ID.Index())
}

func TestEntityBrowserRefreshesOnChange(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(position{})

	browser := NewEntityBrowser(10)
	browser.refresh(storage)
	require.Len(t, browser.cache.entities, 1)

	require.NoError(t, ecs.Attach(storage, id, label{Text: "x"}))
	browser.refresh(storage)
	assert.Len(t, browser.cache.entities[0].ComponentTypes, 2, "attaching a component invalidates the cache")

	require.NoError(t, storage.Destroy(id))
	browser.refresh(storage)
	assert.Empty(t, browser.cache.entities)
}

func TestPageBounds(t *testing.T) {
	start, end := pageBounds(25, 0, 10)
	assert.Equal(t, [2]int{0, 10}, [2]int{start, end})

	start, end = pageBounds(25, 2, 10)
	assert.Equal(t, [2]int{20, 25}, [2]int{start, end})

	start, end = pageBounds(5, 3, 10)
	assert.Equal(t, [2]int{5, 5}, [2]int{start, end})
}

func TestCollectAndSortTables(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(position{})
	storage.Spawn(position{}, label{})
	storage.Spawn(position{})

	tables := collectTables(storage)
	sortTables(tables, 1, false)

	require.Len(t, tables, 2)
	assert.Equal(t, "debugui.position", tables[0].Component)
	assert.Equal(t, 3, tables[0].Rows)
	assert.Equal(t, 1, tables[1].Rows)
	assert.GreaterOrEqual(t, tables[0].Capacity, tables[0].Rows)

	sortTables(tables, 0, true)
	assert.Equal(t, "debugui.label", tables[0].Component)
}

func TestQueryDebuggerMatch(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(position{})
	both := storage.Spawn(position{}, label{})

	qd := NewQueryDebugger(10)
	types, matches := qd.match(storage)
	assert.Empty(t, types)
	assert.Empty(t, matches)

	qd.selected["debugui.position"] = true
	qd.selected["debugui.label"] = true
	qd.selected["debugui.unknown"] = true

	types, matches = qd.match(storage)
	assert.Len(t, types, 2)
	assert.Equal(t, []ecs.EntityId{both}, matches)
}

func TestReflectionCache(t *testing.T) {
	cache := NewReflectionCache()

	fields := cache.Fields(reflect.TypeFor[label]())
	require.Len(t, fields, 3, "unexported fields are skipped")
	assert.Equal(t, "Scale", fields[2].Name)
	assert.True(t, fields[2].IsPointer)
	assert.Equal(t, reflect.Float64, fields[2].Kind())

	again := cache.Fields(reflect.TypeFor[label]())
	assert.Same(t, &fields[0], &again[0], "served from cache")

	assert.Nil(t, cache.Fields(reflect.TypeFor[int]()))
}

func TestSetField(t *testing.T) {
	storage := newTestStorage()
	scale := 1.0
	id := storage.Spawn(label{Text: "a", Scale: &scale}, body{Mass: 1, At: position{X: 1, Y: 2}})

	labelType := reflect.TypeFor[label]()
	bodyType := reflect.TypeFor[body]()

	require.NoError(t, setField(storage, id, labelType, []int{0}, "renamed"))
	require.NoError(t, setField(storage, id, labelType, []int{1}, true))
	require.NoError(t, setField(storage, id, labelType, []int{2}, 2.5))
	require.NoError(t, setField(storage, id, bodyType, []int{0}, 4.0))
	require.NoError(t, setField(storage, id, bodyType, []int{1, 1}, int64(9)))

	l, err := ecs.Get[label](storage, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", l.Text)
	assert.True(t, l.Hidden)
	assert.Equal(t, 2.5, scale, "pointer fields are written through")

	b, err := ecs.Get[body](storage, id)
	require.NoError(t, err)
	assert.Equal(t, float32(4), b.Mass)
	assert.Equal(t, position{X: 1, Y: 9}, b.At)

	err = setField(storage, id, reflect.TypeFor[position](), []int{0}, int64(1))
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)

	err = setField(storage, id, labelType, []int{3}, int64(1))
	assert.ErrorIs(t, err, errFieldNotSettable, "unexported")
}

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.average())

	h.record(10)
	h.record(20)
	assert.InDelta(t, 15, h.average(), 1e-6)

	h.record(30)
	h.record(40)
	assert.InDelta(t, 30, h.average(), 1e-6, "oldest sample is overwritten")
}

func TestOverlayToggle(t *testing.T) {
	storage := newTestStorage()
	scene := ecs.NewScene("overlay", storage)
	overlay := ecs.NewSingleton[Overlay](storage)
	scene.AddEventSystem(&OverlayToggleSystem{})

	scene.ProcessEvent(input.Pressed(input.KeyF1))
	assert.True(t, overlay.Get().Visible)

	scene.ProcessEvent(input.Released(input.KeyF1))
	scene.ProcessEvent(input.Pressed(input.KeySpace))
	assert.True(t, overlay.Get().Visible)

	scene.ProcessEvent(input.Pressed(input.KeyF1))
	assert.False(t, overlay.Get().Visible)
}

func TestSpawnDebugUI(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	SpawnDebugUI(storage)

	assert.Equal(t, 5, storage.Len())
	assert.Equal(t, 1, ecs.NewView[struct{ *EntityBrowser }](storage).Count())
	assert.Equal(t, 1, ecs.NewView[struct{ *QueryDebugger }](storage).Count())
}

func ids(entities []EntityInfo) []ecs.EntityId {
	out := make([]ecs.EntityId, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}
