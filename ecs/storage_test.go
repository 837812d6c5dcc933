package ecs_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))

	score := ecs.ReadComponent[Score](storage, id)
	require.NotNil(t, score)
	assert.Equal(t, Score(32), *score)
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredComponentPanics(t *testing.T) {
	type Unregistered struct{}
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn(Unregistered{}) })
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	posComp := storage.GetComponent(id, reflect.TypeOf(Position{}))
	require.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	nameComp := storage.GetComponent(id, reflect.TypeOf(Name{}))
	require.NotNil(t, nameComp)
	assert.Equal(t, "Test Entity", nameComp.(*Name).Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
}

func TestGenericGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 5, Y: 6})

	pos, err := ecs.Get[Position](storage, id)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 5, Y: 6}, *pos)

	pos.X = 50
	again, err := ecs.Get[Position](storage, id)
	require.NoError(t, err)
	assert.Equal(t, float32(50), again.X, "Get must return a mutable reference")

	_, err = ecs.Get[Velocity](storage, id)
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)

	_, err = ecs.Get[Health](storage, id)
	assert.ErrorIs(t, err, ecs.ErrMissingComponent, "never-stored type is missing, not a crash")
}

func TestAttachOverwritesExistingComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Health{Current: 10, Max: 100})

	require.NoError(t, ecs.Attach(storage, id, Health{Current: 90, Max: 100}))

	health, err := ecs.Get[Health](storage, id)
	require.NoError(t, err)
	assert.Equal(t, 90, health.Current)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Health]()}, storage.ComponentTypes(id))
}

func TestAttachDetach(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Create()

	assert.False(t, ecs.Has[Velocity](storage, id))

	require.NoError(t, ecs.Attach(storage, id, Velocity{DX: 5, DY: 3}))
	assert.True(t, ecs.Has[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))

	require.NoError(t, ecs.Detach[Velocity](storage, id))
	assert.False(t, ecs.Has[Velocity](storage, id))

	err := ecs.Detach[Velocity](storage, id)
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)
	assert.True(t, storage.Alive(id), "detaching the last component keeps the entity")
}

func TestAttachUnregisteredComponent(t *testing.T) {
	type Unregistered struct{ V int }
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Create()

	assert.ErrorIs(t, ecs.Attach(storage, id, Unregistered{V: 1}), ecs.ErrUnregisteredComponent)
	assert.ErrorIs(t, storage.AddComponent(id, Unregistered{V: 1}), ecs.ErrUnregisteredComponent)
}

func TestDestroyEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})
	other := storage.Spawn(&Position{X: 2.0, Y: 2.0})

	require.NoError(t, storage.Destroy(id))

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Health{})))
	assert.Empty(t, storage.ComponentTypes(id))
	assert.Equal(t, []ecs.EntityId{other}, storage.Match(reflect.TypeFor[Position]()))
	assert.Empty(t, storage.Match(reflect.TypeFor[Health]()))
}

func TestDestroyedSlotDoesNotLeakComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	old := storage.Spawn(Position{X: 1, Y: 1}, Health{Current: 5, Max: 5})
	require.NoError(t, storage.Destroy(old))

	reused := storage.Spawn(Position{X: 9, Y: 9})
	require.Equal(t, old.Index(), reused.Index())

	assert.False(t, ecs.Has[Health](storage, reused), "new occupant must not inherit components")
	pos, err := ecs.Get[Position](storage, reused)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 9, Y: 9}, *pos)
}

func TestPrimitiveComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Score(100), Tag("player"))

	score := ecs.ReadComponent[Score](storage, id)
	require.NotNil(t, score)
	assert.Equal(t, Score(100), *score)

	*score = 150
	assert.Equal(t, Score(150), *ecs.ReadComponent[Score](storage, id))

	tag := ecs.ReadComponent[Tag](storage, id)
	require.NotNil(t, tag)
	assert.Equal(t, Tag("player"), *tag)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1, Y: 1})
	pos, err := ecs.Get[Position](storage, first)
	require.NoError(t, err)

	for i := range 500 {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	again, err := ecs.Get[Position](storage, first)
	require.NoError(t, err)
	assert.Same(t, pos, again)
	assert.Equal(t, float32(42), again.X)
}

func TestEntitiesAndMatch(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Position{})
	c := storage.Spawn(Position{}, Velocity{}, Health{})
	d := storage.Spawn(Velocity{})

	all := slices.Collect(storage.Entities())
	assert.Equal(t, []ecs.EntityId{a, b, c, d}, all)

	assert.ElementsMatch(t, []ecs.EntityId{a, c}, storage.Match(reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()))
	assert.Equal(t, []ecs.EntityId{c}, storage.Match(reflect.TypeFor[Health](), reflect.TypeFor[Position]()))
	assert.Empty(t, storage.Match(reflect.TypeFor[Inventory]()))
	assert.Nil(t, storage.Match())
}

func TestComponentTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{}, Name{Value: "x"})
	types := storage.ComponentTypes(id)
	assert.ElementsMatch(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Name]()}, types)
}

func TestCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := range 100 {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	for i, id := range ids {
		if i%2 == 0 {
			require.NoError(t, storage.Destroy(id))
		}
	}

	storage.Compact()

	for i, id := range ids {
		if i%2 == 0 {
			assert.False(t, ecs.Has[Position](storage, id))
			continue
		}
		pos, err := ecs.Get[Position](storage, id)
		require.NoError(t, err)
		assert.Equal(t, float32(i), pos.X)
	}

	stats := storage.CollectStats()
	require.Len(t, stats.TableBreakdown, 1)
	assert.Equal(t, 50, stats.TableBreakdown[0].Rows)
	assert.Equal(t, 64, stats.TableBreakdown[0].Capacity)
}

func TestRegisterComponentIsIdempotent(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)

	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, registry.Types())
}
