package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/arcade/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 1},
		{1, 1},
		{67890, 12345},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x9ABCDEF0, 0x12345678},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.index, tt.generation)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
			assert.False(t, id.IsZero())
		})
	}

	assert.True(t, ecs.EntityId(0).IsZero())
}

func TestCreateNeverReturnsZero(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Create()
	assert.False(t, id.IsZero())
	assert.Equal(t, uint32(1), id.Generation())
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Len())
}

func TestDestroyedSlotIsReusedWithNewGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Create()
	require.NoError(t, storage.Destroy(first))
	assert.False(t, storage.Alive(first))

	second := storage.Create()
	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.Equal(t, first.Generation()+1, second.Generation())

	assert.False(t, storage.Alive(first), "stale handle must not alias the new entity")
	assert.True(t, storage.Alive(second))
}

func TestIdentifiersAreUniqueWhileAlive(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	seen := make(map[ecs.EntityId]bool)
	var alive []ecs.EntityId
	for i := range 200 {
		id := storage.Create()
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
		alive = append(alive, id)

		if i%3 == 0 {
			require.NoError(t, storage.Destroy(alive[0]))
			alive = alive[1:]
		}
	}

	indices := make(map[uint32]bool)
	for _, id := range alive {
		assert.False(t, indices[id.Index()], "two live entities share slot %d", id.Index())
		indices[id.Index()] = true
	}
	assert.Equal(t, len(alive), storage.Len())
}

func TestStaleHandleOperationsFail(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})
	require.NoError(t, storage.Destroy(id))

	assert.ErrorIs(t, storage.Destroy(id), ecs.ErrInvalidHandle)
	assert.ErrorIs(t, ecs.Attach(storage, id, Velocity{DX: 1}), ecs.ErrInvalidHandle)
	assert.ErrorIs(t, ecs.Detach[Position](storage, id), ecs.ErrInvalidHandle)
	assert.ErrorIs(t, storage.AddComponent(id, Name{Value: "ghost"}), ecs.ErrInvalidHandle)

	_, err := ecs.Get[Position](storage, id)
	assert.ErrorIs(t, err, ecs.ErrInvalidHandle)
	assert.False(t, ecs.Has[Position](storage, id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
}
