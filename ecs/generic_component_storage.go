package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, exists := r.factories[t]; exists {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return newGenericComponentStorage[T]()
	}
	r.order = append(r.order, t)
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return r.order
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of a specific type `T` in fixed blocks.
// Blocks are allocated individually and slots never move until Compact is called, so
// pointers handed out by Get stay valid while the table grows. Entities are mapped to
// slots through an index table keyed by the entity's slot index.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	owners    []*[genericBlockSize]EntityId
	index     *intmap.Map[uint32, int]
	freeSlots []int
	nextIndex int
	count     int
}

func newGenericComponentStorage[T any]() *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		index: intmap.New[uint32, int](64),
	}
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Set stores a component for the entity, overwriting any existing value.
// Returns false if item is not a T or *T.
func (cs *genericComponentStorage[T]) Set(entity EntityId, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	cs.put(entity, concreteItem)
	return true
}

func (cs *genericComponentStorage[T]) put(entity EntityId, value T) *T {
	if slot, ok := cs.index.Get(entity.Index()); ok {
		blockIdx := slot / genericBlockSize
		slotIdx := slot % genericBlockSize
		cs.blocks[blockIdx][slotIdx] = value
		cs.owners[blockIdx][slotIdx] = entity
		return &cs.blocks[blockIdx][slotIdx]
	}

	var slot int
	if len(cs.freeSlots) > 0 {
		slot = cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]
	} else {
		slot = cs.nextIndex
		cs.nextIndex++
	}

	blockIdx := slot / genericBlockSize
	slotIdx := slot % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.owners = append(cs.owners, new([genericBlockSize]EntityId))
	}

	cs.blocks[blockIdx][slotIdx] = value
	cs.owners[blockIdx][slotIdx] = entity
	cs.index.Put(entity.Index(), slot)
	cs.count++
	return &cs.blocks[blockIdx][slotIdx]
}

// Get returns a pointer to the entity's component, or nil.
func (cs *genericComponentStorage[T]) Get(entity EntityId) any {
	ptr := cs.get(entity)
	if ptr == nil {
		return nil
	}
	return ptr
}

func (cs *genericComponentStorage[T]) get(entity EntityId) *T {
	slot, ok := cs.index.Get(entity.Index())
	if !ok {
		return nil
	}

	blockIdx := slot / genericBlockSize
	slotIdx := slot % genericBlockSize
	if cs.owners[blockIdx][slotIdx] != entity {
		return nil
	}
	return &cs.blocks[blockIdx][slotIdx]
}

// Delete clears the entity's slot and returns it to the free list.
func (cs *genericComponentStorage[T]) Delete(entity EntityId) bool {
	slot, ok := cs.index.Get(entity.Index())
	if !ok {
		return false
	}

	blockIdx := slot / genericBlockSize
	slotIdx := slot % genericBlockSize
	if cs.owners[blockIdx][slotIdx] != entity {
		return false
	}

	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.owners[blockIdx][slotIdx] = 0
	cs.index.Del(entity.Index())
	cs.freeSlots = append(cs.freeSlots, slot)
	cs.count--
	return true
}

// Has checks if the entity has a component in this table.
func (cs *genericComponentStorage[T]) Has(entity EntityId) bool {
	return cs.get(entity) != nil
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

func (cs *genericComponentStorage[T]) Capacity() int {
	return len(cs.blocks) * genericBlockSize
}

// Compact reorganizes component storage to remove empty slots.
// Pointers previously returned by Get are invalidated.
func (cs *genericComponentStorage[T]) Compact() {
	if cs.count == 0 {
		cs.blocks = nil
		cs.owners = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		cs.index.Clear()
		return
	}

	numNewBlocks := (cs.count + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numNewBlocks)
	newOwners := make([]*[genericBlockSize]EntityId, numNewBlocks)
	for i := range numNewBlocks {
		newBlocks[i] = new([genericBlockSize]T)
		newOwners[i] = new([genericBlockSize]EntityId)
	}
	writePos := 0

	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		readBlockIdx := readIdx / genericBlockSize
		readSlotIdx := readIdx % genericBlockSize

		owner := cs.owners[readBlockIdx][readSlotIdx]
		if owner == 0 {
			continue
		}

		writeBlockIdx := writePos / genericBlockSize
		writeSlotIdx := writePos % genericBlockSize

		newBlocks[writeBlockIdx][writeSlotIdx] = cs.blocks[readBlockIdx][readSlotIdx]
		newOwners[writeBlockIdx][writeSlotIdx] = owner
		cs.index.Put(owner.Index(), writePos)

		writePos++
	}

	cs.blocks = newBlocks
	cs.owners = newOwners
	cs.freeSlots = nil
	cs.nextIndex = writePos
}

// Iter yields the owning entity of every occupied slot in slot order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			blockIdx := i / genericBlockSize
			slotIdx := i % genericBlockSize

			if blockIdx >= len(cs.owners) {
				return
			}

			if owner := cs.owners[blockIdx][slotIdx]; owner != 0 {
				if !yield(owner) {
					return
				}
			}
		}
	}
}
