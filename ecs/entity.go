package ecs

// EntityId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits).
// Generations start at 1, so the zero EntityId never refers to a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// IsZero reports whether the id is the zero value.
func (e EntityId) IsZero() bool {
	return e == 0
}

// entitySlots tracks which slot indices are alive and the generation stamped on each.
type entitySlots struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

func (es *entitySlots) create() EntityId {
	if n := len(es.free); n > 0 {
		index := es.free[n-1]
		es.free = es.free[:n-1]
		es.alive[index] = true
		es.count++
		return NewEntityId(index, es.generations[index])
	}

	index := uint32(len(es.generations))
	es.generations = append(es.generations, 1)
	es.alive = append(es.alive, true)
	es.count++
	return NewEntityId(index, 1)
}

func (es *entitySlots) valid(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(es.generations) {
		return false
	}
	return es.alive[index] && es.generations[index] == id.Generation()
}

func (es *entitySlots) release(id EntityId) {
	index := id.Index()
	es.alive[index] = false
	es.generations[index]++
	if es.generations[index] == 0 {
		// Wrapped; skip the reserved zero generation.
		es.generations[index] = 1
	}
	es.free = append(es.free, index)
	es.count--
}
