package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// Storage is the main ECS storage: the single authority over entity handles and
// their component tables.
type Storage struct {
	registry   *ComponentRegistry
	slots      entitySlots
	tables     map[reflect.Type]iComponentStorage
	tableOrder []iComponentStorage
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   any
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		tables:     make(map[reflect.Type]iComponentStorage),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// table returns the component table for t, creating it on first use.
func (s *Storage) table(t reflect.Type) (iComponentStorage, error) {
	if table, ok := s.tables[t]; ok {
		return table, nil
	}

	factory := s.registry.getFactory(t)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredComponent, t)
	}

	table := factory()
	s.tables[t] = table
	s.tableOrder = append(s.tableOrder, table)
	return table, nil
}

// existingTable returns the table for t without creating one.
func (s *Storage) existingTable(t reflect.Type) iComponentStorage {
	return s.tables[t]
}

// Create allocates a new entity with no components.
func (s *Storage) Create() EntityId {
	return s.slots.create()
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	return s.slots.valid(id)
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return s.slots.count
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	id := s.Create()
	for _, component := range components {
		if err := s.AddComponent(id, component); err != nil {
			panic(err.Error())
		}
	}
	return id
}

// Destroy removes the entity and every component attached to it.
func (s *Storage) Destroy(id EntityId) error {
	if !s.slots.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}

	for _, table := range s.tableOrder {
		table.Delete(id)
	}
	s.slots.release(id)
	return nil
}

// AddComponent attaches component to the entity, replacing any existing value of the same type.
func (s *Storage) AddComponent(id EntityId, component any) error {
	if !s.slots.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}

	compType := componentType(component)
	table, err := s.table(compType)
	if err != nil {
		return err
	}

	if !table.Set(id, component) {
		return fmt.Errorf("ecs: cannot store %T as %s", component, compType)
	}
	return nil
}

// RemoveComponent detaches the component of the given type from the entity.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) error {
	if !s.slots.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}

	table := s.existingTable(compType)
	if table == nil || !table.Delete(id) {
		return fmt.Errorf("%w: %s on entity %d", ErrMissingComponent, compType, id)
	}
	return nil
}

// GetComponent returns a pointer to the component for the given entity ID and component type,
// or nil if the entity is not alive or does not carry the component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.slots.valid(id) {
		return nil
	}

	table := s.existingTable(compType)
	if table == nil {
		return nil
	}
	return table.Get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.slots.valid(id) {
		return false
	}

	table := s.existingTable(compType)
	return table != nil && table.Has(id)
}

// ComponentTypes returns the types attached to the entity in table creation order.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.slots.valid(id) {
		return nil
	}

	types := make([]reflect.Type, 0, 4)
	for _, table := range s.tableOrder {
		if table.Has(id) {
			types = append(types, table.Type())
		}
	}
	return types
}

// TableTypes returns the component types that have a table, in creation order.
func (s *Storage) TableTypes() []reflect.Type {
	types := make([]reflect.Type, len(s.tableOrder))
	for i, table := range s.tableOrder {
		types[i] = table.Type()
	}
	return types
}

// Entities iterates every live entity in slot order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index, alive := range s.slots.alive {
			if !alive {
				continue
			}
			if !yield(NewEntityId(uint32(index), s.slots.generations[index])) {
				return
			}
		}
	}
}

// Match returns the live entities carrying every one of the given component types.
func (s *Storage) Match(types ...reflect.Type) []EntityId {
	if len(types) == 0 {
		return nil
	}

	tables := make([]iComponentStorage, 0, len(types))
	for _, t := range types {
		table := s.existingTable(t)
		if table == nil {
			return nil
		}
		tables = append(tables, table)
	}

	driver := smallestTable(tables)
	matches := make([]EntityId, 0, driver.Len())
	for id := range driver.Iter() {
		if hasAll(tables, id) {
			matches = append(matches, id)
		}
	}
	return matches
}

// Compact packs every component table. Pointers obtained before the call are invalidated,
// so it must only be called between frames.
func (s *Storage) Compact() {
	for _, table := range s.tableOrder {
		table.Compact()
	}
}

// AddSingleton stores value as the singleton of its type, replacing any previous value in place.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if entry, ok := s.singletons[t]; ok {
		reflect.NewAt(t, entry.dataPtr).Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		value:   ptr.Interface(),
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton sets *out (which must be a **T) to the stored singleton of type T.
// Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton requires a pointer to a pointer")
	}

	entry := s.getSingletonEntry(target.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	target.Elem().Set(reflect.ValueOf(entry.value))
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("components cannot be nil")
	}

	// If it's a pointer, get the underlying type
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

func smallestTable(tables []iComponentStorage) iComponentStorage {
	smallest := tables[0]
	for _, table := range tables[1:] {
		if table.Len() < smallest.Len() {
			smallest = table
		}
	}
	return smallest
}

func hasAll(tables []iComponentStorage, id EntityId) bool {
	for _, table := range tables {
		if !table.Has(id) {
			return false
		}
	}
	return true
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil when absent.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	component, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return component
}

// Get returns the entity's component of type T.
// It fails with ErrInvalidHandle for dead entities and ErrMissingComponent when absent.
func Get[T any](s *Storage, id EntityId) (*T, error) {
	if !s.slots.valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}

	t := reflect.TypeFor[T]()
	table, ok := s.tables[t].(*genericComponentStorage[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s on entity %d", ErrMissingComponent, t, id)
	}

	component := table.get(id)
	if component == nil {
		return nil, fmt.Errorf("%w: %s on entity %d", ErrMissingComponent, t, id)
	}
	return component, nil
}

// Attach stores component on the entity, replacing any existing T.
func Attach[T any](s *Storage, id EntityId, component T) error {
	if !s.slots.valid(id) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, id)
	}

	table, err := s.table(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	table.(*genericComponentStorage[T]).put(id, component)
	return nil
}

// Detach removes the entity's T component.
func Detach[T any](s *Storage, id EntityId) error {
	return s.RemoveComponent(id, reflect.TypeFor[T]())
}

// Has reports whether the entity is alive and carries a T component.
func Has[T any](s *Storage, id EntityId) bool {
	return s.HasComponent(id, reflect.TypeFor[T]())
}
