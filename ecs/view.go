package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldKind uint8

const (
	fieldRequired fieldKind = iota
	fieldOptional
	fieldExcluded
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag, or
// as excluded (the entity must NOT carry the component) using `ecs:"exclude"`.
// A field of type EntityId, embedded or named, receives the entity's id.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	kinds       []fieldKind
	fieldOffset []uintptr

	hasIdField bool
	idOffset   uintptr
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		types:       make([]reflect.Type, 0, structType.NumField()),
		kinds:       make([]fieldKind, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			if v.hasIdField {
				panic("View struct may only declare one EntityId field")
			}
			v.hasIdField = true
			v.idOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		// Parse struct tag to check if component is optional or excluded
		// Embedded fields (field.Anonymous) are always required
		kind := fieldRequired
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				kind = fieldOptional
			case "exclude":
				kind = fieldExcluded
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" and \"exclude\" are supported)")
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.kinds = append(v.kinds, kind)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is dead, missing any required component, or carries an excluded one
// Optional and excluded components are set to nil
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}

	// Use unsafe.Pointer to directly access the struct's memory
	// This avoids reflection overhead in the hot path
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		var component any
		if table := v.storage.existingTable(componentType); table != nil {
			component = table.Get(id)
		}

		// Calculate the address of the field using the pre-computed offset
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		switch {
		case v.kinds[i] == fieldExcluded:
			if component != nil {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
		case component == nil:
			if v.kinds[i] == fieldRequired {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
		default:
			// Component found, set the field to point to the component
			// We need to extract the pointer from the interface{}
			componentPtr := (*iface)(unsafe.Pointer(&component)).data
			*(*unsafe.Pointer)(fieldPtr) = componentPtr
		}
	}

	if v.hasIdField {
		*(*EntityId)(unsafe.Pointer(uintptr(structPtr) + v.idOffset)) = id
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't match the view
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// candidates returns the entity source to scan: the smallest table among the required
// components, or every live entity when the view has no required component.
func (v *View[T]) candidates() iter.Seq[EntityId] {
	var driver iComponentStorage
	for i, componentType := range v.types {
		if v.kinds[i] != fieldRequired {
			continue
		}
		table := v.storage.existingTable(componentType)
		if table == nil {
			// A required component that was never stored matches nothing.
			return func(func(EntityId) bool) {}
		}
		if driver == nil || table.Len() < driver.Len() {
			driver = table
		}
	}

	if driver == nil {
		return v.storage.Entities()
	}
	return driver.Iter()
}

// All returns an iterator over all entities that match this view
// The iterator yields (EntityId, T) pairs where T is the populated view struct
func (v *View[T]) All() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for id := range v.candidates() {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over just the view structs
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities currently matching the view.
func (v *View[T]) Count() int {
	count := 0
	for range v.All() {
		count++
	}
	return count
}

// Spawn creates a new entity with components extracted from the view struct
// Nil optional and excluded fields are skipped; a nil required field panics
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if v.kinds[i] == fieldRequired {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		if v.kinds[i] == fieldExcluded {
			continue
		}

		component := reflect.NewAt(componentType, componentPtr).Elem().Interface()
		components = append(components, component)
	}

	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	return v.storage.Spawn(components...)
}
