package ecs

import (
	"iter"
	"reflect"
)

// iComponentStorage is an interface for a type-erased component table.
type iComponentStorage interface {
	Type() reflect.Type
	Set(entity EntityId, item any) bool
	Delete(entity EntityId) bool
	Get(entity EntityId) any
	Has(entity EntityId) bool
	Len() int
	Capacity() int
	Compact()
	Iter() iter.Seq[EntityId]
}
