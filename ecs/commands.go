package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a phase.
// This prevents structural changes to the ECS storage while systems iterate it.
type Commands struct {
	spawns   []spawnCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Destroy queues an entity destruction operation.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.destroys)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies all queued commands to the provided storage and resets the buffer.
// Order: destroys, removals, additions, spawns, deferred functions. Operations that target an
// entity destroyed in the same flush are dropped; every other failure is collected and returned.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	destroyed := make(map[EntityId]bool)

	for _, entity := range c.destroys {
		if destroyed[entity] {
			continue
		}
		if err := storage.Destroy(entity); err != nil {
			errs = append(errs, err)
		}
		destroyed[entity] = true
	}

	for _, cmd := range c.removes {
		if destroyed[cmd.entity] {
			continue
		}
		if err := storage.RemoveComponent(cmd.entity, cmd.compType); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.adds {
		if destroyed[cmd.entity] {
			continue
		}
		if err := storage.AddComponent(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		if err := spawn(storage, cmd.components); err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}

// spawn creates an entity with components. If any component cannot be attached the
// entity is destroyed again so no partial entity is left behind.
func spawn(storage *Storage, components []any) error {
	id := storage.Create()
	for _, component := range components {
		if err := storage.AddComponent(id, component); err != nil {
			_ = storage.Destroy(id)
			return fmt.Errorf("spawn: %w", err)
		}
	}
	return nil
}
