package ecs

import "errors"

var (
	// ErrInvalidHandle is returned when an operation references a destroyed or unknown entity.
	ErrInvalidHandle = errors.New("ecs: invalid entity handle")

	// ErrMissingComponent is returned when an entity does not carry the requested component.
	ErrMissingComponent = errors.New("ecs: missing component")

	// ErrUnregisteredComponent is returned when a component type was never registered.
	ErrUnregisteredComponent = errors.New("ecs: component type not registered")
)
