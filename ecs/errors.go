package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidEntity                           = errors.New("ecs: invalid entity")
	ErrUnknownComponent                        = errors.New("ecs: component type not registered")
	ErrNilComponent                            = errors.New("ecs: nil component")
	ErrReservedComponent                       = errors.New("ecs: hierarchy components are managed through AddChild and RemoveChild")
	ErrChildAlreadyHasParent                   = errors.New("ecs: child already has a parent")
	ErrNotAChild                               = errors.New("ecs: entity is not a child of parent")
	ErrCircularReference                       = errors.New("ecs: circular hierarchy reference")
	ErrUnableToCalculateRelativeLocalTransform = errors.New("ecs: unable to calculate relative local transform")
	ErrDuplicateResource                       = errors.New("ecs: resource already registered")
	ErrNilResource                             = errors.New("ecs: nil resource")
	ErrNotAStruct                              = errors.New("ecs: resource must be a struct type")
)

// EntityError reports a command that failed against a single entity.
type EntityError struct {
	Op     string
	Entity Entity
	Type   reflect.Type
	Err    error
}

func (e *EntityError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s %v (%v): %v", e.Op, e.Entity, e.Type, e.Err)
	}
	return fmt.Sprintf("%s %v: %v", e.Op, e.Entity, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// RelationError reports a rejected hierarchy change. No links were modified.
type RelationError struct {
	Op     string
	Parent Entity
	Child  Entity
	Err    error
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("%s parent=%v child=%v: %v", e.Op, e.Parent, e.Child, e.Err)
}

func (e *RelationError) Unwrap() error {
	return e.Err
}

// ResourceError reports a rejected resource registration.
type ResourceError struct {
	Type reflect.Type
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %v: %v", e.Type, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// SystemError wraps an error returned from a system body. It aborts the frame.
type SystemError struct {
	System string
	Stage  Stage
	Err    error
}

func (e *SystemError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("startup system %s: %v", e.System, e.Err)
	}
	return fmt.Sprintf("system %s (stage %s): %v", e.System, e.Stage, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}
