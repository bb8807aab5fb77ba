package ecs

import (
	"fmt"
	"reflect"
	"strings"
)

// DependencyKind tells what a dependency descriptor asks for.
type DependencyKind int

const (
	DependsOnQuery DependencyKind = iota
	DependsOnResource
)

func (k DependencyKind) String() string {
	switch k {
	case DependsOnQuery:
		return "query"
	case DependsOnResource:
		return "resource"
	default:
		return fmt.Sprintf("DependencyKind(%d)", int(k))
	}
}

// DependencyInfo describes one declared dependency of a system.
type DependencyInfo struct {
	Kind     DependencyKind
	Types    []reflect.Type
	Optional []bool
}

func (d DependencyInfo) String() string {
	names := make([]string, len(d.Types))
	for i, t := range d.Types {
		names[i] = t.String()
		if i < len(d.Optional) && d.Optional[i] {
			names[i] += "?"
		}
	}
	return d.Kind.String() + "{" + strings.Join(names, ", ") + "}"
}

// Dependency is a descriptor a system declares through Dependencies. It is
// bound once when the system is registered and resolved again every frame.
// The implementations are Query, Res and OptionalRes.
type Dependency interface {
	bind(w *World)
	resolve(w *World) bool
	Describe() DependencyInfo
}

// Query is a system dependency on a live View. The embedded view is bound
// when the system is registered and always reflects current storage.
type Query[T any] struct {
	*View[T]
}

func (q *Query[T]) bind(w *World) {
	if q.View == nil || q.View.storage != w.storage {
		q.View = NewView[T](w.storage)
	}
}

func (q *Query[T]) resolve(*World) bool {
	return q.View != nil
}

// Describe implements Dependency.
func (q *Query[T]) Describe() DependencyInfo {
	view := q.View
	if view == nil {
		view = NewView[T](nil)
	}
	return DependencyInfo{Kind: DependsOnQuery, Types: view.types, Optional: view.optional}
}

// Res is a system dependency on a required resource. While the resource is
// absent the owning system is skipped.
type Res[T Resource] struct {
	ptr *T
}

func (r *Res[T]) bind(*World) {}

func (r *Res[T]) resolve(w *World) bool {
	ptr, ok := GetResource[T](w.resources)
	r.ptr = ptr
	return ok
}

// Get returns the resource resolved for the current frame.
func (r *Res[T]) Get() *T {
	return r.ptr
}

// Describe implements Dependency.
func (r *Res[T]) Describe() DependencyInfo {
	return DependencyInfo{
		Kind:     DependsOnResource,
		Types:    []reflect.Type{reflect.TypeFor[T]()},
		Optional: []bool{false},
	}
}

// OptionalRes is a system dependency on a resource that may be absent.
type OptionalRes[T Resource] struct {
	ptr *T
}

func (r *OptionalRes[T]) bind(*World) {}

func (r *OptionalRes[T]) resolve(w *World) bool {
	r.ptr, _ = GetResource[T](w.resources)
	return true
}

// Get returns the resource for the current frame, or nil.
func (r *OptionalRes[T]) Get() *T {
	return r.ptr
}

// Present reports whether the resource was registered when the frame resolved.
func (r *OptionalRes[T]) Present() bool {
	return r.ptr != nil
}

// Describe implements Dependency.
func (r *OptionalRes[T]) Describe() DependencyInfo {
	return DependencyInfo{
		Kind:     DependsOnResource,
		Types:    []reflect.Type{reflect.TypeFor[T]()},
		Optional: []bool{true},
	}
}
