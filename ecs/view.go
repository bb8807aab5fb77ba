package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// MaxViewArity is the largest number of component slots a View may declare.
const MaxViewArity = 5

// View is a live join over one to five component types.
// The type T should be a struct with embedded or named pointer fields, one per component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag; an
// absent optional component leaves its field nil.
// Every lookup reads storage as it is at that moment, nothing is cached.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}
	if structType.NumField() == 0 || structType.NumField() > MaxViewArity {
		panic("ecs: View struct must declare between 1 and 5 component fields")
	}

	types := make([]reflect.Type, 0, structType.NumField())
	optional := make([]bool, 0, structType.NumField())
	fieldOffset := make([]uintptr, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}

		componentType := fieldType.Elem()
		if !componentType.Implements(componentInterface) {
			panic("ecs: View field " + field.Name + " is not a component type")
		}
		for _, seen := range types {
			if seen == componentType {
				panic("ecs: View declares " + componentType.String() + " twice")
			}
		}
		types = append(types, componentType)
		fieldOffset = append(fieldOffset, field.Offset)

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		optional = append(optional, isOptional)
	}

	return &View[T]{
		storage:     storage,
		types:       types,
		optional:    optional,
		fieldOffset: fieldOffset,
	}
}

// Types returns the component types of the view in field order.
func (v *View[T]) Types() []reflect.Type {
	return v.types
}

// Optional reports, per field, whether the slot may be absent.
func (v *View[T]) Optional() []bool {
	return v.optional
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not alive or is missing any required component.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.storage.Alive(e) {
		return false
	}

	// Write through precomputed field offsets instead of reflect.Value.
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		var component unsafe.Pointer
		if table := v.storage.tables[componentType]; table != nil {
			component = table.Pointer(e)
		}
		if component == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i])) = component
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Has reports whether e currently matches the view.
func (v *View[T]) Has(e Entity) bool {
	var result T
	return v.Fill(e, &result)
}

// driver picks the entity source for a join: the smallest required table, or
// every live entity when all slots are optional. ok is false when a required
// table does not exist yet, meaning nothing can match.
func (v *View[T]) driver() (source iter.Seq[Entity], ok bool) {
	var smallest iComponentStorage
	for i, componentType := range v.types {
		if v.optional[i] {
			continue
		}
		table := v.storage.tables[componentType]
		if table == nil {
			return nil, false
		}
		if smallest == nil || table.Len() < smallest.Len() {
			smallest = table
		}
	}
	if smallest == nil {
		return v.storage.Entities(), true
	}
	return smallest.Iter(), true
}

// Iter returns an iterator over all entities that have all the required components for this view.
// The iterator yields (Entity, T) pairs where T is the populated view struct.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		source, ok := v.driver()
		if !ok {
			return
		}

		var result T
		for e := range source {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs).
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Entities returns an iterator over the matching entities only.
func (v *View[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range v.Iter() {
			if !yield(e) {
				return
			}
		}
	}
}

// Count returns the number of entities currently matching the view.
func (v *View[T]) Count() int {
	count := 0
	for range v.Iter() {
		count++
	}
	return count
}
