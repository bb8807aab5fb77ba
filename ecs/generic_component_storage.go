package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Component is the capability marker every component type carries. Types opt
// in by embedding IsComponent; the set of implementations is closed to this
// package's marker.
type Component interface {
	isComponent()
}

// IsComponent marks a struct as a component when embedded.
type IsComponent struct{}

func (IsComponent) isComponent() {}

var componentInterface = reflect.TypeFor[Component]()

// ComponentRegistry manages component type registration for a World.
// Every component type must be registered before it can be stored.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// The type is validated once here; registering the same type twice is a no-op.
func RegisterComponent[T Component](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic("ecs: component " + t.String() + " must be a struct type embedding ecs.IsComponent")
	}
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return newGenericComponentStorage[T]()
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns every registered component type.
func (r *ComponentRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are allocated individually, so a *T handed out stays valid until
// the component itself is deleted.
type genericComponentStorage[T any] struct {
	typ       reflect.Type
	blocks    []*[genericBlockSize]T
	owners    []*[genericBlockSize]Entity
	index     *intmap.Map[Entity, int]
	freeSlots []int
	nextIndex int
}

func newGenericComponentStorage[T any]() *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		typ:   reflect.TypeFor[T](),
		index: intmap.New[Entity, int](256),
	}
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return cs.typ
}

// Insert stores a component for e, replacing any existing instance.
// Returns false when item is not a T or a non-nil *T.
func (cs *genericComponentStorage[T]) Insert(e Entity, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		if ptr == nil {
			return false
		}
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}
	cs.put(e, concreteItem)
	return true
}

func (cs *genericComponentStorage[T]) put(e Entity, item T) *T {
	if index, ok := cs.index.Get(e); ok {
		slot := &cs.blocks[index/genericBlockSize][index%genericBlockSize]
		*slot = item
		return slot
	}

	var index int
	if len(cs.freeSlots) > 0 {
		index = cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.owners = append(cs.owners, new([genericBlockSize]Entity))
		}
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize
	cs.blocks[blockIdx][slotIdx] = item
	cs.owners[blockIdx][slotIdx] = e
	cs.index.Put(e, index)
	return &cs.blocks[blockIdx][slotIdx]
}

// Get returns a *T for e boxed in an interface, or nil.
func (cs *genericComponentStorage[T]) Get(e Entity) any {
	if ptr := cs.get(e); ptr != nil {
		return ptr
	}
	return nil
}

func (cs *genericComponentStorage[T]) Pointer(e Entity) unsafe.Pointer {
	return unsafe.Pointer(cs.get(e))
}

func (cs *genericComponentStorage[T]) get(e Entity) *T {
	index, ok := cs.index.Get(e)
	if !ok {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete zeroes the slot owned by e and recycles it.
func (cs *genericComponentStorage[T]) Delete(e Entity) bool {
	index, ok := cs.index.Get(e)
	if !ok {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.owners[blockIdx][slotIdx] = 0
	cs.freeSlots = append(cs.freeSlots, index)
	cs.index.Del(e)
	return true
}

func (cs *genericComponentStorage[T]) Has(e Entity) bool {
	return cs.index.Has(e)
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.index.Len()
}

// Iter yields owning entities in slot order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			owner := cs.owners[i/genericBlockSize][i%genericBlockSize]
			if owner == 0 {
				continue
			}
			if !yield(owner) {
				return
			}
		}
	}
}
