package ecs

import (
	"reflect"
)

// Resource is the capability marker for process-wide singletons. Types opt in
// by embedding IsResource.
type Resource interface {
	isResource()
}

// IsResource marks a struct as a resource when embedded.
type IsResource struct{}

func (IsResource) isResource() {}

// Resources holds at most one instance per resource type. Instances are
// keyed by their struct type and always stored behind a pointer: registering
// a pointer shares the caller's instance, registering a value stores a copy.
type Resources struct {
	entries map[reflect.Type]any
	order   []reflect.Type
}

func newResources() *Resources {
	return &Resources{
		entries: make(map[reflect.Type]any),
	}
}

// Get returns the *T stored for the resource type t, boxed in an interface.
func (r *Resources) Get(t reflect.Type) (any, bool) {
	v, ok := r.entries[t]
	return v, ok
}

// Has reports whether a resource of type t is registered.
func (r *Resources) Has(t reflect.Type) bool {
	_, ok := r.entries[t]
	return ok
}

// Len returns the number of registered resources.
func (r *Resources) Len() int {
	return len(r.entries)
}

// Types returns the registered resource types in registration order.
func (r *Resources) Types() []reflect.Type {
	return append([]reflect.Type(nil), r.order...)
}

// GetResource returns the registered instance of T.
func GetResource[T Resource](r *Resources) (*T, bool) {
	v, ok := r.entries[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

func (r *Resources) insert(res Resource) error {
	v := reflect.ValueOf(res)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return &ResourceError{Type: v.Type().Elem(), Err: ErrNilResource}
	}

	var stored any
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		stored = res
	} else {
		ptr := reflect.New(t)
		ptr.Elem().Set(v)
		stored = ptr.Interface()
	}
	if t.Kind() != reflect.Struct {
		return &ResourceError{Type: t, Err: ErrNotAStruct}
	}

	if _, exists := r.entries[t]; exists {
		return &ResourceError{Type: t, Err: ErrDuplicateResource}
	}
	r.entries[t] = stored
	r.order = append(r.order, t)
	return nil
}

// remove drops the resource of type t. Removing a type that is not
// registered is caller misuse and panics.
func (r *Resources) remove(t reflect.Type) {
	if _, ok := r.entries[t]; !ok {
		panic("ecs: remove of unregistered resource " + t.String())
	}
	delete(r.entries, t)
	for i, typ := range r.order {
		if typ == t {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
