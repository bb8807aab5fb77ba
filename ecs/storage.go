package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// Storage holds the live-entity set and one component table per component type.
// Reads are open to everyone; structural changes happen only while commands
// are applied.
type Storage struct {
	registry *ComponentRegistry
	entities *intmap.Map[Entity, int]
	live     []Entity
	tables   map[reflect.Type]iComponentStorage
	order    []iComponentStorage
	version  uint64
}

// NewStorage creates an empty storage backed by the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry: registry,
		entities: intmap.New[Entity, int](1024),
		tables:   make(map[reflect.Type]iComponentStorage),
	}
}

// Alive reports whether e currently exists.
func (s *Storage) Alive(e Entity) bool {
	return s.entities.Has(e)
}

// Len returns the number of live entities.
func (s *Storage) Len() int {
	return len(s.live)
}

// Version changes whenever an applied command batch created, removed or
// relinked entities or components. Caches built from storage compare it to
// detect staleness.
func (s *Storage) Version() uint64 {
	return s.version
}

// Entities iterates over all live entities.
func (s *Storage) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.live {
			if !yield(e) {
				return
			}
		}
	}
}

// GetComponent returns a pointer to the component of type compType attached to
// e, boxed in an interface, or nil.
func (s *Storage) GetComponent(e Entity, compType reflect.Type) any {
	table := s.tables[compType]
	if table == nil {
		return nil
	}
	return table.Get(e)
}

// HasComponent checks if an entity has a specific component type.
func (s *Storage) HasComponent(e Entity, compType reflect.Type) bool {
	table := s.tables[compType]
	return table != nil && table.Has(e)
}

// ComponentTypes lists the component types attached to e in table creation order.
func (s *Storage) ComponentTypes(e Entity) []reflect.Type {
	var types []reflect.Type
	for _, table := range s.order {
		if table.Has(e) {
			types = append(types, table.Type())
		}
	}
	return types
}

// Count returns the number of entities holding a component of compType.
func (s *Storage) Count(compType reflect.Type) int {
	table := s.tables[compType]
	if table == nil {
		return 0
	}
	return table.Len()
}

// Get returns the component of type T attached to e.
func Get[T Component](s *Storage, e Entity) (*T, bool) {
	table, ok := s.tables[reflect.TypeFor[T]()].(*genericComponentStorage[T])
	if !ok {
		return nil, false
	}
	ptr := table.get(e)
	return ptr, ptr != nil
}

// Has reports whether e has a component of type T.
func Has[T Component](s *Storage, e Entity) bool {
	return s.HasComponent(e, reflect.TypeFor[T]())
}

// table returns the table for compType, creating it on first use.
// Returns nil when the type was never registered.
func (s *Storage) table(compType reflect.Type) iComponentStorage {
	if table, ok := s.tables[compType]; ok {
		return table
	}
	factory := s.registry.getFactory(compType)
	if factory == nil {
		return nil
	}
	table := factory()
	s.tables[compType] = table
	s.order = append(s.order, table)
	return table
}

func (s *Storage) spawn(e Entity) {
	if s.entities.Has(e) {
		return
	}
	s.entities.Put(e, len(s.live))
	s.live = append(s.live, e)
}

func (s *Storage) insert(e Entity, component any) error {
	if !s.Alive(e) {
		return ErrInvalidEntity
	}
	if v := reflect.ValueOf(component); !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return ErrNilComponent
	}
	table := s.table(componentType(component))
	if table == nil {
		return ErrUnknownComponent
	}
	table.Insert(e, component)
	return nil
}

func (s *Storage) remove(e Entity, compType reflect.Type) error {
	if !s.Alive(e) {
		return ErrInvalidEntity
	}
	if table := s.tables[compType]; table != nil {
		table.Delete(e)
	}
	return nil
}

// purge removes every component of e and then e itself.
func (s *Storage) purge(e Entity) {
	idx, ok := s.entities.Get(e)
	if !ok {
		return
	}
	for _, table := range s.order {
		table.Delete(e)
	}

	last := s.live[len(s.live)-1]
	s.live[idx] = last
	s.entities.Put(last, idx)
	s.live = s.live[:len(s.live)-1]
	s.entities.Del(e)
}

// componentType returns the value type of a component, looking through pointers.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
