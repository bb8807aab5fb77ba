package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is a type-erased table mapping entities to one component type.
type iComponentStorage interface {
	Type() reflect.Type
	Insert(e Entity, item any) bool
	Delete(e Entity) bool
	Get(e Entity) any
	// Pointer returns the address of e's component, or nil. Views use it
	// to fill their slots without boxing.
	Pointer(e Entity) unsafe.Pointer
	Has(e Entity) bool
	Len() int
	Iter() iter.Seq[Entity]
}
