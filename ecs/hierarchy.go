package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Parent links an entity to its parent. It is maintained by the hierarchy
// commands and cannot be added or removed directly.
type Parent struct {
	IsComponent
	Entity Entity
}

// Children lists an entity's children in the order they were linked.
// It is kept symmetric with Parent and dropped once it becomes empty.
type Children struct {
	IsComponent
	Entities []Entity
}

var (
	parentType          = reflect.TypeFor[Parent]()
	childrenType        = reflect.TypeFor[Children]()
	transformType       = reflect.TypeFor[Transform]()
	globalTransformType = reflect.TypeFor[GlobalTransform]()
)

// Ancestors iterates from e's parent up to its root.
func Ancestors(s *Storage, e Entity) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		current := e
		for {
			parent, ok := Get[Parent](s, current)
			if !ok {
				return
			}
			if !yield(parent.Entity) {
				return
			}
			current = parent.Entity
		}
	}
}

// isAncestor reports whether candidate is e or one of e's ancestors.
func isAncestor(s *Storage, candidate, e Entity) bool {
	if candidate == e {
		return true
	}
	for ancestor := range Ancestors(s, e) {
		if ancestor == candidate {
			return true
		}
	}
	return false
}

func validateLink(s *Storage, parent, child Entity) error {
	if !s.Alive(parent) || !s.Alive(child) {
		return ErrInvalidEntity
	}
	if isAncestor(s, child, parent) {
		return ErrCircularReference
	}
	return nil
}

func addChild(s *Storage, parent, child Entity) error {
	if err := validateLink(s, parent, child); err != nil {
		return err
	}
	if Has[Parent](s, child) {
		return ErrChildAlreadyHasParent
	}
	link(s, parent, child)
	return nil
}

func addChildInPlace(s *Storage, parent, child Entity) error {
	if err := validateLink(s, parent, child); err != nil {
		return err
	}

	local, ok := computeGlobal(s, parent).Relative(computeGlobal(s, child))
	if !ok {
		return ErrUnableToCalculateRelativeLocalTransform
	}

	if current, ok := Get[Parent](s, child); ok {
		unlink(s, current.Entity, child)
	}
	link(s, parent, child)
	if t, ok := Get[Transform](s, child); ok {
		*t = local
	}
	return nil
}

func removeChild(s *Storage, parent, child Entity) error {
	if !s.Alive(parent) || !s.Alive(child) {
		return ErrInvalidEntity
	}
	if p, ok := Get[Parent](s, child); !ok || p.Entity != parent {
		return ErrNotAChild
	}
	unlink(s, parent, child)
	return nil
}

func removeChildInPlace(s *Storage, parent, child Entity) error {
	global := computeGlobal(s, child)
	if err := removeChild(s, parent, child); err != nil {
		return err
	}
	if t, ok := Get[Transform](s, child); ok {
		*t = global.AsLocal()
	}
	return nil
}

func link(s *Storage, parent, child Entity) {
	s.table(parentType).Insert(child, Parent{Entity: parent})
	if kids, ok := Get[Children](s, parent); ok {
		kids.Entities = append(kids.Entities, child)
		return
	}
	s.table(childrenType).Insert(parent, Children{Entities: []Entity{child}})
}

func unlink(s *Storage, parent, child Entity) {
	s.table(parentType).Delete(child)

	kids, ok := Get[Children](s, parent)
	if !ok {
		return
	}
	kids.Entities = slices.DeleteFunc(kids.Entities, func(e Entity) bool { return e == child })
	if len(kids.Entities) == 0 {
		s.table(childrenType).Delete(parent)
	}
}

// detach severs every hierarchy link that references e before it is purged.
func detach(s *Storage, e Entity) {
	if p, ok := Get[Parent](s, e); ok {
		unlink(s, p.Entity, e)
	}
	if kids, ok := Get[Children](s, e); ok {
		parents := s.table(parentType)
		for _, child := range kids.Entities {
			parents.Delete(child)
		}
		s.table(childrenType).Delete(e)
	}
}
