package ecs

import (
	"errors"
	"reflect"
)

// Receipt reports the outcome of one queued command once the command
// buffers have been applied.
type Receipt struct {
	done bool
	err  error
}

func (r *Receipt) resolve(err error) {
	r.done = true
	r.err = err
}

// Done reports whether the command has been applied, successfully or not.
func (r *Receipt) Done() bool {
	return r.done
}

// Applied reports whether the command was applied without error.
func (r *Receipt) Applied() bool {
	return r.done && r.err == nil
}

// Err returns the failure recorded for the command, or nil while it is
// pending or after it succeeded.
func (r *Receipt) Err() error {
	return r.err
}

// FlushReport summarizes one application of the command buffers.
type FlushReport struct {
	Applied int
	Failed  []error
}

// Err joins every failure of the flush, or returns nil.
func (r FlushReport) Err() error {
	return errors.Join(r.Failed...)
}

func (r *FlushReport) record(receipt *Receipt, err error) {
	receipt.resolve(err)
	if err != nil {
		r.Failed = append(r.Failed, err)
		return
	}
	r.Applied++
}

type createCommand struct {
	entity  Entity
	receipt *Receipt
}

type addComponentCommand struct {
	entity    Entity
	component Component
	receipt   *Receipt
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
	receipt  *Receipt
}

type removeEntityCommand struct {
	entity  Entity
	receipt *Receipt
}

type linkOp int

const (
	linkAddChild linkOp = iota
	linkAddChildInPlace
	linkRemoveChild
	linkRemoveChildInPlace
)

type linkCommand struct {
	op      linkOp
	parent  Entity
	child   Entity
	receipt *Receipt
}

type resourceCommand struct {
	register Resource
	remove   reflect.Type
	receipt  *Receipt
}

// Commands buffers structural changes to storage and resources. Systems
// enqueue into it during a frame; the world applies every queue at the start
// of the next Step, before transforms are synchronized and systems run.
//
// Queues are applied category by category in a fixed order: entity
// creation, component addition, component removal, entity removal,
// hierarchy changes, then resource registration and removal. Within a
// category commands apply in the order they were enqueued.
type Commands struct {
	alloc     *entityAllocator
	creates   []createCommand
	adds      []addComponentCommand
	removes   []removeComponentCommand
	despawns  []removeEntityCommand
	links     []linkCommand
	resources []resourceCommand
}

func newCommands(alloc *entityAllocator) *Commands {
	return &Commands{alloc: alloc}
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.adds) + len(c.removes) + len(c.despawns) + len(c.links) + len(c.resources)
}

// CreateEntity queues the creation of an entity and returns its id. The id is
// reserved immediately, so later commands in the same batch may target it.
func (c *Commands) CreateEntity() Entity {
	e := c.alloc.reserve()
	c.creates = append(c.creates, createCommand{entity: e, receipt: &Receipt{}})
	return e
}

// Spawn queues a new entity together with its initial components.
func (c *Commands) Spawn(components ...Component) Entity {
	e := c.CreateEntity()
	for _, component := range components {
		c.AddComponent(e, component)
	}
	return e
}

// AddComponent queues attaching component to e, replacing any existing
// component of the same type. Pass either a value or a pointer; the stored
// instance is always a copy.
func (c *Commands) AddComponent(e Entity, component Component) *Receipt {
	receipt := &Receipt{}
	c.adds = append(c.adds, addComponentCommand{entity: e, component: component, receipt: receipt})
	return receipt
}

// RemoveComponent queues detaching the component of compType from e.
// Removing a component the entity does not have succeeds without effect.
func (c *Commands) RemoveComponent(e Entity, compType reflect.Type) *Receipt {
	receipt := &Receipt{}
	c.removes = append(c.removes, removeComponentCommand{entity: e, compType: compType, receipt: receipt})
	return receipt
}

// RemoveComponentOf queues detaching the T component from e.
func RemoveComponentOf[T Component](c *Commands, e Entity) *Receipt {
	return c.RemoveComponent(e, reflect.TypeFor[T]())
}

// RemoveEntity queues the removal of e. Its components are purged, it is
// detached from its parent and its children become parentless.
func (c *Commands) RemoveEntity(e Entity) *Receipt {
	receipt := &Receipt{}
	c.despawns = append(c.despawns, removeEntityCommand{entity: e, receipt: receipt})
	return receipt
}

// AddChild queues linking child under parent. It fails with
// ErrChildAlreadyHasParent when child is already parented.
func (c *Commands) AddChild(parent, child Entity) *Receipt {
	return c.link(linkAddChild, parent, child)
}

// AddChildInPlace queues moving child under parent while keeping its global
// transform: the child's local transform is recomputed relative to parent.
func (c *Commands) AddChildInPlace(parent, child Entity) *Receipt {
	return c.link(linkAddChildInPlace, parent, child)
}

// RemoveChild queues severing the link between parent and child. Neither
// entity is removed.
func (c *Commands) RemoveChild(parent, child Entity) *Receipt {
	return c.link(linkRemoveChild, parent, child)
}

// RemoveChildInPlace is RemoveChild that also sets the child's local
// transform to its former global transform.
func (c *Commands) RemoveChildInPlace(parent, child Entity) *Receipt {
	return c.link(linkRemoveChildInPlace, parent, child)
}

func (c *Commands) link(op linkOp, parent, child Entity) *Receipt {
	receipt := &Receipt{}
	c.links = append(c.links, linkCommand{op: op, parent: parent, child: child, receipt: receipt})
	return receipt
}

// RegisterResource queues registering a resource instance.
func (c *Commands) RegisterResource(resource Resource) *Receipt {
	receipt := &Receipt{}
	c.resources = append(c.resources, resourceCommand{register: resource, receipt: receipt})
	return receipt
}

// RemoveResource queues removing the resource of type t. Applying it panics
// when no such resource is registered.
func (c *Commands) RemoveResource(t reflect.Type) *Receipt {
	receipt := &Receipt{}
	c.resources = append(c.resources, resourceCommand{remove: t, receipt: receipt})
	return receipt
}

// RemoveResourceOf queues removing the resource of type T.
func RemoveResourceOf[T Resource](c *Commands) *Receipt {
	return c.RemoveResource(reflect.TypeFor[T]())
}

// apply drains every queue into storage and resources and resets the buffer.
func (c *Commands) apply(s *Storage, r *Resources) FlushReport {
	var report FlushReport

	creates, adds, removes := c.creates, c.adds, c.removes
	despawns, links, resources := c.despawns, c.links, c.resources
	c.creates, c.adds, c.removes = nil, nil, nil
	c.despawns, c.links, c.resources = nil, nil, nil

	for _, cmd := range creates {
		s.spawn(cmd.entity)
		report.record(cmd.receipt, nil)
	}

	for _, cmd := range adds {
		report.record(cmd.receipt, addComponent(s, cmd.entity, cmd.component))
	}

	for _, cmd := range removes {
		report.record(cmd.receipt, removeComponent(s, cmd.entity, cmd.compType))
	}

	for _, cmd := range despawns {
		var err error
		if s.Alive(cmd.entity) {
			detach(s, cmd.entity)
			s.purge(cmd.entity)
		} else {
			err = &EntityError{Op: "remove entity", Entity: cmd.entity, Err: ErrInvalidEntity}
		}
		report.record(cmd.receipt, err)
	}

	for _, cmd := range links {
		report.record(cmd.receipt, applyLink(s, cmd))
	}
	if report.Applied > 0 {
		s.version++
	}

	for _, cmd := range resources {
		var err error
		if cmd.register != nil {
			err = r.insert(cmd.register)
		} else {
			r.remove(cmd.remove)
		}
		report.record(cmd.receipt, err)
	}

	return report
}

func addComponent(s *Storage, e Entity, component Component) error {
	compType := componentType(component)
	if compType == parentType || compType == childrenType {
		return &EntityError{Op: "add component", Entity: e, Type: compType, Err: ErrReservedComponent}
	}
	if err := s.insert(e, component); err != nil {
		return &EntityError{Op: "add component", Entity: e, Type: compType, Err: err}
	}
	return nil
}

func removeComponent(s *Storage, e Entity, compType reflect.Type) error {
	if compType == parentType || compType == childrenType {
		return &EntityError{Op: "remove component", Entity: e, Type: compType, Err: ErrReservedComponent}
	}
	if err := s.remove(e, compType); err != nil {
		return &EntityError{Op: "remove component", Entity: e, Type: compType, Err: err}
	}
	return nil
}

func applyLink(s *Storage, cmd linkCommand) error {
	var (
		op  string
		err error
	)
	switch cmd.op {
	case linkAddChild:
		op, err = "add child", addChild(s, cmd.parent, cmd.child)
	case linkAddChildInPlace:
		op, err = "add child in place", addChildInPlace(s, cmd.parent, cmd.child)
	case linkRemoveChild:
		op, err = "remove child", removeChild(s, cmd.parent, cmd.child)
	case linkRemoveChildInPlace:
		op, err = "remove child in place", removeChildInPlace(s, cmd.parent, cmd.child)
	}
	if err != nil {
		return &RelationError{Op: op, Parent: cmd.parent, Child: cmd.child, Err: err}
	}
	return nil
}
