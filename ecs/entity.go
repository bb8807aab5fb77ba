package ecs

import "strconv"

// Entity is an opaque identifier grouping zero or more components. Ids come
// from a per-world monotonic counter and are never reused; 0 is never live.
type Entity uint64

// String implements fmt.Stringer.
func (e Entity) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}

// entityAllocator hands out entity ids. Ids are reserved when a creation
// command is enqueued so later commands in the same batch can refer to them.
type entityAllocator struct {
	last uint64
}

func (a *entityAllocator) reserve() Entity {
	a.last++
	return Entity(a.last)
}
