package stablestore

import "slices"

// Compact is a Store[T] backed by a map from a monotonically increasing
// id to value. Ids are never reused, so no generation bookkeeping is
// needed; the map stays tight (no tombstones) on erase, at the cost of
// map overhead instead of a dense backing slice. Grounded on
// core.Graph.nextEdgeID's atomic-counter-for-unique-id idiom, generalized
// from a single string-keyed catalog to a generic handle-keyed one.
type Compact[T any] struct {
	nextID uint64
	values map[uint64]*T
}

// NewCompact constructs an empty Compact store.
func NewCompact[T any]() *Compact[T] {
	return &Compact[T]{values: make(map[uint64]*T)}
}

// Insert places v under a fresh monotonic id and returns its handle.
func (c *Compact[T]) Insert(v T) Handle[T] {
	c.nextID++
	id := c.nextID
	val := v
	c.values[id] = &val
	return Handle[T]{slot: id}
}

// Erase removes the element identified by h.
func (c *Compact[T]) Erase(h Handle[T]) error {
	if _, ok := c.values[h.slot]; !ok {
		return ErrInvalidHandle
	}
	delete(c.values, h.slot)
	return nil
}

// Get returns a pointer to the stored value, or ErrInvalidHandle.
func (c *Compact[T]) Get(h Handle[T]) (*T, error) {
	v, ok := c.values[h.slot]
	if !ok {
		return nil, ErrInvalidHandle
	}
	return v, nil
}

// Contains reports whether h identifies a live element.
func (c *Compact[T]) Contains(h Handle[T]) bool {
	_, ok := c.values[h.slot]
	return ok
}

// Len returns the number of live elements.
func (c *Compact[T]) Len() int {
	return len(c.values)
}

// Iter calls fn for every live (Handle, *T) pair in ascending id order,
// which is insertion order since ids are never reused.
func (c *Compact[T]) Iter(fn func(Handle[T], *T)) {
	ids := make([]uint64, 0, len(c.values))
	for id := range c.values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn(Handle[T]{slot: id}, c.values[id])
	}
}
