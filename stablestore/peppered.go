package stablestore

// slot holds one backing-array cell of a Peppered store: either a live
// value tagged with the generation that last occupied it, or, when free,
// the index of the next free slot (a singly linked free list threaded
// through the backing array itself).
type slot[T any] struct {
	value    T
	gen      uint64
	occupied bool
	nextFree int // valid only when !occupied; -1 terminates the free list
}

// Peppered is a Store[T] backed by a dense slice plus a free-slot list.
// Handles encode slot index + generation, so reusing a freed slot never
// aliases a handle minted before the slot was freed: Contains(stale)
// reports false once the slot has been reused.
type Peppered[T any] struct {
	slots     []slot[T]
	freeHead  int // -1 when no free slot
	liveCount int
}

// NewPeppered constructs an empty Peppered store.
func NewPeppered[T any]() *Peppered[T] {
	return &Peppered[T]{freeHead: -1}
}

// Insert places v and returns a fresh handle. Amortized O(1).
func (p *Peppered[T]) Insert(v T) Handle[T] {
	if p.freeHead == -1 {
		p.slots = append(p.slots, slot[T]{value: v, gen: 1, occupied: true})
		p.liveCount++
		return Handle[T]{slot: uint64(len(p.slots) - 1), gen: 1}
	}

	idx := p.freeHead
	p.freeHead = p.slots[idx].nextFree
	p.slots[idx] = slot[T]{value: v, gen: p.slots[idx].gen + 1, occupied: true}
	p.liveCount++
	return Handle[T]{slot: uint64(idx), gen: p.slots[idx].gen}
}

// valid reports whether h identifies a currently live slot.
func (p *Peppered[T]) valid(h Handle[T]) bool {
	if h.slot >= uint64(len(p.slots)) {
		return false
	}
	s := &p.slots[h.slot]
	return s.occupied && s.gen == h.gen
}

// Erase removes the element identified by h.
func (p *Peppered[T]) Erase(h Handle[T]) error {
	if !p.valid(h) {
		return ErrInvalidHandle
	}
	idx := h.slot
	var zero T
	p.slots[idx] = slot[T]{value: zero, gen: p.slots[idx].gen, occupied: false, nextFree: p.freeHead}
	p.freeHead = int(idx)
	p.liveCount--
	return nil
}

// Get returns a pointer to the stored value, or ErrInvalidHandle.
func (p *Peppered[T]) Get(h Handle[T]) (*T, error) {
	if !p.valid(h) {
		return nil, ErrInvalidHandle
	}
	return &p.slots[h.slot].value, nil
}

// Contains reports whether h identifies a live element.
func (p *Peppered[T]) Contains(h Handle[T]) bool {
	return p.valid(h)
}

// Len returns the number of live elements.
func (p *Peppered[T]) Len() int {
	return p.liveCount
}

// Iter calls fn for every live (Handle, *T) pair in backing-slot order.
func (p *Peppered[T]) Iter(fn func(Handle[T], *T)) {
	for i := range p.slots {
		if !p.slots[i].occupied {
			continue
		}
		fn(Handle[T]{slot: uint64(i), gen: p.slots[i].gen}, &p.slots[i].value)
	}
}
