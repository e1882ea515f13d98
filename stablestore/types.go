package stablestore

import "errors"

// Sentinel errors for stable-store operations.
var (
	// ErrInvalidHandle indicates a Handle that does not (or no longer)
	// identify a live element: it was never issued by this Store, was
	// already erased, or (Peppered only) its generation is stale.
	ErrInvalidHandle = errors.New("stablestore: invalid handle")
)

// Handle[T] is an opaque reference to an element of a Store[T]. Two
// handles compare equal iff they identify the same element. The type
// parameter is phantom — it exists so a Handle[Node] and a Handle[Gate]
// are distinct Go types and cannot be mixed up at compile time, even
// though both implementations encode a handle identically underneath.
type Handle[T any] struct {
	slot uint64
	gen  uint64
}

// IsZero reports whether h is the zero Handle (never returned by Insert,
// useful as a "no handle" sentinel in callers that embed Handle in a
// struct instead of an *Handle/Option).
func (h Handle[T]) IsZero() bool {
	return h == (Handle[T]{})
}

// Store is the common interface satisfied by Peppered[T] and Compact[T].
type Store[T any] interface {
	// Insert places v and returns a fresh handle. No other handle is
	// invalidated. Amortized O(1).
	Insert(v T) Handle[T]
	// Erase removes the element identified by h. Returns ErrInvalidHandle
	// if h does not identify a live element. O(1).
	Erase(h Handle[T]) error
	// Get returns a pointer to the stored value so callers can mutate it
	// in place, or ErrInvalidHandle if h is not live. O(1).
	Get(h Handle[T]) (*T, error)
	// Contains reports whether h identifies a live element. O(1).
	Contains(h Handle[T]) bool
	// Len returns the number of live elements.
	Len() int
	// Iter calls fn for every live (Handle, *T) pair. Order is
	// unspecified but deterministic within one process run. Iteration
	// must not be relied upon to observe mutations made by fn to the
	// store itself (fn may freely mutate *T, but must not Insert/Erase
	// on the same store while iterating).
	Iter(fn func(Handle[T], *T))
}

// EraseBatch erases every handle in hs from s. Equivalent to calling
// Erase in sequence, but may process them in any order; the first error
// encountered (if any) is returned after all valid handles have been
// erased.
func EraseBatch[T any](s Store[T], hs []Handle[T]) error {
	var firstErr error
	for _, h := range hs {
		if err := s.Erase(h); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
