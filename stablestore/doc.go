// Package stablestore provides an insertion-stable, handle-indexed
// container: Store[T]. Insertion and deletion of one element never
// invalidates a handle held to any other element — the property the rest
// of this module leans on to let a Connection, a ClosedNet, or a PortRef
// hold a handle across arbitrarily many unrelated mutations.
//
// Two implementations satisfy the Store[T] interface:
//
//   - Peppered: a dense backing slice plus a free-slot list. Handles encode
//     a slot index and a generation counter, so a handle minted before a
//     slot was freed and reused ("stale") is detected and rejected rather
//     than silently aliasing the new occupant.
//   - Compact: a map keyed by a monotonically increasing id, kept tight on
//     erase (no tombstones, no generation bookkeeping needed since ids are
//     never reused).
//
// Consumers must not depend on iteration order: Iter's order is
// unspecified, though deterministic within a single process run — calling
// it twice between mutations yields the same order.
package stablestore
