// Package block implements Block, the top-level owner of one editing
// session's wiring diagram: stable stores of Nodes, Gates, and BlockInsts,
// plus the ConnectionNetwork that partitions their connections into
// closed nets.
//
// Block exposes the mutation algebra over that diagram — WhatIsAt,
// MakePortRef, SplitCon, AddConnection, InsertOverlap, EraseCon — and is
// the only layer that ever allocates or deletes a Node; lower layers
// (closednet, network) never touch the entity stores.
package block
