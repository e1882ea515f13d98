// Package closednet implements ClosedNet: one connected wiring component
// of the grid-routed connection graph.
//
// A ClosedNet stores a set of Connections as a dual-map port→port
// adjacency (conMap / conMapRev), so that given either endpoint of an
// edge the other endpoint is an O(1) lookup (GetCon), at the cost of
// maintaining both maps on every Insert/Erase. It also tracks at most one
// input endpoint and a set of output endpoints for I/O accounting, and a
// cached edge count (Size).
//
// Net invariants. ClosedNet's own methods keep N2 and N3 and refuse a
// second input endpoint; they do not check N1, duplicate outputs, or N5,
// which hold only as far as the callers (network, block) insert, merge and
// split nets consistently:
//
//	N1. The graph induced by conMap is connected.
//	N2. len(conMap) == len(conMapRev) == Size.
//	N3. For every (a,b) in conMap there is (b,a) in conMapRev.
//	N4. At most one input endpoint; outputs contain no duplicates.
//	N5. Distinct nets never share a port.
package closednet
