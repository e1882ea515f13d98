package closednet

import "github.com/katalvlaran/wirelath/entity"

// ClosedNet models one connected wiring component: a dual-map port→port
// edge store plus I/O accounting. Construct one with New: the zero value's
// maps are nil, so Insert on a zero ClosedNet panics.
//
// Direction-opposition of a connection's two ports is not checked here:
// ClosedNet only ever sees PortRefs, which do not carry port geometry —
// that check is made once, by block.Block.AddConnection, against the
// actual PortInst directions before a Connection is ever built. This
// package instead enforces the preconditions it alone can observe:
// no duplicate insertion, and every Erase/GetCon targets a port that is
// actually present.
type ClosedNet struct {
	conMap    map[entity.PortRef]entity.PortRef
	conMapRev map[entity.PortRef]entity.PortRef

	hasInput bool
	input    entity.PortRef
	outputs  []entity.PortRef

	size int
}

// New constructs an empty ClosedNet.
func New() *ClosedNet {
	return &ClosedNet{
		conMap:    make(map[entity.PortRef]entity.PortRef),
		conMapRev: make(map[entity.PortRef]entity.PortRef),
	}
}

// Size returns the number of edges (Connections) in the net.
func (n *ClosedNet) Size() int {
	return n.size
}

// HasInput reports whether the net has an input endpoint, and returns it.
func (n *ClosedNet) HasInput() (entity.PortRef, bool) {
	return n.input, n.hasInput
}

// Outputs returns the net's output endpoints. The returned slice is owned
// by the caller (a fresh copy), so mutating it does not affect the net.
func (n *ClosedNet) Outputs() []entity.PortRef {
	out := make([]entity.PortRef, len(n.outputs))
	copy(out, n.outputs)
	return out
}

// recordIO applies one endpoint's PortType to the net's I/O accounting.
// Returns ErrInputConflict if pt is Input and the net already has one.
func (n *ClosedNet) recordIO(p entity.PortRef, pt entity.PortType) error {
	switch pt {
	case entity.Input:
		if n.hasInput {
			return ErrInputConflict
		}
		n.hasInput = true
		n.input = p
	case entity.Output:
		n.outputs = append(n.outputs, p)
	case entity.NodeInternal:
		// no I/O accounting
	}
	return nil
}

// unrecordIO reverses recordIO for an endpoint being erased.
func (n *ClosedNet) unrecordIO(p entity.PortRef) {
	if n.hasInput && n.input.Equal(p) {
		n.hasInput = false
		n.input = entity.PortRef{}
		return
	}
	for i, o := range n.outputs {
		if o.Equal(p) {
			n.outputs = append(n.outputs[:i], n.outputs[i+1:]...)
			return
		}
	}
}

// Insert adds con to the net. pt1/pt2 classify con.P1/con.P2 for I/O
// accounting. Returns ErrAlreadyPresent if con is already in the net, or
// ErrInputConflict if both pt1 and pt2 (or pt and an existing input) would
// give the net two input endpoints.
func (n *ClosedNet) Insert(con entity.Connection, pt1, pt2 entity.PortType) error {
	if n.Contains(con) {
		return ErrAlreadyPresent
	}

	n.conMap[con.P1] = con.P2
	n.conMapRev[con.P2] = con.P1
	n.size++

	if err := n.recordIO(con.P1, pt1); err != nil {
		return err
	}
	if err := n.recordIO(con.P2, pt2); err != nil {
		return err
	}
	return nil
}

// Erase removes con from the net. Returns ErrConnectionAbsent if it is
// not present.
func (n *ClosedNet) Erase(con entity.Connection) error {
	if !n.Contains(con) {
		return ErrConnectionAbsent
	}

	delete(n.conMap, con.P1)
	delete(n.conMap, con.P2)
	delete(n.conMapRev, con.P1)
	delete(n.conMapRev, con.P2)
	n.size--

	n.unrecordIO(con.P1)
	n.unrecordIO(con.P2)
	return nil
}

// ContainsPort reports whether p is an endpoint of some edge in the net.
func (n *ClosedNet) ContainsPort(p entity.PortRef) bool {
	_, fwd := n.conMap[p]
	_, rev := n.conMapRev[p]
	return fwd || rev
}

// Contains reports whether con (in either orientation) is present.
func (n *ClosedNet) Contains(con entity.Connection) bool {
	if other, ok := n.conMap[con.P1]; ok && other == con.P2 {
		return true
	}
	if other, ok := n.conMap[con.P2]; ok && other == con.P1 {
		return true
	}
	return false
}

// ContainsNode reports whether any of node's four port slots has an
// incident edge in this net.
func (n *ClosedNet) ContainsNode(node entity.PortObjRef) bool {
	for i := 0; i < 4; i++ {
		if n.ContainsPort(entity.PortRef{Owner: node, PortNum: i}) {
			return true
		}
	}
	return false
}

// GetCon returns the edge incident to p, or ErrNotInNet if p has none.
func (n *ClosedNet) GetCon(p entity.PortRef) (entity.Connection, error) {
	if other, ok := n.conMap[p]; ok {
		return entity.Connection{P1: p, P2: other}, nil
	}
	if other, ok := n.conMapRev[p]; ok {
		return entity.Connection{P1: p, P2: other}, nil
	}
	return entity.Connection{}, ErrNotInNet
}

// Iter calls fn once for every edge in the net (con_map iteration order;
// each edge is yielded exactly once, never its reverse).
func (n *ClosedNet) Iter(fn func(entity.Connection)) {
	for p1, p2 := range n.conMap {
		fn(entity.Connection{P1: p1, P2: p2})
	}
}

// neighbors returns the ports directly reachable from p in one hop: the
// other end of any edge incident to p, plus — when p sits on a Node —
// the node's other three port slots, since a Node routes a signal between
// all of its ports rather than just the one pair a Connection names.
func (n *ClosedNet) neighbors(p entity.PortRef) []entity.PortRef {
	var out []entity.PortRef
	if o, ok := n.conMap[p]; ok {
		out = append(out, o)
	}
	if o, ok := n.conMapRev[p]; ok {
		out = append(out, o)
	}
	if p.Owner.Kind == entity.KindNode {
		for i := 0; i < 4; i++ {
			if i != p.PortNum {
				out = append(out, entity.PortRef{Owner: p.Owner, PortNum: i})
			}
		}
	}
	return out
}

// IsConnected reports whether a and b are reachable from one another
// through the net's edges and node junctions. Grounded on
// gridgraph.ConnectedComponents' visited-slice/queue-frontier BFS shape.
func (n *ClosedNet) IsConnected(a, b entity.PortRef) bool {
	if a.Equal(b) {
		return true
	}

	visited := map[entity.PortRef]bool{a: true}
	queue := []entity.PortRef{a}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range n.neighbors(cur) {
			if visited[nb] {
				continue
			}
			if nb.Equal(b) {
				return true
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return false
}

// component returns the set of ports reachable from seed, via BFS over
// neighbors (edges plus node junctions).
func (n *ClosedNet) component(seed entity.PortRef) map[entity.PortRef]bool {
	visited := map[entity.PortRef]bool{seed: true}
	queue := []entity.PortRef{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range n.neighbors(cur) {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return visited
}

// SplitNet extracts the connected component containing seed into a new
// ClosedNet, removing its edges and I/O accounting from n. Call this
// after an Erase leaves n's underlying graph disconnected: n keeps
// whichever component was not rooted at seed, and the return value is
// the other half.
func (n *ClosedNet) SplitNet(seed entity.PortRef) *ClosedNet {
	reachable := n.component(seed)
	out := New()

	for p1, p2 := range n.conMap {
		if !reachable[p1] {
			continue
		}
		con := entity.Connection{P1: p1, P2: p2}

		pt1, pt2 := entity.NodeInternal, entity.NodeInternal
		if n.hasInput && n.input.Equal(p1) {
			pt1 = entity.Input
		} else if containsOutput(n.outputs, p1) {
			pt1 = entity.Output
		}
		if n.hasInput && n.input.Equal(p2) {
			pt2 = entity.Input
		} else if containsOutput(n.outputs, p2) {
			pt2 = entity.Output
		}

		_ = out.Insert(con, pt1, pt2)
		_ = n.Erase(con)
	}
	return out
}

func containsOutput(outputs []entity.PortRef, p entity.PortRef) bool {
	for _, o := range outputs {
		if o.Equal(p) {
			return true
		}
	}
	return false
}

// MergeFrom absorbs other into n: every edge and I/O endpoint of other
// becomes part of n, and other is left empty. Returns ErrInputConflict,
// leaving both nets unchanged, if both n and other have an input.
func (n *ClosedNet) MergeFrom(other *ClosedNet) error {
	if n.hasInput && other.hasInput {
		return ErrInputConflict
	}

	for p1, p2 := range other.conMap {
		n.conMap[p1] = p2
		n.conMapRev[p2] = p1
		n.size++
	}
	if other.hasInput {
		n.hasInput = true
		n.input = other.input
	}
	n.outputs = append(n.outputs, other.outputs...)

	other.conMap = make(map[entity.PortRef]entity.PortRef)
	other.conMapRev = make(map[entity.PortRef]entity.PortRef)
	other.hasInput = false
	other.input = entity.PortRef{}
	other.outputs = nil
	other.size = 0
	return nil
}
