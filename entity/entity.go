package entity

import (
	"github.com/katalvlaran/wirelath/geom"
	"github.com/katalvlaran/wirelath/stablestore"
)

// PortInst is a directed attachment point on a Node, Gate, or BlockInst.
// A port has no knowledge of what it is connected to — that lives in the
// owning ClosedNet, addressed by PortRef.
type PortInst struct {
	Dir     geom.Direction
	Pos     geom.Vec
	Negated bool // reserved for the simulation layer; unused by the wiring engine itself
}

// Node is a 4-port junction entity created to anchor a wire endpoint or a
// wire bend. It is created with exactly one incident connection and
// deleted when it becomes incident to zero (see block.Block.EraseCon).
type Node struct {
	Pos   geom.Vec
	Ports [4]PortInst // indexed by geom.Direction
}

// NewNode constructs a Node at pos with all four ports facing outward in
// their corresponding Direction and unconnected.
func NewNode(pos geom.Vec) Node {
	n := Node{Pos: pos}
	for _, d := range geom.AllDirections {
		n.Ports[d] = PortInst{Dir: d, Pos: pos}
	}
	return n
}

// Gate is a logic-gate instance with a variable-length port list. Its
// wiring participates in PortObjRef like any other port owner; its
// simulation semantics are out of scope for this core.
type Gate struct {
	Pos   geom.Vec
	Ports []PortInst
}

// BlockInst is an instance of a sub-block definition placed on the grid,
// with a variable-length port list mirroring its parent block's exposed
// ports. The parent block definition itself is out of scope here (no
// block-definition registry is modeled; BlockInst only carries what the
// wiring graph needs to route wires to its ports).
type BlockInst struct {
	Pos   geom.Vec
	Ports []PortInst
}

// PortType classifies a port for I/O accounting within a ClosedNet.
type PortType int

const (
	// NodeInternal marks a port that is neither a net input nor output —
	// the common case for a plain junction node.
	NodeInternal PortType = iota
	// Input marks a net's single input endpoint.
	Input
	// Output marks one of a net's (possibly several) output endpoints.
	Output
)

// ObjKind discriminates the three variants of PortObjRef: Node, Gate, or
// BlockInst. It is an explicit tag rather than an open Go interface, so
// every switch over it must be updated if a fourth variant is ever added.
type ObjKind int

const (
	KindNode ObjKind = iota
	KindGate
	KindBlockInst
)

// String renders the kind for debugging and test failure messages.
func (k ObjKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindGate:
		return "gate"
	case KindBlockInst:
		return "block_inst"
	default:
		return "invalid"
	}
}

// PortObjRef is a closed tagged union over the three kinds of port owner.
// Exactly one of the Node/Gate/BlockInst handles is meaningful, selected
// by Kind; the others are the zero Handle.
type PortObjRef struct {
	Kind      ObjKind
	Node      stablestore.Handle[Node]
	Gate      stablestore.Handle[Gate]
	BlockInst stablestore.Handle[BlockInst]
}

// NodeRef constructs a PortObjRef over a Node handle.
func NodeRef(h stablestore.Handle[Node]) PortObjRef {
	return PortObjRef{Kind: KindNode, Node: h}
}

// GateRef constructs a PortObjRef over a Gate handle.
func GateRef(h stablestore.Handle[Gate]) PortObjRef {
	return PortObjRef{Kind: KindGate, Gate: h}
}

// BlockInstRef constructs a PortObjRef over a BlockInst handle.
func BlockInstRef(h stablestore.Handle[BlockInst]) PortObjRef {
	return PortObjRef{Kind: KindBlockInst, BlockInst: h}
}

// Equal reports whether two PortObjRefs name the same owner. Comparing
// the whole struct by == would work too (all fields are comparable), but
// Equal documents the intent and avoids comparing the two unused handle
// fields by accident when only Kind is of interest elsewhere.
func (r PortObjRef) Equal(other PortObjRef) bool {
	if r.Kind != other.Kind {
		return false
	}
	switch r.Kind {
	case KindNode:
		return r.Node == other.Node
	case KindGate:
		return r.Gate == other.Gate
	case KindBlockInst:
		return r.BlockInst == other.BlockInst
	default:
		return false
	}
}

// PortRef identifies one port: an owner plus a port index. Two PortRefs
// compare equal iff both the owner and the port number compare equal.
type PortRef struct {
	Owner   PortObjRef
	PortNum int
}

// Equal reports whether two PortRefs identify the same port.
func (p PortRef) Equal(other PortRef) bool {
	return p.Owner.Equal(other.Owner) && p.PortNum == other.PortNum
}

// Connection is an unordered pair of PortRefs: one wire segment between
// two ports. Equality is commutative: {a,b} == {b,a}.
type Connection struct {
	P1, P2 PortRef
}

// Equal reports whether two Connections name the same unordered pair of
// ports.
func (c Connection) Equal(other Connection) bool {
	return (c.P1.Equal(other.P1) && c.P2.Equal(other.P2)) ||
		(c.P1.Equal(other.P2) && c.P2.Equal(other.P1))
}

// Swapped returns c with its endpoints exchanged.
func (c Connection) Swapped() Connection {
	return Connection{P1: c.P2, P2: c.P1}
}

// Other returns the endpoint of c that is not p. Callers must only call
// this when p is known to be one of c's two endpoints (see
// closednet.ClosedNet.GetCon, which returns exactly this pairing).
func (c Connection) Other(p PortRef) PortRef {
	if c.P1.Equal(p) {
		return c.P2
	}
	return c.P1
}
