// Package entity defines the wiring-graph's addressable objects: Node,
// Gate, BlockInst, and the Port/PortRef/Connection types that tie them
// together.
//
// A port has no knowledge of what it is connected to — that lives in the
// net (see package closednet). PortRef identifies a port by its owner
// (one of Node, Gate, or BlockInst, via the closed PortObjRef union) plus
// a port index; Connection is an unordered pair of PortRefs.
//
// PortObjRef is modeled as a small closed struct (a kind tag plus three
// handle fields, only one populated) rather than a Go interface: every
// site that discriminates on it must handle all three variants, even
// though only Node routing is presently implemented — Gate and BlockInst
// routing extend the same matchers rather than requiring a new
// open-ended type switch.
package entity
