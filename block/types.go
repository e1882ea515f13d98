package block

import (
	"errors"

	"github.com/katalvlaran/wirelath/closednet"
	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/stablestore"
)

// Sentinel errors crossing the Block API boundary.
// ErrInvalidHandle, ErrInputConflict, and ErrNotInNet alias the lower
// layers' own sentinels rather than wrapping them, so a caller's
// errors.Is check works regardless of which layer actually returned it.
var (
	ErrInvalidHandle           = stablestore.ErrInvalidHandle
	ErrPortOccupied            = errors.New("block: port already occupied")
	ErrNonOpposingPorts        = errors.New("block: ports do not face opposite directions")
	ErrIllegalTarget           = errors.New("block: illegal target for this operation")
	ErrInputConflict           = closednet.ErrInputConflict
	ErrGraphInvariantViolation = errors.New("block: graph invariant violation")
	ErrNotInNet                = closednet.ErrNotInNet
)

// ObjKind discriminates the result of WhatIsAt.
type ObjKind int

const (
	ObjEmpty ObjKind = iota
	ObjCon
	ObjConCross
	ObjPort
	ObjNode
	ObjGate
	ObjBlockInst
)

// String renders the ObjKind for diagnostics.
func (k ObjKind) String() string {
	switch k {
	case ObjEmpty:
		return "empty"
	case ObjCon:
		return "con"
	case ObjConCross:
		return "con_cross"
	case ObjPort:
		return "port"
	case ObjNode:
		return "node"
	case ObjGate:
		return "gate"
	case ObjBlockInst:
		return "block_inst"
	default:
		return "unknown"
	}
}

// ObjAtCoord is the tagged-union result of Block.WhatIsAt. Only the
// field(s) named by Kind are meaningful; the rest are zero values.
//
// ObjPort, ObjGate, and ObjBlockInst are reserved tags: WhatIsAt's
// current algorithm only ever produces Empty, Node, Con, and ConCross,
// since Gate/BlockInst footprint hit-testing is out of scope for the
// wire engine proper. The tags exist so that future gate and block
// routing can extend this discriminator rather than replace it.
type ObjAtCoord struct {
	Kind ObjKind

	Con  entity.Connection // Kind == ObjCon or ObjConCross
	ConB entity.Connection // Kind == ObjConCross

	Port entity.PortRef // Kind == ObjPort

	Node      stablestore.Handle[entity.Node]      // Kind == ObjNode
	Gate      stablestore.Handle[entity.Gate]      // Kind == ObjGate
	BlockInst stablestore.Handle[entity.BlockInst] // Kind == ObjBlockInst
}
