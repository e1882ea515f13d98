package block

import (
	"github.com/katalvlaran/wirelath/closednet"
	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/geom"
	"github.com/katalvlaran/wirelath/network"
	"github.com/katalvlaran/wirelath/stablestore"
)

// Block owns one editing session's whole diagram.
type Block struct {
	name        string
	description string
	size        int

	nodes      stablestore.Store[entity.Node]
	gates      stablestore.Store[entity.Gate]
	blockInsts stablestore.Store[entity.BlockInst]
	net        *network.ConnectionNetwork
}

// Option configures a Block at construction time.
type Option func(*Block)

// WithDescription attaches a free-text description to the Block.
func WithDescription(desc string) Option {
	return func(b *Block) { b.description = desc }
}

// New constructs an empty Block over a size×size grid.
func New(name string, size int, opts ...Option) *Block {
	b := &Block{
		name:       name,
		size:       size,
		nodes:      stablestore.NewPeppered[entity.Node](),
		gates:      stablestore.NewPeppered[entity.Gate](),
		blockInsts: stablestore.NewPeppered[entity.BlockInst](),
		net:        network.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the Block's name.
func (b *Block) Name() string { return b.name }

// Description returns the Block's free-text description.
func (b *Block) Description() string { return b.description }

// Size returns the grid dimension.
func (b *Block) Size() int { return b.size }

// Nodes returns the Block's Node store.
func (b *Block) Nodes() stablestore.Store[entity.Node] { return b.nodes }

// Gates returns the Block's Gate store.
func (b *Block) Gates() stablestore.Store[entity.Gate] { return b.gates }

// BlockInstances returns the Block's BlockInst store.
func (b *Block) BlockInstances() stablestore.Store[entity.BlockInst] { return b.blockInsts }

// Nets returns the Block's ConnectionNetwork.
func (b *Block) Nets() *network.ConnectionNetwork { return b.net }

// PortPos returns the grid position a PortRef's owner occupies. Exported
// for the editor package's overlap-indicator computation, which needs
// endpoint coordinates rather than a PortInst.
func (b *Block) PortPos(ref entity.PortRef) (geom.Vec, error) {
	return b.portPos(ref)
}

// portPos returns the grid position a PortRef's owner occupies.
func (b *Block) portPos(ref entity.PortRef) (geom.Vec, error) {
	switch ref.Owner.Kind {
	case entity.KindNode:
		n, err := b.nodes.Get(ref.Owner.Node)
		if err != nil {
			return geom.Vec{}, ErrInvalidHandle
		}
		return n.Pos, nil
	case entity.KindGate:
		g, err := b.gates.Get(ref.Owner.Gate)
		if err != nil {
			return geom.Vec{}, ErrInvalidHandle
		}
		if ref.PortNum < 0 || ref.PortNum >= len(g.Ports) {
			return geom.Vec{}, ErrInvalidHandle
		}
		return g.Ports[ref.PortNum].Pos, nil
	case entity.KindBlockInst:
		inst, err := b.blockInsts.Get(ref.Owner.BlockInst)
		if err != nil {
			return geom.Vec{}, ErrInvalidHandle
		}
		if ref.PortNum < 0 || ref.PortNum >= len(inst.Ports) {
			return geom.Vec{}, ErrInvalidHandle
		}
		return inst.Ports[ref.PortNum].Pos, nil
	default:
		return geom.Vec{}, ErrInvalidHandle
	}
}

// portDirection returns the Direction a PortRef's port faces.
func (b *Block) portDirection(ref entity.PortRef) (geom.Direction, error) {
	p, err := b.GetPort(ref)
	if err != nil {
		return 0, err
	}
	return p.Dir, nil
}

// GetPort returns the PortInst identified by ref.
func (b *Block) GetPort(ref entity.PortRef) (*entity.PortInst, error) {
	switch ref.Owner.Kind {
	case entity.KindNode:
		n, err := b.nodes.Get(ref.Owner.Node)
		if err != nil {
			return nil, ErrInvalidHandle
		}
		if ref.PortNum < 0 || ref.PortNum >= len(n.Ports) {
			return nil, ErrInvalidHandle
		}
		return &n.Ports[ref.PortNum], nil
	case entity.KindGate:
		g, err := b.gates.Get(ref.Owner.Gate)
		if err != nil {
			return nil, ErrInvalidHandle
		}
		if ref.PortNum < 0 || ref.PortNum >= len(g.Ports) {
			return nil, ErrInvalidHandle
		}
		return &g.Ports[ref.PortNum], nil
	case entity.KindBlockInst:
		inst, err := b.blockInsts.Get(ref.Owner.BlockInst)
		if err != nil {
			return nil, ErrInvalidHandle
		}
		if ref.PortNum < 0 || ref.PortNum >= len(inst.Ports) {
			return nil, ErrInvalidHandle
		}
		return &inst.Ports[ref.PortNum], nil
	default:
		return nil, ErrInvalidHandle
	}
}

// WhatIsAt classifies whatever occupies grid position coord: a node, a
// single connection passing through it, two crossing connections, or
// nothing at all.
func (b *Block) WhatIsAt(coord geom.Vec) (ObjAtCoord, error) {
	var nodeAt stablestore.Handle[entity.Node]
	foundNode := false
	b.nodes.Iter(func(h stablestore.Handle[entity.Node], n *entity.Node) {
		if !foundNode && n.Pos == coord {
			nodeAt, foundNode = h, true
		}
	})
	if foundNode {
		return ObjAtCoord{Kind: ObjNode, Node: nodeAt}, nil
	}

	var hits []entity.Connection
	b.net.Iter(func(_ network.NetHandle, n *closednet.ClosedNet) {
		n.Iter(func(con entity.Connection) {
			p1, err1 := b.portPos(con.P1)
			p2, err2 := b.portPos(con.P2)
			if err1 != nil || err2 != nil {
				return
			}
			if geom.IsBetween(coord, p1, p2) {
				hits = append(hits, con)
			}
		})
	})

	switch len(hits) {
	case 0:
		return ObjAtCoord{Kind: ObjEmpty}, nil
	case 1:
		return ObjAtCoord{Kind: ObjCon, Con: hits[0]}, nil
	case 2:
		return ObjAtCoord{Kind: ObjConCross, Con: hits[0], ConB: hits[1]}, nil
	default:
		return ObjAtCoord{}, ErrGraphInvariantViolation
	}
}

// netOf returns the net already containing ref's owner, if any. For a
// Node owner this checks the whole node (via NetOfNode) rather than just
// ref's own port slot: a node's four ports are joined by its internal
// junction (closednet.ClosedNet.neighbors), so whenever any one of them
// already has an edge, a brand-new edge on a different, still-free slot
// of that same node must extend the very same net, not allocate a fresh
// one. NetOfPort alone would miss this, since the new slot itself has no
// edge yet.
func (b *Block) netOf(ref entity.PortRef) (network.NetHandle, bool) {
	if ref.Owner.Kind == entity.KindNode {
		return b.net.NetOfNode(ref.Owner.Node)
	}
	return b.net.NetOfPort(ref)
}

// ioTypeOf classifies p's I/O role within n, defaulting to NodeInternal.
func ioTypeOf(n *closednet.ClosedNet, p entity.PortRef) entity.PortType {
	if in, ok := n.HasInput(); ok && in.Equal(p) {
		return entity.Input
	}
	for _, o := range n.Outputs() {
		if o.Equal(p) {
			return entity.Output
		}
	}
	return entity.NodeInternal
}

// MakePortRef resolves pos/dirIntoPort to a PortRef, collapsing a
// redundant intermediate node when the opposite slot is already wired.
func (b *Block) MakePortRef(pos geom.Vec, dirIntoPort geom.Direction) (entity.PortRef, error) {
	cls, err := b.WhatIsAt(pos)
	if err != nil {
		return entity.PortRef{}, err
	}

	switch cls.Kind {
	case ObjEmpty:
		h := b.nodes.Insert(entity.NewNode(pos))
		return entity.PortRef{Owner: entity.NodeRef(h), PortNum: int(dirIntoPort.Reverse())}, nil

	case ObjCon:
		h := b.nodes.Insert(entity.NewNode(pos))
		if err := b.SplitCon(cls.Con, h); err != nil {
			return entity.PortRef{}, err
		}
		return entity.PortRef{Owner: entity.NodeRef(h), PortNum: int(dirIntoPort.Reverse())}, nil

	case ObjPort:
		return cls.Port, nil

	case ObjNode:
		h := cls.Node
		// Every occupied slot on a node was assigned reverse(dirIntoPort)
		// at the time its connection was made (Empty/Con branches above,
		// and this branch too) — see Block.cpp's makeNewPortRef, which
		// reverses dirIntoPort uniformly regardless of classification.
		ref := entity.PortRef{Owner: entity.NodeRef(h), PortNum: int(dirIntoPort.Reverse())}

		netH, hasNet := b.net.NetOfNode(h)
		if hasNet {
			n, err := b.net.Get(netH)
			if err != nil {
				return entity.PortRef{}, err
			}
			if n.ContainsPort(ref) {
				return entity.PortRef{}, ErrPortOccupied
			}

			if b.net.NodeConCount(h) == 1 {
				// The slot directly opposite ref is dirIntoPort itself:
				// reverse(reverse(dirIntoPort)) == dirIntoPort.
				oppositeRef := entity.PortRef{Owner: entity.NodeRef(h), PortNum: int(dirIntoPort)}
				if n.ContainsPort(oppositeRef) {
					con, err := n.GetCon(oppositeRef)
					if err != nil {
						return entity.PortRef{}, err
					}
					other := con.Other(oppositeRef)
					if err := n.Erase(con); err != nil {
						return entity.PortRef{}, err
					}
					if n.Size() == 0 {
						_ = b.net.Erase(netH)
					}
					if err := b.nodes.Erase(h); err != nil {
						return entity.PortRef{}, err
					}
					return other, nil
				}
			}
		}
		return ref, nil

	default: // ObjConCross, ObjGate, ObjBlockInst
		return entity.PortRef{}, ErrIllegalTarget
	}
}

// SplitCon cuts connection c at node, replacing it with two sub-connections
// running from each of c's original endpoints to node.
func (b *Block) SplitCon(c entity.Connection, node stablestore.Handle[entity.Node]) error {
	netH, ok := b.net.NetOfPort(c.P1)
	if !ok {
		return ErrNotInNet
	}
	n, err := b.net.Get(netH)
	if err != nil {
		return err
	}
	if !n.Contains(c) {
		return closednet.ErrConnectionAbsent
	}

	nodePos, err := b.nodes.Get(node)
	if err != nil {
		return ErrInvalidHandle
	}
	p1Pos, err := b.portPos(c.P1)
	if err != nil {
		return err
	}
	p2Pos, err := b.portPos(c.P2)
	if err != nil {
		return err
	}

	pt1 := ioTypeOf(n, c.P1)
	pt2 := ioTypeOf(n, c.P2)

	if err := n.Erase(c); err != nil {
		return err
	}

	dirToP1 := geom.VecToDir(p1Pos.Sub(nodePos.Pos))
	dirToP2 := geom.VecToDir(p2Pos.Sub(nodePos.Pos))
	nodeRef := entity.NodeRef(node)

	sub1 := entity.Connection{P1: c.P1, P2: entity.PortRef{Owner: nodeRef, PortNum: int(dirToP1)}}
	sub2 := entity.Connection{P1: c.P2, P2: entity.PortRef{Owner: nodeRef, PortNum: int(dirToP2)}}

	if err := n.Insert(sub1, pt1, entity.NodeInternal); err != nil {
		return err
	}
	if err := n.Insert(sub2, pt2, entity.NodeInternal); err != nil {
		return err
	}
	return nil
}

// AddConnection wires a straight connection between start and end,
// resolving or creating a node/port at each endpoint and merging nets
// as needed.
func (b *Block) AddConnection(start, end geom.Vec) (entity.Connection, error) {
	if start == end {
		return entity.Connection{}, nil
	}

	dirStartToEnd := geom.VecToDir(end.Sub(start))
	dirEndToStart := dirStartToEnd.Reverse()

	pStart, err := b.MakePortRef(start, dirStartToEnd)
	if err != nil {
		return entity.Connection{}, err
	}
	pEnd, err := b.MakePortRef(end, dirEndToStart)
	if err != nil {
		return entity.Connection{}, err
	}

	dirStart, err := b.portDirection(pStart)
	if err != nil {
		return entity.Connection{}, err
	}
	dirEnd, err := b.portDirection(pEnd)
	if err != nil {
		return entity.Connection{}, err
	}
	if dirStart.Reverse() != dirEnd {
		return entity.Connection{}, ErrNonOpposingPorts
	}

	con := entity.Connection{P1: pStart, P2: pEnd}

	var hint1, hint2 *network.NetHandle
	if h, ok := b.netOf(pStart); ok {
		hint1 = &h
	}
	if h, ok := b.netOf(pEnd); ok {
		hint2 = &h
	}

	if _, err := b.net.Insert(con, hint1, hint2, entity.NodeInternal, entity.NodeInternal); err != nil {
		return entity.Connection{}, err
	}
	return con, nil
}

// InsertOverlap drops a crossing node at pos where c1 and c2 intersect,
// splitting both connections through it and merging their nets if they
// differ.
func (b *Block) InsertOverlap(c1, c2 entity.Connection, pos geom.Vec) error {
	netH1, ok1 := b.netOf(c1.P1)
	netH2, ok2 := b.netOf(c2.P1)
	sameNet := ok1 && ok2 && netH1 == netH2

	h := b.nodes.Insert(entity.NewNode(pos))

	if err := b.SplitCon(c1, h); err != nil {
		return err
	}

	if sameNet {
		return b.SplitCon(c2, h)
	}

	if !ok2 {
		return ErrNotInNet
	}
	n2, err := b.net.Get(netH2)
	if err != nil {
		return err
	}

	p1Pos, err := b.portPos(c2.P1)
	if err != nil {
		return err
	}
	p2Pos, err := b.portPos(c2.P2)
	if err != nil {
		return err
	}

	pt1 := ioTypeOf(n2, c2.P1)
	pt2 := ioTypeOf(n2, c2.P2)

	if err := n2.Erase(c2); err != nil {
		return err
	}
	if n2.Size() == 0 {
		_ = b.net.Erase(netH2)
	}

	nodePos, err := b.nodes.Get(h)
	if err != nil {
		return ErrInvalidHandle
	}
	dirToP1 := geom.VecToDir(p1Pos.Sub(nodePos.Pos))
	dirToP2 := geom.VecToDir(p2Pos.Sub(nodePos.Pos))
	nodeRef := entity.NodeRef(h)

	half1 := entity.Connection{P1: c2.P1, P2: entity.PortRef{Owner: nodeRef, PortNum: int(dirToP1)}}
	half2 := entity.Connection{P1: c2.P2, P2: entity.PortRef{Owner: nodeRef, PortNum: int(dirToP2)}}

	var hint1a, hintNode1 *network.NetHandle
	if hh, ok := b.netOf(c2.P1); ok {
		hint1a = &hh
	}
	if hh, ok := b.netOf(half1.P2); ok {
		hintNode1 = &hh
	}
	if _, err := b.net.Insert(half1, hint1a, hintNode1, pt1, entity.NodeInternal); err != nil {
		return err
	}

	var hint2a, hintNode2 *network.NetHandle
	if hh, ok := b.netOf(c2.P2); ok {
		hint2a = &hh
	}
	if hh, ok := b.netOf(half2.P2); ok {
		hintNode2 = &hh
	}
	if _, err := b.net.Insert(half2, hint2a, hintNode2, pt2, entity.NodeInternal); err != nil {
		return err
	}
	return nil
}

// EraseCon removes c from its net, splitting the net if the removal
// disconnects it and pruning any node left with no remaining connections.
func (b *Block) EraseCon(c entity.Connection) error {
	netH, ok := b.net.NetOfPort(c.P1)
	if !ok {
		return ErrNotInNet
	}
	n, err := b.net.Get(netH)
	if err != nil {
		return err
	}
	if !n.Contains(c) {
		return closednet.ErrConnectionAbsent
	}

	if err := n.Erase(c); err != nil {
		return err
	}

	if !n.IsConnected(c.P1, c.P2) {
		newNet := n.SplitNet(c.P1)
		if newNet.Size() > 0 {
			b.net.Register(newNet)
		}
	}
	if n.Size() == 0 {
		_ = b.net.Erase(netH)
	}

	for _, p := range [2]entity.PortRef{c.P1, c.P2} {
		if p.Owner.Kind != entity.KindNode {
			continue
		}
		h := p.Owner.Node
		if b.net.NodeConCount(h) == 0 {
			_ = b.nodes.Erase(h)
		}
	}
	return nil
}
