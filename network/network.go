package network

import (
	"github.com/katalvlaran/wirelath/closednet"
	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/stablestore"
)

// NetHandle identifies one ClosedNet within a ConnectionNetwork.
type NetHandle = stablestore.Handle[closednet.ClosedNet]

// ConnectionNetwork owns every ClosedNet of a Block, keyed by stable
// handle so that entity PortRefs never need to carry a net pointer.
type ConnectionNetwork struct {
	nets stablestore.Store[closednet.ClosedNet]
}

// New constructs an empty ConnectionNetwork backed by a Peppered store,
// since nets are both created and drained (erased) over a session's
// lifetime.
func New() *ConnectionNetwork {
	return &ConnectionNetwork{nets: stablestore.NewPeppered[closednet.ClosedNet]()}
}

// Get returns the net at h, or ErrNetNotFound.
func (cn *ConnectionNetwork) Get(h NetHandle) (*closednet.ClosedNet, error) {
	n, err := cn.nets.Get(h)
	if err != nil {
		return nil, ErrNetNotFound
	}
	return n, nil
}

// Len returns the number of live nets.
func (cn *ConnectionNetwork) Len() int {
	return cn.nets.Len()
}

// Iter calls fn once per live net.
func (cn *ConnectionNetwork) Iter(fn func(NetHandle, *closednet.ClosedNet)) {
	cn.nets.Iter(fn)
}

// Insert adds con to the network, choosing among five branches depending
// on which net(s) already contain its endpoints:
//
//	net1Hint == nil, net2Hint == nil: allocate a fresh net
//	net1Hint != nil, net2Hint == nil: extend net1Hint
//	net1Hint == nil, net2Hint != nil: extend net2Hint
//	both set, equal:                 insert within (forms a loop)
//	both set, distinct:               union smaller-into-larger, then insert
//
// Returns the handle of the net con now lives in.
func (cn *ConnectionNetwork) Insert(
	con entity.Connection,
	net1Hint, net2Hint *NetHandle,
	pt1, pt2 entity.PortType,
) (NetHandle, error) {
	switch {
	case net1Hint == nil && net2Hint == nil:
		n := closednet.New()
		if err := n.Insert(con, pt1, pt2); err != nil {
			return NetHandle{}, err
		}
		return cn.nets.Insert(*n), nil

	case net1Hint != nil && net2Hint == nil:
		n, err := cn.Get(*net1Hint)
		if err != nil {
			return NetHandle{}, err
		}
		if err := n.Insert(con, pt1, pt2); err != nil {
			return NetHandle{}, err
		}
		return *net1Hint, nil

	case net1Hint == nil && net2Hint != nil:
		n, err := cn.Get(*net2Hint)
		if err != nil {
			return NetHandle{}, err
		}
		if err := n.Insert(con, pt1, pt2); err != nil {
			return NetHandle{}, err
		}
		return *net2Hint, nil

	case *net1Hint == *net2Hint:
		n, err := cn.Get(*net1Hint)
		if err != nil {
			return NetHandle{}, err
		}
		if err := n.Insert(con, pt1, pt2); err != nil {
			return NetHandle{}, err
		}
		return *net1Hint, nil

	default:
		survivor, drained := *net1Hint, *net2Hint
		nSurvivor, err := cn.Get(survivor)
		if err != nil {
			return NetHandle{}, err
		}
		nDrained, err := cn.Get(drained)
		if err != nil {
			return NetHandle{}, err
		}
		if nDrained.Size() > nSurvivor.Size() {
			survivor, drained = drained, survivor
			nSurvivor, nDrained = nDrained, nSurvivor
		}
		if err := nSurvivor.MergeFrom(nDrained); err != nil {
			return NetHandle{}, err
		}
		if err := cn.nets.Erase(drained); err != nil {
			return NetHandle{}, err
		}
		if err := nSurvivor.Insert(con, pt1, pt2); err != nil {
			return NetHandle{}, err
		}
		return survivor, nil
	}
}

// Erase removes h from the network entirely. Used once a net has been
// fully drained by split_net handling in block.Block.EraseCon.
func (cn *ConnectionNetwork) Erase(h NetHandle) error {
	if err := cn.nets.Erase(h); err != nil {
		return ErrNetNotFound
	}
	return nil
}

// Register adds an already-built net (e.g. the product of ClosedNet.SplitNet)
// as a new entry and returns its handle.
func (cn *ConnectionNetwork) Register(n *closednet.ClosedNet) NetHandle {
	return cn.nets.Insert(*n)
}

// NetOfPort does an O(N) scan over every net looking for one containing
// port. Callers that already hold a hint should prefer it over calling
// this on every lookup.
func (cn *ConnectionNetwork) NetOfPort(port entity.PortRef) (NetHandle, bool) {
	var found NetHandle
	ok := false
	cn.nets.Iter(func(h NetHandle, n *closednet.ClosedNet) {
		if ok {
			return
		}
		if n.ContainsPort(port) {
			found, ok = h, true
		}
	})
	return found, ok
}

// NetOfNode scans for the net containing any of node's four port slots.
func (cn *ConnectionNetwork) NetOfNode(node stablestore.Handle[entity.Node]) (NetHandle, bool) {
	ref := entity.NodeRef(node)
	var found NetHandle
	ok := false
	cn.nets.Iter(func(h NetHandle, n *closednet.ClosedNet) {
		if ok {
			return
		}
		if n.ContainsNode(ref) {
			found, ok = h, true
		}
	})
	return found, ok
}

// NodeConCount returns how many of node's four port slots have an
// incident connection, or 0 if the node is in no net at all.
func (cn *ConnectionNetwork) NodeConCount(node stablestore.Handle[entity.Node]) int {
	h, ok := cn.NetOfNode(node)
	if !ok {
		return 0
	}
	n, err := cn.Get(h)
	if err != nil {
		return 0
	}

	ref := entity.NodeRef(node)
	count := 0
	for i := 0; i < 4; i++ {
		if n.ContainsPort(entity.PortRef{Owner: ref, PortNum: i}) {
			count++
		}
	}
	return count
}
