package editor

import (
	"math"

	"github.com/katalvlaran/wirelath/block"
	"github.com/katalvlaran/wirelath/closednet"
	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/geom"
	"github.com/katalvlaran/wirelath/network"
	"github.com/katalvlaran/wirelath/stablestore"
)

// Editor is the per-session input state machine sitting in front of a
// Block. It owns no graph state of its own — only the transient fields
// needed to render an in-progress connection and decide, on commit,
// which Block mutation to call.
type Editor struct {
	block *block.Block

	state State

	conStartPos geom.Vec
	conEndPos   geom.Vec

	conStartObj block.ObjAtCoord
	conEndObj   block.ObjAtCoord

	conStartNet *network.NetHandle
	conEndNet   *network.NetHandle

	conStartLegal bool
	conEndLegal   bool

	overlapPos []geom.Vec
}

// New wraps an Editor around an existing Block.
func New(b *block.Block) *Editor {
	return &Editor{block: b}
}

// State returns the Editor's current mode.
func (e *Editor) State() State { return e.state }

// ConStartPos returns the cached connection-start coordinate.
func (e *Editor) ConStartPos() geom.Vec { return e.conStartPos }

// ConEndPos returns the cached proposed connection-end coordinate.
func (e *Editor) ConEndPos() geom.Vec { return e.conEndPos }

// ConStartObj returns what_is_at(ConStartPos) as of the last frame.
func (e *Editor) ConStartObj() block.ObjAtCoord { return e.conStartObj }

// ConEndObj returns what_is_at(ConEndPos) as of the last frame.
func (e *Editor) ConEndObj() block.ObjAtCoord { return e.conEndObj }

// ConStartNet returns the net handle the start point belongs to, if any.
func (e *Editor) ConStartNet() (network.NetHandle, bool) {
	if e.conStartNet == nil {
		return network.NetHandle{}, false
	}
	return *e.conStartNet, true
}

// ConEndNet returns the net handle the end point belongs to, if any.
func (e *Editor) ConEndNet() (network.NetHandle, bool) {
	if e.conEndNet == nil {
		return network.NetHandle{}, false
	}
	return *e.conEndNet, true
}

// ConStartLegal reports whether the cached start point is a legal
// connection start.
func (e *Editor) ConStartLegal() bool { return e.conStartLegal }

// ConEndLegal reports whether the cached proposed end point is legal.
func (e *Editor) ConEndLegal() bool { return e.conEndLegal }

// OverlapPos returns the purely-visual set of cells where the proposed
// connection would cross or merge with existing nets.
func (e *Editor) OverlapPos() []geom.Vec {
	out := make([]geom.Vec, len(e.overlapPos))
	copy(out, e.overlapPos)
	return out
}

// SnapToGrid rounds a world-space coordinate to the nearest grid cell
// and clamps it inside the block's [0,size) extent.
func (e *Editor) SnapToGrid(worldX, worldY float64) geom.Vec {
	v := geom.Vec{X: int(math.Round(worldX)), Y: int(math.Round(worldY))}
	return clampVec(v, e.block.Size())
}

func isConnectable(k block.ObjKind) bool {
	switch k {
	case block.ObjEmpty, block.ObjCon, block.ObjPort, block.ObjNode:
		return true
	default:
		return false
	}
}

// netOfObj resolves the net (if any) that an already-classified object
// belongs to, mirroring Block's own node/port dispatch.
func (e *Editor) netOfObj(obj block.ObjAtCoord) *network.NetHandle {
	switch obj.Kind {
	case block.ObjNode:
		if h, ok := e.block.Nets().NetOfNode(obj.Node); ok {
			return &h
		}
	case block.ObjCon, block.ObjConCross:
		if h, ok := e.block.Nets().NetOfPort(obj.Con.P1); ok {
			return &h
		}
	}
	return nil
}

// isLegalStart reports whether obj is a connectable target and, for a
// Node, still has a free port slot to start from.
func (e *Editor) isLegalStart(obj block.ObjAtCoord) bool {
	if !isConnectable(obj.Kind) {
		return false
	}
	if obj.Kind == block.ObjNode && e.block.Nets().NodeConCount(obj.Node) >= 4 {
		return false
	}
	return true
}

// isLegalEnd reports whether end/obj is a legal place to finish the
// in-progress connection: the target must be connectable and not already
// wired opposite the proposed direction, and no existing node may sit
// strictly between the start and end points.
func (e *Editor) isLegalEnd(end geom.Vec, obj block.ObjAtCoord) bool {
	if end == e.conStartPos {
		return true
	}
	if !isConnectable(obj.Kind) {
		return false
	}

	if obj.Kind == block.ObjNode {
		portNum := geom.VecToDir(e.conStartPos.Sub(end))
		if netH, ok := e.block.Nets().NetOfNode(obj.Node); ok {
			n, err := e.block.Nets().Get(netH)
			if err == nil {
				ref := entity.PortRef{Owner: entity.NodeRef(obj.Node), PortNum: int(portNum)}
				if n.ContainsPort(ref) {
					return false
				}
			}
		}
	}

	if obj.Kind == block.ObjCon {
		port1, err := e.block.GetPort(obj.Con.P1)
		if err != nil {
			return false
		}
		propDir := geom.VecToDir(end.Sub(e.conStartPos))
		if propDir == port1.Dir || propDir == port1.Dir.Reverse() {
			return false
		}
	}

	between := false
	e.block.Nodes().Iter(func(_ stablestore.Handle[entity.Node], n *entity.Node) {
		if between {
			return
		}
		if n.Pos == e.conStartPos || n.Pos == end {
			return
		}
		if geom.IsBetween(n.Pos, e.conStartPos, end) {
			between = true
		}
	})
	return !between
}

// bestFreeDirection picks the free port direction on node that maximises
// dot(dir, diff), i.e. the unoccupied slot pointing closest toward the
// cursor. Returns false if all four ports are occupied.
func (e *Editor) bestFreeDirection(node stablestore.Handle[entity.Node], diff geom.Vec) (geom.Direction, bool) {
	var n *closednet.ClosedNet
	if netH, ok := e.block.Nets().NetOfNode(node); ok {
		if got, err := e.block.Nets().Get(netH); err == nil {
			n = got
		}
	}

	best := -1
	bestDot := math.MinInt
	for d := 0; d < 4; d++ {
		dir := geom.Direction(d)
		if n != nil {
			ref := entity.PortRef{Owner: entity.NodeRef(node), PortNum: d}
			if n.ContainsPort(ref) {
				continue
			}
		}
		dot := geom.DotDir(dir, diff)
		if best == -1 || dot > bestDot {
			best, bestDot = d, dot
		}
	}
	if best == -1 {
		return 0, false
	}
	return geom.Direction(best), true
}

// computeOverlap returns the union of the proposed segment's
// intersections with each end's current net, plus pairwise intersections
// between the two end-nets if they differ — the purely-visual set of
// points where committing the connection would cross or merge wiring.
func (e *Editor) computeOverlap() []geom.Vec {
	var out []geom.Vec
	add := func(p geom.Vec) {
		for _, q := range out {
			if q == p {
				return
			}
		}
		out = append(out, p)
	}

	segAgainstNet := func(a1, a2 geom.Vec, netH network.NetHandle) {
		n, err := e.block.Nets().Get(netH)
		if err != nil {
			return
		}
		n.Iter(func(con entity.Connection) {
			b1, err1 := e.block.PortPos(con.P1)
			b2, err2 := e.block.PortPos(con.P2)
			if err1 != nil || err2 != nil {
				return
			}
			if p, ok := geom.LineIntersection(a1, a2, b1, b2); ok {
				add(p)
			}
		})
	}

	netsAgainstEachOther := func(hx, hy network.NetHandle) {
		nx, errx := e.block.Nets().Get(hx)
		ny, erry := e.block.Nets().Get(hy)
		if errx != nil || erry != nil {
			return
		}
		nx.Iter(func(cx entity.Connection) {
			ax1, err1 := e.block.PortPos(cx.P1)
			ax2, err2 := e.block.PortPos(cx.P2)
			if err1 != nil || err2 != nil {
				return
			}
			ny.Iter(func(cy entity.Connection) {
				bx1, err3 := e.block.PortPos(cy.P1)
				bx2, err4 := e.block.PortPos(cy.P2)
				if err3 != nil || err4 != nil {
					return
				}
				if p, ok := geom.LineIntersection(ax1, ax2, bx1, bx2); ok {
					add(p)
				}
			})
		})
	}

	if e.conStartNet != nil {
		segAgainstNet(e.conStartPos, e.conEndPos, *e.conStartNet)
	}
	if e.conEndNet != nil {
		segAgainstNet(e.conStartPos, e.conEndPos, *e.conEndNet)
	}
	if e.conStartNet != nil && e.conEndNet != nil && *e.conStartNet != *e.conEndNet {
		netsAgainstEachOther(*e.conStartNet, *e.conEndNet)
	}
	return out
}

// OnFrame advances the Editor's cached fields for the current grid-
// snapped cursor position. Called once per rendered frame; never mutates
// the underlying Block.
func (e *Editor) OnFrame(cursor geom.Vec) error {
	switch e.state {
	case Idle:
		e.conStartPos = cursor
		obj, err := e.block.WhatIsAt(cursor)
		if err != nil {
			return err
		}
		e.conStartObj = obj
		e.conStartLegal = e.isLegalStart(obj)
		e.conStartNet = e.netOfObj(obj)
		e.conEndNet = nil
		e.overlapPos = nil

	case Deleting:
		e.conStartPos = cursor
		obj, err := e.block.WhatIsAt(cursor)
		if err != nil {
			return err
		}
		e.conStartObj = obj
		e.conStartLegal = obj.Kind == block.ObjCon
		e.conStartNet = e.netOfObj(obj)

	case Connecting:
		diff := cursor.Sub(e.conStartPos)
		endProp := e.conStartPos.Add(geom.SnapToAxis(diff))

		switch e.conStartObj.Kind {
		case block.ObjPort:
			port, err := e.block.GetPort(e.conStartObj.Port)
			if err != nil {
				return err
			}
			dist := geom.DotDir(port.Dir, diff)
			if dist < 0 {
				dist = 0
			}
			endProp = e.conStartPos.Add(port.Dir.ToVec().Scale(dist))

		case block.ObjNode:
			dir, ok := e.bestFreeDirection(e.conStartObj.Node, diff)
			if !ok {
				e.conEndLegal = false
				return nil
			}
			dist := geom.DotDir(dir, diff)
			if dist < 0 {
				dist = 0
			}
			endProp = e.conStartPos.Add(dir.ToVec().Scale(dist))

		case block.ObjCon:
			port1, err := e.block.GetPort(e.conStartObj.Con.P1)
			if err != nil {
				return err
			}
			newDir := port1.Dir.SwapXY()
			dist := geom.DotDir(newDir, diff)
			endProp = e.conStartPos.Add(newDir.ToVec().Scale(dist))

		case block.ObjEmpty:
			// endProp already holds the axis-snapped default.

		default:
			e.conEndLegal = false
			return nil
		}

		endObj, err := e.block.WhatIsAt(endProp)
		if err != nil {
			return err
		}
		if !e.isLegalEnd(endProp, endObj) {
			e.conEndLegal = false
			return nil
		}

		e.conEndLegal = true
		e.conEndPos = endProp
		e.conEndObj = endObj
		e.conEndNet = e.netOfObj(endObj)
		e.overlapPos = e.computeOverlap()
	}
	return nil
}

// OnEvent advances the Editor's state machine in reaction to ev.
// Mutations (AddConnection, InsertOverlap, EraseCon) only ever happen
// here, never in OnFrame.
func (e *Editor) OnEvent(ev Event) error {
	switch ev.Kind {
	case RightClick:
		e.state = Idle
		e.conEndNet = nil
		return nil

	case ToggleDelete:
		if e.state == Idle {
			e.state = Deleting
		} else if e.state == Deleting {
			e.state = Idle
		}
		return nil

	case LeftClick:
		switch e.state {
		case Idle:
			if e.conStartObj.Kind == block.ObjConCross {
				return e.block.InsertOverlap(e.conStartObj.Con, e.conStartObj.ConB, e.conStartPos)
			}
			if !e.conStartLegal || !isConnectable(e.conStartObj.Kind) {
				return nil
			}
			e.state = Connecting
			e.conEndPos = e.conStartPos
			e.conEndObj = e.conStartObj
			e.conEndNet = e.conStartNet

		case Connecting:
			if !e.conEndLegal {
				return nil
			}
			if e.conEndPos == e.conStartPos {
				e.state = Idle
				e.conEndNet = nil
				return nil
			}
			_, err := e.block.AddConnection(e.conStartPos, e.conEndPos)
			e.state = Idle
			e.conEndNet = nil
			return err

		case Deleting:
			if !e.conStartLegal || e.conStartObj.Kind != block.ObjCon {
				return nil
			}
			err := e.block.EraseCon(e.conStartObj.Con)
			e.state = Idle
			return err
		}
	}
	return nil
}
