package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/geom"
)

func v(x, y int) geom.Vec { return geom.Vec{X: x, Y: y} }

// S1: Empty->node.
func TestScenario_EmptyToNode(t *testing.T) {
	b := New("s1", 50)

	ref, err := b.MakePortRef(v(21, 21), geom.Up)
	require.NoError(t, err)
	assert.Equal(t, entity.KindNode, ref.Owner.Kind)
	assert.Equal(t, 1, b.Nodes().Len())

	cls, err := b.WhatIsAt(v(21, 21))
	require.NoError(t, err)
	assert.Equal(t, ObjNode, cls.Kind)
}

// S2: two straight connections share a node.
func TestScenario_TwoConnectionsShareNode(t *testing.T) {
	b := New("s2", 50)

	c1, err := b.AddConnection(v(0, 0), v(0, 10))
	require.NoError(t, err)
	c2, err := b.AddConnection(v(0, 0), v(10, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, b.Nets().Len())
	assert.Equal(t, 3, b.Nodes().Len())

	cls, err := b.WhatIsAt(v(0, 0))
	require.NoError(t, err)
	require.Equal(t, ObjNode, cls.Kind)
	assert.Equal(t, 2, b.Nets().NodeConCount(cls.Node))

	netH, ok := b.Nets().NetOfPort(c1.P1)
	require.True(t, ok)
	n, err := b.Nets().Get(netH)
	require.NoError(t, err)

	assert.True(t, n.IsConnected(c1.P2, c2.P2))
}

// S3: redundant-node collapse.
func TestScenario_RedundantNodeCollapse(t *testing.T) {
	b := New("s3", 50)

	_, err := b.AddConnection(v(0, 0), v(0, 1))
	require.NoError(t, err)
	_, err = b.AddConnection(v(0, 2), v(0, 3))
	require.NoError(t, err)
	_, err = b.AddConnection(v(0, 1), v(0, 2))
	require.NoError(t, err)

	assert.Equal(t, 2, b.Nodes().Len())
	assert.Equal(t, 1, b.Nets().Len())

	cls, err := b.WhatIsAt(v(0, 0))
	require.NoError(t, err)
	require.Equal(t, ObjNode, cls.Kind)
	netH, ok := b.Nets().NetOfNode(cls.Node)
	require.True(t, ok)
	n, err := b.Nets().Get(netH)
	require.NoError(t, err)
	assert.Equal(t, 1, n.Size())
}

// S4: overlap merges nets.
func TestScenario_OverlapMergesNets(t *testing.T) {
	b := New("s4", 50)

	c1, err := b.AddConnection(v(0, 2), v(5, 2))
	require.NoError(t, err)
	c2, err := b.AddConnection(v(2, 0), v(2, 5))
	require.NoError(t, err)

	require.Equal(t, 2, b.Nets().Len())
	require.Equal(t, 4, b.Nodes().Len())

	err = b.InsertOverlap(c1, c2, v(2, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, b.Nets().Len())
	assert.Equal(t, 5, b.Nodes().Len())

	cls, err := b.WhatIsAt(v(2, 2))
	require.NoError(t, err)
	require.Equal(t, ObjNode, cls.Kind)
	assert.Equal(t, 4, b.Nets().NodeConCount(cls.Node))
}

// S5: erasing one side of a square, the (10,0)-(10,10) connection, leaves
// an open path that is still a single net.
func TestScenario_EraseKeepsNetConnected(t *testing.T) {
	b := New("s5", 50)

	_, err := b.AddConnection(v(0, 0), v(0, 10))
	require.NoError(t, err)
	bottom, err := b.AddConnection(v(0, 0), v(10, 0))
	require.NoError(t, err)
	_, err = b.AddConnection(v(0, 10), v(10, 10))
	require.NoError(t, err)
	side, err := b.AddConnection(v(10, 0), v(10, 10))
	require.NoError(t, err)

	require.Equal(t, 1, b.Nets().Len())

	require.NoError(t, b.EraseCon(side))

	assert.Equal(t, 1, b.Nets().Len())

	netH, ok := b.Nets().NetOfPort(bottom.P1)
	require.True(t, ok)
	n, err := b.Nets().Get(netH)
	require.NoError(t, err)
	assert.True(t, n.IsConnected(bottom.P1, bottom.P2))
}

// S6: erasing the vertical connection disconnects the net.
func TestScenario_EraseDisconnects(t *testing.T) {
	b := New("s6", 50)

	horiz, err := b.AddConnection(v(0, 0), v(5, 0))
	require.NoError(t, err)
	vert, err := b.AddConnection(v(5, 0), v(5, 5))
	require.NoError(t, err)

	require.NoError(t, b.EraseCon(vert))

	assert.Equal(t, 2, b.Nodes().Len())
	assert.Equal(t, 1, b.Nets().Len())

	netH, ok := b.Nets().NetOfPort(horiz.P1)
	require.True(t, ok)
	n, err := b.Nets().Get(netH)
	require.NoError(t, err)
	assert.True(t, n.Contains(horiz))
}

func TestWhatIsAt_ConCross(t *testing.T) {
	b := New("cross", 50)

	_, err := b.AddConnection(v(0, 2), v(5, 2))
	require.NoError(t, err)
	_, err = b.AddConnection(v(2, 0), v(2, 5))
	require.NoError(t, err)

	cls, err := b.WhatIsAt(v(2, 2))
	require.NoError(t, err)
	assert.Equal(t, ObjConCross, cls.Kind)
}

func TestAddConnection_ZeroLengthIsNoOp(t *testing.T) {
	b := New("noop", 10)

	con, err := b.AddConnection(v(3, 3), v(3, 3))
	require.NoError(t, err)
	assert.Equal(t, entity.Connection{}, con)
	assert.Equal(t, 0, b.Nodes().Len())
}

func TestMakePortRef_PortOccupiedFails(t *testing.T) {
	b := New("occ", 10)

	_, err := b.AddConnection(v(1, 1), v(1, 6))
	require.NoError(t, err)

	// make_port_ref reverses dirIntoPort uniformly across branches, so
	// the slot occupied by the (1,1)->(1,6) connection is reverse(Down)
	// == Up. Requesting the Node branch with dirIntoPort == Down maps to
	// that same occupied slot (reverse(Down) == Up) and must fail.
	_, err = b.MakePortRef(v(1, 1), geom.Down)
	assert.ErrorIs(t, err, ErrPortOccupied)

	// A free slot that isn't diametrically opposite the existing
	// connection succeeds as an ordinary new port (geom.Up would instead
	// hit the redundant-node collapse rule, since it's opposite Down).
	_, err = b.MakePortRef(v(1, 1), geom.Left)
	assert.NoError(t, err)
}
