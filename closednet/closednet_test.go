package closednet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wirelath/entity"
	"github.com/katalvlaran/wirelath/geom"
	"github.com/katalvlaran/wirelath/stablestore"
)

func samplePorts(t *testing.T) (a, b, c entity.PortRef) {
	t.Helper()
	nodes := stablestore.NewPeppered[entity.Node]()
	h1 := nodes.Insert(entity.NewNode(geom.Vec{X: 0, Y: 0}))
	h2 := nodes.Insert(entity.NewNode(geom.Vec{X: 1, Y: 0}))
	h3 := nodes.Insert(entity.NewNode(geom.Vec{X: 2, Y: 0}))

	a = entity.PortRef{Owner: entity.NodeRef(h1), PortNum: int(geom.Right)}
	b = entity.PortRef{Owner: entity.NodeRef(h2), PortNum: int(geom.Left)}
	c = entity.PortRef{Owner: entity.NodeRef(h3), PortNum: int(geom.Left)}
	return a, b, c
}

func TestClosedNet_InsertAndContains(t *testing.T) {
	a, b, _ := samplePorts(t)
	con := entity.Connection{P1: a, P2: b}

	n := New()
	require.NoError(t, n.Insert(con, entity.NodeInternal, entity.NodeInternal))

	assert.Equal(t, 1, n.Size())
	assert.True(t, n.Contains(con))
	assert.True(t, n.Contains(con.Swapped()))
	assert.True(t, n.ContainsPort(a))
	assert.True(t, n.ContainsPort(b))
}

func TestClosedNet_InsertDuplicateFails(t *testing.T) {
	a, b, _ := samplePorts(t)
	con := entity.Connection{P1: a, P2: b}

	n := New()
	require.NoError(t, n.Insert(con, entity.NodeInternal, entity.NodeInternal))

	err := n.Insert(con, entity.NodeInternal, entity.NodeInternal)
	assert.ErrorIs(t, err, ErrAlreadyPresent)

	err = n.Insert(con.Swapped(), entity.NodeInternal, entity.NodeInternal)
	assert.ErrorIs(t, err, ErrAlreadyPresent)
}

func TestClosedNet_InputConflict(t *testing.T) {
	a, b, c := samplePorts(t)

	n := New()
	require.NoError(t, n.Insert(entity.Connection{P1: a, P2: b}, entity.Input, entity.NodeInternal))

	err := n.Insert(entity.Connection{P1: b, P2: c}, entity.NodeInternal, entity.Input)
	assert.ErrorIs(t, err, ErrInputConflict)
}

func TestClosedNet_GetCon(t *testing.T) {
	a, b, _ := samplePorts(t)
	con := entity.Connection{P1: a, P2: b}

	n := New()
	require.NoError(t, n.Insert(con, entity.NodeInternal, entity.NodeInternal))

	got, err := n.GetCon(a)
	require.NoError(t, err)
	assert.True(t, got.Equal(con))

	got, err = n.GetCon(b)
	require.NoError(t, err)
	assert.True(t, got.Equal(con))

	_, err = n.GetCon(entity.PortRef{Owner: a.Owner, PortNum: int(geom.Up)})
	assert.ErrorIs(t, err, ErrNotInNet)
}

func TestClosedNet_Erase(t *testing.T) {
	a, b, _ := samplePorts(t)
	con := entity.Connection{P1: a, P2: b}

	n := New()
	require.NoError(t, n.Insert(con, entity.Input, entity.Output))
	require.NoError(t, n.Erase(con))

	assert.Equal(t, 0, n.Size())
	assert.False(t, n.ContainsPort(a))
	assert.False(t, n.ContainsPort(b))
	_, hasInput := n.HasInput()
	assert.False(t, hasInput)
	assert.Empty(t, n.Outputs())

	assert.ErrorIs(t, n.Erase(con), ErrConnectionAbsent)
}

func TestClosedNet_IsConnectedThroughNodeJunction(t *testing.T) {
	nodes := stablestore.NewPeppered[entity.Node]()
	h1 := nodes.Insert(entity.NewNode(geom.Vec{X: 0, Y: 0}))
	h2 := nodes.Insert(entity.NewNode(geom.Vec{X: 1, Y: 0}))
	h3 := nodes.Insert(entity.NewNode(geom.Vec{X: 1, Y: 1}))

	left := entity.PortRef{Owner: entity.NodeRef(h1), PortNum: int(geom.Right)}
	nodeLeft := entity.PortRef{Owner: entity.NodeRef(h2), PortNum: int(geom.Left)}
	nodeDown := entity.PortRef{Owner: entity.NodeRef(h2), PortNum: int(geom.Down)}
	below := entity.PortRef{Owner: entity.NodeRef(h3), PortNum: int(geom.Up)}

	n := New()
	require.NoError(t, n.Insert(entity.Connection{P1: left, P2: nodeLeft}, entity.NodeInternal, entity.NodeInternal))
	require.NoError(t, n.Insert(entity.Connection{P1: nodeDown, P2: below}, entity.NodeInternal, entity.NodeInternal))

	// left and below are not directly wired, but h2 routes between its
	// own port slots, so they are connected through the node.
	assert.True(t, n.IsConnected(left, below))
	assert.True(t, n.IsConnected(left, left))
}

func TestClosedNet_SplitNet(t *testing.T) {
	a, b, c := samplePorts(t)
	conAB := entity.Connection{P1: a, P2: b}
	// c connects to a fourth, unrelated port so it forms its own edge
	// disjoint from conAB.
	d := entity.PortRef{Owner: c.Owner, PortNum: int(geom.Right)}
	conCD := entity.Connection{P1: c, P2: d}

	n := New()
	require.NoError(t, n.Insert(conAB, entity.Input, entity.NodeInternal))
	require.NoError(t, n.Insert(conCD, entity.NodeInternal, entity.Output))

	other := n.SplitNet(c)

	assert.Equal(t, 1, n.Size())
	assert.True(t, n.Contains(conAB))
	assert.False(t, n.Contains(conCD))

	assert.Equal(t, 1, other.Size())
	assert.True(t, other.Contains(conCD))
	_, out := other.HasInput()
	assert.False(t, out)
	assert.Len(t, other.Outputs(), 1)
}

func TestClosedNet_MergeFrom(t *testing.T) {
	a, b, c := samplePorts(t)
	d := entity.PortRef{Owner: c.Owner, PortNum: int(geom.Right)}

	n1 := New()
	require.NoError(t, n1.Insert(entity.Connection{P1: a, P2: b}, entity.Input, entity.NodeInternal))

	n2 := New()
	require.NoError(t, n2.Insert(entity.Connection{P1: c, P2: d}, entity.NodeInternal, entity.Output))

	require.NoError(t, n1.MergeFrom(n2))

	assert.Equal(t, 2, n1.Size())
	assert.True(t, n1.ContainsPort(a))
	assert.True(t, n1.ContainsPort(c))
	_, hasInput := n1.HasInput()
	assert.True(t, hasInput)
	assert.Len(t, n1.Outputs(), 1)

	assert.Equal(t, 0, n2.Size())
}

func TestClosedNet_MergeFromInputConflict(t *testing.T) {
	a, b, c := samplePorts(t)
	d := entity.PortRef{Owner: c.Owner, PortNum: int(geom.Right)}

	n1 := New()
	require.NoError(t, n1.Insert(entity.Connection{P1: a, P2: b}, entity.Input, entity.NodeInternal))

	n2 := New()
	require.NoError(t, n2.Insert(entity.Connection{P1: c, P2: d}, entity.Input, entity.NodeInternal))

	err := n1.MergeFrom(n2)
	assert.ErrorIs(t, err, ErrInputConflict)
	// unchanged on conflict
	assert.Equal(t, 1, n1.Size())
	assert.Equal(t, 1, n2.Size())
}

func TestClosedNet_ContainsNode(t *testing.T) {
	a, b, _ := samplePorts(t)
	n := New()
	require.NoError(t, n.Insert(entity.Connection{P1: a, P2: b}, entity.NodeInternal, entity.NodeInternal))

	assert.True(t, n.ContainsNode(a.Owner))
	assert.False(t, n.ContainsNode(entity.PortObjRef{Kind: entity.KindGate}))
}
