package netgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVarHasOneRef(t *testing.T) {
	n := New()
	v := n.NewVar()
	require.Equal(t, 1, n.LiveEdgeCount())
	require.False(t, n.HasRedex())
	_ = v
}

func TestWireTwoRefsSameEdge(t *testing.T) {
	n := New()
	a, b := n.Wire()
	require.Equal(t, a.edge, b.edge)
	require.NotEqual(t, a.index, b.index)
}

func TestAddVarSharesEdge(t *testing.T) {
	n := New()
	v := n.NewVar()
	v2 := n.AddVar(v)
	require.Equal(t, v.edge, v2.edge)
	require.Equal(t, n.TypeOf(v), n.TypeOf(v2))
}

func TestWrapCreatesRedexOnlyWhenRefless(t *testing.T) {
	n := New()
	a, b := n.Wire()
	r := n.Wrap(Node{Kind: Lam, A: a, B: b})
	require.False(t, n.HasRedex(), "wrap's own new edge always carries exactly one fresh ref")
	_ = r
}

func TestLinkVarNodeEmptiesToRedex(t *testing.T) {
	n := New()
	v := n.NewVar()
	dummy := n.NewVar()
	n.LinkVarNode(v, Node{Kind: Lam, A: dummy, B: dummy})
	require.True(t, n.HasRedex())
}

func TestCloseVacuousDiscardsSilently(t *testing.T) {
	n := New()
	v := n.NewVar()
	n.Close(v)
	require.Equal(t, 0, n.LiveEdgeCount())
	require.False(t, n.HasRedex())
}

func TestLinkOfSoleRefsRemovesBothLiveEdges(t *testing.T) {
	n := New()
	v1 := n.NewVar()
	v2 := n.NewVar()
	before := n.LiveEdgeCount()
	n.Link(nil, []Var{v1, v2})
	require.Equal(t, before-2, n.LiveEdgeCount())
}
