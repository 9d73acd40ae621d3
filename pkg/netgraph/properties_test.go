package netgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildIdentityApplication wires (lam x. x) applied to a fresh free
// variable directly against the net API, the same shape pkg/lambda's
// Builder produces for a one-occurrence binder: the bound edge gains a
// second ref via AddVar rather than an AffAnn wrapper, exactly as spec.md
// §4.D and pkg/lambda/build.go do for occurrence counts below two.
func buildIdentityApplication(n *Net) Var {
	bound := n.NewVar()
	body := n.AddVar(bound)
	lam := n.Wrap(Node{Kind: Lam, A: bound, B: body})
	arg := n.NewVar()
	w1, w2 := n.Wire()
	n.LinkVarNode(lam, Node{Kind: App, A: arg, B: w1})
	return w2
}

// TestP1IdempotentReduction covers spec.md P1: reducing a net that has
// already reached a fixpoint performs no further steps and changes
// nothing observable.
func TestP1IdempotentReduction(t *testing.T) {
	n := New()
	root := buildIdentityApplication(n)
	n.Close(root)

	first := n.ReduceAll()
	require.Equal(t, 1, first)
	require.False(t, n.HasRedex())
	liveBefore := n.LiveEdgeCount()

	second := n.ReduceAll()
	require.Equal(t, 0, second)
	require.False(t, n.HasRedex())
	require.Equal(t, liveBefore, n.LiveEdgeCount())
}

// TestP3InvariantsHoldThroughoutBuildAndReduce covers spec.md P3: N1-N3
// hold after every mutating operation, not just at the end. Each step
// below calls AssertValid directly, independent of AssertValidEnabled, so
// the test exercises the walk itself rather than the opt-in wiring.
func TestP3InvariantsHoldThroughoutBuildAndReduce(t *testing.T) {
	n := New()
	valid := func() { require.NotPanics(t, n.AssertValid) }

	bound := n.NewVar()
	valid()
	body := n.AddVar(bound)
	valid()
	lam := n.Wrap(Node{Kind: Lam, A: bound, B: body})
	valid()
	arg := n.NewVar()
	valid()
	w1, w2 := n.Wire()
	valid()
	n.LinkVarNode(lam, Node{Kind: App, A: arg, B: w1})
	valid()
	n.Close(w2)
	valid()

	for n.HasRedex() {
		n.ReduceLimit(1)
		valid()
	}
}

// TestAssertValidEnabledRunsDuringOrdinaryOperations exercises the
// runtime-toggleable path: flipping AssertValidEnabled makes every
// mutating call self-check, with no recompile, matching how the teacher
// gated DELTA_DEBUG off an environment variable read at package init.
func TestAssertValidEnabledRunsDuringOrdinaryOperations(t *testing.T) {
	old := AssertValidEnabled
	AssertValidEnabled = true
	defer func() { AssertValidEnabled = old }()

	n := New()
	root := buildIdentityApplication(n)
	n.Close(root)
	require.NotPanics(t, func() { n.ReduceAll() })
}

// TestConfluenceSpotCheckRepeatedRunsAgree stands in for the LIFO/FIFO
// confluence question from spec.md §9: the engine implements only a LIFO
// queue (no pluggable FIFO alternative exists to compare against — see
// DESIGN.md), so this instead checks that building and reducing the same
// net twice, independently, reaches the same closed type both times.
func TestConfluenceSpotCheckRepeatedRunsAgree(t *testing.T) {
	run := func() string {
		n := New()
		root := buildIdentityApplication(n)
		h := n.Close(root)
		n.ReduceAll()
		n.Types().AssignFreeVars()
		return n.Types().Read(h).String()
	}

	require.Equal(t, run(), run())
}
