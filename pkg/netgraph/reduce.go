package netgraph

import "github.com/vic/lamtype/pkg/types"

// classification of a redex bag by the node kinds it carries.
type classification struct {
	hasAnnPos bool // any AffAnn or NAffAnn
	hasAnnNeg bool // any AffChk or NAffChk
	hasAff    bool // any AffAnn or AffChk
	hasNaff   bool // any NAffAnn or NAffChk
}

func classify(nodes []Node) classification {
	var c classification
	for _, n := range nodes {
		switch n.Kind {
		case AffAnn:
			c.hasAnnPos, c.hasAff = true, true
		case NAffAnn:
			c.hasAnnPos, c.hasNaff = true, true
		case AffChk:
			c.hasAnnNeg, c.hasAff = true, true
		case NAffChk:
			c.hasAnnNeg, c.hasNaff = true, true
		}
	}
	return c
}

// stepRedex pops one redex and dispatches it to R1, R2, or R3, exactly
// per the classification-then-exhaustive-match given by the reducer
// component: has_aff && has_naff is unsafe (R1); has_aff xor has_naff is
// a uniform annotation to propagate (R2); otherwise the bag is pure
// Lam/App structure (R3).
func (n *Net) stepRedex() {
	id := n.popRedex()
	e := &n.edges[id.index]
	nodes := e.nodes
	h := e.typ
	c := classify(nodes)
	// Free the popped edge before dispatch: the Link calls below check
	// invariants, and a live, ref-less edge that is no longer queued would
	// read as an N2 violation.
	n.freeEdge(id)

	switch {
	case c.hasAff && c.hasNaff:
		n.record(R1Unsafe, nodes)
		n.reduceUnsafe(h, nodes)
	case c.hasAff || c.hasNaff:
		n.record(R2Decoration, nodes)
		n.reduceDecoration(h, nodes, c)
	default:
		n.record(R3Structural, nodes)
		n.reduceStructural(h, nodes)
	}

	n.checkInvariants()
}

// reduceUnsafe implements R1: drop every annotation node, link the
// remaining structural nodes together with the formerly-annotated
// endpoints through a fresh h', and set H := Unsafe(h').
func (n *Net) reduceUnsafe(h types.Handle, nodes []Node) {
	var keep []Node
	var endpoints []Var
	for _, nd := range nodes {
		if nd.Kind.isAnnotation() {
			endpoints = append(endpoints, nd.A)
			continue
		}
		keep = append(keep, nd)
	}
	hPrime := n.Link(keep, endpoints)
	n.types.SetUnsafe(h, hPrime)
}

// reduceDecoration implements R2: propagate a uniform affine/non-affine
// annotation one layer deeper into every Lam/App in the bag, per the
// polarity table, then link the transformed structural nodes together
// with the dropped annotations' endpoints through a fresh h'.
func (n *Net) reduceDecoration(h types.Handle, nodes []Node, c classification) {
	affine := c.hasAff
	ann := c.hasAnnPos
	chk := c.hasAnnNeg

	var keep []Node
	var endpoints []Var
	for _, nd := range nodes {
		switch nd.Kind {
		case Lam:
			a, b := nd.A, nd.B
			if chk {
				a = n.pushAnnotation(lamParamKind(affine), a)
				b = n.pushAnnotation(lamBodyKind(affine), b)
			}
			keep = append(keep, Node{Kind: Lam, A: a, B: b})
		case App:
			a, b := nd.A, nd.B
			if ann {
				a = n.pushAnnotation(appArgKind(affine), a)
				b = n.pushAnnotation(appResultKind(affine), b)
			}
			keep = append(keep, Node{Kind: App, A: a, B: b})
		default: // annotation node being consumed at this layer
			endpoints = append(endpoints, nd.A)
		}
	}

	hPrime := n.Link(keep, endpoints)
	if affine {
		n.types.SetCloneable(h, hPrime)
	} else {
		n.types.SetUncloneable(h, hPrime)
	}
}

// pushAnnotation wires a fresh annotation of the given kind onto old,
// returning the new outer endpoint that replaces old in the transformed
// Lam/App node. The annotation node itself rides along on the wire's
// inner edge until that edge is next merged, which is how decoration
// propagates from one redex to the next.
func (n *Net) pushAnnotation(kind NodeKind, old Var) Var {
	outer, inner := n.Wire()
	n.LinkVarNode(inner, Node{Kind: kind, A: old})
	return outer
}

func lamParamKind(affine bool) NodeKind {
	if affine {
		return NAffAnn
	}
	return AffAnn
}

func lamBodyKind(affine bool) NodeKind {
	if affine {
		return AffChk
	}
	return NAffChk
}

func appArgKind(affine bool) NodeKind {
	if affine {
		return AffAnn
	}
	return NAffAnn
}

func appResultKind(affine bool) NodeKind {
	if affine {
		return NAffChk
	}
	return AffChk
}

// reduceStructural implements R3: split the bag by endpoint position and
// link each side through its own fresh handle, then set H := Arrow of
// the two.
func (n *Net) reduceStructural(h types.Handle, nodes []Node) {
	left := make([]Var, len(nodes))
	right := make([]Var, len(nodes))
	for i, nd := range nodes {
		left[i] = nd.A
		right[i] = nd.B
	}
	hA := n.Link(nil, left)
	hB := n.Link(nil, right)
	n.types.SetArrow(h, hA, hB)
}

// ReduceLimit drains up to steps redexes (0 meaning unbounded) and
// reports how many were actually performed and whether the queue is now
// empty.
func (n *Net) ReduceLimit(steps int) (performed int, done bool) {
	for steps <= 0 || performed < steps {
		if !n.HasRedex() {
			return performed, true
		}
		n.stepRedex()
		performed++
	}
	return performed, !n.HasRedex()
}

// ReduceAll drains the redex queue completely.
func (n *Net) ReduceAll() int {
	performed, _ := n.ReduceLimit(0)
	return performed
}
