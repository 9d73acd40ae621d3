// Package netgraph implements the interaction-net graph the type inference
// engine reduces: a generational arena of edges, each carrying a type
// handle, a node list, and an edge-ref list, plus the R1/R2/R3 redex
// dispatcher that drives reduction to a fixpoint.
//
// The arena shape (an owning struct with explicit constructors, a Stats
// snapshot, and a bounded-step reduce entry point) follows the teacher's
// deltanet.Network; the data it arranges — edges, edge-refs, and the
// Lam/App/annotation node set — is this engine's own, not deltanet's
// port/wire model, and the driver is single-threaded throughout: there is
// no worker pool and no scheduler goroutine here.
package netgraph

import (
	"fmt"
	"os"

	"github.com/vic/lamtype/pkg/types"
)

// AssertValidEnabled gates the arena-consistency walk every mutating
// operation runs after itself. Off by default, since the walk is O(edges)
// and most runs never need it; fuzz/property tests flip it on directly
// (it is a plain var, not a build tag, so no recompile is needed), the
// same way the teacher gated DELTA_DEBUG off an environment variable.
var AssertValidEnabled = os.Getenv("NETGRAPH_ASSERT_VALID") != ""

// EdgeID names a slot in the edge arena together with the generation it
// was allocated at, so a stale reference captured before a merge is
// detectably invalid rather than silently aliasing a reused slot.
type EdgeID struct {
	index uint32
	gen   uint32
}

// NodeKind enumerates the six node shapes an edge's node list may hold.
type NodeKind int

const (
	Lam NodeKind = iota
	App
	AffAnn
	AffChk
	NAffAnn
	NAffChk
)

func (k NodeKind) String() string {
	switch k {
	case Lam:
		return "Lam"
	case App:
		return "App"
	case AffAnn:
		return "AffAnn"
	case AffChk:
		return "AffChk"
	case NAffAnn:
		return "NAffAnn"
	case NAffChk:
		return "NAffChk"
	default:
		return "?"
	}
}

// isAnnotation reports whether k is one of the four single-endpoint
// annotation kinds (as opposed to the two-endpoint Lam/App).
func (k NodeKind) isAnnotation() bool {
	return k == AffAnn || k == AffChk || k == NAffAnn || k == NAffChk
}

// Var is an edge-ref: a cursor at a specific index into some edge's ref
// list. It is the sole representation of a variable handed to a builder.
// Var is a pointer so that Link's renumbering of surviving refs is visible
// to every holder of that ref, exactly as required by the invariant that
// an edge-ref always knows its own (edge, index).
type Var = *EdgeRef

// EdgeRef is the mutable backing of a Var.
type EdgeRef struct {
	edge  EdgeID
	index int
}

// Node is a value stored in an edge's node list. Lam and App use both A
// and B; the four annotation kinds use only A.
type Node struct {
	Kind NodeKind
	A, B Var
}

type edgeData struct {
	gen   uint32
	alive bool
	typ   types.Handle
	nodes []Node
	refs  []Var
}

// Net owns the edge arena, the type store every edge's type handle lives
// in, and the LIFO redex stack.
type Net struct {
	types     *types.Store
	edges     []edgeData
	free      []uint32
	redexes   []EdgeID // LIFO stack, per the cache-friendliness note
	liveCount int
	stats     Stats
	trace     *tracer
}

// New returns an empty net graph backed by a fresh type store.
func New() *Net {
	return &Net{types: types.NewStore()}
}

// Types exposes the underlying type store, e.g. for AssignFreeVars/Read
// once reduction has reached a fixpoint.
func (n *Net) Types() *types.Store { return n.types }

// Valid reports whether id still names a live edge: its slot exists, has
// not been recycled to a later generation, and is currently alive.
func (n *Net) Valid(id EdgeID) bool {
	return int(id.index) < len(n.edges) && n.edges[id.index].gen == id.gen && n.edges[id.index].alive
}

func (n *Net) edge(id EdgeID) *edgeData {
	if !n.Valid(id) {
		panic(fmt.Sprintf("netgraph: stale or dead EdgeID %+v", id))
	}
	return &n.edges[id.index]
}

func (n *Net) allocEdge(h types.Handle) EdgeID {
	if len(n.free) > 0 {
		idx := n.free[len(n.free)-1]
		n.free = n.free[:len(n.free)-1]
		n.edges[idx].gen++
		n.edges[idx].alive = true
		n.edges[idx].typ = h
		n.edges[idx].nodes = nil
		n.edges[idx].refs = nil
		return EdgeID{index: idx, gen: n.edges[idx].gen}
	}
	n.edges = append(n.edges, edgeData{gen: 0, alive: true, typ: h})
	idx := uint32(len(n.edges) - 1)
	return EdgeID{index: idx, gen: 0}
}

// freeEdge recycles id's slot. It does not touch the edge's type handle;
// callers that replace an edge's type (via Union or Set) do so themselves.
func (n *Net) freeEdge(id EdgeID) {
	n.edges[id.index].alive = false
	n.edges[id.index].nodes = nil
	n.edges[id.index].refs = nil
	n.free = append(n.free, id.index)
}

// TypeOf returns the type handle carried by the edge v currently lives on.
func (n *Net) TypeOf(v Var) types.Handle {
	return n.edge(v.edge).typ
}

// NewVar creates an edge with a fresh type and a single edge-ref, and
// returns that ref. This is the representation of a freshly bound
// variable before any occurrence has been recorded.
func (n *Net) NewVar() Var {
	h := n.types.New()
	id := n.allocEdge(h)
	ref := &EdgeRef{edge: id, index: 0}
	n.edge(id).refs = append(n.edge(id).refs, ref)
	n.liveCount++
	n.checkInvariants()
	return ref
}

// AddVar adds a new edge-ref to the same edge as v, returning it. It is
// how a builder records one more occurrence of a bound variable.
func (n *Net) AddVar(v Var) Var {
	e := n.edge(v.edge)
	ref := &EdgeRef{edge: v.edge, index: len(e.refs)}
	e.refs = append(e.refs, ref)
	n.checkInvariants()
	return ref
}

// Wire creates an edge with a fresh type and two edge-refs, returning
// both. It is used to carry an as yet undetermined value between two
// positions (an application's argument/result plumbing, for example).
func (n *Net) Wire() (Var, Var) {
	h := n.types.New()
	id := n.allocEdge(h)
	r0 := &EdgeRef{edge: id, index: 0}
	r1 := &EdgeRef{edge: id, index: 1}
	e := n.edge(id)
	e.refs = append(e.refs, r0, r1)
	n.liveCount++
	n.checkInvariants()
	return r0, r1
}

// Wrap creates an edge whose node list is [node] and whose ref list is one
// new edge-ref, returning that ref. node's own endpoints are left
// untouched — they continue to live on whatever edges they already
// belonged to.
func (n *Net) Wrap(node Node) Var {
	h := n.types.New()
	id := n.allocEdge(h)
	ref := &EdgeRef{edge: id, index: 0}
	e := n.edge(id)
	e.nodes = append(e.nodes, node)
	e.refs = append(e.refs, ref)
	n.liveCount++
	n.checkInvariants()
	return ref
}

// LinkVarNode removes v from its edge and appends node to that edge's node
// list. If the edge's ref list becomes empty, it is moved from the live
// set to the redex queue — this is how beta-redexes are discovered purely
// from building, with no separate "collision" detection pass.
func (n *Net) LinkVarNode(v Var, node Node) {
	e := n.edge(v.edge)
	n.removeRef(e, v.index)
	e.nodes = append(e.nodes, node)
	if len(e.refs) == 0 {
		n.liveCount--
		n.pushRedex(v.edge)
	}
	n.checkInvariants()
}

// removeRef deletes e.refs[idx] and renumbers every ref after it, so every
// surviving Var's .index continues to name its true position.
func (n *Net) removeRef(e *edgeData, idx int) {
	e.refs = append(e.refs[:idx], e.refs[idx+1:]...)
	for i := idx; i < len(e.refs); i++ {
		e.refs[i].index = i
	}
}

func (n *Net) pushRedex(id EdgeID) {
	n.redexes = append(n.redexes, id)
}

// Link merges every edge reached through any ref in vars into one new
// edge whose type is a fresh handle, prepending nodes to the merged node
// list. Every var in vars is consumed (invalid afterward); every other
// ref that belonged to a merged source edge is carried over into the
// result, with its .edge/.index updated in place. The merged source
// edges are freed and their type handles pointed (via Union) at the
// fresh one.
//
// If the result ends up with zero refs and zero nodes it is vacuous and
// is discarded outright (neither tracked live nor queued). If it ends up
// with zero refs and at least one node, it is a redex. Otherwise it is an
// ordinary live edge.
func (n *Net) Link(nodes []Node, vars []Var) types.Handle {
	newH := n.types.New()

	var mergedNodes []Node
	mergedNodes = append(mergedNodes, nodes...)
	var mergedRefs []Var

	consumed := make(map[Var]bool, len(vars))
	for _, v := range vars {
		consumed[v] = true
	}

	seen := make(map[EdgeID]bool, len(vars))
	for _, v := range vars {
		if seen[v.edge] {
			continue
		}
		seen[v.edge] = true
		src := n.edge(v.edge)
		mergedNodes = append(mergedNodes, src.nodes...)
		for _, r := range src.refs {
			if consumed[r] {
				continue
			}
			mergedRefs = append(mergedRefs, r)
		}
		n.types.Union(src.typ, newH)
		n.freeIfLive(v.edge)
	}

	if len(mergedRefs) == 0 && len(mergedNodes) == 0 {
		n.checkInvariants()
		return newH // vacuous: nothing to track
	}

	id := n.allocEdgeNoCount(newH)
	e := n.edge(id)
	e.nodes = mergedNodes
	e.refs = mergedRefs
	for i, r := range mergedRefs {
		r.edge = id
		r.index = i
	}

	if len(mergedRefs) == 0 {
		n.pushRedex(id)
	} else {
		n.liveCount++
	}
	n.checkInvariants()
	return newH
}

// allocEdgeNoCount is allocEdge, which leaves liveCount alone; Link adjusts
// the count itself once it knows whether the result is live or a redex.
func (n *Net) allocEdgeNoCount(h types.Handle) EdgeID {
	return n.allocEdge(h)
}

// freeIfLive frees id. Every edge Link reaches through a var is, by
// construction, a live edge (a redex always has zero refs, so nothing
// with a ref pointing at it can be sitting in the redex queue).
func (n *Net) freeIfLive(id EdgeID) {
	n.liveCount--
	n.freeEdge(id)
}

// LiveEdgeCount returns the number of edges currently tracked as live
// equations (not redexes, not freed, not vacuous). A successful inference
// run drains this to zero.
func (n *Net) LiveEdgeCount() int { return n.liveCount }

// Close forces the root position: it is exactly Link(nil, []Var{root}),
// the operation that seeds reduction for a value that nothing else in
// the net ever applies to. Closing is idempotent only once per root ref —
// the ref is consumed by the call, per Link's contract.
func (n *Net) Close(root Var) types.Handle {
	return n.Link(nil, []Var{root})
}

// HasRedex reports whether the redex queue has work remaining.
func (n *Net) HasRedex() bool { return len(n.redexes) > 0 }

func (n *Net) popRedex() EdgeID {
	last := len(n.redexes) - 1
	id := n.redexes[last]
	n.redexes = n.redexes[:last]
	return id
}

// checkInvariants runs AssertValid when AssertValidEnabled is set. Every
// mutating operation below calls it as its last step.
func (n *Net) checkInvariants() {
	if AssertValidEnabled {
		n.AssertValid()
	}
}

// AssertValid walks the entire edge arena and panics on the first violation
// of N1 (every live edge's refs each know their own (edge, index)), N2 (a
// live edge with zero refs is always queued as a redex, never left
// dangling), or N3 (every node endpoint names a currently-valid edge). It
// is exported so property tests can call it directly regardless of
// AssertValidEnabled, e.g. after a sequence of operations performed with
// the flag left off.
func (n *Net) AssertValid() {
	redexed := make(map[EdgeID]bool, len(n.redexes))
	for _, id := range n.redexes {
		redexed[id] = true
	}
	for idx := range n.edges {
		e := &n.edges[idx]
		if !e.alive {
			continue
		}
		id := EdgeID{index: uint32(idx), gen: e.gen}
		for i, r := range e.refs {
			if r.edge != id || r.index != i {
				panic(fmt.Sprintf("netgraph: N1 violation: edge %+v ref[%d] is %+v", id, i, r))
			}
		}
		if len(e.refs) == 0 && !redexed[id] {
			panic(fmt.Sprintf("netgraph: N2 violation: edge %+v is live with no refs and not queued as a redex", id))
		}
		for _, nd := range e.nodes {
			for _, v := range [2]Var{nd.A, nd.B} {
				if v != nil && !n.Valid(v.edge) {
					panic(fmt.Sprintf("netgraph: N3 violation: edge %+v node %s endpoint names invalid edge %+v", id, nd.Kind, v.edge))
				}
			}
		}
	}
}
