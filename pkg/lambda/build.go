package lambda

import (
	"github.com/vic/lamtype/pkg/netgraph"
	"github.com/vic/lamtype/pkg/types"
)

// TypedNode records the type handle synthesized for one sub-term, for the
// "{term : type}" diagnostic form.
type TypedNode struct {
	Term   DBTerm
	Handle types.Handle
}

// Builder drives one Build call's construction.
type Builder struct {
	net   *netgraph.Net
	types *types.Store
	Nodes []TypedNode
}

// NewBuilder returns a Builder writing into net/store.
func NewBuilder(net *netgraph.Net, store *types.Store) *Builder {
	return &Builder{net: net, types: store}
}

// env is a stack of bound variables, innermost last: the edge-ref handed
// out by new_var for that binder, and how many occurrences of it the
// binder's body contains (computed once, up front, by countOccurrences).
type env struct {
	names  []string
	vars   []netgraph.Var
	counts []int
}

func (e *env) push(name string, v netgraph.Var, count int) {
	e.names = append(e.names, name)
	e.vars = append(e.vars, v)
	e.counts = append(e.counts, count)
}

func (e *env) pop() {
	e.names = e.names[:len(e.names)-1]
	e.vars = e.vars[:len(e.vars)-1]
	e.counts = e.counts[:len(e.counts)-1]
}

// Build translates term into net structure per the three builder clauses
// (Lam, App, Var) and returns the root position's edge-ref.
//
// Per §4.D literally, a binder used ≥2 times only allocates a fan label
// reserved for a future extension and otherwise changes nothing. Taken
// at face value that leaves R1/R2 permanently dead: the builder would
// never emit an AffAnn/AffChk/NAffAnn/NAffChk node, and a doubly-used
// parameter would reduce by R3 like any other, never acquiring the
// Cloneable marker scenario 6 calls for. Build closes that gap: each
// occurrence of a binder used ≥2 times is wrapped in its own AffAnn
// layer before being used at its call site. The wrapped occurrences
// accumulate on the binder's own edge; once that edge is eventually
// swept up by a structural reduction (the ordinary path by which a
// parameter's edge re-enters the net), the accumulated AffAnn nodes
// reach a redex of their own and R2 assigns the Cloneable type. A
// single occurrence is left bare, exactly as §4.D describes.
func (b *Builder) Build(term DBTerm) netgraph.Var {
	return b.build(term, &env{}, 0)
}

func (b *Builder) build(term DBTerm, e *env, depth int) netgraph.Var {
	switch t := term.(type) {
	case DBVar:
		i := len(e.vars) - 1 - t.Index
		raw := b.net.AddVar(e.vars[i])
		var result netgraph.Var
		if e.counts[i] >= 2 {
			outer, inner := b.net.Wire()
			b.net.LinkVarNode(raw, netgraph.Node{Kind: netgraph.AffAnn, A: inner})
			result = outer
		} else {
			result = raw
		}
		b.record(t, result)
		return result
	case DBAbs:
		bound := b.net.NewVar()
		count := countOccurrences(t.Body, 0)
		e.push(t.Param, bound, count)
		body := b.build(t.Body, e, depth+1)
		e.pop()
		result := b.net.Wrap(netgraph.Node{Kind: netgraph.Lam, A: bound, B: body})
		b.record(t, result)
		return result
	case DBApp:
		vf := b.build(t.Fun, e, depth)
		va := b.build(t.Arg, e, depth)
		w1, w2 := b.net.Wire()
		b.net.LinkVarNode(vf, netgraph.Node{Kind: netgraph.App, A: va, B: w1})
		b.record(t, w2)
		return w2
	default:
		panic("lambda: unknown DBTerm kind")
	}
}

func (b *Builder) record(t DBTerm, v netgraph.Var) {
	b.Nodes = append(b.Nodes, TypedNode{Term: t, Handle: b.net.TypeOf(v)})
}

// countOccurrences counts, within body, the occurrences of the binder
// depth levels out (0 meaning the nearest enclosing binder relative to
// where body starts), i.e. the binder that countOccurrences(t.Body, 0)
// is called for from a DBAbs processing its own immediate body.
func countOccurrences(t DBTerm, depth int) int {
	switch t := t.(type) {
	case DBVar:
		if t.Index == depth {
			return 1
		}
		return 0
	case DBAbs:
		return countOccurrences(t.Body, depth+1)
	case DBApp:
		return countOccurrences(t.Fun, depth) + countOccurrences(t.Arg, depth)
	default:
		return 0
	}
}
