package lambda

import (
	"github.com/vic/lamtype/internal/xlog"
	"github.com/vic/lamtype/pkg/netgraph"
	"github.com/vic/lamtype/pkg/types"
)

// Result is the outcome of inferring one closed term.
type Result struct {
	Term      DBTerm
	Typable   bool
	Bounded   bool       // true if MaxSteps cut reduction off before a fixpoint
	Type      types.Type // valid only if Typable
	Steps     int
	Stats     netgraph.Stats
	Diagnosed []TypedNode           // populated only when Options.Trace is set
	Trace     []netgraph.TraceEvent // populated only when Options.Trace is set
	Types     *types.Store          // the store Diagnosed's handles resolve against; only valid once Typable
}

// Options configures one Infer call.
type Options struct {
	Trace    bool // enable the reducer's trace log and builder diagnostics
	MaxSteps int  // bound reduction to this many redexes; 0 means unbounded
}

// Infer builds term into a fresh net, drains reduction, and reads back
// its root type. It is the driver-level glue described by §4.E and §5:
// build, Close the root, ReduceAll, then check LiveEdgeCount.
func Infer(term DBTerm) Result {
	return InferWithOptions(term, Options{})
}

// InferTraced is Infer with the net's trace log enabled and the
// builder's per-subterm type diagnostics attached to the result.
func InferTraced(term DBTerm) Result {
	return InferWithOptions(term, Options{Trace: true})
}

// InferWithOptions is Infer with explicit tracing and step-bound control.
func InferWithOptions(term DBTerm, opts Options) Result {
	net := netgraph.New()
	if opts.Trace {
		net.EnableTrace()
	}
	store := net.Types()
	b := NewBuilder(net, store)
	root := b.Build(term)

	xlog.Debugf("built net for %s", PrintDB(term))
	rootHandle := net.Close(root)
	steps, done := net.ReduceLimit(opts.MaxSteps)
	xlog.Debugf("reduced in %d steps (done=%t), stats=%+v", steps, done, net.Stats())

	res := Result{Term: term, Steps: steps, Bounded: !done, Stats: net.Stats()}
	if opts.Trace {
		res.Diagnosed = b.Nodes
		res.Trace = net.TraceSnapshot()
	}

	if !done || net.LiveEdgeCount() != 0 {
		xlog.Debugf("%d live edges remain, not STLC-typable", net.LiveEdgeCount())
		res.Typable = false
		return res
	}

	store.AssignFreeVars()
	res.Typable = true
	res.Type = store.Read(rootHandle)
	res.Types = store
	return res
}
