package lambda

// Enumerate yields every closed de Bruijn term whose structural depth
// (nesting of Lam/App constructors) falls in [start, end), in the same
// depth-then-split order as the reference enumerator: depth 0 yields
// every in-scope variable, depth d>0 yields every Lam wrapping a
// depth-(d-1) term under one more binder, followed by every App whose
// two sides split d-1 ways.
//
// The reference enumerator pairs the two split's sub-iterators with
// Rust's zip, which silently truncates to the shorter side and drops
// combinations whenever the two depths enumerate different counts of
// terms (which is the common case). Enumerate takes the full cross
// product instead, so every App(a, b) pair at a given split is visited.
func Enumerate(start, end int) []DBTerm {
	var out []DBTerm
	for depth := start; depth < end; depth++ {
		out = append(out, enumerateDepth(depth, 0)...)
	}
	return out
}

func enumerateDepth(depth, lambdaDepth int) []DBTerm {
	if depth == 0 {
		out := make([]DBTerm, 0, lambdaDepth)
		for i := 0; i < lambdaDepth; i++ {
			out = append(out, DBVar{Index: i})
		}
		return out
	}

	var out []DBTerm
	for _, body := range enumerateDepth(depth-1, lambdaDepth+1) {
		out = append(out, DBAbs{Body: body})
	}
	for d := 0; d < depth; d++ {
		funs := enumerateDepth(d, lambdaDepth)
		args := enumerateDepth(depth-1-d, lambdaDepth)
		for _, fun := range funs {
			for _, arg := range args {
				out = append(out, DBApp{Fun: fun, Arg: arg})
			}
		}
	}
	return out
}
