package lambda

import (
	"fmt"
	"strings"

	"github.com/vic/lamtype/pkg/types"
)

// PrintDB renders a de Bruijn term back into surface syntax, synthesizing
// binder names top-down (outermost first) the same way free type
// variables are named: a, b, …, z, aa, ab, ….
func PrintDB(t DBTerm) string {
	var sb strings.Builder
	printDB(&sb, t, nil)
	return sb.String()
}

func printDB(sb *strings.Builder, t DBTerm, scope []string) {
	switch t := t.(type) {
	case DBVar:
		i := len(scope) - 1 - t.Index
		if i < 0 || i >= len(scope) {
			fmt.Fprintf(sb, "<free:%d>", t.Index)
			return
		}
		sb.WriteString(scope[i])
	case DBAbs:
		name := binderName(len(scope))
		fmt.Fprintf(sb, "λ%s.", name)
		printDB(sb, t.Body, append(scope, name))
	case DBApp:
		sb.WriteByte('(')
		printDB(sb, t.Fun, scope)
		sb.WriteByte(' ')
		printDB(sb, t.Arg, scope)
		sb.WriteByte(')')
	}
}

func binderName(depth int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	var buf []byte
	i := depth
	for {
		buf = append([]byte{letters[i%26]}, buf...)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return string(buf)
}

// Annotate renders term as "{term : type}", diagnostically wrapping every
// sub-term with its synthesized type. nodes must be a builder's Nodes
// slice taken from building this exact term: Build records one entry
// per sub-term in strict post-order (children before parent), and
// Annotate walks the term in that same post-order, consuming nodes in
// lockstep. A map keyed by term value cannot do this instead, since two
// structurally identical sub-terms (say, two occurrences of the same
// bound variable) are equal keys but may carry different types.
func Annotate(store *types.Store, root DBTerm, nodes []TypedNode) string {
	var sb strings.Builder
	cursor := 0
	annotate(&sb, root, nil, nodes, &cursor, store)
	return sb.String()
}

func annotate(sb *strings.Builder, t DBTerm, scope []string, nodes []TypedNode, cursor *int, store *types.Store) {
	sb.WriteByte('{')
	switch t := t.(type) {
	case DBVar:
		i := len(scope) - 1 - t.Index
		if i >= 0 && i < len(scope) {
			sb.WriteString(scope[i])
		} else {
			fmt.Fprintf(sb, "<free:%d>", t.Index)
		}
	case DBAbs:
		name := binderName(len(scope))
		fmt.Fprintf(sb, "λ%s.", name)
		annotate(sb, t.Body, append(scope, name), nodes, cursor, store)
	case DBApp:
		sb.WriteByte('(')
		annotate(sb, t.Fun, scope, nodes, cursor, store)
		sb.WriteByte(' ')
		annotate(sb, t.Arg, scope, nodes, cursor, store)
		sb.WriteByte(')')
	}
	sb.WriteString(" : ")
	if *cursor < len(nodes) {
		sb.WriteString(store.Read(nodes[*cursor].Handle).String())
		*cursor++
	} else {
		sb.WriteString("?")
	}
	sb.WriteByte('}')
}
