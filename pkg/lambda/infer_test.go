package lambda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func inferSrc(t *testing.T, src string) Result {
	t.Helper()
	term, err := NewParser(src).Parse()
	require.NoError(t, err)
	db, err := ToDeBruijn(term)
	require.NoError(t, err)
	return Infer(db)
}

func TestScenario1Identity(t *testing.T) {
	res := inferSrc(t, "λa.a")
	require.True(t, res.Typable)
	require.Equal(t, "(A->A)", res.Type.String())
}

func TestScenario2ChurchTrue(t *testing.T) {
	res := inferSrc(t, "λa.λb.a")
	require.True(t, res.Typable)
	require.Equal(t, "(A->(B->A))", res.Type.String())
}

func TestScenario3ChurchFalse(t *testing.T) {
	res := inferSrc(t, "λa.λb.b")
	require.True(t, res.Typable)
	require.Equal(t, "(A->(B->B))", res.Type.String())
}

func TestScenario4Application(t *testing.T) {
	res := inferSrc(t, "λa.λb.(a b)")
	require.True(t, res.Typable)
	require.Equal(t, "((A->B)->(A->B))", res.Type.String())
}

func TestScenario5SelfApplicationNotTypable(t *testing.T) {
	res := inferSrc(t, "λa.(a a)")
	require.False(t, res.Typable)
}

func TestScenario6DoublyUsedParamIsCloneable(t *testing.T) {
	res := inferSrc(t, "λa.λb.(a (a b))")
	require.True(t, res.Typable)
	require.Equal(t, "(!(A->A)->(A->A))", res.Type.String())
}

func TestP4ArrowIntroductionForLam(t *testing.T) {
	res := inferSrc(t, "λa.a")
	require.True(t, res.Typable)
	require.Contains(t, res.Type.String(), "->")
}

func TestP2DeterminismAcrossRuns(t *testing.T) {
	term, err := NewParser("λa.λb.(a b)").Parse()
	require.NoError(t, err)
	db, err := ToDeBruijn(term)
	require.NoError(t, err)

	r1 := Infer(db)
	r2 := Infer(db)
	require.Equal(t, r1.Type.String(), r2.Type.String())
}

func TestP8EnumerationDepth5Classifies(t *testing.T) {
	for _, term := range Enumerate(0, 5) {
		res := Infer(term)
		_ = res.Typable // every term must classify without panicking
	}
}

func TestInferWithOptionsStepLimitReportsBounded(t *testing.T) {
	term, err := NewParser("λa.λb.(a b)").Parse()
	require.NoError(t, err)
	db, err := ToDeBruijn(term)
	require.NoError(t, err)

	res := InferWithOptions(db, Options{MaxSteps: 1})
	require.True(t, res.Bounded)
	require.False(t, res.Typable)
}

func TestAnnotatePrintsTypePerSubterm(t *testing.T) {
	term, err := NewParser("λa.a").Parse()
	require.NoError(t, err)
	db, err := ToDeBruijn(term)
	require.NoError(t, err)

	res := InferTraced(db)
	require.True(t, res.Typable)
	out := Annotate(res.Types, db, res.Diagnosed)
	require.Contains(t, out, "λa")
}
