package lambda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDeBruijnIdentity(t *testing.T) {
	db, err := ToDeBruijn(Abs{Param: "a", Body: Var{Name: "a"}})
	require.NoError(t, err)
	require.Equal(t, DBAbs{Param: "a", Body: DBVar{Name: "a", Index: 0}}, db)
}

func TestToDeBruijnShadowing(t *testing.T) {
	// λa.λa.a refers to the inner binder: index 0, not 1.
	term := Abs{Param: "a", Body: Abs{Param: "a", Body: Var{Name: "a"}}}
	db, err := ToDeBruijn(term)
	require.NoError(t, err)
	inner := db.(DBAbs).Body.(DBAbs).Body
	require.Equal(t, DBVar{Name: "a", Index: 0}, inner)
}

func TestToDeBruijnUnboundVariableErrors(t *testing.T) {
	_, err := ToDeBruijn(Var{Name: "free"})
	require.Error(t, err)
}

func TestCountOccurrencesDoublyUsedParam(t *testing.T) {
	// λa.λb.(a (a b)): from "a"'s own Lam body, "a" occurs twice.
	db, err := ToDeBruijn(parseMust(t, "λa.λb.(a (a b))"))
	require.NoError(t, err)
	body := db.(DBAbs).Body
	require.Equal(t, 2, countOccurrences(body, 0))
}

func parseMust(t *testing.T, src string) Term {
	t.Helper()
	term, err := NewParser(src).Parse()
	require.NoError(t, err)
	return term
}
