package lambda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	term, err := NewParser("λa.a").Parse()
	require.NoError(t, err)
	require.Equal(t, Abs{Param: "a", Body: Var{Name: "a"}}, term)
}

func TestParseApplication(t *testing.T) {
	term, err := NewParser("(a b)").Parse()
	require.NoError(t, err)
	require.Equal(t, App{Fun: Var{Name: "a"}, Arg: Var{Name: "b"}}, term)
}

func TestParseNestedAbsAndApp(t *testing.T) {
	term, err := NewParser("λa.λb.(a b)").Parse()
	require.NoError(t, err)
	require.Equal(t, "λa.λb.(a b)", term.String())
}

func TestParseAcceptsBackslashLambda(t *testing.T) {
	term, err := NewParser(`\a.a`).Parse()
	require.NoError(t, err)
	require.Equal(t, Var{Name: "a"}, term.(Abs).Body)
}

func TestParseWhitespaceInsignificant(t *testing.T) {
	a, err := NewParser("λ a . a").Parse()
	require.NoError(t, err)
	b, err := NewParser("λa.a").Parse()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestParseTrailingInputRejected(t *testing.T) {
	_, err := NewParser("a b").Parse()
	require.Error(t, err)
}

func TestParseUnclosedParenRejected(t *testing.T) {
	_, err := NewParser("(a b").Parse()
	require.Error(t, err)
}

func TestParseMissingDotRejected(t *testing.T) {
	_, err := NewParser("λa a").Parse()
	require.Error(t, err)
}
