package lambda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintDBRoundTripsThroughSyntheticNames(t *testing.T) {
	term, err := NewParser("λa.λb.(a b)").Parse()
	require.NoError(t, err)
	db, err := ToDeBruijn(term)
	require.NoError(t, err)
	require.Equal(t, "λa.λb.(a b)", PrintDB(db))
}

func TestPrintDBFreeVariable(t *testing.T) {
	require.Equal(t, "<free:0>", PrintDB(DBVar{Index: 0}))
}
