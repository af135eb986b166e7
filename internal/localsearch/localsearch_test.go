package localsearch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bsat/bsat/internal/sat"
)

func lit(k int) sat.Literal {
	return sat.FromDIMACS(k)
}

func TestRunReturnsImmediatelyIfInitAlreadySatisfies(t *testing.T) {
	clauses := [][]sat.Literal{{lit(1), lit(2)}}
	init := []bool{true, false}

	model, ok := Run(2, clauses, init, DefaultOptions)
	require.True(t, ok)
	assert.Equal(t, []bool{true, false}, model)
}

func TestRunFindsModelForSmallSatisfiableFormula(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1), lit(2)},
		{lit(-1), lit(3)},
		{lit(-2), lit(-3)},
	}
	opts := Options{MaxFlips: 500, Noise: 0.3, Rand: rand.New(rand.NewSource(42))}

	model, ok := Run(3, clauses, nil, opts)
	require.True(t, ok)

	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			v := int(l.Var())
			if model[v-1] == l.IsPositive() {
				satisfied = true
				break
			}
		}
		assert.True(t, satisfied, "clause %v not satisfied by %v", c, model)
	}
}

func TestRunReportsFailureOnUnsatisfiableFormula(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1)},
		{lit(-1)},
	}
	opts := Options{MaxFlips: 50, Noise: 0.2, Rand: rand.New(rand.NewSource(7))}

	_, ok := Run(1, clauses, nil, opts)
	assert.False(t, ok)
}

func TestBreakCountCountsOnlyClausesLosingTheirLastTrueLiteral(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1), lit(2)},
		{lit(1), lit(-2)},
	}
	st := newSearchState(2, clauses, []bool{true, true}, rand.New(rand.NewSource(1)))

	assert.Equal(t, int32(2), st.trueCount[0])
	assert.Equal(t, int32(1), st.trueCount[1])
	assert.Equal(t, 1, st.breakCount(1))
}
