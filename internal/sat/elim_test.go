package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTautology(t *testing.T) {
	v := Var(1)
	a := []Literal{PositiveLiteral(v), PositiveLiteral(2)}
	b := []Literal{NegativeLiteral(v), NegativeLiteral(2)}

	res, taut := resolve(a, b, v)
	assert.True(t, taut)
	assert.Nil(t, res)
}

func TestResolveNonTautology(t *testing.T) {
	v := Var(1)
	a := []Literal{PositiveLiteral(v), PositiveLiteral(2)}
	b := []Literal{NegativeLiteral(v), PositiveLiteral(3)}

	res, taut := resolve(a, b, v)
	require.False(t, taut)
	assert.ElementsMatch(t, []Literal{PositiveLiteral(2), PositiveLiteral(3)}, res)
}

// TestEliminateVarsPreservesSatisfiability checks property P8: solving
// with BVE enabled on a satisfiable instance still yields a model that
// satisfies every original clause once reconstructed.
func TestEliminateVarsPreservesSatisfiability(t *testing.T) {
	clauses := [][]int{
		{1, 2}, {-2, 3}, {-3, 4}, {-1, 4},
	}
	opts := DefaultOptions
	opts.VarElim = true
	opts.BCE = false
	s := buildRawSolver(t, 4, clauses, opts)

	result := s.Solve()
	require.Equal(t, Sat, result)

	model := s.Model()
	for _, c := range clauses {
		satisfied := false
		for _, k := range c {
			v := k
			want := true
			if v < 0 {
				v, want = -v, false
			}
			if model[v-1] == want {
				satisfied = true
				break
			}
		}
		assert.True(t, satisfied, "clause %v not satisfied by reconstructed model %v", c, model)
	}
}
