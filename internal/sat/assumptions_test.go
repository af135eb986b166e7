package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolveAssumptionsSatisfiableDoesNotHang guards against a regression
// where the model-found check compared the trail length against
// numVars+assumptionLevel instead of numVars: since every variable is
// pushed onto the trail exactly once (assumptions included), that
// comparison could never hold once an assumption was pushed, and decide()
// would spin forever once the order heap was exhausted.
func TestSolveAssumptionsSatisfiableDoesNotHang(t *testing.T) {
	s := buildRawSolver(t, 2, [][]int{{1, 2}}, DefaultOptions)

	result := s.SolveAssumptions([]Literal{FromDIMACS(1)})
	require.Equal(t, Sat, result)
	assert.True(t, s.Model()[0])
}

// TestSolveAssumptionsImmediateConflict exercises the pushAssumptions path
// where the assumption itself directly contradicts a root-level unit
// clause, so the conflict is found before search ever starts.
func TestSolveAssumptionsImmediateConflict(t *testing.T) {
	s := buildRawSolver(t, 1, [][]int{{-1}}, DefaultOptions)

	result := s.SolveAssumptions([]Literal{FromDIMACS(1)})
	require.Equal(t, Unsat, result)
	assert.Equal(t, []Literal{FromDIMACS(1)}, s.FailedAssumptions())
}

// TestSolveAssumptionsMidSearchConflictReportsFailedAssumption covers the
// path a real CDCL loop actually takes to discover UNSAT-under-assumption:
// several rounds of decide/propagate/analyze/backtrack before a conflict
// recurs at or below the assumption level, rather than an immediate
// conflict on the push itself. Before this was wired, FailedAssumptions
// silently stayed empty for exactly this (the common) path.
//
// With x1 assumed true, clauses (-1,2,3), (-1,2,-3), (-1,-2,3), (-1,-2,-3)
// reduce to the unsatisfiable (2,3),(2,-3),(-2,3),(-2,-3) over x2/x3; with
// x1 left free (false), the formula is satisfiable, so the failure is
// attributable to the assumption, not the formula itself.
func TestSolveAssumptionsMidSearchConflictReportsFailedAssumption(t *testing.T) {
	clauses := [][]int{
		{-1, 2, 3},
		{-1, 2, -3},
		{-1, -2, 3},
		{-1, -2, -3},
	}
	s := buildRawSolver(t, 3, clauses, DefaultOptions)

	result := s.SolveAssumptions([]Literal{FromDIMACS(1)})
	require.Equal(t, Unsat, result)
	assert.Equal(t, []Literal{FromDIMACS(1)}, s.FailedAssumptions())

	// Without the assumption, the same formula is satisfiable.
	s2 := buildRawSolver(t, 3, clauses, DefaultOptions)
	assert.Equal(t, Sat, s2.Solve())
}
