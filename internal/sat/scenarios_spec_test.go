package sat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-bsat/bsat/internal/sat"
)

// buildSolver declares nVars variables and adds clauses, each given as a
// slice of signed DIMACS integers.
func buildSolver(nVars int, clauses [][]int) *sat.Solver {
	s := sat.NewDefaultSolver()
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for i, k := range c {
			lits[i] = sat.FromDIMACS(k)
		}
		Expect(s.AddClause(lits)).To(Succeed())
	}
	return s
}

// clauseSatisfied reports whether clause c (signed DIMACS ints) is
// satisfied by model (1-based, model[v-1] is v's boolean value).
func clauseSatisfied(c []int, model []bool) bool {
	for _, k := range c {
		v := k
		want := true
		if v < 0 {
			v, want = -v, false
		}
		if model[v-1] == want {
			return true
		}
	}
	return false
}

var _ = Describe("concrete DIMACS scenarios", func() {
	It("scenario 1: single positive unit is SAT with model 1", func() {
		s := buildSolver(1, [][]int{{1}})
		Expect(s.Solve()).To(Equal(sat.Sat))
		Expect(s.Model()).To(Equal([]bool{true}))
	})

	It("scenario 2: contradictory units are UNSAT", func() {
		s := buildSolver(1, [][]int{{1}, {-1}})
		Expect(s.Solve()).To(Equal(sat.Unsat))
	})

	It("scenario 3: unit-propagation chain is SAT with model 1 2 3", func() {
		s := buildSolver(3, [][]int{{1}, {-1, 2}, {-2, 3}})
		Expect(s.Solve()).To(Equal(sat.Sat))
		Expect(s.Model()).To(Equal([]bool{true, true, true}))
		Expect(s.Stats.Propagations).To(BeNumerically(">=", 3))
		Expect(s.Stats.Decisions).To(BeNumerically("<=", 1))
	})

	It("scenario 4: small pigeonhole-style instance is UNSAT", func() {
		clauses := [][]int{
			{1, 2}, {2, 3}, {1, 3},
			{-1, -2}, {-2, -3}, {-1, -3},
			{1, 2, 3},
		}
		s := buildSolver(3, clauses)
		Expect(s.Solve()).To(Equal(sat.Unsat))
	})

	It("scenario 5: satisfiable 3-SAT instance verifies against its own clauses", func() {
		clauses := [][]int{{1, 2}, {3, 4}, {-1, 3}, {2, -4}}
		s := buildSolver(4, clauses)
		Expect(s.Solve()).To(Equal(sat.Sat))
		model := s.Model()
		for _, c := range clauses {
			Expect(clauseSatisfied(c, model)).To(BeTrue(), "clause %v not satisfied by %v", c, model)
		}
	})

	It("scenario 6: a blocked second clause doesn't change satisfiability, with or without BCE", func() {
		clauses := [][]int{{1, 2}, {1, -2, 3}}

		withBCE := sat.DefaultOptions
		withBCE.BCE = true
		s1 := buildSolverWithOptions(3, clauses, withBCE)
		Expect(s1.Solve()).To(Equal(sat.Sat))

		withoutBCE := sat.DefaultOptions
		withoutBCE.BCE = false
		s2 := buildSolverWithOptions(3, clauses, withoutBCE)
		Expect(s2.Solve()).To(Equal(sat.Sat))
	})
})

func buildSolverWithOptions(nVars int, clauses [][]int, opts sat.Options) *sat.Solver {
	s := sat.NewSolver(opts)
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for i, k := range c {
			lits[i] = sat.FromDIMACS(k)
		}
		Expect(s.AddClause(lits)).To(Succeed())
	}
	return s
}
