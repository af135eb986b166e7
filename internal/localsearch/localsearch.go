// Package localsearch implements a WalkSAT-style auxiliary that can polish
// a candidate assignment or probe for a model cheaply before handing off
// to (or between restarts of) the CDCL core. It is intentionally
// independent of the core's arena/watch representation: it works over a
// flat copy of the clauses, since local search flips one variable at a
// time and needs fast "how many clauses break" queries that the
// two-watched-literal scheme is not built to answer.
package localsearch

import (
	"math/rand"

	"github.com/go-bsat/bsat/internal/sat"
)

// Options configures the search.
type Options struct {
	MaxFlips int
	Noise    float64 // probability of a random (rather than greedy) flip
	Rand     *rand.Rand
}

// DefaultOptions is a conservative configuration suitable as a pre-search
// probe.
var DefaultOptions = Options{
	MaxFlips: 10000,
	Noise:    0.2,
	Rand:     rand.New(rand.NewSource(1)),
}

// searchState tracks the current assignment and, per clause, how many of
// its literals are currently true.
type searchState struct {
	clauses   [][]sat.Literal
	occurs    [][]int // per variable, indices of clauses mentioning it
	assign    []bool  // 1-based variable index; assign[0] unused
	trueCount []int32 // per clause
}

// Run attempts to find a satisfying assignment for clauses over nVars
// variables, starting from init (or an arbitrary assignment if init is
// nil). Returns the (possibly improved) assignment and whether every
// clause was satisfied.
func Run(nVars int, clauses [][]sat.Literal, init []bool, opts Options) ([]bool, bool) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}

	st := newSearchState(nVars, clauses, init, opts.Rand)
	if st.unsatCount() == 0 {
		return st.assign[1:], true
	}

	for flip := 0; flip < opts.MaxFlips; flip++ {
		cIdx := st.pickUnsatClause(opts.Rand)
		if cIdx < 0 {
			return st.assign[1:], true
		}

		v := st.pickVarToFlip(cIdx, opts)
		st.flip(v)

		if st.unsatCount() == 0 {
			return st.assign[1:], true
		}
	}

	return st.assign[1:], st.unsatCount() == 0
}

func newSearchState(nVars int, clauses [][]sat.Literal, init []bool, rnd *rand.Rand) *searchState {
	st := &searchState{
		clauses:   clauses,
		occurs:    make([][]int, nVars+1),
		assign:    make([]bool, nVars+1),
		trueCount: make([]int32, len(clauses)),
	}

	if init != nil {
		copy(st.assign[1:], init)
	} else {
		for v := 1; v <= nVars; v++ {
			st.assign[v] = rnd.Intn(2) == 0
		}
	}

	for ci, c := range clauses {
		for _, l := range c {
			v := int(l.Var())
			st.occurs[v] = append(st.occurs[v], ci)
		}
		st.trueCount[ci] = st.countTrue(c)
	}

	return st
}

func (st *searchState) countTrue(c []sat.Literal) int32 {
	var n int32
	for _, l := range c {
		if st.litTrue(l) {
			n++
		}
	}
	return n
}

func (st *searchState) litTrue(l sat.Literal) bool {
	return st.assign[l.Var()] == l.IsPositive()
}

func (st *searchState) unsatCount() int {
	n := 0
	for _, c := range st.trueCount {
		if c == 0 {
			n++
		}
	}
	return n
}

// pickUnsatClause returns the index of a uniformly-random unsatisfied
// clause, or -1 if none remain.
func (st *searchState) pickUnsatClause(rnd *rand.Rand) int {
	var candidates []int
	for i, c := range st.trueCount {
		if c == 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rnd.Intn(len(candidates))]
}

// pickVarToFlip chooses, within the chosen unsatisfied clause, either a
// uniformly random literal's variable (with probability Noise) or the
// variable whose flip breaks the fewest currently-satisfied clauses
// (greedy/break-count minimization).
func (st *searchState) pickVarToFlip(clauseIdx int, opts Options) int {
	clause := st.clauses[clauseIdx]

	if opts.Rand.Float64() < opts.Noise {
		return int(clause[opts.Rand.Intn(len(clause))].Var())
	}

	best := int(clause[0].Var())
	bestBreak := st.breakCount(best)
	for _, l := range clause[1:] {
		v := int(l.Var())
		if b := st.breakCount(v); b < bestBreak {
			best, bestBreak = v, b
		}
	}
	return best
}

// breakCount counts how many currently-satisfied clauses would become
// unsatisfied if v were flipped.
func (st *searchState) breakCount(v int) int {
	broke := 0
	for _, ci := range st.occurs[v] {
		if st.trueCount[ci] == 1 && st.litTrueForVar(st.clauses[ci], v) {
			broke++
		}
	}
	return broke
}

func (st *searchState) litTrueForVar(c []sat.Literal, v int) bool {
	for _, l := range c {
		if int(l.Var()) == v {
			return st.litTrue(l)
		}
	}
	return false
}

// flip toggles v's assignment and incrementally updates every mentioning
// clause's true-literal count.
func (st *searchState) flip(v int) {
	st.assign[v] = !st.assign[v]
	for _, ci := range st.occurs[v] {
		st.trueCount[ci] = st.countTrue(st.clauses[ci])
	}
}
