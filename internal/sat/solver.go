package sat

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// Options configures every tunable parameter of the solver. Defaults
// mirror a competition-tuned configuration.
type Options struct {
	ClauseDecay   float64
	VariableDecay float64

	RestartFirst        int64
	RestartInc          float64
	GlucoseRestart      bool
	RestartPostpone     int
	GlucoseFastAlpha    float64
	GlucoseSlowAlpha    float64
	GlucoseMinConflicts int64

	PhaseSaving     bool
	RandomPhase     bool
	RandomPhaseProb float64

	GlueLBD        uint32
	ReduceInterval int64

	BCE         bool
	VarElim     bool
	Subsumption bool // reserved for config parity; see DESIGN.md
	ElimMaxOcc  int
	ElimGrow    int

	MaxConflicts  int64 // -1 disables
	MaxDecisions  int64 // -1 disables
	Timeout       time.Duration // 0 or negative disables
	MaxArenaWords uint32 // 0 means unbounded (the MAX_CLAUSES capacity guard)

	Chronological bool

	// ProgressPoll is called once per loop iteration; when it returns
	// true, the driver prints a progress line and the caller is expected
	// to have cleared its flag. nil disables progress polling.
	ProgressPoll func() bool

	Rand *rand.Rand
}

// DefaultOptions matches the tuned defaults of the reference competition
// solver this core was distilled from.
var DefaultOptions = Options{
	ClauseDecay:         0.999,
	VariableDecay:       0.95,
	RestartFirst:        100,
	RestartInc:          1.5,
	GlucoseRestart:      true,
	RestartPostpone:     10,
	GlucoseFastAlpha:    0.8,
	GlucoseSlowAlpha:    0.9999,
	GlucoseMinConflicts: 100,
	PhaseSaving:         true,
	RandomPhase:         false,
	RandomPhaseProb:     0.02,
	GlueLBD:             2,
	ReduceInterval:      2000,
	BCE:                 true,
	VarElim:             true,
	Subsumption:         true,
	ElimMaxOcc:          1000,
	ElimGrow:            0,
	MaxConflicts:        -1,
	MaxDecisions:        -1,
	Timeout:             -1,
	Chronological:       true,
	Rand:                rand.New(rand.NewSource(1)),
}

// Result is the tri-valued outcome of a solve call.
type Result = LBool

const (
	Sat     Result = True
	Unsat   Result = False
	Unknown Result = 0
)

// DRATWriter receives clause addition/deletion events for optional proof
// emission. The zero value (nil field in Solver) disables proof output.
type DRATWriter interface {
	Learn(lits []Literal)
	Delete(lits []Literal)
	Done(unsat bool)
}

// Stats collects search statistics, primarily for external reporting.
type Stats struct {
	Conflicts    int64
	Decisions    int64
	Propagations int64
	Restarts     int64
	Reductions   int64
}

// Solver is a CDCL SAT solver over an arena-backed clause store with
// two-watched-literal propagation, 1-UIP analysis, VSIDS decisions, a
// Glucose+geometric restart controller, a learnt-clause reducer, and a
// bounded variable-elimination preprocessor.
type Solver struct {
	opts Options

	numVars Var

	arena  *Arena
	watches *WatchIndex
	vars   *varState
	trail  *Trail
	order  *order
	seen   seenArray

	binReasonOther []Literal     // per-var: falsifying literal of a binary-reason assignment
	binConflictLit, binConflictOther Literal // scratch, set by propagate() on a binary conflict

	original      []CRef
	learnts       []CRef
	binaryClauses [][2]Literal

	eliminated   []bool
	elimStack    []elimRecord
	blockedStack []elimRecord

	clauseInc   float64
	restart     *restartController
	conflictsAtLastReduce int64

	result  Result
	unsat   bool
	model   []bool
	preprocessed bool

	assumptions       []Literal
	failedAssumptions []Literal

	drat DRATWriter

	Stats Stats

	startTime time.Time

	// scratch buffers reused across calls to avoid per-conflict allocation
	tmpLearnt []Literal
}

// NewSolver returns a solver configured with the given options.
func NewSolver(opts Options) *Solver {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	s := &Solver{
		opts:      opts,
		arena:     NewArena(opts.MaxArenaWords),
		watches:   NewWatchIndex(),
		vars:      &varState{},
		trail:     &Trail{},
		clauseInc: 1,
		restart:   newRestartController(opts),
	}
	s.order = newOrder(opts.VariableDecay, s.vars)
	// Reserve Var 0 (InvalidVar) so Var IDs start at 1, per spec.
	s.growVars()
	return s
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func (s *Solver) growVars() {
	s.vars.grow()
	s.watches.Grow(len(s.vars.value) * 2)
	s.seen.grow(len(s.vars.value))
	s.eliminated = append(s.eliminated, false)
	s.binReasonOther = append(s.binReasonOther, 0)
}

// Reserve presizes the clause arena for an upcoming load of nClauses
// clauses over nVars variables, so a DIMACS-scale parse doesn't pay for
// the arena's geometric regrowth clause by clause. nVars is accepted for
// symmetry with the DIMACS problem line but only the arena, not the
// per-variable slices, is presized: those already grow one variable at a
// time via AddVariable. The estimate assumes an average of 3 literals
// per clause when no better figure is available.
func (s *Solver) Reserve(nVars, nClauses int) {
	const avgLitsPerClause = 3
	s.arena.Reserve(nClauses * (clauseHeaderWords + avgLitsPerClause))
}

// AddVariable reserves a new variable and returns its identifier.
func (s *Solver) AddVariable() Var {
	s.growVars()
	v := Var(len(s.vars.value) - 1)
	s.numVars = v
	s.order.addVar(v)
	return v
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int {
	return int(s.numVars)
}

// SetDRATWriter attaches a proof writer. Must be called before Solve.
func (s *Solver) SetDRATWriter(w DRATWriter) {
	s.drat = w
}

func (s *Solver) decisionLevel() int {
	return s.trail.Level()
}

// AddClause adds an original clause. Must be called at decision level 0.
// Returns an error only on a usage violation (adding mid-search); an
// empty/contradictory clause instead sets the solver to the UNSAT state,
// observable through a subsequent Solve call, per the error-handling
// design (input-induced UNSAT at construction is not a Go error).
func (s *Solver) AddClause(lits []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called at decision level %d, must be 0", s.decisionLevel())
	}
	if s.unsat {
		return nil
	}

	buf := append([]Literal(nil), lits...)
	ref, ok := s.newClause(buf, false)
	if !ok {
		s.unsat = true
		return nil
	}
	if ref != InvalidCRef {
		s.original = append(s.original, ref)
	}
	return nil
}

// SolveAssumptions solves under the given assumption literals, each pushed
// as its own pseudo-decision level before the main search loop. A conflict
// touching an assumption is reported as UNSAT, with the offending
// assumptions available via FailedAssumptions.
func (s *Solver) SolveAssumptions(assumptions []Literal) Result {
	s.assumptions = assumptions
	s.failedAssumptions = nil
	return s.Solve()
}

// FailedAssumptions returns the subset of the last SolveAssumptions call's
// assumptions that were responsible for UNSAT, if any.
func (s *Solver) FailedAssumptions() []Literal {
	return s.failedAssumptions
}

// Model returns the satisfying assignment found by the last successful
// Solve call, one bool per variable (index v-1 for variable v).
func (s *Solver) Model() []bool {
	return s.model
}

func (s *Solver) assumptionLevel() int {
	return len(s.assumptions)
}

// Solve runs the solver to completion (SAT, UNSAT, or UNKNOWN on resource
// exhaustion).
func (s *Solver) Solve() Result {
	if s.unsat {
		if s.drat != nil {
			s.drat.Done(true)
		}
		return Unsat
	}

	// BCE and BVE do not account for assumption literals, so a solve call
	// carrying assumptions skips preprocessing.
	if !s.preprocessed && len(s.assumptions) == 0 {
		s.preprocessed = true
		if !s.eliminateBlockedClauses() || !s.eliminateVars() {
			s.unsat = true
			if s.drat != nil {
				s.drat.Done(true)
			}
			return Unsat
		}
	}

	s.startTime = time.Now()

	if !s.pushAssumptions() {
		return Unsat
	}

	nConflictsAllowed := int64(100)
	for {
		res := s.search(nConflictsAllowed)
		if res != Unknown {
			return res
		}
		if s.resourceLimitHit() {
			return Unknown
		}
		nConflictsAllowed += nConflictsAllowed / 10
	}
}

func (s *Solver) pushAssumptions() bool {
	for _, a := range s.assumptions {
		s.trail.NewDecisionLevel()
		if !s.enqueue(a, InvalidCRef) {
			s.failedAssumptions = append(s.failedAssumptions, a)
			return false
		}
		if conflict := s.propagate(); conflict != InvalidCRef {
			s.failedAssumptions = s.analyzeFinal(conflict)
			return false
		}
	}
	return true
}

func (s *Solver) resourceLimitHit() bool {
	if s.opts.MaxConflicts >= 0 && s.Stats.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.MaxDecisions >= 0 && s.Stats.Decisions >= s.opts.MaxDecisions {
		return true
	}
	if s.opts.Timeout > 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// search runs decide/propagate/analyze until a model is found, a
// top-level conflict is hit, a restart fires and returns control, or a
// resource limit is reached.
func (s *Solver) search(nConflictsAllowed int64) Result {
	conflictsThisRun := int64(0)
	avgTrail := s.trail.Len()

	for {
		if s.opts.ProgressPoll != nil && s.opts.ProgressPoll() {
			s.printProgress()
		}

		qhead := s.trail.QHead()
		conflict := s.propagate()
		s.Stats.Propagations += int64(s.trail.QHead() - qhead)

		if conflict != InvalidCRef {
			s.Stats.Conflicts++
			conflictsThisRun++

			if s.decisionLevel() <= s.assumptionLevel() {
				if s.assumptionLevel() > 0 {
					s.failedAssumptions = s.analyzeFinal(conflict)
				}
				s.unsat = true
				if s.drat != nil {
					s.drat.Done(true)
				}
				return Unsat
			}

			learnt, backLevel := s.analyze(conflict)
			if backLevel < s.assumptionLevel() {
				backLevel = s.assumptionLevel()
			}

			lbd := s.computeLBD(learnt)
			s.restart.onConflict(lbd)

			s.backtrackTo(backLevel)

			ref, ok := s.newClause(learnt, true)
			if !ok {
				s.unsat = true
				return Unsat
			}
			if len(learnt) == 2 {
				// Binary learnts live only as watches; record the other
				// literal so analysis can explain this assignment.
				s.enqueueBinary(learnt[0], learnt[1])
			} else {
				s.enqueue(learnt[0], ref)
			}
			if s.drat != nil {
				s.drat.Learn(learnt)
			}
			if ref != InvalidCRef {
				s.arena.SetLBD(ref, lbd)
				s.arena.SetGlue(ref, lbd <= s.opts.GlueLBD)
				s.learnts = append(s.learnts, ref)
			}

			s.decayClauseActivity()
			s.order.decayInc()

			avgTrail = (avgTrail + s.trail.Len()) / 2
			continue
		}

		// No conflict.
		if s.decisionLevel() == 0 && !s.simplifyRootLevel() {
			s.unsat = true
			return Unsat
		}

		if s.trail.Len() == int(s.numVars) {
			return s.buildModel()
		}

		if s.restart.shouldRestart(s.trail.Len(), avgTrail) {
			s.Stats.Restarts++
			s.restart.onRestart()
			s.backtrackTo(s.assumptionLevel())
			return Unknown
		}

		if s.shouldReduce() {
			s.Stats.Reductions++
			s.reduceDB()
		}

		if conflictsThisRun > nConflictsAllowed {
			return Unknown
		}

		if s.resourceLimitHit() {
			return Unknown
		}

		s.decide()
	}
}

func (s *Solver) decide() {
	s.Stats.Decisions++
	v, ok := s.order.popNext()
	if !ok {
		return // every variable assigned; caller's trail-length check catches SAT
	}

	positive := s.polarityFor(v)

	s.trail.NewDecisionLevel()
	var lit Literal
	if positive {
		lit = PositiveLiteral(v)
	} else {
		lit = NegativeLiteral(v)
	}
	s.enqueue(lit, InvalidCRef)
}

func (s *Solver) polarityFor(v Var) bool {
	if s.opts.RandomPhase && s.opts.Rand.Float64() < s.opts.RandomPhaseProb {
		return s.opts.Rand.Intn(2) == 0
	}
	if s.opts.PhaseSaving {
		switch s.vars.polarity[v] {
		case True:
			return true
		case False:
			return false
		}
	}
	return false
}

// backtrackTo undoes trail entries down to the start of level, reinserting
// freed variables into the order heap and preserving saved polarities.
func (s *Solver) backtrackTo(level int) {
	if s.decisionLevel() <= level {
		return
	}

	target := s.trail.LevelStart(level + 1)
	for s.trail.Len() > target {
		l := s.trail.At(s.trail.Len() - 1)
		v := l.Var()

		s.vars.polarity[v] = s.vars.value[v]
		s.vars.value[v] = Unknown
		s.vars.reason[v] = InvalidCRef
		s.vars.level[v] = -1
		s.order.reinsert(v)

		s.trail.Truncate(s.trail.Len() - 1)
	}
	for s.decisionLevel() > level {
		s.trail.PopDecisionLevel()
	}
	s.trail.SetQHead(s.trail.Len())
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.opts.ClauseDecay
}

func (s *Solver) bumpClauseActivity(ref CRef) {
	act := s.arena.Activity(ref) + float32(s.clauseInc)
	s.arena.SetActivity(ref, act)
	if act > 1e30 {
		s.clauseInc *= 1e-30
		for _, l := range s.learnts {
			s.arena.SetActivity(l, s.arena.Activity(l)*1e-30)
		}
	}
}

// simplifyRootLevel removes root-satisfied clauses from the original and
// learnt databases. Called whenever the solver returns to level 0.
func (s *Solver) simplifyRootLevel() bool {
	if s.propagate() != InvalidCRef {
		return false
	}

	s.original = simplifySet(s, s.original)
	s.learnts = simplifySet(s, s.learnts)
	return true
}

func simplifySet(s *Solver, refs []CRef) []CRef {
	kept := refs[:0]
	for _, ref := range refs {
		if s.arena.IsDeleted(ref) {
			continue
		}
		if s.simplifyClause(ref) {
			s.removeClause(ref)
			continue
		}
		kept = append(kept, ref)
	}
	return kept
}

func (s *Solver) buildModel() Result {
	model := make([]bool, s.numVars)
	for v := Var(1); v <= s.numVars; v++ {
		if s.eliminated[v] {
			continue // filled in by extendModel below
		}
		model[v-1] = s.vars.value[v] == True
	}
	s.extendModel(model)
	s.extendBlockedModel(model)
	s.model = model
	s.backtrackTo(0)
	s.unsat = false
	s.result = Sat
	if s.drat != nil {
		s.drat.Done(false)
	}
	return Sat
}

// Clauses exposes the current root-level formula as plain literal slices,
// for external collaborators (such as a local-search probe) that need to
// drive their own state outside the arena/watch representation. Only valid
// before Solve has been called.
func (s *Solver) Clauses() [][]Literal {
	return s.snapshotClauses()
}

// snapshotClauses returns the current root-level formula as plain literal
// slices, for use by the preprocessors. Only valid before any clause has
// been attached to watches from a non-preprocessing code path, i.e.
// immediately at the start of Solve before the first propagate.
func (s *Solver) snapshotClauses() [][]Literal {
	out := make([][]Literal, 0, len(s.original)+len(s.binaryClauses))
	for _, ref := range s.original {
		lits := s.arena.Lits(ref)
		out = append(out, append([]Literal(nil), lits...))
	}
	for _, b := range s.binaryClauses {
		out = append(out, []Literal{b[0], b[1]})
	}
	return out
}

// restoreClauses replaces the root-level formula with clauses (the result
// of a preprocessing pass), rebuilding the arena/watch structures.
func (s *Solver) restoreClauses(clauses [][]Literal) bool {
	s.arena = NewArena(s.opts.MaxArenaWords)
	s.watches = NewWatchIndex()
	s.watches.Grow(len(s.vars.value) * 2)
	s.original = nil
	s.binaryClauses = nil

	for _, c := range clauses {
		ref, ok := s.newClause(c, false)
		if !ok {
			return false
		}
		if ref != InvalidCRef {
			s.original = append(s.original, ref)
		}
	}
	return true
}

// assignRootUnit assigns a unit literal discovered during preprocessing.
func (s *Solver) assignRootUnit(l Literal) bool {
	return s.enqueue(l, InvalidCRef)
}

func (s *Solver) printProgress() {
	log.Printf(
		"c conflicts=%d decisions=%d restarts=%d learnts=%d trail=%d",
		s.Stats.Conflicts, s.Stats.Decisions, s.Stats.Restarts, len(s.learnts), s.trail.Len(),
	)
}
