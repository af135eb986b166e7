package sat

// trailEntry is one assigned literal together with the decision level at
// which it became true.
type trailEntry struct {
	lit   Literal
	level int
}

// Trail is the ordered stack of currently-assigned literals, along with the
// per-level boundaries and the propagation cursor.
type Trail struct {
	entries []trailEntry
	lim     []int // lim[k]: trail position where decision level k+1 began
	qhead   int   // literals below this index have already been propagated
}

// Level returns the current decision level (number of open levels above
// level 0).
func (t *Trail) Level() int {
	return len(t.lim)
}

// Len returns the number of assigned literals.
func (t *Trail) Len() int {
	return len(t.entries)
}

// At returns the literal assigned at trail position i.
func (t *Trail) At(i int) Literal {
	return t.entries[i].lit
}

// LevelAt returns the decision level of the literal assigned at trail
// position i.
func (t *Trail) LevelAt(i int) int {
	return t.entries[i].level
}

// Push appends a newly assigned literal to the trail at the current
// decision level.
func (t *Trail) Push(l Literal) {
	t.entries = append(t.entries, trailEntry{lit: l, level: t.Level()})
}

// NewDecisionLevel opens a new decision level starting at the current
// trail length.
func (t *Trail) NewDecisionLevel() {
	t.lim = append(t.lim, len(t.entries))
}

// LevelStart returns the trail position at which decision level lvl began,
// or 0 for level 0.
func (t *Trail) LevelStart(lvl int) int {
	if lvl == 0 {
		return 0
	}
	return t.lim[lvl-1]
}

// Truncate shrinks the trail back to n entries, used while backtracking.
func (t *Trail) Truncate(n int) {
	t.entries = t.entries[:n]
}

// PopDecisionLevel closes the most recently opened decision level.
func (t *Trail) PopDecisionLevel() {
	t.lim = t.lim[:len(t.lim)-1]
}

// QHead returns the propagation cursor.
func (t *Trail) QHead() int {
	return t.qhead
}

// SetQHead sets the propagation cursor.
func (t *Trail) SetQHead(n int) {
	t.qhead = n
}

// varState holds the per-variable side-tables of spec: assignment value,
// decision level, propagation reason, trail position, saved polarity,
// VSIDS activity, and order-heap membership.
type varState struct {
	value    []LBool
	level    []int
	reason   []CRef
	trailPos []int
	polarity []LBool // saved phase, used for phase saving
	activity []float64
	inHeap   []bool
}

func (vs *varState) grow() {
	vs.value = append(vs.value, Unknown)
	vs.level = append(vs.level, -1)
	vs.reason = append(vs.reason, InvalidCRef)
	vs.trailPos = append(vs.trailPos, -1)
	vs.polarity = append(vs.polarity, False)
	vs.activity = append(vs.activity, 0)
	vs.inHeap = append(vs.inHeap, false)
}
