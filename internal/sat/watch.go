package sat

// Watch attaches a clause to a literal's watch list. A binary watch is
// encoded with CRef == InvalidCRef; Blocker then holds the other literal of
// the implicit (unstored) binary clause. A non-binary watch's Blocker is a
// literal of the clause currently believed to be true, kept fresh by the
// propagator so that most visits can skip loading the clause body.
type Watch struct {
	CRef    CRef
	Blocker Literal
}

// IsBinary reports whether w represents a binary-clause shortcut rather
// than a clause stored in the arena.
func (w Watch) IsBinary() bool {
	return w.CRef == InvalidCRef
}

// WatchIndex holds, for every literal, the list of watches triggered when
// that literal becomes true.
type WatchIndex struct {
	lists [][]Watch
}

// NewWatchIndex returns an empty watch index.
func NewWatchIndex() *WatchIndex {
	return &WatchIndex{}
}

// Grow extends the index to cover nLits literals (2 per variable).
func (wi *WatchIndex) Grow(nLits int) {
	for len(wi.lists) < nLits {
		wi.lists = append(wi.lists, nil)
	}
}

// Add appends one watch to the list for literal l.
func (wi *WatchIndex) Add(l Literal, w Watch) {
	wi.lists[l] = append(wi.lists[l], w)
}

// AddBinary registers the two watches of a binary clause {l, other}.
func (wi *WatchIndex) AddBinary(l, other Literal) {
	wi.Add(l.Opposite(), Watch{CRef: InvalidCRef, Blocker: other})
	wi.Add(other.Opposite(), Watch{CRef: InvalidCRef, Blocker: l})
}

// ListFor returns the watch list for literal l. The propagator mutates it
// in place (it is compacted during the propagation pass).
func (wi *WatchIndex) ListFor(l Literal) []Watch {
	return wi.lists[l]
}

// SetListFor replaces the watch list for literal l, e.g. after the
// propagator has compacted it in place.
func (wi *WatchIndex) SetListFor(l Literal, list []Watch) {
	wi.lists[l] = list
}

// RemoveClause removes any watch referencing cref from the watch lists of
// the clause's two watched literals (lits[0] and lits[1], as stored).
func (wi *WatchIndex) RemoveClause(cref CRef, watched0, watched1 Literal) {
	wi.removeFrom(watched0.Opposite(), cref)
	wi.removeFrom(watched1.Opposite(), cref)
}

func (wi *WatchIndex) removeFrom(l Literal, cref CRef) {
	list := wi.lists[l]
	j := 0
	for i := range list {
		if list[i].CRef != cref {
			list[j] = list[i]
			j++
		}
	}
	wi.lists[l] = list[:j]
}
