package sat

import "sort"

// shouldReduce reports whether the learnt database has grown enough to
// warrant a reduction pass. Gated on both halves of the spec's trigger:
// at least ReduceInterval conflicts since the last reduction, and the
// learnt count exceeding the original-count-derived threshold.
func (s *Solver) shouldReduce() bool {
	if s.Stats.Conflicts-s.conflictsAtLastReduce < s.opts.ReduceInterval {
		return false
	}
	return len(s.learnts) > len(s.original)/2+1000
}

// reduceDB sorts live learnt clauses ascending by LBD then descending by
// activity, keeps the first (best) half unconditionally, and deletes the
// second half except glue clauses (LBD <= glue_lbd) and clauses currently
// locked as a propagation reason.
func (s *Solver) reduceDB() {
	sort.Slice(s.learnts, func(i, j int) bool {
		ci, cj := s.learnts[i], s.learnts[j]
		li, lj := s.arena.LBD(ci), s.arena.LBD(cj)
		if li != lj {
			return li < lj
		}
		return s.arena.Activity(ci) > s.arena.Activity(cj)
	})

	half := len(s.learnts) / 2
	kept := s.learnts[:0]
	for i, ref := range s.learnts {
		if s.arena.IsDeleted(ref) {
			continue
		}
		if i < half || s.arena.IsGlue(ref) || s.locked(ref) {
			kept = append(kept, ref)
			continue
		}
		s.removeClause(ref)
	}
	s.learnts = kept
	s.conflictsAtLastReduce = s.Stats.Conflicts

	if s.arena.ShouldGC() {
		s.gcArena()
	}
}

// gcArena compacts the arena and rewrites every outstanding CRef: the
// original/learnt reference slices, reasons on the trail, and the watch
// index (rebuilt wholesale since watch lists are keyed by literal, not by
// clause, and relocation would otherwise require a reverse index).
func (s *Solver) gcArena() {
	remap := map[CRef]CRef{}
	s.arena.GC(func(old, new CRef) {
		remap[old] = new
	})

	for i, ref := range s.original {
		s.original[i] = remap[ref]
	}
	for i, ref := range s.learnts {
		s.learnts[i] = remap[ref]
	}
	for v := range s.vars.reason {
		r := s.vars.reason[Var(v)]
		if r != InvalidCRef && r != BinaryConflict {
			s.vars.reason[Var(v)] = remap[r]
		}
	}

	s.rebuildWatches()
}

// rebuildWatches clears and re-attaches every live clause's watches. Used
// after an arena GC, since relocation invalidates every CRef stored in the
// old watch lists.
func (s *Solver) rebuildWatches() {
	s.watches = NewWatchIndex()
	s.watches.Grow(len(s.vars.value) * 2)

	for _, ref := range s.original {
		if !s.arena.IsDeleted(ref) {
			s.attach(ref)
		}
	}
	for _, ref := range s.learnts {
		if !s.arena.IsDeleted(ref) {
			s.attach(ref)
		}
	}
	for _, b := range s.binaryClauses {
		s.watches.AddBinary(b[0], b[1])
	}
}
