package sat

// propagate drives unit propagation from the current qhead until the trail
// is fully propagated or a conflict is found. It returns InvalidCRef on
// saturation, BinaryConflict if the conflict arose from a binary-watch
// shortcut, or the conflicting clause's CRef otherwise.
//
// binConflictLit/binConflictOther record the two literals of a binary conflict so the
// analyzer can reconstruct its "clause" without an arena lookup.
func (s *Solver) propagate() CRef {
	for s.trail.QHead() < s.trail.Len() {
		p := s.trail.At(s.trail.QHead())
		s.trail.SetQHead(s.trail.QHead() + 1)

		notP := p.Opposite()
		list := s.watches.ListFor(p)

		keep := 0
		conflict := InvalidCRef
	watchLoop:
		for i := 0; i < len(list); i++ {
			w := list[i]

			if w.IsBinary() {
				q := w.Blocker
				switch s.litValue(q) {
				case True:
					list[keep] = w
					keep++
				case Unknown:
					s.enqueueBinary(q, notP)
					list[keep] = w
					keep++
				case False:
					s.binConflictLit, s.binConflictOther = q, notP
					conflict = BinaryConflict
					// restore the unprocessed tail, compact what we kept.
					copy(list[keep:], list[i:])
					keep += len(list) - i
					break watchLoop
				}
				continue
			}

			ref := w.CRef
			if s.arena.IsDeleted(ref) {
				continue // stale watch of a deleted clause; drop it
			}

			if s.litValue(w.Blocker) == True {
				list[keep] = w
				keep++
				continue
			}

			lits := s.arena.Lits(ref)
			if lits[0] == notP {
				s.arena.SetLit(ref, 0, lits[1])
				s.arena.SetLit(ref, 1, notP)
				lits[0], lits[1] = lits[1], lits[0]
			}

			if s.litValue(lits[0]) == True {
				list[keep] = Watch{CRef: ref, Blocker: lits[0]}
				keep++
				continue
			}

			found := false
			for k := 2; k < len(lits); k++ {
				if s.litValue(lits[k]) != False {
					s.arena.SetLit(ref, 1, lits[k])
					s.arena.SetLit(ref, k, notP)
					s.watches.Add(lits[k].Opposite(), Watch{CRef: ref, Blocker: lits[0]})
					found = true
					break
				}
			}
			if found {
				continue // this watch moved to another literal's list
			}

			// Clause is unit under the current assignment.
			list[keep] = Watch{CRef: ref, Blocker: lits[0]}
			keep++
			if s.litValue(lits[0]) == False {
				conflict = ref
				copy(list[keep:], list[i+1:])
				keep += len(list) - i - 1
				break watchLoop
			}
			s.enqueueReason(lits[0], ref)
		}

		s.watches.SetListFor(p, list[:keep])

		if conflict != InvalidCRef {
			return conflict
		}
	}
	return InvalidCRef
}

// enqueue assigns l to true at the current decision level with the given
// reason. Returns false if l is already false (conflicting).
func (s *Solver) enqueue(l Literal, reason CRef) bool {
	switch s.litValue(l) {
	case False:
		return false
	case True:
		return true
	}
	s.assign(l, reason)
	return true
}

func (s *Solver) enqueueReason(l Literal, reason CRef) {
	s.assign(l, reason)
}

// enqueueBinary assigns l true because the other literal of an implicit
// binary clause (fromNeg, currently false) forced it. Since binary clauses
// are never stored in the arena, the reason is recorded with the
// BinaryConflict sentinel and the falsifying literal is remembered
// separately so the analyzer can reconstruct the antecedent.
func (s *Solver) enqueueBinary(l Literal, fromNeg Literal) {
	v := l.Var()
	s.vars.value[v] = Lift(l.IsPositive())
	s.vars.level[v] = s.trail.Level()
	s.vars.reason[v] = BinaryConflict
	s.vars.trailPos[v] = s.trail.Len()
	s.binReasonOther[v] = fromNeg
	s.trail.Push(l)
}

func (s *Solver) assign(l Literal, reason CRef) {
	v := l.Var()
	s.vars.value[v] = Lift(l.IsPositive())
	s.vars.level[v] = s.trail.Level()
	s.vars.reason[v] = reason
	s.vars.trailPos[v] = s.trail.Len()
	s.trail.Push(l)
}

func (s *Solver) litValue(l Literal) LBool {
	v := s.vars.value[l.Var()]
	if !l.IsPositive() {
		v = v.Opposite()
	}
	return v
}
