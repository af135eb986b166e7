package sat

// newClause constructs a clause from lits (deduplicating, dropping
// root-falsified literals, and detecting root-satisfied/tautological
// clauses for original clauses; learnt clauses are assumed already in
// canonical asserting-literal-first form and are not re-simplified here).
//
// Returns (ref, ok). ok is false only when the clause is the empty clause
// (after simplification), meaning the formula is UNSAT. ref is
// InvalidCRef when the clause was trivially satisfied, or was a unit
// clause consumed directly as a level-0 assignment, or is a binary clause
// (binary clauses are represented only as watches, never stored in the
// arena).
func (s *Solver) newClause(lits []Literal, learned bool) (CRef, bool) {
	if !learned {
		size := len(lits)
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[lits[i].Opposite()]; ok {
				return InvalidCRef, true // tautology: always true, discard
			}
			if _, ok := seen[lits[i]]; ok {
				size--
				lits[i], lits[size] = lits[size], lits[i]
				continue
			}
			seen[lits[i]] = struct{}{}

			switch s.litValue(lits[i]) {
			case True:
				return InvalidCRef, true // already satisfied at root
			case False:
				size--
				lits[i], lits[size] = lits[size], lits[i]
			}
		}
		lits = lits[:size]
	}

	switch len(lits) {
	case 0:
		return InvalidCRef, false // empty clause: UNSAT
	case 1:
		return InvalidCRef, s.enqueue(lits[0], InvalidCRef)
	case 2:
		s.watches.AddBinary(lits[0], lits[1])
		s.binaryClauses = append(s.binaryClauses, [2]Literal{lits[0], lits[1]})
		return InvalidCRef, true
	default:
		if learned {
			// Place the literal at the second-highest decision level into
			// position 1 so the two initial watches are correctly placed
			// (invariant I4); position 0 already holds the asserting
			// literal by construction of the analyzer's output.
			maxLevel := -1
			wl := 1
			for i := 1; i < len(lits); i++ {
				if lvl := s.vars.level[lits[i].Var()]; lvl > maxLevel {
					maxLevel = lvl
					wl = i
				}
			}
			lits[1], lits[wl] = lits[wl], lits[1]
		}

		ref := s.arena.Alloc(lits, learned)
		if ref == InvalidCRef {
			return InvalidCRef, true // arena exhausted; caller treats as resource limit
		}
		s.attach(ref)
		return ref, true
	}
}

// attach registers the clause's two initial watches (its first two
// literals, per invariant I4).
func (s *Solver) attach(ref CRef) {
	lits := s.arena.Lits(ref)
	s.watches.Add(lits[0].Opposite(), Watch{CRef: ref, Blocker: lits[1]})
	s.watches.Add(lits[1].Opposite(), Watch{CRef: ref, Blocker: lits[0]})
}

// detach removes the clause's current watches. The clause's first two
// literals (its watched literals) must still be in positions 0 and 1.
func (s *Solver) detach(ref CRef) {
	lits := s.arena.Lits(ref)
	s.watches.RemoveClause(ref, lits[0], lits[1])
}

// locked reports whether ref is currently the propagation reason of its
// first literal's variable, meaning it must not be deleted (the trail
// still references it).
func (s *Solver) locked(ref CRef) bool {
	lits := s.arena.Lits(ref)
	v := lits[0].Var()
	return s.vars.value[v] != Unknown && s.vars.reason[v] == ref
}

// removeClause detaches and deletes a clause from the arena.
func (s *Solver) removeClause(ref CRef) {
	if !s.arena.IsDeleted(ref) {
		s.detach(ref)
		if s.drat != nil {
			s.drat.Delete(s.arena.Lits(ref))
		}
		s.arena.Delete(ref)
	}
}

// simplifyClause drops literals falsified at the root level; returns true
// if the clause is now satisfied at the root and can be removed entirely.
func (s *Solver) simplifyClause(ref CRef) bool {
	lits := s.arena.Lits(ref)
	k := 0
	for _, l := range lits {
		switch s.litValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			lits[k] = l
			k++
		}
	}
	for i, l := range lits[:k] {
		s.arena.SetLit(ref, i, l)
	}
	s.arena.Truncate(ref, k)
	return false
}
