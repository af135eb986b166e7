package sat

// elimRecord is one entry of the bounded-variable-elimination reconstruction
// stack: the eliminated variable and a clause that mentioned it (positive
// occurrence preferred), saved so the model can be extended after solving.
type elimRecord struct {
	v      Var
	saved  []Literal
	wasPos bool
}

// eliminateVars runs bounded variable elimination over the current root-level
// formula. It must be called before any decision is made (decisionLevel() ==
// 0) and before the clause database has been attached to the arena/watch
// structures used by search; it operates on raw clauses, then re-adds the
// surviving set through the normal clause-construction path.
//
// Returns false if elimination discovers the empty clause (UNSAT).
func (s *Solver) eliminateVars() bool {
	if !s.opts.VarElim {
		return true
	}

	clauses := s.snapshotClauses()

	worklist := NewQueue[Var](int(s.numVars) + 1)
	queued := &ResetSet{}
	for i := 0; i <= int(s.numVars); i++ {
		queued.Expand()
	}
	for v := Var(1); v <= s.numVars; v++ {
		if s.vars.value[v] == Unknown && !s.eliminated[v] {
			worklist.Push(v)
			queued.Add(int(v))
		}
	}

	// Clauses are tracked in a map keyed by an opaque id rather than by
	// slice so deletion (P union N) is an O(1) map delete.
	id := 0
	byID := map[int][]Literal{}
	for _, c := range clauses {
		byID[id] = c
		id++
	}
	occByLit := map[Literal]map[int]bool{}
	for cid, c := range byID {
		for _, l := range c {
			if occByLit[l] == nil {
				occByLit[l] = map[int]bool{}
			}
			occByLit[l][cid] = true
		}
	}

	removeClauseByID := func(cid int) {
		c := byID[cid]
		for _, l := range c {
			delete(occByLit[l], cid)
		}
		delete(byID, cid)
	}

	addClauseRaw := func(c []Literal) int {
		cid := id
		id++
		byID[cid] = c
		for _, l := range c {
			if occByLit[l] == nil {
				occByLit[l] = map[int]bool{}
			}
			occByLit[l][cid] = true
		}
		return cid
	}

	for worklist.Size() > 0 {
		v := worklist.Pop()
		if s.vars.value[v] != Unknown || s.eliminated[v] {
			continue
		}

		pos := PositiveLiteral(v)
		neg := NegativeLiteral(v)
		pIDs := occByLit[pos]
		nIDs := occByLit[neg]

		if len(pIDs) > s.opts.ElimMaxOcc || len(nIDs) > s.opts.ElimMaxOcc {
			continue
		}
		if len(pIDs) == 0 && len(nIDs) == 0 {
			continue
		}

		var resolvents [][]Literal
		beneficial := true
		for pid := range pIDs {
			for nid := range nIDs {
				res, taut := resolve(byID[pid], byID[nid], v)
				if taut {
					continue
				}
				resolvents = append(resolvents, res)
			}
			if len(resolvents) > len(pIDs)+len(nIDs)+s.opts.ElimGrow {
				beneficial = false
				break
			}
		}
		if !beneficial || len(resolvents) > len(pIDs)+len(nIDs)+s.opts.ElimGrow {
			continue
		}

		// Save one clause mentioning v (positive preferred) for
		// reconstruction before deleting P union N.
		var saved []Literal
		wasPos := len(pIDs) > 0
		if wasPos {
			for pid := range pIDs {
				saved = byID[pid]
				break
			}
		} else {
			for nid := range nIDs {
				saved = byID[nid]
				break
			}
		}
		s.elimStack = append(s.elimStack, elimRecord{v: v, saved: append([]Literal(nil), saved...), wasPos: wasPos})
		s.eliminated[v] = true

		for pid := range pIDs {
			removeClauseByID(pid)
		}
		for nid := range nIDs {
			removeClauseByID(nid)
		}

		for _, r := range resolvents {
			switch len(r) {
			case 0:
				return false // empty resolvent: UNSAT
			case 1:
				if !s.assignRootUnit(r[0]) {
					return false
				}
			default:
				addClauseRaw(r)
				for _, l := range r {
					w := l.Var()
					if s.vars.value[w] == Unknown && !s.eliminated[w] && !queued.Contains(int(w)) {
						worklist.Push(w)
						queued.Add(int(w))
					}
				}
			}
		}
	}

	final := make([][]Literal, 0, len(byID))
	for _, c := range byID {
		final = append(final, c)
	}
	return s.restoreClauses(final)
}

// resolve returns the resolvent of clauses a (containing +v) and b
// (containing -v) on variable v, and whether it is a tautology (some other
// variable appears with both polarities).
func resolve(a, b []Literal, v Var) ([]Literal, bool) {
	seen := map[Literal]bool{}
	out := make([]Literal, 0, len(a)+len(b))
	for _, l := range a {
		if l.Var() == v {
			continue
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range b {
		if l.Var() == v {
			continue
		}
		if seen[l.Opposite()] {
			return nil, true
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out, false
}

// extendModel walks the elimination reconstruction stack in reverse,
// assigning each eliminated variable so that its saved clause is satisfied
// (or arbitrarily, if already satisfied by other literals).
func (s *Solver) extendModel(model []bool) {
	extendFromStack(model, s.elimStack)
}

// extendBlockedModel applies the same reconstruction rule to clauses
// removed by blocked-clause elimination. Must be applied after
// extendModel, since BCE ran before BVE in the preprocessing pipeline and
// reconstruction undoes eliminations in reverse application order.
func (s *Solver) extendBlockedModel(model []bool) {
	extendFromStack(model, s.blockedStack)
}

func extendFromStack(model []bool, stack []elimRecord) {
	for i := len(stack) - 1; i >= 0; i-- {
		rec := stack[i]
		satisfied := false
		for _, l := range rec.saved {
			if l.Var() == rec.v {
				continue
			}
			want := l.IsPositive()
			if model[l.Var()-1] == want {
				satisfied = true
				break
			}
		}
		if satisfied {
			model[rec.v-1] = true // arbitrary
			continue
		}
		model[rec.v-1] = rec.wasPos
	}
}
