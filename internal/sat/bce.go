package sat

// eliminateBlockedClauses removes clauses that are blocked on one of their
// own literals: a clause C is blocked on l if, for every clause D
// containing l.Opposite(), the resolvent of C and D on var(l) is a
// tautology. Blocked clauses can be removed without affecting
// satisfiability (though the removed clause is not implied by the rest of
// the formula, so this must run before any clause reference is otherwise
// assumed complete).
//
// Runs over the same raw-clause snapshot representation as eliminateVars
// and must be called before it, at the root level, before search begins.
func (s *Solver) eliminateBlockedClauses() bool {
	if !s.opts.BCE {
		return true
	}

	clauses := s.snapshotClauses()

	byLit := map[Literal][][]Literal{}
	for _, c := range clauses {
		for _, l := range c {
			byLit[l] = append(byLit[l], c)
		}
	}

	kept := make([][]Literal, 0, len(clauses))
	for _, c := range clauses {
		if blocked, l := isBlocked(c, byLit); blocked {
			s.blockedStack = append(s.blockedStack, elimRecord{
				v:      l.Var(),
				saved:  append([]Literal(nil), c...),
				wasPos: l.IsPositive(),
			})
			continue
		}
		kept = append(kept, c)
	}

	return s.restoreClauses(kept)
}

func isBlocked(c []Literal, byLit map[Literal][][]Literal) (bool, Literal) {
	for _, l := range c {
		if blockedOn(c, l, byLit) {
			return true, l
		}
	}
	return false, 0
}

func blockedOn(c []Literal, l Literal, byLit map[Literal][][]Literal) bool {
	for _, d := range byLit[l.Opposite()] {
		if _, taut := resolve(c, d, l.Var()); !taut {
			return false
		}
	}
	return true
}
