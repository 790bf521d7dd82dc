package cdcl

// analyze implements conflict-driven resolution to a single asserting
// literal (the first unique implication point). conflict is a clause
// falsified under the current trail at s.trail.DL > 0. It returns the
// backjump level and the learned clause; a negative backjump level means
// the formula is unsatisfiable (the conflict occurred at decision level 0).
func (s *Solver) analyze(conflict Clause) (int, Clause) {
	if s.trail.DL == 0 {
		return -1, Clause{}
	}

	current := conflict
	levelLits := s.atCurrentLevel(current)

	for len(levelLits) != 1 {
		var candidates []Literal
		for _, l := range levelLits {
			a, _ := s.trail.Get(l.V)
			if a.Antecedent != nil {
				candidates = append(candidates, l)
			}
		}
		if len(candidates) == 0 {
			// Defensive exit: every current-level literal is a decision.
			// This can only happen if the conflict clause itself was
			// malformed; stop with whatever we have rather than loop
			// forever.
			break
		}
		pivot := candidates[0]
		a, _ := s.trail.Get(pivot.V)
		current = resolve(current, *a.Antecedent, pivot.V)
		levelLits = s.atCurrentLevel(current)
	}

	levels := make(map[int]struct{})
	for _, l := range current.Literals {
		a, _ := s.trail.Get(l.V)
		levels[a.DL] = struct{}{}
	}

	beta := 0
	if len(levels) > 1 {
		beta = secondHighest(levels)
	}

	s.log.WithFields(loggerFields{
		"learned": current.String(),
		"beta":    beta,
	}).Debug("conflict analysis learned clause")

	return beta, current
}

// atCurrentLevel returns the literals of c assigned at the trail's current
// decision level.
func (s *Solver) atCurrentLevel(c Clause) []Literal {
	var out []Literal
	for _, l := range c.Literals {
		a, ok := s.trail.Get(l.V)
		if ok && a.DL == s.trail.DL {
			out = append(out, l)
		}
	}
	return out
}

// resolve computes the resolvent of a and b on pivot: the union of their
// literals with both polarities of pivot removed, and any other duplicate
// literal collapsed. Because pivot appears with opposite polarity in a and
// b at the moment resolution is invoked, dropping both polarities is
// exactly the standard resolution rule.
func resolve(a, b Clause, pivot Var) Clause {
	seen := make(map[Literal]struct{}, len(a.Literals)+len(b.Literals))
	var lits []Literal
	add := func(ls []Literal) {
		for _, l := range ls {
			if l.V == pivot {
				continue
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			lits = append(lits, l)
		}
	}
	add(a.Literals)
	add(b.Literals)
	return Clause{Literals: lits}
}

// secondHighest returns the second-largest element of a non-empty set of
// ints with at least two elements.
func secondHighest(set map[int]struct{}) int {
	highest, second := -1, -1
	for v := range set {
		switch {
		case v > highest:
			second = highest
			highest = v
		case v > second:
			second = v
		}
	}
	return second
}
