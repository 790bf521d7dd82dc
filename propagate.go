package cdcl

// PropagationResult is the outcome of a call to propagate.
type PropagationResult uint8

const (
	PropagationUnresolved PropagationResult = iota
	PropagationConflict
)

// propagate scans the clause database to a fixpoint, assigning the forced
// literal of every unit clause it finds, until either no clause is unit
// (PropagationUnresolved) or some clause is falsified (PropagationConflict,
// together with that clause). The scan order is the database's append
// order — original clauses first, then learned clauses in the order they
// were learned — which is deterministic but otherwise not semantically
// significant except in picking which conflict is reported when several
// clauses are simultaneously unsatisfied.
func (s *Solver) propagate() (PropagationResult, Clause) {
	for {
		finished := true
		for i := range s.formula.Clauses {
			c := s.formula.Clauses[i]
			status, unit := Evaluate(c, s.trail)
			switch status {
			case StatusSatisfied, StatusUnresolved:
				continue
			case StatusUnsatisfied:
				s.log.WithField("clause", c.String()).Debug("unit propagation found conflict")
				return PropagationConflict, c
			case StatusUnit:
				finished = false
				clauseCopy := c
				s.trail.Assign(unit.V, !unit.Neg, &clauseCopy)
				s.numPropagations++
				s.log.WithFields(loggerFields{
					"var":   unit.V,
					"value": !unit.Neg,
					"dl":    s.trail.DL,
				}).Debug("unit propagation")
			}
		}
		if finished {
			return PropagationUnresolved, Clause{}
		}
	}
}
