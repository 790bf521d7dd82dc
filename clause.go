package cdcl

import "strings"

// Clause is a disjunction of literals. The zero value is the empty clause,
// which denotes falsity.
type Clause struct {
	Literals []Literal
}

// NewClause builds a clause from any finite sequence of literals. Duplicate
// or tautological literals are permitted; the clause is not normalized, to
// match the simplicity the spec requires of this layer (deduplication is
// left to callers that care, such as resolve in analyze.go).
func NewClause(lits ...Literal) Clause {
	cp := make([]Literal, len(lits))
	copy(cp, lits)
	return Clause{Literals: cp}
}

func (c Clause) String() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// ClauseStatus classifies a clause under a trail. See Evaluate.
type ClauseStatus uint8

const (
	StatusUnresolved ClauseStatus = iota
	StatusSatisfied
	StatusUnsatisfied
	StatusUnit
)

func (s ClauseStatus) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusUnsatisfied:
		return "unsatisfied"
	case StatusUnit:
		return "unit"
	default:
		return "unresolved"
	}
}

// Evaluate classifies c under trail t, counting literals exactly as the
// spec's clause evaluator does: a clause with at least one true literal is
// Satisfied even if it also happens to look unit, and that check runs before
// the Unsatisfied/Unit checks. When the result is Unit, unit is the clause's
// sole unassigned literal; its zero value is meaningless for any other
// status.
func Evaluate(c Clause, t *Trail) (status ClauseStatus, unit Literal) {
	trueCount, falseCount := 0, 0
	var lastUnassigned Literal
	for _, l := range c.Literals {
		switch {
		case l.IsTrueUnder(t):
			trueCount++
		case l.IsFalseUnder(t):
			falseCount++
		default:
			lastUnassigned = l
		}
	}
	n := len(c.Literals)
	switch {
	case trueCount > 0:
		return StatusSatisfied, Literal{}
	case falseCount == n:
		return StatusUnsatisfied, Literal{}
	case falseCount == n-1:
		return StatusUnit, lastUnassigned
	default:
		return StatusUnresolved, Literal{}
	}
}
