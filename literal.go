package cdcl

import "fmt"

// Var is an opaque variable identifier. Integer identifiers keep the hot
// paths (trail lookups, literal hashing) allocation-free; the Tseitin
// transformer mints fresh ones above the highest variable seen in its input.
type Var int32

// Literal is a variable or its negation.
type Literal struct {
	V   Var
	Neg bool
}

// Lit builds the literal for v (negated if neg is true).
func Lit(v Var, neg bool) Literal {
	return Literal{V: v, Neg: neg}
}

// Negate returns the opposite literal for the same variable.
func (l Literal) Negate() Literal {
	return Literal{V: l.V, Neg: !l.Neg}
}

// IsTrueUnder reports whether l is satisfied by the trail's current
// assignment. An unassigned variable is neither true nor false.
func (l Literal) IsTrueUnder(t *Trail) bool {
	a, ok := t.Get(l.V)
	return ok && a.Value != l.Neg
}

// IsFalseUnder reports whether l is falsified by the trail's current
// assignment.
func (l Literal) IsFalseUnder(t *Trail) bool {
	a, ok := t.Get(l.V)
	return ok && a.Value == l.Neg
}

func (l Literal) String() string {
	if l.Neg {
		return fmt.Sprintf("-%d", l.V)
	}
	return fmt.Sprintf("%d", l.V)
}
