package cdcl

// Formula is a conjunction of clauses plus the set of variables appearing
// in them. The variable set is fixed at construction; learned clauses are
// appended to Clauses directly by the solver and must never mention a
// variable outside this set (resolution only ever removes literals).
type Formula struct {
	Clauses   []Clause
	Variables map[Var]struct{}
}

// NewFormula builds a formula from the given clauses, deriving its variable
// set as the union of every literal's variable.
func NewFormula(clauses []Clause) *Formula {
	f := &Formula{
		Clauses:   clauses,
		Variables: make(map[Var]struct{}),
	}
	for _, c := range clauses {
		for _, l := range c.Literals {
			f.Variables[l.V] = struct{}{}
		}
	}
	return f
}

// Learn appends a clause to the database. It never touches Variables: the
// spec requires learned clauses to be built entirely from variables already
// present in the formula.
func (f *Formula) Learn(c Clause) {
	f.Clauses = append(f.Clauses, c)
}
