package tseitin

import "github.com/marrowfen/cdcl"

// Encoder performs Tseitin encoding of a parsed expression into a
// *cdcl.Formula. Subexpression memoization is keyed by the subexpression's
// canonical printed form (Expr.String()), so two syntactically identical
// subexpressions share an auxiliary variable, matching the sharing
// behavior of the original implementation this package's approach is
// grounded on — but operating on normalized tree structure rather than
// re-parsing a string on every recursive step.
type Encoder struct {
	names   map[string]cdcl.Var // source variable name -> id
	order   []string
	nextAux cdcl.Var
	memo    map[string]cdcl.Var
	clauses []cdcl.Clause
}

// NewEncoder builds an encoder for root, reserving one variable id per
// distinct source variable name before any auxiliary is minted, so source
// and auxiliary variables never collide.
func NewEncoder(root Expr) *Encoder {
	e := &Encoder{
		names: make(map[string]cdcl.Var),
		memo:  make(map[string]cdcl.Var),
	}
	collectNames(root, e.names, &e.order)
	e.nextAux = cdcl.Var(len(e.order) + 1)
	return e
}

func collectNames(expr Expr, names map[string]cdcl.Var, order *[]string) {
	switch x := expr.(type) {
	case VarNode:
		if _, ok := names[x.Name]; !ok {
			names[x.Name] = cdcl.Var(len(names) + 1)
			*order = append(*order, x.Name)
		}
	case NotNode:
		collectNames(x.X, names, order)
	case AndNode:
		collectNames(x.L, names, order)
		collectNames(x.R, names, order)
	case OrNode:
		collectNames(x.L, names, order)
		collectNames(x.R, names, order)
	}
}

// VarName returns the source variable name assigned to id v, if any. This
// lets a caller translate a solved assignment (keyed by cdcl.Var) back to
// the names it started with.
func (e *Encoder) VarName(v cdcl.Var) (string, bool) {
	for _, name := range e.order {
		if e.names[name] == v {
			return name, true
		}
	}
	return "", false
}

func (e *Encoder) newAux() cdcl.Var {
	v := e.nextAux
	e.nextAux++
	return v
}

// Encode walks root bottom-up, emitting definitional clauses for every
// distinct subexpression, and returns the resulting formula with a unit
// clause asserting the root's auxiliary variable.
func (e *Encoder) Encode(root Expr) *cdcl.Formula {
	rootVar := e.encode(root)
	e.clauses = append(e.clauses, cdcl.NewClause(cdcl.Lit(rootVar, false)))
	return cdcl.NewFormula(e.clauses)
}

func (e *Encoder) encode(expr Expr) cdcl.Var {
	key := expr.String()
	if v, ok := e.memo[key]; ok {
		return v
	}

	var v cdcl.Var
	switch x := expr.(type) {
	case VarNode:
		src := e.names[x.Name]
		v = e.newAux()
		// t <-> src
		e.clauses = append(e.clauses,
			cdcl.NewClause(cdcl.Lit(v, true), cdcl.Lit(src, false)),
			cdcl.NewClause(cdcl.Lit(v, false), cdcl.Lit(src, true)),
		)
	case NotNode:
		inner := e.encode(x.X)
		v = e.newAux()
		// t <-> ¬inner
		e.clauses = append(e.clauses,
			cdcl.NewClause(cdcl.Lit(v, true), cdcl.Lit(inner, true)),
			cdcl.NewClause(cdcl.Lit(v, false), cdcl.Lit(inner, false)),
		)
	case AndNode:
		l := e.encode(x.L)
		r := e.encode(x.R)
		v = e.newAux()
		// t <-> l ∧ r
		e.clauses = append(e.clauses,
			cdcl.NewClause(cdcl.Lit(v, true), cdcl.Lit(l, false)),
			cdcl.NewClause(cdcl.Lit(v, true), cdcl.Lit(r, false)),
			cdcl.NewClause(cdcl.Lit(v, false), cdcl.Lit(l, true), cdcl.Lit(r, true)),
		)
	case OrNode:
		l := e.encode(x.L)
		r := e.encode(x.R)
		v = e.newAux()
		// t <-> l ∨ r
		e.clauses = append(e.clauses,
			cdcl.NewClause(cdcl.Lit(v, true), cdcl.Lit(l, false), cdcl.Lit(r, false)),
			cdcl.NewClause(cdcl.Lit(v, false), cdcl.Lit(l, true)),
			cdcl.NewClause(cdcl.Lit(v, false), cdcl.Lit(r, true)),
		)
	default:
		panic("tseitin: unknown expression node type")
	}

	e.memo[key] = v
	return v
}
