// Package tseitin converts an arbitrary propositional expression into an
// equisatisfiable CNF formula by Tseitin encoding: each distinct
// subexpression gets a fresh auxiliary variable related to its operands by
// definitional clauses, and a unit clause over the root auxiliary forces
// the whole expression true.
//
// This is a collaborator, not part of the CDCL core: the solver package
// never imports it, it only ever produces a *cdcl.Formula for the solver to
// consume.
package tseitin

import "fmt"

// Expr is a node in a parsed propositional expression tree.
type Expr interface {
	// String returns a canonical, fully-parenthesized rendering used both
	// for debugging and as the memoization key during encoding: two
	// syntactically distinct inputs that parse to the same tree (e.g.
	// "a&b" and "(a) & (b)") render identically and therefore share an
	// auxiliary variable.
	String() string
	exprNode()
}

// VarNode references a named propositional variable.
type VarNode struct {
	Name string
}

func (VarNode) exprNode() {}
func (v VarNode) String() string {
	return v.Name
}

// NotNode negates its operand.
type NotNode struct {
	X Expr
}

func (NotNode) exprNode() {}
func (n NotNode) String() string {
	return fmt.Sprintf("¬%s", n.X.String())
}

// AndNode conjoins two operands.
type AndNode struct {
	L, R Expr
}

func (AndNode) exprNode() {}
func (n AndNode) String() string {
	return fmt.Sprintf("(%s∧%s)", n.L.String(), n.R.String())
}

// OrNode disjoins two operands.
type OrNode struct {
	L, R Expr
}

func (OrNode) exprNode() {}
func (n OrNode) String() string {
	return fmt.Sprintf("(%s∨%s)", n.L.String(), n.R.String())
}
