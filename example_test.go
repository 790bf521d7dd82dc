package cdcl_test

import (
	"fmt"

	"github.com/marrowfen/cdcl"
)

func ExampleSolver_Solve() {
	// Problem: (¬x ∨ y) ∧ (¬y ∨ z) ∧ (x ∨ ¬z ∨ y) ∧ y
	formula := cdcl.FormulaFromInts([][]int{
		{-1, 2},
		{-2, 3},
		{1, -3, 2},
		{2},
	})

	solver := cdcl.NewSolver(formula, cdcl.WithSeed(42))
	verdict, assignment := solver.Solve()
	if verdict != cdcl.Satisfied {
		fmt.Println("not satisfiable")
		return
	}
	fmt.Println("satisfiable:", assignment[2])
	// Output: satisfiable: true
}
