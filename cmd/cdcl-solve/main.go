// Command cdcl-solve reads a DIMACS CNF file and reports whether it is
// satisfiable, printing a satisfying assignment when one exists.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marrowfen/cdcl"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		seed    int64
	)

	cmd := &cobra.Command{
		Use:           "cdcl-solve [input.cnf]",
		Short:         "Decide satisfiability of a DIMACS CNF formula using a CDCL solver.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], verbose, seed)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging and print solver stats on exit")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed the branching heuristic for reproducible runs")
	return cmd
}

func run(path string, verbose bool, seed int64) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening input file")
	}
	defer f.Close()

	formula, err := cdcl.ParseDIMACSFormula(f)
	if err != nil {
		return errors.Wrap(err, "reading DIMACS CNF")
	}

	solver := cdcl.NewSolver(formula, cdcl.WithSeed(seed), cdcl.WithVerbose(verbose))
	if verbose {
		solver.Logger().SetFormatter(&logrus.TextFormatter{FullTimestamp: false})
	}

	verdict, assignment := solver.Solve()

	if verbose {
		stats := solver.Stats()
		fmt.Fprintf(os.Stderr, "decisions:    %d\n", stats.Decisions)
		fmt.Fprintf(os.Stderr, "propagations: %d\n", stats.Propagations)
	}

	if verdict == cdcl.Unsatisfied {
		fmt.Println("UNSAT")
		return nil
	}

	fmt.Println("SAT")
	vars := make([]cdcl.Var, 0, len(assignment))
	for v := range assignment {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	for _, v := range vars {
		fmt.Printf("%d: %t\n", v, assignment[v])
	}
	return nil
}
