package cdcl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDIMACS parses text in the DIMACS CNF format into clauses of signed
// integers (n > 0 is the positive literal of variable n; n < 0 is its
// negation; 0 terminates a clause). Clause boundaries cross lines.
//
// For convenience, a few non-standard variations are accepted:
//
//   - Comments (lines beginning with 'c') may appear anywhere, not just in
//     the preamble.
//   - The problem line may be missing.
//   - A trailer after a line containing a single '%' is ignored.
//   - A token that isn't a valid signed integer is skipped rather than
//     failing the parse.
func ParseDIMACS(r io.Reader) ([][]int, error) {
	var problem struct {
		vars    int
		clauses int
	}
	var clauses [][]int
	var clause []int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		// Some CNF formats attach extra data in a trailer after a line
		// containing a single %.
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return nil, errors.New("problem line appears after clauses")
			}
			if problem.vars > 0 {
				return nil, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, errors.Errorf("malformed problem line %q", line)
			}
			if fields[0] != "p" {
				return nil, errors.Errorf("problem line starts with unexpected signifier %q", fields[0])
			}
			if fields[1] != "cnf" {
				return nil, errors.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrap(err, "malformed #vars in problem line")
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrap(err, "malformed #clauses in problem line")
			}
			if problem.vars < 0 {
				return nil, errors.Errorf("invalid #vars %d", problem.vars)
			}
			if problem.clauses < 0 {
				return nil, errors.Errorf("invalid #clauses %d", problem.clauses)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				// Tolerant parser: a token that isn't a valid signed
				// integer is dropped rather than failing the whole parse.
				continue
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(clause) > 0 {
		clauses = append(clauses, clause)
	}

	if problem.vars > 0 {
		vars := make(map[int]struct{})
		for _, clause := range clauses {
			for _, v := range clause {
				if v < 0 {
					v = -v
				}
				if v > problem.vars {
					return nil, errors.Errorf("formula contains var %d, but problem line asserts %d vars (only vars in [1, %d] expected)",
						v, problem.vars, problem.vars)
				}
				vars[v] = struct{}{}
			}
		}
		// Allow some vars to be missing.
		if len(vars) > problem.vars {
			return nil, errors.Errorf("problem line specifies %d vars, but there are %d", problem.vars, len(vars))
		}
		if len(clauses) != problem.clauses {
			return nil, errors.Errorf("problem line specifies %d clauses, but there are %d", problem.clauses, len(clauses))
		}
	}
	return clauses, nil
}

// WriteDIMACS renders clauses in the DIMACS CNF format: a problem line
// covering the highest variable mentioned and the clause count, followed by
// one line per clause (space-separated literals terminated by a literal 0;
// the empty clause renders as a bare "0").
func WriteDIMACS(w io.Writer, clauses [][]int) error {
	maxVar := 0
	for _, clause := range clauses {
		for _, v := range clause {
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", maxVar, len(clauses)); err != nil {
		return err
	}
	for _, clause := range clauses {
		if len(clause) == 0 {
			if _, err := fmt.Fprintln(w, "0"); err != nil {
				return err
			}
			continue
		}
		parts := make([]string, len(clause))
		for i, v := range clause {
			parts[i] = strconv.Itoa(v)
		}
		if _, err := fmt.Fprintf(w, "%s 0\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormulaFromInts converts a DIMACS-style clause slice (as returned by
// ParseDIMACS) into a *Formula of this package's Literal/Clause/Formula
// types. It panics if given a zero literal, mirroring the teacher's own
// "zero var passed to Solve" guard.
func FormulaFromInts(problem [][]int) *Formula {
	clauses := make([]Clause, len(problem))
	for i, ints := range problem {
		lits := make([]Literal, len(ints))
		for j, n := range ints {
			if n == 0 {
				panic("cdcl: zero var passed to FormulaFromInts")
			}
			neg := n < 0
			if neg {
				n = -n
			}
			lits[j] = Lit(Var(n), neg)
		}
		clauses[i] = Clause{Literals: lits}
	}
	return NewFormula(clauses)
}

// ParseDIMACSFormula is a convenience wrapper combining ParseDIMACS and
// FormulaFromInts for callers that just want a Formula from a DIMACS
// stream.
func ParseDIMACSFormula(r io.Reader) (*Formula, error) {
	problem, err := ParseDIMACS(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing DIMACS CNF")
	}
	return FormulaFromInts(problem), nil
}
