package cdcl

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

type fixtureTest struct {
	name    string
	problem [][]int
	sat     bool
}

func loadFixtures(tb testing.TB) []fixtureTest {
	filenames, err := filepath.Glob("testdata/*.cnf")
	if err != nil {
		tb.Fatal(err)
	}
	var tests []fixtureTest
	for _, filename := range filenames {
		f, err := os.Open(filename)
		if err != nil {
			tb.Fatal(err)
		}
		problem, err := ParseDIMACS(f)
		f.Close()
		if err != nil {
			tb.Fatalf("bad fixture %s: %s", filename, err)
		}
		name := filepath.Base(filename)
		switch {
		case strings.HasSuffix(filename, ".sat.cnf"):
			tests = append(tests, fixtureTest{name, problem, true})
		case strings.HasSuffix(filename, ".unsat.cnf"):
			tests = append(tests, fixtureTest{name, problem, false})
		default:
			tb.Fatalf("bad testdata CNF filename: %q", filename)
		}
	}
	return tests
}

func TestFixtures(t *testing.T) {
	for _, tt := range loadFixtures(t) {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 10; seed++ {
				formula := FormulaFromInts(tt.problem)
				verdict, assignment := NewSolver(formula, WithSeed(seed)).Solve()
				if tt.sat {
					if verdict != Satisfied {
						t.Fatalf("seed=%d: got %v, want Satisfied", seed, verdict)
					}
					if !solutionValid(tt.problem, assignment) {
						t.Fatalf("seed=%d: assignment %# v does not satisfy %v", seed, pretty.Formatter(assignment), tt.problem)
					}
				} else {
					if verdict != Unsatisfied {
						t.Fatalf("seed=%d: got %v, want Unsatisfied", seed, verdict)
					}
				}
			}
		})
	}
}

func solutionValid(problem [][]int, assignment map[Var]bool) bool {
clauseLoop:
	for _, clause := range problem {
		for _, lit := range clause {
			v := Var(lit)
			neg := false
			if lit < 0 {
				v = Var(-lit)
				neg = true
			}
			if assignment[v] != neg {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}

// bruteForceSAT enumerates all 2^len(vars) assignments and reports whether
// any satisfies every clause. It exists purely as a reference oracle for
// TestRandomized, independent of the CDCL machinery it is checking.
func bruteForceSAT(problem [][]int, vars []int) bool {
	n := len(vars)
	for mask := 0; mask < (1 << n); mask++ {
		assignment := make(map[int]bool, n)
		for i, v := range vars {
			assignment[v] = mask&(1<<i) != 0
		}
	clauseLoop:
		for _, clause := range problem {
			for _, lit := range clause {
				v := lit
				neg := false
				if lit < 0 {
					v = -lit
					neg = true
				}
				if assignment[v] != neg {
					continue clauseLoop
				}
			}
			return false
		}
	}
	return true
}

func TestRandomized(t *testing.T) {
	for _, tt := range []struct {
		numVars    int
		numClauses int
		numSeeds   int
	}{
		{2, 2, 10},
		{3, 10, 50},
		{5, 10, 50},
		{8, 30, 20},
	} {
		name := fmt.Sprintf("vars=%d,clauses=%d", tt.numVars, tt.numClauses)
		t.Run(name, func(t *testing.T) {
			for seed := 0; seed < tt.numSeeds; seed++ {
				problem := makeRandomSat(int64(seed), tt.numVars, tt.numClauses)

				vars := make([]int, 0, tt.numVars)
				seen := make(map[int]struct{})
				for _, clause := range problem {
					for _, lit := range clause {
						v := lit
						if v < 0 {
							v = -v
						}
						if _, ok := seen[v]; !ok {
							seen[v] = struct{}{}
							vars = append(vars, v)
						}
					}
				}
				wantSAT := bruteForceSAT(problem, vars)

				formula := FormulaFromInts(problem)
				verdict, assignment := NewSolver(formula, WithSeed(int64(seed)+1000)).Solve()

				gotSAT := verdict == Satisfied
				if gotSAT != wantSAT {
					t.Fatalf("[seed=%d] solver says %v, brute force says sat=%v\nproblem: %v", seed, verdict, wantSAT, problem)
				}
				if gotSAT && !solutionValid(problem, assignment) {
					t.Fatalf("[seed=%d] got incorrect solution %v for problem %v", seed, assignment, problem)
				}
			}
		})
	}
}

func makeRandomSat(seed int64, numVars, numClauses int) [][]int {
	rng := rand.New(rand.NewSource(seed))
	assignment := make([]bool, numVars)
	for v := range assignment {
		if rng.Intn(2) == 1 {
			assignment[v] = true
		}
	}
	vars := make([]int, numVars)
	for v := range vars {
		vars[v] = v
	}
	problem := make([][]int, numClauses)
	for i := range problem {
		rng.Shuffle(len(vars), func(i, j int) {
			vars[i], vars[j] = vars[j], vars[i]
		})
		problem[i] = make([]int, rng.Intn(numVars)+1)
		fixed := rng.Intn(len(problem[i]))
		for j := range problem[i] {
			v := vars[j] + 1
			if j == fixed {
				if !assignment[v-1] {
					v = -v
				}
			} else if rng.Intn(2) == 1 {
				v = -v
			}
			problem[i][j] = v
		}
	}
	return problem
}

func TestBoundaryEmptyFormula(t *testing.T) {
	formula := NewFormula(nil)
	verdict, assignment := NewSolver(formula, WithSeed(1)).Solve()
	if verdict != Satisfied {
		t.Fatalf("got %v, want Satisfied", verdict)
	}
	if len(assignment) != 0 {
		t.Fatalf("got non-empty assignment %v for the empty formula", assignment)
	}
}

func TestBoundaryEmptyClause(t *testing.T) {
	formula := NewFormula([]Clause{{}})
	verdict, _ := NewSolver(formula, WithSeed(1)).Solve()
	if verdict != Unsatisfied {
		t.Fatalf("got %v, want Unsatisfied", verdict)
	}
}

func TestBoundaryContradictoryUnits(t *testing.T) {
	formula := NewFormula([]Clause{
		NewClause(Lit(1, false)),
		NewClause(Lit(1, true)),
	})
	verdict, _ := NewSolver(formula, WithSeed(1)).Solve()
	if verdict != Unsatisfied {
		t.Fatalf("got %v, want Unsatisfied", verdict)
	}
}

func TestSolveTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Solve call")
		}
	}()
	formula := NewFormula([]Clause{NewClause(Lit(1, false))})
	s := NewSolver(formula, WithSeed(1))
	s.Solve()
	s.Solve()
}

func TestResolveDropsPivotBothPolarities(t *testing.T) {
	a := NewClause(Lit(1, false), Lit(2, false))
	b := NewClause(Lit(1, true), Lit(3, false))
	got := resolve(a, b, 1)
	want := map[Literal]bool{Lit(2, false): true, Lit(3, false): true}
	if len(got.Literals) != len(want) {
		t.Fatalf("resolve(%v, %v, 1) = %v, want literals %v", a, b, got, want)
	}
	for _, l := range got.Literals {
		if !want[l] {
			t.Fatalf("resolve(%v, %v, 1) contains unexpected literal %v", a, b, l)
		}
	}
}

func TestResolveDegenerateSelfResolution(t *testing.T) {
	a := NewClause(Lit(1, false), Lit(2, false))
	got := resolve(a, a, 1)
	for _, l := range got.Literals {
		if l.V == 1 {
			t.Fatalf("resolve(A, A, 1) retained pivot variable: %v", got)
		}
	}
}

func TestPropagationFixpointIsIdempotent(t *testing.T) {
	formula := NewFormula([]Clause{
		NewClause(Lit(1, false)),
		NewClause(Lit(1, true), Lit(2, false)),
	})
	s := NewSolver(formula, WithSeed(1))
	result1, _ := s.propagate()
	if result1 != PropagationUnresolved {
		t.Fatalf("first propagate: got %v, want Unresolved", result1)
	}
	lenAfterFirst := s.trail.Len()
	result2, _ := s.propagate()
	if result2 != PropagationUnresolved {
		t.Fatalf("second propagate: got %v, want Unresolved", result2)
	}
	if s.trail.Len() != lenAfterFirst {
		t.Fatalf("second propagate changed trail size: %d -> %d", lenAfterFirst, s.trail.Len())
	}
}

func TestTrailBacktrackRemovesHigherLevels(t *testing.T) {
	tr := NewTrail()
	tr.DL = 0
	tr.Assign(1, true, nil)
	tr.DL = 1
	tr.Assign(2, true, nil)
	tr.DL = 2
	tr.Assign(3, true, nil)

	tr.Backtrack(1)

	if _, ok := tr.Get(1); !ok {
		t.Fatal("level-0 assignment was removed by backtrack(1)")
	}
	if _, ok := tr.Get(2); !ok {
		t.Fatal("level-1 assignment was removed by backtrack(1)")
	}
	if _, ok := tr.Get(3); ok {
		t.Fatal("level-2 assignment survived backtrack(1)")
	}
}

// buildAnalyzeFixture assembles a two-decision-level trail by hand (decision
// p at DL1; decision q and propagated r, s at DL2, with s's antecedent
// reaching back to p) and a conflict clause over the two DL2 propagations.
// Driving analyze directly against a hand-built trail, rather than through a
// full Solve, makes it possible to inspect the learned clause before and
// after the backjump that Solve would otherwise perform immediately.
func buildAnalyzeFixture() (*Solver, Clause) {
	s := NewSolver(NewFormula(nil), WithSeed(1))
	tr := NewTrail()

	tr.DL = 1
	tr.Assign(10, true, nil) // p: decision at DL1

	tr.DL = 2
	tr.Assign(11, true, nil) // q: decision at DL2

	r1 := NewClause(Lit(11, true), Lit(12, false)) // (-q v r)
	tr.Assign(12, true, &r1)                       // r: forced by r1 at DL2

	r2 := NewClause(Lit(10, true), Lit(13, false)) // (-p v s)
	tr.Assign(13, true, &r2)                       // s: forced by r2 at DL2

	s.trail = tr

	conflict := NewClause(Lit(13, true), Lit(12, true)) // (-s v -r); both s and r are true
	return s, conflict
}

func TestAnalyzeLearnedClauseHasSingleCurrentLevelLiteral(t *testing.T) {
	s, conflict := buildAnalyzeFixture()
	conflictLevel := s.trail.DL

	_, learned := s.analyze(conflict)

	atConflictLevel := 0
	for _, l := range learned.Literals {
		a, _ := s.trail.Get(l.V)
		if a.DL == conflictLevel {
			atConflictLevel++
		}
	}
	if atConflictLevel != 1 {
		t.Fatalf("learned clause %v has %d literals at the conflict's decision level, want exactly 1", learned, atConflictLevel)
	}
}

func TestAnalyzeLearnedClauseIsUnitAfterBackjump(t *testing.T) {
	s, conflict := buildAnalyzeFixture()

	beta, learned := s.analyze(conflict)
	s.trail.Backtrack(beta)
	s.trail.DL = beta

	status, _ := Evaluate(learned, s.trail)
	if status != StatusUnit {
		t.Fatalf("learned clause %v classified as %v after backjump to %d, want Unit", learned, status, beta)
	}
}

func TestEvaluateSatisfiedTakesPriorityOverUnit(t *testing.T) {
	tr := NewTrail()
	tr.Assign(1, true, nil)
	c := NewClause(Lit(1, false))
	status, _ := Evaluate(c, tr)
	if status != StatusSatisfied {
		t.Fatalf("got %v, want StatusSatisfied for a 1-literal satisfied clause", status)
	}
}
