// Package cdcl implements a Conflict-Driven Clause Learning SAT solver: a
// decision/propagation/analysis loop over a formula in conjunctive normal
// form that discovers implied assignments, detects conflicts, derives
// learned clauses by resolution, and backtracks non-chronologically.
//
// The package deliberately omits watched-literal indexing, activity-based
// (VSIDS) variable selection, restarts, clause-database reduction,
// incremental solving, proof emission, and preprocessing. Those are
// production concerns left behind the DecisionHeuristic seam (see
// heuristic.go); this package is a reference implementation of the
// algorithm's core loop, not a competitive solver.
package cdcl

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Verdict is the result of a solve.
type Verdict uint8

const (
	Unsatisfied Verdict = iota
	Satisfied
)

func (v Verdict) String() string {
	if v == Satisfied {
		return "SAT"
	}
	return "UNSAT"
}

// Solver drives the CDCL loop over a single Formula. A Solver is single-use:
// call Solve exactly once. All state is owned exclusively by this instance;
// there is no concurrency support or cancellation, per the spec's
// single-threaded, synchronous resource model.
type Solver struct {
	formula   *Formula
	trail     *Trail
	heuristic DecisionHeuristic
	log       *logrus.Logger

	spent bool

	// heuristicSet records that WithHeuristic supplied the branching policy.
	heuristicSet bool

	numDecisions    int64
	numPropagations int64
}

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithSeed seeds the default random decision heuristic. It has no effect if
// combined with WithHeuristic (the explicit heuristic wins; WithSeed only
// ever replaces the default one).
func WithSeed(seed int64) Option {
	return func(s *Solver) {
		if !s.heuristicSet {
			s.heuristic = NewRandomHeuristic(seed)
		}
	}
}

// WithHeuristic substitutes the branching policy. The default is
// RandomHeuristic seeded from the current time.
func WithHeuristic(h DecisionHeuristic) Option {
	return func(s *Solver) {
		s.heuristic = h
		s.heuristicSet = true
	}
}

// WithLogger overrides the solver's logger entirely.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Solver) {
		s.log = l
	}
}

// WithVerbose sets the solver's current logger to DebugLevel when v is true
// and to WarnLevel when v is false. It is a convenience over WithLogger for callers who don't otherwise care about
// logrus configuration; combining it with WithLogger before WithVerbose in
// the option list lets WithVerbose adjust the caller-supplied logger too.
func WithVerbose(v bool) Option {
	return func(s *Solver) {
		if v {
			s.log.SetLevel(logrus.DebugLevel)
		} else {
			s.log.SetLevel(logrus.WarnLevel)
		}
	}
}

// NewSolver builds a solver for formula. Options are applied in order.
func NewSolver(formula *Formula, opts ...Option) *Solver {
	s := &Solver{
		formula: formula,
		trail:   NewTrail(),
		log:     newDefaultLogger(),
	}
	s.heuristic = NewRandomHeuristic(time.Now().UnixNano())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Logger returns the solver's logger, for callers (such as the CLI) that
// want to adjust its formatter or output destination after construction.
func (s *Solver) Logger() *logrus.Logger {
	return s.log
}

// Stats reports counters accumulated during Solve, purely for diagnostics.
type Stats struct {
	Decisions    int64
	Propagations int64
}

func (s *Solver) Stats() Stats {
	return Stats{Decisions: s.numDecisions, Propagations: s.numPropagations}
}

// Solve runs the CDCL loop to completion: propagate, decide, propagate,
// analyze, backjump, repeat. It panics if called more than once on the same
// Solver (a spent solver is an internal invariant violation, not a
// recoverable error, per the spec's resource model).
//
// On Satisfied, the returned map carries every formula variable's final
// assignment. On Unsatisfied, the map is nil.
func (s *Solver) Solve() (Verdict, map[Var]bool) {
	if s.spent {
		panic("cdcl: Solve called more than once on the same Solver")
	}
	s.spent = true

	if result, _ := s.propagate(); result == PropagationConflict {
		return Unsatisfied, nil
	}

	for s.trail.Len() < len(s.formula.Variables) {
		v, b := s.heuristic.Next(s.trail, s.formula)
		s.trail.DL++
		s.trail.Assign(v, b, nil)
		s.numDecisions++
		s.log.WithFields(loggerFields{
			"var": v, "value": b, "dl": s.trail.DL,
		}).Debug("decision")

		for {
			result, conflict := s.propagate()
			if result == PropagationUnresolved {
				break
			}

			beta, learned := s.analyze(conflict)
			if beta < 0 {
				return Unsatisfied, nil
			}
			s.formula.Learn(learned)
			s.trail.Backtrack(beta)
			s.trail.DL = beta
			s.log.WithField("beta", beta).Debug("backjump")
		}
	}

	assignment := make(map[Var]bool, len(s.formula.Variables))
	for v := range s.formula.Variables {
		a, _ := s.trail.Get(v)
		assignment[v] = a.Value
	}
	return Satisfied, assignment
}
