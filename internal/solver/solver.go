// Package solver implements the solver bridge (spec.md §4 C2): lowering
// assertions to SMT, declaring recursive function symbols, dispatching
// the `P ∧ ¬Q` query, and extracting counter-models (spec.md §4.3/§4.4).
// Each call opens a fresh solver context and drops it before returning
// (spec.md §5): no assertions survive across calls, so there is no
// incremental-solver contamination between queries.
package solver

import (
	"context"
	"time"

	"impverify/internal/ast"
	"impverify/internal/funcs"
)

// Outcome is one of the three results spec.md §4.3 names for an
// entailment query.
type Outcome int

const (
	Verified Outcome = iota
	Refuted
	Indeterminate
)

// Result carries the outcome and, for Refuted, the counter-model
// projected onto the union of P's and Q's free variables.
type Result struct {
	Outcome Outcome
	Model   map[string]int64
}

// Backend runs one isolated SMT-LIB2 script and reports its verdict. A
// Backend owns the process (or equivalent resource) for exactly the
// duration of one Solve call.
type Backend interface {
	Solve(ctx context.Context, script string) (sat string, modelText string, err error)
}

// DefaultTimeout is the fixed per-query wall-clock budget (spec.md §4.3:
// "5-10 seconds").
const DefaultTimeout = 7 * time.Second

// Session ties a Backend to the function table for one verification run
// (spec.md §3: "The SMT context ... instances have the lifetime of one
// entailment check" — Session itself is reused across checks only to
// avoid re-resolving the backend; every Check call still opens its own
// solver context via a fresh Backend.Solve invocation).
type Session struct {
	Backend Backend
	Funcs   *funcs.Table
	Timeout time.Duration
}

func NewSession(backend Backend, table *funcs.Table) *Session {
	return &Session{Backend: backend, Funcs: table, Timeout: DefaultTimeout}
}

// Check discharges P ⊨ Q by asking whether P ∧ ¬Q is unsatisfiable
// (spec.md §4.3). It declares every function in the table as a recursive
// SMT symbol at the start of the query (spec.md §4.4: "Definitions are
// installed into each fresh solver context at the start of every
// entailment query").
func (s *Session) Check(p, q ast.Bexp) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	script, err := lower(p, q, s.Funcs)
	if err != nil {
		return Result{}, err
	}

	sat, modelText, err := s.Backend.Solve(ctx, script)
	if err != nil {
		return Result{}, err
	}

	switch sat {
	case "unsat":
		return Result{Outcome: Verified}, nil
	case "unknown":
		return Result{Outcome: Indeterminate}, nil
	case "sat":
		vars := ast.FreeVarsOf(p)
		for name := range ast.FreeVarsOf(q) {
			vars[name] = struct{}{}
		}
		model, err := parseModel(modelText, vars)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: Refuted, Model: model}, nil
	default:
		return Result{Outcome: Indeterminate}, nil
	}
}
