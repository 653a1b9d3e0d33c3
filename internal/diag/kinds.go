// Package diag implements the error accumulator (spec.md §4 C7 / §7):
// failures are collected rather than propagated, in the deterministic
// order the structural walk visits them (spec.md §5's ordering
// guarantee), and rendered with the teacher's box-drawing diagnostic
// style (internal/report wraps this package for that part).
package diag

import "impverify/internal/ast"

// Kind is one of the five failure kinds of spec.md §7.
type Kind string

const (
	ParseFailure          Kind = "parse-failure"
	StructuralMismatch    Kind = "structural-mismatch"
	EntailmentRefuted     Kind = "entailment-refuted"
	EntailmentIndeterminate Kind = "entailment-indeterminate"
	InternalOther         Kind = "internal-other"
)

// Failure is a single accumulated proof failure (spec.md §7 table).
type Failure struct {
	Kind Kind
	Pos  ast.Position

	// Message is always set: a short human-readable summary.
	Message string

	// Structural mismatch fields.
	Statement string
	Expected  string
	Actual    string

	// Entailment fields.
	Premise     string
	Conclusion  string
	CounterModel map[string]int64 // nil unless Kind == EntailmentRefuted

	Notes []string
}
