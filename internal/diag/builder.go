package diag

import (
	"fmt"

	"impverify/internal/ast"
)

// Builder provides the same fluent construction style as the teacher's
// errors.SemanticErrorBuilder, re-keyed to this spec's five failure kinds.
type Builder struct {
	f Failure
}

func New(kind Kind, message string, pos ast.Position) *Builder {
	return &Builder{f: Failure{Kind: kind, Message: message, Pos: pos}}
}

func (b *Builder) WithStatement(s string) *Builder {
	b.f.Statement = s
	return b
}

func (b *Builder) WithShape(expected, actual string) *Builder {
	b.f.Expected = expected
	b.f.Actual = actual
	return b
}

func (b *Builder) WithEntailment(premise, conclusion string) *Builder {
	b.f.Premise = premise
	b.f.Conclusion = conclusion
	return b
}

func (b *Builder) WithCounterModel(model map[string]int64) *Builder {
	b.f.CounterModel = model
	return b
}

func (b *Builder) WithNote(note string) *Builder {
	b.f.Notes = append(b.f.Notes, note)
	return b
}

func (b *Builder) Build() Failure { return b.f }

// StructuralMismatchf is a convenience constructor for the common case in
// internal/verify: a Hoare rule's required shape was violated.
func StructuralMismatchf(stm string, pos ast.Position, expected, actual string, format string, args ...interface{}) Failure {
	return New(StructuralMismatch, fmt.Sprintf(format, args...), pos).
		WithStatement(stm).
		WithShape(expected, actual).
		Build()
}
