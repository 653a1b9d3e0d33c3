// Package verify implements the structural verifier (spec.md §4.1 C5)
// and its total-correctness extension (spec.md §4.6 C6): a syntax-
// directed walk over an AxBlock that checks each Hoare rule's exact
// required shape and delegates every remaining entailment obligation to
// internal/chain.
package verify

import (
	"impverify/internal/ast"
	"impverify/internal/chain"
	"impverify/internal/diag"
	"impverify/internal/solver"
)

// Mode selects partial or total correctness (spec.md §4.6).
type Mode int

const (
	Partial Mode = iota
	Total
)

// Verify walks block once, checking both the structural Hoare-rule
// shapes and the entailment obligations every chain carries, and returns
// the accumulated failures. Success is acc.Ok().
func Verify(block *ast.AxBlock, sess *solver.Session, mode Mode) *diag.Accumulator {
	acc := &diag.Accumulator{}
	w := &walker{sess: sess, mode: mode, acc: acc}
	w.block(block)
	return acc
}

type walker struct {
	sess *solver.Session
	mode Mode
	acc  *diag.Accumulator
}

// block implements spec.md §4.1's traversal: the running pre-assertion P
// starts as the leading chain's last element; each item is checked
// against (P, first-of-chain), then P advances to last-of-chain.
func (w *walker) block(b *ast.AxBlock) {
	chain.Check(b.Pre, w.sess, w.acc)
	p := b.Pre.Post()
	for _, item := range b.Items {
		q := item.Chain.Pre()
		w.stm(item.Stm, p, q)
		chain.Check(item.Chain, w.sess, w.acc)
		p = item.Chain.Post()
	}
}

func (w *walker) stm(s ast.AxStm, p, q ast.Bexp) {
	switch stm := s.(type) {
	case *ast.AxSkip:
		w.checkSkip(stm, p, q)
	case *ast.AxAssign:
		w.checkAssign(stm, p, q)
	case *ast.AxIf:
		w.checkIf(stm, p, q)
	case *ast.AxWhile:
		if w.mode == Total {
			w.checkWhileTotal(stm, p, q)
		} else {
			w.checkWhilePartial(stm, p, q)
		}
	}
}

// checkSkip enforces P ≡ Q (spec.md §4.1 table).
func (w *walker) checkSkip(s *ast.AxSkip, p, q ast.Bexp) {
	if ast.EqualBexp(p, q) {
		return
	}
	w.acc.Add(diag.StructuralMismatchf("skip", s.Pos, p.String(), q.String(),
		"skip requires the post-condition to equal the pre-condition"))
}

// checkAssign enforces P ≡ Q[x ↦ a] (spec.md §4.1 table).
func (w *walker) checkAssign(s *ast.AxAssign, p, q ast.Bexp) {
	expected := ast.SubstBexp(q, s.Var, s.Expr)
	if ast.EqualBexp(p, expected) {
		return
	}
	w.acc.Add(diag.StructuralMismatchf("assign", s.Pos, expected.String(), p.String(),
		"assignment rule requires the pre-condition to equal the post-condition with %s substituted by %s", s.Var, s.Expr.String()))
}

// checkIf enforces the four shape constraints of spec.md §4.1's if row,
// then recurses into the then-branch before the else-branch (spec.md §5).
func (w *walker) checkIf(s *ast.AxIf, p, q ast.Bexp) {
	wantThenPre := and(s.Cond, p)
	wantElsePre := and(not(s.Cond), p)

	if !ast.EqualBexp(s.Then.InnerPre(), wantThenPre) {
		w.acc.Add(diag.StructuralMismatchf("if (then branch)", s.Pos, wantThenPre.String(), s.Then.InnerPre().String(),
			"then-branch pre-condition must equal the guard conjoined with the pre-condition"))
	}
	if !ast.EqualBexp(s.Else.InnerPre(), wantElsePre) {
		w.acc.Add(diag.StructuralMismatchf("if (else branch)", s.Pos, wantElsePre.String(), s.Else.InnerPre().String(),
			"else-branch pre-condition must equal the negated guard conjoined with the pre-condition"))
	}
	if !ast.EqualBexp(s.Then.InnerPost(), q) {
		w.acc.Add(diag.StructuralMismatchf("if (then branch)", s.Pos, q.String(), s.Then.InnerPost().String(),
			"then-branch post-condition must equal the if statement's post-condition"))
	}
	if !ast.EqualBexp(s.Else.InnerPost(), q) {
		w.acc.Add(diag.StructuralMismatchf("if (else branch)", s.Pos, q.String(), s.Else.InnerPost().String(),
			"else-branch post-condition must equal the if statement's post-condition"))
	}

	w.block(s.Then)
	w.block(s.Else)
}

// checkWhilePartial enforces spec.md §4.1's while row.
func (w *walker) checkWhilePartial(s *ast.AxWhile, p, q ast.Bexp) {
	wantInnerPre := and(s.Cond, p)
	wantOuterPost := and(not(s.Cond), p)

	if !ast.EqualBexp(s.Body.InnerPre(), wantInnerPre) {
		w.acc.Add(diag.StructuralMismatchf("while", s.Pos, wantInnerPre.String(), s.Body.InnerPre().String(),
			"loop body pre-condition must equal the guard conjoined with the pre-condition"))
	}
	if !ast.EqualBexp(s.Body.InnerPost(), p) {
		w.acc.Add(diag.StructuralMismatchf("while", s.Pos, p.String(), s.Body.InnerPost().String(),
			"loop body post-condition must re-establish the pre-condition"))
	}
	if !ast.EqualBexp(q, wantOuterPost) {
		w.acc.Add(diag.StructuralMismatchf("while", s.Pos, wantOuterPost.String(), q.String(),
			"loop post-condition must equal the negated guard conjoined with the pre-condition"))
	}

	w.block(s.Body)
}

func and(left, right ast.Bexp) ast.Bexp { return &ast.BBin{Op: ast.And, Left: left, Right: right} }
func not(b ast.Bexp) ast.Bexp           { return &ast.BNot{Expr: b} }
