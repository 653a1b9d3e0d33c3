package verify

import (
	"impverify/internal/ast"
	"impverify/internal/diag"
	"impverify/internal/entail"
	"impverify/internal/solver"
)

// checkWhileTotal enforces spec.md §4.6: the loop's inner invariant must
// be written `(b ∧ P) ∧ (v = t)`, decomposed here with P and b fixed to
// the while's own guard and incoming pre-condition (the same P the
// partial rule uses), leaving only the variant expression v and the
// entry-value witness t to extract. If the invariant does not match this
// shape, total-mode verification fails immediately on this loop (spec.md
// §4.6: "never silently demoted to partial mode") rather than falling
// back to checkWhilePartial.
func (w *walker) checkWhileTotal(s *ast.AxWhile, p, q ast.Bexp) {
	variant, witness, ok := extractVariant(s.Body.InnerPre(), s.Cond, p)
	if !ok {
		w.acc.Add(diag.New(diag.InternalOther,
			"malformed total-mode invariant: expected (guard ∧ invariant) ∧ (variant = witness)", s.Pos).
			WithStatement("while (total mode)").
			WithShape("(guard ∧ P) ∧ (v = t)", s.Body.InnerPre().String()).
			Build())
		return
	}

	wantInnerPost := and(p, &ast.BRel{Op: ast.Lt, Left: variant, Right: witness})
	if !ast.EqualBexp(s.Body.InnerPost(), wantInnerPost) {
		w.acc.Add(diag.StructuralMismatchf("while (total mode)", s.Pos, wantInnerPost.String(), s.Body.InnerPost().String(),
			"total-mode loop body must re-establish the invariant and strictly decrease the variant"))
	}

	wantOuterPost := and(not(s.Cond), p)
	if !ast.EqualBexp(q, wantOuterPost) {
		w.acc.Add(diag.StructuralMismatchf("while (total mode)", s.Pos, wantOuterPost.String(), q.String(),
			"loop post-condition must equal the negated guard conjoined with the pre-condition"))
	}

	nonneg := &ast.BRel{Op: ast.Le, Left: &ast.Num{Value: 0}, Right: variant}
	premise := and(s.Cond, p)
	res, err := entail.Check(premise, nonneg, w.sess)
	if err != nil {
		w.acc.Add(diag.New(diag.InternalOther, "variant non-negativity check failed: "+err.Error(), s.Pos).Build())
		return
	}
	if res.Outcome != solver.Verified {
		w.acc.Add(entail.ToFailure(premise, nonneg, res, s.Pos))
	}

	w.block(s.Body)
}

// extractVariant matches inner against `(cond ∧ p) ∧ (variant = witness)`,
// returning the variant expression and the entry-value witness when the
// first conjunct is syntactically `cond ∧ p` and the second is an
// equality.
func extractVariant(inner, cond, p ast.Bexp) (ast.Aexp, ast.Aexp, bool) {
	outer, ok := inner.(*ast.BBin)
	if !ok || outer.Op != ast.And {
		return nil, nil, false
	}
	if !ast.EqualBexp(outer.Left, and(cond, p)) {
		return nil, nil, false
	}
	eq, ok := outer.Right.(*ast.BRel)
	if !ok || eq.Op != ast.Eq {
		return nil, nil, false
	}
	return eq.Left, eq.Right, true
}
