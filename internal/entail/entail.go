// Package entail implements the entailment engine (spec.md §4.3): it
// composes internal/canon's conditional canonicalization with
// internal/solver's SMT dispatch into the three-outcome contract
// internal/chain and internal/verify build obligations on top of.
package entail

import (
	"fmt"

	"impverify/internal/ast"
	"impverify/internal/canon"
	"impverify/internal/diag"
	"impverify/internal/solver"
)

// Check discharges premise ⊨ conclusion: canonicalize both sides (skipped
// for both when either contains a recursive call), then hand the pair to
// sess. Negative literal exponents are rejected before
// reaching the solver (SPEC_FULL.md §9.4 Open Question 3: spec.md §9
// leaves their solver behavior unspecified, so this repo refuses them
// outright rather than emitting an ill-defined query).
func Check(premise, conclusion ast.Bexp, sess *solver.Session) (solver.Result, error) {
	if hasNegativeExponent(premise) || hasNegativeExponent(conclusion) {
		return solver.Result{}, fmt.Errorf("entail: negative literal exponent is not supported")
	}

	cp, cc := premise, conclusion
	if !ast.HasRecursiveCall(premise) && !ast.HasRecursiveCall(conclusion) {
		cp = canon.Canonicalize(premise)
		cc = canon.Canonicalize(conclusion)
	}
	return sess.Check(cp, cc)
}

// ToFailure converts a non-Verified Result into the diag.Failure spec.md
// §7's table describes for EntailmentRefuted/EntailmentIndeterminate. It
// panics if called with a Verified result, since callers only reach here
// on the failing path of an obligation check.
func ToFailure(premise, conclusion ast.Bexp, res solver.Result, pos ast.Position) diag.Failure {
	premiseText := premise.String()
	conclusionText := conclusion.String()

	switch res.Outcome {
	case solver.Refuted:
		return diag.New(diag.EntailmentRefuted,
			fmt.Sprintf("%s does not entail %s", premiseText, conclusionText), pos).
			WithEntailment(premiseText, conclusionText).
			WithCounterModel(res.Model).
			Build()
	case solver.Indeterminate:
		return diag.New(diag.EntailmentIndeterminate,
			fmt.Sprintf("solver could not decide whether %s entails %s", premiseText, conclusionText), pos).
			WithEntailment(premiseText, conclusionText).
			Build()
	default:
		panic("entail: ToFailure called with a Verified result")
	}
}

func hasNegativeExponent(b ast.Bexp) bool {
	found := false
	var walkB func(ast.Bexp)
	var walkA func(ast.Aexp)

	walkA = func(a ast.Aexp) {
		if found {
			return
		}
		switch e := a.(type) {
		case *ast.ABin:
			if e.Op == ast.Pow {
				if n, ok := e.Right.(*ast.Num); ok && n.Value < 0 {
					found = true
					return
				}
			}
			walkA(e.Left)
			walkA(e.Right)
		case *ast.Call:
			for _, arg := range e.Args {
				walkA(arg)
			}
		case *ast.AIte:
			walkB(e.Cond)
			walkA(e.Then)
			walkA(e.Else)
		}
	}
	walkB = func(b ast.Bexp) {
		if found {
			return
		}
		switch e := b.(type) {
		case *ast.BRel:
			walkA(e.Left)
			walkA(e.Right)
		case *ast.BBin:
			walkB(e.Left)
			walkB(e.Right)
		case *ast.BNot:
			walkB(e.Expr)
		}
	}
	walkB(b)
	return found
}
