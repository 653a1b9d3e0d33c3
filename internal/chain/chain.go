// Package chain implements the assertion-chain checker (spec.md §4.2 /
// SPEC_FULL.md §4.2 C4): for one AssertionChain it turns every adjacent
// pair of links into an entailment obligation, accumulating failures
// through internal/diag rather than stopping at the first one. Recursing
// across a whole annotated block is internal/verify's concern (C5), which
// calls Check once per chain it encounters in the walk order spec.md §5
// mandates.
package chain

import (
	"fmt"

	"impverify/internal/ast"
	"impverify/internal/diag"
	"impverify/internal/entail"
	"impverify/internal/solver"
)

// Check discharges every consecutive obligation Q0⊨Q1, …, Qn-1⊨Qn in c,
// in order, never stopping at the first failure (spec.md §4.2). A chain
// of length 1 produces no obligation.
func Check(c *ast.AssertionChain, sess *solver.Session, acc *diag.Accumulator) {
	for i := 0; i+1 < len(c.Links); i++ {
		premise, conclusion := c.Links[i], c.Links[i+1]
		res, err := entail.Check(premise, conclusion, sess)
		if err != nil {
			acc.Add(diag.New(diag.InternalOther, fmt.Sprintf("entailment check failed: %v", err), c.Pos).
				WithEntailment(premise.String(), conclusion.String()).
				Build())
			continue
		}
		if res.Outcome == solver.Verified {
			continue
		}
		acc.Add(entail.ToFailure(premise, conclusion, res, c.Pos))
	}
}
