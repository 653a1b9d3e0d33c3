package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impverify/internal/ast"
	"impverify/internal/diag"
	"impverify/internal/funcs"
	"impverify/internal/solver"
)

func alwaysUnsat() *solver.Session {
	return solver.NewSession(solver.FakeBackend{Resolve: func(string) (string, string, error) {
		return "unsat", "", nil
	}}, funcs.NewTable())
}

// Scenario A (spec.md §8): { x = 5 } ⊨ { x + 1 = 6 } x := x + 1 { x = 6 }.
// The explicit consequence step bridges the literal assertion to the
// exact shape the assignment rule demands.
func TestAssignmentRuleSuccess(t *testing.T) {
	x := &ast.Var{Name: "x"}
	xPlus1 := &ast.ABin{Op: ast.Add, Left: x, Right: &ast.Num{Value: 1}}
	five := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 5}}
	xPlus1Eq6 := &ast.BRel{Op: ast.Eq, Left: xPlus1, Right: &ast.Num{Value: 6}}
	six := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 6}}

	block := &ast.AxBlock{
		Pre: &ast.AssertionChain{Links: []ast.Bexp{five, xPlus1Eq6}},
		Items: []ast.AxItem{
			{Stm: &ast.AxAssign{Var: "x", Expr: xPlus1}, Chain: &ast.AssertionChain{Links: []ast.Bexp{six}}},
		},
	}

	acc := Verify(block, alwaysUnsat(), Partial)
	assert.True(t, acc.Ok(), "%+v", acc.Failures())
}

func TestAssignmentRuleMismatch(t *testing.T) {
	x := &ast.Var{Name: "x"}
	five := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 5}}
	six := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 6}}

	block := &ast.AxBlock{
		Pre: &ast.AssertionChain{Links: []ast.Bexp{five}},
		Items: []ast.AxItem{
			{Stm: &ast.AxAssign{Var: "x", Expr: &ast.ABin{Op: ast.Add, Left: x, Right: &ast.Num{Value: 1}}}, Chain: &ast.AssertionChain{Links: []ast.Bexp{six}}},
		},
	}

	acc := Verify(block, alwaysUnsat(), Partial)
	require.False(t, acc.Ok())
	assert.Equal(t, diag.StructuralMismatch, acc.Failures()[0].Kind)
}

func TestSkipRuleRequiresEqualAssertions(t *testing.T) {
	x := &ast.Var{Name: "x"}
	p := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 0}}
	q := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 1}}

	block := &ast.AxBlock{
		Pre:   &ast.AssertionChain{Links: []ast.Bexp{p}},
		Items: []ast.AxItem{{Stm: &ast.AxSkip{}, Chain: &ast.AssertionChain{Links: []ast.Bexp{q}}}},
	}

	acc := Verify(block, alwaysUnsat(), Partial)
	require.False(t, acc.Ok())
	assert.Equal(t, diag.StructuralMismatch, acc.Failures()[0].Kind)
}

// A minimal if/then/else satisfying spec.md §4.1's if row exactly.
func TestIfRuleSuccess(t *testing.T) {
	cond := &ast.BLit{Value: true}
	p := &ast.BLit{Value: true}
	q := &ast.BLit{Value: true}
	thenPre := and(cond, p)
	elsePre := and(not(cond), p)

	ifStm := &ast.AxIf{
		Cond: cond,
		Then: &ast.AxBlock{Pre: &ast.AssertionChain{Links: []ast.Bexp{thenPre, q}}},
		Else: &ast.AxBlock{Pre: &ast.AssertionChain{Links: []ast.Bexp{elsePre, q}}},
	}
	block := &ast.AxBlock{
		Pre:   &ast.AssertionChain{Links: []ast.Bexp{p}},
		Items: []ast.AxItem{{Stm: ifStm, Chain: &ast.AssertionChain{Links: []ast.Bexp{q}}}},
	}

	acc := Verify(block, alwaysUnsat(), Partial)
	assert.True(t, acc.Ok(), "%+v", acc.Failures())
}

// A minimal while loop satisfying spec.md §4.1's while row exactly.
func whilePartialBlock(cond, p, q ast.Bexp) *ast.AxBlock {
	innerPre := and(cond, p)
	whileStm := &ast.AxWhile{
		Cond: cond,
		Body: &ast.AxBlock{Pre: &ast.AssertionChain{Links: []ast.Bexp{innerPre, p}}},
	}
	return &ast.AxBlock{
		Pre:   &ast.AssertionChain{Links: []ast.Bexp{p}},
		Items: []ast.AxItem{{Stm: whileStm, Chain: &ast.AssertionChain{Links: []ast.Bexp{q}}}},
	}
}

func TestWhilePartialSuccess(t *testing.T) {
	cond := &ast.BLit{Value: true}
	p := &ast.BLit{Value: true}
	q := and(not(cond), p)

	block := whilePartialBlock(cond, p, q)
	acc := Verify(block, alwaysUnsat(), Partial)
	assert.True(t, acc.Ok(), "%+v", acc.Failures())
}

// Total mode on a loop whose invariant was never rewritten to the
// (guard∧P)∧(v=t) shape must fail immediately, not fall back to partial.
func TestWhileTotalRejectsMalformedInvariant(t *testing.T) {
	cond := &ast.BLit{Value: true}
	p := &ast.BLit{Value: true}
	q := and(not(cond), p)

	block := whilePartialBlock(cond, p, q)
	acc := Verify(block, alwaysUnsat(), Total)
	require.False(t, acc.Ok())
	assert.Equal(t, diag.InternalOther, acc.Failures()[0].Kind)
}

// Scenario D shape: a well-formed total invariant whose variant
// non-negativity side-condition the solver refutes must fail total mode
// even though the same loop's partial shape is fine (testable property 6).
func TestWhileTotalFailsWhenVariantSideConditionRefuted(t *testing.T) {
	cond := &ast.BLit{Value: true}
	p := &ast.BLit{Value: true}
	v := &ast.Var{Name: "v"}
	tVar := &ast.Var{Name: "t"}

	innerPre := and(and(cond, p), &ast.BRel{Op: ast.Eq, Left: v, Right: tVar})
	innerPost := and(p, &ast.BRel{Op: ast.Lt, Left: v, Right: tVar})
	whileStm := &ast.AxWhile{
		Cond: cond,
		Body: &ast.AxBlock{Pre: &ast.AssertionChain{Links: []ast.Bexp{innerPre, innerPost}}},
	}
	q := and(not(cond), p)
	block := &ast.AxBlock{
		Pre:   &ast.AssertionChain{Links: []ast.Bexp{p}},
		Items: []ast.AxItem{{Stm: whileStm, Chain: &ast.AssertionChain{Links: []ast.Bexp{q}}}},
	}

	refuting := solver.NewSession(solver.FakeBackend{Resolve: func(string) (string, string, error) {
		return "sat", "(\n)", nil
	}}, funcs.NewTable())

	acc := Verify(block, refuting, Total)
	require.False(t, acc.Ok())
	assert.Equal(t, diag.EntailmentRefuted, acc.Failures()[0].Kind)
}

// Scenario E: a direct refutation surfaces through the chain, not the
// structural checker.
func TestCounterExampleSurfacesThroughChain(t *testing.T) {
	x := &ast.Var{Name: "x"}
	p := &ast.BRel{Op: ast.Gt, Left: x, Right: &ast.Num{Value: 0}}
	q := &ast.BRel{Op: ast.Gt, Left: x, Right: &ast.Num{Value: 10}}
	block := &ast.AxBlock{Pre: &ast.AssertionChain{Links: []ast.Bexp{p, q}}}

	refuting := solver.NewSession(solver.FakeBackend{Resolve: func(string) (string, string, error) {
		return "sat", "(\n  (define-fun v_x () Int 1)\n)", nil
	}}, funcs.NewTable())

	acc := Verify(block, refuting, Partial)
	require.False(t, acc.Ok())
	f := acc.Failures()[0]
	assert.Equal(t, diag.EntailmentRefuted, f.Kind)
	assert.Equal(t, int64(1), f.CounterModel["x"])
}
