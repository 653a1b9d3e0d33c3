package entail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impverify/internal/ast"
	"impverify/internal/diag"
	"impverify/internal/funcs"
	"impverify/internal/solver"
)

func TestCheckRejectsNegativeExponent(t *testing.T) {
	x := &ast.Var{Name: "x"}
	p := &ast.BRel{Op: ast.Eq, Left: &ast.ABin{Op: ast.Pow, Left: x, Right: &ast.Num{Value: -1}}, Right: &ast.Num{Value: 0}}
	sess := solver.NewSession(solver.FakeBackend{Resolve: func(string) (string, string, error) {
		t.Fatal("solver should not be invoked for a rejected query")
		return "", "", nil
	}}, funcs.NewTable())

	_, err := Check(p, &ast.BLit{Value: true}, sess)
	assert.Error(t, err)
}

func TestCheckCanonicalizesBeforeDispatch(t *testing.T) {
	var sawScript string
	fake := solver.FakeBackend{Resolve: func(script string) (string, string, error) {
		sawScript = script
		return "unsat", "", nil
	}}
	sess := solver.NewSession(fake, funcs.NewTable())

	x := &ast.Var{Name: "x"}
	y := &ast.Var{Name: "y"}
	// (x + 0) = y canonicalizes to x = y, which should still reach the
	// backend (canonicalization changes shape, not behavior).
	p := &ast.BRel{Op: ast.Eq, Left: &ast.ABin{Op: ast.Add, Left: x, Right: &ast.Num{Value: 0}}, Right: y}
	res, err := Check(p, &ast.BLit{Value: true}, sess)
	require.NoError(t, err)
	assert.Equal(t, solver.Verified, res.Outcome)
	assert.NotEmpty(t, sawScript)
	assert.NotContains(t, sawScript, "(+ v_x 0)")
}

func TestToFailureRefuted(t *testing.T) {
	x := &ast.Var{Name: "x"}
	premise := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 0}}
	conclusion := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 1}}
	res := solver.Result{Outcome: solver.Refuted, Model: map[string]int64{"x": 0}}

	f := ToFailure(premise, conclusion, res, ast.Position{Line: 3})
	assert.Equal(t, diag.EntailmentRefuted, f.Kind)
	assert.Equal(t, map[string]int64{"x": 0}, f.CounterModel)
	assert.Equal(t, 3, f.Pos.Line)
}

func TestToFailureIndeterminate(t *testing.T) {
	b := &ast.BLit{Value: true}
	res := solver.Result{Outcome: solver.Indeterminate}
	f := ToFailure(b, b, res, ast.Position{})
	assert.Equal(t, diag.EntailmentIndeterminate, f.Kind)
	assert.Nil(t, f.CounterModel)
}
