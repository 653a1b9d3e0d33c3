package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impverify/internal/ast"
	"impverify/internal/funcs"
)

func TestLowerDeclaresVarsAndFuncs(t *testing.T) {
	x := &ast.Var{Name: "x"}
	p := &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 0}}
	q := &ast.BRel{Op: ast.Eq, Left: &ast.Call{Name: "factorial", Args: []ast.Aexp{x}}, Right: &ast.Num{Value: 1}}

	script, err := lower(p, q, funcs.NewTable())
	require.NoError(t, err)

	assert.Contains(t, script, "declare-const v_x Int")
	assert.Contains(t, script, "define-funs-rec")
	assert.Contains(t, script, "v_factorial")
	assert.Contains(t, script, "(check-sat)")
}

func TestLowerPowUsesIpowHelper(t *testing.T) {
	x := &ast.Var{Name: "x"}
	p := &ast.BRel{Op: ast.Eq, Left: &ast.ABin{Op: ast.Pow, Left: x, Right: &ast.Num{Value: 2}}, Right: &ast.Num{Value: 4}}
	script, err := lower(p, &ast.BLit{Value: true}, funcs.NewTable())
	require.NoError(t, err)
	assert.Contains(t, script, "ipow")
}

func TestCheckVerifiedOnUnsat(t *testing.T) {
	fake := FakeBackend{Resolve: func(script string) (string, string, error) {
		return "unsat", "", nil
	}}
	sess := NewSession(fake, funcs.NewTable())

	x := &ast.Var{Name: "x"}
	res, err := sess.Check(&ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 1}}, &ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, Verified, res.Outcome)
}

func TestCheckRefutedExtractsModel(t *testing.T) {
	modelText := `(
  (define-fun v_x () Int 5)
  (define-fun v_y () Int (- 3))
)`
	fake := FakeBackend{Resolve: func(script string) (string, string, error) {
		return "sat", modelText, nil
	}}
	sess := NewSession(fake, funcs.NewTable())

	x := &ast.Var{Name: "x"}
	y := &ast.Var{Name: "y"}
	res, err := sess.Check(&ast.BRel{Op: ast.Eq, Left: x, Right: &ast.Num{Value: 0}}, &ast.BRel{Op: ast.Eq, Left: y, Right: &ast.Num{Value: 0}})
	require.NoError(t, err)
	require.Equal(t, Refuted, res.Outcome)
	assert.Equal(t, int64(5), res.Model["x"])
	assert.Equal(t, int64(-3), res.Model["y"])
}

func TestCheckIndeterminateOnUnknown(t *testing.T) {
	fake := FakeBackend{Resolve: func(script string) (string, string, error) {
		return "unknown", "", nil
	}}
	sess := NewSession(fake, funcs.NewTable())
	res, err := sess.Check(&ast.BLit{Value: true}, &ast.BLit{Value: true})
	require.NoError(t, err)
	assert.Equal(t, Indeterminate, res.Outcome)
}

func TestSplitZ3OutputSeparatesModel(t *testing.T) {
	sat, model, err := splitZ3Output("sat\n(\n  (define-fun v_x () Int 1)\n)\n")
	require.NoError(t, err)
	assert.Equal(t, "sat", sat)
	assert.True(t, strings.Contains(model, "v_x"))
}

func TestCheckTimeoutBudget(t *testing.T) {
	called := false
	fake := FakeBackend{Resolve: func(script string) (string, string, error) {
		called = true
		assert.Contains(t, script, "(set-option :timeout 7000)")
		return "unsat", "", nil
	}}
	sess := NewSession(fake, funcs.NewTable())
	assert.Equal(t, DefaultTimeout, sess.Timeout)
	_, err := sess.Check(&ast.BLit{Value: true}, &ast.BLit{Value: true})
	require.NoError(t, err)
	assert.True(t, called)
}
