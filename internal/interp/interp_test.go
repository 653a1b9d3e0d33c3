package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impverify/internal/ast"
)

// sumProgram builds `i := 0; s := 0; while i < n do i := i+1; s := s+i end`.
func sumProgram() ast.Stm {
	i := &ast.Var{Name: "i"}
	s := &ast.Var{Name: "s"}
	n := &ast.Var{Name: "n"}

	body := &ast.Seq{
		Left:  &ast.Assign{Var: "i", Expr: &ast.ABin{Op: ast.Add, Left: i, Right: &ast.Num{Value: 1}}},
		Right: &ast.Assign{Var: "s", Expr: &ast.ABin{Op: ast.Add, Left: s, Right: i}},
	}
	loop := &ast.While{Cond: &ast.BRel{Op: ast.Lt, Left: i, Right: n}, Body: body}

	return &ast.Seq{
		Left: &ast.Assign{Var: "i", Expr: &ast.Num{Value: 0}},
		Right: &ast.Seq{
			Left:  &ast.Assign{Var: "s", Expr: &ast.Num{Value: 0}},
			Right: loop,
		},
	}
}

func TestBigStepSumProgram(t *testing.T) {
	st := NewState()
	st.Set("n", 4)
	final, err := Run(sumProgram(), st)
	require.NoError(t, err)
	assert.Equal(t, int64(4), final.Get("i"))
	assert.Equal(t, int64(10), final.Get("s"))
}

func TestBigStepAndSmallStepAgree(t *testing.T) {
	for _, n := range []int64{0, 1, 5} {
		bigState := NewState()
		bigState.Set("n", n)
		bigResult, err := Run(sumProgram(), bigState)
		require.NoError(t, err)

		smallState := NewState()
		smallState.Set("n", n)
		smallResult, err := RunSmallStep(sumProgram(), smallState)
		require.NoError(t, err)

		assert.Equal(t, bigResult.Get("s"), smallResult.Get("s"))
		assert.Equal(t, bigResult.Get("i"), smallResult.Get("i"))
	}
}

func TestSmallStepIteratorYieldsTerminalInclusive(t *testing.T) {
	st := NewState()
	it := NewSOS(&ast.Assign{Var: "x", Expr: &ast.Num{Value: 7}}, st)

	first, ok := it.Next()
	require.True(t, ok)
	assert.False(t, first.Terminal())

	second, ok := it.Next()
	require.True(t, ok)
	assert.True(t, second.Terminal())
	assert.Equal(t, int64(7), second.State.Get("x"))

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestEvalRejectsAssertionOnlyFormsInExecutableCode(t *testing.T) {
	st := NewState()
	_, err := EvalAexp(&ast.ABin{Op: ast.Mod, Left: &ast.Num{Value: 5}, Right: &ast.Num{Value: 2}}, st)
	assert.Error(t, err)

	_, err = EvalAexp(&ast.Call{Name: "factorial", Args: []ast.Aexp{&ast.Num{Value: 3}}}, st)
	assert.Error(t, err)
}
