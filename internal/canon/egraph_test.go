package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"impverify/internal/ast"
)

func TestCanonicalizeCommutesAndFoldsIdentities(t *testing.T) {
	// (x + 0) = y  should canonicalize to something of the same size or
	// smaller than the original, and must stay equivalent to "x = y".
	x := &ast.Var{Name: "x"}
	y := &ast.Var{Name: "y"}
	b := &ast.BRel{Op: ast.Eq, Left: &ast.ABin{Op: ast.Add, Left: x, Right: &ast.Num{Value: 0}}, Right: y}

	canon := Canonicalize(b)
	assert.LessOrEqual(t, ast.SizeBexp(canon), ast.SizeBexp(b))
	xEqY := &ast.BRel{Op: ast.Eq, Left: x, Right: y}
	yEqX := &ast.BRel{Op: ast.Eq, Left: y, Right: x}
	assert.True(t, ast.EqualBexp(canon, xEqY) || ast.EqualBexp(canon, yEqX), "got %s", canon.String())
}

func TestCanonicalizeSkipsRecursiveCalls(t *testing.T) {
	n := &ast.Var{Name: "n"}
	b := &ast.BRel{Op: ast.Eq, Left: &ast.Call{Name: "factorial", Args: []ast.Aexp{n}}, Right: &ast.Num{Value: 1}}

	canon := Canonicalize(b)
	assert.True(t, ast.EqualBexp(b, canon), "canonicalization must be a no-op when recursive calls are present")
}

func TestDoubleNegationCollapses(t *testing.T) {
	x := &ast.Var{Name: "x"}
	inner := &ast.BRel{Op: ast.Lt, Left: x, Right: &ast.Num{Value: 0}}
	b := &ast.BNot{Expr: &ast.BNot{Expr: inner}}

	canon := Canonicalize(b)
	assert.True(t, ast.EqualBexp(canon, inner))
}

func TestCombinedRelationsRule(t *testing.T) {
	x := &ast.Var{Name: "x"}
	y := &ast.Var{Name: "y"}
	b := &ast.BBin{
		Op:   ast.And,
		Left: &ast.BRel{Op: ast.Le, Left: x, Right: y},
		Right: &ast.BRel{Op: ast.Ge, Left: x, Right: y},
	}
	want := &ast.BRel{Op: ast.Eq, Left: x, Right: y}

	canon := Canonicalize(b)
	assert.True(t, ast.EqualBexp(canon, want))
}
