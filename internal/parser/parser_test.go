package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impverify/internal/ast"
)

func TestParseBareStmSumProgram(t *testing.T) {
	src := `
i := 0;
s := 0;
while i < n do
  i := i + 1;
  s := s + i;
end
`
	res, err := ParseString("sum.imp", src)
	require.NoError(t, err)
	require.Nil(t, res.AxBlock)
	require.NotNil(t, res.Stm)

	seq, ok := res.Stm.(*ast.Seq)
	require.True(t, ok)
	first, ok := seq.Left.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "i", first.Var)
}

func TestParseAnnotatedAssignBlock(t *testing.T) {
	src := `
{ x = 5 }
x := x + 1;
{ x = 6 }
`
	res, err := ParseString("assign.imp", src)
	require.NoError(t, err)
	require.NotNil(t, res.AxBlock)

	block := res.AxBlock
	assert.Len(t, block.Items, 1)
	assign, ok := block.Items[0].Stm.(*ast.AxAssign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Var)
	assert.Equal(t, int64(6), block.InnerPost().(*ast.BRel).Right.(*ast.Num).Value)
}

func TestParseFunctionDefinitionAndCall(t *testing.T) {
	src := `
fun double(x) = x * 2;
{ true }
y := double(3);
{ y = 6 }
`
	res, err := ParseString("fn.imp", src)
	require.NoError(t, err)
	require.Len(t, res.Funcs, 1)
	assert.Equal(t, "double", res.Funcs[0].Name)
	assert.Equal(t, []string{"x"}, res.Funcs[0].Params)

	assign, ok := res.AxBlock.Items[0].Stm.(*ast.AxAssign)
	require.True(t, ok)
	call, ok := assign.Expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "double", call.Name)
}

func TestParseWhileTotalModeInvariantShape(t *testing.T) {
	src := `
{ n >= 0 } |-
{ (n >= 0) && (0 = 0) }
while n > 0 do
  { ((n > 0) && (n >= 0)) && (n = n) }
  n := n - 1;
  { (n >= 0) && (n < n) }
end
{ (n > 0) && (n >= 0) }
`
	_, err := ParseString("total.imp", src)
	require.NoError(t, err)
}

func TestParseRejectsMissingEnd(t *testing.T) {
	src := `
if x < 0 then
  skip;
else
  skip;
`
	_, err := ParseString("bad.imp", src)
	assert.Error(t, err)
}

func TestParsePowerAndModAndIte(t *testing.T) {
	src := `
{ true }
x := ite(y > 0, y ^ 2, y mod 3);
{ true }
`
	res, err := ParseString("ite.imp", src)
	require.NoError(t, err)
	assign := res.AxBlock.Items[0].Stm.(*ast.AxAssign)
	ite, ok := assign.Expr.(*ast.AIte)
	require.True(t, ok)
	pow, ok := ite.Then.(*ast.ABin)
	require.True(t, ok)
	assert.Equal(t, ast.Pow, pow.Op)
}
