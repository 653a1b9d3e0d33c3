package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"impverify/internal/ast"
)

func toPos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}

// Result is the lowered form of one source file: zero or more function
// definitions, and exactly one of AxBlock (annotated program) or Stm
// (bare program).
type Result struct {
	Funcs   []*ast.FuncDef
	AxBlock *ast.AxBlock
	Stm     ast.Stm
}

func lowerProgram(g *ProgramG) *Result {
	funcs := make([]*ast.FuncDef, len(g.Funcs))
	for i, f := range g.Funcs {
		funcs[i] = &ast.FuncDef{Pos: toPos(f.Pos), Name: f.Name, Params: f.Params, Body: lowerAexp(f.Body)}
	}

	r := &Result{Funcs: funcs}
	if g.Body.AxBlock != nil {
		r.AxBlock = lowerAxBlock(g.Body.AxBlock)
	} else {
		r.Stm = lowerStmSeq(g.Body.Stm)
	}
	return r
}

func lowerChain(g *ChainG) *ast.AssertionChain {
	links := make([]ast.Bexp, len(g.Links))
	for i, l := range g.Links {
		links[i] = lowerOr(l)
	}
	return &ast.AssertionChain{Pos: toPos(g.Pos), Links: links}
}

func lowerAxBlock(g *AxBlockG) *ast.AxBlock {
	items := make([]ast.AxItem, len(g.Items))
	for i, it := range g.Items {
		items[i] = ast.AxItem{Stm: lowerAxStm(it.Stm), Chain: lowerChain(it.Chain)}
	}
	return &ast.AxBlock{Pos: toPos(g.Pos), Pre: lowerChain(g.Pre), Items: items}
}

func lowerAxStm(g *AxStmG) ast.AxStm {
	switch {
	case g.Skip != nil:
		return &ast.AxSkip{Pos: toPos(g.Skip.Pos)}
	case g.Assign != nil:
		return &ast.AxAssign{Pos: toPos(g.Assign.Pos), Var: g.Assign.Var, Expr: lowerAexp(g.Assign.Expr)}
	case g.If != nil:
		return &ast.AxIf{Pos: toPos(g.If.Pos), Cond: lowerOr(g.If.Cond), Then: lowerAxBlock(g.If.Then), Else: lowerAxBlock(g.If.Else)}
	case g.While != nil:
		return &ast.AxWhile{Pos: toPos(g.While.Pos), Cond: lowerOr(g.While.Cond), Body: lowerAxBlock(g.While.Body)}
	default:
		panic("parser: empty AxStmG alternation")
	}
}

// lowerStmSeq folds a flat run of statements into the right-leaning Seq
// tree spec.md §3 requires.
func lowerStmSeq(g *StmSeqG) ast.Stm {
	stmts := make([]ast.Stm, len(g.Stmts))
	for i, s := range g.Stmts {
		stmts[i] = lowerStmAtom(s)
	}
	return foldSeq(stmts)
}

func foldSeq(stmts []ast.Stm) ast.Stm {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ast.Seq{Left: stmts[0], Right: foldSeq(stmts[1:])}
}

func lowerStmAtom(g *StmAtomG) ast.Stm {
	switch {
	case g.Skip != nil:
		return &ast.Skip{Pos: toPos(g.Skip.Pos)}
	case g.Assign != nil:
		return &ast.Assign{Pos: toPos(g.Assign.Pos), Var: g.Assign.Var, Expr: lowerAexp(g.Assign.Expr)}
	case g.If != nil:
		return &ast.If{Pos: toPos(g.If.Pos), Cond: lowerOr(g.If.Cond), Then: lowerStmSeq(g.If.Then), Else: lowerStmSeq(g.If.Else)}
	case g.While != nil:
		return &ast.While{Pos: toPos(g.While.Pos), Cond: lowerOr(g.While.Cond), Body: lowerStmSeq(g.While.Body)}
	default:
		panic("parser: empty StmAtomG alternation")
	}
}

func lowerOr(g *OrG) ast.Bexp {
	left := lowerAnd(g.Left)
	for _, r := range g.Rest {
		left = &ast.BBin{Pos: toPos(g.Pos), Op: ast.Or, Left: left, Right: lowerAnd(r)}
	}
	return left
}

func lowerAnd(g *AndG) ast.Bexp {
	left := lowerNot(g.Left)
	for _, r := range g.Rest {
		left = &ast.BBin{Pos: toPos(g.Pos), Op: ast.And, Left: left, Right: lowerNot(r)}
	}
	return left
}

func lowerNot(g *NotG) ast.Bexp {
	inner := lowerAtomBexp(g.Inner)
	if g.Bang {
		return &ast.BNot{Pos: toPos(g.Pos), Expr: inner}
	}
	return inner
}

func lowerAtomBexp(g *AtomBexpG) ast.Bexp {
	switch {
	case g.True != nil:
		return &ast.BLit{Pos: toPos(g.Pos), Value: true}
	case g.False != nil:
		return &ast.BLit{Pos: toPos(g.Pos), Value: false}
	case g.Paren != nil:
		return lowerOr(g.Paren)
	case g.Rel != nil:
		return lowerRel(g.Rel)
	default:
		panic("parser: empty AtomBexpG alternation")
	}
}

func lowerRel(g *RelG) ast.Bexp {
	return &ast.BRel{Pos: toPos(g.Pos), Op: relOpOf(g.Op), Left: lowerSum(g.Left), Right: lowerSum(g.Right)}
}

func relOpOf(op string) ast.RelOp {
	switch op {
	case "=":
		return ast.Eq
	case "#":
		return ast.Ne
	case "<":
		return ast.Lt
	case "<=":
		return ast.Le
	case ">":
		return ast.Gt
	case ">=":
		return ast.Ge
	default:
		panic("parser: unknown relational operator " + op)
	}
}

func lowerAexp(g *AexpG) ast.Aexp {
	if g.Ite != nil {
		return &ast.AIte{Pos: toPos(g.Pos), Cond: lowerOr(g.Ite.Cond), Then: lowerAexp(g.Ite.Then), Else: lowerAexp(g.Ite.Else)}
	}
	return lowerSum(g.Sum)
}

func lowerSum(g *SumG) ast.Aexp {
	left := lowerProduct(g.Left)
	for _, op := range g.Rest {
		o := ast.Add
		if op.Op == "-" {
			o = ast.Sub
		}
		left = &ast.ABin{Pos: toPos(op.Pos), Op: o, Left: left, Right: lowerProduct(op.Right)}
	}
	return left
}

func lowerProduct(g *ProductG) ast.Aexp {
	left := lowerPow(g.Left)
	for _, op := range g.Rest {
		o := ast.Mul
		if op.Op == "mod" {
			o = ast.Mod
		}
		left = &ast.ABin{Pos: toPos(op.Pos), Op: o, Left: left, Right: lowerPow(op.Right)}
	}
	return left
}

func lowerPow(g *PowG) ast.Aexp {
	left := lowerAtom(g.Left)
	if g.Right != nil {
		return &ast.ABin{Pos: toPos(g.Pos), Op: ast.Pow, Left: left, Right: lowerPow(g.Right)}
	}
	return left
}

func lowerAtom(g *AtomG) ast.Aexp {
	switch {
	case g.Num != nil:
		v, err := strconv.ParseInt(*g.Num, 10, 64)
		if err != nil {
			panic("parser: invalid integer literal " + *g.Num)
		}
		return &ast.Num{Pos: toPos(g.Pos), Value: v}
	case g.Call != nil:
		args := make([]ast.Aexp, len(g.Call.Args))
		for i, a := range g.Call.Args {
			args[i] = lowerAexp(a)
		}
		return &ast.Call{Pos: toPos(g.Call.Pos), Name: g.Call.Name, Args: args}
	case g.Var != nil:
		return &ast.Var{Pos: toPos(g.Pos), Name: *g.Var}
	case g.Paren != nil:
		return lowerAexp(g.Paren)
	default:
		panic("parser: empty AtomG alternation")
	}
}
