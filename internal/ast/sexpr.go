package ast

import (
	"fmt"
	"strings"
)

// SexprAexp and SexprBexp render an expression as an S-expression, the
// canonicalizer's exchange format (spec.md §4.3 step 1, §C1). The format
// is fully parenthesized and operator-prefix so that two structurally
// equal expressions always produce byte-identical strings.
func SexprAexp(a Aexp) string {
	switch e := a.(type) {
	case *Num:
		return fmt.Sprintf("%d", e.Value)
	case *Var:
		return e.Name
	case *ABin:
		return fmt.Sprintf("(%s %s %s)", e.Op.String(), SexprAexp(e.Left), SexprAexp(e.Right))
	case *Call:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = SexprAexp(arg)
		}
		return fmt.Sprintf("(%s %s)", e.Name, strings.Join(args, " "))
	case *AIte:
		return fmt.Sprintf("(ite %s %s %s)", SexprBexp(e.Cond), SexprAexp(e.Then), SexprAexp(e.Else))
	default:
		return "?"
	}
}

func SexprBexp(b Bexp) string {
	switch e := b.(type) {
	case *BRel:
		return fmt.Sprintf("(%s %s %s)", e.Op.String(), SexprAexp(e.Left), SexprAexp(e.Right))
	case *BBin:
		return fmt.Sprintf("(%s %s %s)", e.Op.String(), SexprBexp(e.Left), SexprBexp(e.Right))
	case *BNot:
		return fmt.Sprintf("(not %s)", SexprBexp(e.Expr))
	case *BLit:
		if e.Value {
			return "true"
		}
		return "false"
	default:
		return "?"
	}
}

// SizeAexp / SizeBexp count AST nodes, the cost function the e-graph
// extractor minimizes over (spec.md §4.5: "Extraction uses AST-size as
// cost").
func SizeAexp(a Aexp) int {
	switch e := a.(type) {
	case *Num, *Var:
		return 1
	case *ABin:
		return 1 + SizeAexp(e.Left) + SizeAexp(e.Right)
	case *Call:
		n := 1
		for _, arg := range e.Args {
			n += SizeAexp(arg)
		}
		return n
	case *AIte:
		return 1 + SizeBexp(e.Cond) + SizeAexp(e.Then) + SizeAexp(e.Else)
	default:
		return 1
	}
}

func SizeBexp(b Bexp) int {
	switch e := b.(type) {
	case *BRel:
		return 1 + SizeAexp(e.Left) + SizeAexp(e.Right)
	case *BBin:
		return 1 + SizeBexp(e.Left) + SizeBexp(e.Right)
	case *BNot:
		return 1 + SizeBexp(e.Expr)
	case *BLit:
		return 1
	default:
		return 1
	}
}

// HasRecursiveCall reports whether b contains any function application,
// the condition under which the canonicalizer must be skipped (spec.md
// §4.3: "Canonicalization is disabled when recursive functions are
// present").
func HasRecursiveCall(b Bexp) bool {
	found := false
	var walkA func(Aexp)
	var walkB func(Bexp)
	walkA = func(a Aexp) {
		if found {
			return
		}
		switch e := a.(type) {
		case *ABin:
			walkA(e.Left)
			walkA(e.Right)
		case *Call:
			found = true
		case *AIte:
			walkB(e.Cond)
			walkA(e.Then)
			walkA(e.Else)
		}
	}
	walkB = func(bx Bexp) {
		if found {
			return
		}
		switch e := bx.(type) {
		case *BRel:
			walkA(e.Left)
			walkA(e.Right)
		case *BBin:
			walkB(e.Left)
			walkB(e.Right)
		case *BNot:
			walkB(e.Expr)
		}
	}
	walkB(b)
	return found
}
