package interp

import (
	"fmt"

	"impverify/internal/ast"
)

// EvalAexp evaluates an arithmetic expression against s. mod, ^, ite, and
// function application are assertion-only forms (spec.md §4.7): reaching
// one here from executable code is a fatal evaluation error, ported from
// original_source/src/expression.rs's arithmetic_eval, which only ever
// had Add/Sub/Mul cases to begin with.
func EvalAexp(a ast.Aexp, s *State) (int64, error) {
	switch e := a.(type) {
	case *ast.Num:
		return e.Value, nil
	case *ast.Var:
		return s.Get(e.Name), nil
	case *ast.ABin:
		left, err := EvalAexp(e.Left, s)
		if err != nil {
			return 0, err
		}
		right, err := EvalAexp(e.Right, s)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case ast.Add:
			return left + right, nil
		case ast.Sub:
			return left - right, nil
		case ast.Mul:
			return left * right, nil
		default:
			return 0, fmt.Errorf("interp: operator %q is assertion-only, not valid in executable code", e.Op)
		}
	case *ast.Call:
		return 0, fmt.Errorf("interp: function application %q is assertion-only, not valid in executable code", e.Name)
	case *ast.AIte:
		return 0, fmt.Errorf("interp: ite(...) is assertion-only, not valid in executable code")
	default:
		return 0, fmt.Errorf("interp: unhandled arithmetic expression %T", a)
	}
}

// EvalBexp evaluates a boolean expression against s.
func EvalBexp(b ast.Bexp, s *State) (bool, error) {
	switch e := b.(type) {
	case *ast.BRel:
		left, err := EvalAexp(e.Left, s)
		if err != nil {
			return false, err
		}
		right, err := EvalAexp(e.Right, s)
		if err != nil {
			return false, err
		}
		switch e.Op {
		case ast.Eq:
			return left == right, nil
		case ast.Ne:
			return left != right, nil
		case ast.Lt:
			return left < right, nil
		case ast.Le:
			return left <= right, nil
		case ast.Gt:
			return left > right, nil
		case ast.Ge:
			return left >= right, nil
		default:
			return false, fmt.Errorf("interp: unhandled relational operator %q", e.Op)
		}
	case *ast.BBin:
		left, err := EvalBexp(e.Left, s)
		if err != nil {
			return false, err
		}
		right, err := EvalBexp(e.Right, s)
		if err != nil {
			return false, err
		}
		if e.Op == ast.And {
			return left && right, nil
		}
		return left || right, nil
	case *ast.BNot:
		inner, err := EvalBexp(e.Expr, s)
		if err != nil {
			return false, err
		}
		return !inner, nil
	case *ast.BLit:
		return e.Value, nil
	default:
		return false, fmt.Errorf("interp: unhandled boolean expression %T", b)
	}
}
