package interp

import (
	"fmt"

	"impverify/internal/ast"
)

// Run executes stm to completion against s, mutating and returning s
// (ported from original_source/src/big_step.rs's `run`). skip terminates
// immediately; while unrolls by recursing on itself after one body pass.
func Run(stm ast.Stm, s *State) (*State, error) {
	switch st := stm.(type) {
	case *ast.Skip:
		return s, nil
	case *ast.Assign:
		v, err := EvalAexp(st.Expr, s)
		if err != nil {
			return nil, err
		}
		s.Set(st.Var, v)
		return s, nil
	case *ast.Seq:
		s1, err := Run(st.Left, s)
		if err != nil {
			return nil, err
		}
		return Run(st.Right, s1)
	case *ast.If:
		cond, err := EvalBexp(st.Cond, s)
		if err != nil {
			return nil, err
		}
		if cond {
			return Run(st.Then, s)
		}
		return Run(st.Else, s)
	case *ast.While:
		cond, err := EvalBexp(st.Cond, s)
		if err != nil {
			return nil, err
		}
		if !cond {
			return s, nil
		}
		s1, err := Run(st.Body, s)
		if err != nil {
			return nil, err
		}
		return Run(st, s1)
	default:
		return nil, fmt.Errorf("interp: unhandled statement %T", stm)
	}
}
