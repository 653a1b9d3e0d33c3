package ast

// EqualAexp / EqualBexp decide syntactic (structural) equality, ignoring
// positions. This is the exact check the structural verifier uses — it
// never falls back to entailment (spec.md §4.1: "Syntactic equality is
// the check").
func EqualAexp(a, b Aexp) bool {
	switch x := a.(type) {
	case *Num:
		y, ok := b.(*Num)
		return ok && x.Value == y.Value
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *ABin:
		y, ok := b.(*ABin)
		return ok && x.Op == y.Op && EqualAexp(x.Left, y.Left) && EqualAexp(x.Right, y.Right)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !EqualAexp(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *AIte:
		y, ok := b.(*AIte)
		return ok && EqualBexp(x.Cond, y.Cond) && EqualAexp(x.Then, y.Then) && EqualAexp(x.Else, y.Else)
	default:
		return false
	}
}

func EqualBexp(a, b Bexp) bool {
	switch x := a.(type) {
	case *BRel:
		y, ok := b.(*BRel)
		return ok && x.Op == y.Op && EqualAexp(x.Left, y.Left) && EqualAexp(x.Right, y.Right)
	case *BBin:
		y, ok := b.(*BBin)
		return ok && x.Op == y.Op && EqualBexp(x.Left, y.Left) && EqualBexp(x.Right, y.Right)
	case *BNot:
		y, ok := b.(*BNot)
		return ok && EqualBexp(x.Expr, y.Expr)
	case *BLit:
		y, ok := b.(*BLit)
		return ok && x.Value == y.Value
	default:
		return false
	}
}
