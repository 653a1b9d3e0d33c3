package ast

// SubstAexp computes a[x -> repl], capture-free because IMP/assertions have
// no binders at the source level (spec.md §3, testable property 1). It
// traverses into Call argument lists and Aite branches.
func SubstAexp(a Aexp, x string, repl Aexp) Aexp {
	switch e := a.(type) {
	case *Num:
		return e
	case *Var:
		if e.Name == x {
			return repl
		}
		return e
	case *ABin:
		return &ABin{Pos: e.Pos, Op: e.Op, Left: SubstAexp(e.Left, x, repl), Right: SubstAexp(e.Right, x, repl)}
	case *Call:
		args := make([]Aexp, len(e.Args))
		for i, arg := range e.Args {
			args[i] = SubstAexp(arg, x, repl)
		}
		return &Call{Pos: e.Pos, Name: e.Name, Args: args}
	case *AIte:
		return &AIte{Pos: e.Pos, Cond: SubstBexp(e.Cond, x, repl), Then: SubstAexp(e.Then, x, repl), Else: SubstAexp(e.Else, x, repl)}
	default:
		return a
	}
}

// SubstBexp computes b[x -> repl], substituting into every arithmetic leaf
// reachable from b.
func SubstBexp(b Bexp, x string, repl Aexp) Bexp {
	switch e := b.(type) {
	case *BRel:
		return &BRel{Pos: e.Pos, Op: e.Op, Left: SubstAexp(e.Left, x, repl), Right: SubstAexp(e.Right, x, repl)}
	case *BBin:
		return &BBin{Pos: e.Pos, Op: e.Op, Left: SubstBexp(e.Left, x, repl), Right: SubstBexp(e.Right, x, repl)}
	case *BNot:
		return &BNot{Pos: e.Pos, Expr: SubstBexp(e.Expr, x, repl)}
	case *BLit:
		return e
	default:
		return b
	}
}

// FreeVarsAexp returns the set of identifiers occurring in a, in the flat
// namespace shared by program and logical variables (spec.md §3).
func FreeVarsAexp(a Aexp, out map[string]struct{}) {
	switch e := a.(type) {
	case *Num:
	case *Var:
		out[e.Name] = struct{}{}
	case *ABin:
		FreeVarsAexp(e.Left, out)
		FreeVarsAexp(e.Right, out)
	case *Call:
		for _, arg := range e.Args {
			FreeVarsAexp(arg, out)
		}
	case *AIte:
		FreeVarsBexp(e.Cond, out)
		FreeVarsAexp(e.Then, out)
		FreeVarsAexp(e.Else, out)
	}
}

// FreeVarsBexp returns the set of identifiers occurring in b.
func FreeVarsBexp(b Bexp, out map[string]struct{}) {
	switch e := b.(type) {
	case *BRel:
		FreeVarsAexp(e.Left, out)
		FreeVarsAexp(e.Right, out)
	case *BBin:
		FreeVarsBexp(e.Left, out)
		FreeVarsBexp(e.Right, out)
	case *BNot:
		FreeVarsBexp(e.Expr, out)
	case *BLit:
	}
}

// FreeVarsOf is a convenience wrapper returning a fresh set for a single
// Bexp, used when projecting a counter-model (spec.md §4.3).
func FreeVarsOf(b Bexp) map[string]struct{} {
	out := make(map[string]struct{})
	FreeVarsBexp(b, out)
	return out
}
