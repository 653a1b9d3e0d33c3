package ast

import (
	"fmt"
	"strings"
)

// String implementations for Bexp follow the precedence table of spec.md
// §3 (low→high: ∨, ∧, ¬, relations, atoms; all binary operators
// left-associative) so that two syntactically-equal assertions always
// print identically — the structural verifier's diagnostics (§4.1) depend
// on this to show "expected" vs "actual" in a way a human can diff.
// Arithmetic binary operators print infix with no parentheses, so the
// grouping of nested arithmetic is not shown: `(x + 1) * 2` and
// `x + (1 * 2)` both print as "x + 1 * 2".

// precedence levels, higher binds tighter.
const (
	precOr = iota
	precAnd
	precNot
	precRel
	precAtom
)

func (n *Num) String() string { return fmt.Sprintf("%d", n.Value) }
func (v *Var) String() string { return v.Name }

func (a *ABin) String() string {
	return fmt.Sprintf("%s %s %s", a.Left.String(), a.Op.String(), a.Right.String())
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

func (i *AIte) String() string {
	return fmt.Sprintf("ite(%s, %s, %s)", i.Cond.String(), i.Then.String(), i.Else.String())
}

func (b *BRel) String() string {
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op.String(), b.Right.String())
}

func (l *BLit) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

func (n *BNot) String() string {
	return "!" + parenAt(n.Expr, precNot)
}

func (b *BBin) String() string {
	prec := precAnd
	if b.Op == Or {
		prec = precOr
	}
	return fmt.Sprintf("%s %s %s", parenAt(b.Left, prec), b.Op.String(), parenAt(b.Right, prec))
}

// bexpPrec reports the precedence level of a Bexp's outermost connective.
func bexpPrec(b Bexp) int {
	switch e := b.(type) {
	case *BBin:
		if e.Op == Or {
			return precOr
		}
		return precAnd
	case *BNot:
		return precNot
	case *BRel:
		return precRel
	default:
		return precAtom
	}
}

// parenAt prints b, wrapping it in parentheses if its precedence is lower
// than the context it is printed in (left-associative, so equal precedence
// never needs parens on the left; right operands of non-associative forms
// are never produced by this grammar's closed sum, so a simple level
// comparison suffices).
func parenAt(b Bexp, context int) string {
	if bexpPrec(b) < context {
		return "(" + b.String() + ")"
	}
	return b.String()
}

func (a *Assign) String() string {
	return fmt.Sprintf("%s := %s", a.Var, a.Expr.String())
}

func (s *Seq) String() string {
	return fmt.Sprintf("%s; %s", s.Left.String(), s.Right.String())
}

func (i *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond.String(), i.Then.String(), i.Else.String())
}

func (w *While) String() string {
	return fmt.Sprintf("while %s do %s", w.Cond.String(), w.Body.String())
}
