package solver

import (
	"fmt"
	"strings"

	"impverify/internal/ast"
	"impverify/internal/funcs"
)

// lower builds the full SMT-LIB2 script for discharging p ⊨ q (spec.md
// §4.3): declare every free variable as an unbounded Int, install the
// function table as one mutually-recursive define-funs-rec block (spec.md
// §4.4: functions may call each other, so they cannot be declared one at
// a time with define-fun-rec — forward references would fail to
// resolve), assert `p ∧ ¬q`, and ask for sat/unsat/unknown plus a model.
func lower(p, q ast.Bexp, table *funcs.Table) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "(set-logic UFNIA)\n")
	fmt.Fprintf(&b, "(set-option :timeout %d)\n", DefaultTimeout.Milliseconds())
	// ^ has no native SMT-LIB Int symbol; every Pow node lowers to a call
	// to this fixed recursive helper instead (spec.md §3's arithmetic
	// grammar includes ^ as a first-class operator).
	b.WriteString("(define-fun-rec ipow ((base Int) (exp Int)) Int (ite (<= exp 0) 1 (* base (ipow base (- exp 1)))))\n")

	defs := table.All()
	if len(defs) > 0 {
		if err := lowerFuncs(&b, defs); err != nil {
			return "", err
		}
	}

	vars := ast.FreeVarsOf(p)
	for name := range ast.FreeVarsOf(q) {
		vars[name] = struct{}{}
	}
	for _, name := range sortedKeys(vars) {
		if isFuncName(table, name) {
			continue
		}
		fmt.Fprintf(&b, "(declare-const %s Int)\n", smtIdent(name))
	}

	pExpr, err := lowerBexp(p)
	if err != nil {
		return "", err
	}
	qExpr, err := lowerBexp(q)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "(assert %s)\n", pExpr)
	fmt.Fprintf(&b, "(assert (not %s))\n", qExpr)
	b.WriteString("(check-sat)\n")
	b.WriteString("(get-model)\n")

	return b.String(), nil
}

func isFuncName(table *funcs.Table, name string) bool {
	_, ok := table.Lookup(name)
	return ok
}

func lowerFuncs(b *strings.Builder, defs []*ast.FuncDef) error {
	names := make([]string, len(defs))
	bodies := make([]string, len(defs))
	for i, def := range defs {
		body, err := lowerAexp(def.Body)
		if err != nil {
			return fmt.Errorf("lowering %q: %w", def.Name, err)
		}
		var sig strings.Builder
		fmt.Fprintf(&sig, "(%s (", smtIdent(def.Name))
		for j, p := range def.Params {
			if j > 0 {
				sig.WriteByte(' ')
			}
			fmt.Fprintf(&sig, "(%s Int)", smtIdent(p))
		}
		sig.WriteString(") Int)")
		names[i] = sig.String()
		bodies[i] = body
	}

	b.WriteString("(define-funs-rec (")
	for _, n := range names {
		b.WriteString(n)
	}
	b.WriteString(")\n (")
	for i, body := range bodies {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(body)
	}
	b.WriteString("))\n")
	return nil
}

func lowerAexp(a ast.Aexp) (string, error) {
	switch e := a.(type) {
	case *ast.Num:
		if e.Value < 0 {
			return fmt.Sprintf("(- %d)", -e.Value), nil
		}
		return fmt.Sprintf("%d", e.Value), nil
	case *ast.Var:
		return smtIdent(e.Name), nil
	case *ast.ABin:
		left, err := lowerAexp(e.Left)
		if err != nil {
			return "", err
		}
		right, err := lowerAexp(e.Right)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case ast.Add:
			return fmt.Sprintf("(+ %s %s)", left, right), nil
		case ast.Sub:
			return fmt.Sprintf("(- %s %s)", left, right), nil
		case ast.Mul:
			return fmt.Sprintf("(* %s %s)", left, right), nil
		case ast.Mod:
			return fmt.Sprintf("(mod %s %s)", left, right), nil
		case ast.Pow:
			return fmt.Sprintf("(ipow %s %s)", left, right), nil
		default:
			return "", fmt.Errorf("lower: unknown arithmetic op %v", e.Op)
		}
	case *ast.Call:
		if len(e.Args) == 0 {
			return smtIdent(e.Name), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "(%s", smtIdent(e.Name))
		for _, arg := range e.Args {
			s, err := lowerAexp(arg)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, " %s", s)
		}
		sb.WriteByte(')')
		return sb.String(), nil
	case *ast.AIte:
		cond, err := lowerBexp(e.Cond)
		if err != nil {
			return "", err
		}
		then, err := lowerAexp(e.Then)
		if err != nil {
			return "", err
		}
		els, err := lowerAexp(e.Else)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(ite %s %s %s)", cond, then, els), nil
	default:
		return "", fmt.Errorf("lower: unhandled Aexp %T", a)
	}
}

func lowerBexp(b ast.Bexp) (string, error) {
	switch e := b.(type) {
	case *ast.BRel:
		left, err := lowerAexp(e.Left)
		if err != nil {
			return "", err
		}
		right, err := lowerAexp(e.Right)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case ast.Eq:
			return fmt.Sprintf("(= %s %s)", left, right), nil
		case ast.Ne:
			return fmt.Sprintf("(not (= %s %s))", left, right), nil
		case ast.Lt:
			return fmt.Sprintf("(< %s %s)", left, right), nil
		case ast.Le:
			return fmt.Sprintf("(<= %s %s)", left, right), nil
		case ast.Gt:
			return fmt.Sprintf("(> %s %s)", left, right), nil
		case ast.Ge:
			return fmt.Sprintf("(>= %s %s)", left, right), nil
		default:
			return "", fmt.Errorf("lower: unknown relational op %v", e.Op)
		}
	case *ast.BBin:
		left, err := lowerBexp(e.Left)
		if err != nil {
			return "", err
		}
		right, err := lowerBexp(e.Right)
		if err != nil {
			return "", err
		}
		if e.Op == ast.And {
			return fmt.Sprintf("(and %s %s)", left, right), nil
		}
		return fmt.Sprintf("(or %s %s)", left, right), nil
	case *ast.BNot:
		inner, err := lowerBexp(e.Expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(not %s)", inner), nil
	case *ast.BLit:
		if e.Value {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("lower: unhandled Bexp %T", b)
	}
}

// smtIdent prefixes identifiers with "v_" so that IMP variable names never
// collide with SMT-LIB reserved words (e.g. a program variable named
// "div" or "let").
func smtIdent(name string) string {
	return "v_" + name
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
