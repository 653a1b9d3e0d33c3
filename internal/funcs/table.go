// Package funcs owns the recursive function table of spec.md §4.4: a flat
// name -> definition map, pre-populated with built-ins and extended by
// user declarations, with user declarations winning name collisions. The
// table has the lifetime of one verification run (spec.md §3 "Ownership
// & lifecycle").
package funcs

import "impverify/internal/ast"

// Table is the function namespace shared by every assertion in a run.
type Table struct {
	defs map[string]*ast.FuncDef
}

// NewTable returns a table pre-loaded with the built-in definitions.
func NewTable() *Table {
	t := &Table{defs: make(map[string]*ast.FuncDef)}
	for _, def := range builtins() {
		t.defs[def.Name] = def
	}
	return t
}

// Declare installs a user function definition, shadowing any built-in or
// earlier declaration of the same name (spec.md §4.4: "Name collisions
// resolve in favour of user declarations").
func (t *Table) Declare(def *ast.FuncDef) {
	t.defs[def.Name] = def
}

// Lookup returns the definition for name, if any.
func (t *Table) Lookup(name string) (*ast.FuncDef, bool) {
	def, ok := t.defs[name]
	return def, ok
}

// All returns every definition currently installed, in a stable order
// (sorted by name) so that SMT declarations are emitted deterministically
// across runs (spec.md §5's determinism guarantee extends to solver
// input, not just diagnostics: identical input must produce identical
// solver queries).
func (t *Table) All() []*ast.FuncDef {
	names := make([]string, 0, len(t.defs))
	for name := range t.defs {
		names = append(names, name)
	}
	sortStrings(names)

	out := make([]*ast.FuncDef, len(names))
	for i, name := range names {
		out[i] = t.defs[name]
	}
	return out
}

func sortStrings(s []string) {
	// small N (built-ins + a handful of user functions): insertion sort
	// avoids pulling in "sort" for what is, in practice, a handful of
	// names per run.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// builtins returns the core's pre-registered recursive definitions
// (spec.md §4.4: "factorial" is named explicitly; SPEC_FULL.md §4.4 keeps
// "fib" and "gcd" too, for the same declaration-ordering/shadowing
// coverage the original test suite exercised).
func builtins() []*ast.FuncDef {
	n := &ast.Var{Name: "n"}
	a := &ast.Var{Name: "a"}
	b := &ast.Var{Name: "b"}

	factorial := &ast.FuncDef{
		Name:   "factorial",
		Params: []string{"n"},
		// ite(n <= 0, 1, n * factorial(n - 1))
		Body: &ast.AIte{
			Cond: &ast.BRel{Op: ast.Le, Left: n, Right: &ast.Num{Value: 0}},
			Then: &ast.Num{Value: 1},
			Else: &ast.ABin{Op: ast.Mul, Left: n, Right: &ast.Call{
				Name: "factorial",
				Args: []ast.Aexp{&ast.ABin{Op: ast.Sub, Left: n, Right: &ast.Num{Value: 1}}},
			}},
		},
	}

	fib := &ast.FuncDef{
		Name:   "fib",
		Params: []string{"n"},
		// ite(n <= 1, n, fib(n-1) + fib(n-2))
		Body: &ast.AIte{
			Cond: &ast.BRel{Op: ast.Le, Left: n, Right: &ast.Num{Value: 1}},
			Then: n,
			Else: &ast.ABin{
				Op:   ast.Add,
				Left: &ast.Call{Name: "fib", Args: []ast.Aexp{&ast.ABin{Op: ast.Sub, Left: n, Right: &ast.Num{Value: 1}}}},
				Right: &ast.Call{Name: "fib", Args: []ast.Aexp{&ast.ABin{Op: ast.Sub, Left: n, Right: &ast.Num{Value: 2}}}},
			},
		},
	}

	gcd := &ast.FuncDef{
		Name:   "gcd",
		Params: []string{"a", "b"},
		// ite(b = 0, a, gcd(b, a mod b))
		Body: &ast.AIte{
			Cond: &ast.BRel{Op: ast.Eq, Left: b, Right: &ast.Num{Value: 0}},
			Then: a,
			Else: &ast.Call{Name: "gcd", Args: []ast.Aexp{b, &ast.ABin{Op: ast.Mod, Left: a, Right: b}}},
		},
	}

	return []*ast.FuncDef{factorial, fib, gcd}
}
