package canon

import "impverify/internal/ast"

// Canonicalize implements spec.md §4.3 step 1: if b has no recursive
// function application, load it into a fresh e-graph, saturate under the
// fixed rule set, and extract the AST-size-minimal representative. If b
// contains a function application, canonicalization is skipped (the
// rewrite rules are not aware of recursive-function semantics) and b is
// returned unchanged.
func Canonicalize(b ast.Bexp) ast.Bexp {
	if ast.HasRecursiveCall(b) {
		return b
	}
	g := NewEGraph()
	id := g.AddBexp(b)
	g.Saturate()
	return g.ExtractBexp(id)
}
