package canon

import "impverify/internal/ast"

var boolOps = map[string]bool{
	"=": true, "#": true, "<": true, "<=": true, ">": true, ">=": true,
	"&&": true, "||": true, "not": true, "bool": true,
}

type costEntry struct {
	cost int
	node enode
}

// bestCosts computes, for every reachable class, the minimal-AST-size
// representative node (spec.md §4.5: "Extraction uses AST-size as cost"),
// memoized and resolved bottom-up to avoid infinite recursion through
// congruence cycles.
func (g *EGraph) bestCosts() map[classID]costEntry {
	best := make(map[classID]costEntry)
	// Iterate to a fixed point: a node's cost depends on its children's
	// best cost, which may not be known yet on the first pass if classes
	// were discovered out of dependency order.
	for pass := 0; pass < len(g.nodes)+1; pass++ {
		changed := false
		for root, ns := range g.nodes {
			for _, n := range ns {
				cost, ok := g.nodeCost(n, best)
				if !ok {
					continue
				}
				cur, exists := best[root]
				if !exists || cost < cur.cost {
					best[root] = costEntry{cost: cost, node: n}
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return best
}

func (g *EGraph) nodeCost(n enode, best map[classID]costEntry) (int, bool) {
	cost := 1
	for _, k := range n.kids {
		c, ok := best[g.find(k)]
		if !ok {
			return 0, false
		}
		cost += c.cost
	}
	return cost, true
}

// ExtractAexp returns the minimal-cost Aexp equivalent to the root of the
// class containing a, after Saturate has been run.
func (g *EGraph) ExtractAexp(id classID) ast.Aexp {
	best := g.bestCosts()
	return g.rebuildAexp(g.find(id), best)
}

// ExtractBexp returns the minimal-cost Bexp equivalent to the root of the
// class containing b, after Saturate has been run.
func (g *EGraph) ExtractBexp(id classID) ast.Bexp {
	best := g.bestCosts()
	return g.rebuildBexp(g.find(id), best)
}

func (g *EGraph) rebuildAexp(id classID, best map[classID]costEntry) ast.Aexp {
	n := best[g.find(id)].node
	switch n.op {
	case "num":
		return &ast.Num{Value: n.num}
	case "var":
		return &ast.Var{Name: n.name}
	case "+", "-", "*", "mod", "^":
		return &ast.ABin{Op: arithOpOf(n.op), Left: g.rebuildAexp(n.kids[0], best), Right: g.rebuildAexp(n.kids[1], best)}
	case "ite":
		return &ast.AIte{Cond: g.rebuildBexp(n.kids[0], best), Then: g.rebuildAexp(n.kids[1], best), Else: g.rebuildAexp(n.kids[2], best)}
	default:
		if len(n.op) > 5 && n.op[:5] == "call:" {
			args := make([]ast.Aexp, len(n.kids))
			for i, k := range n.kids {
				args[i] = g.rebuildAexp(k, best)
			}
			return &ast.Call{Name: n.op[5:], Args: args}
		}
		panic("canon: cannot extract Aexp from class with op " + n.op)
	}
}

func (g *EGraph) rebuildBexp(id classID, best map[classID]costEntry) ast.Bexp {
	n := best[g.find(id)].node
	switch n.op {
	case "=", "#", "<", "<=", ">", ">=":
		return &ast.BRel{Op: relOpOf(n.op), Left: g.rebuildAexp(n.kids[0], best), Right: g.rebuildAexp(n.kids[1], best)}
	case "&&", "||":
		return &ast.BBin{Op: boolOpOf(n.op), Left: g.rebuildBexp(n.kids[0], best), Right: g.rebuildBexp(n.kids[1], best)}
	case "not":
		return &ast.BNot{Expr: g.rebuildBexp(n.kids[0], best)}
	case "bool":
		return &ast.BLit{Value: n.lit}
	default:
		panic("canon: cannot extract Bexp from class with op " + n.op)
	}
}

func arithOpOf(op string) ast.ArithOp {
	switch op {
	case "+":
		return ast.Add
	case "-":
		return ast.Sub
	case "*":
		return ast.Mul
	case "mod":
		return ast.Mod
	case "^":
		return ast.Pow
	default:
		panic("canon: unknown arithmetic op " + op)
	}
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
		panic("canon: unknown relational op " + op)
	}
}

func boolOpOf(op string) ast.BoolOp {
	if op == "&&" {
		return ast.And
	}
	return ast.Or
}
