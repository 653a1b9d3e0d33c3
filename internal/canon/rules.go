package canon

// rule applies one rewrite rule of spec.md §4.5 across every matching
// e-node currently in the graph, unioning each match's class with its
// rewritten form. It returns whether any union actually changed anything.
type rule func(g *EGraph) bool

var rules = []rule{
	ruleCommute,
	ruleAssociate,
	ruleDoubleNegation,
	ruleNegRelations,
	ruleCombinedRelations,
	ruleIdentities,
	ruleExponent,
	ruleEqualityCancellation,
}

// snapshot returns (classID, enode) pairs for every node currently
// stored, so rules can scan without racing their own mutations.
func (g *EGraph) snapshot() []struct {
	id classID
	n  enode
} {
	out := make([]struct {
		id classID
		n  enode
	}, 0)
	for id, ns := range g.nodes {
		for _, n := range ns {
			out = append(out, struct {
				id classID
				n  enode
			}{id, n})
		}
	}
	return out
}

var commutative = map[string]bool{"+": true, "*": true, "=": true, "&&": true, "||": true}

func ruleCommute(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if !commutative[e.n.op] || len(e.n.kids) != 2 {
			continue
		}
		swapped := enode{op: e.n.op, kids: []classID{e.n.kids[1], e.n.kids[0]}}
		newID := g.addNode(swapped)
		if g.find(newID) != g.find(e.id) {
			g.union(newID, e.id)
			changed = true
		}
	}
	return changed
}

func ruleAssociate(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "&&" && e.n.op != "||" {
			continue
		}
		// pattern (x op y) op z -> x op (y op z)
		left := g.find(e.n.kids[0])
		z := e.n.kids[1]
		for _, ln := range g.nodes[left] {
			if ln.op != e.n.op || len(ln.kids) != 2 {
				continue
			}
			x, y := ln.kids[0], ln.kids[1]
			inner := g.addNode(enode{op: e.n.op, kids: []classID{y, z}})
			outer := g.addNode(enode{op: e.n.op, kids: []classID{x, inner}})
			if g.find(outer) != g.find(e.id) {
				g.union(outer, e.id)
				changed = true
			}
		}
	}
	return changed
}

func ruleDoubleNegation(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "not" {
			continue
		}
		inner := g.find(e.n.kids[0])
		for _, in := range g.nodes[inner] {
			if in.op != "not" {
				continue
			}
			x := in.kids[0]
			if g.find(x) != g.find(e.id) {
				g.union(x, e.id)
				changed = true
			}
		}
	}
	return changed
}

var negatableOrder = map[string]string{"<": ">=", "<=": ">", ">": "<=", ">=": "<"}

func ruleNegRelations(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "not" {
			continue
		}
		inner := g.find(e.n.kids[0])
		for _, in := range g.nodes[inner] {
			negOp, ok := negatableOrder[in.op]
			if !ok {
				continue
			}
			rewritten := g.addNode(enode{op: negOp, kids: []classID{in.kids[0], in.kids[1]}})
			if g.find(rewritten) != g.find(e.id) {
				g.union(rewritten, e.id)
				changed = true
			}
		}
	}
	return changed
}

// ruleCombinedRelations implements x<=y && x>=y -> x=y and
// x<y || x>y -> x#y, matching operands by class identity.
func ruleCombinedRelations(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "&&" && e.n.op != "||" {
			continue
		}
		wantLeft, wantRight, resultOp := "<=", ">=", "="
		if e.n.op == "||" {
			wantLeft, wantRight, resultOp = "<", ">", "#"
		}
		left, right := g.find(e.n.kids[0]), g.find(e.n.kids[1])
		for _, ln := range g.nodes[left] {
			if ln.op != wantLeft {
				continue
			}
			for _, rn := range g.nodes[right] {
				if rn.op != wantRight {
					continue
				}
				if g.find(ln.kids[0]) != g.find(rn.kids[0]) || g.find(ln.kids[1]) != g.find(rn.kids[1]) {
					continue
				}
				rewritten := g.addNode(enode{op: resultOp, kids: []classID{ln.kids[0], ln.kids[1]}})
				if g.find(rewritten) != g.find(e.id) {
					g.union(rewritten, e.id)
					changed = true
				}
			}
		}
	}
	return changed
}

func isZeroClass(g *EGraph, id classID) bool {
	an := g.an[g.find(id)]
	return an != nil && an.hasInt && an.intVal == 0
}

func isOneClass(g *EGraph, id classID) bool {
	an := g.an[g.find(id)]
	return an != nil && an.hasInt && an.intVal == 1
}

func ruleIdentities(g *EGraph) bool {
	changed := false
	zero := func() classID { return g.addNode(enode{op: "num", num: 0}) }
	for _, e := range g.snapshot() {
		switch e.n.op {
		case "+":
			if isZeroClass(g, e.n.kids[1]) && g.find(e.n.kids[0]) != g.find(e.id) {
				g.union(e.n.kids[0], e.id)
				changed = true
			}
		case "*":
			if isZeroClass(g, e.n.kids[1]) {
				z := zero()
				if g.find(z) != g.find(e.id) {
					g.union(z, e.id)
					changed = true
				}
			} else if isOneClass(g, e.n.kids[1]) && g.find(e.n.kids[0]) != g.find(e.id) {
				g.union(e.n.kids[0], e.id)
				changed = true
			}
		case "-":
			if g.find(e.n.kids[0]) == g.find(e.n.kids[1]) {
				z := zero()
				if g.find(z) != g.find(e.id) {
					g.union(z, e.id)
					changed = true
				}
			}
		}
	}
	return changed
}

// ruleExponent implements x^(y+z) <-> x^y * x^z (spec.md §4.5 lists this
// one with a bidirectional arrow, unlike the rest of the table).
func ruleExponent(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "^" {
			continue
		}
		x := e.n.kids[0]
		exp := g.find(e.n.kids[1])
		for _, en := range g.nodes[exp] {
			if en.op != "+" {
				continue
			}
			y, z := en.kids[0], en.kids[1]
			xy := g.addNode(enode{op: "^", kids: []classID{x, y}})
			xz := g.addNode(enode{op: "^", kids: []classID{x, z}})
			rewritten := g.addNode(enode{op: "*", kids: []classID{xy, xz}})
			if g.find(rewritten) != g.find(e.id) {
				g.union(rewritten, e.id)
				changed = true
			}
		}
	}
	for _, e := range g.snapshot() {
		if e.n.op != "*" {
			continue
		}
		left, right := g.find(e.n.kids[0]), g.find(e.n.kids[1])
		for _, ln := range g.nodes[left] {
			if ln.op != "^" {
				continue
			}
			for _, rn := range g.nodes[right] {
				if rn.op != "^" || g.find(rn.kids[0]) != g.find(ln.kids[0]) {
					continue
				}
				sum := g.addNode(enode{op: "+", kids: []classID{ln.kids[1], rn.kids[1]}})
				rewritten := g.addNode(enode{op: "^", kids: []classID{ln.kids[0], sum}})
				if g.find(rewritten) != g.find(e.id) {
					g.union(rewritten, e.id)
					changed = true
				}
			}
		}
	}
	return changed
}

// ruleEqualityCancellation implements the five cancellation forms of
// spec.md §4.5, guarding multiplicative cancellation on a's class
// carrying a nonzero literal (the conservative literal-check SPEC_FULL.md
// §9.4.1 keeps).
func ruleEqualityCancellation(g *EGraph) bool {
	changed := false
	for _, e := range g.snapshot() {
		if e.n.op != "=" {
			continue
		}
		left, right := g.find(e.n.kids[0]), g.find(e.n.kids[1])

		for _, ln := range g.nodes[left] {
			for _, rn := range g.nodes[right] {
				switch {
				case ln.op == "+" && rn.op == "+" && g.find(ln.kids[0]) == g.find(rn.kids[0]):
					// a+x = a+z -> x=z
					rewritten := g.addNode(enode{op: "=", kids: []classID{ln.kids[1], rn.kids[1]}})
					changed = g.unionIfDistinct(rewritten, e.id) || changed
				case ln.op == "-" && rn.op == "-" && g.find(ln.kids[1]) == g.find(rn.kids[1]):
					// y-a = z-a -> y=z
					rewritten := g.addNode(enode{op: "=", kids: []classID{ln.kids[0], rn.kids[0]}})
					changed = g.unionIfDistinct(rewritten, e.id) || changed
				case ln.op == "*" && rn.op == "*" && g.find(ln.kids[0]) == g.find(rn.kids[0]) && nonzeroLiteral(g, ln.kids[0]):
					// a*x = a*z -> x=z, provided a != 0
					rewritten := g.addNode(enode{op: "=", kids: []classID{ln.kids[1], rn.kids[1]}})
					changed = g.unionIfDistinct(rewritten, e.id) || changed
				}
			}
		}

		for _, ln := range g.nodes[left] {
			if ln.op == "+" {
				// x+y=z -> x=z-y
				sub := g.addNode(enode{op: "-", kids: []classID{right, ln.kids[1]}})
				rewritten := g.addNode(enode{op: "=", kids: []classID{ln.kids[0], sub}})
				changed = g.unionIfDistinct(rewritten, e.id) || changed
			}
			if ln.op == "-" {
				// y-z=x -> y=x+z
				add := g.addNode(enode{op: "+", kids: []classID{right, ln.kids[1]}})
				rewritten := g.addNode(enode{op: "=", kids: []classID{ln.kids[0], add}})
				changed = g.unionIfDistinct(rewritten, e.id) || changed
			}
		}
	}
	return changed
}

func (g *EGraph) unionIfDistinct(a, b classID) bool {
	if g.find(a) != g.find(b) {
		g.union(a, b)
		return true
	}
	return false
}

// nonzeroLiteral inspects the class's member nodes for the literal 0
// (spec.md §4.5: "inspects the class's node list for the literal 0; this
// is a conservative guard"). A class with no numeral member at all is
// treated as possibly nonzero (the guard only rules out *known* zeros).
func nonzeroLiteral(g *EGraph, id classID) bool {
	for _, n := range g.nodes[g.find(id)] {
		if n.op == "num" && n.num == 0 {
			return false
		}
	}
	return true
}
