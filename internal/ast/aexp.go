package ast

// Aexp is the closed sum of arithmetic expression forms (spec.md §3).
// Dispatch on it is an exhaustive type switch everywhere in this module;
// adding a variant means touching every such switch, by design (see
// SPEC_FULL.md §9 / spec.md "Sum types & pattern matching").
type Aexp interface {
	Node
	isAexp()
}

func (*Num) isAexp()      {}
func (*Var) isAexp()      {}
func (*ABin) isAexp()     {}
func (*Call) isAexp()     {}
func (*AIte) isAexp()     {}

// Node is implemented by every AST type that carries a source position,
// mirroring the teacher's ast.Node (NodePos/String) shape.
type Node interface {
	NodePos() Position
	String() string
}

// Num is a 64-bit signed integer numeral.
type Num struct {
	Pos   Position
	Value int64
}

func (n *Num) NodePos() Position { return n.Pos }

// Var is a reference to a program or logical variable; the two share one
// namespace (spec.md §3).
type Var struct {
	Pos  Position
	Name string
}

func (v *Var) NodePos() Position { return v.Pos }

// ArithOp enumerates the binary arithmetic operators.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Mod
	Pow
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Mod:
		return "mod"
	case Pow:
		return "^"
	default:
		return "?"
	}
}

// ABin is a binary arithmetic operator application.
type ABin struct {
	Pos         Position
	Op          ArithOp
	Left, Right Aexp
}

func (a *ABin) NodePos() Position { return a.Pos }

// Call applies a declared (possibly recursive) function to arguments.
type Call struct {
	Pos  Position
	Name string
	Args []Aexp
}

func (c *Call) NodePos() Position { return c.Pos }

// AIte is the arithmetic conditional expression ite(b, t, e).
type AIte struct {
	Pos        Position
	Cond       Bexp
	Then, Else Aexp
}

func (i *AIte) NodePos() Position { return i.Pos }
