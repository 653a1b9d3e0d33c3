// Package parser implements the "external" front end of spec.md §6: a
// stateful participle lexer, a participle struct-tag grammar, and a
// lowering pass from the grammar tree to internal/ast's canonical types.
// Grounded on the teacher's grammar.KansoLexer/grammar.Program shape
// (github.com/alecthomas/participle/v2, struct tags, PosIdent-style
// position capture).
package parser

import "github.com/alecthomas/participle/v2/lexer"

// ProgramG is the grammar root: an optional run of function definitions
// followed by either an annotated block or a bare statement (spec.md §6).
type ProgramG struct {
	Pos   lexer.Position
	Funcs []*FuncDefG `@@*`
	Body  *BodyG      `@@`
}

type FuncDefG struct {
	Pos    lexer.Position
	Name   string    `"fun" @Ident "("`
	Params []string  `[ @Ident { "," @Ident } ] ")" "="`
	Body   *AexpG    `@@ ";"`
}

type BodyG struct {
	Pos     lexer.Position
	AxBlock *AxBlockG `  @@`
	Stm     *StmSeqG  `| @@`
}

// --- Annotated program: chains, AxBlock, AxStm ---

type ChainG struct {
	Pos   lexer.Position
	Links []*OrG `"{" @@ "}" { "|-" "{" @@ "}" }`
}

type AxBlockG struct {
	Pos   lexer.Position
	Pre   *ChainG     `@@`
	Items []*AxItemG  `@@*`
}

type AxItemG struct {
	Pos   lexer.Position
	Stm   *AxStmG `@@`
	Chain *ChainG `@@`
}

type AxStmG struct {
	Pos    lexer.Position
	Skip   *AxSkipG   `  @@`
	Assign *AxAssignG `| @@`
	If     *AxIfG     `| @@`
	While  *AxWhileG  `| @@`
}

type AxSkipG struct {
	Pos lexer.Position
	Kw  string `@"skip" ";"`
}

type AxAssignG struct {
	Pos  lexer.Position
	Var  string `@Ident ":="`
	Expr *AexpG `@@ ";"`
}

type AxIfG struct {
	Pos  lexer.Position
	Cond *OrG      `"if" @@ "then"`
	Then *AxBlockG `@@ "else"`
	Else *AxBlockG `@@ "end"`
}

type AxWhileG struct {
	Pos  lexer.Position
	Cond *OrG      `"while" @@ "do"`
	Body *AxBlockG `@@ "end"`
}

// --- Plain (un-annotated) program: StmSeqG/StmAtomG ---

type StmSeqG struct {
	Pos    lexer.Position
	Stmts  []*StmAtomG `@@+`
}

type StmAtomG struct {
	Pos    lexer.Position
	Skip   *StmSkipG   `  @@`
	Assign *StmAssignG `| @@`
	If     *StmIfG     `| @@`
	While  *StmWhileG  `| @@`
}

type StmSkipG struct {
	Pos lexer.Position
	Kw  string `@"skip" ";"`
}

type StmAssignG struct {
	Pos  lexer.Position
	Var  string `@Ident ":="`
	Expr *AexpG `@@ ";"`
}

type StmIfG struct {
	Pos  lexer.Position
	Cond *OrG     `"if" @@ "then"`
	Then *StmSeqG `@@ "else"`
	Else *StmSeqG `@@ "end"`
}

type StmWhileG struct {
	Pos  lexer.Position
	Cond *OrG     `"while" @@ "do"`
	Body *StmSeqG `@@ "end"`
}

// --- Boolean expressions, low-to-high precedence: Or, And, Not, Rel/atom ---

type OrG struct {
	Pos  lexer.Position
	Left *AndG   `@@`
	Rest []*AndG `{ "||" @@ }`
}

type AndG struct {
	Pos  lexer.Position
	Left *NotG   `@@`
	Rest []*NotG `{ "&&" @@ }`
}

type NotG struct {
	Pos   lexer.Position
	Bang  bool        `[ @"!" ]`
	Inner *AtomBexpG  `@@`
}

type AtomBexpG struct {
	Pos   lexer.Position
	True  *string `  @"true"`
	False *string `| @"false"`
	Paren *OrG    `| "(" @@ ")"`
	Rel   *RelG   `| @@`
}

type RelG struct {
	Pos   lexer.Position
	Left  *SumG  `@@`
	Op    string `@( "=" | "#" | "<=" | ">=" | "<" | ">" )`
	Right *SumG  `@@`
}

// --- Arithmetic expressions, low-to-high precedence: Sum, Product, Pow, atom/ite ---

type AexpG struct {
	Pos lexer.Position
	Ite *AIteG `  @@`
	Sum *SumG  `| @@`
}

type AIteG struct {
	Pos  lexer.Position
	Cond *OrG   `"ite" "(" @@ ","`
	Then *AexpG `@@ ","`
	Else *AexpG `@@ ")"`
}

type SumG struct {
	Pos  lexer.Position
	Left *ProductG  `@@`
	Rest []*SumOpG  `{ @@ }`
}

type SumOpG struct {
	Pos   lexer.Position
	Op    string    `@( "+" | "-" )`
	Right *ProductG `@@`
}

type ProductG struct {
	Pos  lexer.Position
	Left *PowG         `@@`
	Rest []*ProductOpG `{ @@ }`
}

type ProductOpG struct {
	Pos   lexer.Position
	Op    string `@( "*" | "mod" )`
	Right *PowG  `@@`
}

type PowG struct {
	Pos   lexer.Position
	Left  *AtomG `@@`
	Right *PowG  `[ "^" @@ ]`
}

type AtomG struct {
	Pos   lexer.Position
	Num   *string `  @Int`
	Call  *CallG  `| @@`
	Var   *string `| @Ident`
	Paren *AexpG  `| "(" @@ ")"`
}

type CallG struct {
	Pos  lexer.Position
	Name string   `@Ident "("`
	Args []*AexpG `[ @@ { "," @@ } ] ")"`
}
