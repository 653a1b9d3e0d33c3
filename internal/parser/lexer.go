package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer is a stateful lexer built the same way the teacher's
// grammar.KansoLexer is: one "Root" state, longest-match-first rule
// ordering (identifiers before keywords are handled by literal matching
// in grammar.go, not by separate keyword tokens).
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `[0-9]+`, nil},
		{"Op", `(:=|\|-|&&|\|\||<=|>=|[-+*%^<>=(){};,#!])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
