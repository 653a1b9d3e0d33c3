// Package ast defines the data model shared by the parser, the interpreters
// and the axiomatic verifier: arithmetic/boolean expressions, recursive
// function definitions, plain IMP statements, and the assertion-annotated
// forms the verifier actually checks.
package ast

import "fmt"

// Position locates a node in source text, 1-indexed like the teacher's
// errors/reporter box-drawing layout expects.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
