package parser

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var (
	buildOnce sync.Once
	built     *participle.Parser[ProgramG]
	buildErr  error
)

func parserInstance() (*participle.Parser[ProgramG], error) {
	buildOnce.Do(func() {
		built, buildErr = participle.Build[ProgramG](
			participle.Lexer(Lexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(3),
		)
	})
	return built, buildErr
}

// ParseFile reads and parses a source file, returning the lowered
// program. On a syntax error it prints a caret-annotated diagnostic to
// standard output (spec.md §6.3) and returns the underlying participle
// error.
func ParseFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source text already in memory, attributing
// positions to the given filename.
func ParseString(filename, source string) (*Result, error) {
	p, err := parserInstance()
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	tree, err := p.ParseString(filename, source)
	if err != nil {
		reportParseError(source, err)
		return nil, err
	}
	return lowerProgram(tree), nil
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
