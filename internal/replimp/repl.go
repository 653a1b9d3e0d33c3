// Package replimp is an interactive line-oriented shell over the
// big-step interpreter (SPEC_FULL.md §4.8): it reads statements, one
// chunk per blank-line-terminated block, against a State that persists
// across chunks. Grounded on the teacher's repl.Start loop shape
// (bufio.Scanner prompt loop), generalized from printing a parsed AST to
// running it and reporting the resulting bindings.
package replimp

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"impverify/internal/interp"
	"impverify/internal/parser"
)

const prompt = "imp> "

// Start runs the REPL loop against out until in is exhausted. Each chunk
// (one or more non-blank lines) is parsed as a bare statement sequence
// and executed against a State shared across chunks within the session.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	state := interp.NewState()
	chunk := 0

	for {
		fmt.Fprint(out, prompt)
		lines, ok := readChunk(scanner)
		if !ok {
			return
		}
		if strings.TrimSpace(strings.Join(lines, "\n")) == "" {
			continue
		}
		chunk++

		src := strings.Join(lines, "\n")
		res, err := parser.ParseString(fmt.Sprintf("<repl:%d>", chunk), src)
		if err != nil {
			continue // reportParseError already printed a diagnostic
		}
		if res.Stm == nil {
			fmt.Fprintln(out, color.YellowString("repl only accepts bare statements, not annotated blocks"))
			continue
		}

		final, err := interp.Run(res.Stm, state)
		if err != nil {
			fmt.Fprintln(out, color.RedString("error: %s", err))
			continue
		}
		state = final
		printState(out, state)
	}
}

// readChunk collects lines until a blank line or EOF, returning false
// only when nothing at all was read before EOF.
func readChunk(scanner *bufio.Scanner) ([]string, bool) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			return lines, true
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, false
	}
	return lines, true
}

func printState(out io.Writer, s *interp.State) {
	snap := s.Snapshot()
	names := make([]string, 0, len(snap))
	for n := range snap {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, "  %s = %d\n", n, snap[n])
	}
}
