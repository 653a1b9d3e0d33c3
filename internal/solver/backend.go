package solver

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Z3Backend drives the real z3 binary as a one-shot subprocess per query
// (spec.md §3: solver instances live no longer than one entailment
// check). z3 is invoked in "-in" mode, reading the whole script from
// stdin and printing its responses to stdout before exiting.
type Z3Backend struct {
	// Path to the z3 executable; defaults to "z3" on PATH when empty.
	Path string
}

func (z Z3Backend) binary() string {
	if z.Path != "" {
		return z.Path
	}
	return "z3"
}

func (z Z3Backend) Solve(ctx context.Context, script string) (string, string, error) {
	cmd := exec.CommandContext(ctx, z.binary(), "-in")
	cmd.Stdin = strings.NewReader(script)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "unknown", "", nil
		}
		return "", "", fmt.Errorf("solver: running z3: %w", err)
	}

	return splitZ3Output(string(out))
}

// splitZ3Output separates the leading sat/unsat/unknown line from the
// trailing (get-model) s-expression, if any.
func splitZ3Output(output string) (string, string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	if !scanner.Scan() {
		return "", "", fmt.Errorf("solver: empty z3 output")
	}
	first := strings.TrimSpace(scanner.Text())
	switch first {
	case "sat", "unsat", "unknown":
	default:
		return "", "", errUnexpectedSat(first)
	}

	rest := strings.TrimPrefix(output, first)
	return first, strings.TrimSpace(rest), nil
}

// FakeBackend is an in-process stand-in for z3, used by tests so the
// suite is hermetic (spec.md §7: "no real z3 binary is required to run
// the test suite"). It resolves each query with a caller-supplied
// function rather than parsing SMT-LIB2 itself.
type FakeBackend struct {
	Resolve func(script string) (sat string, modelText string, err error)
}

func (f FakeBackend) Solve(_ context.Context, script string) (string, string, error) {
	return f.Resolve(script)
}
