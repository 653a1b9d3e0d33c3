// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"impverify/internal/ast"
	"impverify/internal/funcs"
	"impverify/internal/interp"
	"impverify/internal/parser"
	"impverify/internal/replimp"
	"impverify/internal/report"
	"impverify/internal/solver"
	"impverify/internal/verify"
)

func usage() {
	fmt.Println("Usage: impverify <file> <run-big:true|false> <run-small:true|false> <run-axiomatic:partial|total|false>")
	fmt.Println("       impverify -repl")
}

func main() {
	args := os.Args[1:]
	repl := false
	var positional []string
	for _, a := range args {
		if a == "-repl" {
			repl = true
			continue
		}
		positional = append(positional, a)
	}

	if repl && len(positional) == 0 {
		replimp.Start(os.Stdin, os.Stdout)
		return
	}

	if len(positional) != 4 {
		usage()
		os.Exit(1)
	}

	path := positional[0]
	runBig, err := parseBoolArg("run-big", positional[1])
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
	runSmall, err := parseBoolArg("run-small", positional[2])
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
	axMode, runAx, err := parseAxiomaticArg(positional[3])
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	res, err := parser.ParseString(path, string(source))
	if err != nil {
		// parser already printed the caret-annotated diagnostic
		os.Exit(1)
	}

	r := report.New(os.Stdout, path, string(source))
	ok := true

	if runBig || runSmall {
		stm, bodyErr := executableBody(res)
		if bodyErr != nil {
			color.Red("%s", bodyErr)
			os.Exit(1)
		}
		if runBig {
			r.Trace("big-step execution")
			st := interp.NewState()
			final, runErr := interp.Run(stm, st)
			if runErr != nil {
				color.Red("ERROR %s", runErr)
				ok = false
			} else {
				r.Verified("big-step reached %s", formatState(final))
			}
		}
		if runSmall {
			r.Trace("small-step execution")
			st := interp.NewState()
			final, runErr := interp.RunSmallStep(stm, st)
			if runErr != nil {
				color.Red("ERROR %s", runErr)
				ok = false
			} else {
				r.Verified("small-step reached %s", formatState(final))
			}
		}
	}

	if runAx {
		block := res.AxBlock
		if block == nil {
			color.Red("ERROR run-axiomatic requested but the file has no annotated block")
			os.Exit(1)
		}

		table := funcs.NewTable()
		for _, fn := range res.Funcs {
			table.Declare(fn)
		}
		sess := solver.NewSession(solver.Z3Backend{}, table)

		r.Trace("axiomatic verification (%s mode)", modeName(axMode))
		acc := verify.Verify(block, sess, axMode)
		r.Summary(acc.Failures())
		if !acc.Ok() {
			ok = false
		}
	}

	if !ok {
		os.Exit(1)
	}
	color.Green("Successfully processed %s", path)
}

func parseBoolArg(name, v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be true or false, got %q", name, v)
	}
}

func parseAxiomaticArg(v string) (verify.Mode, bool, error) {
	switch v {
	case "false":
		return verify.Partial, false, nil
	case "true", "partial":
		return verify.Partial, true, nil
	case "total":
		return verify.Total, true, nil
	default:
		return verify.Partial, false, fmt.Errorf("run-axiomatic must be one of true|false|partial|total, got %q", v)
	}
}

func modeName(m verify.Mode) string {
	if m == verify.Total {
		return "total"
	}
	return "partial"
}

// executableBody returns the bare statement the interpreters run: the
// file's un-annotated Stm if present, or the observable skeleton of an
// AxBlock (its statements, stripped of assertions) otherwise.
func executableBody(res *parser.Result) (ast.Stm, error) {
	if res.Stm != nil {
		return res.Stm, nil
	}
	if res.AxBlock != nil {
		return ast.StripAssertions(res.AxBlock), nil
	}
	return nil, fmt.Errorf("file has neither a statement body nor an annotated block")
}

func formatState(s *interp.State) string {
	snap := s.Snapshot()
	if len(snap) == 0 {
		return "{}"
	}
	out := "{ "
	first := true
	for _, name := range sortedNames(snap) {
		if !first {
			out += ", "
		}
		first = false
		out += fmt.Sprintf("%s = %d", name, snap[name])
	}
	return out + " }"
}

func sortedNames(m map[string]int64) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}
