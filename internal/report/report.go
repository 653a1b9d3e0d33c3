// Package report renders accumulated diag.Failure values and the CLI's
// run-trace lines: one "checking ..." line per phase of a run, a
// "Verified." line per completed interpreter run, and a final success
// banner or failure report. Individual Hoare side-conditions are not
// traced as they are checked. The box-drawing layout is ported from the
// teacher's internal/errors ErrorReporter.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"impverify/internal/diag"
)

// Reporter formats diag.Failure values against one source file, the way
// the teacher's ErrorReporter is scoped to (filename, source).
type Reporter struct {
	out      io.Writer
	filename string
	lines    []string
}

func New(out io.Writer, filename, source string) *Reporter {
	return &Reporter{out: out, filename: filename, lines: strings.Split(source, "\n")}
}

// Trace prints a single "checking ..." progress line, matching the CLI
// contract's "human-readable trace" requirement.
func (r *Reporter) Trace(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "checking %s\n", fmt.Sprintf(format, args...))
}

// Verified prints a "Verified." success line; cmd/impverify prints one
// for each interpreter run that completes.
func (r *Reporter) Verified(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(r.out, "Verified. ")
	fmt.Fprintf(r.out, "%s\n", fmt.Sprintf(format, args...))
}

// Summary prints the final banner: green success, or a red count of
// failures followed by each one in full.
func (r *Reporter) Summary(failures []diag.Failure) {
	if len(failures) == 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(r.out, "✓ proof verified")
		return
	}

	color.New(color.FgRed, color.Bold).Fprintf(r.out, "✗ %d proof failure(s)\n\n", len(failures))
	for _, f := range failures {
		r.printFailure(f)
	}
}

func (r *Reporter) printFailure(f diag.Failure) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()

	fmt.Fprintf(r.out, "%s: %s\n", levelColor(string(f.Kind)), f.Message)
	fmt.Fprintf(r.out, "  %s %s\n", dim("-->"), f.Pos.String())

	if line := r.sourceLine(f.Pos.Line); line != "" {
		fmt.Fprintf(r.out, "  %s %s\n", dim("|"), line)
	}

	switch f.Kind {
	case diag.StructuralMismatch:
		fmt.Fprintf(r.out, "  %s statement: %s\n", dim("|"), bold(f.Statement))
		fmt.Fprintf(r.out, "  %s expected : %s\n", dim("|"), f.Expected)
		fmt.Fprintf(r.out, "  %s actual   : %s\n", dim("|"), f.Actual)
	case diag.EntailmentRefuted:
		fmt.Fprintf(r.out, "  %s premise    : %s\n", dim("|"), f.Premise)
		fmt.Fprintf(r.out, "  %s conclusion : %s\n", dim("|"), f.Conclusion)
		fmt.Fprintf(r.out, "  %s counter-model: %s\n", dim("|"), formatModel(f.CounterModel))
	case diag.EntailmentIndeterminate:
		fmt.Fprintf(r.out, "  %s premise    : %s\n", dim("|"), f.Premise)
		fmt.Fprintf(r.out, "  %s conclusion : %s\n", dim("|"), f.Conclusion)
		fmt.Fprintf(r.out, "  %s unable to decide (solver returned unknown)\n", dim("|"))
	}

	for _, note := range f.Notes {
		fmt.Fprintf(r.out, "  %s note: %s\n", dim("|"), note)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) sourceLine(line int) string {
	if line <= 0 || line > len(r.lines) {
		return ""
	}
	return r.lines[line-1]
}

func formatModel(model map[string]int64) string {
	if len(model) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s = %d", name, model[name])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
