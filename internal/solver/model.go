package solver

import (
	"fmt"
	"strconv"
	"strings"
)

// parseModel extracts an int64 value for each of want from a z3-style
// (get-model) response:
//
//	(
//	  (define-fun v_x () Int 5)
//	  (define-fun v_y () Int (- 3))
//	)
//
// want holds the surface (unprefixed) variable names; the counter-model
// returned to callers is keyed the same way (spec.md §4.3: the model
// reported alongside a Refuted outcome is "projected onto the union of
// P's and Q's free variables", in source vocabulary).
func parseModel(text string, want map[string]struct{}) (map[string]int64, error) {
	toks := tokenize(text)
	pos := 0
	defs := make(map[string]int64)

	for pos < len(toks) {
		if toks[pos] != "(" {
			pos++
			continue
		}
		// look for (define-fun NAME () Int VALUE)
		if pos+1 < len(toks) && toks[pos+1] == "define-fun" {
			name, val, next, ok := parseDefineFun(toks, pos)
			if ok {
				defs[strings.TrimPrefix(name, "v_")] = val
				pos = next
				continue
			}
		}
		pos++
	}

	out := make(map[string]int64, len(want))
	for name := range want {
		if v, ok := defs[name]; ok {
			out[name] = v
		} else {
			out[name] = 0
		}
	}
	return out, nil
}

// parseDefineFun expects toks[start] == "(" and toks[start+1] ==
// "define-fun", and returns the symbol name, its integer value, and the
// token index just past the closing paren of the whole define-fun form.
func parseDefineFun(toks []string, start int) (string, int64, int, bool) {
	i := start + 2
	if i >= len(toks) {
		return "", 0, 0, false
	}
	name := toks[i]
	i++
	// expect "(" ")" (empty parameter list) then a sort symbol
	if i >= len(toks) || toks[i] != "(" {
		return "", 0, 0, false
	}
	i++
	if i >= len(toks) || toks[i] != ")" {
		return "", 0, 0, false
	}
	i++
	if i >= len(toks) { // sort symbol (Int, Bool, ...); skip
		return "", 0, 0, false
	}
	i++

	val, next, ok := parseIntValue(toks, i)
	if !ok {
		return "", 0, 0, false
	}
	// consume the define-fun's own closing paren
	depth := 0
	for j := start; j < next; j++ {
		if toks[j] == "(" {
			depth++
		} else if toks[j] == ")" {
			depth--
		}
	}
	j := next
	for j < len(toks) && depth > 0 {
		if toks[j] == "(" {
			depth++
		} else if toks[j] == ")" {
			depth--
		}
		j++
	}
	return name, val, j, true
}

// parseIntValue parses a numeral, possibly wrapped in a unary-minus
// s-expression `(- N)`, at toks[i].
func parseIntValue(toks []string, i int) (int64, int, bool) {
	if i >= len(toks) {
		return 0, 0, false
	}
	if toks[i] == "(" {
		if i+3 < len(toks) && toks[i+1] == "-" {
			n, err := strconv.ParseInt(toks[i+2], 10, 64)
			if err != nil {
				return 0, 0, false
			}
			if toks[i+3] == ")" {
				return -n, i + 4, true
			}
		}
		return 0, 0, false
	}
	n, err := strconv.ParseInt(toks[i], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return n, i + 1, true
}

// tokenize splits an S-expression document into "(", ")" and atom tokens.
func tokenize(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

// errUnexpectedSat is returned by a Backend when the solver's first
// output line is not one of sat/unsat/unknown.
func errUnexpectedSat(line string) error {
	return fmt.Errorf("solver: unexpected check-sat response %q", line)
}
