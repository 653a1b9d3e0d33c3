package interp

import (
	"fmt"

	"impverify/internal/ast"
)

// Configuration is ⟨Stm, State⟩, or a terminal ⟨State⟩ when Stm is nil
// (ported from original_source/src/state.rs's Configuration enum).
type Configuration struct {
	Stm   ast.Stm
	State *State
}

// Terminal reports whether this configuration has no statement left to
// run.
func (c Configuration) Terminal() bool { return c.Stm == nil }

// Transition performs one small-step (ported from
// original_source/src/small_step.rs's `transition`). Calling it on a
// terminal configuration returns it unchanged.
func Transition(c Configuration) (Configuration, error) {
	if c.Terminal() {
		return c, nil
	}

	switch st := c.Stm.(type) {
	case *ast.Skip:
		return Configuration{State: c.State}, nil
	case *ast.Assign:
		v, err := EvalAexp(st.Expr, c.State)
		if err != nil {
			return Configuration{}, err
		}
		next := c.State.Clone()
		next.Set(st.Var, v)
		return Configuration{State: next}, nil
	case *ast.Seq:
		inner, err := Transition(Configuration{Stm: st.Left, State: c.State})
		if err != nil {
			return Configuration{}, err
		}
		if inner.Terminal() {
			return Configuration{Stm: st.Right, State: inner.State}, nil
		}
		return Configuration{Stm: &ast.Seq{Left: inner.Stm, Right: st.Right}, State: inner.State}, nil
	case *ast.If:
		cond, err := EvalBexp(st.Cond, c.State)
		if err != nil {
			return Configuration{}, err
		}
		if cond {
			return Configuration{Stm: st.Then, State: c.State}, nil
		}
		return Configuration{Stm: st.Else, State: c.State}, nil
	case *ast.While:
		// while b do S  ~>  if b then (S; while b do S) else skip
		unrolled := &ast.If{
			Cond: st.Cond,
			Then: &ast.Seq{Left: st.Body, Right: st},
			Else: &ast.Skip{},
		}
		return Configuration{Stm: unrolled, State: c.State}, nil
	default:
		return Configuration{}, fmt.Errorf("interp: unhandled statement %T", c.Stm)
	}
}

// SOS is an iterator over the small-step sequence of configurations,
// initial and final inclusive (spec.md §4.7). It mirrors the shape of
// original_source/src/small_step.rs's SOS iterator, adapted to Go's
// pull-style iteration instead of Rust's Iterator trait.
type SOS struct {
	config Configuration
	done   bool
	err    error
}

// NewSOS starts an iteration at ⟨stm, s⟩.
func NewSOS(stm ast.Stm, s *State) *SOS {
	return &SOS{config: Configuration{Stm: stm, State: s}}
}

// Next returns the next configuration in the sequence and true, or a
// zero Configuration and false once the terminal configuration has
// already been yielded (or a transition failed — check Err).
func (it *SOS) Next() (Configuration, bool) {
	if it.done {
		return Configuration{}, false
	}
	old := it.config
	if old.Terminal() {
		it.done = true
		return old, true
	}

	next, err := Transition(it.config)
	if err != nil {
		it.err = err
		it.done = true
		return Configuration{}, false
	}
	it.config = next
	return old, true
}

// Err returns the error that stopped iteration early, if any.
func (it *SOS) Err() error { return it.err }

// RunSmallStep drains the iterator to its terminal configuration's State,
// equivalent to Run in bigstep.go but through the small-step relation —
// used by internal/interp's tests to check big-step/small-step agreement
// (spec.md §8 testable property 4) and by cmd/impverify's run-small mode.
func RunSmallStep(stm ast.Stm, s *State) (*State, error) {
	it := NewSOS(stm, s)
	var last Configuration
	for {
		cfg, ok := it.Next()
		if !ok {
			break
		}
		last = cfg
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return last.State, nil
}
