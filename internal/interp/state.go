// Package interp implements the two reference interpreters (spec.md §4.7
// C8, out-of-core): a big-step evaluator and a small-step iterator of
// configurations, sharing one mutable variable store.
package interp

// State is a variable→integer store; an unset name reads as zero
// (spec.md §4.7, ported from original_source/src/state.rs's
// HashMap<Var,i64> with a zero default).
type State struct {
	vars map[string]int64
}

// NewState returns an empty store.
func NewState() *State {
	return &State{vars: make(map[string]int64)}
}

// Get returns the value bound to name, or 0 if unset.
func (s *State) Get(name string) int64 {
	return s.vars[name]
}

// Set binds name to v.
func (s *State) Set(name string, v int64) {
	s.vars[name] = v
}

// Clone returns an independent copy, used by the small-step transition so
// that earlier yielded configurations are never mutated by a later step.
func (s *State) Clone() *State {
	cp := make(map[string]int64, len(s.vars))
	for k, v := range s.vars {
		cp[k] = v
	}
	return &State{vars: cp}
}

// Snapshot returns the store's bindings as a plain map, for printing.
func (s *State) Snapshot() map[string]int64 {
	return s.Clone().vars
}
