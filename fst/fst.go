// Package fst implements the weighted finite-state acceptor/transducer
// kernel the aligner is built on: union, concatenation, closure,
// composition, inversion, relabeling, epsilon-removal, determinization,
// minimization, shortest-distance and shortest-path over the tropical
// semiring (min, +).
//
// States and labels are plain ints; label 0 is always epsilon, matching
// symtab.Epsilon. Weights are float64 and combine with +; the semiring's
// ⊕ is min, so a lower weight always wins.
package fst

import "math"

// Inf is the tropical semiring's ⊕-identity: an unreachable/non-final
// weight.
const Inf = math.MaxFloat64 / 4

// Arc is a single weighted transition.
type Arc struct {
	ILabel int
	OLabel int
	Weight float64
	To     int
}

// State holds its outgoing arcs and final weight.
type State struct {
	Arcs        []Arc
	Final       bool
	FinalWeight float64
}

// FST is a weighted finite-state transducer (or acceptor, when every arc
// has ILabel == OLabel).
type FST struct {
	States []State
	Start  int
}

// New returns an FST with a single, non-final start state.
func New() *FST {
	return &FST{States: []State{{}}, Start: 0}
}

// AddState appends a new, non-final state and returns its id.
func (f *FST) AddState() int {
	f.States = append(f.States, State{})
	return len(f.States) - 1
}

// AddArc adds a transition from `from` to `to` consuming ilabel and
// emitting olabel at the given weight.
func (f *FST) AddArc(from, ilabel, olabel int, weight float64, to int) {
	f.States[from].Arcs = append(f.States[from].Arcs, Arc{
		ILabel: ilabel,
		OLabel: olabel,
		Weight: weight,
		To:     to,
	})
}

// SetFinal marks state as final with the given weight.
func (f *FST) SetFinal(state int, weight float64) {
	f.States[state].Final = true
	f.States[state].FinalWeight = weight
}

// NumStates returns the number of states.
func (f *FST) NumStates() int {
	return len(f.States)
}

// LinearAcceptor builds a chain acceptor for the given symbol ids: state
// i has a single arc (id,id,0) to state i+1; the last state is final
// with weight 0. Used to build ref_fst and raw_hyp_fst (spec.md §4.6).
func LinearAcceptor(ids []int) *FST {
	f := New()
	cur := f.Start
	for _, id := range ids {
		next := f.AddState()
		f.AddArc(cur, id, id, 0, next)
		cur = next
	}
	f.SetFinal(cur, 0)
	return f
}

// Symbol builds the smallest possible fragment: one arc from a fresh
// start state to a fresh final state.
func Symbol(ilabel, olabel int, weight float64) *FST {
	f := New()
	end := f.AddState()
	f.AddArc(f.Start, ilabel, olabel, weight, end)
	f.SetFinal(end, 0)
	return f
}

// EmptyString builds the acceptor for the empty string (start == only
// final state, weight 0).
func EmptyString() *FST {
	f := New()
	f.SetFinal(f.Start, 0)
	return f
}

// clone deep-copies states so operations can freely mutate their own
// working copy without aliasing the caller's FST.
func clone(f *FST) *FST {
	out := &FST{States: make([]State, len(f.States)), Start: f.Start}
	for i, s := range f.States {
		arcs := make([]Arc, len(s.Arcs))
		copy(arcs, s.Arcs)
		out.States[i] = State{Arcs: arcs, Final: s.Final, FinalWeight: s.FinalWeight}
	}
	return out
}
