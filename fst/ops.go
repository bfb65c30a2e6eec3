package fst

// Concat appends b after a: every final state of a gets an epsilon arc
// to b's start carrying a's former final weight, and loses its own
// finality (the path now continues into b). b's final states, offset
// into the combined state space, become the result's final states.
func Concat(a, b *FST) *FST {
	out := &FST{Start: a.Start}
	out.States = append(out.States, a.States...)
	offset := len(out.States)
	for _, s := range b.States {
		arcs := make([]Arc, len(s.Arcs))
		for i, arc := range s.Arcs {
			arcs[i] = Arc{ILabel: arc.ILabel, OLabel: arc.OLabel, Weight: arc.Weight, To: arc.To + offset}
		}
		out.States = append(out.States, State{Arcs: arcs, Final: s.Final, FinalWeight: s.FinalWeight})
	}

	bStart := b.Start + offset
	for i := range a.States {
		if out.States[i].Final {
			w := out.States[i].FinalWeight
			out.States[i].Final = false
			out.States[i].FinalWeight = 0
			out.States[i].Arcs = append(out.States[i].Arcs, Arc{ILabel: 0, OLabel: 0, Weight: w, To: bStart})
		}
	}
	return out
}

// ConcatAll concatenates a sequence of fragments in order; an empty
// sequence yields the empty-string acceptor. Used to build hyp_fst from
// the per-segment sausage fragments of spec.md §4.4.
func ConcatAll(frags []*FST) *FST {
	if len(frags) == 0 {
		return EmptyString()
	}
	out := frags[0]
	for _, f := range frags[1:] {
		out = Concat(out, f)
	}
	return out
}

// Union builds an automaton accepting every string either a or b
// accepts, via a fresh start state with epsilon arcs to both.
func Union(a, b *FST) *FST {
	out := &FST{}
	newStart := 0
	out.States = append(out.States, State{})
	offsetA := len(out.States)
	for _, s := range a.States {
		arcs := make([]Arc, len(s.Arcs))
		for i, arc := range s.Arcs {
			arcs[i] = Arc{ILabel: arc.ILabel, OLabel: arc.OLabel, Weight: arc.Weight, To: arc.To + offsetA}
		}
		out.States = append(out.States, State{Arcs: arcs, Final: s.Final, FinalWeight: s.FinalWeight})
	}
	offsetB := len(out.States)
	for _, s := range b.States {
		arcs := make([]Arc, len(s.Arcs))
		for i, arc := range s.Arcs {
			arcs[i] = Arc{ILabel: arc.ILabel, OLabel: arc.OLabel, Weight: arc.Weight, To: arc.To + offsetB}
		}
		out.States = append(out.States, State{Arcs: arcs, Final: s.Final, FinalWeight: s.FinalWeight})
	}
	out.Start = newStart
	out.States[newStart].Arcs = []Arc{
		{ILabel: 0, OLabel: 0, Weight: 0, To: a.Start + offsetA},
		{ILabel: 0, OLabel: 0, Weight: 0, To: b.Start + offsetB},
	}
	return out
}

// UnionAll unions a sequence of fragments; it is an error to call it
// with no fragments.
func UnionAll(frags []*FST) *FST {
	out := frags[0]
	for _, f := range frags[1:] {
		out = Union(out, f)
	}
	return out
}

// Closure builds the Kleene star of a (zero or more repetitions): a
// fresh start/final state s accepts the empty string for free, an
// epsilon arc leads into a's start, and each of a's final states gets an
// extra zero-cost epsilon loop-back into a's start (so the path may
// repeat freely; the original final weight is only paid once, at
// whichever repetition the path actually stops on).
func Closure(a *FST) *FST {
	out := &FST{}
	s := 0
	out.States = append(out.States, State{Final: true, FinalWeight: 0})
	offset := len(out.States)
	for _, st := range a.States {
		arcs := make([]Arc, len(st.Arcs))
		for i, arc := range st.Arcs {
			arcs[i] = Arc{ILabel: arc.ILabel, OLabel: arc.OLabel, Weight: arc.Weight, To: arc.To + offset}
		}
		out.States = append(out.States, State{Arcs: arcs, Final: st.Final, FinalWeight: st.FinalWeight})
	}
	out.Start = s
	aStart := a.Start + offset
	out.States[s].Arcs = append(out.States[s].Arcs, Arc{ILabel: 0, OLabel: 0, Weight: 0, To: aStart})

	for i, st := range a.States {
		if st.Final {
			idx := i + offset
			out.States[idx].Arcs = append(out.States[idx].Arcs, Arc{ILabel: 0, OLabel: 0, Weight: 0, To: aStart})
		}
	}
	return out
}

// Invert swaps the input and output label of every arc, turning a
// transducer T into T^-1.
func Invert(a *FST) *FST {
	out := clone(a)
	for i := range out.States {
		for j := range out.States[i].Arcs {
			arc := &out.States[i].Arcs[j]
			arc.ILabel, arc.OLabel = arc.OLabel, arc.ILabel
		}
	}
	return out
}

// RelabelFunc maps a label to a new label; isInput is true when relabeling
// an ILabel and false for an OLabel.
type RelabelFunc func(label int, isInput bool) int

// Relabel applies fn to every arc's input and output label.
func Relabel(a *FST, fn RelabelFunc) *FST {
	out := clone(a)
	for i := range out.States {
		for j := range out.States[i].Arcs {
			arc := &out.States[i].Arcs[j]
			arc.ILabel = fn(arc.ILabel, true)
			arc.OLabel = fn(arc.OLabel, false)
		}
	}
	return out
}
