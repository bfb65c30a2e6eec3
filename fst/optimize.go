package fst

import (
	"fmt"
	"sort"
)

// RemoveEpsilon eliminates arcs that are epsilon on both tapes
// (ILabel == OLabel == 0), folding their weight into whichever real arc
// or final weight follows them. This is the first stage of Optimize and
// a prerequisite for Determinize.
func RemoveEpsilon(f *FST) *FST {
	closure := make([]map[int]float64, len(f.States))
	for s := range f.States {
		closure[s] = epsilonClosure(f, s)
	}

	out := &FST{States: make([]State, len(f.States)), Start: f.Start}
	for s := range f.States {
		var final bool
		finalWeight := Inf
		var arcs []Arc
		for s2, w := range closure[s] {
			st := f.States[s2]
			if st.Final && w+st.FinalWeight < finalWeight {
				final = true
				finalWeight = w + st.FinalWeight
			}
			for _, arc := range st.Arcs {
				if arc.ILabel == 0 && arc.OLabel == 0 {
					continue
				}
				arcs = append(arcs, Arc{ILabel: arc.ILabel, OLabel: arc.OLabel, Weight: w + arc.Weight, To: arc.To})
			}
		}
		out.States[s] = State{Arcs: arcs, Final: final, FinalWeight: finalWeight}
		if !final {
			out.States[s].FinalWeight = 0
		}
	}
	return out
}

// epsilonClosure returns, for every state reachable from s via arcs that
// are epsilon on both tapes, the minimal cost to reach it (s itself maps
// to 0). Small local Dijkstra restricted to epsilon arcs.
func epsilonClosure(f *FST, s int) map[int]float64 {
	dist := map[int]float64{s: 0}
	pq := &priorityQueue{{state: s, dist: 0}}
	for pq.Len() > 0 {
		item := (*pq)[0]
		*pq = (*pq)[1:]
		if d, ok := dist[item.state]; ok && item.dist > d {
			continue
		}
		for _, arc := range f.States[item.state].Arcs {
			if arc.ILabel != 0 || arc.OLabel != 0 {
				continue
			}
			nd := dist[item.state] + arc.Weight
			if d, ok := dist[arc.To]; !ok || nd < d {
				dist[arc.To] = nd
				*pq = append(*pq, pqItem{state: arc.To, dist: nd})
				sort.Slice(*pq, func(i, j int) bool { return (*pq)[i].dist < (*pq)[j].dist })
			}
		}
	}
	return dist
}

// Reverse builds the language-reversed automaton: arcs run backwards, the
// old final states (with their final weights folded in as epsilon-arc
// weights) become the source of a fresh single start state, and the old
// start becomes the only final state. Used by Minimize.
func Reverse(f *FST) *FST {
	out := &FST{}
	newStart := out.AddState()
	offset := len(out.States)
	for range f.States {
		out.AddState()
	}
	for s, st := range f.States {
		for _, arc := range st.Arcs {
			out.AddArc(arc.To+offset, arc.ILabel, arc.OLabel, arc.Weight, s+offset)
		}
	}
	for s, st := range f.States {
		if st.Final {
			out.AddArc(newStart, 0, 0, st.FinalWeight, s+offset)
		}
	}
	out.Start = newStart
	out.SetFinal(f.Start+offset, 0)
	return out
}

// subsetKey canonicalizes a weighted subset of states for memoization.
func subsetKey(m map[int]float64) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	key := ""
	for _, k := range keys {
		key += fmt.Sprintf("%d:%g;", k, m[k])
	}
	return key
}

func normalizeSubset(m map[int]float64) (norm map[int]float64, lead float64) {
	lead = Inf
	for _, w := range m {
		if w < lead {
			lead = w
		}
	}
	norm = make(map[int]float64, len(m))
	for s, w := range m {
		norm[s] = w - lead
	}
	return norm, lead
}

// Determinize performs weighted subset construction. It assumes f is an
// acceptor (ILabel == OLabel on every arc), which holds for every FST
// this package builds from token sequences (ref_fst, hyp_fst and the
// tagger's token-level automaton); the two-factor edit transducer is
// intentionally never determinized; spec.md §9 notes an acyclic
// topological DP is an equally valid substitute for the tractability
// this buys, so this operator's payoff is smaller vocabularies and
// tagger automata, not correctness of the alignment itself.
func Determinize(f *FST) *FST {
	f = RemoveEpsilon(f)

	out := &FST{}
	ids := make(map[string]int)
	subsets := make(map[int]map[int]float64)

	initial, lead := normalizeSubset(map[int]float64{f.Start: 0})
	startID := out.AddState()
	ids[subsetKey(initial)] = startID
	subsets[startID] = initial
	out.Start = startID
	_ = lead

	queue := []int{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		subset := subsets[id]

		finalWeight := Inf
		final := false
		byLabel := make(map[int]map[int]float64)
		for s, w := range subset {
			st := f.States[s]
			if st.Final && w+st.FinalWeight < finalWeight {
				final = true
				finalWeight = w + st.FinalWeight
			}
			for _, arc := range st.Arcs {
				bucket := byLabel[arc.ILabel]
				if bucket == nil {
					bucket = make(map[int]float64)
					byLabel[arc.ILabel] = bucket
				}
				cand := w + arc.Weight
				if cur, ok := bucket[arc.To]; !ok || cand < cur {
					bucket[arc.To] = cand
				}
			}
		}
		if final {
			out.SetFinal(id, finalWeight)
		}

		labels := make([]int, 0, len(byLabel))
		for l := range byLabel {
			labels = append(labels, l)
		}
		sort.Ints(labels)

		for _, label := range labels {
			next, leadW := normalizeSubset(byLabel[label])
			k := subsetKey(next)
			to, ok := ids[k]
			if !ok {
				to = out.AddState()
				ids[k] = to
				subsets[to] = next
				queue = append(queue, to)
			}
			out.AddArc(id, label, label, leadW, to)
		}
	}
	return out
}

// Minimize applies Brzozowski's double-reversal algorithm: reversing and
// determinizing twice yields the minimal deterministic automaton for the
// same weighted language.
func Minimize(f *FST) *FST {
	return Determinize(Reverse(Determinize(Reverse(f))))
}

// Optimize runs the standard epsilon-removal + determinization +
// minimization pipeline named in spec.md §2.
func Optimize(f *FST) *FST {
	return Minimize(Determinize(RemoveEpsilon(f)))
}
