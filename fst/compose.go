package fst

// Compose builds the composition a∘b: a transducer mapping a's input
// alphabet to b's output alphabet via a's output / b's input as the
// shared, eliminated tape.
//
// Epsilon transitions on the shared tape are resolved with the standard
// three-way filter (Mohri, Pereira & Riley 1996; Mizobuchi et al's
// Mealy-machine composition in the teacher's own double-array builder
// faces the same "which side moves first" problem one state at a time).
// A composed state is (a-state, b-state, filter):
//
//   - filter 0: either side may take a real (shared-label) step, which
//     resets the filter to 0; a may additionally take an a-epsilon step
//     (its OLabel is symtab.Epsilon) moving to filter 1; b may take a
//     b-epsilon step (its ILabel is symtab.Epsilon) moving to filter 2;
//     or both take their epsilon steps together, staying in filter 0.
//   - filter 1: only a's epsilon steps and real steps are allowed; b is
//     blocked from taking its own epsilon step, so an eps:eps pair is
//     attributed to exactly one side and not double-counted.
//   - filter 2: symmetric, only b's epsilon steps and real steps allowed.
func Compose(a, b *FST) *FST {
	type key struct{ as, bs, filter int }

	out := &FST{}
	ids := make(map[key]int)
	stateOf := func(k key) int {
		if id, ok := ids[k]; ok {
			return id
		}
		id := out.AddState()
		ids[k] = id
		return id
	}

	start := key{a.Start, b.Start, 0}
	out.Start = stateOf(start)

	queue := []key{start}
	seen := map[key]bool{start: true}

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		from := stateOf(k)

		as, bs := a.States[k.as], b.States[k.bs]
		if as.Final && bs.Final {
			out.SetFinal(from, as.FinalWeight+bs.FinalWeight)
		}

		for _, arcA := range as.Arcs {
			// a takes an epsilon-on-the-shared-tape step (produces
			// nothing for b to consume): allowed unless b is mid-step
			// (filter 2).
			if arcA.OLabel == 0 {
				if k.filter == 2 {
					continue
				}
				nk := key{arcA.To, k.bs, 1}
				to := stateOf(nk)
				out.AddArc(from, arcA.ILabel, 0, arcA.Weight, to)
				if !seen[nk] {
					seen[nk] = true
					queue = append(queue, nk)
				}
				continue
			}
			for _, arcB := range bs.Arcs {
				if arcB.ILabel == arcA.OLabel {
					nk := key{arcA.To, arcB.To, 0}
					to := stateOf(nk)
					out.AddArc(from, arcA.ILabel, arcB.OLabel, arcA.Weight+arcB.Weight, to)
					if !seen[nk] {
						seen[nk] = true
						queue = append(queue, nk)
					}
				}
			}
		}

		// b takes an epsilon-on-the-shared-tape step (consumes nothing
		// from a): allowed unless a is mid-step (filter 1).
		if k.filter != 1 {
			for _, arcB := range bs.Arcs {
				if arcB.ILabel == 0 {
					nk := key{k.as, arcB.To, 2}
					to := stateOf(nk)
					out.AddArc(from, 0, arcB.OLabel, arcB.Weight, to)
					if !seen[nk] {
						seen[nk] = true
						queue = append(queue, nk)
					}
				}
			}
		}

		// a's and b's epsilon steps taken together (filter 0 only), so an
		// a-epsilon step directly followed by a b-epsilon step stays
		// reachable.
		if k.filter == 0 {
			for _, arcA := range as.Arcs {
				if arcA.OLabel != 0 {
					continue
				}
				for _, arcB := range bs.Arcs {
					if arcB.ILabel != 0 {
						continue
					}
					nk := key{arcA.To, arcB.To, 0}
					out.AddArc(from, arcA.ILabel, arcB.OLabel, arcA.Weight+arcB.Weight, stateOf(nk))
					if !seen[nk] {
						seen[nk] = true
						queue = append(queue, nk)
					}
				}
			}
		}
	}

	return out
}

// ComposeAll composes a sequence of transducers left to right; it is an
// error to call it with no arguments.
func ComposeAll(frags ...*FST) *FST {
	out := frags[0]
	for _, f := range frags[1:] {
		out = Compose(out, f)
	}
	return out
}
