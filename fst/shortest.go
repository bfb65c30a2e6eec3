package fst

import "container/heap"

// pqItem is a Dijkstra frontier entry; ties in distance are broken by
// state id, which is assigned deterministically at construction time
// (see Compose), so the search order - and therefore any tie it resolves
// - is reproducible across runs.
type pqItem struct {
	state int
	dist  float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].state < pq[j].state
}
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)        { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestDistance computes, via Dijkstra (all weights here are
// non-negative, so it applies even though the underlying graph may have
// cycles from closures), the minimal cost from the start state to every
// reachable state.
func ShortestDistance(f *FST) []float64 {
	dist := make([]float64, len(f.States))
	for i := range dist {
		dist[i] = Inf
	}
	dist[f.Start] = 0

	pq := &priorityQueue{{state: f.Start, dist: 0}}
	heap.Init(pq)
	done := make([]bool, len(f.States))

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if done[item.state] {
			continue
		}
		done[item.state] = true

		for _, arc := range f.States[item.state].Arcs {
			nd := dist[item.state] + arc.Weight
			if nd < dist[arc.To] {
				dist[arc.To] = nd
				heap.Push(pq, pqItem{state: arc.To, dist: nd})
			}
		}
	}
	return dist
}

// Path is the arc sequence and total weight of a single best path.
type Path struct {
	Arcs   []Arc
	Weight float64
}

// ShortestPath extracts the single minimum-cost path from start to any
// final state, with predecessor arcs chosen in deterministic (arc-slice)
// order so re-running on the same FST reproduces the same path - this is
// spec.md's "reject if L is empty" / "extract the unique shortest path"
// step. ok is false when no final state is reachable (the empty-lattice
// fatal error case, spec.md §7).
func ShortestPath(f *FST) (path Path, ok bool) {
	type pred struct {
		from int
		arc  Arc
		set  bool
	}

	dist := make([]float64, len(f.States))
	prev := make([]pred, len(f.States))
	for i := range dist {
		dist[i] = Inf
	}
	dist[f.Start] = 0

	pq := &priorityQueue{{state: f.Start, dist: 0}}
	heap.Init(pq)
	done := make([]bool, len(f.States))

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if done[item.state] {
			continue
		}
		done[item.state] = true

		for _, arc := range f.States[item.state].Arcs {
			nd := dist[item.state] + arc.Weight
			if nd < dist[arc.To] {
				dist[arc.To] = nd
				prev[arc.To] = pred{from: item.state, arc: arc, set: true}
				heap.Push(pq, pqItem{state: arc.To, dist: nd})
			}
		}
	}

	best := -1
	bestWeight := Inf
	for i, s := range f.States {
		if !done[i] || !s.Final {
			continue
		}
		w := dist[i] + s.FinalWeight
		if w < bestWeight {
			bestWeight = w
			best = i
		}
	}
	if best == -1 {
		return Path{}, false
	}

	var arcs []Arc
	cur := best
	for cur != f.Start || prev[cur].set {
		p := prev[cur]
		if !p.set {
			break
		}
		arcs = append(arcs, p.arc)
		cur = p.from
	}
	for i, j := 0, len(arcs)-1; i < j; i, j = i+1, j-1 {
		arcs[i], arcs[j] = arcs[j], arcs[i]
	}

	return Path{Arcs: arcs, Weight: bestWeight}, true
}
