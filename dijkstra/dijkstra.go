// Package dijkstra implements Dijkstra's shortest-path algorithm over a
// core.AdjacencyMap and records the engine state after every processed node.
//
// Notes on implementation choices:
//
//   - We scan all adjacency entries upfront (O(E)) and fail fast on a negative weight.
//   - We use a “lazy” decrease-key strategy: improved distances push a new heap
//     entry and outdated entries are dropped when popped (d > dist[node]).
//   - Heap entries are ordered by (distance, insertion sequence). Equal
//     distances therefore leave the heap first-in first-out, which makes the
//     order of recorded snapshots reproducible.
//   - A snapshot is recorded once per processed node, never for a stale entry.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/pathlab/core"
)

// Run computes shortest distances from start to every node of adj.
//
// Preconditions and validation (in order):
//  1. adj must be non-nil (ErrNilAdjacency).
//  2. adj must contain start (ErrUnknownStartNode).
//  3. No adjacency entry may have a negative weight (ErrNegativeWeight).
//
// Unreached nodes end with Distance core.Infinity and no predecessor.
func Run(adj *core.AdjacencyMap, start string, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if adj == nil {
		return nil, ErrNilAdjacency
	}
	if !adj.Has(start) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStartNode, start)
	}

	// 3) Pre-scan for negative weights
	order := adj.Nodes()
	for _, u := range order {
		for _, nb := range adj.Neighbors(u) {
			if nb.Weight < 0 {
				return nil, fmt.Errorf("%w: edge %s→%s weight=%d", ErrNegativeWeight, u, nb.Target, nb.Weight)
			}
		}
	}

	// 4) Prepare runner state
	r := &runner{
		adj:     adj,
		options: cfg,
		res: &Result{
			Start:        start,
			Order:        order,
			Distances:    make(core.DistanceMap, len(order)),
			Predecessors: make(core.PredecessorMap, len(order)),
			Iterations:   []Iteration{},
		},
		pq: make(nodePQ, 0, len(order)),
	}

	// 5) Initialize and run the main loop
	r.init()
	r.process()

	return r.res, nil
}

// runner holds the mutable state for a single execution.
type runner struct {
	adj     *core.AdjacencyMap
	options Options
	res     *Result
	pq      nodePQ
	seq     uint64 // insertion counter for FIFO tie-break
}

// init sets every distance to +∞, the start to 0, records step 0 and seeds the heap.
func (r *runner) init() {
	for _, v := range r.res.Order {
		r.res.Distances[v] = core.Infinity
		r.res.Predecessors[v] = ""
	}
	r.res.Distances[r.res.Start] = 0

	r.snapshot(0, StartMarker)

	heap.Init(&r.pq)
	r.push(r.res.Start, 0)
}

// process pops entries until the heap is empty. Stale entries are skipped
// without a snapshot; every other pop relaxes the node and records a step.
func (r *runner) process() {
	step := 1
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if item.dist > r.res.Distances[item.id] {
			continue
		}

		r.relax(item.id)
		r.snapshot(step, item.id)
		r.options.OnProcess(step, item.id)
		step++
	}
}

// relax tries to improve every neighbor of u through u.
// Only a strict improvement updates the maps and pushes a heap entry.
func (r *runner) relax(u string) {
	du := r.res.Distances[u]
	for _, nb := range r.adj.Neighbors(u) {
		alt := du.Add(nb.Weight)
		if alt >= r.res.Distances[nb.Target] {
			continue
		}
		r.res.Distances[nb.Target] = alt
		r.res.Predecessors[nb.Target] = u
		r.push(nb.Target, alt)
	}
}

func (r *runner) push(id string, d core.Distance) {
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
	r.seq++
}

// snapshot appends a deep copy of the current maps.
func (r *runner) snapshot(step int, current string) {
	if !r.options.Trace {
		return
	}
	r.res.Iterations = append(r.res.Iterations, Iteration{
		Step:         step,
		Current:      current,
		Distances:    r.res.Distances.Clone(),
		Predecessors: r.res.Predecessors.Clone(),
	})
}

// nodeItem is a heap entry: a node, the tentative distance it was pushed
// with, and its insertion sequence.
type nodeItem struct {
	id   string
	dist core.Distance
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, seq).
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by distance, then by insertion order.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element; heap.Pop has already moved the
// minimum there.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
