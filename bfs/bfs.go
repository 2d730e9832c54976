// Package bfs provides breadth-first search over a core.AdjacencyMap,
// returning hop distances and visit order.
//
// The adjacency map already encodes two-way edges as mirror entries, so a
// traversal from any node explores exactly what the map says is reachable.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/pathlab/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	adj   *core.AdjacencyMap
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on adj starting from startID.
// Neighbors are enqueued in adjacency order, so the visit sequence is
// reproducible for a given map.
// Returns ErrAdjacencyNil or ErrStartVertexNotFound.
func BFS(adj *core.AdjacencyMap, startID string) (*Result, error) {
	if adj == nil {
		return nil, ErrAdjacencyNil
	}
	if !adj.Has(startID) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, startID)
	}

	n := adj.Len()
	w := &walker{
		adj:   adj,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order: make([]string, 0, n),
			Depth: make(map[string]int, n),
		},
	}

	w.enqueue(startID, 0)
	w.loop()

	return w.res, nil
}

// enqueue marks id visited at depth d and adds it to the queue.
func (w *walker) enqueue(id string, d int) {
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		for _, nb := range w.adj.Neighbors(item.id) {
			if !w.res.Visited(nb.Target) {
				w.enqueue(nb.Target, item.depth+1)
			}
		}
	}
}
