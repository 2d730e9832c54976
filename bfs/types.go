// Package bfs provides error definitions and the result type
// for breadth-first search over a core.AdjacencyMap.
package bfs

import "errors"

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start ID is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrAdjacencyNil is returned if a nil adjacency map is passed.
	ErrAdjacencyNil = errors.New("bfs: adjacency map is nil")
)

// Result holds the outcome of a BFS traversal:
//   - Order: vertices visited, in visit sequence.
//   - Depth: map from vertex ID to its distance (in edges) from the start.
type Result struct {
	Order []string
	Depth map[string]int
}

// Visited reports whether id was reached.
func (r *Result) Visited(id string) bool {
	_, ok := r.Depth[id]
	return ok
}
