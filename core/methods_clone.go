// File: methods_clone.go
// Role: Deep copies of graph values and result maps.
// Determinism:
//   - Clones preserve node order and edge order exactly.
// Concurrency:
//   - Clones share no backing arrays or maps with their source.

package core

// Clone returns a deep copy of m. Neighbor slices are copied, not shared.
//
// Complexity: O(V + E).
func (m *AdjacencyMap) Clone() *AdjacencyMap {
	if m == nil {
		return nil
	}
	out := &AdjacencyMap{
		order: make([]string, len(m.order)),
		lists: make(map[string][]Neighbor, len(m.lists)),
	}
	copy(out.order, m.order)
	for id, nbrs := range m.lists {
		cp := make([]Neighbor, len(nbrs))
		copy(cp, nbrs)
		out.lists[id] = cp
	}

	return out
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)

	return &Graph{Nodes: g.Nodes.Clone(), Edges: edges}
}

// Clone returns an independent copy of d.
func (d DistanceMap) Clone() DistanceMap {
	if d == nil {
		return nil
	}
	out := make(DistanceMap, len(d))
	for k, v := range d {
		out[k] = v
	}

	return out
}

// Clone returns an independent copy of p.
func (p PredecessorMap) Clone() PredecessorMap {
	if p == nil {
		return nil
	}
	out := make(PredecessorMap, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}
