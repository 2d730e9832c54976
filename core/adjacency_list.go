package core

import (
	"bytes"
	"encoding/json"
)

// AdjacencyMap maps each node to its ordered outgoing neighbors.
//
// Nodes are kept in first-reference order. That order is observable: it picks
// the root of the connectivity check and the node listing of rendered output,
// so two parses of the same text always agree.
type AdjacencyMap struct {
	order []string
	lists map[string][]Neighbor
}

// NewAdjacencyMap returns an empty map.
func NewAdjacencyMap() *AdjacencyMap {
	return &AdjacencyMap{lists: make(map[string][]Neighbor)}
}

// Ensure registers id with an empty neighbor list if it is not yet known.
func (m *AdjacencyMap) Ensure(id string) {
	if _, ok := m.lists[id]; ok {
		return
	}
	m.order = append(m.order, id)
	m.lists[id] = []Neighbor{}
}

// Append adds nb to the end of from's neighbor list, registering from if needed.
func (m *AdjacencyMap) Append(from string, nb Neighbor) {
	m.Ensure(from)
	m.lists[from] = append(m.lists[from], nb)
}

// Has reports whether id is a known node.
func (m *AdjacencyMap) Has(id string) bool {
	if m == nil {
		return false
	}
	_, ok := m.lists[id]

	return ok
}

// Neighbors returns the neighbor list of id, or nil if id is unknown.
// The returned slice must not be modified.
func (m *AdjacencyMap) Neighbors(id string) []Neighbor {
	if m == nil {
		return nil
	}

	return m.lists[id]
}

// Nodes returns a copy of the node IDs in first-reference order.
func (m *AdjacencyMap) Nodes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)

	return out
}

// First returns the first registered node, or "" for an empty map.
func (m *AdjacencyMap) First() string {
	if len(m.order) == 0 {
		return ""
	}

	return m.order[0]
}

// Len returns the number of nodes.
func (m *AdjacencyMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.order)
}

// MarshalJSON encodes the map as a JSON object whose keys follow node order.
func (m *AdjacencyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.lists[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
