// File: types.go
// Role: Edge, EdgeType, Neighbor and Graph declarations plus sentinel errors.
// Determinism:
//   - Graph.Edges keeps parse order; CanonicalEdges preserves that order.
// Concurrency:
//   - Values are plain data. A Graph is immutable once handed to the store.

package core

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that a node identifier is the empty string.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrBadNodeID indicates that a node identifier contains characters
	// outside [A-Za-z0-9].
	ErrBadNodeID = errors.New("core: node ID must be alphanumeric")

	// ErrUnknownOperator indicates that an edge operator is not one of ->, -- or <->.
	ErrUnknownOperator = errors.New("core: unknown edge operator")
)

// NodeIDPattern is the regular expression fragment a node identifier must match.
// Parsers embed it so that the rule lives in one place.
const NodeIDPattern = `[A-Za-z0-9]+`

var nodeIDPattern = regexp.MustCompile(`^` + NodeIDPattern + `$`)

// ValidNodeID reports whether id is acceptable as a node identifier.
// Returns nil, ErrEmptyNodeID or a wrapped ErrBadNodeID.
func ValidNodeID(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if !nodeIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrBadNodeID, id)
	}

	return nil
}

// EdgeType classifies how an edge may be traversed.
type EdgeType int

const (
	// Directed edges are traversable only from Source to Target ("->").
	Directed EdgeType = iota

	// Undirected edges are traversable both ways ("--").
	Undirected

	// Bidirectional edges are traversable both ways and are drawn with
	// arrows on both ends ("<->").
	Bidirectional
)

// String returns the lower-case name of the edge type.
func (t EdgeType) String() string {
	switch t {
	case Directed:
		return "directed"
	case Undirected:
		return "undirected"
	case Bidirectional:
		return "bidirectional"
	default:
		return fmt.Sprintf("EdgeType(%d)", int(t))
	}
}

// Operator returns the edge-list operator for t.
func (t EdgeType) Operator() string {
	switch t {
	case Undirected:
		return "--"
	case Bidirectional:
		return "<->"
	default:
		return "->"
	}
}

// TwoWay reports whether the edge type is traversable in both directions.
func (t EdgeType) TwoWay() bool {
	return t == Undirected || t == Bidirectional
}

// MarshalText encodes the type by name.
func (t EdgeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseOperator maps an edge-list operator back to its EdgeType.
func ParseOperator(op string) (EdgeType, error) {
	switch op {
	case "->":
		return Directed, nil
	case "--":
		return Undirected, nil
	case "<->":
		return Bidirectional, nil
	default:
		return Directed, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}

// Edge is a weighted connection between two nodes.
//
// Literal keeps the weight token exactly as written in the source text so that
// a non-integer token can be reported by validation. Edges built in code leave
// it empty.
//
// IsReverse marks the synthetic mirror of an Undirected or Bidirectional edge.
// Mirrors keep the Type of the edge they were generated from.
type Edge struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Weight    int64    `json:"weight"`
	Literal   string   `json:"-"`
	Type      EdgeType `json:"type"`
	IsReverse bool     `json:"isReverse"`
}

// Reverse returns the synthetic mirror of e.
func (e Edge) Reverse() Edge {
	return Edge{
		Source:    e.Target,
		Target:    e.Source,
		Weight:    e.Weight,
		Literal:   e.Literal,
		Type:      e.Type,
		IsReverse: !e.IsReverse,
	}
}

// String renders e in edge-list syntax, e.g. "A -> B 4".
func (e Edge) String() string {
	return fmt.Sprintf("%s %s %s %d", e.Source, e.Type.Operator(), e.Target, e.Weight)
}

// Neighbor is one adjacency entry: a reachable node and the cost to reach it.
type Neighbor struct {
	Target string `json:"target"`
	Weight int64  `json:"weight"`
}

// Graph bundles the adjacency structure with the flat edge list it was built from.
//
// Nodes holds every referenced node, including those without outgoing edges.
// Edges holds canonical edges and their reverse mirrors, in parse order.
type Graph struct {
	Nodes *AdjacencyMap `json:"nodes"`
	Edges []Edge        `json:"edges"`
}

// NewGraph returns an empty Graph ready for AddEdge.
func NewGraph() *Graph {
	return &Graph{Nodes: NewAdjacencyMap()}
}

// AddEdge appends e and its adjacency entries.
//
// Implementation:
//   - Stage 1: Record e and a forward adjacency entry Source→Target.
//   - Stage 2: Ensure Target is known even without outgoing edges.
//   - Stage 3: For two-way types, record the mirror edge and Target→Source.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
	g.Nodes.Append(e.Source, Neighbor{Target: e.Target, Weight: e.Weight})
	g.Nodes.Ensure(e.Target)

	if e.Type.TwoWay() {
		g.Edges = append(g.Edges, e.Reverse())
		g.Nodes.Append(e.Target, Neighbor{Target: e.Source, Weight: e.Weight})
	}
}

// CanonicalEdges returns the edges that were written by the user, skipping
// reverse mirrors. Order is preserved.
func (g *Graph) CanonicalEdges() []Edge {
	out := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !e.IsReverse {
			out = append(out, e)
		}
	}

	return out
}

// HasDirected reports whether any canonical edge is Directed or Bidirectional.
func HasDirected(edges []Edge) bool {
	for _, e := range edges {
		if e.IsReverse {
			continue
		}
		if e.Type == Directed || e.Type == Bidirectional {
			return true
		}
	}

	return false
}
