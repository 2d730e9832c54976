// Package validate enforces the structural rules a graph must satisfy before
// it is stored or searched.
//
// Checks, in the order Validate runs them:
//
//   - Weights: every canonical edge weight is a base-10 integer and > 0.
//     Zero is rejected too, not only negatives.
//   - Duplicates: among canonical edges, a Directed edge is keyed by its
//     ordered pair; Undirected and Bidirectional edges by their sorted pair,
//     namespaced by type. The first occurrence wins; later collisions fail.
//     A--B and A<->B therefore coexist, while two A--B lines (or A--B and B--A)
//     do not.
//   - Connectivity: a BFS over the adjacency map from its first node must
//     visit every node. Two-way edges are already mirrored in the map; a
//     directed edge is only walked forward.
//
// The first violation is returned as *Error, which unwraps to one of the
// sentinel errors so callers can use errors.Is.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/pathlab/bfs"
	"github.com/katalvlaran/pathlab/core"
)

// Sentinel errors, one per Reason.
var (
	ErrInvalidWeight     = errors.New("validate: weight is not an integer")
	ErrNonPositiveWeight = errors.New("validate: weight must be positive")
	ErrDuplicateEdge     = errors.New("validate: duplicate edge")
	ErrDisconnected      = errors.New("validate: graph is not connected")
)

// Reason identifies which rule a graph violated.
type Reason int

const (
	InvalidWeight Reason = iota + 1
	NonPositiveWeight
	DuplicateEdge
	Disconnected
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case InvalidWeight:
		return "InvalidWeight"
	case NonPositiveWeight:
		return "NonPositiveWeight"
	case DuplicateEdge:
		return "DuplicateEdge"
	case Disconnected:
		return "Disconnected"
	default:
		return "Reason(" + strconv.Itoa(int(r)) + ")"
	}
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r Reason) sentinel() error {
	switch r {
	case InvalidWeight:
		return ErrInvalidWeight
	case NonPositiveWeight:
		return ErrNonPositiveWeight
	case DuplicateEdge:
		return ErrDuplicateEdge
	default:
		return ErrDisconnected
	}
}

// Error reports a single violation.
// Edge is set for weight and duplicate violations; Unvisited lists the nodes
// the connectivity check could not reach.
type Error struct {
	Reason    Reason
	Edge      *core.Edge
	Unvisited []string
}

// Error implements error.
func (e *Error) Error() string {
	switch {
	case e.Edge != nil && e.Reason == InvalidWeight:
		return fmt.Sprintf("%v: %q in %s %s %s", e.Reason.sentinel(), e.Edge.Literal, e.Edge.Source, e.Edge.Type.Operator(), e.Edge.Target)
	case e.Edge != nil:
		return fmt.Sprintf("%v: %s", e.Reason.sentinel(), e.Edge)
	case len(e.Unvisited) > 0:
		return fmt.Sprintf("%v: unreachable %s", e.Reason.sentinel(), strings.Join(e.Unvisited, ", "))
	default:
		return e.Reason.sentinel().Error()
	}
}

// Unwrap returns the sentinel error matching Reason.
func (e *Error) Unwrap() error { return e.Reason.sentinel() }

// Validate runs Weights, Duplicates and Connectivity in order and returns the
// first violation, or nil.
func Validate(g *core.Graph) error {
	if err := Weights(g.Edges); err != nil {
		return err
	}
	if err := Duplicates(g.Edges); err != nil {
		return err
	}

	return Connectivity(g.Nodes)
}

// Weights checks that every canonical edge has a positive integer weight.
func Weights(edges []core.Edge) error {
	for i := range edges {
		e := edges[i]
		if e.IsReverse {
			continue
		}
		if e.Literal != "" {
			if _, err := strconv.ParseInt(e.Literal, 10, 64); err != nil {
				return &Error{Reason: InvalidWeight, Edge: &e}
			}
		}
		if e.Weight <= 0 {
			return &Error{Reason: NonPositiveWeight, Edge: &e}
		}
	}

	return nil
}

// Duplicates rejects the first canonical edge whose key was already taken.
func Duplicates(edges []core.Edge) error {
	seen := make(map[string]struct{}, len(edges))
	for i := range edges {
		e := edges[i]
		if e.IsReverse {
			continue
		}
		k := key(e)
		if _, dup := seen[k]; dup {
			return &Error{Reason: DuplicateEdge, Edge: &e}
		}
		seen[k] = struct{}{}
	}

	return nil
}

// key builds the duplicate-detection key. NUL cannot appear in a node ID.
func key(e core.Edge) string {
	a, b := e.Source, e.Target
	if e.Type.TwoWay() && b < a {
		a, b = b, a
	}

	return e.Type.String() + "\x00" + a + "\x00" + b
}

// Connectivity checks that a BFS from the first node reaches every node.
// An empty map is trivially connected.
func Connectivity(adj *core.AdjacencyMap) error {
	if adj.Len() == 0 {
		return nil
	}
	res, err := bfs.BFS(adj, adj.First())
	if err != nil {
		return fmt.Errorf("validate: connectivity: %w", err)
	}
	if len(res.Order) == adj.Len() {
		return nil
	}

	var missing []string
	for _, id := range adj.Nodes() {
		if !res.Visited(id) {
			missing = append(missing, id)
		}
	}

	return &Error{Reason: Disconnected, Unvisited: missing}
}
