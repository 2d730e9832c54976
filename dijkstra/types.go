// Package dijkstra defines core types and configuration options
// for the traced Dijkstra shortest-path engine.
//
// Complexity:
//
//	– Time:  O((V + E) log V)
//	   • Each node is processed at most once (non-stale dequeues).
//	   • Each successful relaxation pushes one heap entry (up to E pushes).
//	– Space: O(V + E) plus O(V) per recorded iteration snapshot.
//
// Options:
//
//	– WithoutTrace():   record no iteration snapshots.
//	– WithOnProcess(f): call f(step, node) after each processed node.
//
// Errors (sentinel):
//
//	– ErrNilAdjacency      if the adjacency map is nil.
//	– ErrUnknownStartNode  if the start node is not a key of the adjacency map.
//	– ErrNegativeWeight    if any adjacency entry has a negative weight.
//	– ErrUnknownNode       from Result.PathTo for a node outside the graph.
//	– ErrUnreachable       from Result.PathTo for a node at infinite distance.
package dijkstra

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathlab/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilAdjacency indicates that a nil adjacency map was passed to Run.
	ErrNilAdjacency = errors.New("dijkstra: adjacency map is nil")

	// ErrUnknownStartNode indicates that the start node does not exist in the graph.
	ErrUnknownStartNode = errors.New("dijkstra: start node not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrUnknownNode indicates a path was requested to a node outside the graph.
	ErrUnknownNode = errors.New("dijkstra: node not found in result")

	// ErrUnreachable indicates a path was requested to a node the run never reached.
	ErrUnreachable = errors.New("dijkstra: node is unreachable from start")
)

// StartMarker is the Current value of the initial snapshot (step 0).
const StartMarker = "Start"

// Options configures the behavior of Run.
type Options struct {
	Trace     bool                        // record iteration snapshots
	OnProcess func(step int, node string) // called after each processed node
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithoutTrace disables iteration snapshots. Result.Iterations stays empty.
func WithoutTrace() Option {
	return func(o *Options) {
		o.Trace = false
	}
}

// WithOnProcess registers a hook called once per processed node, after its
// neighbors were relaxed. A nil fn is ignored.
func WithOnProcess(fn func(step int, node string)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProcess = fn
		}
	}
}

// DefaultOptions returns tracing enabled and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Trace:     true,
		OnProcess: func(int, string) {},
	}
}

// Iteration is a snapshot of the engine state after one step.
//
// Step 0 has Current == StartMarker and holds the initialized maps; step k>0
// holds the state after the k-th processed node. Distances and Predecessors
// are private copies: later relaxations never change a recorded snapshot.
type Iteration struct {
	Step         int                 `json:"step"`
	Current      string              `json:"current"`
	Distances    core.DistanceMap    `json:"distances"`
	Predecessors core.PredecessorMap `json:"predecessors"`
}

// Result is the outcome of a Run.
//
// Order lists every node in adjacency order; Distances and Predecessors have
// one entry per node (Infinity / "" when unreached).
type Result struct {
	Start        string              `json:"start"`
	Order        []string            `json:"order"`
	Distances    core.DistanceMap    `json:"distances"`
	Predecessors core.PredecessorMap `json:"predecessors"`
	Iterations   []Iteration         `json:"iterations"`
}

// PathTo reconstructs the node sequence from Start to target by following
// predecessors.
func (r *Result) PathTo(target string) ([]string, error) {
	d, ok := r.Distances[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, target)
	}
	if d.IsInf() {
		return nil, fmt.Errorf("%w: %q", ErrUnreachable, target)
	}

	path := []string{}
	for cur := target; cur != ""; cur = r.Predecessors[cur] {
		path = append(path, cur)
		if cur == r.Start || len(path) > len(r.Distances) {
			break
		}
	}
	// reverse to get start → target
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
