// Package dijkstra_test contains unit tests for the traced Dijkstra engine:
// input validation, reference distances, snapshot bookkeeping, tie-breaking
// and the predecessor invariants.
package dijkstra_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/dijkstra"
	"github.com/katalvlaran/pathlab/parser"
)

func adjacency(t *testing.T, text string) *core.AdjacencyMap {
	t.Helper()
	return parser.Parse(text).Graph.Nodes
}

const roadNetwork = "A -> B 4\nA -> C 2\nB -> C 5\nB -> D 10\nC -> D 3\n"

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestRun_NilAdjacency(t *testing.T) {
	_, err := dijkstra.Run(nil, "A")
	assert.ErrorIs(t, err, dijkstra.ErrNilAdjacency)
}

func TestRun_UnknownStartNode(t *testing.T) {
	adj := adjacency(t, roadNetwork)
	before := adj.Clone()

	res, err := dijkstra.Run(adj, "Z")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dijkstra.ErrUnknownStartNode)
	assert.Contains(t, err.Error(), `"Z"`)
	assert.Equal(t, before, adj)
}

func TestRun_NegativeWeight(t *testing.T) {
	g := core.NewGraph()
	g.AddEdge(core.Edge{Source: "A", Target: "B", Weight: -1, Type: core.Directed})

	_, err := dijkstra.Run(g.Nodes, "A")
	assert.ErrorIs(t, err, dijkstra.ErrNegativeWeight)
}

// ------------------------------------------------------------------------
// 2. Distances and predecessors
// ------------------------------------------------------------------------

func TestRun_Distances(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, roadNetwork), "A")
	require.NoError(t, err)

	assert.Equal(t, core.DistanceMap{"A": 0, "B": 4, "C": 2, "D": 5}, res.Distances)
	assert.Equal(t, core.PredecessorMap{"A": "", "B": "A", "C": "A", "D": "C"}, res.Predecessors)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Order)

	path, err := res.PathTo("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, path)
}

func TestRun_UndirectedUsesMirrors(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, "B -- A 3\nC <-> B 1\nD -> C 2\n"), "A")
	require.NoError(t, err)

	assert.Equal(t, core.Distance(3), res.Distances["B"])
	assert.Equal(t, core.Distance(4), res.Distances["C"])
	// D is only reachable against a directed edge.
	assert.True(t, res.Distances["D"].IsInf())
	assert.Equal(t, "", res.Predecessors["D"])

	_, err = res.PathTo("D")
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
	_, err = res.PathTo("nope")
	assert.ErrorIs(t, err, dijkstra.ErrUnknownNode)
}

func TestRun_StartIsZero(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, roadNetwork), "C")
	require.NoError(t, err)

	assert.Equal(t, core.Distance(0), res.Distances["C"])
	assert.Equal(t, core.Distance(3), res.Distances["D"])
	assert.True(t, res.Distances["A"].IsInf())
	assert.True(t, res.Distances["B"].IsInf())

	path, err := res.PathTo("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, path)
}

// ------------------------------------------------------------------------
// 3. Trace
// ------------------------------------------------------------------------

func TestRun_Trace(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, roadNetwork), "A")
	require.NoError(t, err)
	require.Len(t, res.Iterations, 5)

	var current []string
	for i, it := range res.Iterations {
		assert.Equal(t, i, it.Step)
		current = append(current, it.Current)
	}
	assert.Equal(t, []string{dijkstra.StartMarker, "A", "C", "B", "D"}, current)

	first := res.Iterations[0]
	assert.Equal(t, core.Distance(0), first.Distances["A"])
	assert.True(t, first.Distances["B"].IsInf())
	assert.Equal(t, "", first.Predecessors["B"])

	afterA := res.Iterations[1]
	assert.Equal(t, core.DistanceMap{"A": 0, "B": 4, "C": 2, "D": core.Infinity}, afterA.Distances)

	last := res.Iterations[len(res.Iterations)-1]
	assert.Equal(t, res.Distances, last.Distances)
	assert.Equal(t, res.Predecessors, last.Predecessors)
}

// A stale heap entry is discarded without recording a snapshot, and earlier
// snapshots keep the value they were taken with.
func TestRun_StaleEntriesAndSnapshotIsolation(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, "A -> B 10\nA -> C 1\nC -> B 1\n"), "A")
	require.NoError(t, err)

	require.Len(t, res.Iterations, 4) // Start, A, C, B; stale B(10) skipped
	assert.Equal(t, core.Distance(10), res.Iterations[1].Distances["B"])
	assert.Equal(t, core.Distance(2), res.Iterations[2].Distances["B"])
	assert.Equal(t, "C", res.Predecessors["B"])

	// mutating the live result does not leak into snapshots
	res.Distances["B"] = 99
	res.Predecessors["B"] = "X"
	assert.Equal(t, core.Distance(2), res.Iterations[3].Distances["B"])
	assert.Equal(t, "C", res.Iterations[3].Predecessors["B"])
}

// Equal priorities are dequeued in insertion order.
func TestRun_FIFOTieBreak(t *testing.T) {
	res, err := dijkstra.Run(adjacency(t, "A -> B 1\nA -> C 1\nA -> D 1\nA -> E 1\n"), "A")
	require.NoError(t, err)

	var current []string
	for _, it := range res.Iterations[1:] {
		current = append(current, it.Current)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, current)
}

func TestRun_Options(t *testing.T) {
	var seen []string
	res, err := dijkstra.Run(adjacency(t, roadNetwork), "A",
		dijkstra.WithoutTrace(),
		dijkstra.WithOnProcess(func(step int, node string) {
			seen = append(seen, fmt.Sprintf("%d:%s", step, node))
		}),
		dijkstra.WithOnProcess(nil),
	)
	require.NoError(t, err)

	assert.Empty(t, res.Iterations)
	assert.Equal(t, []string{"1:A", "2:C", "3:B", "4:D"}, seen)
}

// ------------------------------------------------------------------------
// 4. Properties on random graphs
// ------------------------------------------------------------------------

func randomText(r *rand.Rand, n, m int) string {
	ops := []string{"->", "--", "<->"}
	text := ""
	for i := 1; i < n; i++ {
		text += fmt.Sprintf("N%d -- N%d %d\n", r.Intn(i), i, 1+r.Intn(9))
	}
	for i := 0; i < m; i++ {
		text += fmt.Sprintf("N%d %s N%d %d\n", r.Intn(n), ops[r.Intn(3)], r.Intn(n), 1+r.Intn(20))
	}
	return text
}

func TestRun_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		adj := adjacency(t, randomText(r, 12, 20))

		res, err := dijkstra.Run(adj, "N0")
		require.NoError(t, err)
		again, err := dijkstra.Run(adj, "N0")
		require.NoError(t, err)

		// deterministic
		if diff := cmp.Diff(res, again); diff != "" {
			t.Fatalf("round %d: rerun differs (-first +second):\n%s", round, diff)
		}

		assert.Equal(t, core.Distance(0), res.Distances["N0"])
		for _, n := range res.Order {
			p := res.Predecessors[n]
			if p == "" {
				if n != "N0" {
					assert.True(t, res.Distances[n].IsInf(), "node %s has no predecessor but finite distance", n)
				}
				continue
			}
			// an adjacency entry p→n with the exact weight exists
			found := false
			for _, nb := range adj.Neighbors(p) {
				if nb.Target == n && res.Distances[p].Add(nb.Weight) == res.Distances[n] {
					found = true
				}
			}
			assert.True(t, found, "no edge %s→%s matching distances", p, n)
		}

		// no relaxation remains
		for _, u := range res.Order {
			for _, nb := range adj.Neighbors(u) {
				assert.False(t, res.Distances[u].Add(nb.Weight) < res.Distances[nb.Target])
			}
		}
	}
}

func TestResult_PathToErrorsAreWrapped(t *testing.T) {
	res := &dijkstra.Result{Start: "A", Distances: core.DistanceMap{"A": 0}}
	_, err := res.PathTo("B")
	assert.True(t, errors.Is(err, dijkstra.ErrUnknownNode))
}
