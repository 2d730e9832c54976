// Package dot renders graphs as Graphviz DOT descriptions, optionally
// overlaid with the result of a shortest-path run.
//
// Rendering rules:
//
//   - digraph when any canonical edge is Directed or Bidirectional, graph otherwise.
//   - Each unordered node pair is drawn once: an edge is skipped when either
//     (s,t) or (t,s) was already emitted. This drops the mirrors of two-way
//     edges and also folds opposing directed edges into one line.
//   - With an Overlay, nodes carry xlabel="Dist: d" (∞ when unreached) and edges
//     on a shortest path are drawn red with penwidth=2, others gray70.
//   - Bidirectional edges in a digraph carry dir=both.
//
// The exact attribute text is for display only; nothing parses it back.
package dot

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/katalvlaran/pathlab/core"
)

// Attribute values shared by the renderers.
const (
	ColorOnPath  = "red"
	ColorOffPath = "gray70"
	PenOnPath    = 2
)

// Overlay carries the output of a shortest-path run for rendering.
// Order lists nodes for the node section; when empty, Distances keys are
// listed in sorted order.
type Overlay struct {
	Order        []string
	Distances    core.DistanceMap
	Predecessors core.PredecessorMap
}

// Render returns the DOT description of edges. A nil overlay produces the
// plain description of the graph as entered.
func Render(edges []core.Edge, ov *Overlay) string {
	directed := core.HasDirected(edges)
	kind, op := "graph", "--"
	if directed {
		kind, op = "digraph", "->"
	}

	fontSize := 8
	if ov != nil {
		fontSize = 12
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s G {\n", kind)
	b.WriteString("  node [style=filled, fillcolor=white, fontname=\"Helvetica\"];\n")
	fmt.Fprintf(&b, "  edge [fontsize=%d];\n", fontSize)

	if ov != nil {
		for _, id := range ov.nodes() {
			fmt.Fprintf(&b, "  %s [xlabel=\"Dist: %s\"];\n", Quote(id), ov.Distances[id])
		}
	}

	for _, e := range Canonical(edges) {
		attrs := []string{fmt.Sprintf("label=\"%d\"", e.Weight)}
		if ov != nil {
			if OnShortestPath(e, ov) {
				attrs = append(attrs, fmt.Sprintf("color=%q", ColorOnPath), fmt.Sprintf("penwidth=%d", PenOnPath))
			} else {
				attrs = append(attrs, fmt.Sprintf("color=%q", ColorOffPath))
			}
		}
		if e.Type == core.Bidirectional && directed {
			attrs = append(attrs, "dir=both")
		}
		fmt.Fprintf(&b, "  %s %s %s [%s];\n", Quote(e.Source), op, Quote(e.Target), strings.Join(attrs, ", "))
	}
	b.WriteString("}\n")

	return b.String()
}

// Canonical returns the edges that Render draws: the first edge seen for
// each unordered node pair, in input order.
func Canonical(edges []core.Edge) []core.Edge {
	seen := make(map[[2]string]struct{}, len(edges))
	out := make([]core.Edge, 0, len(edges))
	for _, e := range edges {
		fwd := [2]string{e.Source, e.Target}
		rev := [2]string{e.Target, e.Source}
		if _, ok := seen[fwd]; ok {
			continue
		}
		if _, ok := seen[rev]; ok {
			continue
		}
		seen[fwd] = struct{}{}
		out = append(out, e)
	}

	return out
}

// OnShortestPath reports whether e lies on the shortest-path tree described
// by ov. Two-way edges are checked in both directions.
func OnShortestPath(e core.Edge, ov *Overlay) bool {
	if ov == nil {
		return false
	}
	if relaxes(e.Source, e.Target, e.Weight, ov.Distances, ov.Predecessors) {
		return true
	}

	return e.Type.TwoWay() && relaxes(e.Target, e.Source, e.Weight, ov.Distances, ov.Predecessors)
}

// ShortestPathEdges returns the edges u→v (mirrors included) for which
// pred[v]==u and dist[v]==dist[u]+weight, in input order.
func ShortestPathEdges(edges []core.Edge, dist core.DistanceMap, pred core.PredecessorMap) []core.Edge {
	out := make([]core.Edge, 0)
	for _, e := range edges {
		if relaxes(e.Source, e.Target, e.Weight, dist, pred) {
			out = append(out, e)
		}
	}

	return out
}

// relaxes tests the tree condition for the directed step from→to.
func relaxes(from, to string, w int64, dist core.DistanceMap, pred core.PredecessorMap) bool {
	if pred[to] != from || from == "" {
		return false
	}
	df, ok := dist[from]
	if !ok || df.IsInf() {
		return false
	}
	dt, ok := dist[to]

	return ok && dt == df.Add(w)
}

func (ov *Overlay) nodes() []string {
	if len(ov.Order) > 0 {
		return ov.Order
	}
	ids := make([]string, 0, len(ov.Distances))
	for id := range ov.Distances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

var bareID = regexp.MustCompile(`^([_a-zA-Z][_a-zA-Z0-9]*|-?(\.[0-9]+|[0-9]+(\.[0-9]*)?))$`)

var keywords = map[string]struct{}{
	"graph": {}, "digraph": {}, "subgraph": {}, "node": {}, "edge": {}, "strict": {},
}

// Quote returns id as a DOT identifier, quoting it when it is not a valid
// bare ID or collides with a DOT keyword.
func Quote(id string) string {
	if _, kw := keywords[strings.ToLower(id)]; !kw && bareID.MatchString(id) {
		return id
	}
	id = strings.ReplaceAll(id, `"`, `\"`)

	return `"` + id + `"`
}
