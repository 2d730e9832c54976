// Package pathlab turns plain edge-list text into validated weighted graphs,
// runs single-source Dijkstra with a step-by-step trace, and renders the
// result as Graphviz DOT.
//
// 🚀 What is in the box?
//
//	One edge list in, validated graph and traced run out:
//		• Edge-list parsing: "A -> B 4", "A -- B 4", "A <-> B 4"
//		• Validation: positive integer weights, duplicate rules, connectivity
//		• Shortest paths: heap-based Dijkstra with immutable iteration snapshots
//		• Rendering: DOT output with distance labels and highlighted tree edges
//		• Storage: an in-memory store of named graphs with their last run
//		• Surfaces: text import/export, a JSON HTTP API and a CLI
//
// Packages:
//
//	core/      Edge, EdgeType, ordered AdjacencyMap, Graph, Distance (with ∞)
//	parser/    edge-list text → core.Graph (+ original DOT description)
//	bfs/       breadth-first traversal used by connectivity checks
//	validate/  weight, duplicate and connectivity rules with typed reasons
//	dijkstra/  traced Dijkstra with FIFO tie-break
//	dot/       DOT rendering and shortest-path edge membership
//	store/     named graph records, runs, import/export
//	exchange/  the "Name:/Original:/Done:" text framing
//	config/    TOML configuration
//	logging/   slog logger construction with optional file rotation
//	server/    fiber HTTP API over a store
//	cli/       serve / solve / validate subcommands
//
// Quick example:
//
//	A -> B 4
//	A -> C 2        solve -start A
//	B -> C 5   ──▶  A=0  B=4  C=2  D=5
//	B -> D 10       tree: A→B, A→C, C→D
//	C -> D 3
//
//	go install github.com/katalvlaran/pathlab/cmd/pathlab@latest
package pathlab
