// Package core defines the graph model shared by the parser, validator,
// shortest-path engine and renderer.
//
// A graph is a flat list of Edge values plus an AdjacencyMap derived from it:
//
//   - Directed edges ("->") contribute one adjacency entry Source→Target.
//   - Undirected ("--") and Bidirectional ("<->") edges additionally contribute
//     a synthetic mirror Edge (IsReverse=true) and the entry Target→Source.
//   - Every referenced node is a key of the AdjacencyMap, even with no
//     outgoing edges.
//
// Nodes are plain alphanumeric strings (see ValidNodeID). AdjacencyMap keeps
// them in first-reference order so that every consumer iterates the same way.
//
// Distance carries the +∞ marker for unreached nodes (Infinity), and
// DistanceMap / PredecessorMap provide the deep Clone used for immutable
// snapshots.
package core
