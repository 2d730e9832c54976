package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/parser"
)

func TestParse_EdgeTypes(t *testing.T) {
	res := parser.Parse("A -> B 4\nB -- C 2\nC <-> D 7\n")
	g := res.Graph

	canon := g.CanonicalEdges()
	require.Len(t, canon, 3)
	assert.Equal(t, core.Edge{Source: "A", Target: "B", Weight: 4, Literal: "4", Type: core.Directed}, canon[0])
	assert.Equal(t, core.Undirected, canon[1].Type)
	assert.Equal(t, core.Bidirectional, canon[2].Type)
	assert.Len(t, g.Edges, 5)

	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Nodes.Nodes())
	assert.Equal(t, []core.Neighbor{{Target: "B", Weight: 2}, {Target: "D", Weight: 7}}, g.Nodes.Neighbors("C"))
	assert.Equal(t, 0, res.Skipped)
	assert.True(t, strings.HasPrefix(res.Description, "digraph G {"))
}

func TestParse_CompactAndSpacing(t *testing.T) {
	res := parser.Parse("  A->B 4  \nX<->Y 1\nP--Q\t3")
	assert.Len(t, res.Graph.CanonicalEdges(), 3)
}

func TestParse_SkipsUnmatchedLines(t *testing.T) {
	res := parser.Parse("# comment\n\nA B 3\nA => B 3\nA -> B\nA -> B 3\n")

	assert.Len(t, res.Graph.CanonicalEdges(), 1)
	// blank line is not counted
	assert.Equal(t, 4, res.Skipped)
}

func TestParse_KeepsBadWeightLiteral(t *testing.T) {
	res := parser.Parse("A -> B 2.5\nB -> C x\nC -> D -2\n")
	canon := res.Graph.CanonicalEdges()
	require.Len(t, canon, 3)

	assert.Equal(t, "2.5", canon[0].Literal)
	assert.Equal(t, int64(0), canon[0].Weight)
	assert.Equal(t, "x", canon[1].Literal)
	assert.Equal(t, int64(-2), canon[2].Weight)
}

// Lines beyond bufio.Scanner's 64 KiB token limit are read whole.
func TestParse_LongLine(t *testing.T) {
	long := "# " + strings.Repeat("x", 70*1024)

	res := parser.Parse("A -> B 1\n" + long + "\nB -> C 2")
	require.NotNil(t, res)
	assert.Len(t, res.Graph.Edges, 2)
	assert.Equal(t, 1, res.Skipped)

	res, err := parser.ParseReader(strings.NewReader(long + "\r\nA -- B 3\r\n"))
	require.NoError(t, err)
	assert.Len(t, res.Graph.CanonicalEdges(), 1)
	assert.Equal(t, 1, res.Skipped)
}

// ParseLine accepts exactly the identifiers core.ValidNodeID accepts.
func TestParseLine_NodeIDRule(t *testing.T) {
	for _, id := range []string{"A", "n1", "42", "Node7b", "A_1", "é", "a-b"} {
		_, ok := parser.ParseLine(id + " -> Z 1")
		assert.Equal(t, core.ValidNodeID(id) == nil, ok, id)
	}
}

func TestEachLine(t *testing.T) {
	var lines []string
	err := parser.EachLine(strings.NewReader("a\r\n\nb\nc"), func(l string) { lines = append(lines, l) })
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b", "c"}, lines)
}

func TestParse_Empty(t *testing.T) {
	res := parser.Parse("")
	assert.Equal(t, 0, res.Graph.Nodes.Len())
	assert.Empty(t, res.Graph.Edges)
}

// TestParse_NoDanglingReferences: every edge endpoint is a node key.
func TestParse_NoDanglingReferences(t *testing.T) {
	res := parser.Parse("A -> B 1\nC -- A 2\nD <-> E 3\nE -> F 9\n")
	for _, e := range res.Graph.Edges {
		assert.True(t, res.Graph.Nodes.Has(e.Source), e.Source)
		assert.True(t, res.Graph.Nodes.Has(e.Target), e.Target)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	text := "A -> B 4\nB -- C 2\nC <-> A 7\n"
	res := parser.Parse(text)

	assert.Equal(t, text, parser.Format(res.Graph.Edges))
	again := parser.Parse(parser.Format(res.Graph.Edges))
	assert.Equal(t, res.Graph.Edges, again.Graph.Edges)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReader_Error(t *testing.T) {
	_, err := parser.ParseReader(failingReader{})
	assert.EqualError(t, err, "boom")
}

func ExampleParseLine() {
	e, ok := parser.ParseLine("A <-> B 12")
	fmt.Println(ok, e.Source, e.Type, e.Target, e.Weight)
	// Output: true A bidirectional B 12
}
