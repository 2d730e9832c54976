// Package parser turns edge-list text into a core.Graph.
//
// One edge per line:
//
//	A -> B 4    directed
//	A -- B 4    undirected
//	A <-> B 4   bidirectional
//
// Node IDs are alphanumeric. Lines that do not have this shape (blank lines,
// comments, the legacy "A B 4" form) are skipped and counted, never reported
// as errors. The weight token is captured as written: "A -> B 2.5" is kept as
// an edge so that validation can reject the weight instead of the line
// vanishing silently.
package parser

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/dot"
)

var linePattern = regexp.MustCompile(`^\s*(` + core.NodeIDPattern + `)\s*(<->|->|--)\s*(` + core.NodeIDPattern + `)\s+(\S+)\s*$`)

// Result is the outcome of parsing one edge list.
type Result struct {
	Graph       *core.Graph
	Description string // DOT rendering of the graph as entered
	Skipped     int    // non-blank lines that matched no edge pattern
}

// Parse parses text. It never fails and never returns nil: unmatched lines,
// however long, are skipped.
func Parse(text string) *Result {
	var b builder
	for line := range strings.Lines(text) {
		b.add(strings.TrimRight(line, "\r\n"))
	}

	return b.result()
}

// ParseReader parses edge lines from r. The error is non-nil only when
// reading from r fails. Lines have no length limit.
func ParseReader(r io.Reader) (*Result, error) {
	var b builder
	if err := EachLine(r, b.add); err != nil {
		return nil, err
	}

	return b.result(), nil
}

// EachLine calls fn for every line read from r, without the line terminator.
// Unlike bufio.Scanner it puts no cap on line length.
func EachLine(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type builder struct {
	g       *core.Graph
	skipped int
}

func (b *builder) add(line string) {
	if b.g == nil {
		b.g = core.NewGraph()
	}
	e, ok := ParseLine(line)
	if !ok {
		if strings.TrimSpace(line) != "" {
			b.skipped++
		}
		return
	}
	b.g.AddEdge(e)
}

func (b *builder) result() *Result {
	if b.g == nil {
		b.g = core.NewGraph()
	}

	return &Result{
		Graph:       b.g,
		Description: dot.Render(b.g.Edges, nil),
		Skipped:     b.skipped,
	}
}

// ParseLine parses a single edge line. ok is false when the line has no edge shape.
//
// A weight token that is not a base-10 integer leaves Weight at zero; the
// token itself is kept in Literal.
func ParseLine(line string) (core.Edge, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return core.Edge{}, false
	}
	typ, err := core.ParseOperator(m[2])
	if err != nil {
		return core.Edge{}, false
	}
	w, _ := strconv.ParseInt(m[4], 10, 64)

	return core.Edge{
		Source:  m[1],
		Target:  m[3],
		Weight:  w,
		Literal: m[4],
		Type:    typ,
	}, true
}

// Format renders edges back into edge-list text, one per line, skipping mirrors.
// Parse(Format(g.Edges)) reproduces the canonical edges of g.
func Format(edges []core.Edge) string {
	var b strings.Builder
	for _, e := range edges {
		if e.IsReverse {
			continue
		}
		b.WriteString(FormatEdge(e))
		b.WriteByte('\n')
	}

	return b.String()
}

// FormatEdge renders one edge as an edge-list line, keeping the original weight literal.
func FormatEdge(e core.Edge) string {
	w := e.Literal
	if w == "" {
		w = strconv.FormatInt(e.Weight, 10)
	}

	return e.Source + " " + e.Type.Operator() + " " + e.Target + " " + w
}
