// Package exchange reads and writes the plain-text framing used to move
// several named graphs in one file:
//
//	Name: Roads
//	Original:
//	A -> B 4
//	A -> C 2
//	Done:
//	A -> B 4
//
//	Name: Ring
//	Original:
//	A -- B 1
//
// Blocks are separated by a blank line. Edge lines use the parser grammar, so
// the Original section of a block is itself a valid edge list. The Done
// section lists the shortest-path edges of the last run and is informational:
// decoding keeps it, but a re-imported graph starts without a run.
package exchange

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/parser"
)

// ErrNothingToExport is returned by Encode when there are no blocks.
var ErrNothingToExport = errors.New("exchange: nothing to export")

// DefaultName names a block that has no Name: header.
const DefaultName = "Imported Graph"

const (
	headerName     = "Name:"
	headerOriginal = "Original:"
	headerDone     = "Done:"
)

// Block is one named graph in the framing.
type Block struct {
	Name     string
	Original []core.Edge
	Done     []core.Edge // nil when the graph has no run attached
	Skipped  int         // Original lines that matched no edge pattern (Decode only)
}

// Encode writes blocks to w.
func Encode(w io.Writer, blocks []Block) error {
	if len(blocks) == 0 {
		return ErrNothingToExport
	}

	bw := bufio.NewWriter(w)
	for i, b := range blocks {
		if i > 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "%s %s\n%s\n", headerName, b.Name, headerOriginal)
		bw.WriteString(parser.Format(b.Original))
		if b.Done == nil {
			continue
		}
		bw.WriteString(headerDone + "\n")
		for _, e := range b.Done {
			bw.WriteString(parser.FormatEdge(e))
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// Decode reads blocks from r. Blank-only input yields no blocks and no error.
// Lines outside a section and unknown headers are ignored.
func Decode(r io.Reader) ([]Block, error) {
	var (
		blocks  []Block
		cur     *Block
		section string
	)
	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
		}
		cur, section = nil, ""
	}

	err := parser.EachLine(r, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			return
		}
		if cur == nil {
			cur = &Block{Name: DefaultName}
		}

		switch {
		case strings.HasPrefix(line, headerName):
			if name := strings.TrimSpace(strings.TrimPrefix(line, headerName)); name != "" {
				cur.Name = name
			}
		case line == headerOriginal:
			section = headerOriginal
		case line == headerDone:
			section = headerDone
			if cur.Done == nil {
				cur.Done = []core.Edge{}
			}
		case section == headerOriginal:
			e, ok := parser.ParseLine(line)
			if !ok {
				cur.Skipped++
				return
			}
			cur.Original = append(cur.Original, e)
		case section == headerDone:
			if e, ok := parser.ParseLine(line); ok {
				cur.Done = append(cur.Done, e)
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("exchange: read: %w", err)
	}
	flush()

	return blocks, nil
}

// Text renders the Original section of b as an edge list accepted by parser.Parse.
func (b Block) Text() string {
	return parser.Format(b.Original)
}
