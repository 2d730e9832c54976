// Package store keeps named graphs in memory.
//
// A Store owns id assignment: ids start at 1, increase by one per successful
// Add and are never reused, even after Delete. Records are handed out by
// value. The Original part and an attached DoneState are never modified once
// created, so a caller may keep a Record after the store has moved on.
//
// Every method is safe for concurrent use. Each call runs to completion under
// the store lock (Solve computes outside of it and attaches the result last),
// so a failing call leaves the store exactly as it was.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathlab/dijkstra"
	"github.com/katalvlaran/pathlab/dot"
	"github.com/katalvlaran/pathlab/exchange"
	"github.com/katalvlaran/pathlab/parser"
	"github.com/katalvlaran/pathlab/validate"
)

// Store is an in-memory collection of graph records.
type Store struct {
	mu      sync.RWMutex
	records []Record // id order
	nextID  int

	log *slog.Logger
	now func() time.Time
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Store{
		nextID: 1,
		log:    cfg.Logger,
		now:    cfg.Clock,
	}
}

// Add parses text, validates the result and stores it under name.
//
// Errors:
//   - ErrEmptyGraph when text contains no edge lines.
//   - a *validate.Error (match with errors.As) for rejected graphs.
//
// Nothing is stored when an error is returned.
func (s *Store) Add(name, text string) (Record, error) {
	res := parser.Parse(text)
	if len(res.Graph.Edges) == 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrEmptyGraph, name)
	}
	if err := validate.Validate(res.Graph); err != nil {
		s.log.Info("graph rejected", "name", name, "error", err)
		return Record{}, fmt.Errorf("store: add %q: %w", name, err)
	}

	s.mu.Lock()
	rec := Record{
		ID:   s.nextID,
		Name: name,
		Original: Original{
			Graph:       res.Graph,
			Description: res.Description,
		},
		CreatedAt: s.now(),
	}
	s.nextID++
	s.records = append(s.records, rec)
	s.mu.Unlock()

	s.log.Info("graph added",
		"id", rec.ID,
		"name", name,
		"nodes", res.Graph.Nodes.Len(),
		"edges", len(res.Graph.CanonicalEdges()),
		"skipped_lines", res.Skipped)

	return rec, nil
}

// Get returns the record with the given id, or ErrGraphNotFound.
func (s *Store) Get(id int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: id %d", ErrGraphNotFound, id)
	}

	return s.records[i], nil
}

// List returns all records in id order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

// Delete removes the record with the given id. Unknown ids are ignored.
func (s *Store) Delete(id int) {
	s.mu.Lock()
	i := s.index(id)
	if i >= 0 {
		s.records = slices.Delete(s.records, i, i+1)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.log.Info("graph deleted", "id", id)
	}
}

// UpdateDoneState attaches done to the record, replacing an earlier run.
// Unknown ids are ignored.
func (s *Store) UpdateDoneState(id int, done *DoneState) {
	s.attach(id, done)
}

// attach sets the record's DoneState under the write lock and returns the
// updated record. ok is false when id is unknown.
func (s *Store) attach(id int, done *DoneState) (rec Record, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Record{}, false
	}
	s.records[i].Done = done

	return s.records[i], true
}

// Solve runs the shortest-path engine on the record from start, renders the
// overlay description and attaches the outcome as the record's DoneState.
//
// Errors:
//   - ErrGraphNotFound when id is unknown (also when the record was deleted
//     while the run was computed).
//   - dijkstra.ErrUnknownStartNode when start is not a node of the graph.
//
// On error the record keeps its previous DoneState.
func (s *Store) Solve(id int, start string) (Record, error) {
	// 1) Snapshot the record; Original is immutable so no lock is held while computing.
	rec, err := s.Get(id)
	if err != nil {
		return Record{}, err
	}
	g := rec.Original.Graph

	// 2) Run the engine
	res, err := dijkstra.Run(g.Nodes, start, dijkstra.WithOnProcess(func(step int, node string) {
		s.log.Debug("node processed", "id", id, "step", step, "node", node)
	}))
	if err != nil {
		s.log.Info("run rejected", "id", id, "start", start, "error", err)
		return Record{}, fmt.Errorf("store: solve %d: %w", id, err)
	}

	// 3) Build the done state
	done := &DoneState{
		RunID:        uuid.NewString(),
		Start:        start,
		Order:        res.Order,
		Distances:    res.Distances,
		Predecessors: res.Predecessors,
		Iterations:   res.Iterations,
		Edges:        dot.ShortestPathEdges(g.Edges, res.Distances, res.Predecessors),
		Description: dot.Render(g.Edges, &dot.Overlay{
			Order:        res.Order,
			Distances:    res.Distances,
			Predecessors: res.Predecessors,
		}),
		FinishedAt: s.now(),
	}

	// 4) Attach and return the updated record
	rec, ok := s.attach(id, done)
	if !ok {
		return Record{}, fmt.Errorf("%w: id %d", ErrGraphNotFound, id)
	}

	s.log.Info("run finished",
		"id", id,
		"run_id", done.RunID,
		"start", start,
		"steps", len(done.Iterations),
		"path_edges", len(done.Edges))

	return rec, nil
}

// Reset drops every record and restarts ids at 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.nextID = 1
}

// Import adds every block of an exchange text. Blocks that fail are reported
// in the joined error while the others are kept; the returned records are the
// ones that were added, in input order.
func (s *Store) Import(text string) ([]Record, error) {
	blocks, err := exchange.Decode(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var (
		added []Record
		errs  []error
	)
	for i, b := range blocks {
		rec, err := s.Add(b.Name, b.Text())
		if err != nil {
			errs = append(errs, fmt.Errorf("block %d: %w", i+1, err))
			continue
		}
		added = append(added, rec)
	}

	return added, errors.Join(errs...)
}

// Export writes every record in exchange framing. An empty store yields
// exchange.ErrNothingToExport.
func (s *Store) Export(w io.Writer) error {
	recs := s.List()
	blocks := make([]exchange.Block, 0, len(recs))
	for _, r := range recs {
		b := exchange.Block{Name: r.Name, Original: r.Original.Graph.Edges}
		if r.Done != nil {
			b.Done = r.Done.Edges
		}
		blocks = append(blocks, b)
	}

	return exchange.Encode(w, blocks)
}

// index returns the position of id in s.records, or -1. Callers hold s.mu.
func (s *Store) index(id int) int {
	i, ok := slices.BinarySearchFunc(s.records, id, func(r Record, id int) int {
		return r.ID - id
	})
	if !ok {
		return -1
	}

	return i
}
