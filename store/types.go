package store

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/dijkstra"
)

// Sentinel errors returned by the store.
var (
	// ErrGraphNotFound indicates that no record has the requested id.
	ErrGraphNotFound = errors.New("store: graph not found")

	// ErrEmptyGraph indicates that the submitted text contained no edge lines.
	ErrEmptyGraph = errors.New("store: graph has no edges")
)

// Original is the graph as it was entered. It never changes after Add.
type Original struct {
	Graph       *core.Graph `json:"graph"`
	Description string      `json:"description"`
}

// DoneState is the outcome of the last shortest-path run on a record.
//
// Edges lists the graph edges (mirrors included) that lie on the
// shortest-path tree; Description is the DOT rendering with the overlay.
type DoneState struct {
	RunID        string               `json:"runId"`
	Start        string               `json:"start"`
	Order        []string             `json:"order"`
	Distances    core.DistanceMap     `json:"distances"`
	Predecessors core.PredecessorMap  `json:"predecessors"`
	Iterations   []dijkstra.Iteration `json:"iterations"`
	Edges        []core.Edge          `json:"edges"`
	Description  string               `json:"description"`
	FinishedAt   time.Time            `json:"finishedAt"`
}

// Record is one named graph held by the store.
type Record struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Original  Original   `json:"original"`
	Done      *DoneState `json:"done,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Options configures a Store.
type Options struct {
	Logger *slog.Logger
	Clock  func() time.Time
}

// Option represents a functional option for configuring New.
type Option func(*Options)

// WithLogger sets the logger used for add, solve and delete events.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock replaces time.Now for CreatedAt and FinishedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// DefaultOptions returns a discarding logger and time.Now.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.DiscardHandler),
		Clock:  time.Now,
	}
}
