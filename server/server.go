// Package server exposes a store.Store over a JSON HTTP API.
//
//	POST   /graphs                 {"name": "...", "edges": "A -> B 4\n..."}
//	GET    /graphs
//	GET    /graphs/:id
//	DELETE /graphs/:id
//	POST   /graphs/:id/run         {"start": "A"}
//	GET    /graphs/:id/dot         ?state=original|done
//	GET    /graphs/:id/iterations
//	GET    /export
//	POST   /import                 exchange text body
//	GET    /healthz
//
// Error bodies are {"error": "..."}; validation failures add the reason and
// the offending edge or unreached nodes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v3"

	"github.com/katalvlaran/pathlab/config"
	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/dijkstra"
	"github.com/katalvlaran/pathlab/exchange"
	"github.com/katalvlaran/pathlab/store"
	"github.com/katalvlaran/pathlab/validate"
)

// MIME types of the plain-text responses.
const (
	MIMEGraphviz = "text/vnd.graphviz; charset=utf-8"
	MIMEText     = "text/plain; charset=utf-8"
)

// Server is the HTTP front end of a store.
type Server struct {
	app   *fiber.App
	store *store.Store
	log   *slog.Logger
	cfg   config.ServerConfig
}

// New builds the fiber app and registers all routes.
func New(st *store.Store, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "pathlab",
			BodyLimit:    cfg.BodyLimit,
			ErrorHandler: errorHandler,
		}),
		store: st,
		log:   logger,
		cfg:   cfg,
	}
	s.routes()

	return s
}

// App returns the underlying fiber app, e.g. for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.log.Info("listening",
		"address", s.cfg.Address,
		"body_limit", humanize.IBytes(uint64(s.cfg.BodyLimit)))

	return s.app.Listen(s.cfg.Address, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Use(s.requestLog)

	s.app.Get("/healthz", s.health)

	// ── Graphs ────────────────────────────────────────────────────────
	s.app.Post("/graphs", s.createGraph)
	s.app.Get("/graphs", s.listGraphs)
	s.app.Get("/graphs/:id", s.getGraph)
	s.app.Delete("/graphs/:id", s.deleteGraph)

	// ── Runs ──────────────────────────────────────────────────────────
	s.app.Post("/graphs/:id/run", s.runGraph)
	s.app.Get("/graphs/:id/dot", s.graphDOT)
	s.app.Get("/graphs/:id/iterations", s.iterations)

	// ── Exchange ──────────────────────────────────────────────────────
	s.app.Get("/export", s.export)
	s.app.Post("/import", s.importGraphs)
}

func (s *Server) requestLog(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"took", time.Since(start))

	return err
}

// summary is the list view of a record.
type summary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	Solved    bool      `json:"solved"`
	CreatedAt time.Time `json:"createdAt"`
}

func summarize(r store.Record) summary {
	return summary{
		ID:        r.ID,
		Name:      r.Name,
		Nodes:     r.Original.Graph.Nodes.Len(),
		Edges:     len(r.Original.Graph.CanonicalEdges()),
		Solved:    r.Done != nil,
		CreatedAt: r.CreatedAt,
	}
}

type createRequest struct {
	Name  string `json:"name"`
	Edges string `json:"edges"`
}

type runRequest struct {
	Start string `json:"start"`
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "graphs": len(s.store.List())})
}

func (s *Server) createGraph(c fiber.Ctx) error {
	var req createRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		req.Name = exchange.DefaultName
	}

	rec, err := s.store.Add(req.Name, req.Edges)
	if err != nil {
		return rejection(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(summarize(rec))
}

func (s *Server) listGraphs(c fiber.Ctx) error {
	recs := s.store.List()
	out := make([]summary, 0, len(recs))
	for _, r := range recs {
		out = append(out, summarize(r))
	}

	return c.JSON(out)
}

func (s *Server) getGraph(c fiber.Ctx) error {
	rec, err := s.record(c)
	if err != nil {
		return err
	}

	return c.JSON(rec)
}

func (s *Server) deleteGraph(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	s.store.Delete(id)

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) runGraph(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	var req runRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	rec, err := s.store.Solve(id, req.Start)
	switch {
	case errors.Is(err, store.ErrGraphNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph not found"})
	case errors.Is(err, dijkstra.ErrUnknownStartNode):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unknown start node", "start": req.Start})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(rec.Done)
}

func (s *Server) graphDOT(c fiber.Ctx) error {
	rec, err := s.record(c)
	if err != nil {
		return err
	}

	var desc string
	switch state := c.Query("state", "original"); state {
	case "original":
		desc = rec.Original.Description
	case "done":
		if rec.Done == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph has not been run"})
		}
		desc = rec.Done.Description
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "state must be original or done", "state": state})
	}

	c.Set(fiber.HeaderContentType, MIMEGraphviz)
	return c.SendString(desc)
}

func (s *Server) iterations(c fiber.Ctx) error {
	rec, err := s.record(c)
	if err != nil {
		return err
	}
	if rec.Done == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "graph has not been run"})
	}

	return c.JSON(fiber.Map{
		"start":      rec.Done.Start,
		"iterations": rec.Done.Iterations,
	})
}

func (s *Server) export(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, MIMEText)
	err := s.store.Export(c.Response().BodyWriter())
	if errors.Is(err, exchange.ErrNothingToExport) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "nothing to export"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return nil
}

func (s *Server) importGraphs(c fiber.Ctx) error {
	added, err := s.store.Import(string(c.Body()))

	list := make([]summary, 0, len(added))
	for _, r := range added {
		list = append(list, summarize(r))
	}
	out := fiber.Map{"added": list}
	if err != nil {
		out["error"] = err.Error()
		s.log.Info("import had failures", "added", len(added), "error", err)
	}

	status := fiber.StatusCreated
	if len(added) == 0 {
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(out)
}

// record resolves :id to a stored record.
func (s *Server) record(c fiber.Ctx) (store.Record, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return store.Record{}, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	rec, err := s.store.Get(id)
	if err != nil {
		return store.Record{}, fiber.NewError(fiber.StatusNotFound, "graph not found")
	}

	return rec, nil
}

// errorHandler renders handler errors as {"error": "..."}.
func errorHandler(c fiber.Ctx, err error) error {
	code, msg := fiber.StatusInternalServerError, err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// rejection maps an Add failure to 422 with the validation detail.
func rejection(c fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}

	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		body["reason"] = verr.Reason
		if verr.Edge != nil {
			body["edge"] = edgeView(*verr.Edge)
		}
		if len(verr.Unvisited) > 0 {
			body["unvisited"] = verr.Unvisited
		}
	case errors.Is(err, store.ErrEmptyGraph):
		body["reason"] = "EmptyGraph"
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
}

// edgeView shows the weight as written, which matters for InvalidWeight.
func edgeView(e core.Edge) fiber.Map {
	w := e.Literal
	if w == "" {
		w = strconv.FormatInt(e.Weight, 10)
	}

	return fiber.Map{
		"source": e.Source,
		"target": e.Target,
		"type":   e.Type,
		"weight": w,
	}
}
