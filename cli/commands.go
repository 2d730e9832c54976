package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pathlab/config"
	"github.com/katalvlaran/pathlab/core"
	"github.com/katalvlaran/pathlab/dijkstra"
	"github.com/katalvlaran/pathlab/dot"
	"github.com/katalvlaran/pathlab/logging"
	"github.com/katalvlaran/pathlab/parser"
	"github.com/katalvlaran/pathlab/server"
	"github.com/katalvlaran/pathlab/store"
	"github.com/katalvlaran/pathlab/validate"
)

// ShutdownTimeout bounds how long serve waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Env carries the process streams.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute parses args and runs the selected subcommand. ctx cancels serve.
func Execute(ctx context.Context, env Env, args []string) error {
	cmd, exit, err := Parse(args, env.Stdout)
	if err != nil || exit {
		return err
	}

	switch cmd.Name {
	case CmdServe:
		return Serve(ctx, env, cmd)
	case CmdSolve:
		return Solve(env, cmd)
	default:
		return Validate(env, cmd)
	}
}

// Serve loads the configuration and runs the HTTP server until ctx is done.
func Serve(ctx context.Context, env Env, cmd *Command) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return failure(err)
	}
	logger, closer := logging.New(cfg.Logging, env.Stderr)
	defer closer.Close()

	st := store.New(store.WithLogger(logger))
	srv := server.New(st, cfg.Server, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		return failure(err)
	}

	return nil
}

// Validate parses and validates the file and prints OK or the violation.
func Validate(env Env, cmd *Command) error {
	g, err := load(env, cmd.File)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "OK: %d nodes, %d edges\n", g.Nodes.Len(), len(g.CanonicalEdges()))

	return nil
}

// Solve parses and validates the file, runs the engine from cmd.Start and
// prints the distance table, optionally the trace and the DOT description.
func Solve(env Env, cmd *Command) error {
	g, err := load(env, cmd.File)
	if err != nil {
		return err
	}
	var opts []dijkstra.Option
	if !cmd.Trace {
		opts = append(opts, dijkstra.WithoutTrace())
	}
	res, err := dijkstra.Run(g.Nodes, cmd.Start, opts...)
	if err != nil {
		return failure(err)
	}

	// 1) Distance table
	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tDISTANCE\tPREDECESSOR\tPATH")
	for _, n := range res.Order {
		path := "-"
		if p, err := res.PathTo(n); err == nil {
			path = strings.Join(p, " > ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n, res.Distances[n], orDash(res.Predecessors[n]), path)
	}
	if err := tw.Flush(); err != nil {
		return failure(err)
	}

	// 2) Trace, one row per snapshot
	if cmd.Trace {
		fmt.Fprintln(env.Stdout)
		tw = tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprint(tw, "STEP\tCURRENT")
		for _, n := range res.Order {
			fmt.Fprintf(tw, "\t%s", n)
		}
		fmt.Fprintln(tw)
		for _, it := range res.Iterations {
			fmt.Fprintf(tw, "%d\t%s", it.Step, it.Current)
			for _, n := range res.Order {
				fmt.Fprintf(tw, "\t%s", it.Distances[n])
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return failure(err)
		}
	}

	// 3) Overlay description
	if cmd.DOT {
		fmt.Fprintln(env.Stdout)
		fmt.Fprint(env.Stdout, dot.Render(g.Edges, &dot.Overlay{
			Order:        res.Order,
			Distances:    res.Distances,
			Predecessors: res.Predecessors,
		}))
	}

	return nil
}

// load reads, parses and validates an edge-list file ("-" for stdin).
func load(env Env, file string) (*core.Graph, error) {
	r := env.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, failure(err)
		}
		defer f.Close()
		r = f
	}

	res, err := parser.ParseReader(r)
	if err != nil {
		return nil, failure(err)
	}
	if len(res.Graph.Edges) == 0 {
		return nil, failure(fmt.Errorf("%s: %w", file, store.ErrEmptyGraph))
	}
	if err := validate.Validate(res.Graph); err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return nil, &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%s: %s: %v", file, verr.Reason, err)}
		}
		return nil, failure(err)
	}

	return res.Graph, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
