// Package cli parses the pathlab command line and runs its subcommands.
//
//	pathlab serve    [-config pathlab.toml]
//	pathlab solve    -file graph.txt -start A [-dot] [-trace]
//	pathlab validate -file graph.txt
//
// Exit codes: 0 success, 1 failure (invalid graph, unknown start node, I/O),
// 2 usage error.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

func failure(err error) error {
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

// Subcommand names.
const (
	CmdServe    = "serve"
	CmdSolve    = "solve"
	CmdValidate = "validate"
)

// Command is a parsed command line.
type Command struct {
	Name   string
	Config string // serve
	File   string // solve, validate
	Start  string // solve
	DOT    bool   // solve: print the overlay description
	Trace  bool   // solve: print every iteration snapshot
}

const usageText = `
pathlab - weighted graphs, validation and traced Dijkstra runs.

Usage:
  pathlab serve    [-config FILE]
  pathlab solve    -file FILE -start NODE [-dot] [-trace]
  pathlab validate -file FILE

FILE holds one edge per line: "A -> B 4", "A -- B 4" or "A <-> B 4".
Use "-" to read from standard input.
`

// Parse processes command-line arguments (without the program name). It
// returns the command, a boolean telling the caller to exit cleanly (help
// was printed), or an *ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}

	cmd := &Command{Name: args[0]}
	fs := flag.NewFlagSet("pathlab "+cmd.Name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageText+"\nOptions:\n")
		fs.PrintDefaults()
	}

	switch cmd.Name {
	case CmdServe:
		fs.StringVar(&cmd.Config, "config", "", "Path to the TOML configuration file.")
	case CmdSolve:
		fs.StringVar(&cmd.File, "file", "", "Edge-list file to solve.")
		fs.StringVar(&cmd.Start, "start", "", "Start node.")
		fs.BoolVar(&cmd.DOT, "dot", false, "Print the DOT description with the shortest-path overlay.")
		fs.BoolVar(&cmd.Trace, "trace", false, "Print every iteration snapshot.")
	case CmdValidate:
		fs.StringVar(&cmd.File, "file", "", "Edge-list file to validate.")
	case "help", "-h", "-help", "--help":
		fmt.Fprint(output, usageText)
		return nil, true, nil
	default:
		return nil, false, usageError("unknown command %q (want serve, solve or validate)", cmd.Name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%v", err)
	}
	if fs.NArg() > 0 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	switch cmd.Name {
	case CmdSolve:
		if cmd.File == "" || cmd.Start == "" {
			return nil, false, usageError("solve needs -file and -start")
		}
	case CmdValidate:
		if cmd.File == "" {
			return nil, false, usageError("validate needs -file")
		}
	}

	return cmd, false, nil
}
