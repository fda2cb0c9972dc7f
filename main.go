// loxgo runs Lox programs, either from a file or interactively.
//
// Driver structure follows cmdneo/tree_lox's main.go (argv dispatch
// between execFromFile/execPrompt, optional CPU profiling behind the
// CPUPROFILE env var), generalized to the exit-code contract spec.md §6
// specifies (64 for usage, 65 for a static error, 70 for a runtime error)
// and a persistent interactive line source (replio) instead of a bare
// bufio.Scanner loop.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/interpreter"
	"github.com/cmdneo/loxgo/parser"
	"github.com/cmdneo/loxgo/replio"
	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/resolver"
	"github.com/cmdneo/loxgo/scanner"
)

const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if out, has := os.LookupEnv("CPUPROFILE"); has && out != "" {
		f, err := os.Create(out)
		if err != nil {
			slog.Error("cannot create CPU profile", "path", out, "err", err)
			os.Exit(1)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	switch len(os.Args) {
	case 1:
		runPrompt()
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", os.Args[0])
		os.Exit(exitUsage)
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		slog.Error("cannot read script", "path", path, "err", err)
		return exitUsage
	}

	rep := report.NewStd(os.Stderr)
	run(string(source), rep, os.Stdout)

	if rep.HadStaticError() {
		return exitStatic
	}
	if rep.HadRuntimeError() {
		return exitRuntime
	}
	return 0
}

func runPrompt() {
	src := replio.New("> ")
	defer src.Close()

	rep := report.NewStd(os.Stderr)
	interp := interpreter.New(rep, os.Stdout)

	for {
		line, ok, skip := src.Next()
		if !ok {
			return
		}
		if skip {
			continue
		}

		rep.Reset()
		runLine(line, rep, interp)
	}
}

// run is the one-shot pipeline used for file mode: a fresh Interpreter
// per program, since a file execution never needs state to survive past
// its own runtime error (spec.md §6).
func run(source string, rep report.Reporter, out io.Writer) {
	stmts, ok := compile(source, rep)
	if !ok {
		return
	}
	depths := resolver.New(rep).Resolve(stmts)
	if rep.HadStaticError() {
		return
	}
	interpreter.New(rep, out).Interpret(stmts, depths)
}

// runLine re-runs the full scan/parse/resolve pipeline for one REPL line
// but keeps interp's environment across lines, so variables and functions
// defined on one line are visible on the next (spec.md §6).
func runLine(source string, rep report.Reporter, interp *interpreter.Interpreter) {
	stmts, ok := compile(source, rep)
	if !ok {
		return
	}
	depths := resolver.New(rep).Resolve(stmts)
	if rep.HadStaticError() {
		return
	}
	interp.Interpret(stmts, depths)
}

func compile(source string, rep report.Reporter) ([]ast.Stmt, bool) {
	toks := scanner.New(source, rep).ScanTokens()
	if rep.HadStaticError() {
		return nil, false
	}
	return parser.New(toks, rep).Parse()
}
