// Package cli implements the command-line driver of spec.md §6: a single
// optional script-path argument, -h/--help, -v/--version, -c/--check
// (lex+macro+parse only), -e/--eval CODE, a REPL on no arguments, and
// ZELO_PATH as the module loader's base-path override.
//
// Grounded on funvibe-funxy/pkg/cli/entry.go's overall driver shape (a
// fresh Environment plus builtin registration per run, a module cache
// threaded through the loader) generalized from funxy's VM/tree-walk
// backend-selection CLI to zelo's much smaller -c/-e/script/REPL surface,
// and on funvibe-funxy/internal/evaluator/builtins_term.go's
// `isatty.IsTerminal(os.Stdout.Fd())` check for REPL prompt suppression
// under a pipe (SPEC_FULL.md §6).
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zelolang/zelo/internal/config"
	"github.com/zelolang/zelo/internal/evaluator"
	"github.com/zelolang/zelo/internal/host"
	"github.com/zelolang/zelo/internal/introspect"
	"github.com/zelolang/zelo/internal/modules"
	"github.com/zelolang/zelo/internal/pipeline"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

const (
	version = "0.1.0"

	usage = `zelo - the zelo language interpreter

Usage:
  zelo [script]            run a script, or enter the REPL with no script
  zelo -c, --check FILE    lex + macro-expand + parse FILE, report errors only
  zelo -e, --eval CODE     evaluate CODE directly
  zelo --trace-gc          record a gc_events row per collection to
                           ./zelo-trace.db while running
  zelo -h, --help          show this help text
  zelo -v, --version       show the version

Environment:
  ZELO_PATH   overrides the module loader's base path (spec.md §6)
`
)

// Run parses args (excluding the program name) and executes the requested
// mode, writing to stdout/stderr and reading the script from stdin when
// appropriate. It returns the process exit code (spec.md §6: 0 on success,
// 1 on any lexer/parser/runtime error) rather than calling os.Exit itself,
// so tests can drive it without forking a process.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if opts.help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if opts.version {
		fmt.Fprintln(stdout, "zelo "+version)
		return 0
	}

	if opts.check {
		return runCheck(opts, stderr)
	}

	rt, err := newRuntime(opts, stdout, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if rt.trace != nil {
		defer rt.trace.Close()
	}

	switch {
	case opts.eval != "":
		return rt.runSource(opts.eval, stderr)
	case opts.script != "":
		src, err := os.ReadFile(opts.script)
		if err != nil {
			fmt.Fprintf(stderr, "zelo: %v\n", err)
			return 1
		}
		return rt.runSource(string(src), stderr)
	default:
		rt.repl(stdin, stdout, stderr)
		return 0
	}
}

type options struct {
	help, version, check bool
	eval, script          string
	traceGC               bool
	tracePath             string
}

func parseArgs(args []string) (*options, error) {
	opts := &options{tracePath: "zelo-trace.db"}
	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			opts.help = true
		case "-v", "--version":
			opts.version = true
		case "-c", "--check":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("zelo: %s requires a file argument", arg)
			}
			opts.check = true
			opts.script = args[i]
		case "-e", "--eval":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("zelo: %s requires a CODE argument", arg)
			}
			opts.eval = args[i]
		case "--trace-gc":
			opts.traceGC = true
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("zelo: unrecognized flag %q", arg)
			}
			opts.script = arg
		}
		i++
	}
	return opts, nil
}

// runtime bundles everything a script run or REPL session needs: the
// reclaimer, the global scope, the evaluator, and the module loader wired
// together the way cmd/funxy/main.go's evaluateModule builds a fresh
// Environment and registers builtins before evaluating.
type runtime struct {
	gc    *reclaimer.GC
	ev    *evaluator.Evaluator
	trace *introspect.Store
}

func newRuntime(opts *options, stdout io.Writer, stdin io.Reader) (*runtime, error) {
	gc := reclaimer.New()
	ev := evaluator.New(gc)

	basePath, err := config.BasePath("")
	if err != nil {
		return nil, fmt.Errorf("zelo: resolving module path: %w", err)
	}
	loader := modules.NewLoader(gc, basePath)
	loader.Evaluator = ev
	ev.Loader = loader

	installer := &host.Installer{GC: gc, Loader: loader, Out: stdout, In: stdin}

	var store *introspect.Store
	if opts.traceGC {
		store, err = introspect.Open(opts.tracePath)
		if err != nil {
			return nil, fmt.Errorf("zelo: opening trace store: %w", err)
		}
		ev.TraceGC = store.Hook(gc)
		installer.Trace = store
	}
	installer.Install(ev.Global)

	return &runtime{gc: gc, ev: ev, trace: store}, nil
}

// runSource lexes, macro-expands, parses, and evaluates src against the
// runtime's global scope, reporting any error per spec.md §7 ("an uncaught
// exception aborts the current interpret with exit code 1").
func (rt *runtime) runSource(src string, stderr io.Writer) int {
	result := pipeline.New().Run(src)
	for _, e := range result.Errors {
		fmt.Fprintln(stderr, e)
	}
	if len(result.Errors) > 0 {
		return 1
	}
	if _, err := rt.ev.Eval(result.Program, rt.ev.Global); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// runCheck implements -c/--check: lex+macro+parse only, no evaluation.
func runCheck(opts *options, stderr io.Writer) int {
	src, err := os.ReadFile(opts.script)
	if err != nil {
		fmt.Fprintf(stderr, "zelo: %v\n", err)
		return 1
	}
	result := pipeline.New().Run(string(src))
	for _, e := range result.Errors {
		fmt.Fprintln(stderr, e)
	}
	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}

// repl runs an interactive read-eval-print loop: each line is lexed,
// macro-expanded, parsed, and evaluated against the same persistent global
// scope; a per-line error is reported and the loop resumes (spec.md §7
// "the REPL catches per-line and resumes").
func (rt *runtime) repl(stdin io.Reader, stdout, stderr io.Writer) {
	interactive := isTerminal(stdin)
	if interactive {
		fmt.Fprintln(stdout, "zelo "+version+" — Ctrl-D to exit")
	}

	scanner := bufio.NewScanner(stdin)
	for {
		if interactive {
			fmt.Fprint(stdout, ">>> ")
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(stdout)
			}
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		result := pipeline.New().Run(line)
		for _, e := range result.Errors {
			fmt.Fprintln(stderr, e)
		}
		if len(result.Errors) > 0 || result.Program == nil {
			continue
		}
		v, err := rt.ev.Eval(result.Program, rt.ev.Global)
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		if interactive && v != nil && v.Kind() != zvalue.NullKind {
			fmt.Fprintln(stdout, v.Inspect())
		}
	}
}

// isTerminal reports whether in is an interactive terminal, matching
// funvibe-funxy/internal/evaluator/builtins_term.go's
// isatty.IsTerminal/IsCygwinTerminal pair.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

