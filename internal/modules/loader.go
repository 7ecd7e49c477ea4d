// Package modules implements the module loader of spec.md §4.7: path
// resolution across four tiers, cached `require` semantics, uncached
// `include` semantics, and circular-import detection shared between both.
//
// Grounded on funvibe-funxy/internal/modules/loader.go's Loader{
// LoadedModules, Processing} cache-plus-cycle-guard shape, trimmed to this
// language's much simpler one-file-per-module model (the teacher's
// directory-of-files package loading, multi-file export merging, and
// virtual/bundle package machinery have no equivalent here: spec.md's
// module is a single source file evaluated into one top-level scope).
package modules

import (
	"os"
	"path/filepath"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/pipeline"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// sourceExt is the default extension appended to an extensionless import
// path (spec.md §4.7 "if no file extension is present, append `.z`").
const sourceExt = ".z"

// Evaluator is the narrow capability the loader needs from the tree-walking
// evaluator: run a parsed module's statements against a fresh scope. It is
// declared here (rather than importing internal/evaluator) so the two
// packages can depend on each other structurally without a Go import
// cycle — internal/evaluator declares the matching ModuleLoader interface
// for the same reason.
type Evaluator interface {
	EvalModule(prog *ast.Program, env *zvalue.Env) error
}

// Loader resolves import paths to files, evaluates them, and tracks which
// modules are cached (require) versus freshly re-run on every load
// (include).
type Loader struct {
	GC        *reclaimer.GC
	Evaluator Evaluator

	// BasePath is the loader's configured module root (spec.md §4.7), the
	// third path-resolution tier. Overridable at construction time by
	// ZELO_PATH or a zelo.yaml search path (internal/config's concern).
	BasePath string

	cache      map[string]*zvalue.Env
	processing map[string]bool
}

// NewLoader constructs a Loader rooted at basePath. The Evaluator field
// must be set (by pkg/cli, once it has constructed the evaluator) before
// Require/Include is called.
func NewLoader(gc *reclaimer.GC, basePath string) *Loader {
	return &Loader{
		GC:         gc,
		BasePath:   basePath,
		cache:      make(map[string]*zvalue.Env),
		processing: make(map[string]bool),
	}
}

// Require loads path with caching: the second and later Require of the
// same resolved path returns the previously evaluated module scope without
// re-running its statements (spec.md §4.7).
func (l *Loader) Require(path string) (*zvalue.Env, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	if env, ok := l.cache[resolved]; ok {
		return env, nil
	}
	env, err := l.load(resolved, path)
	if err != nil {
		return nil, err
	}
	l.cache[resolved] = env
	return env, nil
}

// Include loads path without caching: every call re-reads, re-parses, and
// re-evaluates the file into a distinct fresh scope (spec.md §4.7,
// "include(p) twice yields distinct scope values").
func (l *Loader) Include(path string) (*zvalue.Env, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	return l.load(resolved, path)
}

// resolve walks spec.md §4.7's four path-resolution tiers in order:
// absolute path, working directory, the loader's configured base path, and
// the base path's lib/ subdirectory. An extensionless path gets sourceExt
// appended before each candidate is probed.
func (l *Loader) resolve(path string) (string, error) {
	candidate := path
	if filepath.Ext(candidate) == "" {
		candidate += sourceExt
	}

	if filepath.IsAbs(candidate) {
		if fileExists(candidate) {
			return candidate, nil
		}
		return "", moduleNotFound(path)
	}

	var tried []string
	if wd, err := os.Getwd(); err == nil {
		tried = append(tried, filepath.Join(wd, candidate))
	}
	if l.BasePath != "" {
		tried = append(tried, filepath.Join(l.BasePath, candidate))
		tried = append(tried, filepath.Join(l.BasePath, "lib", candidate))
	}

	for _, c := range tried {
		if fileExists(c) {
			return filepath.Clean(c), nil
		}
	}
	return "", moduleNotFound(path)
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func moduleNotFound(path string) error {
	return diagnostics.Modulef(diagnostics.CodeModuleNotFound, 0, "module not found: %q", path)
}

// load reads, parses, and evaluates the file at resolved into a fresh
// top-level scope, guarding against a cycle through origPath re-entering
// its own still-in-progress load (applies to both Require and Include).
func (l *Loader) load(resolved, origPath string) (*zvalue.Env, error) {
	if l.processing[resolved] {
		return nil, diagnostics.Modulef(diagnostics.CodeCircularImport, 0, "circular import detected loading %q", origPath)
	}
	l.processing[resolved] = true
	defer delete(l.processing, resolved)

	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, moduleNotFound(origPath)
	}

	result := pipeline.New().Run(string(src))
	if len(result.Errors) > 0 {
		return nil, result.Errors[0]
	}

	env := zvalue.NewEnv(l.GC, nil)
	if l.Evaluator == nil {
		return nil, diagnostics.Internalf(diagnostics.CodeInternalError, 0, "module loader has no evaluator wired for %q", origPath)
	}
	if err := l.Evaluator.EvalModule(result.Program, env); err != nil {
		return nil, err
	}
	return env, nil
}
