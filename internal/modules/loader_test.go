package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zelolang/zelo/internal/evaluator"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// newTestLoader wires a real evaluator.Evaluator to a Loader the same way
// pkg/cli does at startup: each side holds the other's narrow
// interface, never its concrete package.
func newTestLoader(t *testing.T, basePath string) (*Loader, *evaluator.Evaluator) {
	t.Helper()
	gc := reclaimer.New()
	ev := evaluator.New(gc)
	l := NewLoader(gc, basePath)
	l.Evaluator = ev
	ev.Loader = l
	return l, ev
}

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}
	return path
}

func TestRequireCachesModuleScope(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "counter.z", `loc n = 1; export { n };`)

	l, _ := newTestLoader(t, dir)
	a, err := l.Require("counter.z")
	if err != nil {
		t.Fatalf("first require: %v", err)
	}
	b, err := l.Require("counter.z")
	if err != nil {
		t.Fatalf("second require: %v", err)
	}
	if a != b {
		t.Fatalf("expected require to return the same cached scope, got distinct scopes")
	}
}

func TestIncludeReevaluatesEachTime(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "once.z", `loc n = 1; export { n };`)

	l, _ := newTestLoader(t, dir)
	a, err := l.Include("once.z")
	if err != nil {
		t.Fatalf("first include: %v", err)
	}
	b, err := l.Include("once.z")
	if err != nil {
		t.Fatalf("second include: %v", err)
	}
	if a == b {
		t.Fatalf("expected include to produce distinct scopes on each call")
	}
}

func TestExtensionlessPathGetsSourceExtAppended(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util.z", `loc ok = true;`)

	l, _ := newTestLoader(t, dir)
	env, err := l.Require("util")
	if err != nil {
		t.Fatalf("require without extension: %v", err)
	}
	v, ok := env.Get("ok")
	if !ok || !v.(zvalue.Bool).Value {
		t.Fatalf("expected ok=true in loaded module scope, got %#v", v)
	}
}

func TestLibSubdirectoryIsSearched(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatalf("mkdir lib: %v", err)
	}
	writeModule(t, libDir, "helpers.z", `loc tag = "from-lib";`)

	l, _ := newTestLoader(t, dir)
	env, err := l.Require("helpers.z")
	if err != nil {
		t.Fatalf("require from lib/: %v", err)
	}
	v, ok := env.Get("tag")
	if !ok || v.(zvalue.Str).Value != "from-lib" {
		t.Fatalf("expected tag='from-lib', got %#v", v)
	}
}

func TestMissingModuleIsModuleNotFoundError(t *testing.T) {
	l, _ := newTestLoader(t, t.TempDir())
	if _, err := l.Require("does-not-exist.z"); err == nil {
		t.Fatalf("expected an error for a missing module")
	}
}

func TestCircularImportIsDetected(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.z", `import "b.z";`)
	writeModule(t, dir, "b.z", `import "a.z";`)

	l, _ := newTestLoader(t, dir)
	if _, err := l.Require("a.z"); err == nil {
		t.Fatalf("expected a circular import error")
	}
}

func TestExportedNamesLandInExportsDict(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "shapes.z", `
loc radius = 2;
func area() { return radius * radius * 3; }
export { radius, area };
`)
	l, _ := newTestLoader(t, dir)
	env, err := l.Require("shapes.z")
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	exportsVal, ok := env.Get("__exports__")
	if !ok {
		t.Fatalf("expected __exports__ to be defined")
	}
	exports, ok := exportsVal.(*zvalue.Dict)
	if !ok {
		t.Fatalf("expected __exports__ to be a dict, got %T", exportsVal)
	}
	if _, ok := exports.Items["radius"]; !ok {
		t.Fatalf("expected radius to be exported")
	}
	if _, ok := exports.Items["area"]; !ok {
		t.Fatalf("expected area to be exported")
	}
}
