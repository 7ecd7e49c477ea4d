package zvalue

import "github.com/zelolang/zelo/internal/reclaimer"

// Env is a lexical scope: a flat store plus a link to the enclosing scope
// (spec.md §4.1 "lookup walks outward through enclosing scopes until the
// global scope"). Grounded on the teacher's Environment{store, outer}
// shape; the teacher's sync.RWMutex is dropped because spec.md §5 commits
// to a single-threaded evaluator.
type Env struct {
	store map[string]Value
	outer *Env
}

func NewEnv(gc *reclaimer.GC, outer *Env) *Env {
	e := &Env{store: make(map[string]Value), outer: outer}
	gc.Register(e)
	return e
}

func (e *Env) Kind() Kind      { return EnvKind }
func (e *Env) Inspect() string { return "<environment>" }

func (e *Env) Referents() []reclaimer.Node {
	refs := make([]reclaimer.Node, 0, len(e.store)+1)
	for _, v := range e.store {
		if n, ok := v.(reclaimer.Node); ok {
			refs = append(refs, n)
		}
	}
	if e.outer != nil {
		refs = append(refs, e.outer)
	}
	return refs
}

// Get walks outward through enclosing scopes, stopping at the first hit.
func (e *Env) Get(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.outer {
		if v, ok := scope.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define creates name in this scope, shadowing any outer binding of the
// same name (spec.md §4.1 "redeclaration in the same scope is an error;
// redeclaration in a nested scope shadows").
func (e *Env) Define(name string, v Value) {
	e.store[name] = v
}

// Has reports whether name is bound directly in this scope, without
// walking outward. Used by the evaluator to reject re-declaration.
func (e *Env) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Assign walks outward to the nearest scope that already binds name and
// overwrites it there (spec.md §4.4 assignment semantics: assignment
// never creates a new binding, only var/let/const declarations do).
// It reports false if name is unbound anywhere in the chain.
func (e *Env) Assign(name string, v Value) bool {
	for scope := e; scope != nil; scope = scope.outer {
		if _, ok := scope.store[name]; ok {
			scope.store[name] = v
			return true
		}
	}
	return false
}

// Outer exposes the enclosing scope, used by the evaluator when binding
// `super` and when unwinding function-call frames.
func (e *Env) Outer() *Env { return e.outer }

// Names returns the names bound directly in this scope (not walking
// outward), used when snapshotting a namespace or module scope into a
// Dict/Object's field map.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	return names
}
