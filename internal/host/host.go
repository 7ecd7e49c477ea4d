// Package host implements spec.md §6's "embedded host interface": native
// functions are introduced by registering an entry name, an arity (a
// sentinel marks variadic), and a Go callable; registrations populate the
// global scope before interpretation begins.
//
// Grounded on funvibe-funxy/internal/evaluator/builtins.go's package-level
// `Builtins map[string]*Builtin{Name, Fn}` registry, reshaped into
// SPEC_FULL.md §4.9's `Registration{Name, Arity, Fn}` surface and a
// reclaimer-backed `zvalue.Function` install step rather than a bare map
// lookup, since zelo natives must themselves be reclaimer-tracked Values.
package host

import (
	"io"

	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// Arity counts a native function's required argument count. Variadic
// marks "any count", matching spec.md §6's "a sentinel value marks
// variadic".
type Arity int

const Variadic Arity = -1

// NativeFunc is the Go callable behind a Registration.
type NativeFunc func(args []zvalue.Value) (zvalue.Value, error)

// Registration is one native-function entry: name, arity, callable.
type Registration struct {
	Name  string
	Arity Arity
	Fn    NativeFunc
}

// Loader is the narrow capability the require/include natives need from
// internal/modules, declared here rather than importing modules.Loader's
// whole surface.
type Loader interface {
	Require(path string) (*zvalue.Env, error)
	Include(path string) (*zvalue.Env, error)
}

// TraceStore is the narrow capability introspect.traceCount needs from
// internal/introspect, declared here (rather than importing that package)
// so the host package never pulls in database/sql or modernc.org/sqlite —
// only internal/introspect itself does (SPEC_FULL.md §4.10/§9).
type TraceStore interface {
	EventCount() (int, error)
}

// Installer holds the runtime context native functions close over: the
// reclaimer they must register allocations with, the module loader behind
// require/include, the optional GC trace store, and the I/O streams
// print/println/readLine use.
type Installer struct {
	GC     *reclaimer.GC
	Loader Loader
	Trace  TraceStore
	Out    io.Writer
	In     io.Reader

	extra []Registration
}

// Register queues an additional Registration to be installed by Install,
// beyond the package's own reference stdlib (math/io/string/introspect).
// Host embedders use this to add their own natives.
func (ins *Installer) Register(reg Registration) {
	ins.extra = append(ins.extra, reg)
}

// Install defines every registered native function directly in env (the
// interpreter's global scope), per spec.md §6 "native registrations
// populate the global scope before interpretation begins."
func (ins *Installer) Install(env *zvalue.Env) {
	regs := ins.registrations()
	regs = append(regs, ins.extra...)
	for _, reg := range regs {
		reg := reg
		fn := zvalue.NewFunction(ins.GC, &zvalue.Function{
			NativeName: reg.Name,
			Variadic:   reg.Arity == Variadic,
			Native:     zvalue.NativeFunc(ins.arityChecked(reg)),
		})
		env.Define(reg.Name, fn)
	}
}

// arityChecked wraps reg.Fn with the argument-count check spec.md §6
// delegates to the registration's declared arity, rather than leaving
// every native to re-implement it.
func (ins *Installer) arityChecked(reg Registration) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		if reg.Arity != Variadic && len(args) != int(reg.Arity) {
			return nil, diagnostics.Runtimef(diagnostics.CodeArityMismatch, 0,
				"%s expects %d argument(s), got %d", reg.Name, int(reg.Arity), len(args))
		}
		return reg.Fn(args)
	}
}

// registrations collects the reference stdlib bodies this package ships:
// math, io, string, container, typeinfo, introspect (SPEC_FULL.md §4.9),
// plus require/include.
func (ins *Installer) registrations() []Registration {
	var all []Registration
	all = append(all, ins.ioRegistrations()...)
	all = append(all, mathRegistrations()...)
	all = append(all, ins.stringRegistrations()...)
	all = append(all, ins.containerRegistrations()...)
	all = append(all, typeinfoRegistrations()...)
	all = append(all, ins.introspectRegistrations()...)
	all = append(all, ins.moduleRegistrations()...)
	return all
}
