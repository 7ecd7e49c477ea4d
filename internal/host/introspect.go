package host

import (
	"github.com/google/uuid"

	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// introspectRegistrations implements SPEC_FULL.md §4.9's reference
// `introspect` module body: reclaimer visibility for spec.md §8 scenario 6
// ("a value unreachable from the global scope is eventually reclaimed"),
// plus a uuid() generator that gives scripts a process-unique token.
func (ins *Installer) introspectRegistrations() []Registration {
	regs := []Registration{
		{Name: "isAlive", Arity: 1, Fn: ins.isAlive},
		{Name: "youngCount", Arity: 0, Fn: func(args []zvalue.Value) (zvalue.Value, error) {
			return zvalue.Int{Value: int64(ins.GC.YoungCount())}, nil
		}},
		{Name: "oldCount", Arity: 0, Fn: func(args []zvalue.Value) (zvalue.Value, error) {
			return zvalue.Int{Value: int64(ins.GC.OldCount())}, nil
		}},
		{Name: "uuid", Arity: 0, Fn: func(args []zvalue.Value) (zvalue.Value, error) {
			return zvalue.Str{Value: uuid.NewString()}, nil
		}},
	}
	if ins.Trace != nil {
		regs = append(regs, Registration{Name: "traceCount", Arity: 0, Fn: ins.traceCount})
	}
	return regs
}

// traceCount exposes the --trace-gc store's row count (SPEC_FULL.md §4.10)
// to scripts, only when the CLI wired one in.
func (ins *Installer) traceCount(args []zvalue.Value) (zvalue.Value, error) {
	n, err := ins.Trace.EventCount()
	if err != nil {
		return nil, diagnostics.Runtimef(diagnostics.CodeIOError, 0, "traceCount: %v", err)
	}
	return zvalue.Int{Value: int64(n)}, nil
}

func (ins *Installer) isAlive(args []zvalue.Value) (zvalue.Value, error) {
	n, ok := args[0].(reclaimer.Node)
	if !ok {
		// Scalars (Int/Float/Bool/Null/Str) are never reclaimer-tracked;
		// they are always considered alive, since there is nothing to ask.
		return zvalue.Bool{Value: true}, nil
	}
	return zvalue.Bool{Value: ins.GC.IsAlive(n)}, nil
}
