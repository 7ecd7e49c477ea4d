package evaluator

import (
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// signalKind distinguishes the four non-local exits spec.md §4.4 names.
type signalKind int

const (
	sigReturn signalKind = iota
	sigBreak
	sigContinue
	sigThrow
)

// Signal is the evaluator's control-flow-as-error type: return, break,
// continue, and throw all unwind the Go call stack as a *Signal returned
// through Eval's ordinary error channel, the same shape the teacher uses
// for its own non-local exits (spec.md §9 "model as a tagged non-local-
// exit result type propagated through evaluator returns").
type Signal struct {
	Kind  signalKind
	Value zvalue.Value       // payload for sigReturn and sigThrow
	Diag  *diagnostics.Error // set when a throw originated from an internal fault
}

func (s *Signal) Error() string {
	switch s.Kind {
	case sigReturn:
		return "return outside function"
	case sigBreak:
		return "break outside loop"
	case sigContinue:
		return "continue outside loop"
	default:
		if s.Diag != nil {
			return s.Diag.Error()
		}
		return "uncaught exception"
	}
}

func returnSignal(v zvalue.Value) *Signal   { return &Signal{Kind: sigReturn, Value: v} }
func breakSignal() *Signal                  { return &Signal{Kind: sigBreak} }
func continueSignal() *Signal               { return &Signal{Kind: sigContinue} }
func throwSignal(v zvalue.Value) *Signal    { return &Signal{Kind: sigThrow, Value: v} }

// faultSignal lifts an internal diagnostics.Error (type/runtime class)
// into a catchable throw, per spec.md §7: "type and runtime errors
// propagate as throwable exceptions that try/catch may intercept".
func faultSignal(diag *diagnostics.Error) *Signal {
	return &Signal{Kind: sigThrow, Value: zvalue.Str{Value: diag.Message}, Diag: diag}
}

func typeFault(line int, code int, format string, args ...interface{}) *Signal {
	return faultSignal(diagnostics.Typef(code, line, format, args...))
}

func runtimeFault(line int, code int, format string, args ...interface{}) *Signal {
	return faultSignal(diagnostics.Runtimef(code, line, format, args...))
}

// asSignal reports whether err is a *Signal, distinguishing it from the
// fatal (non-catchable) diagnostics.Error classes — module/syntax/internal
// — that propagate as plain errors instead.
func asSignal(err error) (*Signal, bool) {
	sig, ok := err.(*Signal)
	return sig, ok
}
