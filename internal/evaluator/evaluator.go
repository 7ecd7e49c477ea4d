// Package evaluator implements the tree-walking evaluator of spec.md §4:
// a type-switch dispatch over internal/ast nodes producing internal/zvalue
// values, with internal/reclaimer collection run at a fixed statement
// cadence (spec.md §4.8) rather than after every allocation.
package evaluator

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// gcInterval is the fixed statement cadence at which the evaluator runs a
// reclaimer collection (spec.md §4.8's "incremental variant interleaves
// steps across evaluator iterations"). Chosen small enough to exercise
// collection during ordinary test programs without collecting on every
// single statement.
const gcInterval = 256

// ModuleLoader is the surface the evaluator needs from internal/modules to
// evaluate import statements and the require/include host builtins. It is
// declared here, not imported from internal/modules, so that modules can
// depend on evaluator (to actually run a loaded program) without the two
// packages importing each other: modules.Loader satisfies this interface
// structurally.
type ModuleLoader interface {
	Require(path string) (*zvalue.Env, error)
	Include(path string) (*zvalue.Env, error)
}

// Evaluator holds the interpreter's global state: the reclaimer registry,
// the global scope, and the module loader import statements dispatch to.
type Evaluator struct {
	GC     *reclaimer.GC
	Global *zvalue.Env
	Loader ModuleLoader

	stmtCount int

	// constNames tracks, per-scope, which names were declared `const` so
	// assignment can reject reassigning them (spec.md §4.1). Keyed by Env
	// pointer identity rather than stored on Env itself, keeping const
	// bookkeeping a purely evaluator-side concern.
	constNames map[*zvalue.Env]map[string]bool

	// TraceGC, when set, is called after every collection with the promoted
	// and reclaimed counts and whether the pass was full (SPEC_FULL.md §4.10
	// --trace-gc).
	TraceGC func(promoted, reclaimed int, full bool)
}

// New builds an Evaluator with a fresh global scope registered against gc.
func New(gc *reclaimer.GC) *Evaluator {
	return &Evaluator{
		GC:         gc,
		Global:     zvalue.NewEnv(gc, nil),
		constNames: make(map[*zvalue.Env]map[string]bool),
	}
}

// EvalModule implements the modules.Evaluator interface: it runs prog to
// completion in env (normally a fresh top-level scope) and reports any
// fatal (non-catchable) error, or an escaped signal as an error.
func (e *Evaluator) EvalModule(prog *ast.Program, env *zvalue.Env) error {
	_, err := e.Eval(prog, env)
	if err == nil {
		return nil
	}
	if sig, ok := asSignal(err); ok {
		return sig
	}
	return err
}

// maybeCollect runs a reclaimer pass every gcInterval evaluated statements.
func (e *Evaluator) maybeCollect() {
	e.stmtCount++
	if e.stmtCount%gcInterval != 0 {
		return
	}
	e.GC.Collect(e.Global)
	if e.TraceGC != nil {
		e.TraceGC(e.GC.LastPromoted, e.GC.LastReclaimed, e.GC.LastFull)
	}
}

// Eval dispatches over every statement and expression node. A Program or
// BlockStatement yields the value of its last statement, an IfStatement the
// value of the branch it ran, and a TryStatement whose catch block ran that
// block's value; the other statements evaluate for effect and return Null.
func (e *Evaluator) Eval(node ast.Node, env *zvalue.Env) (zvalue.Value, error) {
	switch n := node.(type) {

	case *ast.Program:
		return e.evalStatements(n.Statements, env)
	case *ast.BlockStatement:
		return e.evalBlock(n, env)

	case *ast.ExpressionStatement:
		return e.Eval(n.Expression, env)
	case *ast.VarDeclaration:
		return e.evalVarDeclaration(n, env)
	case *ast.FunctionStatement:
		return e.evalFunctionStatement(n, env)
	case *ast.ClassStatement:
		return e.evalClassStatement(n, env)
	case *ast.IfStatement:
		return e.evalIfStatement(n, env)
	case *ast.WhileStatement:
		return e.evalWhileStatement(n, env)
	case *ast.ForStatement:
		return e.evalForStatement(n, env)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(n, env)
	case *ast.BreakStatement:
		return nil, breakSignal()
	case *ast.ContinueStatement:
		return nil, continueSignal()
	case *ast.ThrowStatement:
		return e.evalThrowStatement(n, env)
	case *ast.TryStatement:
		return e.evalTryStatement(n, env)
	case *ast.NamespaceStatement:
		return e.evalNamespaceStatement(n, env)
	case *ast.ExportStatement:
		return e.evalExportStatement(n, env)
	case *ast.ImportStatement:
		return e.evalImportStatement(n, env)
	case *ast.MacroStatement:
		// Reaches the evaluator only via --check-style introspection of the
		// raw AST; macros never survive into an evaluated program.
		return zvalue.Null{}, nil

	case *ast.Identifier:
		return e.evalIdentifier(n, env)
	case *ast.IntegerLiteral:
		return zvalue.Int{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return zvalue.Float{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return zvalue.Bool{Value: n.Value}, nil
	case *ast.NullLiteral:
		return zvalue.Null{}, nil
	case *ast.StringLiteral:
		return zvalue.Str{Value: n.Value}, nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env)
	case *ast.DictLiteral:
		return e.evalDictLiteral(n, env)
	case *ast.FunctionLiteral:
		return e.evalFunctionLiteral(n, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(n, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(n, env)
	case *ast.TernaryExpression:
		return e.evalTernaryExpression(n, env)
	case *ast.AssignExpression:
		return e.evalAssignExpression(n, env)
	case *ast.CallExpression:
		return e.evalCallExpression(n, env)
	case *ast.MemberExpression:
		return e.evalMemberExpression(n, env)
	case *ast.IndexExpression:
		return e.evalIndexExpression(n, env)
	case *ast.SliceExpression:
		return e.evalSliceExpression(n, env)
	case *ast.NewExpression:
		return e.evalNewExpression(n, env)
	case *ast.ThisExpression:
		v, ok := env.Get("this")
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "'this' used outside a method")
		}
		return v, nil
	case *ast.SuperExpression:
		return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "'super' may only be used as the object of a member access or a call")
	case *ast.CastExpression:
		return e.evalCastExpression(n, env)

	default:
		return nil, diagnostics.Internalf(diagnostics.CodeInternalError, 0, "evaluator: no case for node type %T", node)
	}
}

// evalStatements runs a top-level or module statement list, collecting the
// reclaimer at the fixed cadence between statements.
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *zvalue.Env) (zvalue.Value, error) {
	var result zvalue.Value = zvalue.Null{}
	for _, stmt := range stmts {
		var err error
		result, err = e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		e.maybeCollect()
	}
	return result, nil
}

// evalBlock runs a `{ ... }` body in a fresh child scope of env, per
// spec.md §4.1 block scoping.
func (e *Evaluator) evalBlock(block *ast.BlockStatement, env *zvalue.Env) (zvalue.Value, error) {
	scope := zvalue.NewEnv(e.GC, env)
	return e.evalStatements(block.Statements, scope)
}
