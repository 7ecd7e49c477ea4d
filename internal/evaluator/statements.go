package evaluator

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/typesystem"
	"github.com/zelolang/zelo/internal/zvalue"
)

func (e *Evaluator) evalVarDeclaration(n *ast.VarDeclaration, env *zvalue.Env) (zvalue.Value, error) {
	if env.Has(n.Name.Value) {
		return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "%q is already declared in this scope", n.Name.Value)
	}

	var val zvalue.Value = zvalue.Null{}
	if n.Value != nil {
		v, err := e.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		val = v
	}

	if n.Annotation != nil && !typesystem.Satisfies(val, n.Annotation) {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "value does not satisfy the declared type of %q", n.Name.Value)
	}

	env.Define(n.Name.Value, val)
	if n.IsConst {
		e.consts(env)[n.Name.Value] = true
	}
	return zvalue.Null{}, nil
}

func (e *Evaluator) consts(env *zvalue.Env) map[string]bool {
	m, ok := e.constNames[env]
	if !ok {
		m = make(map[string]bool)
		e.constNames[env] = m
	}
	return m
}

func (e *Evaluator) isConst(env *zvalue.Env, name string) bool {
	for scope := env; scope != nil; scope = scope.Outer() {
		if m, ok := e.constNames[scope]; ok && m[name] {
			return true
		}
		if scope.Has(name) {
			return false
		}
	}
	return false
}

func (e *Evaluator) evalFunctionStatement(n *ast.FunctionStatement, env *zvalue.Env) (zvalue.Value, error) {
	fn := zvalue.NewFunction(e.GC, &zvalue.Function{
		Name:       n.Name.Value,
		Parameters: n.Parameters,
		ReturnType: n.ReturnType,
		Body:       n.Body,
		Env:        env,
	})
	env.Define(n.Name.Value, fn)
	return zvalue.Null{}, nil
}

func (e *Evaluator) evalFunctionLiteral(n *ast.FunctionLiteral, env *zvalue.Env) (zvalue.Value, error) {
	fn := zvalue.NewFunction(e.GC, &zvalue.Function{
		Parameters: n.Parameters,
		ReturnType: n.ReturnType,
		Body:       n.Body,
		Env:        env,
	})
	return fn, nil
}

// evalClassStatement binds the class name to its *zvalue.Class before the
// methods are closed over env, so a method body referencing its own class
// by name (e.g. inside a factory method) resolves correctly; the methods
// are then added to that same Class in place.
func (e *Evaluator) evalClassStatement(n *ast.ClassStatement, env *zvalue.Env) (zvalue.Value, error) {
	var super *zvalue.Class
	if n.Superclass != nil {
		superVal, ok := env.Get(n.Superclass.Value)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "undefined superclass %q", n.Superclass.Value)
		}
		super, ok = superVal.(*zvalue.Class)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "%q is not a class", n.Superclass.Value)
		}
	}

	class := zvalue.NewClass(e.GC, n.Name.Value, super)
	env.Define(n.Name.Value, class)

	for _, m := range n.Methods {
		method := zvalue.NewFunction(e.GC, &zvalue.Function{
			Name:          m.Name.Value,
			Parameters:    m.Parameters,
			ReturnType:    m.ReturnType,
			Body:          m.Body,
			Env:           env,
			IsConstructor: m.Name.Value == "__init__",
		})
		class.Methods[m.Name.Value] = method
	}

	return zvalue.Null{}, nil
}

func (e *Evaluator) evalIfStatement(n *ast.IfStatement, env *zvalue.Env) (zvalue.Value, error) {
	cond, err := e.Eval(n.Condition, env)
	if err != nil {
		return nil, err
	}
	if zvalue.Truthy(cond) {
		return e.Eval(n.Consequence, env)
	}
	if n.Else != nil {
		return e.Eval(n.Else, env)
	}
	return zvalue.Null{}, nil
}

func (e *Evaluator) evalWhileStatement(n *ast.WhileStatement, env *zvalue.Env) (zvalue.Value, error) {
	for {
		cond, err := e.Eval(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if !zvalue.Truthy(cond) {
			break
		}
		_, err = e.Eval(n.Body, env)
		if err != nil {
			if sig, ok := asSignal(err); ok {
				if sig.Kind == sigBreak {
					break
				}
				if sig.Kind == sigContinue {
					continue
				}
			}
			return nil, err
		}
		e.maybeCollect()
	}
	return zvalue.Null{}, nil
}

// evalForStatement implements `for (v in iterable) body`: arrays only, per
// spec.md §4.3 Non-goals ("for-in over dicts/strings is out of scope").
func (e *Evaluator) evalForStatement(n *ast.ForStatement, env *zvalue.Env) (zvalue.Value, error) {
	iterVal, err := e.Eval(n.Iterable, env)
	if err != nil {
		return nil, err
	}
	arr, ok := iterVal.(*zvalue.Array)
	if !ok {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "for-in requires an array, got %s", iterVal.Kind())
	}

	for _, item := range arr.Items {
		scope := zvalue.NewEnv(e.GC, env)
		scope.Define(n.Var.Value, item)
		_, err := e.Eval(n.Body, scope)
		if err != nil {
			if sig, ok := asSignal(err); ok {
				if sig.Kind == sigBreak {
					break
				}
				if sig.Kind == sigContinue {
					continue
				}
			}
			return nil, err
		}
		e.maybeCollect()
	}
	return zvalue.Null{}, nil
}

func (e *Evaluator) evalReturnStatement(n *ast.ReturnStatement, env *zvalue.Env) (zvalue.Value, error) {
	var val zvalue.Value = zvalue.Null{}
	if n.ReturnValue != nil {
		v, err := e.Eval(n.ReturnValue, env)
		if err != nil {
			return nil, err
		}
		val = v
	}
	return nil, returnSignal(val)
}

func (e *Evaluator) evalThrowStatement(n *ast.ThrowStatement, env *zvalue.Env) (zvalue.Value, error) {
	val, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	return nil, throwSignal(val)
}

// evalTryStatement catches sigThrow signals only: an escaping return,
// break, or continue from inside the try block passes through untouched
// (spec.md §4.4: try/catch intercepts thrown exceptions, not control flow).
func (e *Evaluator) evalTryStatement(n *ast.TryStatement, env *zvalue.Env) (zvalue.Value, error) {
	_, err := e.Eval(n.Block, env)
	if err == nil {
		return zvalue.Null{}, nil
	}
	sig, ok := asSignal(err)
	if !ok || sig.Kind != sigThrow {
		return nil, err
	}
	if n.CatchAnnotation != nil && !typesystem.Satisfies(sig.Value, n.CatchAnnotation) {
		return nil, err
	}

	scope := zvalue.NewEnv(e.GC, env)
	scope.Define(n.CatchName.Value, sig.Value)
	return e.Eval(n.CatchBlock, scope)
}

func (e *Evaluator) evalNamespaceStatement(n *ast.NamespaceStatement, env *zvalue.Env) (zvalue.Value, error) {
	scope := zvalue.NewEnv(e.GC, env)
	if _, err := e.evalStatements(n.Body.Statements, scope); err != nil {
		return nil, err
	}
	ns := zvalue.NewObject(e.GC, zvalue.NewClass(e.GC, n.Name.Value, nil))
	for name, val := range snapshotScope(scope) {
		ns.Fields[name] = val
	}
	env.Define(n.Name.Value, ns)
	return zvalue.Null{}, nil
}

func snapshotScope(env *zvalue.Env) map[string]zvalue.Value {
	out := map[string]zvalue.Value{}
	for _, name := range env.Names() {
		v, _ := env.Get(name)
		out[name] = v
	}
	return out
}

// evalExportStatement records the listed names into the module's
// __exports__ binding, creating it on first use (spec.md §4.7: modules
// expose exports through an `__exports__` dict populated by `export`).
func (e *Evaluator) evalExportStatement(n *ast.ExportStatement, env *zvalue.Env) (zvalue.Value, error) {
	exportsVal, ok := env.Get("__exports__")
	var exports *zvalue.Dict
	if ok {
		exports, ok = exportsVal.(*zvalue.Dict)
	}
	if !ok {
		exports = zvalue.NewDict(e.GC)
		env.Define("__exports__", exports)
	}
	for _, name := range n.Names {
		v, found := env.Get(name.Value)
		if !found {
			return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "cannot export undefined name %q", name.Value)
		}
		exports.Set(name.Value, v)
	}
	return zvalue.Null{}, nil
}

// evalImportStatement implements both forms of spec.md §4.7 `import` using
// cached (require) semantics: the loaded module runs at most once per
// resolved path regardless of how many times it is imported.
func (e *Evaluator) evalImportStatement(n *ast.ImportStatement, env *zvalue.Env) (zvalue.Value, error) {
	if e.Loader == nil {
		return nil, diagnostics.Modulef(diagnostics.CodeModuleNotFound, n.Token.Line, "no module loader configured")
	}
	moduleEnv, err := e.Loader.Require(n.Path)
	if err != nil {
		return nil, err
	}

	switch n.Mode {
	case ast.ImportForget:
		return zvalue.Null{}, nil
	case ast.ImportNames:
		exportsVal, ok := moduleEnv.Get("__exports__")
		exports, _ := exportsVal.(*zvalue.Dict)

		resolve := func(name string) (zvalue.Value, bool) {
			if ok && exports != nil {
				if ev, found := exports.Items[name]; found {
					return ev, true
				}
			}
			return moduleEnv.Get(name)
		}

		if n.Alias != nil {
			// spec.md §4.7: `as N` binds a single scope value N containing
			// only the listed names, not the module's whole top-level
			// environment -- that would leak every unexported binding too.
			scope := zvalue.NewEnv(e.GC, nil)
			for _, name := range n.Names {
				v, found := resolve(name.Value)
				if !found {
					return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "module %q does not export %q", n.Path, name.Value)
				}
				scope.Define(name.Value, v)
			}
			env.Define(n.Alias.Value, scope)
			return zvalue.Null{}, nil
		}
		for _, name := range n.Names {
			v, found := resolve(name.Value)
			if !found {
				return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "module %q does not export %q", n.Path, name.Value)
			}
			env.Define(name.Value, v)
		}
		return zvalue.Null{}, nil
	default:
		return zvalue.Null{}, nil
	}
}
