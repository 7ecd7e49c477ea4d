package evaluator

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/typesystem"
	"github.com/zelolang/zelo/internal/zvalue"
)

// bindMethod produces the transient per-call binding spec.md §4.6
// describes: a fresh scope whose parent is the method's captured scope,
// defining `this`, wrapping the method body in a *zvalue.Function over
// that scope. The binding is re-created on every lookup; nothing is cached
// on the Class or Object.
func (e *Evaluator) bindMethod(method *zvalue.Function, obj *zvalue.Object) *zvalue.Function {
	scope := zvalue.NewEnv(e.GC, method.Env)
	scope.Define("this", obj)
	return zvalue.NewFunction(e.GC, &zvalue.Function{
		Name:          method.Name,
		Parameters:    method.Parameters,
		ReturnType:    method.ReturnType,
		Body:          method.Body,
		Env:           scope,
		IsConstructor: method.IsConstructor,
	})
}

// callFunction invokes fn with args, checking declared parameter
// annotations and arity (spec.md §4.4 "arity checking"). Constructors
// yield `this` from their captured scope rather than their return value.
func (e *Evaluator) callFunction(fn *zvalue.Function, args []zvalue.Value) (zvalue.Value, error) {
	if fn.IsNative() {
		// Native functions validate their own argument count and return a
		// diagnostics.Error on mismatch; Parameters is unused for natives.
		v, err := fn.Native(args)
		if err != nil {
			if diag, ok := err.(*diagnostics.Error); ok {
				return nil, faultSignal(diag)
			}
			return nil, err
		}
		return v, nil
	}

	if len(args) > len(fn.Parameters) {
		return nil, typeFault(0, diagnostics.CodeArityMismatch, "%s expects %d argument(s), got %d", fn.Name, len(fn.Parameters), len(args))
	}

	callEnv := zvalue.NewEnv(e.GC, fn.Env)
	for i, param := range fn.Parameters {
		var val zvalue.Value = zvalue.Null{}
		if i < len(args) {
			val = args[i]
		}
		if param.Annotation != nil && !typesystem.Satisfies(val, param.Annotation) {
			return nil, typeFault(0, diagnostics.CodeTypeMismatch, "argument %q does not satisfy its declared type", param.Name.Value)
		}
		callEnv.Define(param.Name.Value, val)
	}

	result, err := e.evalStatements(fn.Body.Statements, callEnv)
	if err != nil {
		sig, ok := asSignal(err)
		if !ok || sig.Kind != sigReturn {
			return nil, err
		}
		if fn.IsConstructor {
			this, _ := fn.Env.Get("this")
			return this, nil
		}
		if fn.ReturnType != nil && !typesystem.Satisfies(sig.Value, fn.ReturnType) {
			return nil, typeFault(0, diagnostics.CodeTypeMismatch, "return value does not satisfy %s's declared return type", fn.Name)
		}
		return sig.Value, nil
	}

	if fn.IsConstructor {
		this, _ := fn.Env.Get("this")
		return this, nil
	}
	_ = result
	return zvalue.Null{}, nil
}

// instantiate constructs a fresh object of class, binding and invoking
// __init__ if the class (or a superclass) defines one.
func (e *Evaluator) instantiate(class *zvalue.Class, args []zvalue.Value) (zvalue.Value, error) {
	obj := zvalue.NewObject(e.GC, class)
	if initMethod, ok := class.LookupMethod("__init__"); ok {
		bound := e.bindMethod(initMethod, obj)
		bound.IsConstructor = true
		if _, err := e.callFunction(bound, args); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (e *Evaluator) evalArgs(exprs []ast.Expression, env *zvalue.Env) ([]zvalue.Value, error) {
	args := make([]zvalue.Value, len(exprs))
	for i, a := range exprs {
		v, err := e.Eval(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// evalCallExpression handles a bare `super(...)` call as invoking the
// superclass's __init__ bound to the current `this`; otherwise it
// evaluates the callee normally and dispatches on whether it is a
// Function or a Class (class construction via call, spec.md §4.4).
func (e *Evaluator) evalCallExpression(n *ast.CallExpression, env *zvalue.Env) (zvalue.Value, error) {
	line := n.Token.Line

	if _, ok := n.Callee.(*ast.SuperExpression); ok {
		thisVal, ok := env.Get("this")
		if !ok {
			return nil, typeFault(line, diagnostics.CodeInvalidOperation, "'super' used outside a method")
		}
		thisObj, ok := thisVal.(*zvalue.Object)
		if !ok || thisObj.Class.Super == nil {
			return nil, typeFault(line, diagnostics.CodeInvalidOperation, "class has no superclass")
		}
		init, ok := thisObj.Class.Super.LookupMethod("__init__")
		if !ok {
			return zvalue.Null{}, nil
		}
		bound := e.bindMethod(init, thisObj)
		bound.IsConstructor = true
		args, err := e.evalArgs(n.Arguments, env)
		if err != nil {
			return nil, err
		}
		return e.callFunction(bound, args)
	}

	calleeVal, err := e.Eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(n.Arguments, env)
	if err != nil {
		return nil, err
	}

	switch callee := calleeVal.(type) {
	case *zvalue.Function:
		return e.callFunction(callee, args)
	case *zvalue.Class:
		return e.instantiate(callee, args)
	default:
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "%s is not callable", calleeVal.Kind())
	}
}

func (e *Evaluator) evalNewExpression(n *ast.NewExpression, env *zvalue.Env) (zvalue.Value, error) {
	classVal, err := e.Eval(n.Class, env)
	if err != nil {
		return nil, err
	}
	class, ok := classVal.(*zvalue.Class)
	if !ok {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "'new' requires a class, got %s", classVal.Kind())
	}
	args, err := e.evalArgs(n.Arguments, env)
	if err != nil {
		return nil, err
	}
	return e.instantiate(class, args)
}

// evalMemberObject evaluates the object sub-expression of a member access,
// special-casing a bare `super` receiver into the superclass method table
// of the current `this` (spec.md: super is only valid as a member/call
// receiver inside a method body).
func (e *Evaluator) evalMemberObject(n *ast.MemberExpression, env *zvalue.Env) (zvalue.Value, error) {
	if _, ok := n.Object.(*ast.SuperExpression); ok {
		thisVal, ok := env.Get("this")
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "'super' used outside a method")
		}
		return thisVal, nil
	}
	return e.Eval(n.Object, env)
}

func (e *Evaluator) evalMemberExpression(n *ast.MemberExpression, env *zvalue.Env) (zvalue.Value, error) {
	if _, ok := n.Object.(*ast.SuperExpression); ok {
		thisVal, ok := env.Get("this")
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "'super' used outside a method")
		}
		thisObj, ok := thisVal.(*zvalue.Object)
		if !ok || thisObj.Class.Super == nil {
			return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "class has no superclass")
		}
		m, ok := thisObj.Class.Super.LookupMethod(n.Property)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "undefined attribute %q", n.Property)
		}
		return e.bindMethod(m, thisObj), nil
	}

	objVal, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := objVal.(*zvalue.Object)
	if !ok {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "cannot access .%s on %s", n.Property, objVal.Kind())
	}
	return e.readMember(n.Token.Line, obj, n.Property)
}

// readMember implements spec.md §4.6's lookup order: field map, then the
// class method table (bound transiently), then __getattr__ as a fallback.
func (e *Evaluator) readMember(line int, obj *zvalue.Object, name string) (zvalue.Value, error) {
	if v, ok := obj.Fields[name]; ok {
		return v, nil
	}
	if m, ok := obj.Class.LookupMethod(name); ok {
		return e.bindMethod(m, obj), nil
	}
	if getattr, ok := obj.Class.LookupMethod("__getattr__"); ok {
		bound := e.bindMethod(getattr, obj)
		return e.callFunction(bound, []zvalue.Value{zvalue.Str{Value: name}})
	}
	return nil, typeFault(line, diagnostics.CodeKeyNotFound, "undefined attribute %q on %s", name, obj.Class.Name)
}

// assignMember implements __setattr__ fallback, else a direct field write
// (spec.md §4.6).
func (e *Evaluator) assignMember(obj *zvalue.Object, name string, value zvalue.Value) error {
	if setattr, ok := obj.Class.LookupMethod("__setattr__"); ok {
		bound := e.bindMethod(setattr, obj)
		_, err := e.callFunction(bound, []zvalue.Value{zvalue.Str{Value: name}, value})
		return err
	}
	obj.Fields[name] = value
	return nil
}

func (e *Evaluator) evalIndexExpression(n *ast.IndexExpression, env *zvalue.Env) (zvalue.Value, error) {
	objVal, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	return e.readIndex(n.Token.Line, objVal, idxVal)
}

// readIndex rebases negative array indices and raises runtime faults for
// out-of-range indices or missing dict keys, per spec.md §4.4.
func (e *Evaluator) readIndex(line int, objVal, idxVal zvalue.Value) (zvalue.Value, error) {
	switch obj := objVal.(type) {
	case *zvalue.Array:
		iv, ok := idxVal.(zvalue.Int)
		if !ok {
			return nil, typeFault(line, diagnostics.CodeTypeMismatch, "array index must be an int, got %s", idxVal.Kind())
		}
		idx := int(iv.Value)
		if idx < 0 {
			idx += len(obj.Items)
		}
		if idx < 0 || idx >= len(obj.Items) {
			return nil, runtimeFault(line, diagnostics.CodeIndexOutOfRange, "array index %d out of range", iv.Value)
		}
		return obj.Items[idx], nil
	case *zvalue.Dict:
		sv, ok := idxVal.(zvalue.Str)
		if !ok {
			return nil, typeFault(line, diagnostics.CodeTypeMismatch, "dict key must be a string, got %s", idxVal.Kind())
		}
		v, ok := obj.Items[sv.Value]
		if !ok {
			return nil, runtimeFault(line, diagnostics.CodeKeyNotFound, "key %q not found", sv.Value)
		}
		return v, nil
	default:
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "%s is not indexable", objVal.Kind())
	}
}

func (e *Evaluator) assignIndex(line int, objVal, idxVal, value zvalue.Value) error {
	switch obj := objVal.(type) {
	case *zvalue.Array:
		iv, ok := idxVal.(zvalue.Int)
		if !ok {
			return typeFault(line, diagnostics.CodeTypeMismatch, "array index must be an int, got %s", idxVal.Kind())
		}
		idx := int(iv.Value)
		if idx < 0 {
			idx += len(obj.Items)
		}
		if idx < 0 || idx >= len(obj.Items) {
			return runtimeFault(line, diagnostics.CodeIndexOutOfRange, "array index %d out of range", iv.Value)
		}
		obj.Items[idx] = value
		return nil
	case *zvalue.Dict:
		sv, ok := idxVal.(zvalue.Str)
		if !ok {
			return typeFault(line, diagnostics.CodeTypeMismatch, "dict key must be a string, got %s", idxVal.Kind())
		}
		obj.Set(sv.Value, value)
		return nil
	default:
		return typeFault(line, diagnostics.CodeTypeMismatch, "%s does not support index assignment", objVal.Kind())
	}
}

// resolveSliceBounds implements spec.md §4.4's slice-bounds algorithm:
// defaulting, negative-index rebasing, then clamping to [0,n] for a
// positive step or [-1,n-1] for a negative step.
func resolveSliceBounds(n int, start, stop, step *int64) (s, e, st int64, err error) {
	st = 1
	if step != nil {
		st = *step
	}
	if st == 0 {
		return 0, 0, 0, errZeroStep
	}

	if start != nil {
		s = *start
	} else if st < 0 {
		s = int64(n)
	} else {
		s = 0
	}
	if stop != nil {
		e = *stop
	} else if st < 0 {
		e = -1 - int64(n)
	} else {
		e = int64(n)
	}

	if s < 0 {
		s += int64(n)
	}
	if e < 0 {
		e += int64(n)
	}

	if st > 0 {
		if s < 0 {
			s = 0
		}
		if s > int64(n) {
			s = int64(n)
		}
		if e < 0 {
			e = 0
		}
		if e > int64(n) {
			e = int64(n)
		}
	} else {
		if s < -1 {
			s = -1
		}
		if s > int64(n)-1 {
			s = int64(n) - 1
		}
		if e < -1 {
			e = -1
		}
		if e > int64(n)-1 {
			e = int64(n) - 1
		}
	}
	return s, e, st, nil
}

var errZeroStep = sliceStepError{}

type sliceStepError struct{}

func (sliceStepError) Error() string { return "slice step cannot be zero" }

func (e *Evaluator) evalSliceExpression(n *ast.SliceExpression, env *zvalue.Env) (zvalue.Value, error) {
	objVal, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	arr, ok := objVal.(*zvalue.Array)
	if !ok {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "slicing requires an array, got %s", objVal.Kind())
	}

	asIntPtr := func(expr ast.Expression) (*int64, error) {
		if expr == nil {
			return nil, nil
		}
		v, err := e.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		iv, ok := v.(zvalue.Int)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "slice bounds must be ints, got %s", v.Kind())
		}
		return &iv.Value, nil
	}

	start, err := asIntPtr(n.Start)
	if err != nil {
		return nil, err
	}
	stop, err := asIntPtr(n.Stop)
	if err != nil {
		return nil, err
	}
	step, err := asIntPtr(n.Step)
	if err != nil {
		return nil, err
	}

	s, end, st, boundsErr := resolveSliceBounds(len(arr.Items), start, stop, step)
	if boundsErr != nil {
		return nil, runtimeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "%s", boundsErr.Error())
	}

	var out []zvalue.Value
	if st > 0 {
		for i := s; i < end; i += st {
			out = append(out, arr.Items[i])
		}
	} else {
		for i := s; i > end; i += st {
			out = append(out, arr.Items[i])
		}
	}
	return zvalue.NewArray(e.GC, out), nil
}
