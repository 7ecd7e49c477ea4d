package host

import (
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// containerRegistrations implements SPEC_FULL.md §4.9's reference
// container-operations module body: the array/dict growth and
// introspection natives a script needs since array/dict literals are
// otherwise fixed-size, plus the clone natives spec.md §3's invariant
// ("copies are only produced by the clone builtins") requires to exist at
// all. Grounded on `original_source/src/BuiltinFunctions.cpp`'s
// array_push/array_pop/dict_keys/dict_values/dict_has_key/len and its
// __array_clone__/__dict_clone__/object_clone trio.
func (ins *Installer) containerRegistrations() []Registration {
	return []Registration{
		{Name: "len", Arity: 1, Fn: containerLen},
		{Name: "push", Arity: 2, Fn: ins.arrayPush},
		{Name: "pop", Arity: 1, Fn: arrayPop},
		{Name: "keys", Arity: 1, Fn: ins.dictKeys},
		{Name: "values", Arity: 1, Fn: ins.dictValues},
		{Name: "hasKey", Arity: 2, Fn: dictHasKey},
		{Name: "arrayClone", Arity: Variadic, Fn: ins.arrayCloneNative},
		{Name: "dictClone", Arity: Variadic, Fn: ins.dictCloneNative},
		{Name: "objectClone", Arity: Variadic, Fn: ins.objectCloneNative},
		{Name: "objectFields", Arity: 1, Fn: ins.objectFields},
		{Name: "objectMethods", Arity: 1, Fn: ins.objectMethods},
	}
}

func containerLen(args []zvalue.Value) (zvalue.Value, error) {
	switch v := args[0].(type) {
	case *zvalue.Array:
		return zvalue.Int{Value: int64(len(v.Items))}, nil
	case *zvalue.Dict:
		return zvalue.Int{Value: int64(len(v.Order))}, nil
	case zvalue.Str:
		return zvalue.Int{Value: int64(len(v.Value))}, nil
	default:
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "len() expects an array, dict, or string, got %s", args[0].Kind())
	}
}

func (ins *Installer) arrayPush(args []zvalue.Value) (zvalue.Value, error) {
	arr, ok := args[0].(*zvalue.Array)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "push() first argument must be an array, got %s", args[0].Kind())
	}
	arr.Items = append(arr.Items, args[1])
	return zvalue.Int{Value: int64(len(arr.Items))}, nil
}

func arrayPop(args []zvalue.Value) (zvalue.Value, error) {
	arr, ok := args[0].(*zvalue.Array)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "pop() argument must be an array, got %s", args[0].Kind())
	}
	if len(arr.Items) == 0 {
		return nil, diagnostics.Runtimef(diagnostics.CodeIndexOutOfRange, 0, "pop() called on an empty array")
	}
	last := arr.Items[len(arr.Items)-1]
	arr.Items = arr.Items[:len(arr.Items)-1]
	return last, nil
}

func (ins *Installer) dictKeys(args []zvalue.Value) (zvalue.Value, error) {
	d, ok := args[0].(*zvalue.Dict)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "keys() argument must be a dict, got %s", args[0].Kind())
	}
	items := make([]zvalue.Value, len(d.Order))
	for i, k := range d.Order {
		items[i] = zvalue.Str{Value: k}
	}
	return zvalue.NewArray(ins.GC, items), nil
}

func (ins *Installer) dictValues(args []zvalue.Value) (zvalue.Value, error) {
	d, ok := args[0].(*zvalue.Dict)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "values() argument must be a dict, got %s", args[0].Kind())
	}
	items := make([]zvalue.Value, len(d.Order))
	for i, k := range d.Order {
		items[i] = d.Items[k]
	}
	return zvalue.NewArray(ins.GC, items), nil
}

func dictHasKey(args []zvalue.Value) (zvalue.Value, error) {
	d, ok := args[0].(*zvalue.Dict)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "hasKey() first argument must be a dict, got %s", args[0].Kind())
	}
	key, ok := asStr(args[1])
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "hasKey() second argument must be a string, got %s", args[1].Kind())
	}
	_, found := d.Items[key]
	return zvalue.Bool{Value: found}, nil
}

// cloneMode reads an optional trailing "shallow"/"deep" argument, matching
// __array_clone__/__dict_clone__/object_clone's mode parameter; absent it
// defaults to "shallow", same as object_clone's own default.
func cloneMode(args []zvalue.Value, fnName string) (string, error) {
	if len(args) == 1 {
		return "shallow", nil
	}
	mode, ok := asStr(args[1])
	if !ok {
		return "", diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "%s() mode must be a string", fnName)
	}
	if mode != "shallow" && mode != "deep" {
		return "", diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "%s() invalid clone mode %q", fnName, mode)
	}
	return mode, nil
}

func (ins *Installer) arrayCloneNative(args []zvalue.Value) (zvalue.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diagnostics.Runtimef(diagnostics.CodeArityMismatch, 0, "arrayClone() expects 1 or 2 arguments, got %d", len(args))
	}
	arr, ok := args[0].(*zvalue.Array)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "arrayClone() first argument must be an array, got %s", args[0].Kind())
	}
	mode, err := cloneMode(args, "arrayClone")
	if err != nil {
		return nil, err
	}
	return ins.cloneArray(arr, mode), nil
}

func (ins *Installer) dictCloneNative(args []zvalue.Value) (zvalue.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diagnostics.Runtimef(diagnostics.CodeArityMismatch, 0, "dictClone() expects 1 or 2 arguments, got %d", len(args))
	}
	d, ok := args[0].(*zvalue.Dict)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "dictClone() first argument must be a dict, got %s", args[0].Kind())
	}
	mode, err := cloneMode(args, "dictClone")
	if err != nil {
		return nil, err
	}
	return ins.cloneDict(d, mode), nil
}

func (ins *Installer) objectCloneNative(args []zvalue.Value) (zvalue.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, diagnostics.Runtimef(diagnostics.CodeArityMismatch, 0, "objectClone() expects 1 or 2 arguments, got %d", len(args))
	}
	obj, ok := args[0].(*zvalue.Object)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "objectClone() first argument must be an object, got %s", args[0].Kind())
	}
	mode, err := cloneMode(args, "objectClone")
	if err != nil {
		return nil, err
	}
	return ins.cloneObject(obj, mode), nil
}

// cloneValue deep-clones containers and returns every other kind of value
// unchanged (scalars are already copy-by-value; functions/classes/envs have
// no clone semantics of their own, mirroring __array_clone__'s "no clone
// method, use reference" fallback generalized to every non-container kind).
func (ins *Installer) cloneValue(v zvalue.Value, mode string) zvalue.Value {
	if mode != "deep" {
		return v
	}
	switch vv := v.(type) {
	case *zvalue.Array:
		return ins.cloneArray(vv, mode)
	case *zvalue.Dict:
		return ins.cloneDict(vv, mode)
	case *zvalue.Object:
		return ins.cloneObject(vv, mode)
	default:
		return v
	}
}

func (ins *Installer) cloneArray(arr *zvalue.Array, mode string) *zvalue.Array {
	items := make([]zvalue.Value, len(arr.Items))
	for i, v := range arr.Items {
		items[i] = ins.cloneValue(v, mode)
	}
	return zvalue.NewArray(ins.GC, items)
}

func (ins *Installer) cloneDict(d *zvalue.Dict, mode string) *zvalue.Dict {
	clone := zvalue.NewDict(ins.GC)
	for _, k := range d.Order {
		clone.Set(k, ins.cloneValue(d.Items[k], mode))
	}
	return clone
}

// cloneObject builds a fresh Object sharing obj's class and, for "deep",
// recursively cloned field values. internal/host deliberately cannot invoke
// a user-defined `__clone__` method here (it holds no evaluator call
// capability, by the same narrow-interface design as host.Loader/
// host.TraceStore), so this is always the structural fallback the original
// object_clone takes "if no __clone__ method" — a plain field-map copy.
func (ins *Installer) cloneObject(obj *zvalue.Object, mode string) *zvalue.Object {
	clone := zvalue.NewObject(ins.GC, obj.Class)
	for k, v := range obj.Fields {
		clone.Fields[k] = ins.cloneValue(v, mode)
	}
	return clone
}

func (ins *Installer) objectFields(args []zvalue.Value) (zvalue.Value, error) {
	obj, ok := args[0].(*zvalue.Object)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "objectFields() argument must be an object, got %s", args[0].Kind())
	}
	items := make([]zvalue.Value, 0, len(obj.Fields))
	for name := range obj.Fields {
		items = append(items, zvalue.Str{Value: name})
	}
	return zvalue.NewArray(ins.GC, items), nil
}

func (ins *Installer) objectMethods(args []zvalue.Value) (zvalue.Value, error) {
	obj, ok := args[0].(*zvalue.Object)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "objectMethods() argument must be an object, got %s", args[0].Kind())
	}
	items := make([]zvalue.Value, 0)
	for cls := obj.Class; cls != nil; cls = cls.Super {
		for name := range cls.Methods {
			items = append(items, zvalue.Str{Value: name})
		}
	}
	return zvalue.NewArray(ins.GC, items), nil
}
