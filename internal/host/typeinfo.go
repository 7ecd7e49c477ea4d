package host

import "github.com/zelolang/zelo/internal/zvalue"

// typeinfoRegistrations implements SPEC_FULL.md §4.9's reference
// type-introspection module body: a `type` name getter plus one `is*`
// predicate per Value kind, grounded on
// `original_source/src/BuiltinFunctions.cpp`'s `type`/`typeof` and
// `is_int`/`is_float`/`is_bool`/`is_string`/`is_array`/`is_dict`/
// `is_object`/`is_function`/`is_null` family (camelCased to match this
// package's other natives, e.g. `isAlive`).
func typeinfoRegistrations() []Registration {
	return []Registration{
		{Name: "type", Arity: 1, Fn: typeName},
		{Name: "isInt", Arity: 1, Fn: isKind(zvalue.IntKind)},
		{Name: "isFloat", Arity: 1, Fn: isKind(zvalue.FloatKind)},
		{Name: "isBool", Arity: 1, Fn: isKind(zvalue.BoolKind)},
		{Name: "isString", Arity: 1, Fn: isKind(zvalue.StringKind)},
		{Name: "isArray", Arity: 1, Fn: isKind(zvalue.ArrayKind)},
		{Name: "isDict", Arity: 1, Fn: isKind(zvalue.DictKind)},
		{Name: "isObject", Arity: 1, Fn: isKind(zvalue.ObjectKind)},
		{Name: "isFunction", Arity: 1, Fn: isKind(zvalue.FunctionKind)},
		{Name: "isClass", Arity: 1, Fn: isKind(zvalue.ClassKind)},
		{Name: "isNull", Arity: 1, Fn: isKind(zvalue.NullKind)},
	}
}

// typeName returns a value's Kind as a string, e.g. "int", "array",
// "object" — the same tag set `type()`/`typeof()` return in the original.
func typeName(args []zvalue.Value) (zvalue.Value, error) {
	return zvalue.Str{Value: string(args[0].Kind())}, nil
}

func isKind(k zvalue.Kind) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		return zvalue.Bool{Value: args[0].Kind() == k}, nil
	}
}
