// Package typesystem implements annotation satisfaction checking and the
// `Cast` coercion rules of spec.md §4.5. Annotations themselves are the
// small closed sum type in internal/ast; this package is where the
// semantics that walk that sum type against internal/zvalue.Value live.
package typesystem

import (
	"fmt"
	"strconv"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/reclaimer"
	"github.com/zelolang/zelo/internal/zvalue"
)

// Satisfies reports whether v already conforms to t without any coercion
// (spec.md §4.5: "a `:` annotation checks satisfaction; it never
// coerces"). A nil annotation always satisfies (unannotated bindings
// accept anything).
func Satisfies(v zvalue.Value, t ast.Type) bool {
	if t == nil {
		return true
	}
	switch tt := t.(type) {
	case *ast.BasicType:
		return satisfiesBasic(v, tt.Name)
	case *ast.ArrayType:
		arr, ok := v.(*zvalue.Array)
		if !ok {
			return false
		}
		for _, item := range arr.Items {
			if !Satisfies(item, tt.Elem) {
				return false
			}
		}
		return true
	case *ast.DictType:
		dict, ok := v.(*zvalue.Dict)
		if !ok {
			return false
		}
		for key, item := range dict.Items {
			if !Satisfies(zvalue.Str{Value: key}, tt.Key) {
				return false
			}
			if !Satisfies(item, tt.Value) {
				return false
			}
		}
		return true
	case *ast.UnionType:
		for _, opt := range tt.Options {
			if Satisfies(v, opt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func satisfiesBasic(v zvalue.Value, name string) bool {
	switch name {
	case "any":
		return true
	case "int":
		_, ok := v.(zvalue.Int)
		return ok
	case "float":
		_, ok := v.(zvalue.Float)
		return ok
	case "bool":
		_, ok := v.(zvalue.Bool)
		return ok
	case "string":
		_, ok := v.(zvalue.Str)
		return ok
	case "null":
		_, ok := v.(zvalue.Null)
		return ok
	default:
		// A class name used as an annotation: satisfied by an instance of
		// that class or any subclass (spec.md §4.5 "a class name as an
		// annotation checks instanceof, walking the superclass chain").
		obj, ok := v.(*zvalue.Object)
		if !ok {
			return false
		}
		for cls := obj.Class; cls != nil; cls = cls.Super {
			if cls.Name == name {
				return true
			}
		}
		return false
	}
}

// Cast performs the explicit `TYPE(expr)` coercion of spec.md §4.5. Unlike
// Satisfies, Cast converts between the scalar kinds where a conversion is
// well-defined, and returns a *diagnostics-shaped error otherwise. gc is
// needed because casting to array/dict types allocates a new Value.
func Cast(gc *reclaimer.GC, v zvalue.Value, t ast.Type) (zvalue.Value, error) {
	bt, ok := t.(*ast.BasicType)
	if !ok {
		return castComposite(gc, v, t)
	}
	switch bt.Name {
	case "any":
		return v, nil
	case "int":
		return castToInt(v)
	case "float":
		return castToFloat(v)
	case "bool":
		return zvalue.Bool{Value: zvalue.Truthy(v)}, nil
	case "string":
		return zvalue.Str{Value: v.Inspect()}, nil
	default:
		return nil, fmt.Errorf("cannot cast to %q", bt.Name)
	}
}

func castToInt(v zvalue.Value) (zvalue.Value, error) {
	switch vv := v.(type) {
	case zvalue.Int:
		return vv, nil
	case zvalue.Float:
		// Truncates toward zero, matching int/int division (spec.md §4.4).
		return zvalue.Int{Value: int64(vv.Value)}, nil
	case zvalue.Bool:
		if vv.Value {
			return zvalue.Int{Value: 1}, nil
		}
		return zvalue.Int{Value: 0}, nil
	case zvalue.Str:
		n, err := strconv.ParseInt(vv.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to int", vv.Value)
		}
		return zvalue.Int{Value: n}, nil
	default:
		return nil, fmt.Errorf("cannot cast %s to int", v.Kind())
	}
}

func castToFloat(v zvalue.Value) (zvalue.Value, error) {
	switch vv := v.(type) {
	case zvalue.Float:
		return vv, nil
	case zvalue.Int:
		return zvalue.Float{Value: float64(vv.Value)}, nil
	case zvalue.Bool:
		if vv.Value {
			return zvalue.Float{Value: 1}, nil
		}
		return zvalue.Float{Value: 0}, nil
	case zvalue.Str:
		f, err := strconv.ParseFloat(vv.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to float", vv.Value)
		}
		return zvalue.Float{Value: f}, nil
	default:
		return nil, fmt.Errorf("cannot cast %s to float", v.Kind())
	}
}

// castComposite handles array[T] and dict{K:V} casts: spec.md §4.5 says
// these re-validate/re-cast each element rather than reinterpreting the
// container, since there is no other sensible coercion between an
// array and a dict.
func castComposite(gc *reclaimer.GC, v zvalue.Value, t ast.Type) (zvalue.Value, error) {
	switch tt := t.(type) {
	case *ast.ArrayType:
		arr, ok := v.(*zvalue.Array)
		if !ok {
			return nil, fmt.Errorf("cannot cast %s to array", v.Kind())
		}
		out := make([]zvalue.Value, len(arr.Items))
		for i, item := range arr.Items {
			casted, err := Cast(gc, item, tt.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = casted
		}
		return zvalue.NewArray(gc, out), nil
	case *ast.DictType:
		dict, ok := v.(*zvalue.Dict)
		if !ok {
			return nil, fmt.Errorf("cannot cast %s to dict", v.Kind())
		}
		out := zvalue.NewDict(gc)
		for _, key := range dict.Order {
			casted, err := Cast(gc, dict.Items[key], tt.Value)
			if err != nil {
				return nil, err
			}
			out.Set(key, casted)
		}
		return out, nil
	case *ast.UnionType:
		// Cast against a union tries each option in order and keeps the
		// first that succeeds (spec.md §4.5 Open Question, decided).
		var lastErr error
		for _, opt := range tt.Options {
			casted, err := Cast(gc, v, opt)
			if err == nil {
				return casted, nil
			}
			lastErr = err
		}
		return nil, lastErr
	default:
		return nil, fmt.Errorf("unsupported cast target type")
	}
}
