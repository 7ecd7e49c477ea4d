package host

import (
	"math"

	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// mathRegistrations implements SPEC_FULL.md §4.9's reference `math` module
// body (sqrt/pow/abs/floor/ceil) directly against Go's math package.
func mathRegistrations() []Registration {
	return []Registration{
		{Name: "sqrt", Arity: 1, Fn: unaryFloat(math.Sqrt)},
		{Name: "pow", Arity: 2, Fn: binaryFloat(math.Pow)},
		{Name: "abs", Arity: 1, Fn: absValue},
		{Name: "floor", Arity: 1, Fn: unaryFloat(math.Floor)},
		{Name: "ceil", Arity: 1, Fn: unaryFloat(math.Ceil)},
	}
}

func toFloat(v zvalue.Value) (float64, bool) {
	switch n := v.(type) {
	case zvalue.Int:
		return float64(n.Value), true
	case zvalue.Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func unaryFloat(fn func(float64) float64) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		x, ok := toFloat(args[0])
		if !ok {
			return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "expected a number, got %s", args[0].Kind())
		}
		return zvalue.Float{Value: fn(x)}, nil
	}
}

func binaryFloat(fn func(float64, float64) float64) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		a, ok1 := toFloat(args[0])
		b, ok2 := toFloat(args[1])
		if !ok1 || !ok2 {
			return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "expected two numbers")
		}
		return zvalue.Float{Value: fn(a, b)}, nil
	}
}

// absValue preserves Int-ness, unlike the float-returning helpers above,
// so abs(-3) stays an int rather than surprising callers with 3.0.
func absValue(args []zvalue.Value) (zvalue.Value, error) {
	switch n := args[0].(type) {
	case zvalue.Int:
		if n.Value < 0 {
			return zvalue.Int{Value: -n.Value}, nil
		}
		return n, nil
	case zvalue.Float:
		return zvalue.Float{Value: math.Abs(n.Value)}, nil
	default:
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "expected a number, got %s", n.Kind())
	}
}
