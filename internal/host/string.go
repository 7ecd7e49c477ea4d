package host

import (
	"strings"

	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/zvalue"
)

// stringRegistrations implements SPEC_FULL.md §4.9's reference `string`
// module body: byte-level upper/lower/split/join/trim, no Unicode-aware
// casing per spec.md §1's stated non-goal.
func (ins *Installer) stringRegistrations() []Registration {
	return []Registration{
		{Name: "upper", Arity: 1, Fn: unaryStr(strings.ToUpper)},
		{Name: "lower", Arity: 1, Fn: unaryStr(strings.ToLower)},
		{Name: "trim", Arity: 1, Fn: unaryStr(strings.TrimSpace)},
		{Name: "split", Arity: 2, Fn: ins.splitString},
		{Name: "join", Arity: 2, Fn: joinStrings},
	}
}

func asStr(v zvalue.Value) (string, bool) {
	s, ok := v.(zvalue.Str)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func unaryStr(fn func(string) string) NativeFunc {
	return func(args []zvalue.Value) (zvalue.Value, error) {
		s, ok := asStr(args[0])
		if !ok {
			return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "expected a string, got %s", args[0].Kind())
		}
		return zvalue.Str{Value: fn(s)}, nil
	}
}

func (ins *Installer) splitString(args []zvalue.Value) (zvalue.Value, error) {
	s, ok1 := asStr(args[0])
	sep, ok2 := asStr(args[1])
	if !ok1 || !ok2 {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "split expects two strings")
	}
	parts := strings.Split(s, sep)
	items := make([]zvalue.Value, len(parts))
	for i, p := range parts {
		items[i] = zvalue.Str{Value: p}
	}
	return zvalue.NewArray(ins.GC, items), nil
}

func joinStrings(args []zvalue.Value) (zvalue.Value, error) {
	arr, ok := args[0].(*zvalue.Array)
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "join expects an array of strings")
	}
	sep, ok := asStr(args[1])
	if !ok {
		return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "join expects a string separator")
	}
	parts := make([]string, len(arr.Items))
	for i, item := range arr.Items {
		s, ok := asStr(item)
		if !ok {
			return nil, diagnostics.Typef(diagnostics.CodeTypeMismatch, 0, "join expects an array of strings, found %s at index %d", item.Kind(), i)
		}
		parts[i] = s
	}
	return zvalue.Str{Value: strings.Join(parts, sep)}, nil
}
