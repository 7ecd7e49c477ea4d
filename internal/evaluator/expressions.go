package evaluator

import (
	"math"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/typesystem"
	"github.com/zelolang/zelo/internal/zvalue"
)

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *zvalue.Env) (zvalue.Value, error) {
	if v, ok := env.Get(n.Value); ok {
		return v, nil
	}
	return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "undefined variable %q", n.Value)
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, env *zvalue.Env) (zvalue.Value, error) {
	items := make([]zvalue.Value, len(n.Elements))
	for i, elem := range n.Elements {
		v, err := e.Eval(elem, env)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return zvalue.NewArray(e.GC, items), nil
}

func (e *Evaluator) evalDictLiteral(n *ast.DictLiteral, env *zvalue.Env) (zvalue.Value, error) {
	dict := zvalue.NewDict(e.GC)
	for _, entry := range n.Entries {
		keyVal, err := e.Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		key, ok := keyVal.(zvalue.Str)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "dict keys must be strings, got %s", keyVal.Kind())
		}
		val, err := e.Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Set(key.Value, val)
	}
	return dict, nil
}

// evalPrefixExpression implements spec.md §4.4's unary table: `-` negates
// numerics, `!` inverts truthiness, `~` bit-complements integers, and
// `++`/`--` yield x+1/x-1 without mutating their operand.
func (e *Evaluator) evalPrefixExpression(n *ast.PrefixExpression, env *zvalue.Env) (zvalue.Value, error) {
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	line := n.Token.Line

	switch n.Operator {
	case "!":
		return zvalue.Bool{Value: !zvalue.Truthy(right)}, nil
	case "-":
		switch v := right.(type) {
		case zvalue.Int:
			return zvalue.Int{Value: -v.Value}, nil
		case zvalue.Float:
			return zvalue.Float{Value: -v.Value}, nil
		}
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "unary '-' requires a numeric operand, got %s", right.Kind())
	case "~":
		v, ok := right.(zvalue.Int)
		if !ok {
			return nil, typeFault(line, diagnostics.CodeTypeMismatch, "unary '~' requires an int operand, got %s", right.Kind())
		}
		return zvalue.Int{Value: ^v.Value}, nil
	case "++", "--":
		delta := int64(1)
		if n.Operator == "--" {
			delta = -1
		}
		switch v := right.(type) {
		case zvalue.Int:
			return zvalue.Int{Value: v.Value + delta}, nil
		case zvalue.Float:
			return zvalue.Float{Value: v.Value + float64(delta)}, nil
		}
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "%q requires a numeric operand, got %s", n.Operator, right.Kind())
	default:
		return nil, typeFault(line, diagnostics.CodeInvalidOperation, "unknown unary operator %q", n.Operator)
	}
}

var dunderNames = map[string]string{
	"+": "__add__", "-": "__sub__", "*": "__mul__", "/": "__div__", "%": "__mod__",
	"&": "__and__", "|": "__or__", "^": "__xor__", "<<": "__lshift__", ">>": "__rshift__",
	"==": "__eq__", "!=": "__ne__", "<": "__lt__", "<=": "__le__", ">": "__gt__", ">=": "__ge__",
}

// evalInfixExpression implements spec.md §4.4's binary operator table,
// short-circuiting `&&`/`||` before the right operand is evaluated and
// checking for a dunder-method override on an object left operand before
// falling back to the builtin numeric/string/bitwise semantics.
func (e *Evaluator) evalInfixExpression(n *ast.InfixExpression, env *zvalue.Env) (zvalue.Value, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "&&":
		if !zvalue.Truthy(left) {
			return left, nil
		}
		return e.Eval(n.Right, env)
	case "||":
		if zvalue.Truthy(left) {
			return left, nil
		}
		return e.Eval(n.Right, env)
	}

	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	if obj, ok := left.(*zvalue.Object); ok {
		if dunder, ok := dunderNames[n.Operator]; ok {
			if m, found := obj.Class.LookupMethod(dunder); found {
				bound := e.bindMethod(m, obj)
				return e.callFunction(bound, []zvalue.Value{right})
			}
		}
	}

	return e.applyInfix(n.Token.Line, n.Operator, left, right)
}

func (e *Evaluator) applyInfix(line int, op string, left, right zvalue.Value) (zvalue.Value, error) {
	switch op {
	case "+":
		return addValues(line, left, right)
	case "-", "*", "/", "%":
		return numericBinary(line, op, left, right)
	case "==":
		return zvalue.Bool{Value: valuesEqual(left, right)}, nil
	case "!=":
		return zvalue.Bool{Value: !valuesEqual(left, right)}, nil
	case "<", "<=", ">", ">=":
		return comparisonBinary(line, op, left, right)
	case "&", "|", "^", "<<", ">>":
		return bitwiseBinary(line, op, left, right)
	default:
		return nil, typeFault(line, diagnostics.CodeInvalidOperation, "unknown binary operator %q", op)
	}
}

func isNumeric(v zvalue.Value) bool {
	switch v.(type) {
	case zvalue.Int, zvalue.Float:
		return true
	}
	return false
}

func toFloatChecked(v zvalue.Value) (float64, bool) {
	switch vv := v.(type) {
	case zvalue.Int:
		return float64(vv.Value), true
	case zvalue.Float:
		return vv.Value, true
	default:
		return 0, false
	}
}

// addValues implements spec.md §4.4's `+`: int+int -> int; any float ->
// float; otherwise, if either side is a string, concatenate the Inspect
// forms.
func addValues(line int, l, r zvalue.Value) (zvalue.Value, error) {
	if li, ok := l.(zvalue.Int); ok {
		if ri, ok := r.(zvalue.Int); ok {
			return zvalue.Int{Value: li.Value + ri.Value}, nil
		}
	}
	if isNumeric(l) && isNumeric(r) {
		lf, _ := toFloatChecked(l)
		rf, _ := toFloatChecked(r)
		return zvalue.Float{Value: lf + rf}, nil
	}
	if _, ok := l.(zvalue.Str); ok {
		return zvalue.Str{Value: l.Inspect() + r.Inspect()}, nil
	}
	if _, ok := r.(zvalue.Str); ok {
		return zvalue.Str{Value: l.Inspect() + r.Inspect()}, nil
	}
	return nil, typeFault(line, diagnostics.CodeTypeMismatch, "invalid operands to '+': %s and %s", l.Kind(), r.Kind())
}

func numericBinary(line int, op string, l, r zvalue.Value) (zvalue.Value, error) {
	if li, lok := l.(zvalue.Int); lok {
		if ri, rok := r.(zvalue.Int); rok {
			switch op {
			case "-":
				return zvalue.Int{Value: li.Value - ri.Value}, nil
			case "*":
				return zvalue.Int{Value: li.Value * ri.Value}, nil
			case "/":
				if ri.Value == 0 {
					return nil, runtimeFault(line, diagnostics.CodeDivisionByZero, "division by zero")
				}
				return zvalue.Int{Value: li.Value / ri.Value}, nil
			case "%":
				if ri.Value == 0 {
					return nil, runtimeFault(line, diagnostics.CodeDivisionByZero, "modulo by zero")
				}
				return zvalue.Int{Value: li.Value % ri.Value}, nil
			}
		}
	}

	lf, lok := toFloatChecked(l)
	rf, rok := toFloatChecked(r)
	if !lok || !rok {
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "operator %q requires numeric operands, got %s and %s", op, l.Kind(), r.Kind())
	}
	switch op {
	case "-":
		return zvalue.Float{Value: lf - rf}, nil
	case "*":
		return zvalue.Float{Value: lf * rf}, nil
	case "/":
		if rf == 0 {
			return nil, runtimeFault(line, diagnostics.CodeDivisionByZero, "division by zero")
		}
		return zvalue.Float{Value: lf / rf}, nil
	case "%":
		if rf == 0 {
			return nil, runtimeFault(line, diagnostics.CodeDivisionByZero, "modulo by zero")
		}
		// IEEE floating remainder, per spec.md §4.4.
		return zvalue.Float{Value: math.Mod(lf, rf)}, nil
	default:
		return nil, typeFault(line, diagnostics.CodeInvalidOperation, "unknown numeric operator %q", op)
	}
}

func comparisonBinary(line int, op string, l, r zvalue.Value) (zvalue.Value, error) {
	lf, lok := toFloatChecked(l)
	rf, rok := toFloatChecked(r)
	if !lok || !rok {
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "operator %q requires numeric operands, got %s and %s", op, l.Kind(), r.Kind())
	}
	switch op {
	case "<":
		return zvalue.Bool{Value: lf < rf}, nil
	case "<=":
		return zvalue.Bool{Value: lf <= rf}, nil
	case ">":
		return zvalue.Bool{Value: lf > rf}, nil
	case ">=":
		return zvalue.Bool{Value: lf >= rf}, nil
	default:
		return nil, typeFault(line, diagnostics.CodeInvalidOperation, "unknown comparison operator %q", op)
	}
}

func bitwiseBinary(line int, op string, l, r zvalue.Value) (zvalue.Value, error) {
	li, lok := l.(zvalue.Int)
	ri, rok := r.(zvalue.Int)
	if !lok || !rok {
		return nil, typeFault(line, diagnostics.CodeTypeMismatch, "operator %q requires int operands, got %s and %s", op, l.Kind(), r.Kind())
	}
	switch op {
	case "&":
		return zvalue.Int{Value: li.Value & ri.Value}, nil
	case "|":
		return zvalue.Int{Value: li.Value | ri.Value}, nil
	case "^":
		return zvalue.Int{Value: li.Value ^ ri.Value}, nil
	case "<<":
		return zvalue.Int{Value: li.Value << uint64(ri.Value)}, nil
	case ">>":
		return zvalue.Int{Value: li.Value >> uint64(ri.Value)}, nil
	default:
		return nil, typeFault(line, diagnostics.CodeInvalidOperation, "unknown bitwise operator %q", op)
	}
}

// valuesEqual implements structural equality: scalars by value (mixed
// int/float compare numerically), arrays/dicts by deep comparison,
// everything else (objects, functions, classes, environments) by identity.
func valuesEqual(l, r zvalue.Value) bool {
	switch lv := l.(type) {
	case zvalue.Null:
		_, ok := r.(zvalue.Null)
		return ok
	case zvalue.Bool:
		rv, ok := r.(zvalue.Bool)
		return ok && lv.Value == rv.Value
	case zvalue.Str:
		rv, ok := r.(zvalue.Str)
		return ok && lv.Value == rv.Value
	case zvalue.Int, zvalue.Float:
		lf, _ := toFloatChecked(l)
		rf, rok := toFloatChecked(r)
		return rok && lf == rf
	case *zvalue.Array:
		rv, ok := r.(*zvalue.Array)
		if !ok || len(lv.Items) != len(rv.Items) {
			return false
		}
		for i := range lv.Items {
			if !valuesEqual(lv.Items[i], rv.Items[i]) {
				return false
			}
		}
		return true
	case *zvalue.Dict:
		rv, ok := r.(*zvalue.Dict)
		if !ok || len(lv.Items) != len(rv.Items) {
			return false
		}
		for k, v := range lv.Items {
			rval, found := rv.Items[k]
			if !found || !valuesEqual(v, rval) {
				return false
			}
		}
		return true
	case *zvalue.Object:
		rv, ok := r.(*zvalue.Object)
		return ok && lv == rv
	case *zvalue.Function:
		rv, ok := r.(*zvalue.Function)
		return ok && lv == rv
	case *zvalue.Class:
		rv, ok := r.(*zvalue.Class)
		return ok && lv == rv
	case *zvalue.Env:
		rv, ok := r.(*zvalue.Env)
		return ok && lv == rv
	default:
		return false
	}
}

func (e *Evaluator) evalTernaryExpression(n *ast.TernaryExpression, env *zvalue.Env) (zvalue.Value, error) {
	cond, err := e.Eval(n.Condition, env)
	if err != nil {
		return nil, err
	}
	if zvalue.Truthy(cond) {
		return e.Eval(n.Consequence, env)
	}
	return e.Eval(n.Alternative, env)
}

// evalAssignExpression handles plain `=` and compound assignment by
// desugaring `TARGET op= VALUE` to `TARGET = TARGET op VALUE`, evaluating
// TARGET only once even though it logically appears twice (spec.md §4.4).
func (e *Evaluator) evalAssignExpression(n *ast.AssignExpression, env *zvalue.Env) (zvalue.Value, error) {
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}

	if n.Operator != "=" {
		current, err := e.Eval(n.Target, env)
		if err != nil {
			return nil, err
		}
		op := n.Operator[:len(n.Operator)-1] // "+=" -> "+"
		rhs, err = e.applyInfix(n.Token.Line, op, current, rhs)
		if err != nil {
			return nil, err
		}
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		if e.isConst(env, target.Value) {
			return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "cannot assign to const %q", target.Value)
		}
		if !env.Assign(target.Value, rhs) {
			return nil, typeFault(n.Token.Line, diagnostics.CodeUndefinedVariable, "undefined variable %q", target.Value)
		}
		return rhs, nil

	case *ast.MemberExpression:
		objVal, err := e.evalMemberObject(target, env)
		if err != nil {
			return nil, err
		}
		obj, ok := objVal.(*zvalue.Object)
		if !ok {
			return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "cannot set a field on %s", objVal.Kind())
		}
		if err := e.assignMember(obj, target.Property, rhs); err != nil {
			return nil, err
		}
		return rhs, nil

	case *ast.IndexExpression:
		objVal, err := e.Eval(target.Object, env)
		if err != nil {
			return nil, err
		}
		idxVal, err := e.Eval(target.Index, env)
		if err != nil {
			return nil, err
		}
		if err := e.assignIndex(n.Token.Line, objVal, idxVal, rhs); err != nil {
			return nil, err
		}
		return rhs, nil

	default:
		return nil, typeFault(n.Token.Line, diagnostics.CodeInvalidOperation, "invalid assignment target %T", n.Target)
	}
}

func (e *Evaluator) evalCastExpression(n *ast.CastExpression, env *zvalue.Env) (zvalue.Value, error) {
	val, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	result, castErr := typesystem.Cast(e.GC, val, n.Annotation)
	if castErr != nil {
		return nil, typeFault(n.Token.Line, diagnostics.CodeTypeMismatch, "%s", castErr.Error())
	}
	return result, nil
}
