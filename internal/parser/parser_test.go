package parser

import (
	"testing"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/lexer"
	"github.com/zelolang/zelo/internal/token"
)

func lexAll(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexAll(src))
	prog := p.ParseProgram()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors)
	}
	return prog
}

func TestParseVarDeclarationWithAnnotationAndInitializer(t *testing.T) {
	prog := parseProgram(t, `loc x: int = 1 + 2;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VarDeclaration, got %T", prog.Statements[0])
	}
	if decl.Name.Value != "x" || decl.IsConst {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	bt, ok := decl.Annotation.(*ast.BasicType)
	if !ok || bt.Name != "int" {
		t.Fatalf("expected int annotation, got %#v", decl.Annotation)
	}
	if _, ok := decl.Value.(*ast.InfixExpression); !ok {
		t.Fatalf("expected infix initializer, got %T", decl.Value)
	}
}

func TestParseConstDeclaration(t *testing.T) {
	prog := parseProgram(t, `const PI = 3.14;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	if !decl.IsConst {
		t.Fatalf("expected const declaration")
	}
}

func TestOperatorPrecedenceClimbing(t *testing.T) {
	prog := parseProgram(t, `loc x = 1 + 2 * 3;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	infix := decl.Value.(*ast.InfixExpression)
	if infix.Operator != "+" {
		t.Fatalf("expected top-level '+', got %q", infix.Operator)
	}
	right := infix.Right.(*ast.InfixExpression)
	if right.Operator != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got tree %+v", infix)
	}
}

func TestTernaryAndAssignmentAreRightAssociative(t *testing.T) {
	prog := parseProgram(t, `loc x = 0; x = 1 ? 2 : 3;`)
	stmt := prog.Statements[1].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignExpression)
	if _, ok := assign.Value.(*ast.TernaryExpression); !ok {
		t.Fatalf("expected ternary as assign RHS, got %T", assign.Value)
	}

	prog = parseProgram(t, `a = b = c ? 1 : d ? 2 : 3;`)
	outer := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.AssignExpression)
	inner, ok := outer.Value.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("expected a = (b = ...), got %T as outer assign RHS", outer.Value)
	}
	tern := inner.Value.(*ast.TernaryExpression)
	if _, ok := tern.Alternative.(*ast.TernaryExpression); !ok {
		t.Fatalf("expected c ? 1 : (d ? 2 : 3), got %T as ternary alternative", tern.Alternative)
	}
}

func TestFunctionDeclarationWithParamsAndReturnType(t *testing.T) {
	prog := parseProgram(t, `func add(a: int, b: int): int { return a + b; }`)
	fn := prog.Statements[0].(*ast.FunctionStatement)
	if fn.Name.Value != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function decl: %+v", fn)
	}
	rt := fn.ReturnType.(*ast.BasicType)
	if rt.Name != "int" {
		t.Fatalf("expected int return type, got %#v", fn.ReturnType)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

func TestClassDeclarationWithSuperclassAndMethods(t *testing.T) {
	prog := parseProgram(t, `class Dog: Animal { func __init__(name) { this.name = name; } }`)
	cls := prog.Statements[0].(*ast.ClassStatement)
	if cls.Name.Value != "Dog" || cls.Superclass.Value != "Animal" {
		t.Fatalf("unexpected class decl: %+v", cls)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name.Value != "__init__" {
		t.Fatalf("unexpected methods: %+v", cls.Methods)
	}
}

func TestIfElifElseChain(t *testing.T) {
	prog := parseProgram(t, `if 1 then print(1); elif 2 then print(2); else print(3);`)
	ifs := prog.Statements[0].(*ast.IfStatement)
	elif, ok := ifs.Else.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected elif branch to be an *ast.IfStatement, got %T", ifs.Else)
	}
	if _, ok := elif.Else.(*ast.ExpressionStatement); !ok {
		t.Fatalf("expected final else to be an expression statement, got %T", elif.Else)
	}
}

func TestWhileLoop(t *testing.T) {
	prog := parseProgram(t, `while x < 10 { x = x + 1; }`)
	ws := prog.Statements[0].(*ast.WhileStatement)
	if _, ok := ws.Body.(*ast.BlockStatement); !ok {
		t.Fatalf("expected block body, got %T", ws.Body)
	}
}

func TestForInLoop(t *testing.T) {
	prog := parseProgram(t, `for (v in items) print(v);`)
	fs := prog.Statements[0].(*ast.ForStatement)
	if fs.Var.Value != "v" {
		t.Fatalf("unexpected loop variable: %+v", fs.Var)
	}
}

func TestTryCatchWithTypeAnnotation(t *testing.T) {
	prog := parseProgram(t, `try { throw "x"; } catch (e: string) { print(e); }`)
	ts := prog.Statements[0].(*ast.TryStatement)
	if ts.CatchName.Value != "e" {
		t.Fatalf("unexpected catch name: %+v", ts.CatchName)
	}
	bt := ts.CatchAnnotation.(*ast.BasicType)
	if bt.Name != "string" {
		t.Fatalf("expected string catch annotation, got %#v", ts.CatchAnnotation)
	}
}

func TestImportFormsAndExport(t *testing.T) {
	prog := parseProgram(t, `import "lib/a";
import { foo, bar } from "lib/b" as B;
export { foo };`)
	forget := prog.Statements[0].(*ast.ImportStatement)
	if forget.Mode != ast.ImportForget || forget.Path != "lib/a" {
		t.Fatalf("unexpected forget import: %+v", forget)
	}
	named := prog.Statements[1].(*ast.ImportStatement)
	if named.Mode != ast.ImportNames || named.Path != "lib/b" || named.Alias.Value != "B" || len(named.Names) != 2 {
		t.Fatalf("unexpected named import: %+v", named)
	}
	exp := prog.Statements[2].(*ast.ExportStatement)
	if len(exp.Names) != 1 || exp.Names[0].Value != "foo" {
		t.Fatalf("unexpected export: %+v", exp)
	}
}

func TestSliceGrammarAllComponentsOptional(t *testing.T) {
	prog := parseProgram(t, `loc a = arr[1:5:2]; loc b = arr[:5]; loc c = arr[1:]; loc d = arr[:];`)
	for i, want := range []struct{ start, stop, step bool }{
		{true, true, true}, {false, true, false}, {true, false, false}, {false, false, false},
	} {
		decl := prog.Statements[i].(*ast.VarDeclaration)
		slice := decl.Value.(*ast.SliceExpression)
		if (slice.Start != nil) != want.start || (slice.Stop != nil) != want.stop || (slice.Step != nil) != want.step {
			t.Fatalf("statement %d: slice components mismatch: %+v", i, slice)
		}
	}
}

func TestPlainIndexExpressionIsNotASlice(t *testing.T) {
	prog := parseProgram(t, `loc x = arr[0];`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	if _, ok := decl.Value.(*ast.IndexExpression); !ok {
		t.Fatalf("expected plain index expression, got %T", decl.Value)
	}
}

func TestTypeAnnotationUnionArrayDict(t *testing.T) {
	prog := parseProgram(t, `func f(x: int | string, y: array[int], z: dict{string:bool}) { return x; }`)
	fn := prog.Statements[0].(*ast.FunctionStatement)

	union, ok := fn.Parameters[0].Annotation.(*ast.UnionType)
	if !ok || len(union.Options) != 2 {
		t.Fatalf("expected 2-option union, got %#v", fn.Parameters[0].Annotation)
	}

	arr, ok := fn.Parameters[1].Annotation.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected array type, got %#v", fn.Parameters[1].Annotation)
	}
	if elem, ok := arr.Elem.(*ast.BasicType); !ok || elem.Name != "int" {
		t.Fatalf("expected array[int], got %#v", arr.Elem)
	}

	dict, ok := fn.Parameters[2].Annotation.(*ast.DictType)
	if !ok {
		t.Fatalf("expected dict type, got %#v", fn.Parameters[2].Annotation)
	}
	if k, ok := dict.Key.(*ast.BasicType); !ok || k.Name != "string" {
		t.Fatalf("expected dict key string, got %#v", dict.Key)
	}
}

func TestCastExpression(t *testing.T) {
	prog := parseProgram(t, `loc x = int("42");`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	cast, ok := decl.Value.(*ast.CastExpression)
	if !ok {
		t.Fatalf("expected cast expression, got %T", decl.Value)
	}
	bt := cast.Annotation.(*ast.BasicType)
	if bt.Name != "int" {
		t.Fatalf("expected int cast target, got %#v", cast.Annotation)
	}
}

func TestNewExpressionAndMethodCallChain(t *testing.T) {
	prog := parseProgram(t, `loc a = new V(1).clone();`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	call := decl.Value.(*ast.CallExpression)
	member := call.Callee.(*ast.MemberExpression)
	if member.Property != "clone" {
		t.Fatalf("expected trailing .clone() call, got %+v", call)
	}
	if _, ok := member.Object.(*ast.NewExpression); !ok {
		t.Fatalf("expected new-expression receiver, got %T", member.Object)
	}
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	p := New(lexAll(`loc x = ;
loc y = 1;`))
	prog := p.ParseProgram()
	if len(p.Errors) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	// Despite the broken first statement, the second should still parse.
	var foundY bool
	for _, stmt := range prog.Statements {
		if decl, ok := stmt.(*ast.VarDeclaration); ok && decl.Name.Value == "y" {
			foundY = true
		}
	}
	if !foundY {
		t.Fatalf("expected recovery to still parse the second declaration, got %+v", prog.Statements)
	}
}

func TestRequireAndIncludeParseAsCallExpressions(t *testing.T) {
	prog := parseProgram(t, `loc a = require("lib/a"); loc b = include("lib/b");`)

	req := prog.Statements[0].(*ast.VarDeclaration).Value.(*ast.CallExpression)
	ident, ok := req.Callee.(*ast.Identifier)
	if !ok || ident.Value != "require" {
		t.Fatalf("expected require(...) to parse as a call to identifier %q, got %#v", "require", req.Callee)
	}
	if len(req.Arguments) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(req.Arguments))
	}

	inc := prog.Statements[1].(*ast.VarDeclaration).Value.(*ast.CallExpression)
	ident, ok = inc.Callee.(*ast.Identifier)
	if !ok || ident.Value != "include" {
		t.Fatalf("expected include(...) to parse as a call to identifier %q, got %#v", "include", inc.Callee)
	}
}

func TestAwaitIsRejected(t *testing.T) {
	p := New(lexAll(`loc x = await foo();`))
	p.ParseProgram()
	if len(p.Errors) == 0 {
		t.Fatalf("expected await to be rejected with a not-implemented error")
	}
}
