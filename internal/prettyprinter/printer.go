// Package prettyprinter renders an *ast.Program back into zelo source text.
//
// Grounded on the existence and role of funvibe-funxy's
// internal/prettyprinter/code_printer.go (a CodePrinter consumed by
// round-trip tests to check the parser is idempotent under re-parsing its
// own output) rather than ported line-by-line: funxy's printer carries
// syntax zelo's grammar has no equivalent of (pipe/cons operators, pattern
// matching, generics), so this one is written fresh against zelo's own
// much smaller AST, keeping the teacher's overall shape — a buffer, an
// indent counter, and a precedence table mirroring the parser's.
package prettyprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zelolang/zelo/internal/ast"
)

// precedence levels, mirroring internal/parser/parser.go's table exactly so
// minimal parenthesization round-trips to the same AST.
const (
	lowest = iota
	assignment
	ternary
	logicalOr
	logicalAnd
	equality
	comparison
	bitwiseOr
	bitwiseXor
	bitwiseAnd
	shift
	additive
	multiplicative
	unary
	postfix
)

var infixPrecedence = map[string]int{
	"=": assignment, "+=": assignment, "-=": assignment, "*=": assignment,
	"/=": assignment, "%=": assignment, "&=": assignment, "|=": assignment,
	"^=": assignment, "<<=": assignment, ">>=": assignment,
	"||": logicalOr,
	"&&": logicalAnd,
	"==": equality, "!=": equality,
	"<": comparison, "<=": comparison, ">": comparison, ">=": comparison,
	"|": bitwiseOr,
	"^": bitwiseXor,
	"&": bitwiseAnd,
	"<<": shift, ">>": shift,
	"+": additive, "-": additive,
	"*": multiplicative, "/": multiplicative, "%": multiplicative,
}

// assignOperators are right-associative, like the parser's ASSIGNMENT-1
// recursive call; every other binary operator here is left-associative.
func rightAssociative(op string) bool {
	_, ok := infixPrecedence[op]
	return ok && infixPrecedence[op] == assignment
}

// Print renders prog as zelo source text, one statement per line.
func Print(prog *ast.Program) string {
	p := &printer{}
	for _, stmt := range prog.Statements {
		p.statement(stmt)
	}
	return p.buf.String()
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) writeIndent() {
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// statement dispatches on the concrete statement type, writing a complete,
// newline-terminated rendering at the current indent.
func (p *printer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		p.line("%s;", p.expr(s.Expression, lowest))
	case *ast.VarDeclaration:
		p.varDeclaration(s)
	case *ast.FunctionStatement:
		p.functionStatement(s)
	case *ast.ClassStatement:
		p.classStatement(s)
	case *ast.IfStatement:
		p.ifStatement(s, true)
	case *ast.WhileStatement:
		p.writeIndent()
		fmt.Fprintf(&p.buf, "while %s ", p.expr(s.Condition, lowest))
		p.inlineBody(s.Body)
	case *ast.ForStatement:
		p.writeIndent()
		fmt.Fprintf(&p.buf, "for (%s in %s) ", s.Var.Value, p.expr(s.Iterable, lowest))
		p.inlineBody(s.Body)
	case *ast.ReturnStatement:
		if s.ReturnValue == nil {
			p.line("return;")
		} else {
			p.line("return %s;", p.expr(s.ReturnValue, lowest))
		}
	case *ast.BreakStatement:
		p.line("break;")
	case *ast.ContinueStatement:
		p.line("continue;")
	case *ast.ThrowStatement:
		p.line("throw %s;", p.expr(s.Value, lowest))
	case *ast.TryStatement:
		p.tryStatement(s)
	case *ast.NamespaceStatement:
		p.writeIndent()
		fmt.Fprintf(&p.buf, "namespace %s ", s.Name.Value)
		p.block(s.Body)
	case *ast.ExportStatement:
		names := make([]string, len(s.Names))
		for i, n := range s.Names {
			names[i] = n.Value
		}
		p.line("export { %s };", strings.Join(names, ", "))
	case *ast.ImportStatement:
		p.importStatement(s)
	case *ast.BlockStatement:
		p.block(s)
	case *ast.MacroStatement:
		// macro declarations are consumed by the expander before parsing;
		// they reach here only as --check introspection artifacts and are
		// not re-printable as valid surface syntax.
	default:
		p.line("/* unprintable statement %T */", s)
	}
}

func (p *printer) varDeclaration(s *ast.VarDeclaration) {
	kw := "loc"
	if s.IsConst {
		kw = "const"
	}
	p.writeIndent()
	fmt.Fprintf(&p.buf, "%s %s", kw, s.Name.Value)
	if s.Annotation != nil {
		fmt.Fprintf(&p.buf, ": %s", typeStr(s.Annotation))
	}
	if s.Value != nil {
		fmt.Fprintf(&p.buf, " = %s", p.expr(s.Value, lowest))
	}
	p.buf.WriteString(";\n")
}

func (p *printer) functionStatement(s *ast.FunctionStatement) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, "func %s(%s)", s.Name.Value, paramList(s.Parameters))
	if s.ReturnType != nil {
		fmt.Fprintf(&p.buf, ": %s", typeStr(s.ReturnType))
	}
	p.buf.WriteString(" ")
	p.block(s.Body)
}

func (p *printer) classStatement(s *ast.ClassStatement) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, "class %s", s.Name.Value)
	if s.Superclass != nil {
		fmt.Fprintf(&p.buf, ": %s", s.Superclass.Value)
	}
	p.buf.WriteString(" {\n")
	p.indent++
	for _, m := range s.Methods {
		p.functionStatement(m)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}\n")
}

// ifStatement renders the elif chain flat: an IfStatement hanging off Else
// prints as `elif COND then ...` rather than a nested, re-indented `else {
// if ... }`, matching what the parser itself accepts back as one chain.
func (p *printer) ifStatement(s *ast.IfStatement, first bool) {
	p.writeIndent()
	kw := "if"
	if !first {
		kw = "elif"
	}
	fmt.Fprintf(&p.buf, "%s %s then ", kw, p.expr(s.Condition, lowest))
	p.inlineBody(s.Consequence)

	switch e := s.Else.(type) {
	case *ast.IfStatement:
		p.ifStatement(e, false)
	case *ast.BlockStatement:
		p.writeIndent()
		p.buf.WriteString("else ")
		p.block(e)
	case nil:
	default:
		p.writeIndent()
		p.buf.WriteString("else ")
		p.statement(e)
	}
}

func (p *printer) tryStatement(s *ast.TryStatement) {
	p.writeIndent()
	p.buf.WriteString("try ")
	p.block(s.Block)
	p.writeIndent()
	fmt.Fprintf(&p.buf, "catch (%s", s.CatchName.Value)
	if s.CatchAnnotation != nil {
		fmt.Fprintf(&p.buf, ": %s", typeStr(s.CatchAnnotation))
	}
	p.buf.WriteString(") ")
	p.block(s.CatchBlock)
}

func (p *printer) importStatement(s *ast.ImportStatement) {
	if s.Mode == ast.ImportForget {
		p.line("import %s;", quoteStr(s.Path))
		return
	}
	names := make([]string, len(s.Names))
	for i, n := range s.Names {
		names[i] = n.Value
	}
	p.writeIndent()
	fmt.Fprintf(&p.buf, "import { %s } from %s", strings.Join(names, ", "), quoteStr(s.Path))
	if s.Alias != nil {
		fmt.Fprintf(&p.buf, " as %s", s.Alias.Value)
	}
	p.buf.WriteString(";\n")
}

// inlineBody renders an if/while/for body: a block prints braced on the
// same line, any other statement prints on its own indented line (the
// grammar makes braces optional there, and the parser accepts either).
func (p *printer) inlineBody(body ast.Statement) {
	if block, ok := body.(*ast.BlockStatement); ok {
		p.block(block)
		return
	}
	p.buf.WriteByte('\n')
	p.indent++
	p.statement(body)
	p.indent--
}

func (p *printer) block(b *ast.BlockStatement) {
	p.buf.WriteString("{\n")
	p.indent++
	for _, stmt := range b.Statements {
		p.statement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}\n")
}

func paramList(params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, pm := range params {
		if pm.Annotation != nil {
			parts[i] = fmt.Sprintf("%s: %s", pm.Name.Value, typeStr(pm.Annotation))
		} else {
			parts[i] = pm.Name.Value
		}
	}
	return strings.Join(parts, ", ")
}

func typeStr(t ast.Type) string {
	switch tt := t.(type) {
	case *ast.BasicType:
		return tt.Name
	case *ast.ArrayType:
		return fmt.Sprintf("array[%s]", typeStr(tt.Elem))
	case *ast.DictType:
		return fmt.Sprintf("dict{%s:%s}", typeStr(tt.Key), typeStr(tt.Value))
	case *ast.UnionType:
		parts := make([]string, len(tt.Options))
		for i, o := range tt.Options {
			parts[i] = typeStr(o)
		}
		return strings.Join(parts, "|")
	default:
		return "?"
	}
}

func quoteStr(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// expr renders e with minimal parenthesization: a child whose own
// precedence is lower than what the surrounding context requires (or equal
// precedence on the "wrong" associative side) is wrapped in parens.
func (p *printer) expr(e ast.Expression, parentPrec int) string {
	switch ex := e.(type) {
	case *ast.Identifier:
		return ex.Value
	case *ast.IntegerLiteral:
		return strconv.FormatInt(ex.Value, 10)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(ex.Value, 'g', -1, 64)
	case *ast.BooleanLiteral:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "null"
	case *ast.StringLiteral:
		return quoteStr(ex.Value)
	case *ast.ThisExpression:
		return "this"
	case *ast.SuperExpression:
		return "super"
	case *ast.ArrayLiteral:
		items := make([]string, len(ex.Elements))
		for i, el := range ex.Elements {
			items[i] = p.expr(el, lowest)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *ast.DictLiteral:
		entries := make([]string, len(ex.Entries))
		for i, en := range ex.Entries {
			entries[i] = fmt.Sprintf("%s: %s", p.expr(en.Key, lowest), p.expr(en.Value, lowest))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *ast.FunctionLiteral:
		var b strings.Builder
		fmt.Fprintf(&b, "func(%s)", paramList(ex.Parameters))
		if ex.ReturnType != nil {
			fmt.Fprintf(&b, ": %s", typeStr(ex.ReturnType))
		}
		b.WriteString(" ")
		inner := &printer{indent: p.indent}
		inner.block(ex.Body)
		b.WriteString(strings.TrimRight(inner.buf.String(), "\n"))
		return b.String()
	case *ast.PrefixExpression:
		inner := p.expr(ex.Right, unary)
		return ex.Operator + inner
	case *ast.InfixExpression:
		return p.infix(ex, parentPrec)
	case *ast.TernaryExpression:
		s := fmt.Sprintf("%s ? %s : %s", p.expr(ex.Condition, ternary+1), p.expr(ex.Consequence, ternary), p.expr(ex.Alternative, ternary))
		if ternary < parentPrec {
			return "(" + s + ")"
		}
		return s
	case *ast.AssignExpression:
		s := fmt.Sprintf("%s %s %s", p.expr(ex.Target, postfix), ex.Operator, p.expr(ex.Value, assignment-1))
		if assignment < parentPrec {
			return "(" + s + ")"
		}
		return s
	case *ast.CallExpression:
		args := make([]string, len(ex.Arguments))
		for i, a := range ex.Arguments {
			args[i] = p.expr(a, lowest)
		}
		return fmt.Sprintf("%s(%s)", p.expr(ex.Callee, postfix), strings.Join(args, ", "))
	case *ast.MemberExpression:
		return fmt.Sprintf("%s.%s", p.expr(ex.Object, postfix), ex.Property)
	case *ast.IndexExpression:
		return fmt.Sprintf("%s[%s]", p.expr(ex.Object, postfix), p.expr(ex.Index, lowest))
	case *ast.SliceExpression:
		start, stop, step := "", "", ""
		if ex.Start != nil {
			start = p.expr(ex.Start, lowest)
		}
		if ex.Stop != nil {
			stop = p.expr(ex.Stop, lowest)
		}
		if ex.Step != nil {
			step = ":" + p.expr(ex.Step, lowest)
		}
		return fmt.Sprintf("%s[%s:%s%s]", p.expr(ex.Object, postfix), start, stop, step)
	case *ast.NewExpression:
		args := make([]string, len(ex.Arguments))
		for i, a := range ex.Arguments {
			args[i] = p.expr(a, lowest)
		}
		return fmt.Sprintf("new %s(%s)", p.expr(ex.Class, postfix), strings.Join(args, ", "))
	case *ast.CastExpression:
		return fmt.Sprintf("%s(%s)", typeStr(ex.Annotation), p.expr(ex.Value, lowest))
	default:
		return fmt.Sprintf("/* unprintable expr %T */", ex)
	}
}

func (p *printer) infix(ex *ast.InfixExpression, parentPrec int) string {
	prec, ok := infixPrecedence[ex.Operator]
	if !ok {
		prec = lowest
	}
	leftPrec, rightPrec := prec, prec+1
	if rightAssociative(ex.Operator) {
		leftPrec, rightPrec = prec+1, prec
	}
	s := fmt.Sprintf("%s %s %s", p.expr(ex.Left, leftPrec), ex.Operator, p.expr(ex.Right, rightPrec))
	if prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}
