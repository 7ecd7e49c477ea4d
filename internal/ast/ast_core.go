// Package ast defines the tagged node types produced by the parser.
//
// Nodes are a sum type dispatched by type switch (see internal/evaluator
// and internal/prettyprinter); there is deliberately no Visitor interface
// or per-node Accept method.
package ast

import "github.com/zelolang/zelo/internal/token"

// Node is the base interface every AST node implements.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node that appears at statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears at expression position.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed source file or module.
type Program struct {
	Statements []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) expressionNode()       {}

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) GetToken() token.Token { return b.Token }
func (b *BlockStatement) statementNode()        {}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) GetToken() token.Token { return e.Token }
func (e *ExpressionStatement) statementNode()        {}

// VarDeclaration is `loc NAME [: TYPE] [= EXPR] ;` or the `const` form.
type VarDeclaration struct {
	Token       token.Token
	Name        *Identifier
	Annotation  Type // optional
	Value       Expression
	IsConst     bool
}

func (v *VarDeclaration) GetToken() token.Token { return v.Token }
func (v *VarDeclaration) statementNode()        {}

// FunctionStatement is `func NAME(params) [: TYPE] { body }`.
type FunctionStatement struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Type // optional
	Body       *BlockStatement
}

func (f *FunctionStatement) GetToken() token.Token { return f.Token }
func (f *FunctionStatement) statementNode()        {}

// Parameter is a single function parameter with an optional annotation.
type Parameter struct {
	Name       *Identifier
	Annotation Type // optional
}

// ClassStatement is `class NAME [: SUPER] { methods... }`.
type ClassStatement struct {
	Token      token.Token
	Name       *Identifier
	Superclass *Identifier // optional
	Methods    []*FunctionStatement
}

func (c *ClassStatement) GetToken() token.Token { return c.Token }
func (c *ClassStatement) statementNode()        {}

// IfStatement handles if/elif/else chains. Elifs are modeled as nested
// IfStatements hanging off Else.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence Statement
	Else        Statement // optional: *IfStatement (elif) or *BlockStatement (else)
}

func (i *IfStatement) GetToken() token.Token { return i.Token }
func (i *IfStatement) statementNode()        {}

// WhileStatement is `while COND STMT`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) GetToken() token.Token { return w.Token }
func (w *WhileStatement) statementNode()        {}

// ForStatement is `for (VAR in ITERABLE) STMT`.
type ForStatement struct {
	Token    token.Token
	Var      *Identifier
	Iterable Expression
	Body     Statement
}

func (f *ForStatement) GetToken() token.Token { return f.Token }
func (f *ForStatement) statementNode()        {}

// ReturnStatement is `return [EXPR] ;`.
type ReturnStatement struct {
	Token       token.Token
	ReturnValue Expression // nil means `return;`
}

func (r *ReturnStatement) GetToken() token.Token { return r.Token }
func (r *ReturnStatement) statementNode()        {}

// BreakStatement is `break ;`.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) GetToken() token.Token { return b.Token }
func (b *BreakStatement) statementNode()        {}

// ContinueStatement is `continue ;`.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) GetToken() token.Token { return c.Token }
func (c *ContinueStatement) statementNode()        {}

// ThrowStatement is `throw EXPR ;`.
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (t *ThrowStatement) GetToken() token.Token { return t.Token }
func (t *ThrowStatement) statementNode()        {}

// TryStatement is `try { T } catch (NAME [: TYPE]) { C }`.
type TryStatement struct {
	Token          token.Token
	Block          *BlockStatement
	CatchName      *Identifier
	CatchAnnotation Type // optional
	CatchBlock     *BlockStatement
}

func (t *TryStatement) GetToken() token.Token { return t.Token }
func (t *TryStatement) statementNode()        {}

// NamespaceStatement is `namespace NAME { ... }`.
type NamespaceStatement struct {
	Token token.Token
	Name  *Identifier
	Body  *BlockStatement
}

func (n *NamespaceStatement) GetToken() token.Token { return n.Token }
func (n *NamespaceStatement) statementNode()        {}

// ExportStatement is `export { a, b, ... } ;`.
type ExportStatement struct {
	Token token.Token
	Names []*Identifier
}

func (e *ExportStatement) GetToken() token.Token { return e.Token }
func (e *ExportStatement) statementNode()        {}

// ImportMode distinguishes the three import statement forms spec.md §4.7
// names.
type ImportMode int

const (
	ImportForget  ImportMode = iota // import "path";
	ImportNames                     // import { a, b } from "path" [as N];
)

// ImportStatement is `import "path";` or `import { a, b } from "path" [as N];`.
type ImportStatement struct {
	Token   token.Token
	Mode    ImportMode
	Path    string
	Names   []*Identifier // only for ImportNames
	Alias   *Identifier   // optional, only for ImportNames
}

func (i *ImportStatement) GetToken() token.Token { return i.Token }
func (i *ImportStatement) statementNode()        {}

// MacroStatement is the object-like or function-like `macro` definition.
// It is consumed entirely by the macro expander before parsing continues
// and is retained on the AST only for `--check`/introspection purposes.
type MacroStatement struct {
	Token      token.Token
	Name       string
	Params     []string // nil for object-like macros
	Body       []token.Token
}

func (m *MacroStatement) GetToken() token.Token { return m.Token }
func (m *MacroStatement) statementNode()        {}
