package ast

import "github.com/zelolang/zelo/internal/token"

// IntegerLiteral is a literal with no '.'/'e'/'E' in its lexeme.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (i *IntegerLiteral) GetToken() token.Token { return i.Token }
func (i *IntegerLiteral) expressionNode()       {}

// FloatLiteral is a literal with a '.' or exponent in its lexeme.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (f *FloatLiteral) GetToken() token.Token { return f.Token }
func (f *FloatLiteral) expressionNode()       {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) GetToken() token.Token { return b.Token }
func (b *BooleanLiteral) expressionNode()       {}

// NullLiteral is the `null` literal.
type NullLiteral struct{ Token token.Token }

func (n *NullLiteral) GetToken() token.Token { return n.Token }
func (n *NullLiteral) expressionNode()       {}

// StringLiteral is a quoted string literal with escapes already resolved.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) GetToken() token.Token { return s.Token }
func (s *StringLiteral) expressionNode()       {}

// ArrayLiteral is `[ e1, e2, ... ]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) GetToken() token.Token { return a.Token }
func (a *ArrayLiteral) expressionNode()       {}

// DictEntry is one `key: value` pair of a dict literal.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{ k: v, ... }`.
type DictLiteral struct {
	Token   token.Token
	Entries []DictEntry
}

func (d *DictLiteral) GetToken() token.Token { return d.Token }
func (d *DictLiteral) expressionNode()       {}

// FunctionLiteral is an anonymous `func(params) { body }` expression.
type FunctionLiteral struct {
	Token      token.Token
	Parameters []*Parameter
	ReturnType Type
	Body       *BlockStatement
}

func (f *FunctionLiteral) GetToken() token.Token { return f.Token }
func (f *FunctionLiteral) expressionNode()       {}

// PrefixExpression is a unary operator applied to Right: `-x`, `!x`, `~x`,
// `++x`, `--x`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) GetToken() token.Token { return p.Token }
func (p *PrefixExpression) expressionNode()       {}

// InfixExpression is a binary operator applied to Left and Right.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (i *InfixExpression) GetToken() token.Token { return i.Token }
func (i *InfixExpression) expressionNode()       {}

// TernaryExpression is `cond ? a : b`.
type TernaryExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (t *TernaryExpression) GetToken() token.Token { return t.Token }
func (t *TernaryExpression) expressionNode()       {}

// AssignExpression covers `=` and the compound-assign operators. Target
// must be an *Identifier, *MemberExpression, or *IndexExpression.
type AssignExpression struct {
	Token    token.Token
	Target   Expression
	Operator string // "=", "+=", "-=", ...
	Value    Expression
}

func (a *AssignExpression) GetToken() token.Token { return a.Token }
func (a *AssignExpression) expressionNode()       {}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) GetToken() token.Token { return c.Token }
func (c *CallExpression) expressionNode()       {}

// MemberExpression is `object.name`.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property string
}

func (m *MemberExpression) GetToken() token.Token { return m.Token }
func (m *MemberExpression) expressionNode()       {}

// IndexExpression is `object[index]`.
type IndexExpression struct {
	Token  token.Token
	Object Expression
	Index  Expression
}

func (i *IndexExpression) GetToken() token.Token { return i.Token }
func (i *IndexExpression) expressionNode()       {}

// SliceExpression is `object[start:stop:step]`; any of the three may be
// nil to mean "omitted" per spec.md §4.3 defaulting rules.
type SliceExpression struct {
	Token  token.Token
	Object Expression
	Start  Expression
	Stop   Expression
	Step   Expression
}

func (s *SliceExpression) GetToken() token.Token { return s.Token }
func (s *SliceExpression) expressionNode()       {}

// NewExpression is `new Class(args...)`, equivalent to calling the class
// value; kept distinct because `new` is its own keyword in the grammar.
type NewExpression struct {
	Token     token.Token
	Class     Expression
	Arguments []Expression
}

func (n *NewExpression) GetToken() token.Token { return n.Token }
func (n *NewExpression) expressionNode()       {}

// SuperExpression is a bare `super` reference, valid only as the callee of
// a CallExpression or MemberExpression inside a method body.
type SuperExpression struct{ Token token.Token }

func (s *SuperExpression) GetToken() token.Token { return s.Token }
func (s *SuperExpression) expressionNode()       {}

// ThisExpression is a bare `this` reference.
type ThisExpression struct{ Token token.Token }

func (t *ThisExpression) GetToken() token.Token { return t.Token }
func (t *ThisExpression) expressionNode()       {}

// CastExpression is the builtin cast call form `TYPE(expr)` resolved by
// the parser when a type name is used as a callee (see §4.5 Cast).
type CastExpression struct {
	Token      token.Token
	Annotation Type
	Value      Expression
}

func (c *CastExpression) GetToken() token.Token { return c.Token }
func (c *CastExpression) expressionNode()       {}

// AwaitExpression / nothing else backs async/await: the grammar recognizes
// the keywords (spec.md Open Questions) but the parser rejects any use of
// them with a *not implemented* error rather than building a node for them.
