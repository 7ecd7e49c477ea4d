// Package parser implements the predictive recursive-descent parser of
// spec.md §4.3: a Pratt-style expression parser (prefix/infix parse
// function tables keyed by token type) wrapped around hand-written
// statement parsers, with panic-mode error recovery.
package parser

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/token"
)

// Precedence levels, low to high, matching spec.md §4.3's table.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT
	TERNARY
	LOGICAL_OR
	LOGICAL_AND
	EQUALITY
	COMPARISON
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
)

var precedences = map[token.Type]int{
	token.ASSIGN:         ASSIGNMENT,
	token.PLUS_ASSIGN:    ASSIGNMENT,
	token.MINUS_ASSIGN:   ASSIGNMENT,
	token.STAR_ASSIGN:    ASSIGNMENT,
	token.SLASH_ASSIGN:   ASSIGNMENT,
	token.PERCENT_ASSIGN: ASSIGNMENT,
	token.AMP_ASSIGN:     ASSIGNMENT,
	token.PIPE_ASSIGN:    ASSIGNMENT,
	token.CARET_ASSIGN:   ASSIGNMENT,
	token.LSHIFT_ASSIGN:  ASSIGNMENT,
	token.RSHIFT_ASSIGN:  ASSIGNMENT,
	token.QUESTION:       TERNARY,
	token.OR:             LOGICAL_OR,
	token.AND:            LOGICAL_AND,
	token.EQ:             EQUALITY,
	token.NOT_EQ:         EQUALITY,
	token.LT:             COMPARISON,
	token.LTE:            COMPARISON,
	token.GT:             COMPARISON,
	token.GTE:            COMPARISON,
	token.PIPE:           BITWISE_OR,
	token.CARET:          BITWISE_XOR,
	token.AMPERSAND:      BITWISE_AND,
	token.LSHIFT:         SHIFT,
	token.RSHIFT:         SHIFT,
	token.PLUS:           ADDITIVE,
	token.MINUS:          ADDITIVE,
	token.ASTERISK:       MULTIPLICATIVE,
	token.SLASH:          MULTIPLICATIVE,
	token.PERCENT:        MULTIPLICATIVE,
	token.LPAREN:         POSTFIX,
	token.DOT:            POSTFIX,
	token.LBRACKET:       POSTFIX,
}

// assignOperators are the compound/plain assignment tokens, all
// right-associative (spec.md §4.3).
var assignOperators = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true,
	token.AMP_ASSIGN: true, token.PIPE_ASSIGN: true, token.CARET_ASSIGN: true,
	token.LSHIFT_ASSIGN: true, token.RSHIFT_ASSIGN: true,
}

// MaxRecursionDepth bounds expression nesting to turn stack overflow on
// pathological input into a recoverable parse error.
const MaxRecursionDepth = 500

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser consumes a flat token slice (already macro-expanded) and
// produces an *ast.Program, collecting diagnostics rather than panicking
// on malformed input.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	Errors []*diagnostics.Error
	depth  int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser over tokens, which must end in a token.EOF.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.TILDE, p.parsePrefixExpression)
	p.registerPrefix(token.INCREMENT, p.parsePrefixExpression)
	p.registerPrefix(token.DECREMENT, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseDictLiteral)
	p.registerPrefix(token.FUNC, p.parseFunctionLiteral)
	p.registerPrefix(token.NEW, p.parseNewExpression)
	p.registerPrefix(token.SUPER, p.parseSuperExpression)
	p.registerPrefix(token.THIS, p.parseThisExpression)
	p.registerPrefix(token.AWAIT, p.parseAwaitExpressionRejected)
	// `require`/`include` are reserved words spelling what would otherwise
	// be ordinary identifiers bound to host builtins (spec.md §4.7): parsed
	// as plain Identifiers so `require("path")` parses as an ordinary call.
	p.registerPrefix(token.REQUIRE, p.parseIdentifier)
	p.registerPrefix(token.INCLUDE, p.parseIdentifier)
	for _, tt := range []token.Type{token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_BOOL, token.TYPE_STRING, token.TYPE_ARRAY, token.TYPE_DICT} {
		p.registerPrefix(tt, p.parseCastExpression)
	}

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, tt := range []token.Type{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE,
		token.AND, token.OR, token.AMPERSAND, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.QUESTION, p.parseTernaryExpression)
	for tt := range assignOperators {
		p.registerInfix(tt, p.parseAssignExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSliceExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	// NEWLINE tokens carry no meaning to the grammar; skip them here.
	for p.pos < len(p.tokens) && p.tokens[p.pos].Type == token.NEWLINE {
		p.pos++
	}
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errorf(p.peekToken.Line, "expected next token to be %s, got %s (%q) instead", t, p.peekToken.Type, p.peekToken.Lexeme)
}

func (p *Parser) errorf(line int, format string, args ...interface{}) {
	p.Errors = append(p.Errors, diagnostics.Syntaxf(diagnostics.CodeParseUnexpected, line, format, args...))
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errorf(p.curToken.Line, "no prefix parse function for %s found", t)
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// statementBoundaryKeywords are the tokens synchronize() scans forward to
// after a parse error, per spec.md §4.3 "Error recovery".
var statementBoundaryKeywords = map[token.Type]bool{
	token.LOC: true, token.CONST: true, token.FUNC: true, token.CLASS: true,
	token.IF: true, token.WHILE: true, token.FOR: true, token.RETURN: true,
	token.BREAK: true, token.CONTINUE: true, token.IMPORT: true, token.EXPORT: true,
	token.NAMESPACE: true, token.MACRO: true, token.TRY: true, token.THROW: true,
	token.RBRACE: true,
}

// synchronize discards tokens until the next statement-boundary keyword or
// a ';', so one malformed statement does not cascade into spurious errors
// for everything after it.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		if statementBoundaryKeywords[p.curToken.Type] {
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program, recovering
// from each top-level statement error via synchronize so later
// statements still get a chance to parse.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		before := len(p.Errors)
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.Errors) > before {
			p.synchronize()
			if p.curTokenIs(token.RBRACE) {
				// A '}' cannot begin a top-level statement; step past it so
				// recovery always makes progress.
				p.nextToken()
			}
		} else {
			p.nextToken()
		}
	}
	return program
}
