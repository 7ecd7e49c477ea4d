package parser

import (
	"strconv"

	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/token"
)

// parseExpression is the Pratt-parser core: it climbs precedence bound by
// the prefix/infix parse function tables built in New. On return,
// curToken is the last token belonging to the parsed expression.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.errorf(p.curToken.Line, "expression too deeply nested")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	v, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
	if err != nil {
		p.errorf(p.curToken.Line, "could not parse %q as integer", p.curToken.Lexeme)
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken.Line, "could not parse %q as float", p.curToken.Lexeme)
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseSuperExpression() ast.Expression {
	return &ast.SuperExpression{Token: p.curToken}
}

func (p *Parser) parseAwaitExpressionRejected() ast.Expression {
	// async/await are lexed but rejected: spec.md Open Questions decides
	// they have no defined semantics in this implementation.
	p.Errors = append(p.Errors, diagnostics.Internalf(diagnostics.CodeInternalError, p.curToken.Line, "not implemented: 'await' has no defined evaluation semantics"))
	return nil
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Right = p.parseExpression(UNARY)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Lexeme, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	expr := &ast.TernaryExpression{Token: p.curToken, Condition: cond}
	p.nextToken()
	expr.Consequence = p.parseExpression(TERNARY)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	// TERNARY-1 lets the alternative absorb a further ?:, so
	// `a ? b : c ? d : e` parses as `a ? b : (c ? d : e)`.
	expr.Alternative = p.parseExpression(TERNARY - 1)
	return expr
}

// parseAssignExpression implements spec.md §4.3's right-associative
// assignment precedence: `a = b = c` parses as `a = (b = c)`.
func (p *Parser) parseAssignExpression(target ast.Expression) ast.Expression {
	switch target.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.IndexExpression:
	default:
		p.errorf(p.curToken.Line, "invalid assignment target")
		return nil
	}
	expr := &ast.AssignExpression{Token: p.curToken, Target: target, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Value = p.parseExpression(ASSIGNMENT - 1)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curToken}
	lit.Elements = p.parseExpressionList(token.RBRACKET)
	return lit
}

func (p *Parser) parseDictLiteral() ast.Expression {
	lit := &ast.DictLiteral{Token: p.curToken}
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		lit.Entries = append(lit.Entries, ast.DictEntry{Key: key, Value: value})

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

// parseExpressionList parses a comma-separated list of expressions up to
// (and consuming) the closing token end, shared by array literals, call
// arguments, and new-expression arguments.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil
		}
		list = append(list, next)
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	return &ast.CallExpression{Token: p.curToken, Callee: callee, Arguments: p.parseExpressionList(token.RPAREN)}
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.curToken, Object: object}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Property = p.curToken.Lexeme
	return expr
}

// parseIndexOrSliceExpression handles `object[index]` and the slice forms
// `object[start:stop]` / `object[start:stop:step]` (spec.md §4.3 "inside
// [...], a single ':' switches from index to slice syntax").
func (p *Parser) parseIndexOrSliceExpression(object ast.Expression) ast.Expression {
	tok := p.curToken

	var start ast.Expression
	if !p.peekTokenIs(token.COLON) {
		p.nextToken()
		start = p.parseExpression(LOWEST)
	}

	if !p.peekTokenIs(token.COLON) {
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.IndexExpression{Token: tok, Object: object, Index: start}
	}

	slice := &ast.SliceExpression{Token: tok, Object: object, Start: start}
	p.nextToken() // consume first ':'

	if !p.peekTokenIs(token.COLON) && !p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		slice.Stop = p.parseExpression(LOWEST)
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken() // consume second ':'
		if !p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			slice.Step = p.parseExpression(LOWEST)
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return slice
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	class := p.parseIdentifier()
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	return &ast.NewExpression{Token: tok, Class: class, Arguments: p.parseExpressionList(token.RPAREN)}
}

// parseCastExpression handles the builtin cast call form `TYPE(expr)`
// (spec.md §4.5): the current token is a type-name keyword used as a
// callee.
func (p *Parser) parseCastExpression() ast.Expression {
	tok := p.curToken
	annotation := p.parseType()
	if annotation == nil {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.CastExpression{Token: tok, Annotation: annotation, Value: value}
}
