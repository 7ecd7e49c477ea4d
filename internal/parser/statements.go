package parser

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/token"
)

// parseStatement dispatches on the current token to one of the
// statement-level productions of spec.md §4.3.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LOC, token.CONST:
		return p.parseVarDeclaration()
	case token.FUNC:
		if p.peekTokenIs(token.IDENT) {
			fn := p.parseFunctionStatement()
			if fn == nil {
				return nil
			}
			return fn
		}
		return p.parseExpressionStatement()
	case token.CLASS:
		return p.parseClassStatement()
	case token.IF:
		ifs := p.parseIfLike()
		if ifs == nil {
			return nil
		}
		return ifs
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.NAMESPACE:
		return p.parseNamespaceStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.LBRACE:
		block := p.parseBlockStatement()
		if block == nil {
			return nil
		}
		return block
	case token.MACRO:
		// The macro expander consumes every `macro` declaration before
		// the token stream reaches the parser; a MACRO token here means
		// expansion did not run (e.g. a malformed pipeline call). Treat
		// it as a syntax error rather than silently accepting it.
		p.errorf(p.curToken.Line, "unexpected 'macro': macro declarations must be expanded before parsing")
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	tok := p.curToken
	isConst := tok.Type == token.CONST

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var annotation ast.Type
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		annotation = p.parseType()
		if annotation == nil {
			return nil
		}
	}

	var value ast.Expression
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.VarDeclaration{Token: tok, Name: name, Annotation: annotation, Value: value, IsConst: isConst}
}

func (p *Parser) parseFunctionStatement() *ast.FunctionStatement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParameters()

	var returnType ast.Type
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	return &ast.FunctionStatement{Token: tok, Name: name, Parameters: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParameters()

	var returnType ast.Type
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		returnType = p.parseType()
		if returnType == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.FunctionLiteral{Token: tok, Parameters: params, ReturnType: returnType, Body: body}
}

// parseFunctionParameters assumes curToken is the '(' opening a parameter
// list and returns with curToken on the closing ')'.
func (p *Parser) parseFunctionParameters() []*ast.Parameter {
	var params []*ast.Parameter
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	first := p.parseParameter()
	if first == nil {
		return nil
	}
	params = append(params, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseParameter()
		if next == nil {
			return nil
		}
		params = append(params, next)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	if !p.curTokenIs(token.IDENT) {
		p.errorf(p.curToken.Line, "expected parameter name, got %s", p.curToken.Type)
		return nil
	}
	param := &ast.Parameter{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.Annotation = p.parseType()
		if param.Annotation == nil {
			return nil
		}
	}
	return param
}

func (p *Parser) parseClassStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var super *ast.Identifier
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		super = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	var methods []*ast.FunctionStatement
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.FUNC) {
			p.errorf(p.curToken.Line, "expected method declaration inside class %q, got %s", name.Value, p.curToken.Type)
			p.synchronize()
			continue
		}
		before := len(p.Errors)
		m := p.parseFunctionStatement()
		if m != nil {
			methods = append(methods, m)
		}
		if len(p.Errors) > before {
			p.synchronize()
		} else {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.errorf(tok.Line, "missing '}' closing class %q", name.Value)
		return nil
	}
	return &ast.ClassStatement{Token: tok, Name: name, Superclass: super, Methods: methods}
}

// parseIfLike parses `if COND then STMT` or the `elif` continuation of an
// enclosing if; curToken is IF or ELIF on entry.
func (p *Parser) parseIfLike() *ast.IfStatement {
	tok := p.curToken
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	consequence := p.parseStatement()
	if consequence == nil {
		return nil
	}

	stmt := &ast.IfStatement{Token: tok, Condition: condition, Consequence: consequence}

	if p.peekTokenIs(token.ELIF) {
		p.nextToken()
		elif := p.parseIfLike()
		if elif == nil {
			return nil
		}
		stmt.Else = elif
	} else if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		elseBranch := p.parseStatement()
		if elseBranch == nil {
			return nil
		}
		stmt.Else = elseBranch
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: condition, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	v := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpression(LOWEST)
	if iterable == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.ForStatement{Token: tok, Var: v, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.ReturnValue = p.parseExpression(LOWEST)
		if stmt.ReturnValue == nil {
			return nil
		}
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.BreakStatement{Token: tok}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ContinueStatement{Token: tok}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ThrowStatement{Token: tok, Value: value}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()
	if block == nil {
		return nil
	}
	if !p.expectPeek(token.CATCH) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var annotation ast.Type
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		annotation = p.parseType()
		if annotation == nil {
			return nil
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	catchBlock := p.parseBlockStatement()
	if catchBlock == nil {
		return nil
	}
	return &ast.TryStatement{Token: tok, Block: block, CatchName: name, CatchAnnotation: annotation, CatchBlock: catchBlock}
}

func (p *Parser) parseNamespaceStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.NamespaceStatement{Token: tok, Name: name, Body: body}
}

func (p *Parser) parseExportStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	var names []*ast.Identifier
	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExportStatement{Token: tok, Names: names}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken

	if p.peekTokenIs(token.STRING) {
		p.nextToken()
		path := p.curToken.Literal
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return &ast.ImportStatement{Token: tok, Mode: ast.ImportForget, Path: path}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	var names []*ast.Identifier
	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if !p.expectPeek(token.FROM) {
		return nil
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path := p.curToken.Literal

	var alias *ast.Identifier
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ImportStatement{Token: tok, Mode: ast.ImportNames, Path: path, Names: names, Alias: alias}
}

// parseBlockStatement assumes curToken is '{' and returns with curToken
// on the matching '}' (or EOF on unterminated input).
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curToken
	block := &ast.BlockStatement{Token: tok}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		before := len(p.Errors)
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.Errors) > before {
			p.synchronize()
		} else {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.errorf(tok.Line, "missing '}' closing block opened at line %d", tok.Line)
		return nil
	}
	return block
}
