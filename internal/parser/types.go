package parser

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/token"
)

// parseType implements the type-annotation grammar of spec.md §4.3:
//
//	TYPE := BASE ('|' BASE)*
//	BASE := int | float | bool | string | array[TYPE] | dict{TYPE:TYPE} | IDENT | '...'
//
// On entry curToken must be the first token of the annotation; on return
// curToken is its last token.
func (p *Parser) parseType() ast.Type {
	base := p.parseBaseType()
	if base == nil {
		return nil
	}
	if !p.peekTokenIs(token.PIPE) {
		return base
	}

	options := []ast.Type{base}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken() // consume to '|'
		p.nextToken() // consume to next base's first token
		next := p.parseBaseType()
		if next == nil {
			return nil
		}
		options = append(options, next)
	}
	return &ast.UnionType{Options: options}
}

func (p *Parser) parseBaseType() ast.Type {
	switch p.curToken.Type {
	case token.TYPE_INT:
		return &ast.BasicType{Name: "int"}
	case token.TYPE_FLOAT:
		return &ast.BasicType{Name: "float"}
	case token.TYPE_BOOL:
		return &ast.BasicType{Name: "bool"}
	case token.TYPE_STRING:
		return &ast.BasicType{Name: "string"}
	case token.ELLIPSIS:
		return &ast.BasicType{Name: "any"}
	case token.IDENT:
		return &ast.BasicType{Name: p.curToken.Lexeme}
	case token.TYPE_ARRAY:
		return p.parseArrayType()
	case token.TYPE_DICT:
		return p.parseDictType()
	default:
		p.errorf(p.curToken.Line, "expected a type annotation, got %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseArrayType() ast.Type {
	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	p.nextToken()
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayType{Elem: elem}
}

// parseDictType enforces "a dict key-type must be basic" (spec.md §4.3):
// the key annotation is rejected if it parses to anything other than a
// *ast.BasicType.
func (p *Parser) parseDictType() ast.Type {
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	key := p.parseType()
	if key == nil {
		return nil
	}
	if _, ok := key.(*ast.BasicType); !ok {
		p.errorf(p.curToken.Line, "a dict key-type must be basic (int, float, bool, or string)")
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	value := p.parseType()
	if value == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.DictType{Key: key, Value: value}
}
