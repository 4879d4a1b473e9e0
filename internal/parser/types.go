package parser

import (
	"strconv"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/lexer"
	"github.com/blb-lang/blbc/internal/types"
)

var primitiveTypeTokens = map[lexer.TokenType]types.Kind{
	lexer.U8:          types.U8,
	lexer.U16:         types.U16,
	lexer.U32:         types.U32,
	lexer.U64:         types.U64,
	lexer.I8:          types.I8,
	lexer.I16:         types.I16,
	lexer.I32:         types.I32,
	lexer.I64:         types.I64,
	lexer.BOOL_TYPE:   types.Bool,
	lexer.STRING_TYPE: types.String,
	lexer.VOID:        types.Void,
	lexer.FLOAT_TYPE:  types.Float,
}

// parseType parses the type-syntax grammar: primitives, a user struct
// name, `[ size ; type ]`, and right-associative `ptr type`.
func (p *Parser) parseType() (*ast.TypeSyntax, error) {
	start := p.c.current()

	if kind, ok := primitiveTypeTokens[start.Type]; ok {
		p.c.advance()
		return &ast.TypeSyntax{NodeBase: ast.NodeBase{Span: start.Span}, Kind: ast.TSPrimitive, Primitive: kind}, nil
	}

	switch start.Type {
	case lexer.PTR:
		p.c.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.TypeSyntax{NodeBase: ast.NodeBase{Span: span(start.Span, elem.SpanOf())}, Kind: ast.TSPtr, Elem: elem}, nil

	case lexer.LBRACKET:
		p.c.advance()
		sizeTok, err := p.expect(lexer.INTEGER)
		if err != nil {
			return nil, err
		}
		size, err := strconv.ParseUint(sizeTok.Literal, 10, 32)
		if err != nil {
			return nil, &ParseError{Kind: UnexpectedToken, Span: sizeTok.Span, Found: sizeTok.Type}
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.TypeSyntax{NodeBase: ast.NodeBase{Span: span(start.Span, end.Span)}, Kind: ast.TSArray, Size: uint32(size), Elem: elem}, nil

	case lexer.IDENT:
		p.c.advance()
		return &ast.TypeSyntax{NodeBase: ast.NodeBase{Span: start.Span}, Kind: ast.TSIdentifier, Name: start.Literal}, nil
	}

	return nil, &ParseError{Kind: UnexpectedToken, Span: start.Span, Found: start.Type, Expected: []lexer.TokenType{lexer.IDENT}}
}
