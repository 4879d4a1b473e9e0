package parser

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/lexer"
)

func (p *Parser) parseGlobalStatement() (ast.GlobalStatement, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	cur := p.c.current()
	switch cur.Type {
	case lexer.EXTERN:
		return p.parseExternFunction()
	case lexer.FUNCTION:
		return p.parseFunction()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.LET:
		return p.parseGlobalLet()
	}
	if cur.Type == lexer.EOF {
		return nil, &ParseError{Kind: UnexpectedEOF, Span: cur.Span}
	}
	return nil, &ParseError{
		Kind: UnexpectedToken, Span: cur.Span, Found: cur.Type,
		Expected: []lexer.TokenType{lexer.EXTERN, lexer.FUNCTION, lexer.STRUCT, lexer.LET},
	}
}

func (p *Parser) parseParamList() ([]*ast.LetDecl, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.LetDecl
	for !p.at(lexer.RPAREN) {
		param, err := p.parseLetDecl(true)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if _, ok := p.match(lexer.COMMA); !ok {
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseReturnTypeAnnotation() (*ast.TypeSyntax, error) {
	if _, ok := p.match(lexer.COLON); !ok {
		return nil, nil
	}
	return p.parseType()
}

func (p *Parser) parseFunction() (ast.GlobalStatement, error) {
	start := p.c.advance() // `function`
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType, err := p.parseReturnTypeAnnotation()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStatement{
		NodeBase: ast.NodeBase{Span: span(start.Span, body.SpanOf())},
		Name:     name.Literal, Params: params, RetType: retType, Body: body,
	}, nil
}

func (p *Parser) parseExternFunction() (ast.GlobalStatement, error) {
	start := p.c.advance() // `extern`
	if _, err := p.expect(lexer.FUNCTION); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType, err := p.parseReturnTypeAnnotation()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStatement{
		NodeBase: ast.NodeBase{Span: span(start.Span, end.Span)},
		Name:     name.Literal, Params: params, RetType: retType, IsExtern: true,
	}, nil
}

func (p *Parser) parseStruct() (ast.GlobalStatement, error) {
	start := p.c.advance() // `struct`
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []*ast.StructField
	for !p.at(lexer.RBRACE) {
		fieldName, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		fieldType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.StructField{NodeBase: ast.NodeBase{Span: span(fieldName.Span, fieldType.SpanOf())}, Name: fieldName.Literal, Annotation: fieldType})
		if _, ok := p.match(lexer.COMMA); !ok {
			break
		}
	}
	end, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.StructStatement{NodeBase: ast.NodeBase{Span: span(start.Span, end.Span)}, Name: name.Literal, Fields: fields}, nil
}

func (p *Parser) parseGlobalLet() (ast.GlobalStatement, error) {
	start := p.c.advance() // `let`
	decl, err := p.parseLetDecl(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	decl.Init = init
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	decl.Span = span(start.Span, end.Span)
	return decl, nil
}
