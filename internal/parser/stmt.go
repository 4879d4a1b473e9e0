package parser

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/lexer"
)

// parseBlock parses `{ statements }`.
func (p *Parser) parseBlock() (*ast.Statements, error) {
	start, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Statements{}
	for !p.at(lexer.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Append(stmt)
	}
	end, err := p.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	block.Span = span(start.Span, end.Span)
	return block, nil
}

func (p *Parser) parseStatement() (*ast.Statement, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	cur := p.c.current()
	switch cur.Type {
	case lexer.IF:
		return p.parseIf()
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		p.c.advance()
		end, err := p.expect(lexer.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.Statement{NodeBase: ast.NodeBase{Span: span(cur.Span, end.Span)}, Kind: ast.StmtBreak}, nil
	case lexer.CONTINUE:
		p.c.advance()
		end, err := p.expect(lexer.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return &ast.Statement{NodeBase: ast.NodeBase{Span: span(cur.Span, end.Span)}, Kind: ast.StmtContinue}, nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseIf() (*ast.Statement, error) {
	start := p.c.advance() // `if`
	cond, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Statement{Kind: ast.StmtIf, Cond: cond, Then: then}
	endSpan := then.SpanOf()
	if _, ok := p.match(lexer.ELSE); ok {
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
		endSpan = elseBlock.SpanOf()
	}
	stmt.NodeBase = ast.NodeBase{Span: span(start.Span, endSpan)}
	return stmt, nil
}

func (p *Parser) parseLetDecl(isParam bool) (*ast.LetDecl, error) {
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.LetDecl{NodeBase: ast.NodeBase{Span: nameTok.Span}, Name: nameTok.Literal, IsParam: isParam}
	if _, ok := p.match(lexer.COLON); ok {
		annotation, err := p.parseType()
		if err != nil {
			return nil, err
		}
		decl.Annotation = annotation
	}
	return decl, nil
}

func (p *Parser) parseLetStatement() (*ast.Statement, error) {
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
	return &ast.Statement{NodeBase: ast.NodeBase{Span: decl.Span}, Kind: ast.StmtLet, Decl: decl}, nil
}

func (p *Parser) parseWhile() (*ast.Statement, error) {
	start := p.c.advance() // `while`
	cond, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{NodeBase: ast.NodeBase{Span: span(start.Span, body.SpanOf())}, Kind: ast.StmtWhile, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.Statement, error) {
	start := p.c.advance() // `for`
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
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	step, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Statement{NodeBase: ast.NodeBase{Span: span(start.Span, body.SpanOf())}, Kind: ast.StmtFor, Decl: decl, Cond: cond, Step: step, Body: body}, nil
}

func (p *Parser) parseReturn() (*ast.Statement, error) {
	start := p.c.advance() // `return`
	if _, ok := p.match(lexer.SEMICOLON); ok {
		return &ast.Statement{NodeBase: ast.NodeBase{Span: start.Span}, Kind: ast.StmtReturn}, nil
	}
	value, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return &ast.Statement{NodeBase: ast.NodeBase{Span: span(start.Span, end.Span)}, Kind: ast.StmtReturn, Value: value}, nil
}

func (p *Parser) parseExpressionStatement() (*ast.Statement, error) {
	expr, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	naked := true
	if _, ok := p.match(lexer.SEMICOLON); ok {
		naked = false
	}
	return &ast.Statement{NodeBase: ast.NodeBase{Span: expr.SpanOf()}, Kind: ast.StmtExpression, Expr: expr, Naked: naked}, nil
}
