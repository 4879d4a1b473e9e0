package parser

import (
	"strconv"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/lexer"
)

// precedence levels, lowest to highest.
type precedence int

const (
	precAssignment precedence = iota // right-assoc
	precOr
	precAnd
	precEquality   // == !=
	precComparison // < <= > >=
	precAdditive   // + -
	precMultiplicative
	precUnary // not -
	precPostfix
	precPrimary
)

var binaryPrec = map[lexer.TokenType]precedence{
	lexer.OR:  precOr,
	lexer.AND: precAnd,
	lexer.EQ:  precEquality, lexer.NEQ: precEquality,
	lexer.LT: precComparison, lexer.LE: precComparison, lexer.GT: precComparison, lexer.GE: precComparison,
	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,
	lexer.STAR: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
}

var binaryOp = map[lexer.TokenType]ast.Operator{
	lexer.OR: ast.OpOr, lexer.AND: ast.OpAnd,
	lexer.EQ: ast.OpEq, lexer.NEQ: ast.OpNeq,
	lexer.LT: ast.OpLt, lexer.LE: ast.OpLe, lexer.GT: ast.OpGt, lexer.GE: ast.OpGe,
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub,
	lexer.STAR: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod,
}

// parseExpression implements precedence climbing. All binary operators are
// left-associative except assignment, which is right-associative and sits
// at the lowest precedence.
func (p *Parser) parseExpression(min precedence) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		cur := p.c.current()

		if cur.Type == lexer.ASSIGN && min <= precAssignment {
			p.c.advance()
			right, err := p.parseExpression(precAssignment) // right-assoc: same min
			if err != nil {
				return nil, err
			}
			left = &ast.Assignment{NodeBase: ast.NodeBase{Span: span(left.SpanOf(), right.SpanOf())}, Left: left, Right: right}
			continue
		}

		prec, ok := binaryPrec[cur.Type]
		if !ok || prec < min {
			return left, nil
		}
		p.c.advance()
		right, err := p.parseExpression(prec + 1) // left-assoc: strictly higher min
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{
			NodeBase: ast.NodeBase{Span: span(left.SpanOf(), right.SpanOf())},
			Left:     left, Op: binaryOp[cur.Type], Right: right,
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	cur := p.c.current()
	switch cur.Type {
	case lexer.NOT:
		p.c.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOperation{NodeBase: ast.NodeBase{Span: span(cur.Span, operand.SpanOf())}, Left: operand, Op: ast.OpNot}, nil
	case lexer.MINUS:
		p.c.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOperation{NodeBase: ast.NodeBase{Span: span(cur.Span, operand.SpanOf())}, Left: operand, Op: ast.OpNeg}, nil
	case lexer.ADDROF:
		p.c.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.AddrOf{NodeBase: ast.NodeBase{Span: span(cur.Span, operand.SpanOf())}, Expr: operand}, nil
	case lexer.DEREF:
		p.c.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Deref{NodeBase: ast.NodeBase{Span: span(cur.Span, operand.SpanOf())}, Expr: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.LBRACKET) {
		p.c.advance()
		index, err := p.parseExpression(precAssignment)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		expr = &ast.Literal{NodeBase: ast.NodeBase{Span: span(expr.SpanOf(), end.Span)}, Kind: ast.LitArrayAccess, Base: expr, Index: index}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	cur := p.c.current()

	switch cur.Type {
	case lexer.TRUE:
		p.c.advance()
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitTrue}, nil
	case lexer.FALSE:
		p.c.advance()
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitFalse}, nil
	case lexer.NULL:
		p.c.advance()
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitNull}, nil
	case lexer.INTEGER:
		p.c.advance()
		n, err := strconv.ParseInt(cur.Literal, 10, 64)
		if err != nil {
			return nil, &ParseError{Kind: UnexpectedToken, Span: cur.Span, Found: cur.Type}
		}
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitInteger, IntValue: n}, nil
	case lexer.FLOAT:
		p.c.advance()
		f, err := strconv.ParseFloat(cur.Literal, 64)
		if err != nil {
			return nil, &ParseError{Kind: UnexpectedToken, Span: cur.Span, Found: cur.Type}
		}
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitFloat, FloatValue: f}, nil
	case lexer.STRING:
		p.c.advance()
		return &ast.Literal{NodeBase: ast.NodeBase{Span: cur.Span}, Kind: ast.LitString, StringValue: cur.Literal}, nil
	case lexer.IDENT:
		return p.parseIdentOrCall()
	case lexer.LPAREN:
		p.c.advance()
		inner, err := p.parseExpression(precAssignment)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.Group{NodeBase: ast.NodeBase{Span: span(cur.Span, end.Span)}, Inner: inner}, nil
	case lexer.LBRACKET:
		return p.parseArrayInitializer()
	}

	if cur.Type == lexer.EOF {
		return nil, &ParseError{Kind: UnexpectedEOF, Span: cur.Span}
	}
	return nil, &ParseError{Kind: UnexpectedToken, Span: cur.Span, Found: cur.Type}
}

func (p *Parser) parseIdentOrCall() (ast.Expression, error) {
	name := p.c.advance()
	if p.at(lexer.LPAREN) {
		p.c.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.Call{NodeBase: ast.NodeBase{Span: span(name.Span, end.Span)}, Callee: name.Literal, Args: args}, nil
	}
	return &ast.Literal{NodeBase: ast.NodeBase{Span: name.Span}, Kind: ast.LitIdentifier, StringValue: name.Literal}, nil
}

func (p *Parser) parseArgList() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.at(lexer.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(precAssignment)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.match(lexer.COMMA); !ok {
			return args, nil
		}
	}
}

func (p *Parser) parseArrayInitializer() (ast.Expression, error) {
	start, err := p.expect(lexer.LBRACKET)
	if err != nil {
		return nil, err
	}
	// At least one element; a trailing comma before the closing bracket is
	// allowed.
	first, err := p.parseExpression(precAssignment)
	if err != nil {
		return nil, err
	}
	values := []ast.Expression{first}
	for {
		if _, ok := p.match(lexer.COMMA); !ok {
			break
		}
		if p.at(lexer.RBRACKET) {
			break
		}
		v, err := p.parseExpression(precAssignment)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	end, err := p.expect(lexer.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayInitializer{NodeBase: ast.NodeBase{Span: span(start.Span, end.Span)}, Values: values}, nil
}
