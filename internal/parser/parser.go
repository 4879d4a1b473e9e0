// Package parser implements the recursive-descent, precedence-climbing
// parser: tokens in, an *ast.Program out, first error aborts (no
// recovery). Three entry points besides ParseProgram — ParseGlobalStatement,
// ParseStatement and ParseExpression — exist purely so the test suite can exercise
// individual productions without building a whole program.
package parser

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/lexer"
	"github.com/blb-lang/blbc/internal/source"
)

// Parser holds the token cursor and the Program whose arenas every parsed
// declaration is registered into.
type Parser struct {
	c       *cursor
	program *ast.Program
}

// New creates a Parser over source text.
func New(src string) *Parser {
	return &Parser{
		c:       newCursor(lexer.New(src)),
		program: &ast.Program{},
	}
}

// ParseProgram parses a full translation unit: zero or more global
// statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	for p.c.current().Type != lexer.EOF {
		g, err := p.parseGlobalStatement()
		if err != nil {
			return nil, err
		}
		p.program.AddGlobal(g)
	}
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	return p.program, nil
}

// ParseGlobalStatement parses one global statement, for unit testing.
func (p *Parser) ParseGlobalStatement() (ast.GlobalStatement, error) {
	return p.parseGlobalStatement()
}

// ParseStatement parses one statement, for unit testing.
func (p *Parser) ParseStatement() (*ast.Statement, error) {
	return p.parseStatement()
}

// ParseExpression parses one expression at the lowest precedence, for unit
// testing.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseExpression(precAssignment)
}

// --- shared helpers ---

func (p *Parser) at(t lexer.TokenType) bool {
	return p.c.current().Type == t
}

func (p *Parser) checkLexErr() error {
	if err := p.c.lexErr(); err != nil {
		span := p.c.current().Span
		if le, ok := err.(*lexer.LexError); ok {
			span = le.Span
		}
		return &ParseError{Kind: Lexical, Span: span, LexErr: err}
	}
	return nil
}

// expect consumes the current token if it matches t, else returns a
// ParseError. A latched lexical error surfaces first, wrapped as a
// Lexical ParseError.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if err := p.checkLexErr(); err != nil {
		return lexer.Token{}, err
	}
	tok := p.c.current()
	if tok.Type == lexer.EOF && t != lexer.EOF {
		return lexer.Token{}, &ParseError{Kind: UnexpectedEOF, Span: tok.Span}
	}
	if tok.Type != t {
		return lexer.Token{}, &ParseError{Kind: UnexpectedToken, Span: tok.Span, Found: tok.Type, Expected: []lexer.TokenType{t}}
	}
	return p.c.advance(), nil
}

// match consumes the current token if it is one of ts, reporting true and
// the token; otherwise it consumes nothing and reports false.
func (p *Parser) match(ts ...lexer.TokenType) (lexer.Token, bool) {
	cur := p.c.current()
	for _, t := range ts {
		if cur.Type == t {
			return p.c.advance(), true
		}
	}
	return lexer.Token{}, false
}

func span(begin, end source.Span) source.Span { return begin.Join(end) }
