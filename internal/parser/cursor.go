package parser

import "github.com/blb-lang/blbc/internal/lexer"

// cursor wraps the one-shot lexer.Lexer with a small lookahead buffer. peek(n)
// can look n tokens ahead, but the parser only ever reads the current token:
// a call is told from a bare identifier by consuming the name and then
// checking for `(`. Once a lexical error is hit it is
// latched and returned on every subsequent fill; there is no recovery.
type cursor struct {
	lex  *lexer.Lexer
	buf  []lexer.Token
	err  error
	done bool
}

func newCursor(l *lexer.Lexer) *cursor {
	return &cursor{lex: l}
}

// fill ensures at least n+1 tokens are buffered (or the lexer is exhausted).
func (c *cursor) fill(n int) {
	for !c.done && len(c.buf) <= n {
		if c.err != nil {
			return
		}
		tok, err := c.lex.Next()
		if err != nil {
			c.err = err
			return
		}
		c.buf = append(c.buf, tok)
		if tok.Type == lexer.EOF {
			c.done = true
		}
	}
}

// peek returns the token n positions ahead (0 = current). Past EOF it keeps
// returning the EOF token.
func (c *cursor) peek(n int) lexer.Token {
	c.fill(n)
	if c.err != nil {
		return lexer.Token{Type: lexer.EOF}
	}
	if n < len(c.buf) {
		return c.buf[n]
	}
	return c.buf[len(c.buf)-1]
}

// current is peek(0).
func (c *cursor) current() lexer.Token { return c.peek(0) }

// advance consumes and returns the current token.
func (c *cursor) advance() lexer.Token {
	tok := c.current()
	if len(c.buf) > 0 {
		c.buf = c.buf[1:]
	}
	return tok
}

// lexErr returns the latched lexical error, if any.
func (c *cursor) lexErr() error { return c.err }
