package parser

import (
	"fmt"
	"strings"

	"github.com/blb-lang/blbc/internal/lexer"
	"github.com/blb-lang/blbc/internal/source"
)

// ErrorKind discriminates ParseError's variants.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	Lexical
)

// ParseError is the parser's closed error type. Found/Expected are only
// meaningful for UnexpectedToken; LexErr is only meaningful for Lexical.
type ParseError struct {
	Kind     ErrorKind
	Span     source.Span
	Found    lexer.TokenType
	Expected []lexer.TokenType
	LexErr   error
}

func (e *ParseError) SpanOf() source.Span { return e.Span }

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "unexpected end of file"
	case Lexical:
		return e.LexErr.Error()
	default:
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = t.String()
		}
		return fmt.Sprintf("unexpected token %s, expected one of [%s]", e.Found, strings.Join(names, ", "))
	}
}

func (e *ParseError) Unwrap() error { return e.LexErr }
