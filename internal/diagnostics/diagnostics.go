// Package diagnostics renders a spanned pass error (LexError, ParseError,
// BindError, TypeError) as a human-readable message with source context.
// The translator's TranslatorError carries no span and is not rendered here.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/blb-lang/blbc/internal/source"
)

// Spanned is satisfied by the lexer's, parser's, binder's and type
// checker's error types; TranslatorError has no span and does not satisfy it.
type Spanned interface {
	error
	SpanOf() source.Span
}

// CompilerError wraps a pass error with the file/source context needed to
// render it. One instance per reported error; pipeline passes abort at
// the first failure, so the driver only ever formats one.
type CompilerError struct {
	Err    error
	File   string
	Source string
	Span   source.Span
	Pos    source.Position
}

// New builds a CompilerError from any pass error and the source it was
// produced from.
func New(err Spanned, file, src string) *CompilerError {
	span := err.SpanOf()
	return &CompilerError{
		Err:    err,
		File:   file,
		Source: src,
		Span:   span,
		Pos:    source.PositionOf(src, span.Begin),
	}
}

func (e *CompilerError) Error() string { return e.Format(false) }

func (e *CompilerError) Unwrap() error { return e.Err }

// Format renders the error as "Error in <file>:<line>:<col>", the offending
// source line, a caret under the column, and the message. color enables
// ANSI bold/red sequences for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	line := source.Line(e.Source, e.Span.Begin)
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Err.Error())
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}
