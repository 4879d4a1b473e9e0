// Package binder implements the name-resolution pass: resolving every
// use-site to its declaration and enforcing return/break/continue
// placement.
package binder

import (
	"fmt"

	"github.com/blb-lang/blbc/internal/source"
)

// ErrorKind enumerates BindError's closed set.
type ErrorKind int

const (
	UndeclaredVariable ErrorKind = iota
	UndeclaredStruct
	UndeclaredFunction
	BadReturn
	BadBreak
	BadContinue
	NotSubscriptable
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case UndeclaredStruct:
		return "UndeclaredStruct"
	case UndeclaredFunction:
		return "UndeclaredFunction"
	case BadReturn:
		return "BadReturn"
	case BadBreak:
		return "BadBreak"
	case BadContinue:
		return "BadContinue"
	case NotSubscriptable:
		return "NotSubscriptable"
	default:
		return "Unknown"
	}
}

// BindError is the binder's closed error type. Tests compare only Kind;
// the payload fields exist for human-readable diagnostics.
type BindError struct {
	Kind ErrorKind
	Span source.Span
	Name string
}

func (e *BindError) SpanOf() source.Span { return e.Span }

func (e *BindError) Error() string {
	switch e.Kind {
	case UndeclaredVariable:
		return fmt.Sprintf("undeclared variable %q", e.Name)
	case UndeclaredStruct:
		return fmt.Sprintf("undeclared struct %q", e.Name)
	case UndeclaredFunction:
		return fmt.Sprintf("undeclared function %q", e.Name)
	case BadReturn:
		return "return outside of a function"
	case BadBreak:
		return "break outside of a loop"
	case BadContinue:
		return "continue outside of a loop"
	case NotSubscriptable:
		return "expression is not subscriptable"
	default:
		return "bind error"
	}
}
