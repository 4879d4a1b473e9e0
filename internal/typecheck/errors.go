// Package typecheck implements the type checker and the integer-type
// inference pass that follows it. Both share one closed error taxonomy,
// since InferenceError can surface from either.
package typecheck

import (
	"fmt"

	"github.com/blb-lang/blbc/internal/source"
	"github.com/blb-lang/blbc/internal/types"
)

// ErrorKind enumerates TypeError's closed set.
type ErrorKind int

const (
	BadInit ErrorKind = iota
	NonBoolCondition
	BadAssigment
	NotCallable
	BadParameterCount
	BadParameter
	IncompatibleOperationType
	ReturnTypeMismatch
	InferenceError
	DifferentTypeInArrayInitializer
	NonSubscriptable
	IndexNotInteger
	DerefNonPointer
)

func (k ErrorKind) String() string {
	switch k {
	case BadInit:
		return "BadInit"
	case NonBoolCondition:
		return "NonBoolCondition"
	case BadAssigment:
		return "BadAssigment"
	case NotCallable:
		return "NotCallable"
	case BadParameterCount:
		return "BadParameterCount"
	case BadParameter:
		return "BadParameter"
	case IncompatibleOperationType:
		return "IncompatibleOperationType"
	case ReturnTypeMismatch:
		return "ReturnTypeMismatch"
	case InferenceError:
		return "InferenceError"
	case DifferentTypeInArrayInitializer:
		return "DifferentTypeInArrayInitializer"
	case NonSubscriptable:
		return "NonSubscriptable"
	case IndexNotInteger:
		return "IndexNotInteger"
	case DerefNonPointer:
		return "DerefNonPointer"
	default:
		return "Unknown"
	}
}

// TypeError is the checker's and inferrer's shared closed error type.
// Tests compare only Kind; the payload fields below exist for
// human-readable diagnostics.
type TypeError struct {
	Kind ErrorKind
	Span source.Span

	// DifferentTypeInArrayInitializer
	First    types.Type
	Found    types.Type
	Position int

	// ReturnTypeMismatch
	Got  types.Type
	Want types.Type

	// BadParameterCount
	WantCount int
	GotCount  int

	// BadParameter
	ParamIndex int
}

func (e *TypeError) SpanOf() source.Span { return e.Span }

func (e *TypeError) Error() string {
	switch e.Kind {
	case BadInit:
		return "initializer type is not compatible with the declared type"
	case NonBoolCondition:
		return "condition must have type bool"
	case BadAssigment:
		return "assigned value is not compatible with the target's type"
	case NotCallable:
		return "expression is not callable"
	case BadParameterCount:
		return fmt.Sprintf("expected %d arguments, got %d", e.WantCount, e.GotCount)
	case BadParameter:
		return fmt.Sprintf("argument %d is not compatible with its parameter type", e.ParamIndex)
	case IncompatibleOperationType:
		return "operand types are not compatible"
	case ReturnTypeMismatch:
		return fmt.Sprintf("returned %s, function declares %s", e.Got, e.Want)
	case InferenceError:
		return "type could not be inferred"
	case DifferentTypeInArrayInitializer:
		return fmt.Sprintf("array element %d has type %s, expected %s", e.Position, e.Found, e.First)
	case NonSubscriptable:
		return "expression is not an array and cannot be indexed"
	case IndexNotInteger:
		return "array index must be an integer"
	case DerefNonPointer:
		return "deref target is not a pointer"
	default:
		return "type error"
	}
}
