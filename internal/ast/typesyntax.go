package ast

import (
	"strconv"

	"github.com/blb-lang/blbc/internal/types"
)

// TypeSyntaxKind discriminates the written type-annotation grammar:
// primitives, a user struct name, a fixed-size array, or a pointer
// (right-associative, so `ptr ptr T` nests via Elem).
type TypeSyntaxKind int

const (
	TSPrimitive TypeSyntaxKind = iota
	TSIdentifier
	TSArray
	TSPtr
)

// TypeSyntax is what the parser produces from a written type; the type
// checker converts it to a semantic types.Type. An identifier carries a
// Definition slot the binder fills in with the struct it names.
type TypeSyntax struct {
	NodeBase

	Kind TypeSyntaxKind

	Primitive types.Kind // valid when Kind == TSPrimitive

	Name       string      // valid when Kind == TSIdentifier
	Definition *Definition // filled in by the binder for TSIdentifier

	Size uint32      // valid when Kind == TSArray
	Elem *TypeSyntax // valid when Kind == TSArray or TSPtr
}

func (t *TypeSyntax) String() string {
	switch t.Kind {
	case TSPrimitive:
		return types.Primitive(t.Primitive).String()
	case TSIdentifier:
		return t.Name
	case TSArray:
		return "[" + strconv.Itoa(int(t.Size)) + "; " + t.Elem.String() + "]"
	case TSPtr:
		return "ptr " + t.Elem.String()
	default:
		return "?"
	}
}
