// Package types defines the semantic type lattice produced by the type
// checker and consumed by integer inference and the IR translator. These
// are distinct from internal/ast's TypeSyntax nodes, which are what the
// parser produces from written type annotations before any checking.
package types

import "fmt"

// Kind discriminates the variants of Type.
type Kind int

const (
	U8 Kind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	Int // abstract integer literal type; internal only, must not reach codegen
	Float
	Bool
	String
	Void
	Struct
	Function
	Array
	Ptr
	Null
)

// Field is one member of a Struct type.
type Field struct {
	Name string
	Type Type
}

// Param is one parameter of a Function type.
type Param struct {
	Name string
	Type Type
}

// Type is the tagged union of semantic types. Only the fields relevant to
// Kind are populated; the rest are zero values.
type Type struct {
	Kind Kind

	// Struct
	StructName string
	Fields     []Field

	// Function
	Params []Param
	Ret    *Type

	// Array
	Size int
	Elem *Type

	// Ptr
	Pointee *Type

	// Null
	Concrete *Type
}

var sizedIntKinds = map[Kind]bool{
	U8: true, U16: true, U32: true, U64: true,
	I8: true, I16: true, I32: true, I64: true,
}

// IsSizedInt reports whether t is one of the eight concrete sized integer
// types (as opposed to the abstract Int literal type).
func (t Type) IsSizedInt() bool { return sizedIntKinds[t.Kind] }

// IsSigned reports whether t is a signed sized integer type. The IR
// translator uses this to pick the `signed` flag on integer constants and
// the signed-vs-unsigned comparison predicate.
func (t Type) IsSigned() bool {
	switch t.Kind {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// BitWidth returns the bit width of a sized integer type, or 0 otherwise.
func (t Type) BitWidth() int {
	switch t.Kind {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U64, I64:
		return 64
	default:
		return 0
	}
}

func (t Type) String() string {
	switch t.Kind {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	case Struct:
		return t.StructName
	case Function:
		return "function"
	case Array:
		return fmt.Sprintf("[%d; %s]", t.Size, t.Elem.String())
	case Ptr:
		return "ptr " + t.Pointee.String()
	case Null:
		return "null"
	default:
		return "?"
	}
}

// Simple constructors for the primitive kinds, used pervasively by the
// parser's type-syntax resolver, the checker, and the translator.
func Primitive(k Kind) Type { return Type{Kind: k} }

func NewPtr(pointee Type) Type { return Type{Kind: Ptr, Pointee: &pointee} }

func NewArray(size int, elem Type) Type { return Type{Kind: Array, Size: size, Elem: &elem} }

func NewStruct(name string, fields []Field) Type { return Type{Kind: Struct, StructName: name, Fields: fields} }

func NewFunction(params []Param, ret Type) Type { return Type{Kind: Function, Params: params, Ret: &ret} }

func NewNull(concrete *Type) Type { return Type{Kind: Null, Concrete: concrete} }

// Compatible implements the symmetric compatibility relation the checker
// tests against. It is NOT type equality: Int unifies with every sized
// integer, and a Null unifies with any Ptr in either argument order. It is
// reflexive for every kind except Function: two Function types are never
// compatible.
func Compatible(a, b Type) bool {
	if a.Kind == Int && b.IsSizedInt() {
		return true
	}
	if b.Kind == Int && a.IsSizedInt() {
		return true
	}
	if a.Kind == Int && b.Kind == Int {
		return true
	}
	if a.Kind != b.Kind {
		return compatibleCross(a, b)
	}
	switch a.Kind {
	case U8, U16, U32, U64, I8, I16, I32, I64, Bool, Void, String, Int, Float:
		return true
	case Ptr:
		return Compatible(*a.Pointee, *b.Pointee)
	case Array:
		return a.Size == b.Size && Compatible(*a.Elem, *b.Elem)
	case Struct:
		return a.StructName == b.StructName
	case Function:
		return false
	case Null:
		return true
	default:
		return false
	}
}

// compatibleCross handles the Kind-mismatched cases: Ptr~Null, in either
// order, is the only exception to "different Kind means incompatible".
func compatibleCross(a, b Type) bool {
	if a.Kind == Ptr && b.Kind == Null {
		return true
	}
	if a.Kind == Null && b.Kind == Ptr {
		return true
	}
	return false
}
