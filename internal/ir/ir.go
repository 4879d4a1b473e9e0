// Package ir defines the abstract IR-builder contract the code-generation
// backend must satisfy; any backend implementing it is acceptable.
// internal/irgen (the translator) depends only on these interfaces;
// internal/ir/llvmir is the one concrete implementation this repo ships,
// built on tinygo.org/x/go-llvm.
package ir

// Linkage selects how an added function's symbol links.
type Linkage int

const (
	External Linkage = iota
	ExternalWeak
)

// TypeKind discriminates the kinds of Type a Types factory can produce.
type TypeKind int

const (
	KindVoid TypeKind = iota
	KindInt
	KindFloat
	KindBool
	KindPtr
	KindArray
	KindFunction
)

// Type is an opaque handle to a backend type.
type Type interface {
	Kind() TypeKind
}

// Value is an opaque handle to a backend SSA value (instruction, constant,
// function, global, or basic-block argument).
type Value interface {
	Type() Type
}

// Block is an opaque handle to a basic block.
type Block interface{}

// IntPredicate enumerates the signed and unsigned integer comparison
// predicates.
type IntPredicate int

const (
	IntEQ IntPredicate = iota
	IntNE
	IntSLT
	IntSGT
	IntSLE
	IntSGE
	IntULT
	IntUGT
	IntULE
	IntUGE
)

// FloatPredicate enumerates the ordered float comparison predicates.
type FloatPredicate int

const (
	FloatOEQ FloatPredicate = iota
	FloatONE
	FloatOLT
	FloatOGT
	FloatOLE
	FloatOGE
)

// Types constructs backend types. BasicType converts "any type" to a
// non-void basic type; a backend that has no distinct "any type"
// representation can make this the identity.
type Types interface {
	IntType(bits int) Type
	FloatType() Type
	BoolType() Type
	VoidType() Type
	PtrType(elem Type) Type
	ArrayType(elem Type, count int) Type
	FunctionType(ret Type, params []Type, variadic bool) Type
	BasicType(t Type) Type
}

// Module owns the backend's type factory plus the module-level operations:
// adding and looking up functions, printing, verification, and object
// emission.
type Module interface {
	Types

	AddFunction(name string, fnType Type, linkage Linkage) Value
	GetFunction(name string) (Value, bool)

	Print() string
	Verify() error
	WriteObject(path string) error

	Dispose()
}

// Builder emits instructions at a positional cursor into one function at a
// time.
type Builder interface {
	AddBlock(fn Value, name string) Block
	SetInsertPoint(b Block)
	InsertBlock() Block

	Alloca(t Type, name string) Value
	Load(t Type, ptr Value, name string) Value
	Store(val, ptr Value)
	GEP(t Type, ptr Value, indices []Value, name string) Value

	// Param returns fn's index'th incoming parameter, for copying into its
	// entry-block stack slot.
	Param(fn Value, index int) Value

	Call(fn Value, args []Value, name string) Value
	Ret(val Value)
	RetVoid()
	Unreachable()
	Br(target Block)
	CondBr(cond Value, then, els Block)

	Add(l, r Value, name string) Value
	Sub(l, r Value, name string) Value
	Mul(l, r Value, name string) Value
	SDiv(l, r Value, name string) Value
	UDiv(l, r Value, name string) Value
	SRem(l, r Value, name string) Value
	URem(l, r Value, name string) Value

	FAdd(l, r Value, name string) Value
	FSub(l, r Value, name string) Value
	FMul(l, r Value, name string) Value
	FDiv(l, r Value, name string) Value

	ICmp(pred IntPredicate, l, r Value, name string) Value
	FCmp(pred FloatPredicate, l, r Value, name string) Value

	Not(v Value, name string) Value
	Neg(v Value, name string) Value
	FNeg(v Value, name string) Value
	And(l, r Value, name string) Value
	Or(l, r Value, name string) Value

	ConstInt(t Type, v int64, signed bool) Value
	ConstFloat(t Type, v float64) Value
	ConstBool(v bool) Value
	ConstNull(t Type) Value
	GlobalStringPtr(s, name string) Value

	Dispose()
}
