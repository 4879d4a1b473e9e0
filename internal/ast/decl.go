package ast

import "github.com/blb-lang/blbc/internal/types"

// GlobalStatement is implemented by the three kinds of top-level
// declaration: FunctionStatement, StructStatement, and LetDecl (a global
// `let`).
type GlobalStatement interface {
	Node
	globalStatement()
}

// LetDecl backs every binding form the language has: a top-level global
// `let`, a local `let` statement, a function parameter (IsParam == true,
// Init == nil), and a for-loop's induction-variable declaration. Unifying
// these means the locals collector and renamer only need to understand one
// declaration shape.
type LetDecl struct {
	NodeBase

	ID int // stable index into Program.Lets

	Name       string
	Annotation *TypeSyntax // optional for a let with an initializer; required for parameters
	Init       Expression  // nil for parameters

	IsParam bool

	Ty *types.Type // filled in by the type checker
}

func (l *LetDecl) globalStatement() {}

// StructField is one `(TypeSyntax, name)` member of a struct declaration.
type StructField struct {
	NodeBase
	Name       string
	Annotation *TypeSyntax
}

// StructStatement declares a struct type.
type StructStatement struct {
	NodeBase

	ID int // stable index into Program.Structs

	Name   string
	Fields []*StructField

	Ty *types.Type // filled in by the type checker
}

func (s *StructStatement) globalStatement() {}

// FunctionStatement declares a function, extern or with a body. IsExtern
// implies Body == nil and vice versa.
type FunctionStatement struct {
	NodeBase

	ID int // stable index into Program.Functions

	Name     string
	Params   []*LetDecl
	RetType  *TypeSyntax // nil means Void
	IsExtern bool
	Body     *Statements // nil when IsExtern

	Ty *types.Type // the Function type, filled in by the type checker

	// Locals is populated by the locals collector (pass 7): parameters
	// followed by each `let` encountered during a depth-first walk of Body,
	// in encounter order. Unset (nil) for extern functions.
	Locals []*LetDecl
}

func (f *FunctionStatement) globalStatement() {}
