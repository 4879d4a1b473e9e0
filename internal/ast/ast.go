// Package ast defines the syntax tree produced by the parser and mutated in
// place by every later pass (binder, type checker, integer inference,
// desugarer, locals collector, renamer) before the IR translator consumes
// it. Nodes are concrete structs, not an interface-per-variant hierarchy:
// each pass type-switches over the node kinds it handles (visitor.go adds
// WalkExpression/WalkStatements for plain traversals), and the
// annotation slots (Ty, Definition) are explicit optional fields each pass
// is obligated to fill in before the next one runs.
package ast

import (
	"github.com/blb-lang/blbc/internal/source"
	"github.com/blb-lang/blbc/internal/types"
)

// Node is implemented by every AST node; it exposes the byte span recorded
// at parse time.
type Node interface {
	SpanOf() source.Span
}

// NodeBase is embedded by every concrete node to satisfy Node.
type NodeBase struct {
	Span source.Span
}

func (n *NodeBase) SpanOf() source.Span { return n.Span }

// Typed is embedded by every expression node. Ty is nil until the type
// checker runs; after integer inference succeeds it is never Int.
type Typed struct {
	Ty *types.Type
}

func (t *Typed) TypeOf() *types.Type { return t.Ty }

func (t *Typed) SetType(ty types.Type) { t.Ty = &ty }

// Expression is implemented by every expression variant: Group,
// BinaryOperation, Literal, Call, Assignment, ArrayInitializer, AddrOf,
// Deref.
type Expression interface {
	Node
	TypeOf() *types.Type
	SetType(types.Type)
}

// DefKind discriminates a Definition: a use-site resolves to exactly one
// of a function, a struct, or a local variable (itself covering globals,
// parameters, and locals — anything materialised as a *LetDecl).
type DefKind int

const (
	DefFunction DefKind = iota
	DefStruct
	DefLocalVariable
)

// Definition is the stable reference a bound use-site carries: a pointer
// to the owning declaration node, tagged by Kind. It holds no index of its
// own; a declaration's arena index is that declaration's ID field, reached
// through the pointer.
type Definition struct {
	Kind     DefKind
	Function *FunctionStatement
	Struct   *StructStatement
	Local    *LetDecl
}

// Program is the arena-owning root: one slice per declaration category,
// appended to in parse order, giving every FunctionStatement/StructStatement/
// LetDecl a stable index (its ID field) for the lifetime of the
// compilation unit. Globals preserves the original top-to-bottom order of
// GlobalStatements for re-emission by the printer.
type Program struct {
	Globals   []GlobalStatement
	Functions []*FunctionStatement
	Structs   []*StructStatement
	Lets      []*LetDecl
}

func (p *Program) addFunction(f *FunctionStatement) *FunctionStatement {
	f.ID = len(p.Functions)
	p.Functions = append(p.Functions, f)
	return f
}

func (p *Program) addStruct(s *StructStatement) *StructStatement {
	s.ID = len(p.Structs)
	p.Structs = append(p.Structs, s)
	return s
}

func (p *Program) addLet(l *LetDecl) *LetDecl {
	l.ID = len(p.Lets)
	p.Lets = append(p.Lets, l)
	return l
}

// AddGlobal registers a top-level GlobalStatement, threading it through the
// appropriate arena so its ID is assigned.
func (p *Program) AddGlobal(g GlobalStatement) {
	switch v := g.(type) {
	case *FunctionStatement:
		p.addFunction(v)
	case *StructStatement:
		p.addStruct(v)
	case *LetDecl:
		p.addLet(v)
	}
	p.Globals = append(p.Globals, g)
}
