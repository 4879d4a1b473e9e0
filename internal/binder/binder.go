package binder

import (
	"github.com/blb-lang/blbc/internal/ast"
)

// Binder resolves every identifier, call, array-access base, and type
// identifier to its declaration, and enforces that return/break/continue
// appear only where the language allows them.
type Binder struct {
	functions map[string]*ast.FunctionStatement
	structs   map[string]*ast.StructStatement
	locals    *scopedMap

	nestedLoopDepth int
	inFunction      bool
}

// Bind runs the binder over prog, mutating it in place. It aborts and
// returns the first BindError encountered.
func Bind(prog *ast.Program) error {
	b := &Binder{
		functions: make(map[string]*ast.FunctionStatement),
		structs:   make(map[string]*ast.StructStatement),
		locals:    newScopedMap(),
	}
	return b.run(prog)
}

func (b *Binder) run(prog *ast.Program) error {
	// Register every function and struct before descending into any body,
	// regardless of extern-ness, so forward references and recursion
	// resolve uniformly.
	for _, fn := range prog.Functions {
		b.functions[fn.Name] = fn
	}
	for _, st := range prog.Structs {
		b.structs[st.Name] = st
	}

	b.locals.pushScope()
	for _, g := range prog.Globals {
		if let, ok := g.(*ast.LetDecl); ok {
			if let.Init != nil {
				if err := b.bindExpr(let.Init); err != nil {
					return err
				}
			}
			b.locals.define(let.Name, let)
		}
	}

	for _, fn := range prog.Functions {
		if err := b.bindFunction(fn); err != nil {
			return err
		}
	}
	b.locals.popScope()
	return nil
}

func (b *Binder) bindFunction(fn *ast.FunctionStatement) error {
	if err := b.bindTypeSyntax(fn.RetType); err != nil {
		return err
	}
	for _, p := range fn.Params {
		if err := b.bindTypeSyntax(p.Annotation); err != nil {
			return err
		}
	}
	if fn.IsExtern {
		return nil
	}

	b.locals.pushScope()
	defer b.locals.popScope()
	for _, p := range fn.Params {
		b.locals.define(p.Name, p)
	}

	prevInFunction := b.inFunction
	b.inFunction = true
	defer func() { b.inFunction = prevInFunction }()

	err := b.bindStatements(fn.Body)
	return err
}

func (b *Binder) bindStatements(stmts *ast.Statements) error {
	for _, s := range stmts.List {
		if err := b.bindStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) bindStatement(s *ast.Statement) error {
	switch s.Kind {
	case ast.StmtIf:
		if err := b.bindExpr(s.Cond); err != nil {
			return err
		}
		b.locals.pushScope()
		err := b.bindStatements(s.Then)
		b.locals.popScope()
		if err != nil {
			return err
		}
		if s.Else != nil {
			b.locals.pushScope()
			err := b.bindStatements(s.Else)
			b.locals.popScope()
			if err != nil {
				return err
			}
		}
		return nil

	case ast.StmtLet:
		if err := b.bindTypeSyntax(s.Decl.Annotation); err != nil {
			return err
		}
		if err := b.bindExpr(s.Decl.Init); err != nil {
			return err
		}
		b.locals.define(s.Decl.Name, s.Decl)
		return nil

	case ast.StmtWhile:
		if err := b.bindExpr(s.Cond); err != nil {
			return err
		}
		b.nestedLoopDepth++
		b.locals.pushScope()
		err := b.bindStatements(s.Body)
		b.locals.popScope()
		b.nestedLoopDepth--
		return err

	case ast.StmtFor:
		// The for-loop opens its scope before binding the induction
		// variable, so it is visible only inside the loop.
		b.nestedLoopDepth++
		b.locals.pushScope()
		if err := b.bindTypeSyntax(s.Decl.Annotation); err != nil {
			b.locals.popScope()
			b.nestedLoopDepth--
			return err
		}
		if err := b.bindExpr(s.Decl.Init); err != nil {
			b.locals.popScope()
			b.nestedLoopDepth--
			return err
		}
		b.locals.define(s.Decl.Name, s.Decl)
		if err := b.bindExpr(s.Cond); err != nil {
			b.locals.popScope()
			b.nestedLoopDepth--
			return err
		}
		if err := b.bindExpr(s.Step); err != nil {
			b.locals.popScope()
			b.nestedLoopDepth--
			return err
		}
		err := b.bindStatements(s.Body)
		b.locals.popScope()
		b.nestedLoopDepth--
		return err

	case ast.StmtReturn:
		if !b.inFunction {
			return &BindError{Kind: BadReturn, Span: s.SpanOf()}
		}
		if s.Value != nil {
			return b.bindExpr(s.Value)
		}
		return nil

	case ast.StmtBreak:
		if b.nestedLoopDepth == 0 {
			return &BindError{Kind: BadBreak, Span: s.SpanOf()}
		}
		return nil

	case ast.StmtContinue:
		if b.nestedLoopDepth == 0 {
			return &BindError{Kind: BadContinue, Span: s.SpanOf()}
		}
		return nil

	case ast.StmtExpression:
		return b.bindExpr(s.Expr)
	}
	return nil
}

func (b *Binder) bindExpr(e ast.Expression) error {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.Group:
		return b.bindExpr(n.Inner)
	case *ast.BinaryOperation:
		if err := b.bindExpr(n.Left); err != nil {
			return err
		}
		return b.bindExpr(n.Right)
	case *ast.Literal:
		return b.bindLiteral(n)
	case *ast.Call:
		fn, ok := b.functions[n.Callee]
		if !ok {
			return &BindError{Kind: UndeclaredFunction, Span: n.SpanOf(), Name: n.Callee}
		}
		n.Definition = &ast.Definition{Kind: ast.DefFunction, Function: fn}
		for _, a := range n.Args {
			if err := b.bindExpr(a); err != nil {
				return err
			}
		}
		return nil
	case *ast.Assignment:
		if err := b.bindExpr(n.Left); err != nil {
			return err
		}
		return b.bindExpr(n.Right)
	case *ast.ArrayInitializer:
		for _, v := range n.Values {
			if err := b.bindExpr(v); err != nil {
				return err
			}
		}
		return nil
	case *ast.AddrOf:
		return b.bindExpr(n.Expr)
	case *ast.Deref:
		return b.bindExpr(n.Expr)
	}
	return nil
}

func (b *Binder) bindLiteral(lit *ast.Literal) error {
	switch lit.Kind {
	case ast.LitIdentifier:
		decl := b.locals.find(lit.StringValue)
		if decl == nil {
			return &BindError{Kind: UndeclaredVariable, Span: lit.SpanOf(), Name: lit.StringValue}
		}
		lit.Definition = &ast.Definition{Kind: ast.DefLocalVariable, Local: decl}
		return nil
	case ast.LitArrayAccess:
		if !isSubscriptableBase(lit.Base) {
			return &BindError{Kind: NotSubscriptable, Span: lit.Base.SpanOf()}
		}
		if err := b.bindExpr(lit.Base); err != nil {
			return err
		}
		switch base := lit.Base.(type) {
		case *ast.Literal:
			lit.Definition = base.Definition
		case *ast.Call:
			lit.Definition = base.Definition
		}
		return b.bindExpr(lit.Index)
	}
	return nil
}

// isSubscriptableBase reports whether base may legally be indexed: only an
// Identifier, a String literal, or a Call.
func isSubscriptableBase(base ast.Expression) bool {
	lit, ok := base.(*ast.Literal)
	if ok {
		return lit.Kind == ast.LitIdentifier || lit.Kind == ast.LitString
	}
	_, isCall := base.(*ast.Call)
	return isCall
}

func (b *Binder) bindTypeSyntax(ts *ast.TypeSyntax) error {
	if ts == nil {
		return nil
	}
	switch ts.Kind {
	case ast.TSIdentifier:
		st, ok := b.structs[ts.Name]
		if !ok {
			return &BindError{Kind: UndeclaredStruct, Span: ts.SpanOf(), Name: ts.Name}
		}
		ts.Definition = &ast.Definition{Kind: ast.DefStruct, Struct: st}
		return nil
	case ast.TSArray, ast.TSPtr:
		return b.bindTypeSyntax(ts.Elem)
	}
	return nil
}
