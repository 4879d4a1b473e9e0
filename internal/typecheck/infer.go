package typecheck

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/types"
)

// inferrer narrows abstract Int types to concrete sized integers. It runs
// after Check has populated every typable node's Ty.
type inferrer struct {
	currentFn *types.Type
}

// Infer runs integer-type inference over prog. It aborts and returns the
// first InferenceError encountered.
func Infer(prog *ast.Program) error {
	inf := &inferrer{}
	for _, g := range prog.Globals {
		if let, ok := g.(*ast.LetDecl); ok {
			if err := inf.inferLet(let); err != nil {
				return err
			}
		}
	}
	for _, fn := range prog.Functions {
		if fn.IsExtern {
			continue
		}
		inf.currentFn = fn.Ty
		if err := inf.inferStatements(fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func (inf *inferrer) inferStatements(stmts *ast.Statements) error {
	for _, s := range stmts.List {
		if err := inf.inferStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (inf *inferrer) inferStatement(s *ast.Statement) error {
	switch s.Kind {
	case ast.StmtIf:
		if err := inf.inferExpr(s.Cond); err != nil {
			return err
		}
		if err := inf.inferStatements(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return inf.inferStatements(s.Else)
		}
		return nil

	case ast.StmtLet:
		return inf.inferLet(s.Decl)

	case ast.StmtWhile:
		if err := inf.inferExpr(s.Cond); err != nil {
			return err
		}
		return inf.inferStatements(s.Body)

	case ast.StmtFor:
		if err := inf.inferLet(s.Decl); err != nil {
			return err
		}
		if err := inf.inferExpr(s.Cond); err != nil {
			return err
		}
		if err := inf.inferExpr(s.Step); err != nil {
			return err
		}
		return inf.inferStatements(s.Body)

	case ast.StmtReturn:
		if s.Value == nil {
			return nil
		}
		if err := inf.inferExpr(s.Value); err != nil {
			return err
		}
		if ty := s.Value.TypeOf(); ty != nil && ty.Kind == types.Int {
			setIntegerType(s.Value, *inf.currentFn.Ret)
		}
		return nil

	case ast.StmtExpression:
		if err := inf.inferExpr(s.Expr); err != nil {
			return err
		}
		if ty := s.Expr.TypeOf(); ty != nil && containsInt(*ty) {
			return &TypeError{Kind: InferenceError, Span: s.Expr.SpanOf()}
		}
		return nil
	}
	return nil
}

// inferLet implements the Let rule for both `let` statements/globals and a
// `for` loop's induction-variable declaration, which shares LetDecl's shape.
func (inf *inferrer) inferLet(decl *ast.LetDecl) error {
	if err := inf.inferExpr(decl.Init); err != nil {
		return err
	}
	if decl.Annotation == nil {
		if ty := decl.Init.TypeOf(); ty != nil && containsInt(*ty) {
			return &TypeError{Kind: InferenceError, Span: decl.Init.SpanOf()}
		}
		return nil
	}
	target := *decl.Ty
	if decl.Ty.Kind == types.Array {
		target = *decl.Ty.Elem
	}
	setIntegerType(decl.Init, target)
	return nil
}

// inferExpr walks e, applying the per-construct narrowing rules wherever a
// surrounding context fixes a concrete type, and recursing into every
// operand so nested constructs are reached regardless of the parent.
func (inf *inferrer) inferExpr(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.Group:
		return inf.inferExpr(n.Inner)

	case *ast.BinaryOperation:
		if n.Right == nil {
			return inf.inferExpr(n.Left)
		}
		if err := inf.inferExpr(n.Left); err != nil {
			return err
		}
		if err := inf.inferExpr(n.Right); err != nil {
			return err
		}
		lt, rt := n.Left.TypeOf(), n.Right.TypeOf()
		switch {
		case lt.Kind == types.Int && rt.Kind == types.Int:
			target := types.Primitive(types.I64)
			setIntegerType(n.Left, target)
			setIntegerType(n.Right, target)
			if n.Ty != nil && n.Ty.Kind == types.Int {
				n.SetType(target)
			}
		case lt.Kind == types.Int:
			setIntegerType(n.Left, *rt)
		case rt.Kind == types.Int:
			setIntegerType(n.Right, *lt)
		}
		return nil

	case *ast.Call:
		fnTy := n.Definition.Function.Ty
		for i, a := range n.Args {
			if err := inf.inferExpr(a); err != nil {
				return err
			}
			if at := a.TypeOf(); at != nil && at.Kind == types.Int {
				setIntegerType(a, fnTy.Params[i].Type)
			}
		}
		return nil

	case *ast.Assignment:
		if err := inf.inferExpr(n.Left); err != nil {
			return err
		}
		if err := inf.inferExpr(n.Right); err != nil {
			return err
		}
		if rt := n.Right.TypeOf(); rt != nil && rt.Kind == types.Int {
			setIntegerType(n.Right, *n.Left.TypeOf())
		}
		return nil

	case *ast.ArrayInitializer:
		for _, v := range n.Values {
			if err := inf.inferExpr(v); err != nil {
				return err
			}
		}
		return nil

	case *ast.AddrOf:
		return inf.inferExpr(n.Expr)

	case *ast.Deref:
		return inf.inferExpr(n.Expr)

	case *ast.Literal:
		if n.Kind == ast.LitArrayAccess {
			if err := inf.inferExpr(n.Base); err != nil {
				return err
			}
			if err := inf.inferExpr(n.Index); err != nil {
				return err
			}
			if it := n.Index.TypeOf(); it != nil && it.Kind == types.Int {
				setIntegerType(n.Index, types.Primitive(types.I64))
			}
		}
		return nil
	}
	return nil
}

// setIntegerType rewrites Ty to target on every reachable Int-typed leaf of
// e: literals, calls, assignments' RHS, binary operations, array
// initializers (and the outer Array type they produce), and array-access/
// null leaves nested within. It is used wherever a surrounding context has
// already fixed a concrete destination type.
func setIntegerType(e ast.Expression, target types.Type) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Group:
		setIntegerType(n.Inner, target)
		if inner := n.Inner.TypeOf(); inner != nil {
			n.SetType(*inner)
		}

	case *ast.Literal:
		switch n.Kind {
		case ast.LitInteger, ast.LitIdentifier, ast.LitNull:
			if n.Ty != nil && n.Ty.Kind == types.Int {
				n.SetType(target)
			}
		case ast.LitArrayAccess:
			if it := n.Index.TypeOf(); it != nil && it.Kind == types.Int {
				setIntegerType(n.Index, types.Primitive(types.I64))
			}
			if n.Ty != nil && n.Ty.Kind == types.Int {
				n.SetType(target)
			}
		}

	case *ast.Call:
		if n.Ty != nil && n.Ty.Kind == types.Int {
			n.SetType(target)
		}

	case *ast.BinaryOperation:
		if n.Right == nil {
			setIntegerType(n.Left, target)
			if lt := n.Left.TypeOf(); lt != nil {
				n.SetType(*lt)
			}
			return
		}
		lt, rt := n.Left.TypeOf(), n.Right.TypeOf()
		if lt != nil && lt.Kind == types.Int {
			setIntegerType(n.Left, target)
		}
		if rt != nil && rt.Kind == types.Int {
			setIntegerType(n.Right, target)
		}
		if n.Ty != nil && n.Ty.Kind == types.Int {
			n.SetType(target)
		}

	case *ast.Assignment:
		if rt := n.Right.TypeOf(); rt != nil && rt.Kind == types.Int {
			setIntegerType(n.Right, target)
		}

	case *ast.ArrayInitializer:
		for _, v := range n.Values {
			setIntegerType(v, target)
		}
		n.SetType(types.NewArray(len(n.Values), target))

	case *ast.AddrOf:
		setIntegerType(n.Expr, target)

	case *ast.Deref:
		setIntegerType(n.Expr, target)
	}
}

// containsInt reports whether t is, or structurally contains, the abstract
// Int type — used to reject an unannotated let whose initializer still
// carries an unresolved integer literal type anywhere in its shape (e.g.
// `let arr = [1,2,3];` with no element ever narrowed), not just the bare
// scalar case.
func containsInt(t types.Type) bool {
	switch t.Kind {
	case types.Int:
		return true
	case types.Array:
		return containsInt(*t.Elem)
	case types.Ptr:
		return containsInt(*t.Pointee)
	default:
		return false
	}
}
