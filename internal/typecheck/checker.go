package typecheck

import (
	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/types"
)

// Checker assigns a semantic Type to every typable node and validates
// compatibility. currentFunction tracks the Function type being
// traversed, used by Return to check the declared result type.
type Checker struct {
	currentFunction *types.Type
}

// Check runs the type checker over prog, mutating Ty fields in place. It
// aborts and returns the first TypeError encountered.
func Check(prog *ast.Program) error {
	c := &Checker{}
	return c.run(prog)
}

func (c *Checker) run(prog *ast.Program) error {
	for _, st := range prog.Structs {
		if st.Ty == nil {
			if err := c.checkStruct(st); err != nil {
				return err
			}
		}
	}
	for _, fn := range prog.Functions {
		if err := c.buildFunctionType(fn); err != nil {
			return err
		}
	}
	for _, g := range prog.Globals {
		if let, ok := g.(*ast.LetDecl); ok {
			if err := c.checkLet(let); err != nil {
				return err
			}
		}
	}
	for _, fn := range prog.Functions {
		if err := c.checkFunctionBody(fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStruct(st *ast.StructStatement) error {
	fields := make([]types.Field, len(st.Fields))
	for i, f := range st.Fields {
		ft, err := c.resolveTypeSyntax(f.Annotation)
		if err != nil {
			return err
		}
		fields[i] = types.Field{Name: f.Name, Type: ft}
	}
	ty := types.NewStruct(st.Name, fields)
	st.Ty = &ty
	return nil
}

// resolveTypeSyntax converts a written type annotation into a semantic
// Type, recursing into struct definitions on demand so forward-declared
// struct fields resolve regardless of declaration order.
func (c *Checker) resolveTypeSyntax(ts *ast.TypeSyntax) (types.Type, error) {
	switch ts.Kind {
	case ast.TSPrimitive:
		return types.Primitive(ts.Primitive), nil
	case ast.TSIdentifier:
		st := ts.Definition.Struct
		if st.Ty == nil {
			if err := c.checkStruct(st); err != nil {
				return types.Type{}, err
			}
		}
		return *st.Ty, nil
	case ast.TSArray:
		elem, err := c.resolveTypeSyntax(ts.Elem)
		if err != nil {
			return types.Type{}, err
		}
		return types.NewArray(int(ts.Size), elem), nil
	case ast.TSPtr:
		elem, err := c.resolveTypeSyntax(ts.Elem)
		if err != nil {
			return types.Type{}, err
		}
		return types.NewPtr(elem), nil
	}
	return types.Type{}, nil
}

func (c *Checker) buildFunctionType(fn *ast.FunctionStatement) error {
	params := make([]types.Param, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := c.resolveTypeSyntax(p.Annotation)
		if err != nil {
			return err
		}
		p.Ty = &pt
		params[i] = types.Param{Name: p.Name, Type: pt}
	}
	ret := types.Primitive(types.Void)
	if fn.RetType != nil {
		rt, err := c.resolveTypeSyntax(fn.RetType)
		if err != nil {
			return err
		}
		ret = rt
	}
	ty := types.NewFunction(params, ret)
	fn.Ty = &ty
	return nil
}

func (c *Checker) checkFunctionBody(fn *ast.FunctionStatement) error {
	if fn.IsExtern {
		return nil
	}
	prev := c.currentFunction
	c.currentFunction = fn.Ty
	defer func() { c.currentFunction = prev }()
	return c.checkStatements(fn.Body)
}

func (c *Checker) checkStatements(stmts *ast.Statements) error {
	for _, s := range stmts.List {
		if err := c.checkStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(s *ast.Statement) error {
	switch s.Kind {
	case ast.StmtIf:
		condTy, err := c.checkExpr(s.Cond)
		if err != nil {
			return err
		}
		if condTy.Kind != types.Bool {
			return &TypeError{Kind: NonBoolCondition, Span: s.Cond.SpanOf()}
		}
		if err := c.checkStatements(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return c.checkStatements(s.Else)
		}
		return nil

	case ast.StmtLet:
		return c.checkLet(s.Decl)

	case ast.StmtWhile:
		condTy, err := c.checkExpr(s.Cond)
		if err != nil {
			return err
		}
		if condTy.Kind != types.Bool {
			return &TypeError{Kind: NonBoolCondition, Span: s.Cond.SpanOf()}
		}
		return c.checkStatements(s.Body)

	case ast.StmtFor:
		if err := c.checkLet(s.Decl); err != nil {
			return err
		}
		condTy, err := c.checkExpr(s.Cond)
		if err != nil {
			return err
		}
		if condTy.Kind != types.Bool {
			return &TypeError{Kind: NonBoolCondition, Span: s.Cond.SpanOf()}
		}
		if _, err := c.checkExpr(s.Step); err != nil {
			return err
		}
		return c.checkStatements(s.Body)

	case ast.StmtReturn:
		retTy := types.Primitive(types.Void)
		if s.Value != nil {
			var err error
			retTy, err = c.checkExpr(s.Value)
			if err != nil {
				return err
			}
		}
		want := *c.currentFunction.Ret
		if !types.Compatible(retTy, want) {
			return &TypeError{Kind: ReturnTypeMismatch, Span: s.SpanOf(), Got: retTy, Want: want}
		}
		return nil

	case ast.StmtBreak, ast.StmtContinue:
		return nil

	case ast.StmtExpression:
		_, err := c.checkExpr(s.Expr)
		return err
	}
	return nil
}

// checkLet checks a let declaration, including the Null-without-annotation
// special case and recording a Ptr(T) annotation's T onto a bare `null`
// initializer's concrete type so the translator can emit a typed null.
func (c *Checker) checkLet(decl *ast.LetDecl) error {
	initTy, err := c.checkExpr(decl.Init)
	if err != nil {
		return err
	}

	if decl.Annotation == nil {
		if initTy.Kind == types.Null {
			return &TypeError{Kind: InferenceError, Span: decl.Init.SpanOf()}
		}
		decl.Ty = &initTy
		return nil
	}

	annTy, err := c.resolveTypeSyntax(decl.Annotation)
	if err != nil {
		return err
	}
	if initTy.Kind == types.Null && annTy.Kind == types.Ptr {
		if lit, ok := unwrapLiteral(decl.Init); ok && lit.Kind == ast.LitNull {
			lit.SetType(types.NewNull(annTy.Pointee))
		}
	} else if !types.Compatible(initTy, annTy) {
		return &TypeError{Kind: BadInit, Span: decl.Init.SpanOf()}
	}
	decl.Ty = &annTy
	return nil
}

func unwrapLiteral(e ast.Expression) (*ast.Literal, bool) {
	if g, ok := e.(*ast.Group); ok {
		return unwrapLiteral(g.Inner)
	}
	lit, ok := e.(*ast.Literal)
	return lit, ok
}

func (c *Checker) checkExpr(e ast.Expression) (types.Type, error) {
	switch n := e.(type) {
	case *ast.Group:
		ty, err := c.checkExpr(n.Inner)
		if err != nil {
			return types.Type{}, err
		}
		n.SetType(ty)
		return ty, nil

	case *ast.BinaryOperation:
		return c.checkBinary(n)

	case *ast.Literal:
		return c.checkLiteral(n)

	case *ast.Call:
		return c.checkCall(n)

	case *ast.Assignment:
		lt, err := c.checkExpr(n.Left)
		if err != nil {
			return types.Type{}, err
		}
		rt, err := c.checkExpr(n.Right)
		if err != nil {
			return types.Type{}, err
		}
		if !types.Compatible(lt, rt) {
			return types.Type{}, &TypeError{Kind: BadAssigment, Span: n.SpanOf()}
		}
		n.SetType(lt)
		return lt, nil

	case *ast.ArrayInitializer:
		return c.checkArrayInitializer(n)

	case *ast.AddrOf:
		inner, err := c.checkExpr(n.Expr)
		if err != nil {
			return types.Type{}, err
		}
		ty := types.NewPtr(inner)
		n.SetType(ty)
		return ty, nil

	case *ast.Deref:
		inner, err := c.checkExpr(n.Expr)
		if err != nil {
			return types.Type{}, err
		}
		if inner.Kind != types.Ptr {
			return types.Type{}, &TypeError{Kind: DerefNonPointer, Span: n.SpanOf()}
		}
		ty := *inner.Pointee
		n.SetType(ty)
		return ty, nil
	}
	return types.Type{}, nil
}

func (c *Checker) checkBinary(n *ast.BinaryOperation) (types.Type, error) {
	if n.Right == nil {
		lt, err := c.checkExpr(n.Left)
		if err != nil {
			return types.Type{}, err
		}
		ty := lt
		if n.Op == ast.OpNot {
			ty = types.Primitive(types.Bool)
		}
		n.SetType(ty)
		return ty, nil
	}

	lt, err := c.checkExpr(n.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := c.checkExpr(n.Right)
	if err != nil {
		return types.Type{}, err
	}
	if !types.Compatible(lt, rt) {
		return types.Type{}, &TypeError{Kind: IncompatibleOperationType, Span: n.SpanOf()}
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		ty := lt
		if ty.Kind == types.Int {
			ty = rt
		}
		n.SetType(ty)
		return ty, nil
	default: // relational and logical operators
		ty := types.Primitive(types.Bool)
		n.SetType(ty)
		return ty, nil
	}
}

func (c *Checker) checkLiteral(lit *ast.Literal) (types.Type, error) {
	var ty types.Type
	switch lit.Kind {
	case ast.LitTrue, ast.LitFalse:
		ty = types.Primitive(types.Bool)
	case ast.LitInteger:
		ty = types.Primitive(types.Int)
	case ast.LitFloat:
		ty = types.Primitive(types.Float)
	case ast.LitString:
		ty = types.Primitive(types.String)
	case ast.LitNull:
		ty = types.NewNull(nil)
	case ast.LitIdentifier:
		ty = *lit.Definition.Local.Ty
	case ast.LitArrayAccess:
		baseTy, err := c.checkExpr(lit.Base)
		if err != nil {
			return types.Type{}, err
		}
		if baseTy.Kind != types.Array {
			return types.Type{}, &TypeError{Kind: NonSubscriptable, Span: lit.Base.SpanOf()}
		}
		idxTy, err := c.checkExpr(lit.Index)
		if err != nil {
			return types.Type{}, err
		}
		if idxTy.Kind != types.Int && !idxTy.IsSizedInt() {
			return types.Type{}, &TypeError{Kind: IndexNotInteger, Span: lit.Index.SpanOf()}
		}
		ty = *baseTy.Elem
	}
	lit.SetType(ty)
	return ty, nil
}

func (c *Checker) checkCall(call *ast.Call) (types.Type, error) {
	if call.Definition.Kind != ast.DefFunction {
		return types.Type{}, &TypeError{Kind: NotCallable, Span: call.SpanOf()}
	}
	fnTy := call.Definition.Function.Ty
	if len(call.Args) != len(fnTy.Params) {
		return types.Type{}, &TypeError{
			Kind: BadParameterCount, Span: call.SpanOf(),
			WantCount: len(fnTy.Params), GotCount: len(call.Args),
		}
	}
	for i, arg := range call.Args {
		at, err := c.checkExpr(arg)
		if err != nil {
			return types.Type{}, err
		}
		if !types.Compatible(at, fnTy.Params[i].Type) {
			return types.Type{}, &TypeError{Kind: BadParameter, Span: arg.SpanOf(), ParamIndex: i}
		}
	}
	ret := *fnTy.Ret
	call.SetType(ret)
	return ret, nil
}

func (c *Checker) checkArrayInitializer(init *ast.ArrayInitializer) (types.Type, error) {
	// The grammar requires at least one element, so the parser never
	// produces an empty initializer; guard anyway rather than index a tree
	// built some other way.
	if len(init.Values) == 0 {
		return types.Type{}, &TypeError{Kind: InferenceError, Span: init.SpanOf()}
	}
	first, err := c.checkExpr(init.Values[0])
	if err != nil {
		return types.Type{}, err
	}
	for i := 1; i < len(init.Values); i++ {
		ty, err := c.checkExpr(init.Values[i])
		if err != nil {
			return types.Type{}, err
		}
		if !types.Compatible(ty, first) {
			return types.Type{}, &TypeError{
				Kind: DifferentTypeInArrayInitializer, Span: init.Values[i].SpanOf(),
				First: first, Found: ty, Position: i,
			}
		}
	}
	result := types.NewArray(len(init.Values), first)
	init.SetType(result)
	return result, nil
}
