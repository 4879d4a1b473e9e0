// Package irgen translates the fully annotated, desugared, renamed AST
// into the target backend via internal/ir's abstract Module/Builder
// contract. irgen imports only internal/ir, never a concrete backend, so
// internal/ir/llvmir stays a swappable implementation rather than a
// dependency of the translator itself.
package irgen

import (
	"fmt"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/ir"
	"github.com/blb-lang/blbc/internal/types"
)

type loopTargets struct {
	header, after ir.Block
}

// Translator carries per-function emission state: the current function
// handle, the entry-block/body builder, a slot map (keyed by declaration
// identity since the renamer already made every name globally unique),
// and the innermost loop's break/continue targets.
type Translator struct {
	mod ir.Module
	bd  ir.Builder

	handle ir.Value
	slots  map[*ast.LetDecl]ir.Value

	// globalConsts backs top-level `let` declarations. The IR-builder
	// contract has no add-global op, so a global let is lowered as a
	// compile-time constant substituted at every use rather than a
	// mutable IR global.
	globalConsts map[*ast.LetDecl]ir.Value

	loops      []loopTargets
	terminated bool
}

// Translate emits every function in prog into mod via bd, then runs the
// backend's verifier. prog must already be bound, checked, inferred,
// desugared, locals-collected, and renamed; Translate does not re-check
// any of those invariants.
func Translate(mod ir.Module, bd ir.Builder, prog *ast.Program) error {
	t := &Translator{mod: mod, bd: bd}

	if err := t.collectGlobalConsts(prog); err != nil {
		return err
	}

	// Declare every function's header before emitting any body, so a call
	// to a function defined later in the source (including recursion)
	// resolves via mod.GetFunction regardless of declaration order.
	for _, fn := range prog.Functions {
		linkage := ir.External
		if fn.IsExtern {
			linkage = ir.ExternalWeak
		}
		t.mod.AddFunction(fn.Name, t.functionIRType(*fn.Ty), linkage)
	}

	for _, fn := range prog.Functions {
		if fn.IsExtern {
			continue
		}
		if err := t.translateFunction(fn); err != nil {
			return err
		}
	}
	if err := mod.Verify(); err != nil {
		return &TranslatorError{Msg: err.Error()}
	}
	return nil
}

func (t *Translator) setInsertPoint(b ir.Block) {
	t.bd.SetInsertPoint(b)
	t.terminated = false
}

func (t *Translator) collectGlobalConsts(prog *ast.Program) error {
	t.globalConsts = make(map[*ast.LetDecl]ir.Value)
	for _, g := range prog.Globals {
		decl, ok := g.(*ast.LetDecl)
		if !ok {
			continue
		}
		v, err := t.evalConstExpr(decl.Init)
		if err != nil {
			return err
		}
		t.globalConsts[decl] = v
	}
	return nil
}

func (t *Translator) evalConstExpr(e ast.Expression) (ir.Value, error) {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil, &TranslatorError{Msg: "global let initializer must be a constant literal"}
	}
	switch lit.Kind {
	case ast.LitTrue, ast.LitFalse, ast.LitInteger, ast.LitFloat, ast.LitNull:
		return t.evalLiteral(lit)
	default:
		return nil, &TranslatorError{Msg: "global let initializer must be a scalar constant"}
	}
}

// translateFunction allocates a slot for every parameter and local (per
// the locals-collector output) and emits fn's body. The header was
// already declared by Translate's first pass.
func (t *Translator) translateFunction(fn *ast.FunctionStatement) error {
	handle, ok := t.mod.GetFunction(fn.Name)
	if !ok {
		return &TranslatorError{Msg: fmt.Sprintf("function %q has no declared header", fn.Name)}
	}

	t.handle = handle
	t.slots = make(map[*ast.LetDecl]ir.Value, len(fn.Locals))
	t.loops = nil

	entry := t.bd.AddBlock(handle, "entry")
	t.setInsertPoint(entry)

	paramIndex := make(map[*ast.LetDecl]int, len(fn.Params))
	for i, p := range fn.Params {
		paramIndex[p] = i
	}

	for _, decl := range fn.Locals {
		slot := t.bd.Alloca(t.irType(*decl.Ty), decl.Name)
		t.slots[decl] = slot
		if i, isParam := paramIndex[decl]; isParam {
			t.bd.Store(t.bd.Param(handle, i), slot)
		}
	}

	if err := t.translateBlock(fn.Body); err != nil {
		return err
	}
	if !t.terminated {
		if fn.Ty.Ret == nil || fn.Ty.Ret.Kind == types.Void {
			t.bd.RetVoid()
		} else {
			// The insertion point is a block control never falls out of: a
			// merge block whose branches both returned, or the end of a
			// body whose every path already returned. It still needs a
			// terminator to form a well-formed function.
			t.bd.Unreachable()
		}
	}
	return nil
}

func (t *Translator) translateBlock(stmts *ast.Statements) error {
	for _, s := range stmts.List {
		if err := t.translateStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) translateStatement(s *ast.Statement) error {
	switch s.Kind {
	case ast.StmtLet:
		return t.translateLet(s.Decl)
	case ast.StmtIf:
		return t.translateIf(s)
	case ast.StmtWhile:
		return t.translateWhile(s)
	case ast.StmtReturn:
		return t.translateReturn(s)
	case ast.StmtBreak:
		return t.translateBreak()
	case ast.StmtContinue:
		return t.translateContinue()
	case ast.StmtExpression:
		_, err := t.evalExpr(s.Expr)
		return err
	case ast.StmtFor:
		return &TranslatorError{Msg: "for statement reached the translator; desugar invariant violated"}
	default:
		return &TranslatorError{Msg: "unsupported statement kind"}
	}
}

func (t *Translator) translateLet(decl *ast.LetDecl) error {
	slot, ok := t.slots[decl]
	if !ok {
		return &TranslatorError{Msg: fmt.Sprintf("let %q has no pre-allocated slot", decl.Name)}
	}
	if decl.Init == nil {
		return nil
	}
	if arr, ok := decl.Init.(*ast.ArrayInitializer); ok {
		return t.storeArrayInitializer(slot, *decl.Ty, arr)
	}
	val, err := t.evalExpr(decl.Init)
	if err != nil {
		return err
	}
	t.bd.Store(val, slot)
	return nil
}

func (t *Translator) storeArrayInitializer(slot ir.Value, arrTy types.Type, arr *ast.ArrayInitializer) error {
	elemIRTy := t.irType(*arrTy.Elem)
	zero := t.bd.ConstInt(t.mod.IntType(32), 0, false)
	for i, v := range arr.Values {
		val, err := t.evalExpr(v)
		if err != nil {
			return err
		}
		idx := t.bd.ConstInt(t.mod.IntType(32), int64(i), false)
		ptr := t.bd.GEP(elemIRTy, slot, []ir.Value{zero, idx}, "")
		t.bd.Store(val, ptr)
	}
	return nil
}

func (t *Translator) translateIf(s *ast.Statement) error {
	cond, err := t.evalExpr(s.Cond)
	if err != nil {
		return err
	}

	thenBlock := t.bd.AddBlock(t.handle, "if.then")
	elseBlock := t.bd.AddBlock(t.handle, "if.else")
	merge := t.bd.AddBlock(t.handle, "if.merge")
	t.bd.CondBr(cond, thenBlock, elseBlock)

	t.setInsertPoint(thenBlock)
	if err := t.translateBlock(s.Then); err != nil {
		return err
	}
	if !t.terminated {
		t.bd.Br(merge)
	}

	t.setInsertPoint(elseBlock)
	if s.Else != nil {
		if err := t.translateBlock(s.Else); err != nil {
			return err
		}
	}
	if !t.terminated {
		t.bd.Br(merge)
	}

	t.setInsertPoint(merge)
	return nil
}

func (t *Translator) translateWhile(s *ast.Statement) error {
	header := t.bd.AddBlock(t.handle, "while.header")
	body := t.bd.AddBlock(t.handle, "while.body")
	after := t.bd.AddBlock(t.handle, "while.after")

	t.bd.Br(header)

	t.setInsertPoint(header)
	cond, err := t.evalExpr(s.Cond)
	if err != nil {
		return err
	}
	t.bd.CondBr(cond, body, after)

	t.loops = append(t.loops, loopTargets{header: header, after: after})
	t.setInsertPoint(body)
	if err := t.translateBlock(s.Body); err != nil {
		return err
	}
	if !t.terminated {
		t.bd.Br(header)
	}
	t.loops = t.loops[:len(t.loops)-1]

	t.setInsertPoint(after)
	return nil
}

func (t *Translator) translateReturn(s *ast.Statement) error {
	if s.Value == nil {
		t.bd.RetVoid()
	} else {
		v, err := t.evalExpr(s.Value)
		if err != nil {
			return err
		}
		t.bd.Ret(v)
	}
	t.terminated = true
	return nil
}

func (t *Translator) translateBreak() error {
	if len(t.loops) == 0 {
		return &TranslatorError{Msg: "break outside of a loop"}
	}
	t.bd.Br(t.loops[len(t.loops)-1].after)
	t.terminated = true
	return nil
}

func (t *Translator) translateContinue() error {
	if len(t.loops) == 0 {
		return &TranslatorError{Msg: "continue outside of a loop"}
	}
	t.bd.Br(t.loops[len(t.loops)-1].header)
	t.terminated = true
	return nil
}

// evalExpr produces an rvalue: the loaded/computed IR value of e.
func (t *Translator) evalExpr(e ast.Expression) (ir.Value, error) {
	switch ex := e.(type) {
	case *ast.Group:
		return t.evalExpr(ex.Inner)
	case *ast.Literal:
		return t.evalLiteral(ex)
	case *ast.BinaryOperation:
		return t.evalBinary(ex)
	case *ast.Call:
		return t.evalCall(ex)
	case *ast.Assignment:
		return t.evalAssignment(ex)
	case *ast.AddrOf:
		return t.lvaluePtr(ex.Expr)
	case *ast.Deref:
		ptr, err := t.evalExpr(ex.Expr)
		if err != nil {
			return nil, err
		}
		return t.bd.Load(t.irType(*ex.Ty), ptr, ""), nil
	default:
		return nil, &TranslatorError{Msg: "unsupported expression node"}
	}
}

// lvaluePtr produces the pointer backing an assignable or addrof-able
// expression, without loading it: identifier → its slot, array access →
// its element pointer, Deref(e) → e evaluated as a pointer.
func (t *Translator) lvaluePtr(e ast.Expression) (ir.Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		switch ex.Kind {
		case ast.LitIdentifier:
			return t.identifierSlot(ex)
		case ast.LitArrayAccess:
			return t.arrayElementPointer(ex)
		}
	case *ast.Deref:
		return t.evalExpr(ex.Expr)
	case *ast.Group:
		return t.lvaluePtr(ex.Inner)
	}
	return nil, &TranslatorError{Msg: "expression is not a valid assignment target"}
}

func (t *Translator) identifierSlot(lit *ast.Literal) (ir.Value, error) {
	def := lit.Definition
	if def == nil || def.Kind != ast.DefLocalVariable || def.Local == nil {
		return nil, &TranslatorError{Msg: fmt.Sprintf("identifier %q has no variable definition", lit.StringValue)}
	}
	slot, ok := t.slots[def.Local]
	if !ok {
		return nil, &TranslatorError{Msg: fmt.Sprintf("identifier %q was never allocated a slot", lit.StringValue)}
	}
	return slot, nil
}

// arrayBasePointer resolves ArrayAccess's base: an identifier base is its
// slot (already a pointer to the array); any other base expression is
// evaluated to a pointer value.
func (t *Translator) arrayBasePointer(lit *ast.Literal) (ir.Value, types.Type, error) {
	if baseLit, ok := lit.Base.(*ast.Literal); ok && baseLit.Kind == ast.LitIdentifier {
		slot, err := t.identifierSlot(baseLit)
		if err != nil {
			return nil, types.Type{}, err
		}
		return slot, *baseLit.Ty, nil
	}
	v, err := t.evalExpr(lit.Base)
	if err != nil {
		return nil, types.Type{}, err
	}
	return v, *lit.Base.TypeOf(), nil
}

func (t *Translator) arrayElementPointer(lit *ast.Literal) (ir.Value, error) {
	basePtr, baseTy, err := t.arrayBasePointer(lit)
	if err != nil {
		return nil, err
	}
	idx, err := t.evalExpr(lit.Index)
	if err != nil {
		return nil, err
	}

	elemIRTy := t.irType(*lit.Ty)

	indices := []ir.Value{idx}
	if baseTy.Kind == types.Array {
		zero := t.bd.ConstInt(t.mod.IntType(32), 0, false)
		indices = []ir.Value{zero, idx}
	}
	return t.bd.GEP(elemIRTy, basePtr, indices, ""), nil
}

func (t *Translator) evalLiteral(lit *ast.Literal) (ir.Value, error) {
	switch lit.Kind {
	case ast.LitTrue:
		return t.bd.ConstBool(true), nil
	case ast.LitFalse:
		return t.bd.ConstBool(false), nil
	case ast.LitInteger:
		ty := *lit.Ty
		return t.bd.ConstInt(t.irType(ty), lit.IntValue, ty.IsSigned()), nil
	case ast.LitFloat:
		return t.bd.ConstFloat(t.mod.FloatType(), lit.FloatValue), nil
	case ast.LitString:
		return t.bd.GlobalStringPtr(lit.StringValue, ""), nil
	case ast.LitNull:
		ty := *lit.Ty
		if ty.Kind != types.Null || ty.Concrete == nil {
			return nil, &TranslatorError{Msg: "null literal has no concrete pointer type"}
		}
		return t.bd.ConstNull(t.mod.PtrType(t.irType(*ty.Concrete))), nil
	case ast.LitIdentifier:
		if lit.Definition != nil && lit.Definition.Kind == ast.DefLocalVariable {
			if gv, ok := t.globalConsts[lit.Definition.Local]; ok {
				return gv, nil
			}
		}
		slot, err := t.identifierSlot(lit)
		if err != nil {
			return nil, err
		}
		return t.bd.Load(t.irType(*lit.Ty), slot, ""), nil
	case ast.LitArrayAccess:
		ptr, err := t.arrayElementPointer(lit)
		if err != nil {
			return nil, err
		}
		return t.bd.Load(t.irType(*lit.Ty), ptr, ""), nil
	default:
		return nil, &TranslatorError{Msg: "unsupported literal kind"}
	}
}

func (t *Translator) evalBinary(b *ast.BinaryOperation) (ir.Value, error) {
	if b.Op.IsUnary() {
		v, err := t.evalExpr(b.Left)
		if err != nil {
			return nil, err
		}
		if b.Op == ast.OpNot {
			return t.bd.Not(v, ""), nil
		}
		if b.Left.TypeOf().Kind == types.Float {
			return t.bd.FNeg(v, ""), nil
		}
		return t.bd.Neg(v, ""), nil
	}

	l, err := t.evalExpr(b.Left)
	if err != nil {
		return nil, err
	}
	r, err := t.evalExpr(b.Right)
	if err != nil {
		return nil, err
	}

	operandTy := *b.Left.TypeOf()
	isFloat := operandTy.Kind == types.Float

	switch b.Op {
	case ast.OpAdd:
		if isFloat {
			return t.bd.FAdd(l, r, ""), nil
		}
		return t.bd.Add(l, r, ""), nil
	case ast.OpSub:
		if isFloat {
			return t.bd.FSub(l, r, ""), nil
		}
		return t.bd.Sub(l, r, ""), nil
	case ast.OpMul:
		if isFloat {
			return t.bd.FMul(l, r, ""), nil
		}
		return t.bd.Mul(l, r, ""), nil
	case ast.OpDiv:
		if isFloat {
			return t.bd.FDiv(l, r, ""), nil
		}
		if operandTy.IsSigned() {
			return t.bd.SDiv(l, r, ""), nil
		}
		return t.bd.UDiv(l, r, ""), nil
	case ast.OpMod:
		if operandTy.IsSigned() {
			return t.bd.SRem(l, r, ""), nil
		}
		return t.bd.URem(l, r, ""), nil
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		if isFloat {
			return t.bd.FCmp(floatPredicateFor(b.Op), l, r, ""), nil
		}
		return t.bd.ICmp(intPredicateFor(b.Op, operandTy.IsSigned()), l, r, ""), nil
	case ast.OpAnd:
		return t.bd.And(l, r, ""), nil
	case ast.OpOr:
		return t.bd.Or(l, r, ""), nil
	default:
		return nil, &TranslatorError{Msg: "unsupported binary operator"}
	}
}

func floatPredicateFor(op ast.Operator) ir.FloatPredicate {
	switch op {
	case ast.OpEq:
		return ir.FloatOEQ
	case ast.OpNeq:
		return ir.FloatONE
	case ast.OpLt:
		return ir.FloatOLT
	case ast.OpGt:
		return ir.FloatOGT
	case ast.OpLe:
		return ir.FloatOLE
	case ast.OpGe:
		return ir.FloatOGE
	default:
		return ir.FloatOEQ
	}
}

func intPredicateFor(op ast.Operator, signed bool) ir.IntPredicate {
	switch op {
	case ast.OpEq:
		return ir.IntEQ
	case ast.OpNeq:
		return ir.IntNE
	case ast.OpLt:
		if signed {
			return ir.IntSLT
		}
		return ir.IntULT
	case ast.OpGt:
		if signed {
			return ir.IntSGT
		}
		return ir.IntUGT
	case ast.OpLe:
		if signed {
			return ir.IntSLE
		}
		return ir.IntULE
	case ast.OpGe:
		if signed {
			return ir.IntSGE
		}
		return ir.IntUGE
	default:
		return ir.IntEQ
	}
}

func (t *Translator) evalCall(c *ast.Call) (ir.Value, error) {
	if c.Definition == nil || c.Definition.Kind != ast.DefFunction || c.Definition.Function == nil {
		return nil, &TranslatorError{Msg: fmt.Sprintf("call to undefined function %q", c.Callee)}
	}
	fn, ok := t.mod.GetFunction(c.Definition.Function.Name)
	if !ok {
		return nil, &TranslatorError{Msg: fmt.Sprintf("function %q was not declared before its call site", c.Callee)}
	}
	args := make([]ir.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := t.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return t.bd.Call(fn, args, ""), nil
}

func (t *Translator) evalAssignment(a *ast.Assignment) (ir.Value, error) {
	rhs, err := t.evalExpr(a.Right)
	if err != nil {
		return nil, err
	}
	ptr, err := t.lvaluePtr(a.Left)
	if err != nil {
		return nil, err
	}
	t.bd.Store(rhs, ptr)
	return rhs, nil
}

func (t *Translator) functionIRType(fnTy types.Type) ir.Type {
	params := make([]ir.Type, len(fnTy.Params))
	for i, p := range fnTy.Params {
		params[i] = t.irType(p.Type)
	}
	ret := t.mod.VoidType()
	if fnTy.Ret != nil && fnTy.Ret.Kind != types.Void {
		ret = t.irType(*fnTy.Ret)
	}
	return t.mod.FunctionType(ret, params, false)
}

func (t *Translator) irType(ty types.Type) ir.Type {
	switch ty.Kind {
	case types.Void:
		return t.mod.VoidType()
	case types.Bool:
		return t.mod.BoolType()
	case types.Float:
		return t.mod.FloatType()
	case types.String:
		return t.mod.PtrType(t.mod.IntType(8))
	case types.Ptr:
		return t.mod.PtrType(t.irType(*ty.Pointee))
	case types.Null:
		return t.mod.PtrType(t.mod.IntType(8))
	case types.Array:
		return t.mod.ArrayType(t.irType(*ty.Elem), ty.Size)
	case types.Struct:
		// No struct literal or field-access syntax exists in this language,
		// so a struct value is never materialised; only its size as an
		// opaque byte blob matters for a well-typed pointer to one.
		return t.mod.ArrayType(t.mod.IntType(8), t.typeByteSize(ty))
	case types.Function:
		return t.functionIRType(ty)
	default:
		return t.mod.IntType(ty.BitWidth())
	}
}

func (t *Translator) typeByteSize(ty types.Type) int {
	switch ty.Kind {
	case types.Ptr, types.String, types.Function:
		return 8
	case types.Bool:
		return 1
	case types.Array:
		return ty.Size * t.typeByteSize(*ty.Elem)
	case types.Struct:
		size := 0
		for _, f := range ty.Fields {
			size += t.typeByteSize(f.Type)
		}
		return size
	default:
		if ty.IsSizedInt() {
			return ty.BitWidth() / 8
		}
		return 8 // Float
	}
}
