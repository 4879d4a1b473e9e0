// Package llvmir implements internal/ir's abstract Types/Module/Builder
// contract against tinygo.org/x/go-llvm: a Context owns one Module, a
// Builder emits instructions into it, and object-file emission goes
// through a TargetMachine built from the host's default triple.
package llvmir

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/blb-lang/blbc/internal/ir"
)

type llType struct {
	t    llvm.Type
	kind ir.TypeKind
}

func (t llType) Kind() ir.TypeKind { return t.kind }

type llValue struct {
	v llvm.Value
	t ir.Type
}

func (v llValue) Type() ir.Type { return v.t }

type llBlock struct {
	b llvm.BasicBlock
}

func intLLVMType(bits int) llvm.Type {
	switch bits {
	case 1:
		return llvm.Int1Type()
	case 8:
		return llvm.Int8Type()
	case 16:
		return llvm.Int16Type()
	case 32:
		return llvm.Int32Type()
	case 64:
		return llvm.Int64Type()
	default:
		return llvm.IntType(bits)
	}
}

// Module wraps one LLVM context and the single module built within it. A
// translation unit gets one Module for its lifetime; everything is
// released together via Dispose at the end of the compilation.
type Module struct {
	ctx llvm.Context
	mod llvm.Module
}

// NewModule creates a fresh LLVM context and an empty module named name.
func NewModule(name string) *Module {
	ctx := llvm.NewContext()
	return &Module{ctx: ctx, mod: ctx.NewModule(name)}
}

// NewBuilder returns a builder positioned on no block, ready for the
// translator to set an insert point and start emitting a function.
func (m *Module) NewBuilder() *Builder {
	return &Builder{b: m.ctx.NewBuilder()}
}

func (m *Module) IntType(bits int) ir.Type { return llType{t: intLLVMType(bits), kind: ir.KindInt} }

func (m *Module) FloatType() ir.Type { return llType{t: llvm.DoubleType(), kind: ir.KindFloat} }

func (m *Module) BoolType() ir.Type { return llType{t: llvm.Int1Type(), kind: ir.KindBool} }

func (m *Module) VoidType() ir.Type { return llType{t: llvm.VoidType(), kind: ir.KindVoid} }

func (m *Module) PtrType(elem ir.Type) ir.Type {
	return llType{t: llvm.PointerType(elem.(llType).t, 0), kind: ir.KindPtr}
}

func (m *Module) ArrayType(elem ir.Type, count int) ir.Type {
	return llType{t: llvm.ArrayType(elem.(llType).t, count), kind: ir.KindArray}
}

func (m *Module) FunctionType(ret ir.Type, params []ir.Type, variadic bool) ir.Type {
	ps := make([]llvm.Type, len(params))
	for i, p := range params {
		ps[i] = p.(llType).t
	}
	return llType{t: llvm.FunctionType(ret.(llType).t, ps, variadic), kind: ir.KindFunction}
}

// BasicType is the identity conversion here: the C API this binding wraps
// has no separate "any type" (including void/function) representation, so
// there is nothing to narrow.
func (m *Module) BasicType(t ir.Type) ir.Type { return t }

func (m *Module) AddFunction(name string, fnType ir.Type, linkage ir.Linkage) ir.Value {
	fn := llvm.AddFunction(m.mod, name, fnType.(llType).t)
	if linkage == ir.ExternalWeak {
		fn.SetLinkage(llvm.ExternalWeakLinkage)
	} else {
		fn.SetLinkage(llvm.ExternalLinkage)
	}
	return llValue{v: fn, t: fnType}
}

func (m *Module) GetFunction(name string) (ir.Value, bool) {
	fn := m.mod.NamedFunction(name)
	if fn.IsNil() {
		return nil, false
	}
	return llValue{v: fn, t: llType{kind: ir.KindFunction}}, true
}

func (m *Module) Print() string { return m.mod.String() }

func (m *Module) Verify() error {
	return llvm.VerifyModule(m.mod, llvm.ReturnStatusAction)
}

// WriteObject targets the host's default triple at CodeGenLevelNone (no
// optimization), emitting straight to a file.
func (m *Module) WriteObject(path string) error {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargets()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return fmt.Errorf("resolving target triple %q: %w", triple, err)
	}

	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelNone, llvm.RelocDefault, llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()
	m.mod.SetDataLayout(td.String())
	m.mod.SetTarget(triple)

	return tm.EmitToFile(m.mod, path, llvm.ObjectFile)
}

func (m *Module) Dispose() {
	m.mod.Dispose()
	m.ctx.Dispose()
}

// Builder wraps one LLVM IRBuilder; the translator repositions it per
// block as it emits each function.
type Builder struct {
	b llvm.Builder
}

func (bd *Builder) AddBlock(fn ir.Value, name string) ir.Block {
	return llBlock{b: llvm.AddBasicBlock(fn.(llValue).v, name)}
}

func (bd *Builder) SetInsertPoint(b ir.Block) { bd.b.SetInsertPointAtEnd(b.(llBlock).b) }

func (bd *Builder) InsertBlock() ir.Block { return llBlock{b: bd.b.GetInsertBlock()} }

func (bd *Builder) Alloca(t ir.Type, name string) ir.Value {
	lt := t.(llType).t
	v := bd.b.CreateAlloca(lt, name)
	return llValue{v: v, t: llType{t: llvm.PointerType(lt, 0), kind: ir.KindPtr}}
}

func (bd *Builder) Load(t ir.Type, ptr ir.Value, name string) ir.Value {
	v := bd.b.CreateLoad(ptr.(llValue).v, name)
	return llValue{v: v, t: t}
}

func (bd *Builder) Store(val, ptr ir.Value) {
	bd.b.CreateStore(val.(llValue).v, ptr.(llValue).v)
}

func (bd *Builder) GEP(t ir.Type, ptr ir.Value, indices []ir.Value, name string) ir.Value {
	idx := make([]llvm.Value, len(indices))
	for i, v := range indices {
		idx[i] = v.(llValue).v
	}
	v := bd.b.CreateGEP(ptr.(llValue).v, idx, name)
	return llValue{v: v, t: llType{t: llvm.PointerType(t.(llType).t, 0), kind: ir.KindPtr}}
}

func (bd *Builder) Param(fn ir.Value, index int) ir.Value {
	v := fn.(llValue).v.Param(index)
	return llValue{v: v}
}

func (bd *Builder) Call(fn ir.Value, args []ir.Value, name string) ir.Value {
	largs := make([]llvm.Value, len(args))
	for i, a := range args {
		largs[i] = a.(llValue).v
	}
	return llValue{v: bd.b.CreateCall(fn.(llValue).v, largs, name)}
}

func (bd *Builder) Ret(val ir.Value)   { bd.b.CreateRet(val.(llValue).v) }
func (bd *Builder) RetVoid()           { bd.b.CreateRetVoid() }
func (bd *Builder) Unreachable()       { bd.b.CreateUnreachable() }
func (bd *Builder) Br(target ir.Block) { bd.b.CreateBr(target.(llBlock).b) }

func (bd *Builder) CondBr(cond ir.Value, then, els ir.Block) {
	bd.b.CreateCondBr(cond.(llValue).v, then.(llBlock).b, els.(llBlock).b)
}

func (bd *Builder) binOp(f func(llvm.Value, llvm.Value, string) llvm.Value, l, r ir.Value, name string) ir.Value {
	return llValue{v: f(l.(llValue).v, r.(llValue).v, name), t: l.Type()}
}

func (bd *Builder) Add(l, r ir.Value, name string) ir.Value  { return bd.binOp(bd.b.CreateAdd, l, r, name) }
func (bd *Builder) Sub(l, r ir.Value, name string) ir.Value  { return bd.binOp(bd.b.CreateSub, l, r, name) }
func (bd *Builder) Mul(l, r ir.Value, name string) ir.Value  { return bd.binOp(bd.b.CreateMul, l, r, name) }
func (bd *Builder) SDiv(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateSDiv, l, r, name) }
func (bd *Builder) UDiv(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateUDiv, l, r, name) }
func (bd *Builder) SRem(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateSRem, l, r, name) }
func (bd *Builder) URem(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateURem, l, r, name) }

func (bd *Builder) FAdd(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateFAdd, l, r, name) }
func (bd *Builder) FSub(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateFSub, l, r, name) }
func (bd *Builder) FMul(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateFMul, l, r, name) }
func (bd *Builder) FDiv(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateFDiv, l, r, name) }

func (bd *Builder) And(l, r ir.Value, name string) ir.Value { return bd.binOp(bd.b.CreateAnd, l, r, name) }
func (bd *Builder) Or(l, r ir.Value, name string) ir.Value  { return bd.binOp(bd.b.CreateOr, l, r, name) }

var intPredicates = map[ir.IntPredicate]llvm.IntPredicate{
	ir.IntEQ: llvm.IntEQ, ir.IntNE: llvm.IntNE,
	ir.IntSLT: llvm.IntSLT, ir.IntSGT: llvm.IntSGT, ir.IntSLE: llvm.IntSLE, ir.IntSGE: llvm.IntSGE,
	ir.IntULT: llvm.IntULT, ir.IntUGT: llvm.IntUGT, ir.IntULE: llvm.IntULE, ir.IntUGE: llvm.IntUGE,
}

var floatPredicates = map[ir.FloatPredicate]llvm.FloatPredicate{
	ir.FloatOEQ: llvm.FloatOEQ, ir.FloatONE: llvm.FloatONE,
	ir.FloatOLT: llvm.FloatOLT, ir.FloatOGT: llvm.FloatOGT, ir.FloatOLE: llvm.FloatOLE, ir.FloatOGE: llvm.FloatOGE,
}

func (bd *Builder) ICmp(pred ir.IntPredicate, l, r ir.Value, name string) ir.Value {
	v := bd.b.CreateICmp(intPredicates[pred], l.(llValue).v, r.(llValue).v, name)
	return llValue{v: v, t: llType{t: llvm.Int1Type(), kind: ir.KindBool}}
}

func (bd *Builder) FCmp(pred ir.FloatPredicate, l, r ir.Value, name string) ir.Value {
	v := bd.b.CreateFCmp(floatPredicates[pred], l.(llValue).v, r.(llValue).v, name)
	return llValue{v: v, t: llType{t: llvm.Int1Type(), kind: ir.KindBool}}
}

func (bd *Builder) Not(v ir.Value, name string) ir.Value {
	return llValue{v: bd.b.CreateNot(v.(llValue).v, name), t: v.Type()}
}

func (bd *Builder) Neg(v ir.Value, name string) ir.Value {
	return llValue{v: bd.b.CreateNeg(v.(llValue).v, name), t: v.Type()}
}

func (bd *Builder) FNeg(v ir.Value, name string) ir.Value {
	return llValue{v: bd.b.CreateFNeg(v.(llValue).v, name), t: v.Type()}
}

func (bd *Builder) ConstInt(t ir.Type, v int64, signed bool) ir.Value {
	return llValue{v: llvm.ConstInt(t.(llType).t, uint64(v), signed), t: t}
}

func (bd *Builder) ConstFloat(t ir.Type, v float64) ir.Value {
	return llValue{v: llvm.ConstFloat(t.(llType).t, v), t: t}
}

func (bd *Builder) ConstBool(v bool) ir.Value {
	bt := llvm.Int1Type()
	n := uint64(0)
	if v {
		n = 1
	}
	return llValue{v: llvm.ConstInt(bt, n, false), t: llType{t: bt, kind: ir.KindBool}}
}

func (bd *Builder) ConstNull(t ir.Type) ir.Value {
	return llValue{v: llvm.ConstNull(t.(llType).t), t: t}
}

func (bd *Builder) GlobalStringPtr(s, name string) ir.Value {
	v := bd.b.CreateGlobalStringPtr(s, name)
	return llValue{v: v, t: llType{t: llvm.PointerType(llvm.Int8Type(), 0), kind: ir.KindPtr}}
}

func (bd *Builder) Dispose() { bd.b.Dispose() }
