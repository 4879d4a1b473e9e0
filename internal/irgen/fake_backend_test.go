package irgen

import "github.com/blb-lang/blbc/internal/ir"

// fakeType/fakeValue/fakeBlock/fakeModule/fakeBuilder are an in-memory
// stand-in for internal/ir/llvmir, recording just enough (instruction
// mnemonics per block, function linkages) to exercise the translator's
// control flow and operand dispatch without a real LLVM install.

type fakeType struct{ kind ir.TypeKind }

func (t fakeType) Kind() ir.TypeKind { return t.kind }

type fakeValue struct {
	desc string
	t    ir.Type
}

func (v fakeValue) Type() ir.Type { return v.t }

type fakeBlock struct {
	name  string
	insts []string
}

type fakeFn struct {
	name    string
	linkage ir.Linkage
}

type fakeModule struct {
	functions  map[string]*fakeFn
	verifyErr  error
}

func newFakeModule() *fakeModule {
	return &fakeModule{functions: map[string]*fakeFn{}}
}

func (m *fakeModule) IntType(bits int) ir.Type                 { return fakeType{ir.KindInt} }
func (m *fakeModule) FloatType() ir.Type                       { return fakeType{ir.KindFloat} }
func (m *fakeModule) BoolType() ir.Type                        { return fakeType{ir.KindBool} }
func (m *fakeModule) VoidType() ir.Type                        { return fakeType{ir.KindVoid} }
func (m *fakeModule) PtrType(elem ir.Type) ir.Type             { return fakeType{ir.KindPtr} }
func (m *fakeModule) ArrayType(elem ir.Type, n int) ir.Type    { return fakeType{ir.KindArray} }
func (m *fakeModule) BasicType(t ir.Type) ir.Type              { return t }
func (m *fakeModule) FunctionType(ret ir.Type, params []ir.Type, variadic bool) ir.Type {
	return fakeType{ir.KindFunction}
}

func (m *fakeModule) AddFunction(name string, fnType ir.Type, linkage ir.Linkage) ir.Value {
	fn := &fakeFn{name: name, linkage: linkage}
	m.functions[name] = fn
	return fakeValue{desc: "function:" + name, t: fnType}
}

func (m *fakeModule) GetFunction(name string) (ir.Value, bool) {
	fn, ok := m.functions[name]
	if !ok {
		return nil, false
	}
	return fakeValue{desc: "function:" + fn.name}, true
}

func (m *fakeModule) Print() string                 { return "" }
func (m *fakeModule) Verify() error                 { return m.verifyErr }
func (m *fakeModule) WriteObject(path string) error { return nil }
func (m *fakeModule) Dispose()                      {}

type fakeBuilder struct {
	cur    *fakeBlock
	blocks []*fakeBlock
}

func newFakeBuilder() *fakeBuilder { return &fakeBuilder{} }

func (b *fakeBuilder) val(desc string, t ir.Type) ir.Value { return fakeValue{desc: desc, t: t} }

func (b *fakeBuilder) emit(s string) { b.cur.insts = append(b.cur.insts, s) }

// block returns the most recently created block with the given name,
// letting tests inspect a specific block's recorded instructions.
func (b *fakeBuilder) block(name string) *fakeBlock {
	for i := len(b.blocks) - 1; i >= 0; i-- {
		if b.blocks[i].name == name {
			return b.blocks[i]
		}
	}
	return nil
}

func (b *fakeBuilder) AddBlock(fn ir.Value, name string) ir.Block {
	blk := &fakeBlock{name: name}
	b.blocks = append(b.blocks, blk)
	return blk
}
func (b *fakeBuilder) SetInsertPoint(blk ir.Block)                { b.cur = blk.(*fakeBlock) }
func (b *fakeBuilder) InsertBlock() ir.Block                      { return b.cur }

func (b *fakeBuilder) Alloca(t ir.Type, name string) ir.Value {
	b.emit("alloca " + name)
	return b.val("alloca:"+name, fakeType{ir.KindPtr})
}
func (b *fakeBuilder) Load(t ir.Type, ptr ir.Value, name string) ir.Value {
	b.emit("load")
	return b.val("load", t)
}
func (b *fakeBuilder) Store(val, ptr ir.Value) { b.emit("store") }
func (b *fakeBuilder) GEP(t ir.Type, ptr ir.Value, indices []ir.Value, name string) ir.Value {
	b.emit("gep")
	return b.val("gep", fakeType{ir.KindPtr})
}
func (b *fakeBuilder) Param(fn ir.Value, index int) ir.Value {
	return b.val("param", fakeType{ir.KindInt})
}

func (b *fakeBuilder) Call(fn ir.Value, args []ir.Value, name string) ir.Value {
	b.emit("call " + fn.(fakeValue).desc)
	return b.val("call", fakeType{ir.KindInt})
}
func (b *fakeBuilder) Ret(val ir.Value) { b.emit("ret") }
func (b *fakeBuilder) RetVoid()         { b.emit("ret.void") }
func (b *fakeBuilder) Unreachable()     { b.emit("unreachable") }
func (b *fakeBuilder) Br(target ir.Block) {
	b.emit("br " + target.(*fakeBlock).name)
}
func (b *fakeBuilder) CondBr(cond ir.Value, then, els ir.Block) {
	b.emit("condbr " + then.(*fakeBlock).name + " " + els.(*fakeBlock).name)
}

func (b *fakeBuilder) binOp(name string, l ir.Value) ir.Value {
	b.emit(name)
	return b.val(name, l.Type())
}

func (b *fakeBuilder) Add(l, r ir.Value, name string) ir.Value  { return b.binOp("add", l) }
func (b *fakeBuilder) Sub(l, r ir.Value, name string) ir.Value  { return b.binOp("sub", l) }
func (b *fakeBuilder) Mul(l, r ir.Value, name string) ir.Value  { return b.binOp("mul", l) }
func (b *fakeBuilder) SDiv(l, r ir.Value, name string) ir.Value { return b.binOp("sdiv", l) }
func (b *fakeBuilder) UDiv(l, r ir.Value, name string) ir.Value { return b.binOp("udiv", l) }
func (b *fakeBuilder) SRem(l, r ir.Value, name string) ir.Value { return b.binOp("srem", l) }
func (b *fakeBuilder) URem(l, r ir.Value, name string) ir.Value { return b.binOp("urem", l) }

func (b *fakeBuilder) FAdd(l, r ir.Value, name string) ir.Value { return b.binOp("fadd", l) }
func (b *fakeBuilder) FSub(l, r ir.Value, name string) ir.Value { return b.binOp("fsub", l) }
func (b *fakeBuilder) FMul(l, r ir.Value, name string) ir.Value { return b.binOp("fmul", l) }
func (b *fakeBuilder) FDiv(l, r ir.Value, name string) ir.Value { return b.binOp("fdiv", l) }

func (b *fakeBuilder) And(l, r ir.Value, name string) ir.Value { return b.binOp("and", l) }
func (b *fakeBuilder) Or(l, r ir.Value, name string) ir.Value  { return b.binOp("or", l) }

func (b *fakeBuilder) ICmp(pred ir.IntPredicate, l, r ir.Value, name string) ir.Value {
	b.emit("icmp")
	return b.val("icmp", fakeType{ir.KindBool})
}
func (b *fakeBuilder) FCmp(pred ir.FloatPredicate, l, r ir.Value, name string) ir.Value {
	b.emit("fcmp")
	return b.val("fcmp", fakeType{ir.KindBool})
}

func (b *fakeBuilder) Not(v ir.Value, name string) ir.Value  { b.emit("not"); return b.val("not", v.Type()) }
func (b *fakeBuilder) Neg(v ir.Value, name string) ir.Value  { b.emit("neg"); return b.val("neg", v.Type()) }
func (b *fakeBuilder) FNeg(v ir.Value, name string) ir.Value { b.emit("fneg"); return b.val("fneg", v.Type()) }

func (b *fakeBuilder) ConstInt(t ir.Type, v int64, signed bool) ir.Value {
	return b.val("constint", t)
}
func (b *fakeBuilder) ConstFloat(t ir.Type, v float64) ir.Value { return b.val("constfloat", t) }
func (b *fakeBuilder) ConstBool(v bool) ir.Value                { return b.val("constbool", fakeType{ir.KindBool}) }
func (b *fakeBuilder) ConstNull(t ir.Type) ir.Value             { return b.val("constnull", t) }
func (b *fakeBuilder) GlobalStringPtr(s, name string) ir.Value {
	return b.val("globalstr", fakeType{ir.KindPtr})
}

func (b *fakeBuilder) Dispose() {}
