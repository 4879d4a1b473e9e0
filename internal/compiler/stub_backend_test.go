package compiler

import "github.com/blb-lang/blbc/internal/ir"

// stubModule/stubBuilder/stubType/stubValue/stubBlock are the minimal fake
// ir.Module/ir.Builder this package's own tests need to drive Translate
// end to end without a real LLVM install. internal/irgen's own tests have
// a richer version of the same idea (fake_backend_test.go); this one only
// needs to not crash and to let Verify fail on demand.

type stubType struct{ kind ir.TypeKind }

func (t stubType) Kind() ir.TypeKind { return t.kind }

type stubValue struct{ t ir.Type }

func (v stubValue) Type() ir.Type { return v.t }

type stubBlock struct{}

type stubModule struct {
	functions map[string]ir.Value
	verifyErr error
}

func newStubModule() *stubModule {
	return &stubModule{functions: map[string]ir.Value{}}
}

func (m *stubModule) IntType(bits int) ir.Type              { return stubType{ir.KindInt} }
func (m *stubModule) FloatType() ir.Type                    { return stubType{ir.KindFloat} }
func (m *stubModule) BoolType() ir.Type                     { return stubType{ir.KindBool} }
func (m *stubModule) VoidType() ir.Type                     { return stubType{ir.KindVoid} }
func (m *stubModule) PtrType(elem ir.Type) ir.Type          { return stubType{ir.KindPtr} }
func (m *stubModule) ArrayType(elem ir.Type, n int) ir.Type { return stubType{ir.KindArray} }
func (m *stubModule) BasicType(t ir.Type) ir.Type           { return t }
func (m *stubModule) FunctionType(ret ir.Type, params []ir.Type, variadic bool) ir.Type {
	return stubType{ir.KindFunction}
}

func (m *stubModule) AddFunction(name string, fnType ir.Type, linkage ir.Linkage) ir.Value {
	v := stubValue{t: fnType}
	m.functions[name] = v
	return v
}

func (m *stubModule) GetFunction(name string) (ir.Value, bool) {
	v, ok := m.functions[name]
	return v, ok
}

func (m *stubModule) Print() string                 { return "" }
func (m *stubModule) Verify() error                 { return m.verifyErr }
func (m *stubModule) WriteObject(path string) error { return nil }
func (m *stubModule) Dispose()                      {}

type stubBuilder struct{}

func newStubBuilder() *stubBuilder { return &stubBuilder{} }

func (b *stubBuilder) AddBlock(fn ir.Value, name string) ir.Block { return stubBlock{} }
func (b *stubBuilder) SetInsertPoint(blk ir.Block)                {}
func (b *stubBuilder) InsertBlock() ir.Block                      { return stubBlock{} }

func (b *stubBuilder) Alloca(t ir.Type, name string) ir.Value      { return stubValue{stubType{ir.KindPtr}} }
func (b *stubBuilder) Load(t ir.Type, ptr ir.Value, name string) ir.Value { return stubValue{t} }
func (b *stubBuilder) Store(val, ptr ir.Value)                            {}
func (b *stubBuilder) GEP(t ir.Type, ptr ir.Value, indices []ir.Value, name string) ir.Value {
	return stubValue{stubType{ir.KindPtr}}
}
func (b *stubBuilder) Param(fn ir.Value, index int) ir.Value { return stubValue{stubType{ir.KindInt}} }

func (b *stubBuilder) Call(fn ir.Value, args []ir.Value, name string) ir.Value {
	return stubValue{stubType{ir.KindInt}}
}
func (b *stubBuilder) Ret(val ir.Value)   {}
func (b *stubBuilder) RetVoid()           {}
func (b *stubBuilder) Unreachable()       {}
func (b *stubBuilder) Br(target ir.Block) {}
func (b *stubBuilder) CondBr(cond ir.Value, then, els ir.Block) {}

func (b *stubBuilder) Add(l, r ir.Value, name string) ir.Value  { return stubValue{l.Type()} }
func (b *stubBuilder) Sub(l, r ir.Value, name string) ir.Value  { return stubValue{l.Type()} }
func (b *stubBuilder) Mul(l, r ir.Value, name string) ir.Value  { return stubValue{l.Type()} }
func (b *stubBuilder) SDiv(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) UDiv(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) SRem(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) URem(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }

func (b *stubBuilder) FAdd(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) FSub(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) FMul(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) FDiv(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }

func (b *stubBuilder) ICmp(pred ir.IntPredicate, l, r ir.Value, name string) ir.Value {
	return stubValue{stubType{ir.KindBool}}
}
func (b *stubBuilder) FCmp(pred ir.FloatPredicate, l, r ir.Value, name string) ir.Value {
	return stubValue{stubType{ir.KindBool}}
}

func (b *stubBuilder) Not(v ir.Value, name string) ir.Value  { return stubValue{v.Type()} }
func (b *stubBuilder) Neg(v ir.Value, name string) ir.Value  { return stubValue{v.Type()} }
func (b *stubBuilder) FNeg(v ir.Value, name string) ir.Value { return stubValue{v.Type()} }
func (b *stubBuilder) And(l, r ir.Value, name string) ir.Value { return stubValue{l.Type()} }
func (b *stubBuilder) Or(l, r ir.Value, name string) ir.Value  { return stubValue{l.Type()} }

func (b *stubBuilder) ConstInt(t ir.Type, v int64, signed bool) ir.Value { return stubValue{t} }
func (b *stubBuilder) ConstFloat(t ir.Type, v float64) ir.Value          { return stubValue{t} }
func (b *stubBuilder) ConstBool(v bool) ir.Value                        { return stubValue{stubType{ir.KindBool}} }
func (b *stubBuilder) ConstNull(t ir.Type) ir.Value                     { return stubValue{t} }
func (b *stubBuilder) GlobalStringPtr(s, name string) ir.Value {
	return stubValue{stubType{ir.KindPtr}}
}

func (b *stubBuilder) Dispose() {}
