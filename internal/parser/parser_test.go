package parser

import (
	"testing"

	"github.com/blb-lang/blbc/internal/ast"
)

func TestParseProgram_SimpleMain(t *testing.T) {
	src := `function main(): i64 { return 0; }`
	prog, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "main" || fn.IsExtern {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Body.List) != 1 || fn.Body.List[0].Kind != ast.StmtReturn {
		t.Errorf("body = %+v", fn.Body.List)
	}
}

func TestParseProgram_Extern(t *testing.T) {
	src := `extern function puts(s: string): i32;`
	prog, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Functions[0]
	if !fn.IsExtern || fn.Body != nil {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "s" {
		t.Errorf("params = %+v", fn.Params)
	}
}

func TestParseProgram_Struct(t *testing.T) {
	src := `struct Point { x: i32, y: i32 }`
	prog, err := New(src).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := prog.Structs[0]
	if st.Name != "Point" || len(st.Fields) != 2 {
		t.Errorf("st = %+v", st)
	}
}

func TestParseExpression_Precedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	expr, err := New("1 + 2 * 3").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := expr.(*ast.BinaryOperation)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("top-level op = %+v", expr)
	}
	right, ok := bin.Right.(*ast.BinaryOperation)
	if !ok || right.Op != ast.OpMul {
		t.Fatalf("right = %+v", bin.Right)
	}
}

func TestParseExpression_LeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3
	expr, err := New("1 - 2 - 3").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := expr.(*ast.BinaryOperation)
	if !ok || top.Op != ast.OpSub {
		t.Fatalf("top = %+v", expr)
	}
	if _, ok := top.Left.(*ast.BinaryOperation); !ok {
		t.Fatalf("left should be nested binop, got %+v", top.Left)
	}
	if _, ok := top.Right.(*ast.Literal); !ok {
		t.Fatalf("right should be literal, got %+v", top.Right)
	}
}

func TestParseExpression_AssignmentRightAssociative(t *testing.T) {
	expr, err := New("a = b = 1").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("top = %+v", expr)
	}
	if _, ok := top.Right.(*ast.Assignment); !ok {
		t.Fatalf("right should be nested assignment, got %+v", top.Right)
	}
}

func TestParseExpression_Call(t *testing.T) {
	expr, err := New(`puts("hi")`).ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := expr.(*ast.Call)
	if !ok || call.Callee != "puts" || len(call.Args) != 1 {
		t.Fatalf("call = %+v", expr)
	}
}

func TestParseExpression_ArrayAccessAndInitializer(t *testing.T) {
	expr, err := New("[1,2,3]").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, ok := expr.(*ast.ArrayInitializer)
	if !ok || len(init.Values) != 3 {
		t.Fatalf("init = %+v", expr)
	}

	expr2, err := New("arr[0]").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	access, ok := expr2.(*ast.Literal)
	if !ok || access.Kind != ast.LitArrayAccess {
		t.Fatalf("access = %+v", expr2)
	}
}

func TestParseExpression_ArrayInitializerTrailingComma(t *testing.T) {
	expr, err := New("[1, 2, 3,]").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, ok := expr.(*ast.ArrayInitializer)
	if !ok || len(init.Values) != 3 {
		t.Fatalf("init = %+v", expr)
	}
}

func TestParseExpression_EmptyArrayInitializerRejected(t *testing.T) {
	_, err := New("[]").ParseExpression()
	if err == nil {
		t.Fatal("expected error for empty array initializer")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedToken {
		t.Fatalf("got %v", err)
	}
}

func TestParseExpression_AddrOfDeref(t *testing.T) {
	expr, err := New("deref addrof x").ParseExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := expr.(*ast.Deref)
	if !ok {
		t.Fatalf("got %+v", expr)
	}
	if _, ok := d.Expr.(*ast.AddrOf); !ok {
		t.Fatalf("inner = %+v", d.Expr)
	}
}

func TestParseStatement_ForLoop(t *testing.T) {
	stmt, err := New("for i: i32 = 0; i < 5; i = i + 1 { }").ParseStatement()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Kind != ast.StmtFor || stmt.Decl.Name != "i" {
		t.Fatalf("stmt = %+v", stmt)
	}
}

func TestParseType_PtrAndArray(t *testing.T) {
	ty, err := New("ptr ptr i32").parseType()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Kind != ast.TSPtr || ty.Elem.Kind != ast.TSPtr || ty.Elem.Elem.Kind != ast.TSPrimitive {
		t.Fatalf("ty = %+v", ty)
	}

	arr, err := New("[3; i32]").parseType()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arr.Kind != ast.TSArray || arr.Size != 3 {
		t.Fatalf("arr = %+v", arr)
	}
}

func TestParse_UnexpectedTokenError(t *testing.T) {
	_, err := New("function 42").ParseProgram()
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedToken {
		t.Fatalf("got %v", err)
	}
}

func TestParse_UnexpectedEOFError(t *testing.T) {
	_, err := New("function main(").ParseProgram()
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != UnexpectedEOF {
		t.Fatalf("got %v", err)
	}
}
