package rename

import (
	"testing"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/binder"
	"github.com/blb-lang/blbc/internal/desugar"
	"github.com/blb-lang/blbc/internal/locals"
	"github.com/blb-lang/blbc/internal/parser"
	"github.com/blb-lang/blbc/internal/typecheck"
)

func prepare(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.New(src).ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := binder.Bind(prog); err != nil {
		t.Fatalf("bind error: %v", err)
	}
	if err := typecheck.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}
	if err := typecheck.Infer(prog); err != nil {
		t.Fatalf("infer error: %v", err)
	}
	desugar.Run(prog)
	locals.Collect(prog)
	return prog
}

func TestRename_ParamsGetFreshNamesButFunctionKeepsItsSymbol(t *testing.T) {
	prog := prepare(t, `
		function add(a: i32, b: i32): i32 {
			return a + b;
		}
	`)
	Run(prog)

	fn := prog.Functions[0]
	if fn.Name != "add" {
		t.Fatalf("function name is a link-visible symbol and must not change, got %q", fn.Name)
	}
	for i, p := range fn.Params {
		old := []string{"a", "b"}[i]
		if p.Name == old {
			t.Fatalf("param %d should have been renamed, still %q", i, p.Name)
		}
	}
}

func TestRename_IdentifierReferencesMatchRenamedDecl(t *testing.T) {
	prog := prepare(t, `
		function f(a: i32): i32 {
			let b: i32 = a;
			return b;
		}
	`)
	Run(prog)

	fn := prog.Functions[0]
	bDecl := fn.Body.List[0].Decl
	aParam := fn.Params[0]

	initLit := bDecl.Init.(*ast.Literal)
	if initLit.StringValue != aParam.Name {
		t.Fatalf("init reference %q does not match renamed param %q", initLit.StringValue, aParam.Name)
	}

	retLit := fn.Body.List[1].Value.(*ast.Literal)
	if retLit.StringValue != bDecl.Name {
		t.Fatalf("return reference %q does not match renamed let %q", retLit.StringValue, bDecl.Name)
	}
}

func TestRename_ShadowedDeclarationsGetDistinctNames(t *testing.T) {
	prog := prepare(t, `
		function f(): i32 {
			let x: i32 = 1;
			if true {
				let x: i32 = 2;
			} else {
				let x: i32 = 3;
			}
			return x;
		}
	`)
	Run(prog)

	fn := prog.Functions[0]
	outer := fn.Body.List[0].Decl
	ifStmt := fn.Body.List[1]
	thenX := ifStmt.Then.List[0].Decl
	elseX := ifStmt.Else.List[0].Decl

	if outer.Name == thenX.Name || outer.Name == elseX.Name || thenX.Name == elseX.Name {
		t.Fatalf("shadowed declarations must receive distinct names: outer=%q then=%q else=%q",
			outer.Name, thenX.Name, elseX.Name)
	}

	retLit := fn.Body.List[2].Value.(*ast.Literal)
	if retLit.StringValue != outer.Name {
		t.Fatalf("return should resolve to the outer x (%q), got %q", outer.Name, retLit.StringValue)
	}
}

func TestRename_CallCalleeStaysInSyncWithFunctionName(t *testing.T) {
	prog := prepare(t, `
		function callee(): i32 {
			return 1;
		}
		function caller(): i32 {
			return callee();
		}
	`)
	Run(prog)

	calleeFn := prog.Functions[0]
	callerFn := prog.Functions[1]

	call := callerFn.Body.List[0].Value.(*ast.Call)
	if call.Callee != calleeFn.Name {
		t.Fatalf("call callee %q does not match function name %q", call.Callee, calleeFn.Name)
	}
}

func TestRename_StructNameRenamed(t *testing.T) {
	prog := prepare(t, `
		struct Point { x: i32, y: i32 }
		function f(): i32 {
			return 0;
		}
	`)
	Run(prog)

	if prog.Structs[0].Name == "Point" {
		t.Fatalf("struct name should have been renamed, still %q", prog.Structs[0].Name)
	}
}

func TestRename_GlobalLetRenamedAndReferenced(t *testing.T) {
	prog := prepare(t, `
		let counter: i32 = 0;
		function f(): i32 {
			return counter;
		}
	`)
	Run(prog)

	global := prog.Globals[0].(*ast.LetDecl)
	if global.Name == "counter" {
		t.Fatalf("global let should have been renamed, still %q", global.Name)
	}

	fn := prog.Functions[0]
	retLit := fn.Body.List[0].Value.(*ast.Literal)
	if retLit.StringValue != global.Name {
		t.Fatalf("reference to global should match renamed name %q, got %q", global.Name, retLit.StringValue)
	}
}

func TestRename_ExternFunctionLeftUntouched(t *testing.T) {
	prog := prepare(t, `extern function puts(s: string): i32;`)
	Run(prog)

	fn := prog.Functions[0]
	if fn.Name != "puts" {
		t.Fatalf("extern symbol must keep its linkable name, got %q", fn.Name)
	}
	if fn.Params[0].Name != "s" {
		t.Fatalf("extern parameters have no body to reference them and stay as written, got %q", fn.Params[0].Name)
	}
	if fn.Body != nil {
		t.Fatalf("extern function should remain bodyless")
	}
}

func TestRename_AllMintedNamesAreUnique(t *testing.T) {
	prog := prepare(t, `
		function f(a: i32): i32 {
			let b: i32 = a;
			let c: i32 = b;
			return c;
		}
		function g(a: i32): i32 {
			let b: i32 = a;
			return b;
		}
	`)
	Run(prog)

	seen := map[string]bool{}
	for _, fn := range prog.Functions {
		assertUnique(t, seen, fn.Name)
		for _, p := range fn.Params {
			assertUnique(t, seen, p.Name)
		}
		for _, l := range fn.Locals {
			// Params appear in both Params and Locals; skip re-check there.
			if l.IsParam {
				continue
			}
			assertUnique(t, seen, l.Name)
		}
	}
}

func assertUnique(t *testing.T, seen map[string]bool, name string) {
	t.Helper()
	if seen[name] {
		t.Fatalf("name %q minted more than once", name)
	}
	seen[name] = true
}
