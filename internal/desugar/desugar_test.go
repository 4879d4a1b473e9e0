package desugar

import (
	"testing"

	"github.com/blb-lang/blbc/internal/ast"
	"github.com/blb-lang/blbc/internal/binder"
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
	return prog
}

func TestDesugar_ForBecomesLetWhile(t *testing.T) {
	prog := prepare(t, `
		function main(): i64 {
			for i: i32 = 0; i < 5; i = i + 1 { }
			return 0;
		}
	`)
	Run(prog)

	fn := prog.Functions[0]
	if len(fn.Body.List) != 3 {
		t.Fatalf("expected 3 top-level statements (let, while, return), got %d", len(fn.Body.List))
	}
	if fn.Body.List[0].Kind != ast.StmtLet || fn.Body.List[0].Decl.Name != "i" {
		t.Fatalf("first statement should be the induction-variable let: %+v", fn.Body.List[0])
	}
	whileStmt := fn.Body.List[1]
	if whileStmt.Kind != ast.StmtWhile {
		t.Fatalf("second statement should be while: %+v", whileStmt)
	}
	if len(whileStmt.Body.List) != 1 {
		t.Fatalf("while body should contain only the appended step, got %d statements", len(whileStmt.Body.List))
	}
	step := whileStmt.Body.List[0]
	if step.Kind != ast.StmtExpression {
		t.Fatalf("last body statement should be the step expression: %+v", step)
	}
	if fn.Body.List[2].Kind != ast.StmtReturn {
		t.Fatalf("third statement should be the original return: %+v", fn.Body.List[2])
	}
}

func TestDesugar_StepAppendedAfterOriginalBody(t *testing.T) {
	prog := prepare(t, `
		extern function puts(s: string): i32;
		function main(): i64 {
			for i: i32 = 0; i < 5; i = i + 1 { puts("hey"); }
			return 0;
		}
	`)
	Run(prog)

	whileStmt := prog.Functions[1].Body.List[1]
	if len(whileStmt.Body.List) != 2 {
		t.Fatalf("expected original body statement plus step, got %d", len(whileStmt.Body.List))
	}
	if whileStmt.Body.List[0].Kind != ast.StmtExpression {
		t.Fatalf("first body statement should be the puts call: %+v", whileStmt.Body.List[0])
	}
	if whileStmt.Body.List[1].Expr == nil {
		t.Fatalf("second body statement should be the step expression")
	}
}

func TestDesugar_NoForSurvives(t *testing.T) {
	prog := prepare(t, `
		function main(): i64 {
			if true {
				for i: i32 = 0; i < 5; i = i + 1 { }
			}
			while true {
				for j: i32 = 0; j < 5; j = j + 1 { }
				break;
			}
			return 0;
		}
	`)
	Run(prog)
	assertNoFor(t, prog.Functions[0].Body)
}

func assertNoFor(t *testing.T, stmts *ast.Statements) {
	t.Helper()
	for _, s := range stmts.List {
		if s.Kind == ast.StmtFor {
			t.Fatalf("for statement survived desugaring: %+v", s)
		}
		switch s.Kind {
		case ast.StmtIf:
			assertNoFor(t, s.Then)
			if s.Else != nil {
				assertNoFor(t, s.Else)
			}
		case ast.StmtWhile:
			assertNoFor(t, s.Body)
		}
	}
}

func TestDesugar_ExternFunctionUntouched(t *testing.T) {
	prog := prepare(t, `extern function puts(s: string): i32;`)
	Run(prog) // must not panic on a nil Body
	if prog.Functions[0].Body != nil {
		t.Fatalf("extern function should remain bodyless")
	}
}
