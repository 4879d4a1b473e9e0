// Package desugar lowers every `for` loop into an equivalent `let`+`while`
// block. Applied only to non-extern functions, since extern functions
// have no body to rewrite.
package desugar

import "github.com/blb-lang/blbc/internal/ast"

// Run rewrites every StmtFor in prog's function bodies in place. After it
// returns, no ast.StmtFor node remains anywhere in prog.
func Run(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if fn.IsExtern {
			continue
		}
		desugarStatements(fn.Body)
	}
}

// desugarStatements rewrites stmts.List in place. A `for` statement expands
// to two statements (`let` then `while`), so the rewritten list need not
// have the same length as the original.
func desugarStatements(stmts *ast.Statements) {
	rewritten := make([]*ast.Statement, 0, len(stmts.List))
	for _, s := range stmts.List {
		rewritten = append(rewritten, desugarStatement(s)...)
	}
	stmts.List = rewritten
}

func desugarStatement(s *ast.Statement) []*ast.Statement {
	switch s.Kind {
	case ast.StmtIf:
		desugarStatements(s.Then)
		if s.Else != nil {
			desugarStatements(s.Else)
		}
		return []*ast.Statement{s}

	case ast.StmtWhile:
		desugarStatements(s.Body)
		return []*ast.Statement{s}

	case ast.StmtFor:
		return desugarFor(s)

	default:
		return []*ast.Statement{s}
	}
}

// desugarFor replaces `for id = init; cond; step { body }` with:
//
//	let id = init;
//	while cond { body; step; }
//
// step is appended as an expression-statement at the end of the body.
func desugarFor(s *ast.Statement) []*ast.Statement {
	desugarStatements(s.Body)

	stepStmt := &ast.Statement{
		NodeBase: ast.NodeBase{Span: s.Step.SpanOf()},
		Kind:     ast.StmtExpression,
		Expr:     s.Step,
		Naked:    false,
	}
	s.Body.Append(stepStmt)

	letStmt := &ast.Statement{
		NodeBase: ast.NodeBase{Span: s.Decl.SpanOf()},
		Kind:     ast.StmtLet,
		Decl:     s.Decl,
	}

	whileStmt := &ast.Statement{
		NodeBase: ast.NodeBase{Span: s.SpanOf()},
		Kind:     ast.StmtWhile,
		Cond:     s.Cond,
		Body:     s.Body,
	}

	return []*ast.Statement{letStmt, whileStmt}
}
