// Package locals computes, for each non-extern function, the ordered list
// of stack-resident variables the IR translator must allocate: parameters
// first, then every `let` encountered during a depth-first walk of the
// body, in encounter order.
package locals

import "github.com/blb-lang/blbc/internal/ast"

// Collect walks every non-extern function in prog and populates its
// FunctionStatement.Locals field. Run after desugaring, so no StmtFor
// nodes remain to walk.
func Collect(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if fn.IsExtern {
			continue
		}
		fn.Locals = collectFunction(fn)
	}
}

func collectFunction(fn *ast.FunctionStatement) []*ast.LetDecl {
	locals := make([]*ast.LetDecl, 0, len(fn.Params))
	locals = append(locals, fn.Params...)
	return collectStatements(fn.Body, locals)
}

func collectStatements(stmts *ast.Statements, locals []*ast.LetDecl) []*ast.LetDecl {
	for _, s := range stmts.List {
		locals = collectStatement(s, locals)
	}
	return locals
}

func collectStatement(s *ast.Statement, locals []*ast.LetDecl) []*ast.LetDecl {
	switch s.Kind {
	case ast.StmtLet:
		locals = append(locals, s.Decl)
	case ast.StmtIf:
		locals = collectStatements(s.Then, locals)
		if s.Else != nil {
			locals = collectStatements(s.Else, locals)
		}
	case ast.StmtWhile:
		locals = collectStatements(s.Body, locals)
	case ast.StmtFor:
		// Unreachable once desugaring has run first, but handled for
		// robustness if this pass is ever invoked standalone.
		locals = append(locals, s.Decl)
		locals = collectStatements(s.Body, locals)
	}
	return locals
}
