// Package rename α-renames every declared variable and struct to a
// globally unique symbol, and rewrites every identifier reference to the
// new name so no use-site is left pointing at a stale spelling. Function
// names are left untouched: they are link-visible symbols (`main`, extern
// declarations resolved by the system linker), so minting fresh names for
// them would break the produced object.
//
// No scoped map is needed here: the binder already resolved every
// reference to a concrete *ast.LetDecl pointer, so rewriting a reference
// is just reading the current name back off the already-renamed
// declaration it points to — correct regardless of shadowing, since
// declarations are always renamed before their own uses are visited.
package rename

import (
	"strconv"

	"github.com/blb-lang/blbc/internal/ast"
)

// Renamer mints `<old>_<n>` names with a monotonic counter.
type Renamer struct {
	counter int
}

// Run renames every struct, global let, parameter, and local let in prog,
// and rewrites every identifier and array-access-base reference to match.
// Run after desugaring so there are no StmtFor nodes to special-case.
func Run(prog *ast.Program) {
	r := &Renamer{}
	for _, st := range prog.Structs {
		st.Name = r.mint(st.Name)
	}
	for _, g := range prog.Globals {
		if let, ok := g.(*ast.LetDecl); ok {
			r.renameExpr(let.Init)
			let.Name = r.mint(let.Name)
		}
	}
	for _, fn := range prog.Functions {
		r.renameFunction(fn)
	}
}

func (r *Renamer) mint(old string) string {
	fresh := old + "_" + strconv.Itoa(r.counter)
	r.counter++
	return fresh
}

func (r *Renamer) renameFunction(fn *ast.FunctionStatement) {
	if fn.IsExtern {
		return
	}
	for _, p := range fn.Params {
		p.Name = r.mint(p.Name)
	}
	r.renameStatements(fn.Body)
}

func (r *Renamer) renameStatements(stmts *ast.Statements) {
	for _, s := range stmts.List {
		r.renameStatement(s)
	}
}

func (r *Renamer) renameStatement(s *ast.Statement) {
	switch s.Kind {
	case ast.StmtIf:
		r.renameExpr(s.Cond)
		r.renameStatements(s.Then)
		if s.Else != nil {
			r.renameStatements(s.Else)
		}

	case ast.StmtLet:
		r.renameExpr(s.Decl.Init)
		s.Decl.Name = r.mint(s.Decl.Name)

	case ast.StmtWhile:
		r.renameExpr(s.Cond)
		r.renameStatements(s.Body)

	case ast.StmtFor:
		// Unreachable once desugaring has run first; handled for
		// robustness if this pass is ever invoked standalone.
		r.renameExpr(s.Decl.Init)
		s.Decl.Name = r.mint(s.Decl.Name)
		r.renameExpr(s.Cond)
		r.renameExpr(s.Step)
		r.renameStatements(s.Body)

	case ast.StmtReturn:
		r.renameExpr(s.Value)

	case ast.StmtExpression:
		r.renameExpr(s.Expr)
	}
}

func (r *Renamer) renameExpr(e ast.Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Group:
		r.renameExpr(n.Inner)
	case *ast.BinaryOperation:
		r.renameExpr(n.Left)
		r.renameExpr(n.Right)
	case *ast.Literal:
		r.renameLiteral(n)
	case *ast.Call:
		// The callee's name is never minted, so only the arguments need
		// visiting.
		for _, a := range n.Args {
			r.renameExpr(a)
		}
	case *ast.Assignment:
		r.renameExpr(n.Left)
		r.renameExpr(n.Right)
	case *ast.ArrayInitializer:
		for _, v := range n.Values {
			r.renameExpr(v)
		}
	case *ast.AddrOf:
		r.renameExpr(n.Expr)
	case *ast.Deref:
		r.renameExpr(n.Expr)
	}
}

// renameLiteral rewrites an Identifier or ArrayAccess-base reference to
// the renamed declaration's current name. The reference's Definition
// still points at the same LetDecl object; only the textual name carried
// on the literal (for diagnostics and any surface re-emission) would be
// stale without this rewrite.
func (r *Renamer) renameLiteral(lit *ast.Literal) {
	switch lit.Kind {
	case ast.LitIdentifier:
		if lit.Definition != nil && lit.Definition.Local != nil {
			lit.StringValue = lit.Definition.Local.Name
		}
	case ast.LitArrayAccess:
		r.renameExpr(lit.Base)
		r.renameExpr(lit.Index)
	}
}
